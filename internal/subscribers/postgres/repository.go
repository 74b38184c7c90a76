// Package postgres provides the PostgreSQL implementation of subscribers.Repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/forama/newsletter/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements subscribers.Repository using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const subscriberColumns = `id, email, nombre, estado, confirmado, token_confirmacion,
	ip_suscripcion, user_agent, fecha_suscripcion, ultima_notificacion`

// GetByEmail returns the subscriber row for an email, or nil when absent.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	query := `
		SELECT ` + subscriberColumns + `
		FROM suscriptores_boletin
		WHERE email = $1
	`
	var sub domain.Subscriber
	err := r.db.QueryRow(ctx, query, email).Scan(
		&sub.ID,
		&sub.Email,
		&sub.Name,
		&sub.Status,
		&sub.Confirmed,
		&sub.ConfirmationToken,
		&sub.SourceIP,
		&sub.UserAgent,
		&sub.SubscribedAt,
		&sub.LastNotifiedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscriber: %w", err)
	}
	return &sub, nil
}

// Create inserts a new subscriber row.
func (r *Repository) Create(ctx context.Context, sub *domain.Subscriber) error {
	query := `
		INSERT INTO suscriptores_boletin
			(email, nombre, estado, confirmado, token_confirmacion, ip_suscripcion, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, fecha_suscripcion
	`
	err := r.db.QueryRow(ctx, query,
		sub.Email,
		sub.Name,
		sub.Status,
		sub.Confirmed,
		sub.ConfirmationToken,
		sub.SourceIP,
		sub.UserAgent,
	).Scan(&sub.ID, &sub.SubscribedAt)
	if err != nil {
		return fmt.Errorf("create subscriber: %w", err)
	}
	return nil
}

// Reactivate flips an inactive subscriber back to active and confirmed.
func (r *Repository) Reactivate(ctx context.Context, email string) error {
	query := `
		UPDATE suscriptores_boletin
		SET estado = $2, confirmado = TRUE, fecha_suscripcion = NOW()
		WHERE email = $1
	`
	result, err := r.db.Exec(ctx, query, email, domain.SubscriberActive)
	if err != nil {
		return fmt.Errorf("reactivate subscriber: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("reactivate subscriber: no row for %s", email)
	}
	return nil
}

// ListActive returns all active, confirmed subscribers, newest first.
func (r *Repository) ListActive(ctx context.Context) ([]domain.Subscriber, error) {
	query := `
		SELECT ` + subscriberColumns + `
		FROM suscriptores_boletin
		WHERE estado = $1 AND confirmado = TRUE
		ORDER BY fecha_suscripcion DESC
	`
	rows, err := r.db.Query(ctx, query, domain.SubscriberActive)
	if err != nil {
		return nil, fmt.Errorf("list active subscribers: %w", err)
	}
	defer rows.Close()

	subs := make([]domain.Subscriber, 0)
	for rows.Next() {
		var sub domain.Subscriber
		err := rows.Scan(
			&sub.ID,
			&sub.Email,
			&sub.Name,
			&sub.Status,
			&sub.Confirmed,
			&sub.ConfirmationToken,
			&sub.SourceIP,
			&sub.UserAgent,
			&sub.SubscribedAt,
			&sub.LastNotifiedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

// MarkNotified stamps the last-notified timestamp for a subscriber.
func (r *Repository) MarkNotified(ctx context.Context, email string) error {
	query := `
		UPDATE suscriptores_boletin
		SET ultima_notificacion = NOW()
		WHERE email = $1
	`
	if _, err := r.db.Exec(ctx, query, email); err != nil {
		return fmt.Errorf("mark subscriber notified: %w", err)
	}
	return nil
}
