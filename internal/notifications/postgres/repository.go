// Package postgres provides the PostgreSQL implementation of notifications.Repository.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/forama/newsletter/internal/notifications"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements notifications.Repository using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateRun inserts an audit row for a completed dispatch.
func (r *Repository) CreateRun(ctx context.Context, run *notifications.Run) error {
	details, err := json.Marshal(run.Details)
	if err != nil {
		return fmt.Errorf("marshal run details: %w", err)
	}

	query := `
		INSERT INTO notificaciones_enviadas
			(publicacion_id, tipo_notificacion, total_enviados, total_exitosos, total_fallidos, detalles)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, fecha_envio
	`
	err = r.db.QueryRow(ctx, query,
		run.PublicationID,
		run.Type,
		run.TotalRecipients,
		run.TotalSucceeded,
		run.TotalFailed,
		details,
	).Scan(&run.ID, &run.SentAt)
	if err != nil {
		return fmt.Errorf("create notification run: %w", err)
	}
	return nil
}
