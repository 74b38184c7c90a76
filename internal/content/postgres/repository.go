// Package postgres provides the PostgreSQL implementation of content.Repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/forama/newsletter/internal/content"
	"github.com/forama/newsletter/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements content.Repository using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetPublication fetches one publication joined with its category.
func (r *Repository) GetPublication(ctx context.Context, id int64) (*domain.Publication, error) {
	query := `
		SELECT p.id, p.slug, p.titulo, p.resumen, p.imagen_portada, p.tipo,
		       p.fecha_publicacion, c.nombre AS categoria_nombre
		FROM publicaciones p
		LEFT JOIN categorias c ON p.categoria_id = c.id
		WHERE p.id = $1
		LIMIT 1
	`
	var pub domain.Publication
	err := r.db.QueryRow(ctx, query, id).Scan(
		&pub.ID,
		&pub.Slug,
		&pub.Title,
		&pub.Summary,
		&pub.CoverImage,
		&pub.Type,
		&pub.PublishedAt,
		&pub.CategoryName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, content.ErrPublicationNotFound
		}
		return nil, fmt.Errorf("get publication: %w", err)
	}
	return &pub, nil
}
