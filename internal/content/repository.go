// Package content provides read-only access to the site's publication catalog.
// Publications and categories are owned by the content site; this service only
// reads them to build notification emails.
package content

import (
	"context"
	"errors"

	"github.com/forama/newsletter/internal/domain"
)

// ErrPublicationNotFound is returned when a publication id does not resolve.
var ErrPublicationNotFound = errors.New("publication not found")

// Repository defines the interface for publication lookup.
type Repository interface {
	// GetPublication fetches one publication with its denormalized category name.
	GetPublication(ctx context.Context, id int64) (*domain.Publication, error)
}
