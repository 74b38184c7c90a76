// Package subscribers manages the newsletter subscription lifecycle.
package subscribers

import (
	"context"

	"github.com/forama/newsletter/internal/domain"
)

// Repository defines the interface for subscriber data access. Every mutation
// is a single statement, so no partial writes are possible.
type Repository interface {
	// GetByEmail returns the subscriber for a lowercased email, or nil when
	// the email is unknown.
	GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error)

	// Create inserts a new subscriber row and fills ID and SubscribedAt.
	Create(ctx context.Context, sub *domain.Subscriber) error

	// Reactivate flips an inactive subscriber back to active and confirmed,
	// refreshing the subscription timestamp.
	Reactivate(ctx context.Context, email string) error

	// ListActive returns every active and confirmed subscriber ordered by
	// subscription time descending.
	ListActive(ctx context.Context) ([]domain.Subscriber, error)

	// MarkNotified stamps the last-notified timestamp for a subscriber.
	MarkNotified(ctx context.Context, email string) error
}
