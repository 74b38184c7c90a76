package subscribers

import "github.com/forama/newsletter/internal/domain"

// Action is the outcome selected for a subscribe request.
type Action int

// Subscribe actions.
const (
	// ActionCreate inserts a new active, confirmed subscriber.
	ActionCreate Action = iota
	// ActionReactivate flips an inactive subscriber back to active.
	ActionReactivate
	// ActionRejectActive rejects a duplicate of an active subscription.
	ActionRejectActive
	// ActionRejectCancelled rejects a cancelled email. Cancellation is a
	// one-way transition through the subscribe path; only a future controlled
	// resubscription flow may lift it.
	ActionRejectCancelled
)

// Decide maps the existing subscriber record (nil when the email is unknown)
// to the action the subscribe path must take. Pure; persistence happens in
// Service.
func Decide(existing *domain.Subscriber) Action {
	if existing == nil {
		return ActionCreate
	}
	switch existing.Status {
	case domain.SubscriberCancelled:
		return ActionRejectCancelled
	case domain.SubscriberActive:
		return ActionRejectActive
	default:
		return ActionReactivate
	}
}
