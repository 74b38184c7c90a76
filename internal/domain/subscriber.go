// Package domain contains core entities shared across modules.
package domain

import "time"

// SubscriberStatus is the lifecycle state of a newsletter subscriber.
// Values match the `estado` column of suscriptores_boletin.
type SubscriberStatus string

// Subscriber statuses.
const (
	SubscriberActive    SubscriberStatus = "activo"
	SubscriberInactive  SubscriberStatus = "inactivo"
	SubscriberCancelled SubscriberStatus = "cancelado"
)

// Subscriber is a newsletter subscriber row.
type Subscriber struct {
	ID                int64
	Email             string
	Name              *string
	Status            SubscriberStatus
	Confirmed         bool
	ConfirmationToken string
	SourceIP          string
	UserAgent         string
	SubscribedAt      time.Time
	LastNotifiedAt    *time.Time
}

// Eligible reports whether the subscriber may receive batch notifications.
func (s *Subscriber) Eligible() bool {
	return s.Status == SubscriberActive && s.Confirmed
}
