package subscribers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/forama/newsletter/internal/domain"
)

// Outcome describes how a subscribe request was fulfilled.
type Outcome string

// Subscribe outcomes.
const (
	OutcomeCreated     Outcome = "created"
	OutcomeReactivated Outcome = "reactivated"
)

// WelcomeSender delivers the welcome email after a committed subscription
// write. Failures are best-effort: the subscription result never depends on
// the email outcome.
type WelcomeSender interface {
	SendWelcome(ctx context.Context, email string, name *string, reactivated bool, origin string) error
}

// SubscribeInput carries a subscribe request plus the audit context captured
// from the HTTP request.
type SubscribeInput struct {
	Email     string
	Name      *string
	SourceIP  string
	UserAgent string
	Origin    string
}

// SubscribeResult is the outcome of a subscribe request. WelcomeEmailSent is
// informational only; the subscription write is authoritative.
type SubscribeResult struct {
	Outcome          Outcome
	WelcomeEmailSent bool
}

// Service provides subscription business logic.
type Service struct {
	repo    Repository
	welcome WelcomeSender
}

// NewService creates a new subscribers service. welcome may be nil when email
// sending is disabled.
func NewService(repo Repository, welcome WelcomeSender) *Service {
	return &Service{
		repo:    repo,
		welcome: welcome,
	}
}

// Subscribe applies the subscription state machine for one email. The email
// must already be validated; it is lowercased here before every lookup and
// write.
func (s *Service) Subscribe(ctx context.Context, input SubscribeInput) (*SubscribeResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup subscriber: %w", err)
	}

	var outcome Outcome
	switch Decide(existing) {
	case ActionRejectCancelled:
		return nil, ErrSubscriptionCancelled

	case ActionRejectActive:
		return nil, ErrAlreadySubscribed

	case ActionReactivate:
		if err := s.repo.Reactivate(ctx, email); err != nil {
			return nil, fmt.Errorf("reactivate subscriber: %w", err)
		}
		outcome = OutcomeReactivated

	case ActionCreate:
		token, err := newConfirmationToken()
		if err != nil {
			return nil, fmt.Errorf("generate confirmation token: %w", err)
		}
		sub := &domain.Subscriber{
			Email:             email,
			Name:              input.Name,
			Status:            domain.SubscriberActive,
			Confirmed:         true,
			ConfirmationToken: token,
			SourceIP:          input.SourceIP,
			UserAgent:         input.UserAgent,
		}
		if err := s.repo.Create(ctx, sub); err != nil {
			return nil, fmt.Errorf("create subscriber: %w", err)
		}
		outcome = OutcomeCreated
	}

	result := &SubscribeResult{Outcome: outcome}

	if s.welcome != nil {
		reactivated := outcome == OutcomeReactivated
		if err := s.welcome.SendWelcome(ctx, email, input.Name, reactivated, input.Origin); err != nil {
			slog.Error("failed to send welcome email",
				"email", email,
				"reactivated", reactivated,
				"error", err,
			)
		} else {
			result.WelcomeEmailSent = true
		}
	}

	return result, nil
}

// newConfirmationToken returns 32 random bytes hex-encoded. The token is
// stored for a future confirmation flow; no endpoint exchanges it yet.
func newConfirmationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
