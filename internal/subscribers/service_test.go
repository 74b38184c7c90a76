package subscribers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forama/newsletter/internal/domain"
)

// mockRepository implements Repository for testing.
type mockRepository struct {
	subscribers map[string]*domain.Subscriber

	created     []*domain.Subscriber
	reactivated []string
	marked      []string

	getErr        error
	createErr     error
	reactivateErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{subscribers: make(map[string]*domain.Subscriber)}
}

func (m *mockRepository) GetByEmail(_ context.Context, email string) (*domain.Subscriber, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.subscribers[email], nil
}

func (m *mockRepository) Create(_ context.Context, sub *domain.Subscriber) error {
	if m.createErr != nil {
		return m.createErr
	}
	sub.ID = int64(len(m.created) + 1)
	sub.SubscribedAt = time.Now()
	m.created = append(m.created, sub)
	m.subscribers[sub.Email] = sub
	return nil
}

func (m *mockRepository) Reactivate(_ context.Context, email string) error {
	if m.reactivateErr != nil {
		return m.reactivateErr
	}
	m.reactivated = append(m.reactivated, email)
	return nil
}

func (m *mockRepository) ListActive(_ context.Context) ([]domain.Subscriber, error) {
	return nil, nil
}

func (m *mockRepository) MarkNotified(_ context.Context, email string) error {
	m.marked = append(m.marked, email)
	return nil
}

// mockWelcomeSender implements WelcomeSender for testing.
type mockWelcomeSender struct {
	calls []welcomeCall
	err   error
}

type welcomeCall struct {
	email       string
	reactivated bool
}

func (m *mockWelcomeSender) SendWelcome(_ context.Context, email string, _ *string, reactivated bool, _ string) error {
	m.calls = append(m.calls, welcomeCall{email: email, reactivated: reactivated})
	return m.err
}

func TestService_Subscribe_NewEmail(t *testing.T) {
	repo := newMockRepository()
	welcome := &mockWelcomeSender{}
	svc := NewService(repo, welcome)

	name := "Ana"
	result, err := svc.Subscribe(context.Background(), SubscribeInput{
		Email:     "Ana@Example.COM",
		Name:      &name,
		SourceIP:  "203.0.113.7",
		UserAgent: "Mozilla/5.0",
		Origin:    "https://forama.org",
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeCreated, result.Outcome)
	assert.True(t, result.WelcomeEmailSent)

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, "ana@example.com", created.Email)
	assert.Equal(t, domain.SubscriberActive, created.Status)
	assert.True(t, created.Confirmed)
	assert.Len(t, created.ConfirmationToken, 64)
	assert.Equal(t, "203.0.113.7", created.SourceIP)

	require.Len(t, welcome.calls, 1)
	assert.Equal(t, "ana@example.com", welcome.calls[0].email)
	assert.False(t, welcome.calls[0].reactivated)
}

func TestService_Subscribe_ActiveRejected(t *testing.T) {
	repo := newMockRepository()
	repo.subscribers["ana@example.com"] = &domain.Subscriber{
		Email:  "ana@example.com",
		Status: domain.SubscriberActive,
	}
	welcome := &mockWelcomeSender{}
	svc := NewService(repo, welcome)

	_, err := svc.Subscribe(context.Background(), SubscribeInput{Email: "ana@example.com"})
	require.ErrorIs(t, err, ErrAlreadySubscribed)

	// Nothing written, nothing mailed
	assert.Empty(t, repo.created)
	assert.Empty(t, repo.reactivated)
	assert.Empty(t, welcome.calls)
}

func TestService_Subscribe_CancelledRejected(t *testing.T) {
	repo := newMockRepository()
	repo.subscribers["ana@example.com"] = &domain.Subscriber{
		Email:  "ana@example.com",
		Status: domain.SubscriberCancelled,
	}
	svc := NewService(repo, &mockWelcomeSender{})

	_, err := svc.Subscribe(context.Background(), SubscribeInput{Email: "ana@example.com"})
	require.ErrorIs(t, err, ErrSubscriptionCancelled)
	assert.Empty(t, repo.created)
	assert.Empty(t, repo.reactivated)
}

func TestService_Subscribe_InactiveReactivated(t *testing.T) {
	repo := newMockRepository()
	repo.subscribers["ana@example.com"] = &domain.Subscriber{
		Email:  "ana@example.com",
		Status: domain.SubscriberInactive,
	}
	welcome := &mockWelcomeSender{}
	svc := NewService(repo, welcome)

	result, err := svc.Subscribe(context.Background(), SubscribeInput{Email: "ana@example.com"})
	require.NoError(t, err)

	assert.Equal(t, OutcomeReactivated, result.Outcome)
	assert.Equal(t, []string{"ana@example.com"}, repo.reactivated)
	assert.Empty(t, repo.created)

	require.Len(t, welcome.calls, 1)
	assert.True(t, welcome.calls[0].reactivated)
}

func TestService_Subscribe_WelcomeFailureIsBestEffort(t *testing.T) {
	repo := newMockRepository()
	welcome := &mockWelcomeSender{err: errors.New("smtp down")}
	svc := NewService(repo, welcome)

	result, err := svc.Subscribe(context.Background(), SubscribeInput{Email: "ana@example.com"})
	require.NoError(t, err)

	// Subscription succeeded even though the welcome email did not
	assert.Equal(t, OutcomeCreated, result.Outcome)
	assert.False(t, result.WelcomeEmailSent)
	assert.Len(t, repo.created, 1)
}

func TestService_Subscribe_NilWelcomeSender(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)

	result, err := svc.Subscribe(context.Background(), SubscribeInput{Email: "ana@example.com"})
	require.NoError(t, err)
	assert.False(t, result.WelcomeEmailSent)
}

func TestService_Subscribe_LookupError(t *testing.T) {
	repo := newMockRepository()
	repo.getErr = errors.New("connection lost")
	svc := NewService(repo, nil)

	_, err := svc.Subscribe(context.Background(), SubscribeInput{Email: "ana@example.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadySubscribed)
	assert.NotErrorIs(t, err, ErrSubscriptionCancelled)
}
