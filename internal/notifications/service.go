package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/forama/newsletter/internal/domain"
	"github.com/forama/newsletter/internal/pkg/ctxlog"
)

// PublicationSource resolves a publication for broadcast.
type PublicationSource interface {
	GetPublication(ctx context.Context, id int64) (*domain.Publication, error)
}

// SubscriberSource lists the recipients of a broadcast.
type SubscriberSource interface {
	ListActive(ctx context.Context) ([]domain.Subscriber, error)
}

// Stats is the delivery summary returned to the caller of a broadcast.
type Stats struct {
	Total  int `json:"total"`
	Sent   int `json:"enviados"`
	Failed int `json:"fallidos"`
}

// Service orchestrates a publication broadcast: resolve the publication, list
// recipients, dispatch in batches and record the run for audit.
type Service struct {
	publications PublicationSource
	subscribers  SubscriberSource
	dispatcher   *Dispatcher
	renderer     *Renderer
	repo         Repository
	from         string
}

// NewService creates a notifications service. from is the sender identity for
// broadcast emails.
func NewService(publications PublicationSource, subscribers SubscriberSource, dispatcher *Dispatcher, renderer *Renderer, repo Repository, from string) *Service {
	return &Service{
		publications: publications,
		subscribers:  subscribers,
		dispatcher:   dispatcher,
		renderer:     renderer,
		repo:         repo,
		from:         from,
	}
}

// NotifyPublication broadcasts a publication to every active subscriber and
// records the run. A run with zero recipients returns zero stats without
// touching the audit log.
func (s *Service) NotifyPublication(ctx context.Context, publicationID int64, origin string) (*Stats, error) {
	logger := ctxlog.FromContext(ctx)

	pub, err := s.publications.GetPublication(ctx, publicationID)
	if err != nil {
		return nil, err
	}

	subs, err := s.subscribers.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active subscribers: %w", err)
	}

	if len(subs) == 0 {
		logger.Info("no active subscribers, nothing to send",
			"publication_id", publicationID,
		)
		return &Stats{}, nil
	}

	logger.Info("starting publication broadcast",
		"publication_id", publicationID,
		"title", pub.Title,
		"recipients", len(subs),
	)

	build := func(sub domain.Subscriber) (Message, error) {
		data := NewPublicationEmail(pub, sub, origin)
		subject, text, html, err := s.renderer.RenderPublication(data)
		if err != nil {
			return Message{}, err
		}
		return Message{
			From:    s.from,
			To:      sub.Email,
			Subject: subject,
			Text:    text,
			HTML:    html,
			Headers: map[string]string{
				"X-Entity-Ref-ID":       fmt.Sprintf("pub-%d-%s", pub.ID, uuid.NewString()),
				"List-Unsubscribe":      "<" + data.UnsubscribeURL + ">",
				"List-Unsubscribe-Post": "List-Unsubscribe=One-Click",
			},
		}, nil
	}

	result, err := s.dispatcher.Dispatch(ctx, subs, build)
	if err != nil {
		return nil, fmt.Errorf("dispatch notifications: %w", err)
	}

	run := &Run{
		PublicationID:   pub.ID,
		Type:            RunTypeNewPublication,
		TotalRecipients: result.Total,
		TotalSucceeded:  result.Sent,
		TotalFailed:     result.Failed,
		Details:         RunDetails{Errors: sampleErrors(result.Errors)},
	}
	if err := s.repo.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("record notification run: %w", err)
	}

	logger.Info("publication broadcast finished",
		"publication_id", publicationID,
		"total", result.Total,
		"sent", result.Sent,
		"failed", result.Failed,
	)

	return &Stats{
		Total:  result.Total,
		Sent:   result.Sent,
		Failed: result.Failed,
	}, nil
}

func sampleErrors(errs []string) []string {
	if len(errs) <= maxErrorSample {
		return errs
	}
	return errs[:maxErrorSample]
}
