package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// WelcomeMailer sends the post-subscription welcome email.
type WelcomeMailer struct {
	renderer *Renderer
	sender   Sender
	from     string
}

// NewWelcomeMailer creates a welcome mailer. from is the sender identity for
// welcome emails, distinct from the broadcast identity.
func NewWelcomeMailer(renderer *Renderer, sender Sender, from string) *WelcomeMailer {
	return &WelcomeMailer{
		renderer: renderer,
		sender:   sender,
		from:     from,
	}
}

// SendWelcome renders and sends the welcome email for a new or reactivated
// subscription.
func (m *WelcomeMailer) SendWelcome(ctx context.Context, email string, name *string, reactivated bool, origin string) error {
	data := WelcomeEmail{
		Reactivation:   reactivated,
		UnsubscribeURL: UnsubscribeURL(origin, email),
	}
	if name != nil {
		data.Name = *name
	}

	subject, text, html, err := m.renderer.RenderWelcome(data)
	if err != nil {
		return fmt.Errorf("render welcome email: %w", err)
	}

	return m.sender.Send(ctx, Message{
		From:    m.from,
		To:      email,
		Subject: subject,
		Text:    text,
		HTML:    html,
		Headers: map[string]string{
			"X-Entity-Ref-ID":       "newsletter-" + uuid.NewString(),
			"List-Unsubscribe":      "<" + data.UnsubscribeURL + ">",
			"List-Unsubscribe-Post": "List-Unsubscribe=One-Click",
		},
	})
}
