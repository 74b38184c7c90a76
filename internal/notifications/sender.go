// Package notifications renders and dispatches newsletter emails.
package notifications

import "context"

// Message is one outbound transactional email with both plain-text and HTML
// bodies. Headers carry the one-click-unsubscribe and entity-reference
// headers expected by the transport.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
	Headers map[string]string
}

// Sender delivers a single message. A returned error applies to that message
// only; the dispatcher never aborts a run on a send failure.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
