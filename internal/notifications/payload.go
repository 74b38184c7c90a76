package notifications

import (
	"net/url"

	"github.com/forama/newsletter/internal/domain"
)

// summaryFallback is shown when a publication has no summary.
const summaryFallback = "Lee el contenido completo para más detalles."

// PublicationEmail is the data a publication notification is rendered from.
// Pure data; same values always render to the same output.
type PublicationEmail struct {
	Title          string
	Summary        string
	CoverImage     string
	CategoryName   string
	TypeLabel      string
	Glyph          string
	URL            string
	RecipientName  string
	RecipientEmail string
	UnsubscribeURL string
}

// NewPublicationEmail builds the render data for one recipient. URLs are
// anchored at the given origin.
func NewPublicationEmail(pub *domain.Publication, sub domain.Subscriber, origin string) PublicationEmail {
	data := PublicationEmail{
		Title:          pub.Title,
		Summary:        summaryFallback,
		TypeLabel:      pub.Type.Label(),
		Glyph:          pub.Type.Glyph(),
		URL:            origin + pub.Type.PagePath(pub.Slug),
		RecipientEmail: sub.Email,
		UnsubscribeURL: UnsubscribeURL(origin, sub.Email),
	}
	if pub.Summary != nil && *pub.Summary != "" {
		data.Summary = *pub.Summary
	}
	if pub.CoverImage != nil {
		data.CoverImage = *pub.CoverImage
	}
	if pub.CategoryName != nil {
		data.CategoryName = *pub.CategoryName
	}
	if sub.Name != nil {
		data.RecipientName = *sub.Name
	}
	return data
}

// WelcomeEmail is the data a welcome email is rendered from.
type WelcomeEmail struct {
	Name           string
	Reactivation   bool
	UnsubscribeURL string
}

// UnsubscribeURL builds the cancellation link for a recipient, with the email
// URL-encoded as a query parameter.
func UnsubscribeURL(origin, email string) string {
	return origin + "/cancelar-boletin?email=" + url.QueryEscape(email)
}
