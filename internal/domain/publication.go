package domain

import "time"

// PublicationType is the `tipo` column of publicaciones.
type PublicationType string

// Publication types.
const (
	PublicationNews    PublicationType = "noticia"
	PublicationArticle PublicationType = "articulo"
	PublicationBook    PublicationType = "libro"
)

// Publication is a published content item, read-only from this service.
// CategoryName is denormalized from the categorias join.
type Publication struct {
	ID           int64
	Slug         string
	Title        string
	Summary      *string
	CoverImage   *string
	Type         PublicationType
	CategoryName *string
	PublishedAt  time.Time
}

// Label returns the human-readable Spanish label used in notification emails.
func (t PublicationType) Label() string {
	switch t {
	case PublicationNews:
		return "noticia"
	case PublicationArticle:
		return "artículo científico"
	case PublicationBook:
		return "libro"
	default:
		return "publicación"
	}
}

// Glyph returns the emoji shown next to the publication type.
func (t PublicationType) Glyph() string {
	switch t {
	case PublicationNews:
		return "📰"
	case PublicationArticle:
		return "🔬"
	case PublicationBook:
		return "📚"
	default:
		return "📄"
	}
}

// PagePath returns the site-relative path where the publication is served.
func (t PublicationType) PagePath(slug string) string {
	switch t {
	case PublicationArticle:
		return "/revista/" + slug
	case PublicationBook:
		return "/publicaciones/" + slug
	default:
		return "/noticias/" + slug
	}
}
