package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forama/newsletter/internal/domain"
)

func strptr(s string) *string { return &s }

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestRenderer_RenderPublication_Subject(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	tests := []struct {
		name     string
		pubType  domain.PublicationType
		expected string
	}{
		{
			name:     "news",
			pubType:  domain.PublicationNews,
			expected: "📰 Nueva noticia: Reforestación en la cuenca del Tapajós",
		},
		{
			name:     "article",
			pubType:  domain.PublicationArticle,
			expected: "🔬 Nueva artículo científico: Reforestación en la cuenca del Tapajós",
		},
		{
			name:     "book",
			pubType:  domain.PublicationBook,
			expected: "📚 Nueva libro: Reforestación en la cuenca del Tapajós",
		},
		{
			name:     "unknown type falls back",
			pubType:  domain.PublicationType("podcast"),
			expected: "📄 Nueva publicación: Reforestación en la cuenca del Tapajós",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &domain.Publication{
				Title: "Reforestación en la cuenca del Tapajós",
				Slug:  "reforestacion-tapajos",
				Type:  tt.pubType,
			}
			data := NewPublicationEmail(pub, domain.Subscriber{Email: "ana@example.com"}, "https://forama.org")

			subject, _, _, err := r.RenderPublication(data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, subject)
		})
	}
}

func TestRenderer_RenderPublication_Bodies(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	pub := &domain.Publication{
		Title:        "Corredores biológicos del Xingú",
		Slug:         "corredores-xingu",
		Type:         domain.PublicationArticle,
		Summary:      strptr("Un estudio de conectividad de hábitats."),
		CoverImage:   strptr("https://cdn.forama.org/xingu.jpg"),
		CategoryName: strptr("Ecología"),
	}
	sub := domain.Subscriber{Email: "ana+boletin@example.com"}

	data := NewPublicationEmail(pub, sub, "https://forama.org")
	_, text, html, err := r.RenderPublication(data)
	require.NoError(t, err)

	assert.Contains(t, text, "Corredores biológicos del Xingú")
	assert.Contains(t, text, "Un estudio de conectividad de hábitats.")
	assert.Contains(t, text, "https://forama.org/revista/corredores-xingu")
	assert.Contains(t, text, "https://forama.org/cancelar-boletin?email=ana%2Bboletin%40example.com")

	assert.Contains(t, html, "Corredores biológicos del Xingú")
	assert.Contains(t, html, "https://cdn.forama.org/xingu.jpg")
	// Category badge is uppercased with Spanish rules
	assert.Contains(t, html, "ECOLOGÍA")
	assert.Contains(t, html, "Leer artículo científico completo")
}

func TestRenderer_RenderPublication_SummaryFallback(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	pub := &domain.Publication{
		Title: "Sin resumen",
		Slug:  "sin-resumen",
		Type:  domain.PublicationNews,
	}
	data := NewPublicationEmail(pub, domain.Subscriber{Email: "ana@example.com"}, "https://forama.org")

	_, text, html, err := r.RenderPublication(data)
	require.NoError(t, err)

	assert.Contains(t, text, "Lee el contenido completo para más detalles.")
	assert.Contains(t, html, "Lee el contenido completo para más detalles.")
	// No cover image and no category badge
	assert.NotContains(t, html, "<img")
	assert.NotContains(t, html, "border-radius: 9999px")
}

func TestRenderer_RenderWelcome_New(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	subject, text, html, err := r.RenderWelcome(WelcomeEmail{
		Name:           "Ana",
		UnsubscribeURL: "https://forama.org/cancelar-boletin?email=ana%40example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "🌿 ¡Bienvenido al Boletín de FORAMA!", subject)
	assert.Contains(t, text, "Gracias por unirte al Boletín de FORAMA")
	assert.Contains(t, text, "Ana")
	assert.Contains(t, html, "¡Bienvenido a bordo! 🚀")
	assert.Contains(t, html, "Artículos científicos de nuestra revista")
	assert.Contains(t, html, "¿Sabías que?")
}

func TestRenderer_RenderWelcome_Reactivation(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	subject, text, html, err := r.RenderWelcome(WelcomeEmail{
		Reactivation:   true,
		UnsubscribeURL: "https://forama.org/cancelar-boletin?email=ana%40example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "🌿 ¡Tu suscripción ha sido reactivada!", subject)
	assert.Contains(t, text, "ha sido reactivada")
	assert.Contains(t, html, "¡Bienvenido de vuelta! 🎉")
	// The feature bullet list only appears for brand-new subscriptions
	assert.NotContains(t, html, "Artículos científicos de nuestra revista")
}

func TestRenderer_Deterministic(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	pub := &domain.Publication{
		Title: "Misma entrada",
		Slug:  "misma-entrada",
		Type:  domain.PublicationBook,
	}
	data := NewPublicationEmail(pub, domain.Subscriber{Email: "ana@example.com"}, "https://forama.org")

	s1, t1, h1, err := r.RenderPublication(data)
	require.NoError(t, err)
	s2, t2, h2, err := r.RenderPublication(data)
	require.NoError(t, err)

	assert.Equal(t, s1, s2)
	assert.Equal(t, t1, t2)
	assert.Equal(t, h1, h2)
}

func TestUnsubscribeURL(t *testing.T) {
	url := UnsubscribeURL("https://forama.org", "ana+test@example.com")
	assert.Equal(t, "https://forama.org/cancelar-boletin?email=ana%2Btest%40example.com", url)
}
