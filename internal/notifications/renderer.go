package notifications

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Renderer renders email subjects and bodies from embedded templates.
// Rendering is pure: no I/O, same inputs always produce the same output.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer creates a new renderer and parses all templates.
func NewRenderer() (*Renderer, error) {
	funcMap := map[string]interface{}{
		"upper": upperCase,
		"title": titleCase,
	}

	html, err := htmltemplate.New("html").Funcs(funcMap).ParseFS(templatesFS, "templates/*_html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}

	text, err := texttemplate.New("text").Funcs(funcMap).ParseFS(templatesFS, "templates/*_text.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}

	return &Renderer{html: html, text: text}, nil
}

// RenderPublication renders the new-publication notification for one
// recipient. Returns subject, plain-text body and HTML body.
func (r *Renderer) RenderPublication(data PublicationEmail) (subject, text, html string, err error) {
	subject = fmt.Sprintf("%s Nueva %s: %s", data.Glyph, data.TypeLabel, data.Title)

	text, err = r.renderText("publication_text.tmpl", data)
	if err != nil {
		return "", "", "", err
	}
	html, err = r.renderHTML("publication_html.tmpl", data)
	if err != nil {
		return "", "", "", err
	}
	return subject, text, html, nil
}

// RenderWelcome renders the welcome email, with a distinct variant for
// reactivated subscriptions.
func (r *Renderer) RenderWelcome(data WelcomeEmail) (subject, text, html string, err error) {
	if data.Reactivation {
		subject = "🌿 ¡Tu suscripción ha sido reactivada!"
	} else {
		subject = "🌿 ¡Bienvenido al Boletín de FORAMA!"
	}

	text, err = r.renderText("welcome_text.tmpl", data)
	if err != nil {
		return "", "", "", err
	}
	html, err = r.renderHTML("welcome_html.tmpl", data)
	if err != nil {
		return "", "", "", err
	}
	return subject, text, html, nil
}

func (r *Renderer) renderText(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.text.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()) + "\n", nil
}

func (r *Renderer) renderHTML(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.html.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

// Template functions

var (
	upperCaser = cases.Upper(language.Spanish)
	titleCaser = cases.Title(language.Spanish)
)

func upperCase(s string) string { return upperCaser.String(s) }
func titleCase(s string) string { return titleCaser.String(s) }
