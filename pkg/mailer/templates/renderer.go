package templates

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/autopilotstudio/mailroom/pkg/sanitizer"
)

//go:embed layout.html
var layoutHTML string

// Renderer converts a typed template payload into a rendered email. It is a
// pure function over (Type, Data, Branding): identical inputs always produce
// byte-identical output. Rendering performs no I/O and never reads the clock;
// the footer year comes from Branding.
type Renderer struct {
	branding Branding
	md       goldmark.Markdown
	layout   *template.Template
}

// New creates a Renderer with the shared layout chrome and the given branding.
func New(branding Branding) (*Renderer, error) {
	layout, err := template.New("layout").Parse(layoutHTML)
	if err != nil {
		return nil, fmt.Errorf("%w: layout: %v", ErrRenderFailed, err)
	}

	return &Renderer{
		branding: branding,
		layout:   layout,
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				newButtonExtension(),
			),
		),
	}, nil
}

// Render produces the subject, HTML body, and independent plaintext body for
// the given template type.
//
// It fails with ErrUnsupportedTemplate when typ has no known renderer, and
// with ErrInvalidTemplateData when data is nil, belongs to a different
// template type, or is missing a required field.
func (r *Renderer) Render(typ Type, data Data) (*Rendered, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTemplate, typ)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: no data for %s", ErrInvalidTemplateData, typ)
	}
	if data.TemplateType() != typ {
		return nil, fmt.Errorf("%w: got %s data for %s template",
			ErrInvalidTemplateData, data.TemplateType(), typ)
	}
	if err := data.validate(); err != nil {
		return nil, err
	}

	var content bytes.Buffer
	if err := r.md.Convert([]byte(data.markdown(r.branding)), &content); err != nil {
		return nil, fmt.Errorf("%w: markdown: %v", ErrRenderFailed, err)
	}
	// Template payloads may carry caller-supplied strings (notification
	// messages, client names). The markdown fragment is sanitized before
	// layout injection.
	sanitized := sanitizer.SanitizeEmailHTML(content.Bytes())

	subject := data.subject(r.branding)

	var html bytes.Buffer
	err := r.layout.Execute(&html, map[string]any{
		"Subject":  subject,
		"Branding": r.branding,
		"Content":  template.HTML(sanitized), //nolint:gosec // sanitized above
	})
	if err != nil {
		return nil, fmt.Errorf("%w: layout: %v", ErrRenderFailed, err)
	}

	return &Rendered{
		Subject: subject,
		HTML:    html.String(),
		Text:    data.plaintext(r.branding),
	}, nil
}
