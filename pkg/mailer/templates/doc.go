// Package templates renders transactional emails from typed payloads.
//
// Each template type has exactly one Data variant (Invoice, Welcome,
// TaskAssigned, ...) carrying its required fields, so wiring the wrong data
// shape to a template is a compile-time error and missing required fields are
// reported as ErrInvalidTemplateData before any provider is contacted.
//
// # Rendering pipeline
//
// A variant builds a markdown body from small composable primitives (button,
// badge, table, list, divider). The body is converted with goldmark (GFM
// tables plus a custom button extension), sanitized with bluemonday, and
// wrapped in the shared layout chrome (header, card, footer). The plaintext
// body is generated independently from the same payload rather than derived
// from the HTML, and carries the same semantic facts.
//
// Rendering is pure and deterministic: no I/O, no clock access. Footer year
// and company identity are injected via Branding.
//
// # Usage
//
//	r, err := templates.New(templates.Branding{
//		CompanyName: "Acme",
//		BaseURL:     "https://app.acme.dev",
//		FooterYear:  2026,
//	})
//	if err != nil { ... }
//
//	out, err := r.Render(templates.TypeInvoice, templates.Invoice{
//		InvoiceNumber: "INV-42",
//		Amount:        "1200",
//		Currency:      "$",
//		InvoiceLink:   "https://app.acme.dev/invoices/42",
//	})
package templates
