// Package sanitizer centralizes the HTML sanitization policies applied to
// outgoing email content.
package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailPolicy  *bluemonday.Policy
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// StrictPolicy strips ALL HTML, returns plain text.
		strictPolicy = bluemonday.StrictPolicy()

		// Email bodies allow the markup markdown rendering produces:
		// headings, paragraphs, emphasis, lists, tables, links, code.
		// The class attribute survives on anchors and code spans so the
		// layout CSS can style call-to-action buttons and badges.
		emailPolicy = bluemonday.UGCPolicy()
		emailPolicy.AllowAttrs("class").OnElements("a", "code")
	})
}

// SanitizeEmailHTML strips dangerous markup from a rendered email body
// fragment: scripts, event handlers, javascript: URLs, and any element
// outside the markup email templates produce.
func SanitizeEmailHTML(fragment []byte) []byte {
	initPolicies()
	return emailPolicy.SanitizeBytes(fragment)
}

// StripHTML removes all markup entirely, returning plain text. Use it on
// caller-supplied strings destined for plaintext bodies or subjects.
func StripHTML(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}
