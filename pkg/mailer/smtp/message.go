package smtp

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"strings"
	"time"

	"github.com/autopilotstudio/mailroom/pkg/mailer"
)

// buildMessage renders the full RFC 5322 message: headers plus a
// multipart/alternative body (text then html), wrapped in multipart/mixed
// when attachments are present. Attachment content is base64-encoded.
func buildMessage(from string, email *mailer.Email, messageID string, now time.Time) ([]byte, error) {
	var buf bytes.Buffer

	writeHeader := func(name, value string) {
		fmt.Fprintf(&buf, "%s: %s\r\n", name, value)
	}

	writeHeader("From", from)
	writeHeader("To", strings.Join(email.To, ", "))
	if len(email.CC) > 0 {
		writeHeader("Cc", strings.Join(email.CC, ", "))
	}
	if email.ReplyTo != "" {
		writeHeader("Reply-To", email.ReplyTo)
	}
	writeHeader("Subject", mime.QEncoding.Encode("utf-8", email.Subject))
	writeHeader("Date", now.UTC().Format(time.RFC1123Z))
	writeHeader("Message-ID", fmt.Sprintf("<%s@mailroom>", messageID))
	writeHeader("MIME-Version", "1.0")
	for name, value := range email.Headers {
		writeHeader(name, value)
	}

	mixed := multipart.NewWriter(&buf)
	if len(email.Attachments) > 0 {
		writeHeader("Content-Type", `multipart/mixed; boundary="`+mixed.Boundary()+`"`)
		buf.WriteString("\r\n")

		if err := writeAlternativePart(mixed, email); err != nil {
			return nil, err
		}

		for _, a := range email.Attachments {
			if err := writeAttachment(mixed, a); err != nil {
				return nil, err
			}
		}
		if err := mixed.Close(); err != nil {
			return nil, fmt.Errorf("smtp: close mixed part: %w", err)
		}
		return buf.Bytes(), nil
	}

	alt := multipart.NewWriter(&buf)
	writeHeader("Content-Type", `multipart/alternative; boundary="`+alt.Boundary()+`"`)
	buf.WriteString("\r\n")
	if err := writeBodies(alt, email); err != nil {
		return nil, err
	}
	if err := alt.Close(); err != nil {
		return nil, fmt.Errorf("smtp: close alternative part: %w", err)
	}
	return buf.Bytes(), nil
}

func writeAlternativePart(mixed *multipart.Writer, email *mailer.Email) error {
	var inner bytes.Buffer
	alt := multipart.NewWriter(&inner)
	if err := writeBodies(alt, email); err != nil {
		return err
	}
	if err := alt.Close(); err != nil {
		return fmt.Errorf("smtp: close alternative part: %w", err)
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Type", `multipart/alternative; boundary="`+alt.Boundary()+`"`)
	part, err := mixed.CreatePart(header)
	if err != nil {
		return fmt.Errorf("smtp: create alternative part: %w", err)
	}
	if _, err := part.Write(inner.Bytes()); err != nil {
		return fmt.Errorf("smtp: write alternative part: %w", err)
	}
	return nil
}

// writeBodies emits text/plain before text/html so clients prefer HTML.
func writeBodies(alt *multipart.Writer, email *mailer.Email) error {
	if email.Text != "" {
		if err := writeBody(alt, "text/plain", email.Text); err != nil {
			return err
		}
	}
	return writeBody(alt, "text/html", email.HTML)
}

func writeBody(w *multipart.Writer, contentType, body string) error {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType+`; charset="utf-8"`)
	header.Set("Content-Transfer-Encoding", "8bit")

	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("smtp: create %s part: %w", contentType, err)
	}
	if _, err := part.Write([]byte(body)); err != nil {
		return fmt.Errorf("smtp: write %s part: %w", contentType, err)
	}
	return nil
}

func writeAttachment(w *multipart.Writer, a mailer.Attachment) error {
	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)
	header.Set("Content-Transfer-Encoding", "base64")
	header.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, a.Filename))
	if a.ContentID != "" {
		header.Set("Content-ID", "<"+a.ContentID+">")
		header.Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, a.Filename))
	}

	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("smtp: create attachment part: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(a.Content)
	// Fold base64 output to 76-character lines per RFC 2045.
	for len(encoded) > 0 {
		n := min(76, len(encoded))
		if _, err := part.Write([]byte(encoded[:n] + "\r\n")); err != nil {
			return fmt.Errorf("smtp: write attachment: %w", err)
		}
		encoded = encoded[n:]
	}
	return nil
}
