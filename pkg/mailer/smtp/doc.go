// Package smtp implements mailer.Sender over a plain SMTP backend. Messages
// are built as multipart/alternative (text then html), wrapped in
// multipart/mixed when attachments are present. STARTTLS is negotiated when
// the server offers it and PLAIN authentication is used when credentials are
// configured. Delivery failures become failed Outcomes, matching the HTTP
// adapters.
package smtp
