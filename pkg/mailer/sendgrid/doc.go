// Package sendgrid implements mailer.Sender for the SendGrid v3 Mail Send
// API. An accepted response (HTTP 202) yields a sent Outcome whose message id
// is read from the X-Message-Id response header; any other response or a
// transport error yields a failed Outcome carrying the remote error text.
package sendgrid
