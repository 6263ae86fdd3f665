// Package postmark implements mailer.Sender for the Postmark email API,
// authenticated via the X-Postmark-Server-Token header. A 2xx response with
// ErrorCode 0 yields a sent Outcome whose message id is read from the
// MessageID field of the JSON body; anything else yields a failed Outcome.
package postmark
