// Package mailer defines the core email data model and the provider contract
// shared by all adapters.
//
// The package consists of three main components:
//
//   - Email/Outcome: the generic send request and the normalized per-attempt result
//   - Sender: interface that email providers implement
//   - Failover: router wrapping a primary Sender with an optional fallback
//
// # Outcomes, not exceptions
//
// Adapters never return a Go error for ordinary send failures. An HTTP 4xx/5xx
// or a transport fault becomes a failed Outcome carrying the remote error
// text; only unexpected local faults (for example an unserializable payload)
// surface as errors. This keeps retry policy in the delivery queue, which
// reacts to failed Outcomes, instead of scattering it across error handling.
//
// # Providers
//
// Concrete adapters live in subpackages:
//
//   - sendgrid: SendGrid v3 Mail Send API
//   - postmark: Postmark email API
//   - smtp:     plain SMTP with STARTTLS
//   - resend:   Resend API via the official SDK
//
// LogSender in this package is a no-network adapter for local development; it
// logs the message and always reports success.
//
// # Failover
//
// Failover calls the primary once and, when the primary fails and a fallback
// is configured, calls the fallback exactly once with the same email:
//
//	router := mailer.NewFailover(primary, mailer.NewLogSender(nil))
//	out, err := router.Send(ctx, email)
//
// Failover never retries; temporal retry belongs to pkg/delivery.
//
// # Capability interfaces
//
// Adapters optionally implement Verifier (credential check against the remote
// API) and StatsReporter (per-adapter sent/failed counters). Callers discover
// these with type assertions; pkg/delivery fans verification out over every
// configured adapter.
package mailer
