package mailer

import "context"

// Sender defines the minimal interface that email providers must implement.
// It accepts a fully-prepared Email and handles the actual delivery.
type Sender interface {
	// Send delivers an email message and reports the normalized Outcome.
	// Ordinary remote failures must be returned as a failed Outcome with a
	// nil error; a non-nil error signals an unexpected local fault (for
	// example a payload that cannot be serialized).
	Send(ctx context.Context, email *Email) (*Outcome, error)
}

// Verifier is an optional capability: adapters that can check their
// credentials against the remote API implement it.
type Verifier interface {
	VerifyAPIKey(ctx context.Context) error
}

// Stats holds per-adapter delivery counters.
type Stats struct {
	Sent   uint64
	Failed uint64
}

// StatsReporter is an optional capability: adapters that track delivery
// counters implement it.
type StatsReporter interface {
	Stats() Stats
}
