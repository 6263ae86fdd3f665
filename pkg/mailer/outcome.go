package mailer

import "time"

// Status is the terminal result of a single provider attempt.
type Status string

const (
	// StatusSent indicates the provider accepted the message for delivery.
	StatusSent Status = "sent"
	// StatusFailed indicates the provider rejected the message or the
	// transport failed.
	StatusFailed Status = "failed"
)

// Outcome is the normalized result of one provider send attempt.
// Ordinary send failures (HTTP 4xx/5xx, transport errors) are reported as
// failed Outcomes, not Go errors, so callers can drive retry decisions from
// queue state instead of error handling.
type Outcome struct {
	ID                string    // Provider-assigned or generated attempt id
	Provider          string    // Name of the adapter that produced the outcome
	Status            Status    // sent or failed
	ProviderMessageID string    // Message id assigned by the remote API, if any
	Err               string    // Remote error text when Status is failed
	Timestamp         time.Time // When the outcome was observed
}

// Sent builds a successful Outcome for the given provider.
func Sent(provider, messageID string) *Outcome {
	return &Outcome{
		ID:                messageID,
		Provider:          provider,
		Status:            StatusSent,
		ProviderMessageID: messageID,
		Timestamp:         time.Now(),
	}
}

// Failed builds a failed Outcome carrying the remote error text.
func Failed(provider, errText string) *Outcome {
	return &Outcome{
		Provider:  provider,
		Status:    StatusFailed,
		Err:       errText,
		Timestamp: time.Now(),
	}
}
