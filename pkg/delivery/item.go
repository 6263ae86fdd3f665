package delivery

import (
	"time"

	"github.com/autopilotstudio/mailroom/pkg/mailer"
)

// Status is the lifecycle state of a queued delivery.
type Status string

const (
	// StatusPending marks an item awaiting its next delivery attempt.
	StatusPending Status = "pending"
	// StatusSent marks an item that was accepted by a provider.
	StatusSent Status = "sent"
	// StatusFailed marks an item that exhausted all delivery attempts.
	StatusFailed Status = "failed"
)

// Item is one entry in the delivery queue. Items are passed by value so
// every read observes a consistent snapshot.
type Item struct {
	ID          string        `json:"id"`
	Email       *mailer.Email `json:"email"`
	Status      Status        `json:"status"`
	Attempts    int           `json:"attempts"`
	MaxAttempts int           `json:"max_attempts"`
	LastError   string        `json:"last_error,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	ScheduledAt *time.Time    `json:"scheduled_at,omitempty"`
	SentAt      *time.Time    `json:"sent_at,omitempty"`
}

// Terminal reports whether the item reached a state that will never
// change without an explicit Retry call.
func (i Item) Terminal() bool {
	return i.Status == StatusFailed
}
