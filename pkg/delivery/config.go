package delivery

import "time"

// Config holds delivery queue settings.
type Config struct {
	// MaxAttempts is the total number of delivery attempts per item,
	// including the first one.
	MaxAttempts int `env:"DELIVERY_MAX_ATTEMPTS" envDefault:"3"`
	// Retention is how long terminally failed items are kept before the
	// janitor purges them.
	Retention time.Duration `env:"DELIVERY_RETENTION" envDefault:"168h"`
	// JanitorSchedule is the cron expression for the purge job.
	JanitorSchedule string `env:"DELIVERY_JANITOR_SCHEDULE" envDefault:"@hourly"`
}

// DefaultConfig returns the settings used when no configuration is
// supplied.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:     3,
		Retention:       7 * 24 * time.Hour,
		JanitorSchedule: "@hourly",
	}
}
