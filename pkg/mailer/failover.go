package mailer

import (
	"context"
	"log/slog"
)

// Failover wraps a primary Sender with an optional fallback. The primary is
// invoked exactly once per Send; if it reports a failed Outcome or returns an
// error and a fallback is configured, the fallback is invoked exactly once
// with the same email and its result becomes the router's result.
//
// Failover performs no retries of its own. Retry is temporal redundancy and
// belongs to the delivery queue; failover is spatial redundancy only.
type Failover struct {
	primary  Sender
	fallback Sender
	log      *slog.Logger
}

// FailoverOption configures a Failover router.
type FailoverOption func(*Failover)

// WithFailoverLogger sets the logger used to report primary failures.
func WithFailoverLogger(log *slog.Logger) FailoverOption {
	return func(f *Failover) {
		if log != nil {
			f.log = log
		}
	}
}

// NewFailover creates a failover router. fallback may be nil, in which case
// the primary's outcome (or error) is returned as-is.
func NewFailover(primary, fallback Sender, opts ...FailoverOption) *Failover {
	f := &Failover{
		primary:  primary,
		fallback: fallback,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Send implements Sender.
func (f *Failover) Send(ctx context.Context, email *Email) (*Outcome, error) {
	out, err := f.primary.Send(ctx, email)
	if err == nil && out != nil && out.Status == StatusSent {
		return out, nil
	}

	if f.fallback == nil {
		return out, err
	}

	attrs := []any{slog.String("subject", email.Subject)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	} else if out != nil {
		attrs = append(attrs,
			slog.String("provider", out.Provider),
			slog.String("error", out.Err))
	}
	f.log.WarnContext(ctx, "primary email provider failed, using fallback", attrs...)

	return f.fallback.Send(ctx, email)
}
