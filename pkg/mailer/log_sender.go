package mailer

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
)

// LogSender is a no-network Sender for local development. It logs the email
// and always reports a sent Outcome with a generated message id. It is the
// default fallback in non-production configurations.
type LogSender struct {
	log  *slog.Logger
	sent atomic.Uint64
}

// NewLogSender creates a LogSender writing through the given logger.
// A nil logger falls back to slog.Default.
func NewLogSender(log *slog.Logger) *LogSender {
	if log == nil {
		log = slog.Default()
	}
	return &LogSender{log: log}
}

// Send implements Sender. It never fails.
func (s *LogSender) Send(ctx context.Context, email *Email) (*Outcome, error) {
	id := uuid.NewString()
	s.sent.Add(1)
	s.log.InfoContext(ctx, "email delivered to log sink",
		slog.String("message_id", id),
		slog.Any("to", email.To),
		slog.String("subject", email.Subject),
		slog.String("template", email.TemplateType),
		slog.Int("attachments", len(email.Attachments)),
	)
	return Sent("log", id), nil
}

// VerifyAPIKey implements Verifier. There is nothing to verify.
func (s *LogSender) VerifyAPIKey(context.Context) error { return nil }

// Stats implements StatsReporter.
func (s *LogSender) Stats() Stats {
	return Stats{Sent: s.sent.Load()}
}
