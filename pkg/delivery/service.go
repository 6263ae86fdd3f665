package delivery

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/autopilotstudio/mailroom/pkg/id"
	"github.com/autopilotstudio/mailroom/pkg/mailer"
	"github.com/autopilotstudio/mailroom/pkg/mailer/templates"
)

// Service orchestrates email delivery: it validates and enqueues emails,
// attempts delivery through the configured sender, retries failures with
// exponential backoff, and exposes the queue for inspection.
//
// The sender is typically a mailer.Failover wrapping two provider
// adapters, so provider-level fallback happens inside a single attempt
// while retry across attempts is handled here.
type Service struct {
	sender    mailer.Sender
	renderer  *templates.Renderer
	store     Store
	scheduler Scheduler
	log       *slog.Logger
	config    Config
	now       func() time.Time

	mu       sync.Mutex
	timers   map[string]CancelFunc
	inflight map[string]struct{}
}

// Option configures a Service.
type Option func(*Service)

// WithStore overrides the default in-memory queue store.
func WithStore(store Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithScheduler overrides the default timer-backed scheduler.
func WithScheduler(scheduler Scheduler) Option {
	return func(s *Service) {
		if scheduler != nil {
			s.scheduler = scheduler
		}
	}
}

// WithLogger sets the logger for delivery events.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithConfig overrides the default queue settings.
func WithConfig(cfg Config) Option {
	return func(s *Service) {
		if cfg.MaxAttempts > 0 {
			s.config.MaxAttempts = cfg.MaxAttempts
		}
		if cfg.Retention > 0 {
			s.config.Retention = cfg.Retention
		}
		if cfg.JanitorSchedule != "" {
			s.config.JanitorSchedule = cfg.JanitorSchedule
		}
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a delivery service sending through the given sender and
// rendering templated emails with the given renderer.
func New(sender mailer.Sender, renderer *templates.Renderer, opts ...Option) *Service {
	s := &Service{
		sender:    sender,
		renderer:  renderer,
		store:     NewMemoryStore(),
		scheduler: NewTimerScheduler(),
		log:       slog.Default(),
		config:    DefaultConfig(),
		now:       time.Now,
		timers:    make(map[string]CancelFunc),
		inflight:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendOptions carries the optional envelope fields for SendTemplate.
type SendOptions struct {
	CC          []string
	BCC         []string
	From        string
	ReplyTo     string
	Priority    mailer.Priority
	ScheduledAt *time.Time
	Attachments []mailer.Attachment
	Variables   map[string]any
	Metadata    map[string]any
}

// SendTemplate renders the template for the given data and enqueues the
// resulting email to the recipients.
func (s *Service) SendTemplate(ctx context.Context, typ templates.Type, to []string, data templates.Data, opts SendOptions) (Item, error) {
	rendered, err := s.renderer.Render(typ, data)
	if err != nil {
		return Item{}, err
	}
	email := &mailer.Email{
		To:           to,
		CC:           opts.CC,
		BCC:          opts.BCC,
		From:         opts.From,
		ReplyTo:      opts.ReplyTo,
		Subject:      rendered.Subject,
		HTML:         rendered.HTML,
		Text:         rendered.Text,
		TemplateType: string(typ),
		Priority:     opts.Priority,
		ScheduledAt:  opts.ScheduledAt,
		Attachments:  opts.Attachments,
		Variables:    opts.Variables,
		Metadata:     opts.Metadata,
	}
	return s.Send(ctx, email)
}

// Send validates the email and enqueues it. Emails scheduled for the
// future wait in the queue until their time arrives; everything else is
// attempted immediately. The returned Item is a snapshot taken after the
// first attempt, or after enqueueing for scheduled emails.
func (s *Service) Send(ctx context.Context, email *mailer.Email) (Item, error) {
	if err := mailer.Validate(email); err != nil {
		return Item{}, err
	}

	now := s.now()
	item := Item{
		ID:          id.NewULID(),
		Email:       email,
		Status:      StatusPending,
		MaxAttempts: s.config.MaxAttempts,
		CreatedAt:   now,
	}

	if email.ScheduledAt != nil && email.ScheduledAt.After(now) {
		item.ScheduledAt = email.ScheduledAt
		if err := s.store.Put(ctx, item); err != nil {
			return Item{}, err
		}
		s.armTimer(item.ID, email.ScheduledAt.Sub(now))
		s.log.InfoContext(ctx, "email scheduled",
			"id", item.ID,
			"scheduled_at", email.ScheduledAt,
			"template", email.TemplateType,
		)
		return item, nil
	}

	if err := s.store.Put(ctx, item); err != nil {
		return Item{}, err
	}
	return s.attempt(ctx, item.ID)
}

// Retry resets a failed or pending item and attempts delivery again
// right away. The attempt counter starts over, so the item gets a full
// set of attempts.
func (s *Service) Retry(ctx context.Context, id string) (Item, error) {
	s.mu.Lock()
	if _, busy := s.inflight[id]; busy {
		s.mu.Unlock()
		return Item{}, ErrInFlight
	}
	if cancel, ok := s.timers[id]; ok {
		cancel()
		delete(s.timers, id)
	}
	s.mu.Unlock()

	item, err := s.store.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	item.Status = StatusPending
	item.Attempts = 0
	item.LastError = ""
	if err := s.store.Put(ctx, item); err != nil {
		return Item{}, err
	}
	s.log.InfoContext(ctx, "email retry requested", "id", id)
	return s.attempt(ctx, id)
}

// Cancel removes a pending item from the queue, disarming any timer
// first so a scheduled attempt cannot fire against a deleted item. It
// returns false if the item is missing, already terminal, or has an
// attempt in flight.
func (s *Service) Cancel(id string) bool {
	s.mu.Lock()
	if _, busy := s.inflight[id]; busy {
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()

	// Store reads may hit the network (Redis), so they run outside the
	// mutex; other items' timers and attempts keep flowing meanwhile.
	item, err := s.store.Get(context.Background(), id)
	if err != nil || item.Status != StatusPending {
		return false
	}

	// An attempt may have started while the store was read; re-check
	// before disarming so an in-flight delivery is never cancelled.
	s.mu.Lock()
	if _, busy := s.inflight[id]; busy {
		s.mu.Unlock()
		return false
	}
	if cancel, ok := s.timers[id]; ok {
		cancel()
		delete(s.timers, id)
	}
	s.mu.Unlock()

	if err := s.store.Delete(context.Background(), id); err != nil {
		s.log.Error("failed to delete cancelled item", "id", id, "error", err)
		return false
	}
	s.log.Info("email cancelled", "id", id)
	return true
}

// QueueStatus returns a snapshot of the queue: pending items awaiting
// delivery and terminally failed items awaiting purge or retry. Sent
// items are removed on success and do not appear.
func (s *Service) QueueStatus(ctx context.Context) ([]Item, error) {
	return s.store.List(ctx)
}

// attempt performs one delivery attempt for the item and records the
// outcome. On success the item leaves the queue; on failure it is either
// rescheduled with backoff or marked terminally failed once attempts run
// out.
func (s *Service) attempt(ctx context.Context, id string) (Item, error) {
	s.mu.Lock()
	if _, busy := s.inflight[id]; busy {
		s.mu.Unlock()
		return Item{}, ErrInFlight
	}
	if cancel, ok := s.timers[id]; ok {
		cancel()
		delete(s.timers, id)
	}
	s.inflight[id] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.inflight, id)
		s.mu.Unlock()
	}()

	item, err := s.store.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	if item.Status != StatusPending {
		return item, nil
	}

	out, sendErr := s.sender.Send(ctx, item.Email)
	item.Attempts++

	if sendErr == nil && out != nil && out.Status == mailer.StatusSent {
		now := s.now()
		item.Status = StatusSent
		item.SentAt = &now
		if err := s.store.Delete(ctx, id); err != nil {
			return Item{}, err
		}
		s.log.InfoContext(ctx, "email sent",
			"id", id,
			"provider", out.Provider,
			"message_id", out.ProviderMessageID,
			"attempts", item.Attempts,
		)
		return item, nil
	}

	switch {
	case sendErr != nil:
		item.LastError = sendErr.Error()
	case out != nil && out.Err != "":
		item.LastError = out.Err
	default:
		item.LastError = "delivery failed"
	}

	if item.Attempts >= item.MaxAttempts {
		item.Status = StatusFailed
		if err := s.store.Put(ctx, item); err != nil {
			return Item{}, err
		}
		s.log.ErrorContext(ctx, "email delivery failed permanently",
			"id", id,
			"attempts", item.Attempts,
			"error", item.LastError,
		)
		return item, nil
	}

	if err := s.store.Put(ctx, item); err != nil {
		return Item{}, err
	}
	delay := Backoff(item.Attempts + 1)
	s.armTimer(id, delay)
	s.log.WarnContext(ctx, "email delivery failed, retrying",
		"id", id,
		"attempt", item.Attempts,
		"next_in", delay,
		"error", item.LastError,
	)
	return item, nil
}

// armTimer schedules a delivery attempt for the item after the delay,
// replacing any timer already armed for it.
func (s *Service) armTimer(id string, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.timers[id]; ok {
		cancel()
	}
	s.timers[id] = s.scheduler.Schedule(delay, func() {
		if _, err := s.attempt(context.Background(), id); err != nil && !errors.Is(err, ErrItemNotFound) {
			s.log.Error("scheduled delivery attempt failed", "id", id, "error", err)
		}
	})
}
