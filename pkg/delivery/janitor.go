package delivery

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
)

// PurgeFailed removes terminally failed items that have been in the
// queue longer than the configured retention. It returns the number of
// items removed.
func (s *Service) PurgeFailed(ctx context.Context) (int, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	cutoff := s.now().Add(-s.config.Retention)
	purged := 0
	for _, item := range items {
		if item.Status != StatusFailed || !item.CreatedAt.Before(cutoff) {
			continue
		}
		if err := s.store.Delete(ctx, item.ID); err != nil {
			return purged, err
		}
		purged++
	}
	if purged > 0 {
		s.log.InfoContext(ctx, "purged failed queue items", "count", purged)
	}
	return purged, nil
}

// StartJanitor runs PurgeFailed on the configured cron schedule. The
// returned stop function halts the job; it blocks until a running purge
// completes.
func (s *Service) StartJanitor() (stop func(), err error) {
	c := cron.New()
	_, err = c.AddFunc(s.config.JanitorSchedule, func() {
		if _, err := s.PurgeFailed(context.Background()); err != nil {
			s.log.Error("queue purge failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid janitor schedule %q: %w", s.config.JanitorSchedule, err)
	}
	c.Start()
	return func() {
		<-c.Stop().Done()
	}, nil
}
