package mailer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// VerifyAll checks the credentials of every sender that implements
// Verifier, concurrently. Senders without verification support are
// skipped. It returns the first verification failure, or nil when all
// checks pass.
func VerifyAll(ctx context.Context, senders ...Sender) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, sender := range senders {
		v, ok := sender.(Verifier)
		if !ok {
			continue
		}
		g.Go(func() error {
			if err := v.VerifyAPIKey(ctx); err != nil {
				return fmt.Errorf("provider verification failed: %w", err)
			}
			return nil
		})
	}
	return g.Wait()
}
