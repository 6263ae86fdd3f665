package delivery

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/autopilotstudio/mailroom/pkg/mailer"
)

func storeItem(id string, createdAt time.Time) Item {
	return Item{
		ID:          id,
		Email:       &mailer.Email{To: []string{"user@example.com"}, Subject: "Hi", HTML: "<p>Hi</p>"},
		Status:      StatusPending,
		MaxAttempts: 3,
		CreatedAt:   createdAt,
	}
}

// storeContract runs the behaviour every Store implementation must
// satisfy.
func storeContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrItemNotFound)

	first := storeItem("a", base)
	second := storeItem("b", base.Add(time.Minute))
	require.NoError(t, store.Put(ctx, second))
	require.NoError(t, store.Put(ctx, first))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, StatusPending, got.Status)
	require.Equal(t, []string{"user@example.com"}, got.Email.To)

	// Put replaces the whole item.
	first.Status = StatusFailed
	first.Attempts = 3
	first.LastError = "provider unavailable"
	require.NoError(t, store.Put(ctx, first))
	got, err = store.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, StatusFailed, got.Status)
	require.Equal(t, 3, got.Attempts)
	require.Equal(t, "provider unavailable", got.LastError)

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "a", items[0].ID, "list is ordered by creation time")
	require.Equal(t, "b", items[1].ID)

	require.NoError(t, store.Delete(ctx, "a"))
	_, err = store.Get(ctx, "a")
	require.ErrorIs(t, err, ErrItemNotFound)
	require.NoError(t, store.Delete(ctx, "a"), "deleting a missing item is not an error")

	items, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	storeContract(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	storeContract(t, NewRedisStore(client))
}

func TestRedisStore_Prefix(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	one := NewRedisStore(client, WithRedisPrefix("one:"))
	two := NewRedisStore(client, WithRedisPrefix("two:"))
	require.NoError(t, one.Put(ctx, storeItem("a", base)))
	require.NoError(t, two.Put(ctx, storeItem("b", base)))

	items, err := one.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "a", items[0].ID)

	_, err = one.Get(ctx, "b")
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestPurgeFailed(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	svc, _ := newTestService(t, &stubSender{},
		WithStore(store),
		WithClock(func() time.Time { return now }),
		WithConfig(Config{Retention: 24 * time.Hour}),
	)

	ctx := context.Background()
	old := storeItem("old", now.Add(-48*time.Hour))
	old.Status = StatusFailed
	recent := storeItem("recent", now.Add(-time.Hour))
	recent.Status = StatusFailed
	pending := storeItem("pending", now.Add(-48*time.Hour))
	require.NoError(t, store.Put(ctx, old))
	require.NoError(t, store.Put(ctx, recent))
	require.NoError(t, store.Put(ctx, pending))

	purged, err := svc.PurgeFailed(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, purged)

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	ids := []string{items[0].ID, items[1].ID}
	require.NotContains(t, ids, "old")
	require.Contains(t, ids, "recent", "failed items inside retention stay")
	require.Contains(t, ids, "pending", "pending items are never purged")
}

func TestStartJanitor_InvalidSchedule(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &stubSender{},
		WithConfig(Config{JanitorSchedule: "not a schedule"}),
	)
	_, err := svc.StartJanitor()
	require.Error(t, err)
}
