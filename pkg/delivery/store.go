package delivery

import (
	"context"
	"sort"
	"sync"
)

// Store persists queue items. Put replaces the whole item so partially
// updated records are never observable. Implementations must be safe for
// concurrent use.
type Store interface {
	// Put stores the item, replacing any existing item with the same id.
	Put(ctx context.Context, item Item) error
	// Get returns the item with the given id or ErrItemNotFound.
	Get(ctx context.Context, id string) (Item, error)
	// Delete removes the item with the given id. Deleting a missing item
	// is not an error.
	Delete(ctx context.Context, id string) error
	// List returns a snapshot of all items ordered by creation time.
	List(ctx context.Context) ([]Item, error)
}

// MemoryStore is an in-process Store backed by a map. It is the default
// store and suitable for single-instance deployments.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Item
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]Item)}
}

func (s *MemoryStore) Put(_ context.Context, item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return Item{}, ErrItemNotFound
	}
	return item, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}
