package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "mailroom:queue:"

// RedisStore persists queue items in Redis as JSON values, one key per
// item. It lets several instances share a queue and survive restarts.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithRedisPrefix overrides the key prefix used for queue items.
func WithRedisPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a store backed by the given Redis client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: defaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) Put(ctx context.Context, item Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	if err := s.client.Set(ctx, s.key(item.ID), data, 0).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Item, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Item{}, ErrItemNotFound
	}
	if err != nil {
		return Item{}, errors.Join(ErrStoreFailed, err)
	}
	var item Item
	if err := json.Unmarshal(data, &item); err != nil {
		return Item{}, errors.Join(ErrStoreFailed, fmt.Errorf("decode queue item %s: %w", id, err))
	}
	return item, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]Item, error) {
	var items []Item
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue // deleted between scan and read
		}
		if err != nil {
			return nil, errors.Join(ErrStoreFailed, err)
		}
		var item Item
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, errors.Join(ErrStoreFailed, fmt.Errorf("decode queue item: %w", err))
		}
		items = append(items, item)
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}
