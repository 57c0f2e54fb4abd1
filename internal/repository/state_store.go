package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StateStore holds small per-feature documents (attendance, steps,
// CSR registry, goals, reminders) as JSON blobs under namespaced keys.
// Writes replace the whole document, mirroring the single-writer model
// of the dashboard.
type StateStore struct {
	client *redis.Client
	prefix string
	onRead func(time.Duration)
}

// NewStateStore constructs a store with a key namespace prefix.
func NewStateStore(client *redis.Client, prefix string) *StateStore {
	if prefix == "" {
		prefix = "daybook"
	}
	return &StateStore{client: client, prefix: prefix}
}

// OnRead registers a callback observing each document read duration.
func (s *StateStore) OnRead(fn func(time.Duration)) {
	s.onRead = fn
}

// ErrKeyNotFound is returned by Get when no document exists for a key.
var ErrKeyNotFound = fmt.Errorf("state key not found")

func (s *StateStore) key(name string) string {
	return s.prefix + ":" + name
}

// Get unmarshals the document stored under name into dest.
func (s *StateStore) Get(ctx context.Context, name string, dest interface{}) error {
	start := time.Now()
	raw, err := s.client.Get(ctx, s.key(name)).Bytes()
	if s.onRead != nil {
		s.onRead(time.Since(start))
	}
	if err == redis.Nil {
		return ErrKeyNotFound
	}
	if err != nil {
		return fmt.Errorf("get state %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode state %s: %w", name, err)
	}
	return nil
}

// Set replaces the document stored under name.
func (s *StateStore) Set(ctx context.Context, name string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode state %s: %w", name, err)
	}
	if err := s.client.Set(ctx, s.key(name), raw, 0).Err(); err != nil {
		return fmt.Errorf("set state %s: %w", name, err)
	}
	return nil
}

// Remove deletes the document stored under name.
func (s *StateStore) Remove(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, s.key(name)).Err(); err != nil {
		return fmt.Errorf("remove state %s: %w", name, err)
	}
	return nil
}

// Keys lists document names in the namespace matching a glob pattern.
func (s *StateStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	full := s.key(pattern)
	keys, err := s.client.Keys(ctx, full).Result()
	if err != nil {
		return nil, fmt.Errorf("list state keys: %w", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k[len(s.prefix)+1:])
	}
	return names, nil
}
