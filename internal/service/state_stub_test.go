package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/prakasam-dev/daybook-api/internal/repository"
)

// stateStoreStub keeps documents in a map, round-tripping through JSON
// the same way the real store does.
type stateStoreStub struct {
	docs map[string][]byte
}

func newStateStoreStub() *stateStoreStub {
	return &stateStoreStub{docs: map[string][]byte{}}
}

func (s *stateStoreStub) Get(ctx context.Context, name string, dest interface{}) error {
	raw, ok := s.docs[name]
	if !ok {
		return repository.ErrKeyNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (s *stateStoreStub) Set(ctx context.Context, name string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.docs[name] = raw
	return nil
}

func (s *stateStoreStub) Remove(ctx context.Context, name string) error {
	delete(s.docs, name)
	return nil
}

func (s *stateStoreStub) Keys(ctx context.Context, pattern string) ([]string, error) {
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// readOnlyStateStore refuses writes, standing in for a Redis outage.
type readOnlyStateStore struct {
	*stateStoreStub
}

func (s *readOnlyStateStore) Set(ctx context.Context, name string, value interface{}) error {
	return errors.New("connection refused")
}
