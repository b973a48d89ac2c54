package storage

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Provider used for tests and ephemeral sessions.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	failOn error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

// FailWrites makes every subsequent Set and Delete return err. Pass nil to reset.
func (s *MemoryStore) FailWrites(err error) {
	s.mu.Lock()
	s.failOn = err
	s.mu.Unlock()
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failOn != nil {
		return s.failOn
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failOn != nil {
		return s.failOn
	}
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Location() string {
	return "memory://"
}
