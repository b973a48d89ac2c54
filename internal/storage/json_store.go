package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/julianstephens/mindfulpath/internal/constants"
)

type fileEntry struct {
	Value     json.RawMessage `json:"value"`
	UpdatedAt string          `json:"updated_at"`
}

type fileStore struct {
	Version int                  `json:"version"`
	Entries map[string]fileEntry `json:"entries"`
}

// JSONStore keeps every key in a single JSON document on disk.
type JSONStore struct {
	path  string
	mu    sync.Mutex
	store *fileStore
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = &fileStore{
		Version: 1,
		Entries: make(map[string]fileEntry),
	}
	return s.save(s.store)
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &fileStore{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if store.Entries == nil {
		store.Entries = make(map[string]fileEntry)
	}

	s.mu.Lock()
	s.store = store
	s.mu.Unlock()
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, ErrNotInitialized
	}
	entry, ok := s.store.Entries[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), entry.Value...), nil
}

func (s *JSONStore) Set(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNotInitialized
	}

	next := s.copyStore()
	next.Entries[key] = fileEntry{
		Value:     append(json.RawMessage(nil), value...),
		UpdatedAt: time.Now().UTC().Format(constants.TimestampFormat),
	}
	if err := s.save(next); err != nil {
		return err
	}
	s.store = next
	return nil
}

func (s *JSONStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNotInitialized
	}
	if _, ok := s.store.Entries[key]; !ok {
		return nil
	}

	next := s.copyStore()
	delete(next.Entries, key)
	if err := s.save(next); err != nil {
		return err
	}
	s.store = next
	return nil
}

// Location returns the path to the underlying storage file.
//
// Running multiple mindfulpath processes against the same file at the same
// time is not supported and may lose writes.
func (s *JSONStore) Location() string {
	return s.path
}

func (s *JSONStore) copyStore() *fileStore {
	next := &fileStore{
		Version: s.store.Version,
		Entries: make(map[string]fileEntry, len(s.store.Entries)+1),
	}
	for k, v := range s.store.Entries {
		next.Entries[k] = v
	}
	return next
}

// save writes to a temp file first so a crash never leaves a truncated document.
func (s *JSONStore) save(store *fileStore) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}
