package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	badger "github.com/dgraph-io/badger/v4"
)

// BadgerStore persists blobs in an embedded Badger directory.
// An empty dir opens an in-memory database.
type BadgerStore struct {
	dir string
	db  *badger.DB
}

func NewBadgerStore(dir string) *BadgerStore {
	return &BadgerStore{dir: dir}
}

func (s *BadgerStore) open() error {
	opts := badger.DefaultOptions(s.dir).
		WithLoggingLevel(badger.ERROR)
	if s.dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("failed to open badger database: %w", err)
	}
	s.db = db
	return nil
}

func (s *BadgerStore) Init() error {
	if s.db != nil {
		return nil
	}
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0700); err != nil {
			return fmt.Errorf("failed to create storage directory: %w", err)
		}
	}
	return s.open()
}

func (s *BadgerStore) Load() error {
	if s.db != nil {
		return nil
	}
	if s.dir != "" {
		if _, err := os.Stat(s.dir); os.IsNotExist(err) {
			return ErrNotInitialized
		}
	}
	return s.open()
}

func (s *BadgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *BadgerStore) Get(_ context.Context, key string) ([]byte, error) {
	if s.db == nil {
		return nil, ErrNotInitialized
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, nil
}

func (s *BadgerStore) Set(_ context.Context, key string, value []byte) error {
	if s.db == nil {
		return ErrNotInitialized
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Delete(_ context.Context, key string) error {
	if s.db == nil {
		return ErrNotInitialized
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Location() string {
	if s.dir == "" {
		return "badger://memory"
	}
	return "badger://" + s.dir
}
