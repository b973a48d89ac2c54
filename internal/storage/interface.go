package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrKeyNotFound is returned by Get when no value is stored under the key.
	ErrKeyNotFound = errors.New("key not found")
	// ErrNotInitialized is returned when a provider is used before Init or Load.
	ErrNotInitialized = errors.New("storage not initialized, run 'mindfulpath init' first")
)

// Provider persists opaque blobs under string keys.
//
// Implementations must be safe for sequential use from a single session
// store; the session store serializes its own writes.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Blobs
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Utils
	Location() string
}

// SchemaReporter is implemented by SQL backends that track a schema version.
type SchemaReporter interface {
	SchemaVersion() (current, latest int, err error)
}

func schemaVersion(runner interface {
	CurrentVersion() (int, error)
	LatestVersion() (int, error)
}) (int, int, error) {
	current, err := runner.CurrentVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.LatestVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, nil
}
