package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/mindfulpath/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the requested name
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Get retrieves a named secret (API key or token) from the OS keyring.
// Returns ErrNotFound if nothing is stored under name.
func Get(name string) (string, error) {
	secret, err := keyring.Get(constants.AppName, name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// Set stores a named secret in the OS keyring.
func Set(name, secret string) error {
	if name == "" {
		return errors.New("secret name cannot be empty")
	}
	if secret == "" {
		return fmt.Errorf("secret %q cannot be empty", name)
	}
	if err := keyring.Set(constants.AppName, name, secret); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", name, err)
	}
	return nil
}

// Delete removes a named secret from the OS keyring.
func Delete(name string) error {
	if err := keyring.Delete(constants.AppName, name); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", name, err)
	}
	return nil
}

// Lookup returns the secret stored under name, or fallback when the keyring
// has nothing for it or cannot be reached.
func Lookup(name, fallback string) string {
	secret, err := Get(name)
	if err != nil {
		return fallback
	}
	return secret
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
