package system

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/mindfulpath/internal/cli"
	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/keyring"
)

// secretNames maps the short names accepted on the command line to keyring users.
var secretNames = map[string]string{
	"amazon":   constants.KeyringAmazonSecret,
	"opencage": constants.KeyringOpenCageKey,
	"n8n":      constants.KeyringN8NKey,
}

func resolveSecret(name string) (string, error) {
	if user, ok := secretNames[strings.ToLower(name)]; ok {
		return user, nil
	}
	known := make([]string, 0, len(secretNames))
	for k := range secretNames {
		known = append(known, k)
	}
	sort.Strings(known)
	return "", fmt.Errorf("unknown secret %q (expected one of: %s)", name, strings.Join(known, ", "))
}

// SecretSetCmd stores an API key in the OS keyring
type SecretSetCmd struct {
	Name  string `arg:"" help:"Secret name (amazon, opencage, n8n)."`
	Value string `arg:"" help:"Secret value."`
}

func (cmd *SecretSetCmd) Run(ctx *cli.Context) error {
	user, err := resolveSecret(cmd.Name)
	if err != nil {
		return err
	}
	if err := keyring.Set(user, cmd.Value); err != nil {
		return err
	}
	ctx.Printf("✓ %s key stored in OS keyring\n", cmd.Name)
	return nil
}

// SecretDeleteCmd removes an API key from the OS keyring
type SecretDeleteCmd struct {
	Name string `arg:"" help:"Secret name (amazon, opencage, n8n)."`
}

func (cmd *SecretDeleteCmd) Run(ctx *cli.Context) error {
	user, err := resolveSecret(cmd.Name)
	if err != nil {
		return err
	}
	if err := keyring.Delete(user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s key stored in keyring", cmd.Name)
		}
		return err
	}
	ctx.Printf("✓ %s key removed from OS keyring\n", cmd.Name)
	return nil
}

// SecretListCmd shows which API keys are stored, masked
type SecretListCmd struct{}

func (cmd *SecretListCmd) Run(ctx *cli.Context) error {
	names := make([]string, 0, len(secretNames))
	for k := range secretNames {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, name := range names {
		secret, err := keyring.Get(secretNames[name])
		switch {
		case err == nil:
			ctx.Printf("  %-10s %s\n", name, maskSecret(secret))
		case errors.Is(err, keyring.ErrNotFound):
			ctx.Printf("  %-10s (not set)\n", name)
		default:
			return err
		}
	}
	return nil
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
