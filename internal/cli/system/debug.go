package system

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/mindfulpath/internal/cli"
)

type DebugCmd struct {
	Location DebugLocationCmd `cmd:"" help:"Print the storage location."`
	Dump     DebugDumpCmd     `cmd:"" help:"Dump the raw session snapshot as JSON."`
	Config   DebugConfigCmd   `cmd:"" help:"Print the resolved configuration without secrets."`
}

type DebugLocationCmd struct{}

func (cmd *DebugLocationCmd) Run(ctx *cli.Context) error {
	ctx.Println(ctx.Store.Location())
	return nil
}

type DebugDumpCmd struct{}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	s, err := ctx.LoadSession(context.Background())
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	ctx.Println(string(data))
	return nil
}

type DebugConfigCmd struct{}

func (cmd *DebugConfigCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config
	in := &cfg.Integrations
	in.Books.SecretKey = maskSecret(in.Books.SecretKey)
	in.Geocode.APIKey = maskSecret(in.Geocode.APIKey)
	in.Translate.APIKey = maskSecret(in.Translate.APIKey)
	in.Auth.AnonKey = maskSecret(in.Auth.AnonKey)
	in.Auth.MockSecret = maskSecret(in.Auth.MockSecret)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	ctx.Println(string(data))
	return nil
}
