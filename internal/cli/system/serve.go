package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/mindfulpath/internal/cli"
	"github.com/julianstephens/mindfulpath/internal/logger"
	"github.com/julianstephens/mindfulpath/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address (overrides server.addr)."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	bg, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}

	addr := c.Addr
	if addr == "" {
		addr = ctx.Config.Server.Addr
	}

	logger.InitWriter(os.Stdout, ctx.Config.Debug)
	srv := server.New(server.Deps{
		Session:      s,
		Integrations: ctx.Integrations,
		Backups:      ctx.Backups,
		Debug:        ctx.Config.Debug,
	})
	ctx.Printf("Serving mindfulpath API on http://%s\n", addr)
	return srv.Run(bg, addr)
}
