package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/julianstephens/mindfulpath/internal/backup"
	"github.com/julianstephens/mindfulpath/internal/config"
	"github.com/julianstephens/mindfulpath/internal/integrations"
	"github.com/julianstephens/mindfulpath/internal/logger"
	"github.com/julianstephens/mindfulpath/internal/session"
	"github.com/julianstephens/mindfulpath/internal/storage"
)

// Context is passed to every command's Run method.
type Context struct {
	Config       config.Config
	Store        storage.Provider
	Session      *session.Store
	Integrations *integrations.Set
	Backups      *backup.Manager

	Out io.Writer
	In  io.Reader

	loadOnce sync.Once
	loadErr  error
}

// NewContext wires a session store over the provider. Output defaults to
// stdout and input to stdin.
func NewContext(cfg config.Config, store storage.Provider, set *integrations.Set, opts ...session.Option) *Context {
	return &Context{
		Config:       cfg,
		Store:        store,
		Session:      session.New(store, opts...),
		Integrations: set,
		Backups:      backup.NewManager(cfg.Dir()),
		Out:          os.Stdout,
		In:           os.Stdin,
	}
}

// LoadSession opens the storage backend and hydrates the session store the
// first time it is called.
func (c *Context) LoadSession(ctx context.Context) (*session.Store, error) {
	c.loadOnce.Do(func() {
		if err := c.Store.Load(); err != nil {
			c.loadErr = err
			return
		}
		c.loadErr = c.Session.Load(ctx)
	})
	return c.Session, c.loadErr
}

// MarkLoaded records that the store was opened outside LoadSession (init).
func (c *Context) MarkLoaded() {
	c.loadOnce.Do(func() {})
}

// PerformAutomaticBackup snapshots the session and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	data := c.Session.Snapshot()
	if data.IsEmpty() {
		return
	}
	if _, err := c.Backups.CreateBackup(data); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Confirm asks a yes/no question on Out and reads the answer from In.
func (c *Context) Confirm(question string) (bool, error) {
	c.Printf("%s [y/N]: ", question)
	response, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// Truncate shortens s to n runes for table output.
func Truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
