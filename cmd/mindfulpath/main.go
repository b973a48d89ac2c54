package main

import (
	"github.com/alecthomas/kong"

	"github.com/julianstephens/mindfulpath/internal/cli"
	"github.com/julianstephens/mindfulpath/internal/cli/account"
	"github.com/julianstephens/mindfulpath/internal/cli/backups"
	"github.com/julianstephens/mindfulpath/internal/cli/journal"
	"github.com/julianstephens/mindfulpath/internal/cli/reports"
	"github.com/julianstephens/mindfulpath/internal/cli/resources"
	"github.com/julianstephens/mindfulpath/internal/cli/selfcare"
	"github.com/julianstephens/mindfulpath/internal/cli/system"
	"github.com/julianstephens/mindfulpath/internal/config"
	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/errors"
	"github.com/julianstephens/mindfulpath/internal/integrations"
	"github.com/julianstephens/mindfulpath/internal/logger"
	"github.com/julianstephens/mindfulpath/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"${config_path}" env:"MINDFULPATH_CONFIG"`
	Storage string `help:"Storage location (file path, sqlite://, postgres://, badger://, redis://, mongodb://, memory://). Overrides storage.dsn. PostgreSQL credentials must NOT be embedded in the connection string." env:"MINDFULPATH_STORAGE"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init   system.InitCmd   `cmd:"" help:"Initialize the session store."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve  system.ServeCmd  `cmd:"" help:"Serve the JSON API over HTTP."`
	Debugs system.DebugCmd  `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Secret struct {
		Set    system.SecretSetCmd    `cmd:"" help:"Store an API secret in the OS keyring."`
		Delete system.SecretDeleteCmd `cmd:"" help:"Remove an API secret from the OS keyring."`
		List   system.SecretListCmd   `cmd:"" help:"Show which API secrets are stored."`
	} `cmd:"" help:"Manage API secrets."`

	Mood struct {
		Add  journal.MoodAddCmd  `cmd:"" help:"Record a mood check-in (1-5)."`
		List journal.MoodListCmd `cmd:"" help:"List mood check-ins." default:"1"`
	} `cmd:"" help:"Track your mood."`
	Breathe   journal.BreatheCmd `cmd:"" help:"Run a guided breathing exercise or record one."`
	Gratitude struct {
		Add    journal.GratitudeAddCmd    `cmd:"" help:"Add a gratitude entry."`
		List   journal.GratitudeListCmd   `cmd:"" help:"List gratitude entries." default:"1"`
		Remove journal.GratitudeRemoveCmd `cmd:"" help:"Remove a gratitude entry."`
	} `cmd:"" help:"Keep a gratitude journal."`
	Writing struct {
		Add    journal.WritingAddCmd    `cmd:"" help:"Add a mindful reflection."`
		List   journal.WritingListCmd   `cmd:"" help:"List reflections." default:"1"`
		Remove journal.WritingRemoveCmd `cmd:"" help:"Remove a reflection."`
	} `cmd:"" help:"Mindful writing."`
	Memory struct {
		Play   journal.MemoryPlayCmd   `cmd:"" help:"Play the memory game." default:"1"`
		Record journal.MemoryRecordCmd `cmd:"" help:"Record a memory game result."`
	} `cmd:"" help:"Memory card game."`
	Selfcare selfcare.SelfCareCmd `cmd:"" help:"Manage self-care habits, goals and energy levels."`

	Summary reports.SummaryCmd `cmd:"" help:"Show the activity summary for a day."`
	Dates   reports.DatesCmd   `cmd:"" help:"List dates with recorded activity."`
	Report  reports.ReportCmd  `cmd:"" help:"Show daily summaries over a date range."`

	Session struct {
		Clear  backups.SessionClearCmd  `cmd:"" help:"Delete all session data."`
		Export backups.SessionExportCmd `cmd:"" help:"Export the session as JSON."`
		Import backups.SessionImportCmd `cmd:"" help:"Replace the session from an export file."`
	} `cmd:"" help:"Manage session data."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage session backups."`

	Support   resources.SupportCmd   `cmd:"" help:"Find mental health support organizations."`
	Music     resources.MusicCmd     `cmd:"" help:"List uplifting music tracks."`
	Books     resources.BooksCmd     `cmd:"" help:"Search self-help books."`
	Translate resources.TranslateCmd `cmd:"" help:"Translate text."`
	Auth      account.AuthCmd        `cmd:"" help:"Manage your account."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Mental wellness companion: mood, breathing, journaling and self-care"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if CLI.Storage != "" {
		if cfg.Storage.DSN, err = config.ExpandHome(CLI.Storage); err != nil {
			errors.Fatal(err)
		}
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.Dir()}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}
	logger.Debug("Starting", "version", constants.Version, "command", ctx.Command(), "storage", storage.RedactDSN(cfg.Storage.DSN))

	set, err := integrations.New(cfg.Integrations, nil)
	if err != nil {
		errors.Fatal(err)
	}

	store, err := storage.Open(cfg.Storage.DSN, storage.Options{
		SessionTTL:  cfg.Storage.SessionTTL,
		RedisClient: set.SharedRedis(cfg.Storage.DSN),
	})
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := cli.NewContext(cfg, store, set)
	err = ctx.Run(appCtx)

	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	if closeErr := set.Close(); closeErr != nil {
		logger.Warn("Failed to close integrations", "error", closeErr)
	}
	errors.Fatal(err)
}
