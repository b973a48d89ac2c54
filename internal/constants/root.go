package constants

import "time"

// EnergyTime is the part of the day an energy level was measured in
type EnergyTime string

// BookFormat distinguishes printed books from audiobooks
type BookFormat string

// IntegrationMode selects between the live network client and the static client
type IntegrationMode string

// SessionState represents the current tab of the TUI application
type SessionState int

const (
	AppName            = "mindfulpath"
	DefaultConfigDir   = "~/.config/mindfulpath"
	DefaultConfigPath  = "~/.config/mindfulpath/config.yaml"
	DefaultStoragePath = "~/.config/mindfulpath/session.json"
	Version            = "v0.3.0"

	// SessionStorageKey is the fixed key the full session snapshot is stored under
	SessionStorageKey = "mindfulpath_session"

	// DateFormat is the date prefix used for same-day grouping (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat matches an ISO-8601 UTC timestamp with millisecond precision
	TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

	// Mood scale
	MoodMin = 1
	MoodMax = 5

	// Energy times
	EnergyMorning   EnergyTime = "Morning"
	EnergyAfternoon EnergyTime = "Afternoon"
	EnergyEvening   EnergyTime = "Evening"

	// Book formats
	FormatBook      BookFormat = "book"
	FormatAudiobook BookFormat = "audiobook"

	// Integration modes
	ModeLive   IntegrationMode = "live"
	ModeStatic IntegrationMode = "static"

	// Breathing phases
	BreathInhale = 6 * time.Second
	BreathHold   = 7 * time.Second
	BreathExhale = 8 * time.Second

	// Memory game
	MemoryGamePairs       = 8
	MemoryGameTimeBonus   = 300
	MemoryGameMoveBonus   = 100
	MemoryGameMovePenalty = 5

	// Book cache
	BookCachePrefix   = "amazon_books:"
	BookCacheDuration = 30 * time.Minute

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "mindfulpath-"
	BackupFileSuffix = ".json"

	// Keyring users
	KeyringAccessToken  = "supabase-access-token"
	KeyringRefreshToken = "supabase-refresh-token"
	KeyringOpenCageKey  = "opencage-api-key"
	KeyringN8NKey       = "n8n-api-key"
	KeyringAmazonSecret = "amazon-secret-key"

	// HTTP
	DefaultHTTPAddr    = "127.0.0.1:8088"
	DefaultHTTPTimeout = 10 * time.Second
)

const (
	// Session States
	StateDashboard SessionState = iota
	StateBreathing
	StateMemory
	StateJournal
)

// MoodLabels maps each mood rating to its display label
var MoodLabels = map[int]string{
	1: "Very Low",
	2: "Low",
	3: "Okay",
	4: "Good",
	5: "Great",
}

// EnergyTimes lists the energy measurement slots in display order
var EnergyTimes = []EnergyTime{EnergyMorning, EnergyAfternoon, EnergyEvening}
