package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/keyring"
	"github.com/julianstephens/mindfulpath/internal/logger"
)

// lookupSecret reads a secret from the OS keyring; replaced in tests.
var lookupSecret = keyring.Lookup

// Config is the application configuration, read from a YAML file and
// overridden by environment variables.
type Config struct {
	Debug        bool               `yaml:"debug"`
	Storage      StorageConfig      `yaml:"storage"`
	Server       ServerConfig       `yaml:"server"`
	Integrations IntegrationsConfig `yaml:"integrations"`

	// Path is the file the configuration was loaded from
	Path string `yaml:"-"`
}

type StorageConfig struct {
	// DSN selects the backend by scheme (file path, sqlite://, postgres://,
	// badger://, redis://, mongodb://, memory://)
	DSN string `yaml:"dsn"`
	// SessionTTL expires the session snapshot on backends that support it (redis)
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type IntegrationsConfig struct {
	HTTPTimeout time.Duration   `yaml:"http_timeout"`
	Auth        AuthConfig      `yaml:"auth"`
	Books       BooksConfig     `yaml:"books"`
	Geocode     GeocodeConfig   `yaml:"geocode"`
	Translate   TranslateConfig `yaml:"translate"`
}

type AuthConfig struct {
	Mode    constants.IntegrationMode `yaml:"mode"`
	URL     string                    `yaml:"url"`
	AnonKey string                    `yaml:"anon_key"`
	// MockSecret signs the tokens issued by the static provider
	MockSecret string `yaml:"mock_secret"`
}

type BooksConfig struct {
	Mode       constants.IntegrationMode `yaml:"mode"`
	Endpoint   string                    `yaml:"endpoint"`
	AccessKey  string                    `yaml:"access_key"`
	SecretKey  string                    `yaml:"secret_key"`
	PartnerTag string                    `yaml:"partner_tag"`
	Region     string                    `yaml:"region"`
	Fallback   bool                      `yaml:"fallback"`
	CacheURL   string                    `yaml:"cache_url"`
	CacheTTL   time.Duration             `yaml:"cache_ttl"`
}

type GeocodeConfig struct {
	Mode     constants.IntegrationMode `yaml:"mode"`
	Endpoint string                    `yaml:"endpoint"`
	APIKey   string                    `yaml:"api_key"`
}

type TranslateConfig struct {
	Mode       constants.IntegrationMode `yaml:"mode"`
	BaseURL    string                    `yaml:"base_url"`
	APIKey     string                    `yaml:"api_key"`
	WorkflowID string                    `yaml:"workflow_id"`
}

// Default returns the configuration used when no file is present
func Default() Config {
	return Config{
		Storage: StorageConfig{
			DSN: constants.DefaultStoragePath,
		},
		Server: ServerConfig{
			Addr: constants.DefaultHTTPAddr,
		},
		Integrations: IntegrationsConfig{
			HTTPTimeout: constants.DefaultHTTPTimeout,
			Auth: AuthConfig{
				MockSecret: "mindfulpath-dev-secret",
			},
			Books: BooksConfig{
				Endpoint: "https://webservices.amazon.com/paapi5/searchitems",
				Region:   "us-east-1",
				Fallback: true,
				CacheTTL: constants.BookCacheDuration,
			},
			Geocode: GeocodeConfig{
				Endpoint: "https://api.opencagedata.com/geocode/v1/json",
			},
			Translate: TranslateConfig{
				BaseURL: "http://localhost:5678",
			},
		},
	}
}

// Load reads the YAML file at path (a missing file is not an error), applies
// .env files and environment overrides, and resolves integration modes.
func Load(path string) (Config, error) {
	cfg := Default()

	expanded, err := ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	cfg.Path = expanded

	data, err := os.ReadFile(expanded)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", expanded, err)
		}
	case errors.Is(err, os.ErrNotExist):
		logger.Debug("Config file not found, using defaults", "path", expanded)
	default:
		return cfg, fmt.Errorf("failed to read config %s: %w", expanded, err)
	}

	loadDotEnv(filepath.Dir(expanded))
	cfg.applyEnv()
	cfg.applyKeyring()
	cfg.resolveModes()

	if cfg.Storage.DSN, err = ExpandHome(cfg.Storage.DSN); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Dir returns the directory holding the config file; logs and backups live here
func (c Config) Dir() string {
	if c.Path == "" {
		dir, _ := ExpandHome(constants.DefaultConfigDir)
		return dir
	}
	return filepath.Dir(c.Path)
}

// loadDotEnv loads .env from the working directory and the config directory.
// Existing environment variables are never overwritten.
func loadDotEnv(configDir string) {
	for _, candidate := range []string{".env", filepath.Join(configDir, ".env")} {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := godotenv.Load(candidate); err != nil {
			logger.Warn("Failed to load env file", "path", candidate, "error", err)
		}
	}
}

func (c *Config) applyEnv() {
	c.Debug = getEnvAsBool("MINDFULPATH_DEBUG", c.Debug)
	c.Storage.DSN = getEnvAsString("MINDFULPATH_STORAGE", c.Storage.DSN)
	c.Storage.SessionTTL = getEnvAsDuration("MINDFULPATH_SESSION_TTL", c.Storage.SessionTTL)
	c.Server.Addr = getEnvAsString("MINDFULPATH_HTTP_ADDR", c.Server.Addr)
	c.Integrations.HTTPTimeout = getEnvAsDuration("MINDFULPATH_HTTP_TIMEOUT", c.Integrations.HTTPTimeout)

	auth := &c.Integrations.Auth
	auth.URL = getEnvAsString("SUPABASE_URL", auth.URL)
	auth.AnonKey = getEnvAsString("SUPABASE_ANON_KEY", auth.AnonKey)

	books := &c.Integrations.Books
	books.AccessKey = getEnvAsString("AMAZON_ACCESS_KEY", books.AccessKey)
	books.SecretKey = getEnvAsString("AMAZON_SECRET_KEY", books.SecretKey)
	books.PartnerTag = getEnvAsString("AMAZON_PARTNER_TAG", books.PartnerTag)
	books.Region = getEnvAsString("AMAZON_REGION", books.Region)
	books.CacheURL = getEnvAsString("REDIS_URL", books.CacheURL)

	geo := &c.Integrations.Geocode
	geo.APIKey = getEnvAsString("OPENCAGE_API_KEY", geo.APIKey)

	tr := &c.Integrations.Translate
	tr.BaseURL = getEnvAsString("N8N_API_URL", tr.BaseURL)
	tr.APIKey = getEnvAsString("N8N_API_KEY", tr.APIKey)
	tr.WorkflowID = getEnvAsString("N8N_TRANSLATION_WORKFLOW_ID", tr.WorkflowID)
}

// applyKeyring fills secrets that neither the file nor the environment set.
func (c *Config) applyKeyring() {
	in := &c.Integrations
	if in.Books.SecretKey == "" {
		in.Books.SecretKey = lookupSecret(constants.KeyringAmazonSecret, "")
	}
	if in.Geocode.APIKey == "" {
		in.Geocode.APIKey = lookupSecret(constants.KeyringOpenCageKey, "")
	}
	if in.Translate.APIKey == "" {
		in.Translate.APIKey = lookupSecret(constants.KeyringN8NKey, "")
	}
}

// resolveModes picks live mode for any integration left unset whose
// credentials are configured, and static mode otherwise.
func (c *Config) resolveModes() {
	in := &c.Integrations
	in.Auth.Mode = resolve(in.Auth.Mode, in.Auth.URL != "" && in.Auth.AnonKey != "")
	in.Books.Mode = resolve(in.Books.Mode, in.Books.AccessKey != "" && in.Books.SecretKey != "")
	in.Geocode.Mode = resolve(in.Geocode.Mode, in.Geocode.APIKey != "")
	in.Translate.Mode = resolve(in.Translate.Mode, in.Translate.WorkflowID != "")
}

func resolve(mode constants.IntegrationMode, haveCredentials bool) constants.IntegrationMode {
	switch constants.IntegrationMode(strings.ToLower(string(mode))) {
	case constants.ModeLive:
		return constants.ModeLive
	case constants.ModeStatic:
		return constants.ModeStatic
	}
	if haveCredentials {
		return constants.ModeLive
	}
	return constants.ModeStatic
}

// ExpandHome replaces a leading "~" with the current user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
