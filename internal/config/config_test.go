package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/mindfulpath/internal/constants"
)

// clearIntegrationEnv keeps the developer's shell from leaking into tests
func clearIntegrationEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MINDFULPATH_STORAGE", "MINDFULPATH_SESSION_TTL", "MINDFULPATH_HTTP_ADDR",
		"SUPABASE_URL", "SUPABASE_ANON_KEY", "AMAZON_ACCESS_KEY", "AMAZON_SECRET_KEY",
		"OPENCAGE_API_KEY", "N8N_API_KEY", "N8N_TRANSLATION_WORKFLOW_ID", "REDIS_URL",
	} {
		t.Setenv(key, "")
	}
	orig := lookupSecret
	lookupSecret = func(string, string) string { return "" }
	t.Cleanup(func() { lookupSecret = orig })
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearIntegrationEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Addr != constants.DefaultHTTPAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, constants.DefaultHTTPAddr)
	}
	if cfg.Integrations.Books.CacheTTL != constants.BookCacheDuration {
		t.Errorf("Books.CacheTTL = %v, want %v", cfg.Integrations.Books.CacheTTL, constants.BookCacheDuration)
	}
	if cfg.Integrations.Auth.Mode != constants.ModeStatic {
		t.Errorf("Auth.Mode = %q, want static without credentials", cfg.Integrations.Auth.Mode)
	}
	if cfg.Dir() != filepath.Dir(path) {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), filepath.Dir(path))
	}
}

func TestLoadYAML(t *testing.T) {
	clearIntegrationEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
debug: true
storage:
  dsn: sqlite:///tmp/mindfulpath.db
  session_ttl: 12h
server:
  addr: 0.0.0.0:9000
integrations:
  geocode:
    api_key: oc-key
  translate:
    mode: static
    workflow_id: wf-1
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
	if cfg.Storage.DSN != "sqlite:///tmp/mindfulpath.db" {
		t.Errorf("Storage.DSN = %q", cfg.Storage.DSN)
	}
	if cfg.Storage.SessionTTL != 12*time.Hour {
		t.Errorf("Storage.SessionTTL = %v, want 12h", cfg.Storage.SessionTTL)
	}
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Integrations.Geocode.Mode != constants.ModeLive {
		t.Errorf("Geocode.Mode = %q, want live when api key is set", cfg.Integrations.Geocode.Mode)
	}
	if cfg.Integrations.Translate.Mode != constants.ModeStatic {
		t.Errorf("Translate.Mode = %q, explicit static should win", cfg.Integrations.Translate.Mode)
	}
	// Untouched defaults survive a partial file.
	if cfg.Integrations.HTTPTimeout != constants.DefaultHTTPTimeout {
		t.Errorf("HTTPTimeout = %v, want default", cfg.Integrations.HTTPTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearIntegrationEnv(t)
	t.Setenv("MINDFULPATH_STORAGE", "memory://")
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Storage.DSN != "memory://" {
		t.Errorf("Storage.DSN = %q, want env override", cfg.Storage.DSN)
	}
	if cfg.Integrations.Auth.Mode != constants.ModeLive {
		t.Errorf("Auth.Mode = %q, want live with supabase credentials", cfg.Integrations.Auth.Mode)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearIntegrationEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("N8N_TRANSLATION_WORKFLOW_ID=wf-from-dotenv\n"), 0600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	// godotenv never overwrites variables that are already present, so unset it.
	os.Unsetenv("N8N_TRANSLATION_WORKFLOW_ID")
	t.Cleanup(func() { os.Unsetenv("N8N_TRANSLATION_WORKFLOW_ID") })

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Integrations.Translate.WorkflowID != "wf-from-dotenv" {
		t.Errorf("WorkflowID = %q, want value from .env", cfg.Integrations.Translate.WorkflowID)
	}
	if cfg.Integrations.Translate.Mode != constants.ModeLive {
		t.Errorf("Translate.Mode = %q, want live", cfg.Integrations.Translate.Mode)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	clearIntegrationEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage: [unclosed"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	got, err := ExpandHome("~/.config/mindfulpath")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if want := filepath.Join(home, ".config/mindfulpath"); got != want {
		t.Errorf("ExpandHome() = %q, want %q", got, want)
	}

	if got, _ := ExpandHome("postgres://db/x"); got != "postgres://db/x" {
		t.Errorf("ExpandHome() changed a non-home path: %q", got)
	}
}

func TestLoadKeyringSecrets(t *testing.T) {
	clearIntegrationEnv(t)
	lookupSecret = func(name, fallback string) string {
		if name == constants.KeyringOpenCageKey {
			return "from-keyring"
		}
		return fallback
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Integrations.Geocode.APIKey != "from-keyring" {
		t.Errorf("Geocode.APIKey = %q, want keyring value", cfg.Integrations.Geocode.APIKey)
	}
	if cfg.Integrations.Geocode.Mode != constants.ModeLive {
		t.Errorf("Geocode.Mode = %q, want live once a key is available", cfg.Integrations.Geocode.Mode)
	}
	if cfg.Integrations.Translate.Mode != constants.ModeStatic {
		t.Errorf("Translate.Mode = %q, want static", cfg.Integrations.Translate.Mode)
	}
}
