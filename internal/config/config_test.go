package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "CLIPDROP_API_KEY", "CLIPDROP_API_URL", "GENERATION_TIMEOUT",
		"PINATA_API_KEY", "PINATA_API_SECRET", "PINATA_JWT", "PINATA_API_URL",
		"PINATA_GATEWAY_URL", "PROMPT_EXCERPT_LENGTH", "MONGODB_URI",
		"MONGODB_DATABASE", "PINATA_TIMEOUT", "STORE_TIMEOUT",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("expected port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.Clipdrop.Timeout != 60*time.Second {
		t.Errorf("expected 60s timeout, got %s", cfg.Clipdrop.Timeout)
	}
	if cfg.Pinata.PromptExcerptLength != 50 {
		t.Errorf("expected excerpt length 50, got %d", cfg.Pinata.PromptExcerptLength)
	}
	if cfg.Pinata.GatewayURL != DefaultPinataGatewayURL {
		t.Errorf("unexpected gateway %q", cfg.Pinata.GatewayURL)
	}
	if cfg.Store.Database != "aleart" {
		t.Errorf("expected database aleart, got %q", cfg.Store.Database)
	}
	if cfg.PublishingEnabled() {
		t.Error("publishing should be disabled without a JWT")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if cfg.Pinata.Timeout != 60*time.Second || cfg.Store.Timeout != 10*time.Second {
		t.Errorf("unexpected step timeouts %s / %s", cfg.Pinata.Timeout, cfg.Store.Timeout)
	}
	if cfg.RequestBudget() != 130*time.Second {
		t.Errorf("expected 130s request budget, got %s", cfg.RequestBudget())
	}
	if cfg.Addr() != ":5000" {
		t.Errorf("expected :5000, got %q", cfg.Addr())
	}
}

func TestLoadFileThenEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
port = 7000

[clipdrop]
api_key = "file-key"
timeout_seconds = 30

[pinata]
jwt = "file-jwt"
prompt_excerpt_length = 20

[store]
uri = "sqlite:///tmp/images.db"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("CLIPDROP_API_KEY", "env-key")
	t.Setenv("PORT", "9000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 9000 {
		t.Errorf("env PORT should win, got %d", cfg.Port)
	}
	if cfg.Clipdrop.APIKey != "env-key" {
		t.Errorf("env key should win, got %q", cfg.Clipdrop.APIKey)
	}
	if cfg.Clipdrop.Timeout != 30*time.Second {
		t.Errorf("expected 30s from file, got %s", cfg.Clipdrop.Timeout)
	}
	if cfg.Pinata.JWT != "file-jwt" || !cfg.PublishingEnabled() {
		t.Error("expected publishing enabled from file JWT")
	}
	if cfg.Pinata.PromptExcerptLength != 20 {
		t.Errorf("expected excerpt length 20, got %d", cfg.Pinata.PromptExcerptLength)
	}
	if cfg.Store.URI != "sqlite:///tmp/images.db" {
		t.Errorf("unexpected store uri %q", cfg.Store.URI)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("port = [nope"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"port out of range", func(c *Config) { c.Port = 70000 }, true},
		{"bad clipdrop url", func(c *Config) { c.Clipdrop.URL = "not a url" }, true},
		{"zero timeout", func(c *Config) { c.Clipdrop.Timeout = 0 }, true},
		{"zero excerpt", func(c *Config) { c.Pinata.PromptExcerptLength = 0 }, true},
		{"zero publish timeout", func(c *Config) { c.Pinata.Timeout = 0 }, true},
		{"zero store timeout", func(c *Config) { c.Store.Timeout = 0 }, true},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			tt.mutate(cfg)

			err = cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := WriteExample(path); err != nil {
		t.Fatalf("WriteExample failed: %v", err)
	}
	if _, err := LoadFile(path); err != nil {
		t.Errorf("example should parse: %v", err)
	}

	// Existing files are left alone.
	if err := os.WriteFile(path, []byte("port = 1234\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := WriteExample(path); err != nil {
		t.Fatalf("WriteExample failed: %v", err)
	}
	fc, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if fc.Port != 1234 {
		t.Errorf("existing file was overwritten")
	}
}
