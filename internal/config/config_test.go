// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.BaseURL != "http://127.0.0.1:9000" {
		t.Errorf("BaseURL = %q, want http://127.0.0.1:9000", cfg.Server.BaseURL)
	}
	if cfg.Server.Timeout() != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Server.Timeout())
	}
	if cfg.Server.RetryDelay() != 3*time.Second {
		t.Errorf("RetryDelay = %v, want 3s", cfg.Server.RetryDelay())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

func TestLoadFromPathTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
version = "0.1.0"

[server]
base_url = "http://10.0.0.5:9000"
timeout_secs = 8

[ui]
theme = "light"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.Server.BaseURL != "http://10.0.0.5:9000" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSecs != 8 {
		t.Errorf("TimeoutSecs = %d, want 8", cfg.Server.TimeoutSecs)
	}
	// Unset fields fall back to defaults.
	if cfg.Server.RetryDelaySecs != 3 {
		t.Errorf("RetryDelaySecs = %d, want default 3", cfg.Server.RetryDelaySecs)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.UI.Theme)
	}
}

func TestSaveTOMLRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Server.BaseURL = "https://auth.example.net"
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config perms = %o, want 0600", perm)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.Server.BaseURL != "https://auth.example.net" {
		t.Errorf("BaseURL = %q after roundtrip", loaded.Server.BaseURL)
	}

	// The atomic write must not leave its temp file behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".tmp-") {
			t.Errorf("temp file %q left behind after save", entry.Name())
		}
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("AUTHCODE_SERVER_URL", "http://envhost:9000")
	t.Setenv("AUTHCODE_TIMEOUT_SECS", "9")
	t.Setenv("AUTHCODE_RETRY_DELAY_SECS", "7")
	t.Setenv("AUTHCODE_THEME", "auto")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Server.BaseURL != "http://envhost:9000" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSecs != 9 {
		t.Errorf("TimeoutSecs = %d", cfg.Server.TimeoutSecs)
	}
	if cfg.Server.RetryDelaySecs != 7 {
		t.Errorf("RetryDelaySecs = %d", cfg.Server.RetryDelaySecs)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("Theme = %q", cfg.UI.Theme)
	}
}

func TestEnvOverrideIgnoresBadNumbers(t *testing.T) {
	t.Setenv("AUTHCODE_TIMEOUT_SECS", "not-a-number")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if cfg.Server.TimeoutSecs != 5 {
		t.Errorf("TimeoutSecs = %d, want default 5", cfg.Server.TimeoutSecs)
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"default", func(c *Config) {}, true},
		{"https url", func(c *Config) { c.Server.BaseURL = "https://auth.example.net" }, true},
		{"relative url", func(c *Config) { c.Server.BaseURL = "auth.example.net" }, false},
		{"bad scheme", func(c *Config) { c.Server.BaseURL = "ftp://host" }, false},
		{"empty url", func(c *Config) { c.Server.BaseURL = "" }, false},
		{"zero timeout", func(c *Config) { c.Server.TimeoutSecs = 0 }, false},
		{"huge timeout", func(c *Config) { c.Server.TimeoutSecs = 500 }, false},
		{"zero retry delay", func(c *Config) { c.Server.RetryDelaySecs = 0 }, false},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

// =============================================================================
// GLOBAL SINGLETON
// =============================================================================

func TestSetGlobal(t *testing.T) {
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	cfg := Default()
	cfg.Server.BaseURL = "http://global-test:9000"
	SetGlobal(cfg)

	if got := Global().Server.BaseURL; got != "http://global-test:9000" {
		t.Errorf("Global().Server.BaseURL = %q", got)
	}
}

// TestConfigConcurrentAccess checks Global/SetGlobal under concurrent use.
// Run with: go test -race ./internal/config/
func TestConfigConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()
	SetGlobal(Default())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			_ = Global().Server.BaseURL
		}()
	}
	wg.Wait()
}

// =============================================================================
// WATCHER
// =============================================================================

func TestWatchFileReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := SaveTOML(Default(), path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	reloaded := make(chan *Config, 1)
	w, err := WatchFile(path, func(c *Config) {
		select {
		case reloaded <- c:
		default:
		}
	})
	if err != nil {
		t.Fatalf("WatchFile failed: %v", err)
	}
	defer w.Close()

	cfg := Default()
	cfg.Server.BaseURL = "http://changed:9000"
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	select {
	case c := <-reloaded:
		if c.Server.BaseURL != "http://changed:9000" {
			t.Errorf("reloaded BaseURL = %q", c.Server.BaseURL)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within deadline")
	}
}
