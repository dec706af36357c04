package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trends.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestManager_LoadDefaults(t *testing.T) {
	config, err := NewManager().Load("")
	if err != nil {
		t.Fatalf("Expected defaults to load, got: %v", err)
	}

	want := Defaults()
	if config.Server.Port != want.Server.Port {
		t.Errorf("Expected port %d, got %d", want.Server.Port, config.Server.Port)
	}
	if config.Search.Location != "US" || config.Search.Language != "en-US" {
		t.Errorf("Unexpected search defaults: %+v", config.Search)
	}
	if config.Upstream.MaxRetries != 0 {
		t.Errorf("Expected no retries by default, got %d", config.Upstream.MaxRetries)
	}
	if config.Upstream.Timeout != want.Upstream.Timeout {
		t.Errorf("Expected timeout %v, got %v", want.Upstream.Timeout, config.Upstream.Timeout)
	}
}

func TestManager_LoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
upstream:
  timeout: 3s
  max_retries: 2
search:
  location: DE
  language: de-DE
  category: 7
logger:
  level: debug
  format: console
`)

	config, err := NewManager().Load(path)
	if err != nil {
		t.Fatalf("Expected config to load, got: %v", err)
	}

	if config.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", config.Server.Port)
	}
	if config.Server.Host != "0.0.0.0" {
		t.Errorf("Expected default host, got %q", config.Server.Host)
	}
	if config.Upstream.Timeout != 3*time.Second {
		t.Errorf("Expected 3s timeout, got %v", config.Upstream.Timeout)
	}
	if config.Upstream.MaxRetries != 2 {
		t.Errorf("Expected 2 retries, got %d", config.Upstream.MaxRetries)
	}
	if config.Search.Location != "DE" || config.Search.Language != "de-DE" || config.Search.Category != 7 {
		t.Errorf("Unexpected search config: %+v", config.Search)
	}
	if config.Logger.Level != "debug" || config.Logger.Format != "console" {
		t.Errorf("Unexpected logger config: %+v", config.Logger)
	}
}

func TestManager_EnvOverride(t *testing.T) {
	t.Setenv("TRENDS_SERVER_PORT", "7070")
	t.Setenv("TRENDS_SEARCH_LOCATION", "GB")

	config, err := NewManager().Load("")
	if err != nil {
		t.Fatalf("Expected config to load, got: %v", err)
	}

	if config.Server.Port != 7070 {
		t.Errorf("Expected port 7070, got %d", config.Server.Port)
	}
	if config.Search.Location != "GB" {
		t.Errorf("Expected location GB, got %q", config.Search.Location)
	}
}

func TestManager_Invalid(t *testing.T) {
	tests := map[string]string{
		"port":     "server:\n  port: 70000\n",
		"location": "search:\n  location: USA\n",
		"language": "search:\n  language: \"not a tag!\"\n",
		"base url": "search:\n  base_url: trends.google.com\n",
		"retries":  "upstream:\n  max_retries: -1\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewManager().Load(writeConfig(t, content)); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestManager_MissingFile(t *testing.T) {
	if _, err := NewManager().Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestManager_Reload(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")

	m := NewManager()
	if err := m.Reload(); err == nil {
		t.Error("Expected reload before load to fail")
	}

	if _, err := m.Load(path); err != nil {
		t.Fatalf("Expected config to load, got: %v", err)
	}

	if err := os.WriteFile(path, []byte("server:\n  port: 9001\n"), 0644); err != nil {
		t.Fatalf("Failed to rewrite config: %v", err)
	}
	if err := m.Reload(); err != nil {
		t.Fatalf("Expected reload to succeed, got: %v", err)
	}

	if got := m.GetConfig().Server.Port; got != 9001 {
		t.Errorf("Expected port 9001 after reload, got %d", got)
	}
}
