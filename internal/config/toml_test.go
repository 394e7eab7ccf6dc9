package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Play.Length != nil || cfg.Stats.HistoryFile != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[play]
length = 5
ascii = true

[stats]
history-file = "/tmp/scores.history"
journal = false
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Play.Length == nil || *cfg.Play.Length != 5 {
		t.Fatalf("unexpected length: %v", cfg.Play.Length)
	}
	if cfg.Play.ASCII == nil || !*cfg.Play.ASCII {
		t.Fatalf("expected ascii = true")
	}
	if cfg.Play.Reveal != nil {
		t.Fatalf("expected reveal to stay unset")
	}
	if cfg.Stats.HistoryFile == nil || *cfg.Stats.HistoryFile != "/tmp/scores.history" {
		t.Fatalf("unexpected history file: %v", cfg.Stats.HistoryFile)
	}
	if cfg.Stats.Journal == nil || *cfg.Stats.Journal {
		t.Fatalf("expected journal = false")
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[play]\ncolour = \"red\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "colour") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "codebreaker", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "codebreaker", "codebreaker.db") {
		t.Fatalf("unexpected db path %q", got)
	}
}

func TestDefaultHistoryPathInHome(t *testing.T) {
	t.Setenv("HOME", "/home/player")
	if got := DefaultHistoryPath(); got != filepath.Join("/home/player", HistoryFileName) {
		t.Fatalf("unexpected history path %q", got)
	}
}
