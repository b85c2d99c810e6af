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
	if cfg.Playback.Rate != nil || cfg.Speech.Engine != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[playback]
rate = 1.5
target = false
target-lang = "ru-RU"

[speech]
engine = "simulated"

[stats]
cap = 5

[ui]
theme = "dark"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Playback.Rate == nil || *cfg.Playback.Rate != 1.5 {
		t.Fatalf("unexpected rate: %v", cfg.Playback.Rate)
	}
	if cfg.Playback.Target == nil || *cfg.Playback.Target {
		t.Fatalf("expected target=false")
	}
	if cfg.Playback.TargetLang == nil || *cfg.Playback.TargetLang != "ru-RU" {
		t.Fatalf("unexpected target-lang: %v", cfg.Playback.TargetLang)
	}
	if cfg.Speech.Engine == nil || *cfg.Speech.Engine != "simulated" {
		t.Fatalf("unexpected engine: %v", cfg.Speech.Engine)
	}
	if cfg.Stats.Cap == nil || *cfg.Stats.Cap != 5 {
		t.Fatalf("unexpected cap: %v", cfg.Stats.Cap)
	}
	if cfg.Stats.Slots != nil {
		t.Fatalf("expected slots to stay unset")
	}
	if cfg.UI.Theme == nil || *cfg.UI.Theme != "dark" {
		t.Fatalf("unexpected theme: %v", cfg.UI.Theme)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[playback]\nspeed = 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "playback.speed") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_STATE_HOME", dir)
	if got := DefaultConfigPath(); got != filepath.Join(dir, "phrasedrill", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join(dir, "phrasedrill", "phrasedrill.db") {
		t.Fatalf("unexpected db path: %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join(dir, "phrasedrill", "phrasedrill.log") {
		t.Fatalf("unexpected log path: %s", got)
	}
}
