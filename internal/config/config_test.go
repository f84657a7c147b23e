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
	if cfg.Game.Sound != nil {
		t.Fatalf("expected empty config")
	}
}

func TestLoadConfigGameTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[game]
shuffle = true
sound = false
player = "Ava"
certificate-dir = "/tmp/certs"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Game.Shuffle == nil || !*cfg.Game.Shuffle {
		t.Fatalf("expected shuffle=true")
	}
	if cfg.Game.Sound == nil || *cfg.Game.Sound {
		t.Fatalf("expected sound=false")
	}
	if cfg.Game.Player == nil || *cfg.Game.Player != "Ava" {
		t.Fatalf("expected player Ava")
	}
	if cfg.Game.Questions != nil {
		t.Fatalf("expected questions unset")
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[game]\nvolume = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "game.volume") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "cyberguard", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "cyberguard", "cyberguard.db") {
		t.Fatalf("unexpected db path: %s", got)
	}
	if got := DefaultCertificateDir(); got != filepath.Join("/data", "cyberguard", "certificates") {
		t.Fatalf("unexpected certificate dir: %s", got)
	}
}
