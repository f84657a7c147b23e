package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/cyberguard/internal/bank"
	"github.com/verte-zerg/cyberguard/internal/config"
)

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Game.Shuffle != nil || cfg.Game.Player != nil {
		t.Fatalf("expected commented template to leave values unset: %+v", cfg.Game)
	}
}

func TestHistoryConfig(t *testing.T) {
	cfg, err := historyConfig(" Easy ", " ava ", "2025-03-04", 5)
	if err != nil {
		t.Fatalf("history config: %v", err)
	}
	if cfg.Difficulty != "easy" || cfg.Player != "ava" || cfg.Last != 5 || cfg.Since == nil {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if _, err := historyConfig("", "", "03/04/2025", 0); err == nil {
		t.Fatalf("expected invalid date error")
	}
	if _, err := historyConfig("", "", "", -1); err == nil {
		t.Fatalf("expected negative last error")
	}
}

func TestWriteBankSummary(t *testing.T) {
	b, err := bank.Default()
	if err != nil {
		t.Fatalf("default bank: %v", err)
	}
	var buf bytes.Buffer
	if err := writeBankSummary(&buf, "", b); err != nil {
		t.Fatalf("summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"built-in", "easy", "12s per question", "hard", "10 questions"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
