package bank

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultBankHasTenQuestionsPerTier(t *testing.T) {
	b, err := Default()
	if err != nil {
		t.Fatalf("load default bank: %v", err)
	}
	keys := b.Keys()
	if strings.Join(keys, ",") != "easy,medium,hard" {
		t.Fatalf("unexpected key order: %v", keys)
	}
	for _, key := range keys {
		tier, err := b.Lookup(key)
		if err != nil {
			t.Fatalf("lookup %s: %v", key, err)
		}
		if len(tier.Questions) != 10 {
			t.Fatalf("expected 10 questions for %s, got %d", key, len(tier.Questions))
		}
	}
}

func TestDefaultBankTimeLimits(t *testing.T) {
	b, err := Default()
	if err != nil {
		t.Fatalf("load default bank: %v", err)
	}
	want := map[string]int{"easy": 12, "medium": 9, "hard": 6}
	for _, cfg := range b.Configs() {
		if cfg.TimeLimit != want[cfg.Key] {
			t.Fatalf("expected %s limit %d, got %d", cfg.Key, want[cfg.Key], cfg.TimeLimit)
		}
	}
}

func TestLookupUnknownDifficulty(t *testing.T) {
	b, err := Default()
	if err != nil {
		t.Fatalf("load default bank: %v", err)
	}
	if _, err := b.Lookup("nightmare"); !errors.Is(err, ErrUnknownDifficulty) {
		t.Fatalf("expected ErrUnknownDifficulty, got %v", err)
	}
	if b.Has("nightmare") {
		t.Fatalf("expected Has to reject unknown key")
	}
}

func TestParseRejectsWrongOptionCount(t *testing.T) {
	data := `
[easy]
name = "Easy"
time-limit = 10
description = "x"

[[easy.questions]]
id = 1
question = "Q?"
options = ["a", "b", "c"]
correct = 0
`
	if _, err := Parse([]byte(data)); !errors.Is(err, ErrInvalidBank) {
		t.Fatalf("expected ErrInvalidBank, got %v", err)
	}
}

func TestParseRejectsCorrectIndexOutOfRange(t *testing.T) {
	data := `
[easy]
name = "Easy"
time-limit = 10

[[easy.questions]]
id = 1
question = "Q?"
options = ["a", "b", "c", "d"]
correct = 4
`
	if _, err := Parse([]byte(data)); !errors.Is(err, ErrInvalidBank) {
		t.Fatalf("expected ErrInvalidBank, got %v", err)
	}
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	data := `
[easy]
name = "Easy"
time-limit = 10

[[easy.questions]]
id = 1
question = "Q1?"
options = ["a", "b", "c", "d"]
correct = 0

[[easy.questions]]
id = 1
question = "Q2?"
options = ["a", "b", "c", "d"]
correct = 1
`
	if _, err := Parse([]byte(data)); !errors.Is(err, ErrInvalidBank) {
		t.Fatalf("expected ErrInvalidBank, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.toml")
	data := `
[quick]
name = "Quick"
time-limit = 3
description = "Lightning round"

[[quick.questions]]
id = 7
question = "Is 2FA useful?"
options = ["No", "Yes", "Maybe", "Never"]
correct = 1
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write bank: %v", err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	tier, err := b.Lookup("quick")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if tier.Config.Name != "Quick" || tier.Config.TimeLimit != 3 {
		t.Fatalf("unexpected config: %+v", tier.Config)
	}
	if len(tier.Questions) != 1 || tier.Questions[0].Correct != 1 {
		t.Fatalf("unexpected questions: %+v", tier.Questions)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing bank file")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	data := `
drills:
  name: Drills
  time-limit: 20
  description: Warm-up round
  questions:
    - id: 1
      question: What does MFA stand for?
      options:
        - Multi-Factor Authentication
        - Main Firewall Access
        - Managed File Archive
        - Mobile Fraud Alert
      correct: 0
`
	path := filepath.Join(t.TempDir(), "bank.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write bank: %v", err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatalf("load yaml bank: %v", err)
	}
	tier, err := b.Lookup("drills")
	if err != nil {
		t.Fatalf("lookup drills: %v", err)
	}
	if tier.Config.Name != "Drills" || tier.Config.TimeLimit != 20 || len(tier.Questions) != 1 {
		t.Fatalf("unexpected tier: %+v", tier)
	}
	if q := tier.Questions[0]; q.Text != "What does MFA stand for?" || q.Options[0] != "Multi-Factor Authentication" {
		t.Fatalf("unexpected question: %+v", q)
	}
}

func TestParseYAMLValidates(t *testing.T) {
	data := `
drills:
  name: Drills
  time-limit: 0
  questions: []
`
	if _, err := ParseYAML([]byte(data)); !errors.Is(err, ErrInvalidBank) {
		t.Fatalf("expected ErrInvalidBank, got %v", err)
	}
}
