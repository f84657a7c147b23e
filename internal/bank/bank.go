// Package bank loads and validates difficulty-keyed question sets.
package bank

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/cyberguard/internal/model"
)

//go:embed questions.toml
var defaultBank []byte

var (
	// ErrUnknownDifficulty is returned for difficulty keys missing from the bank.
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	// ErrInvalidBank is returned when a bank fails validation.
	ErrInvalidBank = errors.New("invalid question bank")
)

type tierFile struct {
	Name        string           `toml:"name" yaml:"name"`
	TimeLimit   int              `toml:"time-limit" yaml:"time-limit"`
	Description string           `toml:"description" yaml:"description"`
	Questions   []model.Question `toml:"questions" yaml:"questions"`
}

// Tier is one difficulty tier and its questions.
type Tier struct {
	Config    model.DifficultyConfig
	Questions []model.Question
}

// Bank holds every tier, keyed by difficulty.
type Bank struct {
	tiers map[string]Tier
	keys  []string
}

// Default returns the embedded question bank.
func Default() (*Bank, error) {
	return Parse(defaultBank)
}

// Load reads a bank from path. Files ending in .yaml or .yml are decoded as
// YAML, everything else as TOML. An empty path yields the embedded bank.
func Load(path string) (*Bank, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// Parse decodes and validates a TOML bank.
func Parse(data []byte) (*Bank, error) {
	var raw map[string]tierFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode question bank: %w", err)
	}
	return build(raw)
}

// ParseYAML decodes and validates a YAML bank with the same layout as the
// TOML one.
func ParseYAML(data []byte) (*Bank, error) {
	var raw map[string]tierFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode question bank: %w", err)
	}
	return build(raw)
}

func build(raw map[string]tierFile) (*Bank, error) {
	b := &Bank{tiers: make(map[string]Tier, len(raw))}
	for key, tf := range raw {
		b.tiers[key] = Tier{
			Config: model.DifficultyConfig{
				Key:         key,
				Name:        tf.Name,
				TimeLimit:   tf.TimeLimit,
				Description: tf.Description,
			},
			Questions: tf.Questions,
		}
		b.keys = append(b.keys, key)
	}
	sortKeys(b.keys, b.tiers)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Slower tiers come first, so easy precedes hard.
func sortKeys(keys []string, tiers map[string]Tier) {
	sort.Slice(keys, func(i, j int) bool {
		li := tiers[keys[i]].Config.TimeLimit
		lj := tiers[keys[j]].Config.TimeLimit
		if li == lj {
			return keys[i] < keys[j]
		}
		return li > lj
	})
}

// Validate checks every tier for structural problems.
func (b *Bank) Validate() error {
	if len(b.keys) == 0 {
		return fmt.Errorf("%w: no difficulties defined", ErrInvalidBank)
	}
	for _, key := range b.keys {
		tier := b.tiers[key]
		if tier.Config.Name == "" {
			return fmt.Errorf("%w: %s: missing name", ErrInvalidBank, key)
		}
		if tier.Config.TimeLimit <= 0 {
			return fmt.Errorf("%w: %s: time-limit must be > 0", ErrInvalidBank, key)
		}
		if len(tier.Questions) == 0 {
			return fmt.Errorf("%w: %s: no questions", ErrInvalidBank, key)
		}
		seen := make(map[int]struct{}, len(tier.Questions))
		for i, q := range tier.Questions {
			if _, ok := seen[q.ID]; ok {
				return fmt.Errorf("%w: %s: duplicate question id %d", ErrInvalidBank, key, q.ID)
			}
			seen[q.ID] = struct{}{}
			if q.Text == "" {
				return fmt.Errorf("%w: %s: question %d has no text", ErrInvalidBank, key, i+1)
			}
			if len(q.Options) != model.OptionCount {
				return fmt.Errorf("%w: %s: question %d has %d options, want %d", ErrInvalidBank, key, q.ID, len(q.Options), model.OptionCount)
			}
			if q.Correct < 0 || q.Correct >= len(q.Options) {
				return fmt.Errorf("%w: %s: question %d correct index %d out of range", ErrInvalidBank, key, q.ID, q.Correct)
			}
		}
	}
	return nil
}

// Keys returns difficulty keys in display order.
func (b *Bank) Keys() []string {
	return append([]string(nil), b.keys...)
}

// Has reports whether key names a difficulty in the bank.
func (b *Bank) Has(key string) bool {
	_, ok := b.tiers[key]
	return ok
}

// Lookup returns the tier for key.
func (b *Bank) Lookup(key string) (Tier, error) {
	tier, ok := b.tiers[key]
	if !ok {
		return Tier{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, key)
	}
	return tier, nil
}

// Configs returns the difficulty configs in display order.
func (b *Bank) Configs() []model.DifficultyConfig {
	out := make([]model.DifficultyConfig, 0, len(b.keys))
	for _, key := range b.keys {
		out = append(out, b.tiers[key].Config)
	}
	return out
}
