// Package model defines shared data structures.
package model

import "time"

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// Question is a single multiple-choice question.
type Question struct {
	ID      int      `toml:"id" yaml:"id"`
	Text    string   `toml:"question" yaml:"question"`
	Options []string `toml:"options" yaml:"options"`
	Correct int      `toml:"correct" yaml:"correct"`
}

// DifficultyConfig describes one difficulty tier.
type DifficultyConfig struct {
	Key         string `toml:"-"`
	Name        string `toml:"name"`
	TimeLimit   int    `toml:"time-limit"`
	Description string `toml:"description"`
}

// Config defines game settings.
type Config struct {
	QuestionsPath  string
	Shuffle        bool
	Sound          bool
	SkipIntro      bool
	CertificateDir string
	Player         string
}

// HistoryConfig defines filters for the history output.
type HistoryConfig struct {
	Difficulty string
	Player     string
	Since      *time.Time
	Last       int
}

// Result is the outcome of one completed quiz session.
type Result struct {
	Score      int
	Total      int
	Difficulty string
}

// ResultRecord captures a completed session for the history store.
type ResultRecord struct {
	ID            int64
	SessionID     string
	Player        string
	Difficulty    string
	Score         int
	Total         int
	Tier          string
	CertificateID string
	StartedAt     time.Time
	EndedAt       time.Time
	DurationMs    int64
}

// BestScore is the best result per difficulty.
type BestScore struct {
	Difficulty string
	Player     string
	Score      int
	Total      int
	Sessions   int
}
