// Package flow sequences the game screens and carries player data between them.
package flow

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/cyberguard/internal/bank"
)

// MaxNameLength bounds player names in runes.
const MaxNameLength = 30

// Screen is a top-level game screen.
type Screen int

const (
	Intro Screen = iota
	NameEntry
	DifficultySelect
	Quiz
	Result
)

func (s Screen) String() string {
	switch s {
	case Intro:
		return "intro"
	case NameEntry:
		return "name"
	case DifficultySelect:
		return "difficulty"
	case Quiz:
		return "quiz"
	case Result:
		return "result"
	default:
		return fmt.Sprintf("screen(%d)", int(s))
	}
}

var (
	// ErrEmptyName is returned for empty or whitespace-only names.
	ErrEmptyName = errors.New("player name is empty")
	// ErrNameTooLong is returned for names over MaxNameLength runes.
	ErrNameTooLong = errors.New("player name is too long")
	// ErrInvalidTransition is returned when an operation does not apply to the current screen.
	ErrInvalidTransition = errors.New("invalid screen transition")
)

// Difficulties reports which difficulty keys exist.
type Difficulties interface {
	Has(key string) bool
}

// Controller is the screen state machine.
type Controller struct {
	difficulties Difficulties

	screen     Screen
	playerName string
	difficulty string
	score      int
	total      int
}

// New returns a controller on the Intro screen.
func New(difficulties Difficulties) *Controller {
	return &Controller{difficulties: difficulties, screen: Intro}
}

// Screen returns the active screen.
func (c *Controller) Screen() Screen { return c.screen }

// PlayerName returns the submitted player name.
func (c *Controller) PlayerName() string { return c.playerName }

// Difficulty returns the selected difficulty key.
func (c *Controller) Difficulty() string { return c.difficulty }

// Score returns the score of the last finished quiz.
func (c *Controller) Score() int { return c.score }

// Total returns the question count of the last finished quiz.
func (c *Controller) Total() int { return c.total }

func (c *Controller) expect(screen Screen, op string) error {
	if c.screen != screen {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, op, c.screen)
	}
	return nil
}

// FinishIntro moves from Intro to NameEntry.
func (c *Controller) FinishIntro() error {
	if err := c.expect(Intro, "finish intro"); err != nil {
		return err
	}
	c.screen = NameEntry
	return nil
}

// SubmitName stores the trimmed name and moves to DifficultySelect.
// Rejected names leave the controller on NameEntry.
func (c *Controller) SubmitName(name string) error {
	if err := c.expect(NameEntry, "submit name"); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("%w: max %d characters", ErrNameTooLong, MaxNameLength)
	}
	c.playerName = name
	c.screen = DifficultySelect
	return nil
}

// SelectDifficulty moves to Quiz when key exists in the bank.
func (c *Controller) SelectDifficulty(key string) error {
	if err := c.expect(DifficultySelect, "select difficulty"); err != nil {
		return err
	}
	if !c.difficulties.Has(key) {
		return fmt.Errorf("%w: %q", bank.ErrUnknownDifficulty, key)
	}
	c.difficulty = key
	c.screen = Quiz
	return nil
}

// FinishQuiz records the final score and moves to Result.
func (c *Controller) FinishQuiz(score, total int) error {
	if err := c.expect(Quiz, "finish quiz"); err != nil {
		return err
	}
	c.score = score
	c.total = total
	c.screen = Result
	return nil
}

// Abandon leaves a running quiz for DifficultySelect without a result.
func (c *Controller) Abandon() error {
	if err := c.expect(Quiz, "abandon quiz"); err != nil {
		return err
	}
	c.score = 0
	c.screen = DifficultySelect
	return nil
}

// Restart returns to DifficultySelect with the score reset and the name kept.
func (c *Controller) Restart() error {
	if c.screen == DifficultySelect && c.playerName != "" {
		c.score = 0
		return nil
	}
	if err := c.expect(Result, "restart"); err != nil {
		return err
	}
	c.score = 0
	c.screen = DifficultySelect
	return nil
}
