// Package audio provides fire-and-forget feedback notifications.
package audio

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Event is a feedback notification kind.
type Event int

const (
	Typing Event = iota
	Correct
	Wrong
	Victory
	Boot
)

func (e Event) String() string {
	switch e {
	case Typing:
		return "typing"
	case Correct:
		return "correct"
	case Wrong:
		return "wrong"
	case Victory:
		return "victory"
	case Boot:
		return "boot"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// Notifier receives feedback events. Implementations must not block.
type Notifier interface {
	Notify(Event)
}

// Nop discards every event.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(Event) {}

// Bell rings the terminal bell for answer and milestone events.
type Bell struct {
	w   io.Writer
	err func(error)
}

var bellPatterns = map[Event]string{
	Correct: "\a",
	Wrong:   "\a",
	Victory: "\a\a\a",
	Boot:    "\a",
}

// NewBell returns a Bell writing to w. Write errors go to onErr.
func NewBell(w io.Writer, onErr func(error)) *Bell {
	return &Bell{w: w, err: onErr}
}

// Notify implements Notifier.
func (b *Bell) Notify(e Event) {
	pattern, ok := bellPatterns[e]
	if !ok {
		return
	}
	if _, err := io.WriteString(b.w, pattern); err != nil && b.err != nil {
		b.err(fmt.Errorf("failed to ring bell for %s: %w", e, err))
	}
}

// Safe shields the caller from a misbehaving notifier.
type Safe struct {
	Next  Notifier
	OnErr func(error)
}

// Notify implements Notifier. Panics are recovered and reported.
func (s Safe) Notify(e Event) {
	if s.Next == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && s.OnErr != nil {
			s.OnErr(fmt.Errorf("notifier panic on %s: %v", e, r))
		}
	}()
	s.Next.Notify(e)
}

// ForTerminal returns a bell on stderr when enabled and stderr is a
// terminal, and Nop otherwise. Stdout belongs to the renderer.
func ForTerminal(enabled bool, onErr func(error)) Notifier {
	return forFile(enabled, os.Stderr, term.IsTerminal, onErr)
}

type fileWriter interface {
	io.Writer
	Fd() uintptr
}

func forFile(enabled bool, f fileWriter, isTerminal func(int) bool, onErr func(error)) Notifier {
	if !enabled || !isTerminal(int(f.Fd())) {
		return Nop{}
	}
	return Safe{Next: NewBell(f, onErr), OnErr: onErr}
}
