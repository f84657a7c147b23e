package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/cyberguard/internal/audio"
	"github.com/verte-zerg/cyberguard/internal/flow"
)

type bootLine struct {
	text  string
	delay time.Duration
}

var bootSequence = []bootLine{
	{"INITIALIZING CYBER SECURITY TRAINING SYSTEM...", 100 * time.Millisecond},
	{"LOADING SECURITY PROTOCOLS...", 80 * time.Millisecond},
	{"[OK] Firewall modules loaded", 60 * time.Millisecond},
	{"[OK] Encryption algorithms initialized", 60 * time.Millisecond},
	{"[OK] Threat detection online", 60 * time.Millisecond},
	{"[OK] Neural network calibrated", 60 * time.Millisecond},
	{"", 200 * time.Millisecond},
	{"RUNNING SECURITY DIAGNOSTICS...", 100 * time.Millisecond},
	{"████████████████████████████████ 100%", 40 * time.Millisecond},
	{"", 200 * time.Millisecond},
	{"[SUCCESS] All systems operational", 80 * time.Millisecond},
	{"", 300 * time.Millisecond},
	{"WELCOME TO CYBER GUARDIAN", 120 * time.Millisecond},
	{"Your journey to cyber safety begins now...", 80 * time.Millisecond},
}

const (
	linePause       = 200 * time.Millisecond
	skipAfter       = time.Second
	introHold       = 1500 * time.Millisecond
	introSkipHold   = 500 * time.Millisecond
	terminalHeading = "CYBER_GUARDIAN_v2.0 - SECURE TERMINAL"
)

type introStepMsg struct {
	gen int
}

type introDoneMsg struct {
	gen int
}

// intro types out the boot sequence one rune at a time.
type intro struct {
	lines   []string
	line    int
	char    int
	elapsed time.Duration
	done    bool
	gen     int
}

func (in *intro) start() tea.Cmd {
	return in.schedule(0)
}

func (in *intro) schedule(d time.Duration) tea.Cmd {
	gen := in.gen
	in.elapsed += d
	return tea.Tick(d, func(time.Time) tea.Msg {
		return introStepMsg{gen: gen}
	})
}

func (in *intro) finish(d time.Duration) tea.Cmd {
	in.done = true
	in.gen++
	gen := in.gen
	return tea.Tick(d, func(time.Time) tea.Msg {
		return introDoneMsg{gen: gen}
	})
}

func (in *intro) canSkip() bool {
	return !in.done && in.elapsed >= skipAfter
}

// step types one rune. It reports whether a non-space rune was typed.
func (in *intro) step() (typed bool, next tea.Cmd) {
	if in.line >= len(bootSequence) {
		return false, in.finish(introHold)
	}
	current := []rune(bootSequence[in.line].text)
	if in.char < len(current) {
		if len(in.lines) == in.line {
			in.lines = append(in.lines, "")
		}
		in.char++
		in.lines[in.line] = string(current[:in.char])
		typed = current[in.char-1] != ' '
		return typed, in.schedule(bootSequence[in.line].delay)
	}
	if len(in.lines) == in.line {
		in.lines = append(in.lines, "")
	}
	in.line++
	in.char = 0
	return false, in.schedule(linePause)
}

func (in *intro) skip() tea.Cmd {
	in.lines = in.lines[:0]
	for _, l := range bootSequence {
		in.lines = append(in.lines, l.text)
	}
	in.line = len(bootSequence)
	return in.finish(introSkipHold)
}

func (m *Model) updateIntroStep(msg introStepMsg) tea.Cmd {
	if m.flow.Screen() != flow.Intro || msg.gen != m.intro.gen || m.intro.done {
		return nil
	}
	typed, next := m.intro.step()
	if typed {
		m.notifier.Notify(audio.Typing)
	}
	return next
}

func (m *Model) skipIntro() tea.Cmd {
	if !m.intro.canSkip() {
		return nil
	}
	return m.intro.skip()
}

func (m *Model) finishIntro(msg introDoneMsg) tea.Cmd {
	if msg.gen != m.intro.gen {
		return nil
	}
	if err := m.flow.FinishIntro(); err != nil {
		return nil
	}
	return textinput.Blink
}

func (m *Model) viewIntro() string {
	rendered := make([]string, 0, len(m.intro.lines)+3)
	rendered = append(rendered, mutedStyle.Render(terminalHeading), "")
	for _, line := range m.intro.lines {
		rendered = append(rendered, styleBootLine(line))
	}
	if !m.intro.done {
		rendered = append(rendered, titleStyle.Render("█"))
	}
	return cardStyle.Width(60).Render(strings.Join(rendered, "\n"))
}

func styleBootLine(line string) string {
	switch {
	case strings.HasPrefix(line, "[OK]"):
		return successStyle.Render(line)
	case strings.HasPrefix(line, "[SUCCESS]"):
		return successStyle.Bold(true).Render(line)
	case strings.Contains(line, "WELCOME"):
		return accentStyle.Render(line)
	case strings.Contains(line, "journey"):
		return mutedStyle.Italic(true).Render(line)
	default:
		return titleStyle.UnsetBold().Render(line)
	}
}
