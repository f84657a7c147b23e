// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/verte-zerg/cyberguard/internal/audio"
	"github.com/verte-zerg/cyberguard/internal/bank"
	"github.com/verte-zerg/cyberguard/internal/certificate"
	"github.com/verte-zerg/cyberguard/internal/flow"
	"github.com/verte-zerg/cyberguard/internal/model"
	"github.com/verte-zerg/cyberguard/internal/quiz"
	"github.com/verte-zerg/cyberguard/internal/result"
)

// Recorder persists finished results.
type Recorder interface {
	InsertResult(ctx context.Context, rec model.ResultRecord) (int64, error)
}

// Options wires the model's collaborators. Nil collaborators are skipped.
type Options struct {
	Bank      *bank.Bank
	Order     quiz.Orderer
	Notifier  audio.Notifier
	Exporter  certificate.Exporter
	Recorder  Recorder
	SkipIntro bool
	Player    string
	Now       func() time.Time
}

// Model implements the Bubble Tea quiz UI.
type Model struct {
	bank     *bank.Bank
	order    quiz.Orderer
	notifier audio.Notifier
	exporter certificate.Exporter
	recorder Recorder
	now      func() time.Time

	flow *flow.Controller

	width  int
	height int

	intro intro

	nameInput textinput.Model
	nameErr   string

	difficulties []model.DifficultyConfig
	cursor       int
	selectErr    string

	session     *quiz.Session
	sessionID   string
	startedAt   time.Time
	questionBar progress.Model
	timerBar    progress.Model
	lowTimeBar  progress.Model

	cert         result.Certificate
	exportStatus string
	exporting    bool
}

type countdownMsg struct {
	tok quiz.Token
}

type feedbackDoneMsg struct {
	tok quiz.Token
}

type exportDoneMsg struct {
	artifact certificate.Artifact
	err      error
}

var (
	textStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")).Bold(true)
	accentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")).Bold(true)
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	cardStyle      = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
	activeCard     = cardStyle.BorderForeground(lipgloss.Color("#C89A3A"))
	correctCard    = cardStyle.BorderForeground(lipgloss.Color("#22C55E"))
	incorrectCard  = cardStyle.BorderForeground(lipgloss.Color("#FF4D4F"))
	difficultyTint = map[string]lipgloss.Style{
		"easy":   successStyle,
		"medium": warnStyle,
		"hard":   errorStyle,
	}
)

const barWidth = 40

// NewModel constructs the quiz TUI model.
func NewModel(opts Options) *Model {
	m := &Model{
		bank:     opts.Bank,
		order:    opts.Order,
		notifier: opts.Notifier,
		exporter: opts.Exporter,
		recorder: opts.Recorder,
		now:      opts.Now,
	}
	if m.notifier == nil {
		m.notifier = audio.Nop{}
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.flow = flow.New(opts.Bank)
	m.difficulties = opts.Bank.Configs()
	m.nameInput = newNameInput(opts.Player)
	m.questionBar = progress.New(progress.WithSolidFill("#22C55E"), progress.WithoutPercentage(), progress.WithWidth(barWidth))
	m.timerBar = progress.New(progress.WithSolidFill("#06B6D4"), progress.WithoutPercentage(), progress.WithWidth(barWidth))
	m.lowTimeBar = progress.New(progress.WithSolidFill("#FF4D4F"), progress.WithoutPercentage(), progress.WithWidth(barWidth))
	if opts.SkipIntro {
		if err := m.flow.FinishIntro(); err != nil {
			logErrf("failed to skip intro: %v\n", err)
		}
	}
	return m
}

func newNameInput(player string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Enter your name..."
	ti.Prompt = "> "
	ti.CharLimit = flow.MaxNameLength
	ti.Width = flow.MaxNameLength
	ti.SetValue(player)
	ti.Focus()
	return ti
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.flow.Screen() != flow.Intro {
		return textinput.Blink
	}
	m.notifier.Notify(audio.Boot)
	return m.intro.start()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.abandonQuiz()
			return m, tea.Quit
		}
		return m.updateKey(msg)
	case introStepMsg:
		return m, m.updateIntroStep(msg)
	case introDoneMsg:
		return m, m.finishIntro(msg)
	case countdownMsg:
		return m, m.handleCountdown(msg)
	case feedbackDoneMsg:
		return m, m.handleFeedbackDone(msg)
	case exportDoneMsg:
		m.handleExportDone(msg)
		return m, nil
	}
	if m.flow.Screen() == flow.NameEntry {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.flow.Screen() {
	case flow.Intro:
		return m, m.skipIntro()
	case flow.NameEntry:
		return m.updateName(msg)
	case flow.DifficultySelect:
		return m.updateDifficulty(msg)
	case flow.Quiz:
		return m.updateQuiz(msg)
	case flow.Result:
		return m.updateResult(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.flow.Screen() {
	case flow.Intro:
		content = m.viewIntro()
	case flow.NameEntry:
		content = m.viewName()
	case flow.DifficultySelect:
		content = m.viewDifficulty()
	case flow.Quiz:
		content = m.viewQuiz()
	case flow.Result:
		content = m.viewResult()
	}
	footer := footerStyle.Render(m.keyHints())
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) keyHints() string {
	switch m.flow.Screen() {
	case flow.Intro:
		if m.intro.canSkip() {
			return "any key: skip intro  ctrl+c: quit"
		}
		return "ctrl+c: quit"
	case flow.NameEntry:
		return "enter: proceed  ctrl+c: quit"
	case flow.DifficultySelect:
		return "↑/↓: choose  enter: start  1-3: quick pick  q: quit"
	case flow.Quiz:
		return "a-d / 1-4: answer  esc: abandon"
	case flow.Result:
		return "r: try again  e: export certificate  q: quit"
	}
	return ""
}

func (m *Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		if err := m.flow.SubmitName(m.nameInput.Value()); err != nil {
			m.nameErr = err.Error()
			return m, nil
		}
		m.nameErr = ""
		m.nameInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) updateDifficulty(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.difficulties)-1 {
			m.cursor++
		}
		return m, nil
	case "enter", " ":
		return m, m.selectDifficulty(m.cursor)
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		r := msg.Runes[0]
		if r >= '1' && r <= '9' {
			return m, m.selectDifficulty(int(r - '1'))
		}
	}
	return m, nil
}

func (m *Model) selectDifficulty(idx int) tea.Cmd {
	if idx < 0 || idx >= len(m.difficulties) {
		return nil
	}
	m.cursor = idx
	key := m.difficulties[idx].Key
	if err := m.flow.SelectDifficulty(key); err != nil {
		m.selectErr = err.Error()
		return nil
	}
	session, err := quiz.Start(m.bank, key, m.order)
	if err != nil {
		// The bank validated the key, so this is a broken bank.
		logErrf("failed to start quiz: %v\n", err)
		m.selectErr = err.Error()
		if aerr := m.flow.Abandon(); aerr != nil {
			logErrf("failed to leave quiz: %v\n", aerr)
		}
		return nil
	}
	m.selectErr = ""
	m.session = session
	m.sessionID = uuid.New().String()
	m.startedAt = m.now()
	return countdown(session.Token())
}

func (m *Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "r":
		if err := m.flow.Restart(); err != nil {
			logErrf("failed to restart: %v\n", err)
			return m, nil
		}
		m.session = nil
		m.cert = result.Certificate{}
		m.exportStatus = ""
		return m, nil
	case "e":
		return m, m.exportCertificate()
	}
	return m, nil
}

func (m *Model) exportCertificate() tea.Cmd {
	if m.exporter == nil {
		m.exportStatus = "certificate export is not configured"
		return nil
	}
	if m.exporting {
		return nil
	}
	m.exporting = true
	m.exportStatus = "exporting certificate..."
	exporter := m.exporter
	cert := m.cert
	return func() tea.Msg {
		artifact, err := exporter.Export(context.Background(), cert)
		return exportDoneMsg{artifact: artifact, err: err}
	}
}

func (m *Model) handleExportDone(msg exportDoneMsg) {
	m.exporting = false
	if msg.err != nil {
		logErrf("failed to export certificate: %v\n", msg.err)
		m.exportStatus = "export failed: " + msg.err.Error()
		return
	}
	m.exportStatus = "certificate saved to " + msg.artifact.Path
}

func (m *Model) recordResult(res model.Result, endedAt time.Time) {
	if m.recorder == nil {
		return
	}
	rec := model.ResultRecord{
		SessionID:     m.sessionID,
		Player:        m.flow.PlayerName(),
		Difficulty:    res.Difficulty,
		Score:         res.Score,
		Total:         res.Total,
		Tier:          m.cert.Tier.String(),
		CertificateID: m.cert.ID,
		StartedAt:     m.startedAt,
		EndedAt:       endedAt,
		DurationMs:    endedAt.Sub(m.startedAt).Milliseconds(),
	}
	if _, err := m.recorder.InsertResult(context.Background(), rec); err != nil {
		logErrf("failed to save result: %v\n", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
