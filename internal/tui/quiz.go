package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/cyberguard/internal/audio"
	"github.com/verte-zerg/cyberguard/internal/flow"
	"github.com/verte-zerg/cyberguard/internal/quiz"
	"github.com/verte-zerg/cyberguard/internal/result"
)

const (
	hurryThreshold = 3
	questionWidth  = 56
)

var optionLetters = [...]string{"A", "B", "C", "D"}

func countdown(tok quiz.Token) tea.Cmd {
	return tea.Tick(quiz.TickInterval, func(time.Time) tea.Msg {
		return countdownMsg{tok: tok}
	})
}

func feedback(tok quiz.Token) tea.Cmd {
	return tea.Tick(quiz.FeedbackInterval, func(time.Time) tea.Msg {
		return feedbackDoneMsg{tok: tok}
	})
}

// optionForKey maps a-d and 1-4 to an option index.
func optionForKey(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	switch {
	case r >= 'a' && r <= 'd':
		return int(r - 'a'), true
	case r >= 'A' && r <= 'D':
		return int(r - 'A'), true
	case r >= '1' && r <= '4':
		return int(r - '1'), true
	}
	return 0, false
}

func (m *Model) updateQuiz(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	if msg.Type == tea.KeyEsc {
		m.abandonQuiz()
		return m, nil
	}
	option, ok := optionForKey(msg)
	if !ok {
		return m, nil
	}
	accepted, err := m.session.Submit(option)
	if err != nil {
		logErrf("failed to submit answer: %v\n", err)
		return m, nil
	}
	if !accepted {
		return m, nil
	}
	if st, ok := m.session.State().(quiz.ShowingFeedback); ok && st.Correct {
		m.notifier.Notify(audio.Correct)
	} else {
		m.notifier.Notify(audio.Wrong)
	}
	return m, feedback(m.session.Token())
}

func (m *Model) handleCountdown(msg countdownMsg) tea.Cmd {
	if m.session == nil || !m.session.Tick(msg.tok) {
		return nil
	}
	if _, timedOut := m.session.State().(quiz.ShowingFeedback); timedOut {
		m.notifier.Notify(audio.Wrong)
		return feedback(m.session.Token())
	}
	return countdown(msg.tok)
}

func (m *Model) handleFeedbackDone(msg feedbackDoneMsg) tea.Cmd {
	if m.session == nil || !m.session.Advance(msg.tok) {
		return nil
	}
	res, done := m.session.Result()
	if !done {
		return countdown(m.session.Token())
	}
	endedAt := m.now()
	m.cert = result.NewCertificate(m.flow.PlayerName(), res, endedAt)
	m.exportStatus = ""
	if err := m.flow.FinishQuiz(res.Score, res.Total); err != nil {
		logErrf("failed to finish quiz: %v\n", err)
		return nil
	}
	m.recordResult(res, endedAt)
	if m.cert.Tier == result.Champion {
		m.notifier.Notify(audio.Victory)
	}
	return nil
}

// abandonQuiz cancels the running session's timers and leaves the quiz.
func (m *Model) abandonQuiz() {
	if m.session == nil {
		return
	}
	m.session.Abandon()
	if m.flow.Screen() != flow.Quiz {
		return
	}
	if err := m.flow.Abandon(); err != nil {
		logErrf("failed to abandon quiz: %v\n", err)
	}
}

func (m *Model) viewQuiz() string {
	if m.session == nil {
		return ""
	}
	cfg := m.session.Config()
	total := m.session.Total()
	index := m.session.Index()
	q := m.session.Question()

	tint, ok := difficultyTint[cfg.Key]
	if !ok {
		tint = accentStyle
	}
	header := fmt.Sprintf("%s  %s  %s",
		textStyle.Render("AGENT: "+strings.ToUpper(m.flow.PlayerName())),
		tint.Render("MODE: "+strings.ToUpper(cfg.Name)),
		titleStyle.Render(fmt.Sprintf("SCORE: %d/%d", m.session.Score(), total)),
	)

	progressPct := float64(index+1) / float64(total)
	lines := []string{
		header,
		"",
		mutedStyle.Render(fmt.Sprintf("Question %d of %d  %.0f%% complete", index+1, total, progressPct*100)),
		m.questionBar.ViewAs(progressPct),
	}

	var panel string
	cardFrame := activeCard
	switch st := m.session.State().(type) {
	case quiz.AwaitingAnswer:
		lines = append(lines, "", m.viewTimer(st.Remaining, cfg.TimeLimit))
	case quiz.ShowingFeedback:
		panel, cardFrame = feedbackPanel(st, q.Options[q.Correct])
	}

	lines = append(lines, "")
	for _, line := range wrapText(q.Text, questionWidth) {
		lines = append(lines, selectedStyle.Render(line))
	}
	lines = append(lines, "")
	for i, opt := range q.Options {
		lines = append(lines, m.viewOption(i, opt))
	}
	if panel != "" {
		lines = append(lines, "", panel)
	}
	return cardFrame.Width(questionWidth + 6).Render(strings.Join(lines, "\n"))
}

func (m *Model) viewTimer(remaining, limit int) string {
	pct := float64(remaining) / float64(limit)
	label := fmt.Sprintf("TIME: %ds", remaining)
	if remaining <= hurryThreshold {
		return errorStyle.Bold(true).Render(label+"  HURRY!") + "\n" + m.lowTimeBar.ViewAs(pct)
	}
	return accentStyle.Render(label) + "\n" + m.timerBar.ViewAs(pct)
}

func (m *Model) viewOption(i int, text string) string {
	letter := "?"
	if i < len(optionLetters) {
		letter = optionLetters[i]
	}
	label := fmt.Sprintf("[%s] %s", letter, text)
	st, ok := m.session.State().(quiz.ShowingFeedback)
	if !ok {
		return textStyle.Render(label)
	}
	q := m.session.Question()
	switch {
	case i == q.Correct:
		return successStyle.Bold(true).Render(label + "  ✓")
	case i == st.Selected:
		return errorStyle.Render(label + "  ✗")
	default:
		return mutedStyle.Render(label)
	}
}

func feedbackPanel(st quiz.ShowingFeedback, answer string) (string, lipgloss.Style) {
	switch {
	case st.Correct:
		return successStyle.Bold(true).Render("✓ CORRECT!") + "\n" +
			mutedStyle.Render("Great job! Moving on..."), correctCard
	case st.TimedOut:
		return warnStyle.Render("TIME'S UP") + "\n" +
			mutedStyle.Render("Correct answer: "+answer), incorrectCard
	default:
		return errorStyle.Bold(true).Render("✗ INCORRECT") + "\n" +
			mutedStyle.Render("Correct answer: "+answer), incorrectCard
	}
}
