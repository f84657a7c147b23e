package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/cyberguard/internal/certificate"
	"github.com/verte-zerg/cyberguard/internal/result"
)

var tierStyles = map[result.Tier]lipgloss.Style{
	result.Champion:      titleStyle,
	result.Expert:        accentStyle,
	result.Good:          warnStyle,
	result.NeedsTraining: errorStyle.Bold(true),
}

var tierMessages = map[result.Tier]string{
	result.Champion:      "Flawless! You are a true guardian of the digital realm.",
	result.Expert:        "Excellent work! You know how to stay safe online.",
	result.Good:          "Nice effort! A little more practice will make you an expert.",
	result.NeedsTraining: "Keep learning! Every expert started as a beginner.",
}

func (m *Model) viewName() string {
	lines := []string{
		titleStyle.Render("IDENTIFY YOURSELF, AGENT"),
		mutedStyle.Render("Enter your name to begin training"),
		"",
		m.nameInput.View(),
	}
	if m.nameErr != "" {
		lines = append(lines, "", errorStyle.Render(m.nameErr))
	}
	return activeCard.Width(48).Render(strings.Join(lines, "\n"))
}

func (m *Model) viewDifficulty() string {
	lines := []string{
		titleStyle.Render("SELECT TRAINING LEVEL"),
		mutedStyle.Render("Welcome, " + m.flow.PlayerName()),
		"",
	}
	for i, cfg := range m.difficulties {
		tint, ok := difficultyTint[cfg.Key]
		if !ok {
			tint = accentStyle
		}
		marker := "  "
		name := tint.Render(fmt.Sprintf("%d. %s", i+1, strings.ToUpper(cfg.Name)))
		if i == m.cursor {
			marker = selectedStyle.Render("> ")
			name = tint.Underline(true).Render(fmt.Sprintf("%d. %s", i+1, strings.ToUpper(cfg.Name)))
		}
		lines = append(lines,
			marker+name+"  "+mutedStyle.Render(fmt.Sprintf("%ds per question", cfg.TimeLimit)),
			"   "+textStyle.Render(cfg.Description),
			"",
		)
	}
	if m.selectErr != "" {
		lines = append(lines, errorStyle.Render(m.selectErr))
	}
	return cardStyle.Width(64).Render(strings.TrimRight(strings.Join(lines, "\n"), "\n"))
}

func (m *Model) viewResult() string {
	tier := m.cert.Tier
	style, ok := tierStyles[tier]
	if !ok {
		style = textStyle
	}
	lines := []string{
		style.Render(tier.Label()),
		mutedStyle.Render(tierMessages[tier]),
		"",
		textStyle.Render(fmt.Sprintf("Score: %d/%d (%s)", m.flow.Score(), m.flow.Total(), m.cert.PercentText())),
		"",
	}
	card := certificateCard.BorderForeground(style.GetForeground()).
		Render(strings.Join(certificate.Render(m.cert), "\n"))
	lines = append(lines, card)
	if m.exportStatus != "" {
		lines = append(lines, "", mutedStyle.Render(m.exportStatus))
	}
	return strings.Join(lines, "\n")
}

var certificateCard = lipgloss.NewStyle().Border(lipgloss.DoubleBorder(), true).Padding(0, 1)
