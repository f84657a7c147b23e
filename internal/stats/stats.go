// Package stats contains result history calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/cyberguard/internal/model"
	"github.com/verte-zerg/cyberguard/internal/result"
)

const sparkChars = " .:-=+*#%@"

// Percentages returns score percentages for each record.
func Percentages(records []model.ResultRecord) []float64 {
	out := make([]float64, 0, len(records))
	for _, rec := range records {
		if rec.Total <= 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, result.Percentage(rec.Score, rec.Total))
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline scaled to 0..100.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	var b strings.Builder
	for _, v := range values {
		pos := v / 100
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints totals for the listed results.
func RenderSummary(w io.Writer, records []model.ResultRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	pcts := Percentages(records)
	var total, best float64
	perfect := 0
	for i, p := range pcts {
		total += p
		if p > best {
			best = p
		}
		if records[i].Score == records[i].Total {
			perfect++
		}
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(records)),
		fmt.Sprintf("Avg Score: %s", result.FormatPercent(total/float64(len(pcts)))),
		fmt.Sprintf("Best Score: %s", result.FormatPercent(best)),
		fmt.Sprintf("Perfect Runs: %d", perfect),
		fmt.Sprintf("Trend: [%s]", Sparkline(pcts)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderResults prints one row per result.
func RenderResults(w io.Writer, records []model.ResultRecord) error {
	if len(records) == 0 {
		return nil
	}
	headers := []string{"Date", "Player", "Difficulty", "Score", "Percent", "Tier", "Time"}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		pct := 0.0
		if rec.Total > 0 {
			pct = result.Percentage(rec.Score, rec.Total)
		}
		rows = append(rows, []string{
			rec.EndedAt.Local().Format("2006-01-02 15:04"),
			rec.Player,
			rec.Difficulty,
			fmt.Sprintf("%d/%d", rec.Score, rec.Total),
			result.FormatPercent(pct),
			rec.Tier,
			FormatDuration(rec.DurationMs),
		})
	}
	rightAlign := map[int]bool{3: true, 4: true, 6: true}
	return writeLines(w, append([]string{"Results"}, formatTable(headers, rows, rightAlign)...))
}

// RenderBest prints the best result per difficulty.
func RenderBest(w io.Writer, best []model.BestScore) error {
	if len(best) == 0 {
		return nil
	}
	headers := []string{"Difficulty", "Best", "Player", "Sessions"}
	rows := make([][]string, 0, len(best))
	for _, b := range best {
		rows = append(rows, []string{
			b.Difficulty,
			fmt.Sprintf("%d/%d", b.Score, b.Total),
			b.Player,
			fmt.Sprintf("%d", b.Sessions),
		})
	}
	rightAlign := map[int]bool{1: true, 3: true}
	lines := append([]string{"Best Scores"}, formatTable(headers, rows, rightAlign)...)
	return writeLines(w, append(lines, ""))
}

// FormatDuration renders ms as m:ss.
func FormatDuration(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
