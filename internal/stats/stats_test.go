package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/cyberguard/internal/model"
)

func TestSparklineScalesToPercent(t *testing.T) {
	if got := Sparkline([]float64{0, 50, 100}); got != " +@" {
		t.Fatalf("unexpected sparkline: %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline for no values")
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{10, 20, 30, 40}, 2)
	want := []float64{10, 15, 25, 35}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No results found.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderSummaryCountsPerfectRuns(t *testing.T) {
	records := []model.ResultRecord{
		{Score: 10, Total: 10},
		{Score: 6, Total: 10},
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, records); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 2", "Avg Score: 80%", "Best Score: 100%", "Perfect Runs: 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
