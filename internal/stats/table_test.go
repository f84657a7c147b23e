package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Player", "Score", "Tier"}
	rows := [][]string{
		{"Ava", "10/10", "Champion"},
		{"Bartholomew", "6/10", "Good"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[0] != "Player       Score  Tier" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "-----------  -----  --------" {
		t.Fatalf("unexpected rule line: %q", lines[1])
	}
	if lines[2] != "Ava          10/10  Champion" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
	if lines[3] != "Bartholomew   6/10  Good" {
		t.Fatalf("unexpected row line: %q", lines[3])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Player", "Score"}, [][]string{{"日本", "1/1"}}, nil)
	if lines[2] != "日本      1/1" {
		t.Fatalf("unexpected wide row: %q", lines[2])
	}
}
