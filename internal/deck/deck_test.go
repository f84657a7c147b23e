package deck

import (
	"testing"

	"github.com/verte-zerg/cyberguard/internal/model"
)

func sampleQuestions() []model.Question {
	return []model.Question{
		{ID: 1, Text: "one", Options: []string{"a", "b", "c", "d"}, Correct: 1},
		{ID: 2, Text: "two", Options: []string{"e", "f", "g", "h"}, Correct: 3},
		{ID: 3, Text: "three", Options: []string{"i", "j", "k", "l"}, Correct: 0},
	}
}

func TestBuildKeepsOrderWithoutShuffle(t *testing.T) {
	src := sampleQuestions()
	out := NewWithSeed(false, 1).Build(src)
	if len(out) != len(src) {
		t.Fatalf("expected %d questions, got %d", len(src), len(out))
	}
	for i := range src {
		if out[i].ID != src[i].ID || out[i].Correct != src[i].Correct {
			t.Fatalf("question %d changed: %+v", i, out[i])
		}
	}
	out[0].Options[0] = "mutated"
	if src[0].Options[0] != "a" {
		t.Fatalf("expected Build to copy options")
	}
}

func TestBuildShufflePreservesCorrectAnswer(t *testing.T) {
	src := sampleQuestions()
	want := map[int]string{}
	for _, q := range src {
		want[q.ID] = q.Options[q.Correct]
	}
	for seed := int64(0); seed < 20; seed++ {
		out := NewWithSeed(true, seed).Build(src)
		if len(out) != len(src) {
			t.Fatalf("expected %d questions, got %d", len(src), len(out))
		}
		for _, q := range out {
			if q.Options[q.Correct] != want[q.ID] {
				t.Fatalf("seed %d: question %d correct option %q, want %q", seed, q.ID, q.Options[q.Correct], want[q.ID])
			}
		}
	}
}
