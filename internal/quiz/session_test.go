package quiz

import (
	"errors"
	"testing"

	"github.com/verte-zerg/cyberguard/internal/bank"
	"github.com/verte-zerg/cyberguard/internal/model"
)

func newTestSession(t *testing.T, difficulty string) *Session {
	t.Helper()
	b, err := bank.Default()
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	s, err := Start(b, difficulty, nil)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	return s
}

func wrongOption(q model.Question) int {
	return (q.Correct + 1) % len(q.Options)
}

func TestStartEntersAwaitingAnswer(t *testing.T) {
	s := newTestSession(t, "medium")
	st, ok := s.State().(AwaitingAnswer)
	if !ok {
		t.Fatalf("expected AwaitingAnswer, got %T", s.State())
	}
	if st.Index != 0 || st.Remaining != 9 {
		t.Fatalf("unexpected start state: %+v", st)
	}
	if s.Total() != 10 {
		t.Fatalf("expected 10 questions, got %d", s.Total())
	}
}

func TestStartUnknownDifficulty(t *testing.T) {
	b, err := bank.Default()
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if _, err := Start(b, "expert", nil); !errors.Is(err, bank.ErrUnknownDifficulty) {
		t.Fatalf("expected ErrUnknownDifficulty, got %v", err)
	}
}

func TestSubmitCorrectIncrementsScore(t *testing.T) {
	s := newTestSession(t, "easy")
	ok, err := s.Submit(s.Question().Correct)
	if err != nil || !ok {
		t.Fatalf("submit failed: ok=%v err=%v", ok, err)
	}
	if s.Score() != 1 {
		t.Fatalf("expected score 1, got %d", s.Score())
	}
	fb, isFb := s.State().(ShowingFeedback)
	if !isFb || !fb.Correct || fb.Index != 0 {
		t.Fatalf("expected correct feedback for question 0, got %+v", s.State())
	}
}

func TestSubmitWrongLeavesScore(t *testing.T) {
	s := newTestSession(t, "easy")
	ok, err := s.Submit(wrongOption(s.Question()))
	if err != nil || !ok {
		t.Fatalf("submit failed: ok=%v err=%v", ok, err)
	}
	if s.Score() != 0 {
		t.Fatalf("expected score 0, got %d", s.Score())
	}
	fb, isFb := s.State().(ShowingFeedback)
	if !isFb || fb.Correct || fb.TimedOut {
		t.Fatalf("expected wrong feedback, got %+v", s.State())
	}
}

func TestSubmitInvalidOption(t *testing.T) {
	s := newTestSession(t, "easy")
	for _, opt := range []int{-1, 4} {
		if _, err := s.Submit(opt); !errors.Is(err, ErrInvalidOption) {
			t.Fatalf("expected ErrInvalidOption for %d, got %v", opt, err)
		}
	}
	if _, ok := s.State().(AwaitingAnswer); !ok {
		t.Fatalf("invalid option must not change state, got %T", s.State())
	}
}

func TestOnlyOneAnswerPerQuestion(t *testing.T) {
	s := newTestSession(t, "easy")
	if _, err := s.Submit(wrongOption(s.Question())); err != nil {
		t.Fatalf("submit: %v", err)
	}
	ok, err := s.Submit(s.Question().Correct)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if ok {
		t.Fatalf("expected second submission to be ignored")
	}
	if s.Score() != 0 {
		t.Fatalf("expected score 0, got %d", s.Score())
	}
}

func TestTimeoutMatchesWrongAnswer(t *testing.T) {
	s := newTestSession(t, "hard")
	tok := s.Token()
	for i := 0; i < 5; i++ {
		if !s.Tick(tok) {
			t.Fatalf("tick %d rejected", i)
		}
	}
	st, ok := s.State().(AwaitingAnswer)
	if !ok || st.Remaining != 1 {
		t.Fatalf("expected 1s remaining, got %+v", s.State())
	}
	if !s.Tick(tok) {
		t.Fatalf("final tick rejected")
	}
	fb, ok := s.State().(ShowingFeedback)
	if !ok || fb.Correct || !fb.TimedOut || fb.Selected != NoSelection {
		t.Fatalf("expected timeout feedback, got %+v", s.State())
	}
	if s.Score() != 0 {
		t.Fatalf("expected score unchanged, got %d", s.Score())
	}
}

func TestStaleTickIsNoop(t *testing.T) {
	s := newTestSession(t, "medium")
	stale := s.Token()
	if _, err := s.Submit(s.Question().Correct); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if s.Tick(stale) {
		t.Fatalf("expected stale tick to be ignored")
	}
	fbTok := s.Token()
	if !s.Advance(fbTok) {
		t.Fatalf("advance rejected")
	}
	if s.Tick(stale) {
		t.Fatalf("expected tick from previous question to be ignored")
	}
	if s.Advance(fbTok) {
		t.Fatalf("expected repeated advance to be ignored")
	}
	st := s.State().(AwaitingAnswer)
	if st.Index != 1 || st.Remaining != 9 {
		t.Fatalf("unexpected state after stale callbacks: %+v", st)
	}
}

func TestAdvanceOnLastQuestionCompletes(t *testing.T) {
	s := newTestSession(t, "easy")
	for i := 0; i < s.Total(); i++ {
		q := s.Question()
		opt := q.Correct
		if i%2 == 1 {
			opt = wrongOption(q)
		}
		if _, err := s.Submit(opt); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if !s.Advance(s.Token()) {
			t.Fatalf("advance %d rejected", i)
		}
	}
	c, ok := s.State().(Complete)
	if !ok {
		t.Fatalf("expected Complete, got %T", s.State())
	}
	if c.Score != 5 || c.Total != 10 {
		t.Fatalf("unexpected completion: %+v", c)
	}
	res, ok := s.Result()
	if !ok || res.Score != 5 || res.Total != 10 || res.Difficulty != "easy" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestAdvanceAfterTimeoutOnLastQuestion(t *testing.T) {
	s := newTestSession(t, "hard")
	for i := 0; i < s.Total()-1; i++ {
		if _, err := s.Submit(s.Question().Correct); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		s.Advance(s.Token())
	}
	tok := s.Token()
	for i := 0; i < 6; i++ {
		s.Tick(tok)
	}
	if !s.Advance(s.Token()) {
		t.Fatalf("advance rejected")
	}
	c, ok := s.State().(Complete)
	if !ok || c.Score != 9 || c.Total != 10 {
		t.Fatalf("unexpected completion: %+v", s.State())
	}
}

func TestAbandonCancelsTimers(t *testing.T) {
	s := newTestSession(t, "easy")
	tok := s.Token()
	s.Abandon()
	if s.Tick(tok) {
		t.Fatalf("expected tick after abandon to be ignored")
	}
	if ok, _ := s.Submit(0); ok {
		t.Fatalf("expected submit after abandon to be ignored")
	}
	if !s.Abandoned() {
		t.Fatalf("expected session to report abandoned")
	}
}

func TestTokenFromOtherSessionIgnored(t *testing.T) {
	old := newTestSession(t, "medium")
	oldTok := old.Token()
	old.Abandon()

	s := newTestSession(t, "medium")
	if s.Tick(oldTok) {
		t.Fatalf("expected tick from previous session to be ignored")
	}
	st := s.State().(AwaitingAnswer)
	if st.Remaining != 9 {
		t.Fatalf("expected remaining 9, got %d", st.Remaining)
	}
	if ok, err := s.Submit(0); err != nil || !ok {
		t.Fatalf("submit: ok=%v err=%v", ok, err)
	}
	// Both sessions are now at index 0 with one transition behind them.
	old2 := newTestSession(t, "medium")
	if _, err := old2.Submit(0); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if s.Advance(old2.Token()) {
		t.Fatalf("expected feedback timer from another session to be ignored")
	}
	if s.Index() != 0 {
		t.Fatalf("expected to stay on first question, got %d", s.Index())
	}
}

func TestMediumScenario(t *testing.T) {
	s := newTestSession(t, "medium")
	tok := s.Token()
	s.Tick(tok)
	s.Tick(tok)
	if _, err := s.Submit(s.Question().Correct); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if s.Score() != 1 {
		t.Fatalf("expected score 1, got %d", s.Score())
	}
	if fb, ok := s.State().(ShowingFeedback); !ok || !fb.Correct {
		t.Fatalf("expected correct feedback, got %+v", s.State())
	}
	if !s.Advance(s.Token()) {
		t.Fatalf("advance rejected")
	}
	st, ok := s.State().(AwaitingAnswer)
	if !ok || st.Index != 1 || st.Remaining != 9 {
		t.Fatalf("expected question 2 with 9s, got %+v", s.State())
	}
}

type reverseOrder struct{}

func (reverseOrder) Build(questions []model.Question) []model.Question {
	out := make([]model.Question, len(questions))
	for i, q := range questions {
		out[len(questions)-1-i] = q
	}
	return out
}

func TestStartUsesOrderer(t *testing.T) {
	b, err := bank.Default()
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	s, err := Start(b, "easy", reverseOrder{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.Question().ID != 10 {
		t.Fatalf("expected reversed order, first id %d", s.Question().ID)
	}
}
