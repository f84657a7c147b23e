package quiz

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/cyberguard/internal/bank"
	"github.com/verte-zerg/cyberguard/internal/model"
)

var (
	// ErrNoQuestions is returned when a session would start without questions.
	ErrNoQuestions = errors.New("no questions for difficulty")
	// ErrInvalidOption is returned for option indexes outside the question.
	ErrInvalidOption = errors.New("invalid option index")
)

// Source provides difficulty tiers.
type Source interface {
	Lookup(key string) (bank.Tier, error)
}

// Orderer decides the question order for a session.
type Orderer interface {
	Build(questions []model.Question) []model.Question
}

// Session is one run through a difficulty's questions.
type Session struct {
	config    model.DifficultyConfig
	questions []model.Question

	state      State
	score      int
	generation uint64
	abandoned  bool
}

// Start loads the tier for difficulty and enters AwaitingAnswer(0, limit).
// A nil orderer keeps the bank order.
func Start(src Source, difficulty string, order Orderer) (*Session, error) {
	tier, err := src.Lookup(difficulty)
	if err != nil {
		return nil, err
	}
	questions := tier.Questions
	if order != nil {
		questions = order.Build(questions)
	}
	return New(tier.Config, questions)
}

// New starts a session over the given questions.
func New(cfg model.DifficultyConfig, questions []model.Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoQuestions, cfg.Key)
	}
	if cfg.TimeLimit <= 0 {
		return nil, fmt.Errorf("time limit for %s must be > 0", cfg.Key)
	}
	return &Session{
		config:    cfg,
		questions: questions,
		state:     AwaitingAnswer{Index: 0, Remaining: cfg.TimeLimit},
	}, nil
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Token returns the token for the timers of the current state.
func (s *Session) Token() Token {
	return Token{Index: s.Index(), generation: s.generation, owner: s}
}

// Config returns the difficulty config.
func (s *Session) Config() model.DifficultyConfig {
	return s.config
}

// Score returns the number of correct answers so far.
func (s *Session) Score() int {
	return s.score
}

// Total returns the number of questions in the session.
func (s *Session) Total() int {
	return len(s.questions)
}

// Index returns the current question index.
func (s *Session) Index() int {
	switch st := s.state.(type) {
	case AwaitingAnswer:
		return st.Index
	case ShowingFeedback:
		return st.Index
	default:
		return len(s.questions) - 1
	}
}

// Question returns the current question.
func (s *Session) Question() model.Question {
	return s.questions[s.Index()]
}

// Abandoned reports whether Abandon was called.
func (s *Session) Abandoned() bool {
	return s.abandoned
}

// Result returns the final result once the session is complete.
func (s *Session) Result() (model.Result, bool) {
	c, ok := s.state.(Complete)
	if !ok {
		return model.Result{}, false
	}
	return model.Result{Score: c.Score, Total: c.Total, Difficulty: s.config.Key}, true
}

func (s *Session) current(tok Token) bool {
	return !s.abandoned && tok.owner == s && tok.generation == s.generation && tok.Index == s.Index()
}

func (s *Session) transition(next State) {
	s.state = next
	s.generation++
}

// Tick counts down one second. At zero the question is scored as wrong.
// It returns false when tok is stale or no countdown is running.
func (s *Session) Tick(tok Token) bool {
	if !s.current(tok) {
		return false
	}
	st, ok := s.state.(AwaitingAnswer)
	if !ok {
		return false
	}
	st.Remaining--
	if st.Remaining > 0 {
		s.state = st
		return true
	}
	s.transition(ShowingFeedback{Index: st.Index, Correct: false, Selected: NoSelection, TimedOut: true})
	return true
}

// Submit answers the current question. Only the first answer per question
// counts; later submissions return false.
func (s *Session) Submit(option int) (bool, error) {
	if s.abandoned {
		return false, nil
	}
	st, ok := s.state.(AwaitingAnswer)
	if !ok {
		return false, nil
	}
	q := s.questions[st.Index]
	if option < 0 || option >= len(q.Options) {
		return false, fmt.Errorf("%w: %d", ErrInvalidOption, option)
	}
	correct := option == q.Correct
	if correct {
		s.score++
	}
	s.transition(ShowingFeedback{Index: st.Index, Correct: correct, Selected: option})
	return true, nil
}

// Advance leaves feedback for the next question or completes the session.
func (s *Session) Advance(tok Token) bool {
	if !s.current(tok) {
		return false
	}
	st, ok := s.state.(ShowingFeedback)
	if !ok {
		return false
	}
	if st.Index+1 < len(s.questions) {
		s.transition(AwaitingAnswer{Index: st.Index + 1, Remaining: s.config.TimeLimit})
		return true
	}
	s.transition(Complete{Score: s.score, Total: len(s.questions)})
	return true
}

// Abandon cancels every pending timer; the session accepts no more input.
func (s *Session) Abandon() {
	s.abandoned = true
	s.generation++
}
