// Package quiz implements the timed question-by-question quiz session.
package quiz

import "time"

const (
	// TickInterval is the countdown resolution.
	TickInterval = time.Second
	// FeedbackInterval is how long feedback stays up before advancing.
	FeedbackInterval = 1500 * time.Millisecond
)

// NoSelection marks feedback produced by a timeout.
const NoSelection = -1

// State is one of AwaitingAnswer, ShowingFeedback or Complete.
type State interface {
	isState()
}

// AwaitingAnswer is the countdown state for the question at Index.
type AwaitingAnswer struct {
	Index     int
	Remaining int
}

// ShowingFeedback displays the outcome for the question at Index.
type ShowingFeedback struct {
	Index    int
	Correct  bool
	Selected int
	TimedOut bool
}

// Complete is terminal.
type Complete struct {
	Score int
	Total int
}

func (AwaitingAnswer) isState()  {}
func (ShowingFeedback) isState() {}
func (Complete) isState()        {}

// Token identifies the timers owned by one state of one session. Every
// transition issues a new token, so callbacks holding an older one, or one
// from another session, are ignored.
type Token struct {
	Index      int
	generation uint64
	owner      *Session
}
