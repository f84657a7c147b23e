// Package deck builds the ordered question list for a quiz session.
package deck

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/cyberguard/internal/model"
)

// Builder orders questions, optionally shuffling them.
type Builder struct {
	rnd     *rand.Rand
	shuffle bool
}

// New returns a Builder seeded with the current time.
func New(shuffle bool) *Builder {
	return NewWithSeed(shuffle, time.Now().UnixNano())
}

// NewWithSeed returns a Builder with a fixed seed.
func NewWithSeed(shuffle bool, seed int64) *Builder {
	return &Builder{rnd: rand.New(rand.NewSource(seed)), shuffle: shuffle}
}

// Build returns a copy of questions. When shuffling is enabled, question
// order and option order are permuted and Correct is remapped.
func (b *Builder) Build(questions []model.Question) []model.Question {
	out := make([]model.Question, len(questions))
	for i, q := range questions {
		out[i] = copyQuestion(q)
	}
	if !b.shuffle {
		return out
	}
	b.rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	for i := range out {
		out[i] = b.shuffleOptions(out[i])
	}
	return out
}

func (b *Builder) shuffleOptions(q model.Question) model.Question {
	perm := b.rnd.Perm(len(q.Options))
	options := make([]string, len(q.Options))
	correct := q.Correct
	for newIdx, oldIdx := range perm {
		options[newIdx] = q.Options[oldIdx]
		if oldIdx == q.Correct {
			correct = newIdx
		}
	}
	q.Options = options
	q.Correct = correct
	return q
}

func copyQuestion(q model.Question) model.Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}
