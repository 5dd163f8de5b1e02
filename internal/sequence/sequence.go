// Package sequence builds the fixed-length ordered question set for a
// practice session.
package sequence

import (
	"math/rand"
	"time"

	"github.com/intervia/intervia-backend/internal/model"
)

// NewRand returns a time-seeded random source. Tests inject their own
// seeded source for reproducibility.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// shuffled returns a uniformly shuffled copy, leaving the input intact.
func shuffled(questions []model.Question, r *rand.Rand) []model.Question {
	out := make([]model.Question, len(questions))
	copy(out, questions)
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Build produces a session's ordered question set of exactly n
// questions from the candidate pool.
//
// The candidates are shuffled once and the first min(n, len) taken.
// When the pool is smaller than n, the full pool is re-shuffled and
// appended until the set reaches length n, so small pools repeat
// questions rather than shortening the session.
//
// Returns nil for an empty pool; the caller must treat that as a
// terminal cannot-start condition.
func Build(candidates []model.Question, n int, r *rand.Rand) []model.Question {
	if len(candidates) == 0 || n <= 0 {
		return nil
	}

	set := shuffled(candidates, r)
	if len(set) >= n {
		return set[:n]
	}

	for len(set) < n {
		refill := shuffled(candidates, r)
		need := n - len(set)
		if need < len(refill) {
			refill = refill[:need]
		}
		set = append(set, refill...)
	}
	return set
}
