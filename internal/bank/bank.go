// Package bank provides the static, read-only question bank embedded
// in the binary. The dataset is fixed external content; the bank only
// filters it.
package bank

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/intervia/intervia-backend/internal/model"
)

//go:embed questions.json
var questionsJSON []byte

// Bank is an immutable collection of interview questions.
type Bank struct {
	questions []model.Question
}

// Load parses the embedded dataset. It fails only if the embedded file
// is malformed, which is a build defect rather than a runtime
// condition.
func Load() (*Bank, error) {
	var questions []model.Question
	if err := json.Unmarshal(questionsJSON, &questions); err != nil {
		return nil, fmt.Errorf("parse embedded question bank: %w", err)
	}
	return &Bank{questions: questions}, nil
}

// New builds a bank from an explicit dataset. Used by tests.
func New(questions []model.Question) *Bank {
	return &Bank{questions: questions}
}

// All returns every question in the bank.
func (b *Bank) All() []model.Question {
	out := make([]model.Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Select returns the deterministic candidate set for a level and
// domain. The domain "All" matches every domain; domain comparison is
// case-insensitive. An empty result is a terminal cannot-start
// condition for the caller, not a retryable error.
func (b *Bank) Select(level model.Level, domain string) []model.Question {
	var out []model.Question
	for _, q := range b.questions {
		if q.Level != level {
			continue
		}
		if domain != model.DomainAll && !strings.EqualFold(q.Domain, domain) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Get returns the question with the given id.
func (b *Bank) Get(id int) (model.Question, bool) {
	for _, q := range b.questions {
		if q.ID == id {
			return q, true
		}
	}
	return model.Question{}, false
}
