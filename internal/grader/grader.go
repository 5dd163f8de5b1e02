// Package grader implements the keyword-overlap answer evaluation.
//
// A free-text submission is graded against the reference answer by
// extracting "key concepts" from the reference (words longer than three
// characters, minus a fixed stop-word list) and checking how many of
// them appear in the submission. Coverage of at least 40% grades the
// answer correct; points are all or nothing.
package grader

import "strings"

// correctThreshold is the minimum key-concept coverage for a correct
// answer.
const correctThreshold = 0.4

// stopWords is the closed set of filler words excluded from the
// key-concept set. Tunable, but treated as a constant of the grading
// contract.
var stopWords = map[string]struct{}{
	"that": {}, "this": {}, "with": {}, "from": {}, "they": {},
	"have": {}, "been": {}, "will": {}, "when": {}, "where": {},
	"what": {}, "which": {}, "while": {}, "each": {}, "their": {},
	"there": {}, "then": {}, "than": {}, "only": {}, "also": {},
	"into": {}, "like": {}, "over": {}, "just": {}, "some": {},
	"many": {}, "more": {}, "such": {}, "very": {}, "well": {},
	"used": {}, "make": {}, "work": {}, "other": {}, "first": {},
	"after": {}, "through": {},
}

// Result is the outcome of grading one submission.
type Result struct {
	IsCorrect  bool
	Points     int
	MatchRatio float64

	// KeyConcepts and Matched are diagnostic side channels for logging;
	// they are not part of the grading contract.
	KeyConcepts []string
	Matched     []string
}

// isDelimiter reports whether r separates reference-answer tokens.
// Runs of whitespace, commas, periods, and hyphens count as a single
// delimiter.
func isDelimiter(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', ',', '.', '-':
		return true
	}
	return false
}

// KeyConcepts extracts the grading anchors from a reference answer:
// lower-cased tokens longer than three characters that are not stop
// words.
func KeyConcepts(referenceAnswer string) []string {
	normalized := strings.ToLower(strings.TrimSpace(referenceAnswer))

	var concepts []string
	for _, token := range strings.FieldsFunc(normalized, isDelimiter) {
		if len(token) <= 3 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		concepts = append(concepts, token)
	}
	return concepts
}

// Evaluate grades a submission against a reference answer. It is a
// pure function: the same inputs always produce the same result.
//
// A key concept is matched when it appears as a substring anywhere in
// the lower-cased submission. Matching is not word-boundary aware, so
// short concepts can match inside longer unrelated words.
func Evaluate(userAnswer, referenceAnswer string, points int) Result {
	normalizedUser := strings.ToLower(strings.TrimSpace(userAnswer))

	concepts := KeyConcepts(referenceAnswer)

	var matched []string
	for _, concept := range concepts {
		if strings.Contains(normalizedUser, concept) {
			matched = append(matched, concept)
		}
	}

	// No key concepts means nothing to match: ratio 0, never correct.
	ratio := 0.0
	if len(concepts) > 0 {
		ratio = float64(len(matched)) / float64(len(concepts))
	}

	isCorrect := ratio >= correctThreshold

	awarded := 0
	if isCorrect {
		awarded = points
	}

	return Result{
		IsCorrect:   isCorrect,
		Points:      awarded,
		MatchRatio:  ratio,
		KeyConcepts: concepts,
		Matched:     matched,
	}
}
