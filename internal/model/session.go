package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// SessionStatus enumerates practice session states.
type SessionStatus string

const (
	SessionStatusSetup     SessionStatus = "SETUP"
	SessionStatusActive    SessionStatus = "ACTIVE"
	SessionStatusCompleted SessionStatus = "COMPLETED"
)

// Session represents one complete practice attempt: a fixed ordered
// question set, accumulated answers, and a running score.
//
// Invariants:
//   - len(Answers) <= len(Questions)
//   - TotalScore == sum of Answers[i].Points
//   - Answers[i].QuestionID == Questions[i].ID (presentation order)
//   - FinishedAt is set at most once, when the last answer arrives
type Session struct {
	ID         uuid.UUID  `json:"id"`
	Level      Level      `json:"level"`
	Domain     string     `json:"domain"`
	Questions  []Question `json:"questions"`
	Answers    []Answer   `json:"answers"`
	TotalScore int        `json:"total_score"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Status derives the state machine position from the answer count.
func (s *Session) Status() SessionStatus {
	switch {
	case len(s.Answers) == 0 && s.FinishedAt == nil:
		return SessionStatusSetup
	case len(s.Answers) < len(s.Questions):
		return SessionStatusActive
	default:
		return SessionStatusCompleted
	}
}

// CurrentQuestion returns the next question to present, or false when
// every question has been answered.
func (s *Session) CurrentQuestion() (Question, bool) {
	if len(s.Answers) >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[len(s.Answers)], true
}

// IsComplete reports whether every question has been answered.
func (s *Session) IsComplete() bool {
	return len(s.Questions) > 0 && len(s.Answers) == len(s.Questions)
}

// Prompts returns the ordered question set without reference answers.
func (s *Session) Prompts() []QuestionPrompt {
	prompts := make([]QuestionPrompt, len(s.Questions))
	for i, q := range s.Questions {
		prompts[i] = q.Prompt(i)
	}
	return prompts
}

// SessionView is the API representation of a session. It carries
// question prompts instead of full questions so reference answers are
// never leaked ahead of grading.
type SessionView struct {
	ID         uuid.UUID        `json:"id"`
	Level      Level            `json:"level"`
	Domain     string           `json:"domain"`
	Status     SessionStatus    `json:"status"`
	Questions  []QuestionPrompt `json:"questions"`
	Answers    []Answer         `json:"answers"`
	TotalScore int              `json:"total_score"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt *time.Time       `json:"finished_at,omitempty"`
}

// View converts the session to its client-facing representation.
func (s *Session) View() SessionView {
	answers := s.Answers
	if answers == nil {
		answers = []Answer{}
	}
	return SessionView{
		ID:         s.ID,
		Level:      s.Level,
		Domain:     s.Domain,
		Status:     s.Status(),
		Questions:  s.Prompts(),
		Answers:    answers,
		TotalScore: s.TotalScore,
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
	}
}

// CreateSessionRequest is the payload for starting a practice session.
type CreateSessionRequest struct {
	Level  string `json:"level" binding:"required,oneof=fresher experienced"`
	Domain string `json:"domain" binding:"required,min=1,max=100"`
}

// Verdict is the eligibility band derived from final accuracy.
type Verdict string

const (
	VerdictHighlyEligible    Verdict = "HIGHLY_ELIGIBLE"
	VerdictEligible          Verdict = "ELIGIBLE"
	VerdictPartiallyEligible Verdict = "PARTIALLY_ELIGIBLE"
	VerdictNotEligible       Verdict = "NOT_ELIGIBLE"
)

// VerdictFor maps an accuracy percentage to its eligibility band.
func VerdictFor(percentage int) Verdict {
	switch {
	case percentage >= 90:
		return VerdictHighlyEligible
	case percentage >= 75:
		return VerdictEligible
	case percentage >= 60:
		return VerdictPartiallyEligible
	default:
		return VerdictNotEligible
	}
}

// SessionSummary is the final result of a completed session.
type SessionSummary struct {
	SessionID      uuid.UUID `json:"session_id"`
	TotalScore     int       `json:"total_score"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	Percentage     int       `json:"percentage"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	Verdict        Verdict   `json:"verdict"`
}

// Summarize computes the final summary: accuracy percentage over the
// answered questions, elapsed time, and the eligibility verdict.
func (s *Session) Summarize() SessionSummary {
	correct := 0
	for _, a := range s.Answers {
		if a.IsCorrect {
			correct++
		}
	}

	percentage := 0
	if n := len(s.Answers); n > 0 {
		percentage = int(math.Round(float64(correct) / float64(n) * 100))
	}

	end := time.Now()
	if s.FinishedAt != nil {
		end = *s.FinishedAt
	}

	return SessionSummary{
		SessionID:      s.ID,
		TotalScore:     s.TotalScore,
		TotalQuestions: len(s.Questions),
		CorrectAnswers: correct,
		Percentage:     percentage,
		ElapsedSeconds: int(end.Sub(s.StartedAt).Seconds()),
		Verdict:        VerdictFor(percentage),
	}
}
