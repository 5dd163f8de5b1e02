package model

// Level enumerates the experience levels a question targets.
type Level string

const (
	LevelFresher     Level = "fresher"
	LevelExperienced Level = "experienced"
)

// DomainAll is the wildcard domain filter that matches every domain.
const DomainAll = "All"

// Question represents a single interview question from the bank.
type Question struct {
	ID              int    `json:"id"`
	Text            string `json:"question_text"`
	Domain          string `json:"domain"`
	Level           Level  `json:"level"`
	ReferenceAnswer string `json:"reference_answer"`
	Points          int    `json:"points"`
}

// QuestionPrompt is a question without the reference answer, as
// presented to a practicing user. Position is the zero-based slot in
// the session's ordered question set.
type QuestionPrompt struct {
	ID       int    `json:"id"`
	Text     string `json:"question_text"`
	Domain   string `json:"domain"`
	Level    Level  `json:"level"`
	Points   int    `json:"points"`
	Position int    `json:"position"`
}

// Prompt strips the reference answer for client presentation.
func (q Question) Prompt(position int) QuestionPrompt {
	return QuestionPrompt{
		ID:       q.ID,
		Text:     q.Text,
		Domain:   q.Domain,
		Level:    q.Level,
		Points:   q.Points,
		Position: position,
	}
}

// CreateQuestionRequest is the admin payload for adding a bank question.
type CreateQuestionRequest struct {
	Text            string `json:"question_text" binding:"required,min=1,max=2000"`
	Domain          string `json:"domain" binding:"required,min=1,max=100"`
	Level           string `json:"level" binding:"required,oneof=fresher experienced"`
	ReferenceAnswer string `json:"reference_answer" binding:"required,min=1,max=5000"`
	Points          int    `json:"points" binding:"required,min=1,max=100"`
}

// UpdateQuestionRequest is the admin payload for replacing a bank
// question. PUT semantics, every field is supplied.
type UpdateQuestionRequest struct {
	Text            string `json:"question_text" binding:"required,min=1,max=2000"`
	Domain          string `json:"domain" binding:"required,min=1,max=100"`
	Level           string `json:"level" binding:"required,oneof=fresher experienced"`
	ReferenceAnswer string `json:"reference_answer" binding:"required,min=1,max=5000"`
	Points          int    `json:"points" binding:"required,min=1,max=100"`
}
