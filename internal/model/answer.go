package model

// Answer records the outcome of one graded question response. Answers
// are immutable once recorded and are stored in presentation order.
type Answer struct {
	QuestionID       int    `json:"question_id"`
	UserAnswer       string `json:"user_answer"`
	IsCorrect        bool   `json:"is_correct"`
	Points           int    `json:"points"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
}

// SubmitAnswerRequest is the payload for answering the current question
// of a session. UserAnswer may be empty — an empty submission grades as
// incorrect rather than being rejected.
type SubmitAnswerRequest struct {
	QuestionID int    `json:"question_id" binding:"required,min=1"`
	UserAnswer string `json:"user_answer" binding:"max=20000"`
	TimeSpent  int    `json:"time_spent" binding:"min=0"`
}
