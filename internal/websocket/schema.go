package websocket

import "github.com/intervia/intervia-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventAnswerRecorded   Event = "answer_recorded"
	EventSessionCompleted Event = "session_completed"
	EventError            Event = "error"
	EventPong             Event = "pong"
)

// AnswerRecordedEvent is broadcast after each graded answer.
type AnswerRecordedEvent struct {
	Event      Event  `json:"event"`
	SessionID  string `json:"session_id"`
	QuestionID int    `json:"question_id"`
	Position   int    `json:"position"`
	IsCorrect  bool   `json:"is_correct"`
	Points     int    `json:"points"`
	TotalScore int    `json:"total_score"`
}

// SessionCompletedEvent is broadcast when a session reaches its verdict.
type SessionCompletedEvent struct {
	Event   Event                `json:"event"`
	Summary model.SessionSummary `json:"summary"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
