package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/intervia/intervia-backend/internal/config"
	"github.com/intervia/intervia-backend/internal/grader"
	"github.com/intervia/intervia-backend/internal/model"
	"github.com/intervia/intervia-backend/internal/repository"
	"github.com/intervia/intervia-backend/internal/sequence"
	"github.com/intervia/intervia-backend/internal/session"
	ws "github.com/intervia/intervia-backend/internal/websocket"
)

// SessionService handles practice session business logic: sequencing,
// grading, scoring, and live event publication.
type SessionService struct {
	cfg         *config.Config
	sessionRepo *repository.SessionRepository
	questionSvc *QuestionService
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(
	cfg *config.Config,
	sessionRepo *repository.SessionRepository,
	questionSvc *QuestionService,
	rdb *redis.Client,
	log zerolog.Logger,
) *SessionService {
	return &SessionService{
		cfg:         cfg,
		sessionRepo: sessionRepo,
		questionSvc: questionSvc,
		rdb:         rdb,
		log:         log.With().Str("component", "session_service").Logger(),
	}
}

// Create starts a new practice session for a level and domain. The question
// sequence is drawn from the candidate set with repeats once the set is
// exhausted, so every session has the configured length.
func (s *SessionService) Create(ctx context.Context, level model.Level, domain string) (*model.Session, error) {
	candidates, err := s.questionSvc.Candidates(ctx, level, domain)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, session.ErrEmptyQuestionSet
	}

	sess := &model.Session{
		ID:        uuid.New(),
		Level:     level,
		Domain:    domain,
		Questions: sequence.Build(candidates, s.cfg.QuestionsPerSession, sequence.NewRand()),
		StartedAt: time.Now().UTC(),
	}

	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info().
		Str("session_id", sess.ID.String()).
		Str("level", string(level)).
		Str("domain", domain).
		Int("questions", len(sess.Questions)).
		Msg("session created")

	return sess, nil
}

// Get retrieves a session by id.
func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	return s.sessionRepo.GetByID(ctx, id)
}

// SubmitAnswer grades and records an answer for the next unanswered
// question. Answers must arrive in presentation order. The final answer
// completes the session automatically.
func (s *SessionService) SubmitAnswer(ctx context.Context, id uuid.UUID, req model.SubmitAnswerRequest) (*model.Answer, *model.Session, error) {
	sess, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if sess.IsComplete() {
		return nil, nil, session.ErrSessionCompleted
	}

	position := len(sess.Answers)
	expected := sess.Questions[position]
	if req.QuestionID != expected.ID {
		return nil, nil, session.ErrQuestionOrder
	}

	result := grader.Evaluate(req.UserAnswer, expected.ReferenceAnswer, expected.Points)
	answer := model.Answer{
		QuestionID:       expected.ID,
		UserAnswer:       req.UserAnswer,
		IsCorrect:        result.IsCorrect,
		Points:           result.Points,
		TimeSpentSeconds: req.TimeSpent,
	}

	if err := s.sessionRepo.RecordAnswer(ctx, id, position, answer); err != nil {
		return nil, nil, fmt.Errorf("record answer: %w", err)
	}

	sess.Answers = append(sess.Answers, answer)
	sess.TotalScore += answer.Points

	s.publish(ctx, id, ws.AnswerRecordedEvent{
		Event:      ws.EventAnswerRecorded,
		SessionID:  id.String(),
		QuestionID: answer.QuestionID,
		Position:   position,
		IsCorrect:  answer.IsCorrect,
		Points:     answer.Points,
		TotalScore: sess.TotalScore,
	})

	if len(sess.Answers) == len(sess.Questions) {
		now := time.Now().UTC()
		if err := s.sessionRepo.Complete(ctx, id, now); err != nil {
			return nil, nil, fmt.Errorf("complete session: %w", err)
		}
		sess.FinishedAt = &now

		s.publish(ctx, id, ws.SessionCompletedEvent{
			Event:   ws.EventSessionCompleted,
			Summary: sess.Summarize(),
		})
	}

	return &answer, sess, nil
}

// Complete finishes a fully answered session and returns its summary.
// Completing an already completed session is a no-op that returns the
// existing summary. A session with unanswered questions cannot be completed.
func (s *SessionService) Complete(ctx context.Context, id uuid.UUID) (*model.Session, *model.SessionSummary, error) {
	sess, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if sess.FinishedAt == nil {
		if len(sess.Answers) < len(sess.Questions) {
			return nil, nil, session.ErrSessionActive
		}

		now := time.Now().UTC()
		if err := s.sessionRepo.Complete(ctx, id, now); err != nil {
			return nil, nil, fmt.Errorf("complete session: %w", err)
		}
		sess.FinishedAt = &now

		s.publish(ctx, id, ws.SessionCompletedEvent{
			Event:   ws.EventSessionCompleted,
			Summary: sess.Summarize(),
		})
	}

	summary := sess.Summarize()
	return sess, &summary, nil
}

// publish broadcasts a session event over Redis PubSub. Best effort, the
// session state itself is already durable in Postgres.
func (s *SessionService) publish(ctx context.Context, id uuid.UUID, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	channel := config.CacheKey.SessionEventsChannel(id.String())
	if err := s.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("channel", channel).Msg("event publish failed")
	}
}
