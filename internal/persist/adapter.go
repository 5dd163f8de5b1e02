// Package persist implements the two-tier session persistence
// strategy: try the remote API first, fall back silently to a local
// in-memory store mirrored to a JSON file cache. Remote failures are
// recoverable warnings — the practicing user only ever sees an error
// when both tiers fail.
package persist

import (
	"context"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/intervia/intervia-backend/internal/bank"
	"github.com/intervia/intervia-backend/internal/grader"
	"github.com/intervia/intervia-backend/internal/model"
	"github.com/intervia/intervia-backend/internal/sequence"
	"github.com/intervia/intervia-backend/internal/session"
)

// Adapter is the dual-write persistence strategy for practice
// sessions. Every mutating operation attempts the remote tier once,
// synchronously; on any failure it proceeds on the local tier and
// mirrors the state to the file cache.
type Adapter struct {
	remote *RemoteClient // nil disables the remote tier
	store  *session.Store
	bank   *bank.Bank
	cache  *FileCache // nil disables the file cache
	n      int
	rng    *rand.Rand
	log    zerolog.Logger
}

// NewAdapter wires the two tiers together. remote or cache may be nil
// to run local-only or cache-less.
func NewAdapter(remote *RemoteClient, store *session.Store, b *bank.Bank, cache *FileCache, questionsPerSession int, log zerolog.Logger) *Adapter {
	return &Adapter{
		remote: remote,
		store:  store,
		bank:   b,
		cache:  cache,
		n:      questionsPerSession,
		rng:    sequence.NewRand(),
		log:    log.With().Str("component", "persist_adapter").Logger(),
	}
}

// LoadLocalCache restores previously cached sessions into the local
// store. A corrupt blob resets the store to empty; that is logged and
// never fatal.
func (a *Adapter) LoadLocalCache() {
	if a.cache == nil {
		return
	}
	sessions, err := a.cache.Load()
	if err != nil {
		a.log.Warn().Err(err).Msg("session cache unreadable, resetting to empty")
		sessions = nil
	}
	a.store.Replace(sessions)
}

// StartSession creates a session remotely when possible, locally
// otherwise. The session is always mirrored into the local store so a
// mid-session remote outage can continue seamlessly.
func (a *Adapter) StartSession(ctx context.Context, level model.Level, domain string) (*model.Session, error) {
	if a.remote != nil {
		view, err := a.remote.CreateSession(ctx, level, domain)
		if err == nil {
			sess := a.sessionFromView(view)
			a.store.Put(sess)
			a.writeCache()
			return sess, nil
		}
		a.log.Warn().Err(err).Msg("remote session create failed, falling back to local store")
	}

	candidates := a.bank.Select(level, domain)
	if len(candidates) == 0 {
		return nil, session.ErrEmptyQuestionSet
	}
	questions := sequence.Build(candidates, a.n, a.rng)

	sess, err := a.store.Create(level, domain, questions)
	if err != nil {
		return nil, err
	}
	a.writeCache()
	return sess, nil
}

// GetSession returns the local mirror of a session.
func (a *Adapter) GetSession(id uuid.UUID) (*model.Session, error) {
	return a.store.Get(id)
}

// SubmitAnswer grades and records an answer. The remote tier grades
// server-side; the local fallback grades with the same evaluator
// against the embedded bank's reference answers.
func (a *Adapter) SubmitAnswer(ctx context.Context, id uuid.UUID, questionID int, userAnswer string, timeSpent int) (model.Answer, *model.Session, error) {
	if a.remote != nil {
		answer, view, err := a.remote.SubmitAnswer(ctx, id, model.SubmitAnswerRequest{
			QuestionID: questionID,
			UserAnswer: userAnswer,
			TimeSpent:  timeSpent,
		})
		if err == nil {
			sess := a.sessionFromView(view)
			a.store.Put(sess)
			a.writeCache()
			return answer, sess, nil
		}
		a.log.Warn().Err(err).Str("session_id", id.String()).Msg("remote answer submit failed, grading locally")
	}

	sess, err := a.store.Get(id)
	if err != nil {
		return model.Answer{}, nil, err
	}
	current, ok := sess.CurrentQuestion()
	if !ok {
		return model.Answer{}, nil, session.ErrSessionCompleted
	}
	if current.ID != questionID {
		return model.Answer{}, nil, session.ErrQuestionOrder
	}

	result := grader.Evaluate(userAnswer, current.ReferenceAnswer, current.Points)
	a.log.Debug().
		Int("question_id", current.ID).
		Strs("key_concepts", result.KeyConcepts).
		Strs("matched", result.Matched).
		Float64("match_ratio", result.MatchRatio).
		Msg("graded locally")

	answer := model.Answer{
		QuestionID:       questionID,
		UserAnswer:       userAnswer,
		IsCorrect:        result.IsCorrect,
		Points:           result.Points,
		TimeSpentSeconds: timeSpent,
	}

	updated, err := a.store.RecordAnswer(id, answer)
	if err != nil {
		return model.Answer{}, nil, err
	}
	a.writeCache()
	return answer, updated, nil
}

// CompleteSession finishes a session and returns its summary.
// Completion is idempotent on both tiers.
func (a *Adapter) CompleteSession(ctx context.Context, id uuid.UUID) (*model.Session, model.SessionSummary, error) {
	if a.remote != nil {
		view, summary, err := a.remote.CompleteSession(ctx, id)
		if err == nil {
			sess := a.sessionFromView(view)
			a.store.Put(sess)
			a.writeCache()
			return sess, summary, nil
		}
		a.log.Warn().Err(err).Str("session_id", id.String()).Msg("remote session complete failed, completing locally")
	}

	sess, err := a.store.Complete(id)
	if err != nil {
		return nil, model.SessionSummary{}, err
	}
	a.writeCache()
	return sess, sess.Summarize(), nil
}

// writeCache mirrors the local store to disk. Failures are logged and
// swallowed: the cache is best-effort and must never block the flow.
func (a *Adapter) writeCache() {
	if a.cache == nil {
		return
	}
	if err := a.cache.Save(a.store.All()); err != nil {
		a.log.Warn().Err(err).Msg("session cache write failed")
	}
}

// sessionFromView rebuilds a full session from its API representation.
// Reference answers are not part of the API payload, so they are
// re-hydrated from the embedded bank; an unknown id keeps an empty
// reference, which grades as incorrect if the flow ever degrades to
// local grading mid-session.
func (a *Adapter) sessionFromView(view model.SessionView) *model.Session {
	questions := make([]model.Question, len(view.Questions))
	for i, prompt := range view.Questions {
		if full, ok := a.bank.Get(prompt.ID); ok {
			questions[i] = full
			continue
		}
		questions[i] = model.Question{
			ID:     prompt.ID,
			Text:   prompt.Text,
			Domain: prompt.Domain,
			Level:  prompt.Level,
			Points: prompt.Points,
		}
	}
	return &model.Session{
		ID:         view.ID,
		Level:      view.Level,
		Domain:     view.Domain,
		Questions:  questions,
		Answers:    view.Answers,
		TotalScore: view.TotalScore,
		StartedAt:  view.StartedAt,
		FinishedAt: view.FinishedAt,
	}
}
