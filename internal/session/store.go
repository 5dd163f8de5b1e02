// Package session owns the mutable practice-session records and their
// Setup → Active → Completed state machine.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/intervia/intervia-backend/internal/model"
)

// Store errors.
var (
	// ErrNotFound signals an unknown session id. Callers must treat it
	// as "cannot proceed, discard current flow".
	ErrNotFound = errors.New("session not found")

	// ErrEmptyQuestionSet signals that a session cannot start because
	// no questions matched the level and domain.
	ErrEmptyQuestionSet = errors.New("no questions available")

	// ErrSessionCompleted signals a write against a finished session.
	ErrSessionCompleted = errors.New("session already completed")

	// ErrQuestionOrder signals an answer for a question that is not the
	// one currently presented.
	ErrQuestionOrder = errors.New("answer does not match the current question")

	// ErrSessionActive signals completion of a session that still has
	// unanswered questions.
	ErrSessionActive = errors.New("session still has unanswered questions")
)

// Store holds sessions in memory. It is an explicit object rather than
// process-wide state so independent flows and tests never share
// records. It also serves as the local tier of the persistence
// adapter.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*model.Session
	order    []uuid.UUID
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*model.Session)}
}

// Create starts a new session in the Setup state with the given fixed
// question set. Fails with ErrEmptyQuestionSet when the set is empty.
func (s *Store) Create(level model.Level, domain string, questions []model.Question) (*model.Session, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuestionSet
	}

	sess := &model.Session{
		ID:        uuid.New(),
		Level:     level,
		Domain:    domain,
		Questions: questions,
		Answers:   []model.Answer{},
		StartedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.order = append(s.order, sess.ID)
	s.mu.Unlock()

	return clone(sess), nil
}

// Get returns a snapshot of the session, or ErrNotFound.
func (s *Store) Get(id uuid.UUID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(sess), nil
}

// RecordAnswer appends an answer and adds its points to the total
// score as one atomic step. Answers must arrive in presentation order:
// the answer's question id has to match the question at the next
// unanswered position.
func (s *Store) RecordAnswer(id uuid.UUID, answer model.Answer) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if sess.IsComplete() {
		return nil, ErrSessionCompleted
	}

	expected := sess.Questions[len(sess.Answers)]
	if answer.QuestionID != expected.ID {
		return nil, ErrQuestionOrder
	}

	sess.Answers = append(sess.Answers, answer)
	sess.TotalScore += answer.Points

	return clone(sess), nil
}

// Complete sets the session's end time. Idempotent: a second call
// leaves the first end time untouched. Completing a session that still
// has unanswered questions fails with ErrSessionActive.
func (s *Store) Complete(id uuid.UUID) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if sess.FinishedAt != nil {
		return clone(sess), nil
	}
	if !sess.IsComplete() {
		return nil, ErrSessionActive
	}

	now := time.Now()
	sess.FinishedAt = &now

	return clone(sess), nil
}

// Put inserts or replaces a session record wholesale. Used to mirror
// sessions that are owned by the remote store.
func (s *Store) Put(sess *model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.ID]; !ok {
		s.order = append(s.order, sess.ID)
	}
	s.sessions[sess.ID] = clone(sess)
}

// All returns snapshots of every known session in creation order.
func (s *Store) All() []model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *clone(s.sessions[id]))
	}
	return out
}

// Replace swaps the store contents with the given sessions, preserving
// their order. Used when restoring from the local cache.
func (s *Store) Replace(sessions []model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make(map[uuid.UUID]*model.Session, len(sessions))
	s.order = s.order[:0]
	for i := range sessions {
		sess := sessions[i]
		s.sessions[sess.ID] = clone(&sess)
		s.order = append(s.order, sess.ID)
	}
}

// clone copies a session deeply enough that callers cannot mutate
// stored state through the returned value.
func clone(sess *model.Session) *model.Session {
	out := *sess
	out.Questions = append([]model.Question(nil), sess.Questions...)
	out.Answers = append([]model.Answer(nil), sess.Answers...)
	if sess.FinishedAt != nil {
		t := *sess.FinishedAt
		out.FinishedAt = &t
	}
	return &out
}
