// Package controller sequences a practice session from start to
// summary: it presents questions in their fixed order, routes answers
// through the persistence adapter for grading, and decides
// termination.
package controller

import (
	"context"
	"errors"

	"github.com/intervia/intervia-backend/internal/model"
	"github.com/intervia/intervia-backend/internal/persist"
)

// ErrNoActiveSession signals an operation before Start or after the
// session was discarded.
var ErrNoActiveSession = errors.New("no active session")

// Controller drives one practice session at a time. It is the single
// producer of its session's mutations; answers are always submitted
// for the question currently presented, so presentation order and
// record order coincide.
type Controller struct {
	adapter *persist.Adapter
	sess    *model.Session
}

// New creates a controller over the given persistence adapter.
func New(adapter *persist.Adapter) *Controller {
	return &Controller{adapter: adapter}
}

// Start begins a session for the level and domain. Returns
// session.ErrEmptyQuestionSet when no questions match — a terminal
// cannot-start condition.
func (c *Controller) Start(ctx context.Context, level model.Level, domain string) (*model.Session, error) {
	sess, err := c.adapter.StartSession(ctx, level, domain)
	if err != nil {
		return nil, err
	}
	c.sess = sess
	return sess, nil
}

// Session returns the current session, if any.
func (c *Controller) Session() *model.Session {
	return c.sess
}

// Current returns the question to present next, or false when the
// session is complete or not started.
func (c *Controller) Current() (model.Question, bool) {
	if c.sess == nil {
		return model.Question{}, false
	}
	return c.sess.CurrentQuestion()
}

// Submit grades the answer to the current question and records it.
// The returned bool reports whether the session is now complete.
func (c *Controller) Submit(ctx context.Context, userAnswer string, timeSpent int) (model.Answer, bool, error) {
	if c.sess == nil {
		return model.Answer{}, false, ErrNoActiveSession
	}
	current, ok := c.sess.CurrentQuestion()
	if !ok {
		return model.Answer{}, true, nil
	}

	answer, updated, err := c.adapter.SubmitAnswer(ctx, c.sess.ID, current.ID, userAnswer, timeSpent)
	if err != nil {
		return model.Answer{}, false, err
	}
	c.sess = updated
	return answer, updated.IsComplete(), nil
}

// Finish completes the session and returns the final summary.
// Idempotent through the adapter.
func (c *Controller) Finish(ctx context.Context) (model.SessionSummary, error) {
	if c.sess == nil {
		return model.SessionSummary{}, ErrNoActiveSession
	}
	sess, summary, err := c.adapter.CompleteSession(ctx, c.sess.ID)
	if err != nil {
		return model.SessionSummary{}, err
	}
	c.sess = sess
	return summary, nil
}

// Discard drops the current session so a new one can start. The
// abandoned session simply stops receiving answers.
func (c *Controller) Discard() {
	c.sess = nil
}
