package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/intervia/intervia-backend/internal/model"
)

// SessionRepository handles practice session data access.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Create inserts a session and its question sequence in one transaction.
// Positions are assigned from slice order, starting at 0.
func (r *SessionRepository) Create(ctx context.Context, s *model.Session) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO practice_sessions (id, level, domain, total_score, started_at)
		 VALUES ($1, $2, $3, 0, $4)`,
		s.ID, s.Level, s.Domain, s.StartedAt,
	)
	if err != nil {
		return err
	}

	for i, q := range s.Questions {
		_, err = tx.Exec(ctx,
			`INSERT INTO session_questions (session_id, position, question_id)
			 VALUES ($1, $2, $3)`,
			s.ID, i, q.ID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a session with its ordered questions and answers.
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	var s model.Session
	err := r.pool.QueryRow(ctx,
		`SELECT id, level, domain, total_score, started_at, finished_at
		 FROM practice_sessions WHERE id = $1`, id,
	).Scan(&s.ID, &s.Level, &s.Domain, &s.TotalScore, &s.StartedAt, &s.FinishedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT q.id, q.question_text, q.domain, q.level, q.reference_answer, q.points
		 FROM session_questions sq
		 JOIN questions q ON q.id = sq.question_id
		 WHERE sq.session_id = $1
		 ORDER BY sq.position`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Domain, &q.Level, &q.ReferenceAnswer, &q.Points); err != nil {
			return nil, err
		}
		s.Questions = append(s.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ansRows, err := r.pool.Query(ctx,
		`SELECT question_id, user_answer, is_correct, points, time_spent_seconds
		 FROM session_answers
		 WHERE session_id = $1
		 ORDER BY position`, id,
	)
	if err != nil {
		return nil, err
	}
	defer ansRows.Close()

	for ansRows.Next() {
		var a model.Answer
		if err := ansRows.Scan(&a.QuestionID, &a.UserAnswer, &a.IsCorrect, &a.Points, &a.TimeSpentSeconds); err != nil {
			return nil, err
		}
		s.Answers = append(s.Answers, a)
	}
	return &s, ansRows.Err()
}

// RecordAnswer appends a graded answer at the given position and adds the
// awarded points to the session score, atomically.
func (r *SessionRepository) RecordAnswer(ctx context.Context, sessionID uuid.UUID, position int, a model.Answer) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO session_answers (session_id, position, question_id, user_answer, is_correct, points, time_spent_seconds)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sessionID, position, a.QuestionID, a.UserAnswer, a.IsCorrect, a.Points, a.TimeSpentSeconds,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE practice_sessions SET total_score = total_score + $2 WHERE id = $1`,
		sessionID, a.Points,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// AnswerCount returns how many answers a session has recorded.
func (r *SessionRepository) AnswerCount(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM session_answers WHERE session_id = $1`, sessionID,
	).Scan(&n)
	return n, err
}

// Complete stamps the finish time on a session. The COALESCE keeps the
// first finish time when called repeatedly.
func (r *SessionRepository) Complete(ctx context.Context, id uuid.UUID, finishedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE practice_sessions
		 SET finished_at = COALESCE(finished_at, $2)
		 WHERE id = $1`,
		id, finishedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
