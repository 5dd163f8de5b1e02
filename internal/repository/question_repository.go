package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/intervia/intervia-backend/internal/model"
)

// QuestionRepository handles question bank data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// List retrieves questions matching a level and domain. A domain of "All"
// matches every domain. Results are ordered by id for stable output.
func (r *QuestionRepository) List(ctx context.Context, level model.Level, domain string) ([]model.Question, error) {
	query := `SELECT id, question_text, domain, level, reference_answer, points
		 FROM questions WHERE lower(level) = lower($1)`
	args := []interface{}{string(level)}

	if domain != model.DomainAll {
		query += ` AND lower(domain) = lower($2)`
		args = append(args, domain)
	}
	query += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Domain, &q.Level, &q.ReferenceAnswer, &q.Points); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// ListAll retrieves every question in the bank, ordered by id.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question_text, domain, level, reference_answer, points
		 FROM questions ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Domain, &q.Level, &q.ReferenceAnswer, &q.Points); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// GetByID retrieves a single question.
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*model.Question, error) {
	var q model.Question
	err := r.pool.QueryRow(ctx,
		`SELECT id, question_text, domain, level, reference_answer, points
		 FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.Text, &q.Domain, &q.Level, &q.ReferenceAnswer, &q.Points)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (question_text, domain, level, reference_answer, points)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		q.Text, q.Domain, q.Level, q.ReferenceAnswer, q.Points,
	).Scan(&q.ID)
}

// Update modifies an existing question. Returns the number of rows affected.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE questions
		 SET question_text = $2, domain = $3, level = $4, reference_answer = $5, points = $6, updated_at = now()
		 WHERE id = $1`,
		q.ID, q.Text, q.Domain, q.Level, q.ReferenceAnswer, q.Points,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete removes a question. Returns the number of rows affected.
func (r *QuestionRepository) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Upsert inserts a question with an explicit id, updating it if it exists.
// Used by the seeder to load the embedded bank.
func (r *QuestionRepository) Upsert(ctx context.Context, q *model.Question) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO questions (id, question_text, domain, level, reference_answer, points)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE
		 SET question_text = EXCLUDED.question_text,
		     domain = EXCLUDED.domain,
		     level = EXCLUDED.level,
		     reference_answer = EXCLUDED.reference_answer,
		     points = EXCLUDED.points,
		     updated_at = now()`,
		q.ID, q.Text, q.Domain, q.Level, q.ReferenceAnswer, q.Points,
	)
	return err
}

// SyncIDSequence advances the id sequence past the highest existing id.
// Must run after Upsert batches, which bypass nextval and would otherwise
// leave later sequence-driven inserts colliding with seeded rows.
func (r *QuestionRepository) SyncIDSequence(ctx context.Context) error {
	_, err := r.pool.Exec(ctx,
		`SELECT setval(pg_get_serial_sequence('questions', 'id'),
		        (SELECT COALESCE(MAX(id), 1) FROM questions))`,
	)
	return err
}
