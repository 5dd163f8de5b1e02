package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/intervia/intervia-backend/internal/config"
	"github.com/intervia/intervia-backend/internal/model"
	"github.com/intervia/intervia-backend/internal/repository"
)

// QuestionService handles question bank business logic and the candidate
// set cache that backs session creation.
type QuestionService struct {
	cfg          *config.Config
	questionRepo *repository.QuestionRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(cfg *config.Config, questionRepo *repository.QuestionRepository, rdb *redis.Client, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		cfg:          cfg,
		questionRepo: questionRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "question_service").Logger(),
	}
}

// Candidates returns the questions eligible for a level and domain.
// Redis is consulted first; a miss falls through to Postgres and
// re-populates the cache.
func (s *QuestionService) Candidates(ctx context.Context, level model.Level, domain string) ([]model.Question, error) {
	key := config.CacheKey.CandidateSetKey(string(level), domain)

	cached, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		var questions []model.Question
		if jsonErr := json.Unmarshal([]byte(cached), &questions); jsonErr == nil {
			return questions, nil
		}
		// Unreadable cache entry, drop it and rebuild below.
		s.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Str("key", key).Msg("candidate cache read failed, falling back to database")
	}

	questions, err := s.questionRepo.List(ctx, level, domain)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	if payload, err := json.Marshal(questions); err == nil {
		if err := s.rdb.Set(ctx, key, payload, s.cfg.CandidateCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("candidate cache write failed")
		}
	}

	return questions, nil
}

// Prewarm populates the candidate cache for every level/domain pair present
// in the bank, plus the "All" wildcard per level. Called at startup.
func (s *QuestionService) Prewarm(ctx context.Context) error {
	all, err := s.questionRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("prewarm: %w", err)
	}

	pairs := make(map[string]struct{})
	for _, q := range all {
		pairs[string(q.Level)+"\x00"+q.Domain] = struct{}{}
		pairs[string(q.Level)+"\x00"+model.DomainAll] = struct{}{}
	}

	warmed := 0
	for pair := range pairs {
		level, domain := splitPair(pair)
		if _, err := s.Candidates(ctx, model.Level(level), domain); err != nil {
			return err
		}
		warmed++
	}

	s.log.Info().Int("sets", warmed).Msg("candidate cache prewarmed")
	return nil
}

// ListAll returns every question in the bank.
func (s *QuestionService) ListAll(ctx context.Context) ([]model.Question, error) {
	return s.questionRepo.ListAll(ctx)
}

// GetByID returns a single question.
func (s *QuestionService) GetByID(ctx context.Context, id int) (*model.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// Create adds a question to the bank and invalidates the candidate cache.
func (s *QuestionService) Create(ctx context.Context, q *model.Question) error {
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return err
	}
	s.invalidateCandidates(ctx)
	return nil
}

// Update modifies a question and invalidates the candidate cache.
// Returns the number of rows affected.
func (s *QuestionService) Update(ctx context.Context, q *model.Question) (int64, error) {
	affected, err := s.questionRepo.Update(ctx, q)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.invalidateCandidates(ctx)
	}
	return affected, nil
}

// Delete removes a question and invalidates the candidate cache.
// Returns the number of rows affected.
func (s *QuestionService) Delete(ctx context.Context, id int) (int64, error) {
	affected, err := s.questionRepo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.invalidateCandidates(ctx)
	}
	return affected, nil
}

// invalidateCandidates drops every cached candidate set. Best effort, the
// TTL bounds staleness if Redis is unreachable here.
func (s *QuestionService) invalidateCandidates(ctx context.Context) {
	iter := s.rdb.Scan(ctx, 0, config.CacheKey.CandidateSetPattern(), 100).Iterator()
	for iter.Next(ctx) {
		s.rdb.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.log.Warn().Err(err).Msg("candidate cache invalidation failed")
	}
}

func splitPair(pair string) (level, domain string) {
	for i := 0; i < len(pair); i++ {
		if pair[i] == '\x00' {
			return pair[:i], pair[i+1:]
		}
	}
	return pair, ""
}
