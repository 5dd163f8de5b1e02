package main

import (
	"context"

	"github.com/intervia/intervia-backend/internal/bank"
	"github.com/intervia/intervia-backend/internal/config"
	"github.com/intervia/intervia-backend/internal/database"
	"github.com/intervia/intervia-backend/internal/logger"
	"github.com/intervia/intervia-backend/internal/repository"
)

// Seeds the questions table from the embedded question bank. Safe to run
// repeatedly, existing rows are updated in place.
func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Load Embedded Bank ────────────────────────────────────────────
	b, err := bank.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load embedded question bank")
	}

	questionRepo := repository.NewQuestionRepository(pool)

	seeded := 0
	for _, q := range b.All() {
		question := q
		if err := questionRepo.Upsert(ctx, &question); err != nil {
			log.Fatal().Err(err).Int("question_id", question.ID).Msg("Failed to seed question")
		}
		seeded++
	}

	if err := questionRepo.SyncIDSequence(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to sync question id sequence")
	}

	log.Info().Int("questions", seeded).Msg("Question bank seeded")
}
