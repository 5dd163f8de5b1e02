package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/intervia/intervia-backend/internal/bank"
	"github.com/intervia/intervia-backend/internal/config"
	"github.com/intervia/intervia-backend/internal/controller"
	"github.com/intervia/intervia-backend/internal/logger"
	"github.com/intervia/intervia-backend/internal/model"
	"github.com/intervia/intervia-backend/internal/persist"
	"github.com/intervia/intervia-backend/internal/session"
)

// Terminal practice client. Talks to the Intervia API when reachable and
// falls back to the embedded bank with local grading when it is not.
func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	// Warnings only, the interview flow owns the terminal.
	log := logger.Setup(getLogLevel(cfg), cfg.LogFormat)

	// ─── Build the Persistence Adapter ─────────────────────────────────
	b, err := bank.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load embedded question bank")
	}

	remote := persist.NewRemoteClient(cfg.PracticeAPIURL, cfg.RemoteTimeout)
	store := session.NewStore()
	cache := persist.NewFileCache(cfg.PracticeCacheFile)

	adapter := persist.NewAdapter(remote, store, b, cache, cfg.QuestionsPerSession, log)
	adapter.LoadLocalCache()

	ctrl := controller.New(adapter)
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Intervia Interview Practice ===")

	// ─── Pick Level and Domain ─────────────────────────────────────────
	level := promptChoice(reader, "Level", []string{"fresher", "experienced"})
	domain := promptLine(reader, fmt.Sprintf("Domain (or %q)", model.DomainAll))
	if domain == "" {
		domain = model.DomainAll
	}

	sess, err := ctrl.Start(ctx, model.Level(level), domain)
	if err != nil {
		if errors.Is(err, session.ErrEmptyQuestionSet) {
			fmt.Println("No questions available for that level and domain.")
			return
		}
		log.Fatal().Err(err).Msg("Failed to start session")
	}

	fmt.Printf("\nSession %s started: %d questions.\n", sess.ID, len(sess.Questions))

	// ─── Question Loop ─────────────────────────────────────────────────
	for {
		question, ok := ctrl.Current()
		if !ok {
			break
		}

		answered := len(ctrl.Session().Answers)
		fmt.Printf("\nQuestion %d/%d (%d points)\n", answered+1, len(ctrl.Session().Questions), question.Points)
		fmt.Println(question.Text)
		fmt.Print("> ")

		started := time.Now()
		userAnswer, _ := reader.ReadString('\n')
		userAnswer = strings.TrimRight(userAnswer, "\n")
		timeSpent := int(time.Since(started).Seconds())

		answer, done, err := ctrl.Submit(ctx, userAnswer, timeSpent)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to submit answer")
		}

		if answer.IsCorrect {
			fmt.Printf("Correct! +%d points.\n", answer.Points)
		} else {
			fmt.Println("Not quite.")
		}

		if done {
			break
		}
	}

	// ─── Verdict ───────────────────────────────────────────────────────
	summary, err := ctrl.Finish(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to complete session")
	}

	fmt.Println("\n=== Session Complete ===")
	fmt.Printf("Score:    %d points\n", summary.TotalScore)
	fmt.Printf("Correct:  %d/%d (%d%%)\n", summary.CorrectAnswers, summary.TotalQuestions, summary.Percentage)
	fmt.Printf("Time:     %ds\n", summary.ElapsedSeconds)
	fmt.Printf("Verdict:  %s\n", summary.Verdict)
}

// getLogLevel keeps the client quiet unless the user asked for more.
func getLogLevel(cfg *config.Config) string {
	if os.Getenv("LOG_LEVEL") != "" {
		return cfg.LogLevel
	}
	return "warn"
}

func promptLine(reader *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptChoice(reader *bufio.Reader, label string, options []string) string {
	for {
		choice := promptLine(reader, fmt.Sprintf("%s (%s)", label, strings.Join(options, "/")))
		for _, opt := range options {
			if strings.EqualFold(choice, opt) {
				return opt
			}
		}
		fmt.Println("Please pick one of:", strings.Join(options, ", "))
	}
}
