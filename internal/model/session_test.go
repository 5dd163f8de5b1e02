package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestVerdictFor(t *testing.T) {
	cases := []struct {
		percentage int
		want       Verdict
	}{
		{100, VerdictHighlyEligible},
		{90, VerdictHighlyEligible},
		{89, VerdictEligible},
		{75, VerdictEligible},
		{74, VerdictPartiallyEligible},
		{60, VerdictPartiallyEligible},
		{59, VerdictNotEligible},
		{0, VerdictNotEligible},
	}

	for _, tc := range cases {
		if got := VerdictFor(tc.percentage); got != tc.want {
			t.Errorf("VerdictFor(%d) = %s, want %s", tc.percentage, got, tc.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	// session with n answered questions, the first `correct` of them right
	build := func(n, correct int) *Session {
		started := time.Now().Add(-90 * time.Second)
		finished := started.Add(90 * time.Second)
		s := &Session{
			ID:        uuid.New(),
			Level:     LevelFresher,
			Domain:    "JavaScript",
			StartedAt: started,
		}
		for i := 0; i < n; i++ {
			s.Questions = append(s.Questions, Question{ID: i + 1, Points: 10})
			a := Answer{QuestionID: i + 1, IsCorrect: i < correct}
			if a.IsCorrect {
				a.Points = 10
				s.TotalScore += 10
			}
			s.Answers = append(s.Answers, a)
		}
		s.FinishedAt = &finished
		return s
	}

	t.Run("rounds the accuracy percentage half away from zero", func(t *testing.T) {
		// 2/3 correct is 66.67, rounded up
		sum := build(3, 2).Summarize()
		if sum.Percentage != 67 {
			t.Errorf("Percentage = %d, want 67", sum.Percentage)
		}
		if sum.CorrectAnswers != 2 {
			t.Errorf("CorrectAnswers = %d, want 2", sum.CorrectAnswers)
		}
	})

	t.Run("verdict bands follow the rounded percentage", func(t *testing.T) {
		cases := []struct {
			n, correct  int
			percentage  int
			wantVerdict Verdict
		}{
			{10, 10, 100, VerdictHighlyEligible},
			{10, 9, 90, VerdictHighlyEligible},
			{100, 89, 89, VerdictEligible},
			{4, 3, 75, VerdictEligible},
			{100, 74, 74, VerdictPartiallyEligible},
			{5, 3, 60, VerdictPartiallyEligible},
			{100, 59, 59, VerdictNotEligible},
			{3, 0, 0, VerdictNotEligible},
		}
		for _, tc := range cases {
			sum := build(tc.n, tc.correct).Summarize()
			if sum.Percentage != tc.percentage {
				t.Errorf("%d/%d: Percentage = %d, want %d", tc.correct, tc.n, sum.Percentage, tc.percentage)
			}
			if sum.Verdict != tc.wantVerdict {
				t.Errorf("%d/%d: Verdict = %s, want %s", tc.correct, tc.n, sum.Verdict, tc.wantVerdict)
			}
		}
	})

	t.Run("no answers yields zero percent", func(t *testing.T) {
		s := &Session{ID: uuid.New(), StartedAt: time.Now()}
		sum := s.Summarize()
		if sum.Percentage != 0 {
			t.Errorf("Percentage = %d, want 0", sum.Percentage)
		}
		if sum.Verdict != VerdictNotEligible {
			t.Errorf("Verdict = %s, want %s", sum.Verdict, VerdictNotEligible)
		}
	})

	t.Run("elapsed time spans start to finish", func(t *testing.T) {
		sum := build(2, 2).Summarize()
		if sum.ElapsedSeconds != 90 {
			t.Errorf("ElapsedSeconds = %d, want 90", sum.ElapsedSeconds)
		}
	})
}
