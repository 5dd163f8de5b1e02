package session

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/intervia/intervia-backend/internal/model"
)

func threeQuestions() []model.Question {
	return []model.Question{
		{ID: 1, Text: "q1", Domain: "JavaScript", Level: model.LevelFresher, ReferenceAnswer: "a", Points: 5},
		{ID: 2, Text: "q2", Domain: "JavaScript", Level: model.LevelFresher, ReferenceAnswer: "b", Points: 5},
		{ID: 3, Text: "q3", Domain: "JavaScript", Level: model.LevelFresher, ReferenceAnswer: "c", Points: 6},
	}
}

func TestCreateRequiresQuestions(t *testing.T) {
	store := NewStore()

	if _, err := store.Create(model.LevelFresher, "JavaScript", nil); !errors.Is(err, ErrEmptyQuestionSet) {
		t.Errorf("Create(empty) error = %v, want ErrEmptyQuestionSet", err)
	}
}

func TestCreateStartsInSetup(t *testing.T) {
	store := NewStore()

	sess, err := store.Create(model.LevelFresher, "JavaScript", threeQuestions())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sess.Status() != model.SessionStatusSetup {
		t.Errorf("Status = %s, want SETUP", sess.Status())
	}
	if sess.TotalScore != 0 || len(sess.Answers) != 0 {
		t.Errorf("new session has score %d and %d answers, want zero of both", sess.TotalScore, len(sess.Answers))
	}
	if sess.StartedAt.IsZero() {
		t.Error("StartedAt not set")
	}
}

func TestRecordAnswerUnknownSession(t *testing.T) {
	store := NewStore()

	_, err := store.RecordAnswer(uuid.New(), model.Answer{QuestionID: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestRecordAnswerMaintainsScoreInvariant(t *testing.T) {
	store := NewStore()
	sess, _ := store.Create(model.LevelFresher, "JavaScript", threeQuestions())

	answers := []model.Answer{
		{QuestionID: 1, UserAnswer: "x", IsCorrect: true, Points: 5},
		{QuestionID: 2, UserAnswer: "y", IsCorrect: false, Points: 0},
		{QuestionID: 3, UserAnswer: "z", IsCorrect: true, Points: 6},
	}

	wantScore := 0
	for _, a := range answers {
		updated, err := store.RecordAnswer(sess.ID, a)
		if err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
		wantScore += a.Points

		sum := 0
		for _, rec := range updated.Answers {
			sum += rec.Points
		}
		if updated.TotalScore != sum {
			t.Errorf("TotalScore = %d, sum of answer points = %d", updated.TotalScore, sum)
		}
		if updated.TotalScore != wantScore {
			t.Errorf("TotalScore = %d, want %d", updated.TotalScore, wantScore)
		}
	}
}

func TestRecordAnswerEnforcesPresentationOrder(t *testing.T) {
	store := NewStore()
	sess, _ := store.Create(model.LevelFresher, "JavaScript", threeQuestions())

	// First presented question is id 1; answering id 2 is rejected.
	if _, err := store.RecordAnswer(sess.ID, model.Answer{QuestionID: 2}); !errors.Is(err, ErrQuestionOrder) {
		t.Errorf("out-of-order answer error = %v, want ErrQuestionOrder", err)
	}

	// The rejected answer must not have touched the session.
	got, _ := store.Get(sess.ID)
	if len(got.Answers) != 0 || got.TotalScore != 0 {
		t.Errorf("rejected answer mutated session: %d answers, score %d", len(got.Answers), got.TotalScore)
	}
}

func TestStateMachineTransitions(t *testing.T) {
	store := NewStore()
	sess, _ := store.Create(model.LevelFresher, "JavaScript", threeQuestions())

	updated, _ := store.RecordAnswer(sess.ID, model.Answer{QuestionID: 1, Points: 5})
	if updated.Status() != model.SessionStatusActive {
		t.Errorf("after first answer: Status = %s, want ACTIVE", updated.Status())
	}

	store.RecordAnswer(sess.ID, model.Answer{QuestionID: 2})
	updated, _ = store.RecordAnswer(sess.ID, model.Answer{QuestionID: 3, Points: 6})
	if updated.Status() != model.SessionStatusCompleted {
		t.Errorf("after last answer: Status = %s, want COMPLETED", updated.Status())
	}

	// A fourth answer is rejected.
	if _, err := store.RecordAnswer(sess.ID, model.Answer{QuestionID: 1}); !errors.Is(err, ErrSessionCompleted) {
		t.Errorf("answer after completion error = %v, want ErrSessionCompleted", err)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	store := NewStore()
	sess, _ := store.Create(model.LevelFresher, "JavaScript", threeQuestions())
	store.RecordAnswer(sess.ID, model.Answer{QuestionID: 1})
	store.RecordAnswer(sess.ID, model.Answer{QuestionID: 2})
	store.RecordAnswer(sess.ID, model.Answer{QuestionID: 3})

	first, err := store.Complete(sess.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if first.FinishedAt == nil {
		t.Fatal("FinishedAt not set on completion")
	}

	second, err := store.Complete(sess.ID)
	if err != nil {
		t.Fatalf("second Complete: %v", err)
	}
	if !second.FinishedAt.Equal(*first.FinishedAt) {
		t.Errorf("second Complete changed FinishedAt: %v vs %v", second.FinishedAt, first.FinishedAt)
	}
}

func TestCompleteRejectsUnfinishedSession(t *testing.T) {
	store := NewStore()
	sess, _ := store.Create(model.LevelFresher, "JavaScript", threeQuestions())
	store.RecordAnswer(sess.ID, model.Answer{QuestionID: 1})

	if _, err := store.Complete(sess.ID); !errors.Is(err, ErrSessionActive) {
		t.Errorf("Complete(active) error = %v, want ErrSessionActive", err)
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	store := NewStore()
	sess, _ := store.Create(model.LevelFresher, "JavaScript", threeQuestions())

	snap, _ := store.Get(sess.ID)
	snap.TotalScore = 999
	snap.Answers = append(snap.Answers, model.Answer{QuestionID: 1})

	fresh, _ := store.Get(sess.ID)
	if fresh.TotalScore != 0 || len(fresh.Answers) != 0 {
		t.Error("mutating a snapshot leaked into the store")
	}
}

func TestReplaceRestoresSessions(t *testing.T) {
	store := NewStore()
	a, _ := store.Create(model.LevelFresher, "JavaScript", threeQuestions())

	restored := NewStore()
	restored.Replace(store.All())

	got, err := restored.Get(a.ID)
	if err != nil {
		t.Fatalf("Get after Replace: %v", err)
	}
	if got.Domain != "JavaScript" || len(got.Questions) != 3 {
		t.Errorf("restored session mismatch: %+v", got)
	}
}
