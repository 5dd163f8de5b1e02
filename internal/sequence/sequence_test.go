package sequence

import (
	"math/rand"
	"testing"

	"github.com/intervia/intervia-backend/internal/model"
)

func makeQuestions(ids ...int) []model.Question {
	qs := make([]model.Question, len(ids))
	for i, id := range ids {
		qs[i] = model.Question{ID: id, Text: "q", Domain: "JavaScript", Level: model.LevelFresher, Points: 5}
	}
	return qs
}

func idMultiset(qs []model.Question) map[int]int {
	counts := make(map[int]int)
	for _, q := range qs {
		counts[q.ID]++
	}
	return counts
}

func TestBuildEmptyPool(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	if got := Build(nil, 5, r); got != nil {
		t.Errorf("Build(empty) = %v, want nil", got)
	}
}

func TestBuildTakesExactlyN(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	pool := makeQuestions(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20)

	set := Build(pool, 5, r)
	if len(set) != 5 {
		t.Fatalf("len(set) = %d, want 5", len(set))
	}

	// With a pool larger than n every question must be unique.
	for id, count := range idMultiset(set) {
		if count != 1 {
			t.Errorf("question %d appears %d times, want 1", id, count)
		}
	}
}

func TestBuildRepeatsWhenPoolTooSmall(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	pool := makeQuestions(1, 2)

	set := Build(pool, 5, r)
	if len(set) != 5 {
		t.Fatalf("len(set) = %d, want 5 even with only 2 candidates", len(set))
	}

	// Only pool members may appear, and together they must cover all 5
	// slots. Assert on multiplicity, not order.
	counts := idMultiset(set)
	total := 0
	for id, count := range counts {
		if id != 1 && id != 2 {
			t.Errorf("unexpected question id %d in set", id)
		}
		total += count
	}
	if total != 5 {
		t.Errorf("multiset total = %d, want 5", total)
	}
	// Both candidates are present: one of them at least twice, so
	// neither can be missing entirely after two full reshuffles.
	if len(counts) != 2 {
		t.Errorf("expected both candidates to appear, got %v", counts)
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	pool := makeQuestions(1, 2, 3, 4, 5)

	Build(pool, 3, r)

	for i, q := range pool {
		if q.ID != i+1 {
			t.Fatalf("input pool mutated: %v", pool)
		}
	}
}

func TestBuildPermutationOfPool(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	pool := makeQuestions(1, 2, 3)

	set := Build(pool, 3, r)
	if len(set) != 3 {
		t.Fatalf("len(set) = %d, want 3", len(set))
	}
	counts := idMultiset(set)
	for _, id := range []int{1, 2, 3} {
		if counts[id] != 1 {
			t.Errorf("question %d appears %d times, want exactly once", id, counts[id])
		}
	}
}
