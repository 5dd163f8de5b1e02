package bank

import (
	"testing"

	"github.com/intervia/intervia-backend/internal/model"
)

func TestLoadEmbeddedDataset(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(b.All()); got != 20 {
		t.Errorf("bank size = %d, want 20", got)
	}
	for _, q := range b.All() {
		if q.ID <= 0 || q.Text == "" || q.ReferenceAnswer == "" || q.Points <= 0 {
			t.Errorf("malformed question in dataset: %+v", q)
		}
		if q.Level != model.LevelFresher && q.Level != model.LevelExperienced {
			t.Errorf("question %d has unknown level %q", q.ID, q.Level)
		}
	}
}

func TestSelectFiltersLevelAndDomain(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	t.Run("fresher JavaScript returns ids 1 to 3", func(t *testing.T) {
		got := b.Select(model.LevelFresher, "JavaScript")
		if len(got) != 3 {
			t.Fatalf("candidate count = %d, want 3", len(got))
		}
		for i, q := range got {
			if q.ID != i+1 {
				t.Errorf("candidate[%d].ID = %d, want %d", i, q.ID, i+1)
			}
		}
	})

	t.Run("domain All matches every domain", func(t *testing.T) {
		got := b.Select(model.LevelExperienced, model.DomainAll)
		domains := make(map[string]bool)
		for _, q := range got {
			if q.Level != model.LevelExperienced {
				t.Errorf("question %d has level %q, want experienced", q.ID, q.Level)
			}
			domains[q.Domain] = true
		}
		if len(domains) < 2 {
			t.Errorf("expected multiple domains under All, got %v", domains)
		}
	})

	t.Run("domain match is case-insensitive", func(t *testing.T) {
		if got := b.Select(model.LevelFresher, "javascript"); len(got) != 3 {
			t.Errorf("candidate count = %d, want 3", len(got))
		}
	})

	t.Run("no match yields an empty set", func(t *testing.T) {
		if got := b.Select(model.LevelFresher, "System Design"); len(got) != 0 {
			t.Errorf("candidate count = %d, want 0 (System Design has no fresher questions)", len(got))
		}
	})
}

func TestSelectIsDeterministic(t *testing.T) {
	b, _ := Load()
	first := b.Select(model.LevelFresher, "React")
	second := b.Select(model.LevelFresher, "React")
	if len(first) != len(second) {
		t.Fatalf("candidate sets differ in size: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("candidate order not deterministic at %d: %d vs %d", i, first[i].ID, second[i].ID)
		}
	}
}
