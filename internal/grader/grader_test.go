package grader

import (
	"reflect"
	"testing"
)

func TestKeyConcepts(t *testing.T) {
	t.Run("splits on whitespace, commas, periods, and hyphens", func(t *testing.T) {
		got := KeyConcepts("block-scoped,var.function scoped")
		want := []string{"block", "scoped", "function", "scoped"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("KeyConcepts() = %v, want %v", got, want)
		}
	})

	t.Run("drops tokens of three characters or fewer", func(t *testing.T) {
		got := KeyConcepts("var let const is a way")
		want := []string{"const"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("KeyConcepts() = %v, want %v", got, want)
		}
	})

	t.Run("removes stop words", func(t *testing.T) {
		got := KeyConcepts("that this with function through")
		want := []string{"function"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("KeyConcepts() = %v, want %v", got, want)
		}
	})

	t.Run("lower-cases and trims", func(t *testing.T) {
		got := KeyConcepts("  Closure FUNCTION  ")
		want := []string{"closure", "function"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("KeyConcepts() = %v, want %v", got, want)
		}
	})
}

func TestEvaluateThresholdBoundary(t *testing.T) {
	// Exactly five key concepts, none of them stop words.
	reference := "closure function scope variable returned"

	t.Run("two of five matched is exactly 40 percent and correct", func(t *testing.T) {
		res := Evaluate("a closure is a function", reference, 6)
		if res.MatchRatio != 0.4 {
			t.Errorf("MatchRatio = %v, want 0.4", res.MatchRatio)
		}
		if !res.IsCorrect {
			t.Error("expected answer to be correct at 40 percent coverage")
		}
		if res.Points != 6 {
			t.Errorf("Points = %d, want 6", res.Points)
		}
	})

	t.Run("one of five matched is 20 percent and incorrect", func(t *testing.T) {
		res := Evaluate("something about a closure", reference, 6)
		if res.MatchRatio != 0.2 {
			t.Errorf("MatchRatio = %v, want 0.2", res.MatchRatio)
		}
		if res.IsCorrect {
			t.Error("expected answer to be incorrect at 20 percent coverage")
		}
		if res.Points != 0 {
			t.Errorf("Points = %d, want 0", res.Points)
		}
	})
}

func TestEvaluateNoKeyConcepts(t *testing.T) {
	// Every reference token is three characters or fewer.
	res := Evaluate("a very thorough answer", "it is so and the", 5)
	if res.MatchRatio != 0 {
		t.Errorf("MatchRatio = %v, want 0", res.MatchRatio)
	}
	if res.IsCorrect {
		t.Error("expected incorrect when the reference has no key concepts")
	}
	if res.Points != 0 {
		t.Errorf("Points = %d, want 0", res.Points)
	}
}

func TestEvaluateEmptySubmission(t *testing.T) {
	for _, submission := range []string{"", "   ", "\t\n"} {
		res := Evaluate(submission, "closure function scope variable returned", 6)
		if res.IsCorrect || res.Points != 0 {
			t.Errorf("Evaluate(%q) = correct=%v points=%d, want incorrect with 0 points",
				submission, res.IsCorrect, res.Points)
		}
	}
}

func TestEvaluateSubstringContainment(t *testing.T) {
	// Matching is plain substring containment, not word-boundary aware.
	// "scope" matches inside "microscopes".
	res := Evaluate("microscopes are fun", "scope scope", 4)
	if res.MatchRatio != 1.0 {
		t.Errorf("MatchRatio = %v, want 1.0", res.MatchRatio)
	}
	if !res.IsCorrect {
		t.Error("expected substring containment to count as a match")
	}
}

func TestEvaluateDeterminism(t *testing.T) {
	user := "let and const are block scoped, var is function scoped"
	reference := "var is function-scoped and can be redeclared, let is block-scoped, const cannot be reassigned"

	first := Evaluate(user, reference, 5)
	for i := 0; i < 10; i++ {
		again := Evaluate(user, reference, 5)
		if again.IsCorrect != first.IsCorrect || again.Points != first.Points || again.MatchRatio != first.MatchRatio {
			t.Fatalf("Evaluate is not deterministic: %+v vs %+v", first, again)
		}
	}
}
