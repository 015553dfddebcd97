package repository

import (
	"strings"
	"testing"
)

func TestContainsPatternEscapesWildcards(t *testing.T) {
	got := containsPattern(`50%_off\`)
	want := `%50\%\_off\\%`
	if got != want {
		t.Fatalf("pattern mismatch, want %s got %s", want, got)
	}
}

func TestBuildLikeConditionByDialect(t *testing.T) {
	condition, count := buildLikeCondition("postgres", []string{"name", " ", "brand"})
	if count != 2 {
		t.Fatalf("arg count want 2 got %d", count)
	}
	if !strings.Contains(condition, "name ILIKE ?") || !strings.Contains(condition, "brand ILIKE ?") {
		t.Fatalf("postgres condition should use ILIKE, got %s", condition)
	}

	condition, _ = buildLikeCondition("sqlite", []string{"name"})
	if !strings.HasPrefix(condition, "name LIKE ?") {
		t.Fatalf("sqlite condition should use LIKE, got %s", condition)
	}
}

func TestBuildTextSearchCondition(t *testing.T) {
	condition, args := buildTextSearchCondition("postgres", "denim jacket")
	if !strings.Contains(condition, "plainto_tsquery") {
		t.Fatalf("postgres search should use tsquery, got %s", condition)
	}
	if len(args) != 1 || args[0] != "denim jacket" {
		t.Fatalf("postgres search args unexpected: %v", args)
	}

	condition, args = buildTextSearchCondition("sqlite", "denim")
	if len(args) != len(productSearchColumns) {
		t.Fatalf("sqlite args want %d got %d", len(productSearchColumns), len(args))
	}
	if !strings.HasPrefix(condition, "(") {
		t.Fatalf("sqlite condition should be grouped, got %s", condition)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}
