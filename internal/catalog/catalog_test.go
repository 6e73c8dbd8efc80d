package catalog

import (
	"strings"
	"testing"
)

func TestCatalogShape(t *testing.T) {
	if Len() != 25 {
		t.Fatalf("catalog size = %d, want 25", Len())
	}
	if got := len(Categories()); got != 5 {
		t.Fatalf("categories = %d, want 5", got)
	}

	seen := map[string]bool{}
	order := map[int]bool{}
	for _, q := range Questions() {
		if q.ID == "" || q.Prompt == "" || q.Rationale == "" {
			t.Fatalf("incomplete question: %+v", q)
		}
		if seen[q.ID] {
			t.Fatalf("duplicate id %q", q.ID)
		}
		seen[q.ID] = true
		if order[q.OrderIndex] {
			t.Fatalf("duplicate order index %d", q.OrderIndex)
		}
		order[q.OrderIndex] = true
		if !q.Category.Valid() {
			t.Fatalf("question %q has invalid category %q", q.ID, q.Category)
		}
	}

	for _, c := range Categories() {
		qs := ByCategory(c)
		if len(qs) != 5 {
			t.Fatalf("category %s has %d questions, want 5", c, len(qs))
		}
		for i := 1; i < len(qs); i++ {
			if qs[i-1].OrderIndex >= qs[i].OrderIndex {
				t.Fatalf("category %s not ordered: %d then %d", c, qs[i-1].OrderIndex, qs[i].OrderIndex)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	q, found := Lookup("life-1")
	if !found || q.Category != CategoryLifeDirection {
		t.Fatalf("Lookup(life-1) = %+v, %v", q, found)
	}
	if _, found := Lookup("life-99"); found {
		t.Fatalf("Lookup should miss on unknown id")
	}
	if _, found := Lookup(""); found {
		t.Fatalf("Lookup should miss on empty id")
	}
}

func TestQuestionsReturnsCopy(t *testing.T) {
	a := Questions()
	a[0].Prompt = "mutated"
	b := Questions()
	if b[0].Prompt == "mutated" {
		t.Fatalf("Questions leaked internal state")
	}
}

func TestCategoryDisplay(t *testing.T) {
	for _, c := range Categories() {
		if c.Title() == "" {
			t.Fatalf("category %s missing title", c)
		}
		if c.Subtitle() == "" {
			t.Fatalf("category %s missing subtitle", c)
		}
	}
	if strings.Contains(CategoryLifeDirection.Title(), "-") {
		t.Fatalf("title should be display text, got %q", CategoryLifeDirection.Title())
	}
	var bogus Category = "astrology"
	if bogus.Valid() {
		t.Fatalf("unknown category must not validate")
	}
}

func TestCompletedCategories(t *testing.T) {
	if got := CompletedCategories(nil); got != nil {
		t.Fatalf("no answers -> %v", got)
	}

	// Four of five in a category is not complete.
	partial := []string{"life-1", "life-2", "life-3", "life-4"}
	if got := CompletedCategories(partial); len(got) != 0 {
		t.Fatalf("partial category counted as complete: %v", got)
	}

	// A full category, with noise from unknown ids and another category.
	full := []string{"life-1", "life-2", "life-3", "life-4", "life-5", "emotional-1", "retired-7"}
	got := CompletedCategories(full)
	if len(got) != 1 || got[0] != CategoryLifeDirection {
		t.Fatalf("completed = %v", got)
	}

	// All questions answered completes every category, in catalog order.
	var all []string
	for _, q := range Questions() {
		all = append(all, q.ID)
	}
	got = CompletedCategories(all)
	if len(got) != 5 {
		t.Fatalf("all answered -> %v", got)
	}
	for i, c := range Categories() {
		if got[i] != c {
			t.Fatalf("order mismatch at %d: %v", i, got)
		}
	}
}
