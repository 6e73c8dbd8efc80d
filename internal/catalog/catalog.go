// Package catalog holds the static compatibility question catalog: the fixed,
// ordered list of prompts users answer to build a compatibility profile.
// The catalog is defined at build time, immutable at runtime, and
// dependency-free beyond display-title casing, so it is safe for concurrent
// use from any layer.
//
// Questions are grouped into five closed categories. A category is considered
// complete for a user once every question in it has an answer; that derivation
// lives here because only the catalog knows the full question set.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category identifies one of the five fixed question groups.
type Category string

// The closed set of categories. No other values are ever produced or accepted.
const (
	CategoryLifeDirection Category = "life-direction"
	CategoryEmotional     Category = "emotional-readiness"
	CategoryConnection    Category = "connection-communication"
	CategoryLifestyle     Category = "lifestyle-alignment"
	CategoryCommitment    Category = "commitment-vision"
)

// Question is one immutable catalog entry.
type Question struct {
	// ID is the stable string key answers reference (e.g. "life-1").
	ID string `json:"id"`
	// Category groups the question for completion and consistency analysis.
	Category Category `json:"category"`
	// OrderIndex defines presentation order across the whole catalog (1-based).
	OrderIndex int `json:"order_index"`
	// Prompt is the question text shown to the user.
	Prompt string `json:"prompt"`
	// Rationale explains why the question matters. Informational only; it is
	// never consulted by the scoring engine.
	Rationale string `json:"rationale"`
}

// categoryInfo carries the human-readable names for each category.
type categoryInfo struct {
	title    string
	subtitle string
}

var categoryMeta = map[Category]categoryInfo{
	CategoryLifeDirection: {"Life Direction", "Who You're Becoming"},
	CategoryEmotional:     {"Emotional Readiness", "Are You Prepared?"},
	CategoryConnection:    {"Connection & Communication", "How You Love"},
	CategoryLifestyle:     {"Lifestyle & Alignment", "How You Live"},
	CategoryCommitment:    {"Commitment Vision", "What You're Building"},
}

var titleCaser = cases.Title(language.English)

// Title returns the display name for the category, falling back to a
// title-cased rendering of the slug for values outside the known set.
func (c Category) Title() string {
	if m, ok := categoryMeta[c]; ok {
		return m.title
	}
	return titleCaser.String(strings.ReplaceAll(string(c), "-", " "))
}

// Subtitle returns the short tagline shown under the category title.
func (c Category) Subtitle() string {
	return categoryMeta[c].subtitle
}

// Valid reports whether c is one of the five defined categories.
func (c Category) Valid() bool {
	_, ok := categoryMeta[c]
	return ok
}

// rationale strings are shared by all questions of a category.
const (
	rationaleLife       = "Reveals long-term alignment, ambition level, and future pacing."
	rationaleEmotional  = "Screens for maturity, accountability, and healing stage."
	rationaleConnection = "Identifies love language, communication style, and repair skills."
	rationaleLifestyle  = "Prevents friction around pace, habits, and priorities."
	rationaleCommitment = "Clarifies expectations and relationship goals."
)

// questions is the full ordered catalog. OrderIndex values are contiguous and
// 1-based; ids are stable and referenced by persisted answers, so entries may
// be appended but never renumbered or reused.
var questions = []Question{
	{ID: "life-1", Category: CategoryLifeDirection, OrderIndex: 1, Prompt: "Where do you see your life in 5–10 years?", Rationale: rationaleLife},
	{ID: "life-2", Category: CategoryLifeDirection, OrderIndex: 2, Prompt: "What values guide your everyday decisions?", Rationale: rationaleLife},
	{ID: "life-3", Category: CategoryLifeDirection, OrderIndex: 3, Prompt: "What does \"success\" mean to you?", Rationale: rationaleLife},
	{ID: "life-4", Category: CategoryLifeDirection, OrderIndex: 4, Prompt: "How important are family and legacy to you?", Rationale: rationaleLife},
	{ID: "life-5", Category: CategoryLifeDirection, OrderIndex: 5, Prompt: "What kind of life do you want to build with a partner?", Rationale: rationaleLife},

	{ID: "emotional-1", Category: CategoryEmotional, OrderIndex: 6, Prompt: "What did your last relationship teach you?", Rationale: rationaleEmotional},
	{ID: "emotional-2", Category: CategoryEmotional, OrderIndex: 7, Prompt: "Why are you ready for a committed relationship now?", Rationale: rationaleEmotional},
	{ID: "emotional-3", Category: CategoryEmotional, OrderIndex: 8, Prompt: "How do you handle conflict when emotions are high?", Rationale: rationaleEmotional},
	{ID: "emotional-4", Category: CategoryEmotional, OrderIndex: 9, Prompt: "What personal patterns are you actively working on?", Rationale: rationaleEmotional},
	{ID: "emotional-5", Category: CategoryEmotional, OrderIndex: 10, Prompt: "What does emotional safety mean to you?", Rationale: rationaleEmotional},

	{ID: "connection-1", Category: CategoryConnection, OrderIndex: 11, Prompt: "How do you give and receive affection?", Rationale: rationaleConnection},
	{ID: "connection-2", Category: CategoryConnection, OrderIndex: 12, Prompt: "What helps you feel understood?", Rationale: rationaleConnection},
	{ID: "connection-3", Category: CategoryConnection, OrderIndex: 13, Prompt: "How do you communicate disappointment or frustration?", Rationale: rationaleConnection},
	{ID: "connection-4", Category: CategoryConnection, OrderIndex: 14, Prompt: "What makes you feel valued in a relationship?", Rationale: rationaleConnection},
	{ID: "connection-5", Category: CategoryConnection, OrderIndex: 15, Prompt: "How do you repair after conflict?", Rationale: rationaleConnection},

	{ID: "lifestyle-1", Category: CategoryLifestyle, OrderIndex: 16, Prompt: "Describe your ideal weekday and weekend.", Rationale: rationaleLifestyle},
	{ID: "lifestyle-2", Category: CategoryLifestyle, OrderIndex: 17, Prompt: "How do you balance work, relationships, and rest?", Rationale: rationaleLifestyle},
	{ID: "lifestyle-3", Category: CategoryLifestyle, OrderIndex: 18, Prompt: "What routines are essential to your well-being?", Rationale: rationaleLifestyle},
	{ID: "lifestyle-4", Category: CategoryLifestyle, OrderIndex: 19, Prompt: "How do you approach money and planning?", Rationale: rationaleLifestyle},
	{ID: "lifestyle-5", Category: CategoryLifestyle, OrderIndex: 20, Prompt: "How do you feel about travel, change, and spontaneity?", Rationale: rationaleLifestyle},

	{ID: "commitment-1", Category: CategoryCommitment, OrderIndex: 21, Prompt: "What does commitment mean to you?", Rationale: rationaleCommitment},
	{ID: "commitment-2", Category: CategoryCommitment, OrderIndex: 22, Prompt: "What does a healthy partnership require from both people?", Rationale: rationaleCommitment},
	{ID: "commitment-3", Category: CategoryCommitment, OrderIndex: 23, Prompt: "How do you envision growing together?", Rationale: rationaleCommitment},
	{ID: "commitment-4", Category: CategoryCommitment, OrderIndex: 24, Prompt: "What would make you proud of your relationship long-term?", Rationale: rationaleCommitment},
	{ID: "commitment-5", Category: CategoryCommitment, OrderIndex: 25, Prompt: "What are you still working on that could affect a partnership?", Rationale: rationaleCommitment},
}

// byID is built once at init for O(1) lookups.
var byID = func() map[string]Question {
	m := make(map[string]Question, len(questions))
	for _, q := range questions {
		m[q.ID] = q
	}
	return m
}()

// Questions returns the full catalog in presentation order. The returned
// slice is a copy; callers may not mutate catalog state through it.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// Len returns the total number of questions in the catalog.
func Len() int { return len(questions) }

// Lookup returns the question with the given id. The second return value is
// false when the id is not part of the current catalog; callers that consume
// persisted answers must treat that case as a silent skip, not an error.
func Lookup(id string) (Question, bool) {
	q, ok := byID[id]
	return q, ok
}

// Categories returns the five categories in catalog presentation order.
func Categories() []Category {
	return []Category{
		CategoryLifeDirection,
		CategoryEmotional,
		CategoryConnection,
		CategoryLifestyle,
		CategoryCommitment,
	}
}

// ByCategory returns the questions of one category, in OrderIndex order.
func ByCategory(c Category) []Question {
	out := make([]Question, 0, 5)
	for _, q := range questions {
		if q.Category == c {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out
}

// CompletedCategories derives the set of fully answered categories from the
// ids of a user's answered questions. A category is complete iff every one of
// its questions appears in answeredIDs. Unknown ids are ignored. The result
// preserves catalog category order.
func CompletedCategories(answeredIDs []string) []Category {
	answered := make(map[string]struct{}, len(answeredIDs))
	for _, id := range answeredIDs {
		if _, ok := byID[id]; ok {
			answered[id] = struct{}{}
		}
	}

	var out []Category
	for _, c := range Categories() {
		complete := true
		for _, q := range ByCategory(c) {
			if _, ok := answered[q.ID]; !ok {
				complete = false
				break
			}
		}
		if complete {
			out = append(out, c)
		}
	}
	return out
}
