package compat

import (
	"testing"
)

func answersFrom(texts ...string) []Answer {
	ids := []string{"life-1", "life-2", "life-3", "life-4", "life-5",
		"emotional-1", "emotional-2", "emotional-3", "emotional-4", "emotional-5"}
	out := make([]Answer, 0, len(texts))
	for i, txt := range texts {
		out = append(out, Answer{QuestionID: ids[i%len(ids)], Text: txt})
	}
	return out
}

// ----- ComputeScore -----

func TestComputeScore_EmptyIsExactZero(t *testing.T) {
	got := ComputeScore(nil)
	if got != (Score{}) {
		t.Fatalf("empty answers = %+v, want zero Score", got)
	}
	got = ComputeScore([]Answer{})
	if got != (Score{}) {
		t.Fatalf("empty slice = %+v, want zero Score", got)
	}
}

func TestComputeScore_RangesAndDeterminism(t *testing.T) {
	answers := answersFrom(
		"I learned a lot from my past and I plan to build a family someday.",
		"I value honesty. Honesty is important to me and I value honesty deeply.",
		"",
		"short",
	)

	first := ComputeScore(answers)
	second := ComputeScore(answers)
	if first != second {
		t.Fatalf("not deterministic: %+v vs %+v", first, second)
	}

	for name, v := range map[string]int{
		"consistency": first.Consistency,
		"awareness":   first.SelfAwareness,
		"future":      first.FutureOrientation,
		"overall":     first.Overall,
	} {
		if v < 0 || v > 100 {
			t.Fatalf("%s out of range: %d", name, v)
		}
	}
}

func TestComputeScore_ReflectiveBeatsShallow(t *testing.T) {
	deep := ComputeScore(answersFrom(
		"I learned a lot from my last relationship and I take responsibility for my mistakes."))
	shallow := ComputeScore(answersFrom("It was fine, nothing special."))

	if deep.SelfAwareness <= shallow.SelfAwareness {
		t.Fatalf("reflective answer should score higher: %d vs %d", deep.SelfAwareness, shallow.SelfAwareness)
	}
	if deep.Overall <= shallow.Overall {
		t.Fatalf("reflective overall should be higher: %d vs %d", deep.Overall, shallow.Overall)
	}
}

func TestComputeScore_EmptyTextsScoreZeroDimensions(t *testing.T) {
	got := ComputeScore(answersFrom("", "", ""))
	if got.SelfAwareness != 0 || got.FutureOrientation != 0 {
		t.Fatalf("blank answers should score zero per-answer dimensions: %+v", got)
	}
}

// ----- Analyzers -----

func TestAnalyzeSelfAwareness(t *testing.T) {
	if got := AnalyzeSelfAwareness(""); got != 0 {
		t.Fatalf("empty text = %d", got)
	}
	if got := AnalyzeSelfAwareness("The weather is nice today."); got != 0 {
		t.Fatalf("neutral text = %d", got)
	}

	// One vocabulary phrase plus its reflection pattern:
	// 10 (phrase) + 5 (regex) + 2*2 (match bonus) = 19.
	if got := AnalyzeSelfAwareness("I learned something."); got != 19 {
		t.Fatalf("single phrase = %d, want 19", got)
	}

	// Adding phrases may only raise the score.
	base := AnalyzeSelfAwareness("I learned from it.")
	more := AnalyzeSelfAwareness("I learned from it and I take responsibility.")
	if more <= base {
		t.Fatalf("monotonicity violated: %d then %d", base, more)
	}

	// Saturation.
	loaded := "I learned, I realized, I understand, I recognize, I acknowledge, " +
		"I take responsibility, I was wrong, I made mistakes, I need to work on it, " +
		"I am working on myself, I am improving, I am growing, I reflect, I consider, " +
		"I think about it, I evaluate, I assess, I am aware, I know that, I see that, " +
		"I notice, I observe."
	if got := AnalyzeSelfAwareness(loaded); got != 100 {
		t.Fatalf("saturated text = %d, want 100", got)
	}
}

func TestAnalyzeFutureOrientation(t *testing.T) {
	if got := AnalyzeFutureOrientation(""); got != 0 {
		t.Fatalf("empty text = %d", got)
	}
	if got := AnalyzeFutureOrientation("Yesterday was uneventful."); got != 0 {
		t.Fatalf("neutral text = %d", got)
	}

	// "in 5 years": one vocabulary hit (8) + one time-horizon match (10)
	// + 2*2 bonus = 22.
	if got := AnalyzeFutureOrientation("In 5 years I might be elsewhere."); got != 22 {
		t.Fatalf("time horizon = %d, want 22", got)
	}

	base := AnalyzeFutureOrientation("Building something matters.")
	more := AnalyzeFutureOrientation("Building something matters and my goal is a long-term partnership.")
	if more <= base {
		t.Fatalf("monotonicity violated: %d then %d", base, more)
	}

	loaded := "In 5 years and in 10 years, in the future I plan to, I want to, I hope to, " +
		"I aim to, I intend to, I will, I am going to pursue my goal, my vision, my plan, " +
		"building, creating, developing, growing, expanding, long-term, eventually, " +
		"ultimately, someday I envision, I see myself, I imagine, I picture, I dream."
	if got := AnalyzeFutureOrientation(loaded); got != 100 {
		t.Fatalf("saturated text = %d, want 100", got)
	}
}

func TestAnalyzeConsistency(t *testing.T) {
	if got := AnalyzeConsistency(nil); got != 0 {
		t.Fatalf("empty collection = %d", got)
	}

	// One value mentioned in three answers: repeated=1, sum=3 -> 15+15 = 30,
	// plus thematic reuse within the category.
	repeated := answersFrom(
		"I value honesty. It guides every choice I make.",
		"I value honesty, especially in a partner.",
		"I value honesty. Without it nothing else holds.",
	)
	one := answersFrom("I value honesty. It guides every choice I make.")
	if AnalyzeConsistency(repeated) <= AnalyzeConsistency(one) {
		t.Fatalf("repeated values should raise consistency")
	}

	// Unknown question ids are tolerated.
	odd := []Answer{
		{QuestionID: "retired-99", Text: "I value kindness."},
		{QuestionID: "retired-98", Text: "I value kindness."},
	}
	got := AnalyzeConsistency(odd)
	if got < 0 || got > 100 {
		t.Fatalf("unknown ids produced out-of-range score: %d", got)
	}
}

// ----- ComputeAlignment -----

func TestComputeAlignment_IdentityIsPerfect(t *testing.T) {
	s := Score{Consistency: 40, SelfAwareness: 70, FutureOrientation: 55, Overall: 53}
	got := ComputeAlignment(s, s)
	want := Score{Consistency: 100, SelfAwareness: 100, FutureOrientation: 100, Overall: 100}
	if got != want {
		t.Fatalf("self alignment = %+v", got)
	}
}

func TestComputeAlignment_Symmetry(t *testing.T) {
	a := Score{Consistency: 10, SelfAwareness: 90, FutureOrientation: 35, Overall: 42}
	b := Score{Consistency: 75, SelfAwareness: 20, FutureOrientation: 60, Overall: 54}
	if ComputeAlignment(a, b) != ComputeAlignment(b, a) {
		t.Fatalf("alignment is not symmetric")
	}
}

func TestComputeAlignment_MaximalDivergence(t *testing.T) {
	lo := Score{}
	hi := Score{Consistency: 100, SelfAwareness: 100, FutureOrientation: 100, Overall: 100}
	got := ComputeAlignment(lo, hi)
	if got != (Score{}) {
		t.Fatalf("maximal divergence = %+v, want zero", got)
	}
}

func TestComputeAlignment_WeightedOverall(t *testing.T) {
	a := Score{Consistency: 100, SelfAwareness: 0, FutureOrientation: 0}
	b := Score{}
	got := ComputeAlignment(a, b)
	// consistency aligns at 0, the rest at 100: 0*0.4 + 100*0.3 + 100*0.3 = 60.
	if got.Overall != 60 {
		t.Fatalf("overall = %d, want 60", got.Overall)
	}
}

// ----- helpers -----

func TestRoundClamp(t *testing.T) {
	cases := map[float64]int{
		-3.2:  0,
		0:     0,
		49.4:  49,
		49.5:  50,
		100:   100,
		120.9: 100,
	}
	for in, want := range cases {
		if got := roundClamp(in); got != want {
			t.Fatalf("roundClamp(%v) = %d, want %d", in, got, want)
		}
	}
}
