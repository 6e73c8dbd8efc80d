// Package compat implements the compatibility scoring engine: a deterministic,
// rule-based heuristic that turns free-text answers to the catalog questions
// into numeric scores, and compares two users' scores into a symmetric
// alignment signal used to rank discovery candidates. It is intentionally
// small but engineered with production-grade ergonomics:
//
//   - No logging and no I/O in the library (callers decide how/what to log)
//   - Pure functions over immutable inputs; safe for concurrent use
//   - Deterministic: the same answer set always yields the same scores
//   - Lenient by contract: any string content, including empty text, is a
//     valid input and contributes zero rather than failing
//
// The heuristics are transparent keyword/regex counters, not NLP. One known,
// accepted bias: scores are not normalized by text length, so a longer answer
// containing more matching phrases scores higher than a terse one.
package compat

import (
	"math"
	"time"
)

// Answer is one free-text response to a catalog question. It is a plain value
// type so that the engine stays decoupled from storage; persistence layers
// convert their rows into this shape before scoring.
type Answer struct {
	// QuestionID references a catalog question. Ids unknown to the current
	// catalog are tolerated and simply excluded from category grouping.
	QuestionID string `json:"question_id"`
	// Text is the raw answer. Empty text scores zero everywhere.
	Text string `json:"text"`
	// AnsweredAt records when the answer was (last) submitted.
	AnsweredAt time.Time `json:"answered_at"`
}

// Score is the four-number heuristic summary of one user's answers, or — when
// produced by ComputeAlignment — of the closeness of two users' summaries.
// Every field is clamped to [0, 100].
type Score struct {
	Consistency       int `json:"consistency"`
	SelfAwareness     int `json:"self_awareness"`
	FutureOrientation int `json:"future_orientation"`
	Overall           int `json:"overall"`
}

// Dimension weights for the overall score. Consistency carries the most
// weight because it is the only cross-answer signal.
const (
	weightConsistency = 0.4
	weightAwareness   = 0.3
	weightFuture      = 0.3
)

// ComputeScore aggregates a user's full answer collection into one Score.
//
// Self-awareness and future orientation are analyzed per answer and averaged
// arithmetically; consistency is analyzed once over the whole collection.
// The overall score is the weighted blend 0.4/0.3/0.3. Internal arithmetic is
// floating point; fields are rounded to the nearest integer only at this
// boundary. An empty collection yields the exact zero Score.
func ComputeScore(answers []Answer) Score {
	if len(answers) == 0 {
		return Score{}
	}

	var awareSum, futureSum float64
	for _, a := range answers {
		awareSum += float64(AnalyzeSelfAwareness(a.Text))
		futureSum += float64(AnalyzeFutureOrientation(a.Text))
	}
	n := float64(len(answers))
	aware := awareSum / n
	future := futureSum / n
	consistency := float64(AnalyzeConsistency(answers))

	overall := consistency*weightConsistency + aware*weightAwareness + future*weightFuture

	return Score{
		Consistency:       roundClamp(consistency),
		SelfAwareness:     roundClamp(aware),
		FutureOrientation: roundClamp(future),
		Overall:           roundClamp(overall),
	}
}

// ComputeAlignment compares two independently computed Scores and returns a
// Score-shaped alignment result: per dimension, 100 minus the absolute
// difference (identical scores align at 100, maximally divergent at 0), with
// the overall blended using the same weights as ComputeScore.
//
// Alignment is symmetric by construction — the absolute difference commutes —
// so ComputeAlignment(a, b) == ComputeAlignment(b, a) always. Zero scores
// (users without answers) get no special treatment here; substituting a
// neutral ranking default for empty profiles is a policy of the discovery
// ranker, not of this function.
func ComputeAlignment(a, b Score) Score {
	consistency := 100 - math.Abs(float64(a.Consistency-b.Consistency))
	aware := 100 - math.Abs(float64(a.SelfAwareness-b.SelfAwareness))
	future := 100 - math.Abs(float64(a.FutureOrientation-b.FutureOrientation))

	overall := consistency*weightConsistency + aware*weightAwareness + future*weightFuture

	return Score{
		Consistency:       roundClamp(consistency),
		SelfAwareness:     roundClamp(aware),
		FutureOrientation: roundClamp(future),
		Overall:           roundClamp(overall),
	}
}

// roundClamp rounds to the nearest integer and clamps into [0, 100].
func roundClamp(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
