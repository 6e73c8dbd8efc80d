package compat

import (
	"regexp"
	"strings"
)

// awarenessPhrases is the fixed vocabulary of self-reflective language. Each
// phrase found in the lowercased answer adds a flat 10 points. Matching is
// plain substring containment; overlapping phrases ("i am working on" also
// contains no other entry, but e.g. "i take responsibility" and the
// responsibility regex below can both fire) double-count on purpose.
var awarenessPhrases = []string{
	"i learned", "i realized", "i understand", "i recognize", "i acknowledge",
	"i take responsibility", "i own", "my fault", "i was wrong", "i made mistakes",
	"i need to work on", "i am working on", "i am improving", "i am growing",
	"i reflect", "i consider", "i think about", "i evaluate", "i assess",
	"i am aware", "i know that", "i see that", "i notice", "i observe",
}

// reflectionPatterns capture personal-reflection grammar beyond the flat
// vocabulary. Each regex match adds 5 points.
var reflectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bi\s+(learned|realized|understand|recognize|acknowledge)`),
	regexp.MustCompile(`(?i)\bi\s+(take|took)\s+responsibility`),
	regexp.MustCompile(`(?i)\bi\s+(am|was)\s+wrong`),
	regexp.MustCompile(`(?i)\bi\s+(need|needed)\s+to\s+work\s+on`),
}

// AnalyzeSelfAwareness scores one answer's density of self-reflective
// language, returning an integer in [0, 100].
//
// Every vocabulary phrase present in the lowercased text adds 10 points and
// one match; every reflection-pattern hit adds 5 points and one match. The
// final score is min(100, points + 2*matches). Longer answers with more
// matching phrases score higher; there is deliberately no length
// normalization.
func AnalyzeSelfAwareness(text string) int {
	lower := strings.ToLower(text)
	score := 0
	matches := 0

	for _, phrase := range awarenessPhrases {
		if strings.Contains(lower, phrase) {
			matches++
			score += 10
		}
	}

	for _, re := range reflectionPatterns {
		if found := re.FindAllString(text, -1); len(found) > 0 {
			matches += len(found)
			score += len(found) * 5
		}
	}

	return capScore(score + matches*2)
}

// capScore clamps an accumulated analyzer total at 100. Analyzer totals are
// never negative.
func capScore(n int) int {
	if n > 100 {
		return 100
	}
	return n
}
