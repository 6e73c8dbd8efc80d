package compat

import (
	"regexp"
	"strings"
)

// futurePhrases is the fixed vocabulary of forward-looking, goal-oriented
// language. Each phrase present in the lowercased answer adds 8 points.
var futurePhrases = []string{
	"in 5 years", "in 10 years", "in the future", "i plan to", "i want to",
	"i hope to", "i aim to", "i intend to", "i will", "i am going to",
	"my goal", "my vision", "my plan", "my strategy", "my roadmap",
	"building", "creating", "developing", "growing", "expanding",
	"long-term", "long term", "eventually", "ultimately", "someday",
	"i envision", "i see myself", "i imagine", "i picture", "i dream",
}

// timeHorizonPatterns reward explicit time references ("in 3 years",
// "10 years from now", "long-term"). Each match adds 10 points.
var timeHorizonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bin\s+\d+\s+years`),
	regexp.MustCompile(`(?i)\b\d+\s+years\s+from\s+now`),
	regexp.MustCompile(`(?i)\b(long|short)\s*-?term`),
}

// goalPatterns reward explicit goal language. Each match adds 7 points.
var goalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bmy\s+(goal|vision|plan|strategy|roadmap)`),
	regexp.MustCompile(`(?i)\bi\s+(plan|hope|aim|intend|will|am\s+going)\s+to`),
}

// AnalyzeFutureOrientation scores one answer's forward-looking language,
// returning an integer in [0, 100]. It mirrors AnalyzeSelfAwareness
// structurally: vocabulary hits plus regex bonuses, then
// min(100, points + 2*matches), with the same intentional length bias.
func AnalyzeFutureOrientation(text string) int {
	lower := strings.ToLower(text)
	score := 0
	matches := 0

	for _, phrase := range futurePhrases {
		if strings.Contains(lower, phrase) {
			matches++
			score += 8
		}
	}

	for _, re := range timeHorizonPatterns {
		if found := re.FindAllString(text, -1); len(found) > 0 {
			matches += len(found)
			score += len(found) * 10
		}
	}

	for _, re := range goalPatterns {
		if found := re.FindAllString(text, -1); len(found) > 0 {
			matches += len(found)
			score += len(found) * 7
		}
	}

	return capScore(score + matches*2)
}
