package compat

import (
	"regexp"
	"strings"

	"github.com/emberapp/go-dating-backend/internal/catalog"
)

// valuePhraseRE extracts the value a user declares after one of the trigger
// phrases ("i value honesty", "family is important to me and..."). The
// capture runs to the next clause boundary. This is best-effort text mining,
// not a parser: punctuation edge cases can mis-extract, and that is accepted.
var valuePhraseRE = regexp.MustCompile(
	`(?i)(?:i\s+)?(?:value|care\s+about|prioritize|believe\s+in|important\s+to\s+me|matters\s+to\s+me)\s+([^,.!?]+)`)

// sentenceSplitRE breaks an answer into rough sentences for value extraction.
var sentenceSplitRE = regexp.MustCompile(`[.!?]+`)

// AnalyzeConsistency scores thematic and value alignment across a user's full
// answer collection, returning an integer in [0, 100]. Two additive parts:
//
// Repeated values: every value phrase extracted via valuePhraseRE is
// normalized to lowercase and tallied across all answers. Values mentioned
// more than once contribute min(100, repeated*15 + sumOfRepeatedCounts*5).
//
// Thematic consistency: answers are grouped by question category via the
// catalog (answers referencing unknown question ids are skipped silently).
// For each category with more than one answered question, lexical diversity
// is uniqueWords/totalWords over the concatenated text; lower diversity means
// more word reuse, and (1-diversity)*30 is added per qualifying category.
//
// The final score is min(100, repeatedValues + thematic). An empty collection
// scores 0.
func AnalyzeConsistency(answers []Answer) int {
	if len(answers) == 0 {
		return 0
	}

	// Part one: repeated value declarations across answers.
	mentions := make(map[string]int)
	for _, a := range answers {
		for _, sentence := range sentenceSplitRE.Split(strings.ToLower(a.Text), -1) {
			for _, m := range valuePhraseRE.FindAllStringSubmatch(sentence, -1) {
				if v := strings.TrimSpace(m[1]); v != "" {
					mentions[v]++
				}
			}
		}
	}
	repeated := 0
	repeatedSum := 0
	for _, count := range mentions {
		if count > 1 {
			repeated++
			repeatedSum += count
		}
	}
	valueScore := repeated*15 + repeatedSum*5
	if valueScore > 100 {
		valueScore = 100
	}

	// Part two: lexical diversity within each answered category.
	groups := make(map[catalog.Category][]string)
	for _, a := range answers {
		q, ok := catalog.Lookup(a.QuestionID)
		if !ok {
			continue
		}
		groups[q.Category] = append(groups[q.Category], strings.ToLower(a.Text))
	}

	thematic := 0.0
	for _, texts := range groups {
		if len(texts) < 2 {
			continue
		}
		words := strings.Fields(strings.Join(texts, " "))
		if len(words) == 0 {
			continue
		}
		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[w] = struct{}{}
		}
		diversity := float64(len(unique)) / float64(len(words))
		thematic += (1 - diversity) * 30
	}

	return roundClamp(float64(valueScore) + thematic)
}
