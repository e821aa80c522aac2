package game

import (
	"sort"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SuggestionLimit caps how many near matches are offered after a bad player name.
const SuggestionLimit = 10

// Suggest ranks names by similarity to text and returns at most limit of them.
// Names that contain the typed characters in order rank above the rest; within
// a group the edit-distance ratio decides and ties keep the order of names.
func Suggest(text string, names []string, limit int) []string {
	if limit <= 0 || len(names) == 0 {
		return nil
	}
	query := normalizeKey(text)

	type scored struct {
		name  string
		score int
	}
	ranked := make([]scored, 0, len(names))
	for _, name := range names {
		ranked = append(ranked, scored{name: name, score: similarity(query, normalizeKey(name))})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.name)
	}
	return out
}

// similarity scores 0..200: a 0..100 edit-distance ratio, plus 100 when query is
// a subsequence of target.
func similarity(query, target string) int {
	longest := utf8.RuneCountInString(query)
	if n := utf8.RuneCountInString(target); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	ratio := 100 - fuzzy.LevenshteinDistance(query, target)*100/longest
	if query != "" && fuzzy.Match(query, target) {
		ratio += 100
	}
	return ratio
}
