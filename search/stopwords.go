package search

import "strings"

// StopWords is a membership predicate over a configured word set, used to
// strip low-information tokens before scoring. The zero value filters
// nothing; build one from config with NewStopWords.
type StopWords struct {
	words map[string]bool
}

// NewStopWords builds a StopWords set from the configured vocabulary.
// Entries are normalized the same way lookups are (lowercased, trimmed).
func NewStopWords(words []string) StopWords {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = true
		}
	}
	return StopWords{words: set}
}

// IsStopWord reports whether token is in the stop-word set.
// Matching is case-insensitive and ignores surrounding whitespace.
func (s StopWords) IsStopWord(token string) bool {
	return s.words[strings.ToLower(strings.TrimSpace(token))]
}

// Filter returns tokens with stop words removed, preserving input order.
func (s StopWords) Filter(tokens []string) []string {
	filtered := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !s.IsStopWord(token) {
			filtered = append(filtered, token)
		}
	}
	return filtered
}
