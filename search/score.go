package search

import (
	"strings"

	"github.com/poiesic/schoolbridge/core"
)

// Scoring weights. Exact and near-exact phrase matches dominate keyword
// overlap by design: collapsing these branches into one additive formula
// would change relevance ordering.
const (
	exactPhraseScore = 100
	exactTitleBonus  = 20
	cleanPhraseScore = 80
	cleanTitleBonus  = 15
	keywordScore     = 20
	keywordTitleBonus = 10
	multiMatchBonus  = 10
)

// Score computes the relevance of an announcement for a text query.
//
// The algorithm is an ordered decision list; each branch returns immediately
// on match:
//
//  1. Exact phrase: the lowercased query appears verbatim in the record's
//     searchable text (title, description, sender).
//  2. Clean phrase: the query with stop words removed appears verbatim.
//  3. Keyword accumulation: each filtered keyword found adds points, with a
//     bonus when more than one keyword matches.
//
// Title occurrences earn extra points in every branch. keywords must already
// be stop-word filtered; Score is a pure function of its inputs and returns
// a non-negative integer.
func Score(a *core.Announcement, queryText string, keywords []string) int {
	if a == nil {
		return 0
	}

	title := strings.ToLower(a.Title)
	description := strings.ToLower(a.Description)
	sender := strings.ToLower(a.Sender)
	searchable := title + " " + description + " " + sender

	queryLower := strings.ToLower(queryText)

	// 1. Exact phrase match
	if queryLower != "" && strings.Contains(searchable, queryLower) {
		score := exactPhraseScore
		if strings.Contains(title, queryLower) {
			score += exactTitleBonus
		}
		return score
	}

	// 2. Clean phrase match (query without stop words)
	cleanPhrase := strings.ToLower(strings.Join(keywords, " "))
	if cleanPhrase != "" && strings.Contains(searchable, cleanPhrase) {
		score := cleanPhraseScore
		if strings.Contains(title, cleanPhrase) {
			score += cleanTitleBonus
		}
		return score
	}

	// 3. Keyword accumulation
	score := 0
	matched := 0
	for _, keyword := range keywords {
		kw := strings.ToLower(keyword)
		if kw == "" || !strings.Contains(searchable, kw) {
			continue
		}
		matched++
		score += keywordScore
		if strings.Contains(title, kw) {
			score += keywordTitleBonus
		}
	}
	if matched > 1 {
		score += (matched - 1) * multiMatchBonus
	}
	return score
}
