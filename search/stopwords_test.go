package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testVocabulary = []string{
	"a", "an", "the", "and", "or", "is", "are", "what", "when", "in", "for",
	"my", "our", "all", "some", "to", "of", "on",
}

func TestIsStopWord(t *testing.T) {
	sw := NewStopWords(testVocabulary)

	tests := []struct {
		token string
		want  bool
	}{
		{"the", true},
		{"The", true},
		{"THE", true},
		{"  the  ", true},
		{"lemonade", false},
		{"", false},
		{"theater", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, sw.IsStopWord(tt.token))
		})
	}
}

func TestFilter(t *testing.T) {
	sw := NewStopWords(testVocabulary)

	t.Run("preserves order", func(t *testing.T) {
		got := sw.Filter([]string{"what", "is", "the", "field", "trip", "schedule"})
		assert.Equal(t, []string{"field", "trip", "schedule"}, got)
	})

	t.Run("all stop words", func(t *testing.T) {
		got := sw.Filter([]string{"the", "and", "or"})
		assert.Empty(t, got)
	})

	t.Run("no stop words", func(t *testing.T) {
		got := sw.Filter([]string{"lemonade", "sale"})
		assert.Equal(t, []string{"lemonade", "sale"}, got)
	})

	t.Run("nil input", func(t *testing.T) {
		assert.Empty(t, sw.Filter(nil))
	})
}

func TestStopWords_ZeroValue(t *testing.T) {
	var sw StopWords
	assert.False(t, sw.IsStopWord("the"))
	assert.Equal(t, []string{"the", "sale"}, sw.Filter([]string{"the", "sale"}))
}

func TestNewStopWords_NormalizesEntries(t *testing.T) {
	sw := NewStopWords([]string{" The ", "AND", ""})
	assert.True(t, sw.IsStopWord("the"))
	assert.True(t, sw.IsStopWord("and"))
	assert.False(t, sw.IsStopWord(""))
}
