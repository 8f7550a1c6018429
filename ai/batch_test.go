package ai_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/schoolbridge/ai"
	"github.com/poiesic/schoolbridge/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBatch(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		batch, err := ai.NewBatch(mock.NewMockAnalyzer(), 2)
		require.NoError(t, err)
		defer batch.Release()
		assert.NotNil(t, batch)
	})

	t.Run("defaults worker count", func(t *testing.T) {
		batch, err := ai.NewBatch(mock.NewMockAnalyzer(), 0)
		require.NoError(t, err)
		defer batch.Release()
	})

	t.Run("nil analyzer", func(t *testing.T) {
		_, err := ai.NewBatch(nil, 2)
		assert.Equal(t, ai.ErrAnalyzerRequired, err)
	})
}

func TestSummarizeAll(t *testing.T) {
	analyzer := mock.NewMockAnalyzer()
	analyzer.SummarizeFunc = func(ctx context.Context, text string) (*ai.Summary, error) {
		if strings.Contains(text, "broken") {
			return nil, errors.New("analysis failed")
		}
		return &ai.Summary{Summary: "summary of " + text}, nil
	}

	batch, err := ai.NewBatch(analyzer, 3)
	require.NoError(t, err)
	defer batch.Release()

	texts := []string{"first", "broken second", "third", "fourth"}
	results := batch.SummarizeAll(context.Background(), texts)
	require.Len(t, results, 4)

	// Results keep input order regardless of completion order.
	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}
	assert.Equal(t, "summary of first", results[0].Output.Summary)
	assert.Equal(t, "summary of third", results[2].Output.Summary)
	assert.Equal(t, "summary of fourth", results[3].Output.Summary)

	// A failed document carries its error without aborting the batch.
	assert.Error(t, results[1].Err)
	assert.Nil(t, results[1].Output)

	assert.Equal(t, 4, analyzer.SummarizeCalls())
}

func TestExtractEventsAll(t *testing.T) {
	analyzer := mock.NewMockAnalyzer()
	analyzer.ExtractEventsFunc = func(ctx context.Context, text string) (*ai.EventReport, error) {
		return &ai.EventReport{
			EventsFound: []ai.Event{{Title: text}},
			TotalEvents: 1,
		}, nil
	}

	batch, err := ai.NewBatch(analyzer, 2)
	require.NoError(t, err)
	defer batch.Release()

	results := batch.ExtractEventsAll(context.Background(), []string{"field trip", "bake sale"})
	require.Len(t, results, 2)
	assert.Equal(t, "field trip", results[0].Output.EventsFound[0].Title)
	assert.Equal(t, "bake sale", results[1].Output.EventsFound[0].Title)
}

func TestExtractActionItemsAll_Empty(t *testing.T) {
	batch, err := ai.NewBatch(mock.NewMockAnalyzer(), 2)
	require.NoError(t, err)
	defer batch.Release()

	results := batch.ExtractActionItemsAll(context.Background(), nil)
	assert.Empty(t, results)
}
