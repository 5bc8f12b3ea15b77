package summary_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/usecase/summary"
)

func textItems(texts ...string) []summary.BatchItem {
	items := make([]summary.BatchItem, 0, len(texts))
	for _, t := range texts {
		items = append(items, summary.TextItem{Text: t})
	}
	return items
}

func TestSummarizeBatch_TooLarge(t *testing.T) {
	f := newFixture()
	texts := make([]string, 11)
	for i := range texts {
		texts[i] = fmt.Sprintf("item %d", i)
	}

	results, err := f.svc.SummarizeBatch(context.Background(), textItems(texts...), entity.TierShort, "u1")

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrValidation)
	assert.Equal(t, "Maximum 10 items per batch", entity.PublicMessage(err))
	assert.Nil(t, results)
	assert.Equal(t, int32(0), f.summarizer.calls.Load())
	assert.Equal(t, 0, f.stored(t))
}

func TestSummarizeBatch_AtLimit(t *testing.T) {
	f := newFixture()
	texts := make([]string, 10)
	for i := range texts {
		texts[i] = fmt.Sprintf("item %d", i)
	}

	results, err := f.svc.SummarizeBatch(context.Background(), textItems(texts...), entity.TierShort, "u1")
	require.NoError(t, err)
	require.Len(t, results, 10)
	assert.Equal(t, 10, f.stored(t))
}

func TestSummarizeBatch_PartialSuccess(t *testing.T) {
	f := newFixture()

	results, err := f.svc.SummarizeBatch(context.Background(), textItems("", "valid text"), entity.TierShort, "u1")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Nil(t, results[0].Record)
	assert.Error(t, results[0].Err)
	assert.Equal(t, "Text content cannot be empty", entity.PublicMessage(results[0].Err))

	require.NoError(t, results[1].Err)
	require.NotNil(t, results[1].Record)
	assert.Equal(t, "valid text", results[1].Record.Text)
	assert.Equal(t, entity.BatchProvenance(), results[1].Record.Provenance)

	assert.Equal(t, 1, f.stored(t))
	history, err := f.svc.History(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, results[1].Record.ID, history[0].ID)
}

func TestSummarizeBatch_ResultsKeepInputOrder(t *testing.T) {
	f := newFixture()
	f.summarizer.failOn = "fail"
	f.svc.Limits.BatchConcurrency = 3

	texts := []string{"one", "fail two", "three", "four", "fail five", "six"}
	results, err := f.svc.SummarizeBatch(context.Background(), textItems(texts...), entity.TierMedium, "u1")
	require.NoError(t, err)
	require.Len(t, results, len(texts))

	for i, r := range results {
		if i == 1 || i == 4 {
			assert.ErrorIs(t, r.Err, entity.ErrSummarization, "item %d", i)
			assert.Nil(t, r.Record)
			continue
		}
		require.NoError(t, r.Err, "item %d", i)
		assert.Equal(t, texts[i], r.Record.Text)
		assert.Equal(t, entity.TierMedium, r.Record.Length)
		assert.Equal(t, "u1", r.Record.OwnerID)
	}
	assert.Equal(t, 4, f.stored(t))
}

func TestSummarizeBatch_Empty(t *testing.T) {
	f := newFixture()

	results, err := f.svc.SummarizeBatch(context.Background(), nil, entity.TierShort, "u1")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSummarizeBatch_InvalidTier(t *testing.T) {
	f := newFixture()

	_, err := f.svc.SummarizeBatch(context.Background(), textItems("a"), "huge", "u1")
	assert.ErrorIs(t, err, entity.ErrValidation)
	assert.Equal(t, 0, f.stored(t))
}

func TestSummarizeBatch_PanickingItemFailsAlone(t *testing.T) {
	f := newFixture()
	f.summarizer.panicOn = "explode"
	f.svc.Limits.BatchConcurrency = 2

	var results []summary.BatchResult
	var err error
	require.NotPanics(t, func() {
		results, err = f.svc.SummarizeBatch(context.Background(), textItems("one", "explode", "three"), entity.TierShort, "u1")
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Nil(t, results[1].Record)
	assert.Equal(t, entity.KindInternal, entity.KindOf(results[1].Err))
	assert.Contains(t, results[1].Err.Error(), "backend exploded")
	require.NoError(t, results[0].Err)
	require.NoError(t, results[2].Err)
	assert.Equal(t, 2, f.stored(t))
}
