package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-import/backend/internal/metrics"
	"github.com/pageza/alchemorsel-import/backend/internal/parser"
)

func TestParseService_Parse(t *testing.T) {
	svc, _ := newTestParseService(nil, 0)

	recipe, err := svc.Parse(context.Background(), soupText)
	require.NoError(t, err)
	assert.Equal(t, "Linsensuppe", recipe.Title)
	assert.Equal(t, 4, recipe.Portions)
	assert.Len(t, recipe.Ingredients, 3)
	assert.Equal(t, []string{"Karotten schneiden", "Linsen und Brühe zugeben", "20 Minuten köcheln lassen"}, recipe.Instructions)
}

func TestParseService_Cache(t *testing.T) {
	cache := newFakeCache()
	svc, m := newTestParseService(cache, 0)
	ctx := context.Background()

	first, err := svc.Parse(ctx, soupText)
	require.NoError(t, err)
	second, err := svc.Parse(ctx, soupText)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues(metrics.CacheMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues(metrics.CacheHit)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ParseOutcomes.WithLabelValues(metrics.OutcomeComplete)))
}

func TestParseService_CacheFailureFallsBack(t *testing.T) {
	cache := newFakeCache()
	cache.err = errBackend
	svc, m := newTestParseService(cache, 0)

	recipe, err := svc.Parse(context.Background(), soupText)
	require.NoError(t, err)
	assert.Equal(t, "Linsensuppe", recipe.Title)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues(metrics.CacheError)))
}

func TestParseService_TextTooLarge(t *testing.T) {
	svc, m := newTestParseService(nil, 16)

	_, err := svc.Parse(context.Background(), strings.Repeat("x", 17))
	assert.True(t, errors.Is(err, ErrTextTooLarge))
	assert.Equal(t, 0, testutil.CollectAndCount(m.ParseOutcomes))

	_, err = svc.Parse(context.Background(), strings.Repeat("x", 16))
	assert.NoError(t, err)
}

func TestParseService_CanceledContext(t *testing.T) {
	svc, _ := newTestParseService(nil, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Parse(ctx, soupText)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseService_ParseBatch(t *testing.T) {
	svc, _ := newTestParseService(newFakeCache(), 0)

	texts := make([]string, 20)
	for i := range texts {
		texts[i] = fmt.Sprintf("Rezept %d\nAnleitung für 1 Portion:\n1. Schritt %d", i, i)
	}

	results, err := svc.ParseBatch(context.Background(), texts, 3)
	require.NoError(t, err)
	require.Len(t, results, len(texts))
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("Rezept %d", i), r.Title)
		assert.Equal(t, []string{fmt.Sprintf("Schritt %d", i)}, r.Instructions)
	}
}

func TestParseService_ParseBatchEmpty(t *testing.T) {
	svc, _ := newTestParseService(nil, 0)

	results, err := svc.ParseBatch(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestParseService_ParseBatchOversize(t *testing.T) {
	svc, _ := newTestParseService(nil, 10)

	_, err := svc.ParseBatch(context.Background(), []string{"kurz", strings.Repeat("y", 11)}, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTextTooLarge)
	assert.Contains(t, err.Error(), "text 1")
}

func TestParseService_ParseBatchCanceled(t *testing.T) {
	svc, _ := newTestParseService(nil, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ParseBatch(ctx, []string{"a", "b"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{soupText, metrics.OutcomeComplete},
		{"nur ein Titel", metrics.OutcomePartial},
		{"", metrics.OutcomeEmpty},
	}
	for _, tt := range tests {
		r := parser.ParseRecipe(tt.text)
		assert.Equal(t, tt.want, Outcome(&r), tt.text)
	}
}
