package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-import/backend/internal/cache"
	"github.com/pageza/alchemorsel-import/backend/internal/model"
)

func TestRecipeService_ImportAndGet(t *testing.T) {
	svc, _ := newTestRecipeService(t)
	ctx := context.Background()
	userID := uuid.New()

	recipe, err := svc.Import(ctx, userID, soupText)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, recipe.ID)
	assert.Equal(t, userID, recipe.UserID)
	assert.Equal(t, "Linsensuppe", recipe.Title)
	assert.Equal(t, cache.Hash(soupText), recipe.SourceHash)
	assert.Len(t, recipe.Embedding.Slice(), 3)
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.metrics.RecipesImported))

	stored, err := svc.Get(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.Parsed(), stored.Parsed())
	assert.Equal(t, soupText, stored.RawText)
	require.NotNil(t, stored.Calories)
	assert.Equal(t, 320, *stored.Calories)
}

func TestRecipeService_ImportTooLarge(t *testing.T) {
	db := setupTestDB(t)
	parse, m := newTestParseService(nil, 8)
	svc := NewRecipeService(db, parse, m, parse.log)

	_, err := svc.Import(context.Background(), uuid.New(), soupText)
	assert.ErrorIs(t, err, ErrTextTooLarge)
}

func TestRecipeService_GetNotFound(t *testing.T) {
	svc, _ := newTestRecipeService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestRecipeService_List(t *testing.T) {
	svc, _ := newTestRecipeService(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Import(ctx, userID, soupText)
	require.NoError(t, err)
	_, err = svc.Import(ctx, userID, "Pfannkuchen\nZutaten für 2 Portionen:\nMehl (200 g)・Milch (300 ml)\nAnleitung für 2 Portionen:\n1. Verrühren")
	require.NoError(t, err)
	_, err = svc.Import(ctx, uuid.New(), "Fremdes Rezept")
	require.NoError(t, err)

	all, err := svc.List(ctx, userID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byTitle, err := svc.List(ctx, userID, "PFANN")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Pfannkuchen", byTitle[0].Title)

	byIngredient, err := svc.List(ctx, userID, "linsen")
	require.NoError(t, err)
	require.Len(t, byIngredient, 1)
	assert.Equal(t, "Linsensuppe", byIngredient[0].Title)

	none, err := svc.List(ctx, userID, "Fremdes")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRecipeService_Delete(t *testing.T) {
	svc, _ := newTestRecipeService(t)
	ctx := context.Background()
	owner := uuid.New()

	recipe, err := svc.Import(ctx, owner, soupText)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, uuid.New(), recipe.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, owner, recipe.ID))

	_, err = svc.Get(ctx, recipe.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, owner, recipe.ID), ErrRecipeNotFound)
}

func TestRecipeService_ReparseKeepsImages(t *testing.T) {
	svc, db := newTestRecipeService(t)
	ctx := context.Background()
	owner := uuid.New()

	recipe, err := svc.Import(ctx, owner, soupText)
	require.NoError(t, err)

	// Simulate a record written by an older parser: a stale title and an
	// image on a step that no longer exists.
	first, stale := "https://cdn.example/1.jpg", "https://cdn.example/9.jpg"
	recipe.Title = "alt"
	recipe.Steps[0].Image = &first
	recipe.Steps = append(recipe.Steps, recipe.Steps[0])
	recipe.Steps[len(recipe.Steps)-1].Order = 9
	recipe.Steps[len(recipe.Steps)-1].Image = &stale
	require.NoError(t, db.Save(recipe).Error)

	_, err = svc.Reparse(ctx, uuid.New(), recipe.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Reparse(ctx, owner, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Linsensuppe", updated.Title)
	require.Len(t, updated.Steps, 3)
	require.NotNil(t, updated.Steps[0].Image)
	assert.Equal(t, first, *updated.Steps[0].Image)
	assert.Nil(t, updated.Steps[1].Image)

	var stored model.ImportedRecipe
	require.NoError(t, db.First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, "Linsensuppe", stored.Title)
	assert.Len(t, stored.Steps, 3)
}

func TestTextEmbedding(t *testing.T) {
	assert.Equal(t, []float32{5, 2, 3}, TextEmbedding("Brühe").Slice())
	assert.Equal(t, []float32{0, 0, 0}, TextEmbedding("").Slice())
}
