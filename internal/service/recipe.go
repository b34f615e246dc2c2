package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/alchemorsel-import/backend/internal/cache"
	"github.com/pageza/alchemorsel-import/backend/internal/metrics"
	"github.com/pageza/alchemorsel-import/backend/internal/model"
	"github.com/pageza/alchemorsel-import/backend/internal/parser"
)

// listLimit caps the number of recipes returned by List.
const listLimit = 100

// RecipeService stores imported recipes.
type RecipeService struct {
	db      *gorm.DB
	parser  IParseService
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewRecipeService(db *gorm.DB, parseService IParseService, m *metrics.Metrics, log *zap.Logger) *RecipeService {
	return &RecipeService{
		db:      db,
		parser:  parseService,
		metrics: m,
		log:     log,
	}
}

// Import parses text and stores the result for userID.
func (s *RecipeService) Import(ctx context.Context, userID uuid.UUID, text string) (*model.ImportedRecipe, error) {
	parsed, err := s.parser.Parse(ctx, text)
	if err != nil {
		return nil, err
	}

	recipe := &model.ImportedRecipe{
		UserID:     userID,
		RawText:    text,
		SourceHash: cache.Hash(text),
	}
	recipe.ApplyParsed(parsed)
	recipe.Embedding = recipeEmbedding(recipe.Title, recipe.Description)

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to store recipe: %w", err)
	}
	s.metrics.RecipesImported.Inc()
	s.log.Info("imported recipe",
		zap.String("recipe_id", recipe.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("outcome", Outcome(parsed)),
	)
	return recipe, nil
}

// Get returns the recipe with the given id.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*model.ImportedRecipe, error) {
	var recipe model.ImportedRecipe
	err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	return &recipe, nil
}

// List returns the recipes of userID. With a query, postgres orders them by
// embedding distance and other databases filter by substring.
func (s *RecipeService) List(ctx context.Context, userID uuid.UUID, query string) ([]model.ImportedRecipe, error) {
	dbQuery := s.db.WithContext(ctx).Where("user_id = ?", userID)

	query = strings.TrimSpace(query)
	switch {
	case query == "":
		dbQuery = dbQuery.Order("created_at DESC")
	case s.db.Dialector.Name() == "postgres":
		vec := TextEmbedding(query)
		dbQuery = dbQuery.Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
		})
	default:
		like := "%" + strings.ToLower(query) + "%"
		dbQuery = dbQuery.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(ingredients) LIKE ?",
			like, like, like)
	}

	recipes := []model.ImportedRecipe{}
	if err := dbQuery.Limit(listLimit).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// Delete removes a recipe owned by userID.
func (s *RecipeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	recipe, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(recipe).Error; err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}

// Reparse runs the current parser over the stored text. Step images are
// kept for every step order that still exists.
func (s *RecipeService) Reparse(ctx context.Context, userID, id uuid.UUID) (*model.ImportedRecipe, error) {
	recipe, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	parsed := parser.ParseRecipe(recipe.RawText)
	for _, old := range recipe.Steps {
		if old.Image != nil && old.Order >= 1 && old.Order <= len(parsed.Steps) {
			parsed.Steps[old.Order-1].Image = old.Image
		}
	}
	recipe.ApplyParsed(&parsed)
	recipe.Embedding = recipeEmbedding(recipe.Title, recipe.Description)

	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	return recipe, nil
}

func (s *RecipeService) owned(ctx context.Context, userID, id uuid.UUID) (*model.ImportedRecipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != userID {
		return nil, ErrForbidden
	}
	return recipe, nil
}
