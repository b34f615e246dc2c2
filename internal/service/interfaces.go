package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-import/backend/internal/model"
	"github.com/pageza/alchemorsel-import/backend/internal/parser"
	"github.com/pageza/alchemorsel-import/backend/internal/types"
)

// ParseCache stores parser output keyed by the pasted text.
type ParseCache interface {
	Get(ctx context.Context, text string) (*parser.ParsedRecipe, bool, error)
	Set(ctx context.Context, text string, recipe *parser.ParsedRecipe) error
}

// ObjectStore uploads step images and returns their public URL.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// IParseService defines the interface for parsing pasted recipe text
type IParseService interface {
	Parse(ctx context.Context, text string) (*parser.ParsedRecipe, error)
	ParseBatch(ctx context.Context, texts []string, concurrency int) ([]parser.ParsedRecipe, error)
}

// IRecipeService defines the interface for stored recipe operations
type IRecipeService interface {
	Import(ctx context.Context, userID uuid.UUID, text string) (*model.ImportedRecipe, error)
	Get(ctx context.Context, id uuid.UUID) (*model.ImportedRecipe, error)
	List(ctx context.Context, userID uuid.UUID, query string) ([]model.ImportedRecipe, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Reparse(ctx context.Context, userID, id uuid.UUID) (*model.ImportedRecipe, error)
}

// IStepImageService defines the interface for step image uploads
type IStepImageService interface {
	AttachStepImage(ctx context.Context, userID, recipeID uuid.UUID, order int, contentType string, data []byte) (*model.ImportedRecipe, error)
}

// ITokenService defines the interface for bearer token handling
type ITokenService interface {
	GenerateToken(userID uuid.UUID, username string, ttl time.Duration) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}
