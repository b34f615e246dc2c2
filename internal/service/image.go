package service

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-import/backend/internal/metrics"
	"github.com/pageza/alchemorsel-import/backend/internal/model"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// StepImageService attaches photos to the steps of stored recipes.
type StepImageService struct {
	db      *gorm.DB
	recipes *RecipeService
	store   ObjectStore
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewStepImageService creates the service. store may be nil, in which case
// every upload fails with ErrImageUnavailable.
func NewStepImageService(db *gorm.DB, recipes *RecipeService, store ObjectStore, m *metrics.Metrics, log *zap.Logger) *StepImageService {
	return &StepImageService{
		db:      db,
		recipes: recipes,
		store:   store,
		metrics: m,
		log:     log,
	}
}

// AttachStepImage uploads data and stores its URL on step order of the
// recipe. An empty contentType is sniffed from data.
func (s *StepImageService) AttachStepImage(ctx context.Context, userID, recipeID uuid.UUID, order int, contentType string, data []byte) (*model.ImportedRecipe, error) {
	if s.store == nil {
		return nil, ErrImageUnavailable
	}

	mediaType, err := imageMediaType(contentType, data)
	if err != nil {
		return nil, err
	}

	recipe, err := s.recipes.owned(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if order < 1 || order > len(recipe.Steps) {
		return nil, ErrStepNotFound
	}

	key := fmt.Sprintf("recipe-steps/%s/%d-%s%s", recipe.ID, order, uuid.NewString(), extensionFor(mediaType))
	url, err := s.store.Upload(ctx, key, mediaType, data)
	if err != nil {
		return nil, err
	}

	recipe.Steps[order-1].Image = &url
	if err := s.db.WithContext(ctx).Model(recipe).Update("steps", recipe.Steps).Error; err != nil {
		return nil, fmt.Errorf("failed to save step image: %w", err)
	}
	s.metrics.StepImages.Inc()
	s.log.Info("attached step image",
		zap.String("recipe_id", recipe.ID.String()),
		zap.Int("order", order),
		zap.String("key", key),
	)
	return recipe, nil
}

func imageMediaType(contentType string, data []byte) (string, error) {
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return "", ErrInvalidImage
	}
	return mediaType, nil
}

func extensionFor(mediaType string) string {
	if ext, ok := imageExtensions[mediaType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
