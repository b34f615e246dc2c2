package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/alchemorsel-import/backend/internal/model"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// Import mocks the Import method
func (m *MockRecipeService) Import(ctx context.Context, userID uuid.UUID, text string) (*model.ImportedRecipe, error) {
	args := m.Called(ctx, userID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImportedRecipe), args.Error(1)
}

// Get mocks the Get method
func (m *MockRecipeService) Get(ctx context.Context, id uuid.UUID) (*model.ImportedRecipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImportedRecipe), args.Error(1)
}

// List mocks the List method
func (m *MockRecipeService) List(ctx context.Context, userID uuid.UUID, query string) ([]model.ImportedRecipe, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ImportedRecipe), args.Error(1)
}

// Delete mocks the Delete method
func (m *MockRecipeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// Reparse mocks the Reparse method
func (m *MockRecipeService) Reparse(ctx context.Context, userID, id uuid.UUID) (*model.ImportedRecipe, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImportedRecipe), args.Error(1)
}

// MockStepImageService is a mock implementation of the step image service
type MockStepImageService struct {
	mock.Mock
}

// AttachStepImage mocks the AttachStepImage method
func (m *MockStepImageService) AttachStepImage(ctx context.Context, userID, recipeID uuid.UUID, order int, contentType string, data []byte) (*model.ImportedRecipe, error) {
	args := m.Called(ctx, userID, recipeID, order, contentType, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImportedRecipe), args.Error(1)
}
