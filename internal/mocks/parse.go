package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/alchemorsel-import/backend/internal/parser"
)

// MockParseService is a mock implementation of the parse service
type MockParseService struct {
	mock.Mock
}

// Parse mocks the Parse method
func (m *MockParseService) Parse(ctx context.Context, text string) (*parser.ParsedRecipe, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parser.ParsedRecipe), args.Error(1)
}

// ParseBatch mocks the ParseBatch method
func (m *MockParseService) ParseBatch(ctx context.Context, texts []string, concurrency int) ([]parser.ParsedRecipe, error) {
	args := m.Called(ctx, texts, concurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]parser.ParsedRecipe), args.Error(1)
}
