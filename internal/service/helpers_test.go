package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/alchemorsel-import/backend/internal/database"
	"github.com/pageza/alchemorsel-import/backend/internal/metrics"
	"github.com/pageza/alchemorsel-import/backend/internal/parser"
)

const soupText = "🍲 Linsensuppe\n" +
	"320 kcal ・ 35 Min ・ Einfach\n" +
	"Eine wärmende Suppe mit roten Linsen, Karotten und einem Hauch Kreuzkümmel.\n" +
	"Zutaten für 4 Portionen:\n" +
	"Rote Linsen (250 g)・Karotten (2)・Gemüsebrühe (1 l)\n" +
	"Anleitung für 4 Portionen:\n" +
	"1. Karotten schneiden\n" +
	"2. Linsen und Brühe zugeben\n" +
	"3. 20 Minuten köcheln lassen\n" +
	"#YAZIO"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestParseService(cache ParseCache, maxTextBytes int) (*ParseService, *metrics.Metrics) {
	m := metrics.New()
	return NewParseService(cache, m, zap.NewNop(), maxTextBytes), m
}

func newTestRecipeService(t *testing.T) (*RecipeService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	parse, m := newTestParseService(nil, 0)
	return NewRecipeService(db, parse, m, zap.NewNop()), db
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]parser.ParsedRecipe
	err     error
	gets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]parser.ParsedRecipe{}}
}

func (c *fakeCache) Get(_ context.Context, text string) (*parser.ParsedRecipe, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.err != nil {
		return nil, false, c.err
	}
	r, ok := c.entries[text]
	if !ok {
		return nil, false, nil
	}
	return &r, true, nil
}

func (c *fakeCache) Set(_ context.Context, text string, recipe *parser.ParsedRecipe) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.entries[text] = *recipe
	return nil
}

type fakeStore struct {
	keys        []string
	contentType string
	err         error
}

func (s *fakeStore) Upload(_ context.Context, key, contentType string, _ []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.keys = append(s.keys, key)
	s.contentType = contentType
	return "https://cdn.example/" + key, nil
}

var errBackend = errors.New("backend down")
