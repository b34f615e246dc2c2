// Package cache stores parse results in redis keyed by a digest of the
// pasted text.
package cache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"github.com/pageza/alchemorsel-import/backend/internal/parser"
)

// keyPrefix is versioned so that a parser change can invalidate old entries.
const keyPrefix = "recipe_parse:v1:"

// Hash returns the hex BLAKE2b-256 digest of text.
func Hash(text string) string {
	sum := blake2b.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Key returns the redis key for text.
func Key(text string) string {
	return keyPrefix + Hash(text)
}

// ParseCache is a redis-backed cache of parser output.
type ParseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewParseCache creates a cache whose entries expire after ttl. A zero ttl
// keeps entries until evicted.
func NewParseCache(client *redis.Client, ttl time.Duration) *ParseCache {
	return &ParseCache{client: client, ttl: ttl}
}

// Get returns the cached result for text. found is false on a miss.
func (c *ParseCache) Get(ctx context.Context, text string) (*parser.ParsedRecipe, bool, error) {
	data, err := c.client.Get(ctx, Key(text)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read parse cache: %w", err)
	}

	var recipe parser.ParsedRecipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached recipe: %w", err)
	}
	return &recipe, true, nil
}

// Set stores the result for text.
func (c *ParseCache) Set(ctx context.Context, text string, recipe *parser.ParsedRecipe) error {
	data, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("failed to encode recipe: %w", err)
	}
	if err := c.client.Set(ctx, Key(text), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write parse cache: %w", err)
	}
	return nil
}
