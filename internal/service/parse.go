package service

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/alchemorsel-import/backend/internal/metrics"
	"github.com/pageza/alchemorsel-import/backend/internal/parser"
)

// ParseService parses pasted recipe text, consulting the parse cache when
// one is configured. Cache failures are logged and otherwise ignored.
type ParseService struct {
	cache        ParseCache
	metrics      *metrics.Metrics
	log          *zap.Logger
	maxTextBytes int
}

// NewParseService creates a parse service. cache may be nil. A
// non-positive maxTextBytes disables the size check.
func NewParseService(cache ParseCache, m *metrics.Metrics, log *zap.Logger, maxTextBytes int) *ParseService {
	return &ParseService{
		cache:        cache,
		metrics:      m,
		log:          log,
		maxTextBytes: maxTextBytes,
	}
}

// Parse returns the structured form of text.
func (s *ParseService) Parse(ctx context.Context, text string) (*parser.ParsedRecipe, error) {
	if err := s.checkSize(text); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, text)
		switch {
		case err != nil:
			s.metrics.ObserveCache(metrics.CacheError)
			s.log.Warn("parse cache lookup failed", zap.Error(err))
		case found:
			s.metrics.ObserveCache(metrics.CacheHit)
			s.metrics.ObserveParse(Outcome(cached), time.Since(start))
			return cached, nil
		default:
			s.metrics.ObserveCache(metrics.CacheMiss)
		}
	}

	recipe := parser.ParseRecipe(text)

	if s.cache != nil {
		if err := s.cache.Set(ctx, text, &recipe); err != nil {
			s.log.Warn("parse cache store failed", zap.Error(err))
		}
	}
	outcome := Outcome(&recipe)
	s.metrics.ObserveParse(outcome, time.Since(start))
	s.log.Debug("parsed recipe text",
		zap.String("outcome", outcome),
		zap.Int("bytes", len(text)),
		zap.Int("ingredients", len(recipe.Ingredients)),
		zap.Int("steps", len(recipe.Steps)),
	)
	return &recipe, nil
}

// ParseBatch parses texts with at most concurrency parses in flight and
// returns the results in input order. A non-positive concurrency uses
// GOMAXPROCS.
func (s *ParseService) ParseBatch(ctx context.Context, texts []string, concurrency int) ([]parser.ParsedRecipe, error) {
	for i, text := range texts {
		if err := s.checkSize(text); err != nil {
			return nil, fmt.Errorf("text %d: %w", i, err)
		}
	}
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]parser.ParsedRecipe, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, text := range texts {
		g.Go(func() error {
			recipe, err := s.Parse(gctx, text)
			if err != nil {
				return err
			}
			results[i] = *recipe
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *ParseService) checkSize(text string) error {
	if s.maxTextBytes > 0 && len(text) > s.maxTextBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrTextTooLarge, len(text), s.maxTextBytes)
	}
	return nil
}

// Outcome classifies a parse result by how many of title, ingredients and
// instructions were found.
func Outcome(r *parser.ParsedRecipe) string {
	found := 0
	if r.Title != "" {
		found++
	}
	if len(r.Ingredients) > 0 {
		found++
	}
	if len(r.Instructions) > 0 {
		found++
	}
	switch found {
	case 3:
		return metrics.OutcomeComplete
	case 0:
		return metrics.OutcomeEmpty
	default:
		return metrics.OutcomePartial
	}
}
