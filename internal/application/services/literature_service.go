package services

import (
	"context"
	"strings"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/providers"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/observability"
	apperrors "github.com/florencehealth/ai-nurse-florence/pkg/errors"
)

const (
	defaultLiteratureLimit = 10
	maxLiteratureLimit     = 50
)

// LiteratureService searches the medical literature index with
// read-through caching.
type LiteratureService struct {
	source providers.LiteratureSource
	cache  providers.CacheProvider
}

// NewLiteratureService creates a new literature service
func NewLiteratureService(source providers.LiteratureSource, cache providers.CacheProvider) *LiteratureService {
	return &LiteratureService{
		source: source,
		cache:  cache,
	}
}

// Search finds articles matching a free-text query, most relevant first.
func (s *LiteratureService) Search(ctx context.Context, query string, limit int) ([]*entities.Article, error) {
	ctx, span := observability.StartSpan(ctx, "LiteratureService.Search")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("query parameter q is required")
	}
	if limit <= 0 {
		limit = defaultLiteratureLimit
	}
	if limit > maxLiteratureLimit {
		limit = maxLiteratureLimit
	}

	key := cacheKey("literature", "search", query, limitKey(limit))

	var cached []*entities.Article
	if cacheFetch(ctx, s.cache, key, &cached) {
		return cached, nil
	}

	articles, err := s.source.SearchArticles(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	cacheStore(ctx, s.cache, key, articles, literatureCacheTTL)
	return articles, nil
}
