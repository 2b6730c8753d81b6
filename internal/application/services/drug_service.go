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
	defaultDrugLimit = 5
	maxDrugLimit     = 25
)

// DrugService searches structured product labels with read-through caching.
type DrugService struct {
	source providers.DrugSource
	cache  providers.CacheProvider
}

// NewDrugService creates a new drug service
func NewDrugService(source providers.DrugSource, cache providers.CacheProvider) *DrugService {
	return &DrugService{
		source: source,
		cache:  cache,
	}
}

// Search finds product labels matching a brand or generic drug name.
func (s *DrugService) Search(ctx context.Context, name string, limit int) ([]*entities.DrugLabel, error) {
	ctx, span := observability.StartSpan(ctx, "DrugService.Search")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("query parameter name is required")
	}
	if limit <= 0 {
		limit = defaultDrugLimit
	}
	if limit > maxDrugLimit {
		limit = maxDrugLimit
	}

	key := cacheKey("drugs", "search", name, limitKey(limit))

	var cached []*entities.DrugLabel
	if cacheFetch(ctx, s.cache, key, &cached) {
		return cached, nil
	}

	labels, err := s.source.SearchLabels(ctx, name, limit)
	if err != nil {
		return nil, err
	}

	cacheStore(ctx, s.cache, key, labels, drugCacheTTL)
	return labels, nil
}
