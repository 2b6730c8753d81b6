package services

import (
	"context"
	"strings"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/providers"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/observability"
	apperrors "github.com/florencehealth/ai-nurse-florence/pkg/errors"
)

// DiseaseService resolves condition queries against the upstream disease
// knowledge base, with read-through caching. Every successful lookup also
// feeds the reference library's traffic aggregation.
type DiseaseService struct {
	source providers.DiseaseSource
	cache  providers.CacheProvider
	refs   *DiseaseReferenceService
}

// NewDiseaseService creates a new disease service. Cache and refs may be
// nil; the service degrades to uncached lookups without aggregation.
func NewDiseaseService(source providers.DiseaseSource, cache providers.CacheProvider, refs *DiseaseReferenceService) *DiseaseService {
	return &DiseaseService{
		source: source,
		cache:  cache,
		refs:   refs,
	}
}

// Lookup resolves a free-text condition query to a disease summary.
func (s *DiseaseService) Lookup(ctx context.Context, query string) (*entities.DiseaseSummary, error) {
	ctx, span := observability.StartSpan(ctx, "DiseaseService.Lookup")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("query parameter q is required")
	}

	key := cacheKey("disease", "lookup", query)

	var cached entities.DiseaseSummary
	if cacheFetch(ctx, s.cache, key, &cached) {
		s.recordLookup(ctx, &cached)
		return &cached, nil
	}

	summary, err := s.source.LookupDisease(ctx, query)
	if err != nil {
		return nil, err
	}

	cacheStore(ctx, s.cache, key, summary, diseaseCacheTTL)
	s.recordLookup(ctx, summary)
	return summary, nil
}

func (s *DiseaseService) recordLookup(ctx context.Context, summary *entities.DiseaseSummary) {
	if s.refs != nil {
		s.refs.RecordLookup(ctx, summary)
	}
}
