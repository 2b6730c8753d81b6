package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/providers"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/observability"
	apperrors "github.com/florencehealth/ai-nurse-florence/pkg/errors"
)

// HealthTopicService resolves clinical codes to consumer-health topics.
// Topic pages are near-static, so cached results live for a full day.
type HealthTopicService struct {
	source providers.HealthTopicSource
	cache  providers.CacheProvider
}

// NewHealthTopicService creates a new health topic service
func NewHealthTopicService(source providers.HealthTopicSource, cache providers.CacheProvider) *HealthTopicService {
	return &HealthTopicService{
		source: source,
		cache:  cache,
	}
}

// Lookup resolves a code in the given coding system to health topics.
// System defaults to ICD-10-CM when omitted.
func (s *HealthTopicService) Lookup(ctx context.Context, code, system string) ([]*entities.HealthTopic, error) {
	ctx, span := observability.StartSpan(ctx, "HealthTopicService.Lookup")
	defer span.End()

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.NewValidationError("query parameter code is required")
	}

	system = strings.ToLower(strings.TrimSpace(system))
	if system == "" {
		system = "icd10cm"
	}
	if system != "icd10cm" && system != "rxnorm" {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported coding system %q, expected icd10cm or rxnorm", system))
	}

	key := cacheKey("health-topics", "lookup", system, code)

	var cached []*entities.HealthTopic
	if cacheFetch(ctx, s.cache, key, &cached) {
		return cached, nil
	}

	topics, err := s.source.LookupTopics(ctx, code, system)
	if err != nil {
		return nil, err
	}

	cacheStore(ctx, s.cache, key, topics, healthTopicCacheTTL)
	return topics, nil
}
