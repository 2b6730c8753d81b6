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
	defaultTrialsLimit = 10
	maxTrialsLimit     = 50
)

// TrialsService searches the clinical trials registry with read-through
// caching. Trial recruitment status changes often, so the TTL here is the
// shortest of all sources.
type TrialsService struct {
	source providers.TrialsSource
	cache  providers.CacheProvider
}

// NewTrialsService creates a new trials service
func NewTrialsService(source providers.TrialsSource, cache providers.CacheProvider) *TrialsService {
	return &TrialsService{
		source: source,
		cache:  cache,
	}
}

// Search finds trials for a condition, optionally filtered by overall
// status. Status is passed through uppercased, matching the registry's
// enum convention (RECRUITING, COMPLETED, ...).
func (s *TrialsService) Search(ctx context.Context, condition, status string, limit int) ([]*entities.ClinicalTrial, error) {
	ctx, span := observability.StartSpan(ctx, "TrialsService.Search")
	defer span.End()

	condition = strings.TrimSpace(condition)
	if condition == "" {
		return nil, apperrors.NewValidationError("query parameter condition is required")
	}
	status = strings.ToUpper(strings.TrimSpace(status))
	if limit <= 0 {
		limit = defaultTrialsLimit
	}
	if limit > maxTrialsLimit {
		limit = maxTrialsLimit
	}

	key := cacheKey("trials", "search", condition, status, limitKey(limit))

	var cached []*entities.ClinicalTrial
	if cacheFetch(ctx, s.cache, key, &cached) {
		return cached, nil
	}

	trials, err := s.source.SearchTrials(ctx, condition, status, limit)
	if err != nil {
		return nil, err
	}

	cacheStore(ctx, s.cache, key, trials, trialsCacheTTL)
	return trials, nil
}
