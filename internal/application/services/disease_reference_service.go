package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/repositories"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/observability"
	apperrors "github.com/florencehealth/ai-nurse-florence/pkg/errors"
)

// DefaultPromotionThreshold is the lookup count at which a tracking entry
// becomes eligible for promotion into the full library tier.
const DefaultPromotionThreshold = 10

const (
	defaultReferenceListLimit = 50
	maxReferenceListLimit     = 200
	defaultReferenceSearchLim = 10
)

// DiseaseReferenceService manages the two-tier diagnosis library: a slim
// reference tier fed by lookup traffic, and a curated library tier of
// promoted entries backed by the search index.
type DiseaseReferenceService struct {
	repo      repositories.DiseaseReferenceRepository
	search    repositories.ReferenceSearchRepository
	threshold int
}

// NewDiseaseReferenceService creates a new disease reference service.
// The search repository may be nil, in which case promoted entries are
// simply not indexed and Search returns an error.
func NewDiseaseReferenceService(
	repo repositories.DiseaseReferenceRepository,
	search repositories.ReferenceSearchRepository,
	threshold int,
) *DiseaseReferenceService {
	if threshold <= 0 {
		threshold = DefaultPromotionThreshold
	}
	return &DiseaseReferenceService{
		repo:      repo,
		search:    search,
		threshold: threshold,
	}
}

// Create adds a new candidate entry to the reference tier.
func (s *DiseaseReferenceService) Create(ctx context.Context, ref *entities.DiseaseReference) (*entities.DiseaseReference, error) {
	ctx, span := observability.StartSpan(ctx, "DiseaseReferenceService.Create")
	defer span.End()

	ref.Name = strings.TrimSpace(ref.Name)
	if ref.Name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}

	if existing, err := s.repo.GetByName(ctx, ref.Name); err == nil && existing != nil {
		return nil, apperrors.NewConflictError(fmt.Sprintf("reference entry already exists for %q", ref.Name))
	} else if err != nil && !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	ref.ID = uuid.New().String()
	ref.Status = entities.StatusCandidate
	ref.SearchCount = 0
	ref.PromotedAt = nil
	ref.CreatedAt = now
	ref.UpdatedAt = now

	if err := s.repo.Create(ctx, ref); err != nil {
		return nil, err
	}
	return ref, nil
}

// Get fetches one entry by ID.
func (s *DiseaseReferenceService) Get(ctx context.Context, id string) (*entities.DiseaseReference, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// List returns entries matching the filter, busiest first.
func (s *DiseaseReferenceService) List(ctx context.Context, filter repositories.ReferenceFilter) ([]*entities.DiseaseReference, error) {
	if filter.Status != "" && !validReferenceStatus(filter.Status) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status %q", filter.Status))
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultReferenceListLimit
	}
	if filter.Limit > maxReferenceListLimit {
		filter.Limit = maxReferenceListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

// RecordLookup feeds one disease lookup into the aggregation pipeline:
// unknown conditions become candidates, known ones get their counter
// bumped, and the counter drives the candidate → tracking → eligible
// transitions. Called on the lookup hot path, so failures are logged and
// swallowed rather than surfaced to the caller.
func (s *DiseaseReferenceService) RecordLookup(ctx context.Context, summary *entities.DiseaseSummary) {
	if summary == nil || strings.TrimSpace(summary.Name) == "" {
		return
	}

	logger := log.Ctx(ctx)

	existing, err := s.repo.GetByName(ctx, summary.Name)
	if err != nil {
		if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			logger.Warn().Err(err).Str("name", summary.Name).Msg("reference lookup aggregation skipped")
			return
		}
		ref := referenceFromSummary(summary)
		if err := s.repo.Create(ctx, ref); err != nil {
			logger.Warn().Err(err).Str("name", summary.Name).Msg("failed to create candidate reference entry")
		}
		return
	}

	if existing.Status == entities.StatusRetired {
		return
	}

	updated, err := s.repo.IncrementSearchCount(ctx, existing.ID)
	if err != nil {
		logger.Warn().Err(err).Str("id", existing.ID).Msg("failed to increment reference search count")
		return
	}

	next := nextStatusForCount(updated.Status, updated.SearchCount, s.threshold)
	if next == updated.Status {
		return
	}

	updated.Status = next
	updated.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, updated); err != nil {
		logger.Warn().Err(err).Str("id", updated.ID).Msg("failed to advance reference entry status")
		return
	}
	logger.Info().
		Str("id", updated.ID).
		Str("name", updated.Name).
		Int("search_count", updated.SearchCount).
		Str("status", string(next)).
		Msg("reference entry advanced")
}

// Promote publishes an eligible entry into the library tier and indexes it
// for full-text search. Promotion from any other state is rejected.
func (s *DiseaseReferenceService) Promote(ctx context.Context, id string) (*entities.DiseaseReference, error) {
	ctx, span := observability.StartSpan(ctx, "DiseaseReferenceService.Promote")
	defer span.End()

	ref, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ref.Status != entities.StatusEligible {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("cannot promote entry in status %q, only eligible entries can be promoted", ref.Status))
	}

	now := time.Now().UTC()
	ref.Status = entities.StatusPromoted
	ref.PromotedAt = &now
	ref.UpdatedAt = now

	if err := s.repo.Update(ctx, ref); err != nil {
		return nil, err
	}

	if s.search != nil {
		if err := s.search.Index(ctx, ref); err != nil {
			// The database is the source of truth; index drift is repairable.
			log.Ctx(ctx).Error().Err(err).Str("id", ref.ID).Msg("failed to index promoted entry")
		}
	}
	return ref, nil
}

// Retire moves an entry to the terminal retired state and drops it from
// the search index. Legal from any state; retiring twice is a no-op error.
func (s *DiseaseReferenceService) Retire(ctx context.Context, id string) (*entities.DiseaseReference, error) {
	ctx, span := observability.StartSpan(ctx, "DiseaseReferenceService.Retire")
	defer span.End()

	ref, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ref.Status == entities.StatusRetired {
		return nil, apperrors.NewValidationError("entry is already retired")
	}

	wasPromoted := ref.InLibrary()
	ref.Status = entities.StatusRetired
	ref.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, ref); err != nil {
		return nil, err
	}

	if wasPromoted && s.search != nil {
		if err := s.search.Delete(ctx, ref.ID); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("id", ref.ID).Msg("failed to remove retired entry from index")
		}
	}
	return ref, nil
}

// Search runs a full-text query over the library tier.
func (s *DiseaseReferenceService) Search(ctx context.Context, query string, limit int) ([]*entities.DiseaseReference, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("search query is required")
	}
	if s.search == nil {
		return nil, apperrors.NewInternalError("search index is not configured", nil)
	}
	if limit <= 0 {
		limit = defaultReferenceSearchLim
	}
	return s.search.Search(ctx, query, limit)
}

// nextStatusForCount applies the traffic-driven part of the lifecycle.
// Only candidate and tracking entries move automatically; eligible entries
// wait for an explicit promote call.
func nextStatusForCount(current entities.ReferenceStatus, count, threshold int) entities.ReferenceStatus {
	switch current {
	case entities.StatusCandidate:
		if count >= threshold {
			return entities.StatusEligible
		}
		return entities.StatusTracking
	case entities.StatusTracking:
		if count >= threshold {
			return entities.StatusEligible
		}
	}
	return current
}

func referenceFromSummary(summary *entities.DiseaseSummary) *entities.DiseaseReference {
	now := time.Now().UTC()
	ref := &entities.DiseaseReference{
		ID:          uuid.New().String(),
		Name:        summary.Name,
		MondoID:     summary.MondoID,
		Summary:     summary.Definition,
		Status:      entities.StatusCandidate,
		SearchCount: 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, xref := range summary.Xrefs {
		if code, ok := strings.CutPrefix(xref, "ICD10CM:"); ok {
			ref.ICD10Code = code
			break
		}
	}
	return ref
}

func validReferenceStatus(s entities.ReferenceStatus) bool {
	switch s {
	case entities.StatusCandidate, entities.StatusTracking, entities.StatusEligible,
		entities.StatusPromoted, entities.StatusRetired:
		return true
	}
	return false
}
