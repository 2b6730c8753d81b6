package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
	apperrors "github.com/florencehealth/ai-nurse-florence/pkg/errors"
)

func TestDiseaseReferenceService_Create(t *testing.T) {
	repo := new(MockDiseaseReferenceRepository)
	repo.On("GetByName", mock.Anything, "Type 2 Diabetes").
		Return(nil, apperrors.NewNotFoundError("no entry"))
	repo.On("Create", mock.Anything, mock.MatchedBy(func(ref *entities.DiseaseReference) bool {
		return ref.ID != "" &&
			ref.Status == entities.StatusCandidate &&
			ref.SearchCount == 0 &&
			ref.PromotedAt == nil
	})).Return(nil)

	svc := NewDiseaseReferenceService(repo, nil, 0)
	ref, err := svc.Create(context.Background(), &entities.DiseaseReference{Name: "Type 2 Diabetes"})

	require.NoError(t, err)
	assert.Equal(t, entities.StatusCandidate, ref.Status)
	repo.AssertExpectations(t)
}

func TestDiseaseReferenceService_Create_Duplicate(t *testing.T) {
	repo := new(MockDiseaseReferenceRepository)
	repo.On("GetByName", mock.Anything, "Asthma").
		Return(&entities.DiseaseReference{ID: "existing", Name: "Asthma"}, nil)

	svc := NewDiseaseReferenceService(repo, nil, 0)
	_, err := svc.Create(context.Background(), &entities.DiseaseReference{Name: "Asthma"})

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDiseaseReferenceService_RecordLookup_CreatesCandidate(t *testing.T) {
	repo := new(MockDiseaseReferenceRepository)
	repo.On("GetByName", mock.Anything, "Gout").
		Return(nil, apperrors.NewNotFoundError("no entry"))
	repo.On("Create", mock.Anything, mock.MatchedBy(func(ref *entities.DiseaseReference) bool {
		return ref.Name == "Gout" &&
			ref.Status == entities.StatusCandidate &&
			ref.SearchCount == 1 &&
			ref.ICD10Code == "M10.9"
	})).Return(nil)

	svc := NewDiseaseReferenceService(repo, nil, 0)
	svc.RecordLookup(context.Background(), &entities.DiseaseSummary{
		Name:  "Gout",
		Xrefs: []string{"UMLS:C0018099", "ICD10CM:M10.9"},
	})

	repo.AssertExpectations(t)
}

func TestDiseaseReferenceService_RecordLookup_CandidateStartsTracking(t *testing.T) {
	repo := new(MockDiseaseReferenceRepository)
	repo.On("GetByName", mock.Anything, "Gout").
		Return(&entities.DiseaseReference{ID: "id-1", Name: "Gout", Status: entities.StatusCandidate, SearchCount: 1}, nil)
	repo.On("IncrementSearchCount", mock.Anything, "id-1").
		Return(&entities.DiseaseReference{ID: "id-1", Name: "Gout", Status: entities.StatusCandidate, SearchCount: 2}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(ref *entities.DiseaseReference) bool {
		return ref.Status == entities.StatusTracking
	})).Return(nil)

	svc := NewDiseaseReferenceService(repo, nil, 0)
	svc.RecordLookup(context.Background(), &entities.DiseaseSummary{Name: "Gout"})

	repo.AssertExpectations(t)
}

func TestDiseaseReferenceService_RecordLookup_ThresholdMakesEligible(t *testing.T) {
	repo := new(MockDiseaseReferenceRepository)
	repo.On("GetByName", mock.Anything, "Gout").
		Return(&entities.DiseaseReference{ID: "id-1", Name: "Gout", Status: entities.StatusTracking, SearchCount: 9}, nil)
	repo.On("IncrementSearchCount", mock.Anything, "id-1").
		Return(&entities.DiseaseReference{ID: "id-1", Name: "Gout", Status: entities.StatusTracking, SearchCount: 10}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(ref *entities.DiseaseReference) bool {
		return ref.Status == entities.StatusEligible
	})).Return(nil)

	svc := NewDiseaseReferenceService(repo, nil, DefaultPromotionThreshold)
	svc.RecordLookup(context.Background(), &entities.DiseaseSummary{Name: "Gout"})

	repo.AssertExpectations(t)
}

func TestDiseaseReferenceService_RecordLookup_BelowThresholdStaysTracking(t *testing.T) {
	repo := new(MockDiseaseReferenceRepository)
	repo.On("GetByName", mock.Anything, "Gout").
		Return(&entities.DiseaseReference{ID: "id-1", Name: "Gout", Status: entities.StatusTracking, SearchCount: 4}, nil)
	repo.On("IncrementSearchCount", mock.Anything, "id-1").
		Return(&entities.DiseaseReference{ID: "id-1", Name: "Gout", Status: entities.StatusTracking, SearchCount: 5}, nil)

	svc := NewDiseaseReferenceService(repo, nil, DefaultPromotionThreshold)
	svc.RecordLookup(context.Background(), &entities.DiseaseSummary{Name: "Gout"})

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDiseaseReferenceService_RecordLookup_RetiredIsInert(t *testing.T) {
	repo := new(MockDiseaseReferenceRepository)
	repo.On("GetByName", mock.Anything, "Gout").
		Return(&entities.DiseaseReference{ID: "id-1", Name: "Gout", Status: entities.StatusRetired, SearchCount: 40}, nil)

	svc := NewDiseaseReferenceService(repo, nil, 0)
	svc.RecordLookup(context.Background(), &entities.DiseaseSummary{Name: "Gout"})

	repo.AssertNotCalled(t, "IncrementSearchCount", mock.Anything, mock.Anything)
}

func TestDiseaseReferenceService_Promote(t *testing.T) {
	repo := new(MockDiseaseReferenceRepository)
	search := new(MockReferenceSearchRepository)
	repo.On("GetByID", mock.Anything, "id-1").
		Return(&entities.DiseaseReference{ID: "id-1", Name: "Gout", Status: entities.StatusEligible, SearchCount: 12}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(ref *entities.DiseaseReference) bool {
		return ref.Status == entities.StatusPromoted && ref.PromotedAt != nil
	})).Return(nil)
	search.On("Index", mock.Anything, mock.Anything).Return(nil)

	svc := NewDiseaseReferenceService(repo, search, 0)
	ref, err := svc.Promote(context.Background(), "id-1")

	require.NoError(t, err)
	assert.True(t, ref.InLibrary())
	search.AssertExpectations(t)
}

func TestDiseaseReferenceService_Promote_RejectsNonEligible(t *testing.T) {
	for _, status := range []entities.ReferenceStatus{
		entities.StatusCandidate,
		entities.StatusTracking,
		entities.StatusPromoted,
		entities.StatusRetired,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := new(MockDiseaseReferenceRepository)
			repo.On("GetByID", mock.Anything, "id-1").
				Return(&entities.DiseaseReference{ID: "id-1", Status: status}, nil)

			svc := NewDiseaseReferenceService(repo, nil, 0)
			_, err := svc.Promote(context.Background(), "id-1")

			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestDiseaseReferenceService_Retire_RemovesPromotedFromIndex(t *testing.T) {
	repo := new(MockDiseaseReferenceRepository)
	search := new(MockReferenceSearchRepository)
	repo.On("GetByID", mock.Anything, "id-1").
		Return(&entities.DiseaseReference{ID: "id-1", Status: entities.StatusPromoted}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(ref *entities.DiseaseReference) bool {
		return ref.Status == entities.StatusRetired
	})).Return(nil)
	search.On("Delete", mock.Anything, "id-1").Return(nil)

	svc := NewDiseaseReferenceService(repo, search, 0)
	ref, err := svc.Retire(context.Background(), "id-1")

	require.NoError(t, err)
	assert.Equal(t, entities.StatusRetired, ref.Status)
	search.AssertExpectations(t)
}

func TestDiseaseReferenceService_Retire_TrackingEntrySkipsIndex(t *testing.T) {
	repo := new(MockDiseaseReferenceRepository)
	search := new(MockReferenceSearchRepository)
	repo.On("GetByID", mock.Anything, "id-1").
		Return(&entities.DiseaseReference{ID: "id-1", Status: entities.StatusTracking}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewDiseaseReferenceService(repo, search, 0)
	_, err := svc.Retire(context.Background(), "id-1")

	require.NoError(t, err)
	search.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDiseaseReferenceService_Retire_AlreadyRetired(t *testing.T) {
	repo := new(MockDiseaseReferenceRepository)
	repo.On("GetByID", mock.Anything, "id-1").
		Return(&entities.DiseaseReference{ID: "id-1", Status: entities.StatusRetired}, nil)

	svc := NewDiseaseReferenceService(repo, nil, 0)
	_, err := svc.Retire(context.Background(), "id-1")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestDiseaseReferenceService_Search_RequiresIndex(t *testing.T) {
	svc := NewDiseaseReferenceService(new(MockDiseaseReferenceRepository), nil, 0)

	_, err := svc.Search(context.Background(), "gout", 10)

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
}

func TestDiseaseReferenceService_Search_DefaultsLimit(t *testing.T) {
	search := new(MockReferenceSearchRepository)
	search.On("Search", mock.Anything, "gout", defaultReferenceSearchLim).
		Return([]*entities.DiseaseReference{}, nil)

	svc := NewDiseaseReferenceService(new(MockDiseaseReferenceRepository), search, 0)
	_, err := svc.Search(context.Background(), "  gout  ", 0)

	require.NoError(t, err)
	search.AssertExpectations(t)
}

func TestDiseaseReferenceService_RecordLookup_SurvivesRepositoryFailure(t *testing.T) {
	repo := new(MockDiseaseReferenceRepository)
	repo.On("GetByName", mock.Anything, "Gout").
		Return(nil, errors.New("connection refused"))

	svc := NewDiseaseReferenceService(repo, nil, 0)
	// Must not panic or propagate: aggregation is best-effort.
	svc.RecordLookup(context.Background(), &entities.DiseaseSummary{Name: "Gout"})
}
