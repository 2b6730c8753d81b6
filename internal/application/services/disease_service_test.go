package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
	apperrors "github.com/florencehealth/ai-nurse-florence/pkg/errors"
)

func TestDiseaseService_Lookup_CacheMissFetchesAndStores(t *testing.T) {
	source := new(MockDiseaseSource)
	cache := new(MockCacheProvider)
	summary := &entities.DiseaseSummary{ID: "MONDO:0005148", Name: "type 2 diabetes mellitus"}

	cache.On("Get", mock.Anything, "disease:lookup:type 2 diabetes").Return(nil, errors.New("cache miss"))
	source.On("LookupDisease", mock.Anything, "type 2 diabetes").Return(summary, nil)
	cache.On("Set", mock.Anything, "disease:lookup:type 2 diabetes", mock.Anything, diseaseCacheTTL).Return(nil)

	svc := NewDiseaseService(source, cache, nil)
	got, err := svc.Lookup(context.Background(), "  Type 2 Diabetes  ")

	require.NoError(t, err)
	assert.Equal(t, summary, got)
	cache.AssertExpectations(t)
	source.AssertExpectations(t)
}

func TestDiseaseService_Lookup_CacheHitSkipsSource(t *testing.T) {
	source := new(MockDiseaseSource)
	cache := new(MockCacheProvider)
	cached, _ := json.Marshal(&entities.DiseaseSummary{ID: "MONDO:0004979", Name: "asthma"})

	cache.On("Get", mock.Anything, "disease:lookup:asthma").Return(cached, nil)

	svc := NewDiseaseService(source, cache, nil)
	got, err := svc.Lookup(context.Background(), "asthma")

	require.NoError(t, err)
	assert.Equal(t, "asthma", got.Name)
	source.AssertNotCalled(t, "LookupDisease", mock.Anything, mock.Anything)
}

func TestDiseaseService_Lookup_NilCacheDegrades(t *testing.T) {
	source := new(MockDiseaseSource)
	summary := &entities.DiseaseSummary{Name: "asthma"}
	source.On("LookupDisease", mock.Anything, "asthma").Return(summary, nil)

	svc := NewDiseaseService(source, nil, nil)
	got, err := svc.Lookup(context.Background(), "asthma")

	require.NoError(t, err)
	assert.Equal(t, summary, got)
}

func TestDiseaseService_Lookup_FeedsReferenceAggregation(t *testing.T) {
	source := new(MockDiseaseSource)
	repo := new(MockDiseaseReferenceRepository)
	summary := &entities.DiseaseSummary{Name: "asthma"}

	source.On("LookupDisease", mock.Anything, "asthma").Return(summary, nil)
	repo.On("GetByName", mock.Anything, "asthma").Return(nil, apperrors.NewNotFoundError("no entry"))
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	refs := NewDiseaseReferenceService(repo, nil, 0)
	svc := NewDiseaseService(source, nil, refs)
	_, err := svc.Lookup(context.Background(), "asthma")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDiseaseService_Lookup_EmptyQuery(t *testing.T) {
	svc := NewDiseaseService(new(MockDiseaseSource), nil, nil)

	_, err := svc.Lookup(context.Background(), "   ")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestDiseaseService_Lookup_SourceErrorPropagates(t *testing.T) {
	source := new(MockDiseaseSource)
	source.On("LookupDisease", mock.Anything, "asthma").
		Return(nil, apperrors.NewExternalError("disease source unavailable", errors.New("timeout")))

	svc := NewDiseaseService(source, nil, nil)
	_, err := svc.Lookup(context.Background(), "asthma")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}
