package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/repositories"
)

type MockDiseaseReferenceRepository struct {
	mock.Mock
}

func (m *MockDiseaseReferenceRepository) Create(ctx context.Context, ref *entities.DiseaseReference) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockDiseaseReferenceRepository) GetByID(ctx context.Context, id string) (*entities.DiseaseReference, error) {
	args := m.Called(ctx, id)
	if ref := args.Get(0); ref != nil {
		return ref.(*entities.DiseaseReference), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDiseaseReferenceRepository) GetByName(ctx context.Context, name string) (*entities.DiseaseReference, error) {
	args := m.Called(ctx, name)
	if ref := args.Get(0); ref != nil {
		return ref.(*entities.DiseaseReference), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDiseaseReferenceRepository) Update(ctx context.Context, ref *entities.DiseaseReference) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockDiseaseReferenceRepository) IncrementSearchCount(ctx context.Context, id string) (*entities.DiseaseReference, error) {
	args := m.Called(ctx, id)
	if ref := args.Get(0); ref != nil {
		return ref.(*entities.DiseaseReference), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDiseaseReferenceRepository) List(ctx context.Context, filter repositories.ReferenceFilter) ([]*entities.DiseaseReference, error) {
	args := m.Called(ctx, filter)
	if refs := args.Get(0); refs != nil {
		return refs.([]*entities.DiseaseReference), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockReferenceSearchRepository struct {
	mock.Mock
}

func (m *MockReferenceSearchRepository) Index(ctx context.Context, ref *entities.DiseaseReference) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockReferenceSearchRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReferenceSearchRepository) Search(ctx context.Context, query string, limit int) ([]*entities.DiseaseReference, error) {
	args := m.Called(ctx, query, limit)
	if refs := args.Get(0); refs != nil {
		return refs.([]*entities.DiseaseReference), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockDiseaseSource struct {
	mock.Mock
}

func (m *MockDiseaseSource) LookupDisease(ctx context.Context, query string) (*entities.DiseaseSummary, error) {
	args := m.Called(ctx, query)
	if summary := args.Get(0); summary != nil {
		return summary.(*entities.DiseaseSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCacheProvider struct {
	mock.Mock
}

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if data := args.Get(0); data != nil {
		return data.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	args := m.Called(ctx, key, value, expirationSeconds)
	return args.Error(0)
}

func (m *MockCacheProvider) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
