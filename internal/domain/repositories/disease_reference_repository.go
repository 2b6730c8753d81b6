package repositories

import (
	"context"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
)

// DiseaseReferenceRepository defines the interface for disease reference
// library data operations
type DiseaseReferenceRepository interface {
	// Create creates a new reference entry
	Create(ctx context.Context, ref *entities.DiseaseReference) error

	// GetByID retrieves a reference entry by ID
	GetByID(ctx context.Context, id string) (*entities.DiseaseReference, error)

	// GetByName retrieves a reference entry by its canonical name
	GetByName(ctx context.Context, name string) (*entities.DiseaseReference, error)

	// Update updates a reference entry
	Update(ctx context.Context, ref *entities.DiseaseReference) error

	// IncrementSearchCount atomically bumps the lookup counter and returns
	// the updated entry
	IncrementSearchCount(ctx context.Context, id string) (*entities.DiseaseReference, error)

	// List retrieves reference entries with filters
	List(ctx context.Context, filter ReferenceFilter) ([]*entities.DiseaseReference, error)
}

// ReferenceFilter defines filters for listing reference entries
type ReferenceFilter struct {
	Status entities.ReferenceStatus
	Limit  int
	Offset int
}

// ReferenceSearchRepository defines full-text search over library-tier entries
type ReferenceSearchRepository interface {
	// Index adds or updates an entry in the search index
	Index(ctx context.Context, ref *entities.DiseaseReference) error

	// Delete removes an entry from the search index
	Delete(ctx context.Context, id string) error

	// Search searches library-tier entries by free text
	Search(ctx context.Context, query string, limit int) ([]*entities.DiseaseReference, error)
}
