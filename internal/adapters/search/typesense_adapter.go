package search

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/repositories"
	tsclient "github.com/florencehealth/ai-nurse-florence/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements disease library search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements ReferenceSearchRepository
var _ repositories.ReferenceSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// Index adds or updates a library entry in the search index
func (a *TypesenseAdapter) Index(ctx context.Context, ref *entities.DiseaseReference) error {
	promotedAt := int64(0)
	if ref.PromotedAt != nil {
		promotedAt = ref.PromotedAt.Unix()
	}

	document := map[string]interface{}{
		"id":           ref.ID,
		"name":         ref.Name,
		"mondo_id":     ref.MondoID,
		"icd10_code":   ref.ICD10Code,
		"summary":      ref.Summary,
		"search_count": ref.SearchCount,
		"promoted_at":  promotedAt,
	}

	_, err := a.client.Client().Collection(tsclient.DiseaseLibraryCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index disease reference: %w", err)
	}

	return nil
}

// Delete removes an entry from the search index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.DiseaseLibraryCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete disease reference from index: %w", err)
	}
	return nil
}

// Search searches library-tier entries by free text
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]*entities.DiseaseReference, error) {
	if limit <= 0 {
		limit = 10
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name,summary,icd10_code"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.DiseaseLibraryCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search disease library: %w", err)
	}

	refs := []*entities.DiseaseReference{}
	if result.Hits == nil {
		return refs, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document

		ref := &entities.DiseaseReference{
			Status: entities.StatusPromoted,
		}
		if val, ok := doc["id"].(string); ok {
			ref.ID = val
		}
		if val, ok := doc["name"].(string); ok {
			ref.Name = val
		}
		if val, ok := doc["mondo_id"].(string); ok {
			ref.MondoID = val
		}
		if val, ok := doc["icd10_code"].(string); ok {
			ref.ICD10Code = val
		}
		if val, ok := doc["summary"].(string); ok {
			ref.Summary = val
		}
		if val, ok := doc["search_count"].(float64); ok {
			ref.SearchCount = int(val)
		}
		if val, ok := doc["promoted_at"].(float64); ok && val > 0 {
			ts := time.Unix(int64(val), 0).UTC()
			ref.PromotedAt = &ts
		}

		refs = append(refs, ref)
	}

	return refs, nil
}
