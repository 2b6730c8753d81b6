package providers

import (
	"context"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
)

// DiseaseSource resolves a free-text condition query against a disease
// knowledge base.
type DiseaseSource interface {
	LookupDisease(ctx context.Context, query string) (*entities.DiseaseSummary, error)
}

// DrugSource searches structured product labels by drug name.
type DrugSource interface {
	SearchLabels(ctx context.Context, name string, limit int) ([]*entities.DrugLabel, error)
}

// TrialsSource searches the clinical trials registry.
type TrialsSource interface {
	SearchTrials(ctx context.Context, condition, status string, limit int) ([]*entities.ClinicalTrial, error)
}

// LiteratureSource searches the PubMed index.
type LiteratureSource interface {
	SearchArticles(ctx context.Context, query string, limit int) ([]*entities.Article, error)
}

// HealthTopicSource resolves a clinical code to consumer-health topics.
type HealthTopicSource interface {
	LookupTopics(ctx context.Context, code, system string) ([]*entities.HealthTopic, error)
}
