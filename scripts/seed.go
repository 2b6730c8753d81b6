package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/florencehealth/ai-nurse-florence/internal/adapters/database"
	"github.com/florencehealth/ai-nurse-florence/internal/adapters/search"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/clients/postgres"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/clients/typesense"
	"github.com/florencehealth/ai-nurse-florence/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS disease_references (
	id           UUID PRIMARY KEY,
	name         TEXT NOT NULL UNIQUE,
	mondo_id     TEXT,
	icd10_code   TEXT,
	summary      TEXT,
	status       TEXT NOT NULL DEFAULT 'candidate',
	search_count INTEGER NOT NULL DEFAULT 0,
	promoted_at  TIMESTAMPTZ,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_disease_references_status
	ON disease_references (status);
CREATE INDEX IF NOT EXISTS idx_disease_references_search_count
	ON disease_references (search_count DESC);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		if _, err := pgClient.DB().ExecContext(ctx, `TRUNCATE TABLE disease_references`); err != nil {
			log.Printf("Warning: failed to truncate: %v", err)
		}
	}

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	var searchRepo *search.TypesenseAdapter
	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Typesense unavailable, promoted entries will not be indexed: %v", err)
	} else {
		if err := tsClient.InitSchema(ctx); err != nil {
			log.Printf("Warning: failed to init Typesense schema: %v", err)
		}
		searchRepo = search.NewTypesenseAdapter(tsClient)
	}

	referenceRepo := database.NewDiseaseReferenceAdapter(pgClient)

	now := time.Now().UTC()
	promoted := now.Add(-24 * time.Hour)

	seeds := []*entities.DiseaseReference{
		{
			Name:        "type 2 diabetes mellitus",
			MondoID:     "MONDO:0005148",
			ICD10Code:   "E11.9",
			Summary:     "A metabolic disorder characterized by high blood sugar and insulin resistance.",
			Status:      entities.StatusPromoted,
			SearchCount: 42,
			PromotedAt:  &promoted,
		},
		{
			Name:        "asthma",
			MondoID:     "MONDO:0004979",
			ICD10Code:   "J45.909",
			Summary:     "A chronic respiratory disease marked by airway inflammation and bronchospasm.",
			Status:      entities.StatusPromoted,
			SearchCount: 31,
			PromotedAt:  &promoted,
		},
		{
			Name:        "gout",
			MondoID:     "MONDO:0005393",
			ICD10Code:   "M10.9",
			Summary:     "Inflammatory arthritis caused by urate crystal deposition in joints.",
			Status:      entities.StatusEligible,
			SearchCount: 12,
		},
		{
			Name:        "plantar fasciitis",
			ICD10Code:   "M72.2",
			Status:      entities.StatusTracking,
			SearchCount: 4,
		},
		{
			Name:        "restless legs syndrome",
			MondoID:     "MONDO:0005391",
			Status:      entities.StatusCandidate,
			SearchCount: 1,
		},
	}

	for _, ref := range seeds {
		ref.ID = uuid.New().String()
		ref.CreatedAt = now
		ref.UpdatedAt = now

		if err := referenceRepo.Create(ctx, ref); err != nil {
			log.Printf("Skipping %s: %v", ref.Name, err)
			continue
		}
		log.Printf("Seeded %s (%s)", ref.Name, ref.Status)

		if ref.Status == entities.StatusPromoted && searchRepo != nil {
			if err := searchRepo.Index(ctx, ref); err != nil {
				log.Printf("Warning: failed to index %s: %v", ref.Name, err)
			}
		}
	}

	log.Println("Seeding complete.")
}
