package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/florencehealth/ai-nurse-florence/internal/adapters/database"
	"github.com/florencehealth/ai-nurse-florence/internal/adapters/search"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/repositories"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/clients/postgres"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/clients/typesense"
	"github.com/florencehealth/ai-nurse-florence/pkg/config"
)

// Rebuilds the disease library search index from the database. The index
// can drift when Typesense was down during a promote or retire; this
// command is the repair path, run once or on an interval.
func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatalf("Invalid interval %q: %v", intervalValue, err)
		}
		if interval <= 0 {
			log.Fatalf("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Printf("Reindex failed: %v", err)
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Printf("Reindex complete. Next run in %s.", interval)

		select {
		case <-ctx.Done():
			log.Println("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	referenceRepo := database.NewDiseaseReferenceAdapter(pgClient)

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Println("Deleting disease library collection before reindex")
		if _, err := tsClient.Client().Collection(typesense.DiseaseLibraryCollection).Delete(ctx); err != nil {
			log.Printf("Warning: failed to delete collection: %v", err)
		}
	}

	if err := tsClient.InitSchema(ctx); err != nil {
		return err
	}

	searchRepo := search.NewTypesenseAdapter(tsClient)

	indexed := 0
	offset := 0
	const pageSize = 200
	for {
		refs, err := referenceRepo.List(ctx, repositories.ReferenceFilter{
			Status: entities.StatusPromoted,
			Limit:  pageSize,
			Offset: offset,
		})
		if err != nil {
			return err
		}
		if len(refs) == 0 {
			break
		}

		for _, ref := range refs {
			if ref == nil {
				continue
			}
			if err := searchRepo.Index(ctx, ref); err != nil {
				log.Printf("Failed to index %s (%s): %v", ref.Name, ref.ID, err)
				continue
			}
			indexed++
		}

		offset += pageSize
	}

	log.Printf("Indexed %d promoted entries.", indexed)
	return nil
}
