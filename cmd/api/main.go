package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/florencehealth/ai-nurse-florence/internal/adapters/cache"
	"github.com/florencehealth/ai-nurse-florence/internal/adapters/database"
	"github.com/florencehealth/ai-nurse-florence/internal/adapters/providers/ai"
	"github.com/florencehealth/ai-nurse-florence/internal/adapters/search"
	"github.com/florencehealth/ai-nurse-florence/internal/api/handlers"
	"github.com/florencehealth/ai-nurse-florence/internal/api/middleware"
	"github.com/florencehealth/ai-nurse-florence/internal/api/routes"
	"github.com/florencehealth/ai-nurse-florence/internal/application/services"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/providers"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/repositories"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/clients/clinicaltrials"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/clients/fda"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/clients/medlineplus"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/clients/mydisease"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/clients/openai"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/clients/postgres"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/clients/pubmed"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/clients/redis"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/clients/typesense"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/observability"
	"github.com/florencehealth/ai-nurse-florence/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	logger.Info().Msg("PostgreSQL client initialized")

	// Initialize Redis client. The API works without it, just uncached.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, running without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		logger.Info().Msg("Redis client initialized")
	}

	// Initialize Typesense client. Without it, library search is disabled
	// and promoted entries are simply not indexed.
	var searchRepo repositories.ReferenceSearchRepository
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		logger.Warn().Err(err).Msg("Typesense unavailable, library search disabled")
	} else {
		if err := typesenseClient.InitSchema(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		searchRepo = search.NewTypesenseAdapter(typesenseClient)
		logger.Info().Msg("Typesense client initialized")
	}

	// LLM provider: real client when a key is configured, stub otherwise.
	var summarizerProvider providers.SummarizerProvider
	if cfg.OpenAI.APIKey == "" {
		logger.Warn().Msg("OPENAI_API_KEY is not set, using stub summarizer")
		summarizerProvider = ai.NewStubSummarizerProvider()
	} else {
		openaiClient, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialize OpenAI client, using stub summarizer")
			summarizerProvider = ai.NewStubSummarizerProvider()
		} else {
			summarizerProvider = openaiClient
		}
	}

	// Initialize adapters
	referenceAdapter := database.NewDiseaseReferenceAdapter(pgClient)

	// External medical source connectors
	diseaseSource := mydisease.NewClient(&cfg.Sources)
	drugSource := fda.NewClient(&cfg.Sources)
	trialsSource := clinicaltrials.NewClient(&cfg.Sources)
	literatureSource := pubmed.NewClient(&cfg.Sources)
	healthTopicSource := medlineplus.NewClient(&cfg.Sources)

	// Initialize services
	readabilityService := services.NewReadabilityService()
	summarizeService := services.NewSummarizeService(summarizerProvider, readabilityService)

	referenceService := services.NewDiseaseReferenceService(
		referenceAdapter,
		searchRepo,
		cfg.Library.PromotionThreshold,
	)

	diseaseService := services.NewDiseaseService(diseaseSource, cacheProvider, referenceService)
	drugService := services.NewDrugService(drugSource, cacheProvider)
	trialsService := services.NewTrialsService(trialsSource, cacheProvider)
	literatureService := services.NewLiteratureService(literatureSource, cacheProvider)
	healthTopicService := services.NewHealthTopicService(healthTopicSource, cacheProvider)

	// Initialize handlers
	readabilityHandler := handlers.NewReadabilityHandler(readabilityService)
	summarizeHandler := handlers.NewSummarizeHandler(summarizeService)
	diseaseHandler := handlers.NewDiseaseHandler(diseaseService)
	drugHandler := handlers.NewDrugHandler(drugService)
	trialsHandler := handlers.NewTrialsHandler(trialsService)
	literatureHandler := handlers.NewLiteratureHandler(literatureService)
	healthTopicHandler := handlers.NewHealthTopicHandler(healthTopicService)
	referenceHandler := handlers.NewDiseaseReferenceHandler(referenceService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		logger.Info().Msg("HTTP cache middleware initialized")
	}

	// Set up router
	router := routes.NewRouter(
		readabilityHandler,
		summarizeHandler,
		diseaseHandler,
		drugHandler,
		trialsHandler,
		literatureHandler,
		healthTopicHandler,
		referenceHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server stopped")
}
