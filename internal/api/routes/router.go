package routes

import (
	"net/http"

	"github.com/florencehealth/ai-nurse-florence/internal/api/handlers"
	"github.com/florencehealth/ai-nurse-florence/internal/api/middleware"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	readabilityHandler *handlers.ReadabilityHandler
	summarizeHandler   *handlers.SummarizeHandler

	diseaseHandler     *handlers.DiseaseHandler
	drugHandler        *handlers.DrugHandler
	trialsHandler      *handlers.TrialsHandler
	literatureHandler  *handlers.LiteratureHandler
	healthTopicHandler *handlers.HealthTopicHandler

	referenceHandler *handlers.DiseaseReferenceHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	readabilityHandler *handlers.ReadabilityHandler,
	summarizeHandler *handlers.SummarizeHandler,
	diseaseHandler *handlers.DiseaseHandler,
	drugHandler *handlers.DrugHandler,
	trialsHandler *handlers.TrialsHandler,
	literatureHandler *handlers.LiteratureHandler,
	healthTopicHandler *handlers.HealthTopicHandler,
	referenceHandler *handlers.DiseaseReferenceHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		readabilityHandler: readabilityHandler,
		summarizeHandler:   summarizeHandler,

		diseaseHandler:     diseaseHandler,
		drugHandler:        drugHandler,
		trialsHandler:      trialsHandler,
		literatureHandler:  literatureHandler,
		healthTopicHandler: healthTopicHandler,

		referenceHandler: referenceHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Readability scoring
	r.mux.HandleFunc("POST /api/readability/check", r.readabilityHandler.CheckReadability)

	// SBAR summarization
	r.mux.HandleFunc("POST /api/summarize/sbar", r.summarizeHandler.SummarizeSBAR)

	// Medical source lookups
	r.mux.HandleFunc("GET /api/diseases/lookup", r.diseaseHandler.LookupDisease)
	r.mux.HandleFunc("GET /api/drugs/search", r.drugHandler.SearchDrugs)
	r.mux.HandleFunc("GET /api/clinical-trials/search", r.trialsHandler.SearchTrials)
	r.mux.HandleFunc("GET /api/literature/search", r.literatureHandler.SearchLiterature)
	r.mux.HandleFunc("GET /api/health-topics/lookup", r.healthTopicHandler.LookupHealthTopics)

	// Disease reference library
	r.mux.HandleFunc("GET /api/disease-reference", r.referenceHandler.ListReferences)
	r.mux.HandleFunc("POST /api/disease-reference", r.referenceHandler.CreateReference)
	r.mux.HandleFunc("GET /api/disease-reference/search", r.referenceHandler.SearchReferences)
	r.mux.HandleFunc("GET /api/disease-reference/{id}", r.referenceHandler.GetReference)
	r.mux.HandleFunc("POST /api/disease-reference/{id}/promote", r.referenceHandler.PromoteReference)
	r.mux.HandleFunc("POST /api/disease-reference/{id}/retire", r.referenceHandler.RetireReference)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
