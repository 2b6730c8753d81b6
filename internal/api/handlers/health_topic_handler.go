package handlers

import (
	"net/http"

	"github.com/florencehealth/ai-nurse-florence/internal/application/services"
)

// HealthTopicHandler handles consumer health topic lookup HTTP requests
type HealthTopicHandler struct {
	healthTopicService *services.HealthTopicService
}

// NewHealthTopicHandler creates a new health topic handler
func NewHealthTopicHandler(healthTopicService *services.HealthTopicService) *HealthTopicHandler {
	return &HealthTopicHandler{
		healthTopicService: healthTopicService,
	}
}

// LookupHealthTopics handles GET /api/health-topics/lookup
func (h *HealthTopicHandler) LookupHealthTopics(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	system := r.URL.Query().Get("system")

	topics, err := h.healthTopicService.Lookup(r.Context(), code, system)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"banner": Banner,
		"topics": topics,
		"count":  len(topics),
	})
}
