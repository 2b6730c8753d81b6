package handlers

import (
	"net/http"
	"strconv"

	"github.com/florencehealth/ai-nurse-florence/internal/application/services"
)

// TrialsHandler handles clinical trial search HTTP requests
type TrialsHandler struct {
	trialsService *services.TrialsService
}

// NewTrialsHandler creates a new trials handler
func NewTrialsHandler(trialsService *services.TrialsService) *TrialsHandler {
	return &TrialsHandler{
		trialsService: trialsService,
	}
}

// SearchTrials handles GET /api/clinical-trials/search
func (h *TrialsHandler) SearchTrials(w http.ResponseWriter, r *http.Request) {
	condition := r.URL.Query().Get("condition")
	status := r.URL.Query().Get("status")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	trials, err := h.trialsService.Search(r.Context(), condition, status, limit)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"banner": Banner,
		"trials": trials,
		"count":  len(trials),
	})
}
