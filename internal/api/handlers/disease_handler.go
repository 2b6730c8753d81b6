package handlers

import (
	"net/http"

	"github.com/florencehealth/ai-nurse-florence/internal/application/services"
)

// DiseaseHandler handles disease lookup HTTP requests
type DiseaseHandler struct {
	diseaseService *services.DiseaseService
}

// NewDiseaseHandler creates a new disease handler
func NewDiseaseHandler(diseaseService *services.DiseaseService) *DiseaseHandler {
	return &DiseaseHandler{
		diseaseService: diseaseService,
	}
}

// LookupDisease handles GET /api/diseases/lookup
func (h *DiseaseHandler) LookupDisease(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	summary, err := h.diseaseService.Lookup(r.Context(), query)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"banner":  Banner,
		"disease": summary,
	})
}
