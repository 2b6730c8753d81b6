package handlers

import (
	"net/http"
	"strconv"

	"github.com/florencehealth/ai-nurse-florence/internal/application/services"
)

// DrugHandler handles drug label search HTTP requests
type DrugHandler struct {
	drugService *services.DrugService
}

// NewDrugHandler creates a new drug handler
func NewDrugHandler(drugService *services.DrugService) *DrugHandler {
	return &DrugHandler{
		drugService: drugService,
	}
}

// SearchDrugs handles GET /api/drugs/search
func (h *DrugHandler) SearchDrugs(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	labels, err := h.drugService.Search(r.Context(), name, limit)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"banner": Banner,
		"labels": labels,
		"count":  len(labels),
	})
}
