package handlers

import (
	"net/http"
	"strconv"

	"github.com/florencehealth/ai-nurse-florence/internal/application/services"
)

// LiteratureHandler handles medical literature search HTTP requests
type LiteratureHandler struct {
	literatureService *services.LiteratureService
}

// NewLiteratureHandler creates a new literature handler
func NewLiteratureHandler(literatureService *services.LiteratureService) *LiteratureHandler {
	return &LiteratureHandler{
		literatureService: literatureService,
	}
}

// SearchLiterature handles GET /api/literature/search
func (h *LiteratureHandler) SearchLiterature(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	articles, err := h.literatureService.Search(r.Context(), query, limit)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"banner":   Banner,
		"articles": articles,
		"count":    len(articles),
	})
}
