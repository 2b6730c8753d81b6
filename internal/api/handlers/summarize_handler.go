package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/florencehealth/ai-nurse-florence/internal/application/services"
)

// SummarizeHandler handles SBAR summarization HTTP requests
type SummarizeHandler struct {
	summarizeService *services.SummarizeService
}

// NewSummarizeHandler creates a new summarize handler
func NewSummarizeHandler(summarizeService *services.SummarizeService) *SummarizeHandler {
	return &SummarizeHandler{
		summarizeService: summarizeService,
	}
}

// SummarizeSBAR handles POST /api/summarize/sbar
func (h *SummarizeHandler) SummarizeSBAR(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.summarizeService.SummarizeSBAR(r.Context(), req.Notes)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"banner": Banner,
		"sbar":   report,
	})
}
