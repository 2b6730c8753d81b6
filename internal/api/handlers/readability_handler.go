package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/florencehealth/ai-nurse-florence/internal/application/services"
)

// ReadabilityHandler handles readability scoring HTTP requests
type ReadabilityHandler struct {
	readabilityService *services.ReadabilityService
}

// NewReadabilityHandler creates a new readability handler
func NewReadabilityHandler(readabilityService *services.ReadabilityService) *ReadabilityHandler {
	return &ReadabilityHandler{
		readabilityService: readabilityService,
	}
}

// CheckReadability handles POST /api/readability/check
func (h *ReadabilityHandler) CheckReadability(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report := h.readabilityService.Analyze(req.Text)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"banner": Banner,
		"report": report,
	})
}
