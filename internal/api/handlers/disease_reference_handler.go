package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/florencehealth/ai-nurse-florence/internal/application/services"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/repositories"
)

// DiseaseReferenceHandler handles diagnosis library HTTP requests
type DiseaseReferenceHandler struct {
	referenceService *services.DiseaseReferenceService
}

// NewDiseaseReferenceHandler creates a new disease reference handler
func NewDiseaseReferenceHandler(referenceService *services.DiseaseReferenceService) *DiseaseReferenceHandler {
	return &DiseaseReferenceHandler{
		referenceService: referenceService,
	}
}

// ListReferences handles GET /api/disease-reference
func (h *DiseaseReferenceHandler) ListReferences(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	filter := repositories.ReferenceFilter{
		Status: entities.ReferenceStatus(r.URL.Query().Get("status")),
		Limit:  limit,
		Offset: offset,
	}

	refs, err := h.referenceService.List(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"entries": refs,
		"count":   len(refs),
	})
}

// GetReference handles GET /api/disease-reference/{id}
func (h *DiseaseReferenceHandler) GetReference(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "reference ID is required")
		return
	}

	ref, err := h.referenceService.Get(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ref)
}

// CreateReference handles POST /api/disease-reference
func (h *DiseaseReferenceHandler) CreateReference(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		MondoID   string `json:"mondo_id"`
		ICD10Code string `json:"icd10_code"`
		Summary   string `json:"summary"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ref, err := h.referenceService.Create(r.Context(), &entities.DiseaseReference{
		Name:      req.Name,
		MondoID:   req.MondoID,
		ICD10Code: req.ICD10Code,
		Summary:   req.Summary,
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, ref)
}

// PromoteReference handles POST /api/disease-reference/{id}/promote
func (h *DiseaseReferenceHandler) PromoteReference(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "reference ID is required")
		return
	}

	ref, err := h.referenceService.Promote(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ref)
}

// RetireReference handles POST /api/disease-reference/{id}/retire
func (h *DiseaseReferenceHandler) RetireReference(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "reference ID is required")
		return
	}

	ref, err := h.referenceService.Retire(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ref)
}

// SearchReferences handles GET /api/disease-reference/search
func (h *DiseaseReferenceHandler) SearchReferences(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	refs, err := h.referenceService.Search(r.Context(), query, limit)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"entries": refs,
		"count":   len(refs),
	})
}
