package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/providers"
	apperrors "github.com/florencehealth/ai-nurse-florence/pkg/errors"
)

// Banner is attached to every data-bearing response. The API serves
// educational content, never clinical advice.
const Banner = "Educational use only — not medical advice. Consult a licensed clinician."

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithServiceError maps application errors to HTTP statuses.
// Internal error details are never echoed to the client.
func respondWithServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, providers.ErrSummarizerUnauthorized) {
		respondWithError(w, http.StatusBadGateway, "summarization provider rejected the request")
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeConflict:
			respondWithError(w, http.StatusConflict, appErr.Message)
		case apperrors.ErrorTypeUnauthorized:
			respondWithError(w, http.StatusUnauthorized, appErr.Message)
		case apperrors.ErrorTypeExternal:
			respondWithError(w, http.StatusBadGateway, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
