package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florencehealth/ai-nurse-florence/internal/api/handlers"
	"github.com/florencehealth/ai-nurse-florence/internal/application/services"
)

type readabilityCheckResponse struct {
	Banner string `json:"banner"`
	Report struct {
		FleschReadingEase  float64  `json:"flesch_reading_ease"`
		FleschKincaidGrade float64  `json:"flesch_kincaid_grade"`
		Sentences          int      `json:"sentences"`
		Words              int      `json:"words"`
		Syllables          int      `json:"syllables"`
		Suggestions        []string `json:"suggestions"`
	} `json:"report"`
}

func TestReadabilityHandler_CheckReadability_ReturnsContract(t *testing.T) {
	handler := handlers.NewReadabilityHandler(services.NewReadabilityService())

	body := `{"text": "This is a simple test sentence."}`
	req := httptest.NewRequest(http.MethodPost, "/api/readability/check", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.CheckReadability(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp readabilityCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, handlers.Banner, resp.Banner)
	assert.Equal(t, 1, resp.Report.Sentences)
	assert.Equal(t, 6, resp.Report.Words)
	assert.NotNil(t, resp.Report.Suggestions)
}

func TestReadabilityHandler_CheckReadability_EmptyTextIsValid(t *testing.T) {
	handler := handlers.NewReadabilityHandler(services.NewReadabilityService())

	req := httptest.NewRequest(http.MethodPost, "/api/readability/check", strings.NewReader(`{"text": ""}`))
	rec := httptest.NewRecorder()

	handler.CheckReadability(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp readabilityCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0.0, resp.Report.FleschReadingEase)
	assert.Equal(t, 0, resp.Report.Words)
	assert.Empty(t, resp.Report.Suggestions)
}

func TestReadabilityHandler_CheckReadability_MalformedBody(t *testing.T) {
	handler := handlers.NewReadabilityHandler(services.NewReadabilityService())

	req := httptest.NewRequest(http.MethodPost, "/api/readability/check", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.CheckReadability(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
