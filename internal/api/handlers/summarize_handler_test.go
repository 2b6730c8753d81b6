package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florencehealth/ai-nurse-florence/internal/adapters/providers/ai"
	"github.com/florencehealth/ai-nurse-florence/internal/api/handlers"
	"github.com/florencehealth/ai-nurse-florence/internal/application/services"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
)

func newSummarizeHandler() *handlers.SummarizeHandler {
	svc := services.NewSummarizeService(ai.NewStubSummarizerProvider(), services.NewReadabilityService())
	return handlers.NewSummarizeHandler(svc)
}

func TestSummarizeHandler_SummarizeSBAR_StubProvider(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/summarize/sbar",
		strings.NewReader(`{"notes": "pt c/o chest pain, hx HTN"}`))
	rec := httptest.NewRecorder()

	newSummarizeHandler().SummarizeSBAR(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Banner string              `json:"banner"`
		SBAR   entities.SBARReport `json:"sbar"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, handlers.Banner, resp.Banner)
	assert.Equal(t, "stub", resp.SBAR.Provider)
	assert.NotEmpty(t, resp.SBAR.Situation)
	assert.NotEmpty(t, resp.SBAR.Recommendation)
	require.NotNil(t, resp.SBAR.Readability)
	assert.Positive(t, resp.SBAR.Readability.Words)
}

func TestSummarizeHandler_SummarizeSBAR_EmptyNotes(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/summarize/sbar", strings.NewReader(`{"notes": ""}`))
	rec := httptest.NewRecorder()

	newSummarizeHandler().SummarizeSBAR(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummarizeHandler_SummarizeSBAR_MalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/summarize/sbar", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	newSummarizeHandler().SummarizeSBAR(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
