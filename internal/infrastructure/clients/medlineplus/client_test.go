package medlineplus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/florencehealth/ai-nurse-florence/pkg/config"
	apperrors "github.com/florencehealth/ai-nurse-florence/pkg/errors"
)

func newTestClient(serverURL string) *Client {
	return NewClient(&config.SourcesConfig{
		MedlinePlusURL: serverURL,
		TimeoutSeconds: 2,
	})
}

func TestLookupTopics_MapsFeedEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, SystemICD10CM, r.URL.Query().Get("mainSearchCriteria.v.cs"))
		assert.Equal(t, "E11.9", r.URL.Query().Get("mainSearchCriteria.v.c"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"feed": {
				"entry": [{
					"title": {"_value": "Diabetes Type 2"},
					"link": [{"href": "https://medlineplus.gov/diabetestype2.html"}],
					"summary": {"_value": "Overview of type 2 diabetes."}
				}]
			}
		}`))
	}))
	defer server.Close()

	topics, err := newTestClient(server.URL).LookupTopics(context.Background(), "E11.9", "icd10cm")

	assert.NoError(t, err)
	assert.Len(t, topics, 1)
	assert.Equal(t, "Diabetes Type 2", topics[0].Title)
	assert.Equal(t, "https://medlineplus.gov/diabetestype2.html", topics[0].URL)
	assert.Equal(t, "E11.9", topics[0].Code)
	assert.Equal(t, "icd10cm", topics[0].System)
}

func TestLookupTopics_RxNormSystemMapsToOID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, SystemRxNorm, r.URL.Query().Get("mainSearchCriteria.v.cs"))
		w.Write([]byte(`{"feed":{"entry":[{"title":{"_value":"Metformin"}}]}}`))
	}))
	defer server.Close()

	topics, err := newTestClient(server.URL).LookupTopics(context.Background(), "6809", "rxnorm")

	assert.NoError(t, err)
	assert.Len(t, topics, 1)
}

func TestLookupTopics_EmptyFeedIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"feed":{"entry":[]}}`))
	}))
	defer server.Close()

	topics, err := newTestClient(server.URL).LookupTopics(context.Background(), "Z99.99", "icd10cm")

	assert.Nil(t, topics)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestLookupTopics_EmptyCodeIsValidationError(t *testing.T) {
	topics, err := newTestClient("http://unused").LookupTopics(context.Background(), "", "icd10cm")

	assert.Nil(t, topics)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}
