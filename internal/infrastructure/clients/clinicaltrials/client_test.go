package clinicaltrials

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
		ClinicalTrialsURL: serverURL,
		TimeoutSeconds:    2,
	})
}

func TestSearchTrials_MapsStudyFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/studies", r.URL.Path)
		assert.Equal(t, "heart failure", r.URL.Query().Get("query.cond"))
		assert.Equal(t, "RECRUITING", r.URL.Query().Get("filter.overallStatus"))
		assert.Equal(t, "5", r.URL.Query().Get("pageSize"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"studies": [{
				"protocolSection": {
					"identificationModule": {"nctId": "NCT01234567", "briefTitle": "Sacubitril in HFrEF"},
					"statusModule": {"overallStatus": "RECRUITING"},
					"designModule": {"phases": ["PHASE3"]},
					"conditionsModule": {"conditions": ["Heart Failure"]},
					"armsInterventionsModule": {"interventions": [{"name": "Sacubitril/Valsartan"}]},
					"descriptionModule": {"briefSummary": "Evaluates ejection fraction response."}
				}
			}]
		}`))
	}))
	defer server.Close()

	trials, err := newTestClient(server.URL).SearchTrials(context.Background(), "heart failure", "RECRUITING", 5)

	assert.NoError(t, err)
	assert.Len(t, trials, 1)
	assert.Equal(t, "NCT01234567", trials[0].NCTID)
	assert.Equal(t, "Sacubitril in HFrEF", trials[0].Title)
	assert.Equal(t, "RECRUITING", trials[0].Status)
	assert.Equal(t, "PHASE3", trials[0].Phase)
	assert.Equal(t, []string{"Heart Failure"}, trials[0].Conditions)
	assert.Equal(t, []string{"Sacubitril/Valsartan"}, trials[0].Interventions)
}

func TestSearchTrials_OmitsStatusFilterWhenUnset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("filter.overallStatus"))
		w.Write([]byte(`{"studies":[]}`))
	}))
	defer server.Close()

	trials, err := newTestClient(server.URL).SearchTrials(context.Background(), "gout", "", 10)

	assert.NoError(t, err)
	assert.Empty(t, trials)
}

func TestSearchTrials_EmptyConditionIsValidationError(t *testing.T) {
	trials, err := newTestClient("http://unused").SearchTrials(context.Background(), "", "", 10)

	assert.Nil(t, trials)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestSearchTrials_RetriesServerErrors(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"studies":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SearchTrials(context.Background(), "asthma", "", 10)

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}
