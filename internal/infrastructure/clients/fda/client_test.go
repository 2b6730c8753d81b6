package fda

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
		OpenFDAURL:     serverURL,
		TimeoutSeconds: 2,
	})
}

func TestSearchLabels_MapsLabelFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/drug/label.json", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("search"), "metformin")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": [{
				"openfda": {
					"brand_name": ["Glucophage"],
					"generic_name": ["Metformin Hydrochloride"],
					"manufacturer_name": ["Example Pharma"],
					"route": ["ORAL"]
				},
				"indications_and_usage": ["For type 2 diabetes."],
				"warnings": ["Lactic acidosis risk."],
				"boxed_warning": ["Boxed: lactic acidosis."],
				"dosage_and_administration": ["500 mg twice daily."]
			}]
		}`))
	}))
	defer server.Close()

	labels, err := newTestClient(server.URL).SearchLabels(context.Background(), "metformin", 5)

	assert.NoError(t, err)
	assert.Len(t, labels, 1)
	assert.Equal(t, "Glucophage", labels[0].BrandName)
	assert.Equal(t, "Metformin Hydrochloride", labels[0].GenericName)
	assert.Equal(t, []string{"ORAL"}, labels[0].Route)
	assert.Contains(t, labels[0].WarningsText, "Boxed: lactic acidosis.")
	assert.Contains(t, labels[0].WarningsText, "Lactic acidosis risk.")
}

func TestSearchLabels_NotFoundBecomesTypedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// openFDA answers empty result sets with 404.
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"No matches found!"}}`))
	}))
	defer server.Close()

	labels, err := newTestClient(server.URL).SearchLabels(context.Background(), "nosuchdrug", 5)

	assert.Nil(t, labels)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestSearchLabels_EmptyNameIsValidationError(t *testing.T) {
	labels, err := newTestClient("http://unused").SearchLabels(context.Background(), "", 5)

	assert.Nil(t, labels)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestSearchLabels_RetriesServerErrors(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"results":[{"openfda":{"brand_name":["Advil"],"generic_name":["Ibuprofen"]}}]}`))
	}))
	defer server.Close()

	labels, err := newTestClient(server.URL).SearchLabels(context.Background(), "ibuprofen", 1)

	assert.NoError(t, err)
	assert.Len(t, labels, 1)
	assert.Equal(t, 2, calls)
}
