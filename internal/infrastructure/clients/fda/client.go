package fda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/providers"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/observability"
	"github.com/florencehealth/ai-nurse-florence/pkg/config"
	apperrors "github.com/florencehealth/ai-nurse-florence/pkg/errors"
	"github.com/florencehealth/ai-nurse-florence/pkg/retry"
)

const sourceName = "openfda"

// Client searches the openFDA structured drug label corpus.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ providers.DrugSource = (*Client)(nil)

// NewClient creates a new openFDA client
func NewClient(cfg *config.SourcesConfig) *Client {
	return &Client{
		baseURL: cfg.OpenFDAURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type labelResult struct {
	OpenFDA struct {
		BrandName        []string `json:"brand_name"`
		GenericName      []string `json:"generic_name"`
		ManufacturerName []string `json:"manufacturer_name"`
		Route            []string `json:"route"`
	} `json:"openfda"`
	IndicationsAndUsage      []string `json:"indications_and_usage"`
	Warnings                 []string `json:"warnings"`
	DosageAndAdministration  []string `json:"dosage_and_administration"`
	BoxedWarning             []string `json:"boxed_warning"`
}

type labelResponse struct {
	Results []labelResult `json:"results"`
}

// SearchLabels searches product labels by brand or generic name.
func (c *Client) SearchLabels(ctx context.Context, name string, limit int) ([]*entities.DrugLabel, error) {
	if name == "" {
		return nil, apperrors.NewValidationError("drug name is required")
	}
	if limit <= 0 || limit > 25 {
		limit = 5
	}

	search := fmt.Sprintf(`openfda.brand_name:"%s"+openfda.generic_name:"%s"`, name, name)
	params := url.Values{}
	params.Set("search", search)
	params.Set("limit", strconv.Itoa(limit))

	var result labelResponse
	if err := c.get(ctx, "/drug/label.json?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	labels := make([]*entities.DrugLabel, 0, len(result.Results))
	for _, r := range result.Results {
		warnings := r.Warnings
		if len(r.BoxedWarning) > 0 {
			warnings = append(r.BoxedWarning, warnings...)
		}
		labels = append(labels, &entities.DrugLabel{
			BrandName:       first(r.OpenFDA.BrandName),
			GenericName:     first(r.OpenFDA.GenericName),
			Manufacturer:    first(r.OpenFDA.ManufacturerName),
			Route:           r.OpenFDA.Route,
			IndicationsText: strings.Join(r.IndicationsAndUsage, "\n"),
			WarningsText:    strings.Join(warnings, "\n"),
			DosageText:      strings.Join(r.DosageAndAdministration, "\n"),
		})
	}

	if len(labels) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no labels found for %q", name))
	}
	return labels, nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	var permanent error
	err := retry.Do(ctx, retry.SourceConfig(), func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			permanent = err
			return nil
		}
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			observability.RecordSourceCall(ctx, sourceName, 0, time.Since(start), err)
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			err := fmt.Errorf("openfda returned status %d", resp.StatusCode)
			observability.RecordSourceCall(ctx, sourceName, resp.StatusCode, time.Since(start), err)
			return err
		}
		// openFDA answers an empty result set with 404 and a JSON error body.
		if resp.StatusCode == http.StatusNotFound {
			observability.RecordSourceCall(ctx, sourceName, resp.StatusCode, time.Since(start), nil)
			return nil
		}
		if resp.StatusCode != http.StatusOK {
			permanent = fmt.Errorf("openfda returned status %d", resp.StatusCode)
			observability.RecordSourceCall(ctx, sourceName, resp.StatusCode, time.Since(start), permanent)
			return nil
		}

		decodeErr := json.NewDecoder(resp.Body).Decode(out)
		observability.RecordSourceCall(ctx, sourceName, resp.StatusCode, time.Since(start), decodeErr)
		if decodeErr != nil {
			permanent = decodeErr
		}
		return nil
	})

	if err != nil {
		return apperrors.NewExternalError("openfda unavailable", err)
	}
	if permanent != nil {
		return apperrors.NewExternalError("openfda search failed", permanent)
	}
	return nil
}
