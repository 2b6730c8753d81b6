package mydisease

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/providers"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/observability"
	"github.com/florencehealth/ai-nurse-florence/pkg/config"
	apperrors "github.com/florencehealth/ai-nurse-florence/pkg/errors"
	"github.com/florencehealth/ai-nurse-florence/pkg/retry"
)

const sourceName = "mydisease"

// Client queries the MyDisease.info disease knowledge base.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ providers.DiseaseSource = (*Client)(nil)

// NewClient creates a new MyDisease.info client
func NewClient(cfg *config.SourcesConfig) *Client {
	return &Client{
		baseURL: cfg.MyDiseaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type queryHit struct {
	ID    string  `json:"_id"`
	Score float64 `json:"_score"`
	Mondo struct {
		Label      string `json:"label"`
		Definition string `json:"definition"`
		Synonym    struct {
			Exact []string `json:"exact"`
		} `json:"synonym"`
		Xrefs struct {
			ICD10CM stringOrList `json:"icd10cm"`
			UMLS    stringOrList `json:"umls"`
		} `json:"xrefs"`
	} `json:"mondo"`
}

type queryResponse struct {
	Hits []queryHit `json:"hits"`
}

// stringOrList absorbs xref fields that appear as either a single string
// or an array depending on the record.
type stringOrList []string

func (s *stringOrList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = []string{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = list
	return nil
}

// LookupDisease resolves a free-text condition query to a disease summary.
func (c *Client) LookupDisease(ctx context.Context, query string) (*entities.DiseaseSummary, error) {
	if query == "" {
		return nil, apperrors.NewValidationError("disease query is required")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("fields", "mondo.label,mondo.definition,mondo.synonym.exact,mondo.xrefs.icd10cm,mondo.xrefs.umls")
	params.Set("size", "1")

	var result queryResponse
	if err := c.get(ctx, "/query?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	if len(result.Hits) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no disease matched %q", query))
	}

	hit := result.Hits[0]
	name := hit.Mondo.Label
	if name == "" {
		name = query
	}

	var xrefs []string
	for _, code := range hit.Mondo.Xrefs.ICD10CM {
		xrefs = append(xrefs, "ICD10CM:"+code)
	}
	for _, code := range hit.Mondo.Xrefs.UMLS {
		xrefs = append(xrefs, "UMLS:"+code)
	}

	return &entities.DiseaseSummary{
		ID:          hit.ID,
		Name:        name,
		MondoID:     hit.ID,
		Definition:  hit.Mondo.Definition,
		Synonyms:    hit.Mondo.Synonym.Exact,
		Xrefs:       xrefs,
		SourceScore: hit.Score,
	}, nil
}

// get performs a GET with backoff on transport errors and 5xx responses.
// A 4xx response or a decode failure is permanent and ends the loop early.
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
			err := fmt.Errorf("mydisease returned status %d", resp.StatusCode)
			observability.RecordSourceCall(ctx, sourceName, resp.StatusCode, time.Since(start), err)
			return err
		}
		if resp.StatusCode != http.StatusOK {
			permanent = fmt.Errorf("mydisease returned status %d", resp.StatusCode)
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
		return apperrors.NewExternalError("mydisease unavailable", err)
	}
	if permanent != nil {
		return apperrors.NewExternalError("mydisease lookup failed", permanent)
	}
	return nil
}
