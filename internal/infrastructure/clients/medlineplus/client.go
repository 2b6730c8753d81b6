package medlineplus

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

const sourceName = "medlineplus"

// Code systems MedlinePlus Connect understands.
const (
	SystemICD10CM = "2.16.840.1.113883.6.90"
	SystemRxNorm  = "2.16.840.1.113883.6.88"
)

// Client resolves clinical codes to consumer-health topics through the
// MedlinePlus Connect service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ providers.HealthTopicSource = (*Client)(nil)

// NewClient creates a new MedlinePlus Connect client
func NewClient(cfg *config.SourcesConfig) *Client {
	return &Client{
		baseURL: cfg.MedlinePlusURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// MedlinePlus Connect returns an Atom feed rendered as JSON.
type connectResponse struct {
	Feed struct {
		Entry []struct {
			Title struct {
				Value string `json:"_value"`
			} `json:"title"`
			Link []struct {
				Href string `json:"href"`
			} `json:"link"`
			Summary struct {
				Value string `json:"_value"`
			} `json:"summary"`
		} `json:"entry"`
	} `json:"feed"`
}

// LookupTopics resolves a diagnosis or medication code to education topics.
// system accepts the short names "icd10cm" and "rxnorm" or a raw OID.
func (c *Client) LookupTopics(ctx context.Context, code, system string) ([]*entities.HealthTopic, error) {
	if code == "" {
		return nil, apperrors.NewValidationError("code is required")
	}

	oid := system
	switch system {
	case "", "icd10cm":
		oid = SystemICD10CM
	case "rxnorm":
		oid = SystemRxNorm
	}

	params := url.Values{}
	params.Set("mainSearchCriteria.v.cs", oid)
	params.Set("mainSearchCriteria.v.c", code)
	params.Set("knowledgeResponseType", "application/json")

	var result connectResponse
	if err := c.get(ctx, "?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	topics := make([]*entities.HealthTopic, 0, len(result.Feed.Entry))
	for _, entry := range result.Feed.Entry {
		href := ""
		if len(entry.Link) > 0 {
			href = entry.Link[0].Href
		}
		topics = append(topics, &entities.HealthTopic{
			Title:   entry.Title.Value,
			URL:     href,
			Summary: entry.Summary.Value,
			Code:    code,
			System:  system,
		})
	}

	if len(topics) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no health topics found for code %q", code))
	}
	return topics, nil
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
			err := fmt.Errorf("medlineplus returned status %d", resp.StatusCode)
			observability.RecordSourceCall(ctx, sourceName, resp.StatusCode, time.Since(start), err)
			return err
		}
		if resp.StatusCode != http.StatusOK {
			permanent = fmt.Errorf("medlineplus returned status %d", resp.StatusCode)
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
		return apperrors.NewExternalError("medlineplus unavailable", err)
	}
	if permanent != nil {
		return apperrors.NewExternalError("medlineplus lookup failed", permanent)
	}
	return nil
}
