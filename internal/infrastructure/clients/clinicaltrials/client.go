package clinicaltrials

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/providers"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/observability"
	"github.com/florencehealth/ai-nurse-florence/pkg/config"
	apperrors "github.com/florencehealth/ai-nurse-florence/pkg/errors"
	"github.com/florencehealth/ai-nurse-florence/pkg/retry"
)

const sourceName = "clinicaltrials"

// Client searches the ClinicalTrials.gov v2 study registry.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ providers.TrialsSource = (*Client)(nil)

// NewClient creates a new ClinicalTrials.gov client
func NewClient(cfg *config.SourcesConfig) *Client {
	return &Client{
		baseURL: cfg.ClinicalTrialsURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type study struct {
	ProtocolSection struct {
		IdentificationModule struct {
			NCTID      string `json:"nctId"`
			BriefTitle string `json:"briefTitle"`
		} `json:"identificationModule"`
		StatusModule struct {
			OverallStatus string `json:"overallStatus"`
		} `json:"statusModule"`
		DesignModule struct {
			Phases []string `json:"phases"`
		} `json:"designModule"`
		ConditionsModule struct {
			Conditions []string `json:"conditions"`
		} `json:"conditionsModule"`
		ArmsInterventionsModule struct {
			Interventions []struct {
				Name string `json:"name"`
			} `json:"interventions"`
		} `json:"armsInterventionsModule"`
		DescriptionModule struct {
			BriefSummary string `json:"briefSummary"`
		} `json:"descriptionModule"`
	} `json:"protocolSection"`
}

type studiesResponse struct {
	Studies []study `json:"studies"`
}

// SearchTrials searches studies by condition, optionally filtered by
// recruitment status.
func (c *Client) SearchTrials(ctx context.Context, condition, status string, limit int) ([]*entities.ClinicalTrial, error) {
	if condition == "" {
		return nil, apperrors.NewValidationError("trial condition is required")
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	params := url.Values{}
	params.Set("query.cond", condition)
	if status != "" {
		params.Set("filter.overallStatus", status)
	}
	params.Set("pageSize", strconv.Itoa(limit))

	var result studiesResponse
	if err := c.get(ctx, "/studies?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	trials := make([]*entities.ClinicalTrial, 0, len(result.Studies))
	for _, s := range result.Studies {
		p := s.ProtocolSection
		interventions := make([]string, 0, len(p.ArmsInterventionsModule.Interventions))
		for _, iv := range p.ArmsInterventionsModule.Interventions {
			interventions = append(interventions, iv.Name)
		}
		phase := ""
		if len(p.DesignModule.Phases) > 0 {
			phase = p.DesignModule.Phases[0]
		}
		trials = append(trials, &entities.ClinicalTrial{
			NCTID:         p.IdentificationModule.NCTID,
			Title:         p.IdentificationModule.BriefTitle,
			Status:        p.StatusModule.OverallStatus,
			Phase:         phase,
			Conditions:    p.ConditionsModule.Conditions,
			Interventions: interventions,
			BriefSummary:  p.DescriptionModule.BriefSummary,
		})
	}

	return trials, nil
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
			err := fmt.Errorf("clinicaltrials returned status %d", resp.StatusCode)
			observability.RecordSourceCall(ctx, sourceName, resp.StatusCode, time.Since(start), err)
			return err
		}
		if resp.StatusCode != http.StatusOK {
			permanent = fmt.Errorf("clinicaltrials returned status %d", resp.StatusCode)
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
		return apperrors.NewExternalError("clinicaltrials unavailable", err)
	}
	if permanent != nil {
		return apperrors.NewExternalError("clinicaltrials search failed", permanent)
	}
	return nil
}
