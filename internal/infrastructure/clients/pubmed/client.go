package pubmed

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

const sourceName = "pubmed"

// Client searches PubMed through the NCBI E-utilities service, using
// esearch to resolve PMIDs and esummary to hydrate citations.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ providers.LiteratureSource = (*Client)(nil)

// NewClient creates a new PubMed E-utilities client
func NewClient(cfg *config.SourcesConfig) *Client {
	return &Client{
		baseURL: cfg.PubMedURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type esummaryAuthor struct {
	Name string `json:"name"`
}

type esummaryDoc struct {
	UID         string           `json:"uid"`
	Title       string           `json:"title"`
	FullJournal string           `json:"fulljournalname"`
	PubDate     string           `json:"pubdate"`
	Authors     []esummaryAuthor `json:"authors"`
	ELocationID string           `json:"elocationid"`
}

type esummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

// SearchArticles searches PubMed and returns citations in search order.
func (c *Client) SearchArticles(ctx context.Context, query string, limit int) ([]*entities.Article, error) {
	if query == "" {
		return nil, apperrors.NewValidationError("literature query is required")
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", query)
	params.Set("retmode", "json")
	params.Set("retmax", strconv.Itoa(limit))
	params.Set("sort", "relevance")

	var search esearchResponse
	if err := c.get(ctx, "/esearch.fcgi?"+params.Encode(), &search); err != nil {
		return nil, err
	}

	ids := search.ESearchResult.IDList
	if len(ids) == 0 {
		return []*entities.Article{}, nil
	}

	sumParams := url.Values{}
	sumParams.Set("db", "pubmed")
	sumParams.Set("retmode", "json")
	sumParams.Set("id", joinIDs(ids))

	var summary esummaryResponse
	if err := c.get(ctx, "/esummary.fcgi?"+sumParams.Encode(), &summary); err != nil {
		return nil, err
	}

	articles := make([]*entities.Article, 0, len(ids))
	for _, id := range ids {
		raw, ok := summary.Result[id]
		if !ok {
			continue
		}
		var doc esummaryDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		authors := make([]string, 0, len(doc.Authors))
		for _, a := range doc.Authors {
			authors = append(authors, a.Name)
		}
		articles = append(articles, &entities.Article{
			PMID:    doc.UID,
			Title:   doc.Title,
			Journal: doc.FullJournal,
			PubDate: doc.PubDate,
			Authors: authors,
			DOI:     doc.ELocationID,
		})
	}

	return articles, nil
}

func joinIDs(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += id
	}
	return out
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

		// NCBI signals throttling with 429; worth a backoff round.
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			err := fmt.Errorf("pubmed returned status %d", resp.StatusCode)
			observability.RecordSourceCall(ctx, sourceName, resp.StatusCode, time.Since(start), err)
			return err
		}
		if resp.StatusCode != http.StatusOK {
			permanent = fmt.Errorf("pubmed returned status %d", resp.StatusCode)
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
		return apperrors.NewExternalError("pubmed unavailable", err)
	}
	if permanent != nil {
		return apperrors.NewExternalError("pubmed search failed", permanent)
	}
	return nil
}
