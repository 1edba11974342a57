// Package lcahub fetches life-cycle-assessment footprints from a remote
// footprint service. It runs at the ingestion boundary, before analysis:
// the engine itself only ever sees the in-memory table hydrated here.
package lcahub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/greencart/backend/internal/domain"
)

// Record is one footprint row from the remote service
type Record struct {
	ProductID string  `json:"product_id,omitempty"`
	Category  string  `json:"category"`
	Mean      float64 `json:"mean"`
	Variance  float64 `json:"variance"`
	Source    string  `json:"source,omitempty"`
}

// listResponse is the service's list payload
type listResponse struct {
	Footprints []Record `json:"footprints"`
	Total      int      `json:"total"`
}

// Client talks to the LCA hub HTTP API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates an LCA hub client. The hub allows 600 requests per
// hour per key, so the limiter runs at 1/6 request per second with a
// small burst.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(1.0/6.0), 5),
	}
}

// ListFootprints fetches every footprint record, retrying transient
// failures up to 3 times with linear backoff.
func (c *Client) ListFootprints(ctx context.Context) ([]Record, error) {
	endpoint := fmt.Sprintf("%s/v1/footprints", c.baseURL)
	params := url.Values{}
	params.Add("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("%w: status %d", domain.ErrFootprintServiceFailure, resp.StatusCode)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		var list listResponse
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("failed to decode footprint list: %w", err)
		}
		return list.Footprints, nil
	}

	return nil, lastErr
}

// GetFootprint fetches a single product footprint by id
func (c *Client) GetFootprint(ctx context.Context, productID string) (*domain.Footprint, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/footprints/%s", c.baseURL, url.PathEscape(productID))
	params := url.Values{}
	params.Add("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrFootprintServiceFailure, resp.StatusCode, string(body))
	}

	var record Record
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode footprint: %w", err)
	}

	footprint := record.Footprint()
	return &footprint, nil
}

// Footprint converts a record to its domain form
func (r Record) Footprint() domain.Footprint {
	return domain.Footprint{
		Mean:     r.Mean,
		Variance: r.Variance,
		Category: r.Category,
		Source:   r.Source,
	}
}

// TableMaps splits records into the id-keyed and category-keyed maps a
// footprint table is built from.
func TableMaps(records []Record) (byID, byCategory map[string]domain.Footprint) {
	byID = make(map[string]domain.Footprint)
	byCategory = make(map[string]domain.Footprint)
	for _, record := range records {
		if record.ProductID != "" {
			byID[record.ProductID] = record.Footprint()
		} else if record.Category != "" {
			byCategory[record.Category] = record.Footprint()
		}
	}
	return byID, byCategory
}

// doRequest executes an HTTP GET with the hub's required headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "GreenCart/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFootprintServiceFailure, err)
	}
	return resp, nil
}
