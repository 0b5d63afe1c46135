package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/takeline-lab/takeline/pkg/domain/interfaces"
	"github.com/takeline-lab/takeline/pkg/domain/model"
	"github.com/takeline-lab/takeline/pkg/utils/safe"
)

// client implements interfaces.PricingService against the pricing network's
// JSON API.
type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ interfaces.PricingService = &client{}

type Option func(*client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// New creates a pricing service client for the given endpoint.
func New(baseURL, apiKey string, opts ...Option) (interfaces.PricingService, error) {
	if baseURL == "" {
		return nil, goerr.New("pricing base URL is required")
	}

	c := &client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type lookupRequest struct {
	Descriptions []string `json:"descriptions"`
	Region       string   `json:"region,omitempty"`
}

type lookupResponse struct {
	Candidates []lookupCandidate `json:"candidates"`
}

// lookupCandidate tolerates the service's loosely typed prices: plain
// numbers, formatted strings like "$1,234.56", or "TBD" for materials the
// network has no price for yet.
type lookupCandidate struct {
	Description string  `json:"description"`
	UnitCost    any     `json:"unit_cost"`
	Unit        string  `json:"unit,omitempty"`
	Source      string  `json:"source"`
	Confidence  float64 `json:"confidence"`
}

// Lookup requests price candidates for a batch of item descriptions.
func (c *client) Lookup(ctx context.Context, descriptions []string, region string) ([]model.PriceCandidate, error) {
	if len(descriptions) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(lookupRequest{
		Descriptions: descriptions,
		Region:       region,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode lookup request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/prices/lookup", bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build lookup request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "pricing lookup request failed")
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, goerr.New("pricing lookup returned non-OK status",
			goerr.V("status", resp.StatusCode), goerr.V("body", string(raw)))
	}

	var decoded lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, goerr.Wrap(err, "failed to decode lookup response")
	}

	candidates := make([]model.PriceCandidate, 0, len(decoded.Candidates))
	for _, c := range decoded.Candidates {
		cost := model.SanitizePrice(c.UnitCost)
		if cost == nil {
			// an unparsable price is no price at all; dropping the candidate
			// keeps the item visible as unpriced
			continue
		}
		candidates = append(candidates, model.PriceCandidate{
			Description: c.Description,
			UnitCost:    *cost,
			Unit:        c.Unit,
			Source:      c.Source,
			Confidence:  c.Confidence,
		})
	}

	return candidates, nil
}
