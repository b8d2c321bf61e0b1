// Package exchangerate talks to the exchangerate-api.com v6 service. Rates
// are quoted against a base currency; a single GET returns the full mapping.
// There is deliberately no retry or backoff: a failed fetch surfaces as one
// error and the caller decides what stale data it can live with.
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client fetches conversion rates keyed by API credential and base currency.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type latestResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// New creates a Client for the given endpoint and API key.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// LatestRates returns the code->rate mapping quoted against base.
func (c *Client) LatestRates(ctx context.Context, base string) (map[string]float64, error) {
	url := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, c.apiKey, strings.ToUpper(base))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build rates request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates for %s: %w", base, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate service returned status %s for base %s", res.Status, base)
	}

	var payload latestResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode rates response: %w", err)
	}

	if payload.Result != "success" {
		return nil, fmt.Errorf("rate service error for base %s: %s", base, payload.ErrorType)
	}
	if len(payload.ConversionRates) == 0 {
		return nil, fmt.Errorf("rate service returned no rates for base %s", base)
	}

	return payload.ConversionRates, nil
}
