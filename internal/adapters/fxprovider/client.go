// Package fxprovider implements the exchange rate provider port against the
// exchangerate-api.com HTTP API.
package fxprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tripweaver/trip_budget_app/internal/core/ports/providers"
)

// Client fetches exchange rates over HTTP. The provider exposes a pair
// endpoint for a single rate and a latest endpoint returning the full quote
// table for one base currency.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// pairResponse is the provider's response for a single currency pair.
type pairResponse struct {
	Result         string          `json:"result"`
	ErrorType      string          `json:"error-type"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

// latestResponse is the provider's response for a full quote table.
type latestResponse struct {
	Result          string                     `json:"result"`
	ErrorType       string                     `json:"error-type"`
	BaseCode        string                     `json:"base_code"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

// NewClient creates a provider client. baseURL is the API root without a
// trailing slash; apiKey is inserted into the request path.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

var _ providers.RateProvider = (*Client)(nil)

// FetchPairRate retrieves the rate for a single currency pair.
func (c *Client) FetchPairRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s/pair/%s/%s", c.baseURL, c.apiKey, fromCode, toCode)

	var response pairResponse
	if err := c.get(ctx, url, &response); err != nil {
		return decimal.Zero, err
	}
	if response.Result != "success" {
		return decimal.Zero, fmt.Errorf("exchange rate provider error for %s/%s: %s", fromCode, toCode, response.ErrorType)
	}
	if response.ConversionRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("exchange rate provider returned non-positive rate for %s/%s", fromCode, toCode)
	}
	return response.ConversionRate, nil
}

// FetchAllRates retrieves the full quote table for one base currency.
func (c *Client) FetchAllRates(ctx context.Context, baseCode string) (map[string]decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, c.apiKey, baseCode)

	var response latestResponse
	if err := c.get(ctx, url, &response); err != nil {
		return nil, err
	}
	if response.Result != "success" {
		return nil, fmt.Errorf("exchange rate provider error for base %s: %s", baseCode, response.ErrorType)
	}
	if len(response.ConversionRates) == 0 {
		return nil, fmt.Errorf("exchange rate provider returned no rates for base %s", baseCode)
	}
	return response.ConversionRates, nil
}

// get executes an HTTP GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read provider response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}
	return nil
}
