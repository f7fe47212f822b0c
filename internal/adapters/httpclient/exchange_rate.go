package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const exchangeRateProviderName = "exchangerate-api"

var errNoRates = errors.New("response has no rates")

// ExchangeRateClient talks to the exchangerate-api v4 "latest" endpoint, which answers
// with every known quote for the requested base.
type ExchangeRateClient struct {
	http    *http.Client
	baseURL string
}

type apiResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

func (c *ExchangeRateClient) Name() string {
	return exchangeRateProviderName
}

// GetExchangeRates ignores quotes: the endpoint always returns the full table for base.
func (c *ExchangeRateClient) GetExchangeRates(ctx context.Context, base string, _ ...string) (map[string]float64, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + url.PathEscape(base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for currency %q: %w", base, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request for currency %q: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d for currency %q: %s", resp.StatusCode, base, resp.Status)
	}

	var body apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response for currency %q: %w", base, err)
	}

	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("api returned no data for currency %q: %w", base, errNoRates)
	}

	return body.Rates, nil
}

func NewExchangeRateClient(httpClient *http.Client, baseURL string) *ExchangeRateClient {
	return &ExchangeRateClient{http: httpClient, baseURL: baseURL}
}
