package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const currencyAPIProviderName = "currencyapi"

// CurrencyAPIClient talks to the currencyapi.com v3 "latest" endpoint. Unlike
// ExchangeRateClient it needs an API key and answers only the requested quotes.
type CurrencyAPIClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

type currencyAPIValue struct {
	Code  string  `json:"code"`
	Value float64 `json:"value"`
}

type currencyAPIResponse struct {
	Data map[string]currencyAPIValue `json:"data"`
}

func (c *CurrencyAPIClient) Name() string {
	return currencyAPIProviderName
}

func (c *CurrencyAPIClient) GetExchangeRates(ctx context.Context, base string, quotes ...string) (map[string]float64, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("apikey", c.apiKey)
	q.Set("base_currency", base)
	if len(quotes) > 0 {
		q.Set("currencies", strings.Join(quotes, ","))
	}
	u.RawQuery = q.Encode()

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

	var body currencyAPIResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response for currency %q: %w", base, err)
	}

	if len(body.Data) == 0 {
		return nil, fmt.Errorf("api returned no data for currency %q: %w", base, errNoRates)
	}

	rates := make(map[string]float64, len(body.Data))
	for code, v := range body.Data {
		rates[code] = v.Value
	}
	return rates, nil
}

func NewCurrencyAPIClient(httpClient *http.Client, baseURL string, apiKey string) *CurrencyAPIClient {
	return &CurrencyAPIClient{http: httpClient, baseURL: baseURL, apiKey: apiKey}
}
