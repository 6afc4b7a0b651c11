package alphavantage

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"
)

const baseURL = "https://www.alphavantage.co"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=alphavantage_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// AlphaVantageAPIClient is a client for the Alpha Vantage query API.
type AlphaVantageAPIClient struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP client.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values
}

// AlphaVantageAPIClientOption is a configuration option for the Alpha Vantage API client.
type AlphaVantageAPIClientOption func(*AlphaVantageAPIClient)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) AlphaVantageAPIClientOption {
	return func(c *AlphaVantageAPIClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) AlphaVantageAPIClientOption {
	return func(c *AlphaVantageAPIClient) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) AlphaVantageAPIClientOption {
	return func(c *AlphaVantageAPIClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewAlphaVantageAPIClient creates a new Alpha Vantage API client. An empty key
// is accepted; the API answers such calls with an advisory payload.
func NewAlphaVantageAPIClient(key string, options ...AlphaVantageAPIClientOption) (*AlphaVantageAPIClient, error) {
	var client = &AlphaVantageAPIClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	if key != "" {
		// https://www.alphavantage.co/documentation/
		client.query.Set("apikey", key)
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}

// with returns a per-call copy of the client with opts applied.
func (c *AlphaVantageAPIClient) with(opts []AlphaVantageAPIClientOption) *AlphaVantageAPIClient {
	var override = &AlphaVantageAPIClient{
		baseURL:    c.baseURL,
		httpClient: c.httpClient,
		header:     c.header.Clone(),
		query:      c.query,
	}
	for _, opt := range opts {
		opt(override)
	}
	return override
}

// get performs GET {baseURL}/query with the client's query merged with params
// and checks the status code. The caller owns the returned body.
func (c *AlphaVantageAPIClient) get(ctx context.Context, params url.Values) (*http.Response, error) {
	query := maps.Clone(c.query)
	if query == nil {
		query = url.Values{}
	}
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	endpoint := fmt.Sprintf("%s/query?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}

	switch res.StatusCode {
	case http.StatusOK:
		return res, nil

	case http.StatusBadRequest:
		res.Body.Close()
		return nil, fmt.Errorf("bad request for function=%s", params.Get("function"))

	case http.StatusUnauthorized, http.StatusForbidden:
		res.Body.Close()
		return nil, fmt.Errorf("unauthorized")

	case http.StatusTooManyRequests:
		res.Body.Close()
		return nil, fmt.Errorf("rate limited")

	default:
		res.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}
}
