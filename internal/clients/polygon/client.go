// Package polygon provides a client for the Polygon.io reference-data API
package polygon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/hmkang/stockquery/internal/common"
	"github.com/hmkang/stockquery/internal/interfaces"
	"github.com/hmkang/stockquery/internal/models"
)

const (
	DefaultBaseURL   = "https://api.polygon.io"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the PolygonClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Polygon client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Polygon API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// tickersResponse represents the reference tickers API response
type tickersResponse struct {
	Results []struct {
		Name            string `json:"name"`
		Ticker          string `json:"ticker"`
		PrimaryExchange string `json:"primary_exchange"`
	} `json:"results"`
}

// SearchTickers searches active listings matching the term via
// GET /v3/reference/tickers?search=<term>&active=true.
func (c *Client) SearchTickers(ctx context.Context, term string) ([]*models.TickerSearchResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("search", term)
	params.Set("active", "true")
	params.Set("apiKey", c.apiKey)

	reqURL := fmt.Sprintf("%s/v3/reference/tickers?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("search", term).Msg("Polygon ticker search")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   "/v3/reference/tickers",
		}
	}

	var apiResp tickersResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]*models.TickerSearchResult, len(apiResp.Results))
	for i, item := range apiResp.Results {
		results[i] = &models.TickerSearchResult{
			Name:            item.Name,
			Ticker:          item.Ticker,
			PrimaryExchange: item.PrimaryExchange,
		}
	}

	c.logger.Debug().Int("results", len(results)).Str("search", term).Msg("Polygon ticker search returned")

	return results, nil
}

// Ensure Client implements PolygonClient
var _ interfaces.PolygonClient = (*Client)(nil)
