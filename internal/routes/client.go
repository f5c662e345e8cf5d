package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError is a non-2xx response from the aggregation server. Message is
// the server's error field when the body carried one; Error() falls back
// to the bare status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// IsRateLimited reports whether err is a rate-limit rejection, either by
// HTTP status or by message content.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusTooManyRequests {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") || strings.Contains(msg, "429")
}

// Client is an HTTP client for the EVE Routes aggregation API.
type Client struct {
	http    *http.Client
	baseURL string
	cache   *ResultCache
}

// NewClient creates a client for the server at baseURL. Responses are
// memoized per query string for cacheTTL (0 disables the cache).
func NewClient(baseURL string, timeout, cacheTTL time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		cache:   NewResultCache(cacheTTL),
	}
}

// HealthCheck pings the server's /health endpoint to verify connectivity.
func (c *Client) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", "eve-routes/1.0 (github.com)")
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == 200
}

// Opportunities runs one opportunity query. Identical concurrent queries
// share a single request, and fresh local cache hits are returned with
// Metadata.Cached set, mirroring the server's own cache flag.
func (c *Client) Opportunities(ctx context.Context, query url.Values) (*ResultSet, error) {
	key := query.Encode()
	if rs, ok := c.cache.Get(key); ok {
		rs.Metadata.Cached = true
		return rs, nil
	}

	rs, err := c.cache.Fetch(ctx, key, func() (*ResultSet, error) {
		return c.fetch(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (c *Client) fetch(ctx context.Context, query url.Values) (*ResultSet, error) {
	u := c.baseURL + "/api/opportunities?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "eve-routes/1.0 (github.com)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		var e struct {
			Error string `json:"error"`
		}
		json.Unmarshal(body, &e)
		return nil, &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	var rs ResultSet
	if err := json.NewDecoder(resp.Body).Decode(&rs); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &rs, nil
}
