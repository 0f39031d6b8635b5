package countries

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://restcountries.com/v3.1"
	allPath        = "/all"
)

// Fields is the projection requested from the provider.
var Fields = []string{"name", "population", "region", "capital", "flags", "cca2"}

// Source yields the raw provider entries. Entries are left untyped so a
// single odd entry cannot fail the whole decode.
type Source interface {
	Fetch(ctx context.Context) ([]any, error)
}

// Client talks to the REST Countries API.
type Client struct {
	client  *http.Client
	BaseURL string
}

// NewClient returns a client for baseURL. A zero timeout means none.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		client:  &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Endpoint is the full request URL, fields query included.
func (c *Client) Endpoint() string {
	return c.BaseURL + allPath + "?fields=" + strings.Join(Fields, ",")
}

// Fetch issues the single GET and decodes the JSON array.
func (c *Client) Fetch(ctx context.Context) ([]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("received non-2xx status code: %d", resp.StatusCode)
	}

	var raw []any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return raw, nil
}
