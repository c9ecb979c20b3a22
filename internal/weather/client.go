// Package weather provides current-conditions lookups against a
// weatherapi.com-compatible upstream, with TTL caching in front.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Current mirrors the upstream current-conditions payload. The same shape is
// served back to clients on GET /weather/{location}.
type Current struct {
	TempC       float64   `json:"temp_c"`
	Condition   Condition `json:"condition"`
	Humidity    int       `json:"humidity"`
	WindKph     float64   `json:"wind_kph"`
	WindDir     string    `json:"wind_dir"`
	FeelslikeC  float64   `json:"feelslike_c"`
	UV          float64   `json:"uv"`
	LastUpdated string    `json:"last_updated"`
}

// Condition is the textual condition with its icon reference.
type Condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// Report is the envelope served to clients, matching the upstream shape.
type Report struct {
	Current Current `json:"current"`
}

// currentResponse is the upstream envelope.
type currentResponse struct {
	Current *Current `json:"current"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client fetches conditions from the upstream weather API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates an upstream weather client. baseURL defaults to the
// public weatherapi.com endpoint.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = "https://api.weatherapi.com/v1"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Current fetches current conditions for a free-text location.
func (c *Client) Current(ctx context.Context, location string) (*Current, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", location)
	q.Set("aqi", "no")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/current.json?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read weather response: %w", err)
	}

	var parsed currentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return nil, fmt.Errorf("weather api (status %d): %s", resp.StatusCode, parsed.Error.Message)
		}
		return nil, fmt.Errorf("weather api (status %d)", resp.StatusCode)
	}
	if parsed.Current == nil {
		return nil, fmt.Errorf("weather api: missing current block")
	}
	return parsed.Current, nil
}
