// Package spacex is a client for the SpaceX v4 launches query endpoint.
package spacex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultURL is the public launches query endpoint.
const DefaultURL = "https://api.spacexdata.com/v4/launches/query"

// Launch is a provider launch document with rocket and payloads populated.
type Launch struct {
	FlightNumber int       `json:"flight_number"`
	Name         string    `json:"name"`
	Rocket       Rocket    `json:"rocket"`
	DateLocal    string    `json:"date_local"`
	Upcoming     bool      `json:"upcoming"`
	Success      *bool     `json:"success"` // null until the launch has flown
	Payloads     []Payload `json:"payloads"`
}

type Rocket struct {
	Name string `json:"name"`
}

type Payload struct {
	Customers []string `json:"customers"`
}

// StatusError is returned when the provider answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("launch provider error (%d): %s", e.StatusCode, e.Body)
}

type populate struct {
	Path   string         `json:"path"`
	Select map[string]int `json:"select"`
}

type queryOptions struct {
	Pagination bool       `json:"pagination"`
	Populate   []populate `json:"populate"`
}

type queryRequest struct {
	Query   map[string]any `json:"query"`
	Options queryOptions   `json:"options"`
}

type queryResponse struct {
	Docs []Launch `json:"docs"`
}

// Client handles calls to the launch data provider.
type Client struct {
	URL        string
	HTTPClient *http.Client
}

// NewClient creates a client for the given endpoint.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		URL: url,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchLaunches downloads every launch in one unpaginated query, with rocket
// names and payload customers populated.
func (c *Client) FetchLaunches(ctx context.Context) ([]Launch, error) {
	body, err := json.Marshal(queryRequest{
		Query: map[string]any{},
		Options: queryOptions{
			Pagination: false,
			Populate: []populate{
				{Path: "rocket", Select: map[string]int{"name": 1}},
				{Path: "payloads", Select: map[string]int{"customers": 1}},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result queryResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return result.Docs, nil
}
