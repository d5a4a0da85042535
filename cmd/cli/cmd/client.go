package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"launchplane/pkg/api"
)

// LaunchClient handles API calls to the launchplane controller.
type LaunchClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewLaunchClient creates a new client with the given base URL.
func NewLaunchClient(baseURL string) *LaunchClient {
	return &LaunchClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// do sends the request and decodes a 2xx JSON body into out.
func (c *LaunchClient) do(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr api.ErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// ListPlanets sends GET /v1/planets.
func (c *LaunchClient) ListPlanets() ([]api.Planet, error) {
	var result []api.Planet
	if err := c.do(http.MethodGet, "/v1/planets", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListLaunches sends GET /v1/launches. Zero page or limit are omitted.
func (c *LaunchClient) ListLaunches(page, limit int) ([]api.Launch, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/v1/launches"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var result []api.Launch
	if err := c.do(http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ScheduleLaunch sends POST /v1/launches.
func (c *LaunchClient) ScheduleLaunch(req api.ScheduleLaunchRequest) (*api.Launch, error) {
	var result api.Launch
	if err := c.do(http.MethodPost, "/v1/launches", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AbortLaunch sends DELETE /v1/launches/{flightNumber}.
func (c *LaunchClient) AbortLaunch(flightNumber int) (*api.AbortResponse, error) {
	var result api.AbortResponse
	if err := c.do(http.MethodDelete, fmt.Sprintf("/v1/launches/%d", flightNumber), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Import sends POST /v1/admin/import.
func (c *LaunchClient) Import() (*api.ImportResponse, error) {
	var result api.ImportResponse
	if err := c.do(http.MethodPost, "/v1/admin/import", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
