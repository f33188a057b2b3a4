package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/me/schedsim/internal/report"
	"github.com/me/schedsim/internal/scheduler"
	"github.com/me/schedsim/pkg/model"
)

// Client is an HTTP client for the schedsim API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient creates a schedsim API client.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{},
		Logger:     logger,
	}
}

// apiResponse is the parsed envelope.
type apiResponse struct {
	Status    string          `json:"status"`
	RequestID string          `json:"request_id"`
	Data      json.RawMessage `json:"data"`
	Error     *model.APIError `json:"error"`
}

// do performs an HTTP request and returns the parsed envelope. An error
// envelope is returned as its *model.APIError.
func (c *Client) do(ctx context.Context, method, path string, body any) (*apiResponse, error) {
	url := c.BaseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
		c.Logger.Debug("HTTP request body", "bytes", len(data))
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.Logger.Debug("HTTP request", "method", method, "url", url)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.Logger.Debug("HTTP response", "status", resp.StatusCode, "bytes", len(respBody))

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("parse response (status %d): %w\nbody: %s", resp.StatusCode, err, string(respBody))
	}

	if apiResp.Status == "error" && apiResp.Error != nil {
		return &apiResp, apiResp.Error
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return &apiResp, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	return &apiResp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) (*apiResponse, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*apiResponse, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Simulate runs one policy on the server.
func (c *Client) Simulate(ctx context.Context, req model.SimulationRequest, coalesce bool) (*report.Document, error) {
	path := "/api/v1/simulations"
	if coalesce {
		path += "?coalesce=true"
	}
	resp, err := c.Post(ctx, path, req)
	if err != nil {
		return nil, err
	}
	var doc report.Document
	if err := json.Unmarshal(resp.Data, &doc); err != nil {
		return nil, fmt.Errorf("decode simulation: %w", err)
	}
	return &doc, nil
}

// Compare runs several policies on the server and returns their summaries.
func (c *Client) Compare(ctx context.Context, req model.ComparisonRequest) ([]model.ComparisonEntry, error) {
	resp, err := c.Post(ctx, "/api/v1/comparisons", req)
	if err != nil {
		return nil, err
	}
	var entries []model.ComparisonEntry
	if err := json.Unmarshal(resp.Data, &entries); err != nil {
		return nil, fmt.Errorf("decode comparison: %w", err)
	}
	return entries, nil
}

// Policies lists the policies the server knows.
func (c *Client) Policies(ctx context.Context) ([]scheduler.Info, error) {
	resp, err := c.Get(ctx, "/api/v1/policies")
	if err != nil {
		return nil, err
	}
	var infos []scheduler.Info
	if err := json.Unmarshal(resp.Data, &infos); err != nil {
		return nil, fmt.Errorf("decode policies: %w", err)
	}
	return infos, nil
}
