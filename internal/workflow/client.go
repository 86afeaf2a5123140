package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// Request is the body posted to the automation service.
type Request struct {
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	RiskScore    int    `json:"risk_score"`
	Label        string `json:"label"`
	Timestamp    string `json:"timestamp"`
}

// Client posts workflow triggers to the automation service.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client for the automation endpoint at baseURL authenticating with apiKey.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Trigger posts req and returns the service's JSON response verbatim.
func (c *Client) Trigger(ctx context.Context, req Request) (json.RawMessage, error) {
	if c.APIKey == "" || c.BaseURL == "" {
		return nil, errors.New("workflow: service not configured")
	}
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("workflow: request failed status=%d body=%s", resp.StatusCode, string(body))
	}
	if !json.Valid(body) {
		return nil, errors.New("workflow: response is not valid JSON")
	}
	return json.RawMessage(body), nil
}
