package action

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client is an HTTP adapter to the action engine's submission API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an engine client with a bounded per-call timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Submit posts an action request and returns the engine's async handle
func (c *Client) Submit(ctx context.Context, req Request) (Handle, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Handle{}, fmt.Errorf("marshaling action request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/actions", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Handle{}, fmt.Errorf("building action request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return Handle{}, fmt.Errorf("%w: engine returned %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return Handle{}, fmt.Errorf("%w: engine returned %d", ErrRejected, resp.StatusCode)
	}

	var handle Handle
	if err := json.NewDecoder(resp.Body).Decode(&handle); err != nil {
		return Handle{}, fmt.Errorf("decoding action handle: %w", err)
	}
	return handle, nil
}
