package cluster

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/blkart/senlin/trust"
)

// Client is an HTTP adapter to the cluster registry.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a registry client with a bounded per-call timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Get fetches a cluster by ID, scoped to the requester's project
func (c *Client) Get(ctx context.Context, id string, requester trust.Identity) (Cluster, error) {
	url := fmt.Sprintf("%s/v1/clusters/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Cluster{}, fmt.Errorf("building cluster request: %w", err)
	}
	req.Header.Set("X-Auth-Project", requester.Project)
	if requester.IsOperator() {
		req.Header.Set("X-Auth-Global", "true")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Cluster{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden:
		// An invisible cluster is indistinguishable from a missing one
		return Cluster{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case resp.StatusCode >= 500:
		return Cluster{}, fmt.Errorf("%w: registry returned %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return Cluster{}, fmt.Errorf("cluster registry returned %d", resp.StatusCode)
	}

	var body struct {
		Cluster Cluster `json:"cluster"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Cluster{}, fmt.Errorf("decoding cluster response: %w", err)
	}
	return body.Cluster, nil
}
