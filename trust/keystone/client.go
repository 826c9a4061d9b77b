package keystone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/blkart/senlin/trust"
)

/* HTTP adapter to the keystone-style identity service
 * Every call carries a bounded timeout so a hung identity service surfaces
 * as a delegation/revocation failure instead of blocking the caller
 */

// Client implements trust.Delegator against the identity service's trust API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an identity-service client with a bounded per-call timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type trustBody struct {
	Trust struct {
		ID          string `json:"id"`
		TrustorUser string `json:"trustor_user"`
		Project     string `json:"project"`
		ClusterID   string `json:"cluster_id"`
		Action      string `json:"action"`
	} `json:"trust"`
}

type identityBody struct {
	Identity struct {
		Project string   `json:"project"`
		Domain  string   `json:"domain"`
		User    string   `json:"user"`
		Roles   []string `json:"roles"`
	} `json:"identity"`
}

// Issue creates a delegated trust scoped to one action on one cluster
func (c *Client) Issue(ctx context.Context, requester trust.Identity, scope trust.Scope) (trust.Handle, error) {
	var body trustBody
	body.Trust.TrustorUser = requester.User
	body.Trust.Project = requester.Project
	body.Trust.ClusterID = scope.ClusterID
	body.Trust.Action = scope.Action

	payload, err := json.Marshal(body)
	if err != nil {
		return trust.Handle{}, fmt.Errorf("marshaling trust request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/trusts", bytes.NewReader(payload))
	if err != nil {
		return trust.Handle{}, fmt.Errorf("building trust request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return trust.Handle{}, fmt.Errorf("%w: %v", trust.ErrDelegationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return trust.Handle{}, fmt.Errorf("%w: identity service returned %d", trust.ErrDelegationFailed, resp.StatusCode)
	}

	var created trustBody
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return trust.Handle{}, fmt.Errorf("%w: decoding trust: %v", trust.ErrDelegationFailed, err)
	}
	return trust.Handle{ID: created.Trust.ID, Scope: scope}, nil
}

// Revoke invalidates a trust by handle ID
func (c *Client) Revoke(ctx context.Context, handleID string) error {
	url := fmt.Sprintf("%s/v3/trusts/%s", c.baseURL, handleID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("building revoke request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", trust.ErrRevocationFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return fmt.Errorf("%w: %s", trust.ErrAlreadyRevoked, handleID)
	default:
		return fmt.Errorf("%w: identity service returned %d", trust.ErrRevocationFailed, resp.StatusCode)
	}
}

// Impersonate exchanges a trust handle for the acting identity
func (c *Client) Impersonate(ctx context.Context, handleID string) (trust.Identity, error) {
	url := fmt.Sprintf("%s/v3/trusts/%s/impersonate", c.baseURL, handleID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return trust.Identity{}, fmt.Errorf("building impersonate request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return trust.Identity{}, fmt.Errorf("%w: %v", trust.ErrCredentialInvalid, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return trust.Identity{}, fmt.Errorf("%w: identity service returned %d", trust.ErrCredentialInvalid, resp.StatusCode)
	}

	var body identityBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return trust.Identity{}, fmt.Errorf("%w: decoding identity: %v", trust.ErrCredentialInvalid, err)
	}
	return trust.Identity{
		Project: body.Identity.Project,
		Domain:  body.Identity.Domain,
		User:    body.Identity.User,
		Roles:   body.Identity.Roles,
	}, nil
}

// Verify validates a caller-supplied token and returns its identity
func (c *Client) Verify(ctx context.Context, token string) (trust.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v3/auth/tokens", nil)
	if err != nil {
		return trust.Identity{}, fmt.Errorf("building verify request: %w", err)
	}
	req.Header.Set("X-Subject-Token", token)

	resp, err := c.http.Do(req)
	if err != nil {
		return trust.Identity{}, fmt.Errorf("%w: %v", trust.ErrUnauthorized, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return trust.Identity{}, fmt.Errorf("%w: identity service returned %d", trust.ErrUnauthorized, resp.StatusCode)
	}

	var body identityBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return trust.Identity{}, fmt.Errorf("%w: decoding identity: %v", trust.ErrUnauthorized, err)
	}
	return trust.Identity{
		Project: body.Identity.Project,
		Domain:  body.Identity.Domain,
		User:    body.Identity.User,
		Roles:   body.Identity.Roles,
	}, nil
}
