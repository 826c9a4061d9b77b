package keystone_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blkart/senlin/trust"
	"github.com/blkart/senlin/trust/keystone"
)

func newServer(t *testing.T, handler http.HandlerFunc) *keystone.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return keystone.NewClient(srv.URL, 5*time.Second)
}

func TestIssue(t *testing.T) {
	ctx := context.Background()
	requester := trust.Identity{Project: "p1", Domain: "d1", User: "u1"}
	scope := trust.Scope{ClusterID: "c1", Action: "CLUSTER_SCALE_UP"}

	t.Run("created trust returns a scoped handle", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v3/trusts", r.URL.Path)

			var body map[string]map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "u1", body["trust"]["trustor_user"])
			assert.Equal(t, "c1", body["trust"]["cluster_id"])

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]map[string]string{
				"trust": {"id": "trust-1"},
			})
		})

		handle, err := client.Issue(ctx, requester, scope)

		require.NoError(t, err)
		assert.Equal(t, "trust-1", handle.ID)
		assert.Equal(t, scope, handle.Scope)
	})

	t.Run("identity service error", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.Issue(ctx, requester, scope)

		require.Error(t, err)
		assert.ErrorIs(t, err, trust.ErrDelegationFailed)
	})
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/v3/trusts/trust-1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})

		require.NoError(t, client.Revoke(ctx, "trust-1"))
	})

	t.Run("already gone", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		err := client.Revoke(ctx, "trust-1")

		require.Error(t, err)
		assert.ErrorIs(t, err, trust.ErrAlreadyRevoked)
	})

	t.Run("identity service error", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		err := client.Revoke(ctx, "trust-1")

		require.Error(t, err)
		assert.ErrorIs(t, err, trust.ErrRevocationFailed)
	})
}

func TestImpersonate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the trustor identity", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v3/trusts/trust-1/impersonate", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{
				"identity": map[string]any{
					"project": "p1",
					"domain":  "d1",
					"user":    "u1",
					"roles":   []string{"member"},
				},
			})
		})

		acting, err := client.Impersonate(ctx, "trust-1")

		require.NoError(t, err)
		assert.Equal(t, trust.Identity{Project: "p1", Domain: "d1", User: "u1", Roles: []string{"member"}}, acting)
	})

	t.Run("revoked trust", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := client.Impersonate(ctx, "trust-1")

		require.Error(t, err)
		assert.ErrorIs(t, err, trust.ErrCredentialInvalid)
	})
}

func TestVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v3/auth/tokens", r.URL.Path)
			assert.Equal(t, "token-1", r.Header.Get("X-Subject-Token"))
			json.NewEncoder(w).Encode(map[string]any{
				"identity": map[string]any{"project": "p1", "user": "u1"},
			})
		})

		acting, err := client.Verify(ctx, "token-1")

		require.NoError(t, err)
		assert.Equal(t, "p1", acting.Project)
	})

	t.Run("invalid token", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := client.Verify(ctx, "token-1")

		require.Error(t, err)
		assert.ErrorIs(t, err, trust.ErrUnauthorized)
	})
}
