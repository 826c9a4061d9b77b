package trust

import "context"

/* Delegated trusts let the control plane act on a user's behalf long after
 * the user's own session is gone. A trust is a capability owned by exactly
 * one receiver: issued at creation, revoked at deletion, impersonated at
 * trigger time. The original user's live session is never required.
 */

// Identity is an authenticated caller as seen by the control plane.
type Identity struct {
	Project string
	Domain  string
	User    string
	Roles   []string
}

// IsOperator reports whether the identity carries the elevated scope that
// permits cross-project visibility
func (i Identity) IsOperator() bool {
	for _, role := range i.Roles {
		if role == "admin" {
			return true
		}
	}
	return false
}

// Scope restricts a delegated trust to exactly one action on one cluster.
type Scope struct {
	ClusterID string
	Action    string
}

// Handle references a delegated trust held by a receiver.
type Handle struct {
	ID    string
	Scope Scope
}

// Delegator issues, revokes and exercises delegated trusts against the
// external identity service
type Delegator interface {
	/* Issue creates a trust letting the system impersonate the requester
	 * for the given scope, valid until explicitly revoked
	 */
	Issue(ctx context.Context, requester Identity, scope Scope) (Handle, error)

	/* Revoke invalidates a trust by handle ID
	 * Returns ErrAlreadyRevoked if it is already gone (non-fatal) or
	 * ErrRevocationFailed on a transient identity-service failure
	 */
	Revoke(ctx context.Context, handleID string) error

	/* Impersonate exchanges a trust handle for the acting identity
	 * Returns ErrCredentialInvalid if the trust is revoked or expired
	 */
	Impersonate(ctx context.Context, handleID string) (Identity, error)

	/* Verify validates a caller-supplied token and returns its identity
	 * Used by the signal invocation path, which never consults a stored
	 * delegation
	 */
	Verify(ctx context.Context, token string) (Identity, error)
}
