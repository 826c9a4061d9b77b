package trust

import "errors"

// Sentinel errors returned by trust operations.
var (
	// ErrDelegationFailed is returned when the identity service cannot
	// issue a trust, or the requester lacks delegation rights.
	ErrDelegationFailed = errors.New("trust: delegation failed")

	// ErrRevocationFailed is returned on a transient failure revoking a
	// trust. The caller may retry.
	ErrRevocationFailed = errors.New("trust: revocation failed")

	// ErrAlreadyRevoked is returned when revoking a trust that is already
	// invalid. Non-fatal: callers log it and move on.
	ErrAlreadyRevoked = errors.New("trust: already revoked")

	// ErrCredentialInvalid is returned when impersonating a revoked or
	// expired trust.
	ErrCredentialInvalid = errors.New("trust: credential invalid")

	// ErrUnauthorized is returned when invocation-time authentication
	// fails, on either the webhook or the signal path.
	ErrUnauthorized = errors.New("trust: unauthorized")
)
