package receiver

import "errors"

// Sentinel errors returned by receiver operations.
var (
	// ErrNotFound is returned when a receiver does not exist or is not
	// visible to the requester.
	ErrNotFound = errors.New("receiver: not found")

	// ErrForbidden is returned when the requester is authenticated but
	// lacks the scope for the operation.
	ErrForbidden = errors.New("receiver: forbidden")

	// ErrInvalidType is returned when a receiver type is not webhook or signal.
	ErrInvalidType = errors.New("receiver: invalid receiver type")

	// ErrUnknownAction is returned when the requested action is not in the
	// dispatchable action catalog.
	ErrUnknownAction = errors.New("receiver: unknown action")

	// ErrClusterNotFound is returned when the target cluster does not
	// resolve at creation time.
	ErrClusterNotFound = errors.New("receiver: cluster not found")

	// ErrDuplicateName is returned when a receiver name is already taken
	// within the owning project.
	ErrDuplicateName = errors.New("receiver: name already in use within project")

	// ErrInvalidMarker is returned when a pagination marker cannot be decoded.
	ErrInvalidMarker = errors.New("receiver: invalid pagination marker")

	// ErrUnavailable is returned when the backing store cannot be reached.
	// Safe to retry with backoff.
	ErrUnavailable = errors.New("receiver: store unavailable")
)
