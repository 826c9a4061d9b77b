package cluster

import (
	"context"
	"errors"

	"github.com/blkart/senlin/trust"
)

// Cluster is the subset of the registry's cluster record the receiver
// subsystem cares about.
type Cluster struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Project string `json:"project"`
}

// Sentinel errors returned by registry lookups.
var (
	// ErrNotFound is returned when a cluster does not exist or is not
	// visible to the requester.
	ErrNotFound = errors.New("cluster: not found")

	// ErrUnavailable is returned when the registry cannot be reached.
	ErrUnavailable = errors.New("cluster: registry unavailable")
)

// Registry resolves cluster IDs against the external cluster/node registry
type Registry interface {
	/* Get returns the cluster if it exists and is visible to the requester
	 * Visibility follows project scoping: operators see everything
	 */
	Get(ctx context.Context, id string, requester trust.Identity) (Cluster, error)
}
