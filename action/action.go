package action

import "errors"

/* Cluster action vocabulary understood by the action engine
 * Receivers may only bind actions from this set, further narrowed by the
 * operator-managed catalog
 */
const (
	ClusterCreate       = "CLUSTER_CREATE"
	ClusterDelete       = "CLUSTER_DELETE"
	ClusterUpdate       = "CLUSTER_UPDATE"
	ClusterAddNodes     = "CLUSTER_ADD_NODES"
	ClusterDelNodes     = "CLUSTER_DEL_NODES"
	ClusterScaleUp      = "CLUSTER_SCALE_UP"
	ClusterScaleDown    = "CLUSTER_SCALE_DOWN"
	ClusterAttachPolicy = "CLUSTER_ATTACH_POLICY"
	ClusterDetachPolicy = "CLUSTER_DETACH_POLICY"
)

// All returns the complete action vocabulary
func All() []string {
	return []string{
		ClusterCreate,
		ClusterDelete,
		ClusterUpdate,
		ClusterAddNodes,
		ClusterDelNodes,
		ClusterScaleUp,
		ClusterScaleDown,
		ClusterAttachPolicy,
		ClusterDetachPolicy,
	}
}

// Sentinel errors returned by action operations.
var (
	// ErrUnknown is returned for an action name outside the vocabulary or
	// disabled in the catalog.
	ErrUnknown = errors.New("action: unknown action")

	// ErrRejected is returned when the action engine refuses a submission,
	// e.g. target cluster busy or action unknown at submission time.
	ErrRejected = errors.New("action: submission rejected")

	// ErrUnavailable is returned when the action engine cannot be reached.
	ErrUnavailable = errors.New("action: engine unavailable")
)
