package action

import (
	"context"

	"github.com/blkart/senlin/trust"
)

// Request is a submission to the action engine: one action against one
// cluster, performed as the acting identity.
type Request struct {
	Action    string            `json:"action"`
	ClusterID string            `json:"cluster_id"`
	Params    map[string]string `json:"params"`
	Project   string            `json:"project"`
	User      string            `json:"user"`
}

// NewRequest builds a submission from its parts
func NewRequest(name, clusterID string, params map[string]string, acting trust.Identity) Request {
	return Request{
		Action:    name,
		ClusterID: clusterID,
		Params:    params,
		Project:   acting.Project,
		User:      acting.User,
	}
}

// Handle is the engine's asynchronous reference to a submitted action.
// Submission does not wait for the action to run; progress belongs to the
// engine's own state machine.
type Handle struct {
	ActionID string `json:"action_id"`
	Status   string `json:"status"`
}

// Engine submits action requests to the external action engine
type Engine interface {
	Submit(ctx context.Context, req Request) (Handle, error)
}
