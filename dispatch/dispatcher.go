package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/blkart/senlin/action"
	"github.com/blkart/senlin/receiver"
	"github.com/blkart/senlin/trust"
)

/* Dispatcher is the runtime entry point for trigger invocations
 * Each call is independent: a read-only receiver lookup, per-type
 * authentication, a parameter merge and a submit-and-return to the action
 * engine. Serializing actions against the target cluster is the engine's
 * job; the dispatcher never queues or locks on the caller's behalf.
 */

// Invocation is one trigger call as received from the outside.
type Invocation struct {
	ReceiverID string
	Params     map[string]string
	// Token is the caller's own credential. Empty on the anonymous
	// webhook path, required on the signal path.
	Token string
}

// Recorder counts dispatch outcomes for the metrics surface.
// Implementations must be safe for concurrent use.
type Recorder interface {
	RecordDispatch(ctx context.Context, outcome string)
}

// Dispatch outcomes as recorded in metrics.
const (
	OutcomeSubmitted    = "submitted"
	OutcomeUnauthorized = "unauthorized"
	OutcomeRejected     = "rejected"
)

type Dispatcher struct {
	Receivers receiver.Reader
	Trusts    trust.Delegator
	Engine    action.Engine
	recorder  Recorder
	logger    *slog.Logger
}

// NewDispatcher creates a trigger dispatcher. The recorder may be nil.
func NewDispatcher(receivers receiver.Reader, trusts trust.Delegator, engine action.Engine, recorder Recorder, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		Receivers: receivers,
		Trusts:    trusts,
		Engine:    engine,
		recorder:  recorder,
		logger:    logger,
	}
}

// Invoke authenticates the invocation, merges its parameters over the
// receiver's stored defaults and submits the action. The returned handle is
// the engine's async reference; dispatch never waits for completion.
func (d *Dispatcher) Invoke(ctx context.Context, inv Invocation) (action.Handle, error) {
	rec, err := d.Receivers.Get(ctx, inv.ReceiverID)
	if err != nil {
		return action.Handle{}, err
	}

	acting, err := d.authenticatorFor(rec).authenticate(ctx, inv)
	if err != nil {
		d.record(ctx, OutcomeUnauthorized)
		return action.Handle{}, err
	}

	effective := mergeParams(rec.Params, inv.Params)

	handle, err := d.Engine.Submit(ctx, action.NewRequest(rec.Action, rec.ClusterID, effective, acting))
	if err != nil {
		d.record(ctx, OutcomeRejected)
		return action.Handle{}, fmt.Errorf("submitting action: %w", err)
	}

	d.record(ctx, OutcomeSubmitted)
	d.logger.Info("action submitted",
		"receiver", rec.ID, "action", rec.Action, "cluster", rec.ClusterID, "handle", handle.ActionID)
	return handle, nil
}

func (d *Dispatcher) record(ctx context.Context, outcome string) {
	if d.recorder != nil {
		d.recorder.RecordDispatch(ctx, outcome)
	}
}

/* Per-type authentication strategies
 * Both variants satisfy the same contract and return the acting identity;
 * the webhook path exercises the stored delegation, the signal path
 * validates the caller's own credential directly
 */
type authenticator interface {
	authenticate(ctx context.Context, inv Invocation) (trust.Identity, error)
}

func (d *Dispatcher) authenticatorFor(rec receiver.Receiver) authenticator {
	if rec.Type == receiver.Signal {
		return signalAuth{trusts: d.Trusts, project: rec.Project}
	}
	return webhookAuth{trusts: d.Trusts, handle: rec.Actor}
}

// webhookAuth impersonates the receiver's delegated trust. The invocation
// itself carries no caller identity.
type webhookAuth struct {
	trusts trust.Delegator
	handle string
}

func (a webhookAuth) authenticate(ctx context.Context, _ Invocation) (trust.Identity, error) {
	acting, err := a.trusts.Impersonate(ctx, a.handle)
	if err != nil {
		return trust.Identity{}, fmt.Errorf("%w: impersonating trust: %v", trust.ErrUnauthorized, err)
	}
	return acting, nil
}

// signalAuth validates the caller's own token and requires it to belong to
// the receiver's owning project. No stored delegation is consulted.
type signalAuth struct {
	trusts  trust.Delegator
	project string
}

func (a signalAuth) authenticate(ctx context.Context, inv Invocation) (trust.Identity, error) {
	if inv.Token == "" {
		return trust.Identity{}, fmt.Errorf("%w: signal invocation requires a credential", trust.ErrUnauthorized)
	}
	acting, err := a.trusts.Verify(ctx, inv.Token)
	if err != nil {
		return trust.Identity{}, fmt.Errorf("verifying credential: %w", err)
	}
	if acting.Project != a.project && !acting.IsOperator() {
		return trust.Identity{}, fmt.Errorf("%w: credential project mismatch", trust.ErrUnauthorized)
	}
	return acting, nil
}

// mergeParams lays invocation parameters over stored defaults.
// Invocation values win per key; unspecified keys keep their defaults.
func mergeParams(defaults, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
