package receiver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/blkart/senlin/action"
	"github.com/blkart/senlin/cluster"
	"github.com/blkart/senlin/trust"
)

/* Service is the receiver lifecycle manager
 * Create and Delete are multi-step transactions across the trust delegator
 * and the store: no orphaned trust survives a partial failure, and a
 * revocation error never blocks a delete
 */

// CreateInput carries the caller-supplied fields of a new receiver
type CreateInput struct {
	Name      string
	Type      string
	ClusterID string
	Action    string
	Actor     string
	Params    map[string]string
}

// ListOptions carries the query surface of a List call
type ListOptions struct {
	Name      string
	Type      string
	ClusterID string
	Action    string
	Sort      string
	Marker    string
	Limit     int
	// GlobalProject requests cross-project visibility; operator scope only.
	GlobalProject bool
}

// UseCase defines the business operations for receiver management
type UseCase interface {
	Create(ctx context.Context, in CreateInput, requester trust.Identity) (Receiver, error)
	Get(ctx context.Context, id string, requester trust.Identity) (Receiver, error)
	List(ctx context.Context, opts ListOptions, requester trust.Identity) ([]Receiver, string, error)
	Delete(ctx context.Context, id string, requester trust.Identity) error
}

type Service struct {
	Repo     Repository
	Trusts   trust.Delegator
	Clusters cluster.Registry
	Actions  *action.Catalog
	Channels ChannelAllocator
	logger   *slog.Logger
}

// NewService creates a new receiver service with dependency injection
func NewService(repo Repository, trusts trust.Delegator, clusters cluster.Registry, actions *action.Catalog, channels ChannelAllocator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Repo:     repo,
		Trusts:   trusts,
		Clusters: clusters,
		Actions:  actions,
		Channels: channels,
		logger:   logger,
	}
}

// Create validates the input, issues a delegated trust for webhook
// receivers, and persists the record. A store failure after a successful
// delegation revokes the just-issued trust before returning.
func (s *Service) Create(ctx context.Context, in CreateInput, requester trust.Identity) (Receiver, error) {
	t, err := ParseType(in.Type)
	if err != nil {
		return Receiver{}, err
	}

	if !s.Actions.Known(in.Action) {
		return Receiver{}, fmt.Errorf("%w: %q", ErrUnknownAction, in.Action)
	}

	if _, err := s.Clusters.Get(ctx, in.ClusterID, requester); err != nil {
		if errors.Is(err, cluster.ErrNotFound) {
			return Receiver{}, fmt.Errorf("%w: %s", ErrClusterNotFound, in.ClusterID)
		}
		return Receiver{}, fmt.Errorf("resolving cluster: %w", err)
	}

	id := uuid.New().String()

	actor := in.Actor
	if t == Webhook {
		scope := trust.Scope{ClusterID: in.ClusterID, Action: in.Action}
		handle, err := s.Trusts.Issue(ctx, requester, scope)
		if err != nil {
			return Receiver{}, fmt.Errorf("issuing trust: %w", err)
		}
		actor = handle.ID
	}

	now := time.Now().UTC()
	rec := Receiver{
		ID:        id,
		Name:      in.Name,
		Type:      t,
		ClusterID: in.ClusterID,
		Action:    in.Action,
		Actor:     actor,
		Params:    in.Params,
		Project:   requester.Project,
		Domain:    requester.Domain,
		User:      requester.User,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repo.Create(ctx, rec); err != nil {
		// Compensating transaction: the trust must not outlive the failed record
		if t == Webhook {
			if revokeErr := s.Trusts.Revoke(ctx, actor); revokeErr != nil {
				s.logger.Error("revoking trust after failed create",
					"receiver", id, "trust", actor, "error", revokeErr)
			}
		}
		return Receiver{}, fmt.Errorf("storing receiver: %w", err)
	}

	rec.Channel = s.Channels.Channel(rec.ID, rec.Type)
	return rec, nil
}

// Get returns a receiver visible to the requester, with its channel derived
func (s *Service) Get(ctx context.Context, id string, requester trust.Identity) (Receiver, error) {
	rec, err := s.visible(ctx, id, requester)
	if err != nil {
		return Receiver{}, err
	}
	rec.Channel = s.Channels.Channel(rec.ID, rec.Type)
	return rec, nil
}

// List returns receivers matching the options plus the marker for the next
// page, empty when the listing is exhausted
func (s *Service) List(ctx context.Context, opts ListOptions, requester trust.Identity) ([]Receiver, string, error) {
	if opts.GlobalProject && !requester.IsOperator() {
		return nil, "", fmt.Errorf("%w: global listing requires operator scope", ErrForbidden)
	}

	filter := Filter{
		Name:      opts.Name,
		ClusterID: opts.ClusterID,
		Action:    opts.Action,
		Sort:      opts.Sort,
		Limit:     opts.Limit,
	}
	if !opts.GlobalProject {
		filter.Project = requester.Project
	}
	if opts.Type != "" {
		t, err := ParseType(opts.Type)
		if err != nil {
			return nil, "", err
		}
		filter.Type = t
	}

	marker, err := DecodeMarker(opts.Marker)
	if err != nil {
		return nil, "", err
	}
	filter.Marker = marker

	recs, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, "", fmt.Errorf("listing receivers: %w", err)
	}

	for i := range recs {
		recs[i].Channel = s.Channels.Channel(recs[i].ID, recs[i].Type)
	}

	next := ""
	if opts.Limit > 0 && len(recs) == opts.Limit {
		next = EncodeMarker(recs[len(recs)-1].ID)
	}
	return recs, next, nil
}

// Delete revokes the receiver's delegated trust, tolerating revocation
// failures, then removes the store record. Retrying a partially failed
// delete completes without a re-revocation error.
func (s *Service) Delete(ctx context.Context, id string, requester trust.Identity) error {
	rec, err := s.visible(ctx, id, requester)
	if err != nil {
		return err
	}

	if rec.Actor != "" {
		switch err := s.Trusts.Revoke(ctx, rec.Actor); {
		case err == nil:
		case errors.Is(err, trust.ErrAlreadyRevoked):
			s.logger.Debug("trust already revoked", "receiver", id, "trust", rec.Actor)
		default:
			// Revocation never blocks deletion; stale trusts are reaped out of band
			s.logger.Warn("revoking trust during delete", "receiver", id, "trust", rec.Actor, "error", err)
		}
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting receiver: %w", err)
	}
	return nil
}

/* visible fetches a receiver and applies project scoping
 * A receiver in another project is reported as missing, not forbidden, so
 * listings and lookups leak nothing across projects
 */
func (s *Service) visible(ctx context.Context, id string, requester trust.Identity) (Receiver, error) {
	rec, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Receiver{}, err
	}
	if rec.Project != requester.Project && !requester.IsOperator() {
		return Receiver{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, nil
}
