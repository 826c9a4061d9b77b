package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/blkart/senlin/action"
	"github.com/blkart/senlin/cluster"
	"github.com/blkart/senlin/dispatch"
	"github.com/blkart/senlin/receiver"
	"github.com/blkart/senlin/trust"
)

/* HTTP layer DTOs for the receiver API
 * Separate from domain entities to avoid leaking internal structure
 */

// receiverRequest represents the create-receiver payload
type receiverRequest struct {
	Name      string            `json:"name"`
	ClusterID string            `json:"cluster_id"`
	Type      string            `json:"type"`
	Action    string            `json:"action"`
	Actor     string            `json:"actor,omitempty"`
	Params    map[string]string `json:"params,omitempty"`
}

// receiverResponse represents a receiver in the API
type receiverResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Type      string               `json:"type"`
	ClusterID string               `json:"cluster_id"`
	Action    string               `json:"action"`
	Actor     string               `json:"actor,omitempty"`
	Params    map[string]string    `json:"params"`
	Channel   receiver.ChannelInfo `json:"channel"`
	Domain    string               `json:"domain"`
	Project   string               `json:"project"`
	User      string               `json:"user"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// receiverListResponse wraps a page of receivers with its next marker
type receiverListResponse struct {
	Receivers []receiverResponse `json:"receivers"`
	Next      string             `json:"next_marker,omitempty"`
}

// triggerRequest represents the trigger payload (all fields optional)
type triggerRequest struct {
	Params map[string]string `json:"params,omitempty"`
}

// triggerResponse represents the async handle returned by a trigger call
type triggerResponse struct {
	ActionID string `json:"action_id"`
	Status   string `json:"status,omitempty"`
}

func toResponse(rec receiver.Receiver) receiverResponse {
	params := rec.Params
	if params == nil {
		params = map[string]string{}
	}
	return receiverResponse{
		ID:        rec.ID,
		Name:      rec.Name,
		Type:      rec.Type.String(),
		ClusterID: rec.ClusterID,
		Action:    rec.Action,
		Actor:     rec.Actor,
		Params:    params,
		Channel:   rec.Channel,
		Domain:    rec.Domain,
		Project:   rec.Project,
		User:      rec.User,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

// postReceiver handles POST /v1/receivers
func postReceiver(receiverService receiver.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requester, ok := identityFrom(r.Context())
		if !ok {
			writeErrorMessage(w, r, http.StatusUnauthorized, "authentication required")
			return
		}

		var req receiverRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorMessage(w, r, http.StatusBadRequest, "malformed request body")
			return
		}
		if req.Name == "" || req.ClusterID == "" {
			writeErrorMessage(w, r, http.StatusBadRequest, "name and cluster_id are required")
			return
		}

		rec, err := receiverService.Create(r.Context(), receiver.CreateInput{
			Name:      req.Name,
			Type:      req.Type,
			ClusterID: req.ClusterID,
			Action:    req.Action,
			Actor:     req.Actor,
			Params:    req.Params,
		}, requester)
		if err != nil {
			writeError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(toResponse(rec)); err != nil {
			writeError(w, r, err)
			return
		}
	})
}

// getReceivers handles GET /v1/receivers
func getReceivers(receiverService receiver.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requester, ok := identityFrom(r.Context())
		if !ok {
			writeErrorMessage(w, r, http.StatusUnauthorized, "authentication required")
			return
		}

		opts, err := parseListQuery(r)
		if err != nil {
			writeErrorMessage(w, r, http.StatusBadRequest, err.Error())
			return
		}

		recs, next, err := receiverService.List(r.Context(), opts, requester)
		if err != nil {
			writeError(w, r, err)
			return
		}

		resp := receiverListResponse{
			Receivers: make([]receiverResponse, 0, len(recs)),
			Next:      next,
		}
		for _, rec := range recs {
			resp.Receivers = append(resp.Receivers, toResponse(rec))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			writeError(w, r, err)
			return
		}
	})
}

// getReceiver handles GET /v1/receivers/{receiver_id}
func getReceiver(receiverService receiver.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requester, ok := identityFrom(r.Context())
		if !ok {
			writeErrorMessage(w, r, http.StatusUnauthorized, "authentication required")
			return
		}

		rec, err := receiverService.Get(r.Context(), chi.URLParam(r, "receiver_id"), requester)
		if err != nil {
			writeError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(toResponse(rec)); err != nil {
			writeError(w, r, err)
			return
		}
	})
}

// deleteReceiver handles DELETE /v1/receivers/{receiver_id}
func deleteReceiver(receiverService receiver.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requester, ok := identityFrom(r.Context())
		if !ok {
			writeErrorMessage(w, r, http.StatusUnauthorized, "authentication required")
			return
		}

		if err := receiverService.Delete(r.Context(), chi.URLParam(r, "receiver_id"), requester); err != nil {
			writeError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// postTrigger handles POST /v1/receivers/{receiver_id}/trigger
// Anonymous by design: webhook receivers authenticate via their stored
// delegation, signal callers via the X-Auth-Token header.
func postTrigger(dispatcher *dispatch.Dispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req triggerRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeErrorMessage(w, r, http.StatusBadRequest, "malformed request body")
				return
			}
		}

		handle, err := dispatcher.Invoke(r.Context(), dispatch.Invocation{
			ReceiverID: chi.URLParam(r, "receiver_id"),
			Params:     req.Params,
			Token:      r.Header.Get(headerToken),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(triggerResponse{
			ActionID: handle.ActionID,
			Status:   handle.Status,
		}); err != nil {
			writeError(w, r, err)
			return
		}
	})
}

func parseListQuery(r *http.Request) (receiver.ListOptions, error) {
	q := r.URL.Query()
	opts := receiver.ListOptions{
		Name:          q.Get("name"),
		Type:          q.Get("type"),
		ClusterID:     q.Get("cluster_id"),
		Action:        q.Get("action"),
		Sort:          q.Get("sort"),
		Marker:        q.Get("marker"),
		GlobalProject: q.Get("global_project") == "true",
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return receiver.ListOptions{}, errors.New("limit must be a non-negative integer")
		}
		opts.Limit = limit
	}

	switch opts.Sort {
	case "", "name", "created_at":
	default:
		return receiver.ListOptions{}, errors.New("sort must be one of: name, created_at")
	}

	return opts, nil
}

// errorResponse is the JSON error body carried by every failure response
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError maps domain errors onto HTTP status codes
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, receiver.ErrInvalidType),
		errors.Is(err, receiver.ErrUnknownAction),
		errors.Is(err, receiver.ErrClusterNotFound),
		errors.Is(err, receiver.ErrDuplicateName),
		errors.Is(err, receiver.ErrInvalidMarker):
		status = http.StatusBadRequest
	case errors.Is(err, trust.ErrUnauthorized),
		errors.Is(err, trust.ErrCredentialInvalid):
		status = http.StatusUnauthorized
	case errors.Is(err, receiver.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, receiver.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, action.ErrRejected):
		status = http.StatusConflict
	case errors.Is(err, receiver.ErrUnavailable),
		errors.Is(err, cluster.ErrUnavailable),
		errors.Is(err, action.ErrUnavailable):
		status = http.StatusServiceUnavailable
	default:
		// Includes trust.ErrDelegationFailed: a create that cannot
		// delegate is an internal failure, not a client mistake
		status = http.StatusInternalServerError
	}
	writeErrorMessage(w, r, status, err.Error())
}

func writeErrorMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{
		Error:     msg,
		RequestID: requestIDFrom(r.Context()),
	})
}
