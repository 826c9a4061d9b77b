package chi

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/blkart/senlin/trust"
)

/* Identity propagation for the receiver API
 * The edge proxy authenticates callers and forwards their identity in
 * headers; this layer turns the headers into a trust.Identity and keeps it
 * in the request context. The trigger endpoint is exempt: webhook firings
 * are anonymous by design.
 */

type ctxKey int

const (
	identityKey ctxKey = iota
	requestIDKey
)

const (
	headerProject   = "X-Auth-Project"
	headerDomain    = "X-Auth-Domain"
	headerUser      = "X-Auth-User"
	headerRoles     = "X-Roles"
	headerToken     = "X-Auth-Token"
	headerRequestID = "X-Request-Id"
	headerVersion   = "X-API-Version"
)

// requireIdentity rejects requests that carry no authenticated identity
func requireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := trust.Identity{
			Project: r.Header.Get(headerProject),
			Domain:  r.Header.Get(headerDomain),
			User:    r.Header.Get(headerUser),
		}
		if roles := r.Header.Get(headerRoles); roles != "" {
			for _, role := range strings.Split(roles, ",") {
				id.Roles = append(id.Roles, strings.TrimSpace(role))
			}
		}
		if id.Project == "" || id.User == "" {
			writeErrorMessage(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
	})
}

// requestID stamps every response with a correlation identifier
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(headerRequestID)
		if rid == "" {
			rid = uuid.New().String()
		}
		w.Header().Set(headerRequestID, rid)
		ctx := context.WithValue(r.Context(), requestIDKey, rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// apiVersion rejects requests pinning an unsupported API version
func apiVersion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v := r.Header.Get(headerVersion); v != "" && v != "1.0" {
			writeErrorMessage(w, r, http.StatusBadRequest, "unsupported API version: "+v)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withIdentity(ctx context.Context, id trust.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func identityFrom(ctx context.Context) (trust.Identity, bool) {
	id, ok := ctx.Value(identityKey).(trust.Identity)
	return id, ok
}

func requestIDFrom(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey).(string)
	return rid
}
