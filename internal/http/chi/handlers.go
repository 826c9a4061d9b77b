package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"

	"github.com/blkart/senlin/dispatch"
	"github.com/blkart/senlin/receiver"
)

// Handlers sets up the receiver API routes
func Handlers(ctx context.Context, receiverService receiver.UseCase, dispatcher *dispatch.Dispatcher, metricsHandler http.Handler) *chi.Mux {
	logger := httplog.NewLogger("senlin-api", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(requestID)
	r.Use(apiVersion)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	// Receiver API routes
	r.Route("/v1", func(r chi.Router) {
		/* The trigger endpoint stays outside the identity middleware:
		 * webhook firings are anonymous POSTs authorized by the
		 * receiver's delegated trust, not by the caller
		 */
		r.Post("/receivers/{receiver_id}/trigger", postTrigger(dispatcher).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(requireIdentity)

			r.Get("/receivers", getReceivers(receiverService).ServeHTTP)
			r.Post("/receivers", postReceiver(receiverService).ServeHTTP)
			r.Get("/receivers/{receiver_id}", getReceiver(receiverService).ServeHTTP)
			r.Delete("/receivers/{receiver_id}", deleteReceiver(receiverService).ServeHTTP)
		})
	})

	return r
}
