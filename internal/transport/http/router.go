// Package httptransport assembles the HTTP surface: health check, metrics
// endpoint, and the subscription routes.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bulletin/internal/platform/middleware"
	subscriptionhandler "bulletin/internal/subscription/handler"
)

// NewRouter wires all public endpoints behind the shared middleware chain.
func NewRouter(subscriptions *subscriptionhandler.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))

	r.Get("/health", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	subscriptions.Register(r)

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
