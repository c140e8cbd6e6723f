// Package handler is the thin HTTP layer for the subscription endpoints. It
// delegates to the service and leaves response shaping to the shared error
// boundary.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "bulletin/pkg/domain-errors"
	"bulletin/pkg/platform/httputil"
)

// Service defines the subscription operations the handler needs.
type Service interface {
	Subscribe(ctx context.Context, rawEmail, rawName string) error
	Confirm(ctx context.Context, token string) error
}

// Handler handles the subscription endpoints.
type Handler struct {
	logger        *slog.Logger
	subscriptions Service
}

// New creates a new subscription Handler.
func New(subscriptions Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:        logger,
		subscriptions: subscriptions,
	}
}

// Register registers the subscription routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/subscriptions", h.handleSubscribe)
	r.Get("/subscriptions/confirm", h.handleConfirm)
}

// handleSubscribe accepts the urlencoded subscription form and responds with
// an empty 200 on success.
func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		httputil.WriteError(ctx, w, h.logger, dErrors.New(dErrors.CodeValidation, "invalid form body"))
		return
	}

	email := r.PostForm.Get("email")
	name := r.PostForm.Get("name")

	if err := h.subscriptions.Subscribe(ctx, email, name); err != nil {
		httputil.WriteError(ctx, w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleConfirm resolves the confirmation token from the query string.
func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := r.URL.Query().Get("subscription_token")
	if err := h.subscriptions.Confirm(ctx, token); err != nil {
		httputil.WriteError(ctx, w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
