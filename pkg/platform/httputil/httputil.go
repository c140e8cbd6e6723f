// Package httputil is the single boundary between domain errors and HTTP
// responses. Every handler failure funnels through WriteError so clients always
// see the same envelope and operators always get the full cause chain logged.
package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "bulletin/pkg/domain-errors"
	"bulletin/pkg/requestcontext"
)

type errorBody struct {
	Error errorType `json:"error"`
}

type errorType struct {
	Type string `json:"type"`
}

// WriteError logs the failure chain server-side and writes the client envelope
// {"error":{"type":"<CODE>"}} with the status mapped from the error's code.
// Errors without a code degrade to SERVICE_ERROR so internals never leak.
func WriteError(ctx context.Context, w http.ResponseWriter, logger *slog.Logger, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)

	if logger != nil {
		logFn := logger.ErrorContext
		if status < http.StatusInternalServerError {
			logFn = logger.WarnContext
		}
		logFn(ctx, "request failed",
			"code", string(code),
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: errorType{Type: dErrors.ResponseType(code)}})
}
