package httputil_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dErrors "bulletin/pkg/domain-errors"
	"bulletin/pkg/platform/httputil"
)

func writeErr(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	httputil.WriteError(context.Background(), w, logger, err)
	return w
}

func decodeType(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body.Error.Type
}

func TestWriteError(t *testing.T) {
	t.Run("validation error maps to 400", func(t *testing.T) {
		w := writeErr(t, dErrors.New(dErrors.CodeValidation, "bad email"))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
		if got := decodeType(t, w); got != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %q", got)
		}
	})

	t.Run("authorization error maps to 401", func(t *testing.T) {
		w := writeErr(t, dErrors.New(dErrors.CodeUnauthorized, "unknown token"))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
		if got := decodeType(t, w); got != "AUTHORIZATION_ERROR" {
			t.Fatalf("expected AUTHORIZATION_ERROR, got %q", got)
		}
	})

	t.Run("database error maps to generic service error", func(t *testing.T) {
		w := writeErr(t, dErrors.Wrap(errors.New("pq: broken pipe"), dErrors.CodeDatabase, "insert subscriber"))
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
		if got := decodeType(t, w); got != "SERVICE_ERROR" {
			t.Fatalf("expected SERVICE_ERROR, got %q", got)
		}
	})

	t.Run("unclassified error degrades to service error without leaking detail", func(t *testing.T) {
		w := writeErr(t, errors.New("secret internal detail"))
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
		body := w.Body.String()
		if strings.Contains(body, "secret") {
			t.Fatalf("internal detail leaked to client: %s", body)
		}
		if got := decodeType(t, w); got != "SERVICE_ERROR" {
			t.Fatalf("expected SERVICE_ERROR, got %q", got)
		}
	})

	t.Run("nil logger is tolerated", func(t *testing.T) {
		w := httptest.NewRecorder()
		httputil.WriteError(context.Background(), w, nil, dErrors.New(dErrors.CodeConflict, "duplicate"))
		if w.Code != http.StatusConflict {
			t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
		}
	})
}
