package endpoint

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
)

// NewApiHandler adapts an ApiHandler to the stdlib contract. It is the single
// place where request failures become HTTP responses: one structured log line
// per outcome, one Sentry event, one status code.
func NewApiHandler(fn ApiHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			slog.Error("API Error",
				"message", err.Message,
				"status", err.Status,
				"method", r.Method,
				"path", r.URL.Path,
			)

			captureApiError(r, err)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(err.Status)

			resp := ErrorResponse{
				Error:  err.Message,
				Status: err.Status,
				Data:   err.Data,
			}

			if result := json.NewEncoder(w).Encode(resp); result != nil {
				slog.Error("Could not encode error response", "error", result)
			}
		}
	}
}

func captureApiError(r *http.Request, apiErr *ApiError) {
	if apiErr == nil {
		return
	}

	errToCapture := error(apiErr)
	if apiErr.Err != nil {
		errToCapture = apiErr.Err
	}

	notify := func(hub *sentry.Hub) {
		hub.WithScope(func(scope *sentry.Scope) {
			NewScopeApiError(scope, r, apiErr).Enrich()

			scope.SetLevel(getSentryLevel(apiErr.Status))

			hub.CaptureException(errToCapture)
		})
	}

	if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
		notify(hub)
		return
	}

	notify(sentry.CurrentHub())
}

func getSentryLevel(status int) sentry.Level {
	// Expected client outcomes are recorded as info so they stay visible
	// without paging anyone.
	switch status {
	case http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusConflict:
		return sentry.LevelInfo
	default:
		return sentry.LevelError
	}
}
