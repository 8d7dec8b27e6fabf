package helper

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
)

type ResponseError struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func WriteSuccess(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusOK, data)
}

func WriteCreated(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusCreated, data)
}

func WriteError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		slog.Error("Unhandled error", "error", err)
		sentry.CaptureException(err)
		appErr = NewInternalServerError("")
	}

	if appErr.Code >= http.StatusInternalServerError && appErr.Err != nil {
		sentry.CaptureException(appErr.Err)
	}

	WriteJSON(w, appErr.Code, ResponseError{
		Error:   appErr.Message,
		Details: appErr.Details,
	})
}
