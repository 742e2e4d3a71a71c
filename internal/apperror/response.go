package apperror

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// ErrorResponse is the error shape every endpoint and middleware returns.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON writes data as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// WriteError maps domain errors to HTTP statuses. Unknown errors become a
// generic 500 so internal details never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, ErrExpired):
			status = http.StatusGone
			errorType = "expired"
		case errors.Is(err, ErrForbidden):
			status = http.StatusForbidden
			errorType = "forbidden"
		case errors.Is(err, ErrUnauthorized):
			status = http.StatusUnauthorized
			errorType = "auth_error"
		case errors.Is(err, ErrUnavailable):
			status = http.StatusServiceUnavailable
			errorType = "backend_unavailable"
		case errors.Is(err, ErrTooLarge):
			status = http.StatusRequestEntityTooLarge
			errorType = "payload_too_large"
		}

		WriteJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "an unexpected error occurred",
	})
}
