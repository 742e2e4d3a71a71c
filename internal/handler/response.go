package handler

import (
	"net/http"

	"github.com/sakif/tempshare/internal/apperror"
)

// ErrorResponse is the standard error shape returned by every endpoint.
// The definition lives in apperror so middlewares share it.
type ErrorResponse = apperror.ErrorResponse

func writeJSON(w http.ResponseWriter, status int, data any) {
	apperror.WriteJSON(w, status, data)
}

func writeError(w http.ResponseWriter, err error) {
	apperror.WriteError(w, err)
}
