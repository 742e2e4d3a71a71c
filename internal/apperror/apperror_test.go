package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("file"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "Expired wraps ErrExpired",
			err:       Expired("file"),
			target:    ErrExpired,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("expiryTime", "invalid expiry time"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Forbidden wraps ErrForbidden",
			err:       Forbidden("captcha verification failed"),
			target:    ErrForbidden,
			wantMatch: true,
		},
		{
			name:      "Unauthorized wraps ErrUnauthorized",
			err:       Unauthorized("invalid token"),
			target:    ErrUnauthorized,
			wantMatch: true,
		},
		{
			name:      "Unavailable wraps ErrUnavailable",
			err:       Unavailable("failed to connect to redis"),
			target:    ErrUnavailable,
			wantMatch: true,
		},
		{
			name:      "TooLarge wraps ErrTooLarge",
			err:       TooLarge("code", "code exceeds the size limit"),
			target:    ErrTooLarge,
			wantMatch: true,
		},
		{
			name:      "Expired does NOT match ErrNotFound",
			err:       Expired("file"),
			target:    ErrNotFound,
			wantMatch: false,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("file"),
			target:    ErrValidation,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorsIs_ThroughWrapping(t *testing.T) {
	// Service layers wrap with fmt.Errorf("...: %w", err); the sentinel must
	// stay reachable through the chain.
	wrapped := fmt.Errorf("fetching file: %w", NotFound("file"))

	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("errors.Is should find ErrNotFound through fmt.Errorf wrapping")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As should extract *AppError through fmt.Errorf wrapping")
	}
	if appErr.Message != "file not found" {
		t.Errorf("Message = %q, want %q", appErr.Message, "file not found")
	}
}

func TestValidationFailed_CarriesField(t *testing.T) {
	err := ValidationFailed("title", "title is required")
	if err.Field != "title" {
		t.Errorf("Field = %q, want %q", err.Field, "title")
	}
	if err.Error() != "title is required" {
		t.Errorf("Error() = %q, want %q", err.Error(), "title is required")
	}
}
