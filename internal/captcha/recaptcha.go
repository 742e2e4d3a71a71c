// Package captcha gates mutating endpoints behind a bot-score check.
// The client sends its reCAPTCHA token in the X-Recaptcha-Token header; the
// verifier asks Google to score it and passes only score > 0.5.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sakif/tempshare/internal/apperror"
)

// TokenHeader carries the client's reCAPTCHA token.
const TokenHeader = "X-Recaptcha-Token"

const (
	defaultEndpoint = "https://www.google.com/recaptcha/api/siteverify"
	scoreThreshold  = 0.5
	verifyTimeout   = 50 * time.Second
)

// Verifier reports whether a client-supplied token belongs to a human.
type Verifier interface {
	Verify(ctx context.Context, token string) error
}

// Google verifies tokens against the reCAPTCHA siteverify endpoint.
type Google struct {
	secret   string
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// Option configures a Google verifier.
type Option func(*Google)

// WithEndpoint overrides the siteverify URL. Used by tests.
func WithEndpoint(endpoint string) Option {
	return func(g *Google) { g.endpoint = endpoint }
}

// NewGoogle creates a verifier. An empty secret means every check fails,
// mirroring the behavior of a misconfigured deployment rather than silently
// letting bots through.
func NewGoogle(secret string, logger *slog.Logger, opts ...Option) *Google {
	g := &Google{
		secret:   secret,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: verifyTimeout},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify scores the token. Any failure, missing token, transport error,
// rejection, or low score, maps to ErrForbidden; the check fails closed.
func (g *Google) Verify(ctx context.Context, token string) error {
	if token == "" || g.secret == "" {
		g.logger.Warn("captcha check failed: token or secret key is missing")
		return apperror.Forbidden("recaptcha verification failed")
	}

	form := url.Values{
		"secret":   {g.secret},
		"response": {token},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("captcha: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error("captcha request failed", slog.String("error", err.Error()))
		return apperror.Forbidden("recaptcha verification failed")
	}
	defer resp.Body.Close()

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		g.logger.Error("captcha response decode failed", slog.String("error", err.Error()))
		return apperror.Forbidden("recaptcha verification failed")
	}

	if !result.Success || result.Score <= scoreThreshold {
		g.logger.Warn("captcha verification failed",
			slog.Bool("success", result.Success),
			slog.Float64("score", result.Score),
		)
		return apperror.Forbidden("recaptcha verification failed")
	}

	return nil
}

// RequireHuman is a middleware enforcing the bot check on a route.
func RequireHuman(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := verifier.Verify(r.Context(), r.Header.Get(TokenHeader)); err != nil {
				// Every verifier failure fails closed as forbidden.
				apperror.WriteError(w, apperror.Forbidden("recaptcha verification failed"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
