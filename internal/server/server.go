// Package server wires the router, middleware, and handlers together and
// owns the HTTP server lifecycle. This is the composition root: every
// dependency chain (store → service → handler, verifier → middleware) is
// assembled here and nowhere else.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/tempshare/internal/auth"
	"github.com/sakif/tempshare/internal/captcha"
	"github.com/sakif/tempshare/internal/config"
	"github.com/sakif/tempshare/internal/genai"
	"github.com/sakif/tempshare/internal/handler"
	"github.com/sakif/tempshare/internal/middleware"
	"github.com/sakif/tempshare/internal/repository/redisstore"
	"github.com/sakif/tempshare/internal/service"
)

// Server holds the router and the resources it must release on shutdown.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	store  *redisstore.Store
}

// New assembles the server from configuration.
//
// The Gemini generator is optional: without an API key the server still
// starts and the generation endpoints answer 503, mirroring how the snippet
// store degrades when its backend is away.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	store := redisstore.New(redisstore.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		TLS:      cfg.RedisTLS,
	})

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	var generator genai.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := genai.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("creating gemini client: %w", err)
		}
		generator = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set, generation endpoints will answer 503")
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}
	s.setupRoutes(tokens, captcha.NewGoogle(cfg.RecaptchaSecret, logger), generator)
	return s, nil
}

func (s *Server) setupRoutes(tokens *auth.TokenService, verifier captcha.Verifier, generator genai.Generator) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", handler.FileIDHeader, captcha.TokenHeader},
	}))
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics())

	snippetSvc := service.NewSnippetService(s.store, s.config.BaseURL, s.logger)
	snippets := handler.NewSnippetHandler(snippetSvc, s.logger)
	generation := handler.NewGenAIHandler(generator, s.logger)

	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	limiter := middleware.NewRateLimiter(s.config.RateLimitRPS, s.config.RateLimitBurst)
	s.router.Group(func(r chi.Router) {
		r.Use(limiter.Handler)

		// The fetch route is guarded by the X-File-ID header check inside the
		// handler, not by the gateway: share links must work without a login.
		r.Get("/file/{shareID}", snippets.HandleFetch)

		// Simulated execution requires only the bot check, as the original
		// surface did.
		r.Group(func(r chi.Router) {
			r.Use(captcha.RequireHuman(verifier))
			r.Post("/get-output", generation.HandleOutput)
		})

		// Mutating and generation endpoints pass the full verification
		// gateway: signed token first, then bot score.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Use(captcha.RequireHuman(verifier))

			r.Post("/temp-file-upload", snippets.HandleUpload)
			r.Delete("/file/{shareID}", snippets.HandleDelete)
			r.Post("/generate-code", generation.HandleGenerate)
			r.Post("/refactor-code", generation.HandleRefactor)
			r.Post("/htmlcssjsgenerate-code", generation.HandleWebGenerate)
			r.Post("/htmlcssjsrefactor-code", generation.HandleWebRefactor)
		})
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"service":"tempshare","status":"ok"}`))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("health check failed", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"degraded","store":"unreachable"}`))
		return
	}
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to 30 seconds and closes the store.
func (s *Server) Start() error {
	defer s.store.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // generation responses stream for a while
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("baseURL", s.config.BaseURL),
			slog.String("redis", s.config.RedisAddr),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
