// Package http exposes schema validation over a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/envchecker"
	"github.com/aretw0/envchecker/internal/logging"
	"github.com/aretw0/envchecker/internal/metrics"
	"github.com/aretw0/envchecker/pkg/env"
	"github.com/aretw0/envchecker/pkg/schema"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes bounds POST /v1/validate payloads.
const maxBodyBytes = 1 << 20

// Server holds the dependencies of the API handlers.
type Server struct {
	// Config is the schema checked by GET /v1/check. Nil disables the endpoint.
	Config   *schema.Config
	Env      func() env.Source
	Registry *schema.Registry
	Metrics  *metrics.Metrics
	Logger   *slog.Logger

	gatherer prometheus.Gatherer
}

// Option configures the Server.
type Option func(*Server)

// WithConfig sets the schema served by GET /v1/check.
func WithConfig(cfg *schema.Config) Option {
	return func(s *Server) {
		s.Config = cfg
	}
}

// WithEnv sets the environment provider for GET /v1/check. Defaults to the process environment.
func WithEnv(fn func() env.Source) Option {
	return func(s *Server) {
		s.Env = fn
	}
}

// WithRegistry sets the predicate registry.
func WithRegistry(reg *schema.Registry) Option {
	return func(s *Server) {
		s.Registry = reg
	}
}

// WithPrometheus registers the collectors on reg and serves it on /metrics.
func WithPrometheus(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.Metrics = metrics.New(reg)
		s.gatherer = reg
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewServer creates a Server with defaults for every unset dependency.
func NewServer(opts ...Option) *Server {
	s := &Server{}
	for _, opt := range opts {
		opt(s)
	}
	if s.Env == nil {
		s.Env = func() env.Source { return env.FromOS() }
	}
	if s.Registry == nil {
		s.Registry = schema.DefaultRegistry()
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}
	if s.Metrics == nil {
		WithPrometheus(prometheus.NewRegistry())(s)
	}
	return s
}

// NewHandler creates the HTTP handler for the API.
func NewHandler(opts ...Option) http.Handler {
	return NewServer(opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate", s.PostValidate)
		r.Get("/check", s.GetCheck)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ValidateRequest is the body of POST /v1/validate.
type ValidateRequest struct {
	Schema json.RawMessage   `json:"schema"`
	Env    map[string]string `json:"env"`
}

// Response is the body of every validation response.
type Response struct {
	Success      bool           `json:"success"`
	ValidatedEnv map[string]any `json:"validatedEnv,omitempty"`
	Warnings     []string       `json:"warnings,omitempty"`
	Errors       []string       `json:"errors,omitempty"`
	Error        string         `json:"error,omitempty"`
	RunID        string         `json:"run_id"`
}

// PostValidate handles POST /v1/validate: the caller supplies both schema and environment.
func (s *Server) PostValidate(w http.ResponseWriter, r *http.Request) {
	runID := uuid.NewString()
	logger := s.Logger.With("run_id", runID)

	var body ValidateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		logger.Warn("Validate: Invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, Response{Error: "Invalid request body", RunID: runID})
		return
	}

	cfg, err := schema.Parse(body.Schema)
	if err != nil {
		logger.Warn("Validate: Invalid schema", "error", err)
		s.Metrics.Observe(schema.ErrInvalidConfig, 0)
		writeJSON(w, http.StatusBadRequest, Response{Error: err.Error(), RunID: runID})
		return
	}

	s.respond(w, logger, runID, cfg, env.Map(body.Env))
}

// GetCheck handles GET /v1/check against the server's own schema and environment.
func (s *Server) GetCheck(w http.ResponseWriter, r *http.Request) {
	runID := uuid.NewString()
	logger := s.Logger.With("run_id", runID)

	if s.Config == nil {
		writeJSON(w, http.StatusNotFound, Response{Error: "no schema configured", RunID: runID})
		return
	}

	s.respond(w, logger, runID, s.Config, s.Env())
}

func (s *Server) respond(w http.ResponseWriter, logger *slog.Logger, runID string, cfg *schema.Config, src env.Source) {
	if err := cfg.Resolve(s.Registry); err != nil {
		logger.Warn("Validate: Unresolved validators", "error", err)
		s.Metrics.Observe(err, 0)
		writeJSON(w, http.StatusBadRequest, Response{Error: err.Error(), Warnings: cfg.Warnings, RunID: runID})
		return
	}

	start := time.Now()
	res, err := schema.Validate(cfg, src, schema.WithRegistry(s.Registry))
	elapsed := time.Since(start)
	s.Metrics.Observe(err, elapsed)

	var verr *schema.ValidationError
	switch {
	case err == nil:
		logger.Info("Validation succeeded", "variables", len(res.Values), "elapsed", elapsed)
		writeJSON(w, http.StatusOK, Response{
			Success:      true,
			ValidatedEnv: res.Redact(cfg).Values,
			Warnings:     res.Warnings,
			RunID:        runID,
		})
	case errors.As(err, &verr):
		logger.Info("Validation failed", "failures", len(verr.Fields), "elapsed", elapsed)
		writeJSON(w, http.StatusUnprocessableEntity, Response{
			Errors:   verr.Errors(),
			Error:    verr.Primary(),
			Warnings: cfg.Warnings,
			RunID:    runID,
		})
	case errors.Is(err, schema.ErrInvalidConfig):
		writeJSON(w, http.StatusBadRequest, Response{Error: err.Error(), RunID: runID})
	default:
		logger.Error("Validation error", "error", err)
		writeJSON(w, http.StatusInternalServerError, Response{Error: err.Error(), RunID: runID})
	}
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "envchecker-http",
		"version": strings.TrimSpace(envchecker.Version),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
