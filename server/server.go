// Package server exposes the Analyzer over HTTP.
//
// The analyze endpoint accepts POST with a JSON body and answers with the
// model's JSON object, or {"error": "..."} with a status derived from the
// error category. OPTIONS preflights are answered by the CORS middleware.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/spetersoncode/stylist"
	"github.com/spetersoncode/stylist/internal/metrics"
	"github.com/spetersoncode/stylist/model"
)

// Analyzer runs one styling analysis.
type Analyzer interface {
	Analyze(ctx context.Context, req stylist.AnalysisRequest) (*stylist.Analysis, error)
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the base logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// WithMetrics records request and usage metrics and serves them at /metrics.
func WithMetrics(m *metrics.Registry) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithProvider names the upstream provider, used in configuration hints.
func WithProvider(p stylist.Provider) Option {
	return func(s *Server) {
		s.provider = p
	}
}

// Server routes HTTP requests to the Analyzer.
type Server struct {
	analyzer Analyzer
	log      *slog.Logger
	metrics  *metrics.Registry
	provider stylist.Provider
}

// New creates a Server for analyzer.
func New(analyzer Analyzer, opts ...Option) *Server {
	s := &Server{
		analyzer: analyzer,
		log:      slog.Default(),
		provider: stylist.ProviderAnthropic,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	analyze := corsMiddleware(s.instrument(http.HandlerFunc(s.handleAnalyze)))

	mux := http.NewServeMux()
	mux.Handle("/api/analyze", analyze)
	mux.Handle("/", analyze)
	mux.HandleFunc("/health", healthHandler)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}

	return requestIDMiddleware(s.log, mux)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context())

	if r.Method != http.MethodPost {
		log.Warn("method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req stylist.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Warn("invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	log = log.With("style", req.Style, "season", req.Season, "language", req.Language)

	analysis, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		s.writeAnalyzeError(w, log, err)
		return
	}

	cost := costOf(analysis)
	log.Info("analysis complete",
		"model", analysis.Model,
		"input_tokens", analysis.Usage.InputTokens,
		"output_tokens", analysis.Usage.OutputTokens,
		"cost_usd", cost,
	)
	if s.metrics != nil {
		s.metrics.ObserveUsage(analysis.Model, analysis.Usage, cost)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(analysis.Result)
}

func (s *Server) writeAnalyzeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := stylist.HTTPStatus(err)

	switch {
	case stylist.IsUserInput(err):
		log.Warn("rejected request", "error", err)
	case stylist.IsConfig(err):
		log.Error("configuration error", "error", err, "hint", "set "+s.provider.APIKeyEnv())
	case stylist.IsUpstream(err):
		log.Error("upstream error", "status", stylist.StatusCodeOf(err), "error", err)
	case errors.Is(err, context.Canceled):
		log.Warn("request canceled", "error", err)
	default:
		log.Error("analysis failed", "error", err)
	}

	msg := err.Error()
	if msg == "" {
		msg = "Internal server error"
	}
	writeError(w, status, msg)
}

// costOf estimates the spend of a finished analysis. Unknown models cost 0.
func costOf(a *stylist.Analysis) float64 {
	m, ok := model.Lookup(a.Model)
	if !ok {
		return 0
	}
	return m.Cost(a.Usage)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// healthHandler returns a simple health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
