// Package server exposes enumeration over HTTP.
//
// Routes:
//
//	GET /healthz                          liveness and build information
//	GET /classes                          class directory names
//	GET /classes/{class}/boards           board names of a class
//	GET /classes/{class}/layouts?limit=N  stitched layouts (JSON)
//
// Enumeration goes through a shared [pipeline.Runner], so cached results
// are served without searching again.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/paragon/pkg/buildinfo"
	"github.com/matzehuels/paragon/pkg/errors"
	"github.com/matzehuels/paragon/pkg/io"
	"github.com/matzehuels/paragon/pkg/observability"
	"github.com/matzehuels/paragon/pkg/pipeline"
)

// Config holds the server settings.
type Config struct {
	Addr       string
	ClassDir   string
	EdgeLength int
	Workers    int

	// MaxLimit caps the limit query parameter. Zero means no cap.
	MaxLimit int

	// Timeout bounds each enumeration. Zero means no deadline.
	Timeout time.Duration
}

// Server serves the enumeration API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
	server *http.Server
}

// New creates a server that enumerates through runner.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg, runner: runner, logger: logger}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.health)
	r.Route("/classes", func(r chi.Router) {
		r.Get("/", s.classes)
		r.Get("/{class}/boards", s.boards)
		r.Get("/{class}/layouts", s.layouts)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down server")
		return s.server.Shutdown(shutdownCtx)
	}
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", status, "duration", time.Since(start))
	})
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Build: buildinfo.Current()})
}

func (s *Server) classes(w http.ResponseWriter, r *http.Request) {
	names, err := io.ListClasses(s.cfg.ClassDir)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"classes": names})
}

// BoardsResponse is the body of GET /classes/{class}/boards.
type BoardsResponse struct {
	Class      string   `json:"class"`
	EdgeLength int      `json:"edge_length"`
	Boards     []string `json:"boards"`
}

func (s *Server) boards(w http.ResponseWriter, r *http.Request) {
	opts := s.options(chi.URLParam(r, "class"))
	boards, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := BoardsResponse{Class: opts.Class, EdgeLength: opts.EdgeLength}
	for name := range boards {
		resp.Boards = append(resp.Boards, name)
	}
	slices.Sort(resp.Boards)
	writeJSON(w, http.StatusOK, resp)
}

// LayoutsResponse is the body of GET /classes/{class}/layouts.
type LayoutsResponse struct {
	Class     string     `json:"class"`
	Count     int        `json:"count"`
	Cached    bool       `json:"cached"`
	Truncated bool       `json:"truncated"`
	TimedOut  bool       `json:"timed_out"`
	Layouts   [][]string `json:"layouts"`
}

func (s *Server) layouts(w http.ResponseWriter, r *http.Request) {
	opts := s.options(chi.URLParam(r, "class"))

	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer, got %q", v))
			return
		}
		opts.Limit = n
	}
	if s.cfg.MaxLimit > 0 && (opts.Limit == 0 || opts.Limit > s.cfg.MaxLimit) {
		opts.Limit = s.cfg.MaxLimit
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil && (result == nil || !errors.Is(err, errors.ErrCodeStoreFailed)) {
		s.writeError(w, err)
		return
	}
	if err != nil {
		s.logger.Warn("layouts not stored", "class", opts.Class, "error", err)
	}

	resp := LayoutsResponse{
		Class:     result.Class,
		Count:     len(result.Layouts),
		Cached:    result.CacheHit,
		Truncated: result.Truncated,
		TimedOut:  result.TimedOut,
		Layouts:   make([][]string, len(result.Layouts)),
	}
	for i, l := range result.Layouts {
		resp.Layouts[i] = []string(l)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) options(class string) pipeline.Options {
	return pipeline.Options{
		ClassDir:   s.cfg.ClassDir,
		Class:      class,
		EdgeLength: s.cfg.EdgeLength,
		Workers:    s.cfg.Workers,
		Timeout:    s.cfg.Timeout,
		Logger:     s.logger,
	}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, ErrorResponse{Code: string(code), Error: errors.UserMessage(err)})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPath, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidShape:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
