// Package server exposes placement over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /v1/offsets?length=200&post_width=5&target_gap=18&refresh=true
//	POST /v1/offsets   {"length": 200, "post_width": 5, "target_gap": 18}
//
// post_width and target_gap fall back to the server's configured defaults
// when omitted. Every response carries an X-Request-Id header.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/railing/pkg/buildinfo"
	railerrors "github.com/matzehuels/railing/pkg/errors"
	"github.com/matzehuels/railing/pkg/pipeline"
	"github.com/matzehuels/railing/pkg/placement"
)

const shutdownTimeout = 5 * time.Second

// Server serves placement requests through a pipeline.Runner.
type Server struct {
	runner   *pipeline.Runner
	defaults placement.Config
	ttl      time.Duration
	logger   *log.Logger
	router   chi.Router
}

// New builds the router. defaults fill in omitted dimensions and ttl is the
// cache lifetime applied to computed layouts.
func New(runner *pipeline.Runner, defaults placement.Config, ttl time.Duration, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:   runner,
		defaults: defaults,
		ttl:      ttl,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(serverHeader)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/offsets", s.handleOffsetsQuery)
		r.Post("/offsets", s.handleOffsetsBody)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		s.logger.Info("server stopped")
		return nil
	}
}

// =============================================================================
// Handlers
// =============================================================================

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type offsetsRequest struct {
	Length    *float64 `json:"length"`
	PostWidth *float64 `json:"post_width,omitempty"`
	TargetGap *float64 `json:"target_gap,omitempty"`
	Refresh   bool     `json:"refresh,omitempty"`
}

type offsetsResponse struct {
	RequestID string           `json:"request_id"`
	Layout    placement.Layout `json:"layout"`
	CacheHit  bool             `json:"cache_hit"`
}

type errorResponse struct {
	RequestID string          `json:"request_id"`
	Code      railerrors.Code `json:"code"`
	Message   string          `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleOffsetsQuery(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.place(w, r, req)
}

func (s *Server) handleOffsetsBody(w http.ResponseWriter, r *http.Request) {
	var req offsetsRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, railerrors.Wrap(railerrors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	s.place(w, r, req)
}

func (s *Server) place(w http.ResponseWriter, r *http.Request, req offsetsRequest) {
	if req.Length == nil {
		s.writeError(w, r, railerrors.New(railerrors.ErrCodeInvalidInput, "length is required"))
		return
	}
	opts := pipeline.Options{
		Length:    *req.Length,
		PostWidth: s.defaults.PostWidth,
		TargetGap: s.defaults.TargetGap,
		Refresh:   req.Refresh,
		TTL:       s.ttl,
	}
	if req.PostWidth != nil {
		opts.PostWidth = *req.PostWidth
	}
	if req.TargetGap != nil {
		opts.TargetGap = *req.TargetGap
	}

	res, err := s.runner.Place(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, offsetsResponse{
		RequestID: RequestIDFromContext(r.Context()),
		Layout:    res.Layout,
		CacheHit:  res.CacheHit,
	})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := railerrors.HTTPStatus(err)
	code := railerrors.GetCode(err)
	msg := railerrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		code, msg = railerrors.ErrCodeInternal, "internal error"
	}
	writeJSON(w, status, errorResponse{
		RequestID: RequestIDFromContext(r.Context()),
		Code:      code,
		Message:   msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
