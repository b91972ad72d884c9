// Package server exposes the sketch pipeline over HTTP.
//
// Sketch requests are queued to a single worker so that videos are
// rendered one at a time, in arrival order.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wbrown/img2sketch/pipeline"
)

// ErrStopped is reported to requests that arrive after the worker exited.
var ErrStopped = errors.New("server stopped")

// Runner is the part of pipeline.Runner the server uses.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) pipeline.Result
	SplitLens(imagePath string) (pipeline.SplitLensInfo, error)
}

type job struct {
	ctx   context.Context
	req   pipeline.Request
	reply chan pipeline.Result
}

// Server serves the sketch API.
type Server struct {
	runner   Runner
	defaults pipeline.Request
	logger   *log.Logger

	jobs    chan job
	stopped chan struct{}
	start   sync.Once
}

// New returns a Server. Fields missing from a sketch request body take
// their values from defaults.
func New(runner Runner, defaults pipeline.Request, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner:   runner,
		defaults: defaults,
		logger:   logger,
		jobs:     make(chan job),
		stopped:  make(chan struct{}),
	}
}

// Start launches the worker. It runs until ctx is cancelled. Calling Start
// more than once has no effect.
func (s *Server) Start(ctx context.Context) {
	s.start.Do(func() {
		go s.work(ctx)
	})
}

func (s *Server) work(ctx context.Context) {
	defer close(s.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.jobs:
			j.reply <- s.runner.Run(j.ctx, j.req)
		}
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/split-lens", s.handleSplitLens)
		r.Post("/sketch", s.handleSketch)
	})
	return r
}

func (s *Server) handleSplitLens(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("image")
	if path == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing image parameter"))
		return
	}
	info, err := s.runner.SplitLens(path)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleSketch(w http.ResponseWriter, r *http.Request) {
	req := s.defaults
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ImagePath == "" {
		writeError(w, http.StatusBadRequest, errors.New("image_path is required"))
		return
	}

	logger := s.logger.With("http_request", middleware.GetReqID(r.Context()))
	j := job{ctx: r.Context(), req: req, reply: make(chan pipeline.Result, 1)}
	select {
	case s.jobs <- j:
	case <-s.stopped:
		writeError(w, http.StatusServiceUnavailable, ErrStopped)
		return
	case <-r.Context().Done():
		logger.Warn("client left while queued", "image", req.ImagePath)
		return
	}

	// The worker always replies once it has taken the job.
	res := <-j.reply
	logger.Info("sketch request done", "image", req.ImagePath, "status", res.Status)
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
