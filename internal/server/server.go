// Package server serves rendered sketches over HTTP for live previewing.
//
// Routes:
//
//	GET /healthz
//	GET /sketch.{svg,png,json}
//	GET /layout.json
//
// Query parameters override the server's base options, for example
// /sketch.svg?rows=8&cols=6&seed=random&fill_styles=dots,hachure.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	sketcherrors "github.com/matzehuels/tilesketch/pkg/errors"
	"github.com/matzehuels/tilesketch/pkg/observability"
	"github.com/matzehuels/tilesketch/pkg/pipeline"
)

// Response headers identifying the rendered sketch.
const (
	HeaderSketchID   = "X-Sketch-ID"
	HeaderSketchSeed = "X-Sketch-Seed"
)

const shutdownTimeout = 5 * time.Second

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

// Server renders sketches on request. It is safe for concurrent use.
type Server struct {
	runner *pipeline.Runner
	base   pipeline.Options
	logger *log.Logger
	router chi.Router
}

// New creates a server whose requests start from base.
func New(runner *pipeline.Runner, base pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{runner: runner, base: base, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/layout.json", s.handleLayout)
	r.Get("/sketch.{format}", s.handleSketch)
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("preview server listening", "addr", addr)

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
		return ctx.Err()
	}
}

func (s *Server) handleSketch(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}

	opts, req, err := s.options(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	start := time.Now()
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("served sketch",
		"id", req.id,
		"format", format,
		"seed", req.seed,
		"items", res.Stats.Items,
		"cached", res.CacheInfo.RenderHit,
		"duration", time.Since(start))

	req.setHeaders(w)
	w.Header().Set("Content-Type", contentTypes[format])
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, req, err := s.options(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	l, err := s.runner.GenerateLayout(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := pipeline.MarshalLayout(l)
	if err != nil {
		s.writeError(w, err)
		return
	}

	req.setHeaders(w)
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatJSON])
	_, _ = w.Write(data)
}

// options builds validated pipeline options for r.
func (s *Server) options(r *http.Request) (pipeline.Options, requestInfo, error) {
	opts, req, err := optionsFromQuery(s.base, r.URL.Query())
	if err != nil {
		return opts, req, err
	}
	opts.Logger = s.logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, req, err
	}
	return opts, req, nil
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := sketcherrors.GetCode(err)
	switch {
	case sketcherrors.IsInvalid(err):
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		// client went away
		return
	default:
		s.logger.Error("request failed", "error", err)
		if code == "" {
			code = sketcherrors.ErrCodeInternal
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Code: string(code), Error: sketcherrors.UserMessage(err)})
}

// observe reports every request to the registered server hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
		s.logger.Debug("http", "method", r.Method, "route", route, "status", ww.Status(), "bytes", ww.BytesWritten())
	})
}

func (i requestInfo) setHeaders(w http.ResponseWriter) {
	w.Header().Set(HeaderSketchID, i.id)
	w.Header().Set(HeaderSketchSeed, strconv.FormatUint(i.seed, 10))
}
