// Package server exposes the analysis engine as a read-only JSON API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/pable/go-cricket-metrics/internal/analysis"
)

// Options configures a Server.
type Options struct {
	Addr string
	// MinDate and MaxDate close open-ended from/to query parameters.
	MinDate, MaxDate time.Time
	// Timeout bounds each request's context.
	Timeout time.Duration
}

// Server serves one engine over HTTP.
type Server struct {
	engine  *analysis.Engine
	opts    Options
	router  *mux.Router
	metrics *Metrics
	http    *http.Server
}

// New builds the router and its middleware chain.
func New(engine *analysis.Engine, opts Options) *Server {
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	s := &Server{
		engine:  engine,
		opts:    opts,
		router:  mux.NewRouter(),
		metrics: NewMetrics(),
	}
	s.routes()
	s.http = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: opts.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.metricsMiddleware)
	s.router.Use(s.timeoutMiddleware)

	s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	api := s.router.PathPrefix("/").Subrouter()
	api.Use(jsonContentTypeMiddleware)
	api.HandleFunc("/health", s.health).Methods(http.MethodGet)
	api.HandleFunc("/batters", s.batters).Methods(http.MethodGet)
	api.HandleFunc("/batters/{name}/summary", s.summary).Methods(http.MethodGet)
	api.HandleFunc("/batters/{name}/report", s.report).Methods(http.MethodGet)
	api.HandleFunc("/batters/{name}/groups/{column}", s.groups).Methods(http.MethodGet)
	api.HandleFunc("/batters/{name}/line-length", s.lineLength).Methods(http.MethodGet)
	api.HandleFunc("/batters/{name}/frequency", s.frequency).Methods(http.MethodGet)
	api.HandleFunc("/batters/{name}/risk-reward", s.riskReward).Methods(http.MethodGet)
	api.HandleFunc("/batters/{name}/progression", s.progression).Methods(http.MethodGet)
	api.HandleFunc("/batters/{name}/pitch-map", s.pitchMap).Methods(http.MethodGet)
	api.HandleFunc("/run-expectancy", s.runExpectancy).Methods(http.MethodGet)

	s.router.NotFoundHandler = jsonContentTypeMiddleware(http.HandlerFunc(notFound))
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.opts.Addr).Int("deliveries", s.engine.Len()).Msg("serving")
		errc <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
