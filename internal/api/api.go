// Package api serves boards, beam traces and the round log over HTTP as
// JSON.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matryer/way"

	"github.com/vovakirdan/beambox/internal/config"
	"github.com/vovakirdan/beambox/internal/storage"
)

// Server routes API requests. Every request generates its own board, so
// handlers share nothing but the config and the store.
type Server struct {
	router *way.Router
	cfg    config.Config
	tables config.Tables
	store  *storage.Store // may be nil
	logger *log.Logger
}

// New creates a server for the given configuration.
func New(cfg config.Config, store *storage.Store, logger *log.Logger) (*Server, error) {
	tables, err := cfg.Generator.Tables()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		cfg:    cfg,
		tables: tables,
		store:  store,
		logger: logger,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", "/boards/:level", s.handleBoard)
	s.router.HandleFunc("GET", "/boards/:level/probe", s.handleProbe)
	s.router.HandleFunc("GET", "/boards/:level/fire/:beam/:row/:col", s.handleFire)
	s.router.HandleFunc("GET", "/tables/:level", s.handleTables)
	s.router.HandleFunc("GET", "/rounds", s.handleRounds)
	s.router.HandleFunc("GET", "/rounds/:id/shots", s.handleShots)
	s.router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no such endpoint")
	})
}

// ServeHTTP logs and dispatches a request.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.router.ServeHTTP(rec, r)
	s.logger.Info("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"duration", time.Since(start),
	)
}

// ListenAndServe serves the API on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("starting API server", "address", addr)
	return srv.ListenAndServe()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	//nolint:errcheck // The client has gone if this fails.
	enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
