// Package server is the HTTP preview host. Each view is opened as a scene
// on first use and kept until it is reset; requests against one scene are
// serialized by that scene's lock.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/felixge/httpsnoop"

	"github.com/msalah0e/devdeck/internal/registry"
	"github.com/msalah0e/devdeck/internal/scene"
)

// Config holds server configuration.
type Config struct {
	Addr   string
	Logger *slog.Logger
}

// Stats counts served requests.
type Stats struct {
	Requests  int64         `json:"requests"`
	ByStatus  map[int]int64 `json:"by_status"`
	StartedAt time.Time     `json:"started_at"`
	Scenes    int           `json:"scenes"`
}

// Server serves scenes over HTTP.
type Server struct {
	reg *registry.Registry
	cfg Config
	log *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
	stats    Stats
}

type session struct {
	mu    sync.Mutex
	view  registry.View
	scene *scene.Scene
}

// New creates a server over the views in reg.
func New(reg *registry.Registry, cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		reg:      reg,
		cfg:      cfg,
		log:      log,
		sessions: make(map[string]*session),
		stats:    Stats{ByStatus: make(map[int]int64), StartedAt: time.Now()},
	}
}

// Handler returns the routed, access-logged handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/views", s.handleList)
	mux.HandleFunc("GET /api/views/{name}", s.handleSnapshot)
	mux.HandleFunc("DELETE /api/views/{name}", s.handleReset)
	mux.HandleFunc("GET /api/views/{name}/svg", s.handleSVG)
	mux.HandleFunc("GET /api/views/{name}/png", s.handlePNG)
	mux.HandleFunc("POST /api/views/{name}/events", s.handleEvents)
	mux.HandleFunc("POST /api/views/{name}/nodes", s.handleAppend)
	mux.HandleFunc("GET /api/views/{name}/selection", s.handleSelection)
	return s.accessLog(mux)
}

// accessLog logs one line per request with its status and duration.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		s.mu.Lock()
		s.stats.Requests++
		s.stats.ByStatus[m.Code]++
		s.mu.Unlock()

		level := slog.LevelInfo
		if m.Code >= 500 {
			level = slog.LevelError
		}
		s.log.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", m.Code,
			"bytes", m.Written,
			"duration", m.Duration.Round(time.Microsecond),
		)
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down and
// releases every open scene.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	defer s.Close()

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.log.Info("listening", "addr", ln.Addr().String(), "views", len(s.reg.All()))

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases every open scene.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, sess := range s.sessions {
		sess.mu.Lock()
		sess.scene.Close()
		sess.mu.Unlock()
		delete(s.sessions, name)
	}
}

// Stats returns a copy of the request counters.
func (s *Server) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stats
	st.ByStatus = make(map[int]int64, len(s.stats.ByStatus))
	for k, v := range s.stats.ByStatus {
		st.ByStatus[k] = v
	}
	st.Scenes = len(s.sessions)
	return st
}

// session returns the open scene for name, opening it on first use.
func (s *Server) session(name string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[name]; ok {
		return sess, nil
	}
	view, err := s.reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	log := s.log.With("view", name)
	sc, err := view.Open(
		scene.WithLogger(log),
		scene.WithSelectHandler(func(id string) { log.Info("node selected", "node", id) }),
	)
	if err != nil {
		return nil, err
	}
	sess := &session{view: view, scene: sc}
	s.sessions[name] = sess
	return sess, nil
}

// drop closes and forgets the scene for name. The next request reopens it
// from its definition.
func (s *Server) drop(name string) error {
	if _, err := s.reg.Lookup(name); err != nil {
		return err
	}
	s.mu.Lock()
	sess, ok := s.sessions[name]
	delete(s.sessions, name)
	s.mu.Unlock()
	if ok {
		sess.mu.Lock()
		sess.scene.Close()
		sess.mu.Unlock()
	}
	return nil
}
