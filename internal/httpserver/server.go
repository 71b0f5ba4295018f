// Package httpserver exposes visualizer sessions over HTTP.
//
// Routes:
//   - GET  /health, GET /algorithms
//   - POST /sessions                     create (rows/cols or a pixel viewport)
//   - GET  /sessions, GET|DELETE /sessions/{id}
//   - POST /sessions/{id}/resize|toggle|solve|maze|clear
//   - GET  /sessions/{id}/status, /sessions/{id}/image.png
//   - GET  /sessions/{id}/ws             websocket frame stream + commands
//   - GET  /history, /history/stats      finished runs (when a store is set)
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/katalvlaran/pathviz/internal/history"
	"github.com/katalvlaran/pathviz/internal/render"
	"github.com/katalvlaran/pathviz/internal/session"
)

// Defaults for the request size limits.
const (
	DefaultMaxCells    = 10000
	DefaultMaxCellSize = 50
)

// Options configures a Server.
type Options struct {
	CellSize     int    // PNG and viewport cell edge in pixels
	MaxCells     int    // rows×cols cap for created and resized grids
	MaxCellSize  int    // cap for cell_size and ?cell=
	ClientOrigin string // CORS origin; "*" when empty
	Logger       zerolog.Logger
}

// Server bundles the router, session manager and optional run history.
type Server struct {
	r        *chi.Mux
	sessions *session.Manager
	history  *history.Store // nil disables /history
	opts     Options
	palette  render.Palette
	upgrader websocket.Upgrader
}

// New constructs a Server, installs middleware and registers routes.
func New(mgr *session.Manager, hist *history.Store, opts Options) *Server {
	if opts.CellSize < 1 {
		opts.CellSize = render.DefaultCellSize
	}
	if opts.MaxCells < 1 {
		opts.MaxCells = DefaultMaxCells
	}
	if opts.MaxCellSize < 1 {
		opts.MaxCellSize = DefaultMaxCellSize
	}
	s := &Server{
		r:        chi.NewRouter(),
		sessions: mgr,
		history:  hist,
		opts:     opts,
		palette:  render.DefaultPalette(),
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(opts.Logger))
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer)
	s.r.Use(s.cors)
	s.r.Use(jsonContentType)
	timeout := chimw.Timeout(10 * time.Second)

	s.r.Group(func(r chi.Router) {
		r.Use(timeout)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"pathviz","endpoints":["/health","/algorithms","/sessions","/history"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/algorithms", s.handleAlgorithms)
		r.Get("/history", s.handleHistory)
		r.Get("/history/stats", s.handleHistoryStats)
	})

	s.r.Route("/sessions", func(r chi.Router) {
		r.With(timeout).Get("/", s.handleListSessions)
		r.With(timeout).Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			// Long-lived; no timeout.
			r.Get("/ws", s.handleWS)

			r.Group(func(r chi.Router) {
				r.Use(timeout)
				r.Get("/", s.withSession(s.handleGetSession))
				r.Delete("/", s.handleDeleteSession)
				r.Get("/status", s.withSession(s.handleStatus))
				r.Get("/image.png", s.withSession(s.handleImage))
				r.Post("/resize", s.withSession(s.handleResize))
				r.Post("/toggle", s.withSession(s.handleToggle))
				r.Post("/solve", s.withSession(s.handleSolve))
				r.Post("/maze", s.withSession(s.handleMaze))
				r.Post("/clear", s.withSession(s.handleClear))
			})
		})
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router (useful for tests).
func (s *Server) Handler() http.Handler { return s.r }

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ----------------------------- middleware ----------------------------------

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors allows a single configured origin, or any origin when none is set.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("request_id", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}
