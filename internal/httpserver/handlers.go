package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/katalvlaran/pathviz/algorithms"
	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/internal/render"
	"github.com/katalvlaran/pathviz/internal/session"
)

// errBadRequest marks malformed request bodies.
var errBadRequest = errors.New("bad request")

// sizeReq sizes a grid either directly or from a pixel viewport.
type sizeReq struct {
	Rows     int `json:"rows"`
	Cols     int `json:"cols"`
	Width    int `json:"width"`  // viewport pixels, used when rows/cols are 0
	Height   int `json:"height"` // viewport pixels
	CellSize int `json:"cell_size"`
}

// dims resolves the grid size, falling back to cellSize for viewports.
func (q sizeReq) dims(cellSize int) (int, int) {
	if q.Rows > 0 || q.Cols > 0 {
		return q.Rows, q.Cols
	}
	if q.CellSize > 0 {
		cellSize = q.CellSize
	}
	return grid.FromViewport(q.Width, q.Height, cellSize)
}

// size resolves q and enforces the server's limits.
func (s *Server) size(q sizeReq) (int, int, error) {
	if err := s.checkCell(q.CellSize); err != nil {
		return 0, 0, err
	}
	rows, cols := q.dims(s.opts.CellSize)
	if rows > 0 && cols > 0 && rows > s.opts.MaxCells/cols {
		return 0, 0, fmt.Errorf("%w: %d×%d exceeds %d cells", grid.ErrTooLarge, rows, cols, s.opts.MaxCells)
	}
	return rows, cols, nil
}

func (s *Server) checkCell(cell int) error {
	if cell > s.opts.MaxCellSize {
		return fmt.Errorf("%w: %d exceeds %d", render.ErrCellSize, cell, s.opts.MaxCellSize)
	}
	return nil
}

type algorithmReq struct {
	Algorithm string `json:"algorithm"`
}

type toggleRes struct {
	Point   grid.Point `json:"point"`
	State   grid.State `json:"state"`
	Changed bool       `json:"changed"`
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessions.Registry().List())
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": s.sessions.IDs()})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req sizeReq
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rows, cols, err := s.size(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sess, err := s.sessions.Create(rows, cols)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess.View())
}

// withSession resolves {id} before calling h.
func (s *Server) withSession(h func(http.ResponseWriter, *http.Request, *session.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		h(w, r, sess)
	}
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, sess.View())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, sess.Scheduler.Status())
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	cell := s.opts.CellSize
	if v := r.URL.Query().Get("cell"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: cell=%q", errBadRequest, v))
			return
		}
		if err := s.checkCell(n); err != nil {
			writeError(w, r, err)
			return
		}
		cell = n
	}
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, sess.Scheduler.Snapshot(), cell, s.palette); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req sizeReq
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rows, cols, err := s.size(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := sess.Resize(rows, cols); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var p grid.Point
	if err := decode(r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	st, changed, err := sess.Toggle(p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleRes{Point: p, State: st, Changed: changed})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req algorithmReq
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Algorithm == "" {
		req.Algorithm = algorithms.Dijkstra
	}
	st, err := sess.Solve(req.Algorithm)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, st)
}

func (s *Server) handleMaze(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req algorithmReq
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Algorithm == "" {
		req.Algorithm = algorithms.RecursiveDivide
	}
	walls, err := sess.Maze(req.Algorithm)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"walls": len(walls)})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	cleared := sess.Clear()
	writeJSON(w, http.StatusOK, map[string]any{"cleared": len(cleared)})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("websocket upgrade")
		return
	}
	gv := sess.View().Grid
	sess.Hub.Serve(conn, session.Message{Type: "snapshot", Grid: &gv}, sess.Handle)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "history disabled"})
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil && n < 0 {
			err = errors.New("negative")
		}
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: limit=%q", errBadRequest, v))
			return
		}
		limit = n
	}
	runs, err := s.history.List(r.Context(), r.URL.Query().Get("algorithm"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleHistoryStats(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "history disabled"})
		return
	}
	stats, err := s.history.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ------------------------------ helpers ------------------------------------

// decode reads an optional JSON body into dst. An empty body leaves dst as is.
func decode(r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, algorithms.ErrUnknownAlgorithm),
		errors.Is(err, grid.ErrOutOfBounds),
		errors.Is(err, grid.ErrEmptyGrid),
		errors.Is(err, grid.ErrTooSmall),
		errors.Is(err, grid.ErrTooLarge),
		errors.Is(err, render.ErrCellSize):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
