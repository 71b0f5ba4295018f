// Package session holds the live visualizer sessions of a server process.
// Each session owns one grid, one playback scheduler and one websocket hub;
// sessions live in memory only and vanish on restart.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/pathviz/algorithms"
	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/playback"
)

// ErrNotFound is returned for an unknown session ID.
var ErrNotFound = errors.New("session: not found")

// Config configures a Manager.
type Config struct {
	Registry *algorithms.Registry // Default() when nil
	Playback []playback.Option    // applied to every scheduler
	// OnComplete, when set, builds the finished-job hook of a session.
	OnComplete func(sessionID string) func(playback.Summary)
	Logger     zerolog.Logger
	Rand       *rand.Rand // endpoint placement; time-seeded when nil
}

// Manager creates, finds and deletes sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	cfg      Config
	log      zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewManager returns an empty manager.
func NewManager(cfg Config) *Manager {
	if cfg.Registry == nil {
		cfg.Registry = algorithms.Default()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Manager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		log:      cfg.Logger.With().Str("component", "session").Logger(),
		rng:      rng,
	}
}

// Registry exposes the algorithm registry sessions solve with.
func (m *Manager) Registry() *algorithms.Registry { return m.cfg.Registry }

// newGrid places random endpoints on a rows×cols grid.
func (m *Manager) newGrid(rows, cols int) (*grid.Grid, error) {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	return grid.New(rows, cols, m.rng)
}

// Create starts a session on a fresh rows×cols grid.
func (m *Manager) Create(rows, cols int) (*Session, error) {
	g, err := m.newGrid(rows, cols)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := m.log.With().Str("session", id).Logger()
	hub := NewHub(logger)

	opts := append([]playback.Option{}, m.cfg.Playback...)
	opts = append(opts,
		playback.WithRenderer(hub),
		playback.WithLogger(logger),
		playback.WithOnStart(func(st playback.Status) {
			hub.Broadcast(Message{Type: "status", Status: &st})
		}),
	)
	if m.cfg.OnComplete != nil {
		opts = append(opts, playback.WithOnComplete(m.cfg.OnComplete(id)))
	}
	sched, err := playback.New(g, opts...)
	if err != nil {
		return nil, err
	}

	s := &Session{ID: id, Created: time.Now().UTC(), Scheduler: sched, Hub: hub, manager: m}
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	logger.Info().Int("rows", rows).Int("cols", cols).Msg("session created")
	return s, nil
}

// Get looks a session up by ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Delete stops a session's playback and disconnects its clients.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.close()
	m.log.Info().Str("session", id).Msg("session deleted")
	return nil
}

// IDs lists live session IDs, sorted.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close deletes every session.
func (m *Manager) Close() {
	for _, id := range m.IDs() {
		_ = m.Delete(id)
	}
}

// Session is one live grid with its scheduler and viewers.
type Session struct {
	ID        string
	Created   time.Time
	Scheduler *playback.Scheduler
	Hub       *Hub

	manager *Manager
}

// View is the JSON description of a session.
type View struct {
	ID      string          `json:"id"`
	Created time.Time       `json:"created"`
	Grid    GridView        `json:"grid"`
	Status  playback.Status `json:"status"`
	Viewers int             `json:"viewers"`
}

// View captures the session's current state.
func (s *Session) View() View {
	var gv GridView
	s.Scheduler.View(func(g *grid.Grid) { gv = ViewOf(g) })
	return View{
		ID:      s.ID,
		Created: s.Created,
		Grid:    gv,
		Status:  s.Scheduler.Status(),
		Viewers: s.Hub.Len(),
	}
}

// Toggle flips a wall.
func (s *Session) Toggle(p grid.Point) (grid.State, bool, error) {
	return s.Scheduler.ToggleWall(p)
}

// Solve starts the named pathfinding algorithm. Viewers get the job's
// status message ahead of its first frame.
func (s *Session) Solve(name string) (playback.Status, error) {
	alg, err := s.manager.cfg.Registry.Pathfinder(name)
	if err != nil {
		return playback.Status{}, err
	}
	return s.Scheduler.Solve(name, alg)
}

// Maze runs the named maze algorithm.
func (s *Session) Maze(name string) ([]grid.Point, error) {
	m, err := s.manager.cfg.Registry.Maze(name)
	if err != nil {
		return nil, err
	}
	return s.Scheduler.GenerateMaze(name, m)
}

// Clear removes walls and marks.
func (s *Session) Clear() []grid.Point {
	return s.Scheduler.Clear()
}

// Resize replaces the grid with a fresh rows×cols one with new endpoints.
// Viewers receive a new snapshot.
func (s *Session) Resize(rows, cols int) error {
	g, err := s.manager.newGrid(rows, cols)
	if err != nil {
		return err
	}
	if err := s.Scheduler.Reset(g); err != nil {
		return err
	}
	gv := ViewOf(g)
	s.Hub.Broadcast(Message{Type: "snapshot", Grid: &gv})
	return nil
}

// Handle applies a websocket command. Failures are reported to all viewers.
func (s *Session) Handle(cmd Command) {
	var err error
	switch cmd.Type {
	case "toggle":
		if cmd.Point == nil {
			err = errors.New("toggle: point required")
			break
		}
		_, _, err = s.Toggle(*cmd.Point)
	case "solve":
		_, err = s.Solve(cmd.Algorithm)
	case "maze":
		_, err = s.Maze(cmd.Algorithm)
	case "clear":
		s.Clear()
	default:
		err = fmt.Errorf("unknown command %q", cmd.Type)
	}
	if err != nil {
		s.Hub.Broadcast(Message{Type: "error", Error: err.Error()})
	}
}

func (s *Session) close() {
	s.Scheduler.Close()
	s.Hub.Close()
}
