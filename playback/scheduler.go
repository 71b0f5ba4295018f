package playback

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/pathviz/algorithms"
	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/search"
)

// Scheduler owns a live grid and plays jobs on it.
type Scheduler struct {
	mu    sync.Mutex
	g     *grid.Grid
	opts  Options
	log   zerolog.Logger
	job   *job
	fades map[grid.Point]*fade
	idle  chan struct{} // closed while no job runs
}

// job is one solve being played back.
type job struct {
	id        uuid.UUID
	algorithm string
	phase     Phase
	explored  []grid.Point // remaining, consumed per ReplayOrder
	path      []grid.Point // remaining, consumed from the front
	total     search.Result
	timer     Timer
	cancelled bool
	started   time.Time
	done      chan struct{}
}

// New returns a Scheduler playing on g.
func New(g *grid.Grid, opts ...Option) (*Scheduler, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.FadeSteps < 0 {
		cfg.FadeSteps = 0
	}
	idle := make(chan struct{})
	close(idle)

	return &Scheduler{
		g:     g,
		opts:  cfg,
		log:   cfg.Logger.With().Str("component", "playback").Logger(),
		fades: make(map[grid.Point]*fade),
		idle:  idle,
	}, nil
}

// Solve cancels the running job, clears old marks and starts playing alg's
// result between the grid's Start and End. name labels the job in Status,
// logs and the Summary.
func (s *Scheduler) Solve(name string, alg search.Algorithm) (Status, error) {
	if alg == nil {
		return Status{}, ErrNilAlgorithm
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// 1) Cancel first: nothing of the superseded job may land after this.
	s.cancelLocked()

	// 2) Wipe the previous run.
	s.clearLocked(grid.IsMark)

	// 3) Compute on a snapshot; the live grid stays editable during playback.
	res, err := alg.Solve(s.g.Clone(), s.g.Start(), s.g.End())
	if err != nil {
		return Status{}, err
	}

	// 4) Queue the job and fire the first tick now.
	j := &job{
		id:        uuid.New(),
		algorithm: name,
		phase:     Exploring,
		explored:  append([]grid.Point(nil), res.Explored...),
		path:      append([]grid.Point(nil), res.Path...),
		total:     res,
		started:   time.Now(),
		done:      make(chan struct{}),
	}
	s.job = j
	s.idle = j.done
	s.log.Debug().
		Str("job", j.id.String()).
		Str("algorithm", name).
		Int("explored", len(res.Explored)).
		Int("path", len(res.Path)).
		Bool("found", res.Found).
		Msg("job started")
	st := s.statusLocked()
	if s.opts.OnStart != nil {
		s.opts.OnStart(st)
	}
	s.scheduleLocked(j, 0)

	return st, nil
}

// scheduleLocked arms j's next tick after d.
func (s *Scheduler) scheduleLocked(j *job, d time.Duration) {
	j.timer = s.opts.Clock.AfterFunc(d, func() { s.tick(j) })
}

// tick advances j by one cell or one phase transition.
func (s *Scheduler) tick(j *job) {
	var done *Summary

	s.mu.Lock()
	if j.cancelled || s.job != j {
		s.mu.Unlock()
		return
	}

	switch j.phase {
	case Exploring:
		if len(j.explored) == 0 {
			j.phase = PathDrawing
			s.log.Debug().Str("job", j.id.String()).Msg("path phase")
			s.scheduleLocked(j, s.opts.PathDelay)
			break
		}
		var p grid.Point
		if s.opts.Order == OldestFirst {
			p, j.explored = j.explored[0], j.explored[1:]
		} else {
			last := len(j.explored) - 1
			p, j.explored = j.explored[last], j.explored[:last]
		}
		s.markLocked(p, grid.Explored)
		s.scheduleLocked(j, s.opts.Interval)

	case PathDrawing:
		if len(j.path) == 0 {
			sum := s.finishLocked(j)
			done = &sum
			break
		}
		p := j.path[0]
		j.path = j.path[1:]
		s.markLocked(p, grid.Path)
		s.scheduleLocked(j, s.opts.Interval)
	}
	s.mu.Unlock()

	if done != nil && s.opts.OnComplete != nil {
		s.opts.OnComplete(*done)
	}
}

// markLocked commits a job cell and starts its fade. The live cell wins:
// Explored lands only on Empty, Path only on Empty or Explored, so walls the
// user drew after the solve started survive and endpoints are never touched.
func (s *Scheduler) markLocked(p grid.Point, st grid.State) {
	cur, err := s.g.Get(p)
	if err != nil || !markable(cur, st) {
		return
	}
	if ok, err := s.g.SetIfMutable(p, st); err != nil || !ok {
		return
	}
	s.startFadeLocked(p, st)
}

func markable(cur, st grid.State) bool {
	switch st {
	case grid.Explored:
		return cur == grid.Empty
	case grid.Path:
		return cur == grid.Empty || cur == grid.Explored
	}
	return false
}

// finishLocked returns j to Idle and releases it.
func (s *Scheduler) finishLocked(j *job) Summary {
	j.phase = Idle
	j.timer = nil
	s.job = nil
	close(j.done)

	sum := Summary{
		JobID:     j.id.String(),
		Algorithm: j.algorithm,
		Rows:      s.g.Rows(),
		Cols:      s.g.Cols(),
		Explored:  len(j.total.Explored),
		PathLen:   len(j.total.Path),
		Found:     j.total.Found,
		Duration:  time.Since(j.started),
	}
	s.log.Debug().
		Str("job", sum.JobID).
		Str("algorithm", sum.Algorithm).
		Dur("duration", sum.Duration).
		Msg("job complete")
	return sum
}

// cancelLocked stops the running job, if any.
func (s *Scheduler) cancelLocked() {
	j := s.job
	if j == nil {
		return
	}
	j.cancelled = true
	if j.timer != nil {
		j.timer.Stop()
	}
	s.job = nil
	close(j.done)
	s.log.Debug().
		Str("job", j.id.String()).
		Str("phase", j.phase.String()).
		Int("remaining_explored", len(j.explored)).
		Int("remaining_path", len(j.path)).
		Msg("job cancelled")
}

// Cancel stops the running job and leaves the grid as it is.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

// clearLocked resets cells matching pred and draws them Empty.
func (s *Scheduler) clearLocked(pred grid.Predicate) []grid.Point {
	changed := s.g.Clear(pred)
	for _, p := range changed {
		s.drawLocked(p, grid.Empty)
	}
	return changed
}

// ToggleWall flips p between Empty and Wall, the way a click does. Explored
// and Path cells become walls. Endpoints are left alone and reported
// unchanged. A running job is not interrupted, but its later ticks skip the
// cell while it stays a wall.
func (s *Scheduler) ToggleWall(p grid.Point) (grid.State, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, changed, err := s.g.Toggle(p)
	if err != nil || !changed {
		return st, changed, err
	}
	if st == grid.Wall {
		s.startFadeLocked(p, st)
	} else {
		s.drawLocked(p, st)
	}
	return st, true, nil
}

// GenerateMaze cancels the running job, clears walls and marks, and carves a
// maze into the live grid. It returns the cells that became walls.
func (s *Scheduler) GenerateMaze(name string, m algorithms.MazeAlgorithm) ([]grid.Point, error) {
	if m == nil {
		return nil, ErrNilAlgorithm
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.clearLocked(grid.Any(grid.IsWall, grid.IsMark))

	walls, err := m.Generate(s.g)
	if err != nil {
		return nil, err
	}
	for _, p := range walls {
		s.startFadeLocked(p, grid.Wall)
	}
	s.log.Debug().Str("maze", name).Int("walls", len(walls)).Msg("maze generated")
	return walls, nil
}

// Clear cancels the running job and resets every wall and mark.
func (s *Scheduler) Clear() []grid.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	return s.clearLocked(grid.Any(grid.IsWall, grid.IsMark))
}

// ClearMarks cancels the running job and resets Explored and Path cells,
// keeping walls.
func (s *Scheduler) ClearMarks() []grid.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	return s.clearLocked(grid.IsMark)
}

// Reset cancels everything and replaces the live grid with g, for example
// after a viewport resize. Every cell of g is drawn once.
func (s *Scheduler) Reset(g *grid.Grid) error {
	if g == nil {
		return ErrNilGrid
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.stopFadesLocked()
	s.g = g
	g.Cells(func(p grid.Point, st grid.State) {
		s.drawLocked(p, st)
	})
	s.log.Debug().Int("rows", g.Rows()).Int("cols", g.Cols()).Msg("grid reset")
	return nil
}

// Close cancels the running job and all fades. The grid is kept.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.stopFadesLocked()
}

// Snapshot returns a copy of the live grid.
func (s *Scheduler) Snapshot() *grid.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.g.Clone()
}

// View calls fn with the live grid under the lock. fn must not retain g or
// mutate it.
func (s *Scheduler) View(fn func(g *grid.Grid)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.g)
}

// Status reports the running job, or Idle.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *Scheduler) statusLocked() Status {
	j := s.job
	if j == nil {
		return Status{Phase: Idle}
	}
	return Status{
		JobID:             j.id.String(),
		Algorithm:         j.algorithm,
		Phase:             j.phase,
		RemainingExplored: len(j.explored),
		RemainingPath:     len(j.path),
	}
}

// Idle returns a channel closed once no job is running: on completion or
// cancellation of the job current at call time.
func (s *Scheduler) Idle() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idle
}
