package dijkstra

import (
	"math"

	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/search"
)

const infinity = math.MaxInt

// Solve searches g from source to target. g is read, never written.
//
// Validation (in order):
//  1. g must be non-nil (search.ErrNilGrid).
//  2. source and target must be in bounds (grid.ErrOutOfBounds).
//
// source == target yields an empty Result. A cancelled Ctx aborts the run
// with ctx.Err().
func Solve(g *grid.Grid, source, target grid.Point, opts ...Option) (search.Result, error) {
	// 1) Validate inputs
	if err := search.Validate(g, source, target); err != nil {
		return search.Result{}, err
	}

	// 2) Build options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 3) Run
	r := &runner{
		g:       g,
		options: cfg,
		source:  source,
		target:  target,
		dist:    make(map[grid.Point]int, g.Rows()*g.Cols()),
		prev:    make(map[grid.Point]grid.Point),
		queued:  make(map[grid.Point]bool, g.Rows()*g.Cols()),
	}
	r.init()
	if err := r.process(); err != nil {
		return search.Result{}, err
	}

	return search.Result{
		Explored: r.explored,
		Path:     search.ReconstructPath(r.prev, source, target),
		Found:    r.found,
	}, nil
}

// Solve implements search.Algorithm.
func (s Solver) Solve(g *grid.Grid, source, target grid.Point) (search.Result, error) {
	return Solve(g, source, target, s.opts...)
}

// runner holds the mutable state for a single run.
type runner struct {
	g              *grid.Grid
	options        Options
	source, target grid.Point

	dist     map[grid.Point]int        // best known distance; infinity if unreached
	prev     map[grid.Point]grid.Point // predecessor on a shortest route
	frontier []grid.Point              // not yet finalized, X-major order
	queued   map[grid.Point]bool       // membership mirror of frontier
	explored []grid.Point
	found    bool
}

// init places every non-wall cell in the frontier at distance +∞, then sets
// the source to zero.
func (r *runner) init() {
	r.g.Cells(func(p grid.Point, s grid.State) {
		if s == grid.Wall {
			return
		}
		r.frontier = append(r.frontier, p)
		r.queued[p] = true
		r.dist[p] = infinity
	})
	r.dist[r.source] = 0
	r.explored = []grid.Point{}
}

// process extracts minima until the target is finalized or the remaining
// frontier is unreachable.
func (r *runner) process() error {
	for len(r.frontier) > 0 {
		select {
		case <-r.options.Ctx.Done():
			return r.options.Ctx.Err()
		default:
		}

		// 1) Linear extract-min; first occurrence wins ties.
		i := r.extractMin()
		u := r.frontier[i]

		// 2) Only +∞ cells remain: they are not part of the reachable component.
		if r.dist[u] == infinity {
			return nil
		}

		// 3) Target finalized.
		if u == r.target {
			r.found = true
			return nil
		}

		// 4) Record the visit, excluding the source.
		if u != r.source {
			r.explored = append(r.explored, u)
			if r.options.OnVisit != nil {
				r.options.OnVisit(u)
			}
		}

		// 5) Remove u from the frontier, preserving the order of the rest.
		r.frontier = append(r.frontier[:i], r.frontier[i+1:]...)
		delete(r.queued, u)

		r.relax(u)
	}
	return nil
}

func (r *runner) extractMin() int {
	best := 0
	for i := 1; i < len(r.frontier); i++ {
		if r.dist[r.frontier[i]] < r.dist[r.frontier[best]] {
			best = i
		}
	}
	return best
}

// relax offers u's neighbours a route through u at unit cost. Neighbours that
// already left the frontier, and walls, are skipped.
func (r *runner) relax(u grid.Point) {
	alt := r.dist[u] + 1
	for _, v := range r.g.Neighbours(u, r.options.Order) {
		if !r.queued[v] || r.g.MustGet(v) == grid.Wall {
			continue
		}
		if alt < r.dist[v] {
			r.dist[v] = alt
			r.prev[v] = u
		}
	}
}
