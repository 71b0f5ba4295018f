package dfs

import (
	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/search"
)

// dfsWalker encapsulates state during one search.
type dfsWalker struct {
	g              *grid.Grid
	opts           DFSOptions
	source, target grid.Point

	stack    []grid.Point
	visited  map[grid.Point]bool
	pred     map[grid.Point]grid.Point
	explored []grid.Point
	found    bool
}

// Solve runs depth-first search on g from source until target is popped or the
// stack empties. g is never modified.
func Solve(g *grid.Grid, source, target grid.Point, opts ...Option) (search.Result, error) {
	// 1. Validate input
	if err := search.Validate(g, source, target); err != nil {
		return search.Result{}, err
	}

	// 2. Apply options
	dopts := DefaultOptions()
	for _, fn := range opts {
		fn(&dopts)
	}

	// 3. Walk
	w := &dfsWalker{
		g:        g,
		opts:     dopts,
		source:   source,
		target:   target,
		stack:    []grid.Point{source},
		visited:  make(map[grid.Point]bool),
		pred:     make(map[grid.Point]grid.Point),
		explored: []grid.Point{},
	}
	if err := w.walk(); err != nil {
		return search.Result{}, err
	}

	return search.Result{
		Explored: w.explored,
		Path:     search.ReconstructPath(w.pred, source, target),
		Found:    w.found,
	}, nil
}

// Solve implements search.Algorithm.
func (s Solver) Solve(g *grid.Grid, source, target grid.Point) (search.Result, error) {
	return Solve(g, source, target, s.opts...)
}

func (w *dfsWalker) walk() error {
	for len(w.stack) > 0 {
		// 1. Cancellation check
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		// 2. Pop
		cur := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		if w.visited[cur] {
			continue
		}
		if cur == w.target {
			w.found = true
			return nil
		}

		// 3. Visit; the source is never reported as explored
		w.visited[cur] = true
		if cur != w.source {
			w.explored = append(w.explored, cur)
			if w.opts.OnVisit != nil {
				w.opts.OnVisit(cur)
			}
		}

		// 4. Push unvisited open neighbours; the latest push wins the predecessor
		for _, nb := range w.g.Neighbours(cur, w.opts.Order) {
			if w.visited[nb] || w.g.MustGet(nb) == grid.Wall {
				continue
			}
			w.pred[nb] = cur
			w.stack = append(w.stack, nb)
		}
	}

	return nil
}
