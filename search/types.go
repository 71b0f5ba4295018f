package search

import (
	"errors"

	"github.com/katalvlaran/pathviz/grid"
)

// ErrNilGrid indicates a nil *grid.Grid was passed to an algorithm.
var ErrNilGrid = errors.New("search: grid is nil")

// Result is the ordered outcome of one search.
type Result struct {
	Explored []grid.Point `json:"explored"`
	Path     []grid.Point `json:"path"`
	// Found reports that target was reached. An empty Path with Found set
	// means the endpoints are adjacent or identical.
	Found bool `json:"found"`
}

// Len returns the number of cells strictly between source and target.
func (r Result) Len() int { return len(r.Path) }

// Algorithm is the capability every pathfinding variant provides.
type Algorithm interface {
	Solve(g *grid.Grid, source, target grid.Point) (Result, error)
}

// Func adapts an ordinary function to Algorithm.
type Func func(g *grid.Grid, source, target grid.Point) (Result, error)

// Solve calls f.
func (f Func) Solve(g *grid.Grid, source, target grid.Point) (Result, error) {
	return f(g, source, target)
}

// Validate applies the checks shared by all variants: non-nil grid and
// in-bounds endpoints.
func Validate(g *grid.Grid, source, target grid.Point) error {
	if g == nil {
		return ErrNilGrid
	}
	if _, err := g.Get(source); err != nil {
		return err
	}
	if _, err := g.Get(target); err != nil {
		return err
	}
	return nil
}
