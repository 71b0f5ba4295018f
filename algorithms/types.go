package algorithms

import (
	"errors"

	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/search"
)

var (
	// ErrUnknownAlgorithm indicates no entry is registered under the name.
	ErrUnknownAlgorithm = errors.New("algorithms: unknown algorithm")
	// ErrDuplicateName indicates a second registration under an existing name.
	ErrDuplicateName = errors.New("algorithms: name already registered")
	// ErrEmptyName indicates a registration without a name.
	ErrEmptyName = errors.New("algorithms: empty name")
	// ErrNilAlgorithm indicates a registration without an implementation.
	ErrNilAlgorithm = errors.New("algorithms: nil algorithm")
)

// Kind separates the two capabilities.
type Kind string

const (
	KindPathfinding Kind = "pathfinding"
	KindMaze        Kind = "maze"
)

// MazeAlgorithm fills g with walls in place and returns the cells it changed.
type MazeAlgorithm interface {
	Generate(g *grid.Grid) ([]grid.Point, error)
}

// MazeFunc adapts an ordinary function to MazeAlgorithm.
type MazeFunc func(g *grid.Grid) ([]grid.Point, error)

// Generate calls f.
func (f MazeFunc) Generate(g *grid.Grid) ([]grid.Point, error) { return f(g) }

// Info is the public description of an entry, as listed to clients.
type Info struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Kind  Kind   `json:"kind"`
}

// Pathfinder is a registered search.Algorithm.
type Pathfinder struct {
	Info
	search.Algorithm
}

// Maze is a registered MazeAlgorithm.
type Maze struct {
	Info
	MazeAlgorithm
}
