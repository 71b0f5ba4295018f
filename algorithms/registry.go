package algorithms

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/pathviz/dfs"
	"github.com/katalvlaran/pathviz/dijkstra"
	"github.com/katalvlaran/pathviz/maze"
	"github.com/katalvlaran/pathviz/search"
)

// Registry names. Stable: they appear in URLs, flags and the run history.
const (
	Dijkstra        = "dijkstra"
	DepthFirst      = "dfs"
	RecursiveDivide = "recursive_divide"
)

// Registry maps names to algorithms. Safe for concurrent use; listing keeps
// registration order.
type Registry struct {
	mu          sync.RWMutex
	pathfinders map[string]Pathfinder
	mazes       map[string]Maze
	order       []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		pathfinders: make(map[string]Pathfinder),
		mazes:       make(map[string]Maze),
	}
}

// Default returns a registry holding the built-in algorithms with their
// default options.
func Default() *Registry {
	r := NewRegistry()
	// Names are constants; registration cannot fail here.
	_ = r.RegisterPathfinder(Dijkstra, "Dijkstra's", dijkstra.New())
	_ = r.RegisterPathfinder(DepthFirst, "Depth first search", dfs.New())
	_ = r.RegisterMaze(RecursiveDivide, "Recursive Divide", maze.New())
	return r
}

// RegisterPathfinder adds a under name.
func (r *Registry) RegisterPathfinder(name, title string, a search.Algorithm) error {
	if a == nil {
		return ErrNilAlgorithm
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.claim(name); err != nil {
		return err
	}
	r.pathfinders[name] = Pathfinder{Info: Info{Name: name, Title: title, Kind: KindPathfinding}, Algorithm: a}
	return nil
}

// RegisterMaze adds m under name.
func (r *Registry) RegisterMaze(name, title string, m MazeAlgorithm) error {
	if m == nil {
		return ErrNilAlgorithm
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.claim(name); err != nil {
		return err
	}
	r.mazes[name] = Maze{Info: Info{Name: name, Title: title, Kind: KindMaze}, MazeAlgorithm: m}
	return nil
}

// claim reserves name across both kinds. Caller holds mu.
func (r *Registry) claim(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	_, p := r.pathfinders[name]
	_, m := r.mazes[name]
	if p || m {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	r.order = append(r.order, name)
	return nil
}

// Pathfinder returns the pathfinding entry registered under name.
func (r *Registry) Pathfinder(name string) (Pathfinder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pathfinders[name]
	if !ok {
		return Pathfinder{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return p, nil
}

// Maze returns the maze entry registered under name.
func (r *Registry) Maze(name string) (Maze, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.mazes[name]
	if !ok {
		return Maze{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return m, nil
}

// List describes every entry in registration order.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Info, 0, len(r.order))
	for _, name := range r.order {
		if p, ok := r.pathfinders[name]; ok {
			out = append(out, p.Info)
			continue
		}
		out = append(out, r.mazes[name].Info)
	}
	return out
}
