package dfs

import (
	"context"

	"github.com/katalvlaran/pathviz/grid"
)

// Option configures optional behavior of a DFS run.
type Option func(*DFSOptions)

// DFSOptions holds configurable parameters for DFS.
type DFSOptions struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// Order is the neighbour push order. The last pushed is popped first.
	Order grid.Order

	// OnVisit, if non-nil, is invoked for each cell appended to Explored.
	OnVisit func(grid.Point)
}

// DefaultOptions returns Background context, NorthFirst order and no hook.
func DefaultOptions() DFSOptions {
	return DFSOptions{
		Ctx:   context.Background(),
		Order: grid.NorthFirst,
	}
}

// WithContext sets the context used for cancellation.
// Passing a nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *DFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOrder overrides the neighbour push order.
func WithOrder(order grid.Order) Option {
	return func(o *DFSOptions) {
		o.Order = order
	}
}

// WithOnVisit installs fn as a visit hook.
func WithOnVisit(fn func(grid.Point)) Option {
	return func(o *DFSOptions) {
		o.OnVisit = fn
	}
}

// Solver is the search.Algorithm form of Solve with options bound up front.
type Solver struct {
	opts []Option
}

// New returns a Solver that applies opts on every run.
func New(opts ...Option) Solver {
	return Solver{opts: opts}
}
