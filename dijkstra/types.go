package dijkstra

import (
	"context"

	"github.com/katalvlaran/pathviz/grid"
)

// Options configures a single Dijkstra run.
type Options struct {
	Ctx     context.Context  // checked once per extraction
	Order   grid.Order       // neighbour order used during relaxation
	OnVisit func(grid.Point) // optional; called for each explored cell
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// DefaultOptions returns Background context, SouthFirst ordering and no hook.
func DefaultOptions() Options {
	return Options{Ctx: context.Background(), Order: grid.SouthFirst}
}

// WithContext sets the context used for cancellation. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOrder overrides the neighbour order.
func WithOrder(order grid.Order) Option {
	return func(o *Options) {
		o.Order = order
	}
}

// WithOnVisit installs fn as a visit hook. A nil fn is ignored.
func WithOnVisit(fn func(grid.Point)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
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
