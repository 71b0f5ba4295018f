package maze

import (
	"errors"
	"math/rand"
	"time"
)

// ErrNilGrid indicates a nil *grid.Grid was passed to RecursiveDivide.
var ErrNilGrid = errors.New("maze: grid is nil")

// Orientation of a dividing wall line.
type Orientation int

const (
	// Horizontal lines run along X at a fixed Y.
	Horizontal Orientation = iota
	// Vertical lines run along Y at a fixed X.
	Vertical
)

// String returns "horizontal" or "vertical".
func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Options configures a generation run.
type Options struct {
	Rand *rand.Rand
}

// Option is a functional option for RecursiveDivide.
type Option func(*Options)

// WithRand uses rng as the random source. A nil rng is ignored.
func WithRand(rng *rand.Rand) Option {
	return func(o *Options) {
		if rng != nil {
			o.Rand = rng
		}
	}
}

// WithSeed uses a deterministic source seeded with seed.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Rand = rand.New(rand.NewSource(seed))
	}
}

func defaultOptions() Options {
	return Options{Rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Generator is the algorithm-registry form of RecursiveDivide.
type Generator struct {
	opts []Option
}

// New returns a Generator applying opts on every run.
func New(opts ...Option) Generator {
	return Generator{opts: opts}
}
