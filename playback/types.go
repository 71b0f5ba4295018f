package playback

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/pathviz/grid"
)

var (
	// ErrNilGrid indicates a nil *grid.Grid was handed to the scheduler.
	ErrNilGrid = errors.New("playback: grid is nil")
	// ErrNilAlgorithm indicates Solve or GenerateMaze got no algorithm.
	ErrNilAlgorithm = errors.New("playback: algorithm is nil")
	// ErrBadReplayOrder indicates an unparsable replay order name.
	ErrBadReplayOrder = errors.New("playback: unknown replay order")
)

// Phase is the state of the current job.
type Phase uint8

const (
	Idle Phase = iota
	Exploring
	PathDrawing
)

var phaseNames = [...]string{"idle", "exploring", "path_drawing"}

// String returns the lower-case phase name.
func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// MarshalText encodes the phase name.
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText decodes a name produced by MarshalText.
func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("playback: unknown phase %q", text)
}

// ReplayOrder chooses which end of the explored list animates first.
type ReplayOrder uint8

const (
	// NewestFirst pops the most recently discovered cell first.
	NewestFirst ReplayOrder = iota
	// OldestFirst replays cells in discovery order.
	OldestFirst
)

// String returns "newest" or "oldest".
func (o ReplayOrder) String() string {
	if o == OldestFirst {
		return "oldest"
	}
	return "newest"
}

// ParseReplayOrder accepts "newest", "oldest", or an empty string (newest).
func ParseReplayOrder(s string) (ReplayOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "newest", "newest_first", "lifo":
		return NewestFirst, nil
	case "oldest", "oldest_first", "fifo":
		return OldestFirst, nil
	}
	return NewestFirst, fmt.Errorf("%w: %q", ErrBadReplayOrder, s)
}

// Frame is one draw instruction. Step runs 0..Steps; Step == Steps is the
// settled colour of State.
type Frame struct {
	Point grid.Point `json:"point"`
	State grid.State `json:"state"`
	Step  int        `json:"step"`
	Steps int        `json:"steps"`
}

// Final reports whether f is the last frame of its cell update.
func (f Frame) Final() bool { return f.Step >= f.Steps }

// Renderer receives frames. Draw is called with the scheduler lock held: it
// must not call back into the Scheduler.
type Renderer interface {
	Draw(Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame)

// Draw calls f.
func (f RendererFunc) Draw(fr Frame) { f(fr) }

// Summary describes a job that ran to completion.
type Summary struct {
	JobID     string        `json:"job_id"`
	Algorithm string        `json:"algorithm"`
	Rows      int           `json:"rows"`
	Cols      int           `json:"cols"`
	Explored  int           `json:"explored"`
	PathLen   int           `json:"path_len"`
	Found     bool          `json:"found"`
	Duration  time.Duration `json:"duration"`
}

// Status is a point-in-time view of the scheduler.
type Status struct {
	JobID             string `json:"job_id,omitempty"`
	Algorithm         string `json:"algorithm,omitempty"`
	Phase             Phase  `json:"phase"`
	RemainingExplored int    `json:"remaining_explored"`
	RemainingPath     int    `json:"remaining_path"`
}

// Options configures a Scheduler.
type Options struct {
	Clock        Clock
	Interval     time.Duration // between consecutive cells of a phase
	PathDelay    time.Duration // extra pause before the path phase
	FadeSteps    int
	FadeInterval time.Duration
	Order        ReplayOrder
	Renderer     Renderer
	Logger       zerolog.Logger
	OnStart      func(Status)  // called under the lock, before the first tick
	OnComplete   func(Summary) // called without the lock held
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions returns the standard pacing: 50ms per cell, 1s before the
// path, and a 50-step fade at 20ms per step.
func DefaultOptions() Options {
	return Options{
		Clock:        RealClock{},
		Interval:     50 * time.Millisecond,
		PathDelay:    time.Second,
		FadeSteps:    50,
		FadeInterval: 20 * time.Millisecond,
		Order:        NewestFirst,
		Renderer:     RendererFunc(func(Frame) {}),
		Logger:       zerolog.Nop(),
	}
}

// WithClock sets the time source. A nil clock is ignored.
func WithClock(c Clock) Option {
	return func(o *Options) {
		if c != nil {
			o.Clock = c
		}
	}
}

// WithInterval sets the per-cell cadence.
func WithInterval(d time.Duration) Option {
	return func(o *Options) { o.Interval = d }
}

// WithPathDelay sets the pause between the explore and path phases.
func WithPathDelay(d time.Duration) Option {
	return func(o *Options) { o.PathDelay = d }
}

// WithFade sets the fade length. steps <= 0 disables fading.
func WithFade(steps int, interval time.Duration) Option {
	return func(o *Options) {
		o.FadeSteps = steps
		o.FadeInterval = interval
	}
}

// WithReplayOrder sets the explored replay direction.
func WithReplayOrder(r ReplayOrder) Option {
	return func(o *Options) { o.Order = r }
}

// WithRenderer sets the frame sink. A nil renderer is ignored.
func WithRenderer(r Renderer) Option {
	return func(o *Options) {
		if r != nil {
			o.Renderer = r
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithOnStart registers a hook for started jobs. It runs under the scheduler
// lock, so it sees the job before any of its frames and must not call back
// into the Scheduler.
func WithOnStart(fn func(Status)) Option {
	return func(o *Options) { o.OnStart = fn }
}

// WithOnComplete registers a hook for finished jobs.
func WithOnComplete(fn func(Summary)) Option {
	return func(o *Options) { o.OnComplete = fn }
}
