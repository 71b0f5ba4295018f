package grid

import (
	"fmt"
	"math/rand"
	"time"
)

// Grid is a Rows×Cols rectangle of cells with exactly one Start and one End.
// Cells are stored X-major: index(p) = p.X*Cols + p.Y.
type Grid struct {
	rows, cols int
	cells      []State
	start, end Point
}

// New builds a rows×cols grid filled with Empty, then places Start and End on
// two distinct cells drawn from rng. A nil rng uses a time-seeded source.
// Returns ErrEmptyGrid if rows or cols < 1, ErrTooLarge above MaxCells and
// ErrTooSmall for a 1×1 grid.
// Complexity: O(rows×cols).
func New(rows, cols int, rng *rand.Rand) (*Grid, error) {
	if err := checkSize(rows, cols); err != nil {
		return nil, err
	}
	if rows*cols < 2 {
		return nil, ErrTooSmall
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	start := Point{X: rng.Intn(rows), Y: rng.Intn(cols)}
	end := Point{X: rng.Intn(rows), Y: rng.Intn(cols)}
	for end == start {
		end = Point{X: rng.Intn(rows), Y: rng.Intn(cols)}
	}

	return NewWithEndpoints(rows, cols, start, end)
}

// NewWithEndpoints builds an Empty grid with Start and End at fixed points.
// Returns ErrEmptyGrid or ErrTooLarge for bad dimensions and ErrBadEndpoint
// if the endpoints coincide or lie outside the grid.
func NewWithEndpoints(rows, cols int, start, end Point) (*Grid, error) {
	if err := checkSize(rows, cols); err != nil {
		return nil, err
	}
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]State, rows*cols),
		start: start,
		end:   end,
	}
	if !g.InBounds(start) || !g.InBounds(end) || start == end {
		return nil, fmt.Errorf("%w: start=%v end=%v", ErrBadEndpoint, start, end)
	}
	g.cells[g.index(start)] = Start
	g.cells[g.index(end)] = End

	return g, nil
}

// checkSize rejects empty and oversized dimensions without computing
// rows*cols, which could overflow.
func checkSize(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return ErrEmptyGrid
	}
	if rows > MaxCells/cols {
		return fmt.Errorf("%w: %d×%d exceeds %d", ErrTooLarge, rows, cols, MaxCells)
	}
	return nil
}

// FromViewport converts an available pixel area into grid dimensions using
// floor division by cellSize. Non-positive inputs yield zero dimensions.
func FromViewport(widthPx, heightPx, cellSize int) (rows, cols int) {
	if cellSize <= 0 || widthPx <= 0 || heightPx <= 0 {
		return 0, 0
	}
	return widthPx / cellSize, heightPx / cellSize
}

// Rows is the extent along X.
func (g *Grid) Rows() int { return g.rows }

// Cols is the extent along Y.
func (g *Grid) Cols() int { return g.cols }

// Start returns the Start cell.
func (g *Grid) Start() Point { return g.start }

// End returns the End cell.
func (g *Grid) End() Point { return g.end }

// InBounds reports whether p lies within the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.rows && p.Y >= 0 && p.Y < g.cols
}

func (g *Grid) index(p Point) int { return p.X*g.cols + p.Y }

// Get returns the state at p, or ErrOutOfBounds.
func (g *Grid) Get(p Point) (State, error) {
	if !g.InBounds(p) {
		return Empty, fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, p, g.rows, g.cols)
	}
	return g.cells[g.index(p)], nil
}

// MustGet is Get for callers that already bounds-checked p. It panics on
// ErrOutOfBounds rather than clamping.
func (g *Grid) MustGet(p Point) State {
	s, err := g.Get(p)
	if err != nil {
		panic(err)
	}
	return s
}

// SetIfMutable overwrites the cell at p with s unless it holds Start or End.
// Returns false for the no-op case. Setting Start or End through this call is
// rejected too, so the single-endpoint invariant holds.
func (g *Grid) SetIfMutable(p Point, s State) (bool, error) {
	cur, err := g.Get(p)
	if err != nil {
		return false, err
	}
	if cur.Endpoint() || s.Endpoint() {
		return false, nil
	}
	g.cells[g.index(p)] = s

	return true, nil
}

// Toggle applies a user wall edit at p: Wall becomes Empty, anything else
// mutable becomes Wall. Returns the new state and whether the cell changed.
func (g *Grid) Toggle(p Point) (State, bool, error) {
	cur, err := g.Get(p)
	if err != nil {
		return Empty, false, err
	}
	if cur.Endpoint() {
		return cur, false, nil
	}
	next := Wall
	if cur == Wall {
		next = Empty
	}
	g.cells[g.index(p)] = next

	return next, true, nil
}

// Neighbours returns the up-to-4 in-bounds orthogonal neighbours of p in the
// given order. Wall cells are included; callers filter by state.
func (g *Grid) Neighbours(p Point, order Order) []Point {
	out := make([]Point, 0, len(order))
	for _, d := range order {
		n := p.Add(d)
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Clear resets every cell matching pred to Empty and returns the changed
// points in X-major order for redraw. Start and End never change.
func (g *Grid) Clear(pred Predicate) []Point {
	var changed []Point
	for i, s := range g.cells {
		if s.Endpoint() || s == Empty || !pred(s) {
			continue
		}
		g.cells[i] = Empty
		changed = append(changed, g.point(i))
	}
	return changed
}

func (g *Grid) point(i int) Point { return Point{X: i / g.cols, Y: i % g.cols} }

// Cells calls fn for every cell in X-major order.
func (g *Grid) Cells(fn func(p Point, s State)) {
	for i, s := range g.cells {
		fn(g.point(i), s)
	}
}

// Count returns how many cells hold s.
func (g *Grid) Count(s State) int {
	n := 0
	for _, c := range g.cells {
		if c == s {
			n++
		}
	}
	return n
}

// Clone returns a deep copy. Algorithms receive clones so they can never
// observe or cause later mutations of the live grid.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = make([]State, len(g.cells))
	copy(c.cells, g.cells)
	return &c
}
