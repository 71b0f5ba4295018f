package grid

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid operations.
var (
	// ErrEmptyGrid indicates rows or cols below one.
	ErrEmptyGrid = errors.New("grid: must have at least one row and one column")
	// ErrTooSmall indicates there is no room for distinct Start and End cells.
	ErrTooSmall = errors.New("grid: too small to place distinct start and end")
	// ErrOutOfBounds indicates a Point outside [0,Rows)×[0,Cols).
	ErrOutOfBounds = errors.New("grid: point out of bounds")
	// ErrBadEndpoint indicates explicit endpoints that coincide or lie outside the grid.
	ErrBadEndpoint = errors.New("grid: invalid start or end point")
	// ErrBadLayout indicates malformed ASCII input to Parse.
	ErrBadLayout = errors.New("grid: malformed layout")
	// ErrTooLarge indicates rows×cols above MaxCells.
	ErrTooLarge = errors.New("grid: too many cells")
)

// MaxCells bounds rows×cols for every grid. Hosts usually enforce a much
// lower limit of their own.
const MaxCells = 1 << 24

// Point is an immutable grid coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p translated by d.
func (p Point) Add(d Point) Point { return Point{X: p.X + d.X, Y: p.Y + d.Y} }

// String formats p as "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// State is the semantic content of a single cell.
type State uint8

const (
	Empty State = iota
	Wall
	Start
	End
	Explored
	Path
)

var stateNames = [...]string{
	Empty:    "empty",
	Wall:     "wall",
	Start:    "start",
	End:      "end",
	Explored: "explored",
	Path:     "path",
}

// String returns the lower-case name of s.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Endpoint reports whether s is Start or End.
func (s State) Endpoint() bool { return s == Start || s == End }

// MarshalText encodes s by name so JSON payloads stay readable.
func (s State) MarshalText() ([]byte, error) {
	if int(s) >= len(stateNames) {
		return nil, fmt.Errorf("grid: unknown state %d", uint8(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText decodes a state name produced by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("grid: unknown state %q", text)
}

// Order is a fixed sequence of the four orthogonal unit offsets.
// Neighbours visits them in exactly this order.
type Order [4]Point

var (
	// SouthFirst yields +Y, +X, -Y, -X.
	SouthFirst = Order{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	// NorthFirst yields -Y, +X, +Y, -X.
	NorthFirst = Order{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
)

// Predicate selects cells by state, used by Clear.
type Predicate func(State) bool

// IsWall matches Wall cells.
func IsWall(s State) bool { return s == Wall }

// IsMark matches the marks a solve leaves behind: Explored and Path.
func IsMark(s State) bool { return s == Explored || s == Path }

// Any matches a state accepted by at least one of preds.
func Any(preds ...Predicate) Predicate {
	return func(s State) bool {
		for _, p := range preds {
			if p(s) {
				return true
			}
		}
		return false
	}
}
