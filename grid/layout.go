package grid

import (
	"fmt"
	"strings"
)

var symbols = [...]byte{
	Empty:    '.',
	Wall:     '#',
	Start:    'S',
	End:      'E',
	Explored: 'o',
	Path:     '*',
}

// Symbol returns the single-character ASCII form of s used by Parse and String.
func (s State) Symbol() byte {
	if int(s) < len(symbols) {
		return symbols[s]
	}
	return '?'
}

func stateOf(b byte) (State, bool) {
	for i, sym := range symbols {
		if sym == b {
			return State(i), true
		}
	}
	return Empty, false
}

// Parse builds a grid from ASCII art. Each line is one Y value, each
// character one X value, so the picture reads the way the grid is drawn.
// The layout must be rectangular and contain exactly one 'S' and one 'E'.
func Parse(lines []string) (*Grid, error) {
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, ErrBadLayout
	}
	rows, cols := len(lines[0]), len(lines)
	g := &Grid{rows: rows, cols: cols, cells: make([]State, rows*cols)}
	starts, ends := 0, 0
	for y, line := range lines {
		if len(line) != rows {
			return nil, fmt.Errorf("%w: line %d has %d cells, want %d", ErrBadLayout, y, len(line), rows)
		}
		for x := 0; x < rows; x++ {
			s, ok := stateOf(line[x])
			if !ok {
				return nil, fmt.Errorf("%w: unknown symbol %q at (%d,%d)", ErrBadLayout, line[x], x, y)
			}
			p := Point{X: x, Y: y}
			switch s {
			case Start:
				g.start = p
				starts++
			case End:
				g.end = p
				ends++
			}
			g.cells[g.index(p)] = s
		}
	}
	if starts != 1 || ends != 1 {
		return nil, fmt.Errorf("%w: need exactly one S and one E, got %d and %d", ErrBadLayout, starts, ends)
	}

	return g, nil
}

// MustParse is Parse for fixtures; it panics on malformed input.
func MustParse(lines ...string) *Grid {
	g, err := Parse(lines)
	if err != nil {
		panic(err)
	}
	return g
}

// String renders g in the Parse format, one line per Y.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.rows + 1) * g.cols)
	for y := 0; y < g.cols; y++ {
		for x := 0; x < g.rows; x++ {
			b.WriteByte(g.cells[g.index(Point{X: x, Y: y})].Symbol())
		}
		if y < g.cols-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
