package render

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/playback"
)

// Terminal is a playback.Renderer that paints cells as two-column blocks of
// 24-bit background colour using ANSI cursor addressing. Row 1 of the screen
// holds Y=0.
type Terminal struct {
	mu      sync.Mutex
	w       *bufio.Writer
	pal     Palette
	settled bool // draw only final frames
}

// NewTerminal writes to w. With settledOnly, intermediate fade frames are
// skipped, which keeps slow terminals responsive.
func NewTerminal(w io.Writer, pal Palette, settledOnly bool) *Terminal {
	return &Terminal{w: bufio.NewWriter(w), pal: pal, settled: settledOnly}
}

// Draw paints one frame and flushes.
func (t *Terminal) Draw(f playback.Frame) {
	if t.settled && !f.Final() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cell(f.Point, t.pal.Frame(f))
	t.park()
	_ = t.w.Flush()
}

// Paint clears the screen and draws all of g at settled colours.
func (t *Terminal) Paint(g *grid.Grid) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = t.w.WriteString("\x1b[2J\x1b[H")
	g.Cells(func(p grid.Point, s grid.State) {
		t.cell(p, t.pal.Main(s))
	})
	t.park()
	return t.w.Flush()
}

// Move parks the cursor on screen row n (1-based), column 1.
func (t *Terminal) Move(row int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "\x1b[%d;1H", row)
	return t.w.Flush()
}

func (t *Terminal) cell(p grid.Point, c RGB) {
	fmt.Fprintf(t.w, "\x1b[%d;%dH\x1b[48;2;%d;%d;%dm  \x1b[0m", p.Y+1, 2*p.X+1, c.R, c.G, c.B)
}

// park resets attributes so the shell prompt is not tinted.
func (t *Terminal) park() {
	_, _ = t.w.WriteString("\x1b[0m")
}
