package maze

import (
	"math/rand"
	"sort"

	"github.com/katalvlaran/pathviz/grid"
)

// region is an axis-aligned rectangle of cells, origin inclusive.
type region struct {
	x, y          int
	width, height int
}

// RecursiveDivide carves a maze into g in place and returns the cells that
// became walls, in X-major order, so the caller can redraw just those.
func RecursiveDivide(g *grid.Grid, opts ...Option) ([]grid.Point, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &divider{g: g, rng: cfg.Rand}
	whole := region{width: g.Rows(), height: g.Cols()}
	d.divide(whole, d.orientation(whole.width, whole.height))

	sort.Slice(d.walls, func(i, j int) bool {
		a, b := d.walls[i], d.walls[j]
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	return d.walls, nil
}

// Generate implements the registry's maze capability.
func (m Generator) Generate(g *grid.Grid) ([]grid.Point, error) {
	return RecursiveDivide(g, m.opts...)
}

type divider struct {
	g     *grid.Grid
	rng   *rand.Rand
	walls []grid.Point
}

// randomInteger returns floor(u*bound) for u uniform in [0,1). The bound may be
// fractional: a region of even span gives (span-1)/2 = k+0.5, which allows
// offsets 0..k with the last one less likely.
func (d *divider) randomInteger(bound float64) int {
	return int(d.rng.Float64() * bound)
}

// orientation splits across the longer side; squares pick at random.
func (d *divider) orientation(width, height int) Orientation {
	switch {
	case width < height:
		return Horizontal
	case height < width:
		return Vertical
	}
	if d.randomInteger(2) == 0 {
		return Horizontal
	}
	return Vertical
}

func (d *divider) divide(r region, o Orientation) {
	if r.width < 2 || r.height < 2 {
		return
	}
	horizontal := o == Horizontal
	spanX := float64(r.width-1) / 2
	spanY := float64(r.height-1) / 2

	// 1) Wall line at an odd offset, passage at an even offset along it.
	wall := grid.Point{X: r.x, Y: r.y}
	passage := wall
	step := grid.Point{X: 0, Y: 1}
	length := r.height
	if horizontal {
		wall.Y += 2*d.randomInteger(spanY) + 1
		passage = grid.Point{X: wall.X + 2*d.randomInteger(spanX), Y: wall.Y}
		step = grid.Point{X: 1, Y: 0}
		length = r.width
	} else {
		wall.X += 2*d.randomInteger(spanX) + 1
		passage = grid.Point{X: wall.X, Y: wall.Y + 2*d.randomInteger(spanY)}
	}

	// 2) Draw the line over Empty cells only.
	for cur, i := wall, 0; i < length; cur, i = cur.Add(step), i+1 {
		if cur == passage {
			continue
		}
		if s, err := d.g.Get(cur); err != nil || s != grid.Empty {
			continue
		}
		_, _ = d.g.SetIfMutable(cur, grid.Wall)
		d.walls = append(d.walls, cur)
	}

	// 3) Recurse into both sides with freshly chosen orientations.
	var near, far region
	if horizontal {
		near = region{x: r.x, y: r.y, width: r.width, height: wall.Y - r.y}
		far = region{x: r.x, y: wall.Y + 1, width: r.width, height: r.y + r.height - wall.Y - 1}
	} else {
		near = region{x: r.x, y: r.y, width: wall.X - r.x, height: r.height}
		far = region{x: wall.X + 1, y: r.y, width: r.x + r.width - wall.X - 1, height: r.height}
	}
	d.divide(near, d.orientation(near.width, near.height))
	d.divide(far, d.orientation(far.width, far.height))
}
