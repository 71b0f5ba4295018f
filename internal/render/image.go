package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"github.com/yalue/image_utils"

	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/playback"
)

// DefaultCellSize is the edge of one cell in pixels.
const DefaultCellSize = 25

var (
	// ErrNilGrid indicates a nil grid was passed for rendering.
	ErrNilGrid = errors.New("render: grid is nil")
	// ErrCellSize indicates a cell edge below one pixel.
	ErrCellSize = errors.New("render: cell size must be positive")
)

// tile paints one cell: fill with an outline on its top and left edges, so
// adjacent tiles share a single pixel line.
func tile(cell int, fill, outline RGB) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cell, cell))
	draw.Draw(img, img.Bounds(), image.NewUniform(fill.NRGBA()), image.Point{}, draw.Src)
	if cell > 2 {
		o := outline.NRGBA()
		for i := 0; i < cell; i++ {
			img.SetRGBA(i, 0, o)
			img.SetRGBA(0, i, o)
		}
	}
	return img
}

// Rasterize draws every cell of g at its settled colour. Cell (x, y) covers
// pixels [x*cell, (x+1)*cell) × [y*cell, (y+1)*cell).
func Rasterize(g *grid.Grid, cell int, pal Palette) (*image.RGBA, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if cell < 1 {
		return nil, fmt.Errorf("%w: %d", ErrCellSize, cell)
	}
	tiles := make(map[grid.State]*image.RGBA)
	pic := image_utils.NewCompositeImage()

	var err error
	g.Cells(func(p grid.Point, s grid.State) {
		if err != nil {
			return
		}
		t, ok := tiles[s]
		if !ok {
			t = tile(cell, pal.Main(s), pal.Outline)
			tiles[s] = t
		}
		if e := pic.AddImage(t, image.Pt(p.X*cell, p.Y*cell)); e != nil {
			err = fmt.Errorf("render: add cell %v: %w", p, e)
		}
	})
	if err != nil {
		return nil, err
	}
	return image_utils.ToRGBA(pic), nil
}

// EncodePNG rasterizes g and writes it to w as PNG.
func EncodePNG(w io.Writer, g *grid.Grid, cell int, pal Palette) error {
	img, err := Rasterize(g, cell, pal)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Canvas is a playback.Renderer that keeps a raster of the latest frames.
type Canvas struct {
	mu   sync.Mutex
	img  *image.RGBA
	cell int
	pal  Palette
}

// NewCanvas starts a canvas from g's current cells.
func NewCanvas(g *grid.Grid, cell int, pal Palette) (*Canvas, error) {
	img, err := Rasterize(g, cell, pal)
	if err != nil {
		return nil, err
	}
	return &Canvas{img: img, cell: cell, pal: pal}, nil
}

// Draw paints one frame.
func (c *Canvas) Draw(f playback.Frame) {
	t := tile(c.cell, c.pal.Frame(f), c.pal.Outline)
	at := image.Pt(f.Point.X*c.cell, f.Point.Y*c.cell)

	c.mu.Lock()
	defer c.mu.Unlock()
	draw.Draw(c.img, image.Rectangle{Min: at, Max: at.Add(t.Bounds().Size())}, t, image.Point{}, draw.Src)
}

// Image returns a copy of the current raster.
func (c *Canvas) Image() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := image.NewRGBA(c.img.Bounds())
	draw.Draw(out, out.Bounds(), c.img, c.img.Bounds().Min, draw.Src)
	return out
}

// WritePNG encodes the current raster.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.Image())
}
