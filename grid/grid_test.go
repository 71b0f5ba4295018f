package grid_test

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathviz/grid"
)

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name       string
		rows, cols int
		err        error
	}{
		{"ZeroRows", 0, 4, grid.ErrEmptyGrid},
		{"NegativeCols", 3, -1, grid.ErrEmptyGrid},
		{"SingleCell", 1, 1, grid.ErrTooSmall},
		{"TooManyCells", 2_000_000, 2_000_000, grid.ErrTooLarge},
		{"OverflowingProduct", math.MaxInt, 3, grid.ErrTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.New(tc.rows, tc.cols, rand.New(rand.NewSource(1)))
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestNew_PlacesDistinctEndpoints(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		g, err := grid.New(2, 1, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		assert.NotEqual(t, g.Start(), g.End())
		assert.Equal(t, 1, g.Count(grid.Start))
		assert.Equal(t, 1, g.Count(grid.End))
		assert.Equal(t, 0, g.Count(grid.Empty))
	}
}

func TestNew_SameSeedSamePlacement(t *testing.T) {
	a, err := grid.New(20, 12, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := grid.New(20, 12, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, a.Start(), b.Start())
	assert.Equal(t, a.End(), b.End())
	assert.Equal(t, 20*12-2, a.Count(grid.Empty))
}

func TestNewWithEndpoints_Rejects(t *testing.T) {
	_, err := grid.NewWithEndpoints(3, 3, grid.Pt(1, 1), grid.Pt(1, 1))
	assert.ErrorIs(t, err, grid.ErrBadEndpoint)
	_, err = grid.NewWithEndpoints(3, 3, grid.Pt(0, 0), grid.Pt(3, 0))
	assert.ErrorIs(t, err, grid.ErrBadEndpoint)
	_, err = grid.NewWithEndpoints(grid.MaxCells+1, 1, grid.Pt(0, 0), grid.Pt(1, 0))
	assert.ErrorIs(t, err, grid.ErrTooLarge)
}

func TestFromViewport(t *testing.T) {
	rows, cols := grid.FromViewport(1010, 499, 25)
	assert.Equal(t, 40, rows)
	assert.Equal(t, 19, cols)

	rows, cols = grid.FromViewport(100, 100, 0)
	assert.Zero(t, rows)
	assert.Zero(t, cols)
}

//----------------------------------------------------------------------------//
// Access and edits
//----------------------------------------------------------------------------//

func TestGet_OutOfBounds(t *testing.T) {
	g, err := grid.NewWithEndpoints(3, 2, grid.Pt(0, 0), grid.Pt(2, 1))
	require.NoError(t, err)

	for _, p := range []grid.Point{{X: -1, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 2}, {X: 0, Y: -1}} {
		_, err := g.Get(p)
		assert.ErrorIs(t, err, grid.ErrOutOfBounds, "point %v", p)
	}
	assert.Panics(t, func() { g.MustGet(grid.Pt(5, 5)) })

	s, err := g.Get(grid.Pt(2, 1))
	require.NoError(t, err)
	assert.Equal(t, grid.End, s)
}

func TestSetIfMutable(t *testing.T) {
	g, err := grid.NewWithEndpoints(3, 3, grid.Pt(0, 0), grid.Pt(2, 2))
	require.NoError(t, err)

	ok, err := g.SetIfMutable(grid.Pt(0, 0), grid.Wall)
	require.NoError(t, err)
	assert.False(t, ok, "start must not be overwritten")

	ok, err = g.SetIfMutable(grid.Pt(2, 2), grid.Explored)
	require.NoError(t, err)
	assert.False(t, ok, "end must not be overwritten")

	ok, err = g.SetIfMutable(grid.Pt(1, 1), grid.Start)
	require.NoError(t, err)
	assert.False(t, ok, "a second start must not appear")

	ok, err = g.SetIfMutable(grid.Pt(1, 1), grid.Path)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, grid.Path, g.MustGet(grid.Pt(1, 1)))

	_, err = g.SetIfMutable(grid.Pt(9, 9), grid.Wall)
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)
}

func TestToggle(t *testing.T) {
	g := grid.MustParse(
		"S.o",
		"..E",
	)
	s, changed, err := g.Toggle(grid.Pt(1, 0))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, grid.Wall, s)

	s, changed, err = g.Toggle(grid.Pt(1, 0))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, grid.Empty, s)

	s, _, err = g.Toggle(grid.Pt(2, 0))
	require.NoError(t, err)
	assert.Equal(t, grid.Wall, s, "explored marks become walls when painted over")

	s, changed, err = g.Toggle(grid.Pt(0, 0))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, grid.Start, s)
}

//----------------------------------------------------------------------------//
// Neighbours
//----------------------------------------------------------------------------//

func TestNeighbours_Orders(t *testing.T) {
	g, err := grid.NewWithEndpoints(3, 3, grid.Pt(0, 0), grid.Pt(2, 2))
	require.NoError(t, err)
	c := grid.Pt(1, 1)

	assert.Equal(t,
		[]grid.Point{{X: 1, Y: 2}, {X: 2, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		g.Neighbours(c, grid.SouthFirst))
	assert.Equal(t,
		[]grid.Point{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 1}},
		g.Neighbours(c, grid.NorthFirst))
}

func TestNeighbours_CornerDropsOutOfBounds(t *testing.T) {
	g, err := grid.NewWithEndpoints(3, 3, grid.Pt(0, 0), grid.Pt(2, 2))
	require.NoError(t, err)

	assert.Equal(t, []grid.Point{{X: 0, Y: 1}, {X: 1, Y: 0}}, g.Neighbours(grid.Pt(0, 0), grid.SouthFirst))
	assert.Equal(t, []grid.Point{{X: 2, Y: 1}, {X: 1, Y: 2}}, g.Neighbours(grid.Pt(2, 2), grid.NorthFirst))
}

//----------------------------------------------------------------------------//
// Clear and Clone
//----------------------------------------------------------------------------//

func TestClear(t *testing.T) {
	g := grid.MustParse(
		"S#o",
		"*#E",
	)
	changed := g.Clear(grid.IsMark)
	assert.Equal(t, []grid.Point{{X: 0, Y: 1}, {X: 2, Y: 0}}, changed)
	assert.Equal(t, "S#.\n.#E", g.String())

	changed = g.Clear(grid.Any(grid.IsWall, grid.IsMark))
	assert.Len(t, changed, 2)
	assert.Equal(t, "S..\n..E", g.String())

	assert.Empty(t, g.Clear(func(grid.State) bool { return true }), "endpoints survive a catch-all clear")
}

func TestClone_Independent(t *testing.T) {
	g := grid.MustParse("S..E")
	c := g.Clone()
	_, _, err := c.Toggle(grid.Pt(1, 0))
	require.NoError(t, err)

	assert.Equal(t, grid.Empty, g.MustGet(grid.Pt(1, 0)))
	assert.Equal(t, grid.Wall, c.MustGet(grid.Pt(1, 0)))
	assert.Equal(t, g.Start(), c.Start())
}

//----------------------------------------------------------------------------//
// Layout and encoding
//----------------------------------------------------------------------------//

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
	}{
		{"Empty", nil},
		{"Ragged", []string{"S.", "E"}},
		{"Unknown", []string{"S?E"}},
		{"NoEnd", []string{"S.."}},
		{"TwoStarts", []string{"SSE"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.Parse(tc.lines)
			assert.ErrorIs(t, err, grid.ErrBadLayout)
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	art := "S.#\n.o*\n#.E"
	g := grid.MustParse("S.#", ".o*", "#.E")
	assert.Equal(t, art, g.String())
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, grid.Pt(0, 0), g.Start())
	assert.Equal(t, grid.Pt(2, 2), g.End())
	assert.Equal(t, grid.Path, g.MustGet(grid.Pt(2, 1)))
}

func TestState_JSON(t *testing.T) {
	b, err := json.Marshal(map[string]grid.State{"s": grid.Explored})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"explored"}`, string(b))

	var s grid.State
	require.NoError(t, json.Unmarshal([]byte(`"wall"`), &s))
	assert.Equal(t, grid.Wall, s)
	assert.Error(t, json.Unmarshal([]byte(`"lava"`), &s))
}
