// Package dijkstra_test covers validation, the documented scenarios, exact
// visitation order and randomized shortest-path properties.
package dijkstra_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathviz/dijkstra"
	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/search"
)

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestSolve_NilGrid(t *testing.T) {
	_, err := dijkstra.Solve(nil, grid.Pt(0, 0), grid.Pt(1, 0))
	assert.ErrorIs(t, err, search.ErrNilGrid)
}

func TestSolve_OutOfBounds(t *testing.T) {
	g := grid.MustParse("S.E")
	_, err := dijkstra.Solve(g, grid.Pt(0, 0), grid.Pt(0, 4))
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)
}

// ------------------------------------------------------------------------
// 2. Edge cases
// ------------------------------------------------------------------------

func TestSolve_SourceEqualsTarget(t *testing.T) {
	g := grid.MustParse(
		"S..",
		"..E",
	)
	res, err := dijkstra.Solve(g, g.Start(), g.Start())
	require.NoError(t, err)
	assert.Empty(t, res.Explored)
	assert.Empty(t, res.Path)
	assert.True(t, res.Found)
}

func TestSolve_AdjacentEndpoints(t *testing.T) {
	g := grid.MustParse("SE.")
	res, err := dijkstra.Solve(g, g.Start(), g.End())
	require.NoError(t, err)
	assert.Empty(t, res.Explored)
	assert.Empty(t, res.Path)
	assert.True(t, res.Found)
}

func TestSolve_Corridor(t *testing.T) {
	g := grid.MustParse("S.E")
	res, err := dijkstra.Solve(g, g.Start(), g.End())
	require.NoError(t, err)
	assert.Equal(t, []grid.Point{{X: 1, Y: 0}}, res.Explored)
	assert.Equal(t, []grid.Point{{X: 1, Y: 0}}, res.Path)
}

// ------------------------------------------------------------------------
// 3. Documented scenarios
// ------------------------------------------------------------------------

func TestSolve_WallWithGap(t *testing.T) {
	g := grid.MustParse(
		"S.#..",
		"..#..",
		"..#..",
		"..#..",
		"....E",
	)
	res, err := dijkstra.Solve(g, g.Start(), g.End())
	require.NoError(t, err)

	// 8 moves from (0,0) to (4,4): 7 cells strictly between.
	assert.Len(t, res.Path, 7)
	assert.Contains(t, res.Path, grid.Pt(2, 4))
	assertContiguous(t, g, res.Path)
}

func TestSolve_SealedColumn(t *testing.T) {
	g := grid.MustParse(
		"S.#..",
		"..#..",
		"..#..",
		"..#..",
		"..#.E",
	)
	res, err := dijkstra.Solve(g, g.Start(), g.End())
	require.NoError(t, err)

	assert.Empty(t, res.Path)
	assert.False(t, res.Found)
	assert.Len(t, res.Explored, 9)
	for _, p := range res.Explored {
		assert.Less(t, p.X, 2, "explored %v crosses the sealed column", p)
	}
}

// ------------------------------------------------------------------------
// 4. Exact visitation order
// ------------------------------------------------------------------------

func TestSolve_TieBreakFirstInFrontier(t *testing.T) {
	g := grid.MustParse(
		"...",
		".S.",
		"..E",
	)
	res, err := dijkstra.Solve(g, g.Start(), g.End())
	require.NoError(t, err)

	assert.Equal(t, []grid.Point{
		{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: 1},
		{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: 0},
	}, res.Explored)
	assert.Equal(t, []grid.Point{{X: 1, Y: 2}}, res.Path)
}

func TestSolve_OrderDoesNotAffectResult(t *testing.T) {
	g := grid.MustParse(
		"S..",
		"...",
		"..E",
	)
	south, err := dijkstra.Solve(g, g.Start(), g.End())
	require.NoError(t, err)
	north, err := dijkstra.Solve(g, g.Start(), g.End(), dijkstra.WithOrder(grid.NorthFirst))
	require.NoError(t, err)

	// Extraction order is fixed by the frontier, and one relaxation step only
	// lowers distances, so the neighbour order leaves no trace.
	assert.Equal(t, south, north)
	assert.Equal(t, []grid.Point{{X: 0, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}}, south.Path)
}

func TestSolve_ContextCancelled(t *testing.T) {
	g := grid.MustParse("S...E")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dijkstra.Solve(g, g.Start(), g.End(), dijkstra.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolve_OnVisitHook(t *testing.T) {
	g := grid.MustParse("S..E")
	var seen []grid.Point
	res, err := dijkstra.Solve(g, g.Start(), g.End(), dijkstra.WithOnVisit(func(p grid.Point) {
		seen = append(seen, p)
	}))
	require.NoError(t, err)
	assert.Equal(t, res.Explored, seen)
}

// ------------------------------------------------------------------------
// 5. Properties over random grids
// ------------------------------------------------------------------------

func TestSolve_RandomGrids(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		g := randomGrid(t, seed, 12, 9, 0.3)
		before := g.String()

		res, err := dijkstra.Solve(g, g.Start(), g.End())
		require.NoError(t, err)
		again, err := dijkstra.Solve(g, g.Start(), g.End())
		require.NoError(t, err)

		assert.Equal(t, before, g.String(), "seed %d: grid mutated", seed)
		assert.Equal(t, res, again, "seed %d: not idempotent", seed)

		for _, p := range res.Explored {
			assert.NotEqual(t, grid.Wall, g.MustGet(p), "seed %d: explored a wall", seed)
			assert.NotEqual(t, g.Start(), p)
			assert.NotEqual(t, g.End(), p)
		}

		want := shortest(g, g.Start(), g.End())
		switch {
		case want < 0:
			assert.Empty(t, res.Path, "seed %d: unreachable target", seed)
		case want == 1:
			assert.Empty(t, res.Path, "seed %d: adjacent endpoints", seed)
		default:
			assert.Len(t, res.Path, want-1, "seed %d: not shortest", seed)
			assertContiguous(t, g, res.Path)
		}
	}
}

// randomGrid returns a rows×cols grid with walls at the given density.
func randomGrid(t *testing.T, seed int64, rows, cols int, density float64) *grid.Grid {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	g, err := grid.New(rows, cols, rng)
	require.NoError(t, err)
	g.Cells(func(p grid.Point, s grid.State) {
		if s == grid.Empty && rng.Float64() < density {
			_, _ = g.SetIfMutable(p, grid.Wall)
		}
	})
	return g
}

// shortest returns the number of moves between a and b, or -1.
func shortest(g *grid.Grid, a, b grid.Point) int {
	dist := map[grid.Point]int{a: 0}
	queue := []grid.Point{a}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		if u == b {
			return dist[u]
		}
		for _, v := range g.Neighbours(u, grid.SouthFirst) {
			if _, seen := dist[v]; seen || g.MustGet(v) == grid.Wall {
				continue
			}
			dist[v] = dist[u] + 1
			queue = append(queue, v)
		}
	}
	return -1
}

// assertContiguous checks that path is a wall-free walk between the grid's
// endpoints with no repeated cell.
func assertContiguous(t *testing.T, g *grid.Grid, path []grid.Point) {
	t.Helper()
	walk := append([]grid.Point{g.Start()}, path...)
	walk = append(walk, g.End())
	seen := map[grid.Point]bool{}
	for i, p := range walk {
		assert.False(t, seen[p], "repeated cell %v", p)
		seen[p] = true
		assert.NotEqual(t, grid.Wall, g.MustGet(p))
		if i == 0 {
			continue
		}
		dx, dy := p.X-walk[i-1].X, p.Y-walk[i-1].Y
		assert.Equal(t, 1, dx*dx+dy*dy, "gap between %v and %v", walk[i-1], p)
	}
}
