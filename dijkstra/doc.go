// Package dijkstra runs uniform-cost frontier search over a grid snapshot and
// reports the order in which cells were finalized plus the route found.
//
// Overview:
//
//   - Every non-wall cell starts in the frontier with distance +∞; the source
//     starts at 0. Each step extracts the frontier member with minimum distance
//     and relaxes its neighbours with unit edge cost.
//   - Extraction is a linear scan over the frontier in X-major order. Ties go to
//     the first member in that order, which makes Explored fully determined by
//     the grid, the endpoints and the neighbour Order.
//   - The search stops when the target is extracted or when only unreachable
//     (+∞) cells remain.
//
// When to use:
//
//   - Interactive grids of a few thousand cells, where the O(V²) scan is cheap
//     and the exact visitation order is part of what the user watches.
//
// Complexity:
//
//   - Time:  O(V²) for V non-wall cells (linear extract-min per step).
//   - Space: O(V) for distance, predecessor and frontier bookkeeping.
//
// Options:
//
//   - WithContext(ctx):           cancellation, checked once per extraction.
//   - WithOrder(grid.Order):      neighbour order for relaxation (default SouthFirst).
//   - WithOnVisit(func(Point)):   hook called for each cell appended to Explored.
//
// Errors:
//
//   - search.ErrNilGrid     if the grid is nil.
//   - grid.ErrOutOfBounds   if source or target lie outside the grid.
//   - ctx.Err()             if the context is cancelled mid-search.
//
// An unreachable target is not an error: Path is empty and Explored holds the
// source's component.
package dijkstra
