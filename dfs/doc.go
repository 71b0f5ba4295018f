// Package dfs implements stack-based depth-first search over a grid snapshot.
//
// The search pushes the source, then repeatedly pops the most recently pushed
// cell. Every unvisited, non-wall neighbour of a popped cell is pushed in the
// configured Order with the popped cell recorded as its predecessor, so the
// last neighbour pushed is the first one explored. The resulting trace is
// depth-biased and the route is generally not the shortest one.
//
// Key features:
//   - Solve(g, source, target, opts...): explored cells plus the predecessor route.
//   - Deterministic: the same grid, endpoints and Order give the same Result.
//   - Cancellation via context.Context, checked once per pop.
//
// Complexity:
//
//   - Time:   O(V + E); each cell is visited once, pushed at most four times.
//   - Memory: O(V) for the stack, visited set and predecessor map.
//
// Options:
//
//   - WithOrder(order)     neighbour push order (default grid.NorthFirst).
//   - WithOnVisit(fn)      hook on each cell appended to Explored.
//   - WithContext(ctx)     abort early when ctx is done.
//
// Errors:
//
//   - search.ErrNilGrid    if g is nil.
//   - grid.ErrOutOfBounds  if source or target is outside g.
//   - ctx.Err()            if the context is cancelled mid-search.
package dfs
