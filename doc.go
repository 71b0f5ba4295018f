// Package pathviz animates grid pathfinding: a search runs to completion
// up front and its visit order is then replayed cell by cell, followed by
// the recovered path.
//
// Layout:
//
//	grid/       — the 2-D cell grid, endpoints, walls and text layouts
//	search/     — the Algorithm contract and path reconstruction
//	dijkstra/   — uniform-cost search with a fixed neighbour order
//	dfs/        — iterative depth-first search
//	maze/       — recursive-division maze generation
//	algorithms/ — name → algorithm registry
//	playback/   — timed replay of a search result, per-cell colour fades
//	internal/   — config, render (PNG/ANSI), run history, sessions, HTTP
//	cmd/        — pathviz (terminal) and pathviz-server (HTTP + websocket)
//
// A 3×1 grid solved by DFS:
//
//	S.E  →  S*E
//
// Coordinates: X runs along Rows, Y along Cols; a text layout prints one
// line per Y.
package pathviz
