// Package grid holds the live state of the visualizer: a fixed-size rectangle
// of cells, each in exactly one State, with a single Start and a single End.
//
// What:
//
//   - Grid stores Rows×Cols cells. A Point{X, Y} addresses X in [0, Rows) and
//     Y in [0, Cols); Y grows downward on screen.
//   - Start and End are placed once, at creation, and are never overwritten by
//     ordinary edits (SetIfMutable, Toggle, Clear).
//   - Neighbours enumerates orthogonal in-bounds cells in a fixed Order so that
//     every search over the grid is deterministic.
//
// Orders:
//
//   - SouthFirst: (0,+1), (+1,0), (0,-1), (-1,0). Used by Dijkstra.
//   - NorthFirst: (0,-1), (+1,0), (0,+1), (-1,0). Used by DFS.
//
// Errors:
//
//   - ErrEmptyGrid:   rows or cols below one.
//   - ErrTooSmall:    grid cannot host distinct Start and End cells.
//   - ErrTooLarge:    rows×cols above MaxCells.
//   - ErrOutOfBounds: a Point outside the grid extent.
//   - ErrBadEndpoint: explicit Start/End coincide or fall outside the grid.
//   - ErrBadLayout:   Parse input is empty, ragged, or carries unknown symbols.
//
// Complexity:
//
//   - Get, SetIfMutable, Toggle, Neighbours: O(1).
//   - Clone, Clear, Cells:                  O(Rows×Cols).
//
// Grid is not safe for concurrent use; the playback scheduler serializes access
// to the live grid, and algorithms only ever see a Clone.
package grid
