// Package algorithms is the selection layer: a registry of named pathfinding
// and maze algorithms that hosts look up by a stable key.
//
// Default() registers, in menu order:
//
//   - "dijkstra"          Dijkstra's           (pathfinding)
//   - "dfs"               Depth first search   (pathfinding)
//   - "recursive_divide"  Recursive Divide     (maze)
//
// Entries are opaque callables: a search.Algorithm or a MazeAlgorithm. The
// registry never touches a grid itself.
package algorithms
