// Package maze fills a grid with walls by recursive division.
//
// What:
//
//   - RecursiveDivide splits the grid with a wall line, leaves one passage
//     open in it, and recurses into both halves until a region is thinner than
//     two cells.
//   - Wall lines sit at odd offsets from the region origin and passages at even
//     offsets, so every origin is even, every wall lies on an odd row or column,
//     and a later line can never block an earlier passage. The open cells stay
//     connected.
//   - Only Empty cells are turned into walls; Start and End survive untouched.
//
// Randomness:
//
//   - Topology depends on the random source. WithSeed and WithRand make a run
//     reproducible; the default source is seeded from the clock.
//
// Preconditions:
//
//   - The grid should be free of walls. The host clears them first.
//
// Complexity: O(Rows×Cols) cells written, O(log) recursion depth per axis.
package maze
