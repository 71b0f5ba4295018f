// Package search defines the contract shared by every pathfinding variant:
// the Result value, the Algorithm capability, and predecessor-walk path
// reconstruction.
//
// A Result is a pure value computed from a grid snapshot:
//
//   - Explored lists visited cells in visitation order, without source/target.
//   - Path lists the cells strictly between source and target, start→end.
//     It is empty when the target is unreachable or adjacent.
//
// Algorithms never mutate the grid they are given.
package search
