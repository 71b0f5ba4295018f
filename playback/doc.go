// Package playback turns a static search result into a paced stream of cell
// updates on a live grid, and keeps that stream safe against user edits.
//
// A Scheduler owns one grid. Every mutation (wall toggles, solves, maze runs,
// clears) goes through it and is serialized by a single mutex, so timer
// callbacks and user input never interleave inside an update.
//
// Job life cycle:
//
//	Idle ──Solve──▶ Exploring ──(queue empty + PathDelay)──▶ PathDrawing ──▶ Idle
//
//   - Solve cancels the running job, clears Explored/Path marks, runs the
//     algorithm on a snapshot, and schedules the first tick immediately.
//   - Each Exploring tick marks one cell Explored, every Interval. The queue is
//     consumed newest-first by default (see ReplayOrder).
//   - When the explored queue is empty the job waits PathDelay, then marks Path
//     cells from source to target at the same cadence.
//   - Cancellation flips the job's flag and stops its pending timer before any
//     cell is touched. A callback that already fired sees the flag under the
//     lock and returns.
//
// Fades:
//
//	Every committed Wall, Explored or Path cell is drawn as FadeSteps+1 frames,
//	FadeInterval apart. Each frame re-reads the live cell and the fade stops,
//	without drawing, once the cell holds a different state. Other states are
//	drawn once.
//
// Time is abstracted behind Clock. RealClock uses time.AfterFunc; ManualClock
// only moves when told to, which makes tests exact and lets a host replay a
// whole job instantly.
package playback
