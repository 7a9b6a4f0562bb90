// Package session is the thin façade owning one graph and one
// reservation engine. It forwards structural edits, materializes snake
// anchors, drives a per-tick snake stepper with a configurable bounce
// policy, and fans out change notifications to subscribers.
//
// What:
//
//   - Session owns the core.Graph, the reserve.Engine and the identifier
//     sequences behind both, so independent sessions never share state.
//   - Structural edits (AddVertex, Connect, Split, Join, Merge) forward
//     to the graph; each successful mutation emits EventUpdate.
//   - AddSnakeAt accepts a vertex or a free edge position; free positions
//     are materialized by reusing the exact vertex there or splitting.
//   - Step translates every registered snake by the tick delta at its
//     current direction. A snake blocked mid-step (partial growth, or a
//     vertex shared with another snake) flips its direction bit under
//     the default bounce policy; the translation itself is always
//     length-preserving.
//   - Merge is refused with ErrVertexBusy while either vertex carries
//     reservation state; release the snakes first. This is the ordering
//     that keeps the engine's identifier-based indexes coherent.
//
// Events are fire-and-forget and carry no payload; subscribers re-read
// whatever state they need. Dispatch is synchronous and in subscription
// order. The session is the only layer aware of wall-clock ticks, and,
// like everything beneath it, it is single-threaded: callers running
// goroutines must serialize through one owner.
package session
