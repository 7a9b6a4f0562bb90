// Package reserve implements the snake/reservation engine: a per-edge
// interval-reservation layer on top of a core.Graph that lets snakes,
// contiguous paths of integer measure, grow, shrink and translate by
// one end while respecting edge-interval occupancy and per-junction
// exclusivity.
//
// What:
//
//   - Engine keeps, per edge, an ordered list of disjoint half-open
//     integer intervals labelled with the owning snake (backed by a
//     red-black tree keyed on the interval's low offset), and, per
//     vertex, the set of snakes touching it.
//   - Grow extends a snake at its head or tail, consuming free interval
//     space and asking a caller-supplied Oracle to pick the next edge
//     whenever the advancing end reaches a vertex with a routing choice.
//   - Shrink contracts an end, releasing intervals and vertex occupancy;
//     Move is a length-preserving grow-then-shrink translation.
//   - The engine registers itself as the graph's SplitObserver: when the
//     structural layer subdivides an edge, crossing reservations are
//     re-labelled onto the halves and affected snake paths are patched in
//     place; rejoining an edge reverses both exactly.
//
// Growth state machine, per advancing end:
//
//	InEdge   : the end sits strictly inside its edge; consuming slack
//	           moves the end offset toward zero.
//	AtVertex : the end sits on its end vertex; the Oracle picks the next
//	           edge among the through-routable candidates.
//	Halted   : no candidate, a foreign reservation abuts the contact
//	           point, or the vertex is shared with another snake.
//
// A snake arriving at a vertex occupied by another snake stops at the
// vertex and shares the occupancy; it makes no further progress until the
// occupancy drops back to one.
//
// Invariants:
//
//   - Intervals on one edge are pairwise disjoint.
//   - The union of a snake's intervals and endpoint occupancies equals the
//     region spanned by its vertex sequence and end offsets, and measures
//     exactly the snake's length. Validate sweeps both.
//
// Concurrency: none. The engine is single-threaded and cooperative, like
// the graph it observes.
package reserve
