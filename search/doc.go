// Package search finds a route between two positions of a core.Graph,
// honouring junction semantics: a hop across a vertex is taken only when
// an explicit pair (or the implicit straight-through at an interior
// vertex) authorizes the turn. The result is a valid path, not a
// minimum-cost one.
//
// What:
//
//   - Find runs a breadth-first expansion over directed vertex hops. The
//     frontier carries (vertex, previous vertex); a neighbour is enqueued
//     only when the vertex's pair table authorizes prev→neighbour.
//   - Endpoints may be vertices or free (edge, offset) positions. Free
//     positions are materialized by reusing the exact vertex at that
//     offset or synthesizing one via Split; every synthesized vertex is
//     torn down again by Unsplit on all return paths, success or failure.
//     Synthesized endpoints come back with a blank vertex identifier and
//     the free position re-expressed on the post-cleanup edge.
//   - A direction hint (Toward) restricts the first hop to the pairs
//     compatible with having arrived from the given neighbour.
//
// Termination:
//
//   - The visited set is keyed on the directed hop, so the expansion is
//     bounded by twice the edge count; an optional pop budget (default
//     10⁴) additionally guards adversarial graphs, and the context
//     cancels long runs.
//
// Errors:
//
//   - ErrNoPath, ErrInvalidEndpoint, ErrBudgetExceeded, ErrGraphNil,
//     ErrOptionViolation; a failed cleanup surfaces the graph's
//     core.ErrInternalInvariant.
package search
