// Package core implements a dynamic, geometry-free transportation graph:
// an ordered multigraph whose edges carry integer length, whose interior
// can be subdivided at any integer offset, and whose vertices carry
// junction ("pair") information restricting which incident edge-directions
// are through-routable.
//
// What:
//
//   - Graph owns vertices and edges exclusively; callers hold only opaque,
//     never-reused identifiers (VertexID, EdgeID).
//   - Connect builds an edge of integer length between two vertices.
//   - Split subdivides an edge at an interior offset, replacing it with two
//     halves and keeping the halves through-routable by default.
//   - Unsplit reverses a Split whose middle vertex acquired no new
//     incidences (the search layer relies on this for endpoint cleanup).
//   - Join authorizes a turn across a junction vertex; Merge fuses two
//     vertices into one, transferring edges and pairs.
//   - Query primitives locate vertices along edges, resolve through-routable
//     neighbour pairs, and find the unique segment between two vertices.
//
// Positions and signs:
//
//   - Every position on an edge is an integer offset in [0, length],
//     measured from the edge's low vertex. There is no floating point
//     anywhere in this package.
//   - A Sign (+1 or -1) denotes a direction along an edge: +1 toward the
//     high end, -1 toward the low end. A Pair is a canonical 2-set of
//     (edge, sign) sides; equality is plain value equality.
//
// Invariants (re-established before every public call returns):
//
//   - Edge endpoints sit at offsets 0 and length; interior offsets are
//     strictly increasing.
//   - A vertex lists an edge in its holder set iff the edge lists the
//     vertex.
//   - Two distinct edges share at most one vertex, and no vertex appears
//     twice on one edge.
//   - Every pair at a vertex references edges of its holder set.
//
// Concurrency:
//
//   - A Graph is NOT safe for concurrent use. The engine is single-threaded
//     and cooperative: every operation runs to completion, and embedders
//     running multiple goroutines must serialize all calls through a single
//     owner.
//
// Errors:
//
//   - All domain and structural faults are sentinel errors reported before
//     any mutation; see errors.go. ErrInternalInvariant signals a bug; the
//     graph keeps no record of having reported it and does not refuse
//     later calls.
package core
