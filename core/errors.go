package core

import "errors"

// Sentinel errors for graph operations. Callers branch with errors.Is;
// implementations attach context via %w wrapping and never panic.
var (
	// ErrDuplicateID indicates a caller-supplied identifier already exists.
	ErrDuplicateID = errors.New("core: duplicate identifier")

	// ErrUnknownID indicates an operation referenced a vertex or edge that
	// does not exist (or no longer exists).
	ErrUnknownID = errors.New("core: unknown identifier")

	// ErrSameVertex indicates both endpoints of a requested edge are the
	// same vertex.
	ErrSameVertex = errors.New("core: same vertex on both sides")

	// ErrBadLength indicates a non-positive edge length.
	ErrBadLength = errors.New("core: edge length must be positive")

	// ErrBadOffset indicates an offset outside the open interval of valid
	// interior positions, or one already occupied by a vertex.
	ErrBadOffset = errors.New("core: bad offset on edge")

	// ErrAlreadyConnected indicates the two vertices already share an edge.
	ErrAlreadyConnected = errors.New("core: vertices already connected")

	// ErrNotConnected indicates the two vertices share no edge.
	ErrNotConnected = errors.New("core: vertices not connected")

	// ErrSplitOccupied indicates the split target vertex is not isolated
	// from the edge being split.
	ErrSplitOccupied = errors.New("core: split target vertex is not isolated")

	// ErrSameEdgeJoin indicates both legs of a join resolve to one edge.
	ErrSameEdgeJoin = errors.New("core: join legs resolve to the same edge")

	// ErrMergeOnSameEdge indicates a merge would place the surviving vertex
	// twice on a single edge.
	ErrMergeOnSameEdge = errors.New("core: merge would self-loop an edge")

	// ErrDoubleConnection indicates a merge would leave two distinct edges
	// sharing two vertices.
	ErrDoubleConnection = errors.New("core: merge would double-connect edges")

	// ErrNoVertex indicates no vertex satisfies a positional query.
	ErrNoVertex = errors.New("core: no vertex at requested position")

	// ErrInternalInvariant indicates a broken structural invariant: a bug.
	// A graph that produced it must be discarded, not repaired.
	ErrInternalInvariant = errors.New("core: internal invariant violated")
)
