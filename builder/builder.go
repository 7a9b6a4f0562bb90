// Package builder assembles common track layouts on a core.Graph:
// straight lines, closed loops, and the two junction archetypes the
// routing rules distinguish: a wye (both branches joined to the stem)
// and a crossing (two lines touching without joining).
//
// All constructors validate parameters first and mutate only on success;
// they return the created vertices so callers can wire snakes and extra
// pairs onto them. Deterministic: the same calls produce the same
// topology and the same identifier order.
package builder

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/trackway/core"
)

// Sentinel errors for layout constructors.
var (
	// ErrTooFewSegments indicates a segment count below the minimum for
	// the requested layout.
	ErrTooFewSegments = errors.New("builder: too few segments")

	// ErrBadSpan indicates a non-positive segment span.
	ErrBadSpan = errors.New("builder: span must be positive")
)

// Line creates a chain of n segments of equal span and returns its n+1
// vertices in order. Every interior vertex is joined straight through,
// so the whole run is traversable end to end. Complexity: O(n).
func Line(g *core.Graph, n int, span int64) ([]core.VertexID, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrTooFewSegments, n)
	}
	if span <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadSpan, span)
	}

	verts := make([]core.VertexID, n+1)
	for i := range verts {
		verts[i] = g.AddVertex()
	}
	for i := 0; i < n; i++ {
		if _, err := g.Connect(verts[i], verts[i+1], span); err != nil {
			return nil, fmt.Errorf("builder: line segment %d: %w", i, err)
		}
	}
	for i := 1; i < n; i++ {
		if _, err := g.Join(verts[i-1], verts[i], verts[i+1]); err != nil {
			return nil, fmt.Errorf("builder: line join %d: %w", i, err)
		}
	}

	return verts, nil
}

// Loop creates a closed ring of n segments (n ≥ 3) joined through at
// every vertex and returns its vertices in ring order. Complexity: O(n).
func Loop(g *core.Graph, n int, span int64) ([]core.VertexID, error) {
	if n < 3 {
		return nil, fmt.Errorf("%w: %d (loop needs 3)", ErrTooFewSegments, n)
	}
	if span <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadSpan, span)
	}

	verts := make([]core.VertexID, n)
	for i := range verts {
		verts[i] = g.AddVertex()
	}
	for i := range verts {
		if _, err := g.Connect(verts[i], verts[(i+1)%n], span); err != nil {
			return nil, fmt.Errorf("builder: loop segment %d: %w", i, err)
		}
	}
	for i := range verts {
		prev := verts[(i+n-1)%n]
		next := verts[(i+1)%n]
		if _, err := g.Join(prev, verts[i], next); err != nil {
			return nil, fmt.Errorf("builder: loop join %d: %w", i, err)
		}
	}

	return verts, nil
}

// Wye creates a three-way junction: a stem joined through to both
// branches. Returns centre, stem, left, right. The branches are not
// joined to each other. Complexity: O(1).
func Wye(g *core.Graph, arm int64) (centre, stem, left, right core.VertexID, err error) {
	if arm <= 0 {
		return "", "", "", "", fmt.Errorf("%w: %d", ErrBadSpan, arm)
	}

	centre, stem = g.AddVertex(), g.AddVertex()
	left, right = g.AddVertex(), g.AddVertex()
	for _, leg := range []core.VertexID{stem, left, right} {
		if _, err = g.Connect(centre, leg, arm); err != nil {
			return "", "", "", "", fmt.Errorf("builder: wye leg: %w", err)
		}
	}
	if _, err = g.Join(stem, centre, left); err != nil {
		return "", "", "", "", fmt.Errorf("builder: wye join: %w", err)
	}
	if _, err = g.Join(stem, centre, right); err != nil {
		return "", "", "", "", fmt.Errorf("builder: wye join: %w", err)
	}

	return centre, stem, left, right, nil
}

// Cross creates a four-way crossing with no pairs at all: the two lines
// touch without joining, so nothing is through-routable until the caller
// adds pairs. Returns centre, north, east, south, west. Complexity: O(1).
func Cross(g *core.Graph, arm int64) (centre, north, east, south, west core.VertexID, err error) {
	if arm <= 0 {
		return "", "", "", "", "", fmt.Errorf("%w: %d", ErrBadSpan, arm)
	}

	centre = g.AddVertex()
	arms := make([]core.VertexID, 4)
	for i := range arms {
		arms[i] = g.AddVertex()
		if _, err = g.Connect(centre, arms[i], arm); err != nil {
			return "", "", "", "", "", fmt.Errorf("builder: cross arm: %w", err)
		}
	}

	return centre, arms[0], arms[1], arms[2], arms[3], nil
}
