// Package core: structural invariant sweep.
package core

import "fmt"

// Validate walks the whole graph and reports the first violated
// structural invariant, wrapped in ErrInternalInvariant. A healthy graph
// returns nil. Intended for tests and defensive checks after batches of
// mutations; every public operation preserves these properties on its
// own. Complexity: O(V + E·P + E·S).
func (g *Graph) Validate() error {
	for id, e := range g.edges {
		if e.length <= 0 {
			return fmt.Errorf("%w: edge %q has length %d", ErrInternalInvariant, id, e.length)
		}
		if len(e.points) < 2 {
			return fmt.Errorf("%w: edge %q has %d points", ErrInternalInvariant, id, len(e.points))
		}
		if e.low().At != 0 || e.high().At != e.length {
			return fmt.Errorf("%w: edge %q endpoints at %d and %d, want 0 and %d",
				ErrInternalInvariant, id, e.low().At, e.high().At, e.length)
		}
		seen := make(map[VertexID]struct{}, len(e.points))
		for i, p := range e.points {
			if i > 0 && p.At <= e.points[i-1].At {
				return fmt.Errorf("%w: edge %q offsets not strictly increasing at %d",
					ErrInternalInvariant, id, p.At)
			}
			if _, dup := seen[p.Vertex]; dup {
				return fmt.Errorf("%w: edge %q holds %q twice", ErrInternalInvariant, id, p.Vertex)
			}
			seen[p.Vertex] = struct{}{}
			v, live := g.vertices[p.Vertex]
			if !live {
				return fmt.Errorf("%w: edge %q references dead vertex %q", ErrInternalInvariant, id, p.Vertex)
			}
			if !v.holds(id) {
				return fmt.Errorf("%w: %q on edge %q but edge not in holder set",
					ErrInternalInvariant, p.Vertex, id)
			}
		}
	}

	for id, v := range g.vertices {
		for _, h := range v.holders {
			e, live := g.edges[h]
			if !live {
				return fmt.Errorf("%w: vertex %q holds dead edge %q", ErrInternalInvariant, id, h)
			}
			if e.find(id) < 0 {
				return fmt.Errorf("%w: vertex %q holds edge %q but is not on it",
					ErrInternalInvariant, id, h)
			}
		}
		for _, p := range v.pairs {
			if p[0] == p[1] {
				return fmt.Errorf("%w: degenerate pair at %q", ErrInternalInvariant, id)
			}
			for _, s := range p {
				if !v.holds(s.Edge) {
					return fmt.Errorf("%w: pair at %q references non-incident edge %q",
						ErrInternalInvariant, id, s.Edge)
				}
				if !g.sideResolves(v, s) {
					return fmt.Errorf("%w: pair side at %q points off edge %q",
						ErrInternalInvariant, id, s.Edge)
				}
			}
		}
	}

	// No two distinct edges share more than one vertex, and sibling caches
	// match the sharing relation.
	for id, e := range g.edges {
		actual := make(map[EdgeID]struct{})
		for _, p := range e.points {
			for _, h := range g.vertices[p.Vertex].holders {
				if h == id {
					continue
				}
				if _, dup := actual[h]; dup {
					return fmt.Errorf("%w: edges %q and %q share two vertices",
						ErrInternalInvariant, id, h)
				}
				actual[h] = struct{}{}
			}
		}
		if len(actual) != len(e.siblings) {
			return fmt.Errorf("%w: edge %q sibling cache out of date", ErrInternalInvariant, id)
		}
		for sib := range actual {
			if _, ok := e.siblings[sib]; !ok {
				return fmt.Errorf("%w: edge %q missing sibling %q", ErrInternalInvariant, id, sib)
			}
		}
	}

	return nil
}
