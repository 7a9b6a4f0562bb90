// Package core: vertex lifecycle (creation and merge).
package core

import "fmt"

// AddVertex creates an isolated vertex with a fresh identifier and returns
// it. Complexity: O(1) amortized.
func (g *Graph) AddVertex() VertexID {
	id := g.allocVertexID()
	g.insertVertex(id)

	return id
}

// AddVertexWithID creates an isolated vertex under a caller-chosen
// identifier. Returns ErrDuplicateID if the identifier was ever issued,
// including identifiers retired by Merge. Complexity: O(1) amortized.
func (g *Graph) AddVertexWithID(id VertexID) (VertexID, error) {
	if id == AutoVertex {
		return "", fmt.Errorf("%w: empty vertex id", ErrUnknownID)
	}
	if _, taken := g.takenV[id]; taken {
		return "", fmt.Errorf("%w: vertex %q", ErrDuplicateID, id)
	}
	g.insertVertex(id)

	return id, nil
}

func (g *Graph) insertVertex(id VertexID) {
	g.vertices[id] = &vertex{id: id}
	g.vertexSeq = append(g.vertexSeq, id)
	g.takenV[id] = struct{}{}
}

// HasVertex reports whether id names a live vertex. Complexity: O(1).
func (g *Graph) HasVertex(id VertexID) bool {
	_, ok := g.vertices[id]
	return ok
}

// Merge fuses two vertices into one and returns the survivor.
//
// The survivor is the vertex with the larger holder set; ties keep a.
// Merging a vertex with itself is a no-op. Every edge of the loser is
// rewritten in place to reference the survivor at the same offset; pairs
// from both sides are unioned in canonical form; sibling sets of all
// affected edges are recomputed. Both structural checks run before any
// mutation, so a failed Merge leaves the graph untouched:
//
//   - ErrMergeOnSameEdge if some edge would list the survivor twice;
//   - ErrDoubleConnection if two distinct edges would share two vertices.
//
// Complexity: O(H² · P) for H incident edges of both vertices and P points
// per edge: the immediate neighbourhood only.
func (g *Graph) Merge(a, b VertexID) (VertexID, error) {
	va, err := g.vertexRec(a)
	if err != nil {
		return "", err
	}
	vb, err := g.vertexRec(b)
	if err != nil {
		return "", err
	}
	if a == b {
		return a, nil
	}

	winner, loser := va, vb
	if len(vb.holders) > len(va.holders) {
		winner, loser = vb, va
	}

	// Preflight: no edge may end up holding the survivor twice.
	for _, eid := range loser.holders {
		if g.edges[eid].find(winner.id) >= 0 {
			return "", fmt.Errorf("%w: edge %q holds both %q and %q",
				ErrMergeOnSameEdge, eid, winner.id, loser.id)
		}
	}

	// Preflight: after substitution, every pair of distinct edges incident
	// to either vertex must still share at most one vertex. Edges not
	// incident to the survivor cannot gain a shared vertex, so the union
	// of both holder sets covers all pairs at risk.
	affected := make([]EdgeID, 0, len(winner.holders)+len(loser.holders))
	affected = append(affected, winner.holders...)
	affected = append(affected, loser.holders...)
	for i := 0; i < len(affected); i++ {
		for j := i + 1; j < len(affected); j++ {
			if affected[i] == affected[j] {
				continue
			}
			if g.sharedAfterMerge(affected[i], affected[j], loser.id, winner.id) > 1 {
				return "", fmt.Errorf("%w: edges %q and %q",
					ErrDoubleConnection, affected[i], affected[j])
			}
		}
	}

	// Rewrite the loser's edges in place; offsets do not move.
	for _, eid := range loser.holders {
		e := g.edges[eid]
		e.points[e.find(loser.id)].Vertex = winner.id
		winner.holders = append(winner.holders, eid)
	}

	// Union pairs in canonical form. Sides stay valid because no point
	// changed position; the resolve sweep below is a guard, not a repair.
	for _, p := range loser.pairs {
		if !winner.hasPair(p) {
			winner.pairs = append(winner.pairs, p)
		}
	}
	g.dropUnresolvablePairs(winner)

	delete(g.vertices, loser.id)
	g.recomputeSiblings(affected)

	return winner.id, nil
}

// sharedAfterMerge counts vertices the two edges would share once loser is
// rewritten to winner.
func (g *Graph) sharedAfterMerge(e1, e2 EdgeID, loser, winner VertexID) int {
	subst := func(v VertexID) VertexID {
		if v == loser {
			return winner
		}
		return v
	}
	shared := 0
	for _, p := range g.edges[e1].points {
		pv := subst(p.Vertex)
		for _, q := range g.edges[e2].points {
			if subst(q.Vertex) == pv {
				shared++
				break
			}
		}
	}

	return shared
}

// dropUnresolvablePairs removes pairs with a side that no longer resolves
// to a neighbour (a sign pointing off the end of an edge). Merge cannot
// produce such pairs today; the sweep keeps the invariant explicit.
func (g *Graph) dropUnresolvablePairs(v *vertex) {
	kept := v.pairs[:0]
	for _, p := range v.pairs {
		if g.sideResolves(v, p[0]) && g.sideResolves(v, p[1]) {
			kept = append(kept, p)
		}
	}
	v.pairs = kept
}

// sideResolves reports whether following side from v lands on a vertex.
func (g *Graph) sideResolves(v *vertex, s PairSide) bool {
	e, ok := g.edges[s.Edge]
	if !ok {
		return false
	}
	i := e.find(v.id)
	if i < 0 {
		return false
	}
	if s.Sign == SignHigh {
		return i < len(e.points)-1
	}

	return i > 0
}
