// Package core: edge lifecycle (connect, split, unsplit, join).
//
// Split and Unsplit are exact structural inverses. Both rewrite pair
// sides as values (edge id + sign), so no pair can dangle across a
// subdivision: every lookup is a table query, never a reference into a
// mutated array.
package core

import "fmt"

// Connect creates a new edge of the given integer length between two
// existing, distinct, not-yet-connected vertices and returns its id.
//
// Returns ErrUnknownID, ErrSameVertex, ErrBadLength or ErrAlreadyConnected.
// Complexity: O(deg(a) + deg(b)) for the sibling refresh.
func (g *Graph) Connect(a, b VertexID, length int64) (EdgeID, error) {
	va, err := g.vertexRec(a)
	if err != nil {
		return "", err
	}
	vb, err := g.vertexRec(b)
	if err != nil {
		return "", err
	}
	if a == b {
		return "", fmt.Errorf("%w: %q", ErrSameVertex, a)
	}
	if length <= 0 {
		return "", fmt.Errorf("%w: %d", ErrBadLength, length)
	}
	if eid, ok := g.commonEdge(a, b); ok {
		return "", fmt.Errorf("%w: %q and %q via %q", ErrAlreadyConnected, a, b, eid)
	}

	id := g.allocEdgeID()
	g.insertEdge(&edge{
		id:     id,
		length: length,
		points: []PointOnEdge{{Vertex: a, At: 0}, {Vertex: b, At: length}},
	})
	va.holders = append(va.holders, id)
	vb.holders = append(vb.holders, id)

	affected := append([]EdgeID{}, va.holders...)
	affected = append(affected, vb.holders...)
	g.recomputeSiblings(affected)

	return id, nil
}

// Connected reports whether two vertices share an edge. Complexity:
// O(deg(a)).
func (g *Graph) Connected(a, b VertexID) bool {
	_, ok := g.commonEdge(a, b)
	return ok
}

// commonEdge returns the unique edge holding both vertices, if any.
// Uniqueness is the no-double-connection invariant.
func (g *Graph) commonEdge(a, b VertexID) (EdgeID, bool) {
	va, ok := g.vertices[a]
	if !ok {
		return "", false
	}
	for _, eid := range va.holders {
		if g.edges[eid].find(b) >= 0 {
			return eid, true
		}
	}

	return "", false
}

// Split inserts via as a vertex of the edge currently connecting a and b,
// at integer offset at measured from the a side (negative at counts from
// the b side). The edge is replaced by two halves; pairs referencing the
// old edge are rewritten onto the matching half, and a straight-through
// pair is added at via so the halves stay through-routable by default.
// A registered SplitObserver is notified so reservations crossing the
// split point are re-labelled onto the halves.
//
// via may be AutoVertex, meaning "allocate a fresh vertex". A supplied via
// must exist, differ from a and b, and share no edge with either.
//
// Returns ErrUnknownID, ErrNotConnected, ErrBadOffset (offset outside the
// open interval, or a vertex already sits there) or ErrSplitOccupied.
// Complexity: O(P + deg of the edge's vertices) for P points on the edge.
func (g *Graph) Split(a, via, b VertexID, at int64) (VertexID, error) {
	if _, err := g.vertexRec(a); err != nil {
		return "", err
	}
	if _, err := g.vertexRec(b); err != nil {
		return "", err
	}
	eid, ok := g.commonEdge(a, b)
	if !ok {
		return "", fmt.Errorf("%w: %q and %q", ErrNotConnected, a, b)
	}
	e := g.edges[eid]
	if (e.low().Vertex != a || e.high().Vertex != b) && (e.low().Vertex != b || e.high().Vertex != a) {
		return "", fmt.Errorf("%w: %q and %q are not endpoints of %q", ErrNotConnected, a, b, eid)
	}

	// Normalize the offset to the low-vertex coordinate system.
	fromA := at
	if fromA < 0 {
		fromA = e.length + fromA
	}
	if fromA <= 0 || fromA >= e.length {
		return "", fmt.Errorf("%w: %d on edge %q of length %d", ErrBadOffset, at, eid, e.length)
	}
	t := fromA
	if e.low().Vertex != a {
		t = e.length - fromA
	}
	for _, p := range e.points {
		if p.At == t {
			return "", fmt.Errorf("%w: vertex %q already at offset %d of %q", ErrBadOffset, p.Vertex, t, eid)
		}
	}

	if via != AutoVertex {
		if _, err := g.vertexRec(via); err != nil {
			return "", err
		}
		if via == a || via == b {
			return "", fmt.Errorf("%w: %q is an endpoint", ErrSplitOccupied, via)
		}
		if g.Connected(via, a) || g.Connected(via, b) {
			return "", fmt.Errorf("%w: %q is not isolated from %q and %q", ErrSplitOccupied, via, a, b)
		}
	}

	// All checks passed: mutate.
	if via == AutoVertex {
		via = g.AddVertex()
	}
	lowID, highID := g.allocEdgeID(), g.allocEdgeID()

	lowPts := make([]PointOnEdge, 0, len(e.points))
	highPts := make([]PointOnEdge, 0, len(e.points))
	highPts = append(highPts, PointOnEdge{Vertex: via, At: 0})
	for _, p := range e.points {
		if p.At < t {
			lowPts = append(lowPts, p)
		} else {
			highPts = append(highPts, PointOnEdge{Vertex: p.Vertex, At: p.At - t})
		}
	}
	lowPts = append(lowPts, PointOnEdge{Vertex: via, At: t})

	low := &edge{id: lowID, length: t, points: lowPts}
	high := &edge{id: highID, length: e.length - t, points: highPts}

	// Re-point holders and pair sides of every vertex of the old edge onto
	// the half that now carries it. Signs are unchanged: offsets kept
	// their relative order on each half.
	for _, p := range e.points {
		half := lowID
		if p.At > t {
			half = highID
		}
		v := g.vertices[p.Vertex]
		g.replaceHolder(v, eid, half)
		g.rewritePairSides(v, eid, half, false)
	}
	vvia := g.vertices[via]
	vvia.holders = append(vvia.holders, lowID, highID)
	vvia.pairs = append(vvia.pairs, NewPair(
		PairSide{Edge: lowID, Sign: SignLow},
		PairSide{Edge: highID, Sign: SignHigh},
	))

	g.insertEdge(low)
	g.insertEdge(high)
	g.retireEdge(e)

	affected := []EdgeID{lowID, highID}
	for _, p := range lowPts {
		affected = append(affected, g.vertices[p.Vertex].holders...)
	}
	for _, p := range highPts {
		affected = append(affected, g.vertices[p.Vertex].holders...)
	}
	g.recomputeSiblings(affected)

	if g.observer != nil {
		g.observer.EdgeSplit(SplitHalves{
			Old: eid, Low: lowID, High: highID,
			LowVertex: low.low().Vertex, Via: via, HighVertex: high.high().Vertex,
			At: t, Length: t + high.length,
		})
	}

	return via, nil
}

// Unsplit removes a vertex that does nothing but subdivide a straight
// run: exactly two incident edges, exactly the one straight-through pair,
// and no reservation state beyond what the observer can unwind. The two
// halves are replaced by a single edge of the summed length, and the
// vertex is destroyed. Returns the id of the joined edge.
//
// This is the cleanup path for vertices synthesized by the search layer;
// any condition violation is reported as ErrInternalInvariant.
// Complexity: O(P + deg of the halves' vertices).
func (g *Graph) Unsplit(via VertexID) (EdgeID, error) {
	v, err := g.vertexRec(via)
	if err != nil {
		return "", err
	}
	if len(v.holders) != 2 || v.holders[0] == v.holders[1] {
		return "", fmt.Errorf("%w: unsplit %q: holder set is not two edges", ErrInternalInvariant, via)
	}
	lowHalf, highHalf := g.edges[v.holders[0]], g.edges[v.holders[1]]
	if want := NewPair(g.inwardSide(lowHalf, via), g.inwardSide(highHalf, via)); len(v.pairs) != 1 || v.pairs[0] != want {
		return "", fmt.Errorf("%w: unsplit %q: pairs beyond the straight-through", ErrInternalInvariant, via)
	}
	if g.observer != nil && !g.observer.VertexClear(via) {
		return "", fmt.Errorf("%w: unsplit %q: reservations still anchored", ErrInternalInvariant, via)
	}

	// Walk from the far end of the first half through via to the far end
	// of the second: each half is reversed when via sits at its low end.
	lowRev := lowHalf.low().Vertex == via
	highRev := highHalf.high().Vertex == via
	lowEnd, highEnd := g.farEnd(lowHalf, via), g.farEnd(highHalf, via)
	if lowEnd == highEnd {
		return "", fmt.Errorf("%w: unsplit %q: halves form a loop", ErrInternalInvariant, via)
	}
	if other, shared := g.commonEdge(lowEnd, highEnd); shared && other != lowHalf.id && other != highHalf.id {
		return "", fmt.Errorf("%w: unsplit %q: ends already connected via %q", ErrInternalInvariant, via, other)
	}

	id := g.allocEdgeID()
	pts := make([]PointOnEdge, 0, len(lowHalf.points)+len(highHalf.points)-2)
	lp := orientPoints(lowHalf, lowRev, 0)
	hp := orientPoints(highHalf, highRev, lowHalf.length)
	pts = append(pts, lp[:len(lp)-1]...) // every low point except via
	pts = append(pts, hp[1:]...)         // every high point except via
	joined := &edge{id: id, length: lowHalf.length + highHalf.length, points: pts}

	for _, p := range lowHalf.points {
		if p.Vertex == via {
			continue
		}
		w := g.vertices[p.Vertex]
		g.replaceHolder(w, lowHalf.id, id)
		g.rewritePairSides(w, lowHalf.id, id, lowRev)
	}
	for _, p := range highHalf.points {
		if p.Vertex == via {
			continue
		}
		w := g.vertices[p.Vertex]
		g.replaceHolder(w, highHalf.id, id)
		g.rewritePairSides(w, highHalf.id, id, highRev)
	}

	delete(g.vertices, via)
	g.insertEdge(joined)
	g.retireEdge(lowHalf)
	g.retireEdge(highHalf)

	affected := []EdgeID{id}
	for _, p := range pts {
		affected = append(affected, g.vertices[p.Vertex].holders...)
	}
	g.recomputeSiblings(affected)

	if g.observer != nil {
		g.observer.EdgeRejoined(RejoinedEdge{
			Low: lowHalf.id, High: highHalf.id, Merged: id,
			LowVertex: lowEnd, Via: via, HighVertex: highEnd,
			LowLength: lowHalf.length, Length: joined.length,
			LowReversed: lowRev, HighReversed: highRev,
		})
	}

	return id, nil
}

// inwardSide is the direction along e that leads from v into the edge.
func (g *Graph) inwardSide(e *edge, v VertexID) PairSide {
	if e.low().Vertex == v {
		return PairSide{Edge: e.id, Sign: SignHigh}
	}

	return PairSide{Edge: e.id, Sign: SignLow}
}

// farEnd is the endpoint of e opposite to v.
func (g *Graph) farEnd(e *edge, v VertexID) VertexID {
	if e.low().Vertex == v {
		return e.high().Vertex
	}

	return e.low().Vertex
}

// orientPoints returns e's points walked away from the reversal end,
// shifted by base, so they can be spliced into a joined edge.
func orientPoints(e *edge, reversed bool, base int64) []PointOnEdge {
	out := make([]PointOnEdge, len(e.points))
	if !reversed {
		for i, p := range e.points {
			out[i] = PointOnEdge{Vertex: p.Vertex, At: base + p.At}
		}
		return out
	}
	for i, p := range e.points {
		out[len(e.points)-1-i] = PointOnEdge{Vertex: p.Vertex, At: base + e.length - p.At}
	}

	return out
}

// Join authorizes through-traversal a→via→b by recording the canonical
// pair at via. Returns true if the pair was added, false if it already
// existed.
//
// Returns ErrUnknownID, ErrNotConnected when via shares no edge with a or
// b, or ErrSameEdgeJoin when both legs resolve to one edge.
// Complexity: O(deg(via) + pairs at via).
func (g *Graph) Join(a, via, b VertexID) (bool, error) {
	for _, id := range []VertexID{a, via, b} {
		if _, err := g.vertexRec(id); err != nil {
			return false, err
		}
	}
	e1, ok := g.commonEdge(via, a)
	if !ok {
		return false, fmt.Errorf("%w: %q and %q", ErrNotConnected, via, a)
	}
	e2, ok := g.commonEdge(via, b)
	if !ok {
		return false, fmt.Errorf("%w: %q and %q", ErrNotConnected, via, b)
	}
	if e1 == e2 {
		return false, fmt.Errorf("%w: %q", ErrSameEdgeJoin, e1)
	}

	v := g.vertices[via]
	pair := NewPair(g.sideToward(e1, via, a), g.sideToward(e2, via, b))
	if v.hasPair(pair) {
		return false, nil
	}
	v.pairs = append(v.pairs, pair)

	return true, nil
}

// sideToward is the direction along e that leads from at toward to.
// Both vertices must lie on e.
func (g *Graph) sideToward(e EdgeID, at, to VertexID) PairSide {
	ed := g.edges[e]
	if ed.points[ed.find(to)].At > ed.points[ed.find(at)].At {
		return PairSide{Edge: e, Sign: SignHigh}
	}

	return PairSide{Edge: e, Sign: SignLow}
}

// replaceHolder swaps an edge reference in place, keeping the holder slot
// so neighbour enumeration order survives subdivision.
func (g *Graph) replaceHolder(v *vertex, from, to EdgeID) {
	for i, h := range v.holders {
		if h == from {
			v.holders[i] = to
			return
		}
	}
}

// rewritePairSides re-points every pair side referencing from onto to,
// flipping the sign when the edge was reversed, and re-canonicalizes.
func (g *Graph) rewritePairSides(v *vertex, from, to EdgeID, flip bool) {
	for i, p := range v.pairs {
		changed := false
		for j, s := range p {
			if s.Edge != from {
				continue
			}
			s.Edge = to
			if flip {
				s.Sign = -s.Sign
			}
			p[j] = s
			changed = true
		}
		if changed {
			v.pairs[i] = NewPair(p[0], p[1])
		}
	}
}

func (g *Graph) insertEdge(e *edge) {
	g.edges[e.id] = e
	g.edgeSeq = append(g.edgeSeq, e.id)
	g.takenE[e.id] = struct{}{}
}

// retireEdge removes e from the catalog and from every sibling set.
// Holder lists must already have been re-pointed by the caller.
func (g *Graph) retireEdge(e *edge) {
	for sib := range e.siblings {
		if s, ok := g.edges[sib]; ok {
			delete(s.siblings, e.id)
		}
	}
	delete(g.edges, e.id)
}

// recomputeSiblings rebuilds the cached sibling sets of the given edges
// from the holder lists of their vertices. Retired ids are skipped.
func (g *Graph) recomputeSiblings(ids []EdgeID) {
	done := make(map[EdgeID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := done[id]; dup {
			continue
		}
		done[id] = struct{}{}
		e, ok := g.edges[id]
		if !ok {
			continue
		}
		sib := make(map[EdgeID]struct{})
		for _, p := range e.points {
			for _, h := range g.vertices[p.Vertex].holders {
				if h != id {
					sib[h] = struct{}{}
				}
			}
		}
		e.siblings = sib
	}
}
