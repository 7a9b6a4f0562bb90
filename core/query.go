// Package core: read-only query primitives.
//
// Enumeration order is part of the contract: vertices and edges enumerate
// in creation order, and neighbour lists follow the order in which edges
// were connected to the vertex. Deterministic output makes oracle
// candidate lists and test expectations reproducible.
package core

import (
	"fmt"
	"sort"
)

// EdgeInfo is the public snapshot of one edge.
type EdgeInfo struct {
	Edge      EdgeID
	Low, High VertexID
	Length    int64
	Siblings  []EdgeID
	Points    []PointOnEdge
}

// VertexAt is a positional query hit: a vertex and its offset on the
// queried edge.
type VertexAt struct {
	Vertex VertexID
	At     int64
}

// PointContext locates a vertex on an edge together with its immediate
// neighbours along that edge. Prev or Next is empty at an endpoint.
type PointContext struct {
	At         int64
	Prev, Next VertexID
}

// Through is one through-routable hop across a vertex: the two neighbour
// vertices one step away along the paired directions.
type Through struct {
	A, B VertexID
}

// Segment is the unique run of one edge between two vertices on it.
type Segment struct {
	Edge     EdgeID
	Sign     Sign // +1 when the first queried vertex precedes the second
	Distance int64
	Interior []VertexID // strictly between, in travel order
}

// EdgeDetails returns a copy of the edge's public state.
// Siblings are sorted for stable output. Complexity: O(P + S log S).
func (g *Graph) EdgeDetails(id EdgeID) (EdgeInfo, error) {
	e, err := g.edgeRec(id)
	if err != nil {
		return EdgeInfo{}, err
	}
	info := EdgeInfo{
		Edge:   id,
		Low:    e.low().Vertex,
		High:   e.high().Vertex,
		Length: e.length,
		Points: append([]PointOnEdge(nil), e.points...),
	}
	info.Siblings = make([]EdgeID, 0, len(e.siblings))
	for sib := range e.siblings {
		info.Siblings = append(info.Siblings, sib)
	}
	sort.Slice(info.Siblings, func(i, j int) bool { return info.Siblings[i] < info.Siblings[j] })

	return info, nil
}

// FindVertex locates the vertex on an edge nearest to offset at, in the
// given direction:
//
//	dir == 0: nearest by absolute distance, ties prefer the lower side;
//	dir == +1: nearest vertex strictly greater than at;
//	dir == -1: nearest vertex strictly less than at.
//
// An offset outside [0, length] with a compatible direction resolves to
// the matching endpoint. Returns ErrNoVertex when no vertex qualifies.
// Complexity: O(P).
func (g *Graph) FindVertex(id EdgeID, at int64, dir int) (VertexAt, error) {
	e, err := g.edgeRec(id)
	if err != nil {
		return VertexAt{}, err
	}

	switch {
	case dir > 0:
		for _, p := range e.points {
			if p.At > at {
				return VertexAt{Vertex: p.Vertex, At: p.At}, nil
			}
		}
	case dir < 0:
		for i := len(e.points) - 1; i >= 0; i-- {
			if e.points[i].At < at {
				return VertexAt{Vertex: e.points[i].Vertex, At: e.points[i].At}, nil
			}
		}
	default:
		best, bestDist := VertexAt{}, int64(-1)
		for _, p := range e.points {
			d := p.At - at
			if d < 0 {
				d = -d
			}
			// Strict < keeps the lower-position vertex on a tie: points
			// scan in increasing offset order.
			if bestDist < 0 || d < bestDist {
				best, bestDist = VertexAt{Vertex: p.Vertex, At: p.At}, d
			}
		}
		return best, nil
	}

	return VertexAt{}, fmt.Errorf("%w: edge %q, offset %d, dir %d", ErrNoVertex, id, at, dir)
}

// ExactVertex reports the vertex sitting at exactly the given offset,
// if any. Complexity: O(P).
func (g *Graph) ExactVertex(id EdgeID, at int64) (VertexID, bool, error) {
	e, err := g.edgeRec(id)
	if err != nil {
		return "", false, err
	}
	for _, p := range e.points {
		if p.At == at {
			return p.Vertex, true, nil
		}
	}

	return "", false, nil
}

// VertexOnEdge returns the offset of v on the edge plus its immediate
// neighbours along it. Returns ErrNoVertex when v is not on the edge.
// Complexity: O(P).
func (g *Graph) VertexOnEdge(id EdgeID, v VertexID) (PointContext, error) {
	e, err := g.edgeRec(id)
	if err != nil {
		return PointContext{}, err
	}
	i := e.find(v)
	if i < 0 {
		return PointContext{}, fmt.Errorf("%w: %q not on edge %q", ErrNoVertex, v, id)
	}
	ctx := PointContext{At: e.points[i].At}
	if i > 0 {
		ctx.Prev = e.points[i-1].Vertex
	}
	if i < len(e.points)-1 {
		ctx.Next = e.points[i+1].Vertex
	}

	return ctx, nil
}

// PairsAt resolves every through-routable hop across v: one Through per
// explicit pair, in insertion order, followed by one implicit
// straight-through per edge on which v is interior, in holder order.
// Complexity: O(pairs + deg(v)).
func (g *Graph) PairsAt(v VertexID) ([]Through, error) {
	rec, err := g.vertexRec(v)
	if err != nil {
		return nil, err
	}
	out := make([]Through, 0, len(rec.pairs))
	for _, p := range rec.pairs {
		out = append(out, Through{
			A: g.sideNeighbour(rec.id, p[0]),
			B: g.sideNeighbour(rec.id, p[1]),
		})
	}
	for _, h := range rec.holders {
		e := g.edges[h]
		if i := e.find(v); i > 0 && i < len(e.points)-1 {
			out = append(out, Through{A: e.points[i-1].Vertex, B: e.points[i+1].Vertex})
		}
	}

	return out, nil
}

// Pairs returns a copy of the explicit pairs recorded at v.
func (g *Graph) Pairs(v VertexID) ([]Pair, error) {
	rec, err := g.vertexRec(v)
	if err != nil {
		return nil, err
	}

	return append([]Pair(nil), rec.pairs...), nil
}

// sideNeighbour follows one pair side from v to the adjacent vertex.
func (g *Graph) sideNeighbour(v VertexID, s PairSide) VertexID {
	e := g.edges[s.Edge]
	i := e.find(v)
	if s.Sign == SignHigh {
		return e.points[i+1].Vertex
	}

	return e.points[i-1].Vertex
}

// DirsFrom returns every vertex adjacent to v across all incident edges,
// regardless of pairing, in holder order with the lower side first.
// The no-double-connection and no-self-loop invariants guarantee the
// result is duplicate-free. Complexity: O(deg(v)).
func (g *Graph) DirsFrom(v VertexID) ([]VertexID, error) {
	rec, err := g.vertexRec(v)
	if err != nil {
		return nil, err
	}
	out := make([]VertexID, 0, len(rec.holders))
	for _, h := range rec.holders {
		e := g.edges[h]
		i := e.find(v)
		if i > 0 {
			out = append(out, e.points[i-1].Vertex)
		}
		if i < len(e.points)-1 {
			out = append(out, e.points[i+1].Vertex)
		}
	}

	return out, nil
}

// FindBetween returns the unique segment of the single edge shared by the
// two vertices: the edge, the travel sign (+1 when a precedes b on it),
// the absolute distance, and the interior vertices in travel order.
// Returns ErrNotConnected when no shared edge exists. Complexity: O(P).
func (g *Graph) FindBetween(a, b VertexID) (Segment, error) {
	if _, err := g.vertexRec(a); err != nil {
		return Segment{}, err
	}
	if _, err := g.vertexRec(b); err != nil {
		return Segment{}, err
	}
	eid, ok := g.commonEdge(a, b)
	if !ok {
		return Segment{}, fmt.Errorf("%w: %q and %q", ErrNotConnected, a, b)
	}
	e := g.edges[eid]
	ia, ib := e.find(a), e.find(b)
	seg := Segment{Edge: eid, Sign: SignHigh, Distance: e.points[ib].At - e.points[ia].At}
	if ia > ib {
		seg.Sign = SignLow
		seg.Distance = -seg.Distance
		for i := ia - 1; i > ib; i-- {
			seg.Interior = append(seg.Interior, e.points[i].Vertex)
		}
		return seg, nil
	}
	for i := ia + 1; i < ib; i++ {
		seg.Interior = append(seg.Interior, e.points[i].Vertex)
	}

	return seg, nil
}

// AllVertices enumerates live vertices in creation order.
// Complexity: O(V).
func (g *Graph) AllVertices() []VertexID {
	out := make([]VertexID, 0, len(g.vertices))
	for _, id := range g.vertexSeq {
		if _, live := g.vertices[id]; live {
			out = append(out, id)
		}
	}

	return out
}

// AllEdges enumerates live edges in creation order. Complexity: O(E).
func (g *Graph) AllEdges() []EdgeID {
	out := make([]EdgeID, 0, len(g.edges))
	for _, id := range g.edgeSeq {
		if _, live := g.edges[id]; live {
			out = append(out, id)
		}
	}

	return out
}
