// Package reserve: snake lifecycle, occupancy bookkeeping and the
// consistency sweep.
package reserve

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/trackway/core"
)

// AddSnake creates a zero-length snake sitting on the given vertex and
// returns its id. The vertex joins the snake's occupancy immediately.
// Complexity: O(1).
func (e *Engine) AddSnake(at core.VertexID) (SnakeID, error) {
	if !e.g.HasVertex(at) {
		return "", fmt.Errorf("%w: vertex %q", core.ErrUnknownID, at)
	}
	id := e.allocSnakeID()
	e.snakes[id] = &snake{id: id, verts: []core.VertexID{at}}
	e.order = append(e.order, id)
	e.occupy(at, id)
	// The vertex now carries first-class state; it is no longer a bare
	// split remnant the cleanup path may release.
	delete(e.patched, at)

	return id, nil
}

// RemoveSnake releases every interval and vertex occupancy of the snake
// and deletes its bookkeeping atomically. Complexity: O(E + V) over edges
// and vertices carrying reservations.
func (e *Engine) RemoveSnake(id SnakeID) error {
	if _, err := e.snakeRec(id); err != nil {
		return err
	}
	for edge, is := range e.intervals {
		is.removeSnake(id)
		e.tidy(edge)
	}
	for v, occ := range e.occupants {
		delete(occ, id)
		if len(occ) == 0 {
			delete(e.occupants, v)
		}
	}
	delete(e.snakes, id)
	for i, sid := range e.order {
		if sid == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}

	return nil
}

// SnakeState returns a copy of the snake's public state.
func (e *Engine) SnakeState(id SnakeID) (SnakeInfo, error) {
	s, err := e.snakeRec(id)
	if err != nil {
		return SnakeInfo{}, err
	}

	return SnakeInfo{
		Length:     s.length,
		Vertices:   append([]core.VertexID(nil), s.verts...),
		HeadOffset: s.headOff,
		TailOffset: s.tailOff,
	}, nil
}

// Query returns the snakes currently sharing any vertex with the given
// one, sorted for stable output. Complexity: O(path · occupants).
func (e *Engine) Query(id SnakeID) ([]SnakeID, error) {
	s, err := e.snakeRec(id)
	if err != nil {
		return nil, err
	}
	seen := make(map[SnakeID]struct{})
	for _, v := range s.verts {
		occ, ok := e.occupants[v]
		if !ok {
			continue
		}
		if _, mine := occ[id]; !mine {
			continue
		}
		for other := range occ {
			if other != id {
				seen[other] = struct{}{}
			}
		}
	}
	out := make([]SnakeID, 0, len(seen))
	for sid := range seen {
		out = append(out, sid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out, nil
}

// Snakes enumerates live snakes in creation order.
func (e *Engine) Snakes() []SnakeID {
	return append([]SnakeID(nil), e.order...)
}

// Intervals returns the ordered reservation snapshot of one edge.
func (e *Engine) Intervals(edge core.EdgeID) []Interval {
	is, ok := e.intervals[edge]
	if !ok {
		return nil
	}

	return is.snapshot()
}

// Touches reports whether any snake occupies the vertex or carries it in
// its path. Structural code that destroys vertices (merge) must see false
// here first; the façade enforces that ordering.
func (e *Engine) Touches(v core.VertexID) bool {
	if len(e.occupants[v]) > 0 {
		return true
	}
	for _, id := range e.order {
		if containsVertex(e.snakes[id].verts, v) {
			return true
		}
	}

	return false
}

// Occupants returns the snakes touching a vertex, sorted.
func (e *Engine) Occupants(v core.VertexID) []SnakeID {
	occ, ok := e.occupants[v]
	if !ok {
		return nil
	}
	out := make([]SnakeID, 0, len(occ))
	for sid := range occ {
		out = append(out, sid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

//----------------------------------------------------------------------------//
// Occupancy helpers
//----------------------------------------------------------------------------//

func (e *Engine) occupy(v core.VertexID, s SnakeID) {
	occ, ok := e.occupants[v]
	if !ok {
		occ = make(map[SnakeID]struct{})
		e.occupants[v] = occ
	}
	occ[s] = struct{}{}
}

func (e *Engine) unoccupy(v core.VertexID, s SnakeID) {
	occ, ok := e.occupants[v]
	if !ok {
		return
	}
	delete(occ, s)
	if len(occ) == 0 {
		delete(e.occupants, v)
	}
}

func (e *Engine) occupiedByOther(v core.VertexID, s SnakeID) bool {
	for other := range e.occupants[v] {
		if other != s {
			return true
		}
	}

	return false
}

// covers reports whether the snake's region includes the vertex: interior
// sequence positions always, the end positions only at offset zero.
func (s *snake) covers(v core.VertexID) bool {
	last := len(s.verts) - 1
	for i, sv := range s.verts {
		if sv != v {
			continue
		}
		switch {
		case i > 0 && i < last:
			return true
		case i == 0 && s.headOff == 0:
			return true
		case i == last && s.tailOff == 0:
			return true
		}
	}

	return false
}

// refreshOccupancy drops the snake from a vertex it no longer covers.
// A vertex stays occupied when the snake touches it again elsewhere on
// its own path (a loop through the same junction).
func (e *Engine) refreshOccupancy(v core.VertexID, s *snake) {
	if !s.covers(v) {
		e.unoccupy(v, s.id)
	}
}

//----------------------------------------------------------------------------//
// Hop geometry
//----------------------------------------------------------------------------//

// hopGeom locates the single edge between two adjacent path vertices:
// the edge, both absolute offsets, and the travel direction from u to w.
type hopGeom struct {
	edge   core.EdgeID
	pu, pw int64
	dir    core.Sign // sign from u toward w in edge coordinates
	dist   int64
}

func (e *Engine) hop(u, w core.VertexID) (hopGeom, error) {
	seg, err := e.g.FindBetween(u, w)
	if err != nil {
		return hopGeom{}, err
	}
	if len(seg.Interior) != 0 {
		return hopGeom{}, fmt.Errorf("%w: path vertices %q and %q are not adjacent",
			core.ErrInternalInvariant, u, w)
	}
	at, err := e.g.VertexOnEdge(seg.Edge, u)
	if err != nil {
		return hopGeom{}, err
	}
	h := hopGeom{edge: seg.Edge, pu: at.At, dir: seg.Sign, dist: seg.Distance}
	h.pw = h.pu + int64(seg.Sign)*seg.Distance

	return h, nil
}

// pieceFrom converts "width units starting dist from u toward w" into
// absolute edge coordinates.
func (h hopGeom) pieceFrom(fromU, width int64) (low, high int64) {
	if h.dir == core.SignHigh {
		return h.pu + fromU, h.pu + fromU + width
	}

	return h.pu - fromU - width, h.pu - fromU
}

//----------------------------------------------------------------------------//
// Consistency sweep
//----------------------------------------------------------------------------//

// Validate recomputes every snake's footprint from its vertex sequence
// and offsets and compares it against the stored intervals and occupancy
// sets. Reports the first mismatch wrapped in core.ErrInternalInvariant.
// Complexity: O(total path length + reservations).
func (e *Engine) Validate() error {
	wantByEdge := make(map[core.EdgeID][]Interval)
	wantOcc := make(map[core.VertexID]map[SnakeID]struct{})

	for _, id := range e.order {
		s := e.snakes[id]
		pieces, err := e.footprint(s)
		if err != nil {
			return err
		}
		total := int64(0)
		for _, iv := range pieces {
			total += iv.width
			wantByEdge[iv.edge] = append(wantByEdge[iv.edge], Interval{Low: iv.low, High: iv.high, Snake: id})
		}
		if total != s.length {
			return fmt.Errorf("%w: snake %q measures %d, want length %d",
				core.ErrInternalInvariant, id, total, s.length)
		}
		for _, v := range s.verts {
			if s.covers(v) {
				occ, ok := wantOcc[v]
				if !ok {
					occ = make(map[SnakeID]struct{})
					wantOcc[v] = occ
				}
				occ[id] = struct{}{}
			}
		}
	}

	// Stored intervals are maximally coalesced per snake; bring the
	// recomputed pieces into the same canonical form before comparing.
	wantIntervals := make(map[core.EdgeID]map[Interval]struct{})
	for edge, list := range wantByEdge {
		sort.Slice(list, func(i, j int) bool { return list[i].Low < list[j].Low })
		canon := make(map[Interval]struct{}, len(list))
		cur := list[0]
		for _, iv := range list[1:] {
			if iv.Low < cur.High {
				return fmt.Errorf("%w: overlapping footprints on %q at %d", core.ErrInternalInvariant, edge, iv.Low)
			}
			if iv.Snake == cur.Snake && iv.Low == cur.High {
				cur.High = iv.High
				continue
			}
			canon[cur] = struct{}{}
			cur = iv
		}
		canon[cur] = struct{}{}
		wantIntervals[edge] = canon
	}

	for edge, is := range e.intervals {
		for _, iv := range is.snapshot() {
			if _, ok := wantIntervals[edge][iv]; !ok {
				return fmt.Errorf("%w: stray interval %+v on %q", core.ErrInternalInvariant, iv, edge)
			}
			delete(wantIntervals[edge], iv)
		}
	}
	for edge, rest := range wantIntervals {
		for iv := range rest {
			return fmt.Errorf("%w: missing interval %+v on %q", core.ErrInternalInvariant, iv, edge)
		}
	}

	for v, occ := range e.occupants {
		for sid := range occ {
			if _, ok := wantOcc[v][sid]; !ok {
				return fmt.Errorf("%w: stray occupancy of %q at %q", core.ErrInternalInvariant, sid, v)
			}
			delete(wantOcc[v], sid)
		}
	}
	for v, rest := range wantOcc {
		for sid := range rest {
			return fmt.Errorf("%w: missing occupancy of %q at %q", core.ErrInternalInvariant, sid, v)
		}
	}

	return nil
}

// footPiece is one recomputed covered span of a snake.
type footPiece struct {
	edge             core.EdgeID
	low, high, width int64
}

// footprint recomputes the snake's covered spans hop by hop. Hops with
// zero covered measure produce nothing.
func (e *Engine) footprint(s *snake) ([]footPiece, error) {
	last := len(s.verts) - 1
	out := make([]footPiece, 0, last)
	for i := 0; i < last; i++ {
		h, err := e.hop(s.verts[i], s.verts[i+1])
		if err != nil {
			return nil, err
		}
		start := int64(0)
		if i == 0 {
			start = s.headOff
		}
		end := int64(0)
		if i == last-1 {
			end = s.tailOff
		}
		width := h.dist - start - end
		if width <= 0 {
			continue
		}
		low, high := h.pieceFrom(start, width)
		out = append(out, footPiece{edge: h.edge, low: low, high: high, width: width})
	}

	return out, nil
}
