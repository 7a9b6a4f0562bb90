// Package reserve: the split observer.
//
// The engine registers itself on the graph so that structural edge
// subdivision keeps reservation bookkeeping coherent: intervals crossing
// the split point are re-labelled onto the two halves, and any snake
// whose path straddles the point has the new vertex patched into its
// sequence. EdgeRejoined reverses both transformations exactly, which is
// what lets the search layer synthesize and tear down endpoint vertices
// on live, reserved track.
//
// These hooks run inside a structural mutation and have no error return;
// a bookkeeping failure here means the graph and the engine disagree, so
// they panic with the error that reported the failure.
package reserve

import (
	"github.com/katalvlaran/trackway/core"
)

// must converts an impossible bookkeeping failure into a fatal panic.
func must(err error) {
	if err != nil {
		panic(err)
	}
}

// EdgeSplit re-labels reservations of the retired edge onto the two
// halves and patches every straddling snake path. Implements
// core.SplitObserver.
func (e *Engine) EdgeSplit(sh core.SplitHalves) {
	if is, ok := e.intervals[sh.Old]; ok {
		for _, iv := range is.snapshot() {
			switch {
			case iv.High <= sh.At:
				must(e.set(sh.Low).place(iv.Low, iv.High, iv.Snake))
			case iv.Low >= sh.At:
				must(e.set(sh.High).place(iv.Low-sh.At, iv.High-sh.At, iv.Snake))
			default:
				must(e.set(sh.Low).place(iv.Low, sh.At, iv.Snake))
				must(e.set(sh.High).place(0, iv.High-sh.At, iv.Snake))
			}
		}
		delete(e.intervals, sh.Old)
	}

	for _, id := range e.order {
		e.patchSplit(e.snakes[id], sh)
	}
	e.patched[sh.Via] = struct{}{}
}

// patchSplit rewrites one snake whose path crosses the split edge. The
// new vertex lands in the covered region (inserted, occupied), exactly
// at an end (end vertex replaced at offset zero), or in an end's slack
// (end vertex replaced, offset reduced).
func (e *Engine) patchSplit(s *snake, sh core.SplitHalves) {
	for i := 0; i+1 < len(s.verts); i++ {
		u, w := s.verts[i], s.verts[i+1]
		if !(u == sh.LowVertex && w == sh.HighVertex) && !(u == sh.HighVertex && w == sh.LowVertex) {
			continue
		}
		last := len(s.verts) - 1
		tFromU := sh.At
		if u == sh.HighVertex {
			tFromU = sh.Length - sh.At
		}
		startDist := int64(0)
		if i == 0 {
			startDist = s.headOff
		}
		endDist := int64(0)
		if i == last-1 {
			endDist = s.tailOff
		}

		switch {
		case s.length == 0 && last == 1 && tFromU == startDist:
			// A zero-length point exactly at the split position collapses
			// onto the new vertex.
			s.verts = []core.VertexID{sh.Via}
			s.headOff, s.tailOff = 0, 0
			e.occupy(sh.Via, s.id)
		case i == 0 && tFromU <= startDist:
			// New vertex in the head slack: it becomes the head's anchor.
			s.verts[0] = sh.Via
			s.headOff = startDist - tFromU
			if s.headOff == 0 {
				e.occupy(sh.Via, s.id)
			}
		case i == last-1 && tFromU >= sh.Length-endDist:
			// New vertex in the tail slack: it becomes the tail's anchor.
			s.verts[last] = sh.Via
			s.tailOff = endDist - (sh.Length - tFromU)
			if s.tailOff == 0 {
				e.occupy(sh.Via, s.id)
			}
		default:
			// New vertex inside covered track: splice it into the path.
			s.verts = append(s.verts, "")
			copy(s.verts[i+2:], s.verts[i+1:])
			s.verts[i+1] = sh.Via
			e.occupy(sh.Via, s.id)
		}
	}
}

// EdgeRejoined re-labels reservations of the two halves back onto the
// joined edge and removes the vanishing vertex from every snake path.
// Implements core.SplitObserver.
func (e *Engine) EdgeRejoined(r core.RejoinedEdge) {
	if is, ok := e.intervals[r.Low]; ok {
		for _, iv := range is.snapshot() {
			lo, hi := iv.Low, iv.High
			if r.LowReversed {
				lo, hi = r.LowLength-iv.High, r.LowLength-iv.Low
			}
			must(e.set(r.Merged).place(lo, hi, iv.Snake))
		}
		delete(e.intervals, r.Low)
	}
	if is, ok := e.intervals[r.High]; ok {
		for _, iv := range is.snapshot() {
			lo, hi := r.LowLength+iv.Low, r.LowLength+iv.High
			if r.HighReversed {
				lo, hi = r.Length-iv.High, r.Length-iv.Low
			}
			must(e.set(r.Merged).place(lo, hi, iv.Snake))
		}
		delete(e.intervals, r.High)
	}

	for _, id := range e.order {
		e.patchRejoin(e.snakes[id], r)
	}
	delete(e.patched, r.Via)
}

// patchRejoin undoes patchSplit for one snake: the vanishing vertex sat
// at the seam (offset LowLength on the joined edge), so an end anchored
// to it is re-anchored on the next vertex beyond the seam with its
// offset extended, and an interior occurrence is simply spliced out.
func (e *Engine) patchRejoin(s *snake, r core.RejoinedEdge) {
	seam := r.LowLength

	for containsVertex(s.verts, r.Via) {
		last := len(s.verts) - 1
		switch {
		case last == 0:
			// A point snake collapsed onto the seam: restore a mid-edge
			// representation between the vertices flanking the seam.
			above, err := e.g.FindVertex(r.Merged, seam, +1)
			must(err)
			below, err := e.g.FindVertex(r.Merged, seam, -1)
			must(err)
			s.verts = []core.VertexID{above.Vertex, below.Vertex}
			s.headOff = above.At - seam
			s.tailOff = seam - below.At
			e.unoccupy(r.Via, s.id)
		case s.verts[0] == r.Via:
			next := e.mustVertexBeyond(r.Merged, seam, s.verts[1])
			s.verts[0] = next.Vertex
			delta := next.At - seam
			if delta < 0 {
				delta = -delta
			}
			s.headOff += delta
			e.unoccupy(r.Via, s.id)
		case s.verts[last] == r.Via:
			next := e.mustVertexBeyond(r.Merged, seam, s.verts[last-1])
			s.verts[last] = next.Vertex
			delta := next.At - seam
			if delta < 0 {
				delta = -delta
			}
			s.tailOff += delta
			e.unoccupy(r.Via, s.id)
		default:
			for i := 1; i < last; i++ {
				if s.verts[i] == r.Via {
					s.verts = append(s.verts[:i], s.verts[i+1:]...)
					break
				}
			}
			e.unoccupy(r.Via, s.id)
		}
	}
}

// mustVertexBeyond finds the first vertex of the joined edge strictly
// past the seam, moving away from the inward vertex.
func (e *Engine) mustVertexBeyond(edge core.EdgeID, seam int64, inward core.VertexID) core.VertexAt {
	at, err := e.g.VertexOnEdge(edge, inward)
	must(err)
	dir := +1
	if at.At > seam {
		dir = -1
	}
	hit, err := e.g.FindVertex(edge, seam, dir)
	must(err)

	return hit
}

// VertexClear reports whether the engine holds no state anchored to v
// beyond what EdgeRejoined will unwind. Vertices patched in by EdgeSplit
// are releasable; anything else a snake occupies or traverses is not.
// Implements core.SplitObserver.
func (e *Engine) VertexClear(v core.VertexID) bool {
	if _, ok := e.patched[v]; ok {
		return true
	}
	if len(e.occupants[v]) > 0 {
		return false
	}
	for _, id := range e.order {
		if containsVertex(e.snakes[id].verts, v) {
			return false
		}
	}

	return true
}
