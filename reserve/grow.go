// Package reserve: the growth loop.
package reserve

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/trackway/core"
)

// endView adapts the two symmetric snake ends to one growth/shrink
// implementation. The head end works on the front of the vertex
// sequence, the tail end on the back.
type endView struct {
	s   *snake
	end End
}

func view(s *snake, end End) endView { return endView{s: s, end: end} }

func (ev endView) offset() int64 {
	if ev.end == Head {
		return ev.s.headOff
	}

	return ev.s.tailOff
}

func (ev endView) setOffset(v int64) {
	if ev.end == Head {
		ev.s.headOff = v
		return
	}
	ev.s.tailOff = v
}

func (ev endView) otherOffset() int64 {
	if ev.end == Head {
		return ev.s.tailOff
	}

	return ev.s.headOff
}

// endVertex is the vertex the end offset is measured against.
func (ev endView) endVertex() core.VertexID {
	if ev.end == Head {
		return ev.s.verts[0]
	}

	return ev.s.verts[len(ev.s.verts)-1]
}

// inward is the next path vertex toward the snake's interior.
func (ev endView) inward() core.VertexID {
	if ev.end == Head {
		return ev.s.verts[1]
	}

	return ev.s.verts[len(ev.s.verts)-2]
}

// push extends the sequence outward with a new end vertex.
func (ev endView) push(w core.VertexID) {
	if ev.end == Head {
		ev.s.verts = append([]core.VertexID{w}, ev.s.verts...)
		return
	}
	ev.s.verts = append(ev.s.verts, w)
}

// pop drops the current end vertex.
func (ev endView) pop() {
	if ev.end == Head {
		ev.s.verts = ev.s.verts[1:]
		return
	}
	ev.s.verts = ev.s.verts[:len(ev.s.verts)-1]
}

// Grow extends the snake by up to `by` integer units at the given end,
// consulting the oracle whenever the advancing end must pick the next
// edge at a vertex. Returns the amount actually grown, in [0, by].
//
// Growth halts early when the oracle offers no choice, when a foreign
// reservation abuts the contact point on the next stretch, or when the
// end vertex is shared with another snake. Candidates offered to the
// oracle are the through-routable neighbours with respect to the
// inbound direction; a still-pointlike snake offers every neighbour.
//
// Returns ErrUnknownSnake, ErrBadEnd, ErrBadAmount, ErrNilOracle or
// ErrOracleChoice. Complexity: O(grown + hops · log reservations).
func (e *Engine) Grow(id SnakeID, end End, by int64, oracle Oracle) (int64, error) {
	s, err := e.snakeRec(id)
	if err != nil {
		return 0, err
	}
	if !end.valid() {
		return 0, fmt.Errorf("%w: %d", ErrBadEnd, end)
	}
	if by < 0 {
		return 0, fmt.Errorf("%w: grow by %d", ErrBadAmount, by)
	}
	if oracle == nil {
		return 0, ErrNilOracle
	}

	ev := view(s, end)
	var grown int64
	for grown < by {
		if off := ev.offset(); off > 0 {
			// InEdge: consume the slack toward the end vertex.
			step, stepErr := e.consumeSlack(ev, off, by-grown)
			if stepErr != nil {
				return grown, stepErr
			}
			if step == 0 {
				break
			}
			grown += step
			continue
		}

		// AtVertex: pick the next edge, or halt.
		step, stepErr := e.advance(ev, by-grown, oracle)
		if stepErr != nil {
			return grown, stepErr
		}
		if step == 0 {
			break
		}
		grown += step
	}

	return grown, nil
}

// consumeSlack grows the end along its current edge, bounded by the
// remaining slack and by the nearest reservation. Arriving at the end
// vertex records its occupancy, shared or not.
func (e *Engine) consumeSlack(ev endView, off, want int64) (int64, error) {
	u, n := ev.endVertex(), ev.inward()
	h, err := e.hop(u, n)
	if err != nil {
		return 0, err
	}

	// The end sits off units from u toward n; growth runs toward u,
	// against the hop direction.
	endPos := h.pu + int64(h.dir)*off
	gap := e.set(h.edge).gapToward(endPos, -h.dir, off)
	step := gap
	if want < step {
		step = want
	}
	if step == 0 {
		e.tidy(h.edge)
		return 0, nil
	}

	low, high := h.pieceFrom(off-step, step)
	if err = e.set(h.edge).place(low, high, ev.s.id); err != nil {
		return 0, err
	}
	ev.setOffset(off - step)
	ev.s.length += step
	if off-step == 0 {
		e.occupy(u, ev.s.id)
	}

	return step, nil
}

// advance hops the end past its vertex onto an oracle-chosen edge and
// grows onto it. A shared vertex, an empty candidate list, an oracle
// refusal or a fully blocked stretch all halt with zero progress.
func (e *Engine) advance(ev endView, want int64, oracle Oracle) (int64, error) {
	u := ev.endVertex()
	if e.occupiedByOther(u, ev.s.id) {
		return 0, nil
	}

	var cands []core.VertexID
	if len(ev.s.verts) == 1 {
		dirs, err := e.g.DirsFrom(u)
		if err != nil {
			return 0, err
		}
		cands = dirs
	} else {
		var err error
		if cands, err = e.candidates(u, ev.inward()); err != nil {
			return 0, err
		}
	}
	if len(cands) == 0 {
		return 0, nil
	}

	w, ok := oracle(u, cands)
	if !ok {
		return 0, nil
	}
	if !containsVertex(cands, w) {
		return 0, fmt.Errorf("%w: %q is not among %v at %q", ErrOracleChoice, w, cands, u)
	}

	h, err := e.hop(u, w)
	if err != nil {
		return 0, err
	}
	gap := e.set(h.edge).gapToward(h.pu, h.dir, h.dist)
	step := gap
	if want < step {
		step = want
	}
	if step == 0 {
		e.tidy(h.edge)
		return 0, nil
	}

	low, high := h.pieceFrom(0, step)
	if err = e.set(h.edge).place(low, high, ev.s.id); err != nil {
		return 0, err
	}
	ev.push(w)
	ev.setOffset(h.dist - step)
	ev.s.length += step
	if h.dist-step == 0 {
		e.occupy(w, ev.s.id)
	}

	return step, nil
}

// candidates lists the through-routable neighbours at u for a snake that
// entered along prev, in the order their edges were connected to u.
func (e *Engine) candidates(u, prev core.VertexID) ([]core.VertexID, error) {
	through, err := e.g.PairsAt(u)
	if err != nil {
		return nil, err
	}
	out := make([]core.VertexID, 0, len(through))
	for _, th := range through {
		switch prev {
		case th.A:
			out = append(out, th.B)
		case th.B:
			out = append(out, th.A)
		}
	}
	dirs, err := e.g.DirsFrom(u)
	if err != nil {
		return nil, err
	}
	rank := make(map[core.VertexID]int, len(dirs))
	for i, w := range dirs {
		rank[w] = i
	}
	sort.SliceStable(out, func(i, j int) bool { return rank[out[i]] < rank[out[j]] })

	return out, nil
}

func containsVertex(list []core.VertexID, v core.VertexID) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}

	return false
}
