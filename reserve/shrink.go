// Package reserve: shrink and the length-preserving move.
package reserve

import (
	"fmt"

	"github.com/katalvlaran/trackway/core"
)

// Shrink contracts the snake by up to `by` units at the given end,
// releasing intervals and vertex occupancy as coverage retreats. When
// `by` meets or exceeds the current length the snake collapses to a
// zero-length point at its opposite end; it is never deleted implicitly.
// Returns the amount actually shrunk, in [0, by].
//
// Returns ErrUnknownSnake, ErrBadEnd or ErrBadAmount.
// Complexity: O(shrunk + hops · log reservations).
func (e *Engine) Shrink(id SnakeID, end End, by int64) (int64, error) {
	s, err := e.snakeRec(id)
	if err != nil {
		return 0, err
	}
	if !end.valid() {
		return 0, fmt.Errorf("%w: %d", ErrBadEnd, end)
	}
	if by < 0 {
		return 0, fmt.Errorf("%w: shrink by %d", ErrBadAmount, by)
	}

	ev := view(s, end)
	var shrunk int64
	for shrunk < by && s.length > 0 {
		u, n := ev.endVertex(), ev.inward()
		h, hopErr := e.hop(u, n)
		if hopErr != nil {
			return shrunk, hopErr
		}
		off := ev.offset()

		// End already retreated the whole hop: hand the end over to the
		// next vertex inward and drop u from the sequence.
		if off == h.dist {
			ev.pop()
			ev.setOffset(0)
			continue
		}

		hops := len(s.verts) - 1
		far := int64(0)
		if hops == 1 {
			far = ev.otherOffset()
		}
		avail := h.dist - off - far
		step := avail
		if by-shrunk < step {
			step = by - shrunk
		}
		if step <= 0 {
			return shrunk, fmt.Errorf("%w: snake %q has length %d but no coverage at its %v end",
				core.ErrInternalInvariant, id, s.length, end)
		}

		low, high := h.pieceFrom(off, step)
		if releaseErr := e.set(h.edge).release(low, high, id); releaseErr != nil {
			return shrunk, releaseErr
		}
		e.tidy(h.edge)

		wasAtVertex := off == 0
		ev.setOffset(off + step)
		s.length -= step
		shrunk += step
		if wasAtVertex {
			e.refreshOccupancy(u, s)
		}
		// The end retreated the whole hop: drop its anchor. On the final
		// hop this collapses a point back onto the opposite end's vertex,
		// restoring the single-vertex form a fresh snake starts with.
		if ev.offset() == h.dist && (hops > 1 || ev.otherOffset() == 0) {
			ev.pop()
			ev.setOffset(0)
		}
	}

	return shrunk, nil
}

// Move translates the snake by growing one end and shrinking the other
// by the amount actually grown, preserving its length even under partial
// growth. Returns the net displacement achieved.
//
// Returns the Grow error set plus any bookkeeping failure from the
// compensating shrink. Complexity: that of Grow plus Shrink.
func (e *Engine) Move(id SnakeID, end End, by int64, oracle Oracle) (int64, error) {
	grown, err := e.Grow(id, end, by, oracle)
	if err != nil {
		return 0, err
	}
	if grown == 0 {
		return 0, nil
	}
	shrunk, err := e.Shrink(id, end.Opposite(), grown)
	if err != nil {
		return grown, err
	}
	if shrunk != grown {
		return grown, fmt.Errorf("%w: move of %q grew %d but released %d",
			core.ErrInternalInvariant, id, grown, shrunk)
	}

	return grown, nil
}
