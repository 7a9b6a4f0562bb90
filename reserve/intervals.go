// Package reserve: per-edge ordered interval storage.
//
// Each edge with reservations owns an intervalSet: a red-black tree keyed
// by the interval's low offset, holding disjoint half-open [low, high)
// spans. The tree gives ordered snapshots plus floor/ceiling lookups for
// the free-gap queries growth depends on.
package reserve

import (
	"fmt"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"

	"github.com/katalvlaran/trackway/core"
)

// span is the tree value: the interval's high bound and owner. The low
// bound is the tree key.
type span struct {
	high  int64
	snake SnakeID
}

type intervalSet struct {
	tree *redblacktree.Tree
}

func newIntervalSet() *intervalSet {
	return &intervalSet{tree: redblacktree.NewWith(utils.Int64Comparator)}
}

func (is *intervalSet) empty() bool { return is.tree.Size() == 0 }

// place inserts [low, high) for the given snake, coalescing with
// adjacent intervals of the same snake. Returns ErrIntervalConflict when
// the span overlaps any existing interval. Complexity: O(log N).
func (is *intervalSet) place(low, high int64, s SnakeID) error {
	if low >= high {
		return fmt.Errorf("%w: empty span [%d,%d)", core.ErrInternalInvariant, low, high)
	}
	if node, ok := is.tree.Floor(low); ok {
		if sp := node.Value.(span); sp.high > low {
			return fmt.Errorf("%w: [%d,%d) overlaps [%v,%d)", ErrIntervalConflict, low, high, node.Key, sp.high)
		}
	}
	if node, ok := is.tree.Ceiling(low); ok {
		if node.Key.(int64) < high {
			return fmt.Errorf("%w: [%d,%d) overlaps at %v", ErrIntervalConflict, low, high, node.Key)
		}
	}

	// Coalesce with the same-snake neighbour touching each bound.
	if node, ok := is.tree.Floor(low); ok {
		if sp := node.Value.(span); sp.high == low && sp.snake == s {
			low = node.Key.(int64)
			is.tree.Remove(node.Key)
		}
	}
	if node, ok := is.tree.Ceiling(high); ok {
		if node.Key.(int64) == high && node.Value.(span).snake == s {
			high = node.Value.(span).high
			is.tree.Remove(node.Key)
		}
	}
	is.tree.Put(low, span{high: high, snake: s})

	return nil
}

// release removes [low, high) from the snake's interval containing it,
// splitting the remainder when the released span is interior.
// Complexity: O(log N).
func (is *intervalSet) release(low, high int64, s SnakeID) error {
	node, ok := is.tree.Floor(low)
	if !ok {
		return fmt.Errorf("%w: release [%d,%d): no covering interval", core.ErrInternalInvariant, low, high)
	}
	nLow, sp := node.Key.(int64), node.Value.(span)
	if sp.snake != s || sp.high < high || low >= high {
		return fmt.Errorf("%w: release [%d,%d) from [%d,%d) of %q",
			core.ErrInternalInvariant, low, high, nLow, sp.high, sp.snake)
	}
	is.tree.Remove(node.Key)
	if nLow < low {
		is.tree.Put(nLow, span{high: low, snake: s})
	}
	if sp.high > high {
		is.tree.Put(high, span{high: sp.high, snake: s})
	}

	return nil
}

// gapToward measures the free space from offset from in the given
// direction before the nearest reservation, capped at limit. Any owner
// blocks: a snake cannot overlap even itself. A downward gap also ends at
// offset 0. Complexity: O(log N).
func (is *intervalSet) gapToward(from int64, dir core.Sign, limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	if dir == core.SignHigh {
		if node, ok := is.tree.Floor(from); ok && node.Value.(span).high > from {
			return 0
		}
		if node, ok := is.tree.Ceiling(from); ok {
			if gap := node.Key.(int64) - from; gap < limit {
				return gap
			}
		}
		return limit
	}
	if limit > from {
		limit = from
	}
	if node, ok := is.tree.Floor(from - 1); ok {
		sp := node.Value.(span)
		if sp.high > from-1 {
			return 0
		}
		if gap := from - sp.high; gap < limit {
			return gap
		}
	}

	return limit
}

// snapshot returns the intervals in increasing low order.
func (is *intervalSet) snapshot() []Interval {
	out := make([]Interval, 0, is.tree.Size())
	it := is.tree.Iterator()
	for it.Next() {
		sp := it.Value().(span)
		out = append(out, Interval{Low: it.Key().(int64), High: sp.high, Snake: sp.snake})
	}

	return out
}

// removeSnake drops every interval owned by s. Complexity: O(N).
func (is *intervalSet) removeSnake(s SnakeID) {
	for _, iv := range is.snapshot() {
		if iv.Snake == s {
			is.tree.Remove(iv.Low)
		}
	}
}

// set returns the interval set of an edge, allocating on first use.
func (e *Engine) set(edge core.EdgeID) *intervalSet {
	is, ok := e.intervals[edge]
	if !ok {
		is = newIntervalSet()
		e.intervals[edge] = is
	}

	return is
}

// tidy drops the edge's set once empty, keeping re-resolution honest:
// retired edge identifiers must not linger in the index.
func (e *Engine) tidy(edge core.EdgeID) {
	if is, ok := e.intervals[edge]; ok && is.empty() {
		delete(e.intervals, edge)
	}
}
