// Package reserve: engine types, sentinel errors and the Oracle contract.
package reserve

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/trackway/core"
)

// Sentinel errors for reservation operations.
var (
	// ErrUnknownSnake indicates an operation referenced a snake that does
	// not exist or was removed.
	ErrUnknownSnake = errors.New("reserve: unknown snake")

	// ErrBadEnd indicates an end selector other than Head or Tail.
	ErrBadEnd = errors.New("reserve: end must be Head or Tail")

	// ErrBadAmount indicates a negative grow/shrink amount.
	ErrBadAmount = errors.New("reserve: amount must be non-negative")

	// ErrNilOracle indicates Grow or Move was called without an oracle.
	ErrNilOracle = errors.New("reserve: oracle is nil")

	// ErrOracleChoice indicates the oracle returned a vertex that was not
	// among the offered candidates.
	ErrOracleChoice = errors.New("reserve: oracle chose a non-candidate")

	// ErrIntervalConflict indicates a reservation overlaps an existing one.
	// Grow never surfaces it (free space is measured first), so seeing it
	// means corrupted bookkeeping.
	ErrIntervalConflict = errors.New("reserve: interval conflict")
)

// SnakeID uniquely identifies a snake within one Engine.
type SnakeID string

const snakeIDPrefix = "s"

// End selects which snake end an operation applies to.
type End int8

const (
	// Head is the snake's leading end (the first vertex of its sequence).
	Head End = +1
	// Tail is the snake's trailing end (the last vertex of its sequence).
	Tail End = -1
)

// Opposite returns the other end.
func (e End) Opposite() End { return -e }

func (e End) valid() bool { return e == Head || e == Tail }

// Oracle decides which neighbour a growing end follows when it faces a
// routing choice at a vertex. Candidates arrive in a deterministic order
// (the order the corresponding edges were connected to the vertex); the
// oracle returns one of them, or false for "no choice", which halts
// growth at the vertex.
type Oracle func(at core.VertexID, candidates []core.VertexID) (core.VertexID, bool)

// FirstCandidate is the canonical oracle: always follow the first offered
// direction.
func FirstCandidate(_ core.VertexID, candidates []core.VertexID) (core.VertexID, bool) {
	if len(candidates) == 0 {
		return "", false
	}

	return candidates[0], true
}

// Interval is one reserved half-open span [Low, High) on an edge.
type Interval struct {
	Low, High int64
	Snake     SnakeID
}

// SnakeInfo is the public snapshot of one snake: its total length, the
// vertex sequence from the head side to the tail side, and the two end
// offsets. HeadOffset is how far the head still is before the first
// vertex along the edge toward the second; TailOffset mirrors that at
// the other end.
type SnakeInfo struct {
	Length     int64
	Vertices   []core.VertexID
	HeadOffset int64
	TailOffset int64
}

// snake is the engine-private snake record. verts runs from the head
// side to the tail side; a freshly added snake has a single vertex and
// zero offsets.
type snake struct {
	id      SnakeID
	length  int64
	verts   []core.VertexID
	headOff int64
	tailOff int64
}

// Engine is the reservation engine. It holds only identifiers and
// re-resolves them against the graph on each call; construct with
// NewEngine. Not safe for concurrent use.
type Engine struct {
	g         *core.Graph
	nextSnake uint64

	snakes map[SnakeID]*snake
	order  []SnakeID

	intervals map[core.EdgeID]*intervalSet
	occupants map[core.VertexID]map[SnakeID]struct{}

	// Vertices inserted into snake paths by EdgeSplit and not yet removed
	// by EdgeRejoined. Such vertices are releasable: the rejoin unwinds
	// the patch exactly.
	patched map[core.VertexID]struct{}
}

// NewEngine creates an empty engine bound to g and registers it as the
// graph's split observer. Complexity: O(1).
func NewEngine(g *core.Graph) *Engine {
	e := &Engine{
		g:         g,
		snakes:    make(map[SnakeID]*snake),
		intervals: make(map[core.EdgeID]*intervalSet),
		occupants: make(map[core.VertexID]map[SnakeID]struct{}),
		patched:   make(map[core.VertexID]struct{}),
	}
	g.SetObserver(e)

	return e
}

func (e *Engine) allocSnakeID() SnakeID {
	e.nextSnake++
	return SnakeID(fmt.Sprintf("%s%d", snakeIDPrefix, e.nextSnake))
}

func (e *Engine) snakeRec(id SnakeID) (*snake, error) {
	s, ok := e.snakes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSnake, id)
	}

	return s, nil
}
