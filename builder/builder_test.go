// Package builder_test: layout constructors and their routing semantics.
package builder_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trackway/builder"
	"github.com/katalvlaran/trackway/core"
	"github.com/katalvlaran/trackway/reserve"
	"github.com/katalvlaran/trackway/search"
)

func TestLine_TraversableEndToEnd(t *testing.T) {
	g := core.NewGraph()
	verts, err := builder.Line(g, 5, 10)
	require.NoError(t, err)
	require.Len(t, verts, 6)
	require.NoError(t, g.Validate())

	res, err := search.Find(g, search.AtVertex(verts[0]), search.AtVertex(verts[5]))
	require.NoError(t, err)
	require.Equal(t, verts, res.Vertices())
}

func TestLine_Validation(t *testing.T) {
	g := core.NewGraph()
	if _, err := builder.Line(g, 0, 10); !errors.Is(err, builder.ErrTooFewSegments) {
		t.Fatalf("Line(0) error = %v; want ErrTooFewSegments", err)
	}
	if _, err := builder.Line(g, 3, 0); !errors.Is(err, builder.ErrBadSpan) {
		t.Fatalf("Line(span 0) error = %v; want ErrBadSpan", err)
	}
}

// TestLoop_SnakeRunsForever: a snake on a joined ring keeps moving; it
// never runs out of candidates.
func TestLoop_SnakeRunsForever(t *testing.T) {
	g := core.NewGraph()
	eng := reserve.NewEngine(g)
	verts, err := builder.Loop(g, 4, 25)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	s, err := eng.AddSnake(verts[0])
	require.NoError(t, err)
	mustGrow := func(by int64) {
		t.Helper()
		grown, gerr := eng.Grow(s, reserve.Head, by, reserve.FirstCandidate)
		require.NoError(t, gerr)
		require.Equal(t, by, grown)
	}
	mustGrow(10)
	for i := 0; i < 8; i++ {
		moved, merr := eng.Move(s, reserve.Head, 25, reserve.FirstCandidate)
		require.NoError(t, merr)
		require.Equal(t, int64(25), moved)
	}
	st, err := eng.SnakeState(s)
	require.NoError(t, err)
	require.Equal(t, int64(10), st.Length)
	require.NoError(t, eng.Validate())
}

func TestWye_OnlyStemBranchTurns(t *testing.T) {
	g := core.NewGraph()
	centre, stem, left, right := mustWye(t, g)

	// Stem to either branch is routable.
	for _, branch := range []core.VertexID{left, right} {
		res, err := search.Find(g, search.AtVertex(stem), search.AtVertex(branch))
		require.NoError(t, err)
		require.Equal(t, []core.VertexID{stem, centre, branch}, res.Vertices())
	}
	// Branch to branch is not: no pair authorizes it.
	_, err := search.Find(g, search.AtVertex(left), search.AtVertex(right))
	require.ErrorIs(t, err, search.ErrNoPath)
}

func TestCross_NothingRoutable(t *testing.T) {
	g := core.NewGraph()
	centre, n, e, s, w := mustCross(t, g)
	_ = centre

	for _, pair := range [][2]core.VertexID{{n, s}, {e, w}, {n, e}} {
		_, err := search.Find(g, search.AtVertex(pair[0]), search.AtVertex(pair[1]))
		require.ErrorIs(t, err, search.ErrNoPath)
	}
}

func mustWye(t *testing.T, g *core.Graph) (centre, stem, left, right core.VertexID) {
	t.Helper()
	centre, stem, left, right, err := builder.Wye(g, 10)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	return centre, stem, left, right
}

func mustCross(t *testing.T, g *core.Graph) (centre, north, east, south, west core.VertexID) {
	t.Helper()
	centre, north, east, south, west, err := builder.Cross(g, 10)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	return centre, north, east, south, west
}
