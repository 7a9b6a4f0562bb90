// Package core_test: Split, Unsplit, and their round trip.
package core_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/trackway/core"
)

func TestSplit_Basics(t *testing.T) {
	g := core.NewGraph()
	a, b := g.AddVertex(), g.AddVertex()
	old, _ := g.Connect(a, b, 100)

	m, err := g.Split(a, core.AutoVertex, b, 40)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	// The original edge is retired; two halves replace it.
	if _, err = g.EdgeDetails(old); !errors.Is(err, core.ErrUnknownID) {
		t.Fatalf("old edge still resolvable: %v", err)
	}
	segAM, err := g.FindBetween(a, m)
	if err != nil || segAM.Distance != 40 {
		t.Fatalf("FindBetween(a,m) = %+v, %v; want distance 40", segAM, err)
	}
	segMB, err := g.FindBetween(m, b)
	if err != nil || segMB.Distance != 60 {
		t.Fatalf("FindBetween(m,b) = %+v, %v; want distance 60", segMB, err)
	}
	if segAM.Edge == segMB.Edge {
		t.Fatalf("halves share edge id %q", segAM.Edge)
	}

	// The halves stay through-routable by default.
	through, err := g.PairsAt(m)
	if err != nil {
		t.Fatalf("PairsAt: %v", err)
	}
	if len(through) != 1 || !sameThrough(through[0], a, b) {
		t.Fatalf("PairsAt(m) = %v; want one (a,b) hop", through)
	}

	if err = g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

// TestSplit_NegativeOffset counts the offset from the b side.
func TestSplit_NegativeOffset(t *testing.T) {
	g := core.NewGraph()
	a, b := g.AddVertex(), g.AddVertex()
	if _, err := g.Connect(a, b, 100); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	m, err := g.Split(a, core.AutoVertex, b, -30)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	seg, _ := g.FindBetween(a, m)
	if seg.Distance != 70 {
		t.Fatalf("FindBetween(a,m).Distance = %d; want 70", seg.Distance)
	}
}

func TestSplit_OffsetBoundaries(t *testing.T) {
	cases := []struct {
		name string
		at   int64
		ok   bool
	}{
		{"One", 1, true},
		{"LengthMinusOne", 99, true},
		{"Zero", 0, false},
		{"Length", 100, false},
		{"Beyond", 140, false},
		{"NegativeBeyond", -100, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := core.NewGraph()
			a, b := g.AddVertex(), g.AddVertex()
			if _, err := g.Connect(a, b, 100); err != nil {
				t.Fatalf("Connect: %v", err)
			}
			_, err := g.Split(a, core.AutoVertex, b, tc.at)
			if tc.ok && err != nil {
				t.Fatalf("Split(%d): %v", tc.at, err)
			}
			if !tc.ok && !errors.Is(err, core.ErrBadOffset) {
				t.Fatalf("Split(%d) error = %v; want ErrBadOffset", tc.at, err)
			}
		})
	}
}

func TestSplit_TargetVertexChecks(t *testing.T) {
	g := core.NewGraph()
	a, b, c := g.AddVertex(), g.AddVertex(), g.AddVertex()
	if _, err := g.Connect(a, b, 100); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if _, err := g.Connect(a, c, 10); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if _, err := g.Split(a, "ghost", b, 50); !errors.Is(err, core.ErrUnknownID) {
		t.Fatalf("unknown via: err = %v; want ErrUnknownID", err)
	}
	if _, err := g.Split(a, a, b, 50); !errors.Is(err, core.ErrSplitOccupied) {
		t.Fatalf("via == endpoint: err = %v; want ErrSplitOccupied", err)
	}
	// c shares an edge with a, so it is not isolated from the span.
	if _, err := g.Split(a, c, b, 50); !errors.Is(err, core.ErrSplitOccupied) {
		t.Fatalf("connected via: err = %v; want ErrSplitOccupied", err)
	}
	if _, err := g.Split(b, core.AutoVertex, c, 5); !errors.Is(err, core.ErrNotConnected) {
		t.Fatalf("unconnected span: err = %v; want ErrNotConnected", err)
	}

	// A vertex isolated from both endpoints is a legal split target.
	d := g.AddVertex()
	via, err := g.Split(a, d, b, 50)
	if err != nil || via != d {
		t.Fatalf("Split with supplied via = %q, %v; want %q", via, err, d)
	}
}

// TestSplit_RewritesPairs verifies that a junction pair referencing the
// split edge is re-pointed at the half that still carries the vertex.
func TestSplit_RewritesPairs(t *testing.T) {
	g := core.NewGraph()
	x, a, b := g.AddVertex(), g.AddVertex(), g.AddVertex()
	if _, err := g.Connect(x, a, 10); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if _, err := g.Connect(a, b, 100); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if _, err := g.Join(x, a, b); err != nil {
		t.Fatalf("Join: %v", err)
	}

	m, err := g.Split(a, core.AutoVertex, b, 40)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	through, _ := g.PairsAt(a)
	if len(through) != 1 || !sameThrough(through[0], x, m) {
		t.Fatalf("PairsAt(a) after split = %v; want one (x,m) hop", through)
	}
	if err = g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

//----------------------------------------------------------------------------//
// Unsplit round trip
//----------------------------------------------------------------------------//

// TestUnsplit_RestoresEdge locks in the split/unsplit round-trip law: a
// split immediately reversed yields a graph isomorphic to the original.
func TestUnsplit_RestoresEdge(t *testing.T) {
	g := core.NewGraph()
	x, a, b := g.AddVertex(), g.AddVertex(), g.AddVertex()
	if _, err := g.Connect(x, a, 10); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if _, err := g.Connect(a, b, 100); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if _, err := g.Join(x, a, b); err != nil {
		t.Fatalf("Join: %v", err)
	}

	m, err := g.Split(a, core.AutoVertex, b, 40)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	joined, err := g.Unsplit(m)
	if err != nil {
		t.Fatalf("Unsplit: %v", err)
	}

	if g.HasVertex(m) {
		t.Fatalf("synthesized vertex %q survived Unsplit", m)
	}
	info, err := g.EdgeDetails(joined)
	if err != nil || info.Length != 100 {
		t.Fatalf("joined edge = %+v, %v; want length 100", info, err)
	}
	seg, err := g.FindBetween(a, b)
	if err != nil || seg.Distance != 100 || len(seg.Interior) != 0 {
		t.Fatalf("FindBetween(a,b) = %+v, %v; want clean 100-unit segment", seg, err)
	}
	// The junction pair at a survived both rewrites.
	through, _ := g.PairsAt(a)
	if len(through) != 1 || !sameThrough(through[0], x, b) {
		t.Fatalf("PairsAt(a) after round trip = %v; want one (x,b) hop", through)
	}
	if err = g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

// TestUnsplit_RefusesJunction: a vertex carrying any pair beyond the
// straight-through is not a split remnant.
func TestUnsplit_RefusesJunction(t *testing.T) {
	g := core.NewGraph()
	a, b, c := g.AddVertex(), g.AddVertex(), g.AddVertex()
	if _, err := g.Connect(a, b, 100); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	m, err := g.Split(a, core.AutoVertex, b, 40)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if _, err = g.Connect(m, c, 10); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if _, err = g.Unsplit(m); !errors.Is(err, core.ErrInternalInvariant) {
		t.Fatalf("Unsplit of junction: err = %v; want ErrInternalInvariant", err)
	}
}
