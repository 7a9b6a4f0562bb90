// Package core_test verifies construction primitives: vertex creation,
// Connect, Join, and the identifier contract.
package core_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/trackway/core"
)

//----------------------------------------------------------------------------//
// Vertex and identifier contract
//----------------------------------------------------------------------------//

// TestAddVertex_Identifiers checks that identifiers are prefixed, monotonic
// and isolated per graph instance.
func TestAddVertex_Identifiers(t *testing.T) {
	g := core.NewGraph()
	if got := g.AddVertex(); got != "v1" {
		t.Fatalf("first vertex id = %q; want v1", got)
	}
	if got := g.AddVertex(); got != "v2" {
		t.Fatalf("second vertex id = %q; want v2", got)
	}

	// A second graph starts its own sequence.
	h := core.NewGraph()
	if got := h.AddVertex(); got != "v1" {
		t.Fatalf("fresh graph first id = %q; want v1", got)
	}
}

func TestAddVertexWithID(t *testing.T) {
	g := core.NewGraph()
	id, err := g.AddVertexWithID("depot")
	if err != nil || id != "depot" {
		t.Fatalf("AddVertexWithID = %q, %v", id, err)
	}
	if _, err = g.AddVertexWithID("depot"); !errors.Is(err, core.ErrDuplicateID) {
		t.Fatalf("duplicate id error = %v; want ErrDuplicateID", err)
	}

	// Auto allocation must skip caller-taken identifiers.
	if _, err = g.AddVertexWithID("v2"); err != nil {
		t.Fatalf("AddVertexWithID(v2): %v", err)
	}
	if got := g.AddVertex(); got == "v2" {
		t.Fatalf("auto id collided with caller id %q", got)
	}
}

// TestMergedIdentifierNeverReused locks in the never-reuse rule: an id
// retired by Merge stays retired.
func TestMergedIdentifierNeverReused(t *testing.T) {
	g := core.NewGraph()
	a, b := g.AddVertex(), g.AddVertex()
	c := g.AddVertex()
	if _, err := g.Connect(a, c, 5); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	survivor, err := g.Merge(a, b)
	if err != nil || survivor != a {
		t.Fatalf("Merge = %q, %v; want %q", survivor, err, a)
	}
	if g.HasVertex(b) {
		t.Fatalf("loser %q still present", b)
	}
	if _, err = g.AddVertexWithID(b); !errors.Is(err, core.ErrDuplicateID) {
		t.Fatalf("reusing merged id: err = %v; want ErrDuplicateID", err)
	}
}

//----------------------------------------------------------------------------//
// Connect
//----------------------------------------------------------------------------//

func TestConnect_Errors(t *testing.T) {
	g := core.NewGraph()
	a, b := g.AddVertex(), g.AddVertex()
	if _, err := g.Connect(a, b, 100); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	cases := []struct {
		name string
		a, b core.VertexID
		len  int64
		err  error
	}{
		{"SameVertex", a, a, 10, core.ErrSameVertex},
		{"UnknownLow", "ghost", b, 10, core.ErrUnknownID},
		{"UnknownHigh", a, "ghost", 10, core.ErrUnknownID},
		{"ZeroLength", a, b, 0, core.ErrBadLength},
		{"NegativeLength", a, b, -4, core.ErrBadLength},
		{"AlreadyConnected", a, b, 10, core.ErrAlreadyConnected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := g.Connect(tc.a, tc.b, tc.len); !errors.Is(err, tc.err) {
				t.Errorf("Connect(%q,%q,%d) error = %v; want %v", tc.a, tc.b, tc.len, err, tc.err)
			}
		})
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate after failed connects: %v", err)
	}
}

func TestConnect_SiblingSets(t *testing.T) {
	g := core.NewGraph()
	a, b, c := g.AddVertex(), g.AddVertex(), g.AddVertex()
	ab, _ := g.Connect(a, b, 10)
	bc, _ := g.Connect(b, c, 20)

	info, err := g.EdgeDetails(ab)
	if err != nil {
		t.Fatalf("EdgeDetails: %v", err)
	}
	if len(info.Siblings) != 1 || info.Siblings[0] != bc {
		t.Fatalf("siblings of %q = %v; want [%q]", ab, info.Siblings, bc)
	}
	if info.Low != a || info.High != b || info.Length != 10 {
		t.Fatalf("EdgeDetails = %+v", info)
	}
}

//----------------------------------------------------------------------------//
// Join
//----------------------------------------------------------------------------//

func TestJoin(t *testing.T) {
	g := core.NewGraph()
	a, m, b, c := g.AddVertex(), g.AddVertex(), g.AddVertex(), g.AddVertex()
	if _, err := g.Connect(a, m, 10); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if _, err := g.Connect(m, b, 10); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	added, err := g.Join(a, m, b)
	if err != nil || !added {
		t.Fatalf("Join = %v, %v; want true, nil", added, err)
	}
	// Duplicate pair is reported, not an error.
	added, err = g.Join(b, m, a)
	if err != nil || added {
		t.Fatalf("re-Join = %v, %v; want false, nil", added, err)
	}

	through, err := g.PairsAt(m)
	if err != nil {
		t.Fatalf("PairsAt: %v", err)
	}
	if len(through) != 1 || !sameThrough(through[0], a, b) {
		t.Fatalf("PairsAt(m) = %v; want one (a,b) hop", through)
	}

	if _, err = g.Join(a, m, c); !errors.Is(err, core.ErrNotConnected) {
		t.Fatalf("Join toward isolated vertex: err = %v; want ErrNotConnected", err)
	}
	if _, err = g.Join(a, m, a); !errors.Is(err, core.ErrSameEdgeJoin) {
		t.Fatalf("Join with both legs on one edge: err = %v; want ErrSameEdgeJoin", err)
	}
}

// sameThrough compares an unordered hop against two endpoints.
func sameThrough(th core.Through, x, y core.VertexID) bool {
	return (th.A == x && th.B == y) || (th.A == y && th.B == x)
}

//----------------------------------------------------------------------------//
// Enumeration
//----------------------------------------------------------------------------//

func TestEnumerationOrder(t *testing.T) {
	g := core.NewGraph()
	a, b, c := g.AddVertex(), g.AddVertex(), g.AddVertex()
	e1, _ := g.Connect(a, b, 1)
	e2, _ := g.Connect(b, c, 1)

	wantV := []core.VertexID{a, b, c}
	gotV := g.AllVertices()
	if len(gotV) != len(wantV) {
		t.Fatalf("AllVertices = %v; want %v", gotV, wantV)
	}
	for i := range wantV {
		if gotV[i] != wantV[i] {
			t.Fatalf("AllVertices[%d] = %q; want %q", i, gotV[i], wantV[i])
		}
	}

	gotE := g.AllEdges()
	if len(gotE) != 2 || gotE[0] != e1 || gotE[1] != e2 {
		t.Fatalf("AllEdges = %v; want [%q %q]", gotE, e1, e2)
	}
}
