package core_test

import (
	"fmt"

	"github.com/katalvlaran/trackway/core"
)

// ExampleGraph_Split builds a 100-unit span, subdivides it at 40, and
// shows that the two halves stay through-routable by default.
func ExampleGraph_Split() {
	g := core.NewGraph()
	a, b := g.AddVertex(), g.AddVertex()
	if _, err := g.Connect(a, b, 100); err != nil {
		fmt.Println("connect:", err)
		return
	}

	m, err := g.Split(a, core.AutoVertex, b, 40)
	if err != nil {
		fmt.Println("split:", err)
		return
	}

	left, _ := g.FindBetween(a, m)
	right, _ := g.FindBetween(m, b)
	through, _ := g.PairsAt(m)
	fmt.Println(left.Distance, right.Distance)
	fmt.Println(through[0].A == a && through[0].B == b)
	// Output:
	// 40 60
	// true
}

// ExampleGraph_Join authorizes one turn at a three-way junction.
func ExampleGraph_Join() {
	g := core.NewGraph()
	m := g.AddVertex()
	a, b, c := g.AddVertex(), g.AddVertex(), g.AddVertex()
	for _, leg := range []core.VertexID{a, b, c} {
		if _, err := g.Connect(m, leg, 10); err != nil {
			fmt.Println("connect:", err)
			return
		}
	}

	added, err := g.Join(a, m, b)
	if err != nil {
		fmt.Println("join:", err)
		return
	}
	through, _ := g.PairsAt(m)
	fmt.Println(added, len(through))
	// Output:
	// true 1
}
