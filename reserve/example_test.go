package reserve_test

import (
	"fmt"

	"github.com/katalvlaran/trackway/core"
	"github.com/katalvlaran/trackway/reserve"
)

// ExampleEngine_Grow reserves a snake along a junction, steering it with
// a custom oracle.
func ExampleEngine_Grow() {
	g := core.NewGraph()
	eng := reserve.NewEngine(g)

	a, m := g.AddVertex(), g.AddVertex()
	left, right := g.AddVertex(), g.AddVertex()
	for _, leg := range []core.VertexID{left, right} {
		if _, err := g.Connect(m, leg, 50); err != nil {
			fmt.Println("connect:", err)
			return
		}
	}
	if _, err := g.Connect(a, m, 50); err != nil {
		fmt.Println("connect:", err)
		return
	}
	if _, err := g.Join(a, m, left); err != nil {
		fmt.Println("join:", err)
		return
	}
	if _, err := g.Join(a, m, right); err != nil {
		fmt.Println("join:", err)
		return
	}

	// Prefer the rightmost offered direction.
	last := func(_ core.VertexID, cands []core.VertexID) (core.VertexID, bool) {
		return cands[len(cands)-1], true
	}

	s, err := eng.AddSnake(a)
	if err != nil {
		fmt.Println("add:", err)
		return
	}
	grown, err := eng.Grow(s, reserve.Head, 75, last)
	if err != nil {
		fmt.Println("grow:", err)
		return
	}

	st, _ := eng.SnakeState(s)
	fmt.Println(grown, st.Vertices[0] == right)
	// Output:
	// 75 true
}
