package search_test

import (
	"fmt"

	"github.com/katalvlaran/trackway/core"
	"github.com/katalvlaran/trackway/search"
)

// ExampleFind routes across a subdivided span: the split vertex stays
// through-routable, so the path runs a → m → b.
func ExampleFind() {
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

	res, err := search.Find(g, search.AtVertex(a), search.AtVertex(b))
	if err != nil {
		fmt.Println("find:", err)
		return
	}
	fmt.Println(res.Vertices()[1] == m, len(res.Path))
	// Output:
	// true 3
}
