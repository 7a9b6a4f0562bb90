package core

// spliceInterior inserts an existing isolated vertex into an edge's point
// list at the given offset, bypassing Split. Query code must handle
// interior vertices wherever the data model allows them, and white-box
// tests use this hook to build such edges directly.
func (g *Graph) spliceInterior(eid EdgeID, v VertexID, at int64) {
	e := g.edges[eid]
	i := 0
	for i < len(e.points) && e.points[i].At < at {
		i++
	}
	e.points = append(e.points, PointOnEdge{})
	copy(e.points[i+1:], e.points[i:])
	e.points[i] = PointOnEdge{Vertex: v, At: at}

	rec := g.vertices[v]
	rec.holders = append(rec.holders, eid)

	affected := append([]EdgeID{eid}, rec.holders...)
	g.recomputeSiblings(affected)
}
