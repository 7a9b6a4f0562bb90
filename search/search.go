// Package search: endpoint materialization, the BFS walk, and cleanup.
package search

import (
	"fmt"

	"github.com/katalvlaran/trackway/core"
)

// hop is one directed arrival at a vertex. Keying the visited set on the
// full hop (not the vertex alone) is what makes junction-restricted
// exploration terminate: the state space is bounded by twice the edges.
type hop struct {
	v, prev core.VertexID
}

// splitRecord tracks one synthesized endpoint vertex so cleanup can tear
// it down and the result can re-express its position afterwards.
// lowV/highV are the endpoints of the edge that was split and may
// themselves be synthetic when both endpoints landed on one edge.
type splitRecord struct {
	via      core.VertexID
	lowV     core.VertexID
	highV    core.VertexID
	fromLow  int64 // offset of via from lowV at split time
	lowHalf  core.EdgeID
	highHalf core.EdgeID
}

type finder struct {
	g     *core.Graph
	opts  Options
	synth []*splitRecord
	byVia map[core.VertexID]*splitRecord
	// splitOf maps a retired edge id to the split that consumed it, so a
	// second free endpoint given against the same original edge can be
	// re-addressed onto the halves.
	splitOf map[core.EdgeID]*splitRecord
}

// Find searches for a path between two endpoints, honouring pair
// semantics at every vertex, and returns the vertex sequence from source
// to target inclusive. Vertices synthesized for free endpoints are torn
// down before returning, on every path including failures, and appear
// in the result as synthetic steps carrying only their free position.
//
// Returns ErrGraphNil, ErrOptionViolation, ErrInvalidEndpoint, ErrNoPath,
// ErrBudgetExceeded, a context error, or core.ErrInternalInvariant if
// cleanup finds the synthesized vertex no longer releasable.
// Complexity: O(E) hops explored, bounded further by the pop budget.
func Find(g *core.Graph, from, to Endpoint, opts ...Option) (res *Result, err error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	f := &finder{
		g:       g,
		opts:    o,
		byVia:   make(map[core.VertexID]*splitRecord),
		splitOf: make(map[core.EdgeID]*splitRecord),
	}
	defer func() {
		if cerr := f.cleanup(); cerr != nil {
			res, err = nil, cerr
			return
		}
		if res != nil {
			if rerr := f.resolveSynthetic(res); rerr != nil {
				res, err = nil, rerr
			}
		}
	}()

	src, err := f.materialize(from)
	if err != nil {
		return nil, err
	}
	dst, err := f.materialize(to)
	if err != nil {
		return nil, err
	}
	if from.Prev != "" {
		if adj, adjErr := f.adjacent(src, from.Prev); adjErr != nil || !adj {
			return nil, fmt.Errorf("%w: direction hint %q is not adjacent to the source", ErrInvalidEndpoint, from.Prev)
		}
	}

	verts, err := f.walk(src, dst, from.Prev)
	if err != nil {
		return nil, err
	}

	return f.steps(verts), nil
}

// materialize turns an endpoint into a concrete vertex, synthesizing one
// via Split when no vertex sits at the requested position. Positions
// given against an edge this search already split are re-addressed onto
// the matching half first.
func (f *finder) materialize(ep Endpoint) (core.VertexID, error) {
	if ep.Vertex != "" {
		if !f.g.HasVertex(ep.Vertex) {
			return "", fmt.Errorf("%w: unknown vertex %q", ErrInvalidEndpoint, ep.Vertex)
		}
		return ep.Vertex, nil
	}

	edge, at := ep.Edge, ep.At
	for {
		rec, split := f.splitOf[edge]
		if !split {
			break
		}
		switch {
		case at < rec.fromLow:
			edge = rec.lowHalf
		case at > rec.fromLow:
			edge, at = rec.highHalf, at-rec.fromLow
		default:
			// The position is the earlier synthesized vertex itself.
			return rec.via, nil
		}
	}

	info, err := f.g.EdgeDetails(edge)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if at < 0 || at > info.Length {
		return "", fmt.Errorf("%w: offset %d on edge %q of length %d", ErrInvalidEndpoint, at, edge, info.Length)
	}
	if v, exact, exErr := f.g.ExactVertex(edge, at); exErr == nil && exact {
		return v, nil
	}

	via, err := f.g.Split(info.Low, core.AutoVertex, info.High, at)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	segLow, err := f.g.FindBetween(info.Low, via)
	if err != nil {
		return "", err
	}
	segHigh, err := f.g.FindBetween(via, info.High)
	if err != nil {
		return "", err
	}
	rec := &splitRecord{
		via:      via,
		lowV:     info.Low,
		highV:    info.High,
		fromLow:  at,
		lowHalf:  segLow.Edge,
		highHalf: segHigh.Edge,
	}
	f.synth = append(f.synth, rec)
	f.byVia[via] = rec
	f.splitOf[edge] = rec

	return via, nil
}

func (f *finder) adjacent(v, candidate core.VertexID) (bool, error) {
	dirs, err := f.g.DirsFrom(v)
	if err != nil {
		return false, err
	}
	for _, w := range dirs {
		if w == candidate {
			return true, nil
		}
	}

	return false, nil
}

// walk runs the breadth-first expansion and returns the vertex sequence
// source..target. A non-empty prevHint seeds the single compatible
// direction; otherwise every neighbour of the source is a root.
func (f *finder) walk(src, dst, prevHint core.VertexID) ([]core.VertexID, error) {
	if src == dst {
		return []core.VertexID{src}, nil
	}

	visited := make(map[hop]bool)
	parents := make(map[hop]hop)
	roots := make(map[hop]bool)
	var queue []hop

	seed := func(h hop) {
		visited[h] = true
		roots[h] = true
		queue = append(queue, h)
	}
	if prevHint != "" {
		seed(hop{v: src, prev: prevHint})
	} else {
		dirs, err := f.g.DirsFrom(src)
		if err != nil {
			return nil, err
		}
		for _, w := range dirs {
			seed(hop{v: w, prev: src})
		}
	}

	pops := 0
	for len(queue) > 0 {
		select {
		case <-f.opts.Ctx.Done():
			return nil, f.opts.Ctx.Err()
		default:
		}
		pops++
		if f.opts.Budget > 0 && pops > f.opts.Budget {
			return nil, fmt.Errorf("%w: after %d pops", ErrBudgetExceeded, f.opts.Budget)
		}

		h := queue[0]
		queue = queue[1:]
		if h.v == dst {
			return reconstruct(h, src, parents, roots), nil
		}

		through, err := f.g.PairsAt(h.v)
		if err != nil {
			return nil, err
		}
		for _, th := range through {
			var w core.VertexID
			switch h.prev {
			case th.A:
				w = th.B
			case th.B:
				w = th.A
			default:
				continue
			}
			nh := hop{v: w, prev: h.v}
			if !visited[nh] {
				visited[nh] = true
				parents[nh] = h
				queue = append(queue, nh)
			}
		}
	}

	return nil, ErrNoPath
}

// reconstruct walks the parent chain back to a root and returns the
// forward vertex sequence, source first.
func reconstruct(goal hop, src core.VertexID, parents map[hop]hop, roots map[hop]bool) []core.VertexID {
	seq := []core.VertexID{goal.v}
	cur := goal
	for !roots[cur] {
		cur = parents[cur]
		seq = append(seq, cur.v)
	}
	// A root seeded from DirsFrom carries the source only as its prev.
	if cur.v != src {
		seq = append(seq, src)
	}
	for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
		seq[i], seq[j] = seq[j], seq[i]
	}

	return seq
}

// steps wraps the vertex sequence, flagging synthesized endpoints. Their
// positions are filled in after cleanup.
func (f *finder) steps(verts []core.VertexID) *Result {
	res := &Result{Path: make([]Step, len(verts))}
	for i, v := range verts {
		_, synthetic := f.byVia[v]
		res.Path[i] = Step{Vertex: v, Synthetic: synthetic}
	}

	return res
}

// cleanup reverses every synthesis in reverse creation order. Failure is
// an internal invariant violation: the synthesized vertex must not have
// acquired incidences during a synchronous search.
func (f *finder) cleanup() error {
	for i := len(f.synth) - 1; i >= 0; i-- {
		if _, err := f.g.Unsplit(f.synth[i].via); err != nil {
			return err
		}
	}
	f.synth = nil

	return nil
}

// resolveSynthetic re-expresses synthetic steps on the post-cleanup
// graph: the bracketing real vertices are found by chasing through any
// intermediate synthetic brackets, and the offset is mapped onto the
// rejoined edge.
func (f *finder) resolveSynthetic(res *Result) error {
	for i, st := range res.Path {
		if !st.Synthetic {
			continue
		}
		rec := f.byVia[st.Vertex]
		lowV, highV, fromLow := rec.lowV, rec.highV, rec.fromLow
		for {
			if r2, ok := f.byVia[lowV]; ok {
				lowV = r2.lowV
				fromLow += r2.fromLow
				continue
			}
			if r2, ok := f.byVia[highV]; ok {
				highV = r2.highV
				continue
			}
			break
		}
		seg, err := f.g.FindBetween(lowV, highV)
		if err != nil {
			return err
		}
		info, err := f.g.EdgeDetails(seg.Edge)
		if err != nil {
			return err
		}
		at := fromLow
		if info.Low != lowV {
			at = info.Length - fromLow
		}
		res.Path[i] = Step{Edge: seg.Edge, At: at, Synthetic: true}
	}

	return nil
}
