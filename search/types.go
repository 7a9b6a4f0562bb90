// Package search: endpoint descriptors, tunable options and error
// definitions for the pair-respecting path search.
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/trackway/core"
)

// Sentinel errors for search execution.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("search: graph is nil")

	// ErrNoPath is returned when the frontier is exhausted without
	// reaching the target.
	ErrNoPath = errors.New("search: no path")

	// ErrInvalidEndpoint is returned for an unknown vertex or edge, an
	// offset outside the edge, or a direction hint naming a non-neighbour.
	ErrInvalidEndpoint = errors.New("search: invalid endpoint")

	// ErrBudgetExceeded is returned when the frontier-pop budget runs out
	// before the target is reached.
	ErrBudgetExceeded = errors.New("search: budget exceeded")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")
)

// DefaultBudget caps frontier pops against adversarial graphs.
const DefaultBudget = 10_000

// Endpoint designates one end of a search: either a known vertex, or a
// free position on an edge, optionally with the vertex the traveller
// came from to pin the starting direction.
type Endpoint struct {
	Vertex core.VertexID // set when anchored at a vertex
	Edge   core.EdgeID   // set, with At, when anchored mid-edge
	At     int64
	Prev   core.VertexID // optional direction hint
}

// AtVertex anchors an endpoint at a known vertex.
func AtVertex(v core.VertexID) Endpoint { return Endpoint{Vertex: v} }

// OnEdge anchors an endpoint at an integer offset on an edge.
func OnEdge(e core.EdgeID, at int64) Endpoint { return Endpoint{Edge: e, At: at} }

// Toward pins the direction of travel: the search leaves the endpoint as
// if it had just arrived from prev.
func (ep Endpoint) Toward(prev core.VertexID) Endpoint {
	ep.Prev = prev
	return ep
}

// Option configures search behavior via functional arguments. An invalid
// option is recorded and surfaced as ErrOptionViolation when Find runs.
type Option func(*Options)

// Options holds the tunable parameters of one search.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// Budget bounds frontier pops. Zero disables the cap.
	Budget int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with a background context and the
// default pop budget.
func DefaultOptions() Options {
	return Options{Ctx: context.Background(), Budget: DefaultBudget}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithBudget caps frontier pops.
//
//	n > 0: cap at n
//	n == 0: explicit no cap
//	n < 0: invalid option → ErrOptionViolation
func WithBudget(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: budget cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.Budget = n
	}
}

// Step is one position along a found path. A synthetic step marks an
// endpoint that had no vertex of its own: its Vertex is blank and Edge/At
// give the free position on the graph as it stands after cleanup.
type Step struct {
	Vertex    core.VertexID
	Edge      core.EdgeID
	At        int64
	Synthetic bool
}

// Result holds a found path from source to target, inclusive.
type Result struct {
	Path []Step
}

// Vertices flattens the path to vertex identifiers; synthetic steps
// contribute their blank identifier.
func (r *Result) Vertices() []core.VertexID {
	out := make([]core.VertexID, len(r.Path))
	for i, st := range r.Path {
		out[i] = st.Vertex
	}

	return out
}
