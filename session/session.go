// Package session: the owning façade.
package session

import (
	goerrors "errors"
	"sort"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/katalvlaran/trackway/core"
	"github.com/katalvlaran/trackway/reserve"
	"github.com/katalvlaran/trackway/search"
)

// ErrVertexBusy indicates a structural edit would destroy a vertex that
// still carries reservation state; remove or move the snakes first.
var ErrVertexBusy = goerrors.New("session: vertex carries reservation state")

// Event is a fire-and-forget change notification. It carries no payload;
// subscribers re-read what they need.
type Event int

const (
	// EventUpdate signals a structural graph change.
	EventUpdate Event = iota
	// EventUpdateSnakes signals that one or more snakes moved.
	EventUpdateSnakes
)

// BouncePolicy selects how Step reacts to a blocked snake.
type BouncePolicy int

const (
	// Bounce flips the snake's direction bit so the next tick walks back.
	Bounce BouncePolicy = iota
	// ReportPartial keeps the direction; the snake simply waits.
	ReportPartial
)

// Option configures a Session at construction time.
type Option func(*Session)

// WithBouncePolicy overrides the default Bounce behavior.
func WithBouncePolicy(p BouncePolicy) Option {
	return func(s *Session) { s.bounce = p }
}

// WithOracle sets the oracle installed on newly added snakes. Default is
// reserve.FirstCandidate.
func WithOracle(o reserve.Oracle) Option {
	return func(s *Session) {
		if o != nil {
			s.defaultOracle = o
		}
	}
}

// runner is the per-snake stepping state: a direction bit and an oracle.
type runner struct {
	dir    reserve.End
	oracle reserve.Oracle
}

// Session owns one graph and one reservation engine. Construct with New;
// not safe for concurrent use.
type Session struct {
	g   *core.Graph
	eng *reserve.Engine

	defaultOracle reserve.Oracle
	bounce        BouncePolicy

	runners map[reserve.SnakeID]*runner

	subs    map[int]func(Event)
	nextSub int
}

// New creates an empty session with its own graph, engine and identifier
// sequences.
func New(opts ...Option) *Session {
	g := core.NewGraph()
	s := &Session{
		g:             g,
		eng:           reserve.NewEngine(g),
		defaultOracle: reserve.FirstCandidate,
		runners:       make(map[reserve.SnakeID]*runner),
		subs:          make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Graph exposes the owned graph for queries. Mutate through the session
// so notifications fire.
func (s *Session) Graph() *core.Graph { return s.g }

// Engine exposes the owned reservation engine for queries.
func (s *Session) Engine() *reserve.Engine { return s.eng }

// Subscribe registers a notification callback and returns its cancel
// function. Dispatch is synchronous, in subscription order.
func (s *Session) Subscribe(fn func(Event)) (cancel func()) {
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() { delete(s.subs, id) }
}

func (s *Session) emit(ev Event) {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		s.subs[id](ev)
	}
}

//----------------------------------------------------------------------------//
// Structural edits
//----------------------------------------------------------------------------//

// AddVertex creates an isolated vertex.
func (s *Session) AddVertex() core.VertexID {
	id := s.g.AddVertex()
	klog.V(2).Infof("session: add vertex %s", id)
	s.emit(EventUpdate)

	return id
}

// AddVertexWithID creates an isolated vertex under a caller identifier.
func (s *Session) AddVertexWithID(id core.VertexID) (core.VertexID, error) {
	got, err := s.g.AddVertexWithID(id)
	if err != nil {
		return "", errors.Wrap(err, "session: add vertex")
	}
	s.emit(EventUpdate)

	return got, nil
}

// Connect builds an edge between two vertices.
func (s *Session) Connect(a, b core.VertexID, length int64) (core.EdgeID, error) {
	id, err := s.g.Connect(a, b, length)
	if err != nil {
		return "", errors.Wrap(err, "session: connect")
	}
	klog.V(2).Infof("session: connect %s-%s len=%d -> %s", a, b, length, id)
	s.emit(EventUpdate)

	return id, nil
}

// Split subdivides the edge between a and b at the given offset.
func (s *Session) Split(a, via, b core.VertexID, at int64) (core.VertexID, error) {
	got, err := s.g.Split(a, via, b, at)
	if err != nil {
		return "", errors.Wrap(err, "session: split")
	}
	klog.V(2).Infof("session: split %s..%s at %d -> %s", a, b, at, got)
	s.emit(EventUpdate)

	return got, nil
}

// Join authorizes the a→via→b turn.
func (s *Session) Join(a, via, b core.VertexID) (bool, error) {
	added, err := s.g.Join(a, via, b)
	if err != nil {
		return false, errors.Wrap(err, "session: join")
	}
	if added {
		s.emit(EventUpdate)
	}

	return added, nil
}

// Merge fuses two vertices. Refused with ErrVertexBusy while either
// vertex still carries reservation state: the engine resolves vertices
// by identifier, so occupancy must be released before one vanishes.
func (s *Session) Merge(a, b core.VertexID) (core.VertexID, error) {
	if a != b && (s.eng.Touches(a) || s.eng.Touches(b)) {
		return "", errors.Wrapf(ErrVertexBusy, "session: merge %s with %s", a, b)
	}
	got, err := s.g.Merge(a, b)
	if err != nil {
		return "", errors.Wrap(err, "session: merge")
	}
	klog.V(2).Infof("session: merge %s+%s -> %s", a, b, got)
	s.emit(EventUpdate)

	return got, nil
}

// FindPath routes between two endpoints, delegating to the search layer.
// Synthesized endpoints may split and rejoin edges; a successful cleanup
// restores the same topology, though a rejoined edge carries a fresh
// identifier. No EventUpdate fires.
func (s *Session) FindPath(from, to search.Endpoint, opts ...search.Option) (*search.Result, error) {
	res, err := search.Find(s.g, from, to, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "session: find path")
	}

	return res, nil
}
