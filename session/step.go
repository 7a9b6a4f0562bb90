// Package session: snake anchoring and the per-tick stepper.
package session

import (
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/katalvlaran/trackway/core"
	"github.com/katalvlaran/trackway/reserve"
)

// Anchor designates where a snake is added: a known vertex, or a free
// (edge, offset) position that is materialized first.
type Anchor struct {
	Vertex core.VertexID
	Edge   core.EdgeID
	At     int64
}

// AtVertex anchors at a known vertex.
func AtVertex(v core.VertexID) Anchor { return Anchor{Vertex: v} }

// OnEdge anchors at an integer offset on an edge.
func OnEdge(e core.EdgeID, at int64) Anchor { return Anchor{Edge: e, At: at} }

// AddSnakeAt creates a zero-length snake at the anchor and registers it
// for stepping with its direction bit set to Head. A free
// edge position reuses the exact vertex there or splits one in.
func (s *Session) AddSnakeAt(at Anchor) (reserve.SnakeID, error) {
	v := at.Vertex
	if v == "" {
		var err error
		if v, err = s.materialize(at.Edge, at.At); err != nil {
			return "", err
		}
	}
	id, err := s.eng.AddSnake(v)
	if err != nil {
		return "", errors.Wrap(err, "session: add snake")
	}
	s.runners[id] = &runner{dir: reserve.Head, oracle: s.defaultOracle}
	klog.V(2).Infof("session: snake %s at %s", id, v)
	s.emit(EventUpdateSnakes)

	return id, nil
}

// materialize resolves a free edge position to a vertex, splitting the
// edge when none sits there. The split is a structural change and emits
// EventUpdate.
func (s *Session) materialize(edge core.EdgeID, at int64) (core.VertexID, error) {
	if v, exact, err := s.g.ExactVertex(edge, at); err != nil {
		return "", errors.Wrap(err, "session: anchor")
	} else if exact {
		return v, nil
	}
	info, err := s.g.EdgeDetails(edge)
	if err != nil {
		return "", errors.Wrap(err, "session: anchor")
	}
	v, err := s.g.Split(info.Low, core.AutoVertex, info.High, at)
	if err != nil {
		return "", errors.Wrap(err, "session: anchor")
	}
	s.emit(EventUpdate)

	return v, nil
}

// RemoveSnake releases the snake's reservations and unregisters it.
func (s *Session) RemoveSnake(id reserve.SnakeID) error {
	if err := s.eng.RemoveSnake(id); err != nil {
		return errors.Wrap(err, "session: remove snake")
	}
	delete(s.runners, id)
	s.emit(EventUpdateSnakes)

	return nil
}

// SetOracle replaces the routing oracle of one snake.
func (s *Session) SetOracle(id reserve.SnakeID, o reserve.Oracle) error {
	r, ok := s.runners[id]
	if !ok {
		return errors.Wrapf(reserve.ErrUnknownSnake, "session: set oracle %s", id)
	}
	if o != nil {
		r.oracle = o
	}

	return nil
}

// Direction reports the snake's current stepping direction.
func (s *Session) Direction(id reserve.SnakeID) (reserve.End, error) {
	r, ok := s.runners[id]
	if !ok {
		return 0, errors.Wrapf(reserve.ErrUnknownSnake, "session: direction %s", id)
	}

	return r.dir, nil
}

// SnakeState forwards the engine's snapshot of one snake.
func (s *Session) SnakeState(id reserve.SnakeID) (reserve.SnakeInfo, error) {
	return s.eng.SnakeState(id)
}

// Step advances every registered snake by delta units at its current
// direction. The translation is length-preserving: the trailing end is
// shrunk by exactly the distance grown. A snake blocked mid-step, by
// partial growth or by contact with another snake reported by Query,
// flips its direction bit under the Bounce policy.
//
// EventUpdateSnakes fires once per call when anything moved.
func (s *Session) Step(delta int64) error {
	if delta < 0 {
		return errors.Wrap(reserve.ErrBadAmount, "session: step")
	}
	moved := false
	for _, id := range s.eng.Snakes() {
		r, ok := s.runners[id]
		if !ok {
			continue
		}
		grown, err := s.eng.Grow(id, r.dir, delta, r.oracle)
		if err != nil {
			return errors.Wrapf(err, "session: step snake %s", id)
		}
		if grown > 0 {
			if _, err = s.eng.Shrink(id, r.dir.Opposite(), grown); err != nil {
				return errors.Wrapf(err, "session: step snake %s", id)
			}
			moved = true
		}

		blocked := grown < delta
		if !blocked {
			contacts, qerr := s.eng.Query(id)
			if qerr != nil {
				return errors.Wrapf(qerr, "session: step snake %s", id)
			}
			blocked = len(contacts) > 0
		}
		if blocked && s.bounce == Bounce {
			r.dir = r.dir.Opposite()
			klog.V(2).Infof("session: snake %s bounced, now heading %+d", id, r.dir)
		}
	}
	if moved {
		s.emit(EventUpdateSnakes)
	}

	return nil
}
