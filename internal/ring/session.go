package ring

import (
	"errors"
	"fmt"
	"time"

	"github.com/lthibault/log"

	"github.com/iburimskiy/ring-visualization/internal/config"
)

// ErrMissingNode is returned when a packet endpoint has no drawn node.
var ErrMissingNode = errors.New("packet endpoint not drawn")

// Session is the whole mutable state of one visualizer: the scene, the node
// shapes drawn by the node steps and the step cursor.
type Session struct {
	cfg   config.Config
	geo   Geometry
	scene *Scene
	log   log.Logger

	cursor Step
	nodes  []ShapeID
	edge   ShapeID
}

// NewSession validates cfg and returns a session with nothing drawn.
func NewSession(cfg config.Config, l log.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Session{
		cfg: cfg,
		geo: Geometry{
			RingRadius: cfg.RingRadius,
			NodeRadius: cfg.NodeRadius,
			NodeCount:  cfg.NodeCount,
		},
		scene:  NewScene(),
		log:    l,
		cursor: StepNone,
	}, nil
}

func (s *Session) Geometry() Geometry { return s.geo }
func (s *Session) Scene() *Scene       { return s.scene }
func (s *Session) Cursor() Step        { return s.cursor }

// NodeRefs returns the node shapes currently recorded, in ring order.
func (s *Session) NodeRefs() []ShapeID {
	out := make([]ShapeID, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Tick advances running animations by dt.
func (s *Session) Tick(dt time.Duration) {
	s.scene.Tick(dt)
}

// Advance applies the next step's forward transition.
func (s *Session) Advance() error {
	next, ok := s.cursor.Next()
	if !ok {
		return ErrNoNextStep
	}

	s.log.WithField("step", next).Debug("forward")
	if err := s.forward(next); err != nil {
		return fmt.Errorf("%s: %w", next, err)
	}

	s.cursor = next
	return nil
}

// Retreat applies the current step's backward transition.
func (s *Session) Retreat() error {
	prev, ok := s.cursor.Prev()
	if !ok {
		return ErrNoPrevStep
	}

	s.log.WithField("step", s.cursor).Debug("backward")
	if err := s.backward(s.cursor); err != nil {
		return fmt.Errorf("%s: %w", s.cursor, err)
	}

	s.cursor = prev
	return nil
}

func (s *Session) forward(step Step) error {
	switch step {
	case StepDrawRing:
		s.scene.AddCircle(KindRing, s.geo.Outline(), RingStyle)

	case StepDrawSelfNode:
		s.drawNodes(1)

	case StepDrawAllNodes:
		s.removeNodes()
		s.drawNodes(s.geo.NodeCount)

	case StepSendPacket:
		if len(s.nodes) == 0 {
			s.drawNodes(s.geo.NodeCount)
		}

		from, to, err := s.endpoints(s.cfg.PacketFrom, s.cfg.PacketTo)
		if err != nil {
			return err
		}

		s.edge = s.scene.AddLine(EdgeBetween(from, to), EdgeStyle)
		s.scene.SendToBack(s.edge)

		_, err = s.scene.SendPacket(from, to, s.cfg.PacketRadius, s.cfg.PacketDuration)
		return err

	default:
		return fmt.Errorf("no forward transition for %s", step)
	}

	return nil
}

func (s *Session) backward(step Step) error {
	switch step {
	case StepDrawRing:
		// the ring stays

	case StepDrawSelfNode:
		s.removeNodes()

	case StepDrawAllNodes:
		// drawSelfNode always shows exactly the self node
		s.removeNodes()
		s.drawNodes(1)

	case StepSendPacket:
		from, to, err := s.endpoints(s.cfg.PacketTo, s.cfg.PacketFrom)
		if err != nil {
			return err
		}
		if _, err = s.scene.SendPacket(from, to, s.cfg.PacketRadius, s.cfg.PacketDuration); err != nil {
			return err
		}

		s.scene.Remove(s.edge)
		s.edge = 0
		s.removeNodes()

	default:
		return fmt.Errorf("no backward transition for %s", step)
	}

	return nil
}

func (s *Session) drawNodes(n int) {
	for _, c := range s.geo.Nodes(n) {
		s.nodes = append(s.nodes, s.scene.AddCircle(KindNode, c, NodeStyle))
	}
}

func (s *Session) removeNodes() {
	for _, id := range s.nodes {
		s.scene.Remove(id)
	}
	s.nodes = nil
}

func (s *Session) endpoints(from, to int) (Circle, Circle, error) {
	a, err := s.node(from)
	if err != nil {
		return Circle{}, Circle{}, err
	}
	b, err := s.node(to)
	if err != nil {
		return Circle{}, Circle{}, err
	}
	return a, b, nil
}

func (s *Session) node(i int) (Circle, error) {
	if i < 0 || i >= len(s.nodes) {
		return Circle{}, fmt.Errorf("node %d of %d: %w", i, len(s.nodes), ErrMissingNode)
	}
	sh, ok := s.scene.Shape(s.nodes[i])
	if !ok {
		return Circle{}, fmt.Errorf("node %d: %w", i, ErrMissingNode)
	}
	return sh.Circle, nil
}
