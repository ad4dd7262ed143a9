package ring

import (
	"errors"
	"fmt"
	"image/color"
	"time"
)

var (
	ErrNoShape     = errors.New("no such shape")
	ErrNotMovable  = errors.New("shape cannot be animated")
	ErrBadDuration = errors.New("animation duration must be positive")
)

// Kind tells renderers how to draw a shape.
type Kind uint8

const (
	KindRing Kind = iota
	KindNode
	KindEdge
	KindPacket
)

func (k Kind) String() string {
	switch k {
	case KindRing:
		return "ring"
	case KindNode:
		return "node"
	case KindEdge:
		return "edge"
	case KindPacket:
		return "packet"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Style is the paint applied to a shape. A zero-alpha Fill means the
// shape is drawn as an outline only.
type Style struct {
	Fill        color.RGBA
	Stroke      color.RGBA
	StrokeWidth float64
	Opacity     float64
	Selectable  bool
}

func (s Style) Filled() bool  { return s.Fill.A > 0 }
func (s Style) Stroked() bool { return s.Stroke.A > 0 && s.StrokeWidth > 0 }

var (
	colorBlack = color.RGBA{0, 0, 0, 255}
	colorGreen = color.RGBA{0, 128, 0, 255}
	colorBlue  = color.RGBA{0, 0, 255, 255}

	RingStyle   = Style{Stroke: colorBlack, StrokeWidth: 1, Opacity: 0.25}
	NodeStyle   = Style{Fill: colorGreen, Opacity: 1, Selectable: true}
	EdgeStyle   = Style{Stroke: colorBlack, StrokeWidth: 2, Opacity: 1, Selectable: true}
	PacketStyle = Style{Fill: colorBlue, Opacity: 1, Selectable: true}
)

type ShapeID uint64

// Shape is one drawable item on the canvas. Circle is set for rings, nodes
// and packets; Line is set for edges.
type Shape struct {
	ID     ShapeID
	Kind   Kind
	Circle Circle
	Line   Segment
	Style  Style
}

// EventKind identifies a packet lifecycle notification.
type EventKind uint8

const (
	PacketSent EventKind = iota
	PacketArrived
)

func (k EventKind) String() string {
	if k == PacketSent {
		return "sent"
	}
	return "arrived"
}

type Event struct {
	Kind     EventKind
	Packet   ShapeID
	From, To Point
	Duration time.Duration
}

// Listener observes packet traffic on a scene. Arrival is a notification
// only; nothing acknowledges delivery.
type Listener interface {
	HandleEvent(Event)
}

type ListenerFunc func(Event)

func (f ListenerFunc) HandleEvent(e Event) { f(e) }

type tween struct {
	id         ShapeID
	from, to   Point
	duration   time.Duration
	elapsed    time.Duration
	onComplete func()
}

// Scene is the drawing surface: an ordered list of shapes, back to front,
// plus the position animations running on them. It is not safe for
// concurrent use; all calls come from the update loop.
type Scene struct {
	shapes    []Shape
	nextID    ShapeID
	tweens    []*tween
	listeners []Listener
}

func NewScene() *Scene {
	return &Scene{}
}

// Subscribe registers l for packet events.
func (s *Scene) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *Scene) emit(e Event) {
	for _, l := range s.listeners {
		l.HandleEvent(e)
	}
}

func (s *Scene) add(sh Shape) ShapeID {
	s.nextID++
	sh.ID = s.nextID
	s.shapes = append(s.shapes, sh)
	return sh.ID
}

// AddCircle puts a circle of the given kind on top of the scene.
func (s *Scene) AddCircle(kind Kind, c Circle, st Style) ShapeID {
	return s.add(Shape{Kind: kind, Circle: c, Style: st})
}

// AddLine puts an edge on top of the scene.
func (s *Scene) AddLine(seg Segment, st Style) ShapeID {
	return s.add(Shape{Kind: KindEdge, Line: seg, Style: st})
}

func (s *Scene) index(id ShapeID) int {
	for i := range s.shapes {
		if s.shapes[i].ID == id {
			return i
		}
	}
	return -1
}

// Remove drops a shape. Removing an unknown shape is a no-op that reports
// false.
func (s *Scene) Remove(id ShapeID) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
	return true
}

// SendToBack moves a shape to the bottom of the z-order.
func (s *Scene) SendToBack(id ShapeID) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	sh := s.shapes[i]
	copy(s.shapes[1:i+1], s.shapes[:i])
	s.shapes[0] = sh
	return true
}

func (s *Scene) Shape(id ShapeID) (Shape, bool) {
	if i := s.index(id); i >= 0 {
		return s.shapes[i], true
	}
	return Shape{}, false
}

// Shapes returns a copy of the shapes in render order.
func (s *Scene) Shapes() []Shape {
	out := make([]Shape, len(s.shapes))
	copy(out, s.shapes)
	return out
}

func (s *Scene) Len() int { return len(s.shapes) }

func (s *Scene) Count(kind Kind) int {
	var n int
	for _, sh := range s.shapes {
		if sh.Kind == kind {
			n++
		}
	}
	return n
}

// Clear removes every shape and drops running animations without firing
// their completion callbacks.
func (s *Scene) Clear() {
	s.shapes = s.shapes[:0]
	s.tweens = nil
}

// Animating reports how many position animations are in flight.
func (s *Scene) Animating() int { return len(s.tweens) }

// Animate moves a circle's top-left corner linearly to `to` over d.
// onComplete, if set, runs on the tick that reaches the target. Several
// animations may run on the same scene at once and none can be cancelled
// except by removing the shape.
func (s *Scene) Animate(id ShapeID, to Point, d time.Duration, onComplete func()) error {
	if d <= 0 {
		return ErrBadDuration
	}
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("animate %d: %w", id, ErrNoShape)
	}
	if s.shapes[i].Kind == KindEdge {
		return fmt.Errorf("animate %d: %w", id, ErrNotMovable)
	}
	c := s.shapes[i].Circle
	s.tweens = append(s.tweens, &tween{
		id:         id,
		from:       Point{c.Left, c.Top},
		to:         to,
		duration:   d,
		onComplete: onComplete,
	})
	return nil
}

// Tick advances every animation by dt. Animations whose shape has been
// removed are dropped silently.
func (s *Scene) Tick(dt time.Duration) {
	if len(s.tweens) == 0 {
		return
	}

	active := s.tweens
	s.tweens = nil

	var keep, done []*tween
	for _, tw := range active {
		i := s.index(tw.id)
		if i < 0 {
			continue
		}
		tw.elapsed += dt
		p := tw.from.Lerp(tw.to, Clamp01(float64(tw.elapsed)/float64(tw.duration)))
		s.shapes[i].Circle.Left, s.shapes[i].Circle.Top = p.X, p.Y
		if tw.elapsed >= tw.duration {
			done = append(done, tw)
		} else {
			keep = append(keep, tw)
		}
	}

	// callbacks may start new animations
	s.tweens = append(keep, s.tweens...)
	for _, tw := range done {
		if tw.onComplete != nil {
			tw.onComplete()
		}
	}
}

// SendPacket drops a marker on the source node's center and animates it to
// the destination node's center over d. The marker is removed when it
// arrives.
func (s *Scene) SendPacket(from, to Circle, radius float64, d time.Duration) (ShapeID, error) {
	src, dst := from.Center(), to.Center()
	marker := Circle{Radius: radius}.PlaceAt(src)
	id := s.AddCircle(KindPacket, marker, PacketStyle)

	err := s.Animate(id, marker.Origin(dst), d, func() {
		s.Remove(id)
		s.emit(Event{Kind: PacketArrived, Packet: id, From: src, To: dst, Duration: d})
	})
	if err != nil {
		s.Remove(id)
		return 0, err
	}

	s.emit(Event{Kind: PacketSent, Packet: id, From: src, To: dst, Duration: d})
	return id, nil
}

// Clamp01 limits v to [0, 1]. Tween progress and style opacities go
// through it.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
