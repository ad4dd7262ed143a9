package ring

import "math"

// Point is a canvas coordinate. Y grows downward.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Lerp returns the point a fraction t of the way from p to q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Circle is positioned by its top-left corner, like the bounding box of
// the shape on the canvas.
type Circle struct {
	Radius float64
	Left   float64
	Top    float64
}

func (c Circle) Center() Point {
	return Point{c.Left + c.Radius, c.Top + c.Radius}
}

// Origin returns the top-left position that puts the circle's center at p.
func (c Circle) Origin(p Point) Point {
	return Point{p.X - c.Radius, p.Y - c.Radius}
}

// PlaceAt returns a copy of c centered on p.
func (c Circle) PlaceAt(p Point) Circle {
	o := c.Origin(p)
	c.Left, c.Top = o.X, o.Y
	return c
}

// Geometry is the immutable input to all placement math.
type Geometry struct {
	RingRadius float64
	NodeRadius float64
	NodeCount  int
}

// Side is the edge length of the square canvas that fits the ring plus
// the node radii.
func (g Geometry) Side() float64 {
	return (g.RingRadius + g.NodeRadius) * 2
}

// Center is the center of the ring on the canvas.
func (g Geometry) Center() Point {
	c := g.RingRadius + g.NodeRadius
	return Point{c, c}
}

// Outline is the ring circle itself.
func (g Geometry) Outline() Circle {
	return Circle{Radius: g.RingRadius, Left: g.NodeRadius, Top: g.NodeRadius}
}

// NodeAngle is the polar angle of node i out of n. Node 0 sits at π/2
// (12 o'clock) and the angle decreases by 2π/n per node, which walks the
// ring clockwise on screen.
func NodeAngle(i, n int) float64 {
	return math.Pi/2 - float64(i)*(2*math.Pi/float64(n))
}

// NodeCenters places n points at equal angular spacing on the ring.
func (g Geometry) NodeCenters(n int) []Point {
	c := g.Center()
	out := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		theta := NodeAngle(i, n)
		// canvas Y is flipped
		out = append(out, Point{
			X: c.X + g.RingRadius*math.Cos(theta),
			Y: c.Y - g.RingRadius*math.Sin(theta),
		})
	}
	return out
}

// Nodes returns n node circles of radius NodeRadius placed on the ring.
func (g Geometry) Nodes(n int) []Circle {
	centers := g.NodeCenters(n)
	out := make([]Circle, len(centers))
	for i, p := range centers {
		out[i] = Circle{Radius: g.NodeRadius}.PlaceAt(p)
	}
	return out
}

// Segment is a straight line between two points.
type Segment struct {
	From, To Point
}

func (s Segment) Length() float64 { return s.From.Dist(s.To) }

// EdgeBetween joins the centers of two node circles.
func EdgeBetween(a, b Circle) Segment {
	return Segment{From: a.Center(), To: b.Center()}
}
