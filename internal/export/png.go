package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/iburimskiy/ring-visualization/internal/ring"
)

// PNGOptions configures PNG rendering.
type PNGOptions struct {
	Scale       int // output pixels per canvas unit
	Supersample int // render this many times larger, then downsample
	Segments    int // polygon segments per circle
	Background  color.Color
}

// DefaultPNGOptions returns sensible defaults for PNG rendering.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		Scale:       2,
		Supersample: 4,
		Segments:    96,
		Background:  color.White,
	}
}

func (o PNGOptions) normalized() PNGOptions {
	d := DefaultPNGOptions()
	if o.Scale < 1 {
		o.Scale = d.Scale
	}
	if o.Supersample < 1 {
		o.Supersample = d.Supersample
	}
	if o.Segments < 8 {
		o.Segments = d.Segments
	}
	if o.Background == nil {
		o.Background = d.Background
	}
	return o
}

// RenderPNG renders shapes to PNG format.
func RenderPNG(w io.Writer, shapes []ring.Shape, side float64, opts PNGOptions) error {
	return png.Encode(w, Rasterize(shapes, side, opts))
}

// Rasterize draws shapes, back to front, onto a new image of
// side*opts.Scale pixels square.
func Rasterize(shapes []ring.Shape, side float64, opts PNGOptions) *image.RGBA {
	opts = opts.normalized()

	px := int(math.Ceil(side)) * opts.Scale
	big := px * opts.Supersample
	k := float32(opts.Scale * opts.Supersample)

	large := image.NewRGBA(image.Rect(0, 0, big, big))
	draw.Draw(large, large.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	z := vector.NewRasterizer(big, big)
	for _, sh := range shapes {
		switch sh.Kind {
		case ring.KindEdge:
			if sh.Style.Stroked() {
				z.Reset(big, big)
				line(z, sh.Line, float32(sh.Style.StrokeWidth), k)
				paint(z, large, sh.Style.Stroke, sh.Style.Opacity)
			}
		default:
			c := sh.Circle.Center()
			cx, cy, r := float32(c.X)*k, float32(c.Y)*k, float32(sh.Circle.Radius)*k
			if sh.Style.Filled() {
				z.Reset(big, big)
				circle(z, cx, cy, r, opts.Segments, false)
				paint(z, large, sh.Style.Fill, sh.Style.Opacity)
			}
			if sh.Style.Stroked() {
				half := float32(sh.Style.StrokeWidth) * k / 2
				z.Reset(big, big)
				circle(z, cx, cy, r+half, opts.Segments, false)
				// reversed inner path cuts the hole
				circle(z, cx, cy, max(r-half, 0), opts.Segments, true)
				paint(z, large, sh.Style.Stroke, sh.Style.Opacity)
			}
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, px, px))
	xdraw.CatmullRom.Scale(out, out.Bounds(), large, large.Bounds(), xdraw.Over, nil)
	return out
}

func paint(z *vector.Rasterizer, dst draw.Image, c color.RGBA, opacity float64) {
	src := image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * ring.Clamp01(opacity))})
	z.DrawOp = draw.Over
	z.Draw(dst, dst.Bounds(), src, image.Point{})
}

func circle(z *vector.Rasterizer, cx, cy, r float32, segments int, reverse bool) {
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		if reverse {
			a = -a
		}
		x := cx + r*float32(math.Cos(a))
		y := cy + r*float32(math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

func line(z *vector.Rasterizer, s ring.Segment, width, k float32) {
	x1, y1 := float32(s.From.X)*k, float32(s.From.Y)*k
	x2, y2 := float32(s.To.X)*k, float32(s.To.Y)*k

	l := float32(math.Hypot(float64(x2-x1), float64(y2-y1)))
	if l == 0 {
		return
	}
	// unit normal scaled to half the stroke width
	nx, ny := -(y2-y1)/l*width*k/2, (x2-x1)/l*width*k/2

	z.MoveTo(x1+nx, y1+ny)
	z.LineTo(x2+nx, y2+ny)
	z.LineTo(x2-nx, y2-ny)
	z.LineTo(x1-nx, y1-ny)
	z.ClosePath()
}
