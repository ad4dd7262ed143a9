package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/ring-visualization/internal/ring"
)

// drawShape paints one scene shape, converting canvas units to screen
// pixels with scale.
func drawShape(screen *ebiten.Image, sh ring.Shape, scale float32) {
	st := sh.Style

	if sh.Kind == ring.KindEdge {
		if st.Stroked() {
			l := sh.Line
			vector.StrokeLine(screen,
				float32(l.From.X)*scale, float32(l.From.Y)*scale,
				float32(l.To.X)*scale, float32(l.To.Y)*scale,
				float32(st.StrokeWidth)*scale, withOpacity(st.Stroke, st.Opacity), true)
		}
		return
	}

	c := sh.Circle.Center()
	cx, cy, r := float32(c.X)*scale, float32(c.Y)*scale, float32(sh.Circle.Radius)*scale
	if st.Filled() {
		vector.DrawFilledCircle(screen, cx, cy, r, withOpacity(st.Fill, st.Opacity), true)
	}
	if st.Stroked() {
		vector.StrokeCircle(screen, cx, cy, r, float32(st.StrokeWidth)*scale, withOpacity(st.Stroke, st.Opacity), true)
	}
}

// drawLevel draws a vertical audio meter whose fill follows level (0-1).
func drawLevel(screen *ebiten.Image, level float64, muted bool, x, y, h float32) {
	const w = 6

	border := color.RGBA{R: 100, G: 110, B: 130, A: 255}
	vector.StrokeRect(screen, x, y, w, h, 1, border, false)
	if muted {
		vector.StrokeLine(screen, x, y, x+w, y+h, 1, border, false)
		return
	}

	fill := float32(ring.Clamp01(level)) * h
	vector.DrawFilledRect(screen, x, y+h-fill, w, fill, color.RGBA{R: 80, G: 160, B: 255, A: 255}, false)
}
