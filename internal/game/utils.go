package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/iburimskiy/ring-visualization/internal/ring"
)

// withOpacity returns c premultiplied by opacity (0-1).
func withOpacity(c color.RGBA, opacity float64) color.RGBA {
	a := ring.Clamp01(opacity)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// formatDuration formats a duration as seconds with one decimal, e.g. 2.0s
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
