package export

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/iburimskiy/ring-visualization/internal/ring"
)

// RenderSVG writes shapes as an SVG document, back to front.
func RenderSVG(w io.Writer, shapes []ring.Shape, side float64) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
`, side, side, side, side))
	sb.WriteString(fmt.Sprintf(`<rect width="%.0f" height="%.0f" fill="white"/>
`, side, side))

	for _, sh := range shapes {
		st := sh.Style
		switch sh.Kind {
		case ring.KindEdge:
			sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f" opacity="%.2f" class="%s"/>
`, sh.Line.From.X, sh.Line.From.Y, sh.Line.To.X, sh.Line.To.Y, hex(st.Stroke), st.StrokeWidth, st.Opacity, sh.Kind))
		default:
			c := sh.Circle.Center()
			fill, stroke := "none", "none"
			if st.Filled() {
				fill = hex(st.Fill)
			}
			if st.Stroked() {
				stroke = hex(st.Stroke)
			}
			sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="%.1f" opacity="%.2f" class="%s"/>
`, c.X, c.Y, sh.Circle.Radius, fill, stroke, st.StrokeWidth, st.Opacity, sh.Kind))
		}
	}

	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
