package export_test

import (
	"bytes"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lthibault/log"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/ring-visualization/internal/config"
	"github.com/iburimskiy/ring-visualization/internal/export"
	"github.com/iburimskiy/ring-visualization/internal/ring"
)

func fullScene(t *testing.T) ([]ring.Shape, float64) {
	t.Helper()

	s, err := ring.NewSession(config.Default(), log.New(log.WithLevel(log.FatalLevel)))
	require.NoError(t, err)
	for range ring.Steps {
		require.NoError(t, s.Advance())
	}
	return s.Scene().Shapes(), s.Geometry().Side()
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	f, err := export.FormatFromPath("ring.PNG")
	require.NoError(t, err)
	require.Equal(t, export.FormatPNG, f)

	f, err = export.FormatFromPath("/tmp/ring.svg")
	require.NoError(t, err)
	require.Equal(t, export.FormatSVG, f)

	_, err = export.FormatFromPath("ring.gif")
	require.ErrorIs(t, err, export.ErrUnknownFormat)
}

func TestRasterize(t *testing.T) {
	t.Parallel()

	shapes, side := fullScene(t)
	opts := export.DefaultPNGOptions()
	opts.Scale = 1
	opts.Supersample = 2

	img := export.Rasterize(shapes, side, opts)
	require.Equal(t, 220, img.Bounds().Dx())

	// node 0 is centered at (110, 10); the packet covers the inner 5 units
	r, g, b, _ := img.At(110, 17).RGBA()
	require.Greater(t, g, r, "node 0 should be green")
	require.Greater(t, g, b, "node 0 should be green")

	r, g, b, _ = img.At(110, 10).RGBA()
	require.Greater(t, b, g, "packet should sit on node 0")
	require.Greater(t, b, r, "packet should sit on node 0")

	// the middle of the canvas is empty
	r, g, b, _ = img.At(110, 110).RGBA()
	for _, v := range []uint32{r, g, b} {
		require.Greater(t, v, uint32(0xf000), "canvas center should be white")
	}
}

func TestRasterizeClampsOpacity(t *testing.T) {
	t.Parallel()

	node := func(opacity float64) []ring.Shape {
		st := ring.NodeStyle
		st.Opacity = opacity
		return []ring.Shape{{
			Kind:   ring.KindNode,
			Circle: ring.Circle{Radius: 10, Left: 0, Top: 0},
			Style:  st,
		}}
	}

	opts := export.DefaultPNGOptions()
	opts.Scale = 1

	want := export.Rasterize(node(1), 20, opts).At(10, 10)
	got := export.Rasterize(node(3), 20, opts).At(10, 10)
	require.Equal(t, want, got)
}

func TestRenderPNG(t *testing.T) {
	t.Parallel()

	shapes, side := fullScene(t)

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatPNG, shapes, side, export.DefaultPNGOptions()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 440, img.Bounds().Dx(), "default scale doubles the canvas")
}

func TestRenderSVG(t *testing.T) {
	t.Parallel()

	shapes, side := fullScene(t)

	var buf bytes.Buffer
	require.NoError(t, export.RenderSVG(&buf, shapes, side))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "<?xml"))
	require.Contains(t, out, `width="220"`)
	require.Equal(t, 1, strings.Count(out, `class="ring"`))
	require.Equal(t, 5, strings.Count(out, `class="node"`))
	require.Equal(t, 1, strings.Count(out, `class="edge"`))
	require.Equal(t, 1, strings.Count(out, `class="packet"`))
	require.Less(t, strings.Index(out, `class="edge"`), strings.Index(out, `class="ring"`),
		"edge should be drawn behind the ring")
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	shapes, side := fullScene(t)
	dir := t.TempDir()

	require.NoError(t, export.WriteFile(filepath.Join(dir, "ring.svg"), shapes, side, export.DefaultPNGOptions()))
	require.ErrorIs(t,
		export.WriteFile(filepath.Join(dir, "ring.bmp"), shapes, side, export.DefaultPNGOptions()),
		export.ErrUnknownFormat)
}
