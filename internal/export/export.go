// Package export renders a scene to image files without a window.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iburimskiy/ring-visualization/internal/ring"
)

var ErrUnknownFormat = errors.New("unknown snapshot format")

type Format uint8

const (
	FormatPNG Format = iota
	FormatSVG
)

func (f Format) String() string {
	if f == FormatSVG {
		return "svg"
	}
	return "png"
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".svg":
		return FormatSVG, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Write renders shapes on a side x side canvas in the given format.
func Write(w io.Writer, f Format, shapes []ring.Shape, side float64, opts PNGOptions) error {
	switch f {
	case FormatPNG:
		return RenderPNG(w, shapes, side, opts)
	case FormatSVG:
		return RenderSVG(w, shapes, side)
	}
	return fmt.Errorf("%w: %d", ErrUnknownFormat, f)
}

// WriteFile renders shapes to path, choosing the format by extension.
func WriteFile(path string, shapes []ring.Shape, side float64, opts PNGOptions) (err error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	return Write(file, f, shapes, side, opts)
}
