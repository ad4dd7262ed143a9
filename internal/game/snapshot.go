package game

import (
	"errors"
	"path/filepath"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/ring-visualization/internal/export"
)

// snapshot asks for a file name and writes the current scene there.
// Cancelling the dialog is not an error.
func (g *Game) snapshot() error {
	path, err := zenity.SelectFileSave(
		zenity.Title("Save Snapshot"),
		zenity.Filename("ring.png"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{
			{Name: "PNG image", Patterns: []string{"*.png"}},
			{Name: "SVG image", Patterns: []string{"*.svg"}},
		},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	if filepath.Ext(path) == "" {
		path += ".png"
	}

	opts := export.DefaultPNGOptions()
	opts.Scale = g.cfg.Scale
	if err := export.WriteFile(path, g.session.Scene().Shapes(), g.session.Geometry().Side(), opts); err != nil {
		return err
	}

	g.log.WithField("path", path).Info("snapshot saved")
	return nil
}
