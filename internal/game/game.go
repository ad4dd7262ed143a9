package game

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lthibault/log"

	"github.com/iburimskiy/ring-visualization/internal/config"
	"github.com/iburimskiy/ring-visualization/internal/ring"
)

type action int

const (
	actionForward action = iota
	actionBackward
	actionSnapshot
	actionMute
	actionHelp
	actionQuit
)

// Bindings live as long as the window; nothing is registered globally.
var bindings = []struct {
	key ebiten.Key
	act action
}{
	{ebiten.KeyArrowRight, actionForward},
	{ebiten.KeyArrowLeft, actionBackward},
	{ebiten.KeyS, actionSnapshot},
	{ebiten.KeyM, actionMute},
	{ebiten.KeyH, actionHelp},
	{ebiten.KeyEscape, actionQuit},
	{ebiten.KeyQ, actionQuit},
}

var helpLines = []string{
	"Right: next step",
	"Left:  undo step",
	"S:     save snapshot",
	"M:     mute",
	"H:     hide help",
}

// Game is the ebiten front end for one ring session.
type Game struct {
	cfg     config.Config
	log     log.Logger
	session *ring.Session
	audio   *audio

	showHelp bool
	lastErr  error
}

// New builds a session for cfg. Sound failures are logged and leave the
// game silent.
func New(cfg config.Config, l log.Logger) (*Game, error) {
	s, err := ring.NewSession(cfg, l)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:      cfg,
		log:      l,
		session:  s,
		showHelp: cfg.ShowHelp,
	}

	if cfg.Sound {
		if g.audio, err = newAudio(l); err != nil {
			l.WithError(err).Warn("audio unavailable, continuing without sound")
		} else {
			s.Scene().Subscribe(g.audio)
		}
	}

	s.Scene().Subscribe(ring.ListenerFunc(func(e ring.Event) {
		l.WithField("packet", e.Packet).
			WithField("from", e.From).
			WithField("to", e.To).
			Debug(e.Kind.String())
	}))

	return g, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg config.Config, l log.Logger) error {
	g, err := New(cfg, l)
	if err != nil {
		return err
	}
	defer g.Close()

	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetTPS(cfg.TPS)

	l.WithField("nodes", cfg.NodeCount).
		WithField("ring_radius", cfg.RingRadius).
		Info("window opened")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Close releases the audio pipeline.
func (g *Game) Close() {
	if g.audio != nil {
		g.audio.close()
	}
}

func (g *Game) Update() error {
	for _, b := range bindings {
		if !inpututil.IsKeyJustPressed(b.key) {
			continue
		}
		if err := g.handle(b.act); err != nil {
			return err
		}
	}

	g.session.Tick(g.cfg.TickDuration())
	return nil
}

func (g *Game) handle(a action) error {
	switch a {
	case actionForward:
		g.step(g.session.Advance)
	case actionBackward:
		g.step(g.session.Retreat)
	case actionSnapshot:
		if err := g.snapshot(); err != nil {
			g.log.WithError(err).Error("snapshot failed")
			g.lastErr = err
		}
	case actionMute:
		if g.audio != nil {
			g.log.WithField("muted", g.audio.toggleMute()).Info("sound toggled")
		}
	case actionHelp:
		g.showHelp = !g.showHelp
	case actionQuit:
		return ebiten.Termination
	}
	return nil
}

// step runs a sequencer transition. Running off either end of the
// sequence is reported, not fatal.
func (g *Game) step(fn func() error) {
	g.lastErr = nil
	if err := fn(); err != nil {
		g.log.WithError(err).Debug("step rejected")
		g.lastErr = err
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)

	scale := float32(g.cfg.Scale)
	for _, sh := range g.session.Scene().Shapes() {
		drawShape(screen, sh, scale)
	}

	g.drawStatus(screen)

	if g.showHelp {
		vector.DrawFilledRect(screen, 0, 0, 140, float32(8+len(helpLines)*14), color.RGBA{R: 30, G: 34, B: 44, A: 200}, false)
		for i, line := range helpLines {
			ebitenutil.DebugPrintAt(screen, line, 4, 4+i*14)
		}
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	w, h := g.Layout(0, 0)
	top := h - config.StatusBarHeight

	vector.DrawFilledRect(screen, 0, float32(top), float32(w), config.StatusBarHeight, color.RGBA{R: 30, G: 34, B: 44, A: 255}, false)

	cur := g.session.Cursor()
	status := fmt.Sprintf("step %d/%d %s", int(cur)+1, ring.StepCount, cur)
	if n := g.session.Scene().Count(ring.KindPacket); n > 0 {
		status += fmt.Sprintf(" | %d in flight (%s)", n, formatDuration(g.cfg.PacketDuration))
	}
	ebitenutil.DebugPrintAt(screen, status, 6, top+4)

	if g.lastErr != nil {
		ebitenutil.DebugPrintAt(screen, g.lastErr.Error(), 6, top+20)
	}

	if g.audio != nil {
		drawLevel(screen, g.audio.level(), g.audio.isMuted(), float32(w-14), float32(top+6), float32(config.StatusBarHeight-12))
	}
}

// Layout keeps the canvas square, scaled, with the status bar below it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	side := int(g.session.Geometry().Side()+0.5) * g.cfg.Scale
	return side, side + config.StatusBarHeight
}
