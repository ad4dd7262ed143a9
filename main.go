package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lthibault/log"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/iburimskiy/ring-visualization/internal/config"
	"github.com/iburimskiy/ring-visualization/internal/export"
	"github.com/iburimskiy/ring-visualization/internal/game"
	"github.com/iburimskiy/ring-visualization/internal/ring"
)

var logger log.Logger

var flags = []cli.Flag{
	&cli.StringFlag{
		Name:    "logfmt",
		Aliases: []string{"f"},
		Usage:   "text, json, none",
		Value:   "text",
		EnvVars: []string{"RINGVIZ_LOGFMT"},
	},
	&cli.StringFlag{
		Name:    "loglvl",
		Usage:   "trace, debug, info, warn, error, fatal",
		Value:   "info",
		EnvVars: []string{"RINGVIZ_LOGLVL"},
	},
}

// ringFlags are the session parameters. Each command and the app get their
// own copy, so they may be given before or after the command name.
func ringFlags() []cli.Flag {
	d := config.Default()
	return []cli.Flag{
		&cli.Float64Flag{
			Name:  "ring-radius",
			Usage: "radius of the ring in canvas units",
			Value: d.RingRadius,
		},
		&cli.Float64Flag{
			Name:  "node-radius",
			Usage: "radius of each node in canvas units",
			Value: d.NodeRadius,
		},
		&cli.IntFlag{
			Name:    "nodes",
			Aliases: []string{"n"},
			Usage:   "number of nodes on the ring",
			Value:   d.NodeCount,
		},
		&cli.IntFlag{
			Name:  "from",
			Usage: "index of the node that sends the packet",
			Value: d.PacketFrom,
		},
		&cli.IntFlag{
			Name:  "to",
			Usage: "index of the node that receives the packet",
			Value: d.PacketTo,
		},
		&cli.DurationFlag{
			Name:  "duration",
			Usage: "time a packet spends on the edge",
			Value: d.PacketDuration,
		},
		&cli.IntFlag{
			Name:  "scale",
			Usage: "screen pixels per canvas unit",
			Value: d.Scale,
		},
		&cli.BoolFlag{
			Name:  "mute",
			Usage: "disable packet sounds",
		},
		&cli.BoolFlag{
			Name:  "no-help",
			Usage: "start with the key help hidden",
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Println(err)
		if exit, ok := err.(cli.ExitCoder); ok {
			os.Exit(exit.ExitCode())
		}

		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:   "ringviz",
		Usage:  "step through an animated ring topology",
		Before: setUp,
		Flags:  append(flags, ringFlags()...),
		Action: run,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "open the visualizer window",
				Flags:  ringFlags(),
				Action: run,
			},
			{
				Name:  "render",
				Usage: "apply steps without a window and write a png or svg snapshot",
				Flags: append(ringFlags(),
					&cli.IntFlag{
						Name:  "steps",
						Usage: "number of forward steps to apply",
						Value: ring.StepCount,
					},
					&cli.DurationFlag{
						Name:  "elapsed",
						Usage: "animation time to advance after the last step",
					},
					&cli.PathFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "output file (.png or .svg)",
						Required: true,
					},
				),
				Action: render,
			},
		},
	}
}

func setUp(c *cli.Context) error {
	logger = log.New(withLevel(c), withFormat(c), withWriter(c))
	return nil
}

// flagCtx returns the nearest context in which name was set explicitly, so
// that a flag given after the command name wins over one given before it.
func flagCtx(c *cli.Context, name string) *cli.Context {
	for _, ctx := range c.Lineage() {
		if ctx.IsSet(name) {
			return ctx
		}
	}
	return c
}

func configFrom(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	cfg.RingRadius = flagCtx(c, "ring-radius").Float64("ring-radius")
	cfg.NodeRadius = flagCtx(c, "node-radius").Float64("node-radius")
	cfg.NodeCount = flagCtx(c, "nodes").Int("nodes")
	cfg.PacketFrom = flagCtx(c, "from").Int("from")
	cfg.PacketTo = flagCtx(c, "to").Int("to")
	cfg.PacketDuration = flagCtx(c, "duration").Duration("duration")
	cfg.Scale = flagCtx(c, "scale").Int("scale")
	cfg.Sound = !flagCtx(c, "mute").Bool("mute")
	cfg.ShowHelp = !flagCtx(c, "no-help").Bool("no-help")
	return cfg, cfg.Validate()
}

func run(c *cli.Context) error {
	cfg, err := configFrom(c)
	if err != nil {
		return cli.Exit(err, 2)
	}

	if err = game.Run(cfg, logger); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

func render(c *cli.Context) error {
	cfg, err := configFrom(c)
	if err != nil {
		return cli.Exit(err, 2)
	}

	s, err := ring.NewSession(cfg, logger)
	if err != nil {
		return cli.Exit(err, 2)
	}

	for i := 0; i < c.Int("steps"); i++ {
		if err := s.Advance(); err != nil {
			if errors.Is(err, ring.ErrNoNextStep) {
				logger.WithField("cursor", s.Cursor()).Warn("sequence ended early")
				break
			}
			return cli.Exit(err, 1)
		}
	}
	s.Tick(c.Duration("elapsed"))

	opts := export.DefaultPNGOptions()
	opts.Scale = cfg.Scale

	out := c.Path("out")
	if err := export.WriteFile(out, s.Scene().Shapes(), s.Geometry().Side(), opts); err != nil {
		return cli.Exit(err, 1)
	}

	logger.WithField("path", out).
		WithField("step", s.Cursor()).
		Info("snapshot written")
	return nil
}

// withLevel returns a log.Option that configures a logger's level.
func withLevel(c *cli.Context) (opt log.Option) {
	var level = log.InfoLevel
	defer func() {
		opt = log.WithLevel(level)
	}()

	switch c.String("loglvl") {
	case "trace", "t":
		level = log.TraceLevel
	case "debug", "d":
		level = log.DebugLevel
	case "info", "i":
		level = log.InfoLevel
	case "warn", "warning", "w":
		level = log.WarnLevel
	case "error", "err", "e":
		level = log.ErrorLevel
	case "fatal", "f":
		level = log.FatalLevel
	default:
		level = log.InfoLevel
	}

	return
}

// withFormat returns an option that configures a logger's format.
func withFormat(c *cli.Context) log.Option {
	var fmt logrus.Formatter

	switch c.String("logfmt") {
	case "json":
		fmt = new(logrus.JSONFormatter)
	default:
		fmt = new(logrus.TextFormatter)
	}

	return log.WithFormatter(fmt)
}

// withWriter discards all output when logging is turned off with
// "--logfmt none".
func withWriter(c *cli.Context) log.Option {
	if c.String("logfmt") == "none" {
		return log.WithWriter(io.Discard)
	}

	return log.WithWriter(os.Stderr)
}
