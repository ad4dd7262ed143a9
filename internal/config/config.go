package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultRingRadius = 100
	DefaultNodeRadius = 10
	DefaultNodeCount  = 5

	// Packet parameters
	DefaultPacketFrom     = 0
	DefaultPacketTo       = 3
	DefaultPacketRadius   = 5
	DefaultPacketDuration = 2000 * time.Millisecond

	// Window parameters
	DefaultScale     = 2
	DefaultTPS       = 60
	StatusBarHeight  = 40
	WindowTitle      = "Ring Visualizer - Left/Right: step, S: snapshot, M: mute, H: help, Esc/Q: quit"
	MaxNodeCount     = 360
	MaxWindowScale   = 8
	MinPacketRadius  = 1
	ToneSampleRate   = 44100
	ToneBufferPeriod = time.Second / 20
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the ring parameters. It is fixed once a session starts.
type Config struct {
	RingRadius float64
	NodeRadius float64
	NodeCount  int

	PacketFrom     int
	PacketTo       int
	PacketRadius   float64
	PacketDuration time.Duration

	Scale    int
	TPS      int
	Sound    bool
	ShowHelp bool
}

// Default returns the parameters the demo ships with.
func Default() Config {
	return Config{
		RingRadius:     DefaultRingRadius,
		NodeRadius:     DefaultNodeRadius,
		NodeCount:      DefaultNodeCount,
		PacketFrom:     DefaultPacketFrom,
		PacketTo:       DefaultPacketTo,
		PacketRadius:   DefaultPacketRadius,
		PacketDuration: DefaultPacketDuration,
		Scale:          DefaultScale,
		TPS:            DefaultTPS,
		Sound:          true,
		ShowHelp:       true,
	}
}

// CanvasSide is the edge length of the square drawing surface.
func (c Config) CanvasSide() float64 {
	return (c.RingRadius + c.NodeRadius) * 2
}

// TickDuration is the simulated time that passes per Update.
func (c Config) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TPS)
}

func (c Config) Validate() error {
	switch {
	case c.RingRadius <= 0:
		return fmt.Errorf("%w: ring radius must be positive, got %v", ErrInvalid, c.RingRadius)
	case c.NodeRadius <= 0:
		return fmt.Errorf("%w: node radius must be positive, got %v", ErrInvalid, c.NodeRadius)
	case c.NodeCount < 1 || c.NodeCount > MaxNodeCount:
		return fmt.Errorf("%w: node count must be in [1, %d], got %d", ErrInvalid, MaxNodeCount, c.NodeCount)
	case c.PacketFrom < 0 || c.PacketFrom >= c.NodeCount:
		return fmt.Errorf("%w: packet source %d outside [0, %d)", ErrInvalid, c.PacketFrom, c.NodeCount)
	case c.PacketTo < 0 || c.PacketTo >= c.NodeCount:
		return fmt.Errorf("%w: packet destination %d outside [0, %d)", ErrInvalid, c.PacketTo, c.NodeCount)
	case c.PacketFrom == c.PacketTo:
		return fmt.Errorf("%w: packet source and destination are both %d", ErrInvalid, c.PacketFrom)
	case c.PacketRadius < MinPacketRadius:
		return fmt.Errorf("%w: packet radius must be at least %d, got %v", ErrInvalid, MinPacketRadius, c.PacketRadius)
	case c.PacketDuration <= 0:
		return fmt.Errorf("%w: packet duration must be positive, got %s", ErrInvalid, c.PacketDuration)
	case c.Scale < 1 || c.Scale > MaxWindowScale:
		return fmt.Errorf("%w: scale must be in [1, %d], got %d", ErrInvalid, MaxWindowScale, c.Scale)
	case c.TPS < 1:
		return fmt.Errorf("%w: ticks per second must be positive, got %d", ErrInvalid, c.TPS)
	}
	return nil
}
