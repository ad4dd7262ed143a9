package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/ring-visualization/internal/config"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	c := config.Default()
	require.NoError(t, c.Validate())
	require.Equal(t, 220.0, c.CanvasSide())
	require.Equal(t, 2000*time.Millisecond, c.PacketDuration)
	require.Equal(t, time.Second/60, c.TickDuration())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero ring radius", func(c *config.Config) { c.RingRadius = 0 }},
		{"negative node radius", func(c *config.Config) { c.NodeRadius = -1 }},
		{"no nodes", func(c *config.Config) { c.NodeCount = 0 }},
		{"too many nodes", func(c *config.Config) { c.NodeCount = config.MaxNodeCount + 1 }},
		{"source out of range", func(c *config.Config) { c.PacketFrom = 5 }},
		{"destination out of range", func(c *config.Config) { c.PacketTo = -1 }},
		{"self loop", func(c *config.Config) { c.PacketTo = c.PacketFrom }},
		{"tiny packet", func(c *config.Config) { c.PacketRadius = 0.5 }},
		{"zero duration", func(c *config.Config) { c.PacketDuration = 0 }},
		{"zero scale", func(c *config.Config) { c.Scale = 0 }},
		{"zero tps", func(c *config.Config) { c.TPS = 0 }},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := config.Default()
			tt.mutate(&c)
			require.ErrorIs(t, c.Validate(), config.ErrInvalid)
		})
	}
}

func TestValidateSmallRing(t *testing.T) {
	t.Parallel()

	c := config.Default()
	c.NodeCount = 2
	c.PacketTo = 1
	require.NoError(t, c.Validate(), "two nodes with a 0->1 packet should be valid")
}
