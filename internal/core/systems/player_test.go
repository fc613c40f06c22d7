package systems_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/wildcatch/internal/core/systems"
	"github.com/zeusync/wildcatch/internal/core/world"
	"github.com/zeusync/wildcatch/internal/core/world/worldtest"
)

func TestPlayerWalksAlongFacing(t *testing.T) {
	w, _, _ := worldtest.New(worldtest.Quiet())
	sys := systems.NewPlayer()

	w.Pending = world.Intents{Forward: 1}
	require.NoError(t, sys.Update(0.016, w))
	assert.InDelta(t, 5, w.Player.Position.X, 1e-9)
	assert.InDelta(t, 0, w.Player.Position.Y, 1e-9)

	w.Pending = world.Intents{Turn: 90}
	require.NoError(t, sys.Update(0.016, w))
	assert.Equal(t, 90.0, w.Player.Facing)

	w.Pending = world.Intents{Forward: -1}
	require.NoError(t, sys.Update(0.016, w))
	assert.InDelta(t, 5, w.Player.Position.X, 1e-9)
	assert.InDelta(t, -5, w.Player.Position.Y, 1e-9)

	w.Pending = world.Intents{Strafe: 1}
	require.NoError(t, sys.Update(0.016, w))
	assert.InDelta(t, 0, w.Player.Position.X, 1e-9)
	assert.InDelta(t, -5, w.Player.Position.Y, 1e-9)
}

func TestPlayerFacingWraps(t *testing.T) {
	w, _, _ := worldtest.New(worldtest.Quiet())
	sys := systems.NewPlayer()

	w.Pending = world.Intents{Turn: -30}
	require.NoError(t, sys.Update(0.016, w))
	assert.Equal(t, 330.0, w.Player.Facing)

	w.Pending = world.Intents{Turn: 45}
	require.NoError(t, sys.Update(0.016, w))
	assert.Equal(t, 15.0, w.Player.Facing)
}

func TestPlayerConsumesIntentsOnce(t *testing.T) {
	w, _, _ := worldtest.New(worldtest.Quiet())
	sys := systems.NewPlayer()

	w.Pending = world.Intents{Forward: 1}
	require.NoError(t, sys.Update(0.016, w))
	require.NoError(t, sys.Update(0.016, w))

	assert.InDelta(t, 5, w.Player.Position.X, 1e-9)
	assert.True(t, w.Pending.IsZero())
}

func TestPlayerJumpLandsOnGround(t *testing.T) {
	w, _, _ := worldtest.New(worldtest.Quiet())
	sys := systems.NewPlayer()
	ground := w.Config.Player.GroundHeight

	w.Pending = world.Intents{Jump: true}
	require.NoError(t, sys.Update(0.1, w))
	assert.False(t, w.Player.Grounded)
	assert.Greater(t, w.Player.Position.Z, ground)

	// A second jump in the air is ignored.
	peak := w.Player.VelocityZ
	w.Pending = world.Intents{Jump: true}
	require.NoError(t, sys.Update(0.1, w))
	assert.Less(t, w.Player.VelocityZ, peak)

	for i := 0; i < 100 && !w.Player.Grounded; i++ {
		require.NoError(t, sys.Update(0.1, w))
	}
	assert.True(t, w.Player.Grounded)
	assert.Equal(t, ground, w.Player.Position.Z)
	assert.Zero(t, w.Player.VelocityZ)
}
