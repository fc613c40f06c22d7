package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/wildcatch/internal/core/config"
	"github.com/zeusync/wildcatch/internal/injector"
	"github.com/zeusync/wildcatch/internal/pilot"
)

func testGame(t *testing.T) *injector.Game {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = "host"
	cfg.LogLevel = "silent"
	game, err := injector.InitializeGame(cfg)
	require.NoError(t, err)
	return game
}

func TestHostPublishesAtViewerRate(t *testing.T) {
	game := testGame(t)
	h := newHost(game, 60)

	for i := 0; i < 60; i++ {
		h.tick(1.0 / 60)
	}
	// 20 per second, or 15 when float rounding stretches the interval to
	// four ticks.
	published := game.Viewer.GetMetrics().Published
	assert.GreaterOrEqual(t, published, uint64(15))
	assert.LessOrEqual(t, published, uint64(20))
}

func TestHostTicksWithPilot(t *testing.T) {
	game := testGame(t)
	h := newHost(game, 60)
	p, err := pilot.New(game.Sim)
	require.NoError(t, err)
	h.pilot = p

	var last uint64
	for i := 0; i < 600; i++ {
		snap := h.tick(1.0 / 60)
		require.Greater(t, snap.Tick, last)
		last = snap.Tick
	}
	assert.Positive(t, game.Sim.Snapshot().Elapsed)
}

func TestHostStopsOnCancel(t *testing.T) {
	game := testGame(t)
	h := newHost(game, 200)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, h.run(ctx))
	assert.Positive(t, game.Sim.Snapshot().Tick)
}
