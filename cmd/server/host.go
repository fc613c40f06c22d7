package main

import (
	"context"
	"time"

	"github.com/zeusync/wildcatch/internal/core/observability/log"
	"github.com/zeusync/wildcatch/internal/core/sim"
	"github.com/zeusync/wildcatch/internal/injector"
	"github.com/zeusync/wildcatch/internal/pilot"
)

// host owns the simulation goroutine: it ticks the world in wall-clock time
// and hands snapshots to the viewer at the viewer rate.
type host struct {
	game     *injector.Game
	interval time.Duration
	pilot    *pilot.Pilot

	publishEvery float64
	sincePublish float64
}

func newHost(game *injector.Game, tickRate float64) *host {
	if tickRate <= 0 {
		tickRate = 60
	}
	h := &host{
		game:     game,
		interval: time.Duration(float64(time.Second) / tickRate),
	}
	if rate := game.Config.Viewer.Rate; rate > 0 {
		h.publishEvery = 1 / rate
	}
	return h
}

func (h *host) run(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			snap := h.game.Sim.Snapshot()
			h.game.Logger.Info("simulation stopped",
				log.Uint64("tick", snap.Tick),
				log.Int("captures", snap.Captures),
				log.Int("experience", snap.Experience),
				log.String("phase", snap.Phase.String()),
			)
			return nil
		case now := <-ticker.C:
			h.tick(now.Sub(last).Seconds())
			last = now
		}
	}
}

func (h *host) tick(dt float64) sim.Snapshot {
	var in sim.Intents
	if h.pilot != nil {
		var err error
		if in, err = h.pilot.Act(dt); err != nil {
			h.game.Logger.Warn("pilot step failed", log.Error(err))
		}
	}
	snap := h.game.Sim.Advance(dt, in)

	if !h.game.Config.Viewer.Enabled {
		return snap
	}
	h.sincePublish += dt
	if h.sincePublish < h.publishEvery {
		return snap
	}
	h.sincePublish = 0
	if err := h.game.Viewer.Publish(snap); err != nil {
		h.game.Logger.Warn("snapshot publish failed", log.Error(err))
	}
	return snap
}
