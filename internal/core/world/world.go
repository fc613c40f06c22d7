// Package world holds the single owned simulation context every system reads
// and mutates. Nothing in the core lives in package-level state.
package world

import (
	"github.com/zeusync/wildcatch/internal/core/config"
	"github.com/zeusync/wildcatch/internal/core/events/bus"
	"github.com/zeusync/wildcatch/internal/core/models"
	"github.com/zeusync/wildcatch/internal/core/observability/log"
	"github.com/zeusync/wildcatch/internal/core/registry"
	"github.com/zeusync/wildcatch/internal/core/session"
	"github.com/zeusync/wildcatch/internal/core/systems/physics"
)

// Intents are the player's inputs for one Advance call. Movement is applied
// once per call, not scaled by dt.
type Intents struct {
	// Forward walks along the facing direction, in multiples of the player speed.
	Forward float64
	// Strafe walks sideways; positive is left.
	Strafe float64
	// Turn rotates the facing, in degrees.
	Turn float64
	Jump bool
	// Reset restarts a finished session, or returns the player to the start
	// position while the session is active.
	Reset bool
}

func (in Intents) IsZero() bool { return in == Intents{} }

// Merge adds other on top of in. Used when intents arrive faster than ticks.
func (in Intents) Merge(other Intents) Intents {
	return Intents{
		Forward: in.Forward + other.Forward,
		Strafe:  in.Strafe + other.Strafe,
		Turn:    in.Turn + other.Turn,
		Jump:    in.Jump || other.Jump,
		Reset:   in.Reset || other.Reset,
	}
}

type World struct {
	Config   config.Config
	Registry *registry.Registry
	Session  *session.State
	Player   *models.Player
	Opponent *models.Opponent
	Species  []models.Species
	Devices  []models.Device

	// Pending holds intents not yet consumed by the player system.
	Pending Intents

	Rand Rand
	Bus  bus.EventBus
	Log  log.Log
}

func New(cfg config.Config, rnd Rand, eventBus bus.EventBus, logger log.Log) *World {
	if rnd == nil {
		rnd = NewRand(cfg.Seed)
	}
	if eventBus == nil {
		eventBus = bus.New()
	}
	if logger == nil {
		logger = log.NewNop()
	}
	w := &World{
		Config:   cfg,
		Registry: registry.New(),
		Session:  session.New(cfg),
		Player:   &models.Player{},
		Opponent: &models.Opponent{},
		Species:  cfg.Species,
		Devices:  cfg.Devices,
		Rand:     rnd,
		Bus:      eventBus,
		Log:      logger,
	}
	w.ResetActors()
	return w
}

// ResetActors puts the player and opponent back at their start positions.
func (w *World) ResetActors() {
	w.ResetPlayer()
	*w.Opponent = models.Opponent{Position: w.Config.Opponent.Start}
}

// ResetPlayer returns the player to the start position, standing.
func (w *World) ResetPlayer() {
	*w.Player = models.Player{Position: w.Config.Player.Start, Grounded: true}
}

// Reset clears every entity and starts a new session.
func (w *World) Reset() {
	w.Registry.Clear()
	w.Session.Reset()
	w.ResetActors()
	w.Pending = Intents{}
}

// SpeciesOf returns the descriptor for a creature. Unknown indices fall back
// to the first species.
func (w *World) SpeciesOf(c *models.Creature) models.Species {
	if c.Species >= 0 && c.Species < len(w.Species) {
		return w.Species[c.Species]
	}
	return w.Species[0]
}

func (w *World) EquippedDevice() models.Device {
	i := w.Session.EquippedDevice
	if i >= 0 && i < len(w.Devices) {
		return w.Devices[i]
	}
	return w.Devices[0]
}

// Uniform returns a float in [lo, hi).
func (w *World) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*w.Rand.Float64()
}

// IntRange returns an int in [lo, hi], both inclusive.
func (w *World) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + w.Rand.IntN(hi-lo+1)
}

// Bound clamps a position's XY into the play area.
func (w *World) Bound(p physics.Vec3) physics.Vec3 {
	b := w.Config.World.Bound()
	p.X = physics.Clamp(p.X, -b, b)
	p.Y = physics.Clamp(p.Y, -b, b)
	return p
}

// Emit publishes a game event from source. Handler errors are logged, never
// propagated into the tick.
func (w *World) Emit(source, eventType string, ev GameEvent) {
	ev.Tick = w.Session.Tick
	if err := w.Bus.Publish(bus.NewEvent(eventType, source, ev)); err != nil {
		w.Log.Warn("event handler failed",
			log.String("event", eventType),
			log.String("source", source),
			log.Error(err),
		)
	}
}

// Announce sets the on-screen message and publishes the matching event.
func (w *World) Announce(source, eventType string, ttl float64, ev GameEvent) {
	w.Session.Notify(ev.Message, ttl)
	w.Emit(source, eventType, ev)
}
