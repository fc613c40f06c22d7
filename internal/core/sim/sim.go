// Package sim is the entry point of the game core: a Simulation owns one
// world and advances it a tick at a time.
package sim

import (
	"fmt"
	"math"

	"github.com/zeusync/wildcatch/internal/core/config"
	"github.com/zeusync/wildcatch/internal/core/events/bus"
	"github.com/zeusync/wildcatch/internal/core/models"
	"github.com/zeusync/wildcatch/internal/core/observability/log"
	"github.com/zeusync/wildcatch/internal/core/session"
	"github.com/zeusync/wildcatch/internal/core/systems"
	"github.com/zeusync/wildcatch/internal/core/systems/physics"
	"github.com/zeusync/wildcatch/internal/core/world"
)

const source = "sim"

type Intents = world.Intents

// Simulation advances the world and exposes the player's actions.
//
// It has a single writer: Advance and the action methods must be called from
// one goroutine. Snapshots it returns are safe to share.
type Simulation struct {
	world   *world.World
	systems *systems.Manager
	log     log.Log

	// accumulator holds unsimulated time in fixed-step mode.
	accumulator float64
	last        Snapshot
}

// New validates cfg and builds a simulation seeded from cfg.Seed.
func New(cfg config.Config, logger log.Log, eventBus bus.EventBus) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNop()
	}
	w := world.New(cfg, nil, eventBus, logger.Named("world"))
	return FromWorld(w)
}

// FromWorld wraps an existing world with the default system pipeline.
func FromWorld(w *world.World) (*Simulation, error) {
	manager := systems.NewManager(w.Log.Named("systems"))
	if err := manager.Register(systems.Default()...); err != nil {
		return nil, fmt.Errorf("register systems: %w", err)
	}
	s := &Simulation{
		world:   w,
		systems: manager,
		log:     w.Log,
	}
	s.last = Capture(w)
	s.log.Info("simulation ready",
		log.String("session", w.Session.ID),
		log.Int("species", len(w.Species)),
		log.Bool("opponent", w.Config.Opponent.Enabled),
	)
	return s, nil
}

// Advance runs the systems for dt seconds of game time with the given intents
// and returns the resulting snapshot.
//
// Negative or non-finite dt counts as zero. With max_step set, dt is clamped
// to it; with fixed_step set, time accumulates and the world advances in
// fixed steps, possibly zero or several per call.
func (s *Simulation) Advance(dt float64, in Intents) Snapshot {
	cfg := s.world.Config
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	if cfg.MaxStep > 0 {
		dt = min(dt, cfg.MaxStep)
	}

	if in.Reset {
		in.Reset = false
		s.reset()
	}
	s.world.Pending = s.world.Pending.Merge(in)

	if cfg.FixedStep > 0 {
		s.accumulator += dt
		for s.accumulator >= cfg.FixedStep {
			s.step(cfg.FixedStep)
			s.accumulator -= cfg.FixedStep
		}
	} else {
		s.step(dt)
	}

	s.last = Capture(s.world)
	return s.last
}

func (s *Simulation) step(dt float64) {
	s.world.Session.Tick++
	// Failures are logged and counted by the manager; a tick never aborts.
	_ = s.systems.Update(dt, s.world)
}

// reset handles the reset intent: a finished session restarts, an active
// one only returns the player to the start.
func (s *Simulation) reset() {
	if s.world.Session.Over() {
		s.Restart()
		return
	}
	s.world.ResetPlayer()
}

// Snapshot returns the snapshot produced by the most recent Advance.
func (s *Simulation) Snapshot() Snapshot { return s.last }

// Restart clears every entity and starts a new session at full health.
func (s *Simulation) Restart() {
	previous := s.world.Session.ID
	s.world.Reset()
	s.systems.Reset()
	s.accumulator = 0

	s.log.Info("session restarted",
		log.String("previous", previous),
		log.String("session", s.world.Session.ID),
	)
	s.world.Emit(source, world.EventRestart, world.GameEvent{Message: "New game started"})
	s.last = Capture(s.world)
}

// ThrowCaptureDevice throws the equipped capture device from origin towards
// target and spends one from the inventory.
func (s *Simulation) ThrowCaptureDevice(origin, target physics.Vec3) (models.ProjectileID, error) {
	if s.world.Session.Phase == session.PhaseDefeat {
		return 0, s.reject("throw_capture", ErrSessionOver)
	}
	if s.world.Session.Player.Devices <= 0 {
		return 0, s.reject("throw_capture", ErrNoCaptureDevices)
	}
	s.world.Session.Player.Devices--
	return systems.Launch(s.world, models.KindCapture, origin, target), nil
}

// ThrowDamageObject throws a rock. Rocks are unlimited.
func (s *Simulation) ThrowDamageObject(origin, target physics.Vec3) (models.ProjectileID, error) {
	if s.world.Session.Phase == session.PhaseDefeat {
		return 0, s.reject("throw_damage", ErrSessionOver)
	}
	return systems.Launch(s.world, models.KindDamage, origin, target), nil
}

// SelectDevice equips the device at index. Currency gates the choice but is
// not spent.
func (s *Simulation) SelectDevice(index int) error {
	if index < 0 || index >= len(s.world.Devices) {
		return s.reject("select_device", fmt.Errorf("%w: %d", ErrUnknownDevice, index))
	}
	device := s.world.Devices[index]
	if device.Cost > s.world.Session.Currency {
		return s.reject("select_device", fmt.Errorf("%w: %s costs %d", ErrDeviceUnaffordable, device.Name, device.Cost))
	}
	s.world.Session.EquippedDevice = index
	s.world.Announce(source, world.EventDeviceSelected, s.world.Config.Messages.Hit, world.GameEvent{
		Message: fmt.Sprintf("Equipped %s", device.Name),
		Amount:  index,
	})
	return nil
}

// UseBonusDevice spends a bonus device to defeat the opponent outright.
func (s *Simulation) UseBonusDevice() error {
	w := s.world
	switch {
	case w.Session.Phase == session.PhaseDefeat:
		return s.reject("use_bonus", ErrSessionOver)
	case !w.Config.Opponent.Enabled:
		return s.reject("use_bonus", ErrNoOpponent)
	case w.Session.BonusDevices <= 0:
		return s.reject("use_bonus", ErrNoBonusDevices)
	}
	w.Session.BonusDevices--
	w.Session.Opponent.Health = 0
	systems.DefeatOpponent(w, source, "BONUS DEVICE! The opponent was defeated instantly!", w.Config.Messages.Special)
	return nil
}

// NearestCreature returns the closest live creature on the ground plane
// within maxDist, revealed or not.
func (s *Simulation) NearestCreature(maxDist float64) (CreatureView, bool) {
	var (
		best  *models.Creature
		bestD = maxDist
	)
	for _, c := range s.world.Registry.LiveCreatures() {
		if d := c.Position.Dist2D(s.world.Player.Position); d < bestD {
			best, bestD = c, d
		}
	}
	if best == nil {
		return CreatureView{}, false
	}
	return creatureView(s.world, best), true
}

// AimTarget picks the throw target: the nearest creature within the aim
// assist range, or a point straight ahead otherwise.
func (s *Simulation) AimTarget() physics.Vec3 {
	if c, ok := s.NearestCreature(s.world.Config.Player.AimAssistRange); ok {
		return c.Position
	}
	p := s.world.Player
	dx, dy := physics.Heading(p.Facing)
	reach := s.world.Config.Player.AimAssistRange
	return physics.V3(p.Position.X+dx*reach, p.Position.Y+dy*reach, s.world.Config.Spawn.Height)
}

// ThrowOrigin is where a throw leaves the player: the eyes in first person,
// the right hand in third person.
func (s *Simulation) ThrowOrigin(firstPerson bool) physics.Vec3 {
	p := s.world.Player
	if firstPerson {
		return p.Position.Add(physics.V3(0, 0, 20))
	}
	fx, fy := physics.Heading(p.Facing)
	rx, ry := physics.Heading(p.Facing - 90)
	return p.Position.Add(physics.V3(fx*10+rx*25, fy*10+ry*25, 20))
}

func (s *Simulation) Config() config.Config { return s.world.Config }

func (s *Simulation) Events() bus.EventBus { return s.world.Bus }

func (s *Simulation) SystemMetrics(name string) (systems.Metrics, bool) {
	return s.systems.SystemMetrics(name)
}

func (s *Simulation) reject(action string, err error) error {
	s.log.Debug("intent rejected", log.String("action", action), log.Error(err))
	s.world.Emit(source, world.EventIntentRejected, world.GameEvent{Message: err.Error()})
	return err
}
