package systems

import (
	"fmt"

	"github.com/zeusync/wildcatch/internal/core/models"
	"github.com/zeusync/wildcatch/internal/core/observability/log"
	"github.com/zeusync/wildcatch/internal/core/session"
	"github.com/zeusync/wildcatch/internal/core/systems/physics"
	"github.com/zeusync/wildcatch/internal/core/world"
)

// Opponent wanders on a timer and throws capture devices at the player
// when in range. It keeps acting after a victory and freezes on defeat.
type Opponent struct{}

func NewOpponent() *Opponent { return &Opponent{} }

func (*Opponent) Name() string                    { return "opponent" }
func (*Opponent) Priority() Priority              { return PriorityOpponent }
func (*Opponent) RunsIn(phase session.Phase) bool { return unlessDefeated(phase) }
func (*Opponent) Reset()                          {}

func (*Opponent) Update(dt float64, w *world.World) error {
	cfg := w.Config.Opponent
	if !cfg.Enabled {
		return nil
	}
	o := w.Opponent

	o.MoveTimer += dt
	if o.MoveTimer > cfg.TurnPeriod {
		o.Heading = w.Uniform(0, 360)
		o.MoveTimer = 0
	}
	dx, dy := physics.Heading(o.Heading)
	o.Position.X += dx * cfg.Speed * dt
	o.Position.Y += dy * cfg.Speed * dt
	o.Position = w.Bound(o.Position)

	target := w.Player.Position
	if target.X != o.Position.X || target.Y != o.Position.Y {
		o.Facing = physics.Bearing(o.Position, target)
	}

	o.Cooldown -= dt
	if o.Cooldown > 0 || w.Session.Opponent.Devices <= 0 {
		return nil
	}
	if o.Position.Dist(target) >= cfg.Range {
		return nil
	}

	origin := o.Position.Add(physics.V3(0, 0, cfg.ThrowHeight))
	id := Launch(w, models.KindOpponentCapture, origin, target)
	o.Cooldown = cfg.Cooldown
	w.Session.Opponent.Devices--

	w.Log.Debug("opponent threw",
		log.Uint64("projectile", uint64(id)),
		log.Int("devices_left", w.Session.Opponent.Devices),
	)
	w.Emit("opponent", world.EventOpponentThrow, world.GameEvent{
		Message: fmt.Sprintf("The opponent threw a capture device! (%d left)", w.Session.Opponent.Devices),
		Amount:  w.Session.Opponent.Devices,
	})
	return nil
}
