package systems

import (
	"math"

	"github.com/zeusync/wildcatch/internal/core/session"
	"github.com/zeusync/wildcatch/internal/core/systems/physics"
	"github.com/zeusync/wildcatch/internal/core/world"
)

// Player consumes the pending intents: walking, turning and jumping.
// Walking moves a fixed distance per Advance call; the jump arc is
// integrated with dt.
type Player struct{}

func NewPlayer() *Player { return &Player{} }

func (*Player) Name() string                    { return "player" }
func (*Player) Priority() Priority              { return PriorityInput }
func (*Player) RunsIn(phase session.Phase) bool { return unlessDefeated(phase) }
func (*Player) Reset()                          {}

func (*Player) Update(dt float64, w *world.World) error {
	in := w.Pending
	w.Pending = world.Intents{}

	cfg := w.Config.Player
	p := w.Player

	if in.Turn != 0 {
		p.Facing = math.Mod(p.Facing+in.Turn, 360)
		if p.Facing < 0 {
			p.Facing += 360
		}
	}
	if in.Forward != 0 {
		dx, dy := physics.Heading(p.Facing)
		p.Position.X += dx * cfg.Speed * in.Forward
		p.Position.Y += dy * cfg.Speed * in.Forward
	}
	if in.Strafe != 0 {
		dx, dy := physics.Heading(p.Facing + 90)
		p.Position.X += dx * cfg.Speed * in.Strafe
		p.Position.Y += dy * cfg.Speed * in.Strafe
	}

	if in.Jump && p.Grounded {
		p.VelocityZ = cfg.JumpImpulse
		p.Grounded = false
	}
	if !p.Grounded {
		// Velocity is applied per tick, not per second.
		p.VelocityZ -= cfg.Gravity * dt
		p.Position.Z += p.VelocityZ
		if p.Position.Z <= cfg.GroundHeight {
			p.Position.Z = cfg.GroundHeight
			p.VelocityZ = 0
			p.Grounded = true
		}
	}
	return nil
}
