package systems

import (
	"github.com/zeusync/wildcatch/internal/core/models"
	"github.com/zeusync/wildcatch/internal/core/session"
	"github.com/zeusync/wildcatch/internal/core/systems/physics"
	"github.com/zeusync/wildcatch/internal/core/world"
)

// Ballistics moves projectiles in straight lines, without gravity, and
// grounds them at the ground height.
type Ballistics struct{}

func NewBallistics() *Ballistics { return &Ballistics{} }

func (*Ballistics) Name() string                    { return "ballistics" }
func (*Ballistics) Priority() Priority              { return PriorityBallistics }
func (*Ballistics) RunsIn(phase session.Phase) bool { return unlessDefeated(phase) }
func (*Ballistics) Reset()                          {}

func (*Ballistics) Update(dt float64, w *world.World) error {
	ground := w.Config.Projectile.GroundHeight
	for _, p := range w.Registry.Projectiles() {
		if !p.Active {
			continue
		}
		p.Position = p.Position.Add(p.Velocity.Scale(dt))
		if p.Position.Z <= ground {
			p.Position.Z = ground
			p.Active = false
			p.Landed = true
		}
	}
	return nil
}

// LaunchVelocity aims at target from origin with the given speed. Equal
// points give a zero velocity.
func LaunchVelocity(origin, target physics.Vec3, speed float64) physics.Vec3 {
	dir, dist := target.Sub(origin).Normalize()
	if dist == 0 {
		return physics.Vec3{}
	}
	return dir.Scale(speed)
}

// Launch registers a projectile of kind flying from origin towards target.
// Inventory checks belong to the caller.
func Launch(w *world.World, kind models.ProjectileKind, origin, target physics.Vec3) models.ProjectileID {
	speed := w.Config.Projectile.PlayerSpeed
	if kind == models.KindOpponentCapture {
		speed = w.Config.Projectile.OpponentSpeed
	}
	return w.Registry.AddProjectile(kind, origin, LaunchVelocity(origin, target, speed), target)
}
