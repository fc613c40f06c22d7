package models

import "github.com/zeusync/wildcatch/internal/core/systems/physics"

// CreatureID is a stable key: IDs are never reused within a registry and
// removing one creature never changes another creature's ID.
type CreatureID uint64

type ProjectileID uint64

// Creature is a live wild creature. Caught and fainted creatures leave the
// registry.
type Creature struct {
	ID        CreatureID
	Position  physics.Vec3
	Species   int
	Health    int
	MaxHealth int
	Facing    float64 // degrees
	AnimTimer float64
}

// HealthLost is the fraction of max health already lost, in [0, 1].
func (c *Creature) HealthLost() float64 {
	if c.MaxHealth <= 0 {
		return 0
	}
	lost := float64(c.MaxHealth-c.Health) / float64(c.MaxHealth)
	return physics.Clamp(lost, 0, 1)
}

// Zone is the bush hiding a creature until the player's detection circle
// overlaps it.
type Zone struct {
	Creature CreatureID
	Position physics.Vec3
	Radius   float64
}

type ProjectileKind uint8

const (
	// KindCapture is a capture device thrown by the player.
	KindCapture ProjectileKind = iota
	// KindDamage is a rock thrown by the player.
	KindDamage
	// KindOpponentCapture is a capture device thrown by the opponent at the player.
	KindOpponentCapture
)

func (k ProjectileKind) String() string {
	switch k {
	case KindCapture:
		return "capture"
	case KindDamage:
		return "damage"
	case KindOpponentCapture:
		return "opponent_capture"
	default:
		return "unknown"
	}
}

type Projectile struct {
	ID       ProjectileID
	Kind     ProjectileKind
	Position physics.Vec3
	Velocity physics.Vec3
	Active   bool
	// Landed is set on the tick the projectile reaches the ground. It still
	// collides on that tick.
	Landed bool
	// Target is where the thrower aimed. Only used for diagnostics.
	Target physics.Vec3
}

// Player is the spatial state of the player character. Health and inventory
// live in the session.
type Player struct {
	Position  physics.Vec3
	Facing    float64 // degrees
	VelocityZ float64
	Grounded  bool
}

// Opponent is the spatial and timer state of the rival trainer.
type Opponent struct {
	Position  physics.Vec3
	Heading   float64 // movement direction, degrees
	Facing    float64 // look direction, degrees
	MoveTimer float64
	Cooldown  float64
}
