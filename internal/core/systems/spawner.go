package systems

import (
	"fmt"
	"math"

	"github.com/zeusync/wildcatch/internal/core/models"
	"github.com/zeusync/wildcatch/internal/core/observability/log"
	"github.com/zeusync/wildcatch/internal/core/session"
	"github.com/zeusync/wildcatch/internal/core/systems/physics"
	"github.com/zeusync/wildcatch/internal/core/world"
)

// Spawner places a new creature, hidden in a zone, every spawn interval
// while the live population is under the cap.
type Spawner struct {
	timer float64
}

func NewSpawner() *Spawner { return &Spawner{} }

func (*Spawner) Name() string                    { return "spawner" }
func (*Spawner) Priority() Priority              { return PrioritySpawn }
func (*Spawner) RunsIn(phase session.Phase) bool { return unlessDefeated(phase) }
func (s *Spawner) Reset()                        { s.timer = 0 }

func (s *Spawner) Update(dt float64, w *world.World) error {
	s.timer += dt
	if s.timer <= w.Config.Spawn.Interval {
		return nil
	}
	s.timer = 0
	if w.Registry.LiveCount() >= w.Config.Spawn.MaxCreatures {
		return nil
	}
	Spawn(w)
	return nil
}

// Spawn places one creature around the player, at least the minimum spacing
// away from every live creature when a free spot is found within the
// attempt budget.
func Spawn(w *world.World) models.CreatureID {
	cfg := w.Config.Spawn

	pos, placed := w.Player.Position, false
	for attempt := 0; attempt < max(1, cfg.MaxAttempts); attempt++ {
		pos = spawnCandidate(w)
		if spaced(w, pos) {
			placed = true
			break
		}
	}
	if !placed {
		w.Log.Warn("no spaced spawn point found, spawning at last candidate",
			log.Int("attempts", cfg.MaxAttempts),
			log.Int("live", w.Registry.LiveCount()),
		)
	}

	species := w.Rand.IntN(len(w.Species))
	sp := w.Species[species]
	id := w.Registry.AddCreature(models.Creature{
		Position:  pos,
		Species:   species,
		Health:    sp.MaxHealth,
		MaxHealth: sp.MaxHealth,
		Facing:    w.Uniform(0, 360),
	}, cfg.ZoneRadius)

	w.Log.Debug("creature spawned",
		log.Uint64("id", uint64(id)),
		log.String("species", sp.Name),
		log.Float64("x", pos.X),
		log.Float64("y", pos.Y),
	)
	w.Emit("spawner", world.EventCreatureSpawned, world.GameEvent{
		Message:  fmt.Sprintf("A wild %s is hiding nearby!", sp.Name),
		Creature: id,
		Species:  sp.Name,
	})
	return id
}

func spawnCandidate(w *world.World) physics.Vec3 {
	cfg := w.Config.Spawn
	angle := w.Uniform(0, 2*math.Pi)
	dist := w.Uniform(cfg.MinRadius, cfg.MaxRadius)
	return physics.V3(
		w.Player.Position.X+dist*math.Cos(angle),
		w.Player.Position.Y+dist*math.Sin(angle),
		cfg.Height,
	)
}

func spaced(w *world.World, pos physics.Vec3) bool {
	for _, c := range w.Registry.LiveCreatures() {
		if c.Position.Dist2D(pos) < w.Config.Spawn.MinSpacing {
			return false
		}
	}
	return true
}
