package systems

import (
	"github.com/zeusync/wildcatch/internal/core/models"
	"github.com/zeusync/wildcatch/internal/core/session"
	"github.com/zeusync/wildcatch/internal/core/world"
)

type fidget struct {
	// chance is rolled once per tick.
	chance float64
	jitter float64
}

var fidgets = map[models.Behavior]fidget{
	models.BehaviorSleepy:   {chance: 0.01, jitter: 2},
	models.BehaviorTeleport: {chance: 0.005, jitter: 10},
	models.BehaviorHop:      {chance: 0.02, jitter: 5},
}

// Wildlife animates live creatures and lets some species shuffle around
// inside the play area. Zones follow their creature.
type Wildlife struct{}

func NewWildlife() *Wildlife { return &Wildlife{} }

func (*Wildlife) Name() string                    { return "wildlife" }
func (*Wildlife) Priority() Priority              { return PriorityWildlife }
func (*Wildlife) RunsIn(phase session.Phase) bool { return unlessDefeated(phase) }
func (*Wildlife) Reset()                          {}

func (*Wildlife) Update(dt float64, w *world.World) error {
	for _, c := range w.Registry.LiveCreatures() {
		c.AnimTimer += dt

		pos := c.Position
		if f, ok := fidgets[w.SpeciesOf(c).Behavior]; ok && w.Rand.Float64() < f.chance {
			pos.X += w.Uniform(-f.jitter, f.jitter)
			pos.Y += w.Uniform(-f.jitter, f.jitter)
		}
		if pos = w.Bound(pos); pos != c.Position {
			w.Registry.MoveCreature(c.ID, pos)
		}
	}
	return nil
}
