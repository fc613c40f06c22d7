// Package worldtest builds worlds with scripted randomness for tests.
package worldtest

import (
	"github.com/zeusync/wildcatch/internal/core/config"
	"github.com/zeusync/wildcatch/internal/core/events/bus"
	"github.com/zeusync/wildcatch/internal/core/models"
	"github.com/zeusync/wildcatch/internal/core/observability/log"
	"github.com/zeusync/wildcatch/internal/core/systems/physics"
	"github.com/zeusync/wildcatch/internal/core/world"
)

// Rand replays queued values, then falls back to FloatDefault and 0.
type Rand struct {
	Floats       []float64
	Ints         []int
	FloatDefault float64
}

func (r *Rand) Float64() float64 {
	if len(r.Floats) == 0 {
		return r.FloatDefault
	}
	v := r.Floats[0]
	r.Floats = r.Floats[1:]
	return v
}

func (r *Rand) IntN(n int) int {
	if len(r.Ints) == 0 || n <= 0 {
		return 0
	}
	v := r.Ints[0]
	r.Ints = r.Ints[1:]
	return ((v % n) + n) % n
}

// Push queues more floats.
func (r *Rand) Push(floats ...float64) { r.Floats = append(r.Floats, floats...) }

// PushInts queues more ints.
func (r *Rand) PushInts(ints ...int) { r.Ints = append(r.Ints, ints...) }

// Recorder collects every event published on a bus.
type Recorder struct {
	Events []bus.Event
}

func (r *Recorder) Types() []string {
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Type()
	}
	return out
}

func (r *Recorder) Has(eventType string) bool { return r.Count(eventType) > 0 }

func (r *Recorder) Count(eventType string) int {
	n := 0
	for _, e := range r.Events {
		if e.Type() == eventType {
			n++
		}
	}
	return n
}

// New returns a world over cfg with a scripted Rand and an event recorder.
func New(cfg config.Config) (*world.World, *Rand, *Recorder) {
	rnd := &Rand{FloatDefault: 0.5}
	rec := &Recorder{}
	b := bus.New()
	_, _ = b.Subscribe(bus.AnyEvent, func(e bus.Event) error {
		rec.Events = append(rec.Events, e)
		return nil
	})
	return world.New(cfg, rnd, b, log.NewNop()), rnd, rec
}

// Quiet returns the default config with spawning and the opponent switched
// off so tests control every entity.
func Quiet() config.Config {
	cfg := config.Default()
	cfg.Seed = "test"
	cfg.Spawn.MaxCreatures = 0
	cfg.Opponent.Enabled = false
	return cfg
}

// AddCreature registers a full-health creature of species at pos.
func AddCreature(w *world.World, species int, pos physics.Vec3) models.CreatureID {
	sp := w.Species[species]
	return w.Registry.AddCreature(models.Creature{
		Position:  pos,
		Species:   species,
		Health:    sp.MaxHealth,
		MaxHealth: sp.MaxHealth,
	}, w.Config.Spawn.ZoneRadius)
}

// SpeciesIndex finds a species by name, or -1.
func SpeciesIndex(w *world.World, name string) int {
	for i, s := range w.Species {
		if s.Name == name {
			return i
		}
	}
	return -1
}
