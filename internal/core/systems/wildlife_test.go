package systems_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/wildcatch/internal/core/systems"
	"github.com/zeusync/wildcatch/internal/core/systems/physics"
	"github.com/zeusync/wildcatch/internal/core/world/worldtest"
)

func TestWildlifeHopMovesCreatureAndZone(t *testing.T) {
	w, rnd, _ := worldtest.New(worldtest.Quiet())
	id := worldtest.AddCreature(w, worldtest.SpeciesIndex(w, "Pikachu"), physics.V3(100, 100, 20))

	// roll under 2%, then +5 on x and -5 on y.
	rnd.Push(0.01, 1, 0)
	require.NoError(t, systems.NewWildlife().Update(0.5, w))

	c, _ := w.Registry.Creature(id)
	assert.InDelta(t, 105, c.Position.X, 1e-9)
	assert.InDelta(t, 95, c.Position.Y, 1e-9)
	assert.Equal(t, 0.5, c.AnimTimer)

	z, _ := w.Registry.Zone(id)
	assert.Equal(t, c.Position, z.Position)
}

func TestWildlifeStillSpeciesOnlyAnimate(t *testing.T) {
	w, rnd, _ := worldtest.New(worldtest.Quiet())
	id := worldtest.AddCreature(w, worldtest.SpeciesIndex(w, "Bulbasaur"), physics.V3(10, 10, 20))
	rnd.Push(0, 0, 0)

	require.NoError(t, systems.NewWildlife().Update(0.25, w))

	c, _ := w.Registry.Creature(id)
	assert.Equal(t, physics.V3(10, 10, 20), c.Position)
	assert.Equal(t, 0.25, c.AnimTimer)
	assert.Len(t, rnd.Floats, 3, "no roll for species without a behavior")
}

func TestWildlifeMissedRollStaysPut(t *testing.T) {
	w, rnd, _ := worldtest.New(worldtest.Quiet())
	id := worldtest.AddCreature(w, worldtest.SpeciesIndex(w, "Gengar"), physics.V3(0, 0, 20))
	rnd.Push(0.5)

	require.NoError(t, systems.NewWildlife().Update(0.1, w))

	c, _ := w.Registry.Creature(id)
	assert.Equal(t, physics.V3(0, 0, 20), c.Position)
}

func TestWildlifeClampsToPlayArea(t *testing.T) {
	w, rnd, _ := worldtest.New(worldtest.Quiet())
	bound := w.Config.World.Bound()
	id := worldtest.AddCreature(w, worldtest.SpeciesIndex(w, "Eevee"), physics.V3(bound-1, -bound+1, 20))
	rnd.Push(0, 1, 0)

	require.NoError(t, systems.NewWildlife().Update(0.1, w))

	c, _ := w.Registry.Creature(id)
	assert.Equal(t, bound, c.Position.X)
	assert.Equal(t, -bound, c.Position.Y)
}
