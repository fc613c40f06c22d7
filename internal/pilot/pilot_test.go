package pilot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/wildcatch/internal/core/models"
	"github.com/zeusync/wildcatch/internal/core/session"
	"github.com/zeusync/wildcatch/internal/core/sim"
	"github.com/zeusync/wildcatch/internal/core/systems/physics"
	"github.com/zeusync/wildcatch/internal/core/world"
	"github.com/zeusync/wildcatch/internal/core/world/worldtest"
)

func setup(t *testing.T) (*sim.Simulation, *world.World, *Pilot) {
	t.Helper()
	w, _, _ := worldtest.New(worldtest.Quiet())
	s, err := sim.FromWorld(w)
	require.NoError(t, err)
	p, err := New(s)
	require.NoError(t, err)
	return s, w, p
}

func act(t *testing.T, p *Pilot, dt float64) sim.Intents {
	t.Helper()
	in, err := p.Act(dt)
	require.NoError(t, err)
	return in
}

func TestWeakensThenCatches(t *testing.T) {
	s, w, p := setup(t)
	id := worldtest.AddCreature(w, worldtest.SpeciesIndex(w, "Snorlax"), physics.V3(0, 60, 20))

	in := act(t, p, 0.016)
	assert.Positive(t, in.Turn, "turns left towards the creature")
	require.Len(t, w.Registry.Projectiles(models.KindDamage), 1)

	c, _ := w.Registry.Creature(id)
	c.Health = 10
	fresh, err := New(s)
	require.NoError(t, err)
	act(t, fresh, 0.016)
	assert.Len(t, w.Registry.Projectiles(models.KindCapture), 1)
}

func TestWeakCreatureWithoutDevicesGetsRocks(t *testing.T) {
	s, w, p := setup(t)
	id := worldtest.AddCreature(w, 0, physics.V3(60, 0, 20))
	c, _ := w.Registry.Creature(id)
	c.Health = 5
	w.Session.Player.Devices = 0
	s.Advance(0, sim.Intents{})

	act(t, p, 0.016)
	assert.Len(t, w.Registry.Projectiles(models.KindDamage), 1)
	assert.Empty(t, w.Registry.Projectiles(models.KindCapture))
}

func TestRespectsThrowInterval(t *testing.T) {
	_, w, p := setup(t)
	worldtest.AddCreature(w, 0, physics.V3(60, 0, 20))

	act(t, p, 0.016)
	act(t, p, 0.016)
	assert.Len(t, w.Registry.Projectiles(), 1)

	act(t, p, 0.6)
	assert.Len(t, w.Registry.Projectiles(), 2)
}

func TestWalksToNearestBush(t *testing.T) {
	s, w, p := setup(t)
	worldtest.AddCreature(w, 0, physics.V3(400, 0, 20))
	worldtest.AddCreature(w, 0, physics.V3(-500, 0, 20))
	snap := s.Advance(0, sim.Intents{})
	require.Len(t, snap.Zones, 2)

	in := act(t, p, 0.016)
	assert.Equal(t, 1.0, in.Forward)
	assert.Zero(t, in.Turn)
}

func TestWandersWhenNothingInSight(t *testing.T) {
	_, _, p := setup(t)
	in := act(t, p, 0.016)
	assert.Equal(t, sim.Intents{Forward: 1, Turn: 1.5}, in)
}

func TestUpgradesDevice(t *testing.T) {
	s, w, p := setup(t)
	w.Session.Currency = 20
	s.Advance(0, sim.Intents{})

	act(t, p, 0.016)
	assert.Equal(t, 2, w.Session.EquippedDevice)
}

func TestRestartsAfterOutcome(t *testing.T) {
	s, w, p := setup(t)
	w.Session.Lose()
	w.Session.Notify("GAME OVER", 1)

	s.Advance(0.5, sim.Intents{})
	assert.False(t, act(t, p, 0.5).Reset, "waits for the message")

	s.Advance(0.6, sim.Intents{})
	in := act(t, p, 0.016)
	assert.True(t, in.Reset)
	assert.Equal(t, session.PhaseActive, s.Advance(0.016, in).Phase)
}

func TestSensePublishesFacts(t *testing.T) {
	s, w, p := setup(t)
	id := worldtest.AddCreature(w, 0, physics.V3(50, 0, 20))
	s.Advance(0, sim.Intents{})
	act(t, p, 0.016)

	bb := p.agent.Blackboard()
	assert.False(t, bb.Bool(KeySessionOver))
	assert.True(t, bb.Bool(KeyCreatureInRange))
	c, _ := w.Registry.Creature(id)
	health, ok := bb.Float(KeyCreatureHealth)
	require.True(t, ok)
	assert.Equal(t, float64(c.Health), health)
	dist, ok := bb.Float(KeyOpponentDist)
	require.True(t, ok)
	assert.True(t, dist > 1e300, "no opponent reads as infinitely far")
}

func TestCustomTree(t *testing.T) {
	s, _, _ := setup(t)
	p, err := Load(s, strings.NewReader(`
root: spin
nodes:
  spin:
    type: action
    action: Wander
    params: {turn: -3}
`))
	require.NoError(t, err)
	assert.Equal(t, sim.Intents{Forward: 1, Turn: -3}, act(t, p, 0.1))

	_, err = Load(s, strings.NewReader(`
root: fly
nodes:
  fly: {type: action, action: Fly}
`))
	assert.Error(t, err)
}

func TestOffsetWraps(t *testing.T) {
	player := sim.PlayerView{Position: physics.V3(0, 0, 30), Facing: 350}
	assert.InDelta(t, 10+90, offset(player, physics.V3(0, 10, 30)), 1e-9)
	assert.InDelta(t, -170, offset(player, physics.V3(-10, 0, 30)), 1e-9)
	assert.Equal(t, 6.0, limit(100, 6))
	assert.Equal(t, -6.0, limit(-100, 6))
}
