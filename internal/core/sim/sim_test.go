package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/wildcatch/internal/core/config"
	"github.com/zeusync/wildcatch/internal/core/models"
	"github.com/zeusync/wildcatch/internal/core/observability/log"
	"github.com/zeusync/wildcatch/internal/core/session"
	"github.com/zeusync/wildcatch/internal/core/sim"
	"github.com/zeusync/wildcatch/internal/core/systems/physics"
	"github.com/zeusync/wildcatch/internal/core/world"
	"github.com/zeusync/wildcatch/internal/core/world/worldtest"
)

type fixture struct {
	sim *sim.Simulation
	w   *world.World
	rnd *worldtest.Rand
	rec *worldtest.Recorder
}

func newFixture(t *testing.T, cfg config.Config) fixture {
	t.Helper()
	w, rnd, rec := worldtest.New(cfg)
	s, err := sim.FromWorld(w)
	require.NoError(t, err)
	return fixture{sim: s, w: w, rnd: rnd, rec: rec}
}

func withOpponent() config.Config {
	cfg := worldtest.Quiet()
	cfg.Opponent.Enabled = true
	return cfg
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Species = nil

	_, err := sim.New(cfg, log.NewNop(), nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNewStartsActive(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = "new"
	s, err := sim.New(cfg, nil, nil)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, session.PhaseActive, snap.Phase)
	assert.NotEmpty(t, snap.SessionID)
	assert.Equal(t, cfg.Player.MaxHealth, snap.Player.Health)
	assert.Equal(t, cfg.Player.StartDevices, snap.Player.Devices)
	assert.Equal(t, "Pokeball", snap.Equipped.Name)
	assert.NotNil(t, s.Events())
	assert.Equal(t, cfg.Seed, s.Config().Seed)
}

func TestThrownDeviceFollowsStraightLine(t *testing.T) {
	f := newFixture(t, worldtest.Quiet())

	_, err := f.sim.ThrowCaptureDevice(physics.V3(0, 0, 10), physics.V3(100, 0, 10))
	require.NoError(t, err)
	snap := f.sim.Advance(1, sim.Intents{})

	require.Len(t, snap.Projectiles, 1)
	assert.Equal(t, physics.V3(300, 0, 10), snap.Projectiles[0].Position)
	assert.Equal(t, models.KindCapture, snap.Projectiles[0].Kind)
}

func TestCaptureThroughAdvance(t *testing.T) {
	f := newFixture(t, worldtest.Quiet())
	pos := physics.V3(50, 0, 20)
	id := worldtest.AddCreature(f.w, worldtest.SpeciesIndex(f.w, "Pikachu"), pos)

	_, err := f.sim.ThrowCaptureDevice(pos, pos)
	require.NoError(t, err)
	// The first draw is Pikachu's hop roll in the wildlife system.
	f.rnd.Push(0.5, 0.69)
	snap := f.sim.Advance(0.016, sim.Intents{})

	_, exists := f.w.Registry.Creature(id)
	assert.False(t, exists)
	assert.Zero(t, snap.Live)
	assert.Empty(t, snap.Zones)
	assert.Empty(t, snap.Creatures)
	assert.Equal(t, 1, snap.Captures)
	assert.Equal(t, f.w.Config.Player.StartDevices-1+2, snap.Player.Devices)
	assert.True(t, f.rec.Has(world.EventCreatureCaught))
}

func TestCaptureAtExactChanceEscapes(t *testing.T) {
	f := newFixture(t, worldtest.Quiet())
	pos := physics.V3(50, 0, 20)
	id := worldtest.AddCreature(f.w, worldtest.SpeciesIndex(f.w, "Pikachu"), pos)

	_, err := f.sim.ThrowCaptureDevice(pos, pos)
	require.NoError(t, err)
	f.rnd.Push(0.5, 0.7)
	f.sim.Advance(0.016, sim.Intents{})

	c, exists := f.w.Registry.Creature(id)
	require.True(t, exists)
	assert.Equal(t, 40, c.Health)
}

func TestVictoryRespawnsOpponentSameTick(t *testing.T) {
	f := newFixture(t, withOpponent())
	f.w.Session.Opponent.Health = 15

	target := f.w.Opponent.Position
	_, err := f.sim.ThrowCaptureDevice(target.Sub(physics.V3(0, 10, 0)), target)
	require.NoError(t, err)
	snap := f.sim.Advance(0.01, sim.Intents{})

	assert.Equal(t, session.PhaseVictory, snap.Phase)
	assert.Equal(t, snap.Opponent.MaxHealth, snap.Opponent.Health)
	assert.Equal(t, f.w.Config.Opponent.Devices, snap.Opponent.Devices)
	assert.Contains(t, snap.Message, "VICTORY")
	assert.True(t, f.rec.Has(world.EventVictory))
}

func TestWorldKeepsRunningAfterVictory(t *testing.T) {
	f := newFixture(t, withOpponent())
	f.w.Session.Win()
	opponentAt := f.w.Opponent.Position

	id, err := f.sim.ThrowDamageObject(physics.V3(0, 0, 50), physics.V3(100, 0, 50))
	require.NoError(t, err)
	snap := f.sim.Advance(0.1, sim.Intents{Forward: 1})

	require.Len(t, snap.Projectiles, 2, "thrown rock and the opponent's first throw")
	assert.Equal(t, id, snap.Projectiles[0].ID)
	assert.InDelta(t, 30, snap.Projectiles[0].Position.X, 1e-9)
	assert.Equal(t, models.KindOpponentCapture, snap.Projectiles[1].Kind)
	assert.InDelta(t, 5, snap.Player.Position.X, 1e-9)
	assert.NotEqual(t, opponentAt, snap.Opponent.Position, "opponent keeps moving for the rematch")
	assert.Equal(t, f.w.Config.Opponent.Devices-1, snap.Opponent.Devices)
	assert.Equal(t, session.PhaseVictory, snap.Phase)
}

func TestDefeatFreezesWorldUntilRestart(t *testing.T) {
	f := newFixture(t, withOpponent())
	f.w.Session.Player.Health = 10
	f.w.Registry.AddProjectile(models.KindOpponentCapture, f.w.Player.Position, physics.Vec3{}, f.w.Player.Position)
	flying := f.w.Registry.AddProjectile(models.KindDamage, physics.V3(0, 300, 100), physics.V3(10, 0, 0), physics.V3(100, 300, 100))
	creature := worldtest.AddCreature(f.w, 0, physics.V3(400, 400, 20))

	snap := f.sim.Advance(0.1, sim.Intents{})
	require.Equal(t, session.PhaseDefeat, snap.Phase)
	assert.Zero(t, snap.Player.Health)
	oldID := snap.SessionID

	p, _ := f.w.Registry.Projectile(flying)
	frozenAt := p.Position
	snap = f.sim.Advance(1, sim.Intents{Forward: 1})
	assert.Equal(t, frozenAt, p.Position)
	assert.Equal(t, f.w.Config.Player.Start, snap.Player.Position)
	assert.Equal(t, uint64(2), snap.Tick)
	assert.InDelta(t, 1.1, snap.Elapsed, 1e-9)

	_, err := f.sim.ThrowCaptureDevice(physics.V3(0, 0, 50), physics.V3(1, 0, 50))
	assert.ErrorIs(t, err, sim.ErrSessionOver)
	_, err = f.sim.ThrowDamageObject(physics.V3(0, 0, 50), physics.V3(1, 0, 50))
	assert.ErrorIs(t, err, sim.ErrSessionOver)

	snap = f.sim.Advance(0.1, sim.Intents{Reset: true})
	assert.Equal(t, session.PhaseActive, snap.Phase)
	assert.NotEqual(t, oldID, snap.SessionID)
	assert.Equal(t, snap.Player.MaxHealth, snap.Player.Health)
	assert.Equal(t, f.w.Config.Player.StartDevices, snap.Player.Devices)
	assert.Zero(t, snap.Live)
	_, exists := f.w.Registry.Creature(creature)
	assert.False(t, exists)
	assert.True(t, f.rec.Has(world.EventRestart))
}

func TestRestartFromVictory(t *testing.T) {
	f := newFixture(t, withOpponent())
	f.w.Session.Captures = 3
	f.w.Session.Win()

	f.sim.Restart()
	snap := f.sim.Snapshot()

	assert.Equal(t, session.PhaseActive, snap.Phase)
	assert.Zero(t, snap.Captures)
	assert.Zero(t, snap.Tick)
	assert.Equal(t, f.w.Config.Opponent.Start, snap.Opponent.Position)
}

func TestResetIntentWhileActiveOnlyMovesPlayer(t *testing.T) {
	f := newFixture(t, worldtest.Quiet())
	f.sim.Advance(0.1, sim.Intents{Forward: 3})
	id := f.sim.Snapshot().SessionID
	worldtest.AddCreature(f.w, 0, physics.V3(300, 0, 20))

	snap := f.sim.Advance(0.1, sim.Intents{Reset: true})
	assert.Equal(t, f.w.Config.Player.Start, snap.Player.Position)
	assert.Equal(t, id, snap.SessionID)
	assert.Equal(t, 1, snap.Live)
}

func TestRejectedThrowWithoutDevices(t *testing.T) {
	f := newFixture(t, worldtest.Quiet())
	f.w.Session.Player.Devices = 0

	_, err := f.sim.ThrowCaptureDevice(physics.V3(0, 0, 50), physics.V3(10, 0, 50))
	assert.ErrorIs(t, err, sim.ErrNoCaptureDevices)
	assert.Empty(t, f.w.Registry.Projectiles())
	assert.Zero(t, f.w.Session.Player.Devices)
	assert.True(t, f.rec.Has(world.EventIntentRejected))

	_, err = f.sim.ThrowDamageObject(physics.V3(0, 0, 50), physics.V3(10, 0, 50))
	assert.NoError(t, err, "rocks are unlimited")
}

func TestSelectDevice(t *testing.T) {
	f := newFixture(t, worldtest.Quiet())

	assert.ErrorIs(t, f.sim.SelectDevice(7), sim.ErrUnknownDevice)
	assert.ErrorIs(t, f.sim.SelectDevice(-1), sim.ErrUnknownDevice)
	assert.ErrorIs(t, f.sim.SelectDevice(1), sim.ErrDeviceUnaffordable)
	assert.Zero(t, f.w.Session.EquippedDevice)

	f.w.Session.Currency = 15
	require.NoError(t, f.sim.SelectDevice(2))
	assert.Equal(t, 15, f.w.Session.Currency, "selection does not spend currency")
	assert.True(t, f.rec.Has(world.EventDeviceSelected))

	snap := f.sim.Advance(0, sim.Intents{})
	assert.Equal(t, "Ultra Ball", snap.Equipped.Name)
	assert.Equal(t, 0.3, snap.Equipped.Bonus)
}

func TestUseBonusDevice(t *testing.T) {
	f := newFixture(t, withOpponent())
	assert.ErrorIs(t, f.sim.UseBonusDevice(), sim.ErrNoBonusDevices)

	f.w.Session.BonusDevices = 2
	require.NoError(t, f.sim.UseBonusDevice())
	snap := f.sim.Advance(0.01, sim.Intents{})
	assert.Equal(t, session.PhaseVictory, snap.Phase)
	assert.Equal(t, 1, snap.BonusDevices)
	assert.Equal(t, snap.Opponent.MaxHealth, snap.Opponent.Health)

	f.w.Session.Opponent.Health = 40
	require.NoError(t, f.sim.UseBonusDevice(), "usable again in the rematch")
	assert.Zero(t, f.w.Session.BonusDevices)
	assert.Equal(t, session.PhaseVictory, f.w.Session.Phase)
	assert.Equal(t, f.w.Session.Opponent.MaxHealth, f.w.Session.Opponent.Health)

	f.w.Session.BonusDevices = 1
	f.w.Session.Lose()
	assert.ErrorIs(t, f.sim.UseBonusDevice(), sim.ErrSessionOver)
	assert.Equal(t, 1, f.w.Session.BonusDevices)
}

func TestUseBonusDeviceNeedsOpponent(t *testing.T) {
	f := newFixture(t, worldtest.Quiet())
	f.w.Session.BonusDevices = 1
	assert.ErrorIs(t, f.sim.UseBonusDevice(), sim.ErrNoOpponent)
	assert.Equal(t, 1, f.w.Session.BonusDevices)
}

func TestAdvanceSanitizesDt(t *testing.T) {
	f := newFixture(t, worldtest.Quiet())

	snap := f.sim.Advance(-1, sim.Intents{})
	assert.Zero(t, snap.Elapsed)
	assert.Equal(t, uint64(1), snap.Tick)

	snap = f.sim.Advance(0.5, sim.Intents{})
	assert.Equal(t, 0.5, snap.Elapsed)
}

func TestAdvanceClampsToMaxStep(t *testing.T) {
	cfg := worldtest.Quiet()
	cfg.MaxStep = 0.1
	f := newFixture(t, cfg)

	snap := f.sim.Advance(5, sim.Intents{})
	assert.Equal(t, 0.1, snap.Elapsed)
}

func TestAdvanceFixedStep(t *testing.T) {
	cfg := worldtest.Quiet()
	cfg.FixedStep = 0.25
	f := newFixture(t, cfg)

	snap := f.sim.Advance(0.1, sim.Intents{Forward: 1})
	assert.Zero(t, snap.Tick)
	assert.Equal(t, f.w.Config.Player.Start, snap.Player.Position, "intents wait for the next step")

	snap = f.sim.Advance(0.2, sim.Intents{})
	assert.Equal(t, uint64(1), snap.Tick)
	assert.Equal(t, 0.25, snap.Elapsed)
	assert.InDelta(t, 5, snap.Player.Position.X, 1e-9)

	snap = f.sim.Advance(1.0, sim.Intents{})
	assert.Equal(t, uint64(5), snap.Tick)
	assert.Equal(t, 1.25, snap.Elapsed)
}

func TestElapsedAndTickAreMonotonic(t *testing.T) {
	f := newFixture(t, withOpponent())
	var prev sim.Snapshot
	for i, dt := range []float64{0.016, 0, 0.5, 0.033, 2} {
		snap := f.sim.Advance(dt, sim.Intents{Forward: 1})
		assert.Greater(t, snap.Tick, prev.Tick, "step %d", i)
		assert.GreaterOrEqual(t, snap.Elapsed, prev.Elapsed, "step %d", i)
		prev = snap
	}
}

func TestNearestCreatureAndAim(t *testing.T) {
	f := newFixture(t, worldtest.Quiet())
	_, ok := f.sim.NearestCreature(150)
	assert.False(t, ok)
	ahead := f.sim.AimTarget()
	assert.InDelta(t, f.w.Config.Player.AimAssistRange, ahead.X, 1e-9)

	worldtest.AddCreature(f.w, 0, physics.V3(120, 0, 20))
	near := worldtest.AddCreature(f.w, 1, physics.V3(0, -60, 20))
	worldtest.AddCreature(f.w, 2, physics.V3(0, 400, 20))

	c, ok := f.sim.NearestCreature(150)
	require.True(t, ok)
	assert.Equal(t, near, c.ID)
	assert.Equal(t, physics.V3(0, -60, 20), f.sim.AimTarget())

	_, ok = f.sim.NearestCreature(50)
	assert.False(t, ok)
}

func TestThrowOrigin(t *testing.T) {
	f := newFixture(t, worldtest.Quiet())
	start := f.w.Config.Player.Start

	assert.Equal(t, start.Add(physics.V3(0, 0, 20)), f.sim.ThrowOrigin(true))

	hand := f.sim.ThrowOrigin(false)
	assert.InDelta(t, start.X+10, hand.X, 1e-9)
	assert.InDelta(t, start.Y-25, hand.Y, 1e-9)
	assert.InDelta(t, start.Z+20, hand.Z, 1e-9)
}

func TestSystemMetricsExposed(t *testing.T) {
	f := newFixture(t, worldtest.Quiet())
	f.sim.Advance(0.1, sim.Intents{})
	f.sim.Advance(0.1, sim.Intents{})

	m, ok := f.sim.SystemMetrics("collision")
	require.True(t, ok)
	assert.Equal(t, uint64(2), m.ExecutionCount)
}
