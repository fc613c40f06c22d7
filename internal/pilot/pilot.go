// Package pilot drives a simulation without a human: a behavior tree,
// loaded from YAML, decides each tick what the player does.
package pilot

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"

	"github.com/zeusync/wildcatch/internal/core/behavior"
	"github.com/zeusync/wildcatch/internal/core/session"
	"github.com/zeusync/wildcatch/internal/core/sim"
	"github.com/zeusync/wildcatch/internal/core/systems/physics"
)

//go:embed tree.yaml
var defaultTree []byte

// Blackboard facts written by the pilot before every tick.
const (
	KeySessionOver     = "session.over"
	KeyMessageShown    = "message.shown"
	KeyBonusReady      = "bonus.ready"
	KeyCreatureInRange = "creature.in_range"
	KeyCreatureHealth  = "creature.health"
	KeyDevices         = "devices"
	KeyOpponentDist    = "opponent.distance"
	KeyZoneVisible     = "zone.visible"
)

const defaultMaxTurn = 6.0

// Pilot turns snapshots into intents and direct throws.
type Pilot struct {
	sim   *sim.Simulation
	agent *behavior.Agent

	snap     sim.Snapshot
	creature sim.CreatureView
	hasPrey  bool
	zone     sim.ZoneView
	hasZone  bool

	intents sim.Intents
}

// New builds a pilot running the bundled tree.
func New(s *sim.Simulation) (*Pilot, error) {
	return Load(s, bytes.NewReader(defaultTree))
}

// Load builds a pilot from a YAML tree.
func Load(s *sim.Simulation, r io.Reader) (*Pilot, error) {
	cfg, err := behavior.LoadYAML(r)
	if err != nil {
		return nil, err
	}
	return FromConfig(s, cfg)
}

func FromConfig(s *sim.Simulation, cfg *behavior.Config) (*Pilot, error) {
	p := &Pilot{sim: s}
	reg := behavior.NewRegistry()
	p.register(reg)
	tree, err := cfg.Build(reg)
	if err != nil {
		return nil, fmt.Errorf("build pilot tree: %w", err)
	}
	p.agent = behavior.NewAgent(tree, p)
	return p, nil
}

// Act runs one decision for a step of dt seconds. Throws happen immediately;
// movement comes back as intents for the caller's next Advance.
func (p *Pilot) Act(dt float64) (sim.Intents, error) {
	p.intents = sim.Intents{}
	if _, err := p.agent.Step(dt); err != nil {
		return sim.Intents{}, err
	}
	return p.intents, nil
}

// Sense publishes the current snapshot as blackboard facts.
func (p *Pilot) Sense(bb *behavior.Blackboard) error {
	p.snap = p.sim.Snapshot()
	p.creature, p.hasPrey = p.sim.NearestCreature(p.sim.Config().Player.AimAssistRange)
	p.zone, p.hasZone = nearestZone(p.snap)

	bb.Set(KeySessionOver, p.snap.Phase != session.PhaseActive)
	bb.Set(KeyMessageShown, p.snap.MessageTTL > 0)
	bb.Set(KeyBonusReady, p.snap.BonusDevices > 0 && p.snap.Opponent.Enabled)
	bb.Set(KeyCreatureInRange, p.hasPrey)
	bb.Set(KeyZoneVisible, p.hasZone)
	bb.Set(KeyDevices, p.snap.Player.Devices)
	if p.hasPrey {
		bb.Set(KeyCreatureHealth, p.creature.Health)
	} else {
		bb.Delete(KeyCreatureHealth)
	}
	dist := math.Inf(1)
	if p.snap.Opponent.Enabled {
		dist = p.snap.Player.Position.Dist(p.snap.Opponent.Position)
	}
	bb.Set(KeyOpponentDist, dist)
	return nil
}

func (p *Pilot) register(reg *behavior.Registry) {
	simple := func(fn func() behavior.Status) behavior.Factory {
		return func(name string, _ behavior.Params) (behavior.Node, error) {
			return behavior.NewAction(name, func(behavior.Context) (behavior.Status, error) {
				return fn(), nil
			}), nil
		}
	}
	reg.RegisterAction("Restart", simple(func() behavior.Status {
		p.intents.Reset = true
		return behavior.StatusSuccess
	}))
	reg.RegisterAction("UpgradeDevice", simple(p.upgrade))
	reg.RegisterAction("UseBonusDevice", simple(func() behavior.Status {
		return status(p.sim.UseBonusDevice())
	}))
	reg.RegisterAction("ThrowCaptureDevice", simple(func() behavior.Status {
		if !p.hasPrey {
			return behavior.StatusFailure
		}
		_, err := p.sim.ThrowCaptureDevice(p.sim.ThrowOrigin(false), p.creature.Position)
		return status(err)
	}))
	reg.RegisterAction("ThrowRock", simple(func() behavior.Status {
		if !p.hasPrey {
			return behavior.StatusFailure
		}
		_, err := p.sim.ThrowDamageObject(p.sim.ThrowOrigin(false), p.creature.Position)
		return status(err)
	}))
	reg.RegisterAction("ThrowAtOpponent", simple(func() behavior.Status {
		if !p.snap.Opponent.Enabled {
			return behavior.StatusFailure
		}
		_, err := p.sim.ThrowCaptureDevice(p.sim.ThrowOrigin(false), p.snap.Opponent.Position)
		return status(err)
	}))

	reg.RegisterAction("FaceCreature", func(name string, params behavior.Params) (behavior.Node, error) {
		maxTurn, err := params.Float("max_turn", defaultMaxTurn)
		if err != nil {
			return nil, err
		}
		return behavior.NewAction(name, func(behavior.Context) (behavior.Status, error) {
			if !p.hasPrey {
				return behavior.StatusFailure, nil
			}
			p.intents.Turn = limit(offset(p.snap.Player, p.creature.Position), maxTurn)
			return behavior.StatusSuccess, nil
		}), nil
	})
	reg.RegisterAction("WalkToZone", func(name string, params behavior.Params) (behavior.Node, error) {
		maxTurn, err := params.Float("max_turn", defaultMaxTurn)
		if err != nil {
			return nil, err
		}
		aligned, err := params.Float("aligned", 45)
		if err != nil {
			return nil, err
		}
		return behavior.NewAction(name, func(behavior.Context) (behavior.Status, error) {
			if !p.hasZone {
				return behavior.StatusFailure, nil
			}
			off := offset(p.snap.Player, p.zone.Position)
			p.intents.Turn = limit(off, maxTurn)
			if math.Abs(off) < aligned {
				p.intents.Forward = 1
			}
			return behavior.StatusSuccess, nil
		}), nil
	})
	reg.RegisterAction("Wander", func(name string, params behavior.Params) (behavior.Node, error) {
		turn, err := params.Float("turn", 1.5)
		if err != nil {
			return nil, err
		}
		return behavior.NewAction(name, func(behavior.Context) (behavior.Status, error) {
			p.intents.Forward = 1
			p.intents.Turn = turn
			return behavior.StatusSuccess, nil
		}), nil
	})
}

// upgrade equips the best device the wallet allows. It never fails.
func (p *Pilot) upgrade() behavior.Status {
	devices := p.sim.Config().Devices
	for i := len(devices) - 1; i > p.snap.Equipped.Index; i-- {
		if devices[i].Cost <= p.snap.Currency {
			_ = p.sim.SelectDevice(i)
			break
		}
	}
	return behavior.StatusSuccess
}

// status maps a rejected command to failure so the tree can try something
// else.
func status(err error) behavior.Status {
	if err != nil {
		return behavior.StatusFailure
	}
	return behavior.StatusSuccess
}

// offset is the signed angle, in [-180, 180], between the player's facing
// and the direction of target.
func offset(player sim.PlayerView, target physics.Vec3) float64 {
	return math.Remainder(physics.Bearing(player.Position, target)-player.Facing, 360)
}

func limit(turn, most float64) float64 { return physics.Clamp(turn, -most, most) }

func nearestZone(snap sim.Snapshot) (sim.ZoneView, bool) {
	var (
		best  sim.ZoneView
		found bool
		bestD = math.Inf(1)
	)
	for _, z := range snap.Zones {
		if d := z.Position.Dist2D(snap.Player.Position); d < bestD {
			best, bestD, found = z, d, true
		}
	}
	return best, found
}
