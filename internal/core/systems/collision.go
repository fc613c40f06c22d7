package systems

import (
	"fmt"

	"github.com/zeusync/wildcatch/internal/core/config"
	"github.com/zeusync/wildcatch/internal/core/models"
	"github.com/zeusync/wildcatch/internal/core/observability/log"
	"github.com/zeusync/wildcatch/internal/core/session"
	"github.com/zeusync/wildcatch/internal/core/world"
)

const collisionSource = "collision"

// Collision resolves projectile hits against creatures, the opponent and the
// player, then drops spent projectiles. A projectile grounded by Ballistics
// this tick is still tested once before it is swept.
type Collision struct{}

func NewCollision() *Collision { return &Collision{} }

func (*Collision) Name() string                    { return "collision" }
func (*Collision) Priority() Priority              { return PriorityCollision }
func (*Collision) RunsIn(phase session.Phase) bool { return unlessDefeated(phase) }
func (*Collision) Reset()                          {}

func (*Collision) Update(_ float64, w *world.World) error {
	for _, p := range w.Registry.Projectiles(models.KindCapture, models.KindDamage) {
		if !inFlight(p) {
			continue
		}
		if c := firstHit(w, p); c != nil {
			p.Active, p.Landed = false, false
			if p.Kind == models.KindCapture {
				resolveCapture(w, c)
			} else {
				resolveDamage(w, c)
			}
			continue
		}
		if p.Kind == models.KindCapture && opponentTargetable(w) &&
			p.Position.Dist(w.Opponent.Position) < w.Config.Opponent.Hitbox {
			p.Active, p.Landed = false, false
			hitOpponent(w)
		}
	}

	for _, p := range w.Registry.Projectiles(models.KindOpponentCapture) {
		if !inFlight(p) || w.Session.Phase == session.PhaseDefeat {
			continue
		}
		if p.Position.Dist(w.Player.Position) < w.Config.Player.Hitbox {
			p.Active, p.Landed = false, false
			hitPlayer(w)
		}
	}

	w.Registry.Sweep()
	return nil
}

// CatchChance is the probability a capture attempt succeeds: the species
// catch rate raised by lost health and the device bonus, capped.
func CatchChance(cfg config.CaptureConfig, catchRate, healthLost, deviceBonus float64) float64 {
	p := catchRate + healthLost*cfg.HealthWeight + deviceBonus
	return max(0, min(cfg.MaxProbability, p))
}

// inFlight reports whether p can still hit something this tick.
func inFlight(p *models.Projectile) bool { return p.Active || p.Landed }

func opponentTargetable(w *world.World) bool {
	return w.Config.Opponent.Enabled && w.Session.Phase != session.PhaseDefeat
}

// firstHit returns the first live creature, in registry order, within reach
// of the projectile.
func firstHit(w *world.World, p *models.Projectile) *models.Creature {
	padding := w.Config.Projectile.CapturePadding
	if p.Kind == models.KindDamage {
		padding = w.Config.Projectile.DamagePadding
	}
	for _, c := range w.Registry.LiveCreatures() {
		if p.Position.Dist(c.Position) < w.SpeciesOf(c).Size+padding {
			return c
		}
	}
	return nil
}

func resolveCapture(w *world.World, c *models.Creature) {
	if !w.Registry.Live(c.ID) {
		return
	}
	cfg := w.Config.Capture
	sp := w.SpeciesOf(c)
	device := w.EquippedDevice()

	chance := CatchChance(cfg, sp.CatchRate, c.HealthLost(), device.Bonus)
	roll := w.Rand.Float64()
	w.Log.Debug("capture attempt",
		log.String("species", sp.Name),
		log.String("device", device.Name),
		log.Float64("chance", chance),
		log.Float64("roll", roll),
	)

	if roll >= chance {
		c.Health = max(1, c.Health-cfg.FailDamage)
		w.Session.Award(cfg.FailExperience, cfg.FailCurrency)
		w.Announce(collisionSource, world.EventCreatureEscaped, w.Config.Messages.Hit, world.GameEvent{
			Message:  fmt.Sprintf("Oh no! The %s broke free! (+%d EXP, +%d coin)", sp.Name, cfg.FailExperience, cfg.FailCurrency),
			Creature: c.ID,
			Species:  sp.Name,
			Amount:   c.Health,
		})
		return
	}

	w.Registry.RemoveCreature(c.ID)
	s := w.Session
	s.Captures++
	experience, currency := cfg.Experience, cfg.Currency
	if sp.Rare {
		experience, currency = cfg.RareExperience, cfg.RareCurrency
	}
	s.Award(experience, currency)
	s.Player.Devices += cfg.DeviceReward

	w.Log.Info("creature caught",
		log.String("species", sp.Name),
		log.Int("captures", s.Captures),
	)
	w.Announce(collisionSource, world.EventCreatureCaught, w.Config.Messages.Hit, world.GameEvent{
		Message:  fmt.Sprintf("Gotcha! %s was caught! (+%d EXP, +%d coins, +%d devices)", sp.Name, experience, currency, cfg.DeviceReward),
		Creature: c.ID,
		Species:  sp.Name,
		Amount:   s.Captures,
	})

	if cfg.BonusEvery > 0 && s.Captures%cfg.BonusEvery == 0 {
		s.BonusDevices++
		w.Announce(collisionSource, world.EventBonusEarned, w.Config.Messages.Special, world.GameEvent{
			Message: fmt.Sprintf("Bonus device earned for %d captures!", s.Captures),
			Amount:  s.BonusDevices,
		})
	}
}

func resolveDamage(w *world.World, c *models.Creature) {
	if !w.Registry.Live(c.ID) {
		return
	}
	sp := w.SpeciesOf(c)
	damage := w.IntRange(w.Config.Projectile.DamageMin, w.Config.Projectile.DamageMax)
	c.Health = max(0, c.Health-damage)

	if c.Health > 0 {
		w.Announce(collisionSource, world.EventCreatureHit, w.Config.Messages.Hit, world.GameEvent{
			Message:  fmt.Sprintf("%s took %d damage! Health: %d/%d", sp.Name, damage, c.Health, c.MaxHealth),
			Creature: c.ID,
			Species:  sp.Name,
			Amount:   damage,
		})
		return
	}

	w.Registry.RemoveCreature(c.ID)
	w.Log.Debug("creature fainted", log.String("species", sp.Name), log.Uint64("id", uint64(c.ID)))
	w.Announce(collisionSource, world.EventCreatureFainted, w.Config.Messages.Hit, world.GameEvent{
		Message:  fmt.Sprintf("%s fainted!", sp.Name),
		Creature: c.ID,
		Species:  sp.Name,
		Amount:   damage,
	})
}

func hitOpponent(w *world.World) {
	cfg := w.Config.Opponent
	s := w.Session
	damage := w.IntRange(w.Config.Projectile.DamageMin, w.Config.Projectile.DamageMax)

	if !s.Opponent.Damage(damage) {
		healed := s.Player.Heal(cfg.HealOnHit)
		w.Announce(collisionSource, world.EventOpponentHit, w.Config.Messages.Hit, world.GameEvent{
			Message: fmt.Sprintf("Hit the opponent for %d damage! You recovered %d health. Opponent: %d/%d",
				damage, healed, s.Opponent.Health, s.Opponent.MaxHealth),
			Amount: damage,
		})
		return
	}

	DefeatOpponent(w, collisionSource, "VICTORY! You defeated the opponent!", w.Config.Messages.Outcome)
}

// DefeatOpponent records a victory and respawns the opponent at full strength
// for a rematch. Later wins keep the Victory phase. It reports false, and
// does nothing, once the session is lost.
func DefeatOpponent(w *world.World, source, message string, ttl float64) bool {
	s := w.Session
	if s.Phase == session.PhaseDefeat {
		return false
	}
	s.Win()
	s.Opponent.Restore(w.Config.Opponent.Devices)
	w.Log.Info("opponent defeated",
		log.String("session", s.ID),
		log.Int("captures", s.Captures),
		log.Int("experience", s.Experience),
	)
	w.Announce(source, world.EventVictory, ttl, world.GameEvent{Message: message})
	return true
}

func hitPlayer(w *world.World) {
	s := w.Session
	damage := w.Config.Opponent.HitDamage
	down := s.Player.Damage(damage)
	w.Announce(collisionSource, world.EventPlayerHit, w.Config.Messages.Hit, world.GameEvent{
		Message: fmt.Sprintf("You were hit for %d damage! Health: %d/%d", damage, s.Player.Health, s.Player.MaxHealth),
		Amount:  damage,
	})
	if !down || !s.Lose() {
		return
	}
	w.Log.Info("session lost",
		log.String("session", s.ID),
		log.Int("captures", s.Captures),
		log.Int("experience", s.Experience),
	)
	w.Announce(collisionSource, world.EventDefeat, w.Config.Messages.Outcome, world.GameEvent{
		Message: "GAME OVER! The opponent caught you. Press reset to play again.",
	})
}
