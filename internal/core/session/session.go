// Package session tracks one play-through: health totals, inventory,
// rewards, the Active/Victory/Defeat phase and the on-screen event message.
package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zeusync/wildcatch/internal/core/config"
)

type Phase uint8

const (
	PhaseActive Phase = iota
	PhaseVictory
	PhaseDefeat
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "active":
		*p = PhaseActive
	case "victory":
		*p = PhaseVictory
	case "defeat":
		*p = PhaseDefeat
	default:
		return fmt.Errorf("unknown phase %q", text)
	}
	return nil
}

// Combatant is a health pool with a capture-device inventory.
type Combatant struct {
	Health    int
	MaxHealth int
	Devices   int
}

// Damage lowers health by n, flooring at zero, and reports whether the
// combatant is down.
func (c *Combatant) Damage(n int) bool {
	c.Health = max(0, c.Health-n)
	return c.Health == 0
}

// Heal raises health by n, capped at MaxHealth, and returns the amount gained.
func (c *Combatant) Heal(n int) int {
	before := c.Health
	c.Health = min(c.MaxHealth, c.Health+n)
	return c.Health - before
}

func (c *Combatant) Restore(devices int) {
	c.Health = c.MaxHealth
	c.Devices = devices
}

type State struct {
	ID    string
	Phase Phase

	Player         Combatant
	Opponent       Combatant
	EquippedDevice int

	Captures     int
	Experience   int
	Currency     int
	BonusDevices int

	Message    string
	MessageTTL float64

	Elapsed float64
	Tick    uint64

	cfg config.Config
}

func New(cfg config.Config) *State {
	s := &State{cfg: cfg}
	s.Reset()
	return s
}

// Reset starts a fresh session under a new ID.
func (s *State) Reset() {
	*s = State{
		ID:    uuid.NewString(),
		Phase: PhaseActive,
		Player: Combatant{
			Health:    s.cfg.Player.MaxHealth,
			MaxHealth: s.cfg.Player.MaxHealth,
			Devices:   s.cfg.Player.StartDevices,
		},
		Opponent: Combatant{
			Health:    s.cfg.Opponent.MaxHealth,
			MaxHealth: s.cfg.Opponent.MaxHealth,
			Devices:   s.cfg.Opponent.Devices,
		},
		cfg: s.cfg,
	}
}

func (s *State) Active() bool { return s.Phase == PhaseActive }
func (s *State) Over() bool   { return s.Phase != PhaseActive }

// Win moves an active session to Victory. It reports whether the phase changed.
func (s *State) Win() bool {
	if s.Phase != PhaseActive {
		return false
	}
	s.Phase = PhaseVictory
	return true
}

// Lose moves the session to Defeat, from Active or from a won session whose
// rematch went badly. It reports whether the phase changed.
func (s *State) Lose() bool {
	if s.Phase == PhaseDefeat {
		return false
	}
	s.Phase = PhaseDefeat
	return true
}

// Notify replaces the current event message.
func (s *State) Notify(msg string, ttl float64) {
	s.Message = msg
	s.MessageTTL = ttl
}

// CountDown ages the event message by dt and clears it once expired.
func (s *State) CountDown(dt float64) {
	if s.MessageTTL <= 0 {
		return
	}
	s.MessageTTL = max(0, s.MessageTTL-dt)
	if s.MessageTTL == 0 {
		s.Message = ""
	}
}

func (s *State) Award(experience, currency int) {
	s.Experience += experience
	s.Currency += currency
}
