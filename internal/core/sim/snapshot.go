package sim

import (
	"github.com/zeusync/wildcatch/internal/core/models"
	"github.com/zeusync/wildcatch/internal/core/session"
	"github.com/zeusync/wildcatch/internal/core/systems/physics"
	"github.com/zeusync/wildcatch/internal/core/visibility"
	"github.com/zeusync/wildcatch/internal/core/world"
)

// Snapshot is a read-only copy of the world taken at the end of an Advance.
// It shares no memory with the simulation and may be handed to other
// goroutines.
type Snapshot struct {
	SessionID string        `json:"session_id" msgpack:"session_id"`
	Tick      uint64        `json:"tick" msgpack:"tick"`
	Elapsed   float64       `json:"elapsed" msgpack:"elapsed"`
	Phase     session.Phase `json:"phase" msgpack:"phase"`

	Player   PlayerView   `json:"player" msgpack:"player"`
	Opponent OpponentView `json:"opponent" msgpack:"opponent"`

	// Creatures lists revealed creatures only; hidden ones show up as Zones.
	Creatures   []CreatureView   `json:"creatures" msgpack:"creatures"`
	Zones       []ZoneView       `json:"zones" msgpack:"zones"`
	Projectiles []ProjectileView `json:"projectiles" msgpack:"projectiles"`
	// Live counts every registered creature, revealed or not.
	Live int `json:"live" msgpack:"live"`

	Equipped     DeviceView `json:"equipped" msgpack:"equipped"`
	Captures     int        `json:"captures" msgpack:"captures"`
	Experience   int        `json:"experience" msgpack:"experience"`
	Currency     int        `json:"currency" msgpack:"currency"`
	BonusDevices int        `json:"bonus_devices" msgpack:"bonus_devices"`

	Message    string  `json:"message,omitempty" msgpack:"message,omitempty"`
	MessageTTL float64 `json:"message_ttl,omitempty" msgpack:"message_ttl,omitempty"`
}

type PlayerView struct {
	Position        physics.Vec3 `json:"position" msgpack:"position"`
	Facing          float64      `json:"facing" msgpack:"facing"`
	Health          int          `json:"health" msgpack:"health"`
	MaxHealth       int          `json:"max_health" msgpack:"max_health"`
	Devices         int          `json:"devices" msgpack:"devices"`
	DetectionRadius float64      `json:"detection_radius" msgpack:"detection_radius"`
}

type OpponentView struct {
	Enabled   bool         `json:"enabled" msgpack:"enabled"`
	Position  physics.Vec3 `json:"position" msgpack:"position"`
	Facing    float64      `json:"facing" msgpack:"facing"`
	Health    int          `json:"health" msgpack:"health"`
	MaxHealth int          `json:"max_health" msgpack:"max_health"`
	Devices   int          `json:"devices" msgpack:"devices"`
}

type CreatureView struct {
	ID        models.CreatureID `json:"id" msgpack:"id"`
	Species   string            `json:"species" msgpack:"species"`
	Element   string            `json:"element" msgpack:"element"`
	Color     models.Color      `json:"color" msgpack:"color"`
	Size      float64           `json:"size" msgpack:"size"`
	Position  physics.Vec3      `json:"position" msgpack:"position"`
	Facing    float64           `json:"facing" msgpack:"facing"`
	AnimTimer float64           `json:"anim_timer" msgpack:"anim_timer"`
	Health    int               `json:"health" msgpack:"health"`
	MaxHealth int               `json:"max_health" msgpack:"max_health"`
}

type ZoneView struct {
	Creature models.CreatureID `json:"creature" msgpack:"creature"`
	Position physics.Vec3      `json:"position" msgpack:"position"`
	Radius   float64           `json:"radius" msgpack:"radius"`
}

type ProjectileView struct {
	ID       models.ProjectileID   `json:"id" msgpack:"id"`
	Kind     models.ProjectileKind `json:"kind" msgpack:"kind"`
	Position physics.Vec3          `json:"position" msgpack:"position"`
	Velocity physics.Vec3          `json:"velocity" msgpack:"velocity"`
}

type DeviceView struct {
	Index int          `json:"index" msgpack:"index"`
	Name  string       `json:"name" msgpack:"name"`
	Color models.Color `json:"color" msgpack:"color"`
	Bonus float64      `json:"bonus" msgpack:"bonus"`
}

// Capture copies the current world into a Snapshot, applying the visibility
// rule to creatures and zones.
func Capture(w *world.World) Snapshot {
	s := w.Session
	radius := w.Config.Player.DetectionRadius
	player := w.Player.Position
	device := w.EquippedDevice()

	snap := Snapshot{
		SessionID: s.ID,
		Tick:      s.Tick,
		Elapsed:   s.Elapsed,
		Phase:     s.Phase,
		Player: PlayerView{
			Position:        player,
			Facing:          w.Player.Facing,
			Health:          s.Player.Health,
			MaxHealth:       s.Player.MaxHealth,
			Devices:         s.Player.Devices,
			DetectionRadius: radius,
		},
		Opponent: OpponentView{
			Enabled:   w.Config.Opponent.Enabled,
			Position:  w.Opponent.Position,
			Facing:    w.Opponent.Facing,
			Health:    s.Opponent.Health,
			MaxHealth: s.Opponent.MaxHealth,
			Devices:   s.Opponent.Devices,
		},
		Creatures:   []CreatureView{},
		Zones:       []ZoneView{},
		Projectiles: []ProjectileView{},
		Equipped: DeviceView{
			Index: s.EquippedDevice,
			Name:  device.Name,
			Color: device.Color,
			Bonus: device.Bonus,
		},
		Captures:     s.Captures,
		Experience:   s.Experience,
		Currency:     s.Currency,
		BonusDevices: s.BonusDevices,
		Message:      s.Message,
		MessageTTL:   s.MessageTTL,
	}

	for _, c := range w.Registry.LiveCreatures() {
		snap.Live++
		zone, _ := w.Registry.Zone(c.ID)
		if visibility.ZoneDrawn(player, radius, zone) {
			snap.Zones = append(snap.Zones, ZoneView{Creature: zone.Creature, Position: zone.Position, Radius: zone.Radius})
		}
		if visibility.CreatureRevealed(player, radius, c, zone) {
			snap.Creatures = append(snap.Creatures, creatureView(w, c))
		}
	}
	for _, p := range w.Registry.Projectiles() {
		if p.Active {
			snap.Projectiles = append(snap.Projectiles, ProjectileView{ID: p.ID, Kind: p.Kind, Position: p.Position, Velocity: p.Velocity})
		}
	}
	return snap
}

func creatureView(w *world.World, c *models.Creature) CreatureView {
	sp := w.SpeciesOf(c)
	return CreatureView{
		ID:        c.ID,
		Species:   sp.Name,
		Element:   sp.Element,
		Color:     sp.Color,
		Size:      sp.Size,
		Position:  c.Position,
		Facing:    c.Facing,
		AnimTimer: c.AnimTimer,
		Health:    c.Health,
		MaxHealth: c.MaxHealth,
	}
}

// Revealed reports whether the creature is in the snapshot's visible list.
func (s Snapshot) Revealed(id models.CreatureID) bool {
	for _, c := range s.Creatures {
		if c.ID == id {
			return true
		}
	}
	return false
}
