// Package registry owns every live entity of a simulation.
//
// Creatures and their concealment zones are keyed by the same stable
// CreatureID, so removing a creature never re-keys anything else. Iteration
// order is insertion order, which is the order collisions are tested in.
package registry

import (
	"slices"

	"github.com/zeusync/wildcatch/internal/core/models"
	"github.com/zeusync/wildcatch/internal/core/systems/physics"
)

type Registry struct {
	nextCreature   models.CreatureID
	nextProjectile models.ProjectileID

	creatures     map[models.CreatureID]*models.Creature
	creatureOrder []models.CreatureID
	zones         map[models.CreatureID]*models.Zone

	projectiles     map[models.ProjectileID]*models.Projectile
	projectileOrder []models.ProjectileID
}

func New() *Registry {
	return &Registry{
		creatures:   make(map[models.CreatureID]*models.Creature),
		zones:       make(map[models.CreatureID]*models.Zone),
		projectiles: make(map[models.ProjectileID]*models.Projectile),
	}
}

// AddCreature stores c under a fresh ID together with a zone of zoneRadius
// centred on it. Any ID already set on c is ignored.
func (r *Registry) AddCreature(c models.Creature, zoneRadius float64) models.CreatureID {
	r.nextCreature++
	id := r.nextCreature
	c.ID = id
	r.creatures[id] = &c
	r.creatureOrder = append(r.creatureOrder, id)
	r.zones[id] = &models.Zone{Creature: id, Position: c.Position, Radius: zoneRadius}
	return id
}

// RemoveCreature deletes the creature and its zone. Capture and fainting both
// end here. It reports whether the creature existed.
func (r *Registry) RemoveCreature(id models.CreatureID) bool {
	if _, ok := r.creatures[id]; !ok {
		return false
	}
	delete(r.creatures, id)
	delete(r.zones, id)
	if i := slices.Index(r.creatureOrder, id); i >= 0 {
		r.creatureOrder = slices.Delete(r.creatureOrder, i, i+1)
	}
	return true
}

func (r *Registry) Creature(id models.CreatureID) (*models.Creature, bool) {
	c, ok := r.creatures[id]
	return c, ok
}

// Live reports whether id names a registered creature.
func (r *Registry) Live(id models.CreatureID) bool {
	_, ok := r.creatures[id]
	return ok
}

// LiveCreatures returns the registered creatures in insertion order.
func (r *Registry) LiveCreatures() []*models.Creature {
	out := make([]*models.Creature, 0, len(r.creatureOrder))
	for _, id := range r.creatureOrder {
		out = append(out, r.creatures[id])
	}
	return out
}

func (r *Registry) LiveCount() int { return len(r.creatures) }

func (r *Registry) Zone(id models.CreatureID) (*models.Zone, bool) {
	z, ok := r.zones[id]
	return z, ok
}

// Zones returns zones in the insertion order of their creatures.
func (r *Registry) Zones() []*models.Zone {
	out := make([]*models.Zone, 0, len(r.zones))
	for _, id := range r.creatureOrder {
		if z, ok := r.zones[id]; ok {
			out = append(out, z)
		}
	}
	return out
}

// MoveCreature relocates a creature and keeps its zone centred on it.
func (r *Registry) MoveCreature(id models.CreatureID, pos physics.Vec3) {
	c, ok := r.creatures[id]
	if !ok {
		return
	}
	c.Position = pos
	if z, ok := r.zones[id]; ok {
		z.Position = pos
	}
}

func (r *Registry) AddProjectile(kind models.ProjectileKind, origin, velocity, target physics.Vec3) models.ProjectileID {
	r.nextProjectile++
	id := r.nextProjectile
	r.projectiles[id] = &models.Projectile{
		ID:       id,
		Kind:     kind,
		Position: origin,
		Velocity: velocity,
		Active:   true,
		Target:   target,
	}
	r.projectileOrder = append(r.projectileOrder, id)
	return id
}

func (r *Registry) Projectile(id models.ProjectileID) (*models.Projectile, bool) {
	p, ok := r.projectiles[id]
	return p, ok
}

func (r *Registry) DeactivateProjectile(id models.ProjectileID) {
	if p, ok := r.projectiles[id]; ok {
		p.Active = false
	}
}

// Projectiles returns the projectiles of the given kinds (all kinds when none
// are given) in throw order.
func (r *Registry) Projectiles(kinds ...models.ProjectileKind) []*models.Projectile {
	out := make([]*models.Projectile, 0, len(r.projectileOrder))
	for _, id := range r.projectileOrder {
		p := r.projectiles[id]
		if len(kinds) == 0 || slices.Contains(kinds, p.Kind) {
			out = append(out, p)
		}
	}
	return out
}

// Sweep drops inactive projectiles and returns how many were removed.
func (r *Registry) Sweep() int {
	kept := r.projectileOrder[:0]
	removed := 0
	for _, id := range r.projectileOrder {
		if r.projectiles[id].Active {
			kept = append(kept, id)
			continue
		}
		delete(r.projectiles, id)
		removed++
	}
	r.projectileOrder = kept
	return removed
}

// Clear removes every entity. IDs keep increasing across clears.
func (r *Registry) Clear() {
	clear(r.creatures)
	clear(r.zones)
	clear(r.projectiles)
	r.creatureOrder = r.creatureOrder[:0]
	r.projectileOrder = r.projectileOrder[:0]
}
