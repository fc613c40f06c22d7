// Package visibility decides which creatures the player can see. Every
// function is pure: the answer depends only on the current positions.
package visibility

import (
	"github.com/zeusync/wildcatch/internal/core/models"
	"github.com/zeusync/wildcatch/internal/core/systems/physics"
)

// Revealed reports whether the player's detection circle overlaps the zone's
// circle on the ground plane.
func Revealed(player physics.Vec3, playerRadius float64, zone *models.Zone) bool {
	if zone == nil {
		return false
	}
	return player.Dist2D(zone.Position) <= playerRadius+zone.Radius
}

// CreatureRevealed applies Revealed to the creature's zone. A creature without
// its own zone is never revealed.
func CreatureRevealed(player physics.Vec3, playerRadius float64, c *models.Creature, zone *models.Zone) bool {
	if c == nil || zone == nil || zone.Creature != c.ID {
		return false
	}
	return Revealed(player, playerRadius, zone)
}

// ZoneDrawn reports whether the bush itself should be drawn: it disappears
// once the creature inside is revealed.
func ZoneDrawn(player physics.Vec3, playerRadius float64, zone *models.Zone) bool {
	return zone != nil && !Revealed(player, playerRadius, zone)
}
