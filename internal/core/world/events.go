package world

import "github.com/zeusync/wildcatch/internal/core/models"

// Event types published on the world's bus.
const (
	EventCreatureSpawned = "creature.spawned"
	EventCreatureCaught  = "creature.caught"
	EventCreatureEscaped = "creature.escaped"
	EventCreatureHit     = "creature.hit"
	EventCreatureFainted = "creature.fainted"
	EventOpponentHit     = "opponent.hit"
	EventOpponentThrow   = "opponent.throw"
	EventPlayerHit       = "player.hit"
	EventBonusEarned     = "bonus.earned"
	EventDeviceSelected  = "device.selected"
	EventIntentRejected  = "intent.rejected"
	EventVictory         = "session.victory"
	EventDefeat          = "session.defeat"
	EventRestart         = "session.restart"
)

// GameEvent is the payload of every event the simulation publishes.
type GameEvent struct {
	Tick     uint64            `json:"tick" msgpack:"tick"`
	Message  string            `json:"message,omitempty" msgpack:"message,omitempty"`
	Creature models.CreatureID `json:"creature,omitempty" msgpack:"creature,omitempty"`
	Species  string            `json:"species,omitempty" msgpack:"species,omitempty"`
	Amount   int               `json:"amount,omitempty" msgpack:"amount,omitempty"`
}
