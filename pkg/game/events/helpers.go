package events

import "fmt"

const (
	// EventMapBuilt is emitted once the map builder has carved every corridor.
	EventMapBuilt Type = "map.built"
	// EventRoomConnected is emitted for every room pair joined by a corridor.
	EventRoomConnected Type = "map.room_connected"
	// EventTargetPicked is emitted when a soldier plans toward a new cell.
	EventTargetPicked Type = "agent.target_picked"
	// EventSupplyConsumed is emitted when a soldier picks up a package.
	EventSupplyConsumed Type = "agent.supply_consumed"
	// EventAttacked is emitted when a soldier shoots or throws a grenade.
	EventAttacked Type = "agent.attacked"
	// EventTargetShared is emitted when two teammates synchronise targets.
	EventTargetShared Type = "agent.target_shared"
	// EventAgentDied is emitted when a dead soldier is taken off the map.
	EventAgentDied Type = "agent.died"
	// EventGameOver is emitted when the game loop stops.
	EventGameOver Type = "game.over"
)

// SoldierActor names a soldier for the Actor field
func SoldierActor(id int) string {
	return fmt.Sprintf("soldier#%d", id)
}

// MapBuilt publishes a map built event.
func MapBuilt(pub Publisher, height, width, rooms, paths int) {
	if pub == nil {
		return
	}
	pub.Publish(Event{
		Type:     EventMapBuilt,
		Severity: SeverityInfo,
		Message:  "map built",
		Fields: map[string]any{
			"height": height,
			"width":  width,
			"rooms":  rooms,
			"paths":  paths,
		},
	})
}

// RoomConnected publishes a corridor carving event.
func RoomConnected(pub Publisher, from, to int, length int) {
	if pub == nil {
		return
	}
	pub.Publish(Event{
		Type:     EventRoomConnected,
		Severity: SeverityDebug,
		Message:  "rooms connected",
		Fields:   map[string]any{"from": from, "to": to, "length": length},
	})
}

// TargetPicked publishes a target selection event.
func TargetPicked(pub Publisher, soldier int, state string, target fmt.Stringer) {
	if pub == nil {
		return
	}
	pub.Publish(Event{
		Type:     EventTargetPicked,
		Severity: SeverityDebug,
		Actor:    SoldierActor(soldier),
		Message:  "target picked",
		Fields:   map[string]any{"state": state, "target": target.String()},
	})
}

// SupplyConsumed publishes a package pickup event.
func SupplyConsumed(pub Publisher, soldier int, kind string, amount int) {
	if pub == nil {
		return
	}
	pub.Publish(Event{
		Type:     EventSupplyConsumed,
		Severity: SeverityInfo,
		Actor:    SoldierActor(soldier),
		Message:  "supply consumed",
		Fields:   map[string]any{"kind": kind, "amount": amount},
	})
}

// Attacked publishes a shot or grenade event.
func Attacked(pub Publisher, soldier, victim int, weapon string, damage, remaining int) {
	if pub == nil {
		return
	}
	pub.Publish(Event{
		Type:     EventAttacked,
		Severity: SeverityDebug,
		Actor:    SoldierActor(soldier),
		Message:  "attacked",
		Fields: map[string]any{
			"victim":    victim,
			"weapon":    weapon,
			"damage":    damage,
			"remaining": remaining,
		},
	})
}

// TargetShared publishes a target sharing event.
func TargetShared(pub Publisher, soldier, with int, target fmt.Stringer) {
	if pub == nil {
		return
	}
	pub.Publish(Event{
		Type:     EventTargetShared,
		Severity: SeverityDebug,
		Actor:    SoldierActor(soldier),
		Message:  "target shared",
		Fields:   map[string]any{"with": with, "target": target.String()},
	})
}

// AgentDied publishes a death event.
func AgentDied(pub Publisher, soldier, team int) {
	if pub == nil {
		return
	}
	pub.Publish(Event{
		Type:     EventAgentDied,
		Severity: SeverityInfo,
		Actor:    SoldierActor(soldier),
		Message:  "soldier died",
		Fields:   map[string]any{"team": team},
	})
}

// GameOver publishes the end of the game loop. A winner of 0 means none.
func GameOver(pub Publisher, iterations, winner int) {
	if pub == nil {
		return
	}
	pub.Publish(Event{
		Type:     EventGameOver,
		Severity: SeverityInfo,
		Message:  "game over",
		Fields:   map[string]any{"iterations": iterations, "winner": winner},
	})
}
