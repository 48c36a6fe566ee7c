package agent

import (
	"math"

	"skirmish/pkg/engine/world"
	"skirmish/pkg/game/entities"
	"skirmish/pkg/game/events"
)

// grenadeRange is how many cells away a grenade can land
const grenadeRange = 3

// currentRoom returns the room the soldier stands in, or nil in a corridor
func (s *Soldier) currentRoom() *world.Room {
	return s.env.Map.RoomAt(s.pos)
}

// scanForEnemy looks along the four cardinal rays, at most reach cells
// (0 means unbounded) and never past the room's walls. A ray stops at the
// first occupant; the first enemy met is returned.
func (s *Soldier) scanForEnemy(room *world.Room, reach int) *Soldier {
	grid := s.env.Map.Grid
	for _, dir := range []world.Direction{world.East, world.South, world.West, world.North} {
		for d := 1; reach == 0 || d <= reach; d++ {
			p := dir.Walk(s.pos, d)
			if !room.Contains(p) {
				break
			}
			occupant := grid.Occupant(p)
			if occupant == nil {
				continue
			}
			if other, ok := occupant.(*Soldier); ok && !s.Teammate(other) {
				return other
			}
			break
		}
	}
	return nil
}

// throwGrenadeIfPossible attacks an enemy up to grenadeRange cells away
// in the same room.
func (s *Soldier) throwGrenadeIfPossible() bool {
	if s.Grenades == 0 {
		return false
	}
	room := s.currentRoom()
	if room == nil {
		return false
	}
	enemy := s.scanForEnemy(room, grenadeRange)
	if enemy == nil {
		return false
	}
	s.throwGrenadeAt(enemy)
	return true
}

// shootIfPossible attacks the first enemy in line of fire in the same room
func (s *Soldier) shootIfPossible() bool {
	if s.Bullets == 0 {
		return false
	}
	room := s.currentRoom()
	if room == nil {
		return false
	}
	enemy := s.scanForEnemy(room, 0)
	if enemy == nil {
		return false
	}
	s.shootAt(enemy)
	return true
}

func (s *Soldier) throwGrenadeAt(other *Soldier) {
	s.Grenades--
	other.TakeDamage(s.GrenadeDamage, BlownUp)
	events.Attacked(s.env.Events, s.ID, other.ID, "grenade", s.GrenadeDamage, other.Health)
}

func (s *Soldier) shootAt(other *Soldier) {
	s.Bullets--
	other.TakeDamage(s.BulletDamage, ShotAt)
	events.Attacked(s.env.Events, s.ID, other.ID, "bullet", s.BulletDamage, other.Health)
}

// nearestSupply finds the closest package of kind lying on any room floor
func (s *Soldier) nearestSupply(kind entities.SupplyKind) (world.Point, bool) {
	grid := s.env.Map.Grid
	best := world.Point{}
	bestDistance := math.Inf(1)
	for _, room := range s.env.Map.Rooms {
		for _, p := range room.Floor() {
			supply, ok := grid.Occupant(p).(*entities.Supply)
			if !ok || supply.Kind != kind {
				continue
			}
			if d := world.Distance(s.pos, p); d < bestDistance {
				best, bestDistance = p, d
			}
		}
	}
	return best, !math.IsInf(bestDistance, 1)
}

// wants reports whether the current state asks for supplies of kind
func (s *Soldier) wants(kind entities.SupplyKind) bool {
	switch kind {
	case entities.Bullets:
		return s.State == LookingForBullets
	case entities.Grenades:
		return s.State == LookingForGrenades
	case entities.Health:
		return s.State == LookingForHealth
	}
	return false
}

// consume takes the package at p into the inventory and removes it
func (s *Soldier) consume(p world.Point, supply *entities.Supply) {
	switch supply.Kind {
	case entities.Bullets:
		s.Bullets += supply.Units
		s.BulletDamage = supply.Damage
	case entities.Grenades:
		s.Grenades += supply.Units
		s.GrenadeDamage = supply.Damage
	case entities.Health:
		s.Heal(supply.Restore)
	}
	_, _ = s.env.Map.Grid.Remove(p)
	s.search.Reset()
	s.State = Discovering
	events.SupplyConsumed(s.env.Events, s.ID, supply.Kind.String(), supply.Amount())
}
