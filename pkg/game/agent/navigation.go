package agent

import (
	"skirmish/pkg/engine/world"
	"skirmish/pkg/game/entities"
	"skirmish/pkg/game/events"
)

// maxStuck bounds how often a soldier re-plans after exhausting its
// search within one turn.
const maxStuck = 3

// TakeTurn performs one action: a grenade, a shot, or a bounded run of
// search steps that ends with a move, an encounter or a pickup. Dead
// soldiers do nothing.
func (s *Soldier) TakeTurn() error {
	if !s.Alive() || !s.placed {
		return nil
	}

	if s.throwGrenadeIfPossible() {
		return nil
	}
	if s.shootIfPossible() {
		return nil
	}

	stuck := 0
	budget := s.env.Map.Graph.Len()
	for steps := 0; stuck < maxStuck && steps < budget; steps++ {
		if _, ok := s.search.Target(); !ok {
			s.pickTarget()
		}

		if s.search.Exhausted() {
			s.replanRandom()
			stuck++
		}

		analyzed, err := s.search.StepNeighbourPriority()
		if err != nil {
			return err
		}
		if !analyzed {
			continue
		}

		last, _ := s.search.LastAnalyzed()
		if s.resolve(last) {
			break
		}
	}

	if s.search.Solved() {
		s.search.Reset()
		s.State = Discovering
	}
	return nil
}

// resolve reacts to the freshly analyzed cell. It returns true when the
// soldier has used up its turn.
func (s *Soldier) resolve(p world.Point) bool {
	if p == s.pos || !p.Adjacent(s.pos) {
		return false
	}

	grid := s.env.Map.Grid
	cell := grid.Cell(p)
	if cell.IsEmpty() {
		if !cell.IsTraversable() {
			return false
		}
		if err := grid.Move(s.pos, p); err != nil {
			return false
		}
		s.pos = p
		return true
	}

	switch occupant := cell.Occupant.(type) {
	case *Soldier:
		if s.Teammate(occupant) {
			s.spottedFriend(occupant)
		} else {
			s.spottedEnemy(occupant)
		}
		return true
	case *entities.Supply:
		if s.wants(occupant.Kind) {
			s.consume(p, occupant)
			return true
		}
	}
	return false
}

// spottedEnemy fights an enemy caught in a corridor, or backs off when
// the soldier cannot afford the fight.
func (s *Soldier) spottedEnemy(other *Soldier) {
	if s.env.Map.Grid.Kind(other.pos) != world.Path {
		return
	}
	switch {
	case s.NoAmmunition() || s.policy.LowHealth(s):
		s.reverseTarget()
	case s.Grenades > 0:
		s.throwGrenadeAt(other)
	default:
		s.shootAt(other)
	}
}

// spottedFriend synchronises targets with a teammate in a corridor
func (s *Soldier) spottedFriend(other *Soldier) {
	if s.env.Map.Grid.Kind(other.pos) != world.Path {
		return
	}
	if _, ok := s.search.Target(); !ok {
		other.ShareTargetWith(s)
		return
	}
	s.ShareTargetWith(other)
}

// ShareTargetWith resets both searches and seeds them from each soldier's
// own position toward this soldier's target.
func (s *Soldier) ShareTargetWith(other *Soldier) {
	target, ok := s.search.Target()
	if !ok {
		return
	}
	s.plan(target)
	other.plan(target)
	events.TargetShared(s.env.Events, s.ID, other.ID, target)
}

// reverseTarget heads back to where the current search started
func (s *Soldier) reverseTarget() {
	start, ok := s.search.Start()
	if !ok {
		return
	}
	s.plan(start)
}

// plan resets the search and seeds it from the current position
func (s *Soldier) plan(target world.Point) {
	s.search.Reset()
	// both points come from the grid the graph was built on
	_ = s.search.SetStart(s.pos)
	_ = s.search.SetTarget(target)
}

// pickTarget lets the policy choose a state and heads for the nearest
// matching supply, or for another room when there is none.
func (s *Soldier) pickTarget() {
	s.State = s.policy.Decide(s)

	var (
		target world.Point
		found  bool
	)
	switch s.State {
	case LookingForHealth:
		target, found = s.nearestSupply(entities.Health)
	case LookingForBullets:
		target, found = s.nearestSupply(entities.Bullets)
	case LookingForGrenades:
		target, found = s.nearestSupply(entities.Grenades)
	}
	if !found {
		s.State = Discovering
		target = s.randomRoomCenter()
	}

	s.cameFrom, s.hasCameFrom = s.pos, true
	s.plan(target)
	events.TargetPicked(s.env.Events, s.ID, s.State.String(), target)
}

// replanRandom gives up on the current target and heads for a random free
// floor cell instead.
func (s *Soldier) replanRandom() {
	s.State = Discovering
	target := s.randomFloorCell()
	s.cameFrom, s.hasCameFrom = s.pos, true
	s.plan(target)
	events.TargetPicked(s.env.Events, s.ID, s.State.String(), target)
}

// randomRoomCenter picks the center of a room other than the one the
// soldier last set out from. With a single room that room is used.
func (s *Soldier) randomRoomCenter() world.Point {
	rooms := s.env.Map.Rooms
	candidates := make([]*world.Room, 0, len(rooms))
	for _, r := range rooms {
		if s.hasCameFrom && r.Contains(s.cameFrom) {
			continue
		}
		candidates = append(candidates, r)
	}
	if len(candidates) == 0 {
		candidates = rooms
	}
	return candidates[s.env.Rand.Intn(len(candidates))].Center
}

// randomFloorCell picks a random room and a random traversable floor cell
// in it. Rooms without free floor are skipped; if every room is full the
// first room's center is used.
func (s *Soldier) randomFloorCell() world.Point {
	rooms := s.env.Map.Rooms
	grid := s.env.Map.Grid
	offset := s.env.Rand.Intn(len(rooms))
	for i := range rooms {
		room := rooms[(offset+i)%len(rooms)]
		var free []world.Point
		for _, p := range room.Floor() {
			if grid.Cell(p).IsTraversable() {
				free = append(free, p)
			}
		}
		if len(free) > 0 {
			return free[s.env.Rand.Intn(len(free))]
		}
	}
	return rooms[0].Center
}
