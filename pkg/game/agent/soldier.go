// Package agent implements the soldiers: their inventory and health, the
// role policies that pick what to look for, and the per-turn decision
// machine that drives each soldier's private search.
package agent

import (
	"fmt"
	"math/rand"
	"strconv"

	"skirmish/pkg/engine/graph"
	"skirmish/pkg/engine/world"
	"skirmish/pkg/game/events"
	"skirmish/pkg/game/generator"
)

// State is what a soldier is currently looking for
type State int

const (
	Discovering State = iota
	LookingForBullets
	LookingForGrenades
	LookingForHealth
)

func (s State) String() string {
	switch s {
	case Discovering:
		return "Discovering"
	case LookingForBullets:
		return "LookingForBullets"
	case LookingForGrenades:
		return "LookingForGrenades"
	case LookingForHealth:
		return "LookingForHealth"
	default:
		return "Unknown"
	}
}

// VisualState marks a soldier hit during the current iteration
type VisualState int

const (
	VisualNone VisualState = iota
	ShotAt
	BlownUp
)

// Symbols shown instead of the soldier id while a visual state is set
const (
	SymbolShotAt  = "!"
	SymbolBlownUp = "?"
)

// Env is the shared world every soldier acts in
type Env struct {
	Map    *generator.Map
	Rand   *rand.Rand
	Events events.Publisher
}

// Soldier is one agent on the map. It owns a private search over the
// shared graph; everything else it sees through the grid.
type Soldier struct {
	ID        int
	Team      int
	Health    int
	MaxHealth int

	Bullets       int
	BulletDamage  int
	Grenades      int
	GrenadeDamage int

	State  State
	Visual VisualState

	policy Policy
	env    Env
	search *graph.Search

	pos         world.Point
	placed      bool
	cameFrom    world.Point
	hasCameFrom bool
}

// NewSoldier creates a soldier at full health with no ammunition. It is
// not on the map until PlaceAt is called.
func NewSoldier(id, team, maxHealth int, policy Policy, env Env) *Soldier {
	if env.Rand == nil {
		env.Rand = rand.New(rand.NewSource(int64(id)))
	}
	env.Events = events.OrNop(env.Events)

	s := &Soldier{
		ID:        id,
		Team:      team,
		Health:    maxHealth,
		MaxHealth: maxHealth,
		State:     Discovering,
		policy:    policy,
		env:       env,
	}
	s.search = graph.NewSearch(env.Map.Graph, s.walkable)
	return s
}

func (s *Soldier) walkable(p world.Point) bool {
	return s.env.Map.Grid.Kind(p).Walkable()
}

// Policy returns the soldier's role
func (s *Soldier) Policy() Policy {
	return s.policy
}

// Position returns the cell the soldier stands on
func (s *Soldier) Position() world.Point {
	return s.pos
}

// Placed reports whether the soldier is on the map
func (s *Soldier) Placed() bool {
	return s.placed
}

// PlaceAt puts the soldier on the empty cell p
func (s *Soldier) PlaceAt(p world.Point) error {
	if err := s.env.Map.Grid.Place(p, s); err != nil {
		return fmt.Errorf("soldier %d: %w", s.ID, err)
	}
	s.pos = p
	s.placed = true
	return nil
}

// RemoveFromMap clears the soldier's cell
func (s *Soldier) RemoveFromMap() {
	if !s.placed {
		return
	}
	if s.env.Map.Grid.Occupant(s.pos) == s {
		_, _ = s.env.Map.Grid.Remove(s.pos)
	}
	s.placed = false
}

// Symbol implements world.Occupant
func (s *Soldier) Symbol() string {
	switch s.Visual {
	case ShotAt:
		return SymbolShotAt
	case BlownUp:
		return SymbolBlownUp
	default:
		return strconv.Itoa(s.ID)
	}
}

func (s *Soldier) String() string {
	return fmt.Sprintf("soldier %d (team %d, %s)", s.ID, s.Team, s.policy.Name())
}

// Alive reports whether the soldier has health left
func (s *Soldier) Alive() bool {
	return s.Health > 0
}

// TakeDamage lowers health, never below zero, and records how the soldier
// was hit for the next frame.
func (s *Soldier) TakeDamage(amount int, visual VisualState) {
	s.Health -= amount
	if s.Health < 0 {
		s.Health = 0
	}
	s.Visual = visual
}

// Heal restores health up to MaxHealth
func (s *Soldier) Heal(amount int) {
	s.Health += amount
	if s.Health > s.MaxHealth {
		s.Health = s.MaxHealth
	}
}

// ResetVisualState clears the hit marker
func (s *Soldier) ResetVisualState() {
	s.Visual = VisualNone
}

// HasVisualState reports whether the soldier was hit this iteration
func (s *Soldier) HasVisualState() bool {
	return s.Visual != VisualNone
}

// Teammate reports whether other fights on the same side
func (s *Soldier) Teammate(other *Soldier) bool {
	return s.Team == other.Team
}

// NoAmmunition is true with neither bullets nor grenades
func (s *Soldier) NoAmmunition() bool {
	return s.Bullets == 0 && s.Grenades == 0
}

// Target returns the cell the soldier is heading for, if any
func (s *Soldier) Target() (world.Point, bool) {
	return s.search.Target()
}

// Search exposes the soldier's private search for inspection
func (s *Soldier) Search() *graph.Search {
	return s.search
}
