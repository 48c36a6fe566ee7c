// Package state owns a running game: the map, the teams on it and the
// iteration loop that lets every soldier act in turn.
package state

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"skirmish/pkg/engine/world"
	"skirmish/pkg/game/agent"
	"skirmish/pkg/game/config"
	"skirmish/pkg/game/entities"
	"skirmish/pkg/game/events"
	"skirmish/pkg/game/generator"
)

// Placement errors
var (
	ErrNoPlacementRoom = errors.New("no room can hold the team")
	ErrNoFreeCell      = errors.New("no free floor cell left")
)

// maxMessages is how many recent messages the game keeps for display
const maxMessages = 5

// IDAllocator hands out sequential ids starting at 1
type IDAllocator struct {
	last int
}

// Next returns the next id
func (a *IDAllocator) Next() int {
	a.last++
	return a.last
}

// Game represents one simulation run
type Game struct {
	Config config.Config
	Map    *generator.Map
	Teams  []*agent.Team

	// Iteration counts completed iterations
	Iteration int

	Messages []string

	rng    *rand.Rand
	events events.Publisher
}

// NewGame validates cfg, builds the map and puts supplies, boxes and teams
// on it.
func NewGame(cfg config.Config, rng *rand.Rand, pub events.Publisher) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	g := &Game{
		Config:   cfg,
		Messages: make([]string, 0),
		rng:      rng,
	}
	g.events = events.Fanout(events.OrNop(pub), events.PublisherFunc(g.record))

	m, err := generator.FromConfig(cfg, g.events).Generate(rng)
	if err != nil {
		return nil, fmt.Errorf("build map: %w", err)
	}
	g.Map = m

	for _, s := range supplies(cfg) {
		if err := g.placeOnFreeFloor(s); err != nil {
			return nil, fmt.Errorf("place %v: %w", s, err)
		}
	}
	for i := 0; i < cfg.Boxes; i++ {
		if err := g.placeOnFreeFloor(entities.NewBox()); err != nil {
			return nil, fmt.Errorf("place box: %w", err)
		}
	}

	if g.Teams, err = g.buildTeams(); err != nil {
		return nil, err
	}
	if err := g.placeTeams(); err != nil {
		return nil, err
	}
	return g, nil
}

// supplies creates every package the configuration asks for, bullets
// first, then grenades, then health.
func supplies(cfg config.Config) []*entities.Supply {
	var result []*entities.Supply
	for i := 0; i < cfg.Bullets.Packages; i++ {
		result = append(result, entities.NewBulletPackage(cfg.PackageCapacity, cfg.Bullets.MaxDamage))
	}
	for i := 0; i < cfg.Grenades.Packages; i++ {
		result = append(result, entities.NewGrenadePackage(cfg.PackageCapacity, cfg.Grenades.MaxDamage))
	}
	for i := 0; i < cfg.HealthPackages; i++ {
		result = append(result, entities.NewHealthPackage(cfg.HealthRestore))
	}
	return result
}

// buildTeams splits the soldiers into pairs, an offensive soldier first
// and a defensive one second. An odd soldier ends up alone.
func (g *Game) buildTeams() ([]*agent.Team, error) {
	var teamIDs, soldierIDs IDAllocator
	env := agent.Env{Map: g.Map, Rand: g.rng, Events: g.events}
	policies := [agent.MaxTeamSize]agent.Policy{agent.Offensive{}, agent.Defensive{}}

	var teams []*agent.Team
	for remaining := g.Config.Soldiers; remaining > 0; {
		team := agent.NewTeam(teamIDs.Next())
		for _, policy := range policies {
			if remaining == 0 {
				break
			}
			s := agent.NewSoldier(soldierIDs.Next(), team.ID, g.Config.MaxHealth, policy, env)
			if err := team.Add(s); err != nil {
				return nil, fmt.Errorf("team %d: %w", team.ID, err)
			}
			remaining--
		}
		teams = append(teams, team)
	}
	return teams, nil
}

// freeFloor lists the empty Floor cells of room
func (g *Game) freeFloor(room *world.Room) []world.Point {
	var free []world.Point
	for _, p := range room.Floor() {
		c := g.Map.Grid.Cell(p)
		if c.Kind == world.Floor && c.IsEmpty() {
			free = append(free, p)
		}
	}
	return free
}

// placeOnFreeFloor puts o on a random empty floor cell of any room
func (g *Game) placeOnFreeFloor(o world.Occupant) error {
	var free []world.Point
	for _, room := range g.Map.Rooms {
		free = append(free, g.freeFloor(room)...)
	}
	if len(free) == 0 {
		return ErrNoFreeCell
	}
	return g.Map.Grid.Place(free[g.rng.Intn(len(free))], o)
}

// placeTeams puts each team in its own room when possible, sharing rooms
// only once every room already holds a team.
func (g *Game) placeTeams() error {
	taken := mapset.New[*world.Room]()
	for _, team := range g.Teams {
		room := g.pickTeamRoom(team.Len(), taken)
		if room == nil {
			return fmt.Errorf("team %d: %w", team.ID, ErrNoPlacementRoom)
		}
		taken.Put(room)

		free := g.freeFloor(room)
		g.rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })
		for i, s := range team.Soldiers {
			if err := s.PlaceAt(free[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Game) pickTeamRoom(size int, taken mapset.Set[*world.Room]) *world.Room {
	order := g.rng.Perm(len(g.Map.Rooms))
	for _, pass := range []bool{true, false} {
		for _, i := range order {
			room := g.Map.Rooms[i]
			if pass && taken.Has(room) {
				continue
			}
			if len(g.freeFloor(room)) >= size {
				return room
			}
		}
	}
	return nil
}

// Step runs one iteration: hit markers from the previous iteration are
// cleared, every living soldier acts once in team order, then the dead
// are taken off the map and empty teams leave the game.
func (g *Game) Step() error {
	if g.Done() {
		return nil
	}

	for _, s := range g.Soldiers() {
		s.ResetVisualState()
	}

	for _, team := range g.Teams {
		for _, s := range team.Soldiers {
			if !s.Alive() {
				continue
			}
			if err := s.TakeTurn(); err != nil {
				return fmt.Errorf("iteration %d, %v: %w", g.Iteration, s, err)
			}
		}
	}

	g.removeDead()
	g.Iteration++
	return nil
}

func (g *Game) removeDead() {
	teams := g.Teams[:0]
	for _, team := range g.Teams {
		for _, s := range team.RemoveDead() {
			s.RemoveFromMap()
			events.AgentDied(g.events, s.ID, team.ID)
		}
		if !team.Empty() {
			teams = append(teams, team)
		}
	}
	g.Teams = teams
}

// Done reports whether the iteration limit is reached or at most one team
// is left standing.
func (g *Game) Done() bool {
	return g.Iteration >= g.Config.Iterations || len(g.Teams) <= 1
}

// Winner returns the last team standing, or nil
func (g *Game) Winner() *agent.Team {
	if len(g.Teams) == 1 {
		return g.Teams[0]
	}
	return nil
}

// Run steps until Done, calling frame after every iteration
func (g *Game) Run(frame func(g *Game)) error {
	for !g.Done() {
		if err := g.Step(); err != nil {
			return err
		}
		if frame != nil {
			frame(g)
		}
	}
	winner := 0
	if w := g.Winner(); w != nil {
		winner = w.ID
	}
	events.GameOver(g.events, g.Iteration, winner)
	return nil
}

// Soldiers returns every soldier still in the game, team by team
func (g *Game) Soldiers() []*agent.Soldier {
	var result []*agent.Soldier
	for _, team := range g.Teams {
		result = append(result, team.Soldiers...)
	}
	return result
}

// Events returns the publisher the game reports to
func (g *Game) Events() events.Publisher {
	return g.events
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// record keeps info level events as display messages
func (g *Game) record(e events.Event) {
	if e.Severity < events.SeverityInfo || e.Actor == "" {
		return
	}
	g.AddMessage(fmt.Sprintf("%s: %s", e.Actor, e.Message))
}
