package state

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skirmish/pkg/engine/world"
	"skirmish/pkg/game/agent"
	"skirmish/pkg/game/config"
	"skirmish/pkg/game/entities"
	"skirmish/pkg/game/events"
	"skirmish/pkg/game/generator"
)

func newGame(t *testing.T, cfg config.Config) (*Game, *events.MemorySink) {
	t.Helper()
	sink := events.NewMemorySink()
	g, err := NewGame(cfg, rand.New(rand.NewSource(cfg.Seed)), sink)
	require.NoError(t, err)
	return g, sink
}

func countOccupants(grid *world.Grid) map[string]int {
	counts := make(map[string]int)
	grid.ForEachCell(func(c *world.Cell) {
		switch o := c.Occupant.(type) {
		case *entities.Supply:
			counts[o.Kind.String()]++
		case *entities.Box:
			counts["box"]++
		case *agent.Soldier:
			counts["soldier"]++
		}
	})
	return counts
}

func TestIDAllocator(t *testing.T) {
	var ids IDAllocator
	assert.Equal(t, 1, ids.Next())
	assert.Equal(t, 2, ids.Next())
	assert.Equal(t, 3, ids.Next())
}

func TestNewGame_PlacesEverything(t *testing.T) {
	cfg := config.Default()
	g, _ := newGame(t, cfg)

	require.Len(t, g.Teams, 2)
	for i, team := range g.Teams {
		assert.Equal(t, i+1, team.ID)
		require.Equal(t, 2, team.Len())
		assert.IsType(t, agent.Offensive{}, team.Soldiers[0].Policy())
		assert.IsType(t, agent.Defensive{}, team.Soldiers[1].Policy())
	}
	for i, s := range g.Soldiers() {
		assert.Equal(t, i+1, s.ID)
		assert.True(t, s.Placed())
		assert.Same(t, s, g.Map.Grid.Occupant(s.Position()))
		assert.Equal(t, cfg.MaxHealth, s.Health)
	}

	counts := countOccupants(g.Map.Grid)
	assert.Equal(t, cfg.Bullets.Packages, counts["bullets"])
	assert.Equal(t, cfg.Grenades.Packages, counts["grenades"])
	assert.Equal(t, cfg.HealthPackages, counts["health"])
	assert.Equal(t, cfg.Boxes, counts["box"])
	assert.Equal(t, cfg.Soldiers, counts["soldier"])
}

func TestNewGame_TeamsStartInSeparateRooms(t *testing.T) {
	g, _ := newGame(t, config.Default())
	first := g.Map.RoomAt(g.Teams[0].Soldiers[0].Position())
	second := g.Map.RoomAt(g.Teams[1].Soldiers[0].Position())
	require.NotNil(t, first)
	assert.NotSame(t, first, second)
	assert.Same(t, first, g.Map.RoomAt(g.Teams[0].Soldiers[1].Position()))
}

func TestNewGame_OddSoldierCount(t *testing.T) {
	cfg := config.Default()
	cfg.Soldiers = 3
	g, _ := newGame(t, cfg)
	require.Len(t, g.Teams, 2)
	assert.Equal(t, 1, g.Teams[1].Len())
	assert.IsType(t, agent.Offensive{}, g.Teams[1].Soldiers[0].Policy())
}

func TestNewGame_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Rooms = 0
	_, err := NewGame(cfg, nil, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestNewGame_NoPlacementRoom(t *testing.T) {
	cfg := config.Default()
	m, err := generator.FromConfig(cfg, nil).Generate(rand.New(rand.NewSource(cfg.Seed)))
	require.NoError(t, err)

	supplies := cfg.Bullets.Packages + cfg.Grenades.Packages + cfg.HealthPackages
	cfg.Boxes = m.Grid.Count(world.Floor) - supplies - 1

	_, err = NewGame(cfg, rand.New(rand.NewSource(cfg.Seed)), nil)
	assert.ErrorIs(t, err, ErrNoPlacementRoom)

	cfg.Boxes++
	cfg.Boxes++
	_, err = NewGame(cfg, rand.New(rand.NewSource(cfg.Seed)), nil)
	assert.ErrorIs(t, err, ErrNoFreeCell)
}

func TestStep_KeepsOneOccupantPerSoldier(t *testing.T) {
	g, _ := newGame(t, config.Default())
	for i := 0; i < 30 && !g.Done(); i++ {
		require.NoError(t, g.Step())
		assert.Equal(t, i+1, g.Iteration)
		for _, s := range g.Soldiers() {
			assert.Same(t, s, g.Map.Grid.Occupant(s.Position()))
			assert.True(t, g.Map.Grid.Kind(s.Position()).Walkable())
		}
		assert.Equal(t, len(g.Soldiers()), countOccupants(g.Map.Grid)["soldier"])
	}
}

func TestStep_RemovesDeadSoldiers(t *testing.T) {
	g, sink := newGame(t, config.Default())
	victim := g.Teams[0].Soldiers[1]
	at := victim.Position()
	victim.TakeDamage(victim.MaxHealth, agent.ShotAt)

	require.NoError(t, g.Step())
	assert.Equal(t, 1, g.Teams[0].Len())
	assert.Nil(t, g.Map.Grid.Occupant(at))

	died := sink.OfType(events.EventAgentDied)
	require.Len(t, died, 1)
	assert.Equal(t, events.SoldierActor(victim.ID), died[0].Actor)
	assert.Contains(t, g.Messages, events.SoldierActor(victim.ID)+": soldier died")
}

func TestStep_LastTeamStandingWins(t *testing.T) {
	g, sink := newGame(t, config.Default())
	for _, s := range g.Teams[1].Soldiers {
		s.TakeDamage(s.MaxHealth, agent.BlownUp)
	}

	require.NoError(t, g.Run(nil))
	assert.True(t, g.Done())
	require.NotNil(t, g.Winner())
	assert.Equal(t, 1, g.Winner().ID)
	assert.Equal(t, 1, g.Iteration)

	over := sink.OfType(events.EventGameOver)
	require.Len(t, over, 1)
	assert.Equal(t, 1, over[0].Fields["winner"])
}

func TestRun_StopsAtIterationLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Iterations = 15
	g, _ := newGame(t, cfg)

	frames := 0
	require.NoError(t, g.Run(func(*Game) { frames++ }))
	assert.True(t, g.Done())
	assert.LessOrEqual(t, g.Iteration, 15)
	assert.Equal(t, g.Iteration, frames)
}

func TestRun_SameSeedSameGame(t *testing.T) {
	play := func() string {
		cfg := config.Default()
		cfg.Iterations = 25
		g, _ := newGame(t, cfg)
		require.NoError(t, g.Run(nil))
		return g.Map.Grid.String()
	}
	assert.Equal(t, play(), play())
}

func TestGame_RendersFortyByForty(t *testing.T) {
	g, _ := newGame(t, config.Default())
	require.NoError(t, g.Step())

	lines := strings.Split(strings.TrimSuffix(g.Map.Grid.String(), "\n"), "\n")
	require.Len(t, lines, 40)
	for _, line := range lines {
		assert.Len(t, strings.Split(line, "|"), 40)
	}
}

func TestAddMessage_KeepsRecent(t *testing.T) {
	g := &Game{}
	for i := 0; i < 8; i++ {
		g.AddMessage(string(rune('a' + i)))
	}
	assert.Equal(t, []string{"d", "e", "f", "g", "h"}, g.Messages)
}
