// Package generator builds the dungeon: rectangular rooms placed by
// rejection sampling, joined pairwise by corridors carved with the graph
// search.
package generator

import (
	"errors"
	"fmt"
	"math/rand"

	"skirmish/pkg/engine/graph"
	"skirmish/pkg/engine/world"
	"skirmish/pkg/game/config"
	"skirmish/pkg/game/events"
)

// Build errors
var (
	ErrRoomPlacement = errors.New("could not place every room")
	ErrNoPath        = errors.New("rooms cannot be connected")
)

// Map is a finished dungeon. The graph shares the grid's indexing and is
// meant to be shared read-only by every search run on the map.
type Map struct {
	Grid  *world.Grid
	Rooms []*world.Room
	Graph *graph.Graph
	// Corridors counts the room pairs that were joined
	Corridors int
}

// RoomAt returns the room containing p, or nil
func (m *Map) RoomAt(p world.Point) *world.Room {
	for _, r := range m.Rooms {
		if r.Contains(p) {
			return r
		}
	}
	return nil
}

// MapGenerator is an interface for map generation algorithms
type MapGenerator interface {
	Generate(rng *rand.Rand) (*Map, error)
	Name() string
}

// RoomsAndCorridors is the default MapGenerator
type RoomsAndCorridors struct {
	Height int
	Width  int
	Rooms  int

	events events.Publisher
}

// New creates a generator for a height × width grid holding rooms rooms
func New(height, width, rooms int, pub events.Publisher) *RoomsAndCorridors {
	return &RoomsAndCorridors{
		Height: height,
		Width:  width,
		Rooms:  rooms,
		events: events.OrNop(pub),
	}
}

// FromConfig creates a generator from the map section of cfg
func FromConfig(cfg config.Config, pub events.Publisher) *RoomsAndCorridors {
	return New(cfg.Height, cfg.Width, cfg.Rooms, pub)
}

// Name returns the name of this generator
func (g *RoomsAndCorridors) Name() string {
	return "Rooms and Corridors"
}

func (g *RoomsAndCorridors) validate() error {
	if g.Height < config.MinDimension || g.Width < config.MinDimension {
		return fmt.Errorf("%w: grid %dx%d is smaller than %dx%d",
			config.ErrInvalid, g.Height, g.Width, config.MinDimension, config.MinDimension)
	}
	if g.Rooms <= 0 {
		return fmt.Errorf("%w: rooms must be positive, got %d", config.ErrInvalid, g.Rooms)
	}
	return nil
}

// Generate builds a new map. The same rng state always yields the same
// rooms and corridors.
func (g *RoomsAndCorridors) Generate(rng *rand.Rand) (*Map, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}

	grid := world.NewGrid(g.Height, g.Width)

	rooms, err := placeRooms(grid, g.Rooms, rng)
	if err != nil {
		return nil, err
	}

	m := &Map{
		Grid:  grid,
		Rooms: rooms,
		Graph: graph.New(grid),
	}

	if err := g.connectRooms(m); err != nil {
		return nil, err
	}

	events.MapBuilt(g.events, grid.Height(), grid.Width(), len(rooms), m.Corridors)
	return m, nil
}
