package generator

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"skirmish/pkg/engine/graph"
	"skirmish/pkg/engine/world"
	"skirmish/pkg/game/events"
)

// roomPair is an unordered pair of room indices, stored low index first
type roomPair struct{ a, b int }

func pairOf(a, b int) roomPair {
	if a > b {
		a, b = b, a
	}
	return roomPair{a, b}
}

// carvable lets corridors run through anything but walls
func carvable(grid *world.Grid) graph.Passable {
	return func(p world.Point) bool {
		return grid.Kind(p) != world.Wall
	}
}

// connectRooms runs one full search per unordered room pair and carves
// the resulting chain into the grid.
func (g *RoomsAndCorridors) connectRooms(m *Map) error {
	search := graph.NewSearch(m.Graph, carvable(m.Grid))
	connected := mapset.New[roomPair]()

	for i, room := range m.Rooms {
		for j, other := range m.Rooms {
			if i == j || connected.Has(pairOf(i, j)) {
				continue
			}

			search.Reset()
			if err := search.SetStart(room.Center); err != nil {
				return err
			}
			if err := search.SetTarget(other.Center); err != nil {
				return err
			}
			if err := search.Run(); err != nil {
				return fmt.Errorf("room %d to room %d: %w: %w", i, j, ErrNoPath, err)
			}

			chain := search.Path()
			markPathAndEntrances(m.Grid, chain)
			connected.Put(pairOf(i, j))
			m.Corridors++
			events.RoomConnected(g.events, i, j, len(chain))
		}
	}
	return nil
}

// markPathAndEntrances walks chain from the target back to (excluding) the
// start. Space becomes Path; a Floor cell next to a Path cell in the chain
// becomes an Entrance.
func markPathAndEntrances(grid *world.Grid, chain []world.Point) {
	var last *world.Cell
	for i := len(chain) - 1; i > 0; i-- {
		cell := grid.Cell(chain[i])
		if cell.Kind == world.Space {
			grid.SetKind(cell.Point, world.Path)
		}
		if last != nil {
			switch {
			case last.Kind == world.Floor && cell.Kind == world.Path:
				grid.SetKind(last.Point, world.Entrance)
			case cell.Kind == world.Floor && last.Kind == world.Path:
				grid.SetKind(cell.Point, world.Entrance)
			}
		}
		last = cell
	}
}
