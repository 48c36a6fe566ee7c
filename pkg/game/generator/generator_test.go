package generator

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"

	"skirmish/pkg/engine/world"
	"skirmish/pkg/game/config"
	"skirmish/pkg/game/events"
)

func generate(t *testing.T, height, width, rooms int, seed int64) *Map {
	t.Helper()
	m, err := New(height, width, rooms, nil).Generate(rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return m
}

// reachableFrom counts walkable cells reachable from start via N/E/S/W
func reachableFrom(grid *world.Grid, start world.Point) mapset.Set[world.Point] {
	visited := mapset.New[world.Point]()
	queue := []world.Point{start}
	visited.Put(start)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, n := range grid.Neighbours(p) {
			if grid.Kind(n).Walkable() && !visited.Has(n) {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return visited
}

func TestGenerate_RendersFullGrid(t *testing.T) {
	m := generate(t, 40, 40, 4, 1)

	lines := strings.Split(strings.TrimSuffix(m.Grid.String(), "\n"), "\n")
	require.Len(t, lines, 40)
	for _, line := range lines {
		assert.Len(t, strings.Split(line, "|"), 40)
	}
	assert.Len(t, m.Rooms, 4)
	assert.Equal(t, 6, m.Corridors)
	assert.Equal(t, m.Grid.Size(), m.Graph.Len())
}

func TestGenerate_BorderStaysWall(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		m := generate(t, 40, 50, 4, seed)
		m.Grid.ForEachCell(func(c *world.Cell) {
			if m.Grid.IsBorder(c.Point) {
				assert.Equal(t, world.Wall, c.Kind, "seed %d cell %v", seed, c.Point)
			}
		})
	}
}

func TestGenerate_RoomsRespectPaddingAndBorder(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		m := generate(t, 40, 40, 4, seed)
		for i, r := range m.Rooms {
			x0, y0, x1, y1 := r.Bounds()
			assert.GreaterOrEqual(t, x0, 2)
			assert.GreaterOrEqual(t, y0, 2)
			assert.LessOrEqual(t, x1, m.Grid.Width()-2)
			assert.LessOrEqual(t, y1, m.Grid.Height()-2)
			assert.Equal(t, r.Height*r.Width, r.Area())

			for j, other := range m.Rooms {
				if i != j {
					assert.False(t, r.PaddedOverlaps(other, roomPadding), "seed %d rooms %d/%d", seed, i, j)
				}
			}
			for _, p := range r.Floor() {
				k := m.Grid.Kind(p)
				assert.True(t, k == world.Floor || k == world.Entrance, "room floor %v is %v", p, k)
			}
		}
	}
}

func TestGenerate_EverythingWalkableIsConnected(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		m := generate(t, 40, 40, 4, seed)
		reached := reachableFrom(m.Grid, m.Rooms[0].Center)

		walkable := 0
		m.Grid.ForEachCell(func(c *world.Cell) {
			if c.Kind.Walkable() {
				walkable++
			}
		})
		assert.Equal(t, walkable, reached.Size(), "seed %d", seed)
		for _, r := range m.Rooms {
			assert.True(t, reached.Has(r.Center))
		}
		assert.Positive(t, m.Grid.Count(world.Entrance), "seed %d", seed)
	}
}

func TestGenerate_SameSeedSameMap(t *testing.T) {
	a := generate(t, 45, 60, 5, 42)
	b := generate(t, 45, 60, 5, 42)
	assert.Equal(t, a.Grid.String(), b.Grid.String())
	for i := range a.Rooms {
		assert.Equal(t, a.Rooms[i].Center, b.Rooms[i].Center)
	}
}

func TestGenerate_PublishesEvents(t *testing.T) {
	sink := events.NewMemorySink()
	_, err := New(40, 40, 4, sink).Generate(rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	assert.Len(t, sink.OfType(events.EventRoomConnected), 6)
	built := sink.OfType(events.EventMapBuilt)
	require.Len(t, built, 1)
	assert.Equal(t, 4, built[0].Fields["rooms"])
}

func TestGenerate_RejectsBadConfig(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := New(10, 40, 2, nil).Generate(rng)
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = New(40, 40, 0, nil).Generate(rng)
	assert.ErrorIs(t, err, config.ErrInvalid)

	// two rooms can never be far enough apart on the smallest grid
	_, err = New(config.MinDimension, config.MinDimension, 2, nil).Generate(rng)
	assert.ErrorIs(t, err, ErrRoomPlacement)
}

func TestFromConfig(t *testing.T) {
	g := FromConfig(config.Default(), nil)
	assert.Equal(t, 40, g.Height)
	assert.Equal(t, 4, g.Rooms)
	assert.Equal(t, "Rooms and Corridors", g.Name())
}

func TestMarkPathAndEntrances(t *testing.T) {
	grid := world.NewGrid(5, 8)
	for x := 1; x <= 2; x++ {
		grid.SetKind(world.Pt(x, 2), world.Floor)
	}
	for x := 5; x <= 6; x++ {
		grid.SetKind(world.Pt(x, 2), world.Floor)
	}

	var chain []world.Point
	for x := 1; x <= 6; x++ {
		chain = append(chain, world.Pt(x, 2))
	}
	markPathAndEntrances(grid, chain)

	got := make([]world.CellKind, 0, len(chain))
	for _, p := range chain {
		got = append(got, grid.Kind(p))
	}
	assert.Equal(t, []world.CellKind{
		world.Floor, world.Entrance, world.Path, world.Path, world.Entrance, world.Floor,
	}, got)
}

func TestMap_RoomAt(t *testing.T) {
	m := generate(t, 40, 40, 4, 7)
	for _, r := range m.Rooms {
		assert.Same(t, r, m.RoomAt(r.Center))
	}
	assert.Nil(t, m.RoomAt(world.Pt(0, 0)))
}

func TestFits_KeepsBorderMargin(t *testing.T) {
	grid := world.NewGrid(20, 20)
	cases := []struct {
		center world.Point
		ok     bool
	}{
		{world.Pt(5, 5), false},
		{world.Pt(6, 6), true},
		{world.Pt(15, 15), true},
		{world.Pt(16, 15), false},
		{world.Pt(15, 16), false},
	}
	for _, tc := range cases {
		room := world.NewRoom(7, 7, tc.center)
		assert.Equal(t, tc.ok, fits(grid, room, nil), "center %v", tc.center)
	}

	accepted := []*world.Room{world.NewRoom(7, 7, world.Pt(6, 6))}
	assert.False(t, fits(grid, world.NewRoom(7, 7, world.Pt(12, 12)), accepted))
}
