package generator

import (
	"fmt"
	"math/rand"

	"github.com/paulmach/orb"

	"skirmish/pkg/engine/world"
)

// Constants for room placement
const (
	minRoomSize   = 7
	borderMargin  = 2 // free cells kept between a room and the grid edge
	roomPadding   = 4 // per-axis padding for the overlap test
	roomAttempts  = 500
	layoutRetries = 50
)

// placeRooms samples rooms until count of them fit, then carves them as
// Floor. A layout that stalls is discarded and sampled again from scratch.
func placeRooms(grid *world.Grid, count int, rng *rand.Rand) ([]*world.Room, error) {
	for retry := 0; retry < layoutRetries; retry++ {
		rooms := sampleLayout(grid, count, rng)
		if rooms == nil {
			continue
		}
		for _, r := range rooms {
			carveRoom(grid, r)
		}
		return rooms, nil
	}
	return nil, fmt.Errorf("%d rooms on a %dx%d grid: %w", count, grid.Height(), grid.Width(), ErrRoomPlacement)
}

// sampleLayout returns nil if some room could not be placed within
// roomAttempts candidates.
func sampleLayout(grid *world.Grid, count int, rng *rand.Rand) []*world.Room {
	rooms := make([]*world.Room, 0, count)
	for len(rooms) < count {
		placed := false
		for attempt := 0; attempt < roomAttempts; attempt++ {
			candidate := sampleRoom(grid, rng)
			if fits(grid, candidate, rooms) {
				rooms = append(rooms, candidate)
				placed = true
				break
			}
		}
		if !placed {
			return nil
		}
	}
	return rooms
}

// sampleRoom draws one candidate. Size and center are drawn per axis from
// the grid extent along that axis.
func sampleRoom(grid *world.Grid, rng *rand.Rand) *world.Room {
	maxHeight := grid.Height() - 1
	maxWidth := grid.Width() - 1

	height := roomSize(maxHeight, rng)
	width := roomSize(maxWidth, rng)
	center := world.Pt(
		roomCenter(width, maxWidth, rng),
		roomCenter(height, maxHeight, rng),
	)
	return world.NewRoom(height, width, center)
}

func roomSize(max int, rng *rand.Rand) int {
	return minRoomSize + rng.Intn(max+1)%(max/5)
}

func roomCenter(size, max int, rng *rand.Rand) int {
	return 1 + size/2 + rng.Intn(max+1)%(max-size-2)
}

// fits rejects candidates too close to the border or to an accepted room
func fits(grid *world.Grid, candidate *world.Room, accepted []*world.Room) bool {
	b := candidate.Bound()
	inner := placementArea(grid)
	if !inner.Contains(b.Min) || !inner.Contains(b.Max) {
		return false
	}
	for _, other := range accepted {
		if candidate.PaddedOverlaps(other, roomPadding) {
			return false
		}
	}
	return true
}

// placementArea is the inclusive cell extent rooms may cover
func placementArea(grid *world.Grid) orb.Bound {
	return orb.Bound{
		Min: orb.Point{borderMargin, borderMargin},
		Max: orb.Point{float64(grid.Width() - 1 - borderMargin), float64(grid.Height() - 1 - borderMargin)},
	}
}

func carveRoom(grid *world.Grid, r *world.Room) {
	x0, y0, x1, y1 := r.Bounds()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p := world.Pt(x, y)
			if grid.SetKind(p, world.Floor) {
				r.AppendFloor(p)
			}
		}
	}
}
