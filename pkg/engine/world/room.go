package world

import (
	"math"

	"github.com/paulmach/orb"
)

// Room is an axis-aligned rectangle of floor cells. The floor slice holds
// positions into the owning Grid, never the cells themselves.
type Room struct {
	Height int
	Width  int
	Center Point

	floor []Point
}

// NewRoom creates a room of the given size around center
func NewRoom(height, width int, center Point) *Room {
	return &Room{Height: height, Width: width, Center: center}
}

// Bounds returns the half-open rectangle [x0,x1) × [y0,y1) the room covers
func (r *Room) Bounds() (x0, y0, x1, y1 int) {
	x0 = r.Center.X - (r.Width+1)/2
	x1 = r.Center.X + r.Width/2
	y0 = r.Center.Y - (r.Height+1)/2
	y1 = r.Center.Y + r.Height/2
	return
}

// Bound returns the inclusive cell extent of the room as planar geometry
func (r *Room) Bound() orb.Bound {
	x0, y0, x1, y1 := r.Bounds()
	return orb.Bound{
		Min: orb.Point{float64(x0), float64(y0)},
		Max: orb.Point{float64(x1 - 1), float64(y1 - 1)},
	}
}

// Contains reports whether p lies inside the room rectangle
func (r *Room) Contains(p Point) bool {
	x0, y0, x1, y1 := r.Bounds()
	return p.X >= x0 && p.X < x1 && p.Y >= y0 && p.Y < y1
}

// PaddedOverlaps reports whether the two rooms come closer than pad cells
// on both axes. Each axis is tested on its own; both must overlap.
func (r *Room) PaddedOverlaps(other *Room, pad int) bool {
	dx := math.Abs(float64(r.Center.X - other.Center.X))
	dy := math.Abs(float64(r.Center.Y - other.Center.Y))
	overlapX := float64(r.Width)/2+float64(other.Width)/2 > dx-float64(pad)
	overlapY := float64(r.Height)/2+float64(other.Height)/2 > dy-float64(pad)
	return overlapX && overlapY
}

// AppendFloor records p as one of the room's floor cells
func (r *Room) AppendFloor(p Point) {
	r.floor = append(r.floor, p)
}

// Floor returns the room's floor positions in carving order
func (r *Room) Floor() []Point {
	return r.floor
}

// Area returns the number of floor cells
func (r *Room) Area() int {
	return len(r.floor)
}
