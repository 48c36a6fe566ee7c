package world

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point is an integer grid coordinate. X is the column, Y the row.
type Point struct {
	X, Y int
}

// Pt is a convenience constructor for Point.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns the component-wise sum of two points.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Mul scales both components by n.
func (p Point) Mul(n int) Point {
	return Point{X: p.X * n, Y: p.Y * n}
}

// Orb converts the point into planar geometry space.
func (p Point) Orb() orb.Point {
	return orb.Point{float64(p.X), float64(p.Y)}
}

// Adjacent reports whether other is one orthogonal step away.
func (p Point) Adjacent(other Point) bool {
	dx, dy := abs(p.X-other.X), abs(p.Y-other.Y)
	return dx+dy == 1
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return planar.Distance(a.Orb(), b.Orb())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
