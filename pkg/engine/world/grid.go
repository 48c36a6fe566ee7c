package world

import (
	"errors"
	"fmt"
	"strings"
)

// Grid errors
var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrOccupied    = errors.New("cell already occupied")
	ErrEmpty       = errors.New("cell is empty")
)

// Grid is the rectangular map. It owns every Cell; cells are stored
// row-major so Index(p) is also the index of the matching graph node.
type Grid struct {
	cells  []Cell
	height int
	width  int
}

// NewGrid creates a grid with walls on the border and open space inside
func NewGrid(height, width int) *Grid {
	g := &Grid{}
	g.Build(height, width)
	return g
}

// Build initializes the grid with the given dimensions
func (g *Grid) Build(height, width int) {
	if height <= 0 || width <= 0 {
		panic("Grid dimensions must be positive")
	}

	g.height = height
	g.width = width
	g.cells = make([]Cell, height*width)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := &g.cells[y*width+x]
			c.Point = Point{X: x, Y: y}
			c.Kind = Space
			if g.IsBorder(c.Point) {
				c.Kind = Wall
			}
		}
	}
}

// Height returns the number of rows in the grid
func (g *Grid) Height() int {
	return g.height
}

// Width returns the number of columns in the grid
func (g *Grid) Width() int {
	return g.width
}

// Size returns the number of cells
func (g *Grid) Size() int {
	return len(g.cells)
}

// InBounds checks if a point lies within the grid
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// IsBorder checks if a point is on the outermost row or column
func (g *Grid) IsBorder(p Point) bool {
	return g.InBounds(p) && (p.X == 0 || p.Y == 0 || p.X == g.width-1 || p.Y == g.height-1)
}

// Index returns the row-major index of p, or -1 when out of bounds
func (g *Grid) Index(p Point) int {
	if !g.InBounds(p) {
		return -1
	}
	return p.Y*g.width + p.X
}

// PointOf is the inverse of Index
func (g *Grid) PointOf(index int) Point {
	return Point{X: index % g.width, Y: index / g.width}
}

// Cell returns the cell at p, or nil if out of bounds
func (g *Grid) Cell(p Point) *Cell {
	i := g.Index(p)
	if i < 0 {
		return nil
	}
	return &g.cells[i]
}

// Kind returns the kind of the cell at p; out of bounds reads as Wall
func (g *Grid) Kind(p Point) CellKind {
	c := g.Cell(p)
	if c == nil {
		return Wall
	}
	return c.Kind
}

// SetKind reclassifies the cell at p. Border cells stay Wall.
func (g *Grid) SetKind(p Point, kind CellKind) bool {
	c := g.Cell(p)
	if c == nil || g.IsBorder(p) {
		return false
	}
	c.Kind = kind
	return true
}

// Occupant returns whatever stands on p
func (g *Grid) Occupant(p Point) Occupant {
	c := g.Cell(p)
	if c == nil {
		return nil
	}
	return c.Occupant
}

// Place puts o on the empty cell at p
func (g *Grid) Place(p Point, o Occupant) error {
	c := g.Cell(p)
	if c == nil {
		return fmt.Errorf("place at %v: %w", p, ErrOutOfBounds)
	}
	if !c.IsEmpty() {
		return fmt.Errorf("place at %v: %w", p, ErrOccupied)
	}
	c.Occupant = o
	return nil
}

// Remove clears the occupant at p and returns it
func (g *Grid) Remove(p Point) (Occupant, error) {
	c := g.Cell(p)
	if c == nil {
		return nil, fmt.Errorf("remove at %v: %w", p, ErrOutOfBounds)
	}
	if c.IsEmpty() {
		return nil, fmt.Errorf("remove at %v: %w", p, ErrEmpty)
	}
	o := c.Occupant
	c.Occupant = nil
	return o, nil
}

// Move relocates the occupant of from onto the empty cell to
func (g *Grid) Move(from, to Point) error {
	dst := g.Cell(to)
	if dst == nil {
		return fmt.Errorf("move to %v: %w", to, ErrOutOfBounds)
	}
	if !dst.IsEmpty() {
		return fmt.Errorf("move to %v: %w", to, ErrOccupied)
	}
	o, err := g.Remove(from)
	if err != nil {
		return err
	}
	dst.Occupant = o
	return nil
}

// Neighbours returns the in-bounds orthogonal neighbours of p in
// North, East, South, West order
func (g *Grid) Neighbours(p Point) []Point {
	result := make([]Point, 0, 4)
	for _, dir := range AllDirections() {
		n := dir.Walk(p, 1)
		if g.InBounds(n) {
			result = append(result, n)
		}
	}
	return result
}

// ForEachCell iterates over all cells in row-major order
func (g *Grid) ForEachCell(fn func(c *Cell)) {
	for i := range g.cells {
		fn(&g.cells[i])
	}
}

// Count returns how many cells have the given kind
func (g *Grid) Count(kind CellKind) int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Kind == kind {
			n++
		}
	}
	return n
}

// Row returns the tokens of row y
func (g *Grid) Row(y int) []string {
	tokens := make([]string, g.width)
	for x := 0; x < g.width; x++ {
		tokens[x] = g.cells[y*g.width+x].Token()
	}
	return tokens
}

// String renders the grid one row per line, tokens separated by '|'
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		sb.WriteString(strings.Join(g.Row(y), "|"))
		sb.WriteByte('\n')
	}
	return sb.String()
}
