// Package world provides the grid primitives the simulation runs on:
// points, cell classification, the grid itself and rectangular rooms.
package world

// CellKind classifies a grid cell
type CellKind int

// Cell kinds
const (
	Space CellKind = iota
	Wall
	Path
	Floor
	Entrance
)

// Tokens used when rendering each kind
const (
	TokenSpace    = "_"
	TokenWall     = "W"
	TokenPath     = "P"
	TokenFloor    = "F"
	TokenEntrance = "E"
)

// String returns the name of the kind
func (k CellKind) String() string {
	switch k {
	case Space:
		return "Space"
	case Wall:
		return "Wall"
	case Path:
		return "Path"
	case Floor:
		return "Floor"
	case Entrance:
		return "Entrance"
	default:
		return "Unknown"
	}
}

// Token returns the fixed single-character token for the kind
func (k CellKind) Token() string {
	switch k {
	case Wall:
		return TokenWall
	case Path:
		return TokenPath
	case Floor:
		return TokenFloor
	case Entrance:
		return TokenEntrance
	default:
		return TokenSpace
	}
}

// Walkable returns true for kinds a soldier can stand on
func (k CellKind) Walkable() bool {
	return k == Path || k == Floor || k == Entrance
}

// Occupant is anything that can stand on a cell: a soldier, a supply
// package or a box. Symbol overrides the cell token when rendering.
type Occupant interface {
	Symbol() string
}

// Cell is a single grid square
type Cell struct {
	Kind     CellKind
	Point    Point
	Occupant Occupant
}

// IsEmpty returns true if nothing stands on the cell
func (c *Cell) IsEmpty() bool {
	return c.Occupant == nil
}

// IsTraversable returns true if a soldier could step onto the cell right now
func (c *Cell) IsTraversable() bool {
	return c.Kind.Walkable() && c.IsEmpty()
}

// Token returns the rendered token: the occupant's symbol, or the kind token
func (c *Cell) Token() string {
	if c.Occupant != nil {
		return c.Occupant.Symbol()
	}
	return c.Kind.Token()
}
