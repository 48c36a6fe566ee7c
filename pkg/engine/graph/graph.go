// Package graph holds the search graph built over a world.Grid and the
// incremental A*-style search engine that runs on it.
package graph

import (
	"errors"
	"fmt"

	"skirmish/pkg/engine/world"
)

// ErrMissingEdge means two nodes listed as neighbours have no edge between
// them. It can only come from a graph construction bug.
var ErrMissingEdge = errors.New("expected an edge between neighbouring nodes")

// Node is the search counterpart of one grid cell. Its index is the cell's
// row-major grid index; adjacency persists for the life of the graph.
type Node struct {
	Index int
	Point world.Point

	neighbours []int
}

// Neighbours returns the indices of the adjacent nodes
func (n *Node) Neighbours() []int {
	return n.neighbours
}

func (n *Node) addNeighbour(other int) {
	for _, existing := range n.neighbours {
		if existing == other {
			return
		}
	}
	n.neighbours = append(n.neighbours, other)
}

// Edge connects Src to Dst. Cost is the Euclidean distance between the cells.
type Edge struct {
	Src  int
	Dst  int
	Cost float64
}

type edgeKey struct{ src, dst int }

// Graph is the immutable topology shared by every Search instance
type Graph struct {
	nodes     []Node
	edges     []Edge
	edgeIndex map[edgeKey]int
	width     int
}

// New builds one node per grid cell and registers every cell with each of
// its in-bounds orthogonal neighbours. Diagonals are never connected.
func New(grid *world.Grid) *Graph {
	g := &Graph{
		nodes:     make([]Node, grid.Size()),
		edgeIndex: make(map[edgeKey]int, grid.Size()*4),
		width:     grid.Width(),
	}
	for i := range g.nodes {
		g.nodes[i] = Node{Index: i, Point: grid.PointOf(i)}
	}
	for i := range g.nodes {
		for _, p := range grid.Neighbours(g.nodes[i].Point) {
			g.registerNeighbours(i, grid.Index(p))
		}
	}
	return g
}

func (g *Graph) registerNeighbours(node, other int) {
	g.nodes[node].addNeighbour(other)
	key := edgeKey{node, other}
	if _, found := g.edgeIndex[key]; found {
		return
	}
	g.edgeIndex[key] = len(g.edges)
	g.edges = append(g.edges, Edge{
		Src:  node,
		Dst:  other,
		Cost: world.Distance(g.nodes[node].Point, g.nodes[other].Point),
	})
}

// Len returns the number of nodes
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns the node at index i
func (g *Graph) Node(i int) *Node {
	return &g.nodes[i]
}

// Index returns the node index for p, or -1 if p is outside the graph
func (g *Graph) Index(p world.Point) int {
	if p.X < 0 || p.Y < 0 || p.X >= g.width {
		return -1
	}
	i := p.Y*g.width + p.X
	if i >= len(g.nodes) {
		return -1
	}
	return i
}

// Point returns the grid position of node i
func (g *Graph) Point(i int) world.Point {
	return g.nodes[i].Point
}

// Edges returns every registered edge
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Adjacent reports whether b is in a's adjacency list
func (g *Graph) Adjacent(a, b int) bool {
	for _, n := range g.nodes[a].neighbours {
		if n == b {
			return true
		}
	}
	return false
}

// MutuallyAdjacent reports whether a and b list each other as neighbours
func (g *Graph) MutuallyAdjacent(a, b int) bool {
	return g.Adjacent(a, b) && g.Adjacent(b, a)
}

// EdgeCost returns the cost of the edge between a and b in either direction
func (g *Graph) EdgeCost(a, b int) (float64, error) {
	if i, found := g.edgeIndex[edgeKey{a, b}]; found {
		return g.edges[i].Cost, nil
	}
	if i, found := g.edgeIndex[edgeKey{b, a}]; found {
		return g.edges[i].Cost, nil
	}
	return 0, fmt.Errorf("%v -> %v: %w", g.Point(a), g.Point(b), ErrMissingEdge)
}
