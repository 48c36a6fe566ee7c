package graph

import (
	"errors"
	"fmt"
	"math"

	"skirmish/pkg/engine/world"
)

// Search errors
var (
	ErrNoPath   = errors.New("no path between start and target")
	ErrNoTarget = errors.New("search has no target")
	ErrOffGraph = errors.New("point is not part of the graph")
)

// Color is the per-search state of a node
type Color int

// Node colors
const (
	White Color = iota // unseen
	Gray               // on the frontier
	Black              // settled
	Start
	Target
)

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Gray:
		return "Gray"
	case Black:
		return "Black"
	case Start:
		return "Start"
	case Target:
		return "Target"
	default:
		return "Unknown"
	}
}

// Passable decides whether the search may expand into p. The target is
// always reachable regardless of what Passable says about it.
type Passable func(p world.Point) bool

// none marks an unset node reference
const none = -1

// Search is a stateful, step-at-a-time shortest path solver over a shared
// Graph. All per-node state lives here so many searches can share one
// topology. Call Reset before reusing a search for a new start/target.
type Search struct {
	graph    *Graph
	passable Passable

	color  []Color
	cost   []float64
	parent []int

	frontier     *Frontier
	start        int
	target       int
	lastAnalyzed int
	solved       bool
}

// NewSearch creates a search over g. A nil passable admits every node.
func NewSearch(g *Graph, passable Passable) *Search {
	s := &Search{
		graph:    g,
		passable: passable,
		color:    make([]Color, g.Len()),
		cost:     make([]float64, g.Len()),
		parent:   make([]int, g.Len()),
	}
	s.Reset()
	return s
}

// Graph returns the topology the search runs on
func (s *Search) Graph() *Graph {
	return s.graph
}

// Reset clears the solved flag, every node back to White with infinite cost
// and no parent, empties the frontier and forgets start, target and the
// last analyzed node.
func (s *Search) Reset() {
	for i := range s.color {
		s.color[i] = White
		s.cost[i] = math.Inf(1)
		s.parent[i] = none
	}
	s.frontier = newFrontier()
	s.start = none
	s.target = none
	s.lastAnalyzed = none
	s.solved = false
}

// SetStart marks the node at p as Start with zero cost and queues it. A
// node already marked Target keeps that color so the search still solves.
func (s *Search) SetStart(p world.Point) error {
	i := s.graph.Index(p)
	if i < 0 {
		return fmt.Errorf("start %v: %w", p, ErrOffGraph)
	}
	if s.color[i] != Target {
		s.color[i] = Start
	}
	s.cost[i] = 0
	s.start = i
	s.frontier.Push(i, 0)
	return nil
}

// SetTarget marks the node at p as Target. The target position is kept
// separately for the heuristic even after the node's color changes.
func (s *Search) SetTarget(p world.Point) error {
	i := s.graph.Index(p)
	if i < 0 {
		return fmt.Errorf("target %v: %w", p, ErrOffGraph)
	}
	s.color[i] = Target
	s.target = i
	return nil
}

// Start returns the start position, if set
func (s *Search) Start() (world.Point, bool) {
	return s.pointOf(s.start)
}

// Target returns the target position, if set
func (s *Search) Target() (world.Point, bool) {
	return s.pointOf(s.target)
}

// LastAnalyzed returns the most recently expanded position, if any
func (s *Search) LastAnalyzed() (world.Point, bool) {
	return s.pointOf(s.lastAnalyzed)
}

func (s *Search) pointOf(i int) (world.Point, bool) {
	if i == none {
		return world.Point{}, false
	}
	return s.graph.Point(i), true
}

// Solved reports whether the target has been reached
func (s *Search) Solved() bool {
	return s.solved
}

// Exhausted is true once a target is set and nothing is left to explore.
// A search with no target is never exhausted.
func (s *Search) Exhausted() bool {
	if s.target == none {
		return false
	}
	s.frontier.Prune(s.live)
	return s.frontier.Len() == 0
}

// Color returns the color of the node at p
func (s *Search) Color(p world.Point) Color {
	i := s.graph.Index(p)
	if i < 0 {
		return White
	}
	return s.color[i]
}

// Cost returns the accumulated cost of the node at p
func (s *Search) Cost(p world.Point) float64 {
	i := s.graph.Index(p)
	if i < 0 {
		return math.Inf(1)
	}
	return s.cost[i]
}

// Parent returns the predecessor of the node at p, if it has one
func (s *Search) Parent(p world.Point) (world.Point, bool) {
	i := s.graph.Index(p)
	if i < 0 {
		return world.Point{}, false
	}
	return s.pointOf(s.parent[i])
}

// live tells the frontier whether an entry still describes its node
func (s *Search) live(node int, cost float64) bool {
	return s.color[node] != Black && s.cost[node] == cost
}

// Step pops the cheapest frontier node and expands it. It reports whether
// a node was analyzed; an empty frontier is a no-op.
func (s *Search) Step() (bool, error) {
	if s.target == none {
		return false, ErrNoTarget
	}
	current, ok := s.frontier.Pop(s.live)
	if !ok {
		return false, nil
	}
	return true, s.analyze(current)
}

// StepNeighbourPriority behaves like Step, except that a popped node not
// mutually adjacent to the previously analyzed one is dropped without
// being expanded. This keeps exploration next to a walker that advances
// one cell per turn.
func (s *Search) StepNeighbourPriority() (bool, error) {
	if s.target == none {
		return false, ErrNoTarget
	}
	current, ok := s.frontier.Pop(s.live)
	if !ok {
		return false, nil
	}
	if s.lastAnalyzed != none && !s.graph.MutuallyAdjacent(current, s.lastAnalyzed) {
		return false, nil
	}
	return true, s.analyze(current)
}

func (s *Search) analyze(current int) error {
	s.lastAnalyzed = current

	if s.color[current] == Target {
		s.solved = true
		return nil
	}

	if s.color[current] != Start {
		s.color[current] = Black
	}

	targetPoint := s.graph.Point(s.target)
	for _, node := range s.graph.Node(current).Neighbours() {
		switch s.color[node] {
		case Black, Start:
			continue
		}
		if node != s.target && s.passable != nil && !s.passable(s.graph.Point(node)) {
			continue
		}

		edgeCost, err := s.graph.EdgeCost(current, node)
		if err != nil {
			return err
		}

		// The heuristic is folded into the carried cost at every level.
		value := s.cost[current] + world.Distance(targetPoint, s.graph.Point(node)) + edgeCost

		switch s.color[node] {
		case White, Target:
			s.relax(node, current, value)
			s.color[node] = Gray
		case Gray:
			if s.cost[node] > value {
				s.relax(node, current, value)
			}
		}

		if node == s.target {
			s.solved = true
			return nil
		}
	}
	return nil
}

func (s *Search) relax(node, parent int, value float64) {
	s.cost[node] = value
	s.parent[node] = parent
	s.frontier.Push(node, value)
}

// Run steps until the target is reached. It returns ErrNoPath when the
// frontier runs dry first.
func (s *Search) Run() error {
	if s.target == none {
		return ErrNoTarget
	}
	for !s.solved {
		if s.Exhausted() {
			return ErrNoPath
		}
		if _, err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the predecessor chain from start to target, both included.
// It is nil unless the search is solved.
func (s *Search) Path() []world.Point {
	if !s.solved || s.target == none {
		return nil
	}
	var reversed []world.Point
	for i := s.target; i != none; i = s.parent[i] {
		reversed = append(reversed, s.graph.Point(i))
		if len(reversed) > len(s.parent) {
			return nil
		}
	}
	path := make([]world.Point, len(reversed))
	for i, p := range reversed {
		path[len(reversed)-1-i] = p
	}
	return path
}
