package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skirmish/pkg/engine/world"
)

func TestNew_RegistersBothDirections(t *testing.T) {
	for _, dims := range [][2]int{{3, 3}, {4, 9}, {40, 40}} {
		h, w := dims[0], dims[1]
		g := New(world.NewGrid(h, w))

		assert.Equal(t, h*w, g.Len())
		assert.Len(t, g.Edges(), 2*(h*(w-1)+w*(h-1)), "grid %dx%d", h, w)

		for _, e := range g.Edges() {
			assert.True(t, g.MutuallyAdjacent(e.Src, e.Dst))
			assert.InDelta(t, 1.0, e.Cost, 1e-9)
		}
	}
}

func TestNew_NeighbourLists(t *testing.T) {
	grid := world.NewGrid(3, 3)
	g := New(grid)

	center := g.Node(g.Index(world.Pt(1, 1)))
	assert.Len(t, center.Neighbours(), 4)

	corner := g.Node(g.Index(world.Pt(0, 0)))
	assert.ElementsMatch(t, []int{g.Index(world.Pt(1, 0)), g.Index(world.Pt(0, 1))}, corner.Neighbours())
	assert.False(t, g.Adjacent(g.Index(world.Pt(0, 0)), g.Index(world.Pt(1, 1))))
}

func TestGraph_Index(t *testing.T) {
	g := New(world.NewGrid(4, 5))
	assert.Equal(t, 7, g.Index(world.Pt(2, 1)))
	assert.Equal(t, world.Pt(2, 1), g.Point(7))
	assert.Equal(t, -1, g.Index(world.Pt(5, 0)))
	assert.Equal(t, -1, g.Index(world.Pt(0, 4)))
	assert.Equal(t, -1, g.Index(world.Pt(-1, 1)))
}

func TestGraph_EdgeCostMissing(t *testing.T) {
	g := New(world.NewGrid(3, 3))
	a, b := g.Index(world.Pt(1, 1)), g.Index(world.Pt(2, 1))

	cost, err := g.EdgeCost(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, cost, 1e-9)

	delete(g.edgeIndex, edgeKey{a, b})
	_, err = g.EdgeCost(a, b)
	assert.NoError(t, err, "reverse direction still answers")

	delete(g.edgeIndex, edgeKey{b, a})
	_, err = g.EdgeCost(a, b)
	assert.ErrorIs(t, err, ErrMissingEdge)
}

func TestFrontier_OrderAndStaleEntries(t *testing.T) {
	f := newFrontier()
	current := map[int]float64{1: 3, 2: 1, 3: 2}
	live := func(node int, cost float64) bool { return current[node] == cost }

	f.Push(1, 5)
	f.Push(1, 3)
	f.Push(2, 1)
	f.Push(3, 2)
	f.Push(4, 2)
	current[4] = 2

	var order []int
	for {
		n, ok := f.Pop(live)
		if !ok {
			break
		}
		order = append(order, n)
	}
	assert.Equal(t, []int{2, 3, 4, 1}, order, "ties break by insertion, stale (1,5) is skipped")
	assert.Equal(t, 0, f.Len())
}

func TestFrontier_Prune(t *testing.T) {
	f := newFrontier()
	f.Push(1, 1)
	f.Push(2, 2)
	f.Prune(func(node int, _ float64) bool { return node != 1 })
	assert.Equal(t, 1, f.Len())

	f.Prune(func(int, float64) bool { return false })
	assert.Equal(t, 0, f.Len())
}
