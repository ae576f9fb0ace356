package quadtree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk_Order(t *testing.T) {
	t.Parallel()

	qt := MustNew(NewBoundingBox(Point{}, 100), 1)
	qt.Insert(Point{10, -10})
	qt.Insert(Point{-10, -10})
	qt.Insert(Point{60, -60}) // splits ne

	var visited []BoundingBox
	err := qt.Walk(func(n *Quadtree) error {
		visited = append(visited, n.Boundary())
		return nil
	})
	require.NoError(t, err)

	ne := qt.Boundary().Quadrant(NE)
	assert.Equal(t, []BoundingBox{
		qt.Boundary(),
		ne,
		ne.Quadrant(NE),
		ne.Quadrant(NW),
		ne.Quadrant(SE),
		ne.Quadrant(SW),
		qt.Boundary().Quadrant(NW),
		qt.Boundary().Quadrant(SE),
		qt.Boundary().Quadrant(SW),
	}, visited)
}

func TestWalk_EveryNodeOnce(t *testing.T) {
	t.Parallel()

	box := NewBoundingBox(Point{}, 1000)
	qt := MustNew(box, 4)
	for _, p := range randomPoints(17, 1000, box) {
		qt.Insert(p)
	}

	var (
		seen    = make(map[*Quadtree]int)
		divided = 0
		points  = 0
	)
	err := qt.Walk(func(n *Quadtree) error {
		seen[n]++
		if n.Divided() {
			divided++
		}
		points += len(n.Points())
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, seen, 1+4*divided)
	for n, count := range seen {
		assert.Equal(t, 1, count, "node %v", n.Boundary())
	}
	assert.Equal(t, 1000, points)
}

func TestWalk_SkipQuadrants(t *testing.T) {
	t.Parallel()

	qt := MustNew(NewBoundingBox(Point{}, 100), 1)
	qt.Insert(Point{10, 10})
	qt.Insert(Point{-10, -10})
	require.True(t, qt.Divided())

	visits := 0
	err := qt.Walk(func(n *Quadtree) error {
		visits++
		return SkipQuadrants
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, visits)
}

func TestWalk_Stop(t *testing.T) {
	t.Parallel()

	qt := MustNew(NewBoundingBox(Point{}, 100), 1)
	qt.Insert(Point{10, 10})
	qt.Insert(Point{-10, -10})

	errStop := errors.New("stop")
	visits := 0
	err := qt.Walk(func(n *Quadtree) error {
		visits++
		if visits == 2 {
			return errStop
		}
		return nil
	})

	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, 2, visits)
}
