package quadtree

import (
	"errors"
)

// SkipQuadrants is returned by a WalkFunc to skip the quadrants of the node it was called on.
// It is not an error: Walk itself never returns it.
var SkipQuadrants = errors.New("skip quadrants")

// WalkFunc is called by Walk for each node. The node must not be modified.
type WalkFunc func(n *Quadtree) error

// Walk calls fn for every node of the subtree rooted at q, exactly once each,
// parents before children and quadrants in NE, NW, SE, SW order.
// If fn returns an error other than SkipQuadrants, Walk stops and returns it.
func (q *Quadtree) Walk(fn WalkFunc) error {
	stack := []*Quadtree{q}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := fn(n); err != nil {
			if errors.Is(err, SkipQuadrants) {
				continue
			}
			return err
		}
		stack = n.pushQuadrants(stack)
	}
	return nil
}
