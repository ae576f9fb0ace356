// Package export converts a quadtree into a tree-shaped record and reads and writes that record as JSON or YAML.
//
// The JSON layout is the exchange format consumed by external plotting tools:
//
//	{
//	  "boundary": {"center": {"x": 0, "y": 0}, "half_size": 1000},
//	  "capacity": 4,
//	  "points": [{"x": 1.5, "y": -2}],
//	  "divided": false,
//	  "ne": null, "nw": null, "se": null, "sw": null
//	}
package export

import (
	"errors"
	"fmt"

	"github.com/robert-butts/quadtree"
)

var ErrMalformed = errors.New("export: malformed record")

// Record mirrors one quadtree node. Quadrant fields are nil on leaves and all set on divided nodes.
type Record struct {
	Boundary quadtree.BoundingBox `json:"boundary" yaml:"boundary"`
	Capacity int                  `json:"capacity" yaml:"capacity"`
	Points   []quadtree.Point     `json:"points" yaml:"points"`
	Divided  bool                 `json:"divided" yaml:"divided"`
	NE       *Record              `json:"ne" yaml:"ne"`
	NW       *Record              `json:"nw" yaml:"nw"`
	SE       *Record              `json:"se" yaml:"se"`
	SW       *Record              `json:"sw" yaml:"sw"`
}

// FromTree builds the record of the subtree rooted at t.
func FromTree(t *quadtree.Quadtree) *Record {
	// records of nodes seen as quadrants but not visited yet
	pending := make(map[*quadtree.Quadtree]*Record)
	var root *Record
	_ = t.Walk(func(n *quadtree.Quadtree) error {
		rec, ok := pending[n]
		if ok {
			delete(pending, n)
		} else {
			rec = &Record{}
			root = rec
		}
		rec.Boundary = n.Boundary()
		rec.Capacity = n.Capacity()
		rec.Points = n.Points()
		if rec.Points == nil {
			rec.Points = []quadtree.Point{}
		}
		rec.Divided = n.Divided()
		if !rec.Divided {
			return nil
		}
		for _, q := range quadtree.Quadrants {
			child := &Record{}
			pending[n.Quadrant(q)] = child
			rec.setQuadrant(q, child)
		}
		return nil
	})
	return root
}

// Quadrant returns the child record for q, nil on a leaf.
func (r *Record) Quadrant(q quadtree.Quadrant) *Record {
	switch q {
	case quadtree.NE:
		return r.NE
	case quadtree.NW:
		return r.NW
	case quadtree.SE:
		return r.SE
	case quadtree.SW:
		return r.SW
	}
	return nil
}

func (r *Record) setQuadrant(q quadtree.Quadrant, child *Record) {
	switch q {
	case quadtree.NE:
		r.NE = child
	case quadtree.NW:
		r.NW = child
	case quadtree.SE:
		r.SE = child
	case quadtree.SW:
		r.SW = child
	}
}

// walk visits r and its descendants in the same order as quadtree.Walk.
func (r *Record) walk(fn func(*Record) error) error {
	stack := []*Record{r}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := fn(n); err != nil {
			return err
		}
		for i := len(quadtree.Quadrants) - 1; i >= 0; i-- {
			if child := n.Quadrant(quadtree.Quadrants[i]); child != nil {
				stack = append(stack, child)
			}
		}
	}
	return nil
}

// Count returns the number of points in the record tree.
func (r *Record) Count() int {
	n := 0
	_ = r.walk(func(rec *Record) error {
		n += len(rec.Points)
		return nil
	})
	return n
}

// Nodes returns the number of nodes in the record tree.
func (r *Record) Nodes() int {
	n := 0
	_ = r.walk(func(*Record) error {
		n++
		return nil
	})
	return n
}

// Validate checks that every divided record has all four quadrants and no points,
// that every leaf has no quadrants, and that every point lies inside the root boundary.
// Points are checked against the root only: quadrant boundaries are rounded and may
// miss a point on their edge by the last bit.
func (r *Record) Validate() error {
	root := r.Boundary
	return r.walk(func(rec *Record) error {
		for _, p := range rec.Points {
			if !root.Contains(p) {
				return fmt.Errorf("%w: point %v outside root %v/%v", ErrMalformed, p, root.Center, root.HalfSize)
			}
		}
		children := 0
		for _, q := range quadtree.Quadrants {
			if rec.Quadrant(q) != nil {
				children++
			}
		}
		switch {
		case rec.Divided && children != 4:
			return fmt.Errorf("%w: divided node at %v has %d quadrants", ErrMalformed, rec.Boundary.Center, children)
		case rec.Divided && len(rec.Points) != 0:
			return fmt.Errorf("%w: divided node at %v holds %d points", ErrMalformed, rec.Boundary.Center, len(rec.Points))
		case !rec.Divided && children != 0:
			return fmt.Errorf("%w: leaf at %v has %d quadrants", ErrMalformed, rec.Boundary.Center, children)
		}
		return nil
	})
}

// Rebuild returns a new tree with the root boundary and capacity of r, holding every point of r.
// Points are reinserted in walk order, which reproduces the node layout of the tree r was built from.
// A point outside the root boundary fails the rebuild with ErrMalformed.
func Rebuild(r *Record, opts ...quadtree.Option) (*quadtree.Quadtree, error) {
	t, err := quadtree.New(r.Boundary, r.Capacity, opts...)
	if err != nil {
		return nil, fmt.Errorf("rebuilding tree: %w", err)
	}
	err = r.walk(func(rec *Record) error {
		for _, p := range rec.Points {
			if !t.Insert(p) {
				return fmt.Errorf("%w: point %v outside root %v/%v", ErrMalformed, p, r.Boundary.Center, r.Boundary.HalfSize)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rebuilding tree: %w", err)
	}
	return t, nil
}
