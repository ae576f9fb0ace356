/*
Package quadtree implements a point-region quadtree.

Points are buffered in a node until its capacity is reached. The next insert
subdivides the node into four quadrants and moves every buffered point into the
one quadrant that owns it. A node, once divided, stays divided.

It only stores points, not ancillary data.

Quadtree is not safe for concurrent use. Wrap it in a Locked to share it
between goroutines.
*/
package quadtree

import (
	"errors"
	"fmt"
)

// DefaultMaxDepth bounds subdivision when no WithMaxDepth option is given.
// A leaf at the maximum depth keeps accepting points past its capacity.
const DefaultMaxDepth = 32

var (
	ErrInvalidCapacity = errors.New("quadtree: capacity must be at least 1")
	ErrInvalidBoundary = errors.New("quadtree: boundary half size must be positive and finite")
	ErrInvalidMaxDepth = errors.New("quadtree: max depth must not be negative")
)

type options struct {
	maxDepth int
}

// Option configures a Quadtree built by New.
type Option func(*options)

// WithMaxDepth sets the depth below which nodes no longer subdivide. The root has depth 0.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// Quadtree is a node of the tree. The root is the whole tree.
type Quadtree struct {
	boundary BoundingBox
	// edges is the exact extent used for containment and pruning. It can differ
	// from boundary in the last bit, since boundary is rounded to center and half size.
	edges    edges
	capacity int
	depth    int
	maxDepth int
	points   []Point
	// quadrants is nil while the node is a leaf. Indexed by Quadrant.
	quadrants *[4]Quadtree
}

// New returns an empty tree covering boundary. Each node holds up to capacity points before it subdivides.
func New(boundary BoundingBox, capacity int, opts ...Option) (*Quadtree, error) {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	if err := boundary.Validate(); err != nil {
		return nil, err
	}
	if o.maxDepth < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxDepth, o.maxDepth)
	}
	return &Quadtree{
		boundary: boundary,
		edges:    boundary.edges(),
		capacity: capacity,
		maxDepth: o.maxDepth,
	}, nil
}

// MustNew is like New but panics on invalid arguments.
func MustNew(boundary BoundingBox, capacity int, opts ...Option) *Quadtree {
	q, err := New(boundary, capacity, opts...)
	if err != nil {
		panic(err)
	}
	return q
}

// Insert stores p in the tree. It returns false, leaving the tree unchanged,
// if p lies outside the root boundary.
func (q *Quadtree) Insert(p Point) bool {
	if !q.edges.contains(p) {
		return false
	}
	q.insert(p)
	return true
}

// helper function of Insert()
// walks down to the leaf owning p, subdividing full leaves on the way.
// The caller must have checked that p is within q's boundary.
func (q *Quadtree) insert(p Point) {
	n := q
	for {
		if n.quadrants != nil {
			n = &n.quadrants[n.boundary.quadrantOf(p)]
			continue
		}
		if len(n.points) < n.capacity || n.depth >= n.maxDepth {
			n.points = append(n.points, p)
			return
		}
		n.subdivide()
	}
}

// helper function of insert()
// splits the node into quadrants and moves every buffered point into the quadrant owning it.
// Does nothing on a divided node.
func (q *Quadtree) subdivide() {
	if q.quadrants != nil {
		return
	}
	q.quadrants = new([4]Quadtree)
	for _, quadrant := range Quadrants {
		q.quadrants[quadrant] = Quadtree{
			boundary: q.boundary.Quadrant(quadrant),
			edges:    q.edges.quadrant(quadrant, q.boundary.Center),
			capacity: q.capacity,
			depth:    q.depth + 1,
			maxDepth: q.maxDepth,
		}
	}
	for _, p := range q.points {
		// at most capacity points land in one quadrant, so this never subdivides again
		q.quadrants[q.boundary.quadrantOf(p)].insert(p)
	}
	q.points = nil
}

// Query appends to found every point in the tree contained by r, and returns the extended slice.
// A node's own points come before those of its quadrants, which are visited NE, NW, SE, SW.
func (q *Quadtree) Query(r BoundingBox, found []Point) []Point {
	re := r.edges()
	stack := []*Quadtree{q}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !n.edges.intersects(re) {
			continue
		}
		for _, p := range n.points {
			if r.Contains(p) {
				found = append(found, p)
			}
		}
		stack = n.pushQuadrants(stack)
	}
	return found
}

// QueryRange returns the points contained by r.
func (q *Quadtree) QueryRange(r BoundingBox) []Point {
	return q.Query(r, nil)
}

// pushQuadrants pushes the quadrants of q in reverse order, so that NE is popped first.
func (q *Quadtree) pushQuadrants(stack []*Quadtree) []*Quadtree {
	if q.quadrants == nil {
		return stack
	}
	for i := len(q.quadrants) - 1; i >= 0; i-- {
		stack = append(stack, &q.quadrants[i])
	}
	return stack
}

// Boundary returns the region covered by the node as a center and half size.
// Below the root it is rounded; Extent gives the exact edges.
func (q *Quadtree) Boundary() BoundingBox {
	return q.boundary
}

// Extent returns the exact corners of the region owned by the node.
// Every point stored in the subtree lies within them, edges included.
func (q *Quadtree) Extent() (lo, hi Point) {
	return q.edges.min, q.edges.max
}

// Capacity returns the number of points a leaf holds before it subdivides.
func (q *Quadtree) Capacity() int {
	return q.capacity
}

// Depth returns the distance of the node from the root.
func (q *Quadtree) Depth() int {
	return q.depth
}

// MaxDepth returns the depth at which leaves stop subdividing.
func (q *Quadtree) MaxDepth() int {
	return q.maxDepth
}

// Divided reports whether the node has quadrants.
func (q *Quadtree) Divided() bool {
	return q.quadrants != nil
}

// Points returns a copy of the points held directly by the node, in insertion order.
// A divided node holds none.
func (q *Quadtree) Points() []Point {
	if len(q.points) == 0 {
		return nil
	}
	return append([]Point(nil), q.points...)
}

// Quadrant returns the child covering quadrant c, or nil if the node is a leaf.
func (q *Quadtree) Quadrant(c Quadrant) *Quadtree {
	if q.quadrants == nil || c < NE || c > SW {
		return nil
	}
	return &q.quadrants[c]
}

// Len returns the number of points stored in the subtree.
func (q *Quadtree) Len() int {
	n := 0
	_ = q.Walk(func(node *Quadtree) error {
		n += len(node.points)
		return nil
	})
	return n
}

// Height returns the number of levels in the subtree. A leaf has height 1.
func (q *Quadtree) Height() int {
	deepest := q.depth
	_ = q.Walk(func(node *Quadtree) error {
		if node.depth > deepest {
			deepest = node.depth
		}
		return nil
	})
	return deepest - q.depth + 1
}
