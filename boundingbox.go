package quadtree

import (
	"fmt"
	"math"
)

// BoundingBox is an axis-aligned square described by its center and half of its side length.
// HalfSize must be positive; see Validate.
type BoundingBox struct {
	Center   Point   `json:"center" yaml:"center"`
	HalfSize float64 `json:"half_size" yaml:"half_size"`
}

func NewBoundingBox(center Point, halfSize float64) BoundingBox {
	return BoundingBox{Center: center, HalfSize: halfSize}
}

// Validate returns ErrInvalidBoundary unless the half size is positive and every value is finite.
func (b BoundingBox) Validate() error {
	if !(b.HalfSize > 0) || math.IsInf(b.HalfSize, 0) || !finite(b.Center) {
		return fmt.Errorf("%w: center %v half size %v", ErrInvalidBoundary, b.Center, b.HalfSize)
	}
	return nil
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Min returns the corner with the smallest coordinates.
func (b BoundingBox) Min() Point {
	return Point{b.Center.X - b.HalfSize, b.Center.Y - b.HalfSize}
}

// Max returns the corner with the largest coordinates.
func (b BoundingBox) Max() Point {
	return Point{b.Center.X + b.HalfSize, b.Center.Y + b.HalfSize}
}

// Contains reports whether p lies inside b. All four edges are inclusive.
func (b BoundingBox) Contains(p Point) bool {
	return p.X >= b.Center.X-b.HalfSize &&
		p.X <= b.Center.X+b.HalfSize &&
		p.Y >= b.Center.Y-b.HalfSize &&
		p.Y <= b.Center.Y+b.HalfSize
}

// Intersects reports whether b and other overlap. Boxes that only touch along an edge or a corner intersect.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return b.Center.X+b.HalfSize >= other.Center.X-other.HalfSize &&
		b.Center.X-b.HalfSize <= other.Center.X+other.HalfSize &&
		b.Center.Y+b.HalfSize >= other.Center.Y-other.HalfSize &&
		b.Center.Y-b.HalfSize <= other.Center.Y+other.HalfSize
}

// Quadrant returns the box covering quadrant q of b.
func (b BoundingBox) Quadrant(q Quadrant) BoundingBox {
	h := b.HalfSize / 2.0
	c := b.Center
	switch q {
	case NE:
		return BoundingBox{Point{c.X + h, c.Y - h}, h}
	case NW:
		return BoundingBox{Point{c.X - h, c.Y - h}, h}
	case SE:
		return BoundingBox{Point{c.X + h, c.Y + h}, h}
	default:
		return BoundingBox{Point{c.X - h, c.Y + h}, h}
	}
}

// edges holds the exact extent of a node. Child edges are copied from the
// parent's min, max and split values, so neighbouring nodes share the same
// float64 edge and no point falls between them.
type edges struct {
	min, max Point
}

func (b BoundingBox) edges() edges {
	return edges{min: b.Min(), max: b.Max()}
}

func (e edges) contains(p Point) bool {
	return p.X >= e.min.X && p.X <= e.max.X && p.Y >= e.min.Y && p.Y <= e.max.Y
}

func (e edges) intersects(o edges) bool {
	return e.max.X >= o.min.X && e.min.X <= o.max.X && e.max.Y >= o.min.Y && e.min.Y <= o.max.Y
}

// quadrant returns the edges of quadrant q when e is split at c.
// It agrees with quadrantOf: every point of e routed to q lies inside the result.
func (e edges) quadrant(q Quadrant, c Point) edges {
	switch q {
	case NE:
		return edges{Point{c.X, e.min.Y}, Point{e.max.X, c.Y}}
	case NW:
		return edges{e.min, c}
	case SE:
		return edges{c, e.max}
	default:
		return edges{Point{e.min.X, c.Y}, Point{c.X, e.max.Y}}
	}
}

// quadrantOf returns the single quadrant of b that owns p.
// Points on the vertical center line belong to the east side, points on the horizontal center line to the south side.
func (b BoundingBox) quadrantOf(p Point) Quadrant {
	east := p.X >= b.Center.X
	north := p.Y < b.Center.Y
	switch {
	case east && north:
		return NE
	case north:
		return NW
	case east:
		return SE
	default:
		return SW
	}
}
