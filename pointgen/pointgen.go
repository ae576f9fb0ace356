// Package pointgen generates streams of random points to feed a quadtree.
//
// Every generator takes a seed. The same seed yields the same points; seed 0
// picks a random seed.
package pointgen

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/robert-butts/quadtree"
)

// Distribution names a generator usable from configuration.
type Distribution string

const (
	DistUniform Distribution = "uniform"
	DistScaled  Distribution = "scaled"
)

// Uniform returns n points spread uniformly over box.
func Uniform(seed int64, n int, box quadtree.BoundingBox) []quadtree.Point {
	faker := gofakeit.New(seed)
	min, max := box.Min(), box.Max()
	points := make([]quadtree.Point, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, quadtree.Point{
			X: faker.Float64Range(min.X, max.X),
			Y: faker.Float64Range(min.Y, max.Y),
		})
	}
	return points
}

// Scaled returns n points around the origin, each coordinate drawn from [-r, r) and
// multiplied by a draw from [0, 1). Points cluster toward the origin.
func Scaled(seed int64, n int, r float64) []quadtree.Point {
	faker := gofakeit.New(seed)
	points := make([]quadtree.Point, 0, n)
	for i := 0; i < n; i++ {
		x := faker.Float64Range(-r, r) * faker.Float64Range(0, 1)
		y := faker.Float64Range(-r, r) * faker.Float64Range(0, 1)
		points = append(points, quadtree.Point{X: x, Y: y})
	}
	return points
}

// Generate dispatches to the generator named by d. Uniform points cover the square of half size r around the origin.
func Generate(d Distribution, seed int64, n int, r float64) ([]quadtree.Point, error) {
	switch d {
	case DistUniform:
		return Uniform(seed, n, quadtree.NewBoundingBox(quadtree.Point{}, r)), nil
	case DistScaled:
		return Scaled(seed, n, r), nil
	}
	return nil, fmt.Errorf("unknown distribution %q", string(d))
}
