// Package geom holds the small amount of plane geometry the canvas needs:
// polygon areas, touch pair measurements and drag boxes.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in either scene or viewport space.
type Point = r2.Vec

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// PolygonArea returns the unsigned area enclosed by points using the
// shoelace formula. Fewer than three points enclose nothing.
func PolygonArea(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}
	var sum float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum) / 2
}

// TouchDistance is the distance between two touch points.
func TouchDistance(a, b Point) float64 {
	return r2.Norm(r2.Sub(b, a))
}

// TouchCenter returns the centroid of the supplied touches.
func TouchCenter(first Point, rest ...Point) Point {
	sum := first
	for _, p := range rest {
		sum = r2.Add(sum, p)
	}
	return r2.Scale(1/float64(len(rest)+1), sum)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
