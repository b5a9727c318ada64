package render

import (
	"math"

	"github.com/example/cutout/internal/geom"
	"github.com/example/cutout/internal/scene"
)

// ellipseSegments is how many straight edges approximate an ellipse.
const ellipseSegments = 72

// Outline returns obj's boundary in scene coordinates. Paths keep their
// vertex order; every other kind is traced clockwise from its top-left.
func Outline(obj scene.Object) []geom.Point {
	switch o := obj.(type) {
	case *scene.Path:
		return o.ScenePoints()
	case *scene.Ellipse:
		m := scene.ObjectMatrix(o)
		out := make([]geom.Point, ellipseSegments)
		for i := range out {
			t := 2 * math.Pi * float64(i) / ellipseSegments
			out[i] = m.Apply(geom.Pt(o.RX+o.RX*math.Cos(t), o.RY+o.RY*math.Sin(t)))
		}
		return out
	}
	c := scene.Corners(obj)
	return c[:]
}

// Closed reports whether obj's outline joins its last point to its first.
func Closed(obj scene.Object) bool {
	if p, ok := obj.(*scene.Path); ok {
		return p.Closed
	}
	return true
}

func applyAll(m scene.Matrix, pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = m.Apply(p)
	}
	return out
}
