package geom

import "math"

// Rect is an axis aligned box described by its top-left corner and size.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Area returns Width*Height.
func (r Rect) Area() float64 { return r.Width * r.Height }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Center returns the middle of the box.
func (r Rect) Center() Point { return Pt(r.Left+r.Width/2, r.Top+r.Height/2) }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Top && p.Y <= r.Bottom()
}

// Union returns the smallest box covering r and o.
func (r Rect) Union(o Rect) Rect {
	left := math.Min(r.Left, o.Left)
	top := math.Min(r.Top, o.Top)
	return Rect{
		Left:   left,
		Top:    top,
		Width:  math.Max(r.Right(), o.Right()) - left,
		Height: math.Max(r.Bottom(), o.Bottom()) - top,
	}
}

// Bounds returns the box covering points.
func Bounds(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{Left: minX, Top: minY, Width: maxX - minX, Height: maxY - minY}
}

// Box returns the box spanned by a drag from start to current. With
// keepRatio both sides take the larger of the two deltas while the drag
// direction is preserved.
func Box(start, current Point, keepRatio bool) Rect {
	dx := current.X - start.X
	dy := current.Y - start.Y
	if keepRatio {
		size := math.Max(math.Abs(dx), math.Abs(dy))
		dx = math.Copysign(size, dx)
		dy = math.Copysign(size, dy)
	}
	return Rect{
		Left:   math.Min(start.X, start.X+dx),
		Top:    math.Min(start.Y, start.Y+dy),
		Width:  math.Abs(dx),
		Height: math.Abs(dy),
	}
}

// EllipseArea is π·rx·ry.
func EllipseArea(rx, ry float64) float64 { return math.Pi * rx * ry }
