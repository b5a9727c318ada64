package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/cutout/internal/geom"
	"github.com/example/cutout/internal/scene"
)

// aff3 converts a canvas matrix to the row-major form x/image/draw uses.
func aff3(m scene.Matrix) f64.Aff3 {
	return f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
}

// polygonMask rasterises the closed polygon pts, given in the coordinates of
// r, into an alpha mask covering r.
func polygonMask(r image.Rectangle, pts []geom.Point) *image.Alpha {
	mask := image.NewAlpha(r)
	if len(pts) < 3 || r.Empty() {
		return mask
	}
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	addPolygon(z, pts, r.Min)
	z.Draw(mask, r, image.Opaque, image.Point{})
	return mask
}

func addPolygon(z *vector.Rasterizer, pts []geom.Point, origin image.Point) {
	ox, oy := float64(origin.X), float64(origin.Y)
	z.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	z.ClosePath()
}

// fillPolygon paints the interior of pts onto dst.
func fillPolygon(dst draw.Image, pts []geom.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	addPolygon(z, pts, b.Min)
	z.DrawOp = draw.Over
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// strokePolyline paints a line of the given width along pts. dash alternates
// on and off lengths in the same units as pts.
func strokePolyline(dst draw.Image, pts []geom.Point, closed bool, width float64, dash []float64, c color.Color) {
	if len(pts) < 2 || width <= 0 {
		return
	}
	if closed {
		pts = append(append([]geom.Point(nil), pts...), pts[0])
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	half := width / 2
	for _, seg := range dashSegments(pts, dash) {
		addSegment(z, seg[0], seg[1], half, b.Min)
	}
	z.DrawOp = draw.Over
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

func addSegment(z *vector.Rasterizer, a, b geom.Point, half float64, origin image.Point) {
	d := r2.Sub(b, a)
	n := r2.Norm(d)
	if n == 0 {
		return
	}
	perp := r2.Scale(half/n, geom.Pt(-d.Y, d.X))
	addPolygon(z, []geom.Point{r2.Add(a, perp), r2.Add(b, perp), r2.Sub(b, perp), r2.Sub(a, perp)}, origin)
}

// dashSegments splits the polyline into the visible pieces of the dash
// pattern. An empty pattern keeps every edge.
func dashSegments(pts []geom.Point, dash []float64) [][2]geom.Point {
	var out [][2]geom.Point
	total := 0.0
	for _, d := range dash {
		total += d
	}
	if len(dash) == 0 || total <= 0 {
		for i := 1; i < len(pts); i++ {
			out = append(out, [2]geom.Point{pts[i-1], pts[i]})
		}
		return out
	}
	idx, left, on := 0, dash[0], true
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := r2.Norm(r2.Sub(b, a))
		pos := 0.0
		for pos < segLen {
			step := math.Min(left, segLen-pos)
			if on {
				out = append(out, [2]geom.Point{lerp(a, b, pos/segLen), lerp(a, b, (pos+step)/segLen)})
			}
			pos += step
			left -= step
			if left <= 0 {
				idx = (idx + 1) % len(dash)
				left = dash[idx]
				on = !on
			}
		}
	}
	return out
}

func lerp(a, b geom.Point, t float64) geom.Point {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// scaleAlpha multiplies every mask value by opacity.
func scaleAlpha(m *image.Alpha, opacity float64) {
	if opacity >= 1 {
		return
	}
	for i, v := range m.Pix {
		m.Pix[i] = uint8(float64(v)*opacity + 0.5)
	}
}
