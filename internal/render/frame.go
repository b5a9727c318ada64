// Package render rasterises canvas frames and exports clipped images.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/colornames"
	xdraw "golang.org/x/image/draw"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/cutout/internal/geom"
	"github.com/example/cutout/internal/scene"
)

// handleSize is the side of a corner handle square in device pixels.
const handleSize = 8

// Palette colours the parts of a frame that are not scene objects.
type Palette struct {
	Background color.Color
	Handle     color.Color
	Outline    color.Color
	Caret      color.Color
}

// DefaultPalette is a neutral dark backdrop with blue controls.
func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff},
		Handle:     colornames.White,
		Outline:    colornames.Dodgerblue,
		Caret:      colornames.Black,
	}
}

// Frame paints c onto dst. scale is the device pixel ratio applied on top
// of the canvas viewport.
func Frame(dst draw.Image, c *scene.Canvas, scale float64, pal Palette) {
	if scale <= 0 {
		scale = 1
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(pal.Background), image.Point{}, draw.Src)
	vpt := scene.Matrix{scale, 0, 0, scale, 0, 0}.Mul(c.ViewportTransform())
	zoom := c.Zoom() * scale

	for _, obj := range c.Objects() {
		b := obj.Base()
		if !b.Visible || b.Opacity <= 0 {
			continue
		}
		switch o := obj.(type) {
		case *scene.Image:
			drawImage(dst, vpt, o)
		case *scene.Text:
			drawText(dst, vpt, zoom, o, pal)
		default:
			drawShape(dst, vpt, zoom, obj)
		}
	}
	if active := c.ActiveObject(); active != nil && active.Base().Visible && active.Base().Selectable {
		drawControls(dst, c, scale, active, pal)
	}
}

func drawImage(dst draw.Image, vpt scene.Matrix, img *scene.Image) {
	if img.Src == nil {
		return
	}
	m := vpt.Mul(scene.ObjectMatrix(img))
	var mask image.Image
	if img.Clip != nil {
		a := polygonMask(dst.Bounds(), applyAll(vpt, Outline(img.Clip)))
		scaleAlpha(a, img.Opacity)
		mask = a
	} else if img.Opacity < 1 {
		mask = image.NewUniform(color.Alpha{A: uint8(img.Opacity*255 + 0.5)})
	}
	opts := &xdraw.Options{DstMask: mask, DstMaskP: image.Point{}}
	xdraw.ApproxBiLinear.Transform(dst, aff3(m), img.Src, img.Src.Bounds(), xdraw.Over, opts)
}

func drawShape(dst draw.Image, vpt scene.Matrix, zoom float64, obj scene.Object) {
	st := obj.Base().Style
	pts := applyAll(vpt, Outline(obj))
	closed := Closed(obj)
	if st.Fill.A > 0 && closed {
		fillPolygon(dst, pts, fade(st.Fill, obj.Base().Opacity))
	}
	if st.Stroke.A > 0 && st.StrokeWidth > 0 {
		w := math.Max(st.StrokeWidth*zoom, 1)
		dash := make([]float64, len(st.Dash))
		for i, d := range st.Dash {
			dash[i] = d * zoom
		}
		strokePolyline(dst, pts, closed, w, dash, fade(st.Stroke, obj.Base().Opacity))
	}
}

func drawText(dst draw.Image, vpt scene.Matrix, zoom float64, t *scene.Text, pal Palette) {
	origin := vpt.Apply(geom.Pt(t.Left, t.Top))
	size := t.FontSize * t.ScaleY * zoom
	fill := t.Style.Fill
	if fill.A == 0 {
		fill = color.RGBA{A: 0xff}
	}
	end := DrawText(dst, int(origin.X), int(origin.Y), t.Text, fade(fill, t.Opacity), size)
	if t.Editing() {
		top := image.Pt(end+1, int(origin.Y))
		caret := image.Rectangle{Min: top, Max: top.Add(image.Pt(1, int(math.Ceil(size*1.2))))}
		draw.Draw(dst, caret, image.NewUniform(pal.Caret), image.Point{}, draw.Over)
	}
}

func drawControls(dst draw.Image, c *scene.Canvas, scale float64, obj scene.Object, pal Palette) {
	corners, rot := c.Controls(obj)
	box := make([]geom.Point, len(corners))
	for i, p := range corners {
		box[i] = r2.Scale(scale, p)
	}
	strokePolyline(dst, box, true, 1, nil, pal.Outline)
	if !obj.Base().HasControls {
		return
	}
	for _, p := range box {
		drawHandle(dst, p, pal)
	}
	rot = r2.Scale(scale, rot)
	strokePolyline(dst, []geom.Point{lerp(box[0], box[1], 0.5), rot}, false, 1, nil, pal.Outline)
	drawHandle(dst, rot, pal)
}

func drawHandle(dst draw.Image, p geom.Point, pal Palette) {
	r := image.Rect(int(p.X)-handleSize/2, int(p.Y)-handleSize/2, int(p.X)+handleSize/2, int(p.Y)+handleSize/2)
	draw.Draw(dst, r, image.NewUniform(pal.Outline), image.Point{}, draw.Src)
	draw.Draw(dst, r.Inset(1), image.NewUniform(pal.Handle), image.Point{}, draw.Src)
}

// fade scales a premultiplied colour by opacity.
func fade(c color.RGBA, opacity float64) color.RGBA {
	if opacity >= 1 {
		return c
	}
	f := func(v uint8) uint8 { return uint8(float64(v)*opacity + 0.5) }
	return color.RGBA{R: f(c.R), G: f(c.G), B: f(c.B), A: f(c.A)}
}
