package tools

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/example/cutout/internal/geom"
	"github.com/example/cutout/internal/input"
	"github.com/example/cutout/internal/scene"
)

// ClipKind names a clip-shape tool.
type ClipKind string

const (
	Lasso   ClipKind = "lasso"
	Rect    ClipKind = "rect"
	Ellipse ClipKind = "ellipse"
)

// DefaultMinClipArea is the smallest shape, in square scene pixels, that
// survives the pointer release.
const DefaultMinClipArea = 300

// ClipStyle paints the shape while it is drawn and after it is committed.
type ClipStyle struct {
	Preview scene.Style
	Final   scene.Style
}

// DefaultClipStyle returns a dashed red preview and a hairline final shape
// with an almost invisible fill so its interior can be grabbed.
func DefaultClipStyle() ClipStyle {
	return ClipStyle{
		Preview: scene.Style{Stroke: colornames.Red, StrokeWidth: 2, Dash: []float64{6, 4}},
		Final: scene.Style{
			Stroke:      colornames.Red,
			StrokeWidth: 2,
			Fill:        color.RGBA{R: 3, G: 3, B: 3, A: 3},
		},
	}
}

// ClipOption configures a ClipDrawer.
type ClipOption func(*ClipDrawer)

// WithMinClipArea sets the area threshold below which a drawing is
// discarded.
func WithMinClipArea(a float64) ClipOption { return func(d *ClipDrawer) { d.minArea = a } }

// WithClipStyle overrides the preview and final styles.
func WithClipStyle(s ClipStyle) ClipOption { return func(d *ClipDrawer) { d.style = s } }

// ClipDrawer draws lasso, rectangle and ellipse clip shapes. It holds at
// most one drawing at a time, shared by the three tools.
type ClipDrawer struct {
	canvas  *scene.Canvas
	mods    input.ModifierSource
	minArea float64
	style   ClipStyle

	drawing bool
	kind    ClipKind
	preview scene.Object
	start   geom.Point
	points  []geom.Point
}

// NewClipDrawer creates a drawer on c. mods supplies the shift state that
// constrains rectangles to squares and ellipses to circles.
func NewClipDrawer(c *scene.Canvas, mods input.ModifierSource, opts ...ClipOption) *ClipDrawer {
	d := &ClipDrawer{
		canvas:  c,
		mods:    mods,
		minArea: DefaultMinClipArea,
		style:   DefaultClipStyle(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Drawing reports whether a shape is being drawn.
func (d *ClipDrawer) Drawing() bool { return d.drawing }

// Preview returns the in-progress shape, or nil.
func (d *ClipDrawer) Preview() scene.Object { return d.preview }

// Kind returns the tool of the current drawing.
func (d *ClipDrawer) Kind() ClipKind { return d.kind }

// Down starts a drawing of kind at the scene point p. A press on the open
// drawing of the same kind is ignored; any other press discards the open
// drawing first.
func (d *ClipDrawer) Down(kind ClipKind, p geom.Point) {
	if d.preview != nil {
		if d.kind == kind && scene.ContainsPoint(d.preview, p) {
			return
		}
		d.Undo()
	}
	d.drawing = true
	d.kind = kind
	d.start = p
	d.points = []geom.Point{p}

	switch kind {
	case Lasso:
		d.preview = scene.NewPath(d.points, false)
	case Rect:
		d.preview = scene.NewRect(geom.Rect{Left: p.X, Top: p.Y})
	case Ellipse:
		d.preview = scene.NewEllipse(geom.Rect{Left: p.X, Top: p.Y})
	default:
		d.reset()
		return
	}
	d.applyPreviewStyle(d.preview)
	d.canvas.Add(d.preview)
	d.canvas.RequestRenderAll()
}

// Move extends the drawing to the scene point p.
func (d *ClipDrawer) Move(p geom.Point) {
	if !d.drawing || d.preview == nil {
		return
	}
	keepRatio := d.mods != nil && d.mods.Current().Shift
	switch obj := d.preview.(type) {
	case *scene.Path:
		d.points = append(d.points, p)
		obj.SetPoints(d.points)
	case *scene.Rect:
		obj.SetBox(geom.Box(d.start, p, keepRatio))
	case *scene.Ellipse:
		obj.SetBox(geom.Box(d.start, p, keepRatio))
	}
	d.canvas.RequestRenderAll()
}

// Up finishes the drawing. Shapes smaller than the minimum area are
// discarded and nil is returned. Otherwise the preview is replaced by a
// fresh final shape, which is returned without being added to the canvas.
func (d *ClipDrawer) Up() scene.Object {
	if !d.drawing || d.preview == nil {
		return nil
	}
	d.drawing = false
	if d.area() < d.minArea {
		d.Undo()
		return nil
	}

	var final scene.Object
	switch obj := d.preview.(type) {
	case *scene.Path:
		closed := append(append([]geom.Point(nil), d.points...), d.points[0])
		final = scene.NewPath(closed, true)
	case *scene.Rect:
		final = scene.NewRect(geom.Rect{Left: obj.Left, Top: obj.Top, Width: obj.Width, Height: obj.Height})
	case *scene.Ellipse:
		final = scene.NewEllipse(geom.Rect{Left: obj.Left, Top: obj.Top, Width: 2 * obj.RX, Height: 2 * obj.RY})
	}
	final.Base().Style = d.style.Final

	d.canvas.Remove(d.preview)
	d.reset()
	d.canvas.RequestRenderAll()
	return final
}

// Undo drops the open drawing, if any.
func (d *ClipDrawer) Undo() {
	if d.preview != nil {
		d.canvas.Remove(d.preview)
	}
	d.reset()
	d.canvas.RequestRenderAll()
}

func (d *ClipDrawer) area() float64 {
	switch obj := d.preview.(type) {
	case *scene.Path:
		return geom.PolygonArea(d.points)
	case *scene.Rect:
		return obj.Width * obj.Height
	case *scene.Ellipse:
		return geom.EllipseArea(obj.RX, obj.RY)
	}
	return 0
}

func (d *ClipDrawer) applyPreviewStyle(obj scene.Object) {
	b := obj.Base()
	b.Style = d.style.Preview
	b.Selectable = false
	b.Evented = false
	b.HasControls = false
}

func (d *ClipDrawer) reset() {
	d.drawing = false
	d.preview = nil
	d.points = nil
	d.start = geom.Point{}
}
