// Package tools implements the pointer tools behind each editor mode: the
// pan/zoom controller, the clip-shape drawer and the text tool. Every tool
// keeps its gesture state on its own value so sessions never share it.
package tools

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/cutout/internal/geom"
	"github.com/example/cutout/internal/scene"
)

// Limits bounds viewport movement.
type Limits struct {
	// Padding is how much of the image, in viewport pixels, must stay on
	// screen along each axis.
	Padding float64
	MinZoom float64
	MaxZoom float64
	// ZoomStep is the fractional zoom change per wheel notch.
	ZoomStep float64
	// ScrollFactor converts wheel units to viewport pixels.
	ScrollFactor float64
}

// DefaultLimits returns the stock viewport limits.
func DefaultLimits() Limits {
	return Limits{Padding: 80, MinZoom: 0.01, MaxZoom: 5, ZoomStep: 0.05, ScrollFactor: 0.5}
}

// PanZoom drags, pinches, wheels and clamps the canvas viewport around an
// image.
type PanZoom struct {
	canvas *scene.Canvas
	image  *scene.Image
	limits Limits

	panning            bool
	last               geom.Point
	pinchStartDistance float64
	pinchStartZoom     float64
	lastTouchCount     int
}

// NewPanZoom creates a controller for c.
func NewPanZoom(c *scene.Canvas, limits Limits) *PanZoom {
	return &PanZoom{canvas: c, limits: limits}
}

// SetImage sets the image the viewport is clamped against.
func (p *PanZoom) SetImage(img *scene.Image) { p.image = img }

// Panning reports whether a drag is in progress.
func (p *PanZoom) Panning() bool { return p.panning }

// Down starts a pan anchored at the viewport point pos.
func (p *PanZoom) Down(pos geom.Point) {
	p.panning = true
	p.last = pos
	p.canvas.SetCursor("grabbing")
}

// Move pans by the distance from the previous anchor to pos.
func (p *PanZoom) Move(pos geom.Point) {
	if !p.panning {
		return
	}
	p.canvas.SetCursor("grabbing")
	p.canvas.RelativePan(r2.Sub(pos, p.last))
	p.last = pos
	p.Clamp()
	p.canvas.RequestRenderAll()
}

// TouchMove handles a touch snapshot. One finger pans; two fingers zoom by
// the change in their spread and pan by the movement of their centre. The
// pinch baseline resets whenever the number of fingers changes.
func (p *PanZoom) TouchMove(touches []geom.Point) {
	n := len(touches)
	if n == 0 {
		return
	}
	center := touches[0]
	if n >= 2 {
		center = geom.TouchCenter(touches[0], touches[1])
	}
	if n != p.lastTouchCount {
		p.lastTouchCount = n
		p.panning = true
		p.last = center
		p.pinchStartDistance = 0
		if n >= 2 {
			p.pinchStartDistance = geom.TouchDistance(touches[0], touches[1])
			p.pinchStartZoom = p.canvas.Zoom()
		}
		return
	}
	if n >= 2 && p.pinchStartDistance > 0 {
		dist := geom.TouchDistance(touches[0], touches[1])
		p.canvas.ZoomToPoint(center, p.clampZoom(p.pinchStartZoom*dist/p.pinchStartDistance))
	}
	p.canvas.RelativePan(r2.Sub(center, p.last))
	p.last = center
	p.Clamp()
	p.canvas.RequestRenderAll()
}

// Up ends any pan or pinch.
func (p *PanZoom) Up() {
	p.panning = false
	p.lastTouchCount = 0
	p.pinchStartDistance = 0
	p.pinchStartZoom = 0
	p.canvas.RequestRenderAll()
}

// WheelZoom zooms one step about the viewport point pos, out for a
// positive deltaY and in otherwise.
func (p *PanZoom) WheelZoom(pos geom.Point, deltaY float64) {
	factor := 1 + p.limits.ZoomStep
	if deltaY > 0 {
		factor = 1 - p.limits.ZoomStep
	}
	p.ZoomBy(factor, pos)
}

// ZoomBy multiplies the zoom by factor about the viewport point pos.
func (p *PanZoom) ZoomBy(factor float64, pos geom.Point) {
	p.canvas.ZoomToPoint(pos, p.clampZoom(p.canvas.Zoom()*factor))
	p.Clamp()
	p.canvas.RequestRenderAll()
}

// Wheel scrolls the viewport along one axis. Horizontal scrolling uses
// deltaX when the device reports it and deltaY otherwise.
func (p *PanZoom) Wheel(deltaX, deltaY float64, vertical bool) {
	vpt := p.canvas.ViewportTransform()
	if vertical {
		vpt[5] -= deltaY * p.limits.ScrollFactor
	} else {
		d := deltaX
		if d == 0 {
			d = deltaY
		}
		vpt[4] -= d * p.limits.ScrollFactor
	}
	p.canvas.SetViewportTransform(vpt)
	p.Clamp()
	p.canvas.RequestRenderAll()
}

// Clamp keeps at least Padding pixels of the image inside the viewport.
func (p *PanZoom) Clamp() {
	if p.image == nil {
		return
	}
	zoom := p.canvas.Zoom()
	w, h := p.image.Size()
	pad := p.limits.Padding
	vpt := p.canvas.ViewportTransform()
	vpt[4] = geom.Clamp(vpt[4], -(w*zoom)+pad, p.canvas.Width()-pad)
	vpt[5] = geom.Clamp(vpt[5], -(h*zoom)+pad, p.canvas.Height()-pad)
	p.canvas.SetViewportTransform(vpt)
}

// ScaleToFit zooms so img fits the viewport, never above 100%.
func (p *PanZoom) ScaleToFit(img *scene.Image) {
	w, h := img.Size()
	if w == 0 || h == 0 {
		return
	}
	p.canvas.SetZoom(math.Min(math.Min(p.canvas.Width()/w, p.canvas.Height()/h), 1))
}

// FitContain centres img in the viewport at the current zoom.
func (p *PanZoom) FitContain(img *scene.Image) {
	w, h := img.Size()
	zoom := p.canvas.Zoom()
	center := geom.Pt((p.canvas.Width()-w*zoom)/2, (p.canvas.Height()-h*zoom)/2)
	p.canvas.AbsolutePan(r2.Scale(-1, center))
	p.canvas.RequestRenderAll()
}

func (p *PanZoom) clampZoom(z float64) float64 {
	return geom.Clamp(z, p.limits.MinZoom, p.limits.MaxZoom)
}
