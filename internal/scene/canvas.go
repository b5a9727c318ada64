package scene

import (
	"github.com/example/cutout/internal/geom"
)

// Canvas owns the ordered object list and the viewport that maps scene
// coordinates onto the drawing surface. It is not safe for concurrent use.
type Canvas struct {
	width, height float64
	vpt           Matrix

	objects []Object
	active  Object

	skipTargetFind bool
	defaultCursor  string
	hoverCursor    string
	cursor         string

	renders  int
	onRender func()

	current  *objectTransform
	disposed bool
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithRenderHook runs fn after every render request.
func WithRenderHook(fn func()) Option { return func(c *Canvas) { c.onRender = fn } }

// New creates an empty canvas of the given size in viewport pixels.
func New(width, height float64, opts ...Option) *Canvas {
	c := &Canvas{
		width:         width,
		height:        height,
		vpt:           Identity,
		defaultCursor: "default",
		hoverCursor:   "move",
		cursor:        "default",
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Width returns the viewport width.
func (c *Canvas) Width() float64 { return c.width }

// Height returns the viewport height.
func (c *Canvas) Height() float64 { return c.height }

// SetDimensions resizes the viewport.
func (c *Canvas) SetDimensions(width, height float64) {
	c.width, c.height = width, height
}

// Add appends objects to the top of the stack. Objects already on the
// canvas keep their place.
func (c *Canvas) Add(objs ...Object) {
	for _, o := range objs {
		if o == nil || c.IndexOf(o) >= 0 {
			continue
		}
		c.objects = append(c.objects, o)
	}
}

// Remove takes objects off the canvas and reports whether any were present.
// Removing the active object clears the selection.
func (c *Canvas) Remove(objs ...Object) bool {
	removed := false
	for _, o := range objs {
		i := c.IndexOf(o)
		if i < 0 {
			continue
		}
		c.objects = append(c.objects[:i], c.objects[i+1:]...)
		removed = true
		if c.active == o {
			c.DiscardActiveObject()
		}
		if c.current != nil && c.current.target == o {
			c.current = nil
		}
	}
	return removed
}

// InsertAt places obj at index i, clamped to the list bounds.
func (c *Canvas) InsertAt(i int, obj Object) {
	if obj == nil || c.IndexOf(obj) >= 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(c.objects) {
		i = len(c.objects)
	}
	c.objects = append(c.objects, nil)
	copy(c.objects[i+1:], c.objects[i:])
	c.objects[i] = obj
}

// IndexOf returns obj's position by identity, or -1.
func (c *Canvas) IndexOf(obj Object) int {
	for i, o := range c.objects {
		if o == obj {
			return i
		}
	}
	return -1
}

// Contains reports whether obj is on the canvas.
func (c *Canvas) Contains(obj Object) bool { return c.IndexOf(obj) >= 0 }

// Objects returns a copy of the object list, bottom first.
func (c *Canvas) Objects() []Object {
	return append([]Object(nil), c.objects...)
}

// SendToBack moves obj to the bottom of the stack.
func (c *Canvas) SendToBack(obj Object) {
	i := c.IndexOf(obj)
	if i <= 0 {
		return
	}
	copy(c.objects[1:i+1], c.objects[:i])
	c.objects[0] = obj
}

// ActiveObject returns the selected object, if any.
func (c *Canvas) ActiveObject() Object { return c.active }

// SetActiveObject selects obj.
func (c *Canvas) SetActiveObject(obj Object) {
	if c.active == obj {
		return
	}
	c.DiscardActiveObject()
	c.active = obj
	if obj != nil {
		obj.Base().fire(EventSelected)
	}
}

// DiscardActiveObject clears the selection.
func (c *Canvas) DiscardActiveObject() {
	prev := c.active
	if prev == nil {
		return
	}
	c.active = nil
	if t, ok := prev.(*Text); ok && t.Editing() {
		t.ExitEditing()
	}
	prev.Base().fire(EventDeselected)
}

// SkipTargetFind reports whether hit-testing is disabled.
func (c *Canvas) SkipTargetFind() bool { return c.skipTargetFind }

// SetSkipTargetFind toggles hit-testing.
func (c *Canvas) SetSkipTargetFind(skip bool) { c.skipTargetFind = skip }

// FindTarget returns the top-most visible, evented object under the
// viewport point p. It returns nil while hit-testing is disabled.
func (c *Canvas) FindTarget(p geom.Point) Object {
	if c.skipTargetFind {
		return nil
	}
	sp := c.ScenePoint(p)
	if c.active != nil && c.active.Base().Visible && c.ControlAt(c.active, p) != ActionNone {
		return c.active
	}
	for i := len(c.objects) - 1; i >= 0; i-- {
		o := c.objects[i]
		b := o.Base()
		if !b.Visible || !b.Evented {
			continue
		}
		if ContainsPoint(o, sp) {
			return o
		}
	}
	return nil
}

// SetCursors sets the idle and hover cursor names.
func (c *Canvas) SetCursors(def, hover string) {
	c.defaultCursor, c.hoverCursor = def, hover
	c.cursor = def
}

// DefaultCursor is the cursor shown over empty canvas.
func (c *Canvas) DefaultCursor() string { return c.defaultCursor }

// HoverCursor is the cursor shown over a target.
func (c *Canvas) HoverCursor() string { return c.hoverCursor }

// SetCursor overrides the current cursor until the next SetCursors.
func (c *Canvas) SetCursor(name string) { c.cursor = name }

// Cursor returns the cursor currently requested.
func (c *Canvas) Cursor() string { return c.cursor }

// ViewportTransform returns the scene-to-viewport transform.
func (c *Canvas) ViewportTransform() Matrix { return c.vpt }

// SetViewportTransform replaces the scene-to-viewport transform.
func (c *Canvas) SetViewportTransform(m Matrix) { c.vpt = m }

// Zoom returns the current zoom factor.
func (c *Canvas) Zoom() float64 { return c.vpt[0] }

// SetZoom zooms about the viewport origin.
func (c *Canvas) SetZoom(z float64) { c.ZoomToPoint(geom.Pt(0, 0), z) }

// ZoomToPoint sets the zoom to z while keeping the scene point under the
// viewport point p fixed.
func (c *Canvas) ZoomToPoint(p geom.Point, z float64) {
	before := c.vpt.Invert().Apply(p)
	c.vpt[0], c.vpt[3] = z, z
	after := c.vpt.Apply(before)
	c.vpt[4] += p.X - after.X
	c.vpt[5] += p.Y - after.Y
}

// RelativePan shifts the viewport by d pixels.
func (c *Canvas) RelativePan(d geom.Point) {
	c.vpt[4] += d.X
	c.vpt[5] += d.Y
}

// AbsolutePan moves the viewport so that the scene origin sits at -p.
func (c *Canvas) AbsolutePan(p geom.Point) {
	c.vpt[4] = -p.X
	c.vpt[5] = -p.Y
}

// ScenePoint converts a viewport point to scene coordinates.
func (c *Canvas) ScenePoint(p geom.Point) geom.Point { return c.vpt.Invert().Apply(p) }

// ViewportPoint converts a scene point to viewport coordinates.
func (c *Canvas) ViewportPoint(p geom.Point) geom.Point { return c.vpt.Apply(p) }

// RequestRenderAll schedules a repaint.
func (c *Canvas) RequestRenderAll() {
	if c.disposed {
		return
	}
	c.renders++
	if c.onRender != nil {
		c.onRender()
	}
}

// Renders counts render requests so far.
func (c *Canvas) Renders() int { return c.renders }

// Dispose detaches every observer and empties the canvas.
func (c *Canvas) Dispose() {
	for _, o := range c.objects {
		o.Base().offAll()
		if img, ok := o.(*Image); ok && img.Clip != nil {
			img.Clip.Base().offAll()
		}
	}
	c.objects = nil
	c.active = nil
	c.current = nil
	c.onRender = nil
	c.disposed = true
}

// Disposed reports whether Dispose has run.
func (c *Canvas) Disposed() bool { return c.disposed }
