package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/cutout/internal/geom"
)

// TransformAction is the kind of gesture a pointer starts on an object.
type TransformAction int

const (
	ActionNone TransformAction = iota
	ActionMove
	ActionScale
	ActionRotate
)

const (
	// controlRadius is the pick distance around a handle in viewport pixels.
	controlRadius = 6
	// rotateOffset is the distance of the rotation handle above the top edge.
	rotateOffset = 24
)

type objectTransform struct {
	target     Object
	action     TransformAction
	original   Transform
	start      geom.Point
	center     geom.Point
	startAngle float64
	startDist  float64
	performed  bool
}

// Controls returns obj's corner handles and rotation handle in viewport
// coordinates.
func (c *Canvas) Controls(obj Object) (corners [4]geom.Point, rotation geom.Point) {
	sc := Corners(obj)
	for i, p := range sc {
		corners[i] = c.ViewportPoint(p)
	}
	center := c.ViewportPoint(Center(obj))
	topMid := r2.Scale(0.5, r2.Add(corners[0], corners[1]))
	dir := r2.Sub(topMid, center)
	if n := r2.Norm(dir); n > 0 {
		dir = r2.Scale(1/n, dir)
	} else {
		dir = geom.Pt(0, -1)
	}
	return corners, r2.Add(topMid, r2.Scale(rotateOffset, dir))
}

// ControlAt reports which gesture a press at viewport point p would start
// on obj.
func (c *Canvas) ControlAt(obj Object, p geom.Point) TransformAction {
	b := obj.Base()
	if !b.Selectable {
		return ActionNone
	}
	if b.HasControls && c.active == obj {
		corners, rot := c.Controls(obj)
		if geom.TouchDistance(rot, p) <= controlRadius {
			return ActionRotate
		}
		for _, corner := range corners {
			if geom.TouchDistance(corner, p) <= controlRadius {
				return ActionScale
			}
		}
	}
	if ContainsPoint(obj, c.ScenePoint(p)) {
		return ActionMove
	}
	return ActionNone
}

// BeginTransform starts a move, scale or rotate gesture on obj at viewport
// point p. It reports false when p does not touch obj.
func (c *Canvas) BeginTransform(obj Object, p geom.Point) bool {
	action := c.ControlAt(obj, p)
	if action == ActionNone {
		return false
	}
	sp := c.ScenePoint(p)
	center := Center(obj)
	d := r2.Sub(sp, center)
	c.current = &objectTransform{
		target:     obj,
		action:     action,
		original:   obj.Base().Transform(),
		start:      sp,
		center:     center,
		startAngle: math.Atan2(d.Y, d.X),
		startDist:  r2.Norm(d),
	}
	return true
}

// DragTransform updates the gesture in progress for viewport point p.
func (c *Canvas) DragTransform(p geom.Point) {
	t := c.current
	if t == nil {
		return
	}
	sp := c.ScenePoint(p)
	b := t.target.Base()
	switch t.action {
	case ActionMove:
		d := r2.Sub(sp, t.start)
		b.Left = t.original.Left + d.X
		b.Top = t.original.Top + d.Y
	case ActionScale:
		if t.startDist == 0 {
			return
		}
		f := r2.Norm(r2.Sub(sp, t.center)) / t.startDist
		b.SetTransform(t.original)
		b.ScaleX = t.original.ScaleX * f
		b.ScaleY = t.original.ScaleY * f
		keepCenter(t.target, t.center)
	case ActionRotate:
		d := r2.Sub(sp, t.center)
		delta := (math.Atan2(d.Y, d.X) - t.startAngle) * 180 / math.Pi
		b.SetTransform(t.original)
		b.Angle = normaliseAngle(t.original.Angle + delta)
		keepCenter(t.target, t.center)
	}
	t.performed = true
}

// CommitTransform finishes the gesture in progress. Observers of
// EventModified run only when the transform actually changed.
func (c *Canvas) CommitTransform() {
	t := c.current
	c.current = nil
	if t == nil || !t.performed {
		return
	}
	if t.target.Base().Transform() != t.original {
		t.target.Base().fire(EventModified)
	}
}

// EndCurrentTransform drops the gesture in progress without notifying
// anyone. The object keeps whatever transform it has at that moment.
func (c *Canvas) EndCurrentTransform() { c.current = nil }

// Transforming returns the object under an active gesture, if any.
func (c *Canvas) Transforming() Object {
	if c.current == nil {
		return nil
	}
	return c.current.target
}

// Rotate turns obj by deg degrees about its centre.
func Rotate(obj Object, deg float64) {
	center := Center(obj)
	b := obj.Base()
	b.Angle = normaliseAngle(b.Angle + deg)
	keepCenter(obj, center)
}

func keepCenter(obj Object, center geom.Point) {
	d := r2.Sub(center, Center(obj))
	b := obj.Base()
	b.Left += d.X
	b.Top += d.Y
}

func normaliseAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
