// Package scene is a small retained-mode scene graph: an ordered list of
// objects under a viewport transform, with selection, hit-testing, object
// transform gestures and per-object observers.
package scene

import (
	"image/color"

	"github.com/google/uuid"

	"github.com/example/cutout/internal/geom"
)

// Kind identifies the concrete object type.
type Kind string

const (
	KindImage   Kind = "image"
	KindPath    Kind = "path"
	KindRect    Kind = "rect"
	KindEllipse Kind = "ellipse"
	KindText    Kind = "text"
)

// Transform is the snapshot of the fields an object gesture can change.
type Transform struct {
	Left, Top      float64
	ScaleX, ScaleY float64
	Angle          float64
}

// Style controls how an object is painted.
type Style struct {
	Stroke      color.RGBA
	StrokeWidth float64
	// Dash alternates on and off lengths in scene units. Empty is solid.
	Dash []float64
	Fill color.RGBA
}

// Props holds the state shared by every object.
type Props struct {
	id uuid.UUID

	Left, Top      float64
	ScaleX, ScaleY float64
	Angle          float64

	Opacity     float64
	Visible     bool
	Selectable  bool
	Evented     bool
	HasControls bool
	Style       Style

	listeners map[Event][]*listener
	nextID    uint64
}

func newProps() Props {
	return Props{
		id:          uuid.New(),
		ScaleX:      1,
		ScaleY:      1,
		Opacity:     1,
		Visible:     true,
		Selectable:  true,
		Evented:     true,
		HasControls: true,
	}
}

// ID returns the object's identifier.
func (p *Props) ID() uuid.UUID { return p.id }

// Base returns p. Concrete objects inherit it by embedding Props.
func (p *Props) Base() *Props { return p }

// Transform snapshots the transform fields.
func (p *Props) Transform() Transform {
	return Transform{Left: p.Left, Top: p.Top, ScaleX: p.ScaleX, ScaleY: p.ScaleY, Angle: p.Angle}
}

// SetTransform overwrites the transform fields.
func (p *Props) SetTransform(t Transform) {
	p.Left, p.Top = t.Left, t.Top
	p.ScaleX, p.ScaleY = t.ScaleX, t.ScaleY
	p.Angle = t.Angle
}

// Object is anything the canvas can hold.
type Object interface {
	ID() uuid.UUID
	Kind() Kind
	Base() *Props
	// Size is the untransformed width and height of the object. Local
	// coordinates run from (0, 0) to Size.
	Size() (w, h float64)
}

// ObjectMatrix maps obj's local coordinates into scene coordinates.
func ObjectMatrix(obj Object) Matrix {
	p := obj.Base()
	return translate(p.Left, p.Top).Mul(rotate(p.Angle)).Mul(scale(p.ScaleX, p.ScaleY))
}

// Corners returns obj's corners in scene coordinates, clockwise from the
// top-left.
func Corners(obj Object) [4]geom.Point {
	w, h := obj.Size()
	m := ObjectMatrix(obj)
	return [4]geom.Point{
		m.Apply(geom.Pt(0, 0)),
		m.Apply(geom.Pt(w, 0)),
		m.Apply(geom.Pt(w, h)),
		m.Apply(geom.Pt(0, h)),
	}
}

// BoundingBox is the scene-space box covering obj's corners.
func BoundingBox(obj Object) geom.Rect {
	c := Corners(obj)
	return geom.Bounds(c[:])
}

// Center returns obj's centre in scene coordinates.
func Center(obj Object) geom.Point {
	w, h := obj.Size()
	return ObjectMatrix(obj).Apply(geom.Pt(w/2, h/2))
}

// ContainsPoint reports whether the scene point p falls inside obj.
func ContainsPoint(obj Object, p geom.Point) bool {
	w, h := obj.Size()
	local := ObjectMatrix(obj).Invert().Apply(p)
	return local.X >= 0 && local.X <= w && local.Y >= 0 && local.Y <= h
}
