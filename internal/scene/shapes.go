package scene

import (
	"image"
	"strings"
	"unicode/utf8"

	"github.com/example/cutout/internal/geom"
)

// Image is a raster placed at its top-left corner.
type Image struct {
	Props
	Src image.Image
	// Clip, when set, masks the image to the shape's interior. The clip is
	// expressed in scene coordinates and is not a member of the object list
	// through this field.
	Clip Object
}

// NewImage wraps src. Images are not selectable.
func NewImage(src image.Image) *Image {
	img := &Image{Props: newProps(), Src: src}
	img.Selectable = false
	img.HasControls = false
	return img
}

func (i *Image) Kind() Kind { return KindImage }

func (i *Image) Size() (float64, float64) {
	if i.Src == nil {
		return 0, 0
	}
	b := i.Src.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Path is a polyline. Points are local to the path's top-left corner.
type Path struct {
	Props
	Points []geom.Point
	Closed bool
}

// NewPath builds a path through scene points, positioning it at their
// bounding box.
func NewPath(points []geom.Point, closed bool) *Path {
	p := &Path{Props: newProps(), Closed: closed}
	p.SetPoints(points)
	return p
}

// SetPoints replaces the geometry with scene points, keeping scale and
// rotation unchanged.
func (p *Path) SetPoints(points []geom.Point) {
	b := geom.Bounds(points)
	p.Left, p.Top = b.Left, b.Top
	p.Points = make([]geom.Point, len(points))
	for i, pt := range points {
		p.Points[i] = geom.Pt(pt.X-b.Left, pt.Y-b.Top)
	}
}

// ScenePoints returns the path's vertices in scene coordinates.
func (p *Path) ScenePoints() []geom.Point {
	m := ObjectMatrix(p)
	out := make([]geom.Point, len(p.Points))
	for i, pt := range p.Points {
		out[i] = m.Apply(pt)
	}
	return out
}

func (p *Path) Kind() Kind { return KindPath }

func (p *Path) Size() (float64, float64) {
	b := geom.Bounds(p.Points)
	return b.Right(), b.Bottom()
}

// Rect is an axis aligned rectangle in local space.
type Rect struct {
	Props
	Width, Height float64
}

// NewRect builds a rectangle covering r.
func NewRect(r geom.Rect) *Rect {
	o := &Rect{Props: newProps()}
	o.SetBox(r)
	return o
}

// SetBox moves and resizes the rectangle to r.
func (r *Rect) SetBox(b geom.Rect) {
	r.Left, r.Top, r.Width, r.Height = b.Left, b.Top, b.Width, b.Height
}

func (r *Rect) Kind() Kind { return KindRect }

func (r *Rect) Size() (float64, float64) { return r.Width, r.Height }

// Ellipse is described by its radii. Left and Top address the corner of its
// bounding box.
type Ellipse struct {
	Props
	RX, RY float64
}

// NewEllipse builds the ellipse inscribed in b.
func NewEllipse(b geom.Rect) *Ellipse {
	e := &Ellipse{Props: newProps()}
	e.SetBox(b)
	return e
}

// SetBox fits the ellipse inside b.
func (e *Ellipse) SetBox(b geom.Rect) {
	e.Left, e.Top = b.Left, b.Top
	e.RX, e.RY = b.Width/2, b.Height/2
}

func (e *Ellipse) Kind() Kind { return KindEllipse }

func (e *Ellipse) Size() (float64, float64) { return 2 * e.RX, 2 * e.RY }

// Text is an editable single-line text box.
type Text struct {
	Props
	Text     string
	FontSize float64
	Editable bool

	editing  bool
	selected bool
}

// NewText places text with its top-left corner at p.
func NewText(p geom.Point, text string, size float64) *Text {
	t := &Text{Props: newProps(), Text: text, FontSize: size, Editable: true}
	t.Left, t.Top = p.X, p.Y
	return t
}

func (t *Text) Kind() Kind { return KindText }

// Size approximates the laid out text box. At least one character of width
// is kept so an empty box can still be hit.
func (t *Text) Size() (float64, float64) {
	n := utf8.RuneCountInString(t.Text)
	if n == 0 {
		n = 1
	}
	return float64(n) * t.FontSize * 0.6, t.FontSize * 1.2
}

// Editing reports whether the text box is in edit mode.
func (t *Text) Editing() bool { return t.editing }

// Selected reports whether all the text is selected.
func (t *Text) Selected() bool { return t.selected }

// EnterEditing starts edit mode.
func (t *Text) EnterEditing() {
	if t.Editable {
		t.editing = true
	}
}

// SelectAll selects the whole content so the next keystroke replaces it.
func (t *Text) SelectAll() {
	if t.editing {
		t.selected = true
	}
}

// Insert types s at the end of the text, replacing any selection.
func (t *Text) Insert(s string) {
	if !t.editing {
		return
	}
	if t.selected {
		t.Text = ""
		t.selected = false
	}
	t.Text += s
}

// Backspace deletes the selection or the last rune.
func (t *Text) Backspace() {
	if !t.editing {
		return
	}
	if t.selected {
		t.Text = ""
		t.selected = false
		return
	}
	if _, size := utf8.DecodeLastRuneInString(t.Text); size > 0 {
		t.Text = t.Text[:len(t.Text)-size]
	}
}

// ExitEditing leaves edit mode and notifies EventEditingExited observers.
func (t *Text) ExitEditing() {
	if !t.editing {
		return
	}
	t.editing = false
	t.selected = false
	t.fire(EventEditingExited)
}

// Blank reports whether the content is empty once trimmed.
func (t *Text) Blank() bool { return strings.TrimSpace(t.Text) == "" }
