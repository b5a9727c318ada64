package tools

import (
	"golang.org/x/image/colornames"

	"github.com/example/cutout/internal/geom"
	"github.com/example/cutout/internal/scene"
)

// DefaultFontSize is the size new text boxes start with.
const DefaultFontSize = 24

// DefaultTextStyle paints text solid black.
func DefaultTextStyle() scene.Style { return scene.Style{Fill: colornames.Black} }

// TextOption configures a TextTool.
type TextOption func(*TextTool)

// WithTextCommit sets the callback run when a non-empty text box leaves
// edit mode for the first time.
func WithTextCommit(fn func(*scene.Text)) TextOption { return func(t *TextTool) { t.onCommit = fn } }

// WithFontSize sets the size of new boxes.
func WithFontSize(size float64) TextOption { return func(t *TextTool) { t.fontSize = size } }

// WithTextStyle sets the style of new boxes.
func WithTextStyle(s scene.Style) TextOption { return func(t *TextTool) { t.style = s } }

// TextTool places editable text boxes.
type TextTool struct {
	canvas   *scene.Canvas
	fontSize float64
	style    scene.Style
	onCommit func(*scene.Text)
}

// NewTextTool creates a text tool on c.
func NewTextTool(c *scene.Canvas, opts ...TextOption) *TextTool {
	t := &TextTool{
		canvas:   c,
		fontSize: DefaultFontSize,
		style:    DefaultTextStyle(),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Down places an empty box at the scene point p, makes it active and
// starts editing with everything selected. When editing ends a blank box
// is removed; otherwise the commit callback receives it.
func (t *TextTool) Down(p geom.Point) *scene.Text {
	box := scene.NewText(p, "", t.fontSize)
	box.Style = t.style
	t.canvas.Add(box)
	t.canvas.SetActiveObject(box)
	box.EnterEditing()
	box.SelectAll()

	var h scene.Handle
	h = scene.On(box, scene.EventEditingExited, func() {
		h.Off()
		if box.Blank() {
			t.canvas.Remove(box)
			t.canvas.RequestRenderAll()
			return
		}
		if t.onCommit != nil {
			t.onCommit(box)
		}
	})
	t.canvas.RequestRenderAll()
	return box
}
