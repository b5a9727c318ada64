package editor

import "github.com/example/cutout/internal/tools"

// Mode selects what a primary-button drag does.
type Mode string

const (
	PanZoom Mode = "panZoom"
	Select  Mode = "select"
	Lasso   Mode = Mode(tools.Lasso)
	Rect    Mode = Mode(tools.Rect)
	Ellipse Mode = Mode(tools.Ellipse)
	Text    Mode = "text"
)

// Modes lists every mode in toolbar order.
var Modes = []Mode{PanZoom, Select, Lasso, Rect, Ellipse, Text}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	for _, k := range Modes {
		if k == m {
			return true
		}
	}
	return false
}

// IsClip reports whether m draws clip shapes.
func (m Mode) IsClip() bool { return m == Lasso || m == Rect || m == Ellipse }

type cursors struct{ def, hover string }

var cursorMap = map[Mode]cursors{
	PanZoom: {"grab", "grab"},
	Select:  {"move", "pointer"},
	Lasso:   {"crosshair", "crosshair"},
	Rect:    {"crosshair", "crosshair"},
	Ellipse: {"crosshair", "crosshair"},
	Text:    {"text", "text"},
}

func cursorsFor(m Mode) cursors {
	if c, ok := cursorMap[m]; ok {
		return c
	}
	return cursors{"default", "default"}
}
