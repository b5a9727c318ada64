package appstate

import "image"

const (
	timelineWidth = 220
	bottomHeight  = 24
	buttonHeight  = 24
	rowHeight     = 18
)

// toolbarWidth grows at start up to fit the widest mode label.
var toolbarWidth = 80

// layout splits the window into the toolbar on the left, the history
// timeline on the right, the shortcut bar along the bottom and the canvas
// in between.
type layout struct {
	width, height int
}

func (l layout) toolbar() image.Rectangle {
	return image.Rect(0, 0, toolbarWidth, l.height-bottomHeight)
}

func (l layout) canvas() image.Rectangle {
	right := max(toolbarWidth, l.width-timelineWidth)
	return image.Rect(toolbarWidth, 0, right, max(0, l.height-bottomHeight))
}

func (l layout) timeline() image.Rectangle {
	left := max(toolbarWidth, l.width-timelineWidth)
	return image.Rect(left, 0, l.width, max(0, l.height-bottomHeight))
}

func (l layout) bottom() image.Rectangle {
	return image.Rect(0, max(0, l.height-bottomHeight), l.width, l.height)
}

// windowFor is the window size that shows a canvas of the given size.
func windowFor(canvasW, canvasH int) (int, int) {
	return canvasW + toolbarWidth + timelineWidth, canvasH + bottomHeight
}

// timelineRows is how many history rows fit under the panel header.
func (l layout) timelineRows() int {
	return max(0, (l.timeline().Dy()-rowHeight)/rowHeight)
}

// timelineFirst is the first visible entry so that current stays on screen.
func timelineFirst(total, current, rows int) int {
	if rows <= 0 || total <= rows {
		return 0
	}
	first := total - rows
	if current < first {
		first = current
	}
	return max(0, first)
}

// timelineRow returns the rectangle of the i-th visible row.
func (l layout) timelineRow(i int) image.Rectangle {
	t := l.timeline()
	top := t.Min.Y + rowHeight + i*rowHeight
	return image.Rect(t.Min.X, top, t.Max.X, top+rowHeight)
}
