package input

import (
	"sort"

	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/example/cutout/internal/geom"
)

// wheelStep is the delta reported for one notch, matching what browsers
// report for a line-mode wheel.
const wheelStep = 100

// FromMouse converts a shiny mouse event. Wheel buttons become WheelEvent,
// everything else a MouseEvent.
func FromMouse(e mouse.Event) any {
	pos := geom.Pt(float64(e.X), float64(e.Y))
	switch e.Button {
	case mouse.ButtonWheelUp:
		return WheelEvent{Pos: pos, DeltaY: -wheelStep}
	case mouse.ButtonWheelDown:
		return WheelEvent{Pos: pos, DeltaY: wheelStep}
	case mouse.ButtonWheelLeft:
		return WheelEvent{Pos: pos, DeltaX: -wheelStep}
	case mouse.ButtonWheelRight:
		return WheelEvent{Pos: pos, DeltaX: wheelStep}
	case mouse.ButtonMiddle:
		return MouseEvent{Pos: pos, Button: ButtonMiddle}
	case mouse.ButtonRight:
		return MouseEvent{Pos: pos, Button: ButtonSecondary}
	}
	return MouseEvent{Pos: pos, Button: ButtonPrimary}
}

// TouchTracker folds per-finger touch events into snapshots of every finger
// currently down.
type TouchTracker struct {
	active map[touch.Sequence]geom.Point
}

// NewTouchTracker returns an empty tracker.
func NewTouchTracker() *TouchTracker {
	return &TouchTracker{active: make(map[touch.Sequence]geom.Point)}
}

// Update applies e and returns the remaining fingers ordered by sequence.
func (t *TouchTracker) Update(e touch.Event) TouchEvent {
	p := geom.Pt(float64(e.X), float64(e.Y))
	switch e.Type {
	case touch.TypeBegin, touch.TypeMove:
		t.active[e.Sequence] = p
	case touch.TypeEnd:
		delete(t.active, e.Sequence)
	}
	seqs := make([]touch.Sequence, 0, len(t.active))
	for s := range t.active {
		seqs = append(seqs, s)
	}
	sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })
	out := TouchEvent{Touches: make([]geom.Point, 0, len(seqs))}
	for _, s := range seqs {
		out.Touches = append(out.Touches, t.active[s])
	}
	return out
}

// Count returns how many fingers are down.
func (t *TouchTracker) Count() int { return len(t.active) }
