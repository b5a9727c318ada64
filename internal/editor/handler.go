package editor

import (
	"github.com/example/cutout/internal/geom"
	"github.com/example/cutout/internal/input"
	"github.com/example/cutout/internal/scene"
	"github.com/example/cutout/internal/tools"
)

// Event is a pointer event resolved against the canvas.
type Event struct {
	Input    input.Input
	Viewport geom.Point
	Scene    geom.Point
	// Target is the object under the pointer, if hit-testing is on.
	Target scene.Object
	// Touches holds every finger's viewport position for touch input.
	Touches []geom.Point
}

// Handler is the behaviour of one mode for a single gesture.
type Handler interface {
	Down(e Event)
	Move(e Event)
	Up()
}

// undoer is implemented by handlers that can abandon a gesture in
// progress.
type undoer interface {
	Undo()
}

func selectable(o scene.Object) bool { return o != nil && o.Base().Selectable }

type panZoomHandler struct{ s *Session }

func (h panZoomHandler) Down(e Event) { h.s.panZoom.Down(e.Viewport) }

func (h panZoomHandler) Move(e Event) {
	if e.Input.Device == input.DeviceTouch {
		h.s.panZoom.TouchMove(e.Touches)
		return
	}
	h.s.panZoom.Move(e.Viewport)
}

func (h panZoomHandler) Up() { h.s.panZoom.Up() }

type clipHandler struct {
	s    *Session
	kind tools.ClipKind
}

// Down starts a drawing unless the press lands on an object, which the
// canvas then moves instead. An existing clip is cleared first, as its own
// history step.
func (h clipHandler) Down(e Event) {
	if selectable(e.Target) {
		return
	}
	if h.s.clip != nil {
		h.s.clearClip("Clear clip")
	}
	h.s.clips.Down(h.kind, e.Scene)
}

func (h clipHandler) Move(e Event) { h.s.clips.Move(e.Scene) }

func (h clipHandler) Up() {
	if final := h.s.clips.Up(); final != nil {
		h.s.commitClip(final, Mode(h.kind))
	}
}

func (h clipHandler) Undo() { h.s.clips.Undo() }

type selectHandler struct{ s *Session }

func (selectHandler) Down(Event) {}
func (selectHandler) Move(Event) {}
func (selectHandler) Up()        {}

func (h selectHandler) Undo() { h.s.undoTransform(h.s.canvas.ActiveObject()) }

type textHandler struct{ s *Session }

func (h textHandler) Down(e Event) {
	if selectable(e.Target) {
		return
	}
	h.s.text.Down(e.Scene)
}

func (textHandler) Move(Event) {}
func (textHandler) Up()        {}
