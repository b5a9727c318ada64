package editor

import (
	"github.com/example/cutout/internal/geom"
	"github.com/example/cutout/internal/input"
	"github.com/example/cutout/internal/scene"
)

// PointerDown starts, cancels or ignores a gesture. The middle button
// always pans. The secondary button cancels the gesture in progress and
// otherwise only asks for a repaint.
func (s *Session) PointerDown(raw any) {
	if s.closed {
		return
	}
	e, ok := s.resolve(raw)
	if !ok {
		return
	}

	if e.Input.Button == input.ButtonMiddle {
		if s.active && s.button != input.ButtonMiddle {
			s.abandon()
		}
		s.handlers[PanZoom].Down(e)
		s.active = true
		s.button = input.ButtonMiddle
		return
	}

	h := s.handlers[s.mode]
	if s.active {
		if s.button != input.ButtonMiddle && e.Input.Button == input.ButtonSecondary {
			u, ok := h.(undoer)
			if !ok {
				return
			}
			s.active = false
			if obj := s.canvas.Transforming(); obj != nil {
				s.undoTransform(obj)
				return
			}
			if selectable(e.Target) && e.Target == s.canvas.ActiveObject() {
				s.undoTransform(e.Target)
				return
			}
			u.Undo()
		}
	} else {
		if e.Input.Button == input.ButtonSecondary {
			s.canvas.RequestRenderAll()
		} else {
			s.active = true
			s.pick(e)
			h.Down(e)
		}
	}
	s.button = e.Input.Button
}

// PointerMove feeds the gesture in progress.
func (s *Session) PointerMove(raw any) {
	if s.closed || !s.active {
		return
	}
	e, ok := s.resolve(raw)
	if !ok {
		return
	}
	if e.Input.Device == input.DeviceTouch && s.touchMove(e) {
		return
	}
	if s.canvas.Transforming() != nil {
		s.canvas.DragTransform(e.Viewport)
		s.canvas.RequestRenderAll()
	}
	s.handlerFor(s.button).Move(e)
}

// PointerUp finishes the gesture in progress.
func (s *Session) PointerUp(raw any) {
	if s.closed || !s.active {
		return
	}
	s.active = false
	if s.canvas.Transforming() != nil {
		s.canvas.CommitTransform()
	}
	s.handlerFor(s.button).Up()
	if s.button == input.ButtonMiddle {
		s.canvas.SetCursor(s.canvas.DefaultCursor())
	}
	s.notify()
}

// Wheel zooms or scrolls the viewport. Ctrl forces a zoom and Shift forces
// a scroll; otherwise the WheelZoom setting decides.
func (s *Session) Wheel(e input.WheelEvent) {
	if s.closed {
		return
	}
	mods := s.mods.Current()
	zoom := mods.Ctrl || (s.settings.WheelZoom && !mods.Shift)
	switch {
	case zoom && e.DeltaY != 0:
		s.panZoom.WheelZoom(e.Pos, e.DeltaY)
	case zoom:
	case mods.Shift:
		s.panZoom.Wheel(e.DeltaX, e.DeltaY, false)
	default:
		if e.DeltaX != 0 {
			s.panZoom.Wheel(e.DeltaX, 0, false)
		}
		if e.DeltaY != 0 {
			s.panZoom.Wheel(0, e.DeltaY, true)
		}
	}
	s.notify()
}

// touchMove handles touch-specific transitions and reports whether the
// event was consumed. Pan mode always pinches. Elsewhere a second finger
// abandons the drawing or object drag and turns the gesture into a pan.
func (s *Session) touchMove(e Event) bool {
	if s.mode == PanZoom || s.button == input.ButtonMiddle {
		s.panZoom.TouchMove(e.Touches)
		return true
	}
	if len(e.Touches) < 2 {
		return false
	}
	s.abandon()
	s.button = input.ButtonMiddle
	s.panZoom.TouchMove(e.Touches)
	return true
}

// pick selects and starts dragging a selectable object under a primary
// press, the way the canvas grabs objects in every mode but pan.
func (s *Session) pick(e Event) {
	if e.Input.Button != input.ButtonPrimary {
		return
	}
	if !selectable(e.Target) {
		if s.mode != PanZoom && s.mode != Text {
			s.canvas.DiscardActiveObject()
		}
		return
	}
	if s.canvas.BeginTransform(e.Target, e.Viewport) {
		s.canvas.SetActiveObject(e.Target)
	}
}

func (s *Session) handlerFor(b input.Button) Handler {
	if b == input.ButtonMiddle {
		return s.handlers[PanZoom]
	}
	return s.handlers[s.mode]
}

func (s *Session) resolve(raw any) (Event, bool) {
	pos, ok := input.Position(raw)
	if !ok {
		return Event{}, false
	}
	e := Event{
		Input:    input.Classify(raw),
		Viewport: pos,
		Scene:    s.canvas.ScenePoint(pos),
		Target:   s.canvas.FindTarget(pos),
	}
	switch t := raw.(type) {
	case input.TouchEvent:
		e.Touches = t.Touches
	case *input.TouchEvent:
		e.Touches = t.Touches
	default:
		e.Touches = []geom.Point{pos}
	}
	return e, true
}

// cancelGesture abandons whatever the pointer is doing.
func (s *Session) cancelGesture() {
	if !s.active {
		return
	}
	s.active = false
	if obj := s.canvas.Transforming(); obj != nil {
		s.undoTransform(obj)
	}
	if u, ok := s.handlerFor(s.button).(undoer); ok {
		u.Undo()
	}
	s.panZoom.Up()
}

// abandon rolls back the object drag or drawing of the current mode before
// the gesture turns into a pan.
func (s *Session) abandon() {
	if obj := s.canvas.Transforming(); obj != nil {
		s.undoTransform(obj)
	} else if u, ok := s.handlers[s.mode].(undoer); ok {
		u.Undo()
	}
}

func (s *Session) undoTransform(obj scene.Object) {
	if obj == nil {
		return
	}
	if b, ok := s.bindings[obj]; ok {
		b.undoTransform()
		return
	}
	s.canvas.EndCurrentTransform()
}
