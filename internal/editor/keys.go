package editor

import (
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/cutout/internal/geom"
	"github.com/example/cutout/internal/input"
	"github.com/example/cutout/internal/scene"
)

var modeKeys = map[key.Code]Mode{
	key.CodeP: PanZoom,
	key.CodeV: Select,
	key.CodeL: Lasso,
	key.CodeR: Rect,
	key.CodeE: Ellipse,
	key.CodeT: Text,
}

// KeyPress handles a key event and reports whether it was used. While a
// text box is being edited printable keys go to it.
func (s *Session) KeyPress(e key.Event) bool {
	if s.closed || e.Direction == key.DirRelease {
		return false
	}
	mods := input.FromKeyModifiers(e.Modifiers)
	ctrl := mods.Ctrl || mods.Meta

	if t := s.editingText(); t != nil {
		switch {
		case e.Code == key.CodeEscape || e.Code == key.CodeReturnEnter:
			s.canvas.DiscardActiveObject()
			s.canvas.RequestRenderAll()
			return true
		case e.Code == key.CodeDeleteBackspace:
			t.Backspace()
			s.canvas.RequestRenderAll()
			return true
		case !ctrl && e.Rune > 0 && unicode.IsPrint(e.Rune):
			t.Insert(string(e.Rune))
			s.canvas.RequestRenderAll()
			return true
		case !ctrl:
			return false
		}
	}

	if ctrl {
		switch e.Code {
		case key.CodeZ:
			if mods.Shift {
				return s.Redo()
			}
			return s.Undo()
		case key.CodeY:
			return s.Redo()
		}
		return false
	}

	if m, ok := modeKeys[e.Code]; ok {
		s.SwitchMode(m)
		return true
	}

	center := geom.Pt(s.canvas.Width()/2, s.canvas.Height()/2)
	step := s.settings.Limits.ZoomStep
	switch e.Code {
	case key.CodeEqualSign, key.CodeKeypadPlusSign:
		s.panZoom.ZoomBy(1+step, center)
		s.notify()
	case key.CodeHyphenMinus, key.CodeKeypadHyphenMinus:
		s.panZoom.ZoomBy(1-step, center)
		s.notify()
	case key.Code0, key.CodeKeypad0:
		s.Fit()
	case key.CodeLeftArrow:
		return s.nudge(-1, 0, mods.Shift)
	case key.CodeRightArrow:
		return s.nudge(1, 0, mods.Shift)
	case key.CodeUpArrow:
		return s.nudge(0, -1, mods.Shift)
	case key.CodeDownArrow:
		return s.nudge(0, 1, mods.Shift)
	case key.CodeComma:
		return s.rotateSelected(-s.settings.RotateStep)
	case key.CodeFullStop:
		return s.rotateSelected(s.settings.RotateStep)
	case key.CodeDeleteForward, key.CodeDeleteBackspace:
		obj := s.selected()
		if obj == nil {
			return false
		}
		return s.RemoveObject(obj, "")
	case key.CodeEscape:
		if s.active {
			s.cancelGesture()
		} else {
			s.canvas.DiscardActiveObject()
			s.canvas.RequestRenderAll()
		}
	default:
		return false
	}
	return true
}

func (s *Session) selected() scene.Object {
	if s.mode == PanZoom || s.active {
		return nil
	}
	obj := s.canvas.ActiveObject()
	if !selectable(obj) {
		return nil
	}
	return obj
}

// nudge moves the selected object by one step, ten with shift.
func (s *Session) nudge(dx, dy float64, big bool) bool {
	obj := s.selected()
	if obj == nil {
		return false
	}
	step := s.settings.NudgeStep
	if big {
		step *= 10
	}
	b := obj.Base()
	b.Left += dx * step
	b.Top += dy * step
	scene.Fire(obj, scene.EventModified)
	s.canvas.RequestRenderAll()
	return true
}

func (s *Session) rotateSelected(deg float64) bool {
	obj := s.selected()
	if obj == nil {
		return false
	}
	scene.Rotate(obj, deg)
	scene.Fire(obj, scene.EventModified)
	s.canvas.RequestRenderAll()
	return true
}
