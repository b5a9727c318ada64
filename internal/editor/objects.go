package editor

import (
	"fmt"

	"github.com/example/cutout/internal/history"
	"github.com/example/cutout/internal/scene"
)

// AddObject puts obj on the canvas, selects it and records an add entry.
// An empty label is derived from the object kind.
func (s *Session) AddObject(obj scene.Object, label string) {
	if s.closed || obj == nil || s.canvas.Contains(obj) {
		return
	}
	s.canvas.Add(obj)
	s.canvas.SetActiveObject(obj)
	s.bind(obj)
	s.log.Push(history.Add{Object: obj}, s.meta(label, "Add %s", obj))
	s.canvas.RequestRenderAll()
}

// ReplaceObject swaps old for obj at the same stack position and records a
// replace entry. It reports false when old is not on the canvas.
func (s *Session) ReplaceObject(old, obj scene.Object, label string) bool {
	if s.closed || obj == nil {
		return false
	}
	i := s.canvas.IndexOf(old)
	if i < 0 {
		return false
	}
	s.canvas.Remove(old)
	s.canvas.InsertAt(i, obj)
	s.unbind(old)
	s.bind(obj)
	s.log.Push(history.Replace{Old: old, New: obj}, s.meta(label, "Replace %s", obj))
	s.canvas.RequestRenderAll()
	return true
}

// RemoveObject takes obj off the canvas and records a remove entry.
// Removing the clip shape also unmasks the image.
func (s *Session) RemoveObject(obj scene.Object, label string) bool {
	if s.closed || obj == nil || !s.canvas.Contains(obj) {
		return false
	}
	if obj == s.clip {
		s.clearClip(label)
		return true
	}
	s.canvas.Remove(obj)
	s.log.Push(history.Remove{Object: obj}, s.meta(label, "Remove %s", obj))
	s.canvas.RequestRenderAll()
	return true
}

// commitClip makes shape the image's clip. The press that started the
// drawing has already cleared any previous clip.
func (s *Session) commitClip(shape scene.Object, mode Mode) {
	s.setClip(shape)
	s.log.Push(history.Composite{
		Before: func() { s.setClip(nil) },
		After:  func() { s.setClip(shape) },
	}, history.Metadata{Label: fmt.Sprintf("Clip %s", mode), Mode: string(mode)})
}

func (s *Session) clearClip(label string) {
	prev := s.clip
	if prev == nil {
		return
	}
	if label == "" {
		label = "Remove clip"
	}
	s.setClip(nil)
	s.log.Push(history.Composite{
		Before: func() { s.setClip(prev) },
		After:  func() { s.setClip(nil) },
	}, history.Metadata{Label: label, Mode: string(s.mode)})
}

func (s *Session) setClip(shape scene.Object) {
	if s.clip != nil && s.clip != shape {
		s.canvas.Remove(s.clip)
	}
	s.clip = shape
	if s.images.Active != nil {
		s.images.Active.Clip = shape
	}
	if shape != nil {
		s.canvas.Add(shape)
		s.bind(shape)
		if s.mode.IsClip() {
			s.canvas.SetActiveObject(shape)
		}
	}
	s.canvas.RequestRenderAll()
}

func (s *Session) commitText(t *scene.Text) {
	s.bind(t)
	s.log.Push(history.Add{Object: t}, history.Metadata{Label: "Add text", Mode: string(Text)})
}

// finishEditing ends text entry so the text box commits before anything
// else touches the history.
func (s *Session) finishEditing() {
	if t, ok := s.canvas.ActiveObject().(*scene.Text); ok && t.Editing() {
		t.ExitEditing()
		s.canvas.RequestRenderAll()
	}
}

func (s *Session) editingText() *scene.Text {
	if t, ok := s.canvas.ActiveObject().(*scene.Text); ok && t.Editing() {
		return t
	}
	return nil
}

// bind tracks obj's transforms: a committed gesture that changes the
// transform records a history entry, and undoTransform rolls an
// uncommitted one back. Any earlier binding is dropped first.
func (s *Session) bind(obj scene.Object) {
	s.unbind(obj)
	b := &binding{baseline: obj.Base().Transform()}
	b.undoTransform = func() {
		obj.Base().SetTransform(b.baseline)
		s.canvas.EndCurrentTransform()
		s.canvas.RequestRenderAll()
	}
	b.handles = append(b.handles, scene.On(obj, scene.EventModified, func() {
		after := obj.Base().Transform()
		if after == b.baseline {
			return
		}
		before := b.baseline
		b.baseline = after
		s.log.Push(history.Transform{Object: obj, Before: before, After: after},
			history.Metadata{Label: fmt.Sprintf("Transform %s", obj.Kind()), Mode: string(s.mode)})
	}))
	s.bindings[obj] = b
}

func (s *Session) unbind(obj scene.Object) {
	b, ok := s.bindings[obj]
	if !ok {
		return
	}
	for _, h := range b.handles {
		h.Off()
	}
	delete(s.bindings, obj)
}

func (s *Session) meta(label, format string, obj scene.Object) history.Metadata {
	if label == "" {
		label = fmt.Sprintf(format, obj.Kind())
	}
	return history.Metadata{Label: label, Mode: string(s.mode)}
}
