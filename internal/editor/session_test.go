package editor

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"

	"github.com/example/cutout/internal/geom"
	"github.com/example/cutout/internal/history"
	"github.com/example/cutout/internal/input"
	"github.com/example/cutout/internal/render"
	"github.com/example/cutout/internal/scene"
)

// With a 400x300 image in an 800x600 viewport the image sits at zoom 1,
// offset (200, 150). Viewport point (x, y) is scene point (x-200, y-150).
func openSession(t *testing.T, mods input.ModifierSource) *Session {
	t.Helper()
	src := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	s, err := Open(context.Background(), Params{
		Source:    "test.png",
		Width:     800,
		Height:    600,
		Modifiers: mods,
		Load: func(context.Context, string) (image.Image, error) {
			return src, nil
		},
	})
	require.NoError(t, err)
	return s
}

func mouse(x, y float64, b input.Button) input.MouseEvent {
	return input.MouseEvent{Pos: geom.Pt(x, y), Button: b}
}

func drag(s *Session, b input.Button, pts ...geom.Point) {
	s.PointerDown(input.MouseEvent{Pos: pts[0], Button: b})
	for _, p := range pts[1:] {
		s.PointerMove(input.MouseEvent{Pos: p, Button: b})
	}
	s.PointerUp(input.MouseEvent{Pos: pts[len(pts)-1], Button: b})
}

func touches(pts ...geom.Point) input.TouchEvent { return input.TouchEvent{Touches: pts} }

func press(code key.Code, r rune, mods key.Modifiers) key.Event {
	return key.Event{Code: code, Rune: r, Modifiers: mods, Direction: key.DirPress}
}

func TestOpenLoadFailure(t *testing.T) {
	boom := errors.New("boom")
	s, err := Open(context.Background(), Params{
		Source: "missing.png",
		Width:  800,
		Height: 600,
		Load: func(context.Context, string) (image.Image, error) {
			return nil, boom
		},
	})
	assert.Nil(t, s)
	assert.ErrorIs(t, err, boom)
}

func TestOpen(t *testing.T) {
	s := openSession(t, nil)
	imgs := s.Images()
	require.NotNil(t, imgs.Active)
	require.NotNil(t, imgs.Original)
	assert.NotSame(t, imgs.Active, imgs.Original)
	assert.Equal(t, []scene.Object{imgs.Original, imgs.Active}, s.Canvas().Objects())
	assert.Equal(t, 0.0, imgs.Original.Opacity, "dimmed copy hidden outside clip modes")

	assert.Equal(t, PanZoom, s.Mode())
	assert.Equal(t, 1.0, s.Zoom())
	vpt := s.Canvas().ViewportTransform()
	assert.Equal(t, 200.0, vpt[4])
	assert.Equal(t, 150.0, vpt[5])
	assert.True(t, s.Canvas().SkipTargetFind())
	assert.Equal(t, "grab", s.Cursor())

	h := s.History()
	require.Len(t, h.Entries, 1)
	assert.Equal(t, history.RootLabel, h.Entries[0].Meta.Label)
	assert.Equal(t, 0, h.Index)
	assert.False(t, h.CanUndo)
	assert.False(t, h.CanRedo)
}

func TestSwitchMode(t *testing.T) {
	s := openSession(t, nil)
	changes := 0
	s.OnChange(func() { changes++ })

	s.SwitchMode(Lasso)
	assert.Equal(t, Lasso, s.Mode())
	assert.Equal(t, 0.3, s.Images().Original.Opacity)
	assert.False(t, s.Canvas().SkipTargetFind())
	assert.Equal(t, "crosshair", s.Cursor())
	assert.Equal(t, 1, changes)

	s.SwitchMode(Lasso)
	assert.Equal(t, 1, changes, "switching to the current mode is a no-op")

	s.SwitchMode(Select)
	assert.Equal(t, 0.0, s.Images().Original.Opacity)
	assert.Equal(t, "move", s.Canvas().DefaultCursor())
	assert.Equal(t, "pointer", s.Canvas().HoverCursor())

	s.SwitchMode("bogus")
	assert.Equal(t, Select, s.Mode())
}

func TestMiddleButtonAlwaysPans(t *testing.T) {
	s := openSession(t, nil)
	s.SwitchMode(Lasso)

	s.PointerDown(mouse(300, 300, input.ButtonMiddle))
	assert.Len(t, s.Canvas().Objects(), 2, "no lasso preview")
	s.PointerMove(mouse(350, 320, input.ButtonMiddle))
	s.PointerUp(mouse(350, 320, input.ButtonMiddle))

	vpt := s.Canvas().ViewportTransform()
	assert.Equal(t, 250.0, vpt[4])
	assert.Equal(t, 170.0, vpt[5])
	assert.Nil(t, s.Clip())
	assert.Len(t, s.History().Entries, 1)
	assert.Equal(t, "crosshair", s.Cursor())
}

func TestSecondaryWhileIdleOnlyRenders(t *testing.T) {
	s := openSession(t, nil)
	s.SwitchMode(Rect)
	renders := s.Canvas().Renders()
	objects := s.Canvas().Objects()

	s.PointerDown(mouse(300, 300, input.ButtonSecondary))
	assert.Equal(t, renders+1, s.Canvas().Renders())
	assert.False(t, s.Active())
	assert.Equal(t, objects, s.Canvas().Objects())
	assert.Len(t, s.History().Entries, 1)

	s.PointerUp(mouse(300, 300, input.ButtonSecondary))
	assert.Nil(t, s.Clip())
}

func TestRectClipUndoRedoRestoresMode(t *testing.T) {
	s := openSession(t, nil)
	s.SwitchMode(Rect)
	drag(s, input.ButtonPrimary, geom.Pt(300, 250), geom.Pt(350, 300), geom.Pt(400, 350))

	h := s.History()
	require.Len(t, h.Entries, 2)
	assert.Equal(t, "default", h.Entries[1].Entry.Kind())
	assert.Equal(t, string(Rect), h.Entries[1].Meta.Mode)

	clip := s.Clip()
	require.NotNil(t, clip)
	assert.Same(t, clip, s.Images().Active.Clip)
	assert.True(t, s.Canvas().Contains(clip))
	assert.Same(t, clip, s.Canvas().ActiveObject())
	assert.Equal(t, geom.Rect{Left: 100, Top: 100, Width: 100, Height: 100}, scene.BoundingBox(clip))

	require.True(t, s.Undo())
	assert.Nil(t, s.Clip())
	assert.Nil(t, s.Images().Active.Clip)
	assert.False(t, s.Canvas().Contains(clip))
	assert.Equal(t, PanZoom, s.Mode())

	require.True(t, s.Redo())
	assert.Same(t, clip, s.Clip())
	assert.True(t, s.Canvas().Contains(clip))
	assert.Equal(t, Rect, s.Mode())
}

func TestSmallClipIsDiscarded(t *testing.T) {
	s := openSession(t, nil)
	s.SwitchMode(Rect)
	drag(s, input.ButtonPrimary, geom.Pt(300, 250), geom.Pt(310, 260))

	assert.Nil(t, s.Clip())
	assert.Len(t, s.Canvas().Objects(), 2)
	assert.Len(t, s.History().Entries, 1)
}

func TestNewClipReplacesOld(t *testing.T) {
	s := openSession(t, nil)
	s.SwitchMode(Ellipse)
	drag(s, input.ButtonPrimary, geom.Pt(210, 160), geom.Pt(260, 210))
	first := s.Clip()
	require.NotNil(t, first)

	s.SwitchMode(Lasso)
	drag(s, input.ButtonPrimary, geom.Pt(400, 300), geom.Pt(500, 300), geom.Pt(500, 400), geom.Pt(400, 400))
	second := s.Clip()
	require.NotNil(t, second)
	assert.False(t, s.Canvas().Contains(first))
	h := s.History()
	require.Len(t, h.Entries, 4)
	assert.Equal(t, "Clear clip", h.Entries[2].Meta.Label)

	s.Undo()
	assert.Nil(t, s.Clip())
	assert.False(t, s.Canvas().Contains(second))
	s.Undo()
	assert.Same(t, first, s.Clip())
	assert.True(t, s.Canvas().Contains(first))
	assert.False(t, s.Canvas().Contains(second))
	assert.Equal(t, Ellipse, s.Mode())
}

func TestDiscardedDrawingStillClearsClip(t *testing.T) {
	s, old := clipSession(t)
	drag(s, input.ButtonPrimary, geom.Pt(210, 160), geom.Pt(215, 165))

	assert.Nil(t, s.Clip())
	assert.Nil(t, s.Images().Active.Clip)
	assert.False(t, s.Canvas().Contains(old))
	h := s.History()
	require.Len(t, h.Entries, 3)
	assert.Equal(t, "Clear clip", h.Entries[2].Meta.Label)

	require.True(t, s.Undo())
	assert.Same(t, old, s.Clip())
	assert.Same(t, old, s.Images().Active.Clip)
	assert.True(t, s.Canvas().Contains(old))
}

func TestMiddlePressAbandonsDrawing(t *testing.T) {
	s := openSession(t, nil)
	s.SwitchMode(Lasso)
	s.PointerDown(mouse(210, 160, input.ButtonPrimary))
	s.PointerMove(mouse(260, 160, input.ButtonPrimary))
	assert.Len(t, s.Canvas().Objects(), 3)

	s.PointerDown(mouse(260, 160, input.ButtonMiddle))
	assert.Len(t, s.Canvas().Objects(), 2, "lasso preview removed")
	s.PointerMove(mouse(270, 170, input.ButtonMiddle))
	s.PointerUp(mouse(270, 170, input.ButtonMiddle))
	assert.Nil(t, s.Clip())
	assert.Len(t, s.History().Entries, 1)

	// The pan moved the image by (10, 10), so viewport (x, y) is scene
	// (x-210, y-160).
	drag(s, input.ButtonPrimary,
		geom.Pt(300, 250), geom.Pt(400, 250), geom.Pt(400, 350), geom.Pt(300, 350))
	clip, ok := s.Clip().(*scene.Path)
	require.True(t, ok)
	pts := clip.ScenePoints()
	require.Len(t, pts, 5)
	assert.Equal(t, geom.Pt(90, 90), pts[0], "new drawing starts at the press")
	assert.Equal(t, pts[0], pts[4])
}

func TestSecondaryCancelsDrawing(t *testing.T) {
	s := openSession(t, nil)
	s.SwitchMode(Rect)
	s.PointerDown(mouse(300, 250, input.ButtonPrimary))
	s.PointerMove(mouse(400, 350, input.ButtonPrimary))
	assert.Len(t, s.Canvas().Objects(), 3, "preview on canvas")

	s.PointerDown(mouse(400, 350, input.ButtonSecondary))
	assert.False(t, s.Active())
	assert.Len(t, s.Canvas().Objects(), 2, "preview removed")

	s.PointerUp(mouse(400, 350, input.ButtonPrimary))
	assert.Nil(t, s.Clip())
	assert.Len(t, s.History().Entries, 1)

	drag(s, input.ButtonPrimary, geom.Pt(300, 250), geom.Pt(400, 350))
	assert.NotNil(t, s.Clip(), "next press starts clean")
}

func clipSession(t *testing.T) (*Session, scene.Object) {
	t.Helper()
	s := openSession(t, nil)
	s.SwitchMode(Rect)
	drag(s, input.ButtonPrimary, geom.Pt(300, 250), geom.Pt(400, 350))
	clip := s.Clip()
	require.NotNil(t, clip)
	return s, clip
}

func TestNoOpDragRecordsNothing(t *testing.T) {
	s, clip := clipSession(t)
	before := clip.Base().Transform()

	drag(s, input.ButtonPrimary, geom.Pt(350, 300), geom.Pt(380, 320), geom.Pt(350, 300))
	assert.Equal(t, before, clip.Base().Transform())
	assert.Len(t, s.History().Entries, 2)
	assert.Same(t, clip, s.Clip(), "pressing on the shape does not start a new drawing")
}

func TestDragRecordsTransform(t *testing.T) {
	s, clip := clipSession(t)
	before := clip.Base().Transform()

	drag(s, input.ButtonPrimary, geom.Pt(350, 300), geom.Pt(370, 330))
	h := s.History()
	require.Len(t, h.Entries, 3)
	tr, ok := h.Entries[2].Entry.(history.Transform)
	require.True(t, ok)
	assert.Equal(t, before, tr.Before)
	assert.Equal(t, 120.0, tr.After.Left)
	assert.Equal(t, 130.0, tr.After.Top)

	s.Undo()
	assert.Equal(t, before, clip.Base().Transform())
	s.Redo()
	assert.Equal(t, tr.After, clip.Base().Transform())

	s.Undo()
	drag(s, input.ButtonPrimary, geom.Pt(350, 300), geom.Pt(360, 300))
	h = s.History()
	require.Len(t, h.Entries, 3)
	tr = h.Entries[2].Entry.(history.Transform)
	assert.Equal(t, before, tr.Before, "baseline follows undo")
	assert.False(t, h.CanRedo)
}

func TestSecondaryRestoresDraggedObject(t *testing.T) {
	s, clip := clipSession(t)
	before := clip.Base().Transform()

	s.PointerDown(mouse(350, 300, input.ButtonPrimary))
	s.PointerMove(mouse(390, 340, input.ButtonPrimary))
	assert.NotEqual(t, before, clip.Base().Transform())

	s.PointerDown(mouse(390, 340, input.ButtonSecondary))
	assert.Equal(t, before, clip.Base().Transform())
	assert.Nil(t, s.Canvas().Transforming())
	s.PointerUp(mouse(390, 340, input.ButtonPrimary))
	assert.Len(t, s.History().Entries, 2)
}

func TestPinchZoom(t *testing.T) {
	s := openSession(t, nil)
	s.PointerDown(touches(geom.Pt(350, 300), geom.Pt(450, 300)))
	s.PointerMove(touches(geom.Pt(350, 300), geom.Pt(450, 300)))
	s.PointerMove(touches(geom.Pt(325, 300), geom.Pt(475, 300)))
	assert.InDelta(t, 1.5, s.Zoom(), 1e-9)
	s.PointerMove(touches(geom.Pt(300, 300), geom.Pt(500, 300)))
	assert.InDelta(t, 2.0, s.Zoom(), 1e-9)
	s.PointerUp(touches())
	assert.False(t, s.Active())
}

func TestSecondFingerAbortsDrawing(t *testing.T) {
	s := openSession(t, nil)
	s.SwitchMode(Rect)
	s.PointerDown(touches(geom.Pt(300, 250)))
	s.PointerMove(touches(geom.Pt(400, 350)))
	assert.Len(t, s.Canvas().Objects(), 3)

	s.PointerMove(touches(geom.Pt(400, 350), geom.Pt(500, 350)))
	assert.Len(t, s.Canvas().Objects(), 2, "drawing abandoned")
	s.PointerMove(touches(geom.Pt(410, 360), geom.Pt(510, 360)))
	s.PointerUp(touches())

	assert.Nil(t, s.Clip())
	assert.Len(t, s.History().Entries, 1)
	vpt := s.Canvas().ViewportTransform()
	assert.Equal(t, 210.0, vpt[4], "rest of the gesture pans")
	assert.Equal(t, 160.0, vpt[5])
}

func TestPanClampsToPadding(t *testing.T) {
	s := openSession(t, nil)
	drag(s, input.ButtonPrimary, geom.Pt(100, 100), geom.Pt(2000, 100))
	assert.Equal(t, 800.0-80, s.Canvas().ViewportTransform()[4])

	drag(s, input.ButtonPrimary, geom.Pt(2000, 100), geom.Pt(-3000, 100))
	assert.Equal(t, -400.0+80, s.Canvas().ViewportTransform()[4])
}

func TestWheel(t *testing.T) {
	mods := &input.Modifiers{}
	s := openSession(t, mods)

	s.Wheel(input.WheelEvent{Pos: geom.Pt(400, 300), DeltaY: -100})
	assert.InDelta(t, 1.05, s.Zoom(), 1e-9)

	mods.Shift = true
	x := s.Canvas().ViewportTransform()[4]
	s.Wheel(input.WheelEvent{Pos: geom.Pt(400, 300), DeltaY: 40})
	assert.InDelta(t, 1.05, s.Zoom(), 1e-9)
	assert.InDelta(t, x-20, s.Canvas().ViewportTransform()[4], 1e-9)
}

func TestWheelScrollsWhenZoomDisabled(t *testing.T) {
	mods := &input.Modifiers{}
	settings := DefaultSettings()
	settings.WheelZoom = false
	src := image.NewRGBA(image.Rect(0, 0, 400, 300))
	s, err := Open(context.Background(), Params{
		Width: 800, Height: 600, Modifiers: mods, Settings: &settings,
		Load: func(context.Context, string) (image.Image, error) { return src, nil },
	})
	require.NoError(t, err)

	s.Wheel(input.WheelEvent{Pos: geom.Pt(400, 300), DeltaY: 40})
	assert.Equal(t, 1.0, s.Zoom())
	assert.Equal(t, 130.0, s.Canvas().ViewportTransform()[5])

	mods.Ctrl = true
	s.Wheel(input.WheelEvent{Pos: geom.Pt(400, 300), DeltaY: 40})
	assert.InDelta(t, 0.95, s.Zoom(), 1e-9)
}

func TestTextCommit(t *testing.T) {
	s := openSession(t, nil)
	s.SwitchMode(Text)
	s.PointerDown(mouse(300, 250, input.ButtonPrimary))
	s.PointerUp(mouse(300, 250, input.ButtonPrimary))

	box, ok := s.Canvas().ActiveObject().(*scene.Text)
	require.True(t, ok)
	assert.True(t, box.Editing())
	assert.Equal(t, 100.0, box.Left)

	for _, r := range "hi" {
		assert.True(t, s.KeyPress(press(key.CodeUnknown, r, 0)))
	}
	assert.True(t, s.KeyPress(press(key.CodeReturnEnter, '\n', 0)))
	assert.Equal(t, "hi", box.Text)

	h := s.History()
	require.Len(t, h.Entries, 2)
	assert.Equal(t, "add", h.Entries[1].Entry.Kind())
	assert.Equal(t, "Add text", h.Entries[1].Meta.Label)
	assert.Equal(t, string(Text), h.Entries[1].Meta.Mode)

	s.Undo()
	assert.False(t, s.Canvas().Contains(box))
	assert.Equal(t, PanZoom, s.Mode())
}

func TestBlankTextIsRemoved(t *testing.T) {
	s := openSession(t, nil)
	s.SwitchMode(Text)
	s.PointerDown(mouse(300, 250, input.ButtonPrimary))
	s.PointerUp(mouse(300, 250, input.ButtonPrimary))
	box := s.Canvas().ActiveObject()
	require.NotNil(t, box)

	s.KeyPress(press(key.CodeSpacebar, ' ', 0))
	s.KeyPress(press(key.CodeEscape, 0, 0))
	assert.False(t, s.Canvas().Contains(box))
	assert.Len(t, s.History().Entries, 1)
}

func TestUndoWhileEditingCommitsFirst(t *testing.T) {
	s := openSession(t, nil)
	s.SwitchMode(Text)
	s.PointerDown(mouse(300, 250, input.ButtonPrimary))
	s.PointerUp(mouse(300, 250, input.ButtonPrimary))
	box := s.Canvas().ActiveObject()
	s.KeyPress(press(key.CodeUnknown, 'x', 0))

	assert.True(t, s.KeyPress(press(key.CodeZ, 'z', key.ModControl)))
	assert.False(t, s.Canvas().Contains(box))
	assert.True(t, s.History().CanRedo)
}

func TestObjectOperations(t *testing.T) {
	s := openSession(t, nil)
	s.SwitchMode(Select)
	r := scene.NewRect(geom.Rect{Left: 10, Top: 10, Width: 50, Height: 50})
	s.AddObject(r, "")
	assert.Same(t, r, s.Canvas().ActiveObject())
	assert.Equal(t, "Add rect", s.History().Entries[1].Meta.Label)

	e := scene.NewEllipse(geom.Rect{Left: 10, Top: 10, Width: 50, Height: 50})
	i := s.Canvas().IndexOf(r)
	require.True(t, s.ReplaceObject(r, e, "swap"))
	assert.Equal(t, i, s.Canvas().IndexOf(e))
	assert.False(t, s.ReplaceObject(r, e, ""), "old object gone")

	require.True(t, s.RemoveObject(e, ""))
	assert.False(t, s.Canvas().Contains(e))
	assert.Len(t, s.History().Entries, 4)

	require.True(t, s.GoTo(1))
	assert.True(t, s.Canvas().Contains(r))
	assert.False(t, s.Canvas().Contains(e))
	assert.False(t, s.GoTo(99))
	assert.Equal(t, 1, s.History().Index)
}

func TestKeyboardNudgeRotateDelete(t *testing.T) {
	s := openSession(t, nil)
	s.SwitchMode(Select)
	r := scene.NewRect(geom.Rect{Left: 10, Top: 10, Width: 50, Height: 50})
	s.AddObject(r, "")

	assert.True(t, s.KeyPress(press(key.CodeRightArrow, 0, 0)))
	assert.Equal(t, 11.0, r.Left)
	assert.True(t, s.KeyPress(press(key.CodeDownArrow, 0, key.ModShift)))
	assert.Equal(t, 20.0, r.Top)
	assert.True(t, s.KeyPress(press(key.CodeFullStop, '.', 0)))
	assert.Equal(t, 15.0, r.Angle)
	assert.Len(t, s.History().Entries, 5)

	s.Undo()
	assert.Equal(t, 0.0, r.Angle)
	assert.Equal(t, 20.0, r.Top)

	assert.True(t, s.KeyPress(press(key.CodeDeleteForward, 0, 0)))
	assert.False(t, s.Canvas().Contains(r))
	assert.Equal(t, "remove", s.History().Entries[4].Entry.Kind())
}

func TestKeyboardModesAndZoom(t *testing.T) {
	s := openSession(t, nil)
	assert.True(t, s.KeyPress(press(key.CodeL, 'l', 0)))
	assert.Equal(t, Lasso, s.Mode())
	assert.True(t, s.KeyPress(press(key.CodeEqualSign, '=', 0)))
	assert.InDelta(t, 1.05, s.Zoom(), 1e-9)
	assert.True(t, s.KeyPress(press(key.Code0, '0', 0)))
	assert.Equal(t, 1.0, s.Zoom())
	assert.False(t, s.KeyPress(key.Event{Code: key.CodeL, Direction: key.DirRelease}))
}

func TestRebindDoesNotDuplicateListeners(t *testing.T) {
	s, clip := clipSession(t)
	s.bind(clip)
	s.bind(clip)
	assert.Equal(t, 1, scene.Listeners(clip, scene.EventModified))
}

func TestExport(t *testing.T) {
	var logged bytes.Buffer
	log.SetOutput(&logged)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	s := openSession(t, nil)
	_, err := s.Export(render.ExportOptions{})
	assert.ErrorIs(t, err, render.ErrNoClip)
	assert.Empty(t, logged.String(), "the caller reports export errors")

	s.SwitchMode(Rect)
	drag(s, input.ButtonPrimary, geom.Pt(300, 250), geom.Pt(400, 330))
	out, err := s.Export(render.ExportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 100, out.Bounds().Dx())
	assert.Equal(t, 80, out.Bounds().Dy())
	_, _, _, a := out.At(out.Bounds().Min.X+50, out.Bounds().Min.Y+40).RGBA()
	assert.Equal(t, uint32(0xffff), a)
	assert.Equal(t, color.NRGBAModel, out.ColorModel())
}

func TestClose(t *testing.T) {
	s, clip := clipSession(t)
	require.NoError(t, s.Close())
	assert.True(t, s.Canvas().Disposed())
	assert.Zero(t, scene.Listeners(clip, scene.EventModified))
	assert.ErrorIs(t, s.Close(), ErrClosed)

	_, err := s.Export(render.ExportOptions{})
	assert.ErrorIs(t, err, ErrClosed)
	s.PointerDown(mouse(10, 10, input.ButtonPrimary))
	assert.False(t, s.Undo())
}
