// Package editor drives one clipping session: it owns the canvas, the
// per-mode tools and the history log, and routes pointer, wheel and key
// input between them.
package editor

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/example/cutout/internal/asset"
	"github.com/example/cutout/internal/history"
	"github.com/example/cutout/internal/input"
	"github.com/example/cutout/internal/render"
	"github.com/example/cutout/internal/scene"
	"github.com/example/cutout/internal/tools"
)

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("editor: session closed")

// Settings tunes a session. DefaultSettings supplies every field.
type Settings struct {
	Limits      tools.Limits
	MinClipArea float64
	HistorySize int
	// WheelZoom makes a plain wheel zoom. Ctrl always zooms and Shift
	// always scrolls.
	WheelZoom  bool
	DimOpacity float64
	ClipStyle  tools.ClipStyle
	TextStyle  scene.Style
	FontSize   float64
	// NudgeStep is the arrow-key move distance in scene pixels.
	NudgeStep float64
	// RotateStep is the rotation per key press in degrees.
	RotateStep float64
}

// DefaultSettings returns the stock settings.
func DefaultSettings() Settings {
	return Settings{
		Limits:      tools.DefaultLimits(),
		MinClipArea: tools.DefaultMinClipArea,
		HistorySize: history.DefaultMaxSize,
		WheelZoom:   true,
		DimOpacity:  0.3,
		ClipStyle:   tools.DefaultClipStyle(),
		TextStyle:   tools.DefaultTextStyle(),
		FontSize:    tools.DefaultFontSize,
		NudgeStep:   1,
		RotateStep:  15,
	}
}

// LoadFunc fetches the image a session edits.
type LoadFunc func(ctx context.Context, src string) (image.Image, error)

// Params describes a session to open.
type Params struct {
	// Source is a file path, an http(s) URL or "clipboard".
	Source string
	// Width and Height are the viewport size in logical pixels.
	Width, Height float64
	// Scale is the device pixel ratio. Zero means 1.
	Scale float64
	// Modifiers reports the live keyboard modifiers. Nil means none held.
	Modifiers input.ModifierSource
	// Settings defaults to DefaultSettings.
	Settings *Settings
	// Mode is the starting mode. Empty means PanZoom.
	Mode Mode
	// Load defaults to asset.Load.
	Load LoadFunc
	// OnRender runs whenever the canvas asks for a repaint.
	OnRender func()
}

// Images are the two copies of the source image on the canvas.
type Images struct {
	// Original is the dimmed full image drawn under the clipped one.
	Original *scene.Image
	// Active is the image the clip shape masks.
	Active *scene.Image
}

// HistoryView is a read-only snapshot of the history log.
type HistoryView struct {
	Entries []history.Record
	Index   int
	CanUndo bool
	CanRedo bool
}

type binding struct {
	handles  []scene.Handle
	baseline scene.Transform
	// undoTransform restores the pre-gesture transform without touching
	// the history log.
	undoTransform func()
}

// Session is one interactive editing session over a single image. It is
// not safe for concurrent use; the host feeds it events from one goroutine.
type Session struct {
	canvas   *scene.Canvas
	mods     input.ModifierSource
	settings Settings
	log      *history.Log
	panZoom  *tools.PanZoom
	clips    *tools.ClipDrawer
	text     *tools.TextTool
	handlers map[Mode]Handler

	mode   Mode
	active bool
	button input.Button
	scale  float64
	images Images
	clip   scene.Object

	bindings  map[scene.Object]*binding
	observers []func()
	closed    bool
}

// Open loads the source image and builds a ready session. Nothing is wired
// to the canvas unless the image loads.
func Open(ctx context.Context, p Params) (*Session, error) {
	load := p.Load
	if load == nil {
		load = asset.Load
	}
	src, err := load(ctx, p.Source)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", p.Source, err)
	}

	settings := DefaultSettings()
	if p.Settings != nil {
		settings = *p.Settings
	}
	mods := p.Modifiers
	if mods == nil {
		mods = input.Modifiers{}
	}
	mode := p.Mode
	if !mode.Valid() {
		mode = PanZoom
	}

	s := &Session{
		mods:     mods,
		settings: settings,
		bindings: make(map[scene.Object]*binding),
	}
	s.canvas = scene.New(p.Width, p.Height, scene.WithRenderHook(p.OnRender))
	s.panZoom = tools.NewPanZoom(s.canvas, settings.Limits)
	s.clips = tools.NewClipDrawer(s.canvas, mods,
		tools.WithMinClipArea(settings.MinClipArea),
		tools.WithClipStyle(settings.ClipStyle))
	s.text = tools.NewTextTool(s.canvas,
		tools.WithFontSize(settings.FontSize),
		tools.WithTextStyle(settings.TextStyle),
		tools.WithTextCommit(s.commitText))
	s.handlers = map[Mode]Handler{
		PanZoom: panZoomHandler{s},
		Select:  selectHandler{s},
		Lasso:   clipHandler{s, tools.Lasso},
		Rect:    clipHandler{s, tools.Rect},
		Ellipse: clipHandler{s, tools.Ellipse},
		Text:    textHandler{s},
	}
	s.log = history.New(s.canvas,
		history.WithMaxSize(settings.HistorySize),
		history.WithRestoreMode(func(m string) { s.switchMode(Mode(m)) }),
		history.WithOnChange(s.historyChanged))

	active := scene.NewImage(src)
	original := scene.NewImage(asset.Clone(src))
	for _, img := range []*scene.Image{active, original} {
		img.Evented = false
	}
	s.images = Images{Original: original, Active: active}
	s.panZoom.SetImage(active)
	s.panZoom.ScaleToFit(active)
	s.panZoom.ScaleToFit(original)
	s.canvas.Add(active, original)
	s.canvas.SendToBack(original)

	s.mode = mode
	s.applyMode()
	s.log.Init(string(mode))
	s.Resize(p.Width, p.Height, p.Scale)
	return s, nil
}

// Canvas exposes the scene for rendering.
func (s *Session) Canvas() *scene.Canvas { return s.canvas }

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// Zoom returns the viewport zoom.
func (s *Session) Zoom() float64 { return s.canvas.Zoom() }

// Images returns the two image objects.
func (s *Session) Images() Images { return s.images }

// Clip returns the committed clip shape, or nil.
func (s *Session) Clip() scene.Object { return s.clip }

// Cursor returns the cursor the host should show.
func (s *Session) Cursor() string { return s.canvas.Cursor() }

// Active reports whether a pointer gesture is in progress.
func (s *Session) Active() bool { return s.active }

// Closed reports whether Close has run.
func (s *Session) Closed() bool { return s.closed }

// PixelSize is the backing surface size in device pixels.
func (s *Session) PixelSize() (int, int) {
	return int(s.canvas.Width() * s.scale), int(s.canvas.Height() * s.scale)
}

// Scale returns the device pixel ratio.
func (s *Session) Scale() float64 { return s.scale }

// History snapshots the history log.
func (s *Session) History() HistoryView {
	return HistoryView{
		Entries: s.log.Entries(),
		Index:   s.log.Index(),
		CanUndo: s.log.CanUndo(),
		CanRedo: s.log.CanRedo(),
	}
}

// OnChange registers fn to run after the mode, the history or the viewport
// changes.
func (s *Session) OnChange(fn func()) {
	if fn != nil {
		s.observers = append(s.observers, fn)
	}
}

// SwitchMode changes the current mode, abandoning any gesture in progress.
func (s *Session) SwitchMode(m Mode) {
	if s.closed || m == s.mode || !m.Valid() {
		return
	}
	s.finishEditing()
	s.cancelGesture()
	s.switchMode(m)
}

func (s *Session) switchMode(m Mode) {
	if m == s.mode || !m.Valid() {
		return
	}
	s.mode = m
	s.applyMode()
	s.notify()
}

func (s *Session) applyMode() {
	s.showOriginal(s.mode.IsClip())
	if s.mode.IsClip() && s.clip != nil {
		s.canvas.SetActiveObject(s.clip)
	} else {
		s.canvas.DiscardActiveObject()
	}
	s.canvas.SetSkipTargetFind(s.mode == PanZoom)
	c := cursorsFor(s.mode)
	s.canvas.SetCursors(c.def, c.hover)
	s.canvas.RequestRenderAll()
}

func (s *Session) showOriginal(show bool) {
	if s.images.Original == nil {
		return
	}
	s.images.Original.Opacity = 0
	if show {
		s.images.Original.Opacity = s.settings.DimOpacity
	}
}

// Undo reverts the last history entry.
func (s *Session) Undo() bool {
	if s.closed {
		return false
	}
	s.finishEditing()
	s.cancelGesture()
	return s.log.Undo()
}

// Redo reapplies the next history entry.
func (s *Session) Redo() bool {
	if s.closed {
		return false
	}
	s.finishEditing()
	s.cancelGesture()
	return s.log.Redo()
}

// GoTo moves the history cursor to index, replaying every entry between.
// Out of range targets are ignored.
func (s *Session) GoTo(index int) bool {
	if s.closed {
		return false
	}
	s.finishEditing()
	s.cancelGesture()
	return s.log.GoTo(index)
}

// Resize sets the viewport size and device pixel ratio and re-centres both
// images.
func (s *Session) Resize(width, height, scale float64) {
	if s.closed {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	s.scale = scale
	s.canvas.SetDimensions(width, height)
	if s.images.Original != nil {
		s.panZoom.FitContain(s.images.Original)
	}
	if s.images.Active != nil {
		s.panZoom.FitContain(s.images.Active)
	}
	s.notify()
}

// Fit zooms the image to the viewport and centres it.
func (s *Session) Fit() {
	if s.closed {
		return
	}
	s.panZoom.ScaleToFit(s.images.Active)
	s.panZoom.FitContain(s.images.Active)
	s.notify()
}

// Export renders the active image masked and cropped to the clip shape.
func (s *Session) Export(opts render.ExportOptions) (image.Image, error) {
	if s.closed {
		return nil, ErrClosed
	}
	s.finishEditing()
	out, err := render.Export(s.images.Active, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return out, nil
}

// Close detaches every observer and disposes of the canvas. The session
// cannot be used afterwards.
func (s *Session) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.cancelGesture()
	for obj := range s.bindings {
		s.unbind(obj)
	}
	s.canvas.Dispose()
	s.observers = nil
	s.clip = nil
	s.closed = true
	return nil
}

func (s *Session) historyChanged() {
	for obj, b := range s.bindings {
		b.baseline = obj.Base().Transform()
	}
	s.notify()
}

func (s *Session) notify() {
	for _, fn := range s.observers {
		fn()
	}
}
