package appstate

import (
	"fmt"
	"image"
	"log"
	"time"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/example/cutout/internal/editor"
	"github.com/example/cutout/internal/geom"
	"github.com/example/cutout/internal/input"
	"github.com/example/cutout/internal/theme"
)

var modeLabels = []struct {
	mode  editor.Mode
	label string
}{
	{editor.PanZoom, "P:Pan"},
	{editor.Select, "V:Select"},
	{editor.Lasso, "L:Lasso"},
	{editor.Rect, "R:Rect"},
	{editor.Ellipse, "E:Ellipse"},
	{editor.Text, "T:Text"},
}

// view owns everything the window shows and turns window events into
// session calls. It is used from the event loop and, under AppState's
// lock, from the paint goroutine.
type view struct {
	sess    *editor.Session
	theme   *theme.Theme
	layout  layout
	keys    *input.KeyState
	touches *input.TouchTracker
	actions *actions

	modeButtons []*CacheButton
	shortcuts   []*CacheButton
	hover       *CacheButton
	rowHover    int

	// drag is the mouse button that started the canvas gesture in
	// progress, mouse.ButtonNone when idle.
	drag mouse.Button

	message      string
	messageUntil time.Time
	now          func() time.Time

	keyboardAction map[KeyShortcut]string
	named          map[string]func()
	quit           bool
}

func newView(sess *editor.Session, th *theme.Theme, keys *input.KeyState, acts *actions) *view {
	v := &view{
		sess:           sess,
		theme:          th,
		keys:           keys,
		touches:        input.NewTouchTracker(),
		actions:        acts,
		rowHover:       -1,
		now:            time.Now,
		keyboardAction: map[KeyShortcut]string{},
		named:          map[string]func(){},
	}
	for _, ml := range modeLabels {
		if w := measureString(ml.label) + 8; w > toolbarWidth {
			toolbarWidth = w
		}
		v.modeButtons = append(v.modeButtons, &CacheButton{Button: &ModeButton{
			label:    label{text: ml.label, theme: th},
			mode:     ml.mode,
			onSelect: sess.SwitchMode,
		}})
	}

	v.register("save", "^S Save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, v.save)
	v.register("copy", "^C Copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, v.copy)
	v.register("undo", "^Z Undo", nil, func() { sess.Undo() })
	v.register("redo", "^Y Redo", nil, func() { sess.Redo() })
	v.register("fit", "0 Fit", nil, sess.Fit)
	v.register("quit", "Q Quit", shortcutList{{Rune: 'q'}, {Rune: 'q', Modifiers: key.ModControl}}, func() { v.quit = true })
	return v
}

// register binds an action to its bottom bar button and key shortcuts.
// Undo, redo and fit keys are handled by the session itself.
func (v *view) register(name, caption string, keys KeyboardShortcuts, fn func()) {
	v.named[name] = fn
	if keys != nil {
		for _, sc := range keys.KeyboardShortcuts() {
			v.keyboardAction[sc] = name
		}
	}
	v.shortcuts = append(v.shortcuts, &CacheButton{Button: &Shortcut{
		label:  label{text: caption, theme: v.theme},
		action: fn,
	}})
}

func (v *view) run(name string) {
	if fn, ok := v.named[name]; ok {
		fn()
	}
}

func (v *view) flash(format string, args ...any) {
	v.message = fmt.Sprintf(format, args...)
	v.messageUntil = v.now().Add(2 * time.Second)
	log.Print(v.message)
}

func (v *view) messageVisible() bool {
	return v.message != "" && v.now().Before(v.messageUntil)
}

func (v *view) save() {
	path, err := v.actions.save(v.sess)
	if err != nil {
		v.flash("save: %v", err)
		return
	}
	v.flash("saved %s", path)
}

func (v *view) copy() {
	if err := v.actions.copy(v.sess); err != nil {
		v.flash("copy: %v", err)
		return
	}
	v.flash("cutout copied to clipboard")
}

// resize lays the window out again and gives the session the new canvas
// size.
func (v *view) resize(width, height int) {
	v.layout = layout{width: width, height: height}
	y := 0
	for _, b := range v.modeButtons {
		b.SetRect(image.Rect(0, y, toolbarWidth, y+buttonHeight))
		y += buttonHeight
	}
	x := 0
	bottom := v.layout.bottom()
	for _, b := range v.shortcuts {
		w := measureString(b.Button.(*Shortcut).text) + 8
		b.SetRect(image.Rect(x, bottom.Min.Y, x+w, bottom.Max.Y))
		x += w
	}
	c := v.layout.canvas()
	v.sess.Resize(float64(c.Dx()), float64(c.Dy()), 1)
}

// canvasPoint converts window pixels to canvas viewport coordinates.
func (v *view) canvasPoint(x, y float32) geom.Point {
	o := v.layout.canvas().Min
	return geom.Pt(float64(x)-float64(o.X), float64(y)-float64(o.Y))
}

func (v *view) buttonAt(p image.Point) *CacheButton {
	for _, group := range [][]*CacheButton{v.modeButtons, v.shortcuts} {
		for _, b := range group {
			if p.In(b.Rect()) {
				return b
			}
		}
	}
	return nil
}

// timelineIndexAt maps a point in the timeline panel to a history index.
func (v *view) timelineIndexAt(p image.Point) (int, bool) {
	if !p.In(v.layout.timeline()) {
		return 0, false
	}
	h := v.sess.History()
	rows := v.layout.timelineRows()
	first := timelineFirst(len(h.Entries), h.Index, rows)
	for i := 0; i < rows && first+i < len(h.Entries); i++ {
		if p.In(v.layout.timelineRow(i)) {
			return first + i, true
		}
	}
	return 0, false
}

// mouse handles a window mouse event and reports whether to repaint.
func (v *view) mouse(e mouse.Event) bool {
	v.keys.Observe(e.Modifiers)
	p := image.Pt(int(e.X), int(e.Y))

	if v.messageVisible() && e.Direction == mouse.DirPress {
		v.messageUntil = time.Time{}
		return true
	}

	if v.drag != mouse.ButtonNone {
		return v.canvasMouse(e)
	}

	switch ev := input.FromMouse(e).(type) {
	case input.WheelEvent:
		if p.In(v.layout.canvas()) {
			ev.Pos = v.canvasPoint(e.X, e.Y)
			v.sess.Wheel(ev)
			return true
		}
		return false
	}

	if p.In(v.layout.canvas()) {
		changed := v.hover != nil || v.rowHover != -1
		v.hover, v.rowHover = nil, -1
		return v.canvasMouse(e) || changed
	}

	btn := v.buttonAt(p)
	row, onRow := v.timelineIndexAt(p)
	if !onRow {
		row = -1
	}
	changed := btn != v.hover || row != v.rowHover
	v.hover, v.rowHover = btn, row
	if e.Direction != mouse.DirPress || e.Button != mouse.ButtonLeft {
		return changed
	}
	switch {
	case btn != nil:
		btn.Activate()
		return true
	case onRow:
		v.sess.GoTo(row)
		return true
	}
	return changed
}

func (v *view) canvasMouse(e mouse.Event) bool {
	raw := input.FromMouse(e)
	me, ok := raw.(input.MouseEvent)
	if !ok {
		return false
	}
	me.Pos = v.canvasPoint(e.X, e.Y)
	switch e.Direction {
	case mouse.DirPress:
		v.sess.PointerDown(me)
		if v.drag == mouse.ButtonNone && v.sess.Active() {
			v.drag = e.Button
		}
		if !v.sess.Active() {
			v.drag = mouse.ButtonNone
		}
	case mouse.DirRelease:
		if e.Button != v.drag {
			return false
		}
		v.sess.PointerUp(me)
		v.drag = mouse.ButtonNone
	default:
		if v.drag == mouse.ButtonNone {
			return false
		}
		v.sess.PointerMove(me)
	}
	return true
}

// touch folds a finger event into the multi-touch gesture.
func (v *view) touch(e touch.Event) bool {
	before := v.touches.Count()
	te := v.touches.Update(e)
	for i, pt := range te.Touches {
		te.Touches[i] = v.canvasPoint(float32(pt.X), float32(pt.Y))
	}
	switch {
	case e.Type == touch.TypeBegin && before == 0:
		v.sess.PointerDown(te)
	case len(te.Touches) == 0:
		v.sess.PointerUp(te)
	default:
		v.sess.PointerMove(te)
	}
	return true
}

// key handles a key event and reports whether to repaint.
func (v *view) key(e key.Event) bool {
	v.keys.Key(e)
	if v.sess.KeyPress(e) {
		return true
	}
	if e.Direction != key.DirPress {
		return false
	}
	ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Code: e.Code, Modifiers: e.Modifiers}
	if e.Modifiers&key.ModControl != 0 && e.Rune < ' ' {
		// Some drivers report ctrl combinations as control characters.
		if r, ok := codeRunes[e.Code]; ok {
			ks.Rune = r
		}
	}
	ks.Code = key.CodeUnknown
	if name, ok := v.keyboardAction[ks]; ok {
		v.run(name)
		return true
	}
	return false
}

var codeRunes = map[key.Code]rune{
	key.CodeS: 's',
	key.CodeC: 'c',
	key.CodeQ: 'q',
}
