package appstate

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/cutout/internal/editor"
	"github.com/example/cutout/internal/theme"
)

// KeyShortcut is a key combination bound to a window action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	// StateActive marks the button of the current mode.
	StateActive
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// label is the shared look of every button: a filled box, a border and a
// line of 7x13 text.
type label struct {
	text  string
	rect  image.Rectangle
	theme *theme.Theme
}

func (l *label) Rect() image.Rectangle { return l.rect }

func (l *label) SetRect(r image.Rectangle) { l.rect = r }

func (l *label) Draw(dst *image.RGBA, state ButtonState) {
	bg := l.theme.ButtonBackground
	switch state {
	case StateHover:
		bg = l.theme.ButtonBackgroundHover
	case StateActive:
		bg = l.theme.ButtonBackgroundActive
	}
	draw.Draw(dst, l.rect, image.NewUniform(bg), image.Point{}, draw.Src)
	strokeRect(dst, l.rect, l.theme.ButtonBorder)
	drawString(dst, l.rect.Min.X+4, l.rect.Min.Y+l.rect.Dy()/2+5, l.text, l.theme.ButtonText)
}

// ModeButton selects an editing mode.
type ModeButton struct {
	label
	mode     editor.Mode
	onSelect func(editor.Mode)
}

func (b *ModeButton) Activate() {
	if b.onSelect != nil {
		b.onSelect(b.mode)
	}
}

// Shortcut is a bottom bar button that runs a named action.
type Shortcut struct {
	label
	action func()
}

func (s *Shortcut) Activate() {
	if s.action != nil {
		s.action()
	}
}

func drawString(dst draw.Image, x, y int, s string, col color.Color) int {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
	d.DrawString(s)
	return d.Dot.X.Ceil() - x
}

func measureString(s string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(s).Ceil()
}

func strokeRect(dst draw.Image, r image.Rectangle, col color.Color) {
	if r.Empty() {
		return
	}
	u := image.NewUniform(col)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}
