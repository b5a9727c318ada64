package input

import "golang.org/x/mobile/event/key"

// Modifiers is a snapshot of the keyboard modifier keys.
type Modifiers struct {
	Shift, Ctrl, Alt, Meta bool
}

// Current lets a fixed snapshot act as a ModifierSource.
func (m Modifiers) Current() Modifiers { return m }

// ModifierSource reports the live modifier state.
type ModifierSource interface {
	Current() Modifiers
}

// FromKeyModifiers converts a shiny modifier bitmask.
func FromKeyModifiers(m key.Modifiers) Modifiers {
	return Modifiers{
		Shift: m&key.ModShift != 0,
		Ctrl:  m&key.ModControl != 0,
		Alt:   m&key.ModAlt != 0,
		Meta:  m&key.ModMeta != 0,
	}
}

// KeyState tracks modifier keys from the window's key and mouse events.
type KeyState struct {
	mods Modifiers
}

// Current implements ModifierSource.
func (k *KeyState) Current() Modifiers { return k.mods }

// Observe replaces the state with the modifiers reported alongside a
// non-key event such as a mouse move.
func (k *KeyState) Observe(m key.Modifiers) { k.mods = FromKeyModifiers(m) }

// Key applies a key event. Presses and releases of the modifier keys
// themselves win over the bitmask carried by the event, which some drivers
// report before the change.
func (k *KeyState) Key(e key.Event) {
	k.mods = FromKeyModifiers(e.Modifiers)
	down := e.Direction != key.DirRelease
	switch e.Code {
	case key.CodeLeftShift, key.CodeRightShift:
		k.mods.Shift = down
	case key.CodeLeftControl, key.CodeRightControl:
		k.mods.Ctrl = down
	case key.CodeLeftAlt, key.CodeRightAlt:
		k.mods.Alt = down
	case key.CodeLeftGUI, key.CodeRightGUI:
		k.mods.Meta = down
	}
}
