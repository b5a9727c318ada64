// Package input normalises raw pointer, touch and wheel events into the
// device/button pairs the canvas dispatches on.
package input

import (
	"github.com/example/cutout/internal/geom"
)

// Device names the hardware class that produced an event.
type Device string

const (
	DeviceMouse Device = "mouse"
	DeviceTouch Device = "touch"
)

// Button is the logical control that started a gesture. Touch gestures map
// their finger count onto the same values.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonMiddle:
		return "middle"
	case ButtonSecondary:
		return "secondary"
	}
	return "unknown"
}

// Input is the normalised form of a raw event.
type Input struct {
	Device Device
	Button Button
}

// MouseEvent is a plain mouse press, move or release in viewport pixels.
type MouseEvent struct {
	Pos    geom.Point
	Button Button
}

// PointerEvent is a unified pointer event. Only PointerType "mouse" carries a
// meaningful button.
type PointerEvent struct {
	Pos         geom.Point
	PointerType string
	Button      Button
}

// TouchEvent lists the fingers currently on the surface.
type TouchEvent struct {
	Touches []geom.Point
}

// WheelEvent is a scroll wheel or trackpad step.
type WheelEvent struct {
	Pos            geom.Point
	DeltaX, DeltaY float64
}

// Classify maps raw to a device and button. One finger is the primary
// button and two or more fingers are the middle button. Mouse buttons pass
// through and anything unrecognised is a primary mouse press.
func Classify(raw any) Input {
	switch e := raw.(type) {
	case TouchEvent:
		return Input{Device: DeviceTouch, Button: touchButton(len(e.Touches))}
	case *TouchEvent:
		return Input{Device: DeviceTouch, Button: touchButton(len(e.Touches))}
	case MouseEvent:
		return Input{Device: DeviceMouse, Button: normalise(e.Button)}
	case *MouseEvent:
		return Input{Device: DeviceMouse, Button: normalise(e.Button)}
	case PointerEvent:
		if e.PointerType == "mouse" {
			return Input{Device: DeviceMouse, Button: normalise(e.Button)}
		}
	case *PointerEvent:
		if e.PointerType == "mouse" {
			return Input{Device: DeviceMouse, Button: normalise(e.Button)}
		}
	}
	return Input{Device: DeviceMouse, Button: ButtonPrimary}
}

func touchButton(fingers int) Button {
	switch {
	case fingers >= 2:
		return ButtonMiddle
	default:
		return ButtonPrimary
	}
}

func normalise(b Button) Button {
	if b < ButtonPrimary || b > ButtonSecondary {
		return ButtonPrimary
	}
	return b
}

// Position returns the viewport position of raw. Touch events report the
// centroid of their fingers.
func Position(raw any) (geom.Point, bool) {
	switch e := raw.(type) {
	case MouseEvent:
		return e.Pos, true
	case *MouseEvent:
		return e.Pos, true
	case PointerEvent:
		return e.Pos, true
	case *PointerEvent:
		return e.Pos, true
	case WheelEvent:
		return e.Pos, true
	case *WheelEvent:
		return e.Pos, true
	case TouchEvent:
		return touchCenter(e.Touches)
	case *TouchEvent:
		return touchCenter(e.Touches)
	}
	return geom.Point{}, false
}

func touchCenter(touches []geom.Point) (geom.Point, bool) {
	if len(touches) == 0 {
		return geom.Point{}, false
	}
	return geom.TouchCenter(touches[0], touches[1:]...), true
}
