// Package hid describes the HID output surface the remote drives: a boot
// keyboard, a consumer control device and a relative mouse.
package hid

import (
	"errors"
	"fmt"
)

// Sink is the set of HID reports the input pipeline emits. Calls are fire and
// forget; an error only means the report did not reach the transport.
type Sink interface {
	KeyboardPress(code Keycode) error
	KeyboardRelease(code Keycode) error
	KeyboardPressMany(codes []Keycode) error
	KeyboardReleaseMany(codes []Keycode) error

	// ConsumerPress sets the single active consumer control usage.
	ConsumerPress(code ConsumerCode) error
	// ConsumerRelease clears whatever usage is active.
	ConsumerRelease() error

	MousePress(button MouseButton) error
	MouseRelease(button MouseButton) error
	MouseMove(dx, dy int) error
}

// Layout translates characters into the key chord that types them.
type Layout interface {
	KeycodesFor(ch rune) ([]Keycode, error)
}

var ErrUnmappedCharacter = errors.New("character has no keycode in layout")

// UnmappedCharacterError is returned by a Layout for characters it cannot type.
type UnmappedCharacterError struct {
	Char   rune
	Layout string
}

func (e *UnmappedCharacterError) Error() string {
	return fmt.Sprintf("layout %s: no keycodes for character %q", e.Layout, e.Char)
}

func (e *UnmappedCharacterError) Is(target error) bool {
	return target == ErrUnmappedCharacter
}
