package hid

import (
	"fmt"
	"strconv"
	"strings"
)

// Keycode is a HID keyboard usage (usage page 0x07).
type Keycode uint8

const (
	KeyA Keycode = 0x04 + iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0
	KeyReturn
	KeyEscape
	KeyBackspace
	KeyTab
	KeySpace
	KeyMinus
	KeyEquals
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	_ // non-US #
	KeySemicolon
	KeyQuote
	KeyGrave
	KeyComma
	KeyPeriod
	KeySlash
	KeyCapsLock
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyPrintScreen
	KeyScrollLock
	KeyPause
	KeyInsert
	KeyHome
	KeyPageUp
	KeyDelete
	KeyEnd
	KeyPageDown
	KeyRightArrow
	KeyLeftArrow
	KeyDownArrow
	KeyUpArrow
)

const (
	KeyLeftControl  Keycode = 0xE0
	KeyLeftShift    Keycode = 0xE1
	KeyLeftAlt      Keycode = 0xE2
	KeyLeftGUI      Keycode = 0xE3
	KeyRightControl Keycode = 0xE4
	KeyRightShift   Keycode = 0xE5
	KeyRightAlt     Keycode = 0xE6
	KeyRightGUI     Keycode = 0xE7

	KeyOption  = KeyLeftAlt
	KeyCommand = KeyLeftGUI
	KeyWindows = KeyLeftGUI
)

// IsModifier reports whether the usage is one of the eight modifier keys.
func (k Keycode) IsModifier() bool {
	return k >= KeyLeftControl && k <= KeyRightGUI
}

// ModifierMask returns the bit the key occupies in a boot report modifier byte.
func (k Keycode) ModifierMask() byte {
	if !k.IsModifier() {
		return 0
	}
	return 1 << (k - KeyLeftControl)
}

var keycodeNames = map[string]Keycode{
	"RETURN": KeyReturn, "ENTER": KeyReturn,
	"ESCAPE": KeyEscape, "BACKSPACE": KeyBackspace, "TAB": KeyTab,
	"SPACE": KeySpace, "SPACEBAR": KeySpace,
	"CAPS_LOCK": KeyCapsLock, "PRINT_SCREEN": KeyPrintScreen,
	"SCROLL_LOCK": KeyScrollLock, "PAUSE": KeyPause,
	"INSERT": KeyInsert, "HOME": KeyHome, "PAGE_UP": KeyPageUp,
	"DELETE": KeyDelete, "END": KeyEnd, "PAGE_DOWN": KeyPageDown,
	"RIGHT_ARROW": KeyRightArrow, "LEFT_ARROW": KeyLeftArrow,
	"DOWN_ARROW": KeyDownArrow, "UP_ARROW": KeyUpArrow,
	"LEFT_CONTROL": KeyLeftControl, "CONTROL": KeyLeftControl,
	"LEFT_SHIFT": KeyLeftShift, "SHIFT": KeyLeftShift,
	"LEFT_ALT": KeyLeftAlt, "ALT": KeyLeftAlt, "OPTION": KeyOption,
	"LEFT_GUI": KeyLeftGUI, "GUI": KeyLeftGUI, "COMMAND": KeyCommand, "WINDOWS": KeyWindows,
	"RIGHT_CONTROL": KeyRightControl, "RIGHT_SHIFT": KeyRightShift,
	"RIGHT_ALT": KeyRightAlt, "RIGHT_GUI": KeyRightGUI,
}

func init() {
	for i := 0; i < 26; i++ {
		keycodeNames[string(rune('A'+i))] = KeyA + Keycode(i)
	}
	digits := []string{"ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT", "NINE", "ZERO"}
	for i, d := range digits {
		keycodeNames[d] = Key1 + Keycode(i)
	}
	for i := 0; i < 12; i++ {
		keycodeNames["F"+strconv.Itoa(i+1)] = KeyF1 + Keycode(i)
	}
}

// ParseKeycode accepts a symbolic name (UP_ARROW, RETURN, F5) or a number.
func ParseKeycode(s string) (Keycode, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if k, ok := keycodeNames[name]; ok {
		return k, nil
	}
	n, err := strconv.ParseUint(name, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown keycode %q", s)
	}
	return Keycode(n), nil
}
