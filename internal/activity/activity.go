// Package activity holds the per-activity button mappings: which HID action
// each of the nine function buttons produces.
package activity

import (
	"errors"
	"fmt"

	"github.com/jetkvm/remote/internal/hid"
)

// Key is a code produced by the key matrix. The function buttons report the
// control characters below; every other key reports the character printed on it.
type Key rune

const (
	KeyUp     Key = 0x01
	KeyDown   Key = 0x02
	KeyLeft   Key = 0x03
	KeyRight  Key = 0x04
	KeySelect Key = 0x05
	KeyL1     Key = 0x06
	KeyR1     Key = 0x07
	KeyL2     Key = 0x11
	KeyR2     Key = 0x12
)

type Button uint8

const (
	L1 Button = iota
	L2
	R1
	R2
	Up
	Down
	Left
	Right
	Select

	ButtonCount = 9
)

var buttonKeys = [ButtonCount]Key{
	L1: KeyL1, L2: KeyL2, R1: KeyR1, R2: KeyR2,
	Up: KeyUp, Down: KeyDown, Left: KeyLeft, Right: KeyRight, Select: KeySelect,
}

var buttonNames = [ButtonCount]string{
	L1: "L1", L2: "L2", R1: "R1", R2: "R2",
	Up: "UP", Down: "DOWN", Left: "LEFT", Right: "RIGHT", Select: "SELECT",
}

func (b Button) String() string {
	if int(b) < ButtonCount {
		return buttonNames[b]
	}
	return fmt.Sprintf("button(%d)", uint8(b))
}

func (b Button) Key() Key {
	return buttonKeys[b]
}

// Button reports which function button produced k, if any.
func (k Key) Button() (Button, bool) {
	for b, bk := range buttonKeys {
		if bk == k {
			return Button(b), true
		}
	}
	return 0, false
}

func (k Key) String() string {
	if b, ok := k.Button(); ok {
		return b.String()
	}
	return fmt.Sprintf("%q", rune(k))
}

func ParseButton(s string) (Button, error) {
	for b, name := range buttonNames {
		if name == s {
			return Button(b), nil
		}
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

type Transition uint8

const (
	Press Transition = iota + 1
	Release
	LongPress
)

func (t Transition) String() string {
	switch t {
	case Press:
		return "press"
	case Release:
		return "release"
	case LongPress:
		return "long_press"
	default:
		return "unknown"
	}
}

// KeyEvent is a single transition reported by the key matrix scanner.
type KeyEvent struct {
	Key        Key
	Transition Transition
}

type HIDKind uint8

const (
	HIDKeyboard HIDKind = iota
	HIDKeyboardLayout
	HIDConsumerControl
	HIDMouse
)

func (k HIDKind) String() string {
	switch k {
	case HIDKeyboard:
		return "keyboard"
	case HIDKeyboardLayout:
		return "keyboard_layout"
	case HIDConsumerControl:
		return "consumer_control"
	case HIDMouse:
		return "mouse"
	default:
		return "unknown"
	}
}

// Action is what a mapped button emits. Code is a hid.Keycode, a
// hid.ConsumerCode or a hid.MouseButton depending on Kind; Char is only used
// by HIDKeyboardLayout. Icon is opaque to the input pipeline.
type Action struct {
	Kind HIDKind
	Code uint16
	Char rune
	Icon string
}

func KeyboardAction(code hid.Keycode, icon string) *Action {
	return &Action{Kind: HIDKeyboard, Code: uint16(code), Icon: icon}
}

func LayoutAction(ch rune, icon string) *Action {
	return &Action{Kind: HIDKeyboardLayout, Char: ch, Icon: icon}
}

func ConsumerAction(code hid.ConsumerCode, icon string) *Action {
	return &Action{Kind: HIDConsumerControl, Code: uint16(code), Icon: icon}
}

func MouseAction(button hid.MouseButton, icon string) *Action {
	return &Action{Kind: HIDMouse, Code: uint16(button), Icon: icon}
}

// Mapping assigns an optional Action to each function button. A nil entry
// means the button does nothing in this activity.
type Mapping [ButtonCount]*Action

type Activity struct {
	Name             string
	ShowMouseMessage bool
	Mapping          Mapping
}

// Action returns the action bound to b, or nil when b is unmapped.
func (a *Activity) Action(b Button) *Action {
	if a == nil || int(b) >= ButtonCount {
		return nil
	}
	return a.Mapping[b]
}

var ErrEmptyTable = errors.New("activity table is empty")

// Table is the fixed list of activities the user can pick from. It is never
// modified after construction.
type Table struct {
	activities []Activity
}

func NewTable(activities ...Activity) (*Table, error) {
	if len(activities) == 0 {
		return nil, ErrEmptyTable
	}
	for i, a := range activities {
		if a.Name == "" {
			return nil, fmt.Errorf("activity %d has no name", i+1)
		}
	}
	return &Table{activities: append([]Activity(nil), activities...)}, nil
}

func (t *Table) Len() int {
	return len(t.activities)
}

// At returns the activity at index i, clamped into range.
func (t *Table) At(i int) *Activity {
	return &t.activities[t.Clamp(i)]
}

func (t *Table) Clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(t.activities) {
		return len(t.activities) - 1
	}
	return i
}

func (t *Table) Names() []string {
	names := make([]string, len(t.activities))
	for i, a := range t.activities {
		names[i] = a.Name
	}
	return names
}

// Resolve looks up the action for key in the activity at index. isButton is
// false for keys that are not function buttons.
func (t *Table) Resolve(index int, key Key) (action *Action, isButton bool) {
	b, ok := key.Button()
	if !ok {
		return nil, false
	}
	return t.At(index).Action(b), true
}
