// Package hidtest provides a recording hid.Sink for tests.
package hidtest

import (
	"fmt"
	"sync"

	"github.com/jetkvm/remote/internal/hid"
)

// Call is one recorded Sink invocation, rendered as a readable string such
// as "keyboard_press(0x28)" so tests can compare whole call sequences.
type Call string

// Recorder records every call made to it. It never fails unless Err is set.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
	Err   error
}

var _ hid.Sink = (*Recorder)(nil)

func (r *Recorder) record(format string, args ...any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call(fmt.Sprintf(format, args...)))
	return r.Err
}

func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) KeyboardPress(code hid.Keycode) error {
	return r.record("keyboard_press(0x%02x)", uint8(code))
}

func (r *Recorder) KeyboardRelease(code hid.Keycode) error {
	return r.record("keyboard_release(0x%02x)", uint8(code))
}

func (r *Recorder) KeyboardPressMany(codes []hid.Keycode) error {
	return r.record("keyboard_press_many(%s)", formatCodes(codes))
}

func (r *Recorder) KeyboardReleaseMany(codes []hid.Keycode) error {
	return r.record("keyboard_release_many(%s)", formatCodes(codes))
}

func (r *Recorder) ConsumerPress(code hid.ConsumerCode) error {
	return r.record("consumer_press(0x%02x)", uint16(code))
}

func (r *Recorder) ConsumerRelease() error {
	return r.record("consumer_release()")
}

func (r *Recorder) MousePress(button hid.MouseButton) error {
	return r.record("mouse_press(%s)", button)
}

func (r *Recorder) MouseRelease(button hid.MouseButton) error {
	return r.record("mouse_release(%s)", button)
}

func (r *Recorder) MouseMove(dx, dy int) error {
	return r.record("mouse_move(%d,%d)", dx, dy)
}

func formatCodes(codes []hid.Keycode) string {
	s := ""
	for i, c := range codes {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("0x%02x", uint8(c))
	}
	return s
}
