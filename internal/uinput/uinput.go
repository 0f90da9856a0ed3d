// Package uinput implements hid.Sink with a Linux virtual input device, so
// the remote can drive the machine it is plugged into without a Bluetooth
// peer.
package uinput

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/jetkvm/remote/internal/hid"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

const DevicePath = "/dev/uinput"

// uinput ioctls and event types
const (
	UI_DEV_CREATE  = 0x5501
	UI_DEV_DESTROY = 0x5502
	UI_SET_EVBIT   = 0x40045564
	UI_SET_KEYBIT  = 0x40045565
	UI_SET_RELBIT  = 0x40045566

	EV_SYN = 0x00
	EV_KEY = 0x01
	EV_REL = 0x02

	SYN_REPORT = 0

	BUS_VIRTUAL = 0x06

	uinputMaxNameSize = 80
	absCount          = 64
)

var ErrUnsupportedUsage = errors.New("usage has no linux key code")

type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// userDev mirrors struct uinput_user_dev.
type userDev struct {
	Name         [uinputMaxNameSize]byte
	ID           inputID
	FFEffectsMax uint32
	Absmax       [absCount]int32
	Absmin       [absCount]int32
	Absfuzz      [absCount]int32
	Absflat      [absCount]int32
}

// KeysDownState is the keyboard state as a boot report would carry it.
type KeysDownState struct {
	Modifier byte
	Keys     []hid.Keycode
}

// Sink writes key, button and relative motion events to a uinput device.
type Sink struct {
	w   io.Writer
	fd  *os.File
	log *zerolog.Logger

	mu            sync.Mutex
	keysDown      map[hid.Keycode]bool
	consumer      hid.ConsumerCode
	consumerDown  bool
	lastUserInput time.Time
}

var _ hid.Sink = (*Sink)(nil)

var defaultLogger = zerolog.New(os.Stdout).With().Str("subsystem", "uinput").Logger()

// Open registers a virtual keyboard and mouse named name.
func Open(path, name string, logger *zerolog.Logger) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s failed: %w. Ensure 'modprobe uinput' and permissions", path, err)
	}

	if err := setup(int(f.Fd()), f, name); err != nil {
		_ = f.Close()
		return nil, err
	}

	s := newSink(f, logger)
	s.fd = f
	s.log.Info().Str("path", path).Str("name", name).Msg("uinput device created")
	return s, nil
}

func setup(fd int, w io.Writer, name string) error {
	for _, ev := range []int{EV_KEY, EV_REL, EV_SYN} {
		if err := unix.IoctlSetInt(fd, UI_SET_EVBIT, ev); err != nil {
			return fmt.Errorf("ioctl UI_SET_EVBIT %d failed: %w", ev, err)
		}
	}

	var codes []uint16
	for _, code := range hidToLinux {
		codes = append(codes, code)
	}
	for _, code := range consumerToLinux {
		codes = append(codes, code)
	}
	for _, code := range mouseToLinux {
		codes = append(codes, code)
	}
	for _, code := range codes {
		if err := unix.IoctlSetInt(fd, UI_SET_KEYBIT, int(code)); err != nil {
			return fmt.Errorf("ioctl UI_SET_KEYBIT %d failed: %w", code, err)
		}
	}
	for _, rel := range []int{REL_X, REL_Y} {
		if err := unix.IoctlSetInt(fd, UI_SET_RELBIT, rel); err != nil {
			return fmt.Errorf("ioctl UI_SET_RELBIT %d failed: %w", rel, err)
		}
	}

	dev := userDev{ID: inputID{Bustype: BUS_VIRTUAL, Vendor: 0x1209, Product: 0x0001, Version: 1}}
	copy(dev.Name[:uinputMaxNameSize-1], name)
	if err := binary.Write(w, binary.NativeEndian, &dev); err != nil {
		return fmt.Errorf("write uinput_user_dev failed: %w", err)
	}

	if err := unix.IoctlSetInt(fd, UI_DEV_CREATE, 0); err != nil {
		return fmt.Errorf("ioctl UI_DEV_CREATE failed: %w", err)
	}
	return nil
}

func newSink(w io.Writer, logger *zerolog.Logger) *Sink {
	if logger == nil {
		l := defaultLogger
		logger = &l
	}
	return &Sink{
		w:             w,
		log:           logger,
		keysDown:      make(map[hid.Keycode]bool),
		lastUserInput: time.Now(),
	}
}

func (s *Sink) Close() error {
	if s.fd == nil {
		return nil
	}
	_ = unix.IoctlSetInt(int(s.fd.Fd()), UI_DEV_DESTROY, 0)
	err := s.fd.Close()
	s.fd = nil
	return err
}

func (s *Sink) writeEvent(typ, code uint16, val int32) error {
	ev := inputEvent{Type: typ, Code: code, Value: val}
	return binary.Write(s.w, binary.NativeEndian, &ev)
}

// report writes a batch of events terminated by SYN_REPORT.
func (s *Sink) report(events ...inputEvent) error {
	for _, ev := range events {
		if err := s.writeEvent(ev.Type, ev.Code, ev.Value); err != nil {
			return err
		}
	}
	if err := s.writeEvent(EV_SYN, SYN_REPORT, 0); err != nil {
		return err
	}
	s.lastUserInput = time.Now()
	return nil
}

func keyEvent(code uint16, down bool) inputEvent {
	ev := inputEvent{Type: EV_KEY, Code: code}
	if down {
		ev.Value = 1
	}
	return ev
}

func (s *Sink) keys(codes []hid.Keycode, down bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]inputEvent, 0, len(codes))
	for _, code := range codes {
		linux, ok := hidToLinux[code]
		if !ok {
			return fmt.Errorf("%w: keyboard 0x%02x", ErrUnsupportedUsage, uint8(code))
		}
		events = append(events, keyEvent(linux, down))
	}
	if err := s.report(events...); err != nil {
		return err
	}

	for _, code := range codes {
		if down {
			s.keysDown[code] = true
		} else {
			delete(s.keysDown, code)
		}
	}
	return nil
}

func (s *Sink) KeyboardPress(code hid.Keycode) error {
	return s.keys([]hid.Keycode{code}, true)
}

func (s *Sink) KeyboardRelease(code hid.Keycode) error {
	return s.keys([]hid.Keycode{code}, false)
}

func (s *Sink) KeyboardPressMany(codes []hid.Keycode) error {
	return s.keys(codes, true)
}

// KeyboardReleaseMany releases in reverse order so a shifted character lets
// go of the character before the modifier.
func (s *Sink) KeyboardReleaseMany(codes []hid.Keycode) error {
	reversed := make([]hid.Keycode, len(codes))
	for i, c := range codes {
		reversed[len(codes)-1-i] = c
	}
	return s.keys(reversed, false)
}

// ConsumerPress holds code. Only one consumer usage is down at a time; a
// press while another is held releases the old one first.
func (s *Sink) ConsumerPress(code hid.ConsumerCode) error {
	linux, ok := consumerToLinux[code]
	if !ok {
		return fmt.Errorf("%w: consumer 0x%02x", ErrUnsupportedUsage, uint16(code))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var events []inputEvent
	if s.consumerDown && s.consumer != code {
		events = append(events, keyEvent(consumerToLinux[s.consumer], false))
	}
	events = append(events, keyEvent(linux, true))
	if err := s.report(events...); err != nil {
		return err
	}
	s.consumer = code
	s.consumerDown = true
	return nil
}

func (s *Sink) ConsumerRelease() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.consumerDown {
		return nil
	}
	if err := s.report(keyEvent(consumerToLinux[s.consumer], false)); err != nil {
		return err
	}
	s.consumerDown = false
	return nil
}

func (s *Sink) mouseButton(button hid.MouseButton, down bool) error {
	linux, ok := mouseToLinux[button]
	if !ok {
		return fmt.Errorf("%w: mouse button %d", ErrUnsupportedUsage, uint8(button))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report(keyEvent(linux, down))
}

func (s *Sink) MousePress(button hid.MouseButton) error {
	return s.mouseButton(button, true)
}

func (s *Sink) MouseRelease(button hid.MouseButton) error {
	return s.mouseButton(button, false)
}

func (s *Sink) MouseMove(dx, dy int) error {
	if dx == 0 && dy == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var events []inputEvent
	if dx != 0 {
		events = append(events, inputEvent{Type: EV_REL, Code: REL_X, Value: int32(dx)})
	}
	if dy != 0 {
		events = append(events, inputEvent{Type: EV_REL, Code: REL_Y, Value: int32(dy)})
	}
	return s.report(events...)
}

// GetKeysDownState returns the keys currently held, modifiers folded into
// the modifier byte.
func (s *Sink) GetKeysDownState() KeysDownState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := KeysDownState{Keys: []hid.Keycode{}}
	for code := range s.keysDown {
		if code.IsModifier() {
			state.Modifier |= code.ModifierMask()
			continue
		}
		state.Keys = append(state.Keys, code)
	}
	sort.Slice(state.Keys, func(i, j int) bool { return state.Keys[i] < state.Keys[j] })
	return state
}

func (s *Sink) GetLastUserInputTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUserInput
}
