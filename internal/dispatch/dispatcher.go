// Package dispatch translates key matrix events and touch motion into HID
// reports according to the active activity.
package dispatch

import (
	"math"
	"os"
	"sync/atomic"

	"github.com/jetkvm/remote/internal/activity"
	"github.com/jetkvm/remote/internal/hid"
	"github.com/jetkvm/remote/internal/touch"
	"github.com/rs/zerolog"
)

const (
	DefaultSensitivityX = 3.0
	DefaultSensitivityY = 3.0
)

type Config struct {
	SensitivityX float64
	SensitivityY float64
}

func DefaultConfig() Config {
	return Config{SensitivityX: DefaultSensitivityX, SensitivityY: DefaultSensitivityY}
}

// Motion is the pointer input for one tick.
type Motion struct {
	Delta touch.Point
	// Suppressed is set while the touch is being used for something other
	// than pointing, such as holding the title hot-zone.
	Suppressed bool
}

// Stats counts what the dispatcher did since it was created.
type Stats struct {
	Dispatched        uint64
	Dropped           uint64
	UnmappedCharacter uint64
	SinkErrors        uint64
}

type Dispatcher struct {
	cfg    Config
	sink   hid.Sink
	layout hid.Layout
	log    *zerolog.Logger

	connected bool

	dispatched        atomic.Uint64
	dropped           atomic.Uint64
	unmappedCharacter atomic.Uint64
	sinkErrors        atomic.Uint64
}

var defaultLogger = zerolog.New(os.Stdout).With().Str("subsystem", "dispatch").Logger()

func New(cfg Config, sink hid.Sink, layout hid.Layout, logger *zerolog.Logger) *Dispatcher {
	if logger == nil {
		l := defaultLogger
		logger = &l
	}
	if layout == nil {
		layout = hid.USLayout{}
	}
	return &Dispatcher{
		cfg:    cfg,
		sink:   sink,
		layout: layout,
		log:    logger,
	}
}

// Reset re-initialises the connection gate, used when the remote screen is
// entered.
func (d *Dispatcher) Reset(connected bool) {
	d.connected = connected
}

func (d *Dispatcher) SetConnected(connected bool) {
	d.connected = connected
}

func (d *Dispatcher) Connected() bool {
	return d.connected
}

func (d *Dispatcher) Stats() Stats {
	return Stats{
		Dispatched:        d.dispatched.Load(),
		Dropped:           d.dropped.Load(),
		UnmappedCharacter: d.unmappedCharacter.Load(),
		SinkErrors:        d.sinkErrors.Load(),
	}
}

// Drain discards keys without producing any report.
func (d *Dispatcher) Drain(keys []activity.KeyEvent) {
	if len(keys) == 0 {
		return
	}
	d.dropped.Add(uint64(len(keys)))
	d.log.Debug().Int("keys", len(keys)).Msg("dropped keys while disconnected")
}

// Dispatch emits the HID reports for one tick. While disconnected the input
// is consumed without producing any report; nothing is buffered for later.
func (d *Dispatcher) Dispatch(act *activity.Activity, keys []activity.KeyEvent, motion Motion) {
	if !d.connected {
		d.Drain(keys)
		return
	}

	if !motion.Delta.IsZero() && !motion.Suppressed {
		dx := scale(motion.Delta.X, d.cfg.SensitivityX)
		dy := scale(motion.Delta.Y, d.cfg.SensitivityY)
		d.emit("mouse_move", d.sink.MouseMove(dx, dy))
	}

	for _, ev := range keys {
		d.dispatchKey(act, ev)
	}
}

func (d *Dispatcher) dispatchKey(act *activity.Activity, ev activity.KeyEvent) {
	// long presses carry no action of their own
	if ev.Transition != activity.Press && ev.Transition != activity.Release {
		return
	}

	b, isButton := ev.Key.Button()
	if !isButton {
		d.typeCharacter(rune(ev.Key), ev.Transition)
		return
	}

	action := act.Action(b)
	if action == nil {
		d.log.Trace().Stringer("button", b).Msg("button not mapped in activity")
		return
	}

	press := ev.Transition == activity.Press

	switch action.Kind {
	case activity.HIDKeyboard:
		code := hid.Keycode(action.Code)
		if press {
			d.emit("keyboard_press", d.sink.KeyboardPress(code))
		} else {
			d.emit("keyboard_release", d.sink.KeyboardRelease(code))
		}

	case activity.HIDKeyboardLayout:
		d.typeCharacter(action.Char, ev.Transition)

	case activity.HIDConsumerControl:
		if press {
			d.emit("consumer_press", d.sink.ConsumerPress(hid.ConsumerCode(action.Code)))
		} else {
			d.emit("consumer_release", d.sink.ConsumerRelease())
		}

	case activity.HIDMouse:
		button := hid.MouseButton(action.Code)
		if press {
			d.emit("mouse_press", d.sink.MousePress(button))
		} else {
			d.emit("mouse_release", d.sink.MouseRelease(button))
		}

	default:
		d.log.Warn().Stringer("button", b).Uint8("kind", uint8(action.Kind)).Msg("unknown hid kind")
	}
}

// typeCharacter presses or releases the chord for ch. The layout is asked
// again on release instead of remembering the chord from the press.
func (d *Dispatcher) typeCharacter(ch rune, t activity.Transition) {
	codes, err := d.layout.KeycodesFor(ch)
	if err != nil {
		d.unmappedCharacter.Add(1)
		d.log.Warn().Err(err).Str("char", string(ch)).Msg("dropping key event")
		return
	}

	if t == activity.Press {
		d.emit("keyboard_press_many", d.sink.KeyboardPressMany(codes))
	} else {
		d.emit("keyboard_release_many", d.sink.KeyboardReleaseMany(codes))
	}
}

func (d *Dispatcher) emit(report string, err error) {
	d.dispatched.Add(1)
	if err != nil {
		d.sinkErrors.Add(1)
		d.log.Warn().Err(err).Str("report", report).Msg("failed to send hid report")
	}
}

func scale(v int, s float64) int {
	return int(math.Round(float64(v) * s))
}
