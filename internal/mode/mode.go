// Package mode switches the remote between normal operation and activity
// selection.
//
// The transition logic lives in Step, a pure function from the current Mode
// and one tick of input to the next Mode plus the Effects to perform. The
// Controller owns the mutable pieces (touch tracker, dispatcher, active
// activity) and applies the effects.
package mode

import (
	"fmt"
	"time"

	"github.com/jetkvm/remote/internal/activity"
	"github.com/jetkvm/remote/internal/dispatch"
	"github.com/jetkvm/remote/internal/ticks"
	"github.com/jetkvm/remote/internal/touch"
)

const DefaultHoldDuration = 1500 * time.Millisecond

// Rect is a screen region in display coordinates. Edges are inclusive.
type Rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

func (r Rect) Contains(p touch.Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// DefaultHotZone covers the activity title in the top left corner.
func DefaultHotZone() Rect {
	return Rect{X: 0, Y: 0, W: 160, H: 36}
}

type Config struct {
	HoldDuration time.Duration
	HotZone      Rect
	// ActivityCount bounds the indices the select buttons can pick.
	ActivityCount int
}

func DefaultConfig() Config {
	return Config{
		HoldDuration:  DefaultHoldDuration,
		HotZone:       DefaultHotZone(),
		ActivityCount: 4,
	}
}

// Mode is either Remote or ConfigSelect.
type Mode interface {
	fmt.Stringer
	modeMarker()
}

// Remote forwards input to the HID peer.
type Remote struct {
	Connected bool
	Hold      HoldState
}

func (Remote) modeMarker()    {}
func (Remote) String() string { return "remote" }

// ConfigSelect lets the user pick an activity with L1, L2, R1 or R2. The
// first pick ends the session, so a selection is reported at most once.
type ConfigSelect struct{}

func (ConfigSelect) modeMarker()    {}
func (ConfigSelect) String() string { return "config_select" }

// Input is everything Step needs to know about one tick. Touch fields
// reflect the touch tracker after it has been updated for this tick.
type Input struct {
	Now       ticks.Ms
	Touched   bool
	Point     touch.Point
	Delta     touch.Point
	Connected bool
	Keys      []activity.KeyEvent
}

// Effect is a side effect requested by Step.
type Effect interface {
	effectMarker()
}

// DispatchInput hands the tick's keys and motion to the dispatcher.
type DispatchInput struct {
	Keys   []activity.KeyEvent
	Motion dispatch.Motion
}

// DrainInput discards keys that arrived while no host was connected.
type DrainInput struct {
	Keys []activity.KeyEvent
}

// TitlePressed changes the highlight of the hot-zone.
type TitlePressed struct {
	Pressed bool
}

type EnterConfigSelect struct{}

type EnterRemote struct {
	Connected bool
}

// ActivitySelected makes Index the active activity. It is always emitted
// before the EnterRemote that follows it.
type ActivitySelected struct {
	Index int
}

type ConnectionChanged struct {
	Connected bool
}

// AdjustColor steps the UI colour index by Step.
type AdjustColor struct {
	Step int
}

// AdjustBrightness steps the backlight brightness index by Step.
type AdjustBrightness struct {
	Step int
}

func (DispatchInput) effectMarker()     {}
func (DrainInput) effectMarker()        {}
func (TitlePressed) effectMarker()      {}
func (EnterConfigSelect) effectMarker() {}
func (EnterRemote) effectMarker()       {}
func (ActivitySelected) effectMarker()  {}
func (ConnectionChanged) effectMarker() {}
func (AdjustColor) effectMarker()       {}
func (AdjustBrightness) effectMarker()  {}

// selectKeys maps the function buttons to the activity index they pick.
var selectKeys = map[activity.Key]int{
	activity.KeyL1: 0,
	activity.KeyL2: 1,
	activity.KeyR1: 2,
	activity.KeyR2: 3,
}

// Step computes the next mode and the effects of one tick. It performs no
// I/O and does not mutate anything it is given.
func Step(m Mode, in Input, cfg Config) (Mode, []Effect) {
	switch cur := m.(type) {
	case Remote:
		return stepRemote(cur, in, cfg)
	case ConfigSelect:
		return stepConfigSelect(cur, in, cfg)
	default:
		return Remote{Connected: in.Connected, Hold: HoldState{WasTouched: in.Touched}}, []Effect{EnterRemote{Connected: in.Connected}}
	}
}

func stepRemote(m Remote, in Input, cfg Config) (Mode, []Effect) {
	var effects []Effect

	if in.Connected != m.Connected {
		if m.Hold.Armed {
			effects = append(effects, TitlePressed{Pressed: false})
		}
		// a touch that spans the connection change has to be lifted first
		m.Hold = HoldState{WasTouched: in.Touched}
		m.Connected = in.Connected
		effects = append(effects, ConnectionChanged{Connected: in.Connected})
	}

	// while disconnected input is drained without effect
	if !m.Connected {
		if len(in.Keys) > 0 {
			effects = append(effects, DrainInput{Keys: in.Keys})
		}
		return m, effects
	}

	hold, holdEffects, fired := m.Hold.step(in, cfg)
	m.Hold = hold
	effects = append(effects, holdEffects...)
	if fired {
		return ConfigSelect{}, append(effects, EnterConfigSelect{})
	}

	effects = append(effects, DispatchInput{
		Keys: in.Keys,
		Motion: dispatch.Motion{
			Delta:      in.Delta,
			Suppressed: m.Hold.Armed,
		},
	})
	return m, effects
}

func stepConfigSelect(m ConfigSelect, in Input, cfg Config) (Mode, []Effect) {
	var effects []Effect

	for _, ev := range in.Keys {
		if ev.Transition != activity.Press {
			continue
		}

		if index, ok := selectKeys[ev.Key]; ok {
			if index >= cfg.ActivityCount {
				continue
			}
			next := Remote{Connected: in.Connected, Hold: HoldState{WasTouched: in.Touched}}
			return next, append(effects,
				ActivitySelected{Index: index},
				EnterRemote{Connected: in.Connected},
			)
		}

		switch ev.Key {
		case activity.KeyRight:
			effects = append(effects, AdjustColor{Step: 1})
		case activity.KeyLeft:
			effects = append(effects, AdjustColor{Step: -1})
		case activity.KeyUp:
			effects = append(effects, AdjustBrightness{Step: 1})
		case activity.KeyDown:
			effects = append(effects, AdjustBrightness{Step: -1})
		}
	}
	return m, effects
}
