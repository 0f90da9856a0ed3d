package mode

import (
	"github.com/jetkvm/remote/internal/ticks"
)

// HoldState tracks a press and hold on the hot-zone.
type HoldState struct {
	// Armed is set from a touch-down inside the hot-zone until the touch
	// leaves it, is lifted or the hold completes.
	Armed bool
	Start ticks.Ms
	// WasTouched is the touch state seen on the previous tick, used to find
	// touch-down edges.
	WasTouched bool
}

// step advances the detector by one tick. fired is true on the single tick
// the hold duration is reached; the detector is disarmed at that point so it
// cannot fire again before the next touch-down.
func (h HoldState) step(in Input, cfg Config) (next HoldState, effects []Effect, fired bool) {
	next = h

	switch {
	case in.Touched && !h.WasTouched:
		if cfg.HotZone.Contains(in.Point) {
			next.Armed = true
			next.Start = in.Now
			effects = append(effects, TitlePressed{Pressed: true})
		}

	case in.Touched && h.Armed:
		if !cfg.HotZone.Contains(in.Point) {
			next.Armed = false
			effects = append(effects, TitlePressed{Pressed: false})
		} else if ticks.Elapsed(in.Now, h.Start, cfg.HoldDuration) {
			next.Armed = false
			fired = true
			effects = append(effects, TitlePressed{Pressed: false})
		}

	case !in.Touched && h.Armed:
		next.Armed = false
		effects = append(effects, TitlePressed{Pressed: false})
	}

	next.WasTouched = in.Touched
	return next, effects, fired
}
