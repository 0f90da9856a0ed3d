package mode

import (
	"testing"
	"time"

	"github.com/jetkvm/remote/internal/activity"
	"github.com/jetkvm/remote/internal/dispatch"
	"github.com/jetkvm/remote/internal/ticks"
	"github.com/jetkvm/remote/internal/touch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	inZone  = touch.Point{X: 20, Y: 10}
	outZone = touch.Point{X: 250, Y: 200}
)

func testConfig() Config {
	return Config{
		HoldDuration:  1500 * time.Millisecond,
		HotZone:       Rect{X: 0, Y: 0, W: 100, H: 30},
		ActivityCount: 4,
	}
}

// holdFor touches down at start and keeps the contact at p until start+d,
// returning the mode and the effects of every tick.
func holdFor(t *testing.T, start ticks.Ms, d time.Duration, p touch.Point) (Mode, [][]Effect) {
	t.Helper()
	cfg := testConfig()
	var m Mode = Remote{Connected: true}
	var all [][]Effect

	end := ticks.Add(start, int32(d.Milliseconds()))
	for now := start; ticks.Diff(now, end) <= 0; now = ticks.Add(now, 1) {
		var effects []Effect
		m, effects = Step(m, Input{Now: now, Touched: true, Point: p, Connected: true}, cfg)
		all = append(all, effects)
		if _, ok := m.(ConfigSelect); ok {
			break
		}
	}
	return m, all
}

func countEffects[T Effect](batches [][]Effect) int {
	n := 0
	for _, effects := range batches {
		for _, e := range effects {
			if _, ok := e.(T); ok {
				n++
			}
		}
	}
	return n
}

func TestHoldExactlyThresholdEntersConfig(t *testing.T) {
	m, all := holdFor(t, 1000, 1500*time.Millisecond, inZone)

	assert.Equal(t, ConfigSelect{}, m)
	assert.Equal(t, 1, countEffects[EnterConfigSelect](all))
	assert.Len(t, all, 1501)
}

func TestHoldJustUnderThresholdStaysRemote(t *testing.T) {
	m, all := holdFor(t, 1000, 1499*time.Millisecond, inZone)

	r, ok := m.(Remote)
	require.True(t, ok)
	assert.True(t, r.Hold.Armed)
	assert.Equal(t, 0, countEffects[EnterConfigSelect](all))
	// pointer motion is suppressed while the title is held
	for _, effects := range all {
		for _, e := range effects {
			if d, ok := e.(DispatchInput); ok {
				assert.True(t, d.Motion.Suppressed)
			}
		}
	}
}

func TestHoldAcrossClockWrap(t *testing.T) {
	m, _ := holdFor(t, ticks.Ms(0xFFFFFF00), 1500*time.Millisecond, inZone)
	assert.Equal(t, ConfigSelect{}, m)
}

func TestHoldOutsideZoneNeverArms(t *testing.T) {
	m, all := holdFor(t, 0, 3*time.Second, outZone)

	assert.IsType(t, Remote{}, m)
	assert.Equal(t, 0, countEffects[TitlePressed](all))
}

func TestLeavingZoneCancelsHold(t *testing.T) {
	cfg := testConfig()
	var m Mode = Remote{Connected: true}
	var effects []Effect

	m, effects = Step(m, Input{Now: 0, Touched: true, Point: inZone, Connected: true}, cfg)
	assert.Contains(t, effects, Effect(TitlePressed{Pressed: true}))

	m, _ = Step(m, Input{Now: 1000, Touched: true, Point: inZone, Connected: true}, cfg)
	m, effects = Step(m, Input{Now: 1200, Touched: true, Point: outZone, Connected: true}, cfg)
	assert.Contains(t, effects, Effect(TitlePressed{Pressed: false}))

	// coming back into the zone without lifting does not re-arm
	for now := ticks.Ms(1201); now < 5000; now += 100 {
		m, effects = Step(m, Input{Now: now, Touched: true, Point: inZone, Connected: true}, cfg)
		assert.IsType(t, Remote{}, m)
		assert.NotContains(t, effects, Effect(EnterConfigSelect{}))
	}
}

func TestLiftingDisarmsWithoutFiring(t *testing.T) {
	cfg := testConfig()
	var m Mode = Remote{Connected: true}
	var effects []Effect

	m, _ = Step(m, Input{Now: 0, Touched: true, Point: inZone, Connected: true}, cfg)
	m, effects = Step(m, Input{Now: 1400, Connected: true}, cfg)
	assert.Contains(t, effects, Effect(TitlePressed{Pressed: false}))

	m, _ = Step(m, Input{Now: 1600, Connected: true}, cfg)
	assert.IsType(t, Remote{}, m)
	assert.False(t, m.(Remote).Hold.Armed)
}

func TestRemoteDispatchesInput(t *testing.T) {
	keys := []activity.KeyEvent{{Key: activity.KeyL1, Transition: activity.Press}}
	delta := touch.Point{X: 3, Y: -2}

	m, effects := Step(Remote{Connected: true}, Input{
		Now: 5, Touched: true, Point: outZone, Delta: delta, Connected: true, Keys: keys,
	}, testConfig())

	assert.IsType(t, Remote{}, m)
	assert.Equal(t, []Effect{DispatchInput{Keys: keys, Motion: dispatch.Motion{Delta: delta}}}, effects)
}

func TestDisconnectDiscardsHoldAndDrainsInput(t *testing.T) {
	cfg := testConfig()
	var m Mode = Remote{Connected: true}

	m, _ = Step(m, Input{Now: 0, Touched: true, Point: inZone, Connected: true}, cfg)
	require.True(t, m.(Remote).Hold.Armed)

	keys := []activity.KeyEvent{{Key: 'a', Transition: activity.Press}}
	m, effects := Step(m, Input{Now: 100, Touched: true, Point: inZone, Keys: keys}, cfg)
	assert.Equal(t, []Effect{
		TitlePressed{Pressed: false},
		ConnectionChanged{Connected: false},
		DrainInput{Keys: keys},
	}, effects)
	assert.Equal(t, Remote{Connected: false, Hold: HoldState{WasTouched: true}}, m)

	// held past the threshold while disconnected: only the keys are drained
	m, effects = Step(m, Input{Now: 3000, Touched: true, Point: inZone, Keys: keys}, cfg)
	assert.Equal(t, []Effect{DrainInput{Keys: keys}}, effects)

	m, effects = Step(m, Input{Now: 3000, Touched: true, Point: inZone}, cfg)
	assert.Empty(t, effects)
	assert.IsType(t, Remote{}, m)

	// reconnecting with the same touch still down needs a fresh touch-down
	m, effects = Step(m, Input{Now: 3001, Touched: true, Point: inZone, Connected: true}, cfg)
	assert.Contains(t, effects, Effect(ConnectionChanged{Connected: true}))
	assert.False(t, m.(Remote).Hold.Armed)
}

func TestConfigSelectPicksActivity(t *testing.T) {
	tests := []struct {
		key  activity.Key
		want int
	}{
		{activity.KeyL1, 0},
		{activity.KeyL2, 1},
		{activity.KeyR1, 2},
		{activity.KeyR2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			m, effects := Step(ConfigSelect{}, Input{
				Connected: true,
				Keys:      []activity.KeyEvent{{Key: tt.key, Transition: activity.Press}},
			}, testConfig())

			assert.Equal(t, Remote{Connected: true}, m)
			assert.Equal(t, []Effect{ActivitySelected{Index: tt.want}, EnterRemote{Connected: true}}, effects)
		})
	}
}

func TestConfigSelectOnlyFirstPressCounts(t *testing.T) {
	press := activity.KeyEvent{Key: activity.KeyR1, Transition: activity.Press}

	_, effects := Step(ConfigSelect{}, Input{Keys: []activity.KeyEvent{press, press, {Key: activity.KeyL1, Transition: activity.Press}}}, testConfig())
	assert.Equal(t, 1, countEffects[ActivitySelected]([][]Effect{effects}))
}

func TestConfigSelectIgnoresReleaseAndOutOfRange(t *testing.T) {
	cfg := testConfig()
	cfg.ActivityCount = 2

	m, effects := Step(ConfigSelect{}, Input{Keys: []activity.KeyEvent{
		{Key: activity.KeyL1, Transition: activity.Release},
		{Key: activity.KeyR2, Transition: activity.Press},
		{Key: 'x', Transition: activity.Press},
	}}, cfg)

	assert.Equal(t, ConfigSelect{}, m)
	assert.Empty(t, effects)
}

func TestConfigSelectAdjustments(t *testing.T) {
	_, effects := Step(ConfigSelect{}, Input{Keys: []activity.KeyEvent{
		{Key: activity.KeyRight, Transition: activity.Press},
		{Key: activity.KeyLeft, Transition: activity.Press},
		{Key: activity.KeyUp, Transition: activity.Press},
		{Key: activity.KeyDown, Transition: activity.Press},
		{Key: activity.KeyDown, Transition: activity.Release},
	}}, testConfig())

	assert.Equal(t, []Effect{
		AdjustColor{Step: 1},
		AdjustColor{Step: -1},
		AdjustBrightness{Step: 1},
		AdjustBrightness{Step: -1},
	}, effects)
}

func TestStepDoesNotEmitDispatchInConfigSelect(t *testing.T) {
	_, effects := Step(ConfigSelect{}, Input{
		Connected: true,
		Touched:   true,
		Delta:     touch.Point{X: 4, Y: 4},
		Keys:      []activity.KeyEvent{{Key: 'a', Transition: activity.Press}},
	}, testConfig())
	assert.Equal(t, 0, countEffects[DispatchInput]([][]Effect{effects}))
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 5}
	assert.True(t, r.Contains(touch.Point{X: 10, Y: 10}))
	assert.True(t, r.Contains(touch.Point{X: 30, Y: 15}))
	assert.False(t, r.Contains(touch.Point{X: 31, Y: 15}))
	assert.False(t, r.Contains(touch.Point{X: 9, Y: 12}))
}
