package uinput

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/jetkvm/remote/internal/hid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	Type  uint16
	Code  uint16
	Value int32
}

func newTestSink(t *testing.T) (*Sink, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	l := zerolog.Nop()
	return newSink(buf, &l), buf
}

func readEvents(t *testing.T, buf *bytes.Buffer) []event {
	t.Helper()
	var events []event
	for {
		var ev inputEvent
		err := binary.Read(buf, binary.NativeEndian, &ev)
		if errors.Is(err, io.EOF) {
			return events
		}
		require.NoError(t, err)
		events = append(events, event{Type: ev.Type, Code: ev.Code, Value: ev.Value})
	}
}

var syn = event{Type: EV_SYN, Code: SYN_REPORT}

func TestKeyboardPressRelease(t *testing.T) {
	s, buf := newTestSink(t)

	require.NoError(t, s.KeyboardPress(hid.KeyReturn))
	assert.Equal(t, []event{{EV_KEY, KEY_ENTER, 1}, syn}, readEvents(t, buf))
	assert.Equal(t, []hid.Keycode{hid.KeyReturn}, s.GetKeysDownState().Keys)

	require.NoError(t, s.KeyboardRelease(hid.KeyReturn))
	assert.Equal(t, []event{{EV_KEY, KEY_ENTER, 0}, syn}, readEvents(t, buf))
	assert.Empty(t, s.GetKeysDownState().Keys)
}

func TestShiftChordReleasesInReverse(t *testing.T) {
	s, buf := newTestSink(t)
	chord := []hid.Keycode{hid.KeyLeftShift, hid.KeyQ}

	require.NoError(t, s.KeyboardPressMany(chord))
	assert.Equal(t, []event{{EV_KEY, KEY_LEFTSHIFT, 1}, {EV_KEY, KEY_Q, 1}, syn}, readEvents(t, buf))
	state := s.GetKeysDownState()
	assert.Equal(t, byte(0x02), state.Modifier)
	assert.Equal(t, []hid.Keycode{hid.KeyQ}, state.Keys)

	require.NoError(t, s.KeyboardReleaseMany(chord))
	assert.Equal(t, []event{{EV_KEY, KEY_Q, 0}, {EV_KEY, KEY_LEFTSHIFT, 0}, syn}, readEvents(t, buf))
	assert.Zero(t, s.GetKeysDownState().Modifier)
}

func TestUnsupportedKeyWritesNothing(t *testing.T) {
	s, buf := newTestSink(t)

	err := s.KeyboardPress(hid.Keycode(0x99))
	assert.ErrorIs(t, err, ErrUnsupportedUsage)
	assert.Zero(t, buf.Len())

	err = s.ConsumerPress(hid.ConsumerCode(0x1234))
	assert.ErrorIs(t, err, ErrUnsupportedUsage)
	assert.Zero(t, buf.Len())
}

func TestConsumerSingleSlot(t *testing.T) {
	s, buf := newTestSink(t)

	require.NoError(t, s.ConsumerPress(hid.ConsumerVolumeIncrement))
	assert.Equal(t, []event{{EV_KEY, KEY_VOLUMEUP, 1}, syn}, readEvents(t, buf))

	// a second usage replaces the first
	require.NoError(t, s.ConsumerPress(hid.ConsumerMute))
	assert.Equal(t, []event{{EV_KEY, KEY_VOLUMEUP, 0}, {EV_KEY, KEY_MUTE, 1}, syn}, readEvents(t, buf))

	require.NoError(t, s.ConsumerRelease())
	assert.Equal(t, []event{{EV_KEY, KEY_MUTE, 0}, syn}, readEvents(t, buf))

	// nothing held: release is a no-op
	require.NoError(t, s.ConsumerRelease())
	assert.Zero(t, buf.Len())
}

func TestMouse(t *testing.T) {
	s, buf := newTestSink(t)

	require.NoError(t, s.MousePress(hid.MouseLeft))
	require.NoError(t, s.MouseRelease(hid.MouseLeft))
	require.NoError(t, s.MouseMove(6, -3))
	require.NoError(t, s.MouseMove(0, 0))
	require.NoError(t, s.MouseMove(0, 2))

	assert.Equal(t, []event{
		{EV_KEY, BTN_LEFT, 1}, syn,
		{EV_KEY, BTN_LEFT, 0}, syn,
		{EV_REL, REL_X, 6}, {EV_REL, REL_Y, -3}, syn,
		{EV_REL, REL_Y, 2}, syn,
	}, readEvents(t, buf))
}

func TestEveryKeycodeIsMapped(t *testing.T) {
	for k := hid.KeyA; k <= hid.KeyUpArrow; k++ {
		if k == hid.KeyBackslash+1 {
			continue
		}
		_, ok := hidToLinux[k]
		assert.True(t, ok, "keycode 0x%02x", uint8(k))
	}
	for k := hid.KeyLeftControl; k <= hid.KeyRightGUI; k++ {
		_, ok := hidToLinux[k]
		assert.True(t, ok, "modifier 0x%02x", uint8(k))
	}
}

func TestLastUserInputTime(t *testing.T) {
	s, buf := newTestSink(t)
	before := s.GetLastUserInputTime()

	time.Sleep(2 * time.Millisecond)
	require.NoError(t, s.MouseMove(0, 0))
	assert.Equal(t, before, s.GetLastUserInputTime(), "a zero move writes nothing")

	require.NoError(t, s.MouseMove(3, 0))
	readEvents(t, buf)
	assert.True(t, s.GetLastUserInputTime().After(before))
}
