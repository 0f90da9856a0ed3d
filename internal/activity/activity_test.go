package activity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetkvm/remote/internal/hid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyButtonRoundTrip(t *testing.T) {
	for b := Button(0); b < ButtonCount; b++ {
		got, ok := b.Key().Button()
		require.True(t, ok, b.String())
		assert.Equal(t, b, got)
	}

	_, ok := Key('a').Button()
	assert.False(t, ok)
	assert.Equal(t, "L2", KeyL2.String())
	assert.Equal(t, "'a'", Key('a').String())
}

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()
	require.Equal(t, 4, table.Len())
	assert.Equal(t, []string{"Media", "Photo Booth", "Mac", "Apple TV"}, table.Names())

	media := table.At(0)
	assert.Equal(t, &Action{Kind: HIDMouse, Code: uint16(hid.MouseLeft), Icon: IconLeftMouse}, media.Action(L1))
	assert.Equal(t, HIDConsumerControl, media.Action(Select).Kind)
	assert.Equal(t, uint16(hid.KeyUpArrow), media.Action(Up).Code)

	appleTV := table.At(3)
	assert.False(t, appleTV.ShowMouseMessage)
	assert.Equal(t, uint16(hid.ConsumerMenu), appleTV.Action(R2).Code)
}

func TestTableResolve(t *testing.T) {
	table, err := NewTable(Activity{
		Name:    "sparse",
		Mapping: Mapping{L1: MouseAction(hid.MouseLeft, "")},
	})
	require.NoError(t, err)

	action, isButton := table.Resolve(0, KeyL1)
	assert.True(t, isButton)
	require.NotNil(t, action)
	assert.Equal(t, HIDMouse, action.Kind)

	action, isButton = table.Resolve(0, KeyR2)
	assert.True(t, isButton)
	assert.Nil(t, action)

	action, isButton = table.Resolve(0, Key('x'))
	assert.False(t, isButton)
	assert.Nil(t, action)
}

func TestTableClamp(t *testing.T) {
	table := DefaultTable()
	assert.Equal(t, 0, table.Clamp(-1))
	assert.Equal(t, 3, table.Clamp(9))
	assert.Equal(t, "Apple TV", table.At(200).Name)
}

func TestNewTableRejectsEmpty(t *testing.T) {
	_, err := NewTable()
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = NewTable(Activity{})
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	table, err := Parse([]byte(`
activities:
  - name: Slides
    show_mouse_message: false
    buttons:
      L1: {hid: keyboard, code: PAGE_UP, icon: "<"}
      R1: {hid: keyboard, code: PAGE_DOWN, icon: ">"}
      L2: {hid: consumer_control, code: "0x40"}
      R2: {hid: mouse, code: RIGHT_BUTTON}
      SELECT: {hid: keyboard_layout, char: "b"}
      UP: null
  - name: Second
    buttons: {}
`))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	slides := table.At(0)
	assert.Equal(t, "Slides", slides.Name)
	assert.Equal(t, KeyboardAction(hid.KeyPageUp, "<"), slides.Action(L1))
	assert.Equal(t, KeyboardAction(hid.KeyPageDown, ">"), slides.Action(R1))
	assert.Equal(t, ConsumerAction(hid.ConsumerMenu, ""), slides.Action(L2))
	assert.Equal(t, MouseAction(hid.MouseRight, ""), slides.Action(R2))
	assert.Equal(t, LayoutAction('b', ""), slides.Action(Select))
	assert.Nil(t, slides.Action(Up))
	assert.Nil(t, slides.Action(Down))
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"unknown field":  "activities:\n  - name: A\n    colour: red\n",
		"unknown button": "activities:\n  - name: A\n    buttons:\n      L3: {hid: mouse, code: LEFT}\n",
		"unknown hid":    "activities:\n  - name: A\n    buttons:\n      L1: {hid: gamepad, code: A}\n",
		"bad keycode":    "activities:\n  - name: A\n    buttons:\n      L1: {hid: keyboard, code: WARP}\n",
		"long char":      "activities:\n  - name: A\n    buttons:\n      L1: {hid: keyboard_layout, char: ab}\n",
		"no activities":  "activities: []\n",
		"empty":          "",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.yaml")
	require.NoError(t, os.WriteFile(path, []byte("activities:\n  - name: Only\n"), 0o644))

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Only"}, table.Names())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
