package activity

import "github.com/jetkvm/remote/internal/hid"

// Icons understood by the display. Anything else is drawn as text.
const (
	IconLeftMouse    = "LEFT_MOUSE"
	IconRightMouse   = "RIGHT_MOUSE"
	IconMute         = "MUTE"
	IconSpeakerMinus = "SPEAKER_MINUS"
	IconSpeakerPlus  = "SPEAKER_PLUS"
	IconUpArrow      = "UP_ARROW"
	IconDownArrow    = "DOWN_ARROW"
	IconLeftArrow    = "LEFT_ARROW"
	IconRightArrow   = "RIGHT_ARROW"
	IconPlayPause    = "PLAY_PAUSE"
	IconReturn       = "RETURN"
	IconOption       = "OPTION"
	IconCommand      = "COMMAND"
	IconBack         = "BACK"
	IconHome         = "HOME"
)

func arrows() (up, down, left, right *Action) {
	return KeyboardAction(hid.KeyUpArrow, IconUpArrow),
		KeyboardAction(hid.KeyDownArrow, IconDownArrow),
		KeyboardAction(hid.KeyLeftArrow, IconLeftArrow),
		KeyboardAction(hid.KeyRightArrow, IconRightArrow)
}

func withArrows(m Mapping) Mapping {
	m[Up], m[Down], m[Left], m[Right] = arrows()
	return m
}

// DefaultActivities returns the four presets the remote ships with.
func DefaultActivities() []Activity {
	return []Activity{
		{
			Name:             "Media",
			ShowMouseMessage: true,
			Mapping: withArrows(Mapping{
				L1:     MouseAction(hid.MouseLeft, IconLeftMouse),
				L2:     ConsumerAction(hid.ConsumerMute, IconMute),
				R1:     ConsumerAction(hid.ConsumerVolumeDecrement, IconSpeakerMinus),
				R2:     ConsumerAction(hid.ConsumerVolumeIncrement, IconSpeakerPlus),
				Select: ConsumerAction(hid.ConsumerPlayPause, IconPlayPause),
			}),
		},
		{
			Name:             "Photo Booth",
			ShowMouseMessage: true,
			Mapping: withArrows(Mapping{
				L1:     MouseAction(hid.MouseLeft, IconLeftMouse),
				L2:     ConsumerAction(hid.ConsumerPlayPause, IconPlayPause),
				R1:     KeyboardAction(hid.KeyReturn, IconReturn),
				R2:     KeyboardAction(hid.KeyEscape, "ESC"),
				Select: KeyboardAction(hid.KeyReturn, IconReturn),
			}),
		},
		{
			Name:             "Mac",
			ShowMouseMessage: true,
			Mapping: withArrows(Mapping{
				L1:     MouseAction(hid.MouseLeft, IconLeftMouse),
				L2:     MouseAction(hid.MouseRight, IconRightMouse),
				R1:     KeyboardAction(hid.KeyOption, IconOption),
				R2:     KeyboardAction(hid.KeyCommand, IconCommand),
				Select: KeyboardAction(hid.KeyReturn, IconReturn),
			}),
		},
		{
			Name:             "Apple TV",
			ShowMouseMessage: false,
			Mapping: withArrows(Mapping{
				L1:     ConsumerAction(hid.ConsumerVolumeDecrement, IconSpeakerMinus),
				L2:     ConsumerAction(hid.ConsumerVolumeIncrement, IconSpeakerPlus),
				R1:     KeyboardAction(hid.KeyEscape, IconBack),
				R2:     ConsumerAction(hid.ConsumerMenu, IconHome),
				Select: KeyboardAction(hid.KeyReturn, IconReturn),
			}),
		},
	}
}

func DefaultTable() *Table {
	t, _ := NewTable(DefaultActivities()...)
	return t
}
