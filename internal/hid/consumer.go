package hid

import (
	"fmt"
	"strconv"
	"strings"
)

// ConsumerCode is a HID consumer page usage (usage page 0x0C).
type ConsumerCode uint16

const (
	ConsumerMenu            ConsumerCode = 0x40
	ConsumerRecord          ConsumerCode = 0xB2
	ConsumerFastForward     ConsumerCode = 0xB3
	ConsumerRewind          ConsumerCode = 0xB4
	ConsumerScanNextTrack   ConsumerCode = 0xB5
	ConsumerScanPrevTrack   ConsumerCode = 0xB6
	ConsumerStop            ConsumerCode = 0xB7
	ConsumerEject           ConsumerCode = 0xB8
	ConsumerPlayPause       ConsumerCode = 0xCD
	ConsumerMute            ConsumerCode = 0xE2
	ConsumerVolumeIncrement ConsumerCode = 0xE9
	ConsumerVolumeDecrement ConsumerCode = 0xEA
	ConsumerBrightnessUp    ConsumerCode = 0x6F
	ConsumerBrightnessDown  ConsumerCode = 0x70
)

var consumerNames = map[string]ConsumerCode{
	"MENU":                 ConsumerMenu,
	"RECORD":               ConsumerRecord,
	"FAST_FORWARD":         ConsumerFastForward,
	"REWIND":               ConsumerRewind,
	"SCAN_NEXT_TRACK":      ConsumerScanNextTrack,
	"SCAN_PREVIOUS_TRACK":  ConsumerScanPrevTrack,
	"STOP":                 ConsumerStop,
	"EJECT":                ConsumerEject,
	"PLAY_PAUSE":           ConsumerPlayPause,
	"MUTE":                 ConsumerMute,
	"VOLUME_INCREMENT":     ConsumerVolumeIncrement,
	"VOLUME_DECREMENT":     ConsumerVolumeDecrement,
	"BRIGHTNESS_INCREMENT": ConsumerBrightnessUp,
	"BRIGHTNESS_DECREMENT": ConsumerBrightnessDown,
}

func ParseConsumerCode(s string) (ConsumerCode, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if c, ok := consumerNames[name]; ok {
		return c, nil
	}
	n, err := strconv.ParseUint(name, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("unknown consumer control code %q", s)
	}
	return ConsumerCode(n), nil
}

// MouseButton is a bit in the mouse report button byte.
type MouseButton uint8

const (
	MouseLeft   MouseButton = 1 << 0
	MouseRight  MouseButton = 1 << 1
	MouseMiddle MouseButton = 1 << 2
)

func ParseMouseButton(s string) (MouseButton, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LEFT_BUTTON", "LEFT":
		return MouseLeft, nil
	case "RIGHT_BUTTON", "RIGHT":
		return MouseRight, nil
	case "MIDDLE_BUTTON", "MIDDLE":
		return MouseMiddle, nil
	}
	return 0, fmt.Errorf("unknown mouse button %q", s)
}

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	default:
		return fmt.Sprintf("button(0x%02x)", uint8(b))
	}
}
