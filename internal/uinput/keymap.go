package uinput

import "github.com/jetkvm/remote/internal/hid"

// Linux input event codes, from linux/input-event-codes.h.
const (
	KEY_RESERVED   = 0
	KEY_ESC        = 1
	KEY_1          = 2
	KEY_2          = 3
	KEY_3          = 4
	KEY_4          = 5
	KEY_5          = 6
	KEY_6          = 7
	KEY_7          = 8
	KEY_8          = 9
	KEY_9          = 10
	KEY_0          = 11
	KEY_MINUS      = 12
	KEY_EQUAL      = 13
	KEY_BACKSPACE  = 14
	KEY_TAB        = 15
	KEY_Q          = 16
	KEY_W          = 17
	KEY_E          = 18
	KEY_R          = 19
	KEY_T          = 20
	KEY_Y          = 21
	KEY_U          = 22
	KEY_I          = 23
	KEY_O          = 24
	KEY_P          = 25
	KEY_LEFTBRACE  = 26
	KEY_RIGHTBRACE = 27
	KEY_ENTER      = 28
	KEY_LEFTCTRL   = 29
	KEY_A          = 30
	KEY_S          = 31
	KEY_D          = 32
	KEY_F          = 33
	KEY_G          = 34
	KEY_H          = 35
	KEY_J          = 36
	KEY_K          = 37
	KEY_L          = 38
	KEY_SEMICOLON  = 39
	KEY_APOSTROPHE = 40
	KEY_GRAVE      = 41
	KEY_LEFTSHIFT  = 42
	KEY_BACKSLASH  = 43
	KEY_Z          = 44
	KEY_X          = 45
	KEY_C          = 46
	KEY_V          = 47
	KEY_B          = 48
	KEY_N          = 49
	KEY_M          = 50
	KEY_COMMA      = 51
	KEY_DOT        = 52
	KEY_SLASH      = 53
	KEY_RIGHTSHIFT = 54
	KEY_LEFTALT    = 56
	KEY_SPACE      = 57
	KEY_CAPSLOCK   = 58
	KEY_F1         = 59
	KEY_F2         = 60
	KEY_F3         = 61
	KEY_F4         = 62
	KEY_F5         = 63
	KEY_F6         = 64
	KEY_F7         = 65
	KEY_F8         = 66
	KEY_F9         = 67
	KEY_F10        = 68
	KEY_SCROLLLOCK = 70
	KEY_F11        = 87
	KEY_F12        = 88
	KEY_RIGHTCTRL  = 97
	KEY_SYSRQ      = 99
	KEY_RIGHTALT   = 100
	KEY_HOME       = 102
	KEY_UP         = 103
	KEY_PAGEUP     = 104
	KEY_LEFT       = 105
	KEY_RIGHT      = 106
	KEY_END        = 107
	KEY_DOWN       = 108
	KEY_PAGEDOWN   = 109
	KEY_INSERT     = 110
	KEY_DELETE     = 111
	KEY_PAUSE      = 119
	KEY_LEFTMETA   = 125
	KEY_RIGHTMETA  = 126

	KEY_MUTE           = 113
	KEY_VOLUMEDOWN     = 114
	KEY_VOLUMEUP       = 115
	KEY_MENU           = 139
	KEY_EJECTCD        = 161
	KEY_NEXTSONG       = 163
	KEY_PLAYPAUSE      = 164
	KEY_PREVIOUSSONG   = 165
	KEY_STOPCD         = 166
	KEY_RECORD         = 167
	KEY_REWIND         = 168
	KEY_FASTFORWARD    = 208
	KEY_BRIGHTNESSDOWN = 224
	KEY_BRIGHTNESSUP   = 225

	BTN_LEFT   = 0x110
	BTN_RIGHT  = 0x111
	BTN_MIDDLE = 0x112

	REL_X = 0x00
	REL_Y = 0x01
)

var hidToLinux = map[hid.Keycode]uint16{
	hid.KeyA: KEY_A, hid.KeyB: KEY_B, hid.KeyC: KEY_C, hid.KeyD: KEY_D,
	hid.KeyE: KEY_E, hid.KeyF: KEY_F, hid.KeyG: KEY_G, hid.KeyH: KEY_H,
	hid.KeyI: KEY_I, hid.KeyJ: KEY_J, hid.KeyK: KEY_K, hid.KeyL: KEY_L,
	hid.KeyM: KEY_M, hid.KeyN: KEY_N, hid.KeyO: KEY_O, hid.KeyP: KEY_P,
	hid.KeyQ: KEY_Q, hid.KeyR: KEY_R, hid.KeyS: KEY_S, hid.KeyT: KEY_T,
	hid.KeyU: KEY_U, hid.KeyV: KEY_V, hid.KeyW: KEY_W, hid.KeyX: KEY_X,
	hid.KeyY: KEY_Y, hid.KeyZ: KEY_Z,

	hid.Key1: KEY_1, hid.Key2: KEY_2, hid.Key3: KEY_3, hid.Key4: KEY_4,
	hid.Key5: KEY_5, hid.Key6: KEY_6, hid.Key7: KEY_7, hid.Key8: KEY_8,
	hid.Key9: KEY_9, hid.Key0: KEY_0,

	hid.KeyReturn:       KEY_ENTER,
	hid.KeyEscape:       KEY_ESC,
	hid.KeyBackspace:    KEY_BACKSPACE,
	hid.KeyTab:          KEY_TAB,
	hid.KeySpace:        KEY_SPACE,
	hid.KeyMinus:        KEY_MINUS,
	hid.KeyEquals:       KEY_EQUAL,
	hid.KeyLeftBracket:  KEY_LEFTBRACE,
	hid.KeyRightBracket: KEY_RIGHTBRACE,
	hid.KeyBackslash:    KEY_BACKSLASH,
	hid.KeySemicolon:    KEY_SEMICOLON,
	hid.KeyQuote:        KEY_APOSTROPHE,
	hid.KeyGrave:        KEY_GRAVE,
	hid.KeyComma:        KEY_COMMA,
	hid.KeyPeriod:       KEY_DOT,
	hid.KeySlash:        KEY_SLASH,
	hid.KeyCapsLock:     KEY_CAPSLOCK,

	hid.KeyF1: KEY_F1, hid.KeyF2: KEY_F2, hid.KeyF3: KEY_F3, hid.KeyF4: KEY_F4,
	hid.KeyF5: KEY_F5, hid.KeyF6: KEY_F6, hid.KeyF7: KEY_F7, hid.KeyF8: KEY_F8,
	hid.KeyF9: KEY_F9, hid.KeyF10: KEY_F10, hid.KeyF11: KEY_F11, hid.KeyF12: KEY_F12,

	hid.KeyPrintScreen: KEY_SYSRQ,
	hid.KeyScrollLock:  KEY_SCROLLLOCK,
	hid.KeyPause:       KEY_PAUSE,
	hid.KeyInsert:      KEY_INSERT,
	hid.KeyHome:        KEY_HOME,
	hid.KeyPageUp:      KEY_PAGEUP,
	hid.KeyDelete:      KEY_DELETE,
	hid.KeyEnd:         KEY_END,
	hid.KeyPageDown:    KEY_PAGEDOWN,
	hid.KeyRightArrow:  KEY_RIGHT,
	hid.KeyLeftArrow:   KEY_LEFT,
	hid.KeyDownArrow:   KEY_DOWN,
	hid.KeyUpArrow:     KEY_UP,

	hid.KeyLeftControl:  KEY_LEFTCTRL,
	hid.KeyLeftShift:    KEY_LEFTSHIFT,
	hid.KeyLeftAlt:      KEY_LEFTALT,
	hid.KeyLeftGUI:      KEY_LEFTMETA,
	hid.KeyRightControl: KEY_RIGHTCTRL,
	hid.KeyRightShift:   KEY_RIGHTSHIFT,
	hid.KeyRightAlt:     KEY_RIGHTALT,
	hid.KeyRightGUI:     KEY_RIGHTMETA,
}

var consumerToLinux = map[hid.ConsumerCode]uint16{
	hid.ConsumerMenu:            KEY_MENU,
	hid.ConsumerRecord:          KEY_RECORD,
	hid.ConsumerFastForward:     KEY_FASTFORWARD,
	hid.ConsumerRewind:          KEY_REWIND,
	hid.ConsumerScanNextTrack:   KEY_NEXTSONG,
	hid.ConsumerScanPrevTrack:   KEY_PREVIOUSSONG,
	hid.ConsumerStop:            KEY_STOPCD,
	hid.ConsumerEject:           KEY_EJECTCD,
	hid.ConsumerPlayPause:       KEY_PLAYPAUSE,
	hid.ConsumerMute:            KEY_MUTE,
	hid.ConsumerVolumeIncrement: KEY_VOLUMEUP,
	hid.ConsumerVolumeDecrement: KEY_VOLUMEDOWN,
	hid.ConsumerBrightnessUp:    KEY_BRIGHTNESSUP,
	hid.ConsumerBrightnessDown:  KEY_BRIGHTNESSDOWN,
}

var mouseToLinux = map[hid.MouseButton]uint16{
	hid.MouseLeft:   BTN_LEFT,
	hid.MouseRight:  BTN_RIGHT,
	hid.MouseMiddle: BTN_MIDDLE,
}
