package remote

import (
	"io"
	"os"
	"time"

	"github.com/jetkvm/remote/internal/hid"
	"github.com/jetkvm/remote/internal/uinput"
	"github.com/rs/zerolog"
)

// detectUInput reports whether the uinput device node exists.
func detectUInput(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// initHIDSink picks the HID backend: uinput when enabled and present,
// otherwise a sink that only logs. The closer, when not nil, releases the
// backend.
func initHIDSink(cfg *Config) (hid.Sink, io.Closer, string) {
	if cfg.UInput.Enabled {
		if detectUInput(cfg.UInput.Path) {
			hidLogger.Info().Str("path", cfg.UInput.Path).Msg("Initializing uinput backend")
			u, err := uinput.Open(cfg.UInput.Path, cfg.Name, hidLogger)
			if err == nil {
				return u, u, "uinput"
			}
			hidLogger.Error().Err(err).Msg("failed to init uinput backend")
		} else {
			hidLogger.Warn().Str("path", cfg.UInput.Path).Msg("uinput device not found")
		}
	}

	hidLogger.Info().Msg("no HID backend available, logging reports only")
	return &logSink{log: hidLogger}, nil, "log"
}

// logSink accepts every report and writes it to the log.
type logSink struct {
	log *zerolog.Logger
}

var _ hid.Sink = (*logSink)(nil)

func (s *logSink) keys(msg string, codes ...hid.Keycode) error {
	b := make([]byte, len(codes))
	for i, c := range codes {
		b[i] = byte(c)
	}
	s.log.Debug().Hex("keys", b).Msg(msg)
	return nil
}

func (s *logSink) KeyboardPress(code hid.Keycode) error {
	return s.keys("keyboard press", code)
}

func (s *logSink) KeyboardRelease(code hid.Keycode) error {
	return s.keys("keyboard release", code)
}

func (s *logSink) KeyboardPressMany(codes []hid.Keycode) error {
	return s.keys("keyboard press", codes...)
}

func (s *logSink) KeyboardReleaseMany(codes []hid.Keycode) error {
	return s.keys("keyboard release", codes...)
}

func (s *logSink) ConsumerPress(code hid.ConsumerCode) error {
	s.log.Debug().Uint16("usage", uint16(code)).Msg("consumer press")
	return nil
}

func (s *logSink) ConsumerRelease() error {
	s.log.Debug().Msg("consumer release")
	return nil
}

func (s *logSink) MousePress(button hid.MouseButton) error {
	s.log.Debug().Stringer("button", button).Msg("mouse press")
	return nil
}

func (s *logSink) MouseRelease(button hid.MouseButton) error {
	s.log.Debug().Stringer("button", button).Msg("mouse release")
	return nil
}

func (s *logSink) MouseMove(dx, dy int) error {
	s.log.Trace().Int("dx", dx).Int("dy", dy).Msg("mouse move")
	return nil
}

// hidState is implemented by backends that track what the host has seen.
type hidState interface {
	GetKeysDownState() uinput.KeysDownState
	GetLastUserInputTime() time.Time
}

var _ hidState = (*uinput.Sink)(nil)

// HIDStatus is the backend keyboard state reported on /status.
type HIDStatus struct {
	Modifier  uint8     `json:"modifier"`
	KeysDown  []int     `json:"keys_down"`
	LastInput time.Time `json:"last_input"`
}

// hidStatus returns nil when the backend keeps no state.
func hidStatus(sink hid.Sink) *HIDStatus {
	st, ok := sink.(hidState)
	if !ok {
		return nil
	}

	keys := st.GetKeysDownState()
	out := &HIDStatus{
		Modifier:  keys.Modifier,
		KeysDown:  make([]int, 0, len(keys.Keys)),
		LastInput: st.GetLastUserInputTime(),
	}
	for _, k := range keys.Keys {
		out.KeysDown = append(out.KeysDown, int(k))
	}
	return out
}
