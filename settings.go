package remote

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jetkvm/remote/internal/display"
)

// settingsSize is the on-disk size: one byte each for the activity, colour
// and brightness indices.
const settingsSize = 3

var ErrCorruptSettings = errors.New("settings file is corrupt")

// Settings is the user state that survives a restart.
type Settings struct {
	ActivityIndex   int `json:"activity_index"`
	ColorIndex      int `json:"color_index"`
	BrightnessIndex int `json:"brightness_index"`
}

func DefaultSettings() Settings {
	return Settings{BrightnessIndex: display.DefaultBrightness}
}

// LoadSettings reads path and clamps every index into range. A missing file
// yields the defaults; a short file yields the defaults and
// ErrCorruptSettings.
func LoadSettings(path string, activityCount int) (Settings, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return DefaultSettings(), fmt.Errorf("failed to read settings: %w", err)
	}
	if len(b) < settingsSize {
		return DefaultSettings(), fmt.Errorf("%w: %d bytes", ErrCorruptSettings, len(b))
	}

	return Settings{
		ActivityIndex:   min(int(b[0]), activityCount-1),
		ColorIndex:      min(int(b[1]), len(display.Palette)-1),
		BrightnessIndex: min(int(b[2]), display.MaxBrightness),
	}, nil
}

// Save writes the settings through a temporary file so a crash never leaves
// a partial file behind.
func (s Settings) Save(path string) error {
	b := []byte{clampByte(s.ActivityIndex), clampByte(s.ColorIndex), clampByte(s.BrightnessIndex)}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}

func clampByte(v int) byte {
	return byte(max(0, min(v, 255)))
}
