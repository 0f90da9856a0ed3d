package remote

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jetkvm/remote/internal/mode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	mc := cfg.ModeConfig(4)
	assert.Equal(t, 1500*time.Millisecond, mc.HoldDuration)
	assert.Equal(t, mode.DefaultHotZone(), mc.HotZone)
	assert.Equal(t, 4, mc.ActivityCount)

	dc := cfg.DispatchConfig()
	assert.Equal(t, 3.0, dc.SensitivityX)
	assert.Equal(t, 3.0, dc.SensitivityY)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeFile(t, "remote.yaml", `
name: Living Room
hold:
  duration: 2s
  hot_zone: {x: 0, y: 0, w: 200, h: 40}
mouse:
  sensitivity_x: 2.5
touch:
  calibration: {min_x: 100, max_x: 3900, min_y: 100, max_y: 3900, invert_y: false}
`)
	t.Setenv(envSerialPort, "")
	t.Setenv(envLogLevel, "")
	t.Setenv(envDebugListen, "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Living Room", cfg.Name)
	assert.Equal(t, 2*time.Second, cfg.Hold.Duration)
	assert.Equal(t, mode.Rect{W: 200, H: 40}, cfg.Hold.HotZone)
	assert.Equal(t, 2.5, cfg.Mouse.SensitivityX)
	assert.Equal(t, 3.0, cfg.Mouse.SensitivityY)
	assert.False(t, cfg.Touch.Calibration.InvertY)
	// untouched sections keep their defaults
	assert.Equal(t, 320, cfg.Display.Width)
	assert.Equal(t, 6, cfg.Touch.FilterN)
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	path := writeFile(t, "remote.yaml", "hold:\n  duraton: 2s\n")

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "duraton")
}

func TestLoadConfigEmptyFile(t *testing.T) {
	path := writeFile(t, "remote.yaml", "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Name, cfg.Name)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(envSerialPort, "/dev/ttyUSB1")
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envDebugListen, ":9100")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB1", cfg.Serial.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9100", cfg.DebugListen)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"display", func(c *Config) { c.Display.Width = 0 }},
		{"calibration", func(c *Config) { c.Touch.Calibration.MaxX = c.Touch.Calibration.MinX }},
		{"filter", func(c *Config) { c.Touch.FilterN = c.Touch.FilterD }},
		{"hold", func(c *Config) { c.Hold.Duration = 0 }},
		{"hot zone", func(c *Config) { c.Hold.HotZone.W = 0 }},
		{"tick", func(c *Config) { c.TickInterval = 0 }},
		{"idle", func(c *Config) { c.IdleTimeout = -time.Second }},
		{"sensitivity", func(c *Config) { c.Mouse.SensitivityY = 0 }},
		{"baud", func(c *Config) {
			c.Serial.Port = "/dev/ttyS1"
			c.Serial.Baud = 0
		}},
		{"uinput", func(c *Config) {
			c.UInput.Enabled = true
			c.UInput.Path = ""
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
