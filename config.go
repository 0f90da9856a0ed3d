package remote

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jetkvm/remote/internal/dispatch"
	"github.com/jetkvm/remote/internal/mode"
	"github.com/jetkvm/remote/internal/touch"
	"github.com/jetkvm/remote/internal/uinput"
	"gopkg.in/yaml.v3"
)

const (
	envSerialPort  = "REMOTE_SERIAL_PORT"
	envLogLevel    = "REMOTE_LOG_LEVEL"
	envDebugListen = "REMOTE_DEBUG_LISTEN"
)

type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type TouchConfig struct {
	Calibration touch.Calibration `yaml:"calibration"`
	FilterN     int               `yaml:"filter_n"`
	FilterD     int               `yaml:"filter_d"`
}

type HoldConfig struct {
	Duration time.Duration `yaml:"duration"`
	HotZone  mode.Rect     `yaml:"hot_zone"`
}

type MouseConfig struct {
	SensitivityX float64 `yaml:"sensitivity_x"`
	SensitivityY float64 `yaml:"sensitivity_y"`
}

type SerialConfig struct {
	// Port is the controller bridge device. Empty disables the bridge.
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

type UInputConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type Config struct {
	Name           string        `yaml:"name"`
	LogLevel       string        `yaml:"log_level"`
	TickInterval   time.Duration `yaml:"tick_interval"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	StatsInterval  time.Duration `yaml:"stats_interval"`
	Display        DisplayConfig `yaml:"display"`
	Touch          TouchConfig   `yaml:"touch"`
	Hold           HoldConfig    `yaml:"hold"`
	Mouse          MouseConfig   `yaml:"mouse"`
	Serial         SerialConfig  `yaml:"serial"`
	UInput         UInputConfig  `yaml:"uinput"`
	SettingsFile   string        `yaml:"settings_file"`
	ActivitiesFile string        `yaml:"activities_file"`
	DebugListen    string        `yaml:"debug_listen"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:          "Keyboard Featherwing Remote",
		LogLevel:      "info",
		TickInterval:  time.Millisecond,
		IdleTimeout:   30 * time.Second,
		StatsInterval: 5 * time.Minute,
		Display:       DisplayConfig{Width: 320, Height: 240},
		Touch: TouchConfig{
			Calibration: touch.DefaultCalibration(),
			FilterN:     touch.DefaultFilterN,
			FilterD:     touch.DefaultFilterD,
		},
		Hold: HoldConfig{
			Duration: mode.DefaultHoldDuration,
			HotZone:  mode.DefaultHotZone(),
		},
		Mouse: MouseConfig{
			SensitivityX: dispatch.DefaultSensitivityX,
			SensitivityY: dispatch.DefaultSensitivityY,
		},
		Serial:       SerialConfig{Baud: 115200},
		UInput:       UInputConfig{Path: uinput.DevicePath},
		SettingsFile: "/userdata/remote/settings.dat",
	}
}

// LoadConfig reads path on top of the defaults and applies environment
// overrides. An empty path uses the defaults alone.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := cfg.decode(b); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(b []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(envSerialPort)); v != "" {
		c.Serial.Port = v
	}
	if v := strings.TrimSpace(getenv(envLogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(getenv(envDebugListen)); v != "" {
		c.DebugListen = v
	}
}

func (c *Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("invalid display size %dx%d", c.Display.Width, c.Display.Height)
	}
	if err := c.Touch.Calibration.Validate(); err != nil {
		return err
	}
	if c.Touch.FilterN <= 0 || c.Touch.FilterN >= c.Touch.FilterD {
		return fmt.Errorf("touch filter: need 0 < filter_n < filter_d, got %d/%d", c.Touch.FilterN, c.Touch.FilterD)
	}
	if c.Hold.Duration <= 0 {
		return fmt.Errorf("hold duration must be positive, got %s", c.Hold.Duration)
	}
	if c.Hold.HotZone.W <= 0 || c.Hold.HotZone.H <= 0 {
		return fmt.Errorf("hot zone must have a positive size")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("idle timeout must not be negative, got %s", c.IdleTimeout)
	}
	if c.StatsInterval < 0 {
		return fmt.Errorf("stats interval must not be negative, got %s", c.StatsInterval)
	}
	if c.Mouse.SensitivityX <= 0 || c.Mouse.SensitivityY <= 0 {
		return fmt.Errorf("mouse sensitivity must be positive")
	}
	if c.Serial.Port != "" && c.Serial.Baud <= 0 {
		return fmt.Errorf("serial baud must be positive, got %d", c.Serial.Baud)
	}
	if c.UInput.Enabled && c.UInput.Path == "" {
		return fmt.Errorf("uinput enabled without a device path")
	}
	return nil
}

func (c *Config) ModeConfig(activityCount int) mode.Config {
	return mode.Config{
		HoldDuration:  c.Hold.Duration,
		HotZone:       c.Hold.HotZone,
		ActivityCount: activityCount,
	}
}

func (c *Config) DispatchConfig() dispatch.Config {
	return dispatch.Config{
		SensitivityX: c.Mouse.SensitivityX,
		SensitivityY: c.Mouse.SensitivityY,
	}
}
