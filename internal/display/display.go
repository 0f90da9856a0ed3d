// Package display drives the remote's screen: the activity screen shown in
// remote mode and the activity list shown while picking one.
package display

import (
	"math"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

const (
	ScreenRemote = "remote_screen"
	ScreenConfig = "config_screen"
)

// Palette names the UI colours, indexed by the colour index.
var Palette = []string{
	"white", "orange", "amber", "yellow", "green",
	"cyan", "blue", "purple", "magenta", "red",
}

const (
	MaxBrightness     = 9
	DefaultBrightness = (MaxBrightness + 1) / 2
)

// RemoteScreen is what the remote screen shows for the active activity.
type RemoteScreen struct {
	Title            string
	ShowMouseMessage bool
	Connected        bool
	// Icons holds one label per function button, empty when unmapped.
	Icons []string
}

type Display interface {
	ShowRemote(s RemoteScreen)
	ShowConfig(activities []string, selected int)
	SetTitlePressed(pressed bool)
	SetConnected(connected bool)
	SetColor(index int)
	SetBrightness(index int)
	SetBacklight(on bool)
}

// State is a snapshot of what the display currently shows.
type State struct {
	Screen       string       `json:"screen"`
	Remote       RemoteScreen `json:"remote"`
	Activities   []string     `json:"activities,omitempty"`
	Selected     int          `json:"selected"`
	TitlePressed bool         `json:"title_pressed"`
	Connected    bool         `json:"connected"`
	Color        string       `json:"color"`
	Brightness   int          `json:"brightness"`
	Backlight    bool         `json:"backlight"`
}

// Headless is a Display with no panel attached. It records the state it
// would show and logs every change.
type Headless struct {
	mu    sync.Mutex
	state State
	log   *zerolog.Logger
}

var _ Display = (*Headless)(nil)

var defaultLogger = zerolog.New(os.Stdout).With().Str("subsystem", "display").Logger()

func NewHeadless(logger *zerolog.Logger) *Headless {
	if logger == nil {
		l := defaultLogger
		logger = &l
	}
	return &Headless{
		log:   logger,
		state: State{Backlight: true, Color: Palette[0], Brightness: DefaultBrightness, Selected: -1},
	}
}

func (h *Headless) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.state
	s.Activities = append([]string(nil), h.state.Activities...)
	s.Remote.Icons = append([]string(nil), h.state.Remote.Icons...)
	return s
}

func (h *Headless) ShowRemote(s RemoteScreen) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Screen = ScreenRemote
	h.state.Remote = s
	h.state.Connected = s.Connected
	h.log.Debug().
		Str("screen", ScreenRemote).
		Str("title", s.Title).
		Bool("mouse_message", s.ShowMouseMessage).
		Bool("connected", s.Connected).
		Strs("icons", s.Icons).
		Msg("switch screen")
}

func (h *Headless) ShowConfig(activities []string, selected int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Screen = ScreenConfig
	h.state.Activities = append([]string(nil), activities...)
	h.state.Selected = selected
	h.state.TitlePressed = false
	h.log.Debug().Str("screen", ScreenConfig).Strs("activities", activities).Int("selected", selected).Msg("switch screen")
}

func (h *Headless) SetTitlePressed(pressed bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.TitlePressed = pressed
	h.log.Trace().Bool("pressed", pressed).Msg("title state")
}

func (h *Headless) SetConnected(connected bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Connected = connected
	h.state.Remote.Connected = connected
	h.log.Debug().Bool("connected", connected).Msg("connection label")
}

// SetColor wraps index into the palette.
func (h *Headless) SetColor(index int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Color = Palette[WrapColor(index)]
	h.log.Debug().Str("color", h.state.Color).Msg("ui color")
}

func (h *Headless) SetBrightness(index int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Brightness = ClampBrightness(index)
	h.log.Debug().
		Int("brightness", h.state.Brightness).
		Float64("level", BacklightLevel(h.state.Brightness)).
		Msg("backlight level")
}

func (h *Headless) SetBacklight(on bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.Backlight == on {
		return
	}
	h.state.Backlight = on
	h.log.Info().Bool("on", on).Msg("backlight")
}

// WrapColor maps any index onto the palette.
func WrapColor(index int) int {
	n := len(Palette)
	return ((index % n) + n) % n
}

func ClampBrightness(index int) int {
	if index < 0 {
		return 0
	}
	if index > MaxBrightness {
		return MaxBrightness
	}
	return index
}

// BacklightLevel is the panel duty cycle for a brightness index, gamma
// corrected and never fully dark.
func BacklightLevel(index int) float64 {
	b := math.Pow(float64(ClampBrightness(index))/MaxBrightness, 1.6)
	return math.Max(0.01, math.Min(b, 1.0))
}
