package remote

import (
	"sync"
	"time"

	"github.com/guregu/null/v6"
	"github.com/jetkvm/remote/internal/activity"
	"github.com/jetkvm/remote/internal/display"
	"github.com/jetkvm/remote/internal/mode"
	"github.com/jetkvm/remote/internal/ticks"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

// Link is the radio and keyboard side of the controller bridge.
type Link interface {
	Advertise() error
	SetKeyboardBacklight(level float64) error
}

// DeviceStatus is reported by the status endpoint.
type DeviceStatus struct {
	Connected bool        `json:"connected"`
	SessionID null.String `json:"session_id"`
	Idle      bool        `json:"idle"`
	Mode      string      `json:"mode"`
	Activity  string      `json:"activity"`
	Settings  Settings    `json:"settings"`
}

// Device owns everything around the input pipeline: the screen, the
// connection session, the idle backlight and the persisted settings.
type Device struct {
	table        *activity.Table
	display      display.Display
	link         Link
	metrics      *metrics
	log          *zerolog.Logger
	settingsPath string
	idleTimeout  time.Duration

	mu              sync.RWMutex
	settings        Settings
	connected       bool
	sessionID       xid.ID
	idle            bool
	lastInteraction ticks.Ms
	mode            string
}

type DeviceOptions struct {
	Table        *activity.Table
	Display      display.Display
	Link         Link
	Settings     Settings
	SettingsPath string
	IdleTimeout  time.Duration
	Logger       *zerolog.Logger
}

func NewDevice(opts DeviceOptions, m *metrics) *Device {
	logger := opts.Logger
	if logger == nil {
		logger = deviceLogger
	}
	return &Device{
		table:        opts.Table,
		display:      opts.Display,
		link:         opts.Link,
		metrics:      m,
		log:          logger,
		settingsPath: opts.SettingsPath,
		idleTimeout:  opts.IdleTimeout,
		settings:     opts.Settings,
		mode:         mode.Remote{}.String(),
	}
}

// Start draws the remote screen for the saved activity.
func (d *Device) Start(now ticks.Ms, connected bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lastInteraction = now
	d.display.SetColor(d.settings.ColorIndex)
	d.display.SetBrightness(d.settings.BrightnessIndex)
	d.setKeyboardBacklight(display.BacklightLevel(d.settings.BrightnessIndex))
	d.setConnected(connected)
	d.display.ShowRemote(d.remoteScreen())
}

// Update tracks connection edges and the idle timer. interacted is set when
// the tick saw a touch or a key.
func (d *Device) Update(now ticks.Ms, connected, interacted bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if connected != d.connected {
		d.setConnected(connected)
		interacted = true
	}
	if interacted {
		d.didInteract(now)
	}

	if !d.idle && d.idleTimeout > 0 && ticks.Elapsed(now, d.lastInteraction, d.idleTimeout) {
		d.idle = true
		d.display.SetBacklight(false)
		d.setKeyboardBacklight(0)
		d.log.Debug().Dur("after", d.idleTimeout).Msg("idle, backlight off")
		if d.metrics != nil {
			d.metrics.idle.Set(1)
		}
	}
}

func (d *Device) setConnected(connected bool) {
	wasConnected := d.connected
	d.connected = connected
	d.display.SetConnected(connected)
	if d.metrics != nil {
		d.metrics.connected.Set(boolToFloat(connected))
	}

	switch {
	case connected:
		d.sessionID = xid.New()
		d.log.Info().Str("session", d.sessionID.String()).Msg("Connected")
		if d.metrics != nil {
			d.metrics.sessions.Inc()
		}
	case wasConnected:
		d.log.Info().Str("session", d.sessionID.String()).Msg("Disconnected")
		d.sessionID = xid.NilID()
		if d.link != nil {
			if err := d.link.Advertise(); err != nil {
				d.log.Warn().Err(err).Msg("failed to restart advertising")
			}
		}
	}
}

func (d *Device) didInteract(now ticks.Ms) {
	if d.idle {
		d.idle = false
		d.display.SetBacklight(true)
		d.setKeyboardBacklight(display.BacklightLevel(d.settings.BrightnessIndex))
		if d.metrics != nil {
			d.metrics.idle.Set(0)
		}
	}
	d.lastInteraction = now
}

func (d *Device) setKeyboardBacklight(level float64) {
	if d.link == nil {
		return
	}
	if err := d.link.SetKeyboardBacklight(level); err != nil {
		d.log.Warn().Err(err).Msg("failed to set keyboard backlight")
	}
}

// Apply performs the presentation side of the controller effects.
func (d *Device) Apply(effects []mode.Effect) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, e := range effects {
		switch ev := e.(type) {
		case mode.TitlePressed:
			d.display.SetTitlePressed(ev.Pressed)

		case mode.EnterConfigSelect:
			d.setMode(mode.ConfigSelect{})
			d.display.ShowConfig(d.table.Names(), d.settings.ActivityIndex)

		case mode.ActivitySelected:
			d.settings.ActivityIndex = d.table.Clamp(ev.Index)
			d.saveSettings()

		case mode.EnterRemote:
			d.setMode(mode.Remote{})
			d.display.ShowRemote(d.remoteScreen())

		case mode.AdjustColor:
			d.settings.ColorIndex = display.WrapColor(d.settings.ColorIndex + ev.Step)
			d.display.SetColor(d.settings.ColorIndex)

		case mode.AdjustBrightness:
			d.settings.BrightnessIndex = display.ClampBrightness(d.settings.BrightnessIndex + ev.Step)
			d.display.SetBrightness(d.settings.BrightnessIndex)
			d.setKeyboardBacklight(display.BacklightLevel(d.settings.BrightnessIndex))
		}
	}
}

func (d *Device) setMode(m mode.Mode) {
	d.mode = m.String()
	if d.metrics != nil {
		d.metrics.modeTransitions.WithLabelValues(d.mode).Inc()
	}
}

func (d *Device) saveSettings() {
	if d.settingsPath == "" {
		return
	}
	if err := d.settings.Save(d.settingsPath); err != nil {
		d.log.Error().Err(err).Str("path", d.settingsPath).Msg("failed to save settings")
		return
	}
	d.log.Info().Interface("settings", d.settings).Msg("Saved settings")
}

func (d *Device) remoteScreen() display.RemoteScreen {
	act := d.table.At(d.settings.ActivityIndex)
	icons := make([]string, activity.ButtonCount)
	for b := activity.Button(0); b < activity.ButtonCount; b++ {
		if a := act.Action(b); a != nil {
			icons[b] = a.Icon
		}
	}
	return display.RemoteScreen{
		Title:            act.Name,
		ShowMouseMessage: act.ShowMouseMessage,
		Connected:        d.connected,
		Icons:            icons,
	}
}

// SetTable swaps the activity table and redraws the current screen.
func (d *Device) SetTable(table *activity.Table) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.table = table
	d.settings.ActivityIndex = table.Clamp(d.settings.ActivityIndex)
	if d.mode == (mode.ConfigSelect{}).String() {
		d.display.ShowConfig(table.Names(), d.settings.ActivityIndex)
		return
	}
	d.display.ShowRemote(d.remoteScreen())
}

func (d *Device) ActivityIndex() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.settings.ActivityIndex
}

func (d *Device) Status() DeviceStatus {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s := DeviceStatus{
		Connected: d.connected,
		Idle:      d.idle,
		Mode:      d.mode,
		Activity:  d.table.At(d.settings.ActivityIndex).Name,
		Settings:  d.settings,
	}
	if !d.sessionID.IsNil() {
		s.SessionID = null.StringFrom(d.sessionID.String())
	}
	return s
}
