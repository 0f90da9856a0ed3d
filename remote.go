package remote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jetkvm/remote/internal/activity"
	"github.com/jetkvm/remote/internal/dispatch"
	"github.com/jetkvm/remote/internal/display"
	"github.com/jetkvm/remote/internal/hid"
	"github.com/jetkvm/remote/internal/logging"
	"github.com/jetkvm/remote/internal/mode"
	"github.com/jetkvm/remote/internal/ticks"
	"github.com/jetkvm/remote/internal/touch"
	"github.com/jetkvm/remote/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/common/version"
)

const programName = "featherremote"

// InputSource is polled once per tick for touch, keys and link state.
type InputSource interface {
	Poll() BridgeInput
}

// noInput stands in for the bridge when no serial port is configured.
type noInput struct{}

func (noInput) Poll() BridgeInput { return BridgeInput{} }

type Options struct {
	Source   InputSource
	Link     Link
	Sink     hid.Sink
	Backend  string
	Registry *prometheus.Registry
}

// Remote is one running remote: the input pipeline plus the device around it.
type Remote struct {
	cfg        *Config
	source     InputSource
	dispatcher *dispatch.Dispatcher
	controller *mode.Controller
	device     *Device
	display    *display.Headless
	registry   *prometheus.Registry
	sink       hid.Sink
	backend    string
	tables     chan *activity.Table
	started    time.Time
	lastMode   string
}

func loadTable(cfg *Config) (*activity.Table, error) {
	if cfg.ActivitiesFile == "" {
		return activity.DefaultTable(), nil
	}
	table, err := activity.LoadFile(cfg.ActivitiesFile)
	if err != nil {
		return nil, err
	}
	configLogger.Info().
		Str("path", cfg.ActivitiesFile).
		Strs("activities", table.Names()).
		Msg("Loaded activities")
	return table, nil
}

func New(cfg *Config, opts Options) (*Remote, error) {
	table, err := loadTable(cfg)
	if err != nil {
		return nil, err
	}

	settings, err := LoadSettings(cfg.SettingsFile, table.Len())
	if err != nil {
		configLogger.Warn().Err(err).Str("path", cfg.SettingsFile).Msg("using default settings")
	}

	tracker, err := touch.NewTracker(cfg.Touch.FilterN, cfg.Touch.FilterD)
	if err != nil {
		return nil, fmt.Errorf("failed to create touch tracker: %w", err)
	}

	if opts.Source == nil {
		opts.Source = noInput{}
	}
	if opts.Sink == nil {
		opts.Sink = &logSink{log: hidLogger}
		opts.Backend = "log"
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	m := newMetrics(opts.Registry)
	dispatcher := dispatch.New(cfg.DispatchConfig(), newCountingSink(opts.Sink, m), hid.USLayout{}, dispatchLogger)
	registerDispatchMetrics(opts.Registry, dispatcher.Stats)

	controller := mode.NewController(
		cfg.ModeConfig(table.Len()),
		table,
		tracker,
		dispatcher,
		settings.ActivityIndex,
		false,
		modeLogger,
	)

	disp := display.NewHeadless(displayLogger)
	device := NewDevice(DeviceOptions{
		Table:        table,
		Display:      disp,
		Link:         opts.Link,
		Settings:     settings,
		SettingsPath: cfg.SettingsFile,
		IdleTimeout:  cfg.IdleTimeout,
	}, m)

	return &Remote{
		cfg:        cfg,
		source:     opts.Source,
		dispatcher: dispatcher,
		controller: controller,
		device:     device,
		display:    disp,
		registry:   opts.Registry,
		sink:       opts.Sink,
		backend:    opts.Backend,
		tables:     make(chan *activity.Table, 1),
		started:    time.Now(),
	}, nil
}

// Start draws the first screen. It must be called once before Tick.
func (r *Remote) Start(now ticks.Ms) {
	r.device.Start(now, false)
	r.updateTitle()
}

// Tick polls the input source once and runs the pipeline for it.
func (r *Remote) Tick(now ticks.Ms) {
	in := r.source.Poll()

	var sample touch.Point
	if in.Touched {
		sample = r.cfg.Touch.Calibration.Map(in.Sample, r.cfg.Display.Width, r.cfg.Display.Height)
	}

	effects := r.controller.Update(now, mode.TickInput{
		Touched:   in.Touched,
		Sample:    sample,
		Keys:      in.Keys,
		Connected: in.Connected,
	})

	r.device.Update(now, in.Connected, in.Touched || len(in.Keys) > 0)
	r.device.Apply(effects)
	r.updateTitle()
}

// SetTable switches to a new activity table. Call it from the tick loop only.
func (r *Remote) SetTable(table *activity.Table) {
	r.controller.SetTable(table)
	r.device.SetTable(table)
	r.lastMode = ""
	r.updateTitle()
}

func (r *Remote) updateTitle() {
	m := r.controller.Mode().String()
	if m == r.lastMode {
		return
	}
	r.lastMode = m

	name := ""
	if _, ok := r.controller.Mode().(mode.Remote); ok {
		name = r.controller.Activity().Name
	}
	utils.SetProcTitle(utils.ModeTitle(programName, m, name))
}

func (r *Remote) Status() StatusResponse {
	s := r.display.State()
	return StatusResponse{
		Name:     r.cfg.Name,
		Version:  version.Version,
		Backend:  r.backend,
		Device:   r.device.Status(),
		Display:  &s,
		HID:      hidStatus(r.sink),
		Dispatch: r.dispatcher.Stats(),
		Uptime:   time.Since(r.started).Round(time.Second).String(),
	}
}

// Handler serves /metrics, /status and /healthz.
func (r *Remote) Handler() http.Handler {
	return setupRouter(r.registry, r.Status)
}

// Loop ticks on clock every interval until ctx is done. Reloaded activity
// tables are picked up between ticks.
func (r *Remote) Loop(ctx context.Context, clock ticks.Clock, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case table := <-r.tables:
			r.SetTable(table)
		case <-ticker.C:
			r.Tick(clock.Now())
		}
	}
}

// Run opens the bridge and the HID backend described by cfg and runs the
// remote until ctx is done.
func Run(ctx context.Context, cfg *Config) error {
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		versioncollector.NewCollector(programName),
	)

	opts := Options{Registry: reg}

	if cfg.Serial.Port != "" {
		bridge, err := OpenBridge(cfg.Serial)
		if err != nil {
			return err
		}
		opts.Source = bridge
		opts.Link = bridge
		reg.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "remote_bridge_dropped_keys_total",
			Help: "Key events dropped because the bridge queue was full",
		}, func() float64 { return float64(bridge.Dropped()) }))

		go func() {
			if err := bridge.Run(ctx); err != nil {
				serialLogger.Error().Err(err).Msg("bridge reader stopped")
			}
		}()
	} else {
		remoteLogger.Warn().Msg("no serial port configured, running without input")
	}

	sink, closer, backend := initHIDSink(cfg)
	if closer != nil {
		defer func() {
			if err := closer.Close(); err != nil {
				hidLogger.Warn().Err(err).Msg("failed to close HID backend")
			}
		}()
	}
	opts.Sink = sink
	opts.Backend = backend

	r, err := New(cfg, opts)
	if err != nil {
		return err
	}

	if cfg.DebugListen != "" {
		go func() {
			if err := runWebServer(ctx, cfg.DebugListen, r.Handler()); err != nil {
				webLogger.Error().Err(err).Msg("debug web server stopped")
			}
		}()
	}

	if cfg.ActivitiesFile != "" {
		if err := watchActivities(ctx, cfg.ActivitiesFile, r.tables, configLogger); err != nil {
			configLogger.Warn().Err(err).Msg("activities will not be reloaded")
		}
	}

	scheduler, err := startJobs(r, cfg.StatsInterval)
	if err != nil {
		return fmt.Errorf("failed to start jobs: %w", err)
	}
	if scheduler != nil {
		defer func() { _ = scheduler.Shutdown() }()
	}

	clock := ticks.NewSystemClock()
	r.Start(clock.Now())
	remoteLogger.Info().
		Str("name", cfg.Name).
		Str("version", version.Version).
		Str("backend", backend).
		Dur("tick", cfg.TickInterval).
		Msg("Remote started")

	r.Loop(ctx, clock, cfg.TickInterval)

	remoteLogger.Info().Msg("Remote stopped")
	return nil
}
