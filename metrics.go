package remote

import (
	"github.com/jetkvm/remote/internal/dispatch"
	"github.com/jetkvm/remote/internal/hid"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	hidCalls        *prometheus.CounterVec
	modeTransitions *prometheus.CounterVec
	connected       prometheus.Gauge
	idle            prometheus.Gauge
	sessions        prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		hidCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "remote_hid_calls_total",
			Help: "HID sink calls by call and result",
		}, []string{"call", "result"}),
		modeTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "remote_mode_transitions_total",
			Help: "Mode changes by target mode",
		}, []string{"to"}),
		connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "remote_hid_connected",
			Help: "Whether a HID host is connected",
		}),
		idle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "remote_idle",
			Help: "Whether the backlight is off after inactivity",
		}),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "remote_sessions_total",
			Help: "HID connection sessions started",
		}),
	}
	reg.MustRegister(m.hidCalls, m.modeTransitions, m.connected, m.idle, m.sessions)
	return m
}

// registerDispatchMetrics exposes the dispatcher counters.
func registerDispatchMetrics(reg prometheus.Registerer, stats func() dispatch.Stats) {
	counter := func(name, help string, v func(dispatch.Stats) uint64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{Name: name, Help: help}, func() float64 {
			return float64(v(stats()))
		})
	}
	reg.MustRegister(
		counter("remote_dispatch_events_total", "HID sink calls made by the dispatcher",
			func(s dispatch.Stats) uint64 { return s.Dispatched }),
		counter("remote_dispatch_dropped_total", "Key events drained while disconnected",
			func(s dispatch.Stats) uint64 { return s.Dropped }),
		counter("remote_dispatch_unmapped_characters_total", "Characters the keyboard layout could not type",
			func(s dispatch.Stats) uint64 { return s.UnmappedCharacter }),
		counter("remote_dispatch_sink_errors_total", "HID sink calls that failed",
			func(s dispatch.Stats) uint64 { return s.SinkErrors }),
	)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// countingSink counts every call it forwards.
type countingSink struct {
	next  hid.Sink
	calls *prometheus.CounterVec
}

var _ hid.Sink = (*countingSink)(nil)

func newCountingSink(next hid.Sink, m *metrics) *countingSink {
	return &countingSink{next: next, calls: m.hidCalls}
}

func (s *countingSink) count(call string, err error) error {
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.calls.WithLabelValues(call, result).Inc()
	return err
}

func (s *countingSink) KeyboardPress(code hid.Keycode) error {
	return s.count("keyboard_press", s.next.KeyboardPress(code))
}

func (s *countingSink) KeyboardRelease(code hid.Keycode) error {
	return s.count("keyboard_release", s.next.KeyboardRelease(code))
}

func (s *countingSink) KeyboardPressMany(codes []hid.Keycode) error {
	return s.count("keyboard_press_many", s.next.KeyboardPressMany(codes))
}

func (s *countingSink) KeyboardReleaseMany(codes []hid.Keycode) error {
	return s.count("keyboard_release_many", s.next.KeyboardReleaseMany(codes))
}

func (s *countingSink) ConsumerPress(code hid.ConsumerCode) error {
	return s.count("consumer_press", s.next.ConsumerPress(code))
}

func (s *countingSink) ConsumerRelease() error {
	return s.count("consumer_release", s.next.ConsumerRelease())
}

func (s *countingSink) MousePress(button hid.MouseButton) error {
	return s.count("mouse_press", s.next.MousePress(button))
}

func (s *countingSink) MouseRelease(button hid.MouseButton) error {
	return s.count("mouse_release", s.next.MouseRelease(button))
}

func (s *countingSink) MouseMove(dx, dy int) error {
	return s.count("mouse_move", s.next.MouseMove(dx, dy))
}
