package remote

import (
	"errors"
	"strings"
	"testing"

	"github.com/jetkvm/remote/internal/dispatch"
	"github.com/jetkvm/remote/internal/hid"
	"github.com/jetkvm/remote/internal/hid/hidtest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountingSinkForwardsAndCounts(t *testing.T) {
	m := newMetrics(prometheus.NewRegistry())
	rec := &hidtest.Recorder{}
	sink := newCountingSink(rec, m)

	require.NoError(t, sink.ConsumerPress(hid.ConsumerMute))
	require.NoError(t, sink.ConsumerRelease())
	assert.Equal(t, []hidtest.Call{"consumer_press(0xe2)", "consumer_release()"}, rec.Calls())

	rec.Err = errors.New("busy")
	assert.Error(t, sink.MousePress(hid.MouseLeft))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.hidCalls.WithLabelValues("consumer_press", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.hidCalls.WithLabelValues("mouse_press", "error")))
}

func TestDispatchMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	stats := dispatch.Stats{Dispatched: 7, Dropped: 2, UnmappedCharacter: 1}
	registerDispatchMetrics(reg, func() dispatch.Stats { return stats })

	n, err := testutil.GatherAndCount(reg, "remote_dispatch_events_total", "remote_dispatch_dropped_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, f := range families {
		values[f.GetName()] = f.GetMetric()[0].GetCounter().GetValue()
	}
	assert.Equal(t, 7.0, values["remote_dispatch_events_total"])
	assert.Equal(t, 2.0, values["remote_dispatch_dropped_total"])
	assert.Equal(t, 1.0, values["remote_dispatch_unmapped_characters_total"])
	assert.Equal(t, 0.0, values["remote_dispatch_sink_errors_total"])
}

func TestDispatchEventsHelp(t *testing.T) {
	reg := prometheus.NewRegistry()
	registerDispatchMetrics(reg, func() dispatch.Stats { return dispatch.Stats{Dispatched: 4} })

	expected := `
# HELP remote_dispatch_events_total HID sink calls made by the dispatcher
# TYPE remote_dispatch_events_total counter
remote_dispatch_events_total 4
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "remote_dispatch_events_total"))
}
