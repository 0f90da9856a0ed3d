package mode

import (
	"os"

	"github.com/jetkvm/remote/internal/activity"
	"github.com/jetkvm/remote/internal/dispatch"
	"github.com/jetkvm/remote/internal/ticks"
	"github.com/jetkvm/remote/internal/touch"
	"github.com/rs/zerolog"
)

// TickInput is the raw input polled at the start of a tick.
type TickInput struct {
	Touched bool
	// Sample is the display space contact point, read only when Touched.
	Sample    touch.Point
	Keys      []activity.KeyEvent
	Connected bool
}

// Controller runs one tick at a time: it refreshes the touch tracker, steps
// the mode and applies the effects that belong to the input pipeline. It is
// not safe for concurrent use; a single loop owns it.
type Controller struct {
	cfg        Config
	table      *activity.Table
	tracker    *touch.Tracker
	dispatcher *dispatch.Dispatcher
	log        *zerolog.Logger

	mode  Mode
	index int
}

var defaultLogger = zerolog.New(os.Stdout).With().Str("subsystem", "mode").Logger()

// NewController starts in Remote mode with the activity at index active.
func NewController(
	cfg Config,
	table *activity.Table,
	tracker *touch.Tracker,
	dispatcher *dispatch.Dispatcher,
	index int,
	connected bool,
	logger *zerolog.Logger,
) *Controller {
	if logger == nil {
		l := defaultLogger
		logger = &l
	}
	if cfg.ActivityCount <= 0 || cfg.ActivityCount > table.Len() {
		cfg.ActivityCount = table.Len()
	}
	dispatcher.Reset(connected)

	return &Controller{
		cfg:        cfg,
		table:      table,
		tracker:    tracker,
		dispatcher: dispatcher,
		log:        logger,
		mode:       Remote{Connected: connected},
		index:      table.Clamp(index),
	}
}

func (c *Controller) Mode() Mode {
	return c.mode
}

func (c *Controller) ActivityIndex() int {
	return c.index
}

func (c *Controller) Activity() *activity.Activity {
	return c.table.At(c.index)
}

func (c *Controller) Table() *activity.Table {
	return c.table
}

// SetTable replaces the activity table between ticks. The active index is
// clamped to the new table.
func (c *Controller) SetTable(table *activity.Table) {
	c.table = table
	c.cfg.ActivityCount = table.Len()
	c.index = table.Clamp(c.index)
}

// Update runs one tick and returns every effect it produced. Effects that
// concern the input pipeline have already been applied; the rest (display,
// persistence, backlight) are for the caller.
func (c *Controller) Update(now ticks.Ms, in TickInput) []Effect {
	c.tracker.Update(in.Touched, in.Sample)
	point, touched := c.tracker.TouchPoint()

	next, effects := Step(c.mode, Input{
		Now:       now,
		Touched:   touched,
		Point:     point,
		Delta:     c.tracker.Delta(),
		Connected: in.Connected,
		Keys:      in.Keys,
	}, c.cfg)

	for _, e := range effects {
		c.apply(e)
	}

	if next.String() != c.mode.String() {
		c.log.Info().
			Str("from", c.mode.String()).
			Str("to", next.String()).
			Str("activity", c.Activity().Name).
			Msg("mode changed")
	}
	c.mode = next

	return effects
}

func (c *Controller) apply(e Effect) {
	switch ev := e.(type) {
	case DispatchInput:
		c.dispatcher.Dispatch(c.Activity(), ev.Keys, ev.Motion)

	case DrainInput:
		c.dispatcher.Drain(ev.Keys)

	case ConnectionChanged:
		c.dispatcher.SetConnected(ev.Connected)
		c.log.Info().Bool("connected", ev.Connected).Msg("hid connection changed")

	case ActivitySelected:
		c.index = c.table.Clamp(ev.Index)
		c.log.Info().Int("index", c.index).Str("activity", c.Activity().Name).Msg("activity selected")

	case EnterRemote:
		c.dispatcher.Reset(ev.Connected)

	case TitlePressed:
		c.log.Debug().Bool("pressed", ev.Pressed).Msg("title hot-zone")
	}
}
