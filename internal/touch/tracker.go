package touch

import (
	"github.com/jetkvm/remote/internal/filter"
)

// Default IIR coefficients used for touch smoothing.
const (
	DefaultFilterN = 6
	DefaultFilterD = 10
)

type State uint8

const (
	StateIdle State = iota
	StateArmedFirstContact
	StatePressed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmedFirstContact:
		return "armed"
	case StatePressed:
		return "pressed"
	default:
		return "unknown"
	}
}

// Point is a display space coordinate, or a delta between two of them.
type Point struct {
	X int
	Y int
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Tracker turns per-tick contact readings into a filtered touch point and a
// frame to frame delta. The first reading after contact is discarded.
type Tracker struct {
	filter *filter.XYSampleFilter

	state    State
	point    Point
	hasPoint bool
	delta    Point
}

func NewTracker(n, d int) (*Tracker, error) {
	f, err := filter.NewXYSampleFilter(n, d)
	if err != nil {
		return nil, err
	}
	return &Tracker{filter: f}, nil
}

// Update advances the state machine by one tick. p is only read when touched
// is true and must already be in display coordinates.
func (t *Tracker) Update(touched bool, p Point) {
	t.delta = Point{}

	if !touched {
		t.state = StateIdle
		t.hasPoint = false
		t.point = Point{}
		return
	}

	switch t.state {
	case StateIdle:
		t.state = StateArmedFirstContact
		t.hasPoint = false
		t.point = Point{}

	case StateArmedFirstContact:
		t.state = StatePressed
		x, y := t.filter.Filter(p.X, p.Y, true)
		t.point = Point{X: x, Y: y}
		t.hasPoint = true

	case StatePressed:
		x, y := t.filter.Filter(p.X, p.Y, false)
		next := Point{X: x, Y: y}
		t.delta = next.Sub(t.point)
		t.point = next
	}
}

func (t *Tracker) State() State {
	return t.state
}

// Touched reports whether a filtered contact is available this tick.
func (t *Tracker) Touched() bool {
	return t.state == StatePressed
}

// TouchPoint returns the filtered contact point; ok is false unless pressed.
func (t *Tracker) TouchPoint() (Point, bool) {
	return t.point, t.hasPoint
}

func (t *Tracker) Delta() Point {
	return t.delta
}

func (t *Tracker) Moved() bool {
	return !t.delta.IsZero()
}
