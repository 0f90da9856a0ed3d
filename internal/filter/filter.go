// Package filter implements integer-only denoising for touch samples: a
// five tap median filter followed by a first order IIR smoother.
//
// Adapted from https://dlbeer.co.nz/articles/tsf.html
package filter

import "fmt"

const medianTaps = 5

// MedianFilter returns the median of the last five samples.
type MedianFilter struct {
	samples [medianTaps]int
}

// Filter pushes x into the window and returns the current median. With reset
// set the whole window is primed with x and x is returned as is.
func (m *MedianFilter) Filter(x int, reset bool) int {
	if reset {
		for i := range m.samples {
			m.samples[i] = x
		}
		return x
	}

	copy(m.samples[:], m.samples[1:])
	m.samples[medianTaps-1] = x

	s := m.samples
	// optimal 5 input sorting network, 9 comparators
	cmpSwap(&s, 0, 1)
	cmpSwap(&s, 2, 3)
	cmpSwap(&s, 0, 2)
	cmpSwap(&s, 1, 4)
	cmpSwap(&s, 0, 1)
	cmpSwap(&s, 2, 3)
	cmpSwap(&s, 1, 2)
	cmpSwap(&s, 3, 4)
	cmpSwap(&s, 2, 3)

	return s[2]
}

func cmpSwap(s *[medianTaps]int, i, j int) {
	if s[i] > s[j] {
		s[i], s[j] = s[j], s[i]
	}
}

// IIRFilter is an exponential moving average with coefficient N/D applied to
// the previous state: s' = (N*s + (D-N)*x + D/2) / D.
type IIRFilter struct {
	n, d  int
	state int
}

func NewIIRFilter(n, d int) (*IIRFilter, error) {
	if err := validateCoefficients(n, d); err != nil {
		return nil, err
	}
	return &IIRFilter{n: n, d: d}, nil
}

func (f *IIRFilter) Filter(x int, reset bool) int {
	if reset {
		f.state = x
		return x
	}
	f.state = floorDiv(f.n*f.state+(f.d-f.n)*x+f.d/2, f.d)
	return f.state
}

// State returns the last value produced by the filter.
func (f *IIRFilter) State() int {
	return f.state
}

// ChannelFilter runs a single axis through the median and IIR stages.
type ChannelFilter struct {
	median MedianFilter
	iir    IIRFilter
}

func NewChannelFilter(n, d int) (*ChannelFilter, error) {
	iir, err := NewIIRFilter(n, d)
	if err != nil {
		return nil, err
	}
	return &ChannelFilter{iir: *iir}, nil
}

func (c *ChannelFilter) Filter(x int, reset bool) int {
	return c.iir.Filter(c.median.Filter(x, reset), reset)
}

// XYSampleFilter filters a 2D point with one ChannelFilter per axis. Both
// axes are always reset together.
type XYSampleFilter struct {
	x, y ChannelFilter
}

func NewXYSampleFilter(n, d int) (*XYSampleFilter, error) {
	x, err := NewChannelFilter(n, d)
	if err != nil {
		return nil, err
	}
	y, err := NewChannelFilter(n, d)
	if err != nil {
		return nil, err
	}
	return &XYSampleFilter{x: *x, y: *y}, nil
}

func (f *XYSampleFilter) Filter(x, y int, reset bool) (int, int) {
	return f.x.Filter(x, reset), f.y.Filter(y, reset)
}

func validateCoefficients(n, d int) error {
	if d <= 0 || n <= 0 || n >= d {
		return fmt.Errorf("invalid iir coefficients %d/%d: need 0 < N < D", n, d)
	}
	return nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
