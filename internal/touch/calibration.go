// Package touch maps raw resistive touch readings into display space and
// tracks a single contact across ticks.
package touch

import "fmt"

// RawSample is a reading from the touch controller in sensor units.
type RawSample struct {
	X uint16
	Y uint16
	Z uint16
}

// Calibration describes the sensor range that covers the display.
type Calibration struct {
	MinX    int  `yaml:"min_x"`
	MaxX    int  `yaml:"max_x"`
	MinY    int  `yaml:"min_y"`
	MaxY    int  `yaml:"max_y"`
	InvertY bool `yaml:"invert_y"`
}

// DefaultCalibration matches the Keyboard FeatherWing rev 2 panel.
func DefaultCalibration() Calibration {
	return Calibration{MinX: 200, MaxX: 3600, MinY: 250, MaxY: 3700, InvertY: true}
}

func (c Calibration) Validate() error {
	if c.MaxX <= c.MinX {
		return fmt.Errorf("touch calibration: max_x (%d) must be greater than min_x (%d)", c.MaxX, c.MinX)
	}
	if c.MaxY <= c.MinY {
		return fmt.Errorf("touch calibration: max_y (%d) must be greater than min_y (%d)", c.MaxY, c.MinY)
	}
	return nil
}

// Map converts a raw sample into display coordinates for a width x height
// screen. Readings outside the calibrated range are clamped to the edges.
func (c Calibration) Map(s RawSample, width, height int) Point {
	x := mapRange(int(s.X), c.MinX, c.MaxX, 0, width)
	var y int
	if c.InvertY {
		y = mapRange(int(s.Y), c.MinY, c.MaxY, height, 0)
	} else {
		y = mapRange(int(s.Y), c.MinY, c.MaxY, 0, height)
	}
	return Point{X: x, Y: y}
}

func mapRange(v, inMin, inMax, outMin, outMax int) int {
	if v < inMin {
		v = inMin
	}
	if v > inMax {
		v = inMax
	}
	return outMin + (v-inMin)*(outMax-outMin)/(inMax-inMin)
}
