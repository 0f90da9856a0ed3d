package touch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalibrationMap(t *testing.T) {
	c := Calibration{MinX: 200, MaxX: 3600, MinY: 250, MaxY: 3700}

	tests := []struct {
		name string
		raw  RawSample
		want Point
	}{
		{"min corner", RawSample{X: 200, Y: 250}, Point{X: 0, Y: 0}},
		{"max corner", RawSample{X: 3600, Y: 3700}, Point{X: 320, Y: 240}},
		{"middle", RawSample{X: 1900, Y: 1975}, Point{X: 160, Y: 120}},
		{"clamped low", RawSample{X: 0, Y: 0}, Point{X: 0, Y: 0}},
		{"clamped high", RawSample{X: 4095, Y: 4095}, Point{X: 320, Y: 240}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Map(tt.raw, 320, 240))
		})
	}
}

func TestCalibrationInvertY(t *testing.T) {
	c := DefaultCalibration()

	assert.Equal(t, Point{X: 0, Y: 240}, c.Map(RawSample{X: 200, Y: 250}, 320, 240))
	assert.Equal(t, Point{X: 320, Y: 0}, c.Map(RawSample{X: 3600, Y: 3700}, 320, 240))
}

func TestCalibrationValidate(t *testing.T) {
	assert.NoError(t, DefaultCalibration().Validate())
	assert.Error(t, Calibration{MinX: 10, MaxX: 10, MinY: 0, MaxY: 1}.Validate())
	assert.Error(t, Calibration{MinX: 0, MaxX: 10, MinY: 5, MaxY: 1}.Validate())
}
