package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRadarRendersSVG(t *testing.T) {
	var buf bytes.Buffer
	err := Radar(&buf, []string{"Study", "Attendance", "Mental", "Sleep"}, []Series{
		{Name: "You", Values: []float64{0.3, 0.9, 0.7, 0.8}, Color: UserColor},
		{Name: "Ideal", Values: []float64{0.6, 0.95, 0.8, 0.89}, Color: IdealColor},
	})
	require.NoError(t, err)

	svg := buf.String()
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "Attendance")
	assert.Contains(t, svg, "Ideal")
}

func TestRadarValidatesInput(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Radar(&buf, []string{"a", "b"}, []Series{{Values: []float64{1, 1}}}))
	assert.Error(t, Radar(&buf, []string{"a", "b", "c"}, nil))
	assert.Error(t, Radar(&buf, []string{"a", "b", "c"}, []Series{{Name: "short", Values: []float64{1}}}))
}

func TestRadarPointGeometry(t *testing.T) {
	center := point{X: 100, Y: 100}

	top := radarPoint(center, 0, 4, 1)
	assert.Equal(t, point{X: 100, Y: 100 - radarRadius}, top)

	right := radarPoint(center, 1, 4, 0.5)
	assert.Equal(t, point{X: 100 + radarRadius/2, Y: 100}, right)

	assert.Equal(t, center, radarPoint(center, 2, 4, -3))
	assert.Equal(t, radarPoint(center, 3, 4, 1), radarPoint(center, 3, 4, 7))
}

func TestHorizontalBarsRendersSVG(t *testing.T) {
	var buf bytes.Buffer
	err := HorizontalBars(&buf, []Bar{
		{Label: "part_time_job", Value: -5},
		{Label: "attendance_pct", Value: 0.5},
		{Label: "study_hours", Value: 2},
	})
	require.NoError(t, err)

	svg := buf.String()
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "study_hours")
	assert.Contains(t, svg, "-5.000")

	assert.Error(t, HorizontalBars(&buf, nil))
}

func TestBarDomain(t *testing.T) {
	low, high := barDomain([]Bar{{Value: 2}, {Value: 3}})
	assert.Equal(t, 0.0, low)
	assert.Equal(t, 3.0, high)

	low, high = barDomain([]Bar{{Value: -4}, {Value: 1}})
	assert.Equal(t, -4.0, low)
	assert.Equal(t, 1.0, high)

	low, high = barDomain([]Bar{{Value: 0}})
	assert.Less(t, low, high)
}
