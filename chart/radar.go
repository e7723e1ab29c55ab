// Package chart renders the dashboard charts as standalone SVG documents.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	radarSize    = 360
	radarRadius  = 120
	radarRings   = 4
	labelPadding = 18
)

var (
	gridColor  = drawing.ColorFromHex("c8c8c8")
	labelColor = drawing.ColorFromHex("333333")

	// UserColor and IdealColor are the default radar series colours.
	UserColor  = drawing.ColorFromHex("1f77b4")
	IdealColor = drawing.ColorFromHex("2ca02c")
)

// Series is one closed polygon on the radar. Values are expected in [0, 1];
// anything outside is clipped to the outer ring or the centre.
type Series struct {
	Name   string
	Values []float64
	Color  drawing.Color
}

type point struct {
	X, Y int
}

// Radar writes a spider chart with one spoke per axis label.
func Radar(w io.Writer, axes []string, series []Series) error {
	if len(axes) < 3 {
		return fmt.Errorf("radar needs at least 3 axes, got %d", len(axes))
	}
	if len(series) == 0 {
		return errors.New("radar needs at least one series")
	}
	for _, s := range series {
		if len(s.Values) != len(axes) {
			return fmt.Errorf("series %q has %d values for %d axes", s.Name, len(s.Values), len(axes))
		}
	}

	r, err := newRenderer(radarSize, radarSize+24*len(series))
	if err != nil {
		return err
	}
	center := point{X: radarSize / 2, Y: radarSize / 2}

	r.SetStrokeColor(gridColor)
	r.SetStrokeWidth(1)
	for ring := 1; ring <= radarRings; ring++ {
		level := float64(ring) / radarRings
		values := make([]float64, len(axes))
		for i := range values {
			values[i] = level
		}
		drawPolygon(r, radarPoints(center, values))
		r.Stroke()
	}
	for i := range axes {
		tip := radarPoint(center, i, len(axes), 1)
		r.MoveTo(center.X, center.Y)
		r.LineTo(tip.X, tip.Y)
		r.Stroke()
	}

	for _, s := range series {
		r.SetFillColor(s.Color.WithAlpha(64))
		r.SetStrokeColor(s.Color)
		r.SetStrokeWidth(2)
		drawPolygon(r, radarPoints(center, s.Values))
		r.FillStroke()
	}

	r.SetFontColor(labelColor)
	r.SetFontSize(11)
	for i, label := range axes {
		p := radarPointAt(center, i, len(axes), radarRadius+labelPadding)
		r.Text(label, p.X-len(label)*3, p.Y+4)
	}
	for i, s := range series {
		y := radarSize + 8 + i*24
		r.SetFillColor(s.Color)
		r.SetStrokeColor(s.Color)
		drawPolygon(r, []point{{20, y}, {34, y}, {34, y + 14}, {20, y + 14}})
		r.FillStroke()
		r.Text(s.Name, 42, y+12)
	}

	return r.Save(w)
}

func radarPoints(center point, values []float64) []point {
	points := make([]point, len(values))
	for i, v := range values {
		points[i] = radarPoint(center, i, len(values), v)
	}
	return points
}

// radarPoint places a normalized value on spoke i; spoke 0 points straight up.
func radarPoint(center point, i, n int, value float64) point {
	return radarPointAt(center, i, n, clip01(value)*radarRadius)
}

func radarPointAt(center point, i, n int, distance float64) point {
	angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
	return point{
		X: center.X + int(math.Round(distance*math.Cos(angle))),
		Y: center.Y + int(math.Round(distance*math.Sin(angle))),
	}
}

func clip01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func drawPolygon(r gochart.Renderer, points []point) {
	if len(points) == 0 {
		return
	}
	r.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		r.LineTo(p.X, p.Y)
	}
	r.Close()
}

func newRenderer(width, height int) (gochart.Renderer, error) {
	r, err := gochart.SVG(width, height)
	if err != nil {
		return nil, fmt.Errorf("create svg renderer: %w", err)
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load chart font: %w", err)
	}
	r.SetFont(font)
	return r, nil
}
