package chart

import (
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	barWidth      = 520
	barLabelWidth = 140
	barValueWidth = 60
	barRowHeight  = 30
	barThickness  = 18
	barTopMargin  = 12
)

var (
	positiveColor = drawing.ColorFromHex("1f77b4")
	negativeColor = drawing.ColorFromHex("d62728")
)

type Bar struct {
	Label string
	Value float64
}

// HorizontalBars draws one row per bar, top to bottom in the given order,
// around a zero line so negative values extend left.
func HorizontalBars(w io.Writer, bars []Bar) error {
	if len(bars) == 0 {
		return errors.New("no bars to draw")
	}
	height := barTopMargin*2 + barRowHeight*len(bars)
	r, err := newRenderer(barWidth, height)
	if err != nil {
		return err
	}

	low, high := barDomain(bars)
	plotLeft := barLabelWidth
	plotWidth := barWidth - barLabelWidth - barValueWidth
	scale := func(v float64) int {
		return plotLeft + int(math.Round((v-low)/(high-low)*float64(plotWidth)))
	}
	zero := scale(0)

	r.SetFontSize(11)
	for i, bar := range bars {
		top := barTopMargin + i*barRowHeight + (barRowHeight-barThickness)/2
		left, right := zero, scale(bar.Value)
		color := positiveColor
		if bar.Value < 0 {
			left, right = right, zero
			color = negativeColor
		}
		if right == left {
			right = left + 1
		}
		r.SetFillColor(color)
		r.SetStrokeColor(color)
		r.SetStrokeWidth(1)
		drawPolygon(r, []point{{left, top}, {right, top}, {right, top + barThickness}, {left, top + barThickness}})
		r.FillStroke()

		r.SetFontColor(labelColor)
		r.Text(bar.Label, 8, top+barThickness-5)
		r.Text(strconv.FormatFloat(bar.Value, 'f', 3, 64), right+6, top+barThickness-5)
	}

	r.SetStrokeColor(gridColor)
	r.MoveTo(zero, barTopMargin/2)
	r.LineTo(zero, height-barTopMargin/2)
	r.Stroke()

	return r.Save(w)
}

// barDomain always contains zero and never collapses to a single point.
func barDomain(bars []Bar) (float64, float64) {
	low, high := 0.0, 0.0
	for _, bar := range bars {
		low = math.Min(low, bar.Value)
		high = math.Max(high, bar.Value)
	}
	if high == low {
		high = low + 1
	}
	return low, high
}
