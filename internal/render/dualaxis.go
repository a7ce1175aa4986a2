package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/nao1215/loadgraph/internal/model"
)

const (
	// groupWidth is the share of a category slot taken by its bar group.
	groupWidth = 0.7

	// headroom scales the tallest bar of each axis to leave space for labels.
	headroom = 1.15

	// valueTickCount is the number of intervals aimed for on a value axis.
	valueTickCount = 5
)

// tickedRange is a continuous range that supplies its own ticks.
// go-chart resets an axis range to the span of Axis.Ticks, so fixed ticks
// are handed over through the range instead.
type tickedRange struct {
	*chart.ContinuousRange
	ticks []chart.Tick
}

// GetTicks implements chart.TicksProvider.
func (r tickedRange) GetTicks(chart.Renderer, chart.Style, chart.ValueFormatter) []chart.Tick {
	return r.ticks
}

// categoryRange spans n category slots of width 1 centered on 0..n-1, with
// one labeled tick per category.
func categoryRange(categories []string) tickedRange {
	ticks := make([]chart.Tick, len(categories))
	for i, c := range categories {
		ticks[i] = chart.Tick{Value: float64(i), Label: c}
	}
	return tickedRange{
		ContinuousRange: &chart.ContinuousRange{Min: -0.5, Max: float64(len(categories)) - 0.5},
		ticks:           ticks,
	}
}

// valueRange spans 0 up to the last of valueTicks(peak).
func valueRange(peak float64) tickedRange {
	values := valueTicks(peak)
	ticks := make([]chart.Tick, len(values))
	for i, v := range values {
		ticks[i] = chart.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)}
	}
	return tickedRange{
		ContinuousRange: &chart.ContinuousRange{Min: 0, Max: values[len(values)-1]},
		ticks:           ticks,
	}
}

// valueTicks returns evenly spaced round values from 0 up to the first one
// at or above peak with headroom applied.
func valueTicks(peak float64) []float64 {
	if peak <= 0 {
		return []float64{0, 1}
	}
	top := peak * headroom
	step := niceStep(top / valueTickCount)
	n := int(math.Ceil(top/step - 1e-9))

	ticks := make([]float64, n+1)
	for i := range ticks {
		ticks[i] = float64(i) * step
	}
	return ticks
}

// niceStep rounds raw up to 1, 2, 2.5 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}

// dualAxisChart lays out a grouped bar panel whose series are split across
// two value axes.
//
// go-chart draws its primary y axis on the right and its secondary axis on
// the left, so model.AxisPrimary maps to chart.YAxisSecondary.
func dualAxisChart(panel model.Panel, width, height int, dpi float64) (chart.Chart, error) {
	if len(panel.Categories) == 0 || len(panel.Series) == 0 {
		return chart.Chart{}, fmt.Errorf("%w: dual-axis panel %q has no data", ErrUnsupportedPanel, panel.Title)
	}

	var leftMax, rightMax float64
	for _, s := range panel.Series {
		if s.Axis == model.AxisSecondary {
			rightMax = max(rightMax, s.MaxY())
		} else {
			leftMax = max(leftMax, s.MaxY())
		}
	}

	slot := groupWidth / float64(len(panel.Series))
	series := make([]chart.Series, 0, 2*len(panel.Series))
	for i, s := range panel.Series {
		offset := -groupWidth/2 + float64(i)*slot
		bars, err := barOutline(s, offset, slot)
		if err != nil {
			return chart.Chart{}, err
		}
		series = append(series, bars)
		if labels, ok := barAnnotations(s, offset+slot/2); ok {
			series = append(series, labels)
		}
	}

	// go-chart reserves no room for the name of the left axis.
	nameRoom := int(math.Ceil(2*chart.DefaultAxisFontSize*dpi/72)) + chart.DefaultYAxisMargin

	ch := chart.Chart{
		Title:      panel.Title,
		TitleStyle: chart.Style{FontSize: 11},
		Width:      width,
		Height:     height,
		DPI:        dpi,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16 + nameRoom, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  panel.XLabel,
			Range: categoryRange(panel.Categories),
		},
		YAxisSecondary: chart.YAxis{
			Name:  panel.YLabel,
			Range: valueRange(leftMax),
		},
		YAxis: chart.YAxis{
			Name:  panel.Y2Label,
			Range: valueRange(rightMax),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch, nil
}

// renderDualAxis draws a dual-axis panel as an image of width x height pixels.
func renderDualAxis(panel model.Panel, width, height int, dpi float64) (image.Image, error) {
	ch, err := dualAxisChart(panel, width, height, dpi)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render dual-axis panel %q: %w", panel.Title, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dual-axis panel %q: %w", panel.Title, err)
	}
	return img, nil
}

// barOutline traces the bars of s as one filled series. Each bar is the
// rectangle [x+offset, x+offset+width] x [0, y]; consecutive bars are joined
// along the baseline so the fill stays inside the rectangles.
func barOutline(s model.Series, offset, width float64) (chart.ContinuousSeries, error) {
	hex := s.ColorAt(0)
	if _, err := parseHex(hex); err != nil {
		return chart.ContinuousSeries{}, err
	}
	fill := drawing.ColorFromHex(strings.TrimPrefix(hex, "#")).WithAlpha(alphaByte(s.Alpha))

	xs := make([]float64, 0, 4*len(s.Points))
	ys := make([]float64, 0, 4*len(s.Points))
	for _, pt := range s.Points {
		x0 := pt.X + offset
		x1 := x0 + width
		xs = append(xs, x0, x0, x1, x1)
		ys = append(ys, 0, pt.Y, pt.Y, 0)
	}

	return chart.ContinuousSeries{
		Name:    s.Name,
		YAxis:   chartAxis(s.Axis),
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: fill,
			StrokeWidth: 1,
			FillColor:   fill,
		},
	}, nil
}

// barAnnotations places the point labels of s above the bar centers. It
// reports false when s has no labels, as go-chart rejects empty annotation
// series.
func barAnnotations(s model.Series, center float64) (chart.AnnotationSeries, bool) {
	values := make([]chart.Value2, 0, len(s.Points))
	for i, pt := range s.Points {
		label := s.LabelAt(i)
		if label == "" {
			continue
		}
		values = append(values, chart.Value2{
			XValue: pt.X + center,
			YValue: pt.Y,
			Label:  label,
		})
	}
	if len(values) == 0 {
		return chart.AnnotationSeries{}, false
	}
	return chart.AnnotationSeries{
		YAxis:       chartAxis(s.Axis),
		Annotations: values,
	}, true
}

func chartAxis(a model.Axis) chart.YAxisType {
	if a == model.AxisSecondary {
		return chart.YAxisPrimary
	}
	return chart.YAxisSecondary
}
