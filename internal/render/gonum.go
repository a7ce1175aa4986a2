package render

import (
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/nao1215/loadgraph/internal/model"
)

const (
	// barWidth is the thickness of a single categorical bar.
	barWidth = 42

	// lineWidth is the stroke width of line series.
	lineWidth = 2

	// markerRadius is the radius of line series markers.
	markerRadius = 5

	// labelGap is the distance between a data point and its annotation.
	labelGap = 4
)

// buildPlot converts a bar, horizontal-bar or line panel into a gonum plot.
func buildPlot(panel model.Panel) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panel.Title
	p.Title.TextStyle.Font.Size = vg.Points(12)
	p.X.Label.Text = panel.XLabel
	p.Y.Label.Text = panel.YLabel

	if panel.Grid {
		p.Add(plotter.NewGrid())
	}

	var err error
	switch panel.Kind {
	case model.PanelBar:
		err = addBars(p, panel, false)
	case model.PanelHBar:
		err = addBars(p, panel, true)
	case model.PanelLine:
		err = addLines(p, panel)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedPanel, panel.Kind)
	}
	if err != nil {
		return nil, err
	}

	if err := addReferences(p, panel); err != nil {
		return nil, err
	}

	switch panel.Kind {
	case model.PanelHBar:
		p.X.Tick.Marker = roundTicks{}
	case model.PanelLine:
		p.X.Tick.Marker = roundTicks{}
		p.Y.Tick.Marker = roundTicks{}
	default:
		p.Y.Tick.Marker = roundTicks{}
	}

	return p, nil
}

// roundTicks places ticks like plot.DefaultTicks but drops trailing zeros
// from their labels, so 2500.00 reads 2500.
type roundTicks struct{}

// Ticks implements plot.Ticker.
func (roundTicks) Ticks(lo, hi float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(lo, hi)
	for i, t := range ticks {
		if t.Label == "" {
			continue
		}
		v, err := strconv.ParseFloat(t.Label, 64)
		if err != nil {
			continue
		}
		ticks[i].Label = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ticks
}

// addBars draws one bar per point so every bar can carry its own color.
// Point X is the category index.
func addBars(p *plot.Plot, panel model.Panel, horizontal bool) error {
	for _, s := range panel.Series {
		for i, pt := range s.Points {
			bc, err := plotter.NewBarChart(plotter.Values{pt.Y}, vg.Points(barWidth))
			if err != nil {
				return fmt.Errorf("failed to create bar %d: %w", i, err)
			}
			c, err := seriesColor(s.ColorAt(i), s.Alpha)
			if err != nil {
				return err
			}
			bc.XMin = pt.X
			bc.Color = c
			bc.LineStyle.Width = 0
			bc.Horizontal = horizontal
			p.Add(bc)
		}

		labels, err := pointLabels(s, horizontal)
		if err != nil {
			return err
		}
		if labels != nil {
			p.Add(labels)
		}
	}

	if horizontal {
		p.NominalY(panel.Categories...)
		p.X.Min = 0
		if panel.ValueMax > 0 {
			p.X.Max = panel.ValueMax
		}
	} else {
		p.NominalX(panel.Categories...)
		p.Y.Min = 0
		if panel.ValueMax > 0 {
			p.Y.Max = panel.ValueMax
		}
	}
	return nil
}

// addLines draws each series as a line with markers and point annotations.
func addLines(p *plot.Plot, panel model.Panel) error {
	for _, s := range panel.Series {
		xys := make(plotter.XYs, len(s.Points))
		for i, pt := range s.Points {
			xys[i].X = pt.X
			xys[i].Y = pt.Y
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("failed to create line %q: %w", s.Name, err)
		}
		c, err := seriesColor(s.ColorAt(0), s.Alpha)
		if err != nil {
			return err
		}
		line.Color = c
		line.Width = vg.Points(lineWidth)
		points.Color = c
		points.Radius = vg.Points(markerRadius)
		points.Shape = glyph(s.Marker)
		p.Add(line, points)

		labels, err := pointLabels(s, false)
		if err != nil {
			return err
		}
		if labels != nil {
			p.Add(labels)
		}
	}
	if panel.ValueMax > 0 {
		p.Y.Max = panel.ValueMax
	}
	return nil
}

// addReferences draws reference lines across the value axis and adds them to
// the legend.
func addReferences(p *plot.Plot, panel model.Panel) error {
	if len(panel.References) == 0 {
		return nil
	}

	// Span the category axis from half a slot before the first category to
	// half a slot after the last one.
	lo, hi := -0.5, float64(len(panel.Categories))-0.5
	if len(panel.Categories) == 0 {
		lo, hi = 0, 1
	}

	for _, ref := range panel.References {
		var xys plotter.XYs
		if panel.Kind == model.PanelHBar {
			xys = plotter.XYs{{X: ref.Value, Y: lo}, {X: ref.Value, Y: hi}}
		} else {
			xys = plotter.XYs{{X: lo, Y: ref.Value}, {X: hi, Y: ref.Value}}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("failed to create reference line %q: %w", ref.Label, err)
		}
		c, err := seriesColor(ref.Color, 0)
		if err != nil {
			return err
		}
		line.Color = c
		line.Width = vg.Points(1.5)
		if ref.Dashed {
			line.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		}
		p.Add(line)
		if ref.Label != "" {
			p.Legend.Add(ref.Label, line)
		}
	}
	p.Legend.Top = true
	return nil
}

// pointLabels builds the annotations of a series, skipping empty labels.
// It returns nil when the series has nothing to annotate.
func pointLabels(s model.Series, horizontal bool) (*plotter.Labels, error) {
	var xys plotter.XYs
	var texts []string
	for i, pt := range s.Points {
		label := s.LabelAt(i)
		if label == "" {
			continue
		}
		if horizontal {
			xys = append(xys, plotter.XY{X: pt.Y, Y: pt.X})
		} else {
			xys = append(xys, plotter.XY{X: pt.X, Y: pt.Y})
		}
		texts = append(texts, label)
	}
	if len(texts) == 0 {
		return nil, nil
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, fmt.Errorf("failed to create labels: %w", err)
	}
	for i := range labels.TextStyle {
		if horizontal {
			labels.TextStyle[i].XAlign = text.XLeft
			labels.TextStyle[i].YAlign = text.YCenter
		} else {
			labels.TextStyle[i].XAlign = text.XCenter
			labels.TextStyle[i].YAlign = text.YBottom
		}
	}
	if horizontal {
		labels.Offset = vg.Point{X: vg.Points(labelGap)}
	} else {
		labels.Offset = vg.Point{Y: vg.Points(labelGap)}
	}
	return labels, nil
}

// glyph maps a marker to a gonum glyph shape.
func glyph(m model.Marker) draw.GlyphDrawer {
	switch m {
	case model.MarkerSquare:
		return draw.BoxGlyph{}
	case model.MarkerCircle:
		return draw.CircleGlyph{}
	default:
		return draw.CircleGlyph{}
	}
}
