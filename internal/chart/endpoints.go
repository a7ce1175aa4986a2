package chart

import (
	"github.com/nao1215/loadgraph/internal/model"
)

// EndpointsName is the file stem of the per-endpoint figure.
const EndpointsName = "03-performance-endpoints"

// Legend names of the per-endpoint series.
const (
	LatencySeriesName  = "Tempo (ms)"
	EndpointErrorsName = "Erro (%)"
)

// EndpointRuns selects the runs worth a per-endpoint breakdown: those that
// measured more than one endpoint and recorded errors. A run without errors
// has nothing to compare on the secondary axis.
func EndpointRuns(runs []model.TestRun) []model.TestRun {
	var selected []model.TestRun
	for _, r := range runs {
		if r.HasMultipleEndpoints() && r.ErrorPercent > 0 {
			selected = append(selected, r)
		}
	}
	return selected
}

// Endpoints builds one dual-axis grouped bar chart per selected run:
// latency on the left axis, error rate on the right axis.
func Endpoints(runs []model.TestRun) model.Figure {
	selected := EndpointRuns(runs)

	panels := make([]model.Panel, 0, len(selected))
	for _, r := range selected {
		latency := make([]model.Point, len(r.Endpoints))
		errs := make([]model.Point, len(r.Endpoints))
		for i, e := range r.Endpoints {
			latency[i] = model.Point{X: float64(i), Y: float64(e.MeanLatencyMs)}
			errs[i] = model.Point{X: float64(i), Y: e.ErrorPercent}
		}

		panels = append(panels, model.Panel{
			Kind:       model.PanelDualBar,
			Title:      r.EndpointTitle,
			YLabel:     "Tempo (ms)",
			Y2Label:    "Taxa de Erro (%)",
			Categories: r.EndpointNames(),
			Series: []model.Series{
				{
					Name:   LatencySeriesName,
					Axis:   model.AxisPrimary,
					Points: latency,
					Colors: []string{colorSteelBlue},
				},
				{
					Name:   EndpointErrorsName,
					Axis:   model.AxisSecondary,
					Points: errs,
					Colors: []string{colorRed},
					Alpha:  0.7,
				},
			},
		})
	}

	cols := len(panels)
	if cols == 0 {
		cols = 1
	}

	return model.Figure{
		Name:         EndpointsName,
		Title:        "Performance por Endpoint",
		Rows:         1,
		Cols:         cols,
		WidthInches:  14,
		HeightInches: 5,
		Panels:       panels,
	}
}
