package chart

import (
	"fmt"

	"github.com/nao1215/loadgraph/internal/model"
)

// ScalabilityName is the file stem of the scalability figure.
const ScalabilityName = "02-escalabilidade"

// Legend names of the scalability series.
const (
	ErrorSeriesName      = "Taxa de Erro (%)"
	ThroughputSeriesName = "Throughput (req/s)"
)

// Scalability builds two line charts plotting error rate and throughput
// against the number of concurrent users.
func Scalability(runs []model.TestRun) model.Figure {
	errPoints := make([]model.Point, len(runs))
	errLabels := make([]string, len(runs))
	tpPoints := make([]model.Point, len(runs))
	tpLabels := make([]string, len(runs))
	for i, r := range runs {
		x := float64(r.Users)
		errPoints[i] = model.Point{X: x, Y: r.ErrorPercent}
		errLabels[i] = model.FormatLiteral(r.ErrorPercent) + "%"
		tpPoints[i] = model.Point{X: x, Y: r.Throughput}
		tpLabels[i] = fmt.Sprintf("%.1f", r.Throughput)
	}

	return model.Figure{
		Name:         ScalabilityName,
		Title:        "Análise de Escalabilidade",
		Rows:         1,
		Cols:         2,
		WidthInches:  14,
		HeightInches: 5,
		Panels: []model.Panel{
			{
				Kind:   model.PanelLine,
				Title:  "Taxa de Erro vs Usuários Simultâneos",
				XLabel: "Usuários Simultâneos",
				YLabel: "Taxa de Erro (%)",
				Grid:   true,
				Series: []model.Series{{
					Name:   ErrorSeriesName,
					Axis:   model.AxisPrimary,
					Points: errPoints,
					Colors: []string{colorRed},
					Labels: errLabels,
					Marker: model.MarkerCircle,
				}},
			},
			{
				Kind:   model.PanelLine,
				Title:  "Throughput vs Usuários Simultâneos",
				XLabel: "Usuários Simultâneos",
				YLabel: "Throughput (req/s)",
				Grid:   true,
				Series: []model.Series{{
					Name:   ThroughputSeriesName,
					Axis:   model.AxisPrimary,
					Points: tpPoints,
					Colors: []string{colorGreen},
					Labels: tpLabels,
					Marker: model.MarkerSquare,
				}},
			},
		},
	}
}
