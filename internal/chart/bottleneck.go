package chart

import (
	"fmt"

	"github.com/nao1215/loadgraph/internal/model"
)

// BottleneckName is the file stem of the bottleneck figure.
const BottleneckName = "04-identificacao-gargalos"

// ThresholdLabel is the legend entry of the critical threshold line.
var ThresholdLabel = fmt.Sprintf("Limiar crítico (%.0f%%)", model.BottleneckThreshold)

// Bottleneck builds a horizontal bar chart ranking the resource categories
// by error rate, with a dashed reference line at the critical threshold.
//
// Horizontal bar categories are laid out bottom-up, so the ranking is
// reversed to put the worst category on top.
func Bottleneck(bs []model.Bottleneck) model.Figure {
	ranked := model.RankBottlenecks(bs)

	n := len(ranked)
	categories := make([]string, n)
	points := make([]model.Point, n)
	colors := make([]string, n)
	labels := make([]string, n)
	values := make([]float64, n)
	for i, b := range ranked {
		pos := n - 1 - i
		categories[pos] = b.Label()
		points[pos] = model.Point{X: float64(pos), Y: b.ErrorPercent}
		colors[pos] = b.Color
		labels[pos] = model.FormatLiteral(b.ErrorPercent) + "%"
		values[pos] = b.ErrorPercent
	}

	return model.Figure{
		Name:         BottleneckName,
		Rows:         1,
		Cols:         1,
		WidthInches:  10,
		HeightInches: 6,
		Panels: []model.Panel{{
			Kind:       model.PanelHBar,
			Title:      "Identificação de Gargalos por Tipo de Recurso",
			XLabel:     "Taxa de Erro (%)",
			Categories: categories,
			Series: []model.Series{{
				Axis:   model.AxisPrimary,
				Points: points,
				Colors: colors,
				Labels: labels,
			}},
			References: []model.Reference{{
				Value:  model.BottleneckThreshold,
				Label:  ThresholdLabel,
				Color:  colorGray,
				Dashed: true,
			}},
			ValueMax: maxOf(values) * 1.1,
		}},
	}
}
