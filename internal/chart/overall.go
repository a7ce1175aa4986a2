package chart

import (
	"fmt"

	"github.com/nao1215/loadgraph/internal/model"
)

// OverallName is the file stem of the overall comparison figure.
const OverallName = "01-comparativo-geral"

// Overall builds the 2x2 grid of bar charts comparing error rate, mean
// latency, throughput and request count across the runs.
func Overall(runs []model.TestRun) model.Figure {
	ids := make([]string, len(runs))
	errs := make([]float64, len(runs))
	latencies := make([]float64, len(runs))
	throughputs := make([]float64, len(runs))
	requests := make([]float64, len(runs))
	for i, r := range runs {
		ids[i] = r.ID
		errs[i] = r.ErrorPercent
		latencies[i] = float64(r.MeanLatencyMs)
		throughputs[i] = r.Throughput
		requests[i] = float64(r.Requests)
	}

	errPanel := barPanel("Taxa de Erro (%)", "Erro (%)", ids, errs,
		[]string{colorGreen, colorOrange, colorRed},
		func(v float64) string { return fmt.Sprintf("%.2f%%", v) })
	errPanel.ValueMax = maxOf(errs) * 1.2

	latencyPanel := barPanel("Tempo Médio de Resposta (ms)", "Tempo (ms)", ids, latencies,
		[]string{colorGreen, colorRed, colorOrange},
		func(v float64) string { return fmt.Sprintf("%dms", int(v)) })

	throughputPanel := barPanel("Throughput (requisições/segundo)", "req/s", ids, throughputs,
		[]string{colorOrange, colorYellow, colorGreen},
		func(v float64) string { return fmt.Sprintf("%.1f", v) })

	requestsPanel := barPanel("Total de Requisições Executadas", "Requisições", ids, requests,
		[]string{colorBlue, colorPurple, colorNavy},
		func(v float64) string { return fmt.Sprintf("%d", int(v)) })

	return model.Figure{
		Name:         OverallName,
		Title:        "Comparativo Geral dos Testes de Carga",
		Rows:         2,
		Cols:         2,
		WidthInches:  14,
		HeightInches: 10,
		Panels:       []model.Panel{errPanel, latencyPanel, throughputPanel, requestsPanel},
	}
}

// barPanel builds a categorical bar panel with one annotated bar per value.
func barPanel(title, yLabel string, categories []string, values []float64, colors []string, label func(float64) string) model.Panel {
	points := make([]model.Point, len(values))
	labels := make([]string, len(values))
	for i, v := range values {
		points[i] = model.Point{X: float64(i), Y: v}
		labels[i] = label(v)
	}
	return model.Panel{
		Kind:       model.PanelBar,
		Title:      title,
		YLabel:     yLabel,
		Categories: categories,
		Series: []model.Series{{
			Axis:   model.AxisPrimary,
			Points: points,
			Colors: colors,
			Labels: labels,
		}},
	}
}

// maxOf returns the largest value, or 0 for an empty slice.
func maxOf(values []float64) float64 {
	var m float64
	for i, v := range values {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}
