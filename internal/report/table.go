package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/nao1215/loadgraph/internal/model"
)

const (
	// tableWidth is the width of the rules framing the summary table.
	tableWidth = 80

	// labelColumn is the width of the metric name column.
	labelColumn = 25

	// valueColumn is the width of each run column.
	valueColumn = 20

	tableTitle = "TABELA RESUMO DOS TESTES"
)

// metricRow is one line of the summary table.
type metricRow struct {
	label string
	value func(model.TestRun) string
}

// summaryRows lists the table rows in display order.
var summaryRows = []metricRow{
	{"Usuários Simultâneos", func(r model.TestRun) string { return strconv.Itoa(r.Users) }},
	{"Total de Requisições", func(r model.TestRun) string { return strconv.Itoa(r.Requests) }},
	{"Tempo Médio (ms)", func(r model.TestRun) string { return strconv.Itoa(r.MeanLatencyMs) }},
	{"Tempo Máximo (ms)", func(r model.TestRun) string { return strconv.Itoa(r.MaxLatencyMs) }},
	{"Taxa de Erro (%)", func(r model.TestRun) string { return model.FormatLiteral(r.ErrorPercent) }},
	{"Throughput (req/s)", func(r model.TestRun) string { return model.FormatLiteral(r.Throughput) }},
}

// SummaryWriter prints the fixed-width summary table of the test runs.
//
// Columns are padded by display width, so accented labels such as
// "Métrica" line up the same way ASCII ones do. Cells longer than their
// column are not truncated; they push the rest of the row to the right.
type SummaryWriter struct {
	baseWriter
}

// NewSummaryWriter creates a SummaryWriter that outputs to the given writer.
func NewSummaryWriter(output io.Writer) *SummaryWriter {
	return &SummaryWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write prints the summary table of gen.Runs.
func (w *SummaryWriter) Write(gen *model.Generation) (int, error) {
	return w.WriteRuns(gen.Runs)
}

// WriteRuns prints the summary table of runs.
func (w *SummaryWriter) WriteRuns(runs []model.TestRun) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, runs)
	w.writeRows(&sb, runs)

	sb.WriteString(strings.Repeat("=", tableWidth))
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the framed title and the column header row.
func (w *SummaryWriter) writeHeader(sb *strings.Builder, runs []model.TestRun) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", tableWidth))
	sb.WriteString("\n")
	sb.WriteString(center(tableTitle, tableWidth))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", tableWidth))
	sb.WriteString("\n")

	cells := make([]string, len(runs))
	for i, r := range runs {
		cells[i] = r.ShortLabel
	}
	writeLine(sb, "Métrica", cells)

	sb.WriteString(strings.Repeat("-", tableWidth))
	sb.WriteString("\n")
}

// writeRows writes one line per metric.
func (w *SummaryWriter) writeRows(sb *strings.Builder, runs []model.TestRun) {
	cells := make([]string, len(runs))
	for _, row := range summaryRows {
		for i, r := range runs {
			cells[i] = row.value(r)
		}
		writeLine(sb, row.label, cells)
	}
}

// writeLine writes a label cell followed by the value cells, each padded to
// its column width and separated by one space.
func writeLine(sb *strings.Builder, label string, cells []string) {
	sb.WriteString(runewidth.FillRight(label, labelColumn))
	for _, c := range cells {
		sb.WriteString(" ")
		sb.WriteString(runewidth.FillRight(c, valueColumn))
	}
	sb.WriteString("\n")
}

// center pads s with spaces on both sides to width. When the padding is odd
// the extra space goes to the right.
func center(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
