package report

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nao1215/loadgraph/internal/model"
)

// MarkdownFileName is the file the Markdown report is written to, inside the
// output directory.
const MarkdownFileName = "relatorio.md"

// MarkdownWriter outputs the load-test report in Markdown format.
// Numbers are formatted for Brazilian Portuguese ("12.292", "25,52"), the
// language the charts are labelled in.
type MarkdownWriter struct {
	baseWriter

	// printer localizes numbers.
	printer *message.Printer

	// threshold is the error percentage above which a category is critical.
	threshold float64

	// bottlenecks are the resource categories reported in the alert section.
	bottlenecks []model.Bottleneck
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithLanguage sets the language numbers are formatted in.
func WithLanguage(tag language.Tag) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.printer = message.NewPrinter(tag)
	}
}

// WithBottlenecks replaces the resource categories listed in the report.
func WithBottlenecks(bs []model.Bottleneck, threshold float64) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.bottlenecks = bs
		w.threshold = threshold
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter:  newBaseWriter(output),
		printer:     message.NewPrinter(language.BrazilianPortuguese),
		threshold:   model.BottleneckThreshold,
		bottlenecks: model.Bottlenecks(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report for gen in Markdown format.
func (w *MarkdownWriter) Write(gen *model.Generation) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, gen)
	w.writeSummary(md, gen.Runs)
	w.writeRequests(md, gen.Runs)
	w.writeEndpoints(md, gen.Runs)
	w.writeBottlenecks(md)
	w.writeFigures(md, gen.Manifest)
	w.writeFooter(md, gen.Manifest)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and generation information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, gen *model.Generation) {
	md.H1("Relatório dos Testes de Carga")
	md.PlainText("")

	rows := [][]string{
		{"Testes executados", w.printer.Sprintf("%d", len(gen.Runs))},
	}
	if gen.Manifest != nil {
		if !gen.Manifest.GeneratedAt.IsZero() {
			rows = append(rows, []string{"Gerado em", gen.Manifest.GeneratedAt.Format("2006-01-02 15:04:05 MST")})
		}
		if gen.Manifest.MetadataDigest != "" {
			rows = append(rows, []string{"Digest dos metadados", "`" + shortDigest(gen.Manifest.MetadataDigest) + "`"})
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Propriedade", "Valor"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSummary writes the per-run metrics table.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, runs []model.TestRun) {
	md.H2("Resumo dos Testes")
	md.PlainText("")

	header := []string{"Métrica"}
	for _, r := range runs {
		header = append(header, r.ShortLabel)
	}

	metrics := []struct {
		label string
		value func(model.TestRun) string
	}{
		{"Usuários Simultâneos", func(r model.TestRun) string { return w.printer.Sprintf("%d", r.Users) }},
		{"Total de Requisições", func(r model.TestRun) string { return w.printer.Sprintf("%d", r.Requests) }},
		{"Tempo Médio (ms)", func(r model.TestRun) string { return w.printer.Sprintf("%d", r.MeanLatencyMs) }},
		{"Tempo Máximo (ms)", func(r model.TestRun) string { return w.printer.Sprintf("%d", r.MaxLatencyMs) }},
		{"Taxa de Erro (%)", func(r model.TestRun) string { return w.printer.Sprintf("%.2f", r.ErrorPercent) }},
		{"Throughput (req/s)", func(r model.TestRun) string { return w.printer.Sprintf("%.2f", r.Throughput) }},
	}

	rows := make([][]string, len(metrics))
	for i, m := range metrics {
		row := []string{m.label}
		for _, r := range runs {
			row = append(row, m.value(r))
		}
		rows[i] = row
	}

	md.Table(markdown.TableSet{
		Header: header,
		Rows:   rows,
	})
	md.PlainText("")
}

// writeRequests writes a mermaid pie chart of requests issued per run.
func (w *MarkdownWriter) writeRequests(md *markdown.Markdown, runs []model.TestRun) {
	if len(runs) == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Requisições por Teste"),
		piechart.WithShowData(true),
	)
	for _, r := range runs {
		if r.Requests > 0 {
			chart.LabelAndIntValue(r.ShortLabel, uint64(r.Requests))
		}
	}

	md.H2("Distribuição de Requisições")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeEndpoints writes one table per run with its endpoint breakdown.
func (w *MarkdownWriter) writeEndpoints(md *markdown.Markdown, runs []model.TestRun) {
	md.H2("Performance por Endpoint")
	md.PlainText("")

	for _, r := range runs {
		md.H3(r.EndpointTitle)
		md.PlainText("")

		rows := make([][]string, len(r.Endpoints))
		for i, e := range r.Endpoints {
			rows[i] = []string{
				"`" + e.Name + "`",
				w.printer.Sprintf("%d", e.MeanLatencyMs),
				w.printer.Sprintf("%.2f", e.ErrorPercent),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Endpoint", "Tempo Médio (ms)", "Taxa de Erro (%)"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeBottlenecks writes the ranked resource categories and an alert for
// those above the threshold.
func (w *MarkdownWriter) writeBottlenecks(md *markdown.Markdown) {
	md.H2("Identificação de Gargalos")
	md.PlainText("")

	ranked := model.RankBottlenecks(w.bottlenecks)
	rows := make([][]string, len(ranked))
	for i, b := range ranked {
		status := "✅ Abaixo do limiar"
		if b.Exceeds(w.threshold) {
			status = "🔴 Crítico"
		}
		rows[i] = []string{
			b.Category,
			"`" + b.Endpoint + "`",
			w.printer.Sprintf("%.2f", b.ErrorPercent),
			status,
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Recurso", "Endpoint", "Taxa de Erro (%)", "Situação"},
		Rows:   rows,
	})
	md.PlainText("")

	above, _ := model.SplitByThreshold(ranked, w.threshold)
	if len(above) == 0 {
		md.Tip(w.printer.Sprintf("Nenhum recurso ultrapassou o limiar crítico de %.0f%%.", w.threshold))
		md.PlainText("")
		return
	}

	names := make([]string, len(above))
	for i, b := range above {
		names[i] = b.InlineLabel()
	}
	md.Cautionf("%s", w.printer.Sprintf(
		"%d recurso(s) acima do limiar crítico de %.0f%%: %s.",
		len(above), w.threshold, strings.Join(names, ", "),
	))
	md.PlainText("")
}

// writeFigures links the chart images written by the generation. Links are
// relative to the output directory, where the report itself is written.
func (w *MarkdownWriter) writeFigures(md *markdown.Markdown, manifest *model.Manifest) {
	if manifest == nil || len(manifest.Figures) == 0 {
		return
	}

	md.H2("Gráficos")
	md.PlainText("")
	for _, a := range manifest.Figures {
		md.PlainTextf("![%s](%s)", a.Name, filepath.ToSlash(filepath.Base(a.Path)))
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, manifest *model.Manifest) {
	md.HorizontalRule()
	md.PlainText("")
	version := ""
	if manifest != nil && manifest.Version != "" {
		version = " " + manifest.Version
	}
	md.PlainTextf("*Relatório gerado por loadgraph%s*", version)
}

// shortDigest abbreviates a hex digest for display.
func shortDigest(d string) string {
	if len(d) <= 12 {
		return d
	}
	return d[:12]
}
