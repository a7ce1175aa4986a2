package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Progress prints the console lines shown while a generation runs.
type Progress struct {
	baseWriter
}

// NewProgress creates a Progress that prints to output.
func NewProgress(output io.Writer) *Progress {
	return &Progress{baseWriter: newBaseWriter(output)}
}

// Start prints the opening banner.
func (p *Progress) Start() error {
	_, err := fmt.Fprint(p.output, "🚀 Gerando gráficos comparativos dos testes de carga...\n\n")
	return err
}

// FigureDone prints the line announcing the n-th chart (1-based).
func (p *Progress) FigureDone(n int, caption string) error {
	_, err := fmt.Fprintf(p.output, "✅ Gráfico %d: %s criado\n", n, caption)
	return err
}

// Finish prints the closing summary listing the chart files written to dir.
func (p *Progress) Finish(dir string, files []string) error {
	var sb strings.Builder

	sb.WriteString("\n✅ Todos os gráficos foram gerados com sucesso!\n")
	sb.WriteString(fmt.Sprintf("📁 Arquivos salvos em: %s%c\n", filepath.Clean(dir), filepath.Separator))
	sb.WriteString("\n📊 Gráficos disponíveis:\n")
	for i, f := range files {
		sb.WriteString(fmt.Sprintf("   %d. %s\n", i+1, f))
	}

	_, err := io.WriteString(p.output, sb.String())
	return err
}
