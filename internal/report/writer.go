package report

import (
	"io"

	"github.com/nao1215/loadgraph/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the report for gen to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(gen *model.Generation) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
