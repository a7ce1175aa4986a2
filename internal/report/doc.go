// Package report writes the text and document outputs of a generation.
//
// This package contains writers for different output formats:
//   - SummaryWriter: the fixed-width summary table printed to the terminal
//   - MarkdownWriter: a Markdown report linking the chart images
//   - JSONWriter: the generation manifest as JSON
//
// Progress prints the lines shown while the charts are generated.
//
// Writers implement the Writer interface, so the pipeline can hand any of
// them a finished generation.
package report
