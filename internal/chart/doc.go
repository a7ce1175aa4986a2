// Package chart builds the figure metadata for the load-test report.
//
// Every builder is a pure function of the embedded dataset: it selects the
// fields a chart needs, formats the per-point annotations and returns a
// model.Figure. Nothing here draws pixels; internal/render does that. Keeping
// the two apart is what makes the metadata digest of a generation identical
// across runs regardless of the rendering backend.
package chart
