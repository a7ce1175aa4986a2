// Package render draws figure metadata into PNG images.
//
// A figure is laid out on a gonum vgimg canvas split into tiles. Bar, line
// and horizontal-bar panels are drawn with gonum.org/v1/plot. Dual-axis
// panels are drawn with github.com/wcharczuk/go-chart/v2, which supports a
// secondary y axis, and embedded into their tile as an image.
package render
