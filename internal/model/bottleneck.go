package model

import (
	"fmt"
	"sort"
)

// Bottleneck is a resource category whose saturation is inferred from the
// error rate of the endpoint that exercises it.
type Bottleneck struct {
	// Category is the resource name, e.g. "I/O".
	Category string `json:"category"`

	// Endpoint is the endpoint the category is attributed to, e.g. "heavy-io".
	Endpoint string `json:"endpoint"`

	// RunIndex is the index into Runs() of the run the figure comes from.
	RunIndex int `json:"run_index"`

	// ErrorPercent is the error rate associated with the category (0-100).
	ErrorPercent float64 `json:"error_percent"`

	// Color is the bar color as a "#RRGGBB" hex string.
	Color string `json:"color"`
}

// Label returns the two-line chart label, e.g. "I/O\n(heavy-io)".
func (b Bottleneck) Label() string {
	return fmt.Sprintf("%s\n(%s)", b.Category, b.Endpoint)
}

// InlineLabel returns the single-line label, e.g. "I/O (heavy-io)".
func (b Bottleneck) InlineLabel() string {
	return fmt.Sprintf("%s (%s)", b.Category, b.Endpoint)
}

// Exceeds reports whether the category's error rate is above threshold.
func (b Bottleneck) Exceeds(threshold float64) bool {
	return b.ErrorPercent > threshold
}

// RankBottlenecks returns the categories ordered by error rate, highest
// first. Ties keep their declaration order.
func RankBottlenecks(bs []Bottleneck) []Bottleneck {
	ranked := make([]Bottleneck, len(bs))
	copy(ranked, bs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ErrorPercent > ranked[j].ErrorPercent
	})
	return ranked
}

// SplitByThreshold partitions the categories into those above and those at
// or below threshold, preserving input order in both slices.
func SplitByThreshold(bs []Bottleneck, threshold float64) (above, below []Bottleneck) {
	for _, b := range bs {
		if b.Exceeds(threshold) {
			above = append(above, b)
		} else {
			below = append(below, b)
		}
	}
	return above, below
}
