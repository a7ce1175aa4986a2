package model

import (
	"strconv"
	"strings"
)

// FormatLiteral renders v the way the dataset literals are written: the
// shortest decimal that round-trips, with at least one fractional digit
// (0.0, 25.52, 122.26).
func FormatLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
