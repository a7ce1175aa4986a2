package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// parseHex parses a "#RRGGBB" string into an opaque color.
func parseHex(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// alphaByte converts an opacity in [0,1] to an 8-bit alpha. Zero means opaque.
func alphaByte(alpha float64) uint8 {
	if alpha <= 0 || alpha >= 1 {
		return 0xff
	}
	return uint8(alpha * 0xff)
}

// seriesColor returns the color of the i-th point with the series opacity applied.
func seriesColor(hex string, alpha float64) (color.NRGBA, error) {
	c, err := parseHex(hex)
	if err != nil {
		return c, err
	}
	c.A = alphaByte(alpha)
	return c, nil
}
