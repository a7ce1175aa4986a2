package model

import "testing"

// TestFormatLiteral tests literal rendering of dataset floats.
func TestFormatLiteral(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in   float64
		want string
	}{
		{0.00, "0.0"},
		{25.52, "25.52"},
		{39.27, "39.27"},
		{7.42, "7.42"},
		{122.26, "122.26"},
		{19.20, "19.2"},
		{100, "100.0"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.want, func(t *testing.T) {
			t.Parallel()
			if got := FormatLiteral(tc.in); got != tc.want {
				t.Errorf("FormatLiteral(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
