package render

import "errors"

var (
	// ErrEmptyGrid is returned when a figure has no rows or columns.
	ErrEmptyGrid = errors.New("figure grid must have at least one row and one column")

	// ErrGridOverflow is returned when a figure has more panels than grid cells.
	ErrGridOverflow = errors.New("figure has more panels than grid cells")

	// ErrUnsupportedPanel is returned for a panel kind the renderer cannot draw.
	ErrUnsupportedPanel = errors.New("unsupported panel kind")

	// ErrInvalidColor is returned when a color is not a "#RRGGBB" string.
	ErrInvalidColor = errors.New("invalid color")
)
