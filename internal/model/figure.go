package model

// PanelKind identifies how a panel is drawn.
type PanelKind string

const (
	// PanelBar is a vertical bar chart with one bar per category.
	PanelBar PanelKind = "bar"

	// PanelLine is a line chart with markers over numeric x values.
	PanelLine PanelKind = "line"

	// PanelDualBar is a grouped bar chart whose series are split between a
	// primary (left) and a secondary (right) y axis.
	PanelDualBar PanelKind = "dual-bar"

	// PanelHBar is a horizontal bar chart with one bar per category.
	PanelHBar PanelKind = "hbar"
)

// Axis selects which value axis a series is plotted against.
type Axis string

const (
	// AxisPrimary is the left (or bottom, for horizontal bars) value axis.
	AxisPrimary Axis = "primary"

	// AxisSecondary is the right value axis of a dual-axis panel.
	AxisSecondary Axis = "secondary"
)

// Marker is the glyph drawn at each point of a line series.
type Marker string

const (
	// MarkerNone draws no glyph.
	MarkerNone Marker = ""

	// MarkerCircle draws a filled circle.
	MarkerCircle Marker = "circle"

	// MarkerSquare draws a filled square.
	MarkerSquare Marker = "square"
)

// Point is a single data point. For categorical panels X is the category
// index.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Series is a named sequence of points drawn with one style.
type Series struct {
	// Name is the legend entry; empty means no legend entry.
	Name string `json:"name,omitempty"`

	// Axis is the value axis the series is plotted against.
	Axis Axis `json:"axis"`

	// Points are the data points in drawing order.
	Points []Point `json:"points"`

	// Colors holds one "#RRGGBB" color per point, or a single color used for
	// every point.
	Colors []string `json:"colors"`

	// Labels holds one annotation per point. Empty strings are not drawn.
	Labels []string `json:"labels,omitempty"`

	// Marker is the point glyph for line series.
	Marker Marker `json:"marker,omitempty"`

	// Alpha is the fill opacity in [0,1]; zero means opaque.
	Alpha float64 `json:"alpha,omitempty"`
}

// ColorAt returns the color of the i-th point.
func (s Series) ColorAt(i int) string {
	if len(s.Colors) == 0 {
		return "#000000"
	}
	if i < len(s.Colors) {
		return s.Colors[i]
	}
	return s.Colors[len(s.Colors)-1]
}

// LabelAt returns the annotation of the i-th point, or "" if none.
func (s Series) LabelAt(i int) string {
	if i < len(s.Labels) {
		return s.Labels[i]
	}
	return ""
}

// MaxY returns the largest y value of the series, or 0 when empty.
func (s Series) MaxY() float64 {
	var m float64
	for i, p := range s.Points {
		if i == 0 || p.Y > m {
			m = p.Y
		}
	}
	return m
}

// YAt returns the y value at x, if the series has a point there.
func (s Series) YAt(x float64) (float64, bool) {
	for _, p := range s.Points {
		if p.X == x {
			return p.Y, true
		}
	}
	return 0, false
}

// Reference is a straight reference line drawn across the value axis.
type Reference struct {
	// Value is the position on the value axis.
	Value float64 `json:"value"`

	// Label is the legend entry for the line.
	Label string `json:"label"`

	// Color is the line color as a "#RRGGBB" hex string.
	Color string `json:"color"`

	// Dashed draws the line with dashes.
	Dashed bool `json:"dashed"`
}

// Panel is one chart inside a figure.
type Panel struct {
	Kind   PanelKind `json:"kind"`
	Title  string    `json:"title"`
	XLabel string    `json:"x_label,omitempty"`
	YLabel string    `json:"y_label,omitempty"`

	// Y2Label is the secondary axis label of a dual-axis panel.
	Y2Label string `json:"y2_label,omitempty"`

	// Categories are the tick labels of categorical panels, indexed by X.
	Categories []string `json:"categories,omitempty"`

	Series     []Series    `json:"series"`
	References []Reference `json:"references,omitempty"`

	// Grid draws background grid lines.
	Grid bool `json:"grid,omitempty"`

	// ValueMax fixes the upper bound of the primary value axis; zero means
	// fit to data.
	ValueMax float64 `json:"value_max,omitempty"`
}

// HasSecondaryAxis reports whether any series uses the secondary axis.
func (p Panel) HasSecondaryAxis() bool {
	for _, s := range p.Series {
		if s.Axis == AxisSecondary {
			return true
		}
	}
	return false
}

// SeriesByName returns the series with the given legend name.
func (p Panel) SeriesByName(name string) (Series, bool) {
	for _, s := range p.Series {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}

// Figure is a renderer-independent description of one chart image.
type Figure struct {
	// Name is the file stem, e.g. "02-escalabilidade".
	Name string `json:"name"`

	// Title is the figure-level title drawn above all panels.
	Title string `json:"title"`

	// Rows and Cols define the panel grid. Panels fill it row by row.
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// WidthInches and HeightInches are the physical figure size.
	WidthInches  float64 `json:"width_inches"`
	HeightInches float64 `json:"height_inches"`

	Panels []Panel `json:"panels"`
}

// FileName returns the image file name, e.g. "02-escalabilidade.png".
func (f Figure) FileName() string {
	return f.Name + ".png"
}

// PanelAt returns the panel drawn in the given grid cell.
func (f Figure) PanelAt(row, col int) (Panel, bool) {
	i := row*f.Cols + col
	if row < 0 || col < 0 || col >= f.Cols || i >= len(f.Panels) {
		return Panel{}, false
	}
	return f.Panels[i], true
}
