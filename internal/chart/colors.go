package chart

// Named colors used by the report, as "#RRGGBB".
const (
	colorGreen     = "#008000"
	colorOrange    = "#FFA500"
	colorRed       = "#FF0000"
	colorYellow    = "#FFFF00"
	colorBlue      = "#0000FF"
	colorPurple    = "#800080"
	colorNavy      = "#000080"
	colorSteelBlue = "#4682B4"
	colorGray      = "#808080"
)
