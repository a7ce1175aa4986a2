package render

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/nao1215/loadgraph/internal/model"
)

// DefaultDPI is the resolution figures are rendered at unless overridden.
const DefaultDPI = 300

const (
	// titleFontSize is the size of the figure-level title.
	titleFontSize = 16

	// titleBand is the vertical space reserved above the panels for the title.
	titleBand = 32
)

// Renderer draws figures into PNG images.
type Renderer struct {
	// dpi is the output resolution in dots per inch.
	dpi int

	// logger receives per-panel debug output.
	logger *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDPI sets the output resolution. Non-positive values are ignored.
func WithDPI(dpi int) Option {
	return func(r *Renderer) {
		if dpi > 0 {
			r.dpi = dpi
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// New creates a Renderer with the given options.
func New(opts ...Option) *Renderer {
	r := &Renderer{dpi: DefaultDPI}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// DPI returns the output resolution.
func (r *Renderer) DPI() int {
	return r.dpi
}

// Render draws fig as a PNG image into w.
func (r *Renderer) Render(fig model.Figure, w io.Writer) error {
	if fig.Rows <= 0 || fig.Cols <= 0 {
		return ErrEmptyGrid
	}
	if len(fig.Panels) > fig.Rows*fig.Cols {
		return fmt.Errorf("%w: %d panels in a %dx%d grid", ErrGridOverflow, len(fig.Panels), fig.Rows, fig.Cols)
	}

	width := vg.Length(fig.WidthInches) * vg.Inch
	height := vg.Length(fig.HeightInches) * vg.Inch
	img := vgimg.NewWith(
		vgimg.UseWH(width, height),
		vgimg.UseDPI(r.dpi),
		vgimg.UseBackgroundColor(color.White),
	)
	dc := draw.New(img)

	if fig.Title != "" {
		drawTitle(&dc, fig.Title)
		dc = draw.Crop(dc, 0, 0, 0, -vg.Points(titleBand))
	}

	tiles := draw.Tiles{
		Rows:      fig.Rows,
		Cols:      fig.Cols,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
		PadX:      vg.Millimeter * 8,
		PadY:      vg.Millimeter * 8,
	}

	for i, panel := range fig.Panels {
		row, col := i/fig.Cols, i%fig.Cols
		tile := tiles.At(dc, col, row)
		r.logger.Debug("drawing panel",
			"figure", fig.Name,
			"panel", panel.Title,
			"kind", panel.Kind,
			"row", row,
			"col", col,
		)
		if err := r.drawPanel(tile, panel); err != nil {
			return fmt.Errorf("failed to draw panel %q of %s: %w", panel.Title, fig.Name, err)
		}
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode %s: %w", fig.Name, err)
	}
	return nil
}

// WriteFile renders fig into dir under its fixed file name and returns the
// written artifact. The image is encoded in memory first so a render error
// never leaves a truncated file behind.
func (r *Renderer) WriteFile(fig model.Figure, dir string) (model.Artifact, error) {
	var buf bytes.Buffer
	if err := r.Render(fig, &buf); err != nil {
		return model.Artifact{}, err
	}

	path := filepath.Join(dir, fig.FileName())
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil { //nolint:gosec // chart images are meant to be shared
		return model.Artifact{}, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return model.Artifact{
		Name:   fig.Name,
		Path:   path,
		Size:   int64(buf.Len()),
		SHA256: model.DigestBytes(buf.Bytes()),
	}, nil
}

// drawPanel draws one panel into its tile.
func (r *Renderer) drawPanel(tile draw.Canvas, panel model.Panel) error {
	switch panel.Kind {
	case model.PanelDualBar:
		dpi := float64(r.dpi)
		width := int((tile.Max.X - tile.Min.X).Dots(dpi))
		height := int((tile.Max.Y - tile.Min.Y).Dots(dpi))
		img, err := renderDualAxis(panel, width, height, dpi)
		if err != nil {
			return err
		}
		tile.DrawImage(tile.Rectangle, img)
		return nil
	case model.PanelBar, model.PanelHBar, model.PanelLine:
		p, err := buildPlot(panel)
		if err != nil {
			return err
		}
		p.Draw(tile)
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedPanel, panel.Kind)
	}
}

// drawTitle writes the figure title centered at the top of dc.
func drawTitle(dc *draw.Canvas, title string) {
	sty := text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, vg.Points(titleFontSize)),
		XAlign:  text.XCenter,
		YAlign:  text.YTop,
		Handler: plot.DefaultTextHandler,
	}
	pt := vg.Point{
		X: (dc.Min.X + dc.Max.X) / 2,
		Y: dc.Max.Y - vg.Points(6),
	}
	dc.FillText(sty, pt, title)
}
