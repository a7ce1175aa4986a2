package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nao1215/loadgraph/internal/chart"
	"github.com/nao1215/loadgraph/internal/config"
	"github.com/nao1215/loadgraph/internal/database"
	"github.com/nao1215/loadgraph/internal/metrics"
	"github.com/nao1215/loadgraph/internal/model"
	"github.com/nao1215/loadgraph/internal/render"
	"github.com/nao1215/loadgraph/internal/report"
)

// OutputDirStep creates the output directory. Existing directories and the
// files in them are left untouched.
type OutputDirStep struct{}

// NewOutputDirStep creates a new output directory step.
func NewOutputDirStep() *OutputDirStep {
	return &OutputDirStep{}
}

// Name returns the step name.
func (s *OutputDirStep) Name() string {
	return "output_dir"
}

// Do creates gen's output directory and its parents.
func (s *OutputDirStep) Do(_ context.Context, gen *model.Generation) error {
	if err := os.MkdirAll(gen.Manifest.OutputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// BannerStep prints the line announcing the generation.
type BannerStep struct {
	progress *report.Progress
}

// NewBannerStep creates a banner step printing to progress.
func NewBannerStep(progress *report.Progress) *BannerStep {
	return &BannerStep{progress: progress}
}

// Name returns the step name.
func (s *BannerStep) Name() string {
	return "banner"
}

// Do prints the banner.
func (s *BannerStep) Do(_ context.Context, _ *model.Generation) error {
	return s.progress.Start()
}

// FigureBuilder builds the metadata of one figure from the generation's data.
type FigureBuilder func(gen *model.Generation) model.Figure

// FigureStep builds one figure, renders it into the output directory and
// announces it.
type FigureStep struct {
	// number is the 1-based position printed in the progress line.
	number int

	// name is the figure name, used for the step name and the caption.
	name string

	build    FigureBuilder
	renderer *render.Renderer
	progress *report.Progress
	logger   *slog.Logger
}

// FigureStepOption configures a FigureStep.
type FigureStepOption func(*FigureStep)

// WithFigureProgress sets where the "Gráfico N" line is printed.
// Without it nothing is printed.
func WithFigureProgress(progress *report.Progress) FigureStepOption {
	return func(s *FigureStep) {
		s.progress = progress
	}
}

// WithFigureLogger sets a custom logger for the figure step.
func WithFigureLogger(logger *slog.Logger) FigureStepOption {
	return func(s *FigureStep) {
		s.logger = logger
	}
}

// NewFigureStep creates the step producing the number-th figure called name.
func NewFigureStep(number int, name string, build FigureBuilder, renderer *render.Renderer, opts ...FigureStepOption) *FigureStep {
	s := &FigureStep{
		number:   number,
		name:     name,
		build:    build,
		renderer: renderer,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *FigureStep) Name() string {
	return "figure:" + s.name
}

// Do builds, renders and records the figure.
func (s *FigureStep) Do(_ context.Context, gen *model.Generation) error {
	fig := s.build(gen)

	artifact, err := s.renderer.WriteFile(fig, gen.Manifest.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", fig.FileName(), err)
	}
	gen.AddFigure(fig, artifact)

	s.logger.Debug("figure written",
		"figure", fig.Name,
		"path", artifact.Path,
		"size", artifact.Size,
	)

	if s.progress != nil {
		if err := s.progress.FigureDone(s.number, chart.Caption(fig.Name)); err != nil {
			return fmt.Errorf("failed to print progress: %w", err)
		}
	}
	return nil
}

// DigestStep stamps the manifest with the generation time, the program
// version and the digest of the figure metadata.
type DigestStep struct {
	version string
	now     func() time.Time
}

// DigestStepOption configures a DigestStep.
type DigestStepOption func(*DigestStep)

// WithDigestClock replaces time.Now for the generation timestamp.
func WithDigestClock(now func() time.Time) DigestStepOption {
	return func(s *DigestStep) {
		s.now = now
	}
}

// NewDigestStep creates a digest step recording version.
func NewDigestStep(version string, opts ...DigestStepOption) *DigestStep {
	s := &DigestStep{
		version: version,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *DigestStep) Name() string {
	return "digest"
}

// Do fills the manifest header.
func (s *DigestStep) Do(_ context.Context, gen *model.Generation) error {
	digest, err := model.DigestFigures(gen.Figures)
	if err != nil {
		return err
	}

	gen.Manifest.MetadataDigest = digest
	gen.Manifest.Version = s.version
	gen.Manifest.GeneratedAt = s.now().UTC()
	return nil
}

// SummaryStep prints the summary table followed by the list of charts.
type SummaryStep struct {
	output   io.Writer
	progress *report.Progress
}

// NewSummaryStep creates a summary step printing to output.
// progress may be nil to print the table only.
func NewSummaryStep(output io.Writer, progress *report.Progress) *SummaryStep {
	return &SummaryStep{output: output, progress: progress}
}

// Name returns the step name.
func (s *SummaryStep) Name() string {
	return "summary"
}

// Do prints the table and the file listing.
func (s *SummaryStep) Do(_ context.Context, gen *model.Generation) error {
	if _, err := report.NewSummaryWriter(s.output).Write(gen); err != nil {
		return fmt.Errorf("failed to print summary table: %w", err)
	}

	if s.progress == nil {
		return nil
	}

	files := make([]string, 0, len(gen.Manifest.Figures))
	for _, a := range gen.Manifest.Figures {
		files = append(files, filepath.Base(a.Path))
	}
	return s.progress.Finish(gen.Manifest.OutputDir, files)
}

// MarkdownStep writes the Markdown report into the output directory.
type MarkdownStep struct {
	opts []report.MarkdownWriterOption
}

// NewMarkdownStep creates a Markdown step passing opts to the writer.
func NewMarkdownStep(opts ...report.MarkdownWriterOption) *MarkdownStep {
	return &MarkdownStep{opts: opts}
}

// Name returns the step name.
func (s *MarkdownStep) Name() string {
	return "markdown"
}

// Do writes relatorio.md and records it as an extra.
func (s *MarkdownStep) Do(_ context.Context, gen *model.Generation) error {
	var buf bytes.Buffer
	if _, err := report.NewMarkdownWriter(&buf, s.opts...).Write(gen); err != nil {
		return fmt.Errorf("failed to build markdown report: %w", err)
	}

	path := filepath.Join(gen.Manifest.OutputDir, report.MarkdownFileName)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil { //nolint:gosec // the report is meant to be shared
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	gen.AddExtra(model.Artifact{
		Name:   "markdown",
		Path:   path,
		Size:   int64(buf.Len()),
		SHA256: model.DigestBytes(buf.Bytes()),
	})
	return nil
}

// MetricsStep writes the Prometheus textfile into the output directory.
type MetricsStep struct {
	bottlenecks []model.Bottleneck
	threshold   float64
}

// NewMetricsStep creates a metrics step exporting bs against threshold.
func NewMetricsStep(bs []model.Bottleneck, threshold float64) *MetricsStep {
	return &MetricsStep{bottlenecks: bs, threshold: threshold}
}

// Name returns the step name.
func (s *MetricsStep) Name() string {
	return "metrics"
}

// Do writes loadtest.prom and records it as an extra.
func (s *MetricsStep) Do(_ context.Context, gen *model.Generation) error {
	exporter := metrics.NewExporter()
	exporter.Observe(gen.Runs, s.bottlenecks, s.threshold)

	artifact, err := exporter.WriteFile(gen.Manifest.OutputDir)
	if err != nil {
		return err
	}
	gen.AddExtra(artifact)
	return nil
}

// ManifestStep writes manifest.json into the output directory.
type ManifestStep struct{}

// NewManifestStep creates a manifest step.
func NewManifestStep() *ManifestStep {
	return &ManifestStep{}
}

// Name returns the step name.
func (s *ManifestStep) Name() string {
	return "manifest"
}

// Do writes the manifest as indented JSON.
func (s *ManifestStep) Do(_ context.Context, gen *model.Generation) error {
	var buf bytes.Buffer
	if _, err := report.NewJSONWriter(&buf, report.WithPrettyPrint()).Write(gen); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	path := filepath.Join(gen.Manifest.OutputDir, report.ManifestFileName)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil { //nolint:gosec // the manifest is meant to be shared
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// HistoryStep stores the manifest in the history database.
type HistoryStep struct {
	db     *database.HistoryDB
	logger *slog.Logger
}

// NewHistoryStep creates a history step saving into db.
func NewHistoryStep(db *database.HistoryDB, logger *slog.Logger) *HistoryStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryStep{db: db, logger: logger}
}

// Name returns the step name.
func (s *HistoryStep) Name() string {
	return "history"
}

// Do saves the manifest.
func (s *HistoryStep) Do(ctx context.Context, gen *model.Generation) error {
	id, err := s.db.SaveManifest(ctx, gen.Manifest)
	if err != nil {
		return err
	}
	s.logger.Info("generation saved to history",
		"id", id,
		"db", s.db.Path(),
		"digest", gen.Manifest.MetadataDigest,
	)
	return nil
}

// DefaultPipelineConfig holds what the default pipeline needs besides the
// user configuration.
type DefaultPipelineConfig struct {
	// Output receives the progress lines and the summary table.
	Output io.Writer

	// Version is recorded in the manifest and the Markdown footer.
	Version string

	// History is the database the manifest is saved to when
	// config.Config.SaveHistory is set. It must be non-nil in that case.
	History *database.HistoryDB

	// Bottlenecks are the resource categories charted and reported.
	Bottlenecks []model.Bottleneck

	// Threshold is the critical error percentage.
	Threshold float64

	// Now replaces time.Now for the manifest timestamp.
	Now func() time.Time
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineOutput sets where progress and the summary table are printed.
func WithPipelineOutput(w io.Writer) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Output = w
	}
}

// WithPipelineVersion sets the version recorded in the outputs.
func WithPipelineVersion(version string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Version = version
	}
}

// WithPipelineHistory sets the history database.
func WithPipelineHistory(db *database.HistoryDB) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.History = db
	}
}

// WithPipelineClock replaces time.Now for the manifest timestamp.
func WithPipelineClock(now func() time.Time) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Now = now
	}
}

// DefaultPipeline creates the pipeline of one full generation for cfg.
//
// The first parameter accepts pipeline options (WithLogger, etc).
// The variadic parameter accepts pipeline config options
// (WithPipelineOutput, etc).
func DefaultPipeline(cfg *config.Config, pipelineOpts []Option, configOpts ...DefaultPipelineOption) (*Pipeline, error) {
	p := New(pipelineOpts...)

	dc := &DefaultPipelineConfig{
		Output:      os.Stdout,
		Bottlenecks: model.Bottlenecks(),
		Threshold:   model.BottleneckThreshold,
		Now:         time.Now,
	}
	for _, opt := range configOpts {
		opt(dc)
	}

	if cfg.SaveHistory && dc.History == nil {
		return nil, database.ErrHistoryNotOpen
	}

	renderer := render.New(
		render.WithDPI(cfg.DPI),
		render.WithLogger(p.logger),
	)
	progress := report.NewProgress(dc.Output)
	bs := dc.Bottlenecks

	builders := []struct {
		name  string
		build FigureBuilder
	}{
		{chart.OverallName, func(gen *model.Generation) model.Figure { return chart.Overall(gen.Runs) }},
		{chart.ScalabilityName, func(gen *model.Generation) model.Figure { return chart.Scalability(gen.Runs) }},
		{chart.EndpointsName, func(gen *model.Generation) model.Figure { return chart.Endpoints(gen.Runs) }},
		{chart.BottleneckName, func(*model.Generation) model.Figure { return chart.Bottleneck(bs) }},
	}

	p.AddSteps(
		NewOutputDirStep(),
		NewBannerStep(progress),
	)
	for i, b := range builders {
		p.AddStep(NewFigureStep(i+1, b.name, b.build, renderer,
			WithFigureProgress(progress),
			WithFigureLogger(p.logger),
		))
	}
	p.AddSteps(
		NewDigestStep(dc.Version, WithDigestClock(dc.Now)),
		NewSummaryStep(dc.Output, progress),
	)

	if cfg.Markdown {
		tag, err := cfg.LanguageTag()
		if err != nil {
			return nil, err
		}
		p.AddStep(NewMarkdownStep(
			report.WithLanguage(tag),
			report.WithBottlenecks(bs, dc.Threshold),
		))
	}
	if cfg.Metrics {
		p.AddStep(NewMetricsStep(bs, dc.Threshold))
	}

	p.AddStep(NewManifestStep())

	if cfg.SaveHistory {
		p.AddStep(NewHistoryStep(dc.History, p.logger))
	}

	return p, nil
}

