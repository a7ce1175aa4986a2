package config

// File represents the structure of the .loadgraph configuration file.
// Boolean options are pointers so an option left out of the file does not
// override a default with false.
type File struct {
	// OutputDir overrides the output directory.
	OutputDir string `yaml:"outputDir,omitempty"`

	// DPI overrides the image resolution.
	DPI int `yaml:"dpi,omitempty"`

	// Markdown enables the Markdown report.
	Markdown *bool `yaml:"markdown,omitempty"`

	// Metrics enables the Prometheus textfile.
	Metrics *bool `yaml:"metrics,omitempty"`

	// History enables saving generations to the history database.
	History *bool `yaml:"history,omitempty"`

	// DBDir overrides the history database directory.
	DBDir string `yaml:"dbDir,omitempty"`

	// Language overrides the report language.
	Language string `yaml:"language,omitempty"`

	// Log configures logging.
	Log LogFile `yaml:"log,omitempty"`
}

// LogFile is the logging section of the configuration file.
type LogFile struct {
	// Verbose enables debug logging.
	Verbose *bool `yaml:"verbose,omitempty"`

	// JSON switches to JSON log lines.
	JSON *bool `yaml:"json,omitempty"`
}

// Apply copies every option set in the file onto cfg.
func (f *File) Apply(cfg *Config) {
	if f.OutputDir != "" {
		cfg.OutputDir = f.OutputDir
	}
	if f.DPI != 0 {
		cfg.DPI = f.DPI
	}
	if f.Markdown != nil {
		cfg.Markdown = *f.Markdown
	}
	if f.Metrics != nil {
		cfg.Metrics = *f.Metrics
	}
	if f.History != nil {
		cfg.SaveHistory = *f.History
	}
	if f.DBDir != "" {
		cfg.DBDir = f.DBDir
	}
	if f.Language != "" {
		cfg.Language = f.Language
	}
	if f.Log.Verbose != nil {
		cfg.Verbose = *f.Log.Verbose
	}
	if f.Log.JSON != nil {
		cfg.LogJSON = *f.Log.JSON
	}
}
