package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"golang.org/x/text/language"
)

// Default configuration values.
const (
	// DefaultOutputDir is the directory the charts are written to, relative
	// to the working directory.
	DefaultOutputDir = "graficos"

	// DefaultDPI is the resolution the charts are rendered at.
	DefaultDPI = 300

	// MaxDPI bounds the resolution. A 14x10 inch figure at 1200 dpi is
	// already a 16800x12000 pixel image.
	MaxDPI = 1200

	// DefaultLanguage is the BCP 47 tag numbers are formatted in for the
	// Markdown report.
	DefaultLanguage = "pt-BR"

	// AppName is the application name used for XDG directory paths.
	AppName = "loadgraph"
)

// Config holds all configuration options for loadgraph.
// This struct is populated from defaults, the config file and CLI flags and
// passed through the application rather than kept in global state.
type Config struct {
	// OutputDir is the directory the charts and the other outputs are
	// written to. It is created if missing; existing files are kept.
	OutputDir string

	// DPI is the chart image resolution in dots per inch.
	DPI int

	// Markdown enables writing relatorio.md into OutputDir.
	Markdown bool

	// Metrics enables writing the Prometheus textfile loadtest.prom into
	// OutputDir.
	Metrics bool

	// SaveHistory stores the manifest of each generation in the SQLite
	// history database under DBDir.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory (~/.local/share/loadgraph on Linux).
	DBDir string

	// Language is the BCP 47 tag numbers in the Markdown report are
	// formatted in.
	Language string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// LogJSON switches the log output to JSON lines.
	LogJSON bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the locations listed in FindConfigFile are searched.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		OutputDir: DefaultOutputDir,
		DPI:       DefaultDPI,
		DBDir:     XDGDataDir(),
		Language:  DefaultLanguage,
	}
}

// XDGDataDir returns the XDG data directory for loadgraph.
// On Linux: ~/.local/share/loadgraph
// On macOS: ~/Library/Application Support/loadgraph
// On Windows: %LOCALAPPDATA%\loadgraph
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for loadgraph.
// On Linux: ~/.config/loadgraph
// On macOS: ~/Library/Application Support/loadgraph
// On Windows: %APPDATA%\loadgraph
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// LanguageTag returns the parsed report language.
func (c *Config) LanguageTag() (language.Tag, error) {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Und, ErrInvalidLanguage
	}
	return tag, nil
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return ErrEmptyOutputDir
	}

	if c.DPI <= 0 || c.DPI > MaxDPI {
		return ErrInvalidDPI
	}

	if c.Markdown {
		if _, err := c.LanguageTag(); err != nil {
			return err
		}
	}

	if c.SaveHistory && c.DBDir == "" {
		return ErrEmptyDBDir
	}

	return nil
}
