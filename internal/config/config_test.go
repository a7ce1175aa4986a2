package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default OutputDir is graficos", func(t *testing.T) {
		t.Parallel()
		if cfg.OutputDir != "graficos" {
			t.Errorf("expected OutputDir to be 'graficos', got '%s'", cfg.OutputDir)
		}
	})

	t.Run("default DPI is 300", func(t *testing.T) {
		t.Parallel()
		if cfg.DPI != 300 {
			t.Errorf("expected DPI to be 300, got %d", cfg.DPI)
		}
	})

	t.Run("optional outputs are off", func(t *testing.T) {
		t.Parallel()
		if cfg.Markdown || cfg.Metrics || cfg.SaveHistory {
			t.Error("expected markdown, metrics and history to be disabled")
		}
	})

	t.Run("default DBDir is the XDG data dir", func(t *testing.T) {
		t.Parallel()
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir to be %q, got %q", XDGDataDir(), cfg.DBDir)
		}
	})

	t.Run("default Language is pt-BR", func(t *testing.T) {
		t.Parallel()
		if cfg.Language != "pt-BR" {
			t.Errorf("expected Language to be 'pt-BR', got '%s'", cfg.Language)
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected defaults to validate, got %v", err)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{name: "valid config", modify: func(*Config) {}},
		{name: "empty output dir", modify: func(c *Config) { c.OutputDir = "" }, wantErr: ErrEmptyOutputDir},
		{name: "zero dpi", modify: func(c *Config) { c.DPI = 0 }, wantErr: ErrInvalidDPI},
		{name: "negative dpi", modify: func(c *Config) { c.DPI = -1 }, wantErr: ErrInvalidDPI},
		{name: "dpi above max", modify: func(c *Config) { c.DPI = MaxDPI + 1 }, wantErr: ErrInvalidDPI},
		{name: "dpi at max", modify: func(c *Config) { c.DPI = MaxDPI }},
		{
			name: "invalid language with markdown",
			modify: func(c *Config) {
				c.Markdown = true
				c.Language = "not a tag!"
			},
			wantErr: ErrInvalidLanguage,
		},
		{
			name:   "invalid language is ignored without markdown",
			modify: func(c *Config) { c.Language = "not a tag!" },
		},
		{
			name: "history without db dir",
			modify: func(c *Config) {
				c.SaveHistory = true
				c.DBDir = ""
			},
			wantErr: ErrEmptyDBDir,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := &Config{
				OutputDir: "out",
				DPI:       150,
				DBDir:     "/tmp/db",
				Language:  "pt-BR",
			}
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLanguageTag(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	tag, err := cfg.LanguageTag()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag.String() != "pt-BR" {
		t.Errorf("expected pt-BR, got %s", tag)
	}
}

// TestFileApply tests that only options present in the file override defaults.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("empty file keeps defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Markdown = true
		(&File{}).Apply(cfg)

		if cfg.OutputDir != DefaultOutputDir || cfg.DPI != DefaultDPI {
			t.Error("expected defaults to be kept")
		}
		if !cfg.Markdown {
			t.Error("an absent option must not reset Markdown")
		}
	})

	t.Run("set options override", func(t *testing.T) {
		t.Parallel()

		yes, no := true, false
		cfg := NewConfig()
		cfg.Metrics = true
		f := &File{
			OutputDir: "charts",
			DPI:       96,
			Markdown:  &yes,
			Metrics:   &no,
			History:   &yes,
			DBDir:     "/var/lib/loadgraph",
			Language:  "en",
			Log:       LogFile{Verbose: &yes, JSON: &yes},
		}
		f.Apply(cfg)

		if cfg.OutputDir != "charts" {
			t.Errorf("expected OutputDir charts, got %s", cfg.OutputDir)
		}
		if cfg.DPI != 96 {
			t.Errorf("expected DPI 96, got %d", cfg.DPI)
		}
		if !cfg.Markdown || cfg.Metrics || !cfg.SaveHistory {
			t.Error("unexpected optional output switches")
		}
		if cfg.DBDir != "/var/lib/loadgraph" {
			t.Errorf("unexpected DBDir %s", cfg.DBDir)
		}
		if cfg.Language != "en" {
			t.Errorf("unexpected Language %s", cfg.Language)
		}
		if !cfg.Verbose || !cfg.LogJSON {
			t.Error("expected log options to be applied")
		}
	})
}

// TestLoadConfigFile tests reading the YAML configuration file.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.loadgraph")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".loadgraph")
		content := `outputDir: relatorios
dpi: 200
markdown: true
history: false
language: en-US
log:
  verbose: true
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.OutputDir != "relatorios" {
			t.Errorf("expected outputDir relatorios, got %q", cf.OutputDir)
		}
		if cf.DPI != 200 {
			t.Errorf("expected dpi 200, got %d", cf.DPI)
		}
		if cf.Markdown == nil || !*cf.Markdown {
			t.Error("expected markdown to be set to true")
		}
		if cf.History == nil || *cf.History {
			t.Error("expected history to be set to false")
		}
		if cf.Metrics != nil {
			t.Error("expected metrics to be unset")
		}
		if cf.Log.Verbose == nil || !*cf.Log.Verbose {
			t.Error("expected log.verbose to be set")
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".loadgraph")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Run("returns explicit path if exists", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("dpi: 100\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})

	t.Run("finds .loadgraph in the current directory", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)

		configPath := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(configPath, []byte("dpi: 100\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		result := FindConfigFile("")
		resolved, err := filepath.EvalSymlinks(result)
		if err != nil {
			t.Fatalf("failed to resolve %q: %v", result, err)
		}
		want, err := filepath.EvalSymlinks(configPath)
		if err != nil {
			t.Fatalf("failed to resolve %q: %v", configPath, err)
		}
		if resolved != want {
			t.Errorf("expected %q, got %q", want, resolved)
		}
	})
}

// TestLoad tests the defaults-then-file configuration build.
func TestLoad(t *testing.T) {
	t.Run("explicit missing file is an error", func(t *testing.T) {
		_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("explicit file is applied", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "loadgraph.yaml")
		if err := os.WriteFile(configPath, []byte("outputDir: out\nmetrics: true\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, used, err := Load(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if used != configPath {
			t.Errorf("expected used path %q, got %q", configPath, used)
		}
		if cfg.OutputDir != "out" || !cfg.Metrics {
			t.Errorf("expected file options to be applied, got %+v", cfg)
		}
		if cfg.DPI != DefaultDPI {
			t.Errorf("expected default DPI to be kept, got %d", cfg.DPI)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	t.Run("XDGDataDir ends with the app name", func(t *testing.T) {
		t.Parallel()
		if filepath.Base(XDGDataDir()) != AppName {
			t.Errorf("unexpected XDG data dir %q", XDGDataDir())
		}
	})

	t.Run("XDGConfigDir ends with the app name", func(t *testing.T) {
		t.Parallel()
		if filepath.Base(XDGConfigDir()) != AppName {
			t.Errorf("unexpected XDG config dir %q", XDGConfigDir())
		}
	})
}

// chdir changes the working directory to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("failed to restore working directory: %v", err)
		}
	})
}
