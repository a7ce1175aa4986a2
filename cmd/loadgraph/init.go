package main

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/loadgraph/internal/config"
)

//go:embed templates/loadgraph.yaml
var configTemplate embed.FS

// configTemplatePath is the template's path inside configTemplate.
const configTemplatePath = "templates/loadgraph.yaml"

// errConfigExists is returned when init would replace a file without -f.
var errConfigExists = errors.New("configuration file already exists")

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented loadgraph configuration file",
		Long: `Init writes a configuration file holding every generation option at its
default value: output directory, image resolution, Markdown report,
Prometheus textfile, history database, report language and logging.

loadgraph reads ./.loadgraph, then $XDG_CONFIG_HOME/loadgraph/config.yaml,
then ~/.loadgraph. A file written anywhere else is used with -c.

Examples:
  # Keep the settings next to the JMeter results
  loadgraph init

  # Share the settings across projects
  loadgraph init --xdg

  # Start over from the defaults
  loadgraph init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Path of the configuration file to write")
	cmd.Flags().Bool("xdg", false,
		"Write to the XDG config directory instead of --output")
	cmd.Flags().BoolP("force", "f", false,
		"Replace an existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	useXDG, err := cmd.Flags().GetBool("xdg")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if useXDG {
		path = filepath.Join(config.XDGConfigDir(), config.XDGConfigFile)
	}

	if err := writeConfigTemplate(path, force); err != nil {
		return err
	}

	cfg, _, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("written configuration does not load: %w", err)
	}
	return printConfigSummary(cmd.OutOrStdout(), path, useXDG, cfg)
}

// writeConfigTemplate writes the embedded template to path, creating its
// parent directories. An existing file is only replaced when force is set.
func writeConfigTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s (use -f to replace it)", errConfigExists, path)
		}
	}

	content, err := configTemplate.ReadFile(configTemplatePath)
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// printConfigSummary reports where the file went, the settings a plain
// `loadgraph` run will use with it, and how to point loadgraph at it.
func printConfigSummary(w io.Writer, path string, searched bool, cfg *config.Config) error {
	onOff := map[bool]string{true: "on", false: "off"}

	lines := []string{
		fmt.Sprintf("Wrote %s", path),
		"",
		fmt.Sprintf("  charts      %s/ at %d dpi", cfg.OutputDir, cfg.DPI),
		fmt.Sprintf("  markdown    %s", onOff[cfg.Markdown]),
		fmt.Sprintf("  metrics     %s", onOff[cfg.Metrics]),
		fmt.Sprintf("  history     %s", onOff[cfg.SaveHistory]),
		fmt.Sprintf("  language    %s", cfg.Language),
		"",
	}
	if searched || path == config.DefaultConfigFile {
		lines = append(lines, "Run 'loadgraph' to generate the charts with these settings.")
	} else {
		lines = append(lines, fmt.Sprintf("Run 'loadgraph -c %s' to generate the charts with these settings.", path))
	}

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
