package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/loadgraph/internal/config"
)

// NewRootCmd creates the root command for loadgraph.
// Running it without a subcommand generates the charts.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loadgraph",
		Short: "Generate comparative charts from load-test results",
		Long: `loadgraph generates comparative charts from three load-test runs
(10, 500 and 1000 simultaneous users) and prints a summary table.

Four PNG images are written to the output directory:
  01-comparativo-geral.png       error rate, latency, throughput and requests
  02-escalabilidade.png          error rate and throughput versus users
  03-performance-endpoints.png   latency and errors per endpoint
  04-identificacao-gargalos.png  error rate per resource category

A manifest.json describing the images is written next to them.

Examples:
  # Write the charts to ./graficos
  loadgraph

  # Write to another directory with a Markdown report and Prometheus metrics
  loadgraph -o relatorios --markdown --metrics

  # Keep a history of generations and check they stay identical
  loadgraph --history
  loadgraph history --verify`,
		Args:          cobra.NoArgs,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerateCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines")

	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory the charts are written to (created if missing)")
	cmd.Flags().Int("dpi", config.DefaultDPI,
		"Chart image resolution in dots per inch")
	cmd.Flags().BoolP("markdown", "m", false,
		"Also write a Markdown report (relatorio.md) to the output directory")
	cmd.Flags().Bool("metrics", false,
		"Also write a Prometheus textfile (loadtest.prom) to the output directory")
	cmd.Flags().Bool("history", false,
		"Save the generation manifest to the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .loadgraph in current or home directory)")

	cmd.AddCommand(NewTableCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
