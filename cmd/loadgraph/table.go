package main

import (
	"github.com/spf13/cobra"

	"github.com/nao1215/loadgraph/internal/model"
	"github.com/nao1215/loadgraph/internal/report"
)

// NewTableCmd creates the table command.
// It prints the summary table without rendering any chart.
func NewTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the summary table of the load tests",
		Long: `Table prints the fixed-width summary of the three load-test runs:
simultaneous users, total requests, mean and maximum latency, error rate
and throughput. No files are written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := report.NewSummaryWriter(cmd.OutOrStdout()).WriteRuns(model.Runs())
			return err
		},
	}
}
