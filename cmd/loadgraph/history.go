package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/loadgraph/internal/config"
	"github.com/nao1215/loadgraph/internal/database"
	"github.com/nao1215/loadgraph/internal/report"
)

// defaultHistoryLimit is the number of generations listed by default.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
// This command reads the generations stored with --history.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or verify stored generations",
		Long: `History lists the generations saved with 'loadgraph --history', newest
first.

With --verify it compares the figure metadata digests of the latest two
generations and fails when they differ. The charts are built from a fixed
dataset, so the digests only change when loadgraph itself changes.

Examples:
  # List the last 20 generations
  loadgraph history

  # Check that the latest two generations produced the same figures
  loadgraph history --verify

  # Output the list as JSON
  loadgraph history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of generations to list (0 lists all)")
	cmd.Flags().Bool("verify", false,
		"Compare the metadata digests of the latest two generations")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .loadgraph in current or home directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	configPath, err := stringFlag(cmd, "config")
	if err != nil {
		return err
	}
	cfg, _, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := applyCommonFlags(cmd, cfg); err != nil {
		return err
	}
	if cfg.DBDir == "" {
		return config.ErrEmptyDBDir
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	verify, err := cmd.Flags().GetBool("verify")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	newLogger(cmd, cfg).Debug("database opened", "path", db.Path())

	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	if verify {
		v, err := db.Verify(ctx)
		if err != nil && !errors.Is(err, database.ErrMetadataMismatch) {
			return err
		}
		if jsonOutput {
			if _, werr := report.NewJSONWriter(out, report.WithPrettyPrint()).WriteValue(v); werr != nil {
				return werr
			}
		} else if werr := writeVerification(out, v); werr != nil {
			return werr
		}
		return err
	}

	records, err := db.ListGenerations(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list generations: %w", err)
	}

	if jsonOutput {
		_, err := report.NewJSONWriter(out, report.WithPrettyPrint()).WriteValue(records)
		return err
	}
	return writeHistory(out, records)
}

// writeHistory prints the generation list as a text table.
func writeHistory(w io.Writer, records []database.GenerationRecord) error {
	var sb strings.Builder

	if len(records) == 0 {
		sb.WriteString("No generations found in the history database.\n")
		sb.WriteString("\nUse 'loadgraph --history' to record a generation.\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	sb.WriteString(fmt.Sprintf("Generations (%d):\n\n", len(records)))
	sb.WriteString(fmt.Sprintf("  %-6s  %-20s  %-12s  %-7s  %s\n", "ID", "Date", "Digest", "Figures", "Output"))
	sb.WriteString("  " + strings.Repeat("-", 70) + "\n")
	for _, r := range records {
		sb.WriteString(fmt.Sprintf("  %-6d  %-20s  %-12s  %-7d  %s\n",
			r.ID,
			r.GeneratedAt.Local().Format("2006-01-02 15:04:05"),
			shortDigest(r.MetadataDigest),
			r.FigureCount,
			r.OutputDir,
		))
	}
	sb.WriteString("\nUse 'loadgraph history --verify' to compare the latest two generations.\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// writeVerification prints the outcome of a digest comparison.
func writeVerification(w io.Writer, v database.Verification) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Latest   #%d  %s  %s\n",
		v.Latest.ID, v.Latest.GeneratedAt.Local().Format("2006-01-02 15:04:05"), v.Latest.MetadataDigest))
	sb.WriteString(fmt.Sprintf("Previous #%d  %s  %s\n",
		v.Previous.ID, v.Previous.GeneratedAt.Local().Format("2006-01-02 15:04:05"), v.Previous.MetadataDigest))

	if v.Match {
		sb.WriteString("\n✅ Figure metadata is identical.\n")
	} else {
		sb.WriteString("\n❌ Figure metadata differs.\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// shortDigest abbreviates a hex digest for display.
func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
