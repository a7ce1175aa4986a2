package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/loadgraph/internal/config"
	"github.com/nao1215/loadgraph/internal/database"
	"github.com/nao1215/loadgraph/internal/log"
	"github.com/nao1215/loadgraph/internal/model"
	"github.com/nao1215/loadgraph/internal/pipeline"
)

// runGenerateCmd executes the chart generation.
func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd, cfg)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runGenerate(ctx, cfg, logger, cmd.OutOrStdout())
}

// buildConfig creates a Config from the configuration file and the flags
// the user set explicitly.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := stringFlag(cmd, "config")
	if err != nil {
		return nil, err
	}

	cfg, used, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.ConfigFilePath = used

	flags := cmd.Flags()

	if flags.Changed("output-dir") {
		if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("dpi") {
		if cfg.DPI, err = flags.GetInt("dpi"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("markdown") {
		if cfg.Markdown, err = flags.GetBool("markdown"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("metrics") {
		if cfg.Metrics, err = flags.GetBool("metrics"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("history") {
		if cfg.SaveHistory, err = flags.GetBool("history"); err != nil {
			return nil, err
		}
	}

	if err := applyCommonFlags(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyCommonFlags applies the logging and database flags shared by the
// generation and history commands.
func applyCommonFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("verbose") {
		if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
			return err
		}
	}
	if flags.Changed("log-json") {
		if cfg.LogJSON, err = flags.GetBool("log-json"); err != nil {
			return err
		}
	}
	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return err
		}
	}
	return nil
}

// stringFlag returns the value of a string flag, or "" when the command
// does not define it.
func stringFlag(cmd *cobra.Command, name string) (string, error) {
	if cmd.Flags().Lookup(name) == nil {
		return "", nil
	}
	return cmd.Flags().GetString(name)
}

// newLogger creates the structured logger writing to the command's stderr.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return log.NewLogger(cmd.ErrOrStderr(), log.Options{
		Verbose: cfg.Verbose,
		JSON:    cfg.LogJSON,
	})
}

// runGenerate runs one full generation, printing progress to out.
func runGenerate(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	logger.Info("starting generation",
		"output", cfg.OutputDir,
		"dpi", cfg.DPI,
		"markdown", cfg.Markdown,
		"metrics", cfg.Metrics,
		"history", cfg.SaveHistory,
		"config", cfg.ConfigFilePath,
	)

	opts := []pipeline.DefaultPipelineOption{
		pipeline.WithPipelineOutput(out),
		pipeline.WithPipelineVersion(getVersion()),
	}

	if cfg.SaveHistory {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)

		opts = append(opts, pipeline.WithPipelineHistory(db))
	}

	p, err := pipeline.DefaultPipeline(cfg, []pipeline.Option{pipeline.WithLogger(logger)}, opts...)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	gen := model.NewGeneration(cfg.OutputDir)
	if err := p.Execute(ctx, gen); err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	logger.Info("generation finished",
		"output", cfg.OutputDir,
		"figures", len(gen.Manifest.Figures),
		"digest", gen.Manifest.MetadataDigest,
	)
	return nil
}
