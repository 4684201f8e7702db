package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/lineamx/linea/internal/config"
	"github.com/lineamx/linea/internal/domain"
	"github.com/lineamx/linea/internal/ingest"
	"github.com/lineamx/linea/internal/logging"
	"github.com/lineamx/linea/internal/repo"
	"github.com/lineamx/linea/migrations"
)

type importOptions struct {
	dataDir    string
	layoutFile string
	batchSize  int
	migrate    bool
}

func newRootCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "linea-import",
		Short: "Load Lines, Points, Routes and RoutePoints into the database",
		Long: "linea-import reads the four tab-delimited source files from a data directory\n" +
			"and replaces the stored transit network with their contents in one transaction.\n" +
			"Flags override the DATA_DIR, IMPORT_LAYOUT_FILE and IMPORT_BATCH_SIZE variables.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg, opts)
			return runImport(cmd.Context(), cfg, opts.migrate, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "directory holding the source files (default $DATA_DIR or ./data)")
	cmd.Flags().StringVar(&opts.layoutFile, "layout", "", "YAML file renaming the source files (default $IMPORT_LAYOUT_FILE)")
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", 0, "route points per bulk write, 0 for one write (default $IMPORT_BATCH_SIZE or 5000)")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "apply pending schema migrations before importing")

	return cmd
}

// applyFlags copies explicitly set flags over the environment configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts importOptions) {
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = opts.dataDir
	}
	if cmd.Flags().Changed("layout") {
		cfg.ImportLayoutFile = opts.layoutFile
	}
	if cmd.Flags().Changed("batch-size") {
		cfg.ImportBatchSize = opts.batchSize
	}
}

func runImport(ctx context.Context, cfg config.Config, migrate bool, out io.Writer) error {
	logger, closer, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(logger)

	layout := ingest.DefaultLayout()
	if cfg.ImportLayoutFile != "" {
		if layout, err = ingest.LoadLayout(cfg.ImportLayoutFile); err != nil {
			return err
		}
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	if migrate {
		db := stdlib.OpenDBFromPool(pool)
		n, err := migrations.Up(ctx, db)
		_ = db.Close()
		if err != nil {
			return err
		}
		logger.Info("migrations applied", "count", n)
	}

	p := ingest.New(repo.NewTxManager(pool),
		ingest.WithLayout(layout),
		ingest.WithBatchSize(cfg.ImportBatchSize),
		ingest.WithLogger(logger),
	)

	summary, err := p.Run(ctx, cfg.DataDir)
	if err != nil {
		return err
	}

	printSummary(out, summary)
	return nil
}

func printSummary(w io.Writer, s domain.ImportSummary) {
	fmt.Fprintf(w, "import %s completed in %s\n", s.RunID, s.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "  lines:        %d\n", s.Lines)
	fmt.Fprintf(w, "  points:       %d\n", s.Points)
	fmt.Fprintf(w, "  routes:       %d (skipped %d)\n", s.Routes, s.SkippedRoutes)
	fmt.Fprintf(w, "  route points: %d (skipped %d)\n", s.RoutePoints, s.SkippedRoutePoints)
}
