package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jfalvarez/bookscout/internal/authors"
	systemclock "github.com/jfalvarez/bookscout/internal/clock/system"
	"github.com/jfalvarez/bookscout/internal/config"
	"github.com/jfalvarez/bookscout/internal/export"
	"github.com/jfalvarez/bookscout/internal/fetch"
	"github.com/jfalvarez/bookscout/internal/library"
	"github.com/jfalvarez/bookscout/internal/logging"
	"github.com/jfalvarez/bookscout/internal/metrics"
	"github.com/jfalvarez/bookscout/internal/pipeline"
	"github.com/jfalvarez/bookscout/internal/progress"
	"github.com/jfalvarez/bookscout/internal/progress/sinks"
	"github.com/jfalvarez/bookscout/internal/server"
)

// newExportCmd creates and configures the 'export' subcommand, which runs the
// whole fetch-and-merge pipeline once.
func newExportCmd() *cobra.Command {
	var authorsPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetches works and ratings and writes the CSV/HTML outputs",
		Long: `Reads author ids from the input file, resolves each author's
works and ratings against the Open Library API, and writes every kept work to
the configured CSV and HTML outputs, bounded by the per-author and total
limits.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.Context(), authorsPath)
		},
	}
	cmd.Flags().StringVar(&authorsPath, "authors", "authors.txt", "file with one author id per line")
	return cmd
}

func runExport(ctx context.Context, authorsPath string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // stdout sync is best-effort

	ids, err := authors.ReadIDs(authorsPath)
	if err != nil {
		return err
	}

	metrics.Init()

	client := fetch.NewClient(fetch.Config{
		UserAgent: cfg.API.UserAgent,
		Timeout:   cfg.RequestTimeout(),
	})
	pool := fetch.NewPool(client, cfg.Fetch.Concurrency, logger)
	aggregator := library.NewAggregator(client, pool, cfg.API.BaseURL, logger)

	csvSink, err := export.NewCSVExporter(cfg.Output.CSVPath)
	if err != nil {
		return err
	}
	htmlSink, err := export.OpenHTMLExporter(cfg.Output.HTMLPath)
	if err != nil {
		csvSink.Close() //nolint:errcheck // already failing
		return err
	}
	clk := systemclock.New()
	ranking := export.NewRanking(library.NewScorer(clk))

	tracker := sinks.NewTracker()
	promSink, err := sinks.NewPrometheusSink(nil)
	if err != nil {
		return err
	}
	hub := progress.NewHub(0, logger, sinks.NewLogSink(logger), promSink, tracker)

	if cfg.Server.Enabled {
		srv := server.New(cfg.Server.Port, tracker, logger)
		srv.Start()
		defer func() {
			if err := srv.Shutdown(context.Background()); err != nil {
				logger.Warn("status server shutdown", zap.Error(err))
			}
		}()
		logger.Info("status server listening", zap.Int("port", cfg.Server.Port))
	}

	p := pipeline.New(
		aggregator,
		[]library.WorkSink{csvSink, htmlSink, ranking},
		hub,
		clk,
		pipeline.Config{
			PerAuthorLimit: cfg.Limits.PerAuthor,
			GlobalLimit:    cfg.Limits.Total,
		},
		logger,
	)
	summary, runErr := p.Run(ctx, ids)

	closeErr := errors.Join(csvSink.Close(), htmlSink.Close())
	if err := hub.Close(context.Background()); err != nil {
		logger.Warn("progress hub close", zap.Error(err))
	}
	if runErr != nil {
		return runErr
	}
	if closeErr != nil {
		return closeErr
	}

	ranking.Render(os.Stdout, cfg.Output.Top)
	logger.Info("export complete",
		zap.String("run_id", summary.RunID.String()),
		zap.Int("authors", summary.Authors),
		zap.Int("works", summary.Works),
		zap.Duration("elapsed", summary.Elapsed),
		zap.String("csv", cfg.Output.CSVPath),
		zap.String("html", cfg.Output.HTMLPath))
	return nil
}
