package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/okian/flightstats/internal/adapters/report"
	"github.com/okian/flightstats/internal/adapters/source"
	app "github.com/okian/flightstats/internal/app"
	"github.com/okian/flightstats/internal/config"
	"github.com/okian/flightstats/internal/generator"
	"github.com/okian/flightstats/pkg/logger"
	"github.com/okian/flightstats/pkg/metrics"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout); err != nil {
		os.Stderr.WriteString("flightstats: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

// run loads configuration, optionally generates a corpus, runs one pass and
// writes the report to stdout.
func run(ctx context.Context, stdout io.Writer) error {
	// A missing .env is normal; a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if cfg.Generate {
		if err := generate(ctx, cfg, log); err != nil {
			return err
		}
	}

	pipeline := app.New(
		source.NewDir(cfg.CorpusDir, source.WithLogger(log.Named("source"))),
		app.WithLogger(log.Named("pipeline")),
		app.WithTopN(cfg.TopN),
		app.WithIndexCapacity(cfg.GenMaxCities),
	)
	// Metrics are flushed whatever the outcome, so failed runs are visible too.
	defer flushMetrics(ctx, cfg, log)

	res, err := pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("aggregation pass: %w", err)
	}
	stats := res.Stats()

	sum, err := pipeline.Summarize(ctx, res)
	if err != nil {
		// Totals are meaningful even when nothing was clean.
		if werr := report.Totals(stdout, stats); werr != nil {
			log.Error(ctx, "write report", logger.Error(werr))
		}
		return fmt.Errorf("summarize: %w", err)
	}

	if err := report.Text(stdout, stats, sum, report.WithTopN(cfg.TopN)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.XLSXFile != "" {
		if err := report.XLSX(cfg.XLSXFile, stats, sum); err != nil {
			return fmt.Errorf("export workbook: %w", err)
		}
		log.Info(ctx, "workbook written", logger.String("path", cfg.XLSXFile))
	}
	return nil
}

func generate(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	gen, err := generator.New(generator.NewConfig(
		generator.WithRecordsPerFile(cfg.GenRecordsPerFile),
		generator.WithCityRange(cfg.GenMinCities, cfg.GenMaxCities),
		generator.WithDirtyRatio(cfg.GenDirtyRatio),
		generator.WithYearToken(cfg.GenYearToken),
		generator.WithSeed(cfg.GenSeed),
	), log.Named("generator"), nil)
	if err != nil {
		return err
	}
	if _, err := gen.Generate(ctx, cfg.CorpusDir); err != nil {
		return fmt.Errorf("generate corpus: %w", err)
	}
	return nil
}

func flushMetrics(ctx context.Context, cfg *config.Config, log logger.Logger) {
	if cfg.MetricsFile == "" {
		return
	}
	if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
		log.Error(ctx, "metrics textfile not written", logger.Error(err))
		return
	}
	log.Debug(ctx, "metrics textfile written", logger.String("path", cfg.MetricsFile))
}
