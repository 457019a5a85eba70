package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/flightstats/internal/generator"
	"github.com/okian/flightstats/pkg/logger"
	"github.com/okian/flightstats/pkg/metrics"
)

func main() {
	var (
		dir         = flag.String("dir", "/tmp/flights", "Output directory for the corpus")
		records     = flag.Int("records", generator.DefaultRecordsPerFile, "Records per file")
		minCities   = flag.Int("min-cities", generator.DefaultMinCities, "Lower bound of the city count")
		maxCities   = flag.Int("max-cities", generator.DefaultMaxCities, "Upper bound of the city count")
		dirtyRatio  = flag.Float64("dirty", generator.DefaultDirtyRatio, "Probability of a null passenger count")
		yearToken   = flag.String("year", generator.DefaultYearToken, "Year token used in file names and dates")
		seed        = flag.Int64("seed", 0, "Random seed (0 picks one from the clock)")
		metricsFile = flag.String("metrics", "", "Write a Prometheus textfile here when done")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gen, err := generator.New(generator.NewConfig(
		generator.WithRecordsPerFile(*records),
		generator.WithCityRange(*minCities, *maxCities),
		generator.WithDirtyRatio(*dirtyRatio),
		generator.WithYearToken(*yearToken),
		generator.WithSeed(*seed),
	), log, nil)
	if err != nil {
		os.Stderr.WriteString("invalid options: " + err.Error() + "\n")
		stop()
		os.Exit(2) //nolint:gocritic // stop already called
	}

	man, err := gen.Generate(ctx, *dir)
	if err != nil {
		log.Error(ctx, "generation failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
	log.Info(ctx, "done",
		logger.String("dir", man.Dir),
		logger.Int("files", man.Files),
		logger.Int("records", man.Records),
		logger.Int64("seed", man.Seed),
	)

	if *metricsFile != "" {
		if err := metrics.WriteTextfile(*metricsFile); err != nil {
			log.Error(ctx, "metrics textfile not written", logger.Error(err))
		}
	}
}
