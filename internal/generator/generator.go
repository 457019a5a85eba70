// Package generator writes synthetic flight corpora in the layout the
// source package reads.
package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/flightstats/internal/adapters/source"
	"github.com/okian/flightstats/internal/domain/model"
	"github.com/okian/flightstats/pkg/logger"
	"github.com/okian/flightstats/pkg/metrics"
)

// ErrInvalidConfig is returned for a Config that cannot produce a corpus.
var ErrInvalidConfig = errors.New("invalid generator config")

// Manifest describes a generated corpus.
type Manifest struct {
	Dir     string
	Cities  []string
	Files   int
	Records int
	// Nulls counts records written with a null passenger count.
	Nulls int
	Seed  int64
}

// Generator writes corpus files from an explicit random source.
type Generator struct {
	cfg     Config
	rng     *rand.Rand
	logger  logger.Logger
	metrics *metrics.Manager
}

// New creates a Generator. It fails when the configuration is out of range.
func New(cfg Config, l logger.Logger, m *metrics.Manager) (*Generator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Writers < 1 {
		cfg.Writers = runtime.NumCPU()
	}
	if l == nil {
		l = logger.Nop()
	}
	if m == nil {
		m = metrics.Default()
	}
	seed := uint64(cfg.Seed) //nolint:gosec // sign is irrelevant for a seed
	return &Generator{
		cfg:     cfg,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), //nolint:gosec // synthetic data
		logger:  l,
		metrics: m,
	}, nil
}

func (c Config) validate() error {
	switch {
	case c.RecordsPerFile < 0:
		return fmt.Errorf("%w: records per file %d", ErrInvalidConfig, c.RecordsPerFile)
	case c.MinCities < 1 || c.MaxCities < c.MinCities:
		return fmt.Errorf("%w: city range [%d, %d]", ErrInvalidConfig, c.MinCities, c.MaxCities)
	case c.DirtyRatio < 0 || c.DirtyRatio > 1:
		return fmt.Errorf("%w: dirty ratio %v", ErrInvalidConfig, c.DirtyRatio)
	case c.YearToken == "":
		return fmt.Errorf("%w: empty year token", ErrInvalidConfig)
	}
	return nil
}

// Generate writes one file per month and city into dir, creating it when
// needed. Cities are named City1..CityK with K drawn from the configured
// range. On error the returned Manifest counts the files queued so far.
func (g *Generator) Generate(ctx context.Context, dir string) (Manifest, error) {
	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return Manifest{}, fmt.Errorf("create corpus dir: %w", err)
	}

	k := g.cfg.MinCities + g.rng.IntN(g.cfg.MaxCities-g.cfg.MinCities+1)
	cities := make([]string, k)
	for i := range cities {
		cities[i] = "City" + strconv.Itoa(i+1)
	}
	man := Manifest{Dir: dir, Cities: cities, Seed: g.cfg.Seed}

	g.logger.Info(ctx, "generating corpus",
		logger.String("dir", dir),
		logger.Int("cities", k),
		logger.Int("records_per_file", g.cfg.RecordsPerFile),
		logger.Int64("seed", g.cfg.Seed),
	)

	pool := g.startWriters(ctx)
	var submitErr error
produce:
	for month := 1; month <= months; month++ {
		for _, city := range cities {
			records, nulls := g.flights(month, city, cities)
			name := source.FileName(month, g.cfg.YearToken, city)
			if submitErr = pool.submit(fileJob{path: filepath.Join(dir, name), records: records}); submitErr != nil {
				break produce
			}
			man.Files++
			man.Records += len(records)
			man.Nulls += nulls
		}
	}
	if err := pool.wait(); err != nil {
		return man, err
	}
	if submitErr != nil {
		return man, fmt.Errorf("generation cancelled: %w", submitErr)
	}

	g.logger.Info(ctx, "corpus generated",
		logger.Int("files", man.Files),
		logger.Int("records", man.Records),
		logger.Int("nulls", man.Nulls),
	)
	return man, nil
}

func (g *Generator) flights(month int, origin string, cities []string) ([]model.Record, int) {
	records := make([]model.Record, g.cfg.RecordsPerFile)
	nulls := 0
	for i := range records {
		date := fmt.Sprintf("%d/%02d/%s", 1+g.rng.IntN(maxDay), month, g.cfg.YearToken)
		r := model.Record{
			Date:               &date,
			OriginCity:         model.Ptr(origin),
			DestinationCity:    model.Ptr(cities[g.rng.IntN(len(cities))]),
			FlightDurationSecs: model.Ptr(minDurationSecs + g.rng.Int64N(maxDurationSecs-minDurationSecs+1)),
		}
		if g.rng.Float64() >= g.cfg.DirtyRatio {
			r.PassengersOnBoard = model.Ptr(g.rng.Int64N(maxPassengers + 1))
		} else {
			nulls++
		}
		records[i] = r
	}
	return records, nulls
}
