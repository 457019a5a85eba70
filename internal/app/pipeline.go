// Package service drives one aggregation pass over the flight corpus and
// hands the resulting indices to the summarizer.
package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/okian/flightstats/internal/adapters/repository"
	"github.com/okian/flightstats/internal/adapters/source"
	"github.com/okian/flightstats/internal/domain/aggregate"
	"github.com/okian/flightstats/internal/domain/model"
	"github.com/okian/flightstats/internal/domain/summary"
	"github.com/okian/flightstats/internal/domain/types"
	"github.com/okian/flightstats/internal/domain/validate"
	"github.com/okian/flightstats/pkg/logger"
	"github.com/okian/flightstats/pkg/metrics"
)

// Source produces the corpus as a lazy sequence of batches. Iteration ends
// after the first error.
type Source interface {
	Batches(ctx context.Context) iter.Seq2[model.Batch, error]
}

// Result is the outcome of one pass. The indices are frozen.
type Result struct {
	RunID        string
	Files        int
	TotalRecords int
	DirtyRecords int
	// MissingByField counts dirty records per absent field. A record missing
	// two fields is counted under both.
	MissingByField map[string]int
	Elapsed        time.Duration

	Durations *repository.DurationIndex
	Arrived   *repository.PassengerIndex
	Left      *repository.PassengerIndex
}

// CleanRecords returns the number of records folded into the indices.
func (r Result) CleanRecords() int { return r.TotalRecords - r.DirtyRecords }

// Stats returns the counters of the pass for reporting.
func (r Result) Stats() types.RunStats {
	return types.RunStats{
		RunID:        r.RunID,
		Files:        r.Files,
		TotalRecords: r.TotalRecords,
		DirtyRecords: r.DirtyRecords,
		Missing:      maps.Clone(r.MissingByField),
		ElapsedSecs:  r.Elapsed.Seconds(),
	}
}

// Pipeline runs source, validation and aggregation in a single goroutine.
type Pipeline struct {
	source   Source
	logger   logger.Logger
	metrics  *metrics.Manager
	capacity int
	topN     int
	now      func() time.Time
}

// New constructs a Pipeline reading from src.
func New(src Source, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:  src,
		metrics: metrics.Default(),
		topN:    summary.DefaultTopN,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Nop()
	}
	return p
}

// Run performs one full pass. Batches and records are processed in source
// order. A source error aborts the pass and is returned as is, so a
// *source.ParseError stays matchable with errors.As.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	res := Result{
		RunID:          uuid.NewString(),
		MissingByField: make(map[string]int),
	}
	log := p.logger
	log.Info(ctx, "aggregation pass starting", logger.String("run_id", res.RunID))

	var opts []repository.Option
	if p.capacity > 0 {
		opts = append(opts, repository.WithCapacity(p.capacity))
	}
	agg := aggregate.New(opts...)

	start := p.now()
	for batch, err := range p.source.Batches(ctx) {
		if err != nil {
			if errors.Is(err, source.ErrParse) {
				p.metrics.RecordParseFailure()
			}
			log.Error(ctx, "aggregation pass aborted",
				logger.String("run_id", res.RunID),
				logger.Int("files", res.Files),
				logger.Error(err),
			)
			return Result{}, err
		}

		if err := p.fold(ctx, agg, batch, &res); err != nil {
			return Result{}, err
		}
		res.Files++
		p.metrics.ObserveBatch(len(batch.Records))
	}
	res.Durations, res.Arrived, res.Left = agg.Close()
	res.Elapsed = p.now().Sub(start)

	p.metrics.ObservePass(res.Elapsed, res.Durations.Len(), res.Left.Len())
	log.Info(ctx, "aggregation pass completed",
		logger.String("run_id", res.RunID),
		logger.Int("files", res.Files),
		logger.Int("total_records", res.TotalRecords),
		logger.Int("dirty_records", res.DirtyRecords),
		logger.Int("destinations", res.Durations.Len()),
		logger.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

func (p *Pipeline) fold(ctx context.Context, agg *aggregate.Aggregator, batch model.Batch, res *Result) error {
	for i, rec := range batch.Records {
		res.TotalRecords++

		clean, err := validate.Classify(rec)
		if err != nil {
			var missing *validate.FieldMissingError
			if !errors.As(err, &missing) {
				return fmt.Errorf("classify %s record %d: %w", batch.Path, i, err)
			}
			res.DirtyRecords++
			for _, f := range missing.Fields {
				res.MissingByField[f]++
			}
			p.metrics.RecordDirty(missing.Fields)
			p.logger.Debug(ctx, "dirty record skipped",
				logger.String("file", batch.Path),
				logger.Int("index", i),
				logger.Any("missing", missing.Fields),
			)
			continue
		}

		if err := agg.Fold(clean); err != nil {
			return fmt.Errorf("fold %s record %d: %w", batch.Path, i, err)
		}
		p.metrics.RecordClean()
	}
	return nil
}

// Summarize derives the ranked destination list and passenger extrema from
// a finished pass. Its compute time is not part of Result.Elapsed.
func (p *Pipeline) Summarize(ctx context.Context, res Result) (summary.Summary, error) {
	start := p.now()
	s, err := summary.Summarize(res.Durations, res.Arrived, res.Left, summary.WithTopN(p.topN))
	p.metrics.ObserveSummarize(p.now().Sub(start))
	if err != nil {
		p.logger.Warn(ctx, "summary unavailable", logger.String("run_id", res.RunID), logger.Error(err))
		return summary.Summary{}, err
	}
	return s, nil
}
