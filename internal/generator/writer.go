package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/okian/flightstats/internal/domain/model"
	"github.com/okian/flightstats/pkg/logger"
)

// fileJob is one corpus file waiting to be encoded and written.
type fileJob struct {
	path    string
	records []model.Record
}

// writerPool encodes and writes files on a fixed number of goroutines.
// Records are drawn by the caller, so output does not depend on scheduling.
type writerPool struct {
	group *errgroup.Group
	ctx   context.Context
	jobs  chan fileJob
}

func (g *Generator) startWriters(ctx context.Context) *writerPool {
	group, gctx := errgroup.WithContext(ctx)
	p := &writerPool{
		group: group,
		ctx:   gctx,
		jobs:  make(chan fileJob, g.cfg.Writers),
	}
	for i := 0; i < g.cfg.Writers; i++ {
		group.Go(func() error {
			for job := range p.jobs {
				// Drain without writing once a sibling failed.
				if gctx.Err() != nil {
					continue
				}
				if err := writeFile(job.path, job.records); err != nil {
					return err
				}
				g.metrics.RecordGeneratedFile(len(job.records))
				g.logger.Debug(gctx, "corpus file written",
					logger.String("file", job.path),
					logger.Int("writer", i),
				)
			}
			return nil
		})
	}
	return p
}

// submit hands job to a writer. It fails once the pool context is done,
// either by cancellation or by a writer error.
func (p *writerPool) submit(job fileJob) error {
	if err := p.ctx.Err(); err != nil {
		return err
	}
	select {
	case p.jobs <- job:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// wait closes the queue and returns the first writer error.
func (p *writerPool) wait() error {
	close(p.jobs)
	return p.group.Wait()
}

func writeFile(path string, records []model.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, filePermission); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
