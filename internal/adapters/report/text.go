// Package report renders the outcome of a pass for people: a console
// listing and an XLSX workbook.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/okian/flightstats/internal/domain/summary"
	"github.com/okian/flightstats/internal/domain/types"
)

// Option applies a configuration option to the renderers.
type Option func(*options)

type options struct {
	topN int
}

// WithTopN sets the N printed in section headings.
func WithTopN(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.topN = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{topN: summary.DefaultTopN}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// errWriter keeps the first write error so the listing reads top to bottom.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

// Totals writes the record counts and the pass duration.
func Totals(w io.Writer, stats types.RunStats) error {
	ew := &errWriter{w: w}
	writeTotals(ew, stats)
	return ew.err
}

// Text writes the full console listing: totals, average and "P95" durations
// of the top destinations, and the passenger extrema.
func Text(w io.Writer, stats types.RunStats, s summary.Summary, opts ...Option) error {
	o := buildOptions(opts)
	ew := &errWriter{w: w}

	writeTotals(ew, stats)

	ew.printf("\nAverage flight durations (Top %d destinations):\n", o.topN)
	for _, d := range s.Top {
		ew.printf("%s: %s seconds\n", d.City, formatFloat(d.Mean))
	}

	// Median values under the historical P95 heading.
	ew.printf("\nP95 flight durations (Top %d destinations):\n", o.topN)
	for _, d := range s.Top {
		ew.printf("%s: %s seconds\n", d.City, formatFloat(d.Median))
	}

	ew.printf("\nCity with maximum passengers arrived: %s, Passengers: %d\n", s.MaxArrived.City, s.MaxArrived.Passengers)
	ew.printf("City with maximum passengers left: %s, Passengers: %d\n", s.MaxLeft.City, s.MaxLeft.Passengers)
	return ew.err
}

func writeTotals(ew *errWriter, stats types.RunStats) {
	ew.printf("Total records processed: %d\n", stats.TotalRecords)
	ew.printf("Dirty records: %d\n", stats.DirtyRecords)
	ew.printf("Total run duration: %s seconds\n", formatFloat(stats.ElapsedSecs))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
