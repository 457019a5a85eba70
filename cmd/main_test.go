package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"

	"github.com/okian/flightstats/internal/adapters/report"
	"github.com/okian/flightstats/internal/adapters/source"
	"github.com/okian/flightstats/internal/config"
	"github.com/okian/flightstats/internal/domain/summary"
)

func TestRunWithGeneratedCorpus(t *testing.T) {
	convey.Convey("Given configuration that generates a small corpus", t, func() {
		dir := t.TempDir()
		corpus := filepath.Join(dir, "flights")
		metricsFile := filepath.Join(dir, "flightstats.prom")
		xlsxFile := filepath.Join(dir, "summary.xlsx")

		t.Setenv("FLIGHTSTATS_CORPUS_DIR", corpus)
		t.Setenv("FLIGHTSTATS_GENERATE", "true")
		t.Setenv("FLIGHTSTATS_GEN_RECORDS_PER_FILE", "10")
		t.Setenv("FLIGHTSTATS_GEN_MIN_CITIES", "3")
		t.Setenv("FLIGHTSTATS_GEN_MAX_CITIES", "3")
		t.Setenv("FLIGHTSTATS_GEN_SEED", "11")
		t.Setenv("FLIGHTSTATS_METRICS_FILE", metricsFile)
		t.Setenv("FLIGHTSTATS_XLSX_FILE", xlsxFile)
		t.Setenv("FLIGHTSTATS_TOP_N", "2")

		convey.Convey("When the job runs", func() {
			var out bytes.Buffer
			err := run(context.Background(), &out)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the report should cover all generated records", func() {
				convey.So(out.String(), convey.ShouldStartWith, "Total records processed: 360\n")
				convey.So(out.String(), convey.ShouldContainSubstring, "P95 flight durations (Top 2 destinations):")
				convey.So(out.String(), convey.ShouldContainSubstring, "City with maximum passengers left: ")
			})

			convey.Convey("Then the corpus, metrics and workbook should be on disk", func() {
				files, ferr := source.NewDir(corpus).Files()
				convey.So(ferr, convey.ShouldBeNil)
				convey.So(files, convey.ShouldHaveLength, 36)

				prom, rerr := os.ReadFile(metricsFile)
				convey.So(rerr, convey.ShouldBeNil)
				convey.So(string(prom), convey.ShouldContainSubstring, "flightstats_pipeline_records_total")

				wb, oerr := excelize.OpenFile(xlsxFile)
				convey.So(oerr, convey.ShouldBeNil)
				defer wb.Close()
				rows, gerr := wb.GetRows(report.SheetDestinations)
				convey.So(gerr, convey.ShouldBeNil)
				convey.So(rows, convey.ShouldHaveLength, 3)
			})
		})
	})
}

func TestRunFailures(t *testing.T) {
	convey.Convey("Given an empty corpus directory", t, func() {
		t.Setenv("FLIGHTSTATS_CORPUS_DIR", t.TempDir())

		convey.Convey("Then the totals should print and the summary should fail", func() {
			var out bytes.Buffer
			err := run(context.Background(), &out)
			convey.So(errors.Is(err, summary.ErrEmptyIndex), convey.ShouldBeTrue)
			convey.So(out.String(), convey.ShouldStartWith, "Total records processed: 0\nDirty records: 0\n")
			convey.So(out.String(), convey.ShouldNotContainSubstring, "Average")
		})
	})

	convey.Convey("Given a corpus with a malformed file", t, func() {
		dir := t.TempDir()
		convey.So(os.WriteFile(filepath.Join(dir, "01-YY-CityA-flights.json"), []byte("[{"), 0o600), convey.ShouldBeNil)
		t.Setenv("FLIGHTSTATS_CORPUS_DIR", dir)

		convey.Convey("Then the run should abort with a parse error", func() {
			var out bytes.Buffer
			err := run(context.Background(), &out)
			var pe *source.ParseError
			convey.So(errors.As(err, &pe), convey.ShouldBeTrue)
			convey.So(out.Len(), convey.ShouldEqual, 0)
		})
	})

	convey.Convey("Given an invalid configuration", t, func() {
		t.Setenv("FLIGHTSTATS_TOP_N", "0")

		convey.Convey("Then run should report it before touching the corpus", func() {
			err := run(context.Background(), &bytes.Buffer{})
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
