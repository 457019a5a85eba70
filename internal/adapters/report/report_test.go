package report

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"

	"github.com/okian/flightstats/internal/domain/summary"
	"github.com/okian/flightstats/internal/domain/types"
)

func sample() (types.RunStats, summary.Summary) {
	stats := types.RunStats{
		RunID:        "run-1",
		Files:        1,
		TotalRecords: 4,
		DirtyRecords: 1,
		Missing:      map[string]int{"passengers_on_board": 1},
		ElapsedSecs:  1.5,
	}
	s := summary.Summary{
		Top: []types.DestinationStat{
			{Rank: 1, City: "CityX", Flights: 2, Mean: 200, Median: 200, Min: 100, Max: 300},
			{Rank: 2, City: "CityY", Flights: 1, Mean: 3600.5, Median: 3600.5, Min: 3600.5, Max: 3600.5},
		},
		MaxArrived: types.CityTotal{City: "CityX", Passengers: 30},
		MaxLeft:    types.CityTotal{City: "CityA", Passengers: 42},
	}
	return stats, s
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.n++
	return 0, errors.New("closed pipe")
}

func TestText(t *testing.T) {
	Convey("Given a finished pass", t, func() {
		stats, s := sample()

		Convey("When rendering the console listing", func() {
			var buf bytes.Buffer
			So(Text(&buf, stats, s), ShouldBeNil)
			out := buf.String()

			Convey("Then it should follow the historical layout", func() {
				want := strings.Join([]string{
					"Total records processed: 4",
					"Dirty records: 1",
					"Total run duration: 1.5 seconds",
					"",
					"Average flight durations (Top 25 destinations):",
					"CityX: 200 seconds",
					"CityY: 3600.5 seconds",
					"",
					"P95 flight durations (Top 25 destinations):",
					"CityX: 200 seconds",
					"CityY: 3600.5 seconds",
					"",
					"City with maximum passengers arrived: CityX, Passengers: 30",
					"City with maximum passengers left: CityA, Passengers: 42",
					"",
				}, "\n")
				So(out, ShouldEqual, want)
			})
		})

		Convey("When a different top size is configured", func() {
			var buf bytes.Buffer
			So(Text(&buf, stats, s, WithTopN(10)), ShouldBeNil)

			Convey("Then headings should use it", func() {
				So(buf.String(), ShouldContainSubstring, "(Top 10 destinations)")
			})
		})

		Convey("When only totals are rendered", func() {
			var buf bytes.Buffer
			So(Totals(&buf, stats), ShouldBeNil)

			Convey("Then no summary sections should appear", func() {
				So(buf.String(), ShouldStartWith, "Total records processed: 4\n")
				So(buf.String(), ShouldNotContainSubstring, "P95")
			})
		})

		Convey("When the writer fails", func() {
			w := &failingWriter{}
			err := Text(w, stats, s)

			Convey("Then the first error should be returned and writing should stop", func() {
				So(err, ShouldNotBeNil)
				So(w.n, ShouldEqual, 1)
			})
		})
	})
}

func TestXLSX(t *testing.T) {
	Convey("Given a finished pass", t, func() {
		stats, s := sample()
		path := filepath.Join(t.TempDir(), "summary.xlsx")

		Convey("When exporting the workbook", func() {
			So(XLSX(path, stats, s), ShouldBeNil)

			f, err := excelize.OpenFile(path)
			So(err, ShouldBeNil)
			defer f.Close()

			Convey("Then it should contain the three sheets", func() {
				So(f.GetSheetList(), ShouldResemble, []string{SheetRun, SheetDestinations, SheetPassengers})
			})

			Convey("Then the run sheet should hold the counters", func() {
				rows, err := f.GetRows(SheetRun)
				So(err, ShouldBeNil)
				So(rows[0], ShouldResemble, []string{"Run ID", "run-1"})
				So(rows[2], ShouldResemble, []string{"Total records", "4"})
				So(rows[3], ShouldResemble, []string{"Dirty records", "1"})
				So(rows[5], ShouldResemble, []string{"Missing passengers_on_board", "1"})
			})

			Convey("Then destinations should be listed by rank with the P95 column", func() {
				rows, err := f.GetRows(SheetDestinations)
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 3)
				So(rows[0][4], ShouldEqual, "P95 (s)")
				So(rows[1][1], ShouldEqual, "CityX")
				So(rows[1][4], ShouldEqual, "200")
				So(rows[2][1], ShouldEqual, "CityY")
			})

			Convey("Then the passenger extrema should be present", func() {
				city, err := f.GetCellValue(SheetPassengers, "B3")
				So(err, ShouldBeNil)
				So(city, ShouldEqual, "CityA")
				total, err := f.GetCellValue(SheetPassengers, "C2")
				So(err, ShouldBeNil)
				So(total, ShouldEqual, "30")
			})
		})

		Convey("When the target directory does not exist", func() {
			err := XLSX(filepath.Join(t.TempDir(), "missing", "x.xlsx"), stats, s)

			Convey("Then saving should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
