package report

import (
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/okian/flightstats/internal/domain/summary"
	"github.com/okian/flightstats/internal/domain/types"
)

// Sheet names of the exported workbook.
const (
	SheetRun          = "Run"
	SheetDestinations = "Destinations"
	SheetPassengers   = "Passengers"
)

var destinationHeader = []any{"Rank", "City", "Flights", "Mean (s)", "P95 (s)", "Min (s)", "Max (s)"} //nolint:gochecknoglobals // fixed header

// XLSX writes the run counters, the ranked destinations and the passenger
// extrema to a workbook at path.
func XLSX(path string, stats types.RunStats, s summary.Summary) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetRun); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetDestinations, SheetPassengers} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	rows := [][]any{
		{"Run ID", stats.RunID},
		{"Files", stats.Files},
		{"Total records", stats.TotalRecords},
		{"Dirty records", stats.DirtyRecords},
		{"Run duration (s)", stats.ElapsedSecs},
	}
	fields := make([]string, 0, len(stats.Missing))
	for field := range stats.Missing {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	for _, field := range fields {
		rows = append(rows, []any{"Missing " + field, stats.Missing[field]})
	}
	if err := writeRows(f, SheetRun, rows); err != nil {
		return err
	}

	rows = [][]any{destinationHeader}
	for _, d := range s.Top {
		rows = append(rows, []any{d.Rank, d.City, d.Flights, d.Mean, d.Median, d.Min, d.Max})
	}
	if err := writeRows(f, SheetDestinations, rows); err != nil {
		return err
	}

	rows = [][]any{
		{"Direction", "City", "Passengers"},
		{"arrived", s.MaxArrived.City, s.MaxArrived.Passengers},
		{"left", s.MaxLeft.City, s.MaxLeft.Passengers},
	}
	if err := writeRows(f, SheetPassengers, rows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("%s cell: %w", sheet, err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("%s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
