package transfer

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	destinationsSheet = "Destinations"
	activitiesSheet   = "Activities"
)

// ExportXLSX writes the full catalog as a two-sheet workbook.
func (s *Service) ExportXLSX(ctx context.Context, w io.Writer) error {
	dests, acts, err := s.catalog.ExportCatalog(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", destinationsSheet)
	if _, err := f.NewSheet(activitiesSheet); err != nil {
		return err
	}

	if err := writeSheet(f, destinationsSheet, destinationRows(dests)); err != nil {
		return err
	}
	if err := writeSheet(f, activitiesSheet, activityRows(acts)); err != nil {
		return err
	}

	return f.Write(w)
}

// ExportZIP bundles destinations.csv and activities.csv into one
// archive.
func (s *Service) ExportZIP(ctx context.Context, w io.Writer) error {
	dests, acts, err := s.catalog.ExportCatalog(ctx)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)

	if err := writeZippedCSV(zw, "destinations.csv", destinationRows(dests)); err != nil {
		return err
	}
	if err := writeZippedCSV(zw, "activities.csv", activityRows(acts)); err != nil {
		return err
	}

	return zw.Close()
}

// ExportActivitiesCSV writes the flat activities table alone, for
// callers that only want the one file.
func (s *Service) ExportActivitiesCSV(ctx context.Context, w io.Writer) error {
	_, acts, err := s.catalog.ExportCatalog(ctx)
	if err != nil {
		return err
	}
	return writeCSV(w, activityRows(acts))
}

func writeSheet(f *excelize.File, sheet string, rows [][]string) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeZippedCSV(zw *zip.Writer, name string, rows [][]string) error {
	entry, err := zw.Create(name)
	if err != nil {
		return err
	}
	return writeCSV(entry, rows)
}
