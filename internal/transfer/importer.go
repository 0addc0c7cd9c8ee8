package transfer

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/FlorianMayr1208/present-picker/internal/catalog"
)

// Import reads an uploaded catalog file (.xlsx or .zip of CSVs),
// parses it and swaps the stored catalog in one transaction. Any
// parse or validation failure aborts the whole batch.
func (s *Service) Import(ctx context.Context, filename string, r io.Reader) (destCount, actCount int, err error) {
	var dests []catalog.Destination
	var acts []catalog.Activity

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		dests, acts, err = s.parseXLSX(r)
	case ".zip":
		dests, acts, err = s.parseZIP(r)
	default:
		return 0, 0, fmt.Errorf("unsupported file type %q, want .xlsx or .zip", filepath.Ext(filename))
	}
	if err != nil {
		return 0, 0, err
	}

	if err := s.catalog.ReplaceCatalog(ctx, dests, acts); err != nil {
		s.log.WithError(err).WithField("file", filename).Warn("catalog import rolled back")
		return 0, 0, err
	}

	s.log.WithFields(logrus.Fields{
		"file":         filename,
		"destinations": len(dests),
		"activities":   len(acts),
	}).Info("catalog imported")
	return len(dests), len(acts), nil
}

func (s *Service) parseXLSX(r io.Reader) ([]catalog.Destination, []catalog.Activity, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	destRows, err := f.GetRows(destinationsSheet)
	if err != nil {
		return nil, nil, fmt.Errorf("sheet %q: %w", destinationsSheet, err)
	}
	actRows, err := f.GetRows(activitiesSheet)
	if err != nil {
		return nil, nil, fmt.Errorf("sheet %q: %w", activitiesSheet, err)
	}

	return s.parseTables(destRows, actRows)
}

func (s *Service) parseZIP(r io.Reader) ([]catalog.Destination, []catalog.Activity, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, nil, fmt.Errorf("open archive: %w", err)
	}

	var destRows, actRows [][]string
	for _, entry := range zr.File {
		switch filepath.Base(entry.Name) {
		case "destinations.csv":
			destRows, err = readZippedCSV(entry)
		case "activities.csv":
			actRows, err = readZippedCSV(entry)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", entry.Name, err)
		}
	}
	if destRows == nil {
		return nil, nil, fmt.Errorf("archive is missing destinations.csv")
	}
	if actRows == nil {
		return nil, nil, fmt.Errorf("archive is missing activities.csv")
	}

	return s.parseTables(destRows, actRows)
}

func (s *Service) parseTables(destRows, actRows [][]string) ([]catalog.Destination, []catalog.Activity, error) {
	dests, err := parseDestinationRows(destRows)
	if err != nil {
		return nil, nil, err
	}
	acts, err := parseActivityRows(actRows, s.catalog.SliderMax())
	if err != nil {
		return nil, nil, err
	}
	return dests, acts, nil
}

func readZippedCSV(entry *zip.File) ([][]string, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	cr := csv.NewReader(rc)
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}
