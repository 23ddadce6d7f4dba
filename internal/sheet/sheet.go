// Package sheet reads the company register spreadsheet and writes it back out
// with the resolved website column.
package sheet

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"sitefinder/internal/domain"
)

// ErrLayout is returned when the input does not have the register layout.
var ErrLayout = errors.New("unexpected spreadsheet layout")

// inputWidth is the kept columns plus the trailing placeholder.
var inputWidth = len(domain.Columns) + 1

// Read loads records from an .xlsx or .csv file.
func Read(path string) ([]domain.CompanyRecord, error) {
	rows, err := ReadRows(path)
	if err != nil {
		return nil, err
	}

	recs, err := parseRows(rows)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return recs, nil
}

// ReadRows returns the raw cell text of the first sheet. xlsx rows come back
// without trailing empty cells.
func ReadRows(path string) ([][]string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("read %s: unsupported extension %q", path, ext)
	}
}

// Write saves records with the Official Website column appended, in slice order.
func Write(path string, records []domain.CompanyRecord) error {
	rows := outputRows(records)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return writeXLSX(path, rows)
	case ".csv":
		return writeCSV(path, rows)
	default:
		return fmt.Errorf("write %s: unsupported extension %q", path, ext)
	}
}

// parseRows skips the title row, replaces the header positionally and drops
// the placeholder column.
func parseRows(rows [][]string) ([]domain.CompanyRecord, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: want a title row and a header row, got %d rows", ErrLayout, len(rows))
	}

	header := trimTrailing(rows[1])
	if len(header) < len(domain.Columns) || len(header) > inputWidth {
		return nil, fmt.Errorf("%w: header has %d columns, want %d or %d",
			ErrLayout, len(header), len(domain.Columns), inputWidth)
	}

	var out []domain.CompanyRecord
	for i, row := range rows[2:] {
		row = trimTrailing(row)
		if len(row) == 0 {
			continue
		}
		if len(row) > inputWidth {
			// i+3: 1-based, after title and header
			return nil, fmt.Errorf("%w: row %d has %d columns, want at most %d",
				ErrLayout, i+3, len(row), inputWidth)
		}

		fields := make([]string, len(domain.Columns))
		copy(fields, row)
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}
		out = append(out, domain.CompanyRecord{Index: len(out), Fields: fields})
	}
	return out, nil
}

func outputRows(records []domain.CompanyRecord) [][]string {
	header := append(append([]string{}, domain.Columns...), domain.ColWebsite)
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, header)
	for _, r := range records {
		row := make([]string, len(header))
		copy(row, r.Fields)
		row[len(header)-1] = r.Website
		rows = append(rows, row)
	}
	return rows
}

func trimTrailing(row []string) []string {
	n := len(row)
	for n > 0 && strings.TrimSpace(row[n-1]) == "" {
		n--
	}
	return row[:n]
}
