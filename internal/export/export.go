// Package export serialises a list of student records for download.
//
// Both formats share the same fixed schema: a header row of
// types.Columns followed by one row per record, in the order given.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single worksheet written by WriteXLSX.
const SheetName = "Students"

// Format is a download format.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// ParseFormat accepts "csv" or "xlsx" in any case. An empty string means CSV.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(CSV):
		return CSV, nil
	case string(XLSX):
		return XLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q: want csv or xlsx", s)
	}
}

// ContentType is the MIME type sent with the download.
func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename is the suggested download name.
func (f Format) Filename() string {
	return "students." + string(f)
}

// Write serialises students to w in format f.
func (f Format) Write(w io.Writer, students []types.Student) error {
	if f == XLSX {
		return WriteXLSX(w, students)
	}
	return WriteCSV(w, students)
}

// WriteCSV writes UTF-8 CSV with a header row.
func WriteCSV(w io.Writer, students []types.Student) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(types.Columns); err != nil {
		return fmt.Errorf("WriteCSV: header: %w", err)
	}
	for _, s := range students {
		if err := cw.Write(s.Row()); err != nil {
			return fmt.Errorf("WriteCSV: row %s: %w", s.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("WriteCSV: flush: %w", err)
	}
	return nil
}

// WriteXLSX writes a workbook with one sheet. Every cell is stored as
// text so ids like "007" keep their leading zeros.
func WriteXLSX(w io.Writer, students []types.Student) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("WriteXLSX: rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("WriteXLSX: header style: %w", err)
	}

	if err := setRow(f, 1, types.Columns); err != nil {
		return err
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("WriteXLSX: header style: %w", err)
	}

	for i, s := range students {
		if err := setRow(f, i+2, s.Row()); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("WriteXLSX: write: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("WriteXLSX: cell name: %w", err)
		}
		if err := f.SetCellStr(SheetName, cell, v); err != nil {
			return fmt.Errorf("WriteXLSX: set %s: %w", cell, err)
		}
	}
	return nil
}
