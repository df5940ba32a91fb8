package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Abeltade/derese/internal/constants"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrMissingColumns is returned when the uploaded workbook lacks a
	// "Woreda" or "Kebele" header. The whole upload is rejected before
	// any row is processed.
	ErrMissingColumns = errors.New("workbook must contain 'Woreda' and 'Kebele' columns")
	// ErrNoSheets is returned for a workbook without any worksheet.
	ErrNoSheets = errors.New("workbook contains no sheets")
)

// HierarchyRow is one (Woreda, Kebele) pair read from an upload, in
// sheet order. Either field may be blank; the import engine skips such
// rows rather than rejecting them.
type HierarchyRow struct {
	Woreda string
	Kebele string
}

// ParseHierarchyWorkbook reads the first sheet of an xlsx upload. The
// first row is the header; the Woreda and Kebele columns are located by
// name and any other columns are ignored.
func ParseHierarchyWorkbook(r io.Reader) ([]HierarchyRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrMissingColumns
	}

	woredaCol, kebeleCol := -1, -1
	for i, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case constants.ColumnWoreda:
			woredaCol = i
		case constants.ColumnKebele:
			kebeleCol = i
		}
	}
	if woredaCol < 0 || kebeleCol < 0 {
		return nil, ErrMissingColumns
	}

	parsed := make([]HierarchyRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		parsed = append(parsed, HierarchyRow{
			Woreda: cellAt(row, woredaCol),
			Kebele: cellAt(row, kebeleCol),
		})
	}

	return parsed, nil
}

// cellAt tolerates short rows: excelize trims trailing empty cells.
func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// WriteHierarchyTemplate builds the downloadable import template: one
// sheet, Woreda and Kebele headers, three sample rows.
func WriteHierarchyTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{constants.ColumnWoreda, constants.ColumnKebele},
		{"Sample Woreda 1", "Sample Kebele A"},
		{"Sample Woreda 1", "Sample Kebele B"},
		{"Sample Woreda 2", "Sample Kebele C"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write template row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	return nil
}
