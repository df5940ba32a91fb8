package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Abeltade/derese/internal/models"
	"github.com/xuri/excelize/v2"
)

// TimestampFormat is the string form of registration timestamps in
// both export surfaces.
const TimestampFormat = "2006-01-02 15:04:05"

var farmerExportHeader = []interface{}{"Name", "Woreda", "Kebele", "Phone", "Date/Time", "Registered By"}

// AppendFarmerExport appends one registration to the xlsx artifact at
// path, creating the file (with header) on first use. The artifact is
// side output only; the database remains the system of record.
func AppendFarmerExport(path string, farmer *models.Farmer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	var f *excelize.File
	var sheet string
	var nextRow int

	if _, err := os.Stat(path); err == nil {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return fmt.Errorf("failed to open export file: %w", err)
		}
		sheet = f.GetSheetName(0)
		rows, err := f.GetRows(sheet)
		if err != nil {
			f.Close()
			return fmt.Errorf("failed to read export file: %w", err)
		}
		nextRow = len(rows) + 1
	} else {
		f = excelize.NewFile()
		sheet = f.GetSheetName(0)
		if err := f.SetSheetRow(sheet, "A1", &farmerExportHeader); err != nil {
			f.Close()
			return fmt.Errorf("failed to write export header: %w", err)
		}
		nextRow = 2
	}
	defer f.Close()

	cell, err := excelize.CoordinatesToCellName(1, nextRow)
	if err != nil {
		return err
	}
	record := []interface{}{
		farmer.Name,
		farmer.Woreda,
		farmer.Kebele,
		farmer.Phone,
		farmer.Timestamp.Format(TimestampFormat),
		farmer.RegisteredBy,
	}
	if err := f.SetSheetRow(sheet, cell, &record); err != nil {
		return fmt.Errorf("failed to append export row: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save export file: %w", err)
	}
	return nil
}

// WriteFarmersCSV streams the farmer listing as the downloadable CSV.
func WriteFarmersCSV(w io.Writer, farmers []models.Farmer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Name", "Phone", "Woreda", "Kebele", "Registered By", "Registration Date"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, farmer := range farmers {
		record := []string{
			farmer.Name,
			farmer.Phone,
			farmer.Woreda,
			farmer.Kebele,
			farmer.RegisteredBy,
			farmer.Timestamp.Format(TimestampFormat),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
