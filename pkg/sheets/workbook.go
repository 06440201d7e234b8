package sheets

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// appendToWorkbook ensures the responses worksheet exists with its header
// row, then appends the data rows after the last used row.
func appendToWorkbook(f *excelize.File, header []string, rows [][]string) error {
	idx, err := f.GetSheetIndex(WorksheetName)
	if err != nil {
		return err
	}
	if idx == -1 {
		if _, err := f.NewSheet(WorksheetName); err != nil {
			return err
		}
		if err := f.SetSheetRow(WorksheetName, "A1", &header); err != nil {
			return err
		}
		if err := styleHeader(f, len(header)); err != nil {
			return err
		}
		// Drop the default sheet so the workbook only carries responses.
		if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
			_ = f.DeleteSheet("Sheet1")
		}
	}

	existing, err := f.GetRows(WorksheetName)
	if err != nil {
		return err
	}
	next := len(existing) + 1
	for _, row := range rows {
		cells := row
		if err := f.SetSheetRow(WorksheetName, fmt.Sprintf("A%d", next), &cells); err != nil {
			return err
		}
		next++
	}
	return nil
}

func styleHeader(f *excelize.File, cols int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(WorksheetName, "A1", last, style)
}

// workbookRows reads the responses worksheet, header included. A workbook
// without the worksheet yields nil.
func workbookRows(f *excelize.File) ([][]string, error) {
	idx, err := f.GetSheetIndex(WorksheetName)
	if err != nil || idx == -1 {
		return nil, err
	}
	return f.GetRows(WorksheetName)
}
