package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"healthcli/internal/health"
)

// WorkbookSheet pairs a sheet name with its table.
type WorkbookSheet struct {
	Name  string
	Table health.Table
}

// WriteWorkbook writes the cleaned tables into one Excel workbook, one
// sheet per metric, for users who review the output in a spreadsheet.
func WriteWorkbook(path string, sheets []WorkbookSheet) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		name := sheetName(sheet.Name)
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), name)
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", name, err)
			}
		}

		if err := writeSheetRow(f, name, 1, sheet.Table.Columns); err != nil {
			return err
		}
		for r, row := range sheet.Table.Rows {
			if err := writeSheetRow(f, name, r+2, row); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheetRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of sheet %s: %w", rowNum, sheet, err)
	}
	return nil
}

// sheetName trims metric names to Excel's 31-character sheet name limit.
func sheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}
