package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"opexport/timesheet"
)

type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, rows []timesheet.ReportRow) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)

	for col, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, row := range rows {
		rowNum := i + 2
		values := []any{
			formatDate(row.Date),
			roundHours(row.Hours),
			row.Location,
			row.Description,
		}

		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}
