package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"opexport/timesheet"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, rows []timesheet.ReportRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(reportHeaders); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, row := range rows {
		record := []string{
			formatDate(row.Date),
			formatHours(row.Hours),
			row.Location,
			row.Description,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
