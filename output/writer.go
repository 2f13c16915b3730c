package output

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"opexport/timesheet"
)

// Column headers match the timesheet template the report is handed in as.
var reportHeaders = []string{
	"Date",
	"working hours",
	"Location",
	"Assignment number_Activity_Work content",
}

const dateLayout = "2006-01-02"

type Writer interface {
	Write(path string, rows []timesheet.ReportRow) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	case "pdf":
		return &PDFWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

// Hours keep full precision through the pipeline; the report cell shows two
// decimal places.
func roundHours(value float64) float64 {
	return math.Round(value*100) / 100
}

func formatHours(value float64) string {
	return strconv.FormatFloat(roundHours(value), 'f', -1, 64)
}

func formatDate(value time.Time) string {
	return value.Format(dateLayout)
}
