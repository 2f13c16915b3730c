package output

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"opexport/timesheet"
)

type PDFWriter struct{}

// Column widths in mm; the description column takes the remaining A4 width.
var pdfColumnWidths = []float64{26, 26, 28, 110}

func (w *PDFWriter) Write(path string, rows []timesheet.ReportRow) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 10)
	for col, header := range reportHeaders {
		pdf.CellFormat(pdfColumnWidths[col], 8, tr(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		values := []string{
			formatDate(row.Date),
			fmt.Sprintf("%.2f", row.Hours),
			row.Location,
			row.Description,
		}
		for col, value := range values {
			align := "C"
			if col == len(values)-1 {
				align = "L"
			}
			pdf.CellFormat(pdfColumnWidths[col], 7, tr(value), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("save pdf output %s: %w", path, err)
	}

	return nil
}
