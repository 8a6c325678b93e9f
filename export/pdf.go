package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// WritePDF renders records as a landscape A4 table. Column widths are shared
// evenly across the printable width; the header row repeats on every page.
func WritePDF(w io.Writer, title string, generated time.Time, records []Record) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(true, 15)

	var header []string
	if len(records) > 0 {
		header = records[0].Header()
	}

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := 0.0
	if len(header) > 0 {
		colW = (pageW - left - right) / float64(len(header))
	}

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range header {
			pdf.CellFormat(colW, 7, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 && len(header) > 0 {
			drawHeader()
		}
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s, %d rows", generated.Format(dateLayout), len(records)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(records) == 0 {
		pdf.CellFormat(0, 8, "No records in the selected range.", "", 1, "L", false, 0, "")
		return pdf.Output(w)
	}

	drawHeader()
	for _, rec := range records {
		byName := make(map[string]interface{}, len(rec))
		for _, f := range rec {
			byName[f.Name] = f.Value
		}
		for _, h := range header {
			pdf.CellFormat(colW, 6, tr(truncate(plain(byName[h]), colW)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.Output(w)
}

// plain is FormatValue without CSV quoting.
func plain(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return FormatValue(v)
}

// truncate keeps text inside a cell of width mm at 8pt.
func truncate(s string, width float64) string {
	limit := int(width / 1.6)
	r := []rune(s)
	if limit < 4 || len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
