package interfaces

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"ranking-period/internal/analytics/application"
	"ranking-period/internal/observability/metrics"
)

var calendarHeader = []string{"granularity", "key", "period", "start_at", "end_at", "start", "end"}

// BuildCalendar renders rows in the given export format.
func BuildCalendar(format string, rows []application.Resolution) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case application.FormatCSV:
		data, err = BuildCalendarCSV(rows)
	case application.FormatXLSX:
		data, err = BuildCalendarXLSX(rows)
	case application.FormatPDF:
		data, err = BuildCalendarPDF(rows)
	default:
		err = fmt.Errorf("calendar export: unsupported format %q", format)
	}
	if err != nil {
		metrics.IncExport(format, metrics.ResultError)
		return nil, err
	}
	metrics.IncExport(format, metrics.ResultSuccess)
	return data, nil
}

// BuildCalendarCSV renders the calendar as CSV with a header row.
func BuildCalendarCSV(rows []application.Resolution) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(calendarHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(calendarRecord(row)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildCalendarXLSX renders a minimal XLSX with one window per row.
func BuildCalendarXLSX(rows []application.Resolution) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "calendar"
	f.SetSheetName("Sheet1", sheet)

	for i, title := range calendarHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(sheet, cell, title)
	}
	for i, row := range rows {
		line := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", line), row.Name)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", line), row.Key.String())
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", line), row.Window.Period)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", line), row.Window.StartAt)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", line), row.Window.EndAt)
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", line), row.Window.StartTime().Format(time.RFC3339))
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", line), row.Window.EndTime().Format(time.RFC3339))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildCalendarPDF renders a minimal PDF table of the calendar.
func BuildCalendarPDF(rows []application.Resolution) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Ranking Period Calendar")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	if len(rows) > 0 {
		pdf.Cell(0, 6, fmt.Sprintf("Granularity: %s", rows[0].Name))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Windows: %d", len(rows)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 6, "Key", "1", 0, "C", false, 0, "")
	pdf.CellFormat(55, 6, "Start", "1", 0, "C", false, 0, "")
	pdf.CellFormat(55, 6, "End", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.CellFormat(60, 6, row.Key.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, 6, row.Window.StartTime().Format(time.RFC3339), "1", 0, "C", false, 0, "")
		pdf.CellFormat(55, 6, row.Window.EndTime().Format(time.RFC3339), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func calendarRecord(row application.Resolution) []string {
	return []string{
		row.Name,
		row.Key.String(),
		strconv.FormatInt(row.Window.Period, 10),
		strconv.FormatInt(row.Window.StartAt, 10),
		strconv.FormatInt(row.Window.EndAt, 10),
		row.Window.StartTime().Format(time.RFC3339),
		row.Window.EndTime().Format(time.RFC3339),
	}
}
