package spreadsheet

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-analyzer/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	dailySheet   = "Daily"
)

var dailyHeader = []interface{}{
	"Employee", "Date", "Day Type", "In Time", "Out Time", "Worked Hours", "Expected Hours", "Status",
}

// ReportWriter renders a month of attendance as an xlsx workbook.
type ReportWriter struct {
	now func() time.Time
}

func NewReportWriter() *ReportWriter {
	return &ReportWriter{now: time.Now}
}

// RenderMonthly writes a summary sheet and a daily sheet and returns the
// workbook bytes.
func (w *ReportWriter) RenderMonthly(month string, summary attendance.Summary, records []attendance.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(dailySheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	if err := w.writeSummary(f, headerStyle, month, summary); err != nil {
		return nil, err
	}
	if err := writeDaily(f, headerStyle, records); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *ReportWriter) writeSummary(f *excelize.File, headerStyle int, month string, summary attendance.Summary) error {
	rows := [][]interface{}{
		{"ATTENDANCE REPORT"},
		{},
		{"Employee", summary.EmployeeName},
		{"Month", month},
		{},
		{"Metric", "Value"},
		{"Working Days", summary.WorkingDays},
		{"Expected Hours", fixed2(summary.TotalExpectedHours)},
		{"Worked Hours", fixed2(summary.TotalWorkedHours)},
		{"Leaves", summary.LeaveCount},
		{"Productivity (%)", fixed2(summary.Productivity())},
		{},
		{"Generated at", w.now().UTC().Format(time.RFC3339)},
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}

	if err := f.MergeCell(summarySheet, "A1", "B1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("style title: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, "A6", "B6", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 25); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "B", "B", 20)
}

func writeDaily(f *excelize.File, headerStyle int, records []attendance.Record) error {
	header := dailyHeader
	if err := f.SetSheetRow(dailySheet, "A1", &header); err != nil {
		return fmt.Errorf("write daily header: %w", err)
	}
	if err := f.SetCellStyle(dailySheet, "A1", "H1", headerStyle); err != nil {
		return fmt.Errorf("style daily header: %w", err)
	}

	for i, r := range records {
		row := []interface{}{
			r.EmployeeName,
			r.Date,
			string(r.DayType),
			r.InTime,
			r.OutTime,
			fixed2(r.WorkedHours),
			fixed2(r.ExpectedHours),
			string(r.Status),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(dailySheet, cell, &row); err != nil {
			return fmt.Errorf("write daily row %d: %w", i+2, err)
		}
	}

	return f.SetColWidth(dailySheet, "A", "H", 16)
}

func fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
