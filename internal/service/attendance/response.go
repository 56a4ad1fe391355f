package attendance

import (
	"time"

	"github.com/cmlabs-hris/leave-analyzer/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func toRecordResponse(r attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		EmployeeName:  r.EmployeeName,
		Date:          r.Date,
		DayType:       string(r.DayType),
		InTime:        r.InTime,
		OutTime:       r.OutTime,
		WorkedHours:   round2(r.WorkedHours),
		ExpectedHours: round2(r.ExpectedHours),
		IsLeave:       r.IsLeave,
		Status:        string(r.Status),
		Reason:        r.Reason,
	}
	if !r.UploadedAt.IsZero() {
		resp.UploadedAt = r.UploadedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func toRecordResponses(records []attendance.Record) []attendance.RecordResponse {
	out := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toRecordResponse(r))
	}
	return out
}

func toSummaryResponse(s attendance.Summary) attendance.SummaryResponse {
	return attendance.SummaryResponse{
		EmployeeName:  s.EmployeeName,
		TotalExpected: round2(s.TotalExpectedHours),
		TotalWorked:   fixed2(s.TotalWorkedHours),
		Leaves:        s.LeaveCount,
		WorkingDays:   s.WorkingDays,
		Productivity:  fixed2(s.Productivity()),
	}
}

// BatchReport renders a classified batch the way an upload reports it.
// UploadID is left empty.
func BatchReport(b attendance.Batch) attendance.UploadResponse {
	errorRows := 0
	for _, r := range b.Records {
		if r.Status == attendance.StatusError {
			errorRows++
		}
	}
	return attendance.UploadResponse{
		Rows:    len(b.Records),
		Errors:  errorRows,
		Summary: toSummaryResponse(b.Summary),
		Details: toRecordResponses(b.Records),
	}
}
