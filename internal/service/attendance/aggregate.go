package attendance

import (
	"github.com/cmlabs-hris/leave-analyzer/internal/domain/attendance"
)

// Accumulator sums hours and leave counts over records. Error records are ignored.
type Accumulator struct {
	expected    float64
	worked      float64
	leaves      int
	workingDays int
}

func (a *Accumulator) Add(rec attendance.Record) {
	if rec.Status == attendance.StatusError {
		return
	}
	a.expected += rec.ExpectedHours
	a.worked += rec.WorkedHours
	if rec.IsLeave {
		a.leaves++
	}
	if rec.ExpectedHours > 0 {
		a.workingDays++
	}
}

// Summary returns the totals without an employee name.
func (a Accumulator) Summary() attendance.Summary {
	return attendance.Summary{
		TotalExpectedHours: a.expected,
		TotalWorkedHours:   a.worked,
		LeaveCount:         a.leaves,
		WorkingDays:        a.workingDays,
	}
}

// Summarize computes the summary of stored records. The employee name is taken
// from the first record.
func Summarize(records []attendance.Record) attendance.Summary {
	var acc Accumulator
	for _, r := range records {
		acc.Add(r)
	}

	summary := acc.Summary()
	summary.EmployeeName = attendance.UnknownEmployee
	if len(records) > 0 && records[0].EmployeeName != "" {
		summary.EmployeeName = records[0].EmployeeName
	}
	return summary
}
