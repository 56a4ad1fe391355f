package attendance

import (
	"time"
)

type DayType string

const (
	DayTypeWeekday  DayType = "Weekday"
	DayTypeSaturday DayType = "Saturday"
	DayTypeSunday   DayType = "Sunday"
	DayTypeHoliday  DayType = "Holiday"
)

// ExpectedHours returns the scheduled working hours for the day type.
func (d DayType) ExpectedHours() float64 {
	switch d {
	case DayTypeWeekday:
		return 8.5
	case DayTypeSaturday:
		return 4.0
	default:
		return 0
	}
}

type Status string

const (
	StatusPresent  Status = "Present"
	StatusAbsent   Status = "Absent/Leave"
	StatusWeekend  Status = "Weekend"
	StatusHoliday  Status = "Holiday"
	StatusUpcoming Status = "Upcoming"
	StatusError    Status = "Error"
)

// NoTime is the display value for a missing or suppressed time.
const NoTime = "-"

// UnknownEmployee is used when no row of an upload carries a name.
const UnknownEmployee = "Unknown"

// AllEmployees labels a report that is not filtered to one employee.
const AllEmployees = "All employees"

// Cell is one column of a spreadsheet row. Value is a string, a float64 or nil.
type Cell struct {
	Label string
	Value any
}

// RawRow is a decoded spreadsheet row in column order.
type RawRow []Cell

// ResolvedFields holds the raw values of the logical fields of one row.
type ResolvedFields struct {
	EmployeeName *string
	Date         any
	InTime       any
	OutTime      any
}

// CanonicalDate is a calendar date without time of day, evaluated in UTC.
type CanonicalDate struct {
	Text    string       // YYYY-MM-DD
	Weekday time.Weekday // 0=Sunday..6=Saturday
}

// Record is one classified attendance row. WorkedHours is kept unrounded;
// rounding happens when the record leaves the service.
type Record struct {
	ID            string
	UploadID      string
	EmployeeName  string
	Date          string
	DayType       DayType
	InTime        string
	OutTime       string
	WorkedHours   float64
	ExpectedHours float64
	IsLeave       bool
	Status        Status
	UploadedAt    time.Time

	// set for Error rows only
	Reason string
}

// Summary aggregates a set of records.
type Summary struct {
	EmployeeName       string
	TotalExpectedHours float64
	TotalWorkedHours   float64
	LeaveCount         int
	WorkingDays        int
}

// Productivity returns worked/expected*100, or 0 when nothing was expected.
func (s Summary) Productivity() float64 {
	if s.TotalExpectedHours == 0 {
		return 0
	}
	return s.TotalWorkedHours / s.TotalExpectedHours * 100
}

// Batch is the result of classifying one upload.
type Batch struct {
	Records []Record
	Summary Summary
}

// Persistable returns the records that carry a valid date, in input order.
func (b Batch) Persistable() []Record {
	out := make([]Record, 0, len(b.Records))
	for _, r := range b.Records {
		if r.Status == StatusError {
			continue
		}
		out = append(out, r)
	}
	return out
}
