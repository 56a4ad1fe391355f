package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-analyzer/internal/domain/attendance"
)

// HolidayCalendar reports whether a YYYY-MM-DD date is a holiday.
type HolidayCalendar interface {
	IsHoliday(date string) bool
}

// Classifier turns raw spreadsheet rows into attendance records. It keeps no
// state between calls and is safe for concurrent use.
type Classifier struct {
	holidays HolidayCalendar
	now      func() time.Time
}

func NewClassifier(holidays HolidayCalendar, now func() time.Time) *Classifier {
	if now == nil {
		now = time.Now
	}
	return &Classifier{
		holidays: holidays,
		now:      now,
	}
}

// ClassifyDay returns the day type of a valid date. Holiday is checked first,
// then Sunday, then Saturday.
func (c *Classifier) ClassifyDay(date attendance.CanonicalDate) attendance.DayType {
	switch {
	case c.holidays != nil && c.holidays.IsHoliday(date.Text):
		return attendance.DayTypeHoliday
	case date.Weekday == time.Sunday:
		return attendance.DayTypeSunday
	case date.Weekday == time.Saturday:
		return attendance.DayTypeSaturday
	default:
		return attendance.DayTypeWeekday
	}
}

// Today returns the current UTC date as YYYY-MM-DD.
func (c *Classifier) Today() string {
	return canonicalDate(c.now()).Text
}

// Process classifies rows in order and folds them into a batch summary.
func (c *Classifier) Process(rows []attendance.RawRow) attendance.Batch {
	today := c.Today()
	name := attendance.UnknownEmployee

	var acc Accumulator
	records := make([]attendance.Record, 0, len(rows))
	for i, row := range rows {
		var rec attendance.Record
		rec, name = c.classifyRow(i, row, name, today)
		acc.Add(rec)
		records = append(records, rec)
	}

	summary := acc.Summary()
	summary.EmployeeName = name

	return attendance.Batch{
		Records: records,
		Summary: summary,
	}
}

// Classify resolves one row against the current date. prevName is the name
// inferred from earlier rows; the returned name is the one later rows inherit.
func (c *Classifier) Classify(row attendance.RawRow, prevName string) (attendance.Record, string) {
	return c.classifyRow(0, row, prevName, c.Today())
}

func (c *Classifier) classifyRow(index int, row attendance.RawRow, prevName, today string) (rec attendance.Record, name string) {
	name = prevName
	defer func() {
		if p := recover(); p != nil {
			rec = attendance.Record{
				EmployeeName: name,
				InTime:       attendance.NoTime,
				OutTime:      attendance.NoTime,
				Status:       attendance.StatusError,
				Reason:       fmt.Sprintf("row %d: %v", index+1, p),
			}
		}
	}()

	fields := ResolveFields(row)
	if fields.EmployeeName != nil {
		name = *fields.EmployeeName
	}

	return c.classifyFields(fields, name, today), name
}

func (c *Classifier) classifyFields(fields attendance.ResolvedFields, name, today string) attendance.Record {
	rec := attendance.Record{
		EmployeeName: name,
		InTime:       DisplayTime(fields.InTime),
		OutTime:      DisplayTime(fields.OutTime),
	}

	date, ok := NormalizeDate(fields.Date)
	if !ok {
		rec.Date = valueString(fields.Date)
		rec.Status = attendance.StatusError
		rec.Reason = fmt.Sprintf("%s: %q", attendance.ErrInvalidDate, rec.Date)
		return rec
	}

	rec.Date = date.Text
	rec.DayType = c.ClassifyDay(date)

	switch rec.DayType {
	case attendance.DayTypeHoliday:
		rec.Status = attendance.StatusHoliday
		return rec
	case attendance.DayTypeSunday:
		rec.InTime = attendance.NoTime
		rec.OutTime = attendance.NoTime
		rec.Status = attendance.StatusWeekend
		return rec
	}

	rec.ExpectedHours = rec.DayType.ExpectedHours()

	in, inOK := TimeHours(fields.InTime)
	out, outOK := TimeHours(fields.OutTime)
	switch {
	case inOK && outOK:
		rec.WorkedHours = WorkedHours(in, out)
		rec.Status = attendance.StatusPresent
	case date.Text > today:
		rec.ExpectedHours = 0
		rec.Status = attendance.StatusUpcoming
	default:
		rec.IsLeave = true
		rec.Status = attendance.StatusAbsent
	}

	return rec
}

// WorkedHours returns out-in, wrapping past midnight when out is earlier than in.
func WorkedHours(in, out float64) float64 {
	worked := out - in
	if worked < 0 {
		worked += 24
	}
	return worked
}
