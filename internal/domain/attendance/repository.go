package attendance

import (
	"context"
)

// AttendanceRepository defines data access methods for classified attendance records.
// Records are keyed by (employee name, date).
type AttendanceRepository interface {
	// ReplaceRecords deletes any stored record sharing an (employee, date) key with
	// records and inserts records, in one transaction.
	ReplaceRecords(ctx context.Context, records []Record) (int64, error)

	// ListByMonth returns records whose date starts with month (YYYY-MM), sorted by date.
	// A nil employeeName returns records of every employee.
	ListByMonth(ctx context.Context, month string, employeeName *string) ([]Record, error)

	// DeleteAll removes every stored record
	DeleteAll(ctx context.Context) (int64, error)
}
