package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/leave-analyzer/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-analyzer/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceTable = "attendance_records"

var attendanceColumns = []string{
	"id", "upload_id", "employee_name", "date", "day_type",
	"in_time", "out_time", "worked_hours", "expected_hours",
	"is_leave", "status", "uploaded_at",
}

const attendanceSelect = `
	SELECT id, upload_id, employee_name, date, day_type,
		   in_time, out_time, worked_hours, expected_hours,
		   is_leave, status, uploaded_at
	FROM attendance_records
`

type attendanceRepository struct {
	db *database.DB
}

// ReplaceRecords implements attendance.AttendanceRepository.
// Existing rows with the same (employee_name, date) are deleted and the new
// rows inserted in one transaction.
func (a *attendanceRepository) ReplaceRecords(ctx context.Context, records []attendance.Record) (int64, error) {
	records = dedupeRecords(records)
	if len(records) == 0 {
		return 0, nil
	}

	var inserted int64
	err := WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, a.db)

		for _, group := range datesByEmployee(records) {
			_, err := q.Exec(txCtx, `
				DELETE FROM attendance_records
				WHERE employee_name = $1
				  AND date = ANY($2)
			`, group.employeeName, group.dates)
			if err != nil {
				return fmt.Errorf("failed to delete previous attendance records: %w", err)
			}
		}

		n, err := q.CopyFrom(txCtx, pgx.Identifier{attendanceTable}, attendanceColumns,
			pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
				r := records[i]
				return []any{
					r.ID, r.UploadID, r.EmployeeName, r.Date, string(r.DayType),
					r.InTime, r.OutTime, r.WorkedHours, r.ExpectedHours,
					r.IsLeave, string(r.Status), r.UploadedAt,
				}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to insert attendance records: %w", err)
		}
		inserted = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

type employeeDates struct {
	employeeName string
	dates        []string
}

// datesByEmployee groups record dates per employee in first-seen order.
func datesByEmployee(records []attendance.Record) []employeeDates {
	index := make(map[string]int)
	var groups []employeeDates
	for _, r := range records {
		i, ok := index[r.EmployeeName]
		if !ok {
			i = len(groups)
			index[r.EmployeeName] = i
			groups = append(groups, employeeDates{employeeName: r.EmployeeName})
		}
		groups[i].dates = append(groups[i].dates, r.Date)
	}
	return groups
}

// dedupeRecords keeps the last record per (employee_name, date), at the
// position of the first one.
func dedupeRecords(records []attendance.Record) []attendance.Record {
	type key struct{ name, date string }

	index := make(map[key]int, len(records))
	out := make([]attendance.Record, 0, len(records))
	for _, r := range records {
		k := key{r.EmployeeName, r.Date}
		if i, ok := index[k]; ok {
			out[i] = r
			continue
		}
		index[k] = len(out)
		out = append(out, r)
	}
	return out
}

// ListByMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByMonth(ctx context.Context, month string, employeeName *string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := attendanceSelect + " WHERE date LIKE $1 || '-%'"
	args := []interface{}{month}

	if employeeName != nil && *employeeName != "" {
		query += " AND employee_name = $2"
		args = append(args, *employeeName)
	}
	query += " ORDER BY date ASC, employee_name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// DeleteAll implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteAll(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, "DELETE FROM attendance_records")
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance records: %w", err)
	}

	return tag.RowsAffected(), nil
}

func scanRecords(rows pgx.Rows) ([]attendance.Record, error) {
	records := []attendance.Record{}
	for rows.Next() {
		var (
			r       attendance.Record
			dayType string
			status  string
		)
		err := rows.Scan(
			&r.ID, &r.UploadID, &r.EmployeeName, &r.Date, &dayType,
			&r.InTime, &r.OutTime, &r.WorkedHours, &r.ExpectedHours,
			&r.IsLeave, &status, &r.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		r.DayType = attendance.DayType(dayType)
		r.Status = attendance.Status(status)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
