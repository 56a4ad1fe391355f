package attendance

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-analyzer/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-analyzer/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func uploadRequest(name string, content []byte) attendance.UploadRequest {
	return attendance.UploadRequest{
		File:       memFile{bytes.NewReader(content)},
		FileHeader: &multipart.FileHeader{Filename: name, Size: int64(len(content))},
	}
}

type fakeRepo struct {
	saved     []attendance.Record
	stored    []attendance.Record
	saveErr   error
	listErr   error
	lastMonth string
	lastName  *string
	deleted   int64
}

func (r *fakeRepo) ReplaceRecords(ctx context.Context, records []attendance.Record) (int64, error) {
	if r.saveErr != nil {
		return 0, r.saveErr
	}
	r.saved = records
	return int64(len(records)), nil
}

func (r *fakeRepo) ListByMonth(ctx context.Context, month string, employeeName *string) ([]attendance.Record, error) {
	r.lastMonth = month
	r.lastName = employeeName
	return r.stored, r.listErr
}

func (r *fakeRepo) DeleteAll(ctx context.Context) (int64, error) {
	return r.deleted, nil
}

type fakeReader struct {
	rows []attendance.RawRow
	err  error
	got  []byte
}

func (f *fakeReader) ReadRows(src io.Reader) ([]attendance.RawRow, error) {
	f.got, _ = io.ReadAll(src)
	return f.rows, f.err
}

type fakeRenderer struct {
	month   string
	summary attendance.Summary
}

func (f *fakeRenderer) RenderMonthly(month string, summary attendance.Summary, records []attendance.Record) ([]byte, error) {
	f.month = month
	f.summary = summary
	return []byte("xlsx"), nil
}

type fakeFileService struct {
	archived []string
	deleted  []string
	err      error
}

func (f *fakeFileService) ArchiveSpreadsheet(ctx context.Context, uploadID string, file io.Reader, filename string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	path := "spreadsheets/2025-01-15/" + uploadID + ".xlsx"
	f.archived = append(f.archived, path)
	return path, nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

type serviceFixture struct {
	svc      *AttendanceServiceImpl
	repo     *fakeRepo
	reader   *fakeReader
	renderer *fakeRenderer
	files    *fakeFileService
}

func newServiceFixture(t *testing.T, maxSize int64) serviceFixture {
	t.Helper()

	f := serviceFixture{
		repo:     &fakeRepo{},
		reader:   &fakeReader{},
		renderer: &fakeRenderer{},
		files:    &fakeFileService{},
	}
	svc := NewAttendanceService(f.repo, newTestClassifier(t), f.reader, f.renderer, f.files, maxSize)
	f.svc = svc.(*AttendanceServiceImpl)
	f.svc.now = fixedClock(time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC))
	return f
}

func TestAttendanceService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("classifies and persists valid rows", func(t *testing.T) {
		f := newServiceFixture(t, 0)
		f.reader.rows = []attendance.RawRow{
			row("Asha", "2025-01-06", "09:00", "18:20"),
			row(nil, "2025-01-04", nil, nil),
			row(nil, "garbage", nil, nil),
		}

		resp, err := f.svc.Upload(ctx, uploadRequest("january.xlsx", []byte("payload")))
		require.NoError(t, err)

		assert.Equal(t, []byte("payload"), f.reader.got)
		assert.NotEmpty(t, resp.UploadID)
		assert.Equal(t, 3, resp.Rows)
		assert.Equal(t, 1, resp.Errors)
		require.Len(t, resp.Details, 3)
		assert.Equal(t, "Error", resp.Details[2].Status)
		assert.Equal(t, 9.33, resp.Details[0].WorkedHours)

		assert.Equal(t, "Asha", resp.Summary.EmployeeName)
		assert.Equal(t, 12.5, resp.Summary.TotalExpected)
		assert.Equal(t, "9.33", resp.Summary.TotalWorked)
		assert.Equal(t, 1, resp.Summary.Leaves)
		assert.Equal(t, "74.67", resp.Summary.Productivity)

		require.Len(t, f.repo.saved, 2)
		for _, rec := range f.repo.saved {
			assert.NotEmpty(t, rec.ID)
			assert.Equal(t, resp.UploadID, rec.UploadID)
			assert.Equal(t, time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC), rec.UploadedAt)
		}
		assert.Len(t, f.files.archived, 1)
		assert.Empty(t, f.files.deleted)
	})

	t.Run("rejects unsupported extension", func(t *testing.T) {
		f := newServiceFixture(t, 0)

		_, err := f.svc.Upload(ctx, uploadRequest("january.csv", []byte("a,b")))

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "file", verrs[0].Field)
		assert.Nil(t, f.repo.saved)
	})

	t.Run("rejects missing file", func(t *testing.T) {
		f := newServiceFixture(t, 0)

		_, err := f.svc.Upload(ctx, attendance.UploadRequest{})

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
	})

	t.Run("rejects body larger than limit", func(t *testing.T) {
		f := newServiceFixture(t, 4)
		req := uploadRequest("january.xlsx", []byte("too large"))
		req.FileHeader.Size = 1 // header lies about size

		_, err := f.svc.Upload(ctx, req)
		assert.ErrorIs(t, err, attendance.ErrFileTooLarge)
	})

	t.Run("unreadable workbook", func(t *testing.T) {
		f := newServiceFixture(t, 0)
		f.reader.err = errors.New("zip: not a valid zip file")

		_, err := f.svc.Upload(ctx, uploadRequest("january.xlsx", []byte("x")))
		assert.ErrorIs(t, err, attendance.ErrUnreadableSheet)
	})

	t.Run("empty workbook", func(t *testing.T) {
		f := newServiceFixture(t, 0)

		_, err := f.svc.Upload(ctx, uploadRequest("january.xlsx", []byte("x")))
		assert.ErrorIs(t, err, attendance.ErrNoRowsInSheet)
	})

	t.Run("persist failure removes archive", func(t *testing.T) {
		f := newServiceFixture(t, 0)
		f.reader.rows = []attendance.RawRow{row("Asha", "2025-01-06", "09:00", "18:00")}
		f.repo.saveErr = errors.New("connection reset")

		_, err := f.svc.Upload(ctx, uploadRequest("january.xlsx", []byte("x")))
		assert.ErrorIs(t, err, attendance.ErrPersistFailed)
		assert.Equal(t, f.files.archived, f.files.deleted)
	})

	t.Run("archive failure does not block upload", func(t *testing.T) {
		f := newServiceFixture(t, 0)
		f.reader.rows = []attendance.RawRow{row("Asha", "2025-01-06", "09:00", "18:00")}
		f.files.err = errors.New("disk full")

		resp, err := f.svc.Upload(ctx, uploadRequest("january.xlsx", []byte("x")))
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Rows)
		assert.Len(t, f.repo.saved, 1)
	})
}

func TestAttendanceService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("no records", func(t *testing.T) {
		f := newServiceFixture(t, 0)

		resp, err := f.svc.Stats(ctx, attendance.StatsFilter{Month: "2025-02"})
		require.NoError(t, err)

		assert.Equal(t, "No records found for this month", resp.Message)
		assert.Nil(t, resp.Summary)
		assert.NotNil(t, resp.Details)
		assert.Empty(t, resp.Details)
	})

	t.Run("summarizes stored records", func(t *testing.T) {
		f := newServiceFixture(t, 0)
		uploadedAt := time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)
		f.repo.stored = []attendance.Record{
			{EmployeeName: "Asha", Date: "2025-01-06", DayType: attendance.DayTypeWeekday, Status: attendance.StatusPresent, ExpectedHours: 8.5, WorkedHours: 9.333333, UploadedAt: uploadedAt},
			{EmployeeName: "Asha", Date: "2025-01-04", DayType: attendance.DayTypeSaturday, Status: attendance.StatusAbsent, ExpectedHours: 4, IsLeave: true, UploadedAt: uploadedAt},
		}
		name := " Asha "

		resp, err := f.svc.Stats(ctx, attendance.StatsFilter{Month: "2025-01", EmployeeName: &name})
		require.NoError(t, err)

		assert.Equal(t, "2025-01", f.repo.lastMonth)
		require.NotNil(t, f.repo.lastName)
		require.NotNil(t, resp.Summary)
		assert.Empty(t, resp.Message)
		assert.Equal(t, "74.67", resp.Summary.Productivity)
		assert.Equal(t, 1, resp.Summary.Leaves)
		require.Len(t, resp.Details, 2)
		assert.Equal(t, "2025-01-10T09:30:00Z", resp.Details[0].UploadedAt)
	})

	t.Run("elapsed upcoming record is reported as stored", func(t *testing.T) {
		f := newServiceFixture(t, 0)
		f.repo.stored = []attendance.Record{
			{EmployeeName: "Asha", Date: "2025-01-06", DayType: attendance.DayTypeWeekday, Status: attendance.StatusPresent, ExpectedHours: 8.5, WorkedHours: 8.5},
			{EmployeeName: "Asha", Date: "2025-01-13", DayType: attendance.DayTypeWeekday, Status: attendance.StatusUpcoming},
		}

		resp, err := f.svc.Stats(ctx, attendance.StatsFilter{Month: "2025-01"})
		require.NoError(t, err)

		require.NotNil(t, resp.Summary)
		assert.Equal(t, 8.5, resp.Summary.TotalExpected)
		assert.Equal(t, 0, resp.Summary.Leaves)
		assert.Equal(t, "100.00", resp.Summary.Productivity)
		require.Len(t, resp.Details, 2)
		assert.Equal(t, string(attendance.StatusUpcoming), resp.Details[1].Status)
		assert.False(t, resp.Details[1].IsLeave)
		assert.Equal(t, 0.0, resp.Details[1].ExpectedHours)
	})

	t.Run("blank employee filter means all", func(t *testing.T) {
		f := newServiceFixture(t, 0)
		blank := "  "

		_, err := f.svc.Stats(ctx, attendance.StatsFilter{Month: "2025-01", EmployeeName: &blank})
		require.NoError(t, err)
		assert.Nil(t, f.repo.lastName)
	})

	t.Run("invalid month", func(t *testing.T) {
		f := newServiceFixture(t, 0)

		_, err := f.svc.Stats(ctx, attendance.StatsFilter{Month: "January"})

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "month", verrs[0].Field)
	})

	t.Run("repository error", func(t *testing.T) {
		f := newServiceFixture(t, 0)
		f.repo.listErr = errors.New("boom")

		_, err := f.svc.Stats(ctx, attendance.StatsFilter{Month: "2025-01"})
		assert.Error(t, err)
	})
}

func TestAttendanceService_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("no records", func(t *testing.T) {
		f := newServiceFixture(t, 0)

		_, err := f.svc.Export(ctx, attendance.StatsFilter{Month: "2025-02"})
		assert.ErrorIs(t, err, attendance.ErrNoRecordsForMonth)
	})

	t.Run("renders workbook", func(t *testing.T) {
		f := newServiceFixture(t, 0)
		f.repo.stored = []attendance.Record{
			{EmployeeName: "Asha Rao", Date: "2025-01-06", Status: attendance.StatusPresent, ExpectedHours: 8.5, WorkedHours: 8.5},
		}
		name := "Asha Rao"

		resp, err := f.svc.Export(ctx, attendance.StatsFilter{Month: "2025-01", EmployeeName: &name})
		require.NoError(t, err)

		assert.Equal(t, "attendance_Asha_Rao_2025-01.xlsx", resp.Filename)
		assert.Equal(t, xlsxContentType, resp.ContentType)
		assert.Equal(t, []byte("xlsx"), resp.Content)
		assert.Equal(t, "2025-01", f.renderer.month)
		assert.Equal(t, "Asha Rao", f.renderer.summary.EmployeeName)
	})

	t.Run("all employees", func(t *testing.T) {
		f := newServiceFixture(t, 0)
		f.repo.stored = []attendance.Record{{EmployeeName: "Asha", Date: "2025-01-06"}}

		resp, err := f.svc.Export(ctx, attendance.StatsFilter{Month: "2025-01"})
		require.NoError(t, err)
		assert.Equal(t, "attendance_all_2025-01.xlsx", resp.Filename)
		assert.Equal(t, attendance.AllEmployees, f.renderer.summary.EmployeeName)
	})
}

func TestAttendanceService_Reset(t *testing.T) {
	f := newServiceFixture(t, 0)
	f.repo.deleted = 42

	n, err := f.svc.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
}
