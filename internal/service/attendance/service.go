package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-analyzer/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-analyzer/internal/service/file"
	"github.com/google/uuid"
)

const (
	DefaultMaxUploadSize = 5 << 20 // 5MB

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// SheetReader decodes an uploaded workbook into raw rows.
type SheetReader interface {
	ReadRows(src io.Reader) ([]attendance.RawRow, error)
}

// ReportRenderer renders one month of records as a workbook.
type ReportRenderer interface {
	RenderMonthly(month string, summary attendance.Summary, records []attendance.Record) ([]byte, error)
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	classifier    *Classifier
	reader        SheetReader
	renderer      ReportRenderer
	fileService   file.FileService
	maxUploadSize int64
	now           func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	classifier *Classifier,
	reader SheetReader,
	renderer ReportRenderer,
	fileService file.FileService,
	maxUploadSize int64,
) attendance.AttendanceService {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		classifier:           classifier,
		reader:               reader,
		renderer:             renderer,
		fileService:          fileService,
		maxUploadSize:        maxUploadSize,
		now:                  time.Now,
	}
}

// Upload implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Upload(ctx context.Context, req attendance.UploadRequest) (attendance.UploadResponse, error) {
	req.MaxSize = s.maxUploadSize
	if err := req.Validate(); err != nil {
		return attendance.UploadResponse{}, err
	}

	content, err := io.ReadAll(io.LimitReader(req.File, s.maxUploadSize+1))
	if err != nil {
		return attendance.UploadResponse{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(content)) > s.maxUploadSize {
		return attendance.UploadResponse{}, attendance.ErrFileTooLarge
	}

	rows, err := s.reader.ReadRows(bytes.NewReader(content))
	if err != nil {
		return attendance.UploadResponse{}, fmt.Errorf("%w: %w", attendance.ErrUnreadableSheet, err)
	}
	if len(rows) == 0 {
		return attendance.UploadResponse{}, attendance.ErrNoRowsInSheet
	}

	batch := s.classifier.Process(rows)

	uploadID, err := uuid.NewV7()
	if err != nil {
		return attendance.UploadResponse{}, fmt.Errorf("failed to generate upload id: %w", err)
	}
	records := stampRecords(batch.Persistable(), uploadID.String(), s.now().UTC())

	var archivePath string
	if s.fileService != nil {
		archivePath, err = s.fileService.ArchiveSpreadsheet(ctx, uploadID.String(), bytes.NewReader(content), req.FileHeader.Filename)
		if err != nil {
			slog.Warn("Failed to archive attendance spreadsheet", "upload_id", uploadID.String(), "error", err)
			archivePath = ""
		}
	}

	saved, err := s.AttendanceRepository.ReplaceRecords(ctx, records)
	if err != nil {
		err = fmt.Errorf("%w: %w", attendance.ErrPersistFailed, err)
		if archivePath != "" {
			if delErr := s.fileService.DeleteFile(ctx, archivePath); delErr != nil {
				err = errors.Join(err, delErr)
			}
		}
		slog.Error("Attendance upload not saved", "upload_id", uploadID.String(), "error", err)
		return attendance.UploadResponse{}, err
	}

	resp := BatchReport(batch)
	resp.UploadID = uploadID.String()

	slog.Info("Attendance upload processed",
		"upload_id", resp.UploadID,
		"employee_name", resp.Summary.EmployeeName,
		"rows", resp.Rows,
		"saved", saved,
		"errors", resp.Errors,
	)

	return resp, nil
}

// stampRecords assigns storage identity to classified records.
func stampRecords(records []attendance.Record, uploadID string, uploadedAt time.Time) []attendance.Record {
	for i := range records {
		records[i].ID = uuid.NewString()
		records[i].UploadID = uploadID
		records[i].UploadedAt = uploadedAt
	}
	return records
}

// Stats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Stats(ctx context.Context, filter attendance.StatsFilter) (attendance.StatsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.StatsResponse{}, err
	}

	records, err := s.AttendanceRepository.ListByMonth(ctx, filter.Month, filter.EmployeeName)
	if err != nil {
		return attendance.StatsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	if len(records) == 0 {
		return attendance.StatsResponse{
			Message: "No records found for this month",
			Summary: nil,
			Details: []attendance.RecordResponse{},
		}, nil
	}

	summary := toSummaryResponse(Summarize(records))
	return attendance.StatsResponse{
		Summary: &summary,
		Details: toRecordResponses(records),
	}, nil
}

// Export implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Export(ctx context.Context, filter attendance.StatsFilter) (attendance.ExportResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ExportResponse{}, err
	}

	records, err := s.AttendanceRepository.ListByMonth(ctx, filter.Month, filter.EmployeeName)
	if err != nil {
		return attendance.ExportResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}
	if len(records) == 0 {
		return attendance.ExportResponse{}, attendance.ErrNoRecordsForMonth
	}

	summary := Summarize(records)
	if filter.EmployeeName == nil {
		summary.EmployeeName = attendance.AllEmployees
	}
	content, err := s.renderer.RenderMonthly(filter.Month, summary, records)
	if err != nil {
		return attendance.ExportResponse{}, fmt.Errorf("failed to render attendance report: %w", err)
	}

	return attendance.ExportResponse{
		Filename:    exportFilename(summary.EmployeeName, filter),
		ContentType: xlsxContentType,
		Content:     content,
	}, nil
}

func exportFilename(employeeName string, filter attendance.StatsFilter) string {
	who := "all"
	if filter.EmployeeName != nil {
		who = employeeName
	}
	who = strings.Join(strings.Fields(who), "_")
	return fmt.Sprintf("attendance_%s_%s.xlsx", who, filter.Month)
}

// Reset implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Reset(ctx context.Context) (int64, error) {
	deleted, err := s.AttendanceRepository.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reset attendance records: %w", err)
	}
	slog.Info("Attendance records cleared", "deleted", deleted)
	return deleted, nil
}
