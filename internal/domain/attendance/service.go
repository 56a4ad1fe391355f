package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance uploads and reports
type AttendanceService interface {
	// Upload classifies every row of an uploaded spreadsheet and stores the result
	Upload(ctx context.Context, req UploadRequest) (UploadResponse, error)

	// Stats returns the records and summary of one month
	Stats(ctx context.Context, filter StatsFilter) (StatsResponse, error)

	// Export renders the month as an xlsx workbook
	Export(ctx context.Context, filter StatsFilter) (ExportResponse, error)

	// Reset deletes every stored record
	Reset(ctx context.Context) (int64, error)
}
