package attendance

import "errors"

// Attendance domain errors
var (
	// Upload errors
	ErrFileRequired    = errors.New("attendance spreadsheet is required")
	ErrUnsupportedFile = errors.New("unsupported file type: only xlsx, xlsm allowed")
	ErrFileTooLarge    = errors.New("attendance spreadsheet exceeds the size limit")
	ErrUnreadableSheet = errors.New("attendance spreadsheet could not be read")
	ErrNoRowsInSheet   = errors.New("attendance spreadsheet has no data rows")

	// Row errors
	ErrInvalidDate = errors.New("unrecognized date value")

	// Query errors
	ErrNoRecordsForMonth = errors.New("no records found for this month")

	// Storage errors
	ErrPersistFailed = errors.New("failed to save attendance records")
)
