package attendance

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/leave-analyzer/internal/pkg/validator"
)

// ========================================
// UPLOAD DTOs
// ========================================

var allowedSpreadsheetExts = []string{".xlsx", ".xlsm"}

type UploadRequest struct {
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
	MaxSize    int64                 `json:"-"`
}

func (r *UploadRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FileHeader == nil || r.File == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: ErrFileRequired.Error(),
		})
		return errs
	}

	ext := strings.ToLower(filepath.Ext(r.FileHeader.Filename))
	if !validator.IsInSlice(ext, allowedSpreadsheetExts) {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: ErrUnsupportedFile.Error(),
		})
	} else if r.MaxSize > 0 && r.FileHeader.Size > r.MaxSize {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("file size must not exceed %dMB", r.MaxSize>>20),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	EmployeeName  string  `json:"employee_name"`
	Date          string  `json:"date"`
	DayType       string  `json:"day_type,omitempty"`
	InTime        string  `json:"in_time"`
	OutTime       string  `json:"out_time"`
	WorkedHours   float64 `json:"worked_hours"`
	ExpectedHours float64 `json:"expected_hours"`
	IsLeave       bool    `json:"is_leave"`
	Status        string  `json:"status"`
	Reason        string  `json:"reason,omitempty"`
	UploadedAt    string  `json:"uploaded_at,omitempty"`
}

type SummaryResponse struct {
	EmployeeName  string  `json:"employee_name"`
	TotalExpected float64 `json:"total_expected"`
	TotalWorked   string  `json:"total_worked"`
	Leaves        int     `json:"leaves"`
	WorkingDays   int     `json:"working_days"`
	Productivity  string  `json:"productivity"`
}

type UploadResponse struct {
	UploadID string           `json:"upload_id"`
	Rows     int              `json:"rows"`
	Errors   int              `json:"errors"`
	Summary  SummaryResponse  `json:"summary"`
	Details  []RecordResponse `json:"details"`
}

// ========================================
// STATS DTOs
// ========================================

type StatsFilter struct {
	Month        string  `json:"month"` // YYYY-MM
	EmployeeName *string `json:"employee_name,omitempty"`
}

func (f *StatsFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month parameter is required",
		})
	} else if _, valid := validator.IsValidMonth(f.Month); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if f.EmployeeName != nil && validator.IsEmpty(*f.EmployeeName) {
		f.EmployeeName = nil
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StatsResponse struct {
	Message string           `json:"message,omitempty"`
	Summary *SummaryResponse `json:"summary"`
	Details []RecordResponse `json:"details"`
}

// ========================================
// EXPORT DTOs
// ========================================

type ExportResponse struct {
	Filename    string
	ContentType string
	Content     []byte
}
