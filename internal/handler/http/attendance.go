package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/leave-analyzer/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-analyzer/internal/handler/http/response"
)

// multipart envelope allowance on top of the file size limit
const multipartOverhead = 1 << 20

type AttendanceHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	maxUploadSize     int64
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, maxUploadSize int64) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		maxUploadSize:     maxUploadSize,
	}
}

// Upload implements AttendanceHandler.
func (h *attendanceHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.HandleError(w, attendance.ErrFileTooLarge)
			return
		}
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	// Get file from form
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.HandleError(w, attendance.ErrFileRequired)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	req := attendance.UploadRequest{
		File:       file,
		FileHeader: fileHeader,
	}

	// Call service
	result, err := h.attendanceService.Upload(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "File processed successfully", result)
}

// Stats implements AttendanceHandler.
func (h *attendanceHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	filter := statsFilterFromQuery(r)

	result, err := h.attendanceService.Stats(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

// Export implements AttendanceHandler.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter := statsFilterFromQuery(r)

	result, err := h.attendanceService.Export(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Content); err != nil {
		slog.Error("Failed to write attendance report", "error", err)
	}
}

// Reset implements AttendanceHandler.
func (h *attendanceHandlerImpl) Reset(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.attendanceService.Reset(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "All attendance records deleted", map[string]int64{
		"deleted": deleted,
	})
}

func statsFilterFromQuery(r *http.Request) attendance.StatsFilter {
	filter := attendance.StatsFilter{
		Month: r.URL.Query().Get("month"),
	}
	if employeeName := r.URL.Query().Get("employee_name"); employeeName != "" {
		filter.EmployeeName = &employeeName
	}
	return filter
}
