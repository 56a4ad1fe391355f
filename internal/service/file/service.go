package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-analyzer/internal/pkg/storage"
)

const spreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type FileService interface {
	// ArchiveSpreadsheet stores an uploaded attendance workbook under its upload ID
	ArchiveSpreadsheet(ctx context.Context, uploadID string, file io.Reader, filename string) (string, error)

	// DeleteFile removes a stored file
	DeleteFile(ctx context.Context, path string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
	now     func() time.Time
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
		now:     time.Now,
	}
}

// ArchiveSpreadsheet implements FileService.
func (s *fileServiceImpl) ArchiveSpreadsheet(ctx context.Context, uploadID string, file io.Reader, filename string) (string, error) {
	if uploadID == "" {
		return "", fmt.Errorf("upload id is required")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".xlsx"
	}

	day := s.now().UTC().Format("2006-01-02")
	path := filepath.Join("spreadsheets", day, uploadID+ext)

	uploadedPath, err := s.storage.Upload(ctx, file, path, spreadsheetContentType)
	if err != nil {
		return "", fmt.Errorf("failed to archive spreadsheet: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile implements FileService.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	if err := s.storage.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
