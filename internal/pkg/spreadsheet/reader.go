// Package spreadsheet decodes attendance workbooks into raw rows and renders
// monthly reports, using excelize.
package spreadsheet

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/leave-analyzer/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

// Reader decodes one worksheet. The first non-empty row is the header.
type Reader struct {
	// SheetName selects the worksheet; empty means the first sheet.
	SheetName string
}

func NewReader() *Reader {
	return &Reader{}
}

// ReadRows returns the data rows of the worksheet in sheet order. Cells keep
// their raw values: date and time cells come back as serial numbers.
func (r *Reader) ReadRows(src io.Reader) ([]attendance.RawRow, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := r.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	return buildRows(rows), nil
}

func buildRows(rows [][]string) []attendance.RawRow {
	var (
		header []string
		result []attendance.RawRow
	)
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		if header == nil {
			header = row
			continue
		}

		raw := make(attendance.RawRow, 0, len(header))
		for colIdx, label := range header {
			var value any
			if colIdx < len(row) {
				value = parseValue(row[colIdx])
			}
			raw = append(raw, attendance.Cell{Label: label, Value: value})
		}
		result = append(result, raw)
	}
	return result
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseValue returns nil for empty cells, float64 for numeric cells and the
// original string otherwise.
func parseValue(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}
