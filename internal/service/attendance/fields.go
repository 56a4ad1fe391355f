package attendance

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/leave-analyzer/internal/domain/attendance"
)

// Candidate column spellings per logical field, in priority order.
var (
	DateColumns         = []string{"Date", "date"}
	InTimeColumns       = []string{"In-Time", "InTime", "In Time"}
	OutTimeColumns      = []string{"Out-Time", "OutTime", "Out Time"}
	EmployeeNameColumns = []string{"Employee Name", "EmployeeName", "Name", "Employee"}
)

var labelReplacer = strings.NewReplacer(" ", "", "-", "")

// normalizeLabel lower-cases a column label and strips spaces and hyphens.
func normalizeLabel(label string) string {
	return labelReplacer.Replace(strings.ToLower(label))
}

// columnIndex maps normalized column labels to cell values. When two columns
// normalize to the same key the leftmost one is kept.
type columnIndex map[string]any

func indexColumns(row attendance.RawRow) columnIndex {
	ix := make(columnIndex, len(row))
	for _, cell := range row {
		key := normalizeLabel(cell.Label)
		if _, seen := ix[key]; seen {
			continue
		}
		ix[key] = cell.Value
	}
	return ix
}

// lookup returns the value of the first candidate present in the index.
func (ix columnIndex) lookup(candidates []string) (any, bool) {
	for _, c := range candidates {
		if v, ok := ix[normalizeLabel(c)]; ok {
			return v, true
		}
	}
	return nil, false
}

// ResolveField returns the raw value of the first candidate column found in row.
func ResolveField(row attendance.RawRow, candidates []string) (any, bool) {
	return indexColumns(row).lookup(candidates)
}

// ResolveFields extracts the logical fields of one row.
func ResolveFields(row attendance.RawRow) attendance.ResolvedFields {
	ix := indexColumns(row)

	var fields attendance.ResolvedFields
	fields.Date, _ = ix.lookup(DateColumns)
	fields.InTime, _ = ix.lookup(InTimeColumns)
	fields.OutTime, _ = ix.lookup(OutTimeColumns)

	if v, ok := ix.lookup(EmployeeNameColumns); ok {
		if name := strings.TrimSpace(valueString(v)); name != "" {
			fields.EmployeeName = &name
		}
	}

	return fields
}

// valueString renders a raw cell value as text. nil renders as "".
func valueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	default:
		return fmt.Sprint(t)
	}
}
