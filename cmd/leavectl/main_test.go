package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/leave-analyzer/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-analyzer/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Employee Name", "Date", "In-Time", "Out-Time"},
		{"Asha", 45663, "09:00", "18:20"}, // Monday
		{nil, 45661, nil, nil},            // Saturday leave
		{nil, "2025-01-26", nil, nil},     // Holiday
		{nil, "not a date", nil, nil},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "attendance.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeCmd(t *testing.T) {
	path := writeWorkbook(t)

	out, err := execute(t, "analyze", path, "--today", "2025-01-31")
	require.NoError(t, err)

	var report attendance.UploadResponse
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, 4, report.Rows)
	assert.Equal(t, 1, report.Errors)
	assert.Equal(t, "Asha", report.Summary.EmployeeName)
	assert.Equal(t, 12.5, report.Summary.TotalExpected)
	assert.Equal(t, "9.33", report.Summary.TotalWorked)
	assert.Equal(t, "74.67", report.Summary.Productivity)
	assert.Equal(t, 1, report.Summary.Leaves)

	require.Len(t, report.Details, 4)
	assert.Equal(t, "2025-01-06", report.Details[0].Date)
	assert.Equal(t, "Holiday", report.Details[2].Status)
	assert.Equal(t, "Error", report.Details[3].Status)
}

func TestAnalyzeCmd_WritesOutputFile(t *testing.T) {
	path := writeWorkbook(t)
	outPath := filepath.Join(t.TempDir(), "report.json")

	out, err := execute(t, "analyze", path, "--today", "2025-01-31", "--pretty", "-o", outPath)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.FileExists(t, outPath)
}

func TestAnalyzeCmd_Errors(t *testing.T) {
	_, err := execute(t, "analyze", filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)

	_, err = execute(t, "analyze", writeWorkbook(t), "--today", "31/01/2025")
	assert.Error(t, err)

	_, err = execute(t, "analyze")
	assert.Error(t, err)
}

func TestTokenCmd(t *testing.T) {
	out, err := execute(t, "token", "--secret", "cli-secret", "--subject", "payroll-ops", "--ttl", "30m")
	require.NoError(t, err)

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.NotEmpty(t, payload["access_token"])
	assert.NotEmpty(t, payload["expires_at"])

	decoded, err := jwt.NewJWTService("cli-secret", "30m").JWTAuth().Decode(payload["access_token"])
	require.NoError(t, err)
	assert.Equal(t, "payroll-ops", decoded.Subject())
}

func TestTokenCmd_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := execute(t, "token", "--secret", "")
	assert.Error(t, err)
}
