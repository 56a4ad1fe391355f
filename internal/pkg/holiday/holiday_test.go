package holiday

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ContainsRepublicDay(t *testing.T) {
	c := Default()

	assert.True(t, c.IsHoliday("2025-01-26"))
	assert.Equal(t, "Republic Day", c.Name("2025-01-26"))
	assert.False(t, c.IsHoliday("2025-01-27"))
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Dates(), c.Dates())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "holidays.yaml")
	content := []byte(`holidays:
  - date: "2026-01-26"
    name: Republic Day
  - date: "2026-01-01"
    name: New Year
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-01-01", "2026-01-26"}, c.Dates())
	assert.False(t, c.IsHoliday("2025-01-26"))
}

func TestLoad_InvalidDate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "holidays.yaml")
	require.NoError(t, os.WriteFile(path, []byte("holidays:\n  - date: \"26/01/2026\"\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNilCalendar(t *testing.T) {
	var c *Calendar
	assert.False(t, c.IsHoliday("2025-01-26"))
	assert.Empty(t, c.Dates())
}
