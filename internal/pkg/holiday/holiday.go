// Package holiday holds the fixed set of calendar dates treated as holidays
// regardless of weekday.
package holiday

import (
	"fmt"
	"os"
	"sort"

	"github.com/cmlabs-hris/leave-analyzer/internal/pkg/validator"
	"gopkg.in/yaml.v3"
)

type Holiday struct {
	Date string `yaml:"date"` // YYYY-MM-DD
	Name string `yaml:"name"`
}

type calendarFile struct {
	Holidays []Holiday `yaml:"holidays"`
}

// Calendar is an immutable holiday lookup. The zero value has no holidays.
type Calendar struct {
	dates map[string]string
}

var defaults = []Holiday{
	{Date: "2025-01-26", Name: "Republic Day"},
	{Date: "2025-03-14", Name: "Holi"},
	{Date: "2025-03-31", Name: "Id-ul-Fitr"},
	{Date: "2025-04-18", Name: "Good Friday"},
	{Date: "2025-05-12", Name: "Buddha Purnima"},
	{Date: "2025-08-15", Name: "Independence Day"},
	{Date: "2025-10-02", Name: "Gandhi Jayanti"},
	{Date: "2025-10-20", Name: "Diwali"},
	{Date: "2025-11-05", Name: "Guru Nanak Jayanti"},
	{Date: "2025-12-25", Name: "Christmas Day"},
}

// New builds a calendar, rejecting dates not in YYYY-MM-DD form.
func New(holidays ...Holiday) (*Calendar, error) {
	c := &Calendar{dates: make(map[string]string, len(holidays))}
	for _, h := range holidays {
		if _, ok := validator.IsValidDate(h.Date); !ok {
			return nil, fmt.Errorf("holiday: invalid date %q", h.Date)
		}
		c.dates[h.Date] = h.Name
	}
	return c, nil
}

// Default returns the built-in holiday set.
func Default() *Calendar {
	c, err := New(defaults...)
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads a YAML calendar file. An empty path returns the built-in set.
func Load(path string) (*Calendar, error) {
	if path == "" {
		return Default(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("holiday: read file %s: %w", path, err)
	}

	var f calendarFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("holiday: parse yaml: %w", err)
	}

	return New(f.Holidays...)
}

// IsHoliday reports whether date (YYYY-MM-DD) is a holiday.
func (c *Calendar) IsHoliday(date string) bool {
	if c == nil {
		return false
	}
	_, ok := c.dates[date]
	return ok
}

func (c *Calendar) Name(date string) string {
	if c == nil {
		return ""
	}
	return c.dates[date]
}

// Dates returns the holiday dates in ascending order.
func (c *Calendar) Dates() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.dates))
	for d := range c.dates {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
