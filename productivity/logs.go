package productivity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"workforce-dashboard/dates"
	customerrors "workforce-dashboard/errors"
	"workforce-dashboard/mapper"
	"workforce-dashboard/models"
)

// LogAliases lists accepted header spellings for call and care log columns.
// Timestamp is tried first; otherwise Date and Time are combined.
type LogAliases struct {
	Name      []string
	Timestamp []string
	Date      []string
	Time      []string
	Solution  []string
	Shift     []string
	Role      []string
}

// DefaultLogAliases covers the call-centre exports seen so far.
func DefaultLogAliases() LogAliases {
	return LogAliases{
		Name:      []string{"agent", "agent name", "name", "staff", "user", "created by"},
		Timestamp: []string{"date time", "datetime", "timestamp", "created at", "created date", "call time", "start time"},
		Date:      []string{"date", "call date", "log date"},
		Time:      []string{"time", "hour"},
		Solution:  []string{"solution", "outcome", "result", "status"},
		Shift:     []string{"work shift", "shift", "team"},
		Role:      []string{"role", "position"},
	}
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1-2-2006 15:04:05",
	"1-2-2006 15:04",
	"1-2-2006 3:04:05 PM",
	"1-2-2006 3:04 PM",
	"1/2/06 15:04:05",
	"1/2/06 15:04",
	"1/2/06 3:04 PM",
}

var clockLayouts = []string{"15:04:05", "15:04", "3:04:05 PM", "3:04 PM", "3:04PM", "3PM"}

// ParseTimestamp reads a log timestamp. Raw Excel serials are accepted, as are
// ISO and month-first date-time text. A value without a time of day is rejected
// because it cannot be placed in a shift window.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, customerrors.ErrMalformedTimestamp
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		t, ok := dates.ExcelSerialTime(value)
		// A whole serial is a day with no time of day.
		if !ok || serial == math.Trunc(serial) {
			return time.Time{}, fmt.Errorf("%w: serial %q", customerrors.ErrMalformedTimestamp, value)
		}
		return t, nil
	}

	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		if strings.Contains(layout, "/06 ") && t.Year() < 2000 {
			t = t.AddDate(100, 0, 0)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", customerrors.ErrMalformedTimestamp, value)
}

// combineDateTime joins a separate date cell and time-of-day cell.
func combineDateTime(date, clock string) (time.Time, error) {
	day, err := logDay(date)
	if err != nil {
		return time.Time{}, err
	}
	clock = strings.ToUpper(strings.TrimSpace(clock))
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, clock)
		if err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
		}
	}
	// Excel stores a time-only cell as a fraction of a day.
	if frac, err := strconv.ParseFloat(clock, 64); err == nil && frac >= 0 && frac < 1 {
		return day.Add(time.Duration(frac * float64(24*time.Hour)).Round(time.Second)), nil
	}
	return time.Time{}, fmt.Errorf("%w: time %q", customerrors.ErrMalformedTimestamp, clock)
}

// logDay reads the date cell of a split date/time log, which may be a raw serial.
func logDay(date string) (time.Time, error) {
	if t, ok := dates.ExcelSerialTime(date); ok {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	day, err := dates.Parse(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", customerrors.ErrMalformedTimestamp, err)
	}
	return day, nil
}

// MapLogs converts decoded log rows into entries. Rows without a staff name or
// a usable timestamp are skipped and reported as warnings.
func MapLogs(rows []models.RawRow, source models.LogSource, aliases LogAliases) ([]models.LogEntry, []models.Warning) {
	entries := make([]models.LogEntry, 0, len(rows))
	var warnings []models.Warning

	for i, row := range rows {
		rowNum := i + 1

		name := mapper.Lookup(row, aliases.Name)
		if name == "" {
			warnings = append(warnings, models.Warning{
				Row:     rowNum,
				Field:   "name",
				Message: customerrors.ErrMissingName.Error(),
			})
			continue
		}

		var (
			ts  time.Time
			err error
		)
		if raw := mapper.Lookup(row, aliases.Timestamp); raw != "" {
			ts, err = ParseTimestamp(raw)
		} else {
			date := mapper.Lookup(row, aliases.Date)
			clock := mapper.Lookup(row, aliases.Time)
			if clock == "" {
				// The date column may itself carry a time of day.
				ts, err = ParseTimestamp(date)
			} else {
				ts, err = combineDateTime(date, clock)
			}
		}
		if err != nil {
			warnings = append(warnings, models.Warning{
				Row:     rowNum,
				Field:   "timestamp",
				Value:   mapper.Lookup(row, append(append([]string{}, aliases.Timestamp...), aliases.Date...)),
				Message: err.Error(),
			})
			continue
		}

		entries = append(entries, models.LogEntry{
			Name:      name,
			Shift:     mapper.Lookup(row, aliases.Shift),
			Role:      mapper.Lookup(row, aliases.Role),
			Solution:  mapper.Lookup(row, aliases.Solution),
			Timestamp: ts,
			Source:    source,
		})
	}

	return entries, warnings
}
