package models

import (
	"fmt"
	"strings"
	"time"

	customerrors "workforce-dashboard/errors"
)

// RawRow maps a lower-cased, trimmed column header to the cell text of one spreadsheet row.
type RawRow map[string]string

// ScheduleRecord is one roster entry: who works which shift on which day.
// Date is canonical MM-DD-YYYY whenever the source value could be normalized.
type ScheduleRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Shift    string `json:"shift"`
	Position string `json:"position"`
}

// Field names one of the categorical ScheduleRecord columns.
type Field string

const (
	FieldName     Field = "name"
	FieldShift    Field = "shift"
	FieldPosition Field = "position"
)

// ParseField accepts a field name in any case.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldName, FieldShift, FieldPosition:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", customerrors.ErrUnknownField, s)
	}
}

// Value returns the record's value for f.
func (r ScheduleRecord) Value(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldShift:
		return r.Shift
	case FieldPosition:
		return r.Position
	}
	return ""
}

// LogSource tells which upload a log entry came from.
type LogSource string

const (
	SourceCall LogSource = "call"
	SourceCare LogSource = "care"
)

// LogEntry is one call-log or care-log row after header mapping.
type LogEntry struct {
	Name      string
	Shift     string
	Role      string
	Solution  string
	Timestamp time.Time
	Source    LogSource
}

// ProductivityRecord summarizes one staff member across both log sources.
type ProductivityRecord struct {
	Name         string  `json:"name"`
	Shift        string  `json:"shift"`
	Role         string  `json:"role"`
	CallRecords  int     `json:"callRecords"`
	CareRecords  int     `json:"careRecords"`
	Records      int     `json:"records"`
	Contribution float64 `json:"contribution"`
	Shift3to8    int     `json:"shift3to8"`
	Shift8to17   int     `json:"shift8to17"`
	Shift17to22  int     `json:"shift17to22"`
	Shift22to3   int     `json:"shift22to3"`
}

// Warning describes a recoverable problem with a single row or cell.
// Row is 1-based over data rows (the header is not counted).
type Warning struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Field == "" {
		return fmt.Sprintf("row %d: %s", w.Row, w.Message)
	}
	return fmt.Sprintf("row %d: %s %q: %s", w.Row, w.Field, w.Value, w.Message)
}
