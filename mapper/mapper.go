// Package mapper turns decoded spreadsheet rows with vendor-specific headers
// into canonical schedule records.
package mapper

import (
	"fmt"
	"strconv"
	"strings"

	"workforce-dashboard/dates"
	customerrors "workforce-dashboard/errors"
	"workforce-dashboard/models"
)

// AliasTable lists, per logical field, the accepted header spellings in priority order.
// Spellings are compared against lower-cased headers.
type AliasTable struct {
	Name     []string
	Date     []string
	Shift    []string
	Position []string
}

// DefaultScheduleAliases covers the roster exports seen so far.
func DefaultScheduleAliases() AliasTable {
	return AliasTable{
		Name:     []string{"name", "staff", "staff name", "employee", "employee name"},
		Date:     []string{"date", "day", "shift date"},
		Shift:    []string{"shifts", "shift", "work shift"},
		Position: []string{"position", "role", "department"},
	}
}

// Result is the outcome of mapping one uploaded batch.
type Result struct {
	Records  []models.ScheduleRecord
	Warnings []models.Warning
	// Total is the number of rows handed to Map; Dropped of those were discarded.
	Total   int
	Dropped int
}

// Err reports errors.ErrNoData when no row survived mapping.
func (r Result) Err() error {
	if len(r.Records) == 0 {
		return customerrors.ErrNoData
	}
	return nil
}

// Summary is the user-facing load message, e.g. "loaded 7 of 10 rows".
func (r Result) Summary() string {
	return fmt.Sprintf("loaded %d of %d rows", len(r.Records), r.Total)
}

// Lookup returns the first non-empty value among aliases.
func Lookup(row models.RawRow, aliases []string) string {
	for _, alias := range aliases {
		if v := strings.TrimSpace(row[strings.ToLower(alias)]); v != "" {
			return v
		}
	}
	return ""
}

// Map resolves name, date, shift and position for every row.
// Rows without a name or a date are dropped. Dates are normalized; a date that
// cannot be normalized is kept verbatim and reported as a warning. IDs are
// assigned "1", "2", ... over the retained rows in input order.
func Map(rows []models.RawRow, aliases AliasTable) Result {
	result := Result{
		Records: make([]models.ScheduleRecord, 0, len(rows)),
		Total:   len(rows),
	}

	for i, row := range rows {
		rowNum := i + 1

		name := Lookup(row, aliases.Name)
		if name == "" {
			result.Dropped++
			result.Warnings = append(result.Warnings, models.Warning{
				Row:     rowNum,
				Field:   "name",
				Message: customerrors.ErrMissingName.Error(),
			})
			continue
		}

		rawDate := Lookup(row, aliases.Date)
		if rawDate == "" {
			result.Dropped++
			result.Warnings = append(result.Warnings, models.Warning{
				Row:     rowNum,
				Field:   "date",
				Message: customerrors.ErrMissingDate.Error(),
			})
			continue
		}

		date, err := normalizeCell(rawDate)
		if err != nil {
			result.Warnings = append(result.Warnings, models.Warning{
				Row:     rowNum,
				Field:   "date",
				Value:   rawDate,
				Message: err.Error(),
			})
		}

		result.Records = append(result.Records, models.ScheduleRecord{
			ID:       strconv.Itoa(len(result.Records) + 1),
			Name:     name,
			Date:     date,
			Shift:    Lookup(row, aliases.Shift),
			Position: Lookup(row, aliases.Position),
		})
	}

	return result
}

// normalizeCell handles dates stored as raw Excel serials before the textual encodings.
func normalizeCell(value string) (string, error) {
	if canonical, ok := dates.FromExcelSerial(value); ok {
		return canonical, nil
	}
	return dates.Normalize(value)
}
