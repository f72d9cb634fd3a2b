// Package productivity derives per-staff productivity figures from call and care logs.
package productivity

import (
	"strings"
	"time"

	"workforce-dashboard/models"
)

// Window is one of the four fixed clock-time buckets. Together they partition
// the day starting at 03:00.
type Window int

const (
	Window3to8 Window = iota
	Window8to17
	Window17to22
	Window22to3
)

// Windows lists every window in day order.
var Windows = []Window{Window3to8, Window8to17, Window17to22, Window22to3}

func (w Window) String() string {
	switch w {
	case Window3to8:
		return "3AM-8AM"
	case Window8to17:
		return "8AM-5PM"
	case Window17to22:
		return "5PM-10PM"
	default:
		return "10PM-3AM"
	}
}

// WindowOf returns the window containing t's wall-clock hour.
func WindowOf(t time.Time) Window {
	switch h := t.Hour(); {
	case h >= 3 && h < 8:
		return Window3to8
	case h >= 8 && h < 17:
		return Window8to17
	case h >= 17 && h < 22:
		return Window17to22
	default:
		return Window22to3
	}
}

// Options narrows which log entries are counted.
// From and To are inclusive calendar days; a zero value leaves that side open.
type Options struct {
	From time.Time
	To   time.Time
}

func (o Options) inRange(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if !o.From.IsZero() && day.Before(truncateDay(o.From)) {
		return false
	}
	if !o.To.IsZero() && day.After(truncateDay(o.To)) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Aggregate builds one ProductivityRecord per distinct staff member, in the order
// names are first seen across calls then cares. Entries whose solution is in
// excluded are not counted, but their staff member is still listed.
// Contribution is each member's share of all counted records, unrounded; it is
// 0 for everyone when nothing was counted.
func Aggregate(calls, cares []models.LogEntry, excluded *ExcludedSet, opts Options) []models.ProductivityRecord {
	index := make(map[string]int)
	records := make([]models.ProductivityRecord, 0)

	add := func(e models.LogEntry) {
		if !opts.inRange(e.Timestamp) {
			return
		}

		key := staffKey(e.Name)
		i, ok := index[key]
		if !ok {
			i = len(records)
			index[key] = i
			records = append(records, models.ProductivityRecord{Name: strings.TrimSpace(e.Name)})
		}
		rec := &records[i]
		if rec.Shift == "" {
			rec.Shift = e.Shift
		}
		if rec.Role == "" {
			rec.Role = e.Role
		}

		if excluded.Contains(e.Solution) {
			return
		}

		switch e.Source {
		case models.SourceCare:
			rec.CareRecords++
		default:
			rec.CallRecords++
		}

		switch WindowOf(e.Timestamp) {
		case Window3to8:
			rec.Shift3to8++
		case Window8to17:
			rec.Shift8to17++
		case Window17to22:
			rec.Shift17to22++
		default:
			rec.Shift22to3++
		}
	}

	for _, e := range calls {
		add(e)
	}
	for _, e := range cares {
		add(e)
	}

	total := 0
	for i := range records {
		records[i].Records = records[i].CallRecords + records[i].CareRecords
		total += records[i].Records
	}
	for i := range records {
		if total > 0 {
			records[i].Contribution = 100 * float64(records[i].Records) / float64(total)
		}
	}

	return records
}

// staffKey identifies a staff member regardless of case and spacing differences between files.
func staffKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
