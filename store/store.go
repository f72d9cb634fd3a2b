// Package store holds the current schedule batch and answers the dashboard's queries over it.
package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"workforce-dashboard/dates"
	customerrors "workforce-dashboard/errors"
	"workforce-dashboard/models"
)

// Store owns exactly one sequence of schedule records. The sequence is only
// ever replaced as a whole; queries never see a half-loaded batch.
type Store struct {
	mu      sync.RWMutex
	records []models.ScheduleRecord
}

// New creates a store seeded with initial. Pass nothing for an empty store.
func New(initial ...models.ScheduleRecord) *Store {
	s := &Store{}
	s.ReplaceAll(initial)
	return s
}

// ReplaceAll swaps in a copy of records as the current batch.
func (s *Store) ReplaceAll(records []models.ScheduleRecord) {
	next := make([]models.ScheduleRecord, len(records))
	copy(next, records)

	s.mu.Lock()
	s.records = next
	s.mu.Unlock()
}

// Reset discards the current batch.
func (s *Store) Reset() {
	s.ReplaceAll(nil)
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// All returns a copy of the stored records in ingestion order.
func (s *Store) All() []models.ScheduleRecord {
	return s.filter(func(models.ScheduleRecord) bool { return true })
}

// ByDate returns the records falling on date, which may be given in any accepted encoding.
// A date that cannot be normalized matches nothing.
func (s *Store) ByDate(date string) []models.ScheduleRecord {
	want, err := dates.Normalize(date)
	if err != nil {
		return []models.ScheduleRecord{}
	}
	return s.filter(func(r models.ScheduleRecord) bool {
		return dates.Canonical(r.Date) == want
	})
}

// ByMonth returns the records in the given calendar month (1-12).
func (s *Store) ByMonth(year, month int) []models.ScheduleRecord {
	return s.filter(func(r models.ScheduleRecord) bool {
		t, err := dates.Parse(r.Date)
		return err == nil && t.Year() == year && int(t.Month()) == month
	})
}

// ByDateRange returns the records between from and to, both inclusive.
// Records whose date cannot be normalized are never in range.
func (s *Store) ByDateRange(from, to string) ([]models.ScheduleRecord, error) {
	start, err := dates.Parse(from)
	if err != nil {
		return nil, err
	}
	end, err := dates.Parse(to)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		start, end = end, start
	}
	return s.filter(func(r models.ScheduleRecord) bool {
		t, err := dates.Parse(r.Date)
		return err == nil && !t.Before(start) && !t.After(end)
	}), nil
}

// bounds parses optional range ends. An empty end leaves that side open;
// reversed ends are swapped.
func bounds(from, to string) (start, end time.Time, err error) {
	if active(from) {
		if start, err = dates.Parse(from); err != nil {
			return start, end, err
		}
	}
	if active(to) {
		if end, err = dates.Parse(to); err != nil {
			return start, end, err
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		start, end = end, start
	}
	return start, end, nil
}

// Search matches query case-insensitively as a substring of name, shift,
// position or the stored date text. An empty query matches everything.
func (s *Store) Search(query string) []models.ScheduleRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	return s.filter(func(r models.ScheduleRecord) bool {
		return matches(r, q)
	})
}

// FilterByField returns the records whose field equals value exactly.
func (s *Store) FilterByField(field models.Field, value string) []models.ScheduleRecord {
	return s.filter(func(r models.ScheduleRecord) bool {
		return r.Value(field) == value
	})
}

// DistinctValues lists the non-empty values of field in first-seen order.
func (s *Store) DistinctValues(field models.Field) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, r := range s.records {
		v := r.Value(field)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// DaysWithRecords returns the sorted days of the month that have at least one record.
func (s *Store) DaysWithRecords(year, month int) []int {
	days := make(map[int]struct{})
	for _, r := range s.ByMonth(year, month) {
		t, _ := dates.Parse(r.Date)
		days[t.Day()] = struct{}{}
	}
	out := make([]int, 0, len(days))
	for d := range days {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// Filter stacks the schedule screen's filters. Empty values and "all" disable a filter.
type Filter struct {
	Search   string
	Name     string
	Shift    string
	Position string
	Date     string
	// From and To bound the date inclusively; either may be empty.
	From string
	To   string
	// Year and Month restrict results to one calendar month when Month is 1-12.
	Year  int
	Month int
}

// Query applies every active filter in f.
func (s *Store) Query(f Filter) []models.ScheduleRecord {
	q := strings.ToLower(strings.TrimSpace(f.Search))

	wantDate := ""
	if active(f.Date) {
		normalized, err := dates.Normalize(f.Date)
		if err != nil {
			return []models.ScheduleRecord{}
		}
		wantDate = normalized
	}

	var start, end time.Time
	if active(f.From) || active(f.To) {
		var err error
		if start, end, err = bounds(f.From, f.To); err != nil {
			return []models.ScheduleRecord{}
		}
	}

	return s.filter(func(r models.ScheduleRecord) bool {
		if q != "" && !matches(r, q) {
			return false
		}
		if active(f.Name) && r.Name != f.Name {
			return false
		}
		if active(f.Shift) && r.Shift != f.Shift {
			return false
		}
		if active(f.Position) && r.Position != f.Position {
			return false
		}
		if wantDate != "" && dates.Canonical(r.Date) != wantDate {
			return false
		}
		if !start.IsZero() || !end.IsZero() {
			t, err := dates.Parse(r.Date)
			if err != nil || (!start.IsZero() && t.Before(start)) || (!end.IsZero() && t.After(end)) {
				return false
			}
		}
		if f.Month >= 1 && f.Month <= 12 {
			t, err := dates.Parse(r.Date)
			if err != nil || t.Year() != f.Year || int(t.Month()) != f.Month {
				return false
			}
		}
		return true
	})
}

func (s *Store) filter(keep func(models.ScheduleRecord) bool) []models.ScheduleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ScheduleRecord, 0)
	for _, r := range s.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.ScheduleRecord, lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(r.Shift), lowerQuery) ||
		strings.Contains(strings.ToLower(r.Position), lowerQuery) ||
		strings.Contains(strings.ToLower(r.Date), lowerQuery)
}

func active(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, "all")
}

// SortKey names a column the schedule table can be sorted by.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByDate     SortKey = "date"
	SortByShift    SortKey = "shift"
	SortByPosition SortKey = "position"
)

// ParseSortKey accepts a sort column name in any case.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortByName, SortByDate, SortByShift, SortByPosition:
		return k, nil
	default:
		return "", customerrors.ErrUnknownField
	}
}

// Sort returns a sorted copy of records. Dates compare by calendar day and
// records with an uncomparable date always sort last. Text columns compare
// case-insensitively. Ties keep their input order.
func Sort(records []models.ScheduleRecord, key SortKey, ascending bool) []models.ScheduleRecord {
	out := make([]models.ScheduleRecord, len(records))
	copy(out, records)

	if key == SortByDate {
		parsed := make(map[string]time.Time, len(out))
		valid := make(map[string]bool, len(out))
		for _, r := range out {
			if _, done := valid[r.Date]; done {
				continue
			}
			t, err := dates.Parse(r.Date)
			parsed[r.Date], valid[r.Date] = t, err == nil
		}
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].Date, out[j].Date
			if !valid[a] || !valid[b] {
				return valid[a] && !valid[b]
			}
			if ascending {
				return parsed[a].Before(parsed[b])
			}
			return parsed[b].Before(parsed[a])
		})
		return out
	}

	field := models.Field(key)
	sort.SliceStable(out, func(i, j int) bool {
		a := strings.ToLower(out[i].Value(field))
		b := strings.ToLower(out[j].Value(field))
		if ascending {
			return a < b
		}
		return b < a
	})
	return out
}

// Stats are the roster counters shown beside the schedule table.
type Stats struct {
	Total         int `json:"total"`
	DayOff        int `json:"dayOff"`
	PublicHoliday int `json:"publicHoliday"`
}

// Summarize counts records, day-off shifts and public holidays.
func Summarize(records []models.ScheduleRecord) Stats {
	stats := Stats{Total: len(records)}
	for _, r := range records {
		switch {
		case strings.EqualFold(strings.TrimSpace(r.Shift), "day off"):
			stats.DayOff++
		case strings.EqualFold(strings.TrimSpace(r.Shift), "public holiday"):
			stats.PublicHoliday++
		}
	}
	return stats
}
