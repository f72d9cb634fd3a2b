package productivity

import (
	"sort"
	"strings"
	"sync"

	customerrors "workforce-dashboard/errors"
	"workforce-dashboard/models"
)

// Store owns the current productivity batch. Like the schedule store it is
// replaced wholesale on every successful ingestion.
type Store struct {
	mu      sync.RWMutex
	records []models.ProductivityRecord
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// ReplaceAll swaps in a copy of records.
func (s *Store) ReplaceAll(records []models.ProductivityRecord) {
	next := make([]models.ProductivityRecord, len(records))
	copy(next, records)

	s.mu.Lock()
	s.records = next
	s.mu.Unlock()
}

// Reset discards the current batch.
func (s *Store) Reset() {
	s.ReplaceAll(nil)
}

// All returns a copy of the current batch in aggregation order.
func (s *Store) All() []models.ProductivityRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ProductivityRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of staff in the current batch.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// FilterByShift keeps records whose shift equals shift. "" and "all" keep everything.
func FilterByShift(records []models.ProductivityRecord, shift string) []models.ProductivityRecord {
	shift = strings.TrimSpace(shift)
	out := make([]models.ProductivityRecord, 0, len(records))
	for _, r := range records {
		if shift == "" || strings.EqualFold(shift, "all") || r.Shift == shift {
			out = append(out, r)
		}
	}
	return out
}

// SortField names a sortable productivity column.
type SortField string

const (
	SortName         SortField = "name"
	SortShift        SortField = "shift"
	SortRole         SortField = "role"
	SortCallRecords  SortField = "callRecords"
	SortCareRecords  SortField = "careRecords"
	SortRecords      SortField = "records"
	SortContribution SortField = "contribution"
	SortShift3to8    SortField = "shift3to8"
	SortShift8to17   SortField = "shift8to17"
	SortShift17to22  SortField = "shift17to22"
	SortShift22to3   SortField = "shift22to3"
)

var sortFields = []SortField{
	SortName, SortShift, SortRole, SortCallRecords, SortCareRecords, SortRecords,
	SortContribution, SortShift3to8, SortShift8to17, SortShift17to22, SortShift22to3,
}

// ParseSortField accepts a column name in any case.
func ParseSortField(s string) (SortField, error) {
	for _, f := range sortFields {
		if strings.EqualFold(string(f), strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return "", customerrors.ErrUnknownField
}

// Sort returns a sorted copy. Text columns compare case-insensitively; ties keep input order.
func Sort(records []models.ProductivityRecord, field SortField, ascending bool) []models.ProductivityRecord {
	out := make([]models.ProductivityRecord, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !ascending {
			a, b = b, a
		}
		switch field {
		case SortName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortShift:
			return strings.ToLower(a.Shift) < strings.ToLower(b.Shift)
		case SortRole:
			return strings.ToLower(a.Role) < strings.ToLower(b.Role)
		case SortCallRecords:
			return a.CallRecords < b.CallRecords
		case SortCareRecords:
			return a.CareRecords < b.CareRecords
		case SortRecords:
			return a.Records < b.Records
		case SortContribution:
			return a.Contribution < b.Contribution
		case SortShift3to8:
			return a.Shift3to8 < b.Shift3to8
		case SortShift8to17:
			return a.Shift8to17 < b.Shift8to17
		case SortShift17to22:
			return a.Shift17to22 < b.Shift17to22
		case SortShift22to3:
			return a.Shift22to3 < b.Shift22to3
		}
		return false
	})
	return out
}

// ShiftTotal is the number of records produced by one work shift.
type ShiftTotal struct {
	Shift   string `json:"shift"`
	Records int    `json:"records"`
}

// ShiftDistribution sums records per shift in first-seen order.
func ShiftDistribution(records []models.ProductivityRecord) []ShiftTotal {
	index := make(map[string]int)
	out := make([]ShiftTotal, 0)
	for _, r := range records {
		i, ok := index[r.Shift]
		if !ok {
			i = len(out)
			index[r.Shift] = i
			out = append(out, ShiftTotal{Shift: r.Shift})
		}
		out[i].Records += r.Records
	}
	return out
}

// StaffTotal is one bar of the staff contribution chart.
type StaffTotal struct {
	Name    string `json:"name"`
	Records int    `json:"records"`
}

// Contributions lists each staff member's record total.
func Contributions(records []models.ProductivityRecord) []StaffTotal {
	out := make([]StaffTotal, 0, len(records))
	for _, r := range records {
		out = append(out, StaffTotal{Name: r.Name, Records: r.Records})
	}
	return out
}

// Total sums Records across the batch.
func Total(records []models.ProductivityRecord) int {
	total := 0
	for _, r := range records {
		total += r.Records
	}
	return total
}
