package store_test

import (
	"sync"
	"testing"

	"workforce-dashboard/models"
	"workforce-dashboard/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []models.ScheduleRecord {
	return []models.ScheduleRecord{
		{ID: "1", Name: "Sun Hengly", Date: "05-10-2025", Shift: "9PM-3AM", Position: "NOC"},
		{ID: "2", Name: "Keo Sothea", Date: "05-10-2025", Shift: "8AM-5PM", Position: "Agent"},
		{ID: "3", Name: "Sun Hengly", Date: "05-11-2025", Shift: "Day Off", Position: "NOC"},
		{ID: "4", Name: "Chan Dara", Date: "06-01-2025", Shift: "Public Holiday", Position: "Team Lead"},
		{ID: "5", Name: "Lim Nita", Date: "13-45-2025", Shift: "5PM-10PM", Position: "Agent"},
	}
}

func ids(records []models.ScheduleRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestByDate(t *testing.T) {
	s := store.New(sampleRecords()...)

	tests := map[string]struct {
		query    string
		expected []string
	}{
		"ISO":            {query: "2025-05-10", expected: []string{"1", "2"}},
		"Canonical":      {query: "05-10-2025", expected: []string{"1", "2"}},
		"Slashes":        {query: "5/10/2025", expected: []string{"1", "2"}},
		"ShortYear":      {query: "5/10/25", expected: []string{"1", "2"}},
		"NoMatch":        {query: "2025-05-12", expected: []string{}},
		"MalformedQuery": {query: "13-45-2025", expected: []string{}},
		"EmptyQuery":     {query: "", expected: []string{}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(s.ByDate(tt.query)))
		})
	}
}

func TestByDate_SameResultAcrossEncodings(t *testing.T) {
	s := store.New(models.ScheduleRecord{ID: "1", Name: "Sun Hengly", Date: "05-20-2025", Shift: "9PM-3AM", Position: "NOC"})
	assert.Equal(t, s.ByDate("05-20-2025"), s.ByDate("2025-05-20"))
	assert.Len(t, s.ByDate("2025-05-20"), 1)
}

func TestByMonth(t *testing.T) {
	s := store.New(append(sampleRecords(), models.ScheduleRecord{ID: "6", Name: "X", Date: "05/30/25"})...)

	assert.Equal(t, []string{"1", "2", "3", "6"}, ids(s.ByMonth(2025, 5)))
	assert.Equal(t, []string{"4"}, ids(s.ByMonth(2025, 6)))
	assert.Empty(t, s.ByMonth(2024, 5))
}

func TestByDateRange(t *testing.T) {
	s := store.New(sampleRecords()...)

	got, err := s.ByDateRange("2025-05-11", "06/01/2025")
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "4"}, ids(got))

	reversed, err := s.ByDateRange("06/01/2025", "2025-05-11")
	require.NoError(t, err)
	assert.Equal(t, ids(got), ids(reversed))

	_, err = s.ByDateRange("yesterday", "2025-05-11")
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	s := store.New(sampleRecords()...)

	tests := map[string]struct {
		query    string
		expected []string
	}{
		"PositionCaseInsensitive": {query: "noc", expected: []string{"1", "3"}},
		"NameSubstring":           {query: "HENG", expected: []string{"1", "3"}},
		"ShiftSubstring":          {query: "holiday", expected: []string{"4"}},
		"RawDateText":             {query: "13-45", expected: []string{"5"}},
		"DateText":                {query: "06-01", expected: []string{"4"}},
		"Empty":                   {query: "  ", expected: []string{"1", "2", "3", "4", "5"}},
		"NoMatch":                 {query: "zzz", expected: []string{}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(s.Search(tt.query)))
		})
	}
}

func TestFilterByField(t *testing.T) {
	s := store.New(sampleRecords()...)

	assert.Equal(t, []string{"2", "5"}, ids(s.FilterByField(models.FieldPosition, "Agent")))
	assert.Equal(t, []string{"3"}, ids(s.FilterByField(models.FieldShift, "Day Off")))
	assert.Equal(t, []string{"1", "3"}, ids(s.FilterByField(models.FieldName, "Sun Hengly")))
	assert.Empty(t, s.FilterByField(models.FieldName, "sun hengly"))
}

func TestDistinctValues(t *testing.T) {
	s := store.New(sampleRecords()...)

	assert.Equal(t, []string{"Sun Hengly", "Keo Sothea", "Chan Dara", "Lim Nita"}, s.DistinctValues(models.FieldName))
	assert.Equal(t, []string{"NOC", "Agent", "Team Lead"}, s.DistinctValues(models.FieldPosition))
	assert.Equal(t, []string{"9PM-3AM", "8AM-5PM", "Day Off", "Public Holiday", "5PM-10PM"}, s.DistinctValues(models.FieldShift))
}

func TestQuery(t *testing.T) {
	s := store.New(sampleRecords()...)

	tests := map[string]struct {
		filter   store.Filter
		expected []string
	}{
		"NoFilters":       {filter: store.Filter{}, expected: []string{"1", "2", "3", "4", "5"}},
		"AllIsNoFilter":   {filter: store.Filter{Name: "all", Shift: "all", Position: "all"}, expected: []string{"1", "2", "3", "4", "5"}},
		"SearchAndDate":   {filter: store.Filter{Search: "sun", Date: "2025-05-10"}, expected: []string{"1"}},
		"PositionAndName": {filter: store.Filter{Position: "NOC", Name: "Sun Hengly"}, expected: []string{"1", "3"}},
		"Shift":           {filter: store.Filter{Shift: "8AM-5PM"}, expected: []string{"2"}},
		"MalformedDate":   {filter: store.Filter{Date: "not-a-date"}, expected: []string{}},
		"Month":           {filter: store.Filter{Year: 2025, Month: 5}, expected: []string{"1", "2", "3"}},
		"MonthAndSearch":  {filter: store.Filter{Year: 2025, Month: 5, Search: "agent"}, expected: []string{"2"}},
		"RangeFromOnly":   {filter: store.Filter{From: "05/11/2025"}, expected: []string{"3", "4"}},
		"RangeReversed":   {filter: store.Filter{From: "2025-06-01", To: "2025-05-10"}, expected: []string{"1", "2", "3", "4"}},
		"RangeMalformed":  {filter: store.Filter{To: "soon"}, expected: []string{}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(s.Query(tt.filter)))
		})
	}
}

func TestReplaceAll(t *testing.T) {
	s := store.New(sampleRecords()...)
	before := s.All()

	next := []models.ScheduleRecord{{ID: "1", Name: "New", Date: "07-01-2025"}}
	s.ReplaceAll(next)
	next[0].Name = "mutated by caller"

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "New", s.All()[0].Name)
	assert.Len(t, before, 5, "earlier snapshots are unaffected")

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.All())
}

func TestQueriesDoNotMutate(t *testing.T) {
	s := store.New(sampleRecords()...)
	got := s.Search("noc")
	got[0].Name = "changed"
	assert.Equal(t, "Sun Hengly", s.All()[0].Name)
}

func TestConcurrentQueries(t *testing.T) {
	s := store.New(sampleRecords()...)
	expected := ids(s.ByDate("2025-05-10"))

	var wg sync.WaitGroup
	results := make([][]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = ids(s.ByDate("05/10/25"))
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, expected, got)
	}
}

func TestDaysWithRecords(t *testing.T) {
	s := store.New(sampleRecords()...)
	assert.Equal(t, []int{10, 11}, s.DaysWithRecords(2025, 5))
	assert.Equal(t, []int{}, s.DaysWithRecords(2025, 7))
}

func TestSort(t *testing.T) {
	records := sampleRecords()

	tests := map[string]struct {
		key       store.SortKey
		ascending bool
		expected  []string
	}{
		"DateAscending":      {key: store.SortByDate, ascending: true, expected: []string{"1", "2", "3", "4", "5"}},
		"DateDescending":     {key: store.SortByDate, ascending: false, expected: []string{"4", "3", "1", "2", "5"}},
		"NameAscending":      {key: store.SortByName, ascending: true, expected: []string{"4", "2", "5", "1", "3"}},
		"PositionDescending": {key: store.SortByPosition, ascending: false, expected: []string{"4", "1", "3", "2", "5"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(store.Sort(records, tt.key, tt.ascending)))
		})
	}

	// Input is left untouched.
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(records))
}

func TestParseSortKey(t *testing.T) {
	k, err := store.ParseSortKey("Date")
	require.NoError(t, err)
	assert.Equal(t, store.SortByDate, k)

	_, err = store.ParseSortKey("salary")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	stats := store.Summarize(sampleRecords())
	assert.Equal(t, store.Stats{Total: 5, DayOff: 1, PublicHoliday: 1}, stats)
}
