// Package dates converts the date encodings found in uploaded rosters into the
// single canonical MM-DD-YYYY form used for every same-day comparison.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	customerrors "workforce-dashboard/errors"

	"github.com/xuri/excelize/v2"
)

const (
	// CanonicalLayout is the identity form of a calendar day.
	CanonicalLayout = "01-02-2006"
	ISOLayout       = "2006-01-02"
	ReadableLayout  = "Jan 02, 2006"
)

// isoPattern is a cheap structural check so ISO input never reaches the month-first layouts.
var isoPattern = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)

type layout struct {
	value        string
	twoDigitYear bool
}

// Month-first layouts in priority order. "1" and "2" accept one or two digits,
// so both zero-padded and bare values parse.
var monthFirstLayouts = []layout{
	{value: "1-2-2006"},
	{value: "1/2/2006"},
	{value: "1-2-06", twoDigitYear: true},
	{value: "1/2/06", twoDigitYear: true},
}

// Parse returns the calendar day encoded by input as UTC midnight.
func Parse(input string) (time.Time, error) {
	value := strings.TrimSpace(input)
	if value == "" {
		return time.Time{}, &customerrors.DateError{Input: input, Err: customerrors.ErrMalformedDate}
	}

	if isoPattern.MatchString(value) {
		if t, err := time.Parse("2006-1-2", value); err == nil {
			return t, nil
		}
	}

	for _, l := range monthFirstLayouts {
		t, err := time.Parse(l.value, value)
		if err != nil {
			continue
		}
		// time.Parse puts 69-99 in the 1900s; rosters are always 20xx.
		if l.twoDigitYear && t.Year() < 2000 {
			t = t.AddDate(100, 0, 0)
		}
		return t, nil
	}

	return time.Time{}, &customerrors.DateError{Input: input, Err: customerrors.ErrMalformedDate}
}

// Normalize converts any accepted encoding (YYYY-MM-DD, MM-DD-YYYY, MM/DD/YYYY,
// MM-DD-YY, MM/DD/YY) into MM-DD-YYYY. When nothing matches, input is returned
// unchanged together with a *errors.DateError.
func Normalize(input string) (string, error) {
	t, err := Parse(input)
	if err != nil {
		return input, err
	}
	return t.Format(CanonicalLayout), nil
}

// Canonical is Normalize for callers that only need the comparison key.
func Canonical(input string) string {
	out, _ := Normalize(input)
	return out
}

// ToISO renders input as YYYY-MM-DD.
func ToISO(input string) (string, error) {
	return render(input, ISOLayout)
}

// ToReadable renders input as "Jan 02, 2006" for display and export.
func ToReadable(input string) (string, error) {
	return render(input, ReadableLayout)
}

func render(input, layout string) (string, error) {
	t, err := Parse(input)
	if err != nil {
		return input, err
	}
	return t.Format(layout), nil
}

// FromExcelSerial converts a raw Excel date serial into canonical form.
func FromExcelSerial(value string) (string, bool) {
	t, ok := ExcelSerialTime(value)
	if !ok {
		return "", false
	}
	return t.Format(CanonicalLayout), true
}

// ExcelSerialTime reads a raw Excel serial, keeping any fractional time of day.
// Only serials between 20000 and 80000 (roughly 1954-2119) are treated as dates
// so plain years and small counters are left alone.
func ExcelSerialTime(value string) (time.Time, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || serial < 20000 || serial > 80000 {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
