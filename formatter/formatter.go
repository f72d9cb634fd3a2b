// Package formatter renders schedule and productivity datasets as text, JSON or CSV.
package formatter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"workforce-dashboard/dates"
	"workforce-dashboard/models"
	"workforce-dashboard/productivity"
)

// Output format names accepted by the CLI.
const (
	Text = "text"
	JSON = "json"
	CSV  = "csv"
)

// ScheduleHeader and ProductivityHeader are the fixed export header rows.
var (
	ScheduleHeader     = []string{"Name", "Date", "Shift", "Position"}
	ProductivityHeader = []string{"Work Shift", "Name", "Callogs", "Carelogs", "3AM-8AM", "8AM-5PM", "5PM-10PM", "10PM-3AM", "Total Records"}
)

// FormatSchedule renders records in the named format.
func FormatSchedule(records []models.ScheduleRecord, format string) (string, error) {
	switch strings.ToLower(format) {
	case Text, "":
		return ScheduleText(records), nil
	case JSON:
		return ScheduleJSON(records)
	case CSV:
		return ScheduleCSV(records), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

// FormatProductivity renders records in the named format.
func FormatProductivity(records []models.ProductivityRecord, format string) (string, error) {
	switch strings.ToLower(format) {
	case Text, "":
		return ProductivityText(records), nil
	case JSON:
		return ProductivityJSON(records)
	case CSV:
		return ProductivityCSV(records), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

// ScheduleCSV returns the schedule export: a bare header row, then one quoted
// row per record with the date in readable form.
func ScheduleCSV(records []models.ScheduleRecord) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(ScheduleHeader, ","))
	sb.WriteString("\n")

	for _, r := range records {
		writeQuotedRow(&sb, []string{r.Name, readableDate(r.Date), r.Shift, r.Position})
	}
	return sb.String()
}

// ProductivityCSV returns the productivity export in the same layout as ScheduleCSV.
func ProductivityCSV(records []models.ProductivityRecord) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(ProductivityHeader, ","))
	sb.WriteString("\n")

	for _, r := range records {
		writeQuotedRow(&sb, []string{
			r.Shift,
			r.Name,
			strconv.Itoa(r.CallRecords),
			strconv.Itoa(r.CareRecords),
			strconv.Itoa(r.Shift3to8),
			strconv.Itoa(r.Shift8to17),
			strconv.Itoa(r.Shift17to22),
			strconv.Itoa(r.Shift22to3),
			strconv.Itoa(r.Records),
		})
	}
	return sb.String()
}

// writeQuotedRow double-quotes every field; csv.Writer only quotes when it must.
func writeQuotedRow(sb *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(f, `"`, `""`))
		sb.WriteByte('"')
	}
	sb.WriteByte('\n')
}

// readableDate keeps the stored text for dates that were never normalized.
func readableDate(date string) string {
	readable, _ := dates.ToReadable(date)
	return readable
}

// ScheduleText returns one line per record followed by a summary line.
func ScheduleText(records []models.ScheduleRecord) string {
	if len(records) == 0 {
		return "no records\n"
	}

	var sb strings.Builder
	for _, r := range records {
		sb.WriteString(fmt.Sprintf("%-12s : %s ; shift=%s ; position=%s\n", readableDate(r.Date), r.Name, orDash(r.Shift), orDash(r.Position)))
	}
	sb.WriteString(fmt.Sprintf("total=%d\n", len(records)))
	return sb.String()
}

// ScheduleJSON returns the records as an indented JSON array.
func ScheduleJSON(records []models.ScheduleRecord) (string, error) {
	if records == nil {
		records = []models.ScheduleRecord{}
	}
	jsonBytes, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}

// ProductivityText returns one line per staff member. Contribution is rounded
// to one decimal here and nowhere else.
func ProductivityText(records []models.ProductivityRecord) string {
	if len(records) == 0 {
		return "no records\n"
	}

	var sb strings.Builder
	for _, r := range records {
		sb.WriteString(fmt.Sprintf("%s [%s] : calls=%d, care=%d, total=%d (%.1f%%) ; %s=%d, %s=%d, %s=%d, %s=%d\n",
			r.Name, orDash(r.Shift), r.CallRecords, r.CareRecords, r.Records, r.Contribution,
			productivity.Window3to8, r.Shift3to8,
			productivity.Window8to17, r.Shift8to17,
			productivity.Window17to22, r.Shift17to22,
			productivity.Window22to3, r.Shift22to3))
	}
	sb.WriteString(fmt.Sprintf("staff=%d ; records=%d\n", len(records), productivity.Total(records)))
	return sb.String()
}

// ProductivityJSON returns the records as an indented JSON array.
func ProductivityJSON(records []models.ProductivityRecord) (string, error) {
	if records == nil {
		records = []models.ProductivityRecord{}
	}
	jsonBytes, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
