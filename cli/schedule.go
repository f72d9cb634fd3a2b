package cli

import (
	"fmt"
	"os"
	"time"

	"workforce-dashboard/formatter"
	"workforce-dashboard/store"

	"github.com/spf13/cobra"
)

type scheduleOptions struct {
	filter store.Filter
	month  string
	sort   string
	desc   bool
	format string
	stats  bool
}

func newScheduleCommand(a *app) *cobra.Command {
	opts := &scheduleOptions{}

	cmd := &cobra.Command{
		Use:   "schedule FILE",
		Short: "Load a roster and print the matching records",
		Example: `  workforce-dashboard schedule roster.xlsx --date 2025-05-10
  workforce-dashboard schedule roster.csv --month 2025-05 --position NOC --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.pushMetrics()
			return runSchedule(cmd, a, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.filter.Date, "date", "", "only records on this date (any accepted encoding)")
	f.StringVar(&opts.month, "month", "", "only records in this month, as YYYY-MM")
	f.StringVar(&opts.filter.From, "from", "", "only records on or after this date")
	f.StringVar(&opts.filter.To, "to", "", "only records on or before this date")
	f.StringVar(&opts.filter.Search, "search", "", "case-insensitive text search over every field")
	f.StringVar(&opts.filter.Name, "name", "", "exact staff name")
	f.StringVar(&opts.filter.Shift, "shift", "", "exact shift")
	f.StringVar(&opts.filter.Position, "position", "", "exact position")
	f.StringVar(&opts.sort, "sort", "", "sort by name|date|shift|position")
	f.BoolVar(&opts.desc, "desc", false, "sort descending")
	f.StringVarP(&opts.format, "format", "f", formatter.Text, "output format: text|json|csv")
	f.BoolVar(&opts.stats, "stats", false, "print shift counters instead of records")
	return cmd
}

func runSchedule(cmd *cobra.Command, a *app, opts *scheduleOptions, path string) error {
	if opts.month != "" {
		m, err := time.Parse("2006-01", opts.month)
		if err != nil {
			return fmt.Errorf("--month must be YYYY-MM (got %q)", opts.month)
		}
		opts.filter.Year, opts.filter.Month = m.Year(), int(m.Month())
	}

	var key store.SortKey
	if opts.sort != "" {
		k, err := store.ParseSortKey(opts.sort)
		if err != nil {
			return fmt.Errorf("--sort %q: %w", opts.sort, err)
		}
		key = k
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	sess := a.newSession()
	if _, err := sess.UploadSchedule(cmd.Context(), file, path); err != nil {
		return err
	}

	records := sess.Schedule.Query(opts.filter)
	if key != "" {
		records = store.Sort(records, key, !opts.desc)
	}

	if opts.stats {
		stats := store.Summarize(records)
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "total=%d ; day off=%d ; public holiday=%d\n", stats.Total, stats.DayOff, stats.PublicHoliday)
		return err
	}

	out, err := formatter.FormatSchedule(records, opts.format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
