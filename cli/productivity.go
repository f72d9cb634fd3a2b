package cli

import (
	"fmt"
	"os"

	"workforce-dashboard/dates"
	"workforce-dashboard/formatter"
	"workforce-dashboard/ingest"
	"workforce-dashboard/productivity"

	"github.com/spf13/cobra"
)

type productivityOptions struct {
	calls            string
	care             string
	exclude          []string
	noDefaultExclude bool
	from             string
	to               string
	shift            string
	sort             string
	desc             bool
	format           string
}

func newProductivityCommand(a *app) *cobra.Command {
	opts := &productivityOptions{}

	cmd := &cobra.Command{
		Use:     "productivity",
		Short:   "Aggregate a call log and a care log into per-staff productivity",
		Example: `  workforce-dashboard productivity --calls calls.xlsx --care care.xlsx
  workforce-dashboard productivity --calls calls.csv --care care.csv --exclude "wrong number" --sort records --desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.pushMetrics()
			return runProductivity(cmd, a, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.calls, "calls", "", "call log file (required)")
	f.StringVar(&opts.care, "care", "", "care log file (required)")
	f.StringArrayVar(&opts.exclude, "exclude", nil, "additional solution label to leave out of counts (repeatable)")
	f.BoolVar(&opts.noDefaultExclude, "no-default-excludes", false, "count every solution unless listed with --exclude")
	f.StringVar(&opts.from, "from", "", "only count entries on or after this date")
	f.StringVar(&opts.to, "to", "", "only count entries on or before this date")
	f.StringVar(&opts.shift, "shift", "", "only staff on this work shift")
	f.StringVar(&opts.sort, "sort", "", "sort by any column, e.g. records or contribution")
	f.BoolVar(&opts.desc, "desc", false, "sort descending")
	f.StringVarP(&opts.format, "format", "f", formatter.Text, "output format: text|json|csv")
	_ = cmd.MarkFlagRequired("calls")
	_ = cmd.MarkFlagRequired("care")
	return cmd
}

func runProductivity(cmd *cobra.Command, a *app, opts *productivityOptions) error {
	var window productivity.Options
	var err error
	if opts.from != "" {
		if window.From, err = dates.Parse(opts.from); err != nil {
			return fmt.Errorf("--from: %w", err)
		}
	}
	if opts.to != "" {
		if window.To, err = dates.Parse(opts.to); err != nil {
			return fmt.Errorf("--to: %w", err)
		}
	}

	var field productivity.SortField
	if opts.sort != "" {
		if field, err = productivity.ParseSortField(opts.sort); err != nil {
			return fmt.Errorf("--sort %q: %w", opts.sort, err)
		}
	}

	calls, err := os.Open(opts.calls)
	if err != nil {
		return err
	}
	defer calls.Close()
	cares, err := os.Open(opts.care)
	if err != nil {
		return err
	}
	defer cares.Close()

	sess := a.newSession()
	if opts.noDefaultExclude {
		sess.Excluded.Replace(nil)
	}
	for _, label := range opts.exclude {
		sess.Excluded.Add(label)
	}

	if _, err := sess.UploadProductivity(cmd.Context(),
		ingest.Upload{Name: opts.calls, Reader: calls},
		ingest.Upload{Name: opts.care, Reader: cares},
		window,
	); err != nil {
		return err
	}

	records := productivity.FilterByShift(sess.Productivity.All(), opts.shift)
	if field != "" {
		records = productivity.Sort(records, field, !opts.desc)
	}

	out, err := formatter.FormatProductivity(records, opts.format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
