// Package ingest runs uploads through decode, mapping and aggregation and
// commits the result to a session's stores.
package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	customerrors "workforce-dashboard/errors"
	"workforce-dashboard/mapper"
	"workforce-dashboard/metrics"
	"workforce-dashboard/models"
	"workforce-dashboard/parser"
	"workforce-dashboard/productivity"
	"workforce-dashboard/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Report summarizes one committed upload.
type Report struct {
	BatchID  uuid.UUID        `json:"batchId"`
	Loaded   int              `json:"loaded"`
	Total    int              `json:"total"`
	Dropped  int              `json:"dropped"`
	Warnings []models.Warning `json:"warnings,omitempty"`
	Duration time.Duration    `json:"duration"`
}

// Summary is the user-facing load message.
func (r Report) Summary() string {
	return fmt.Sprintf("loaded %d of %d rows", r.Loaded, r.Total)
}

// Upload is a named file handed in by a caller.
type Upload struct {
	Name   string
	Reader io.Reader
}

// Schedule ingests roster uploads into a store.
type Schedule struct {
	Store   *store.Store
	Aliases mapper.AliasTable
	gate    Gate
}

// NewSchedule creates a schedule ingester using the default header aliases.
func NewSchedule(s *store.Store) *Schedule {
	return &Schedule{Store: s, Aliases: mapper.DefaultScheduleAliases()}
}

// Ingest decodes and maps one file and, if this is still the latest upload,
// replaces the store's content. On any error the store is left unchanged.
func (s *Schedule) Ingest(ctx context.Context, r io.Reader, filename string) (Report, error) {
	ticket := s.gate.Begin()
	start := time.Now()
	batch := uuid.New()
	logger := log.With().Str("kind", metrics.KindSchedule).Str("batch", batch.String()).Str("file", filename).Logger()

	rows, err := decode(ctx, r, filename)
	if err != nil {
		metrics.RecordIngestion(metrics.KindSchedule, metrics.OutcomeFailed, 0, 0)
		logger.Error().Err(err).Msg("Decode failed")
		return Report{}, err
	}

	result := mapper.Map(rows, s.Aliases)
	for _, w := range result.Warnings {
		if w.Field == "date" && w.Value != "" {
			metrics.DateNormalizationFailures.Inc()
		}
		logger.Warn().Int("row", w.Row).Str("field", w.Field).Str("value", w.Value).Msg(w.Message)
	}
	if err := result.Err(); err != nil {
		metrics.RecordIngestion(metrics.KindSchedule, metrics.OutcomeFailed, 0, 0)
		logger.Error().Err(err).Int("rows", result.Total).Msg("No usable rows")
		return Report{}, err
	}

	if !s.gate.Commit(ticket, func() { s.Store.ReplaceAll(result.Records) }) {
		metrics.RecordIngestion(metrics.KindSchedule, metrics.OutcomeStale, 0, 0)
		logger.Info().Msg("Discarded superseded upload")
		return Report{}, customerrors.ErrStaleIngestion
	}

	report := Report{
		BatchID:  batch,
		Loaded:   len(result.Records),
		Total:    result.Total,
		Dropped:  result.Dropped,
		Warnings: result.Warnings,
		Duration: time.Since(start),
	}
	metrics.RecordIngestion(metrics.KindSchedule, metrics.OutcomeLoaded, report.Loaded, report.Dropped)
	logger.Info().Int("loaded", report.Loaded).Int("total", report.Total).Dur("took", report.Duration).Msg(report.Summary())
	return report, nil
}

// Clear empties the store. Any upload still in flight is superseded and will
// not commit over the cleared state.
func (s *Schedule) Clear() {
	s.gate.Commit(s.gate.Begin(), func() {
		s.Store.Reset()
		metrics.CurrentRecords.WithLabelValues(metrics.KindSchedule).Set(0)
	})
}

// Productivity ingests a call-log and care-log pair into a productivity store.
type Productivity struct {
	Store    *productivity.Store
	Excluded *productivity.ExcludedSet
	Aliases  productivity.LogAliases
	gate     Gate
}

// NewProductivity creates a productivity ingester using the default log aliases.
func NewProductivity(s *productivity.Store, excluded *productivity.ExcludedSet) *Productivity {
	return &Productivity{Store: s, Excluded: excluded, Aliases: productivity.DefaultLogAliases()}
}

// Ingest decodes both logs concurrently, aggregates them with the current
// excluded solutions and, if this is still the latest upload, replaces the
// store's content. Both files are required; on any error the store is left unchanged.
func (p *Productivity) Ingest(ctx context.Context, calls, cares Upload, opts productivity.Options) (Report, error) {
	ticket := p.gate.Begin()
	start := time.Now()
	batch := uuid.New()
	logger := log.With().Str("kind", metrics.KindProductivity).Str("batch", batch.String()).Logger()

	var callRows, careRows []models.RawRow
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := decode(gctx, calls.Reader, calls.Name)
		if err != nil {
			return fmt.Errorf("call log: %w", err)
		}
		callRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := decode(gctx, cares.Reader, cares.Name)
		if err != nil {
			return fmt.Errorf("care log: %w", err)
		}
		careRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		metrics.RecordIngestion(metrics.KindProductivity, metrics.OutcomeFailed, 0, 0)
		logger.Error().Err(err).Msg("Decode failed")
		return Report{}, err
	}

	callEntries, callWarnings := productivity.MapLogs(callRows, models.SourceCall, p.Aliases)
	careEntries, careWarnings := productivity.MapLogs(careRows, models.SourceCare, p.Aliases)
	warnings := append(callWarnings, careWarnings...)
	for _, w := range warnings {
		logger.Warn().Int("row", w.Row).Str("field", w.Field).Str("value", w.Value).Msg(w.Message)
	}

	total := len(callRows) + len(careRows)
	if len(callEntries)+len(careEntries) == 0 {
		metrics.RecordIngestion(metrics.KindProductivity, metrics.OutcomeFailed, 0, 0)
		logger.Error().Int("rows", total).Msg("No usable log entries")
		return Report{}, customerrors.ErrNoData
	}

	aggStart := time.Now()
	records := productivity.Aggregate(callEntries, careEntries, p.Excluded, opts)
	metrics.AggregateDurationSeconds.Observe(time.Since(aggStart).Seconds())

	if !p.gate.Commit(ticket, func() { p.Store.ReplaceAll(records) }) {
		metrics.RecordIngestion(metrics.KindProductivity, metrics.OutcomeStale, 0, 0)
		logger.Info().Msg("Discarded superseded upload")
		return Report{}, customerrors.ErrStaleIngestion
	}

	report := Report{
		BatchID:  batch,
		Loaded:   len(records),
		Total:    total,
		Dropped:  len(warnings),
		Warnings: warnings,
		Duration: time.Since(start),
	}
	metrics.RecordIngestion(metrics.KindProductivity, metrics.OutcomeLoaded, report.Loaded, report.Dropped)
	logger.Info().Int("staff", report.Loaded).Int("rows", report.Total).Dur("took", report.Duration).Msg("Productivity loaded")
	return report, nil
}

// Clear empties the store and supersedes any upload still in flight.
func (p *Productivity) Clear() {
	p.gate.Commit(p.gate.Begin(), func() {
		p.Store.Reset()
		metrics.CurrentRecords.WithLabelValues(metrics.KindProductivity).Set(0)
	})
}

func decode(ctx context.Context, r io.Reader, filename string) ([]models.RawRow, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %s: no file", customerrors.ErrUnreadableFile, filename)
	}
	start := time.Now()
	rows, err := parser.Decode(ctx, r, filename)

	format := "unknown"
	if f, ferr := parser.DetectFormat(filename); ferr == nil {
		format = string(f)
	}
	metrics.DecodeDurationSeconds.WithLabelValues(format).Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, err
	}
	return rows, nil
}
