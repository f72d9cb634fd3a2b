// Package session ties together the datasets one dashboard user works with.
package session

import (
	"context"
	"io"

	"workforce-dashboard/ingest"
	"workforce-dashboard/models"
	"workforce-dashboard/productivity"
	"workforce-dashboard/store"

	"github.com/google/uuid"
)

// Options configures a new session.
type Options struct {
	// InitialSchedule seeds the schedule store before any upload.
	InitialSchedule []models.ScheduleRecord
	// ExcludedSolutions replaces productivity.DefaultExcludedSolutions when non-nil.
	ExcludedSolutions []string
}

// Session owns a schedule store, a productivity store and the excluded
// solutions that apply to productivity uploads. Nothing is shared between sessions.
type Session struct {
	ID           uuid.UUID
	Schedule     *store.Store
	Productivity *productivity.Store
	Excluded     *productivity.ExcludedSet

	scheduleIngest     *ingest.Schedule
	productivityIngest *ingest.Productivity
}

// New creates a session.
func New(opts Options) *Session {
	excluded := productivity.NewDefaultExcludedSet()
	if opts.ExcludedSolutions != nil {
		excluded = productivity.NewExcludedSet(opts.ExcludedSolutions...)
	}

	s := &Session{
		ID:           uuid.New(),
		Schedule:     store.New(opts.InitialSchedule...),
		Productivity: productivity.NewStore(),
		Excluded:     excluded,
	}
	s.scheduleIngest = ingest.NewSchedule(s.Schedule)
	s.productivityIngest = ingest.NewProductivity(s.Productivity, s.Excluded)
	return s
}

// UploadSchedule replaces the schedule with the content of r.
func (s *Session) UploadSchedule(ctx context.Context, r io.Reader, filename string) (ingest.Report, error) {
	return s.scheduleIngest.Ingest(ctx, r, filename)
}

// UploadProductivity replaces the productivity figures with those derived from the two logs.
func (s *Session) UploadProductivity(ctx context.Context, calls, cares ingest.Upload, opts productivity.Options) (ingest.Report, error) {
	return s.productivityIngest.Ingest(ctx, calls, cares, opts)
}

// ClearSchedule discards the schedule dataset, including any upload still running.
func (s *Session) ClearSchedule() {
	s.scheduleIngest.Clear()
}

// ClearProductivity discards the productivity dataset, including any upload still running.
func (s *Session) ClearProductivity() {
	s.productivityIngest.Clear()
}

// Reset discards both datasets. Excluded solutions are kept.
func (s *Session) Reset() {
	s.ClearSchedule()
	s.ClearProductivity()
}
