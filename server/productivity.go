package server

import (
	"fmt"
	"net/http"
	"strings"

	"workforce-dashboard/dates"
	"workforce-dashboard/formatter"
	"workforce-dashboard/ingest"
	"workforce-dashboard/models"
	"workforce-dashboard/productivity"
)

type productivityQuery struct {
	Shift string `query:"shift"`
	Sort  string `query:"sort" validate:"omitempty,oneof=name shift role callRecords careRecords records contribution shift3to8 shift8to17 shift17to22 shift22to3"`
	Order string `query:"order" validate:"omitempty,oneof=asc desc"`
}

func newProductivityQuery(r *http.Request) productivityQuery {
	values := r.URL.Query()
	return productivityQuery{
		Shift: strings.TrimSpace(values.Get("shift")),
		Sort:  strings.TrimSpace(values.Get("sort")),
		Order: strings.TrimSpace(values.Get("order")),
	}
}

func (s *Server) productivityRecords(q productivityQuery) []models.ProductivityRecord {
	records := productivity.FilterByShift(s.session.Productivity.All(), q.Shift)
	if q.Sort != "" {
		field, err := productivity.ParseSortField(q.Sort)
		if err == nil {
			records = productivity.Sort(records, field, q.Order != "desc")
		}
	}
	return records
}

func (s *Server) GetProductivity(w http.ResponseWriter, r *http.Request) {
	q := newProductivityQuery(r)
	if err := s.validate.Struct(q); err != nil {
		s.badRequest(w, r, err)
		return
	}

	records := s.productivityRecords(q)
	s.successResponse(w, r, fmt.Sprintf("%d staff", len(records)), map[string]any{
		"records":           records,
		"total":             productivity.Total(records),
		"shiftDistribution": productivity.ShiftDistribution(records),
		"contributions":     productivity.Contributions(records),
	})
}

func (s *Server) UploadProductivity(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 2*s.config.MaxUploadBytes())

	calls, callsHeader, err := r.FormFile("calls")
	if err != nil {
		s.uploadError(w, r, "calls", err)
		return
	}
	defer calls.Close()

	cares, caresHeader, err := r.FormFile("care")
	if err != nil {
		s.uploadError(w, r, "care", err)
		return
	}
	defer cares.Close()

	var opts productivity.Options
	if from := strings.TrimSpace(r.FormValue("from")); from != "" {
		if opts.From, err = dates.Parse(from); err != nil {
			s.badRequest(w, r, err)
			return
		}
	}
	if to := strings.TrimSpace(r.FormValue("to")); to != "" {
		if opts.To, err = dates.Parse(to); err != nil {
			s.badRequest(w, r, err)
			return
		}
	}

	report, err := s.session.UploadProductivity(r.Context(),
		ingest.Upload{Name: callsHeader.Filename, Reader: calls},
		ingest.Upload{Name: caresHeader.Filename, Reader: cares},
		opts,
	)
	if err != nil {
		s.ingestError(w, r, err)
		return
	}
	s.successResponse(w, r, fmt.Sprintf("loaded %d staff from %d rows", report.Loaded, report.Total), report)
}

func (s *Server) ExportProductivity(w http.ResponseWriter, r *http.Request) {
	q := newProductivityQuery(r)
	if err := s.validate.Struct(q); err != nil {
		s.badRequest(w, r, err)
		return
	}

	records := s.productivityRecords(q)
	if len(records) == 0 {
		s.errorResponse(w, r, http.StatusNotFound, "no data to export")
		return
	}
	writeCSV(w, "staff_productivity.csv", formatter.ProductivityCSV(records))
}

func (s *Server) ClearProductivity(w http.ResponseWriter, r *http.Request) {
	s.session.ClearProductivity()
	s.successResponse(w, r, "productivity cleared", nil)
}
