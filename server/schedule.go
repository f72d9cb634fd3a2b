package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"workforce-dashboard/dates"
	"workforce-dashboard/formatter"
	"workforce-dashboard/models"
	"workforce-dashboard/store"

	"github.com/go-chi/chi/v5"
)

type scheduleQuery struct {
	Search   string `query:"search"`
	Name     string `query:"name"`
	Shift    string `query:"shift"`
	Position string `query:"position"`
	Date     string `query:"date"`
	Month    string `query:"month" validate:"omitempty,datetime=2006-01"`
	From     string `query:"from" validate:"required_with=To"`
	To       string `query:"to" validate:"required_with=From"`
	Sort     string `query:"sort" validate:"omitempty,oneof=name date shift position"`
	Order    string `query:"order" validate:"omitempty,oneof=asc desc"`
}

func newScheduleQuery(r *http.Request) scheduleQuery {
	values := r.URL.Query()
	get := func(key string) string { return strings.TrimSpace(values.Get(key)) }
	return scheduleQuery{
		Search:   get("search"),
		Name:     get("name"),
		Shift:    get("shift"),
		Position: get("position"),
		Date:     get("date"),
		Month:    get("month"),
		From:     get("from"),
		To:       get("to"),
		Sort:     get("sort"),
		Order:    get("order"),
	}
}

func (s *Server) scheduleRecords(q scheduleQuery) ([]models.ScheduleRecord, error) {
	filter := store.Filter{
		Search:   q.Search,
		Name:     q.Name,
		Shift:    q.Shift,
		Position: q.Position,
		Date:     q.Date,
		From:     q.From,
		To:       q.To,
	}
	for _, bound := range []string{q.From, q.To} {
		if bound == "" {
			continue
		}
		if _, err := dates.Parse(bound); err != nil {
			return nil, err
		}
	}
	if q.Month != "" {
		m, err := time.Parse("2006-01", q.Month)
		if err != nil {
			return nil, err
		}
		filter.Year, filter.Month = m.Year(), int(m.Month())
	}

	records := s.session.Schedule.Query(filter)

	if q.Sort != "" {
		key, err := store.ParseSortKey(q.Sort)
		if err != nil {
			return nil, err
		}
		records = store.Sort(records, key, q.Order != "desc")
	}
	return records, nil
}

func (s *Server) GetSchedule(w http.ResponseWriter, r *http.Request) {
	q := newScheduleQuery(r)
	if err := s.validate.Struct(q); err != nil {
		s.badRequest(w, r, err)
		return
	}

	records, err := s.scheduleRecords(q)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	data := map[string]any{
		"records": records,
		"stats":   store.Summarize(records),
	}
	if q.Month != "" {
		m, _ := time.Parse("2006-01", q.Month)
		data["days"] = s.session.Schedule.DaysWithRecords(m.Year(), int(m.Month()))
	}
	s.successResponse(w, r, fmt.Sprintf("%d records", len(records)), data)
}

func (s *Server) GetDistinctValues(w http.ResponseWriter, r *http.Request) {
	field, err := models.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	s.successResponse(w, r, "distinct "+string(field)+" values", s.session.Schedule.DistinctValues(field))
}

func (s *Server) UploadSchedule(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes())

	file, header, err := r.FormFile("file")
	if err != nil {
		s.uploadError(w, r, "file", err)
		return
	}
	defer file.Close()

	report, err := s.session.UploadSchedule(r.Context(), file, header.Filename)
	if err != nil {
		s.ingestError(w, r, err)
		return
	}
	s.successResponse(w, r, report.Summary(), report)
}

func (s *Server) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	q := newScheduleQuery(r)
	if err := s.validate.Struct(q); err != nil {
		s.badRequest(w, r, err)
		return
	}

	records, err := s.scheduleRecords(q)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	if len(records) == 0 {
		s.errorResponse(w, r, http.StatusNotFound, "no data to export")
		return
	}

	writeCSV(w, "work_schedule.csv", formatter.ScheduleCSV(records))
}

func (s *Server) ClearSchedule(w http.ResponseWriter, r *http.Request) {
	s.session.ClearSchedule()
	s.successResponse(w, r, "schedule cleared", nil)
}

// uploadError reports a missing or oversized multipart file.
func (s *Server) uploadError(w http.ResponseWriter, r *http.Request, field string, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		s.errorResponse(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d MB", s.config.MaxUploadMB))
		return
	}
	s.errorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("missing upload field %q", field))
}

func writeCSV(w http.ResponseWriter, filename, body string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
