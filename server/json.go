package server

import (
	"encoding/json"
	"errors"
	"net/http"

	customerrors "workforce-dashboard/errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// Response is the envelope every JSON endpoint returns.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (s *Server) logInternalServerError(r *http.Request, err error) {
	log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Internal server error")
}

func (s *Server) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logInternalServerError(r, err)
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, r, status, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		s.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	s.errorResponse(w, r, http.StatusBadRequest, validationErrors[0].Translate(s.translator))
}

func (s *Server) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	s.logInternalServerError(r, err)
	s.errorResponse(w, r, http.StatusInternalServerError, "internal server error")
}

func (s *Server) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	s.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// ingestError maps an ingestion failure onto a response.
func (s *Server) ingestError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, customerrors.ErrUnsupportedFormat):
		s.errorResponse(w, r, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, customerrors.ErrNoData), errors.Is(err, customerrors.ErrUnreadableFile):
		s.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, customerrors.ErrStaleIngestion):
		s.errorResponse(w, r, http.StatusConflict, err.Error())
	default:
		s.internalServerError(w, r, err)
	}
}
