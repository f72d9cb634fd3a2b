package server

import "net/http"

func (s *Server) GetExcludedSolutions(w http.ResponseWriter, r *http.Request) {
	s.successResponse(w, r, "excluded solutions", s.session.Excluded.List())
}

// ReplaceExcludedSolutions swaps the whole list. The change applies to the
// next productivity upload; figures already loaded are not recomputed.
func (s *Server) ReplaceExcludedSolutions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Solutions []string `json:"solutions" validate:"required,dive,required"`
	}

	if err := s.readJSON(r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.badRequest(w, r, err)
		return
	}

	s.session.Excluded.Replace(req.Solutions)
	s.successResponse(w, r, "excluded solutions updated", s.session.Excluded.List())
}

func (s *Server) ResetExcludedSolutions(w http.ResponseWriter, r *http.Request) {
	s.session.Excluded.Reset()
	s.successResponse(w, r, "excluded solutions reset", s.session.Excluded.List())
}
