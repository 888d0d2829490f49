package handler

import (
	"net/http"

	"github.com/pkordes/tzplanner/internal/domain"
)

type timezonesResponse struct {
	Default string   `json:"default"`
	Base    []string `json:"base"`
}

// ListCountries handles GET /reference/countries.
// Entries are returned in conversion order.
func (s *Server) ListCountries(w http.ResponseWriter, _ *http.Request) {
	out := s.refs.Countries
	if out == nil {
		out = []domain.ReferenceEntry{}
	}
	writeJSON(w, http.StatusOK, out)
}

// ListCourses handles GET /reference/courses.
func (s *Server) ListCourses(w http.ResponseWriter, _ *http.Request) {
	out := s.refs.Courses
	if out == nil {
		out = []string{}
	}
	writeJSON(w, http.StatusOK, out)
}

// ListTimezones handles GET /reference/timezones.
func (s *Server) ListTimezones(w http.ResponseWriter, _ *http.Request) {
	base := s.refs.BaseTimezones
	if base == nil {
		base = []string{}
	}
	writeJSON(w, http.StatusOK, timezonesResponse{Default: s.refs.DefaultTimezone, Base: base})
}
