package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tzplanner/internal/domain"
)

// sessionBody is the input shared by POST /sessions and PUT /draft.
// An empty mode means Online; an empty base timezone means the reference
// default.
type sessionBody struct {
	Mode         string               `json:"mode" validate:"max=16"`
	CourseName   string               `json:"course_name" validate:"max=200"`
	Dates        []openapi_types.Date `json:"dates" validate:"max=366"`
	StartTime    string               `json:"start_time" validate:"omitempty,clock"`
	EndTime      string               `json:"end_time" validate:"omitempty,clock"`
	BaseTimezone string               `json:"base_timezone" validate:"omitempty,timezone"`
}

type sessionResponse struct {
	Key          uuid.UUID          `json:"key"`
	ID           int                `json:"id"`
	Mode         string             `json:"mode"`
	CourseName   string             `json:"course_name"`
	ScheduleName string             `json:"schedule_name"`
	StartDate    openapi_types.Date `json:"start_date"`
	EndDate      openapi_types.Date `json:"end_date"`
	Dates        string             `json:"dates"`
	BaseTimezone string             `json:"base_timezone"`
	StartTime    string             `json:"start_time"`
	EndTime      string             `json:"end_time"`
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.sessions.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	out := make([]sessionResponse, len(sessions))
	for i, sess := range sessions {
		out[i] = sessionToResponse(sess)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body sessionBody
	if !s.decodeBody(w, r, &body) {
		return
	}
	d, err := s.bodyToDraft(body)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	created, err := s.sessions.Add(r.Context(), d)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionToResponse(created))
}

// DeleteSession handles DELETE /sessions/{position}.
// position is 0-based; an out-of-range position still returns 204.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	position, err := strconv.Atoi(chi.URLParam(r, "position"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "position must be an integer")
		return
	}

	if err := s.sessions.Delete(r.Context(), position); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// bodyToDraft converts a request body into a domain.Draft with a
// normalised mode and date set.
func (s *Server) bodyToDraft(body sessionBody) (domain.Draft, error) {
	mode, err := domain.ParseMode(body.Mode)
	if err != nil {
		return domain.Draft{}, err
	}
	tz := body.BaseTimezone
	if tz == "" {
		tz = s.refs.DefaultTimezone
	}

	dates := make([]time.Time, len(body.Dates))
	for i, d := range body.Dates {
		dates[i] = d.Time
	}
	return domain.Draft{
		Mode:         mode,
		CourseName:   body.CourseName,
		StartTime:    body.StartTime,
		EndTime:      body.EndTime,
		BaseTimezone: tz,
	}.WithDates(dates...), nil
}

func sessionToResponse(sess domain.Session) sessionResponse {
	return sessionResponse{
		Key:          sess.Key,
		ID:           sess.ID,
		Mode:         string(sess.Mode),
		CourseName:   sess.CourseName,
		ScheduleName: sess.ScheduleName,
		StartDate:    openapi_types.Date{Time: sess.StartDate},
		EndDate:      openapi_types.Date{Time: sess.EndDate},
		Dates:        sess.Dates,
		BaseTimezone: sess.BaseTimezone,
		StartTime:    sess.StartTime,
		EndTime:      sess.EndTime,
	}
}
