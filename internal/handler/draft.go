package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tzplanner/internal/domain"
)

type draftResponse struct {
	Mode         string               `json:"mode"`
	CourseName   string               `json:"course_name"`
	Dates        []openapi_types.Date `json:"dates"`
	StartTime    string               `json:"start_time"`
	EndTime      string               `json:"end_time"`
	BaseTimezone string               `json:"base_timezone"`
}

// GetDraft handles GET /draft.
func (s *Server) GetDraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, draftToResponse(s.drafts.Get(r.Context())))
}

// ReplaceDraft handles PUT /draft.
func (s *Server) ReplaceDraft(w http.ResponseWriter, r *http.Request) {
	var body sessionBody
	if !s.decodeBody(w, r, &body) {
		return
	}
	d, err := s.bodyToDraft(body)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, draftToResponse(s.drafts.Replace(r.Context(), d)))
}

// ToggleDraftDate handles POST /draft/dates/{date}.
// The date is selected if it was not, and deselected if it was.
func (s *Server) ToggleDraftDate(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, unwrapMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, draftToResponse(s.drafts.ToggleDate(r.Context(), date)))
}

// CommitDraft handles POST /draft/commit.
// On success the new session is returned and the draft is reset.
func (s *Server) CommitDraft(w http.ResponseWriter, r *http.Request) {
	created, err := s.drafts.Commit(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionToResponse(created))
}

func draftToResponse(d domain.Draft) draftResponse {
	dates := make([]openapi_types.Date, len(d.Dates))
	for i, t := range d.Dates {
		dates[i] = openapi_types.Date{Time: t}
	}
	return draftResponse{
		Mode:         string(d.Mode),
		CourseName:   d.CourseName,
		Dates:        dates,
		StartTime:    d.StartTime,
		EndTime:      d.EndTime,
		BaseTimezone: d.BaseTimezone,
	}
}
