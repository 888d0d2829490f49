package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tzplanner/internal/domain"
)

// ---- GET /sessions ---------------------------------------------------------

func TestListSessions_200(t *testing.T) {
	fixture := sessionFixture()
	h := newHTTPHandler(deps{sessions: &mockSessionServicer{
		list: func(_ context.Context) ([]domain.Session, error) {
			return []domain.Session{fixture}, nil
		},
	}})

	rec := serve(h, http.MethodGet, "/sessions", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, fixture.Key.String(), resp[0]["key"])
	assert.EqualValues(t, 1, resp[0]["id"])
	assert.Equal(t, "Online", resp[0]["mode"])
	assert.Equal(t, "Mar 05 - Mar 07, 2024", resp[0]["schedule_name"])
	assert.Equal(t, "2024-03-05", resp[0]["start_date"])
	assert.Equal(t, "2024-03-07", resp[0]["end_date"])
	assert.Equal(t, "2024-03-05|2024-03-06|2024-03-07", resp[0]["dates"])
}

func TestListSessions_200_Empty(t *testing.T) {
	h := newHTTPHandler(deps{sessions: &mockSessionServicer{
		list: func(_ context.Context) ([]domain.Session, error) { return []domain.Session{}, nil },
	}})

	rec := serve(h, http.MethodGet, "/sessions", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	// Must be a JSON array, not null.
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListSessions_500_HidesCause(t *testing.T) {
	h := newHTTPHandler(deps{sessions: &mockSessionServicer{
		list: func(_ context.Context) ([]domain.Session, error) {
			return nil, errors.New("connection refused")
		},
	}})

	rec := serve(h, http.MethodGet, "/sessions", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "internal_error", e.Error.Code)
	assert.NotContains(t, e.Error.Message, "connection refused")
}

// ---- POST /sessions --------------------------------------------------------

func TestCreateSession_201(t *testing.T) {
	var got domain.Draft
	h := newHTTPHandler(deps{sessions: &mockSessionServicer{
		add: func(_ context.Context, d domain.Draft) (domain.Session, error) {
			got = d
			return sessionFixture(), nil
		},
	}})

	body := jsonBody(t, map[string]any{
		"mode":          "offline",
		"course_name":   "Terraform Associate",
		"dates":         []string{"2024-03-07", "2024-03-05", "2024-03-06", "2024-03-05"},
		"start_time":    "09:00",
		"end_time":      "17:00",
		"base_timezone": "America/New_York",
	})
	rec := serve(h, http.MethodPost, "/sessions", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.ModeOffline, got.Mode)
	assert.Equal(t, "Terraform Associate", got.CourseName)
	assert.Equal(t, "2024-03-05|2024-03-06|2024-03-07", got.DatesString())
	assert.Equal(t, "09:00", got.StartTime)
	assert.Equal(t, "America/New_York", got.BaseTimezone)
}

func TestCreateSession_DefaultsModeAndTimezone(t *testing.T) {
	var got domain.Draft
	h := newHTTPHandler(deps{sessions: &mockSessionServicer{
		add: func(_ context.Context, d domain.Draft) (domain.Session, error) {
			got = d
			return sessionFixture(), nil
		},
	}})

	rec := serve(h, http.MethodPost, "/sessions", jsonBody(t, map[string]any{
		"dates": []string{"2024-03-05"},
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.ModeOnline, got.Mode)
	assert.Equal(t, refsFixture().DefaultTimezone, got.BaseTimezone)
}

func TestCreateSession_422_ServiceValidation(t *testing.T) {
	h := newHTTPHandler(deps{sessions: &mockSessionServicer{
		add: func(_ context.Context, _ domain.Draft) (domain.Session, error) {
			return domain.Session{}, fmt.Errorf("service.SessionService.Add: %w: no dates selected", domain.ErrValidation)
		},
	}})

	rec := serve(h, http.MethodPost, "/sessions", jsonBody(t, map[string]any{"course_name": "Terraform Associate"}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "validation_error", e.Error.Code)
	assert.Equal(t, "no dates selected", e.Error.Message)
}

func TestCreateSession_422_RequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    map[string]any
		message string
	}{
		{"unknown mode", map[string]any{"mode": "Hybrid"}, "mode of training"},
		{"malformed start time", map[string]any{"start_time": "9am"}, "start_time"},
		{"unknown timezone", map[string]any{"base_timezone": "Mars/Olympus"}, "base_timezone"},
		{"malformed date", map[string]any{"dates": []string{"05-03-2024"}}, "malformed request body"},
		{"unknown field", map[string]any{"colour": "red"}, "malformed request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHTTPHandler(deps{sessions: &mockSessionServicer{
				add: func(_ context.Context, _ domain.Draft) (domain.Session, error) {
					t.Fatal("service must not be called")
					return domain.Session{}, nil
				},
			}})

			rec := serve(h, http.MethodPost, "/sessions", jsonBody(t, tt.body))

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			e := decodeError(t, rec)
			assert.Equal(t, "validation_error", e.Error.Code)
			assert.Contains(t, e.Error.Message, tt.message)
		})
	}
}

func TestCreateSession_422_EmptyBody(t *testing.T) {
	rec := serve(newHTTPHandler(deps{}), http.MethodPost, "/sessions", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "request body is required", decodeError(t, rec).Error.Message)
}

// ---- DELETE /sessions/{position} -------------------------------------------

func TestDeleteSession_204(t *testing.T) {
	var got int
	h := newHTTPHandler(deps{sessions: &mockSessionServicer{
		delete: func(_ context.Context, position int) error {
			got = position
			return nil
		},
	}})

	rec := serve(h, http.MethodDelete, "/sessions/2", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 2, got)
	assert.Empty(t, rec.Body.String())
}

// Out-of-range positions are passed through; the service treats them as a no-op.
func TestDeleteSession_204_OutOfRange(t *testing.T) {
	h := newHTTPHandler(deps{sessions: &mockSessionServicer{
		delete: func(_ context.Context, position int) error { return nil },
	}})

	rec := serve(h, http.MethodDelete, "/sessions/-1", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteSession_400_NotAnInteger(t *testing.T) {
	rec := serve(newHTTPHandler(deps{}), http.MethodDelete, "/sessions/first", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec).Error.Code)
}
