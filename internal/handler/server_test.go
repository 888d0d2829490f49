package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tzplanner/internal/domain"
	"github.com/pkordes/tzplanner/internal/handler"
	"github.com/pkordes/tzplanner/internal/reference"
)

// mockSessionServicer is a test double for handler.SessionServicer.
// Set only the method fields your test needs.
type mockSessionServicer struct {
	add    func(ctx context.Context, d domain.Draft) (domain.Session, error)
	delete func(ctx context.Context, position int) error
	list   func(ctx context.Context) ([]domain.Session, error)
}

func (m *mockSessionServicer) Add(ctx context.Context, d domain.Draft) (domain.Session, error) {
	return m.add(ctx, d)
}
func (m *mockSessionServicer) Delete(ctx context.Context, position int) error {
	return m.delete(ctx, position)
}
func (m *mockSessionServicer) List(ctx context.Context) ([]domain.Session, error) {
	return m.list(ctx)
}

// mockDraftServicer is a test double for handler.DraftServicer.
type mockDraftServicer struct {
	get     func(ctx context.Context) domain.Draft
	replace func(ctx context.Context, d domain.Draft) domain.Draft
	toggle  func(ctx context.Context, date time.Time) domain.Draft
	commit  func(ctx context.Context) (domain.Session, error)
}

func (m *mockDraftServicer) Get(ctx context.Context) domain.Draft { return m.get(ctx) }
func (m *mockDraftServicer) Replace(ctx context.Context, d domain.Draft) domain.Draft {
	return m.replace(ctx, d)
}
func (m *mockDraftServicer) ToggleDate(ctx context.Context, date time.Time) domain.Draft {
	return m.toggle(ctx, date)
}
func (m *mockDraftServicer) Commit(ctx context.Context) (domain.Session, error) {
	return m.commit(ctx)
}

// mockExportServicer is a test double for handler.ExportServicer.
type mockExportServicer struct {
	export func(ctx context.Context) (domain.Export, error)
}

func (m *mockExportServicer) Export(ctx context.Context) (domain.Export, error) {
	return m.export(ctx)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.SessionServicer = (*mockSessionServicer)(nil)
	_ handler.DraftServicer   = (*mockDraftServicer)(nil)
	_ handler.ExportServicer  = (*mockExportServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

type deps struct {
	sessions *mockSessionServicer
	drafts   *mockDraftServicer
	export   *mockExportServicer
	opts     handler.Options
}

// newHTTPHandler wires a Server with the given mocks the way main.go does.
func newHTTPHandler(d deps) http.Handler {
	if d.sessions == nil {
		d.sessions = &mockSessionServicer{}
	}
	if d.drafts == nil {
		d.drafts = &mockDraftServicer{}
	}
	if d.export == nil {
		d.export = &mockExportServicer{}
	}
	return handler.NewServer(d.sessions, d.drafts, d.export, refsFixture(), d.opts).Routes()
}

func refsFixture() reference.Data {
	return reference.Data{
		DefaultTimezone: "America/New_York",
		BaseTimezones:   []string{"America/New_York", "Asia/Kolkata"},
		Courses:         []string{"Kubernetes Fundamentals", "Terraform Associate"},
		Countries: []domain.ReferenceEntry{
			{Country: "India", City: "New Delhi", Region: "APAC", Timezone: "Asia/Kolkata"},
		},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sessionFixture() domain.Session {
	return domain.Session{
		Key:          uuid.New(),
		ID:           1,
		Mode:         domain.ModeOnline,
		CourseName:   "Terraform Associate",
		ScheduleName: "Mar 05 - Mar 07, 2024",
		StartDate:    date(2024, 3, 5),
		EndDate:      date(2024, 3, 7),
		Dates:        "2024-03-05|2024-03-06|2024-03-07",
		BaseTimezone: "America/New_York",
		StartTime:    "09:00",
		EndTime:      "17:00",
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func serve(h http.Handler, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var e errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&e))
	return e
}
