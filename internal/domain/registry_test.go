package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tzplanner/internal/domain"
)

// validDraft returns a draft that Registry.Add accepts.
func validDraft() domain.Draft {
	d := domain.NewDraft("America/New_York").WithDates(day(2024, 7, 1), day(2024, 7, 3))
	d.CourseName = "Kubernetes Fundamentals"
	d.StartTime = "09:00"
	d.EndTime = "17:00"
	return d
}

func addN(t *testing.T, r domain.Registry, n int) domain.Registry {
	t.Helper()
	for i := 0; i < n; i++ {
		var err error
		r, _, err = r.Add(validDraft())
		require.NoError(t, err)
	}
	return r
}

func TestRegistry_Add_NoDates(t *testing.T) {
	r := addN(t, domain.Registry{}, 2)

	d := validDraft()
	d.Dates = nil
	next, _, err := r.Add(d)

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "no dates selected")
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 2, next.Len(), "failed add must not change the registry")
}

func TestRegistry_Add_MalformedTimeOfDay(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *domain.Draft)
		msg    string
	}{
		{"start", func(d *domain.Draft) { d.StartTime = "nine" }, "start time"},
		{"end", func(d *domain.Draft) { d.EndTime = "25:00" }, "end time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := addN(t, domain.Registry{}, 1)
			d := validDraft()
			tt.mutate(&d)

			next, _, err := r.Add(d)

			require.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorContains(t, err, tt.msg)
			assert.Equal(t, 1, next.Len())
		})
	}
}

func TestRegistry_Add_AcceptsSecondsAndEmptyTimes(t *testing.T) {
	d := validDraft()
	d.StartTime = "09:15:30"
	d.EndTime = ""

	_, s, err := domain.Registry{}.Add(d)

	require.NoError(t, err)
	assert.Equal(t, "09:15:30", s.StartTime)
	assert.Equal(t, "", s.EndTime)
}

func TestRegistry_Add_DerivedFields(t *testing.T) {
	d := validDraft().WithDates(day(2024, 3, 7), day(2024, 3, 5), day(2024, 3, 6))

	r, s, err := domain.Registry{}.Add(d)

	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 1, s.ID)
	assert.NotEqual(t, uuid.Nil, s.Key)
	assert.Equal(t, day(2024, 3, 5), s.StartDate)
	assert.Equal(t, day(2024, 3, 7), s.EndDate)
	assert.Equal(t, "2024-03-05|2024-03-06|2024-03-07", s.Dates)
	assert.Equal(t, "Mar 05 - Mar 07, 2024", s.ScheduleName)
	assert.Equal(t, domain.ModeOnline, s.Mode)
	assert.Equal(t, "America/New_York", s.BaseTimezone)
	assert.Equal(t, "09:00", s.StartTime)
	assert.Equal(t, "17:00", s.EndTime)
}

func TestRegistry_Add_UnsortedDraftIsNormalised(t *testing.T) {
	d := validDraft()
	d.Dates = []time.Time{day(2024, 5, 9), day(2024, 5, 1), day(2024, 5, 9)}

	_, s, err := domain.Registry{}.Add(d)

	require.NoError(t, err)
	assert.Equal(t, day(2024, 5, 1), s.StartDate)
	assert.Equal(t, day(2024, 5, 9), s.EndDate)
	assert.Equal(t, "2024-05-01|2024-05-09", s.Dates)
}

func TestRegistry_Add_SequentialIDs(t *testing.T) {
	r := addN(t, domain.Registry{}, 3)

	sessions := r.Sessions()
	require.Len(t, sessions, 3)
	for i, s := range sessions {
		assert.Equal(t, i+1, s.ID)
	}
}

func TestRegistry_Add_DoesNotMutateReceiver(t *testing.T) {
	r := addN(t, domain.Registry{}, 1)

	_, _, err := r.Add(validDraft())

	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Add_InvalidMode(t *testing.T) {
	d := validDraft()
	d.Mode = "Hybrid"

	_, _, err := domain.Registry{}.Add(d)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegistry_Add_ModeIsCaseInsensitive(t *testing.T) {
	d := validDraft()
	d.Mode = "offline"

	_, s, err := domain.Registry{}.Add(d)

	require.NoError(t, err)
	assert.Equal(t, domain.ModeOffline, s.Mode)
}

func TestRegistry_Add_InvalidTimezone(t *testing.T) {
	for _, tz := range []string{"", "Local", "Mars/Olympus_Mons"} {
		d := validDraft()
		d.BaseTimezone = tz

		_, _, err := domain.Registry{}.Add(d)

		assert.ErrorIs(t, err, domain.ErrValidation, "timezone %q", tz)
	}
}

func TestRegistry_Delete_KeepsOrderAndIDs(t *testing.T) {
	r := addN(t, domain.Registry{}, 3)
	before := r.Sessions()

	r = r.Delete(1)

	got := r.Sessions()
	require.Len(t, got, 2)
	assert.Equal(t, before[0].Key, got[0].Key)
	assert.Equal(t, before[2].Key, got[1].Key)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID, "IDs are not renumbered after a delete")
}

func TestRegistry_Delete_OutOfRangeIsNoop(t *testing.T) {
	r := addN(t, domain.Registry{}, 2)

	for _, pos := range []int{-1, 2, 100} {
		assert.Equal(t, 2, r.Delete(pos).Len(), "position %d", pos)
	}
}

func TestRegistry_IDsAfterDelete_CanRepeat(t *testing.T) {
	r := addN(t, domain.Registry{}, 3)
	r = r.Delete(0)

	r, s, err := r.Add(validDraft())

	require.NoError(t, err)
	// Two sessions left, so the next ID is 3 again; Key stays unique.
	assert.Equal(t, 3, s.ID)
	sessions := r.Sessions()
	assert.Equal(t, sessions[1].ID, sessions[2].ID)
	assert.NotEqual(t, sessions[1].Key, sessions[2].Key)
}

func TestRegistry_Sessions_IsSnapshot(t *testing.T) {
	r := addN(t, domain.Registry{}, 1)

	snap := r.Sessions()
	snap[0].CourseName = "changed"

	assert.Equal(t, "Kubernetes Fundamentals", r.Sessions()[0].CourseName)
}

func TestNewRegistry_CopiesInput(t *testing.T) {
	in := []domain.Session{{ID: 1}, {ID: 2}}
	r := domain.NewRegistry(in)
	in[0].ID = 99

	assert.Equal(t, 1, r.Sessions()[0].ID)
	assert.NotNil(t, domain.Registry{}.Sessions())
}
