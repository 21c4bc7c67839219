package app

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorpath/internal/model"
)

func newTestLedger(store SessionStore, links LinkProvisioner) *LedgerService {
	svc := NewLedgerService(store, links)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return svc
}

func TestLedgerService_RoundTripSortsAndCancels(t *testing.T) {
	ctx := context.Background()
	svc := newTestLedger(newMemorySessionStore(), nil)

	inputs := []model.BookedSession{
		{MentorID: "m1", Date: "2025-06-03", Time: "09:00"},
		{MentorID: "m2", Date: "2025-06-01", Time: "14:00"},
		{MentorID: "m3", Date: "2025-06-02", Time: "10:30"},
		{MentorID: "m4", Date: "2025-06-01", Time: "09:15"},
	}
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		created, err := svc.Create(ctx, 7, in)
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	view := svc.List(ctx, 7)
	require.Empty(t, view.Error)
	require.Len(t, view.Sessions, len(inputs))
	var mentors []string
	for _, s := range view.Sessions {
		mentors = append(mentors, s.MentorID)
	}
	assert.Equal(t, []string{"m4", "m2", "m3", "m1"}, mentors)

	require.NoError(t, svc.Cancel(ctx, 7, ids[2]))
	view = svc.List(ctx, 7)
	require.Len(t, view.Sessions, len(inputs)-1)
	for _, s := range view.Sessions {
		assert.NotEqual(t, ids[2], s.ID)
	}

	assert.ErrorIs(t, svc.Cancel(ctx, 7, ids[2]), ErrSessionNotFound)
}

func TestLedgerService_SameDateOrdersByTime(t *testing.T) {
	ctx := context.Background()
	svc := newTestLedger(newMemorySessionStore(), nil)

	_, err := svc.Create(ctx, 1, model.BookedSession{ID: "late", Date: "2025-06-01", Time: "3:00 PM"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, model.BookedSession{ID: "early", Date: "2025-06-01", Time: "9:00 AM"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, model.BookedSession{ID: "noon", Date: "2025-06-01T00:00:00Z", Time: "12:00"})
	require.NoError(t, err)

	view := svc.List(ctx, 1)
	require.Len(t, view.Sessions, 3)
	assert.Equal(t, "early", view.Sessions[0].ID)
	assert.Equal(t, "noon", view.Sessions[1].ID)
	assert.Equal(t, "late", view.Sessions[2].ID)
}

func TestLedgerService_UnparsableSchedulesSortLast(t *testing.T) {
	ctx := context.Background()
	svc := newTestLedger(newMemorySessionStore(), nil)

	for _, s := range []model.BookedSession{
		{ID: "bad-b", Date: "someday", Time: "soon"},
		{ID: "ok", Date: "2030-01-01", Time: "10:00"},
		{ID: "bad-a", Date: "2025-13-45", Time: "10:00"},
	} {
		_, err := svc.Create(ctx, 1, s)
		require.NoError(t, err)
	}

	view := svc.List(ctx, 1)
	require.Len(t, view.Sessions, 3)
	assert.Equal(t, "ok", view.Sessions[0].ID)
	assert.Equal(t, "bad-b", view.Sessions[1].ID, "ties among unparsable entries keep creation order")
	assert.Equal(t, "bad-a", view.Sessions[2].ID)
}

func TestLedgerService_CreateDefaultsAndDuplicates(t *testing.T) {
	ctx := context.Background()
	svc := newTestLedger(newMemorySessionStore(), StaticLinkProvisioner{Link: "https://meet.example/room"})

	created, err := svc.Create(ctx, 3, model.BookedSession{ID: "s1", MentorID: "m1", Date: "2025-06-01", Time: "14:00"})
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusConfirmed, created.Status)
	assert.Equal(t, "https://meet.example/room", created.MeetingLink)
	assert.Equal(t, uint(3), created.UserID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = svc.Create(ctx, 3, model.BookedSession{ID: "s1", MentorID: "m2"})
	assert.ErrorIs(t, err, ErrDuplicateSession)

	_, err = svc.Create(ctx, 4, model.BookedSession{ID: "s1", MentorID: "m9"})
	assert.ErrorIs(t, err, ErrDuplicateSession)
	owned, err := svc.Get(ctx, 3, "s1")
	require.NoError(t, err)
	assert.Equal(t, uint(3), owned.UserID)
	assert.NotEqual(t, "m9", owned.MentorID)

	pending, err := svc.Create(ctx, 3, model.BookedSession{MentorID: "m2", Status: model.SessionStatusPending})
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusPending, pending.Status)
	assert.NotEmpty(t, pending.ID)

	_, err = svc.Create(ctx, 0, model.BookedSession{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLedgerService_StorageFailureYieldsErrorFlag(t *testing.T) {
	store := newMemorySessionStore()
	store.failList = true
	svc := newTestLedger(store, nil)

	view := svc.List(context.Background(), 1)
	assert.Empty(t, view.Sessions)
	assert.NotNil(t, view.Sessions)
	assert.NotEmpty(t, view.Error)
}

func TestLedgerService_ProvisionPendingFillsOnlyEmptyLinks(t *testing.T) {
	ctx := context.Background()
	store := newMemorySessionStore()
	require.NoError(t, store.Upsert(ctx, &model.BookedSession{ID: "a", UserID: 1}))
	require.NoError(t, store.Upsert(ctx, &model.BookedSession{ID: "b", UserID: 2}))
	require.NoError(t, store.Upsert(ctx, &model.BookedSession{ID: "c", UserID: 1, MeetingLink: "https://kept"}))

	svc := newTestLedger(store, StaticLinkProvisioner{Link: "https://meet.example/x"})
	updated, err := svc.ProvisionPending(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	kept, err := store.Get(ctx, 1, "c")
	require.NoError(t, err)
	assert.Equal(t, "https://kept", kept.MeetingLink)

	again, err := svc.ProvisionPending(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, again)

	noop := newTestLedger(newMemorySessionStore(), NoopLinkProvisioner{})
	_, err = noop.Create(ctx, 1, model.BookedSession{ID: "z"})
	require.NoError(t, err)
	updated, err = noop.ProvisionPending(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestCalendarLinkProvisioner(t *testing.T) {
	link, err := CalendarLinkProvisioner{}.Provision(context.Background(), model.BookedSession{
		MentorName: "Ada",
		Date:       "2025-06-01",
		Time:       "14:00",
		Duration:   90,
		Topic:      "Go",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, calendarBaseURL+"?"))
	assert.Contains(t, link, "20250601T140000Z%2F20250601T153000Z")
	assert.Contains(t, link, "Mentoring+session+with+Ada")

	empty, err := CalendarLinkProvisioner{}.Provision(context.Background(), model.BookedSession{Date: "tbd"})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParseSchedule(t *testing.T) {
	cases := []struct {
		date, clock string
		want        string
		ok          bool
	}{
		{"2025-06-01", "14:00", "2025-06-01 14:00", true},
		{"2025-06-01", "2:30 PM", "2025-06-01 14:30", true},
		{"2025-06-01", "9:00 am", "2025-06-01 09:00", true},
		{"2025-06-01T08:00:00Z", "10:00", "2025-06-01 10:00", true},
		{"2025-06-01", "", "", false},
		{"June 1st", "10:00", "", false},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s %s", tc.date, tc.clock), func(t *testing.T) {
			got, ok := parseSchedule(tc.date, tc.clock, time.UTC)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got.Format("2006-01-02 15:04"))
			}
		})
	}
}
