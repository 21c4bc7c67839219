package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorpath/internal/model"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redisv9.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestTranscriptCache_AppendIsMonotonic(t *testing.T) {
	_, client := newTestRedis(t)
	c := NewTranscriptCache(client)
	ctx := context.Background()

	empty, err := c.List(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, empty)

	previous := 0
	for i, text := range []string{"hi", "hello", "see you"} {
		require.NoError(t, c.Append(ctx, "s1", model.ChatMessage{
			ID:        text,
			SessionID: "s1",
			Content:   text,
			Timestamp: time.Unix(int64(i), 0).UTC(),
		}))
		messages, err := c.List(ctx, "s1")
		require.NoError(t, err)
		assert.Greater(t, len(messages), previous)
		previous = len(messages)
	}

	messages, err := c.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "see you", messages[2].Content)
}

func TestTranscriptCache_SkipsCorruptEntriesAndFillsOnce(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewTranscriptCache(client)
	ctx := context.Background()

	_, err := mr.RPush("chat:s2", "{not json")
	require.NoError(t, err)
	require.NoError(t, c.Append(ctx, "s2", model.ChatMessage{ID: "m1", Content: "ok"}))

	messages, err := c.List(ctx, "s2")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "m1", messages[0].ID)

	archived := []model.ChatMessage{{ID: "a1"}, {ID: "a2"}}
	require.NoError(t, c.Fill(ctx, "s3", archived))
	require.NoError(t, c.Fill(ctx, "s3", archived))
	filled, err := c.List(ctx, "s3")
	require.NoError(t, err)
	assert.Len(t, filled, 2)

	require.NoError(t, c.Fill(ctx, "s2", archived))
	untouched, err := c.List(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, untouched, 1)
}

func TestLedgerStore_KeyedOperations(t *testing.T) {
	_, client := newTestRedis(t)
	s := NewLedgerStore(client)
	ctx := context.Background()

	a := &model.BookedSession{ID: "a", UserID: 1, MentorID: "m1", Date: "2025-06-01", Time: "14:00"}
	b := &model.BookedSession{ID: "b", UserID: 1, MentorID: "m2", Date: "2025-06-02", Time: "09:00", MeetingLink: "https://x"}
	other := &model.BookedSession{ID: "c", UserID: 2, MentorID: "m1", Date: "2025-06-03", Time: "10:00"}
	for _, session := range []*model.BookedSession{a, b, other} {
		require.NoError(t, s.Upsert(ctx, session))
	}

	got, err := s.Get(ctx, 1, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "m1", got.MentorID)

	missing, err := s.Get(ctx, 2, "a")
	require.NoError(t, err)
	assert.Nil(t, missing)

	sessions, err := s.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	pending, err := s.ListMissingMeetingLink(ctx, 10)
	require.NoError(t, err)
	ids := []string{}
	for _, p := range pending {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"a", "c"}, ids)

	a.MeetingLink = "https://y"
	require.NoError(t, s.Upsert(ctx, a))
	sessions, err = s.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	taken, err := s.Exists(ctx, "c")
	require.NoError(t, err)
	assert.True(t, taken)

	removed, err := s.Delete(ctx, 1, "a")
	require.NoError(t, err)
	assert.True(t, removed)
	taken, err = s.Exists(ctx, "a")
	require.NoError(t, err)
	assert.False(t, taken)
	removed, err = s.Delete(ctx, 1, "a")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestBalanceCache(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewBalanceCache(client, time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, 1, 125.5))
	amount, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 125.5, amount)

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
