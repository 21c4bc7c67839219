package app

import (
	"sort"
	"strings"
	"time"

	"mentorpath/internal/model"
)

var (
	dateLayouts = []string{"2006-01-02", "2006/01/02", "01/02/2006"}
	timeLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "03:04 PM"}
)

// parseSchedule combines a session date and time into one instant. Dates
// carrying a full timestamp (RFC 3339) contribute their date part only.
func parseSchedule(date, clock string, loc *time.Location) (time.Time, bool) {
	date = strings.TrimSpace(date)
	clock = strings.ToUpper(strings.TrimSpace(clock))
	if ts, err := time.Parse(time.RFC3339, date); err == nil {
		date = ts.Format("2006-01-02")
	}

	var day time.Time
	found := false
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, date, loc); err == nil {
			day, found = parsed, true
			break
		}
	}
	if !found {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, clock); err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(),
				parsed.Hour(), parsed.Minute(), parsed.Second(), 0, loc), true
		}
	}
	return time.Time{}, false
}

// sortSessions orders sessions by their scheduled instant. Sessions whose
// schedule does not parse come after every parsable one; ties fall back to
// creation time and then id so the order is total.
func sortSessions(sessions []model.BookedSession) {
	type keyed struct {
		at time.Time
		ok bool
	}
	keys := make(map[string]keyed, len(sessions))
	for _, s := range sessions {
		at, ok := parseSchedule(s.Date, s.Time, time.UTC)
		keys[s.ID] = keyed{at: at, ok: ok}
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := keys[sessions[i].ID], keys[sessions[j].ID]
		if a.ok != b.ok {
			return a.ok
		}
		if a.ok && !a.at.Equal(b.at) {
			return a.at.Before(b.at)
		}
		if !sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
		}
		return sessions[i].ID < sessions[j].ID
	})
}
