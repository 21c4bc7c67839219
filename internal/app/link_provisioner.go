package app

import (
	"context"
	"net/url"
	"strings"
	"time"

	"mentorpath/internal/model"
)

// LinkProvisioner assigns a meeting link to a booked session. An empty link
// with a nil error means "nothing to assign yet".
type LinkProvisioner interface {
	Provision(ctx context.Context, session model.BookedSession) (string, error)
}

// StaticLinkProvisioner hands every session the same link.
type StaticLinkProvisioner struct {
	Link string
}

func (p StaticLinkProvisioner) Provision(_ context.Context, _ model.BookedSession) (string, error) {
	return strings.TrimSpace(p.Link), nil
}

type NoopLinkProvisioner struct{}

func (NoopLinkProvisioner) Provision(context.Context, model.BookedSession) (string, error) {
	return "", nil
}

const calendarBaseURL = "https://calendar.google.com/calendar/render"

// CalendarLinkProvisioner builds a calendar event template link for the
// session slot. Sessions whose date or time cannot be parsed get no link.
type CalendarLinkProvisioner struct {
	Location *time.Location
}

func (p CalendarLinkProvisioner) Provision(_ context.Context, session model.BookedSession) (string, error) {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	start, ok := parseSchedule(session.Date, session.Time, loc)
	if !ok {
		return "", nil
	}
	duration := session.Duration
	if duration <= 0 {
		duration = 60
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	const stamp = "20060102T150405Z"
	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", calendarTitle(session))
	params.Set("details", calendarDetails(session))
	params.Set("dates", start.UTC().Format(stamp)+"/"+end.UTC().Format(stamp))
	return calendarBaseURL + "?" + params.Encode(), nil
}

func calendarTitle(session model.BookedSession) string {
	name := session.MentorName
	if name == "" {
		name = session.MentorID
	}
	return "Mentoring session with " + name
}

func calendarDetails(session model.BookedSession) string {
	var b strings.Builder
	if session.Topic != "" {
		b.WriteString("Topic: " + session.Topic)
	}
	if session.Goals != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Goals: " + session.Goals)
	}
	return b.String()
}
