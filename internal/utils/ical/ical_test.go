package ical

import (
	"strings"
	"testing"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func TestRender_FullEvent(t *testing.T) {
	pinNow(t, time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))

	description := "Quarterly planning"
	location := "Room 4, floor 2"
	joinURL := "https://calls.example.com/meeting-m1"
	respondedAt := time.Date(2026, 1, 30, 8, 0, 0, 0, time.UTC)
	meeting := &domain.Meeting{
		MeetingID:   "m1",
		Title:       "Q1 Planning; Review",
		Description: &description,
		StartTime:   time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 2, 2, 10, 30, 0, 0, time.UTC),
		Location:    &location,
		JoinURL:     &joinURL,
		Status:      domain.MeetingScheduled,
		OrganizerID: "e1",
		Attendees: []domain.Attendee{
			{MeetingID: "m1", EmployeeID: "e2", Response: domain.RSVPAccepted, RespondedAt: &respondedAt},
			{MeetingID: "m1", EmployeeID: "e3", Response: domain.RSVPPending},
		},
	}
	organizer := domain.Employee{EmployeeID: "e1", FirstName: "Olga", LastName: "Org", Email: "olga@example.com"}
	directory := map[string]domain.Employee{
		"e1": organizer,
		"e2": {EmployeeID: "e2", FirstName: "Adam", LastName: "Att", Email: "adam@example.com"},
		"e3": {EmployeeID: "e3", FirstName: "Bea", LastName: "Bee", Email: "bea@example.com"},
	}

	out := Render(meeting, organizer, directory)

	expected := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//OrbitCommerce//Collab Backend//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:m1@orbitcommerce",
		"DTSTAMP:20260201T120000Z",
		"DTSTART:20260202T090000Z",
		"DTEND:20260202T103000Z",
		`SUMMARY:Q1 Planning\; Review`,
		"DESCRIPTION:Quarterly planning",
		`LOCATION:Room 4\, floor 2`,
		"URL:https://calls.example.com/meeting-m1",
		"STATUS:CONFIRMED",
		"ORGANIZER;CN=Olga Org:mailto:olga@example.com",
		"ATTENDEE;CN=Adam Att;PARTSTAT=ACCEPTED:mailto:adam@example.com",
		"ATTENDEE;CN=Bea Bee;PARTSTAT=NEEDS-ACTION:mailto:bea@example.com",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")
	require.Equal(t, expected, out)
}

func TestRender_RepeatedCallsAreStable(t *testing.T) {
	pinNow(t, time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))

	meeting := &domain.Meeting{
		MeetingID:   "m2",
		Title:       "Standup",
		StartTime:   time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 2, 2, 9, 15, 0, 0, time.UTC),
		Status:      domain.MeetingScheduled,
		OrganizerID: "e1",
	}
	organizer := domain.Employee{EmployeeID: "e1", FirstName: "Olga", LastName: "Org", Email: "olga@example.com"}

	first := Render(meeting, organizer, nil)
	second := Render(meeting, organizer, nil)

	assert.Equal(t, first, second)
}

func TestRender_CancelledStatus(t *testing.T) {
	pinNow(t, time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))

	meeting := &domain.Meeting{
		MeetingID:   "m3",
		Title:       "Cancelled sync",
		StartTime:   time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 2, 2, 9, 30, 0, 0, time.UTC),
		Status:      domain.MeetingCancelled,
		OrganizerID: "e1",
	}
	organizer := domain.Employee{EmployeeID: "e1", FirstName: "Olga", LastName: "Org", Email: "olga@example.com"}

	out := Render(meeting, organizer, nil)

	assert.Contains(t, out, "STATUS:CANCELLED\r\n")
	assert.NotContains(t, out, "DESCRIPTION:")
	assert.NotContains(t, out, "URL:")
}

func TestRender_AttendeeMissingFromDirectoryOmitted(t *testing.T) {
	pinNow(t, time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))

	meeting := &domain.Meeting{
		MeetingID:   "m4",
		Title:       "Partial list",
		StartTime:   time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC),
		Status:      domain.MeetingScheduled,
		OrganizerID: "e1",
		Attendees: []domain.Attendee{
			{MeetingID: "m4", EmployeeID: "known", Response: domain.RSVPTentative},
			{MeetingID: "m4", EmployeeID: "unknown", Response: domain.RSVPAccepted},
		},
	}
	organizer := domain.Employee{EmployeeID: "e1", FirstName: "Olga", LastName: "Org", Email: "olga@example.com"}
	directory := map[string]domain.Employee{
		"known": {EmployeeID: "known", FirstName: "Kay", LastName: "Known", Email: "kay@example.com"},
	}

	out := Render(meeting, organizer, directory)

	assert.Contains(t, out, "ATTENDEE;CN=Kay Known;PARTSTAT=TENTATIVE:mailto:kay@example.com")
	assert.Equal(t, 1, strings.Count(out, "ATTENDEE;"))
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "hello", want: "hello"},
		{name: "semicolon", in: "a;b", want: `a\;b`},
		{name: "comma", in: "a,b", want: `a\,b`},
		{name: "backslash", in: `a\b`, want: `a\\b`},
		{name: "newline", in: "a\nb", want: `a\nb`},
		{name: "crlf", in: "a\r\nb", want: `a\nb`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeText(tt.in))
		})
	}
}
