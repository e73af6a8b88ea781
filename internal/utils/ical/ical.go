// Package ical renders meetings as RFC 5545 iCalendar objects for export
// into external calendar clients.
package ical

import (
	"strings"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
)

const (
	prodID     = "-//OrbitCommerce//Collab Backend//EN"
	timeLayout = "20060102T150405Z"
)

// now is swapped in tests to pin the DTSTAMP line.
var now = time.Now

// escapeText escapes TEXT property values per RFC 5545 section 3.3.11:
// backslash, semicolon and comma are backslash-escaped, newlines become \n.
func escapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case ';':
			b.WriteString(`\;`)
		case ',':
			b.WriteString(`\,`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			// dropped; a following \n carries the break
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func formatUTC(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func partStat(r domain.RSVPResponse) string {
	switch r {
	case domain.RSVPAccepted:
		return "ACCEPTED"
	case domain.RSVPDeclined:
		return "DECLINED"
	case domain.RSVPTentative:
		return "TENTATIVE"
	default:
		return "NEEDS-ACTION"
	}
}

func eventStatus(s domain.MeetingStatus) string {
	if s == domain.MeetingCancelled {
		return "CANCELLED"
	}
	return "CONFIRMED"
}

// Render produces a VCALENDAR with a single VEVENT for the meeting. The
// directory map supplies names and emails for the organizer and attendees;
// attendees missing from the map are omitted. Lines end with CRLF.
func Render(m *domain.Meeting, organizer domain.Employee, directory map[string]domain.Employee) string {
	var b strings.Builder

	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\r\n")
	}

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:" + prodID)
	line("CALSCALE:GREGORIAN")
	line("METHOD:PUBLISH")
	line("BEGIN:VEVENT")
	line("UID:" + m.MeetingID + "@orbitcommerce")
	line("DTSTAMP:" + formatUTC(now()))
	line("DTSTART:" + formatUTC(m.StartTime))
	line("DTEND:" + formatUTC(m.EndTime))
	line("SUMMARY:" + escapeText(m.Title))
	if m.Description != nil && *m.Description != "" {
		line("DESCRIPTION:" + escapeText(*m.Description))
	}
	if m.Location != nil && *m.Location != "" {
		line("LOCATION:" + escapeText(*m.Location))
	}
	if m.JoinURL != nil && *m.JoinURL != "" {
		line("URL:" + *m.JoinURL)
	}
	line("STATUS:" + eventStatus(m.Status))
	line("ORGANIZER;CN=" + escapeText(organizer.FullName()) + ":mailto:" + organizer.Email)
	for _, a := range m.Attendees {
		e, ok := directory[a.EmployeeID]
		if !ok {
			continue
		}
		line("ATTENDEE;CN=" + escapeText(e.FullName()) + ";PARTSTAT=" + partStat(a.Response) + ":mailto:" + e.Email)
	}
	line("END:VEVENT")
	line("END:VCALENDAR")

	return b.String()
}
