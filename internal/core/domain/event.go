package domain

import "time"

// Outbound domain events for the notification collaborator. Delivery is
// fire-and-forget, at-least-once; consumers must tolerate duplicates. The
// shapes below are stable.

// MeetingBookedEvent is emitted after a meeting is successfully persisted.
type MeetingBookedEvent struct {
	MeetingID      string    `json:"meetingID"`
	Title          string    `json:"title"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	Location       *string   `json:"location,omitempty"`
	OrganizerEmail string    `json:"organizerEmail"`
	OrganizerName  string    `json:"organizerName"`
	AttendeeEmails []string  `json:"attendeeEmails"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// MeetingCancelledEvent is emitted after a meeting transitions to Cancelled.
type MeetingCancelledEvent struct {
	MeetingID      string    `json:"meetingID"`
	Title          string    `json:"title"`
	StartTime      time.Time `json:"startTime"`
	AttendeeEmails []string  `json:"attendeeEmails"`
	OccurredAt     time.Time `json:"occurredAt"`
}
