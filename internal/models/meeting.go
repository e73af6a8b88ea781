package models

import "time"

// Meeting is the meetings table row.
type Meeting struct {
	MeetingID   string    `db:"meeting_id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	StartTime   time.Time `db:"start_time"`
	EndTime     time.Time `db:"end_time"`
	Location    *string   `db:"location"`
	JoinURL     *string   `db:"join_url"`
	Status      string    `db:"status"`
	OrganizerID string    `db:"organizer_id"`
	AuditFields
}

// MeetingAttendee is the meeting_attendees table row, unique per
// (meeting_id, employee_id).
type MeetingAttendee struct {
	MeetingID   string     `db:"meeting_id"`
	EmployeeID  string     `db:"employee_id"`
	Response    string     `db:"response"`
	RespondedAt *time.Time `db:"responded_at"`
}
