package domain

import "time"

// MeetingStatus indicates the state of a meeting. Cancelled is terminal.
type MeetingStatus string

const (
	MeetingScheduled  MeetingStatus = "SCHEDULED"
	MeetingInProgress MeetingStatus = "IN_PROGRESS"
	MeetingCompleted  MeetingStatus = "COMPLETED"
	MeetingCancelled  MeetingStatus = "CANCELLED"
)

// RSVPResponse is an attendee's answer to a meeting invitation.
type RSVPResponse string

const (
	RSVPPending   RSVPResponse = "PENDING"
	RSVPAccepted  RSVPResponse = "ACCEPTED"
	RSVPDeclined  RSVPResponse = "DECLINED"
	RSVPTentative RSVPResponse = "TENTATIVE"
)

// Meeting is a scheduled event between employees. Start/End are UTC instants
// with the invariant EndTime > StartTime. JoinURL is set exactly when the
// meeting is virtual, in which case a calling-provider room exists for it.
type Meeting struct {
	MeetingID   string        `json:"meetingID"` // Primary Key (UUID)
	Title       string        `json:"title"`
	Description *string       `json:"description,omitempty"`
	StartTime   time.Time     `json:"startTime"`
	EndTime     time.Time     `json:"endTime"`
	Location    *string       `json:"location,omitempty"`
	JoinURL     *string       `json:"joinURL,omitempty"`
	Status      MeetingStatus `json:"status"`
	OrganizerID string        `json:"organizerID"` // EmployeeID Reference
	Attendees   []Attendee    `json:"attendees"`
	AuditFields
}

// IsVirtual reports whether the meeting has a calling-provider room.
func (m Meeting) IsVirtual() bool {
	return m.JoinURL != nil && *m.JoinURL != ""
}

// Attendee is one employee's invitation record on a meeting. At most one
// entry per employee; the organizer need not be an attendee.
type Attendee struct {
	MeetingID   string       `json:"meetingID"`
	EmployeeID  string       `json:"employeeID"`
	Response    RSVPResponse `json:"response"`
	RespondedAt *time.Time   `json:"respondedAt,omitempty"`
}
