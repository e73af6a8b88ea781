package dto

import (
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// CreateMeetingRequest defines the data required to book a meeting.
// Times are UTC instants; EndTime must be after StartTime.
type CreateMeetingRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description *string   `json:"description"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
	Location    *string   `json:"location"`
	IsVirtual   bool      `json:"isVirtual"`
	AttendeeIDs []string  `json:"attendeeIDs"`
}

// MeetingTimesValidation rejects bookings whose end does not follow the
// start. Registered as a struct-level rule on CreateMeetingRequest.
func MeetingTimesValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreateMeetingRequest)
	if !req.EndTime.After(req.StartTime) {
		sl.ReportError(req.EndTime, "EndTime", "endTime", "gtfield", "StartTime")
	}
}

// UpdateMeetingRequest defines the data allowed when the organizer edits a
// meeting. Pointers differentiate omitted fields from zero-value fields.
type UpdateMeetingRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Location    *string    `json:"location"`
	AttendeeIDs *[]string  `json:"attendeeIDs"`
}

// RespondToMeetingRequest is an attendee's RSVP.
type RespondToMeetingRequest struct {
	Response string `json:"response" binding:"required,oneof=ACCEPTED DECLINED TENTATIVE"`
}

// AttendeeResponse is the outward shape of one attendee record.
type AttendeeResponse struct {
	EmployeeID  string     `json:"employeeID"`
	Response    string     `json:"response"`
	RespondedAt *time.Time `json:"respondedAt,omitempty"`
}

// MeetingResponse is the outward shape of a meeting.
type MeetingResponse struct {
	MeetingID   string             `json:"meetingID"`
	Title       string             `json:"title"`
	Description *string            `json:"description,omitempty"`
	StartTime   time.Time          `json:"startTime"`
	EndTime     time.Time          `json:"endTime"`
	Location    *string            `json:"location,omitempty"`
	JoinURL     *string            `json:"joinURL,omitempty"`
	Status      string             `json:"status"`
	OrganizerID string             `json:"organizerID"`
	Attendees   []AttendeeResponse `json:"attendees"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ToMeetingResponse converts a domain Meeting to its response DTO
func ToMeetingResponse(m *domain.Meeting) MeetingResponse {
	attendees := make([]AttendeeResponse, len(m.Attendees))
	for i, a := range m.Attendees {
		attendees[i] = AttendeeResponse{
			EmployeeID:  a.EmployeeID,
			Response:    string(a.Response),
			RespondedAt: a.RespondedAt,
		}
	}
	return MeetingResponse{
		MeetingID:   m.MeetingID,
		Title:       m.Title,
		Description: m.Description,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Location:    m.Location,
		JoinURL:     m.JoinURL,
		Status:      string(m.Status),
		OrganizerID: m.OrganizerID,
		Attendees:   attendees,
		CreatedAt:   m.CreatedAt,
	}
}

// ListMeetingsResponse wraps a list of meetings.
type ListMeetingsResponse struct {
	Meetings []MeetingResponse `json:"meetings"`
}

// ToListMeetingsResponse converts domain meetings to the list DTO
func ToListMeetingsResponse(meetings []domain.Meeting) ListMeetingsResponse {
	out := make([]MeetingResponse, len(meetings))
	for i := range meetings {
		out[i] = ToMeetingResponse(&meetings[i])
	}
	return ListMeetingsResponse{Meetings: out}
}

// JoinTokenResponse carries a freshly minted calling-provider token.
type JoinTokenResponse struct {
	Token string `json:"token"`
}
