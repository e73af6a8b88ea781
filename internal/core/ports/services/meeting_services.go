package services

import (
	"context"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	"github.com/orbitcommerce/collab_backend/internal/dto"
)

// MeetingReaderSvc defines calendar query operations.
type MeetingReaderSvc interface {
	// GetMeetingByID retrieves a meeting with its attendees.
	GetMeetingByID(ctx context.Context, meetingID string) (*domain.Meeting, error)

	// GetCalendarEvents answers a calendar-range query, optionally scoped to
	// the meetings one employee organizes or attends.
	GetCalendarEvents(ctx context.Context, from, to time.Time, employeeID *string) ([]domain.Meeting, error)

	// GetUpcomingMeetings retrieves the employee's next meetings, soonest
	// first.
	GetUpcomingMeetings(ctx context.Context, employeeID string, count int) ([]domain.Meeting, error)

	// ExportICS renders the meeting as a plain-text iCalendar object. The
	// output is byte-for-byte stable.
	ExportICS(ctx context.Context, meetingID string) (string, error)
}

// MeetingWriterSvc defines the scheduling state machine.
type MeetingWriterSvc interface {
	// CreateMeeting books a meeting. For virtual meetings a calling-provider
	// room is provisioned before persisting so the meeting never exists
	// without a resolvable join URL. Emits MeetingBooked best-effort.
	CreateMeeting(ctx context.Context, req dto.CreateMeetingRequest, organizerID string) (*domain.Meeting, error)

	// UpdateMeeting edits a meeting. Only the organizer may edit; cancelled
	// meetings accept no further edits.
	UpdateMeeting(ctx context.Context, meetingID string, req dto.UpdateMeetingRequest, callerID string) (*domain.Meeting, error)

	// RespondToMeeting records the caller's RSVP. Fails with ErrNotFound
	// when the caller is not a listed attendee; re-submitting the same
	// response is a no-op.
	RespondToMeeting(ctx context.Context, meetingID, employeeID string, response domain.RSVPResponse) (*domain.Meeting, error)

	// CancelMeeting is a one-way transition to Cancelled. Emits
	// MeetingCancelled to all attendees; the calling room is not cleaned up.
	CancelMeeting(ctx context.Context, meetingID, callerID string) error
}

// MeetingTokenSvc mints calling-provider join tokens for virtual meetings.
type MeetingTokenSvc interface {
	// GetJoinToken returns a short-lived token for the employee to join the
	// meeting's room. The organizer receives an owner token.
	GetJoinToken(ctx context.Context, meetingID, employeeID string) (string, error)
}

// MeetingSvcFacade combines the meeting service interfaces.
type MeetingSvcFacade interface {
	MeetingReaderSvc
	MeetingWriterSvc
	MeetingTokenSvc
}
