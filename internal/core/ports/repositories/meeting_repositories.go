package repositories

import (
	"context"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
)

// MeetingReader defines read operations for meeting data
type MeetingReader interface {
	// FindMeetingByID retrieves a meeting with its attendee list.
	FindMeetingByID(ctx context.Context, meetingID string) (*domain.Meeting, error)

	// FindMeetingsInRange retrieves non-cancelled meetings overlapping
	// [from, to). When employeeID is non-nil, only meetings the employee
	// organizes or attends are returned.
	FindMeetingsInRange(ctx context.Context, from, to time.Time, employeeID *string) ([]domain.Meeting, error)

	// FindUpcomingMeetings retrieves the next meetings starting after the
	// given instant that involve the employee, soonest first.
	FindUpcomingMeetings(ctx context.Context, employeeID string, after time.Time, limit int) ([]domain.Meeting, error)
}

// MeetingWriter defines write operations for meeting data
type MeetingWriter interface {
	// SaveMeeting persists a new meeting and its attendees atomically.
	SaveMeeting(ctx context.Context, meeting domain.Meeting) error

	// UpdateMeeting updates the meeting row and replaces its attendee set
	// within one transaction.
	UpdateMeeting(ctx context.Context, meeting domain.Meeting) error

	// UpdateMeetingStatus transitions a meeting's status.
	UpdateMeetingStatus(ctx context.Context, meetingID string, status domain.MeetingStatus, updatedBy string, updatedAt time.Time) error

	// UpdateAttendeeResponse records an attendee's RSVP. Returns ErrNotFound
	// when the employee is not on the attendee list.
	UpdateAttendeeResponse(ctx context.Context, meetingID, employeeID string, response domain.RSVPResponse, respondedAt time.Time) error
}

// MeetingRepositoryFacade combines all meeting-related repository interfaces
type MeetingRepositoryFacade interface {
	MeetingReader
	MeetingWriter
}
