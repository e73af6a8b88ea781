package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/apperrors"
	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	"github.com/orbitcommerce/collab_backend/internal/core/ports/gateways"
	portsrepo "github.com/orbitcommerce/collab_backend/internal/core/ports/repositories"
	portssvc "github.com/orbitcommerce/collab_backend/internal/core/ports/services"
	"github.com/orbitcommerce/collab_backend/internal/dto"
	"github.com/orbitcommerce/collab_backend/internal/middleware"
	"github.com/orbitcommerce/collab_backend/internal/utils/ical"
	"github.com/google/uuid"
)

// MeetingService handles scheduling, RSVP tracking, calendar queries and
// calling-room provisioning.
type MeetingService struct {
	meetingRepo  portsrepo.MeetingRepositoryFacade
	employeeRepo portsrepo.EmployeeRepositoryFacade
	calling      gateways.CallingGateway
	publisher    gateways.EventPublisher
}

// NewMeetingService creates a new MeetingService.
func NewMeetingService(mr portsrepo.MeetingRepositoryFacade, er portsrepo.EmployeeRepositoryFacade, cg gateways.CallingGateway, pub gateways.EventPublisher) portssvc.MeetingSvcFacade {
	return &MeetingService{
		meetingRepo:  mr,
		employeeRepo: er,
		calling:      cg,
		publisher:    pub,
	}
}

// Ensure MeetingService implements the portssvc.MeetingSvcFacade interface
var _ portssvc.MeetingSvcFacade = (*MeetingService)(nil)

// roomNameForMeeting derives the calling-provider room name from the
// meeting id, so re-provisioning the same meeting is idempotent.
func roomNameForMeeting(meetingID string) string {
	return "meeting-" + meetingID
}

// GetMeetingByID retrieves a meeting with its attendees.
func (s *MeetingService) GetMeetingByID(ctx context.Context, meetingID string) (*domain.Meeting, error) {
	meeting, err := s.meetingRepo.FindMeetingByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get meeting %s: %w", meetingID, err)
	}
	return meeting, nil
}

// GetCalendarEvents answers a calendar-range query. Cancelled meetings are
// excluded; when employeeID is set, only meetings the employee organizes or
// attends are included.
func (s *MeetingService) GetCalendarEvents(ctx context.Context, from, to time.Time, employeeID *string) ([]domain.Meeting, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("%w: range end must be after range start", apperrors.ErrValidation)
	}
	meetings, err := s.meetingRepo.FindMeetingsInRange(ctx, from, to, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar range: %w", err)
	}
	return meetings, nil
}

// GetUpcomingMeetings retrieves the employee's next meetings, soonest first.
func (s *MeetingService) GetUpcomingMeetings(ctx context.Context, employeeID string, count int) ([]domain.Meeting, error) {
	if count <= 0 || count > 100 {
		count = 10
	}
	meetings, err := s.meetingRepo.FindUpcomingMeetings(ctx, employeeID, time.Now(), count)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming meetings: %w", err)
	}
	return meetings, nil
}

// ExportICS renders the meeting as an iCalendar object. Output is stable
// for a given meeting state except for the DTSTAMP line.
func (s *MeetingService) ExportICS(ctx context.Context, meetingID string) (string, error) {
	meeting, err := s.meetingRepo.FindMeetingByID(ctx, meetingID)
	if err != nil {
		return "", err
	}

	ids := make([]string, 0, len(meeting.Attendees)+1)
	ids = append(ids, meeting.OrganizerID)
	for _, a := range meeting.Attendees {
		ids = append(ids, a.EmployeeID)
	}
	employees, err := s.employeeRepo.FindEmployeesByIDs(ctx, ids)
	if err != nil {
		return "", fmt.Errorf("failed to load meeting participants: %w", err)
	}

	organizer, ok := employees[meeting.OrganizerID]
	if !ok {
		return "", fmt.Errorf("organizer %s missing from directory: %w", meeting.OrganizerID, apperrors.ErrNotFound)
	}
	return ical.Render(meeting, organizer, employees), nil
}

// CreateMeeting books a meeting. For virtual meetings a calling room is
// provisioned first so a persisted meeting always has a resolvable join
// URL; a provider failure aborts the booking with ErrDependency.
func (s *MeetingService) CreateMeeting(ctx context.Context, req dto.CreateMeetingRequest, organizerID string) (*domain.Meeting, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.EndTime.After(req.StartTime) {
		return nil, fmt.Errorf("%w: end time must be after start time", apperrors.ErrValidation)
	}

	now := time.Now()
	meetingID := uuid.NewString()

	meeting := domain.Meeting{
		MeetingID:   meetingID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime.UTC(),
		EndTime:     req.EndTime.UTC(),
		Location:    req.Location,
		Status:      domain.MeetingScheduled,
		OrganizerID: organizerID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     organizerID,
			LastUpdatedAt: now,
			LastUpdatedBy: organizerID,
		},
	}

	for _, employeeID := range dedupe(req.AttendeeIDs) {
		meeting.Attendees = append(meeting.Attendees, domain.Attendee{
			MeetingID:  meetingID,
			EmployeeID: employeeID,
			Response:   domain.RSVPPending,
		})
	}

	if req.IsVirtual {
		room, err := s.calling.CreateRoom(ctx, roomNameForMeeting(meetingID))
		if err != nil {
			logger.Error("Failed to provision calling room", slog.String("error", err.Error()), slog.String("meeting_id", meetingID))
			return nil, fmt.Errorf("failed to provision calling room: %w", err)
		}
		meeting.JoinURL = &room.URL
	}

	if err := s.meetingRepo.SaveMeeting(ctx, meeting); err != nil {
		logger.Error("Failed to save meeting", slog.String("error", err.Error()), slog.String("meeting_id", meetingID))
		return nil, fmt.Errorf("failed to book meeting: %w", err)
	}

	s.emitMeetingBooked(ctx, meeting)

	logger.Info("Meeting booked", slog.String("meeting_id", meetingID), slog.String("organizer_id", organizerID), slog.Bool("virtual", meeting.IsVirtual()))
	return &meeting, nil
}

// UpdateMeeting edits a meeting. Only the organizer may edit; cancelled
// meetings accept no further edits. When the attendee set is replaced,
// retained attendees keep their recorded RSVP.
func (s *MeetingService) UpdateMeeting(ctx context.Context, meetingID string, req dto.UpdateMeetingRequest, callerID string) (*domain.Meeting, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	meeting, err := s.meetingRepo.FindMeetingByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting.OrganizerID != callerID {
		return nil, fmt.Errorf("only the organizer may edit a meeting: %w", apperrors.ErrForbidden)
	}
	if meeting.Status == domain.MeetingCancelled {
		return nil, fmt.Errorf("%w: cancelled meetings cannot be edited", apperrors.ErrValidation)
	}

	if req.Title != nil {
		meeting.Title = *req.Title
	}
	if req.Description != nil {
		meeting.Description = req.Description
	}
	if req.StartTime != nil {
		meeting.StartTime = req.StartTime.UTC()
	}
	if req.EndTime != nil {
		meeting.EndTime = req.EndTime.UTC()
	}
	if req.Location != nil {
		meeting.Location = req.Location
	}
	if !meeting.EndTime.After(meeting.StartTime) {
		return nil, fmt.Errorf("%w: end time must be after start time", apperrors.ErrValidation)
	}

	if req.AttendeeIDs != nil {
		existing := make(map[string]domain.Attendee, len(meeting.Attendees))
		for _, a := range meeting.Attendees {
			existing[a.EmployeeID] = a
		}
		replacement := make([]domain.Attendee, 0, len(*req.AttendeeIDs))
		for _, employeeID := range dedupe(*req.AttendeeIDs) {
			if prior, ok := existing[employeeID]; ok {
				replacement = append(replacement, prior)
				continue
			}
			replacement = append(replacement, domain.Attendee{
				MeetingID:  meetingID,
				EmployeeID: employeeID,
				Response:   domain.RSVPPending,
			})
		}
		meeting.Attendees = replacement
	}

	meeting.LastUpdatedAt = time.Now()
	meeting.LastUpdatedBy = callerID

	if err := s.meetingRepo.UpdateMeeting(ctx, *meeting); err != nil {
		logger.Error("Failed to update meeting", slog.String("error", err.Error()), slog.String("meeting_id", meetingID))
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}

	logger.Info("Meeting updated", slog.String("meeting_id", meetingID), slog.String("caller_id", callerID))
	return meeting, nil
}

// RespondToMeeting records the caller's RSVP and returns the refreshed
// meeting. Re-submitting the same response simply rewrites the row.
func (s *MeetingService) RespondToMeeting(ctx context.Context, meetingID, employeeID string, response domain.RSVPResponse) (*domain.Meeting, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	meeting, err := s.meetingRepo.FindMeetingByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting.Status == domain.MeetingCancelled {
		return nil, fmt.Errorf("%w: cancelled meetings do not accept responses", apperrors.ErrValidation)
	}

	if err := s.meetingRepo.UpdateAttendeeResponse(ctx, meetingID, employeeID, response, time.Now()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("RSVP from non-attendee rejected", slog.String("meeting_id", meetingID), slog.String("employee_id", employeeID))
			return nil, err
		}
		return nil, fmt.Errorf("failed to record response: %w", err)
	}

	logger.Info("RSVP recorded", slog.String("meeting_id", meetingID), slog.String("employee_id", employeeID), slog.String("response", string(response)))
	return s.meetingRepo.FindMeetingByID(ctx, meetingID)
}

// CancelMeeting is a one-way transition to Cancelled. Cancelling an already
// cancelled meeting is a no-op. The calling room is left in place so links
// in flight fail at the provider rather than dangling here.
func (s *MeetingService) CancelMeeting(ctx context.Context, meetingID, callerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	meeting, err := s.meetingRepo.FindMeetingByID(ctx, meetingID)
	if err != nil {
		return err
	}
	if meeting.OrganizerID != callerID {
		return fmt.Errorf("only the organizer may cancel a meeting: %w", apperrors.ErrForbidden)
	}
	if meeting.Status == domain.MeetingCancelled {
		return nil
	}

	if err := s.meetingRepo.UpdateMeetingStatus(ctx, meetingID, domain.MeetingCancelled, callerID, time.Now()); err != nil {
		logger.Error("Failed to cancel meeting", slog.String("error", err.Error()), slog.String("meeting_id", meetingID))
		return fmt.Errorf("failed to cancel meeting: %w", err)
	}

	s.emitMeetingCancelled(ctx, *meeting)

	logger.Info("Meeting cancelled", slog.String("meeting_id", meetingID), slog.String("caller_id", callerID))
	return nil
}

// GetJoinToken mints a short-lived token for the employee to join the
// meeting's calling room. The organizer receives an owner token.
func (s *MeetingService) GetJoinToken(ctx context.Context, meetingID, employeeID string) (string, error) {
	meeting, err := s.meetingRepo.FindMeetingByID(ctx, meetingID)
	if err != nil {
		return "", err
	}
	if !meeting.IsVirtual() {
		return "", fmt.Errorf("%w: meeting has no calling room", apperrors.ErrValidation)
	}
	if meeting.Status == domain.MeetingCancelled {
		return "", fmt.Errorf("%w: cancelled meetings cannot be joined", apperrors.ErrValidation)
	}

	isOwner := meeting.OrganizerID == employeeID
	if !isOwner {
		onList := false
		for _, a := range meeting.Attendees {
			if a.EmployeeID == employeeID {
				onList = true
				break
			}
		}
		if !onList {
			return "", fmt.Errorf("employee is not part of the meeting: %w", apperrors.ErrForbidden)
		}
	}

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return "", err
	}

	token, err := s.calling.CreateJoinToken(ctx, roomNameForMeeting(meetingID), employee.FullName(), isOwner)
	if err != nil {
		return "", fmt.Errorf("failed to mint join token: %w", err)
	}
	return token, nil
}

// emitMeetingBooked publishes the booked event. Failures are logged and
// swallowed; the booking already committed.
func (s *MeetingService) emitMeetingBooked(ctx context.Context, meeting domain.Meeting) {
	logger := middleware.GetLoggerFromCtx(ctx)

	organizer, attendeeEmails, err := s.resolveParticipantEmails(ctx, meeting)
	if err != nil {
		logger.Warn("Skipping MeetingBooked event", slog.String("error", err.Error()), slog.String("meeting_id", meeting.MeetingID))
		return
	}

	event := domain.MeetingBookedEvent{
		MeetingID:      meeting.MeetingID,
		Title:          meeting.Title,
		StartTime:      meeting.StartTime,
		EndTime:        meeting.EndTime,
		Location:       meeting.Location,
		OrganizerEmail: organizer.Email,
		OrganizerName:  organizer.FullName(),
		AttendeeEmails: attendeeEmails,
		OccurredAt:     time.Now(),
	}
	if err := s.publisher.PublishMeetingBooked(ctx, event); err != nil {
		logger.Warn("Failed to publish MeetingBooked event", slog.String("error", err.Error()), slog.String("meeting_id", meeting.MeetingID))
	}
}

// emitMeetingCancelled publishes the cancelled event, same delivery
// contract as emitMeetingBooked.
func (s *MeetingService) emitMeetingCancelled(ctx context.Context, meeting domain.Meeting) {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, attendeeEmails, err := s.resolveParticipantEmails(ctx, meeting)
	if err != nil {
		logger.Warn("Skipping MeetingCancelled event", slog.String("error", err.Error()), slog.String("meeting_id", meeting.MeetingID))
		return
	}

	event := domain.MeetingCancelledEvent{
		MeetingID:      meeting.MeetingID,
		Title:          meeting.Title,
		StartTime:      meeting.StartTime,
		AttendeeEmails: attendeeEmails,
		OccurredAt:     time.Now(),
	}
	if err := s.publisher.PublishMeetingCancelled(ctx, event); err != nil {
		logger.Warn("Failed to publish MeetingCancelled event", slog.String("error", err.Error()), slog.String("meeting_id", meeting.MeetingID))
	}
}

func (s *MeetingService) resolveParticipantEmails(ctx context.Context, meeting domain.Meeting) (domain.Employee, []string, error) {
	ids := make([]string, 0, len(meeting.Attendees)+1)
	ids = append(ids, meeting.OrganizerID)
	for _, a := range meeting.Attendees {
		ids = append(ids, a.EmployeeID)
	}
	employees, err := s.employeeRepo.FindEmployeesByIDs(ctx, ids)
	if err != nil {
		return domain.Employee{}, nil, fmt.Errorf("failed to load participant emails: %w", err)
	}
	organizer, ok := employees[meeting.OrganizerID]
	if !ok {
		return domain.Employee{}, nil, fmt.Errorf("organizer missing from directory: %w", apperrors.ErrNotFound)
	}
	attendeeEmails := make([]string, 0, len(meeting.Attendees))
	for _, a := range meeting.Attendees {
		if e, ok := employees[a.EmployeeID]; ok {
			attendeeEmails = append(attendeeEmails, e.Email)
		}
	}
	return organizer, attendeeEmails, nil
}

// dedupe returns the ids with duplicates removed, preserving first-seen
// order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
