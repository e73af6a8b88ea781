package mapping

import (
	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	"github.com/orbitcommerce/collab_backend/internal/models"
)

// ToModelMeeting converts a domain Meeting to a model Meeting
func ToModelMeeting(d domain.Meeting) models.Meeting {
	return models.Meeting{
		MeetingID:   d.MeetingID,
		Title:       d.Title,
		Description: d.Description,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		Location:    d.Location,
		JoinURL:     d.JoinURL,
		Status:      string(d.Status),
		OrganizerID: d.OrganizerID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainMeeting converts a model Meeting to a domain Meeting.
// Attendees are loaded and attached separately by the repository.
func ToDomainMeeting(m models.Meeting) domain.Meeting {
	return domain.Meeting{
		MeetingID:   m.MeetingID,
		Title:       m.Title,
		Description: m.Description,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Location:    m.Location,
		JoinURL:     m.JoinURL,
		Status:      domain.MeetingStatus(m.Status),
		OrganizerID: m.OrganizerID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToModelAttendee converts a domain Attendee to a model MeetingAttendee
func ToModelAttendee(d domain.Attendee) models.MeetingAttendee {
	return models.MeetingAttendee{
		MeetingID:   d.MeetingID,
		EmployeeID:  d.EmployeeID,
		Response:    string(d.Response),
		RespondedAt: d.RespondedAt,
	}
}

// ToDomainAttendee converts a model MeetingAttendee to a domain Attendee
func ToDomainAttendee(m models.MeetingAttendee) domain.Attendee {
	return domain.Attendee{
		MeetingID:   m.MeetingID,
		EmployeeID:  m.EmployeeID,
		Response:    domain.RSVPResponse(m.Response),
		RespondedAt: m.RespondedAt,
	}
}

// ToDomainAttendeeSlice converts model attendees to domain attendees
func ToDomainAttendeeSlice(ms []models.MeetingAttendee) []domain.Attendee {
	ds := make([]domain.Attendee, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAttendee(m)
	}
	return ds
}
