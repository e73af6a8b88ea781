package mapping

import (
	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	"github.com/orbitcommerce/collab_backend/internal/models"
)

// ToModelConversation converts a domain Conversation to a model Conversation
func ToModelConversation(d domain.Conversation) models.Conversation {
	return models.Conversation{
		ConversationID: d.ConversationID,
		Name:           d.Name,
		IconURL:        d.IconURL,
		MeetingID:      d.MeetingID,
		Type:           string(d.Type),
		Status:         string(d.Status),
		LastMessageAt:  d.LastMessageAt,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainConversation converts a model Conversation to a domain Conversation.
// Participants are loaded and attached separately by the repository.
func ToDomainConversation(m models.Conversation) domain.Conversation {
	return domain.Conversation{
		ConversationID: m.ConversationID,
		Name:           m.Name,
		IconURL:        m.IconURL,
		MeetingID:      m.MeetingID,
		Type:           domain.ChannelType(m.Type),
		Status:         domain.ConversationStatus(m.Status),
		LastMessageAt:  m.LastMessageAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToDomainParticipant converts a model participant row to the domain type
func ToDomainParticipant(m models.ConversationParticipant) domain.Participant {
	return domain.Participant{
		ConversationID: m.ConversationID,
		EmployeeID:     m.EmployeeID,
		JoinedAt:       m.JoinedAt,
	}
}

// ToDomainReadReceipt converts a model read receipt row to the domain type
func ToDomainReadReceipt(m models.ReadReceipt) domain.ReadReceipt {
	return domain.ReadReceipt{
		ConversationID: m.ConversationID,
		EmployeeID:     m.EmployeeID,
		LastReadAt:     m.LastReadAt,
	}
}
