package mapping

import (
	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	"github.com/orbitcommerce/collab_backend/internal/models"
)

// ToModelMessage converts a domain Message to a model Message
func ToModelMessage(d domain.Message) models.Message {
	return models.Message{
		MessageID:      d.MessageID,
		ConversationID: d.ConversationID,
		SenderID:       d.SenderID,
		Content:        d.Content,
		Sequence:       d.Sequence,
		SentAt:         d.SentAt,
		EditedAt:       d.EditedAt,
	}
}

// ToDomainMessage converts a model Message to a domain Message. Reactions and
// attachments are loaded and attached separately by the repository.
func ToDomainMessage(m models.Message) domain.Message {
	return domain.Message{
		MessageID:      m.MessageID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		Sequence:       m.Sequence,
		SentAt:         m.SentAt,
		EditedAt:       m.EditedAt,
	}
}

// ToDomainMessageSlice converts a slice of model Messages to domain Messages
func ToDomainMessageSlice(ms []models.Message) []domain.Message {
	ds := make([]domain.Message, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMessage(m)
	}
	return ds
}

// ToDomainReaction converts a model reaction row to the domain type
func ToDomainReaction(m models.MessageReaction) domain.Reaction {
	return domain.Reaction{
		ReactionID: m.ReactionID,
		MessageID:  m.MessageID,
		EmployeeID: m.EmployeeID,
		Emoji:      m.Emoji,
		CreatedAt:  m.CreatedAt,
	}
}

// ToDomainMention converts a model mention row to the domain type
func ToDomainMention(m models.MentionNotification) domain.MentionNotification {
	return domain.MentionNotification{
		MentionID:      m.MentionID,
		MessageID:      m.MessageID,
		ConversationID: m.ConversationID,
		EmployeeID:     m.EmployeeID,
		SenderID:       m.SenderID,
		Read:           m.Read,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainAttachment converts a model attachment row to the domain type
func ToDomainAttachment(m models.FileAttachment) domain.FileAttachment {
	return domain.FileAttachment{
		AttachmentID: m.AttachmentID,
		FileName:     m.FileName,
		StoragePath:  m.StoragePath,
		ContentType:  m.ContentType,
		SizeBytes:    m.SizeBytes,
		UploadedBy:   m.UploadedBy,
		MessageID:    m.MessageID,
		UploadedAt:   m.UploadedAt,
	}
}

// ToModelAttachment converts a domain attachment to its model row
func ToModelAttachment(d domain.FileAttachment) models.FileAttachment {
	return models.FileAttachment{
		AttachmentID: d.AttachmentID,
		FileName:     d.FileName,
		StoragePath:  d.StoragePath,
		ContentType:  d.ContentType,
		SizeBytes:    d.SizeBytes,
		UploadedBy:   d.UploadedBy,
		MessageID:    d.MessageID,
		UploadedAt:   d.UploadedAt,
	}
}
