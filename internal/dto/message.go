package dto

import (
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
)

// SendMessageRequest posts a new message. AttachmentIDs reference
// previously uploaded, not-yet-linked attachments.
type SendMessageRequest struct {
	Content       string   `json:"content" binding:"required"`
	AttachmentIDs []string `json:"attachmentIDs"`
}

// UpdateMessageRequest edits a message's text. Only the sender may edit.
type UpdateMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// ReactionRequest toggles an emoji reaction on a message.
type ReactionRequest struct {
	Emoji string `json:"emoji" binding:"required"`
}

// MessagePageParams defines query parameters for message pagination.
// Page 0 is the newest Take messages; increasing Skip loads older pages.
type MessagePageParams struct {
	Skip int `form:"skip,default=0"`
	Take int `form:"take,default=50"`
}

// SearchMessagesParams defines query parameters for message search.
type SearchMessagesParams struct {
	Query string `form:"q" binding:"required"`
}

// ReactionResponse is the outward shape of one reaction.
type ReactionResponse struct {
	ReactionID string    `json:"reactionID"`
	MessageID  string    `json:"messageID"`
	EmployeeID string    `json:"employeeID"`
	Emoji      string    `json:"emoji"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AttachmentResponse is the outward shape of a file attachment.
type AttachmentResponse struct {
	AttachmentID string    `json:"attachmentID"`
	FileName     string    `json:"fileName"`
	ContentType  string    `json:"contentType"`
	SizeBytes    int64     `json:"sizeBytes"`
	UploadedBy   string    `json:"uploadedBy"`
	MessageID    *string   `json:"messageID,omitempty"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// ToAttachmentResponse converts a domain attachment to its response DTO
func ToAttachmentResponse(a *domain.FileAttachment) AttachmentResponse {
	return AttachmentResponse{
		AttachmentID: a.AttachmentID,
		FileName:     a.FileName,
		ContentType:  a.ContentType,
		SizeBytes:    a.SizeBytes,
		UploadedBy:   a.UploadedBy,
		MessageID:    a.MessageID,
		UploadedAt:   a.UploadedAt,
	}
}

// MessageResponse is the outward shape of a message.
type MessageResponse struct {
	MessageID      string               `json:"messageID"`
	ConversationID string               `json:"conversationID"`
	SenderID       string               `json:"senderID"`
	Content        string               `json:"content"`
	Sequence       int64                `json:"sequence"`
	SentAt         time.Time            `json:"sentAt"`
	EditedAt       *time.Time           `json:"editedAt,omitempty"`
	Reactions      []ReactionResponse   `json:"reactions,omitempty"`
	Attachments    []AttachmentResponse `json:"attachments,omitempty"`
}

// ToReactionResponse converts a domain reaction to its response DTO
func ToReactionResponse(r *domain.Reaction) ReactionResponse {
	return ReactionResponse{
		ReactionID: r.ReactionID,
		MessageID:  r.MessageID,
		EmployeeID: r.EmployeeID,
		Emoji:      r.Emoji,
		CreatedAt:  r.CreatedAt,
	}
}

// ToMessageResponse converts a domain Message to its response DTO
func ToMessageResponse(m *domain.Message) MessageResponse {
	reactions := make([]ReactionResponse, len(m.Reactions))
	for i := range m.Reactions {
		reactions[i] = ToReactionResponse(&m.Reactions[i])
	}
	attachments := make([]AttachmentResponse, len(m.Attachments))
	for i := range m.Attachments {
		attachments[i] = ToAttachmentResponse(&m.Attachments[i])
	}
	return MessageResponse{
		MessageID:      m.MessageID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		Sequence:       m.Sequence,
		SentAt:         m.SentAt,
		EditedAt:       m.EditedAt,
		Reactions:      reactions,
		Attachments:    attachments,
	}
}

// MessagesPageResponse is one page of messages in ascending display order.
// HasMore is true whenever a full page was returned.
type MessagesPageResponse struct {
	Messages []MessageResponse `json:"messages"`
	HasMore  bool              `json:"hasMore"`
}

// ToMessagesPageResponse converts a page of domain messages to the DTO
func ToMessagesPageResponse(messages []domain.Message, hasMore bool) MessagesPageResponse {
	out := make([]MessageResponse, len(messages))
	for i := range messages {
		out[i] = ToMessageResponse(&messages[i])
	}
	return MessagesPageResponse{Messages: out, HasMore: hasMore}
}

// MentionResponse is one entry of the mention notification surface.
type MentionResponse struct {
	MentionID      string    `json:"mentionID"`
	MessageID      string    `json:"messageID"`
	ConversationID string    `json:"conversationID"`
	SenderID       string    `json:"senderID"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ListMentionsParams defines query parameters for listing mentions.
type ListMentionsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListMentionsResponse wraps the mention list.
type ListMentionsResponse struct {
	Mentions []MentionResponse `json:"mentions"`
}

// ToListMentionsResponse converts domain mentions to the list DTO
func ToListMentionsResponse(mentions []domain.MentionNotification) ListMentionsResponse {
	out := make([]MentionResponse, len(mentions))
	for i, m := range mentions {
		out[i] = MentionResponse{
			MentionID:      m.MentionID,
			MessageID:      m.MessageID,
			ConversationID: m.ConversationID,
			SenderID:       m.SenderID,
			Read:           m.Read,
			CreatedAt:      m.CreatedAt,
		}
	}
	return ListMentionsResponse{Mentions: out}
}
