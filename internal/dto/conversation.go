package dto

import (
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
)

// CreateConversationRequest starts an ad-hoc thread, optionally linked to a
// meeting as a follow-up discussion.
type CreateConversationRequest struct {
	Name           string   `json:"name" binding:"required"`
	IconURL        *string  `json:"iconURL"`
	MeetingID      *string  `json:"meetingID"`
	ParticipantIDs []string `json:"participantIDs"`
}

// CreateChannelRequest creates a persistent, named channel.
type CreateChannelRequest struct {
	Name           string   `json:"name" binding:"required"`
	Type           string   `json:"type" binding:"required,oneof=PUBLIC PRIVATE DIRECT_MESSAGE"`
	IconURL        *string  `json:"iconURL"`
	ParticipantIDs []string `json:"participantIDs"`
}

// ParticipantResponse is the outward shape of a conversation member.
type ParticipantResponse struct {
	EmployeeID string    `json:"employeeID"`
	JoinedAt   time.Time `json:"joinedAt"`
}

// ConversationResponse is the outward shape of a conversation.
type ConversationResponse struct {
	ConversationID string                `json:"conversationID"`
	Name           string                `json:"name"`
	IconURL        *string               `json:"iconURL,omitempty"`
	MeetingID      *string               `json:"meetingID,omitempty"`
	Type           string                `json:"type"`
	Status         string                `json:"status"`
	LastMessageAt  *time.Time            `json:"lastMessageAt,omitempty"`
	Participants   []ParticipantResponse `json:"participants,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
}

// ToConversationResponse converts a domain Conversation to its response DTO
func ToConversationResponse(c *domain.Conversation) ConversationResponse {
	participants := make([]ParticipantResponse, len(c.Participants))
	for i, p := range c.Participants {
		participants[i] = ParticipantResponse{
			EmployeeID: p.EmployeeID,
			JoinedAt:   p.JoinedAt,
		}
	}
	return ConversationResponse{
		ConversationID: c.ConversationID,
		Name:           c.Name,
		IconURL:        c.IconURL,
		MeetingID:      c.MeetingID,
		Type:           string(c.Type),
		Status:         string(c.Status),
		LastMessageAt:  c.LastMessageAt,
		Participants:   participants,
		CreatedAt:      c.CreatedAt,
	}
}

// ChannelSummaryResponse is one entry of the channel list, annotated with
// the caller's unread count.
type ChannelSummaryResponse struct {
	ConversationResponse
	UnreadCount int `json:"unreadCount"`
}

// ListChannelsResponse wraps the channel list.
type ListChannelsResponse struct {
	Channels []ChannelSummaryResponse `json:"channels"`
}

// ToListChannelsResponse converts domain channel summaries to the list DTO
func ToListChannelsResponse(summaries []domain.ChannelSummary) ListChannelsResponse {
	out := make([]ChannelSummaryResponse, len(summaries))
	for i := range summaries {
		out[i] = ChannelSummaryResponse{
			ConversationResponse: ToConversationResponse(&summaries[i].Conversation),
			UnreadCount:          summaries[i].UnreadCount,
		}
	}
	return ListChannelsResponse{Channels: out}
}
