package services

import (
	"context"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	"github.com/orbitcommerce/collab_backend/internal/dto"
)

// ConversationReaderSvc defines read operations over conversations.
type ConversationReaderSvc interface {
	// GetConversationByID retrieves a conversation the caller participates in.
	GetConversationByID(ctx context.Context, conversationID, callerID string) (*domain.Conversation, error)

	// GetChannels lists the caller's channels annotated with unread counts,
	// most recent message first.
	GetChannels(ctx context.Context, employeeID string) ([]domain.ChannelSummary, error)

	// GetMessages returns one display page (ascending) plus the hasMore
	// heuristic: true whenever a full page was returned.
	GetMessages(ctx context.Context, conversationID, callerID string, skip, take int) ([]domain.Message, bool, error)

	// SearchMessages performs a case-insensitive substring search within the
	// conversation.
	SearchMessages(ctx context.Context, conversationID, callerID, query string) ([]domain.Message, error)
}

// ConversationWriterSvc defines the messaging write paths.
type ConversationWriterSvc interface {
	// CreateConversation starts an ad-hoc thread, optionally linked to a
	// meeting.
	CreateConversation(ctx context.Context, req dto.CreateConversationRequest, creatorID string) (*domain.Conversation, error)

	// CreateChannel creates a persistent, named channel.
	CreateChannel(ctx context.Context, req dto.CreateChannelRequest, creatorID string) (*domain.Conversation, error)

	// JoinConversation adds the caller as a participant; joining twice is a
	// no-op.
	JoinConversation(ctx context.Context, conversationID, callerID string) error

	// SendMessage is the authoritative write path: it persists the message
	// and the last-message watermark atomically, links pending attachments,
	// resolves @Full Name mentions (excluding the sender) and writes their
	// notifications, then fans the message out to live subscribers.
	SendMessage(ctx context.Context, conversationID, senderID string, req dto.SendMessageRequest) (*domain.Message, error)

	// UpdateMessage edits a message's text. Only the sender may edit.
	UpdateMessage(ctx context.Context, conversationID, messageID, callerID, content string) (*domain.Message, error)

	// DeleteMessage removes the message outright. Only the sender may delete.
	DeleteMessage(ctx context.Context, conversationID, messageID, callerID string) error

	// MarkAsRead advances the caller's read receipt to now. The watermark is
	// monotonic and never moves backward.
	MarkAsRead(ctx context.Context, conversationID, callerID string) error

	// AddReaction toggles a reaction on; adding the same emoji twice yields
	// the one existing reaction.
	AddReaction(ctx context.Context, conversationID, messageID, callerID, emoji string) (*domain.Reaction, error)

	// RemoveReaction toggles a reaction off; absent is a no-op.
	RemoveReaction(ctx context.Context, conversationID, messageID, callerID, emoji string) error
}

// MentionSvc is the mention notification surface.
type MentionSvc interface {
	// ListMentions retrieves the caller's mention notifications, newest first.
	ListMentions(ctx context.Context, employeeID string, limit, offset int) ([]domain.MentionNotification, error)

	// MarkMentionRead flips the read flag on one of the caller's mentions.
	// Independent of conversation read receipts.
	MarkMentionRead(ctx context.Context, mentionID, employeeID string) error
}

// ConversationSvcFacade combines the conversation service interfaces.
type ConversationSvcFacade interface {
	ConversationReaderSvc
	ConversationWriterSvc
	MentionSvc
}
