package repositories

import (
	"context"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
)

// MessageReader defines read operations for message data
type MessageReader interface {
	// FindMessageByID retrieves a message with reactions and attachments.
	// Returns ErrNotFound when the message does not belong to the stated
	// conversation.
	FindMessageByID(ctx context.Context, conversationID, messageID string) (*domain.Message, error)

	// FindMessagesPage retrieves one page, newest-first by insertion
	// sequence, then re-ordered ascending for display. skip counts pages
	// back from the newest message.
	FindMessagesPage(ctx context.Context, conversationID string, skip, take int) ([]domain.Message, error)

	// SearchMessages performs a case-insensitive substring match over the
	// conversation's messages, ascending by sequence.
	SearchMessages(ctx context.Context, conversationID, query string) ([]domain.Message, error)

	// FindRecentMessagesForEmployee retrieves the newest messages across all
	// conversations the employee participates in, newest first.
	FindRecentMessagesForEmployee(ctx context.Context, employeeID string, limit int) ([]domain.Message, error)
}

// MessageWriter defines write operations for message data
type MessageWriter interface {
	// SaveMessage persists the message, advances the conversation's
	// last_message_at, links the given pre-uploaded attachments and writes
	// the mention notifications, all in a single transaction. The returned
	// message carries its assigned sequence and linked attachments.
	SaveMessage(ctx context.Context, message domain.Message, attachmentIDs []string, mentions []domain.MentionNotification) (*domain.Message, error)

	// UpdateMessageContent edits a message's text. Returns ErrNotFound when
	// the message is not in the stated conversation.
	UpdateMessageContent(ctx context.Context, conversationID, messageID, content string, editedAt time.Time) error

	// DeleteMessage removes the message row. Reactions, mention
	// notifications and attachment links are removed with it.
	DeleteMessage(ctx context.Context, conversationID, messageID string) error
}

// ReactionWriter defines the reaction toggle operations
type ReactionWriter interface {
	// AddReaction stores the reaction unless the (message, employee, emoji)
	// triple already exists, in which case the existing row is returned.
	AddReaction(ctx context.Context, reaction domain.Reaction) (*domain.Reaction, error)

	// RemoveReaction deletes the triple; absent is a no-op.
	RemoveReaction(ctx context.Context, messageID, employeeID, emoji string) error
}

// MentionReader defines read operations for the mention notification surface
type MentionReader interface {
	// FindMentionsForEmployee retrieves the employee's mention
	// notifications, newest first.
	FindMentionsForEmployee(ctx context.Context, employeeID string, limit, offset int) ([]domain.MentionNotification, error)
}

// MentionWriter defines write operations for the mention notification surface
type MentionWriter interface {
	// MarkMentionRead flips the read flag on the employee's own mention.
	MarkMentionRead(ctx context.Context, mentionID, employeeID string) error
}

// MessageRepositoryFacade combines all message-related repository interfaces
type MessageRepositoryFacade interface {
	MessageReader
	MessageWriter
	ReactionWriter
	MentionReader
	MentionWriter
}
