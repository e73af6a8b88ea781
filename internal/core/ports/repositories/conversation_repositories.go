package repositories

import (
	"context"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
)

// ConversationReader defines read operations for conversation data
type ConversationReader interface {
	// FindConversationByID retrieves a conversation with its participants.
	FindConversationByID(ctx context.Context, conversationID string) (*domain.Conversation, error)

	// FindConversationsForEmployee retrieves every conversation the employee
	// participates in, most recent message first.
	FindConversationsForEmployee(ctx context.Context, employeeID string) ([]domain.Conversation, error)

	// FindUnreadCounts computes, per conversation, the number of messages
	// strictly after the employee's read receipt (all messages when no
	// receipt exists).
	FindUnreadCounts(ctx context.Context, employeeID string, conversationIDs []string) (map[string]int, error)

	// FindReadReceipt retrieves the employee's receipt for a conversation,
	// ErrNotFound when none exists yet.
	FindReadReceipt(ctx context.Context, conversationID, employeeID string) (*domain.ReadReceipt, error)
}

// ConversationWriter defines write operations for conversation data
type ConversationWriter interface {
	// SaveConversation persists a new conversation and its initial
	// participants atomically.
	SaveConversation(ctx context.Context, conversation domain.Conversation) error

	// AddParticipant joins an employee to a conversation. Joining again is a
	// no-op, enforced by the uniqueness invariant rather than an error.
	AddParticipant(ctx context.Context, conversationID, employeeID string, joinedAt time.Time) error

	// UpsertReadReceipt advances the employee's read watermark. The stored
	// last_read_at never moves backward.
	UpsertReadReceipt(ctx context.Context, conversationID, employeeID string, readAt time.Time) error
}

// ConversationRepositoryFacade combines all conversation-level repository interfaces
type ConversationRepositoryFacade interface {
	ConversationReader
	ConversationWriter
}
