package models

import "time"

// Conversation is the conversations table row.
type Conversation struct {
	ConversationID string     `db:"conversation_id"`
	Name           string     `db:"name"`
	IconURL        *string    `db:"icon_url"`
	MeetingID      *string    `db:"meeting_id"`
	Type           string     `db:"type"`
	Status         string     `db:"status"`
	LastMessageAt  *time.Time `db:"last_message_at"`
	AuditFields
}

// ConversationParticipant is the conversation_participants table row,
// unique per (conversation_id, employee_id).
type ConversationParticipant struct {
	ConversationID string    `db:"conversation_id"`
	EmployeeID     string    `db:"employee_id"`
	JoinedAt       time.Time `db:"joined_at"`
}

// ReadReceipt is the read_receipts table row, upserted by
// (conversation_id, employee_id).
type ReadReceipt struct {
	ConversationID string    `db:"conversation_id"`
	EmployeeID     string    `db:"employee_id"`
	LastReadAt     time.Time `db:"last_read_at"`
}
