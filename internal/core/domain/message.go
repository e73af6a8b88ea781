package domain

import "time"

// Message is one entry in a conversation's append-only sequence. Ordering
// within a conversation is by Sequence (insertion order), not SentAt; the
// timestamp is for display only and tolerates clock skew across writers.
// Content is editable by the sender; deletion removes the row outright.
type Message struct {
	MessageID      string           `json:"messageID"` // Primary Key (UUID)
	ConversationID string           `json:"conversationID"`
	SenderID       string           `json:"senderID"` // EmployeeID Reference
	Content        string           `json:"content"`
	Sequence       int64            `json:"sequence"`
	SentAt         time.Time        `json:"sentAt"`
	EditedAt       *time.Time       `json:"editedAt,omitempty"`
	Reactions      []Reaction       `json:"reactions,omitempty"`
	Attachments    []FileAttachment `json:"attachments,omitempty"`
}

// Reaction is an employee's emoji toggle on a message. The triple
// (message, employee, emoji) is unique; adding it twice stores one row.
type Reaction struct {
	ReactionID string    `json:"reactionID"` // Primary Key (UUID)
	MessageID  string    `json:"messageID"`
	EmployeeID string    `json:"employeeID"`
	Emoji      string    `json:"emoji"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MentionNotification is a derived notification-surface record for an
// `@Full Name` reference in message text. It is best-effort and never used
// for authorization; its read flag is independent of read receipts.
type MentionNotification struct {
	MentionID      string    `json:"mentionID"` // Primary Key (UUID)
	MessageID      string    `json:"messageID"`
	ConversationID string    `json:"conversationID"`
	EmployeeID     string    `json:"employeeID"` // The mentioned employee
	SenderID       string    `json:"senderID"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}
