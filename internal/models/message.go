package models

import "time"

// Message is the messages table row. Sequence is a bigserial; it is the
// ordering authority within a conversation, not sent_at.
type Message struct {
	MessageID      string     `db:"message_id"`
	ConversationID string     `db:"conversation_id"`
	SenderID       string     `db:"sender_id"`
	Content        string     `db:"content"`
	Sequence       int64      `db:"sequence"`
	SentAt         time.Time  `db:"sent_at"`
	EditedAt       *time.Time `db:"edited_at"`
}

// MessageReaction is the message_reactions table row, unique per
// (message_id, employee_id, emoji).
type MessageReaction struct {
	ReactionID string    `db:"reaction_id"`
	MessageID  string    `db:"message_id"`
	EmployeeID string    `db:"employee_id"`
	Emoji      string    `db:"emoji"`
	CreatedAt  time.Time `db:"created_at"`
}

// MentionNotification is the mention_notifications table row.
type MentionNotification struct {
	MentionID      string    `db:"mention_id"`
	MessageID      string    `db:"message_id"`
	ConversationID string    `db:"conversation_id"`
	EmployeeID     string    `db:"employee_id"`
	SenderID       string    `db:"sender_id"`
	Read           bool      `db:"read"`
	CreatedAt      time.Time `db:"created_at"`
}

// FileAttachment is the file_attachments table row. message_id stays NULL
// until the attachment is linked during message send.
type FileAttachment struct {
	AttachmentID string    `db:"attachment_id"`
	FileName     string    `db:"file_name"`
	StoragePath  string    `db:"storage_path"`
	ContentType  string    `db:"content_type"`
	SizeBytes    int64     `db:"size_bytes"`
	UploadedBy   string    `db:"uploaded_by"`
	MessageID    *string   `db:"message_id"`
	UploadedAt   time.Time `db:"uploaded_at"`
}
