package domain

import "time"

// ChannelType distinguishes the kinds of conversation.
type ChannelType string

const (
	ChannelDirectMessage ChannelType = "DIRECT_MESSAGE"
	ChannelPublic        ChannelType = "PUBLIC"
	ChannelPrivate       ChannelType = "PRIVATE"
)

// ConversationStatus indicates whether a conversation still accepts messages.
type ConversationStatus string

const (
	ConversationActive   ConversationStatus = "ACTIVE"
	ConversationArchived ConversationStatus = "ARCHIVED"
	ConversationClosed   ConversationStatus = "CLOSED"
)

// Conversation is the aggregate of participants and messages. A channel is a
// persistent, named conversation; ad-hoc threads may link back to a Meeting
// as a follow-up discussion. LastMessageAt is denormalized so channel lists
// order cheaply; it is advanced in the same transaction as a message insert.
type Conversation struct {
	ConversationID string             `json:"conversationID"` // Primary Key (UUID)
	Name           string             `json:"name"`
	IconURL        *string            `json:"iconURL,omitempty"`
	MeetingID      *string            `json:"meetingID,omitempty"` // Follow-up thread link, non-cascading
	Type           ChannelType        `json:"type"`
	Status         ConversationStatus `json:"status"`
	LastMessageAt  *time.Time         `json:"lastMessageAt,omitempty"`
	Participants   []Participant      `json:"participants,omitempty"`
	AuditFields
}

// Participant is an employee's membership in a conversation, unique per
// employee. A second join of the same employee is a no-op.
type Participant struct {
	ConversationID string    `json:"conversationID"`
	EmployeeID     string    `json:"employeeID"`
	JoinedAt       time.Time `json:"joinedAt"`
}

// HasParticipant reports whether the employee is a member of the
// conversation. Participants must be loaded.
func (c Conversation) HasParticipant(employeeID string) bool {
	for _, p := range c.Participants {
		if p.EmployeeID == employeeID {
			return true
		}
	}
	return false
}

// ChannelSummary is a channel-list read model: a conversation annotated
// with the requesting employee's unread count (messages strictly after the
// employee's read receipt, or all messages when no receipt exists).
type ChannelSummary struct {
	Conversation
	UnreadCount int `json:"unreadCount"`
}

// ReadReceipt is a per-employee watermark into a conversation's message
// stream. LastReadAt only ever moves forward.
type ReadReceipt struct {
	ConversationID string    `json:"conversationID"`
	EmployeeID     string    `json:"employeeID"`
	LastReadAt     time.Time `json:"lastReadAt"`
}
