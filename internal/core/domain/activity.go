package domain

import "time"

// ActivityKind tags an activity feed entry with its source.
type ActivityKind string

const (
	ActivityMessage ActivityKind = "message"
	ActivityMeeting ActivityKind = "meeting"
)

// ActivityItem is one entry of the merged activity feed: a recent message
// from one of the employee's channels or an upcoming meeting, ordered by
// OccurredAt descending.
type ActivityItem struct {
	Kind       ActivityKind `json:"kind"`
	RefID      string       `json:"refID"` // MessageID or MeetingID
	ContextID  string       `json:"contextID"`
	Title      string       `json:"title"`
	Preview    string       `json:"preview"`
	OccurredAt time.Time    `json:"occurredAt"`
}
