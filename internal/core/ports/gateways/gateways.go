package gateways

import (
	"context"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
)

// Room is an addressable audio/video session at the external calling
// provider. Names are derived deterministically from the meeting id so
// repeated creates are idempotent.
type Room struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// CallingGateway is the narrow adapter to the external room-based calling
// provider. A failure here surfaces as apperrors.ErrDependency and must
// never corrupt meeting or conversation state; no retry policy is applied
// beyond surfacing the error.
type CallingGateway interface {
	CreateRoom(ctx context.Context, name string) (*Room, error)
	GetRoom(ctx context.Context, name string) (*Room, error)
	DeleteRoom(ctx context.Context, name string) error

	// CreateJoinToken mints a short-lived token carrying the
	// owner/participant distinction for the provider's moderation features.
	CreateJoinToken(ctx context.Context, roomName, displayName string, isOwner bool) (string, error)
}

// EventPublisher is the outbound notification bus. Fire-and-forget,
// at-least-once: a publish failure after a successful domain mutation is
// logged and swallowed, never rolled back.
type EventPublisher interface {
	PublishMeetingBooked(ctx context.Context, event domain.MeetingBookedEvent) error
	PublishMeetingCancelled(ctx context.Context, event domain.MeetingCancelledEvent) error
}

// FileStore is the attachment storage boundary. The engine never assumes a
// particular backing store; paths are opaque.
type FileStore interface {
	Save(ctx context.Context, data []byte, filename, contentType string) (string, error)
	Get(ctx context.Context, path string) ([]byte, error)
	Delete(ctx context.Context, path string) error
	PublicURL(path string) string
}

// RealtimeEvent is one frame pushed to live subscribers of a channel.
type RealtimeEvent struct {
	Type      string `json:"type"`
	ChannelID string `json:"channelID,omitempty"`
	Payload   any    `json:"payload,omitempty"`
}

// Broadcaster fans an event out to the live subscribers of a channel.
// Delivery is at-most-once per connection and best-effort only; the
// persisted store remains the source of truth, so it is invoked strictly
// after the authoritative write commits.
type Broadcaster interface {
	Broadcast(channelID string, event RealtimeEvent)
}
