// Package events holds the outbound notification publishers. Delivery is
// fire-and-forget, at-least-once; callers log and swallow failures because
// the domain mutation already committed.
package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/apperrors"
	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	"github.com/orbitcommerce/collab_backend/internal/core/ports/gateways"
)

// LogPublisher writes events to the structured log. It backs local
// development and doubles as the fallback when no webhook is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Ensure LogPublisher implements the gateways.EventPublisher interface
var _ gateways.EventPublisher = (*LogPublisher)(nil)

func (p *LogPublisher) PublishMeetingBooked(_ context.Context, event domain.MeetingBookedEvent) error {
	p.logger.Info("event MeetingBooked",
		slog.String("meeting_id", event.MeetingID),
		slog.String("title", event.Title),
		slog.Time("start_time", event.StartTime),
		slog.Int("attendees", len(event.AttendeeEmails)))
	return nil
}

func (p *LogPublisher) PublishMeetingCancelled(_ context.Context, event domain.MeetingCancelledEvent) error {
	p.logger.Info("event MeetingCancelled",
		slog.String("meeting_id", event.MeetingID),
		slog.String("title", event.Title),
		slog.Int("attendees", len(event.AttendeeEmails)))
	return nil
}

// WebhookPublisher POSTs events as JSON envelopes to the notification
// collaborator. Consumers must tolerate duplicate deliveries.
type WebhookPublisher struct {
	url        string
	httpClient *http.Client
}

// NewWebhookPublisher creates a WebhookPublisher targeting the given URL.
func NewWebhookPublisher(url string) *WebhookPublisher {
	return &WebhookPublisher{
		url: url,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Ensure WebhookPublisher implements the gateways.EventPublisher interface
var _ gateways.EventPublisher = (*WebhookPublisher)(nil)

type envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

func (p *WebhookPublisher) post(ctx context.Context, eventType string, occurredAt time.Time, payload any) error {
	body, err := json.Marshal(envelope{
		Type:       eventType,
		OccurredAt: occurredAt,
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", eventType, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s webhook unreachable: %s", apperrors.ErrPublish, eventType, err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s webhook returned %d", apperrors.ErrPublish, eventType, resp.StatusCode)
	}
	return nil
}

func (p *WebhookPublisher) PublishMeetingBooked(ctx context.Context, event domain.MeetingBookedEvent) error {
	return p.post(ctx, "meeting.booked", event.OccurredAt, event)
}

func (p *WebhookPublisher) PublishMeetingCancelled(ctx context.Context, event domain.MeetingCancelledEvent) error {
	return p.post(ctx, "meeting.cancelled", event.OccurredAt, event)
}
