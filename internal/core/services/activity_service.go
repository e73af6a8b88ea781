package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	portsrepo "github.com/orbitcommerce/collab_backend/internal/core/ports/repositories"
	portssvc "github.com/orbitcommerce/collab_backend/internal/core/ports/services"
)

// previewRunes caps the message excerpt shown in the feed.
const previewRunes = 120

// ActivityService merges recent messages and upcoming meetings into one
// reverse-chronological feed.
type ActivityService struct {
	messageRepo portsrepo.MessageRepositoryFacade
	meetingRepo portsrepo.MeetingRepositoryFacade
}

// NewActivityService creates a new ActivityService.
func NewActivityService(msgRepo portsrepo.MessageRepositoryFacade, mtgRepo portsrepo.MeetingRepositoryFacade) portssvc.ActivitySvcFacade {
	return &ActivityService{
		messageRepo: msgRepo,
		meetingRepo: mtgRepo,
	}
}

// Ensure ActivityService implements the portssvc.ActivitySvcFacade interface
var _ portssvc.ActivitySvcFacade = (*ActivityService)(nil)

// GetActivityFeed merges the employee's recent messages with their upcoming
// meetings, newest first. Each source is over-fetched by skip+count before
// the merge, so completeness degrades gracefully at deep pagination depths
// instead of requiring a combined index.
func (s *ActivityService) GetActivityFeed(ctx context.Context, employeeID string, count, skip int) ([]domain.ActivityItem, error) {
	if count <= 0 || count > 100 {
		count = 20
	}
	if skip < 0 {
		skip = 0
	}
	fetch := skip + count

	messages, err := s.messageRepo.FindRecentMessagesForEmployee(ctx, employeeID, fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent messages: %w", err)
	}
	meetings, err := s.meetingRepo.FindUpcomingMeetings(ctx, employeeID, time.Now(), fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming meetings: %w", err)
	}

	items := make([]domain.ActivityItem, 0, len(messages)+len(meetings))
	for _, m := range messages {
		items = append(items, domain.ActivityItem{
			Kind:       domain.ActivityMessage,
			RefID:      m.MessageID,
			ContextID:  m.ConversationID,
			Title:      "New message",
			Preview:    truncate(m.Content, previewRunes),
			OccurredAt: m.SentAt,
		})
	}
	for _, m := range meetings {
		items = append(items, domain.ActivityItem{
			Kind:       domain.ActivityMeeting,
			RefID:      m.MeetingID,
			ContextID:  m.MeetingID,
			Title:      m.Title,
			Preview:    "Upcoming meeting",
			OccurredAt: m.StartTime,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OccurredAt.After(items[j].OccurredAt)
	})

	if skip >= len(items) {
		return []domain.ActivityItem{}, nil
	}
	items = items[skip:]
	if len(items) > count {
		items = items[:count]
	}
	return items, nil
}

// truncate shortens s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
