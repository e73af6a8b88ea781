package dto

import (
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
)

// ActivityFeedParams defines query parameters for the activity feed.
type ActivityFeedParams struct {
	Count int `form:"count,default=20"`
	Skip  int `form:"skip,default=0"`
}

// ActivityItemResponse is one merged feed entry.
type ActivityItemResponse struct {
	Kind       string    `json:"kind"` // "message" | "meeting"
	RefID      string    `json:"refID"`
	ContextID  string    `json:"contextID"`
	Title      string    `json:"title"`
	Preview    string    `json:"preview"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ActivityFeedResponse wraps the merged feed.
type ActivityFeedResponse struct {
	Items []ActivityItemResponse `json:"items"`
}

// ToActivityFeedResponse converts domain activity items to the feed DTO
func ToActivityFeedResponse(items []domain.ActivityItem) ActivityFeedResponse {
	out := make([]ActivityItemResponse, len(items))
	for i, item := range items {
		out[i] = ActivityItemResponse{
			Kind:       string(item.Kind),
			RefID:      item.RefID,
			ContextID:  item.ContextID,
			Title:      item.Title,
			Preview:    item.Preview,
			OccurredAt: item.OccurredAt,
		}
	}
	return ActivityFeedResponse{Items: out}
}
