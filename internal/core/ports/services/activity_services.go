package services

import (
	"context"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
)

// ActivitySvcFacade merges recent messages and upcoming meetings into one
// reverse-chronological feed per employee. Completeness is approximate at
// deep pagination depths because both sources are over-fetched by
// skip+count before merging.
type ActivitySvcFacade interface {
	GetActivityFeed(ctx context.Context, employeeID string, count, skip int) ([]domain.ActivityItem, error)
}
