package repositories

import (
	"context"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
)

// AttachmentReader defines read operations for attachment metadata
type AttachmentReader interface {
	// FindAttachmentByID retrieves an attachment record.
	FindAttachmentByID(ctx context.Context, attachmentID string) (*domain.FileAttachment, error)
}

// AttachmentWriter defines write operations for attachment metadata
type AttachmentWriter interface {
	// SaveAttachment persists a freshly uploaded, not-yet-linked attachment.
	SaveAttachment(ctx context.Context, attachment domain.FileAttachment) error
}

// AttachmentRepositoryFacade combines the attachment repository interfaces
type AttachmentRepositoryFacade interface {
	AttachmentReader
	AttachmentWriter
}
