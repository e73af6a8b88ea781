package services

import (
	"context"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
)

// AttachmentSvcFacade handles file uploads and downloads through the
// storage boundary. Uploads precede the message that carries them; linking
// happens during SendMessage.
type AttachmentSvcFacade interface {
	// UploadAttachment stores the bytes and records the attachment with no
	// message link yet.
	UploadAttachment(ctx context.Context, uploaderID, filename, contentType string, data []byte) (*domain.FileAttachment, error)

	// GetAttachmentByID retrieves attachment metadata.
	GetAttachmentByID(ctx context.Context, attachmentID string) (*domain.FileAttachment, error)

	// DownloadAttachment retrieves metadata plus the stored bytes.
	DownloadAttachment(ctx context.Context, attachmentID string) (*domain.FileAttachment, []byte, error)
}
