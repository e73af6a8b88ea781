package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/apperrors"
	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	"github.com/orbitcommerce/collab_backend/internal/core/ports/gateways"
	portsrepo "github.com/orbitcommerce/collab_backend/internal/core/ports/repositories"
	portssvc "github.com/orbitcommerce/collab_backend/internal/core/ports/services"
	"github.com/orbitcommerce/collab_backend/internal/middleware"
	"github.com/google/uuid"
)

// maxAttachmentBytes caps single uploads at 25 MiB.
const maxAttachmentBytes = 25 << 20

// AttachmentService handles file uploads and downloads through the storage
// boundary.
type AttachmentService struct {
	attachmentRepo portsrepo.AttachmentRepositoryFacade
	fileStore      gateways.FileStore
}

// NewAttachmentService creates a new AttachmentService.
func NewAttachmentService(ar portsrepo.AttachmentRepositoryFacade, fs gateways.FileStore) portssvc.AttachmentSvcFacade {
	return &AttachmentService{
		attachmentRepo: ar,
		fileStore:      fs,
	}
}

// Ensure AttachmentService implements the portssvc.AttachmentSvcFacade interface
var _ portssvc.AttachmentSvcFacade = (*AttachmentService)(nil)

// UploadAttachment stores the bytes and records the attachment metadata.
// The record stays unlinked until a message claims it.
func (s *AttachmentService) UploadAttachment(ctx context.Context, uploaderID, filename, contentType string, data []byte) (*domain.FileAttachment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", apperrors.ErrValidation)
	}
	if len(data) > maxAttachmentBytes {
		return nil, fmt.Errorf("%w: file exceeds the %d byte limit", apperrors.ErrValidation, maxAttachmentBytes)
	}
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", apperrors.ErrValidation)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	path, err := s.fileStore.Save(ctx, data, filename, contentType)
	if err != nil {
		logger.Error("Failed to store attachment bytes", slog.String("error", err.Error()), slog.String("filename", filename))
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	attachment := domain.FileAttachment{
		AttachmentID: uuid.NewString(),
		FileName:     filename,
		StoragePath:  path,
		ContentType:  contentType,
		SizeBytes:    int64(len(data)),
		UploadedBy:   uploaderID,
		UploadedAt:   time.Now(),
	}

	if err := s.attachmentRepo.SaveAttachment(ctx, attachment); err != nil {
		// The stored bytes become orphaned; remove them best-effort.
		if delErr := s.fileStore.Delete(ctx, path); delErr != nil {
			logger.Warn("Failed to remove orphaned file", slog.String("error", delErr.Error()), slog.String("path", path))
		}
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}

	logger.Info("Attachment uploaded", slog.String("attachment_id", attachment.AttachmentID), slog.String("uploader_id", uploaderID), slog.Int64("size_bytes", attachment.SizeBytes))
	return &attachment, nil
}

// GetAttachmentByID retrieves attachment metadata.
func (s *AttachmentService) GetAttachmentByID(ctx context.Context, attachmentID string) (*domain.FileAttachment, error) {
	return s.attachmentRepo.FindAttachmentByID(ctx, attachmentID)
}

// DownloadAttachment retrieves metadata plus the stored bytes.
func (s *AttachmentService) DownloadAttachment(ctx context.Context, attachmentID string) (*domain.FileAttachment, []byte, error) {
	attachment, err := s.attachmentRepo.FindAttachmentByID(ctx, attachmentID)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.fileStore.Get(ctx, attachment.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read stored file: %w", err)
	}
	return attachment, data, nil
}
