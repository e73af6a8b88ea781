package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/orbitcommerce/collab_backend/internal/apperrors"
	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	portsrepo "github.com/orbitcommerce/collab_backend/internal/core/ports/repositories"
	"github.com/orbitcommerce/collab_backend/internal/models"
	"github.com/orbitcommerce/collab_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAttachmentRepository struct {
	BaseRepository
}

func newPgxAttachmentRepository(pool *pgxpool.Pool) portsrepo.AttachmentRepositoryFacade {
	return &PgxAttachmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAttachmentRepository implements the facade
var _ portsrepo.AttachmentRepositoryFacade = (*PgxAttachmentRepository)(nil)

// SaveAttachment records an uploaded file. message_id stays NULL until a
// message claims the attachment.
func (r *PgxAttachmentRepository) SaveAttachment(ctx context.Context, attachment domain.FileAttachment) error {
	m := mapping.ToModelAttachment(attachment)
	query := `
		INSERT INTO file_attachments
			(attachment_id, file_name, storage_path, content_type, size_bytes, uploaded_by, message_id, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AttachmentID,
		m.FileName,
		m.StoragePath,
		m.ContentType,
		m.SizeBytes,
		m.UploadedBy,
		m.MessageID,
		m.UploadedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("attachment %s already exists: %w", m.AttachmentID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save attachment: %w", err)
	}
	return nil
}

func (r *PgxAttachmentRepository) FindAttachmentByID(ctx context.Context, attachmentID string) (*domain.FileAttachment, error) {
	query := `
		SELECT attachment_id, file_name, storage_path, content_type,
		       size_bytes, uploaded_by, message_id, uploaded_at
		FROM file_attachments
		WHERE attachment_id = $1;
	`
	var m models.FileAttachment
	err := r.Pool.QueryRow(ctx, query, attachmentID).Scan(
		&m.AttachmentID,
		&m.FileName,
		&m.StoragePath,
		&m.ContentType,
		&m.SizeBytes,
		&m.UploadedBy,
		&m.MessageID,
		&m.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find attachment by ID %s: %w", attachmentID, err)
	}
	d := mapping.ToDomainAttachment(m)
	return &d, nil
}
