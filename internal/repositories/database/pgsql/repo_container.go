package pgsql

import (
	portsrepo "github.com/orbitcommerce/collab_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	employeeRepo := newPgxEmployeeRepository(dbPool)
	meetingRepo := newPgxMeetingRepository(dbPool)
	conversationRepo := newPgxConversationRepository(dbPool)
	messageRepo := newPgxMessageRepository(dbPool)
	attachmentRepo := newPgxAttachmentRepository(dbPool)

	return portsrepo.RepositoryProvider{
		EmployeeRepo:     employeeRepo,
		MeetingRepo:      meetingRepo,
		ConversationRepo: conversationRepo,
		MessageRepo:      messageRepo,
		AttachmentRepo:   attachmentRepo,
	}
}
