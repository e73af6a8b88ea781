package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/apperrors"
	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	portsrepo "github.com/orbitcommerce/collab_backend/internal/core/ports/repositories"
	"github.com/orbitcommerce/collab_backend/internal/models"
	"github.com/orbitcommerce/collab_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const conversationColumns = `
	conversation_id, name, icon_url, meeting_id, type, status, last_message_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxConversationRepository struct {
	BaseRepository
}

func newPgxConversationRepository(pool *pgxpool.Pool) portsrepo.ConversationRepositoryFacade {
	return &PgxConversationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxConversationRepository implements the facade
var _ portsrepo.ConversationRepositoryFacade = (*PgxConversationRepository)(nil)

func scanConversation(row pgx.Row) (models.Conversation, error) {
	var m models.Conversation
	err := row.Scan(
		&m.ConversationID,
		&m.Name,
		&m.IconURL,
		&m.MeetingID,
		&m.Type,
		&m.Status,
		&m.LastMessageAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveConversation persists the conversation row and its initial
// participants within one transaction.
func (r *PgxConversationRepository) SaveConversation(ctx context.Context, conversation domain.Conversation) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelConversation(conversation)
	query := `
		INSERT INTO conversations (` + conversationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		m.ConversationID,
		m.Name,
		m.IconURL,
		m.MeetingID,
		m.Type,
		m.Status,
		m.LastMessageAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}

	participantQuery := `
		INSERT INTO conversation_participants (conversation_id, employee_id, joined_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (conversation_id, employee_id) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, p := range conversation.Participants {
		batch.Queue(participantQuery, conversation.ConversationID, p.EmployeeID, p.JoinedAt)
	}
	br := tx.SendBatch(ctx, batch)
	for range conversation.Participants {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close participant batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxConversationRepository) FindConversationByID(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE conversation_id = $1;`
	m, err := scanConversation(r.Pool.QueryRow(ctx, query, conversationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find conversation by ID %s: %w", conversationID, err)
	}

	d := mapping.ToDomainConversation(m)
	participants, err := r.findParticipants(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	d.Participants = participants
	return &d, nil
}

func (r *PgxConversationRepository) findParticipants(ctx context.Context, conversationID string) ([]domain.Participant, error) {
	query := `
		SELECT conversation_id, employee_id, joined_at
		FROM conversation_participants
		WHERE conversation_id = $1
		ORDER BY joined_at;
	`
	rows, err := r.Pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	participants := []domain.Participant{}
	for rows.Next() {
		var m models.ConversationParticipant
		if err := rows.Scan(&m.ConversationID, &m.EmployeeID, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant row: %w", err)
		}
		participants = append(participants, mapping.ToDomainParticipant(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating participant rows: %w", rows.Err())
	}
	return participants, nil
}

func (r *PgxConversationRepository) FindConversationsForEmployee(ctx context.Context, employeeID string) ([]domain.Conversation, error) {
	query := `
		SELECT c.conversation_id, c.name, c.icon_url, c.meeting_id, c.type, c.status,
		       c.last_message_at, c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
		FROM conversations c
		JOIN conversation_participants cp ON cp.conversation_id = c.conversation_id
		WHERE cp.employee_id = $1
		ORDER BY c.last_message_at DESC NULLS LAST, c.created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations for employee: %w", err)
	}
	defer rows.Close()

	modelConversations := []models.Conversation{}
	for rows.Next() {
		m, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation row: %w", err)
		}
		modelConversations = append(modelConversations, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating conversation rows: %w", rows.Err())
	}
	rows.Close()

	conversations := make([]domain.Conversation, len(modelConversations))
	for i, m := range modelConversations {
		d := mapping.ToDomainConversation(m)
		participants, err := r.findParticipants(ctx, m.ConversationID)
		if err != nil {
			return nil, err
		}
		d.Participants = participants
		conversations[i] = d
	}
	return conversations, nil
}

func (r *PgxConversationRepository) FindUnreadCounts(ctx context.Context, employeeID string, conversationIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return counts, nil
	}

	// Messages strictly after the receipt watermark; all messages when no
	// receipt exists.
	query := `
		SELECT m.conversation_id, COUNT(*)
		FROM messages m
		LEFT JOIN read_receipts rr
		  ON rr.conversation_id = m.conversation_id AND rr.employee_id = $1
		WHERE m.conversation_id = ANY($2)
		  AND (rr.last_read_at IS NULL OR m.sent_at > rr.last_read_at)
		GROUP BY m.conversation_id;
	`
	rows, err := r.Pool.Query(ctx, query, employeeID, conversationIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query unread counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var conversationID string
		var count int
		if err := rows.Scan(&conversationID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan unread count row: %w", err)
		}
		counts[conversationID] = count
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating unread count rows: %w", rows.Err())
	}
	return counts, nil
}

func (r *PgxConversationRepository) FindReadReceipt(ctx context.Context, conversationID, employeeID string) (*domain.ReadReceipt, error) {
	query := `
		SELECT conversation_id, employee_id, last_read_at
		FROM read_receipts
		WHERE conversation_id = $1 AND employee_id = $2;
	`
	var m models.ReadReceipt
	err := r.Pool.QueryRow(ctx, query, conversationID, employeeID).Scan(&m.ConversationID, &m.EmployeeID, &m.LastReadAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find read receipt: %w", err)
	}
	d := mapping.ToDomainReadReceipt(m)
	return &d, nil
}

func (r *PgxConversationRepository) AddParticipant(ctx context.Context, conversationID, employeeID string, joinedAt time.Time) error {
	// Second join of the same employee is a no-op via the uniqueness
	// invariant, not an error.
	query := `
		INSERT INTO conversation_participants (conversation_id, employee_id, joined_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (conversation_id, employee_id) DO NOTHING;
	`
	if _, err := r.Pool.Exec(ctx, query, conversationID, employeeID, joinedAt); err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}
	return nil
}

func (r *PgxConversationRepository) UpsertReadReceipt(ctx context.Context, conversationID, employeeID string, readAt time.Time) error {
	// GREATEST keeps the watermark monotonic under concurrent marks.
	query := `
		INSERT INTO read_receipts (conversation_id, employee_id, last_read_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (conversation_id, employee_id) DO UPDATE
		SET last_read_at = GREATEST(read_receipts.last_read_at, EXCLUDED.last_read_at);
	`
	if _, err := r.Pool.Exec(ctx, query, conversationID, employeeID, readAt); err != nil {
		return fmt.Errorf("failed to upsert read receipt: %w", err)
	}
	return nil
}
