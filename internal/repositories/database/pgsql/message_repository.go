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

const messageColumns = `
	message_id, conversation_id, sender_id, content, sequence, sent_at, edited_at`

type PgxMessageRepository struct {
	BaseRepository
}

func newPgxMessageRepository(pool *pgxpool.Pool) portsrepo.MessageRepositoryFacade {
	return &PgxMessageRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxMessageRepository implements the facade
var _ portsrepo.MessageRepositoryFacade = (*PgxMessageRepository)(nil)

func scanMessage(row pgx.Row) (models.Message, error) {
	var m models.Message
	err := row.Scan(
		&m.MessageID,
		&m.ConversationID,
		&m.SenderID,
		&m.Content,
		&m.Sequence,
		&m.SentAt,
		&m.EditedAt,
	)
	return m, err
}

// SaveMessage is the authoritative message write. The insert, the
// conversation's last_message_at advance, attachment linking and mention
// notifications all commit in one transaction so a crash between the steps
// cannot be observed by readers.
func (r *PgxMessageRepository) SaveMessage(ctx context.Context, message domain.Message, attachmentIDs []string, mentions []domain.MentionNotification) (*domain.Message, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelMessage(message)
	insertQuery := `
		INSERT INTO messages (message_id, conversation_id, sender_id, content, sent_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING sequence;
	`
	err = tx.QueryRow(ctx, insertQuery,
		m.MessageID,
		m.ConversationID,
		m.SenderID,
		m.Content,
		m.SentAt,
	).Scan(&m.Sequence)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}

	lastMessageQuery := `
		UPDATE conversations
		SET last_message_at = $1
		WHERE conversation_id = $2;
	`
	if _, err := tx.Exec(ctx, lastMessageQuery, m.SentAt, m.ConversationID); err != nil {
		return nil, fmt.Errorf("failed to advance last_message_at: %w", err)
	}

	linked := []models.FileAttachment{}
	if len(attachmentIDs) > 0 {
		linkQuery := `
			UPDATE file_attachments
			SET message_id = $1
			WHERE attachment_id = ANY($2) AND message_id IS NULL
			RETURNING attachment_id, file_name, storage_path, content_type,
			          size_bytes, uploaded_by, message_id, uploaded_at;
		`
		rows, err := tx.Query(ctx, linkQuery, m.MessageID, attachmentIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to link attachments: %w", err)
		}
		for rows.Next() {
			var a models.FileAttachment
			if err := rows.Scan(&a.AttachmentID, &a.FileName, &a.StoragePath, &a.ContentType,
				&a.SizeBytes, &a.UploadedBy, &a.MessageID, &a.UploadedAt); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan linked attachment: %w", err)
			}
			linked = append(linked, a)
		}
		if rows.Err() != nil {
			return nil, fmt.Errorf("error iterating linked attachments: %w", rows.Err())
		}
		rows.Close()
	}

	if len(mentions) > 0 {
		mentionQuery := `
			INSERT INTO mention_notifications
				(mention_id, message_id, conversation_id, employee_id, sender_id, read, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`
		batch := &pgx.Batch{}
		for _, mn := range mentions {
			batch.Queue(mentionQuery, mn.MentionID, mn.MessageID, mn.ConversationID,
				mn.EmployeeID, mn.SenderID, mn.Read, mn.CreatedAt)
		}
		br := tx.SendBatch(ctx, batch)
		for range mentions {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return nil, fmt.Errorf("failed to insert mention notification: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return nil, fmt.Errorf("failed to close mention batch: %w", err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	saved := mapping.ToDomainMessage(m)
	saved.Attachments = make([]domain.FileAttachment, len(linked))
	for i, a := range linked {
		saved.Attachments[i] = mapping.ToDomainAttachment(a)
	}
	return &saved, nil
}

func (r *PgxMessageRepository) FindMessageByID(ctx context.Context, conversationID, messageID string) (*domain.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE message_id = $1 AND conversation_id = $2;
	`
	m, err := scanMessage(r.Pool.QueryRow(ctx, query, messageID, conversationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find message by ID %s: %w", messageID, err)
	}

	hydrated := []domain.Message{mapping.ToDomainMessage(m)}
	if err := r.attachReactionsAndFiles(ctx, hydrated); err != nil {
		return nil, err
	}
	return &hydrated[0], nil
}

// attachReactionsAndFiles loads reactions and attachments for the given
// messages in two queries and distributes them in memory.
func (r *PgxMessageRepository) attachReactionsAndFiles(ctx context.Context, messages []domain.Message) error {
	if len(messages) == 0 {
		return nil
	}
	ids := make([]string, len(messages))
	index := make(map[string]int, len(messages))
	for i, m := range messages {
		ids[i] = m.MessageID
		index[m.MessageID] = i
	}

	reactionQuery := `
		SELECT reaction_id, message_id, employee_id, emoji, created_at
		FROM message_reactions
		WHERE message_id = ANY($1)
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, reactionQuery, ids)
	if err != nil {
		return fmt.Errorf("failed to query reactions: %w", err)
	}
	for rows.Next() {
		var m models.MessageReaction
		if err := rows.Scan(&m.ReactionID, &m.MessageID, &m.EmployeeID, &m.Emoji, &m.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan reaction row: %w", err)
		}
		if i, ok := index[m.MessageID]; ok {
			messages[i].Reactions = append(messages[i].Reactions, mapping.ToDomainReaction(m))
		}
	}
	if rows.Err() != nil {
		return fmt.Errorf("error iterating reaction rows: %w", rows.Err())
	}
	rows.Close()

	attachmentQuery := `
		SELECT attachment_id, file_name, storage_path, content_type,
		       size_bytes, uploaded_by, message_id, uploaded_at
		FROM file_attachments
		WHERE message_id = ANY($1)
		ORDER BY uploaded_at;
	`
	rows, err = r.Pool.Query(ctx, attachmentQuery, ids)
	if err != nil {
		return fmt.Errorf("failed to query attachments: %w", err)
	}
	for rows.Next() {
		var a models.FileAttachment
		if err := rows.Scan(&a.AttachmentID, &a.FileName, &a.StoragePath, &a.ContentType,
			&a.SizeBytes, &a.UploadedBy, &a.MessageID, &a.UploadedAt); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan attachment row: %w", err)
		}
		if a.MessageID != nil {
			if i, ok := index[*a.MessageID]; ok {
				messages[i].Attachments = append(messages[i].Attachments, mapping.ToDomainAttachment(a))
			}
		}
	}
	if rows.Err() != nil {
		return fmt.Errorf("error iterating attachment rows: %w", rows.Err())
	}
	rows.Close()
	return nil
}

// ascendingPage reverses a newest-first page of rows into the ascending
// display order. Consecutive pages reconstruct the sequence oldest-first
// when concatenated deepest page first.
func ascendingPage(rows []models.Message) []domain.Message {
	messages := make([]domain.Message, len(rows))
	for i, m := range rows {
		messages[len(rows)-1-i] = mapping.ToDomainMessage(m)
	}
	return messages
}

// FindMessagesPage selects the requested page newest-first, then flips it
// ascending for display. Page 0 holds the newest take messages.
func (r *PgxMessageRepository) FindMessagesPage(ctx context.Context, conversationID string, skip, take int) ([]domain.Message, error) {
	if take <= 0 {
		take = 50
	}
	if skip < 0 {
		skip = 0
	}

	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE conversation_id = $1
		ORDER BY sequence DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, conversationID, take, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to query message page: %w", err)
	}
	defer rows.Close()

	modelMessages := []models.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		modelMessages = append(modelMessages, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", rows.Err())
	}
	rows.Close()

	messages := ascendingPage(modelMessages)
	if err := r.attachReactionsAndFiles(ctx, messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *PgxMessageRepository) SearchMessages(ctx context.Context, conversationID, query string) ([]domain.Message, error) {
	// Unindexed ILIKE scan; acceptable while per-channel volume stays
	// moderate, swappable behind this contract.
	sqlQuery := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE conversation_id = $1 AND content ILIKE '%' || $2 || '%'
		ORDER BY sequence;
	`
	rows, err := r.Pool.Query(ctx, sqlQuery, conversationID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}
	defer rows.Close()

	modelMessages := []models.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		modelMessages = append(modelMessages, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", rows.Err())
	}
	rows.Close()

	messages := mapping.ToDomainMessageSlice(modelMessages)
	if err := r.attachReactionsAndFiles(ctx, messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *PgxMessageRepository) FindRecentMessagesForEmployee(ctx context.Context, employeeID string, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT m.message_id, m.conversation_id, m.sender_id, m.content, m.sequence, m.sent_at, m.edited_at
		FROM messages m
		JOIN conversation_participants cp ON cp.conversation_id = m.conversation_id
		WHERE cp.employee_id = $1
		ORDER BY m.sequence DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent messages: %w", err)
	}
	defer rows.Close()

	modelMessages := []models.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		modelMessages = append(modelMessages, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", rows.Err())
	}
	return mapping.ToDomainMessageSlice(modelMessages), nil
}

func (r *PgxMessageRepository) UpdateMessageContent(ctx context.Context, conversationID, messageID, content string, editedAt time.Time) error {
	query := `
		UPDATE messages
		SET content = $1, edited_at = $2
		WHERE message_id = $3 AND conversation_id = $4;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, content, editedAt, messageID, conversationID)
	if err != nil {
		return fmt.Errorf("failed to update message content: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("message not found in conversation: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxMessageRepository) DeleteMessage(ctx context.Context, conversationID, messageID string) error {
	// Hard delete; reactions, mentions and attachment links cascade.
	query := `DELETE FROM messages WHERE message_id = $1 AND conversation_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, messageID, conversationID)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("message not found in conversation: %w", apperrors.ErrNotFound)
	}
	return nil
}

// AddReaction stores the reaction unless the (message, employee, emoji)
// triple already exists; either way the stored row is returned.
func (r *PgxMessageRepository) AddReaction(ctx context.Context, reaction domain.Reaction) (*domain.Reaction, error) {
	insertQuery := `
		INSERT INTO message_reactions (reaction_id, message_id, employee_id, emoji, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (message_id, employee_id, emoji) DO NOTHING
		RETURNING reaction_id, message_id, employee_id, emoji, created_at;
	`
	var m models.MessageReaction
	err := r.Pool.QueryRow(ctx, insertQuery,
		reaction.ReactionID,
		reaction.MessageID,
		reaction.EmployeeID,
		reaction.Emoji,
		reaction.CreatedAt,
	).Scan(&m.ReactionID, &m.MessageID, &m.EmployeeID, &m.Emoji, &m.CreatedAt)
	if err == nil {
		d := mapping.ToDomainReaction(m)
		return &d, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to add reaction: %w", err)
	}

	// Conflict path: fetch and return the existing row.
	selectQuery := `
		SELECT reaction_id, message_id, employee_id, emoji, created_at
		FROM message_reactions
		WHERE message_id = $1 AND employee_id = $2 AND emoji = $3;
	`
	err = r.Pool.QueryRow(ctx, selectQuery, reaction.MessageID, reaction.EmployeeID, reaction.Emoji).
		Scan(&m.ReactionID, &m.MessageID, &m.EmployeeID, &m.Emoji, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing reaction: %w", err)
	}
	d := mapping.ToDomainReaction(m)
	return &d, nil
}

func (r *PgxMessageRepository) RemoveReaction(ctx context.Context, messageID, employeeID, emoji string) error {
	// Absent triple is a no-op.
	query := `
		DELETE FROM message_reactions
		WHERE message_id = $1 AND employee_id = $2 AND emoji = $3;
	`
	if _, err := r.Pool.Exec(ctx, query, messageID, employeeID, emoji); err != nil {
		return fmt.Errorf("failed to remove reaction: %w", err)
	}
	return nil
}

func (r *PgxMessageRepository) FindMentionsForEmployee(ctx context.Context, employeeID string, limit, offset int) ([]domain.MentionNotification, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT mention_id, message_id, conversation_id, employee_id, sender_id, read, created_at
		FROM mention_notifications
		WHERE employee_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, employeeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query mentions: %w", err)
	}
	defer rows.Close()

	mentions := []domain.MentionNotification{}
	for rows.Next() {
		var m models.MentionNotification
		if err := rows.Scan(&m.MentionID, &m.MessageID, &m.ConversationID,
			&m.EmployeeID, &m.SenderID, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mention row: %w", err)
		}
		mentions = append(mentions, mapping.ToDomainMention(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating mention rows: %w", rows.Err())
	}
	return mentions, nil
}

func (r *PgxMessageRepository) MarkMentionRead(ctx context.Context, mentionID, employeeID string) error {
	query := `
		UPDATE mention_notifications
		SET read = TRUE
		WHERE mention_id = $1 AND employee_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, mentionID, employeeID)
	if err != nil {
		return fmt.Errorf("failed to mark mention read: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("mention not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
