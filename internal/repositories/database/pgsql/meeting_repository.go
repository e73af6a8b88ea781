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

const meetingColumns = `
	meeting_id, title, description, start_time, end_time, location, join_url,
	status, organizer_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxMeetingRepository struct {
	BaseRepository
}

func newPgxMeetingRepository(pool *pgxpool.Pool) portsrepo.MeetingRepositoryFacade {
	return &PgxMeetingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxMeetingRepository implements portsrepo.MeetingRepositoryFacade
var _ portsrepo.MeetingRepositoryFacade = (*PgxMeetingRepository)(nil)

func scanMeeting(row pgx.Row) (models.Meeting, error) {
	var m models.Meeting
	err := row.Scan(
		&m.MeetingID,
		&m.Title,
		&m.Description,
		&m.StartTime,
		&m.EndTime,
		&m.Location,
		&m.JoinURL,
		&m.Status,
		&m.OrganizerID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveMeeting persists the meeting row and its attendees within one
// transaction.
func (r *PgxMeetingRepository) SaveMeeting(ctx context.Context, meeting domain.Meeting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelMeeting(meeting)
	meetingQuery := `
		INSERT INTO meetings (` + meetingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, meetingQuery,
		m.MeetingID,
		m.Title,
		m.Description,
		m.StartTime,
		m.EndTime,
		m.Location,
		m.JoinURL,
		m.Status,
		m.OrganizerID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert meeting: %w", err)
	}

	if err := insertAttendees(ctx, tx, meeting.MeetingID, meeting.Attendees); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertAttendees(ctx context.Context, tx pgx.Tx, meetingID string, attendees []domain.Attendee) error {
	if len(attendees) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO meeting_attendees (meeting_id, employee_id, response, responded_at)
		VALUES ($1, $2, $3, $4);
	`
	for _, a := range attendees {
		ma := mapping.ToModelAttendee(a)
		batch.Queue(query, meetingID, ma.EmployeeID, ma.Response, ma.RespondedAt)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range attendees {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert meeting attendee: %w", err)
		}
	}
	return nil
}

func (r *PgxMeetingRepository) FindMeetingByID(ctx context.Context, meetingID string) (*domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE meeting_id = $1;`
	m, err := scanMeeting(r.Pool.QueryRow(ctx, query, meetingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find meeting by ID %s: %w", meetingID, err)
	}

	d := mapping.ToDomainMeeting(m)
	attendees, err := r.findAttendees(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	d.Attendees = attendees
	return &d, nil
}

func (r *PgxMeetingRepository) findAttendees(ctx context.Context, meetingID string) ([]domain.Attendee, error) {
	query := `
		SELECT meeting_id, employee_id, response, responded_at
		FROM meeting_attendees
		WHERE meeting_id = $1
		ORDER BY employee_id;
	`
	rows, err := r.Pool.Query(ctx, query, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendees: %w", err)
	}
	defer rows.Close()

	modelAttendees := []models.MeetingAttendee{}
	for rows.Next() {
		var ma models.MeetingAttendee
		if err := rows.Scan(&ma.MeetingID, &ma.EmployeeID, &ma.Response, &ma.RespondedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendee row: %w", err)
		}
		modelAttendees = append(modelAttendees, ma)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating attendee rows: %w", rows.Err())
	}
	return mapping.ToDomainAttendeeSlice(modelAttendees), nil
}

func (r *PgxMeetingRepository) FindMeetingsInRange(ctx context.Context, from, to time.Time, employeeID *string) ([]domain.Meeting, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if employeeID != nil {
		query := `
			SELECT DISTINCT m.meeting_id, m.title, m.description, m.start_time, m.end_time,
			       m.location, m.join_url, m.status, m.organizer_id,
			       m.created_at, m.created_by, m.last_updated_at, m.last_updated_by
			FROM meetings m
			LEFT JOIN meeting_attendees ma ON ma.meeting_id = m.meeting_id
			WHERE m.start_time < $2 AND m.end_time > $1
			  AND m.status <> $3
			  AND (m.organizer_id = $4 OR ma.employee_id = $4)
			ORDER BY m.start_time;
		`
		rows, err = r.Pool.Query(ctx, query, from, to, string(domain.MeetingCancelled), *employeeID)
	} else {
		query := `
			SELECT ` + meetingColumns + `
			FROM meetings
			WHERE start_time < $2 AND end_time > $1 AND status <> $3
			ORDER BY start_time;
		`
		rows, err = r.Pool.Query(ctx, query, from, to, string(domain.MeetingCancelled))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query meetings in range: %w", err)
	}
	defer rows.Close()

	return r.collectMeetingsWithAttendees(ctx, rows)
}

func (r *PgxMeetingRepository) FindUpcomingMeetings(ctx context.Context, employeeID string, after time.Time, limit int) ([]domain.Meeting, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT DISTINCT m.meeting_id, m.title, m.description, m.start_time, m.end_time,
		       m.location, m.join_url, m.status, m.organizer_id,
		       m.created_at, m.created_by, m.last_updated_at, m.last_updated_by
		FROM meetings m
		LEFT JOIN meeting_attendees ma ON ma.meeting_id = m.meeting_id
		WHERE m.start_time > $1
		  AND m.status <> $2
		  AND (m.organizer_id = $3 OR ma.employee_id = $3)
		ORDER BY m.start_time
		LIMIT $4;
	`
	rows, err := r.Pool.Query(ctx, query, after, string(domain.MeetingCancelled), employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming meetings: %w", err)
	}
	defer rows.Close()

	return r.collectMeetingsWithAttendees(ctx, rows)
}

func (r *PgxMeetingRepository) collectMeetingsWithAttendees(ctx context.Context, rows pgx.Rows) ([]domain.Meeting, error) {
	modelMeetings := []models.Meeting{}
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meeting row: %w", err)
		}
		modelMeetings = append(modelMeetings, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating meeting rows: %w", rows.Err())
	}
	rows.Close()

	meetings := make([]domain.Meeting, len(modelMeetings))
	for i, m := range modelMeetings {
		d := mapping.ToDomainMeeting(m)
		attendees, err := r.findAttendees(ctx, m.MeetingID)
		if err != nil {
			return nil, err
		}
		d.Attendees = attendees
		meetings[i] = d
	}
	return meetings, nil
}

// UpdateMeeting updates the meeting row and replaces its attendee set
// within one transaction.
func (r *PgxMeetingRepository) UpdateMeeting(ctx context.Context, meeting domain.Meeting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelMeeting(meeting)
	query := `
		UPDATE meetings
		SET title = $1, description = $2, start_time = $3, end_time = $4,
		    location = $5, join_url = $6, status = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE meeting_id = $10;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.Title,
		m.Description,
		m.StartTime,
		m.EndTime,
		m.Location,
		m.JoinURL,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.MeetingID,
	)
	if err != nil {
		return fmt.Errorf("failed to update meeting: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("meeting not found: %w", apperrors.ErrNotFound)
	}

	// Replace the attendee set wholesale; existing RSVPs are carried in the
	// domain aggregate by the service.
	if _, err := tx.Exec(ctx, `DELETE FROM meeting_attendees WHERE meeting_id = $1;`, meeting.MeetingID); err != nil {
		return fmt.Errorf("failed to clear meeting attendees: %w", err)
	}
	if err := insertAttendees(ctx, tx, meeting.MeetingID, meeting.Attendees); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxMeetingRepository) UpdateMeetingStatus(ctx context.Context, meetingID string, status domain.MeetingStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE meetings
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE meeting_id = $4;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, string(status), updatedAt, updatedBy, meetingID)
	if err != nil {
		return fmt.Errorf("failed to update meeting status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("meeting not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxMeetingRepository) UpdateAttendeeResponse(ctx context.Context, meetingID, employeeID string, response domain.RSVPResponse, respondedAt time.Time) error {
	query := `
		UPDATE meeting_attendees
		SET response = $1, responded_at = $2
		WHERE meeting_id = $3 AND employee_id = $4;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, string(response), respondedAt, meetingID, employeeID)
	if err != nil {
		return fmt.Errorf("failed to update attendee response: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Not on the attendee list.
		return fmt.Errorf("attendee not found on meeting %s: %w", meetingID, apperrors.ErrNotFound)
	}
	return nil
}
